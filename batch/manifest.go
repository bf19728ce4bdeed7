// Package batch generates sets of variants described by a YAML manifest.
package batch

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"io"
	"maps"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/monofont"
	"github.com/gogpu/monofont/export"
	"github.com/gogpu/monofont/sheet"
)

// BuiltinGoMono names the Go Mono font bundled with golang.org/x/image as
// a manifest source.
const BuiltinGoMono = "builtin:gomono"

// Manifest describes one source font and the variants to generate from it.
type Manifest struct {
	// Source is a font file, relative to the manifest, or BuiltinGoMono.
	Source string `yaml:"source"`

	// Output is the directory receiving the artifacts, relative to the
	// manifest. Defaults to the manifest directory.
	Output string `yaml:"output"`

	// Package is the package clause of generated Go files.
	Package string `yaml:"package"`

	// Preview is the preview image format, empty for none.
	Preview string `yaml:"preview"`

	// PreviewScale enlarges previews. Defaults to 2.
	PreviewScale int `yaml:"preview_scale"`

	// Specimen is an optional PDF file, relative to Output, showing every
	// variant.
	Specimen string `yaml:"specimen"`

	// Workers bounds the variants generated at once. Zero uses GOMAXPROCS.
	Workers int `yaml:"workers"`

	// AdvanceOverrides maps pixel sizes to cell widths replacing the
	// advance reported by the source.
	AdvanceOverrides map[int]int `yaml:"advance_overrides"`

	Variants []Variant `yaml:"variants"`

	dir string
}

// Variant is one size to generate.
type Variant struct {
	// Name is the exported Go identifier of the variant. File names are
	// derived from it.
	Name string `yaml:"name"`

	// PixelSize is the pixels per em to render the source at.
	PixelSize int `yaml:"ppem"`

	// Spacing is the character spacing recorded in the variant.
	Spacing int `yaml:"spacing"`

	// Sample is shown under the sheet in the specimen.
	Sample string `yaml:"sample"`
}

// ManifestError reports an invalid manifest field.
type ManifestError struct {
	Field  string
	Reason string
}

func (e *ManifestError) Error() string {
	return "batch: invalid manifest." + e.Field + ": " + e.Reason
}

// Load reads and validates the manifest at path. Relative paths in the
// manifest are resolved against its directory.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("batch: %s: %w", path, err)
	}
	m.dir = filepath.Dir(path)
	return m, nil
}

// Parse decodes and validates a manifest. Unknown fields are rejected.
// Relative paths resolve against the working directory.
func Parse(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ManifestError{Field: "Source", Reason: "empty manifest"}
		}
		return nil, fmt.Errorf("batch: decode manifest: %w", err)
	}
	m.setDefaults()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ProFont returns the manifest of the standard size family: one variant
// per monofont.Size, named ProFont<N>Point, with the known advance fix.
func ProFont(source string) *Manifest {
	m := &Manifest{
		Source:           source,
		Package:          "profont",
		Preview:          string(export.FormatPNG),
		AdvanceOverrides: maps.Clone(sheet.ProFontAdvanceOverrides),
	}
	for _, s := range monofont.Sizes() {
		m.Variants = append(m.Variants, Variant{
			Name:      fmt.Sprintf("ProFont%dPoint", s.Point()),
			PixelSize: s.PixelSize(),
			Spacing:   s.Spacing(),
		})
	}
	m.setDefaults()
	return m
}

func (m *Manifest) setDefaults() {
	if m.Output == "" {
		m.Output = "."
	}
	if m.Package == "" {
		m.Package = "fonts"
	}
	if m.PreviewScale == 0 {
		m.PreviewScale = 2
	}
}

// Validate checks the manifest.
func (m *Manifest) Validate() error {
	if m.Source == "" {
		return &ManifestError{Field: "Source", Reason: "must not be empty"}
	}
	if !token.IsIdentifier(m.Package) {
		return &ManifestError{Field: "Package", Reason: fmt.Sprintf("%q is not an identifier", m.Package)}
	}
	if m.Preview != "" {
		if _, err := export.ParseFormat(m.Preview); err != nil {
			return &ManifestError{Field: "Preview", Reason: err.Error()}
		}
	}
	if m.PreviewScale < 1 {
		return &ManifestError{Field: "PreviewScale", Reason: "must be at least 1"}
	}
	if m.Workers < 0 {
		return &ManifestError{Field: "Workers", Reason: "must not be negative"}
	}
	opts := sheet.Options{AdvanceOverrides: m.AdvanceOverrides}
	if err := opts.Validate(); err != nil {
		var oe *sheet.OptionsError
		if errors.As(err, &oe) {
			return &ManifestError{Field: oe.Field, Reason: oe.Reason}
		}
		return err
	}
	if len(m.Variants) == 0 {
		return &ManifestError{Field: "Variants", Reason: "must not be empty"}
	}

	seen := make(map[string]bool, len(m.Variants))
	for i, v := range m.Variants {
		field := fmt.Sprintf("Variants[%d]", i)
		switch {
		case !token.IsIdentifier(v.Name) || !token.IsExported(v.Name):
			return &ManifestError{Field: field + ".Name", Reason: fmt.Sprintf("%q is not an exported identifier", v.Name)}
		case seen[export.FileBase(v.Name)]:
			return &ManifestError{Field: field + ".Name", Reason: fmt.Sprintf("%q is used twice", v.Name)}
		case v.PixelSize < sheet.MinPixelSize || v.PixelSize > sheet.MaxPixelSize:
			return &ManifestError{Field: field + ".PixelSize", Reason: fmt.Sprintf("%d out of range [%d, %d]", v.PixelSize, sheet.MinPixelSize, sheet.MaxPixelSize)}
		case v.Spacing < 0:
			return &ManifestError{Field: field + ".Spacing", Reason: "must not be negative"}
		}
		seen[export.FileBase(v.Name)] = true
	}
	return nil
}

// resolve returns p relative to the manifest directory.
func (m *Manifest) resolve(p string) string {
	if filepath.IsAbs(p) || m.dir == "" {
		return p
	}
	return filepath.Join(m.dir, p)
}

// exportOptions returns the artifact settings of the manifest.
func (m *Manifest) exportOptions() export.Options {
	opts := export.Options{Package: m.Package, PreviewScale: m.PreviewScale}
	if m.Preview != "" {
		opts.Preview, _ = export.ParseFormat(m.Preview)
	}
	return opts
}
