package export

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"io"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/gogpu/monofont"
)

// ModulePath is the import path generated sources refer to.
const ModulePath = "github.com/gogpu/monofont"

// GoSource describes a generated Go file declaring one variant.
type GoSource struct {
	// Package is the package clause of the file.
	Package string

	// Name is the exported variable holding the variant.
	Name string

	// RawFile is the sheet blob embedded with //go:embed, relative to the
	// generated file.
	RawFile string

	// Comment completes the doc comment sentence starting with Name.
	// Defaults to a description of the cell size.
	Comment string

	// ImportPath of the monofont package. Defaults to ModulePath.
	ImportPath string
}

// Validate checks the identifiers and paths of s.
func (s *GoSource) Validate() error {
	if !token.IsIdentifier(s.Package) {
		return &OptionsError{Field: "Package", Reason: fmt.Sprintf("%q is not an identifier", s.Package)}
	}
	if !token.IsIdentifier(s.Name) || !token.IsExported(s.Name) {
		return &OptionsError{Field: "Name", Reason: fmt.Sprintf("%q is not an exported identifier", s.Name)}
	}
	if s.RawFile == "" || strings.ContainsAny(s.RawFile, " \t\n\"`") {
		return &OptionsError{Field: "RawFile", Reason: fmt.Sprintf("%q cannot be embedded", s.RawFile)}
	}
	if strings.ContainsAny(s.Comment, "\r\n") {
		return &OptionsError{Field: "Comment", Reason: "must be a single line"}
	}
	return nil
}

var goSourceTmpl = template.Must(template.New("gosrc").Parse(`// Code generated by monofont. DO NOT EDIT.

package {{.Package}}

import (
	_ "embed"
	"image"

	"{{.ImportPath}}"
)

//go:embed {{.RawFile}}
var {{.DataVar}} []byte

// {{.Name}} {{.Comment}}
var {{.Name}} = monofont.MustFont({{.DataVar}}, monofont.Metrics{
	CharacterSize: image.Pt({{.CharacterSize.X}}, {{.CharacterSize.Y}}),
	CharacterSpacing: {{.CharacterSpacing}},
	Baseline: {{.Baseline}},
	Underline: monofont.Decoration{Offset: {{.Underline.Offset}}, Thickness: {{.Underline.Thickness}}},
	Strikethrough: monofont.Decoration{Offset: {{.Strikethrough.Offset}}, Thickness: {{.Strikethrough.Thickness}}},
})
`))

// WriteGoSource writes a gofmt'ed Go file declaring f as s.Name, with its
// sheet embedded from s.RawFile.
func WriteGoSource(w io.Writer, s GoSource, f *monofont.Font) error {
	if f == nil {
		return fmt.Errorf("export: %w", ErrNoFont)
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if s.ImportPath == "" {
		s.ImportPath = ModulePath
	}
	if s.Comment == "" {
		s.Comment = fmt.Sprintf("is a monospace bitmap font with %dx%d pixel characters.",
			f.CharacterSize.X, f.CharacterSize.Y)
	}

	var buf bytes.Buffer
	err := goSourceTmpl.Execute(&buf, struct {
		GoSource
		monofont.Metrics
		DataVar string
	}{s, f.Metrics, dataVar(s.Name)})
	if err != nil {
		return fmt.Errorf("export: render go source: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("export: format go source: %w", err)
	}
	if _, err := w.Write(src); err != nil {
		return fmt.Errorf("export: write go source: %w", err)
	}
	return nil
}

// dataVar returns the unexported name of the blob variable for name.
func dataVar(name string) string {
	r, n := utf8.DecodeRuneInString(name)
	return string(unicode.ToLower(r)) + name[n:] + "Data"
}
