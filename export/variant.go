package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/gogpu/monofont"
)

// Options configures WriteVariant.
type Options struct {
	// Package is the package clause of the generated Go file.
	Package string

	// Preview is the image format of the preview, empty for none.
	Preview Format

	// PreviewScale enlarges each sheet pixel in the preview.
	PreviewScale int
}

// DefaultOptions returns options writing a PNG preview at twice the size.
func DefaultOptions() Options {
	return Options{
		Package:      "fonts",
		Preview:      FormatPNG,
		PreviewScale: 2,
	}
}

// Validate checks the options.
func (o *Options) Validate() error {
	if o.Package == "" {
		return &OptionsError{Field: "Package", Reason: "must not be empty"}
	}
	if o.Preview != "" {
		if _, err := ParseFormat(string(o.Preview)); err != nil {
			return &OptionsError{Field: "Preview", Reason: err.Error()}
		}
	}
	if o.PreviewScale < 0 {
		return &OptionsError{Field: "PreviewScale", Reason: "must not be negative"}
	}
	return nil
}

// Written lists the files produced for a variant.
type Written struct {
	Raw     string
	Source  string
	Preview string
}

// Paths returns the written paths in write order.
func (w Written) Paths() []string {
	paths := []string{w.Raw, w.Source}
	if w.Preview != "" {
		paths = append(paths, w.Preview)
	}
	return paths
}

// FileBase returns the file name stem used for a variant name.
func FileBase(name string) string {
	return strings.ToLower(name)
}

// WriteVariant writes the raw sheet, the Go source declaring name and the
// optional preview of f into dir.
//
// Every file is staged next to its target and renamed into place only
// after all of them are written, so an encoding or write failure leaves dir
// untouched. If a rename fails, the files already renamed are removed; any
// earlier versions they replaced are not restored.
func WriteVariant(dir, name string, f *monofont.Font, opts Options) (Written, error) {
	if err := opts.Validate(); err != nil {
		return Written{}, err
	}
	if f == nil {
		return Written{}, fmt.Errorf("export: %s: %w", name, ErrNoFont)
	}
	base := FileBase(name)
	src := GoSource{Package: opts.Package, Name: name, RawFile: base + ".raw"}
	if err := src.Validate(); err != nil {
		return Written{}, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Written{}, fmt.Errorf("export: %w", err)
	}

	var staged []*renameio.PendingFile
	defer func() {
		for _, pf := range staged {
			pf.Cleanup()
		}
	}()
	stage := func(path string, fn func(io.Writer) error) error {
		pf, err := stageFile(path, fn)
		if err != nil {
			return err
		}
		staged = append(staged, pf)
		return nil
	}

	w := Written{
		Raw:    filepath.Join(dir, base+".raw"),
		Source: filepath.Join(dir, base+".go"),
	}
	if err := stage(w.Raw, func(out io.Writer) error { return WriteRaw(out, f) }); err != nil {
		return Written{}, err
	}
	if err := stage(w.Source, func(out io.Writer) error { return WriteGoSource(out, src, f) }); err != nil {
		return Written{}, err
	}
	if opts.Preview != "" {
		format, _ := ParseFormat(string(opts.Preview))
		w.Preview = filepath.Join(dir, base+".preview"+format.Ext())
		img := Preview(f, opts.PreviewScale)
		if err := stage(w.Preview, func(out io.Writer) error { return Encode(out, img, format) }); err != nil {
			return Written{}, err
		}
	}

	paths := w.Paths()
	for i, pf := range staged {
		if err := pf.CloseAtomicallyReplace(); err != nil {
			removeAll(paths[:i])
			return Written{}, fmt.Errorf("export: %w", err)
		}
	}
	monofont.Logger().Debug("variant written", "name", name, "dir", dir)
	return w, nil
}

// Remove deletes the files of w. It is used to roll back a batch.
func (w Written) Remove() {
	removeAll(w.Paths())
}
