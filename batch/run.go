package batch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/font/gofont/gomono"

	"github.com/gogpu/monofont"
	"github.com/gogpu/monofont/export"
	"github.com/gogpu/monofont/internal/parallel"
	"github.com/gogpu/monofont/sheet"
)

// Report describes a successful run.
type Report struct {
	Source   string
	Variants []VariantReport

	// Specimen is the path of the specimen PDF, if one was written.
	Specimen string
}

// VariantReport describes one generated variant.
type VariantReport struct {
	Name          string
	PixelSize     int
	CharacterSize image.Point
	Files         export.Written
	Warnings      []sheet.Warning
}

// Paths returns every file the run wrote.
func (r *Report) Paths() []string {
	var paths []string
	for _, v := range r.Variants {
		paths = append(paths, v.Files.Paths()...)
	}
	if r.Specimen != "" {
		paths = append(paths, r.Specimen)
	}
	return paths
}

// result is the output of one generation job.
type result struct {
	font     *monofont.Font
	warnings []sheet.Warning
}

// Run generates every variant of m in parallel and writes their artifacts.
//
// Nothing is written unless every variant generates. If writing fails
// part way, the files already written are removed again.
func Run(ctx context.Context, m *Manifest) (*Report, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	data, err := readSource(m)
	if err != nil {
		return nil, err
	}
	log := monofont.Logger().With("source", m.Source)

	results := make([]result, len(m.Variants))
	jobs := make([]parallel.Job, len(m.Variants))
	for i, v := range m.Variants {
		jobs[i] = func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			face, err := sheet.Open(data, v.PixelSize)
			if err != nil {
				return err
			}
			opts := sheet.DefaultOptions()
			opts.Spacing = v.Spacing
			opts.AdvanceOverrides = m.AdvanceOverrides
			f, warnings, err := sheet.Generate(face, nil, opts)
			if err != nil {
				return err
			}
			results[i] = result{font: f, warnings: warnings}
			return nil
		}
	}

	pool := parallel.NewWorkerPool(min(m.Workers, len(jobs)))
	errs := pool.Run(ctx, jobs)
	pool.Close()
	if err := firstFailure(m.Variants, errs); err != nil {
		return nil, err
	}

	report := &Report{Source: m.Source}
	out := m.resolve(m.Output)
	opts := m.exportOptions()
	rollback := func() {
		for _, v := range report.Variants {
			v.Files.Remove()
		}
	}
	for i, v := range m.Variants {
		res := results[i]
		files, err := export.WriteVariant(out, v.Name, res.font, opts)
		if err != nil {
			rollback()
			return nil, fmt.Errorf("batch: variant %s: %w", v.Name, err)
		}
		report.Variants = append(report.Variants, VariantReport{
			Name:          v.Name,
			PixelSize:     v.PixelSize,
			CharacterSize: res.font.CharacterSize,
			Files:         files,
			Warnings:      res.warnings,
		})
		log.Info("variant", "name", v.Name, "cell", fmt.Sprintf("%dx%d", res.font.CharacterSize.X, res.font.CharacterSize.Y), "warnings", len(res.warnings))
	}

	if m.Specimen != "" {
		path := filepath.Join(out, m.Specimen)
		specimens := make([]export.Specimen, len(m.Variants))
		for i, v := range m.Variants {
			specimens[i] = export.Specimen{Name: v.Name, Font: results[i].font, Sample: v.Sample}
		}
		err := export.WriteFileAtomic(path, func(w io.Writer) error {
			return export.WriteSpecimenPDF(w, m.Package, specimens)
		})
		if err != nil {
			rollback()
			return nil, fmt.Errorf("batch: specimen: %w", err)
		}
		report.Specimen = path
	}
	return report, nil
}

// readSource loads the source font bytes of m.
func readSource(m *Manifest) ([]byte, error) {
	if m.Source == BuiltinGoMono {
		return gomono.TTF, nil
	}
	data, err := os.ReadFile(m.resolve(m.Source))
	if err != nil {
		return nil, fmt.Errorf("batch: %w: %w", sheet.ErrSourceUnreadable, err)
	}
	return data, nil
}

// firstFailure picks the error to report from per-variant job errors,
// preferring real failures over the cancellations they caused.
func firstFailure(variants []Variant, errs []error) error {
	var canceled error
	for i, err := range errs {
		if err == nil {
			continue
		}
		err = fmt.Errorf("batch: variant %s: %w", variants[i].Name, err)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			if canceled == nil {
				canceled = err
			}
			continue
		}
		return err
	}
	return canceled
}
