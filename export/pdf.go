package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/gogpu/monofont"
)

// Specimen is one variant on a specimen sheet.
type Specimen struct {
	Name string
	Font *monofont.Font

	// Sample is drawn below the glyph sheet when not empty.
	Sample string
}

// specimenEpoch is stamped as the creation date so equal input yields
// equal files.
var specimenEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// WriteSpecimenPDF writes an A4 document with one page per specimen: the
// metrics of the variant, its glyph sheet and the sample text.
func WriteSpecimenPDF(w io.Writer, title string, specimens []Specimen) error {
	if len(specimens) == 0 {
		return errors.New("export: no specimens")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreator("monofont", true)
	pdf.SetCreationDate(specimenEpoch)
	pdf.SetModificationDate(specimenEpoch)
	pdf.SetCatalogSort(true)
	pdf.SetAutoPageBreak(false, 0)

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	width := pageW - left - right

	for i, s := range specimens {
		if s.Font == nil || s.Font.Image == nil {
			return fmt.Errorf("export: specimen %q: %w", s.Name, ErrNoFont)
		}
		f := s.Font
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(width, 10, s.Name, "", 1, "L", false, 0, "")

		pdf.SetFont("Courier", "", 10)
		for _, row := range metricRows(f) {
			pdf.CellFormat(45, 5, row[0], "", 0, "L", false, 0, "")
			pdf.CellFormat(width-45, 5, row[1], "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)

		sheet := Preview(f, 1)
		mmPerPixel := width / float64(sheet.Bounds().Dx())
		if err := placeImage(pdf, fmt.Sprintf("sheet-%d", i), sheet, left, mmPerPixel); err != nil {
			return err
		}

		if s.Sample != "" {
			pdf.Ln(6)
			sample := renderSample(f, s.Sample)
			if err := placeImage(pdf, fmt.Sprintf("sample-%d", i), sample, left, mmPerPixel); err != nil {
				return err
			}
		}
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("export: write pdf: %w", err)
	}
	return nil
}

func metricRows(f *monofont.Font) [][2]string {
	size := f.Image.Bounds().Size()
	return [][2]string{
		{"Character size", fmt.Sprintf("%dx%d", f.CharacterSize.X, f.CharacterSize.Y)},
		{"Spacing", fmt.Sprint(f.CharacterSpacing)},
		{"Baseline", fmt.Sprint(f.Baseline)},
		{"Underline", fmt.Sprintf("offset %d, thickness %d", f.Underline.Offset, f.Underline.Thickness)},
		{"Strikethrough", fmt.Sprintf("offset %d, thickness %d", f.Strikethrough.Offset, f.Strikethrough.Thickness)},
		{"Sheet", fmt.Sprintf("%dx%d, %d bytes", size.X, size.Y, len(f.Image.Bytes()))},
	}
}

// placeImage embeds img as PNG at the current line, mmPerPixel wide per
// pixel, and moves below it.
func placeImage(pdf *gofpdf.Fpdf, name string, img image.Image, x, mmPerPixel float64) error {
	var buf bytes.Buffer
	if err := Encode(&buf, img, FormatPNG); err != nil {
		return err
	}
	pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, &buf)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("export: embed %s: %w", name, err)
	}
	b := img.Bounds()
	w, h := float64(b.Dx())*mmPerPixel, float64(b.Dy())*mmPerPixel
	pdf.ImageOptions(name, x, pdf.GetY(), w, h, true, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

func renderSample(f *monofont.Font, text string) *image.Gray {
	size := monofont.Measure(f, text, monofont.LayoutOptions{})
	img := image.NewGray(image.Rectangle{Max: size.Add(image.Pt(2, 2))})
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	monofont.Draw(img, f, text, image.Pt(1, 1), monofont.TextStyle{Color: color.Black})
	return img
}
