package main

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/thatisuday/commando"
	"golang.org/x/image/draw"
	"golang.org/x/text/unicode/runenames"

	"github.com/gogpu/monofont"
	"github.com/gogpu/monofont/export"
	"github.com/gogpu/monofont/fonts"
)

// debuggerSample mixes ASCII, Latin-1 and one character outside the
// repertoire, drawn as the fallback glyph.
const debuggerSample = "Hello world! gjpqy ÄÖÜ äöü ß © ½ \uffff"

var red = color.RGBA{R: 0xff, A: 0xff}

type debuggerConfig struct {
	underline     bool
	strikethrough bool
	scale         int
}

func runDebugger(_ map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupLogging(flags)
	cfg := debuggerConfig{
		underline:     mustFlagBool(flags["underline"], "underline"),
		strikethrough: mustFlagBool(flags["strikethrough"], "strikethrough"),
		scale:         mustFlagInt(flags["scale"], "scale"),
	}
	if mustFlagBool(flags["no-gui-scaling"], "no-gui-scaling") {
		cfg.scale = 1
	}
	out := mustFlagString(flags["out"], "out")
	img := scale(renderDebugger(cfg), cfg.scale)
	if err := writePNG(out, img); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("Wrote %s\n", out)

	if pdf := mustFlagString(flags["pdf"], "pdf"); pdf != none {
		var specimens []export.Specimen
		for i, f := range fonts.All() {
			specimens = append(specimens, export.Specimen{
				Name:   monofont.Sizes()[i].String(),
				Font:   f,
				Sample: debuggerSample,
			})
		}
		err := export.WriteFileAtomic(pdf, func(w io.Writer) error {
			return export.WriteSpecimenPDF(w, "monofont built-in sizes", specimens)
		})
		if err != nil {
			fatalf("%v", err)
		}
		fmt.Printf("Wrote %s\n", pdf)
	}
}

// renderDebugger draws the sample in every built-in size, one line each,
// with the baseline of each line marked in red.
func renderDebugger(cfg debuggerConfig) *image.RGBA {
	const margin = 4
	all := fonts.All()
	size := image.Pt(0, margin)
	for _, f := range all {
		m := monofont.Measure(f, debuggerSample, monofont.LayoutOptions{})
		size.X = max(size.X, m.X)
		size.Y += m.Y + margin
	}
	img := image.NewRGBA(image.Rect(0, 0, size.X+2*margin, size.Y))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	style := monofont.TextStyle{
		Color:         color.Black,
		Underline:     cfg.underline,
		Strikethrough: cfg.strikethrough,
		Baseline:      monofont.BaselineAlphabetic,
	}
	y := margin
	for _, f := range all {
		baseline := y + f.Baseline
		line := image.Rect(0, baseline, img.Bounds().Dx(), baseline+1)
		draw.Draw(img, line, image.NewUniform(red), image.Point{}, draw.Src)
		monofont.Draw(img, f, debuggerSample, image.Pt(margin, baseline), style)
		y += f.CharacterSize.Y + margin
	}
	return img
}

func runHello(_ map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	out := mustFlagString(flags["out"], "out")
	img := scale(renderHello(), mustFlagInt(flags["scale"], "scale"))
	if err := writePNG(out, img); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("Wrote %s\n", out)
}

func renderHello() *image.Gray {
	const text = "Hello world!"
	f := fonts.Get(monofont.Size12Point)
	m := monofont.Measure(f, text, monofont.LayoutOptions{})
	img := image.NewGray(image.Rect(0, 0, m.X+4, m.Y+4))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	monofont.Draw(img, f, text, image.Pt(2, 2), monofont.TextStyle{Baseline: monofont.BaselineTop})
	return img
}

// mockDisplay is a 1-bit framebuffer like those of small OLED panels.
type mockDisplay struct {
	*monofont.Bitmap
}

func newMockDisplay(w, h int) *mockDisplay {
	return &mockDisplay{monofont.NewBitmap(w, h)}
}

// WriteTo prints the framebuffer with '#' for lit pixels.
func (d *mockDisplay) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	border := "+" + strings.Repeat("-", d.Width()) + "+\n"
	sb.WriteString(border)
	for y := 0; y < d.Height(); y++ {
		sb.WriteByte('|')
		for x := 0; x < d.Width(); x++ {
			if d.Bit(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

func runMockDisplay(args map[string]commando.ArgValue, _ map[string]commando.FlagValue) {
	d := newMockDisplay(128, 64)
	f := fonts.Get(monofont.Size7Point)
	text := strings.ReplaceAll(args["text"].Value, `\n`, "\n")
	monofont.Draw(d, f, text, image.Pt(1, 1), monofont.TextStyle{Color: color.White})
	if _, err := d.WriteTo(os.Stdout); err != nil {
		fatalf("%v", err)
	}
}

func runDump(args map[string]commando.ArgValue, _ map[string]commando.FlagValue) {
	size, err := monofont.ParseSize(args["size"].Value)
	if err != nil {
		fatalf("%v", err)
	}
	if err := dump(os.Stdout, fonts.Get(size), args["text"].Value); err != nil {
		fatalf("%v", err)
	}
}

// dump prints every character of text as its cell, with the baseline
// marked by '>'.
func dump(w io.Writer, f *monofont.Font, text string) error {
	var sb strings.Builder
	for _, r := range text {
		idx := monofont.GlyphIndex(r)
		name := runenames.Name(r)
		if name == "" {
			name = "<unnamed>"
		}
		fmt.Fprintf(&sb, "%U %s, index %d", r, name, idx)
		if !monofont.IsRepresentable(r) {
			sb.WriteString(" (fallback)")
		}
		sb.WriteByte('\n')

		g := f.Glyph(r)
		for y := 0; y < g.Height(); y++ {
			if y == f.Baseline {
				sb.WriteString("> ")
			} else {
				sb.WriteString("  ")
			}
			for x := 0; x < g.Width(); x++ {
				if g.Bit(x, y) {
					sb.WriteString("##")
				} else {
					sb.WriteString("..")
				}
			}
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// scale enlarges img by an integer factor without smoothing.
func scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func writePNG(path string, img image.Image) error {
	return export.WriteFileAtomic(path, func(w io.Writer) error {
		return export.Encode(w, img, export.FormatPNG)
	})
}
