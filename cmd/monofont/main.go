// Command monofont generates monospace bitmap font variants and inspects
// the built-in ones.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/thatisuday/commando"

	"github.com/gogpu/monofont"
)

// none marks an unset string flag.
const none = "-"

func main() {
	commando.
		SetExecutableName("monofont").
		SetVersion("v0.1.0").
		SetDescription("Generate and inspect monospace bitmap font glyph sheets.")

	commando.
		Register("generate").
		SetShortDescription("generate one variant from a font").
		SetDescription("Rasterize the 191 character repertoire of a font at one pixel size and write the raw sheet, a Go source file and a preview.").
		AddArgument("font", "font file (OTB, TTF, OTF or BDF)", "").
		AddArgument("ppem", "pixels per em, the strike size of bitmap fonts", "").
		AddFlag("name,n", "exported variable name (default Font<ppem>)", commando.String, none).
		AddFlag("out,o", "output directory", commando.String, ".").
		AddFlag("package,p", "package clause of the generated Go file", commando.String, "fonts").
		AddFlag("spacing,s", "character spacing (default from the size table, else 0)", commando.Int, -1).
		AddFlag("advance,a", "cell width override (default: the source advance)", commando.Int, 0).
		AddFlag("profont-fixes", "apply the known ProFont strike advance fixes", commando.Bool, nil).
		AddFlag("preview", "preview format: png, bmp, tiff or -", commando.String, "png").
		AddFlag("verbose,V", "log progress to stderr", commando.Bool, nil).
		SetAction(runGenerate)

	commando.
		Register("batch").
		SetShortDescription("generate variants from a manifest").
		SetDescription("Generate every variant listed in a YAML manifest. Nothing is written unless all variants succeed.").
		AddArgument("manifest", "YAML manifest path", "").
		AddFlag("verbose,V", "log progress to stderr", commando.Bool, nil).
		SetAction(runBatch)

	commando.
		Register("debugger").
		SetShortDescription("render every built-in size").
		SetDescription("Draw a sample line in every built-in size with its baseline marked in red.").
		AddFlag("underline,u", "underline the samples", commando.Bool, nil).
		AddFlag("strikethrough,s", "strike through the samples", commando.Bool, nil).
		AddFlag("scale", "pixel scale of the output", commando.Int, 2).
		AddFlag("no-gui-scaling", "write at scale 1", commando.Bool, nil).
		AddFlag("out,o", "PNG output path", commando.String, "debugger.png").
		AddFlag("pdf", "also write a PDF specimen to this path", commando.String, none).
		AddFlag("verbose,V", "log progress to stderr", commando.Bool, nil).
		SetAction(runDebugger)

	commando.
		Register("hello").
		SetShortDescription("draw Hello world!").
		SetDescription("Draw \"Hello world!\" in the 12pt variant with the top baseline and write a PNG.").
		AddFlag("out,o", "PNG output path", commando.String, "hello.png").
		AddFlag("scale", "pixel scale of the output", commando.Int, 4).
		SetAction(runHello)

	commando.
		Register("mock-display").
		SetShortDescription("render to a 1-bit display").
		SetDescription("Render text in the 7pt variant into a 128x64 monochrome framebuffer and print it.").
		AddArgument("text", "text to display", "Hello world!").
		SetAction(runMockDisplay)

	commando.
		Register("dump").
		SetShortDescription("print glyph cells").
		SetDescription("Print the cells of a built-in size as ASCII art with their index and Unicode name.").
		AddArgument("size", "point size: 7, 9, 10, 12, 14, 18 or 24", "").
		AddArgument("text", "characters to dump", "Ag?").
		SetAction(runDump)

	commando.Parse(nil)
}

// setupLogging routes library logs to stderr: warnings only, or
// everything down to debug when verbose.
func setupLogging(flags map[string]commando.FlagValue) {
	level := slog.LevelWarn
	if v, ok := flags["verbose"]; ok && mustFlagBool(v, "verbose") {
		level = slog.LevelDebug
	}
	monofont.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return s
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "monofont: "+format+"\n", args...)
	os.Exit(1)
}
