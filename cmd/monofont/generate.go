package main

import (
	"context"
	"fmt"
	"maps"
	"os"
	"strconv"
	"strings"

	"github.com/thatisuday/commando"

	"github.com/gogpu/monofont"
	"github.com/gogpu/monofont/batch"
	"github.com/gogpu/monofont/export"
	"github.com/gogpu/monofont/sheet"
)

type generateConfig struct {
	name    string
	out     string
	pkg     string
	spacing int // negative: from the size table
	advance int // zero: source advance
	preview string

	// profontFixes applies sheet.ProFontAdvanceOverrides.
	profontFixes bool
}

func runGenerate(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupLogging(flags)
	ppem, err := strconv.Atoi(strings.TrimSpace(args["ppem"].Value))
	if err != nil {
		fatalf("invalid pixel size %q", args["ppem"].Value)
	}
	cfg := generateConfig{
		name:    mustFlagString(flags["name"], "name"),
		out:     mustFlagString(flags["out"], "out"),
		pkg:     mustFlagString(flags["package"], "package"),
		spacing: mustFlagInt(flags["spacing"], "spacing"),
		advance: mustFlagInt(flags["advance"], "advance"),
		preview: mustFlagString(flags["preview"], "preview"),

		profontFixes: mustFlagBool(flags["profont-fixes"], "profont-fixes"),
	}
	written, f, err := generate(args["font"].Value, ppem, cfg)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("Wrote %s with character size of %dx%d\n", written.Raw, f.CharacterSize.X, f.CharacterSize.Y)
}

func generate(path string, ppem int, cfg generateConfig) (export.Written, *monofont.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return export.Written{}, nil, fmt.Errorf("%w: %w", sheet.ErrSourceUnreadable, err)
	}
	face, err := sheet.Open(data, ppem)
	if err != nil {
		return export.Written{}, nil, err
	}

	opts := sheet.DefaultOptions()
	opts.Spacing = cfg.spacing
	if opts.Spacing < 0 {
		opts.Spacing = tableSpacing(ppem)
	}
	opts.AdvanceOverrides = map[int]int{}
	if cfg.profontFixes {
		opts.AdvanceOverrides = maps.Clone(sheet.ProFontAdvanceOverrides)
	}
	if cfg.advance > 0 {
		opts.AdvanceOverrides[ppem] = cfg.advance
	}
	// Warnings reach stderr through the library logger.
	f, _, err := sheet.Generate(face, nil, opts)
	if err != nil {
		return export.Written{}, nil, err
	}

	name := cfg.name
	if name == none || name == "" {
		name = "Font" + strconv.Itoa(ppem)
	}
	eopts := export.Options{Package: cfg.pkg, PreviewScale: 2}
	if cfg.preview != none && cfg.preview != "" {
		if eopts.Preview, err = export.ParseFormat(cfg.preview); err != nil {
			return export.Written{}, nil, err
		}
	}
	written, err := export.WriteVariant(cfg.out, name, f, eopts)
	if err != nil {
		return export.Written{}, nil, err
	}
	return written, f, nil
}

// tableSpacing returns the spacing of the standard size drawn at ppem, or
// zero when ppem is not a standard size.
func tableSpacing(ppem int) int {
	for _, s := range monofont.Sizes() {
		if s.PixelSize() == ppem {
			return s.Spacing()
		}
	}
	return 0
}

func runBatch(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupLogging(flags)
	m, err := batch.Load(args["manifest"].Value)
	if err != nil {
		fatalf("%v", err)
	}
	report, err := batch.Run(context.Background(), m)
	if err != nil {
		fatalf("%v", err)
	}
	for _, v := range report.Variants {
		fmt.Printf("Wrote %s with character size of %dx%d\n", v.Files.Raw, v.CharacterSize.X, v.CharacterSize.Y)
	}
	if report.Specimen != "" {
		fmt.Printf("Wrote %s\n", report.Specimen)
	}
}
