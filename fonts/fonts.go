// Package fonts provides ready-made variants for every monofont.Size,
// rendered from the Go Mono typeface on first use.
package fonts

import (
	"fmt"
	"sync"

	"golang.org/x/image/font/gofont/gomono"

	"github.com/gogpu/monofont"
	"github.com/gogpu/monofont/sheet"
)

type entry struct {
	once sync.Once
	font *monofont.Font
	err  error
}

// cache is indexed by size.
var cache [monofont.Size24Point + 1]entry

// Get returns the built-in variant for size. Variants are generated once
// and shared; callers must not modify them. Get panics if size is not
// valid.
func Get(size monofont.Size) *monofont.Font {
	f, err := Load(size)
	if err != nil {
		panic(err)
	}
	return f
}

// Load is like Get but returns an error instead of panicking.
func Load(size monofont.Size) (*monofont.Font, error) {
	if !size.Valid() {
		return nil, fmt.Errorf("fonts: %w: %v", monofont.ErrUnknownSize, size)
	}
	e := &cache[size]
	e.once.Do(func() {
		e.font, e.err = generate(size)
	})
	return e.font, e.err
}

// All returns the built-in variants in size order.
func All() []*monofont.Font {
	var out []*monofont.Font
	for _, s := range monofont.Sizes() {
		out = append(out, Get(s))
	}
	return out
}

func generate(size monofont.Size) (*monofont.Font, error) {
	face, err := sheet.NewOutlineFace(gomono.TTF, size.PixelSize())
	if err != nil {
		return nil, fmt.Errorf("fonts: %v: %w", size, err)
	}
	opts := sheet.DefaultOptions()
	opts.Spacing = size.Spacing()
	f, warnings, err := sheet.Generate(face, nil, opts)
	if err != nil {
		return nil, fmt.Errorf("fonts: %v: %w", size, err)
	}
	monofont.Logger().Debug("built-in variant ready", "size", size.String(), "warnings", len(warnings))
	return f, nil
}
