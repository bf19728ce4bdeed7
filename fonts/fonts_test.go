package fonts

import (
	"errors"
	"sync"
	"testing"

	"github.com/gogpu/monofont"
)

func TestGet(t *testing.T) {
	for _, size := range monofont.Sizes() {
		t.Run(size.String(), func(t *testing.T) {
			f := Get(size)
			if err := f.Validate(); err != nil {
				t.Fatalf("Validate() = %v", err)
			}
			if f.CharacterSpacing != size.Spacing() {
				t.Errorf("CharacterSpacing = %d, want %d", f.CharacterSpacing, size.Spacing())
			}
			if f.CharacterSize.Y < size.PixelSize() {
				t.Errorf("cell height %d smaller than %d pixels per em", f.CharacterSize.Y, size.PixelSize())
			}
			if f.Glyph('M').Empty() {
				t.Error("glyph M is blank")
			}
			if Get(size) != f {
				t.Error("Get should return the same variant every time")
			}
		})
	}
}

func TestGet_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	got := make([]*monofont.Font, 8)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = Get(monofont.Size10Point)
		}()
	}
	wg.Wait()
	for i := range got {
		if got[i] != got[0] {
			t.Fatalf("goroutine %d got a different variant", i)
		}
	}
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(monofont.Size(42))
	if !errors.Is(err, monofont.ErrUnknownSize) {
		t.Errorf("Load(42) error = %v, want ErrUnknownSize", err)
	}
	defer func() {
		if recover() == nil {
			t.Error("Get should panic on an invalid size")
		}
	}()
	Get(monofont.Size(42))
}

func TestAll(t *testing.T) {
	all := All()
	if len(all) != len(monofont.Sizes()) {
		t.Fatalf("len(All()) = %d, want %d", len(all), len(monofont.Sizes()))
	}
	for i := 1; i < len(all); i++ {
		if all[i].CharacterSize.Y < all[i-1].CharacterSize.Y {
			t.Errorf("variant %d is smaller than variant %d", i, i-1)
		}
	}
}
