package monofont

import (
	"errors"
	"testing"
)

func TestSizes(t *testing.T) {
	want := []int{7, 9, 10, 12, 14, 18, 24}
	got := Sizes()
	if len(got) != len(want) {
		t.Fatalf("len(Sizes()) = %d, want %d", len(got), len(want))
	}
	for i, s := range got {
		if s.Point() != want[i] {
			t.Errorf("Sizes()[%d].Point() = %d, want %d", i, s.Point(), want[i])
		}
		if s.PixelSize() <= s.Point() {
			t.Errorf("%v: PixelSize() = %d, want more than the point size", s, s.PixelSize())
		}
	}
}

func TestSize_String(t *testing.T) {
	if got := Size12Point.String(); got != "12pt" {
		t.Errorf("String() = %q, want 12pt", got)
	}
	if got := Size(99).String(); got != "Size(99)" {
		t.Errorf("String() = %q, want Size(99)", got)
	}
	if Size(99).Valid() || Size(99).PixelSize() != 0 {
		t.Error("out of range size should be invalid")
	}
}

func TestSize_Spacing(t *testing.T) {
	for _, s := range Sizes() {
		want := 0
		if s == Size10Point || s == Size12Point {
			want = 1
		}
		if s.Spacing() != want {
			t.Errorf("%v.Spacing() = %d, want %d", s, s.Spacing(), want)
		}
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want Size
	}{
		{"7", Size7Point},
		{"12pt", Size12Point},
		{" 24 ", Size24Point},
	}
	for _, tt := range tests {
		got, err := ParseSize(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseSize(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	for _, in := range []string{"8", "big", ""} {
		if _, err := ParseSize(in); !errors.Is(err, ErrUnknownSize) {
			t.Errorf("ParseSize(%q) error = %v, want ErrUnknownSize", in, err)
		}
	}
}
