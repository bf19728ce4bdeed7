package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/monofont/sheet"
)

const testManifest = `
source: builtin:gomono
output: out
package: gomono
preview: png
specimen: specimen.pdf
workers: 2
advance_overrides: {16: 10}
variants:
  - {name: GoMono12, ppem: 12}
  - {name: GoMono16, ppem: 16, spacing: 1, sample: "Hello, wörld!"}
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(testManifest))
	require.NoError(t, err)

	assert.Equal(t, BuiltinGoMono, m.Source)
	assert.Equal(t, "out", m.Output)
	assert.Equal(t, "gomono", m.Package)
	assert.Equal(t, 2, m.PreviewScale, "default preview scale")
	assert.Equal(t, map[int]int{16: 10}, m.AdvanceOverrides)
	require.Len(t, m.Variants, 2)
	assert.Equal(t, Variant{Name: "GoMono16", PixelSize: 16, Spacing: 1, Sample: "Hello, wörld!"}, m.Variants[1])
}

func TestParse_Defaults(t *testing.T) {
	m, err := Parse([]byte("source: a.otb\nvariants: [{name: A, ppem: 9}]\n"))
	require.NoError(t, err)
	assert.Equal(t, ".", m.Output)
	assert.Equal(t, "fonts", m.Package)
	assert.Empty(t, m.Preview)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"empty", "", "Source"},
		{"no source", "variants: [{name: A, ppem: 9}]", "Source"},
		{"no variants", "source: a.otb", "Variants"},
		{"bad package", "source: a\npackage: my-fonts\nvariants: [{name: A, ppem: 9}]", "Package"},
		{"bad preview", "source: a\npreview: gif\nvariants: [{name: A, ppem: 9}]", "Preview"},
		{"workers", "source: a\nworkers: -1\nvariants: [{name: A, ppem: 9}]", "Workers"},
		{"override", "source: a\nadvance_overrides: {16: 0}\nvariants: [{name: A, ppem: 9}]", "AdvanceOverrides"},
		{"unexported", "source: a\nvariants: [{name: a, ppem: 9}]", "Variants[0].Name"},
		{"duplicate", "source: a\nvariants: [{name: A, ppem: 9}, {name: A, ppem: 10}]", "Variants[1].Name"},
		{"ppem", "source: a\nvariants: [{name: A, ppem: 2}]", "Variants[0].PixelSize"},
		{"spacing", "source: a\nvariants: [{name: A, ppem: 9, spacing: -1}]", "Variants[0].Spacing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			var me *ManifestError
			require.ErrorAs(t, err, &me)
			assert.Equal(t, tt.field, me.Field)
		})
	}

	_, err := Parse([]byte("source: a\nvariants: [{name: A, ppem: 9}]\ncolour: red\n"))
	assert.Error(t, err, "unknown fields are rejected")
}

func TestProFont(t *testing.T) {
	m := ProFont("profont.otb")
	require.NoError(t, m.Validate())
	require.Len(t, m.Variants, 7)
	assert.Equal(t, Variant{Name: "ProFont7Point", PixelSize: 9}, m.Variants[0])
	assert.Equal(t, Variant{Name: "ProFont12Point", PixelSize: 16, Spacing: 1}, m.Variants[3])
	assert.Equal(t, 10, m.AdvanceOverrides[16])

	m.AdvanceOverrides[16] = 11
	assert.Equal(t, 10, sheet.ProFontAdvanceOverrides[16], "manifest must not share the override table")
}

func TestLoad_Run(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fonts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testManifest), 0o644))

	m, err := Load(path)
	require.NoError(t, err)

	report, err := Run(context.Background(), m)
	require.NoError(t, err)
	require.Len(t, report.Variants, 2)

	out := filepath.Join(dir, "out")
	assert.Equal(t, filepath.Join(out, "specimen.pdf"), report.Specimen)
	assert.Equal(t, filepath.Join(out, "gomono16.raw"), report.Variants[1].Files.Raw)
	for _, p := range report.Paths() {
		assert.FileExists(t, p)
	}
	assert.Len(t, report.Paths(), 7)

	v16 := report.Variants[1]
	assert.Equal(t, 16, v16.PixelSize)
	assert.Equal(t, 10, v16.CharacterSize.X, "advance override")

	raw, err := os.ReadFile(v16.Files.Raw)
	require.NoError(t, err)
	assert.Len(t, raw, (10*32+7)/8*v16.CharacterSize.Y*6)
}

func TestRun_UnreadableSource(t *testing.T) {
	dir := t.TempDir()
	m, err := Parse([]byte("source: missing.otb\noutput: out\nvariants: [{name: A, ppem: 9}]\n"))
	require.NoError(t, err)
	m.dir = dir

	_, err = Run(context.Background(), m)
	assert.ErrorIs(t, err, sheet.ErrSourceUnreadable)
	assert.NoDirExists(t, filepath.Join(dir, "out"))
}

func TestRun_GenerationFailure(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.ttf"), []byte("not a font at all"), 0o644))

	m, err := Parse([]byte("source: junk.ttf\noutput: out\nvariants: [{name: A, ppem: 9}, {name: B, ppem: 10}]\n"))
	require.NoError(t, err)
	m.dir = dir

	_, err = Run(context.Background(), m)
	assert.ErrorIs(t, err, sheet.ErrSourceUnreadable)
	assert.NoDirExists(t, filepath.Join(dir, "out"), "failed runs write nothing")
}

func TestRun_WriteFailureRollsBack(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	// A directory in place of the second variant's Go file makes its
	// rename fail after the first variant is on disk.
	require.NoError(t, os.MkdirAll(filepath.Join(out, "b.go"), 0o755))

	m, err := Parse([]byte("source: builtin:gomono\noutput: out\nvariants: [{name: A, ppem: 9}, {name: B, ppem: 10}]\n"))
	require.NoError(t, err)
	m.dir = dir

	_, err = Run(context.Background(), m)
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(out, "a.raw"))
	assert.NoFileExists(t, filepath.Join(out, "a.go"))
	assert.NoFileExists(t, filepath.Join(out, "b.raw"))
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := ProFont(BuiltinGoMono)
	m.dir = t.TempDir()
	_, err := Run(ctx, m)
	assert.ErrorIs(t, err, context.Canceled)
}
