package export

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jchantrell/wadex/internal/wad"
	"github.com/jchantrell/wadex/internal/wad/wadtest"
)

func openArchive(t *testing.T, b *wadtest.Builder) *wad.Archive {
	t.Helper()
	data := b.Bytes()
	a, err := wad.New(bytes.NewReader(data), int64(len(data)), nil)
	require.NoError(t, err)
	return a
}

func TestExportLumps(t *testing.T) {
	palette := make([]byte, 768)
	for i := range 256 {
		palette[i*3] = byte(i)
	}

	a := openArchive(t, wadtest.New().
		Lump("PLAYPAL", palette).
		Lump("VILE\\1", []byte{1, 2, 3}).
		Marker("S_START"))

	outputDir := t.TempDir()
	exporter := NewExporter(a, outputDir)

	var calls []string
	n, err := exporter.ExportLumps([]Selection{
		{Indices: []int{0, 1}},
		{Dir: "markers", Indices: []int{2}},
	}, func(current, total int, description string) {
		assert.Equal(t, 3, total)
		calls = append(calls, description)
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"PLAYPAL", "VILE\\1", "S_START"}, calls)

	raw, err := os.ReadFile(filepath.Join(outputDir, "0001_VILE^1.lmp"))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, raw)

	marker, err := os.ReadFile(filepath.Join(outputDir, "markers", "0002_S_START.lmp"))
	require.NoError(t, err)
	assert.Empty(t, marker)

	f, err := os.Open(filepath.Join(outputDir, "0000_PLAYPAL.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 16*swatchSize, img.Bounds().Dx())
	assert.Equal(t, 16*swatchSize, img.Bounds().Dy())

	r, _, _, _ := img.At(swatchSize*5, 0).RGBA()
	assert.Equal(t, uint32(5*0x101), r)
}

func TestExportLumpsEmpty(t *testing.T) {
	a := openArchive(t, wadtest.New().Marker("A"))
	n, err := NewExporter(a, t.TempDir()).ExportLumps(nil, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestExportLumpsReadFailure(t *testing.T) {
	a := openArchive(t, wadtest.New().
		Lump("OK", []byte{1}).
		Entry("BROKEN", 1<<20, 4))

	n, err := NewExporter(a, t.TempDir()).ExportLumps([]Selection{{Indices: []int{0, 1}}}, nil)
	require.ErrorIs(t, err, wad.ErrLumpOutOfBounds)
	assert.Equal(t, 1, n)
}

func TestConvertEndoom(t *testing.T) {
	data := make([]byte, 4000)
	for i, c := range []byte("Thanks for playing") {
		data[i*2] = c
		data[i*2+1] = 0x4f
	}
	data[2*80] = 0x01

	base := filepath.Join(t.TempDir(), "0000_ENDOOM")
	require.NoError(t, convertLump("ENDOOM", data, base))

	text, err := os.ReadFile(base + ".txt")
	require.NoError(t, err)
	lines := strings.Split(string(text), "\n")
	assert.Equal(t, "Thanks for playing", lines[0])
	assert.Equal(t, "", lines[1])
	assert.Len(t, lines, 26)
}

func TestConvertRejectsBadSizes(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, convertLump("PLAYPAL", make([]byte, 100), filepath.Join(dir, "p")))
	assert.Error(t, convertLump("ENDOOM", make([]byte, 10), filepath.Join(dir, "e")))
	assert.NoError(t, convertLump("DEMO1", []byte{1}, filepath.Join(dir, "d")))
	_, err := os.Stat(filepath.Join(dir, "d.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "VILE^1", sanitizeName(`VILE\1`))
	assert.Equal(t, "A^B_C", sanitizeName("A/B:C"))
	assert.Equal(t, "E1M1", sanitizeName("E1M1"))
	assert.Equal(t, "_", sanitizeName(".."))
	assert.Equal(t, "_", sanitizeName("."))
	assert.Equal(t, "_", sanitizeName(""))
	assert.Equal(t, "^..^x", sanitizeName("/../x"))
}

func TestExportLumpsStaysInOutputDir(t *testing.T) {
	a := openArchive(t, wadtest.New().
		Level("..", []wadtest.Thing{{Type: 1}}, []wadtest.Linedef{{}}))

	root := t.TempDir()
	outputDir := filepath.Join(root, "lumps")
	n, err := NewExporter(a, outputDir).ExportLumps([]Selection{
		{Dir: "..", Indices: []int{0, 1, 2}},
		{Dir: "../..", Indices: []int{1}},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	for _, name := range []string{"0000_...lmp", "0000__.lmp", "0001_THINGS.lmp", "0002_LINEDEFS.lmp"} {
		_, err := os.Stat(filepath.Join(root, name))
		assert.True(t, os.IsNotExist(err), "%s written outside the output directory", name)
	}

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "lumps", entries[0].Name())

	_, err = os.Stat(filepath.Join(outputDir, "_", "0001_THINGS.lmp"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(outputDir, "..^..", "0001_THINGS.lmp"))
	require.NoError(t, err)
}
