package assets_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jchantrell/wadex/internal/assets"
	"github.com/jchantrell/wadex/internal/wad"
	"github.com/jchantrell/wadex/internal/wad/wadtest"
)

func open(t *testing.T, b *wadtest.Builder) *wad.Archive {
	t.Helper()
	data := b.Bytes()
	a, err := wad.New(bytes.NewReader(data), int64(len(data)), nil)
	require.NoError(t, err)
	return a
}

func TestPalettes(t *testing.T) {
	t.Parallel()

	playpal := make([]byte, 2*768)
	playpal[3], playpal[4], playpal[5] = 10, 20, 30
	playpal[768] = 0xff

	a := open(t, wadtest.New().Lump("PLAYPAL", playpal))
	palettes, err := assets.Palettes(a)
	require.NoError(t, err)
	require.Len(t, palettes, 2)

	c := palettes[0].Color(1)
	assert.Equal(t, uint8(10), c.R)
	assert.Equal(t, uint8(20), c.G)
	assert.Equal(t, uint8(30), c.B)
	assert.Equal(t, uint8(0xff), c.A)
	assert.Equal(t, uint8(0xff), palettes[1][0][0])
}

func TestPalettesMisaligned(t *testing.T) {
	t.Parallel()

	a := open(t, wadtest.New().Lump("PLAYPAL", make([]byte, 700)))
	_, err := assets.Palettes(a)
	require.ErrorIs(t, err, wad.ErrSizeMismatch)
}

func TestColormaps(t *testing.T) {
	t.Parallel()

	data := make([]byte, 34*256)
	data[256+7] = 42

	a := open(t, wadtest.New().Lump("COLORMAP", data))
	maps, err := assets.Colormaps(a)
	require.NoError(t, err)
	require.Len(t, maps, 34)
	assert.Equal(t, uint8(42), maps[1][7])

	_, err = assets.Palettes(a)
	require.ErrorIs(t, err, wad.ErrLumpNotFound)
}

func TestEndoom(t *testing.T) {
	t.Parallel()

	data := make([]byte, 4000)
	for i, c := range []byte("DOOM") {
		data[2*i] = c
		data[2*i+1] = 0x4f
	}

	a := open(t, wadtest.New().Lump("ENDOOM", data))
	screen, err := assets.ReadEndoom(a)
	require.NoError(t, err)
	assert.Equal(t, uint8('D'), screen[0].Char)
	assert.Equal(t, uint8(0x4f), screen[0].Attr)

	lines := strings.Split(screen.Text(), "\n")
	assert.Equal(t, "DOOM", lines[0])
	assert.Len(t, lines, assets.EndoomHeight+1)
}

func TestEndoomWrongSize(t *testing.T) {
	t.Parallel()

	a := open(t, wadtest.New().Lump("ENDOOM", make([]byte, 8000)))
	_, err := assets.ReadEndoom(a)
	var sizeErr *wad.SizeError
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, wad.SizeExact, sizeErr.Kind)
	assert.Equal(t, 4000, sizeErr.Elem)

	_, err = assets.ReadEndoom(open(t, wadtest.New().Marker("X")))
	require.ErrorIs(t, err, wad.ErrLumpNotFound)
}
