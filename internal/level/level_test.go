package level_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jchantrell/wadex/internal/level"
	"github.com/jchantrell/wadex/internal/meta"
	"github.com/jchantrell/wadex/internal/wad"
	"github.com/jchantrell/wadex/internal/wad/wadtest"
)

// square is a one-sector room made of four one-sided lines.
func square(b *wadtest.Builder, name string) *wadtest.Builder {
	return b.Marker(name).
		Records("THINGS", []level.Thing{
			{X: 32, Y: 32, Angle: 90, Type: 1, Flags: level.ThingEasy | level.ThingMedium | level.ThingHard},
			{X: 64, Y: 64, Type: 2028, Flags: level.ThingHard},
		}).
		Records("LINEDEFS", []level.Linedef{
			{StartVertex: 0, EndVertex: 1, Flags: level.LineBlocking, RightSide: 0, LeftSide: level.NoSide},
			{StartVertex: 1, EndVertex: 2, Flags: level.LineBlocking, RightSide: 1, LeftSide: level.NoSide},
			{StartVertex: 2, EndVertex: 3, Flags: level.LineBlocking, RightSide: 2, LeftSide: level.NoSide},
			{StartVertex: 3, EndVertex: 0, Flags: level.LineBlocking, RightSide: 3, LeftSide: level.NoSide},
		}).
		Records("SIDEDEFS", []level.Sidedef{
			{MiddleTexture: wad.MustName("STARTAN3")},
			{MiddleTexture: wad.MustName("STARTAN3")},
			{MiddleTexture: wad.MustName("STARTAN3")},
			{MiddleTexture: wad.MustName("STARTAN3")},
		}).
		Records("VERTEXES", []level.Vertex{{0, 0}, {0, 128}, {128, 128}, {128, 0}}).
		Records("SEGS", []level.Seg{
			{StartVertex: 0, EndVertex: 1, Linedef: 0},
			{StartVertex: 1, EndVertex: 2, Linedef: 1},
			{StartVertex: 2, EndVertex: 3, Linedef: 2},
			{StartVertex: 3, EndVertex: 0, Linedef: 3},
		}).
		Records("SSECTORS", []level.SubSector{{NumSegs: 4, FirstSeg: 0}}).
		Marker("NODES").
		Records("SECTORS", []level.Sector{{
			FloorHeight:    0,
			CeilingHeight:  128,
			FloorTexture:   wad.MustName("FLOOR4_8"),
			CeilingTexture: wad.MustName("F_SKY1"),
			Light:          160,
		}}).
		Marker("REJECT").
		Marker("BLOCKMAP")
}

func openArchive(t *testing.T, b *wadtest.Builder, m *meta.Metadata) *wad.Archive {
	t.Helper()
	data := b.Bytes()
	a, err := wad.New(bytes.NewReader(data), int64(len(data)), m)
	require.NoError(t, err)
	return a
}

func TestLoad(t *testing.T) {
	t.Parallel()

	m, err := meta.ParseTOML([]byte(`
[[sky]]
level_pattern = "E1M."
texture_name = "SKY1"
tiled_band_size = 0.15
`))
	require.NoError(t, err)

	b := square(square(wadtest.New().Lump("PLAYPAL", make([]byte, 768)), "E1M1"), "MAP01")
	a := openArchive(t, b, m)
	require.Equal(t, 2, a.NumLevels())

	lvl, err := level.Load(a, 0)
	require.NoError(t, err)

	assert.Equal(t, "E1M1", lvl.Name)
	require.Len(t, lvl.Things, 2)
	assert.Equal(t, uint16(2028), lvl.Things[1].Type)
	assert.Len(t, lvl.Linedefs, 4)
	assert.Len(t, lvl.Sidedefs, 4)
	assert.Equal(t, "STARTAN3", lvl.Sidedefs[2].MiddleTexture.String())
	assert.Equal(t, level.Vertex{X: 128, Y: 128}, lvl.Vertices[2])
	assert.Len(t, lvl.Segs, 4)
	assert.Len(t, lvl.SubSectors, 1)
	assert.Empty(t, lvl.Nodes)
	require.Len(t, lvl.Sectors, 1)
	assert.Equal(t, "F_SKY1", lvl.Sectors[0].CeilingTexture.String())
	require.NotNil(t, lvl.Sky)
	assert.Equal(t, "SKY1", lvl.Sky.TextureName)
	require.NoError(t, lvl.Validate())

	other, err := level.LoadByName(a, "map01")
	require.NoError(t, err)
	assert.Equal(t, "MAP01", other.Name)
	assert.Nil(t, other.Sky)
}

func TestLoadByNameMissing(t *testing.T) {
	t.Parallel()

	a := openArchive(t, square(wadtest.New(), "E1M1"), nil)
	_, err := level.LoadByName(a, "E2M1")
	require.ErrorIs(t, err, wad.ErrLumpNotFound)
}

func TestLoadMissingLump(t *testing.T) {
	t.Parallel()

	a := openArchive(t, wadtest.New().
		Marker("E1M1").
		Records("THINGS", make([]level.Thing, 1)).
		Records("SIDEDEFS", make([]level.Sidedef, 1)), nil)

	_, err := level.Load(a, 0)
	require.ErrorIs(t, err, level.ErrMissingLump)
	assert.Contains(t, err.Error(), "LINEDEFS")
}

func TestLoadTruncatedLevel(t *testing.T) {
	t.Parallel()

	a := openArchive(t, wadtest.New().Marker("E1M1").Records("THINGS", make([]level.Thing, 1)), nil)
	_, err := level.Load(a, 0)
	require.ErrorIs(t, err, level.ErrMissingLump)
}

func TestLoadMisalignedLump(t *testing.T) {
	t.Parallel()

	a := openArchive(t, wadtest.New().
		Marker("E1M1").
		Lump("THINGS", make([]byte, 11)), nil)

	_, err := level.Load(a, 0)
	require.ErrorIs(t, err, wad.ErrSizeMismatch)
}

func TestValidateBadReferences(t *testing.T) {
	t.Parallel()

	lvl := &level.Level{
		Vertices: []level.Vertex{{0, 0}, {1, 1}},
		Linedefs: []level.Linedef{{StartVertex: 0, EndVertex: 5, LeftSide: level.NoSide}},
	}
	require.ErrorIs(t, lvl.Validate(), level.ErrBadReference)

	lvl = &level.Level{
		Vertices: []level.Vertex{{0, 0}, {1, 1}},
		Linedefs: []level.Linedef{{StartVertex: 0, EndVertex: 1, RightSide: 3, LeftSide: level.NoSide}},
	}
	require.ErrorIs(t, lvl.Validate(), level.ErrBadReference)

	lvl = &level.Level{
		SubSectors: []level.SubSector{{NumSegs: 1}},
		Nodes:      []level.Node{{RightChild: 0x8000, LeftChild: 0x8001}},
	}
	require.ErrorIs(t, lvl.Validate(), level.ErrBadReference)
}

func TestNodeChildren(t *testing.T) {
	t.Parallel()

	assert.True(t, level.ChildIsSubSector(0x8003))
	assert.Equal(t, 3, level.ChildIndex(0x8003))
	assert.False(t, level.ChildIsSubSector(7))
	assert.Equal(t, 7, level.ChildIndex(7))
}

func TestLinedefIsTwoSided(t *testing.T) {
	t.Parallel()

	assert.True(t, level.Linedef{Flags: level.LineTwoSided, LeftSide: 1}.IsTwoSided())
	assert.False(t, level.Linedef{Flags: level.LineTwoSided, LeftSide: level.NoSide}.IsTwoSided())
	assert.False(t, level.Linedef{LeftSide: 1}.IsTwoSided())
}

func TestLumpRange(t *testing.T) {
	t.Parallel()

	b := square(wadtest.New().Lump("PLAYPAL", make([]byte, 768)), "E1M1")
	a := openArchive(t, square(b.Lump("DEMO1", []byte{1}), "E1M2"), nil)

	start, end := level.LumpRange(a, 0)
	assert.Equal(t, 1, start)
	assert.Equal(t, 12, end)
	assert.Equal(t, "BLOCKMAP", a.LumpName(end-1).String())

	start, end = level.LumpRange(a, 1)
	assert.Equal(t, 13, start)
	assert.Equal(t, a.NumLumps(), end)
}
