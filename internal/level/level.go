// Package level decodes the lumps that make up a single map.
package level

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jchantrell/wadex/internal/meta"
	"github.com/jchantrell/wadex/internal/wad"
)

var (
	// ErrMissingLump is returned when a level's lumps are not in the expected order.
	ErrMissingLump = errors.New("level: missing lump")

	// ErrBadReference is returned when a record refers to a record that does not exist.
	ErrBadReference = errors.New("level: bad reference")
)

// Lump positions relative to the level header lump.
const (
	thingsOffset = iota + 1
	linedefsOffset
	sidedefsOffset
	vertexesOffset
	segsOffset
	ssectorsOffset
	nodesOffset
	sectorsOffset
)

var lumpNames = map[int]string{
	thingsOffset:   "THINGS",
	linedefsOffset: "LINEDEFS",
	sidedefsOffset: "SIDEDEFS",
	vertexesOffset: "VERTEXES",
	segsOffset:     "SEGS",
	ssectorsOffset: "SSECTORS",
	nodesOffset:    "NODES",
	sectorsOffset:  "SECTORS",
}

// Level holds the decoded records of one map.
type Level struct {
	Name       string
	Things     []Thing
	Linedefs   []Linedef
	Sidedefs   []Sidedef
	Vertices   []Vertex
	Segs       []Seg
	SubSectors []SubSector
	Nodes      []Node
	Sectors    []Sector

	// Sky is the metadata sky for this level, nil when none matches.
	Sky *meta.Sky
}

// Load decodes level levelIndex of the archive.
func Load(a *wad.Archive, levelIndex int) (*Level, error) {
	start := a.LevelLumpIndex(levelIndex)
	name := a.LevelName(levelIndex).String()

	slog.Debug("Loading level", "level", name, "lump", start)

	lvl := &Level{Name: name}
	var err error
	if lvl.Things, err = readLevelLump[Thing](a, start, thingsOffset); err != nil {
		return nil, err
	}
	if lvl.Linedefs, err = readLevelLump[Linedef](a, start, linedefsOffset); err != nil {
		return nil, err
	}
	if lvl.Sidedefs, err = readLevelLump[Sidedef](a, start, sidedefsOffset); err != nil {
		return nil, err
	}
	if lvl.Vertices, err = readLevelLump[Vertex](a, start, vertexesOffset); err != nil {
		return nil, err
	}
	if lvl.Segs, err = readLevelLump[Seg](a, start, segsOffset); err != nil {
		return nil, err
	}
	if lvl.SubSectors, err = readLevelLump[SubSector](a, start, ssectorsOffset); err != nil {
		return nil, err
	}
	if lvl.Nodes, err = readLevelLump[Node](a, start, nodesOffset); err != nil {
		return nil, err
	}
	if lvl.Sectors, err = readLevelLump[Sector](a, start, sectorsOffset); err != nil {
		return nil, err
	}

	if sky, ok := a.Metadata().SkyFor(name); ok {
		lvl.Sky = sky
	}

	slog.Debug("Level loaded",
		"level", name,
		"things", len(lvl.Things),
		"linedefs", len(lvl.Linedefs),
		"sectors", len(lvl.Sectors))

	return lvl, nil
}

// LoadByName decodes the level whose header lump is called name.
func LoadByName(a *wad.Archive, name string) (*Level, error) {
	l, ok := a.LevelIndex(name)
	if !ok {
		return nil, fmt.Errorf("level %s: %w", name, wad.ErrLumpNotFound)
	}
	return Load(a, l)
}

func readLevelLump[T any](a *wad.Archive, start, offset int) ([]T, error) {
	want := lumpNames[offset]
	i := start + offset
	if i >= a.NumLumps() || a.LumpName(i).String() != want {
		return nil, fmt.Errorf("%w: %s expected at lump %d of level %s",
			ErrMissingLump, want, i, a.LumpName(start))
	}

	// A map may legitimately have no records of a kind, e.g. an empty NODES lump
	if a.IsVirtualLump(i) {
		return nil, nil
	}

	records, err := wad.ReadLump[T](a, i)
	if err != nil {
		return nil, fmt.Errorf("reading %s of level %s: %w", want, a.LumpName(start), err)
	}
	return records, nil
}

// SubSectorSegs returns the segs of subsector ss.
func (l *Level) SubSectorSegs(ss SubSector) ([]Seg, error) {
	first, end := int(ss.FirstSeg), int(ss.FirstSeg)+int(ss.NumSegs)
	if end > len(l.Segs) {
		return nil, fmt.Errorf("%w: subsector segs [%d, %d) of %d", ErrBadReference, first, end, len(l.Segs))
	}
	return l.Segs[first:end], nil
}

// SegVertices returns the endpoints of seg.
func (l *Level) SegVertices(seg Seg) (Vertex, Vertex, error) {
	if int(seg.StartVertex) >= len(l.Vertices) || int(seg.EndVertex) >= len(l.Vertices) {
		return Vertex{}, Vertex{}, fmt.Errorf("%w: seg vertices %d, %d of %d",
			ErrBadReference, seg.StartVertex, seg.EndVertex, len(l.Vertices))
	}
	return l.Vertices[seg.StartVertex], l.Vertices[seg.EndVertex], nil
}

// SegLinedef returns the linedef seg lies on.
func (l *Level) SegLinedef(seg Seg) (*Linedef, error) {
	if int(seg.Linedef) >= len(l.Linedefs) {
		return nil, fmt.Errorf("%w: linedef %d of %d", ErrBadReference, seg.Linedef, len(l.Linedefs))
	}
	return &l.Linedefs[seg.Linedef], nil
}

// Sides returns the right and left sidedefs of line. Left is nil for one-sided lines.
func (l *Level) Sides(line *Linedef) (right, left *Sidedef, err error) {
	side := func(i uint16) (*Sidedef, error) {
		if i == NoSide {
			return nil, nil
		}
		if int(i) >= len(l.Sidedefs) {
			return nil, fmt.Errorf("%w: sidedef %d of %d", ErrBadReference, i, len(l.Sidedefs))
		}
		return &l.Sidedefs[i], nil
	}
	if right, err = side(line.RightSide); err != nil {
		return nil, nil, err
	}
	if left, err = side(line.LeftSide); err != nil {
		return nil, nil, err
	}
	return right, left, nil
}

// SideSector returns the sector a sidedef faces.
func (l *Level) SideSector(side *Sidedef) (*Sector, error) {
	if int(side.Sector) >= len(l.Sectors) {
		return nil, fmt.Errorf("%w: sector %d of %d", ErrBadReference, side.Sector, len(l.Sectors))
	}
	return &l.Sectors[side.Sector], nil
}

// Validate checks that every cross-record reference is in range.
func (l *Level) Validate() error {
	for i, line := range l.Linedefs {
		if int(line.StartVertex) >= len(l.Vertices) || int(line.EndVertex) >= len(l.Vertices) {
			return fmt.Errorf("%w: linedef %d vertices %d, %d of %d",
				ErrBadReference, i, line.StartVertex, line.EndVertex, len(l.Vertices))
		}
		if _, _, err := l.Sides(&l.Linedefs[i]); err != nil {
			return fmt.Errorf("linedef %d: %w", i, err)
		}
	}
	for i := range l.Sidedefs {
		if _, err := l.SideSector(&l.Sidedefs[i]); err != nil {
			return fmt.Errorf("sidedef %d: %w", i, err)
		}
	}
	for i, seg := range l.Segs {
		if _, _, err := l.SegVertices(seg); err != nil {
			return fmt.Errorf("seg %d: %w", i, err)
		}
		if _, err := l.SegLinedef(seg); err != nil {
			return fmt.Errorf("seg %d: %w", i, err)
		}
	}
	for i, ss := range l.SubSectors {
		if _, err := l.SubSectorSegs(ss); err != nil {
			return fmt.Errorf("subsector %d: %w", i, err)
		}
	}
	for i, n := range l.Nodes {
		for _, child := range []uint16{n.RightChild, n.LeftChild} {
			limit := len(l.Nodes)
			if ChildIsSubSector(child) {
				limit = len(l.SubSectors)
			}
			if ChildIndex(child) >= limit {
				return fmt.Errorf("%w: node %d child %#x", ErrBadReference, i, child)
			}
		}
	}
	return nil
}

// mapLumps are the names that may follow a level header lump.
var mapLumps = map[string]bool{
	"THINGS":   true,
	"LINEDEFS": true,
	"SIDEDEFS": true,
	"VERTEXES": true,
	"SEGS":     true,
	"SSECTORS": true,
	"NODES":    true,
	"SECTORS":  true,
	"REJECT":   true,
	"BLOCKMAP": true,
	"BEHAVIOR": true,
}

// LumpRange returns the half-open range of lump positions belonging to level
// levelIndex: its header lump and every map lump that directly follows it.
func LumpRange(a *wad.Archive, levelIndex int) (start, end int) {
	start = a.LevelLumpIndex(levelIndex)
	end = start + 1
	for end < a.NumLumps() && mapLumps[a.LumpName(end).String()] {
		end++
	}
	return start, end
}
