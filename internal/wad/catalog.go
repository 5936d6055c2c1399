package wad

import "fmt"

// Catalog is the ordered lump directory plus a name index.
// Directory order is significant: levels are found positionally.
// A Catalog is immutable once built and safe to share between goroutines.
type Catalog struct {
	lumps []LumpInfo
	index map[Name]int
}

// NewCatalog indexes entries by name. When several entries share a name,
// the last one in directory order wins the name lookup; every entry stays
// reachable by position.
func NewCatalog(entries []LumpInfo) *Catalog {
	index := make(map[Name]int, len(entries))
	for i, e := range entries {
		index[e.Name] = i
	}
	return &Catalog{
		lumps: entries,
		index: index,
	}
}

// Len returns the number of directory entries.
func (c *Catalog) Len() int {
	return len(c.lumps)
}

// Index returns the position of the lump called name.
func (c *Catalog) Index(name string) (int, bool) {
	n, err := ParseName(name)
	if err != nil {
		return 0, false
	}
	return c.IndexOf(n)
}

// IndexOf is like Index for an already parsed name.
func (c *Catalog) IndexOf(name Name) (int, bool) {
	i, ok := c.index[name.Canonical()]
	return i, ok
}

// At returns the directory entry at position i. It panics if i is out of range.
func (c *Catalog) At(i int) LumpInfo {
	if i < 0 || i >= len(c.lumps) {
		panic(fmt.Sprintf("wad: lump index %d out of range [0, %d)", i, len(c.lumps)))
	}
	return c.lumps[i]
}

// Name returns the canonical name of the lump at position i.
func (c *Catalog) Name(i int) Name {
	return c.At(i).Name
}

// IsVirtual reports whether the lump at position i is a zero-length marker.
func (c *Catalog) IsVirtual(i int) bool {
	return c.At(i).Size == 0
}

// findLevels returns the position of every level header lump, that is the
// entry immediately before each THINGS lump, in directory order.
func findLevels(entries []LumpInfo) ([]int, error) {
	levels := make([]int, 0, 32)
	for i, e := range entries {
		if e.Name != ThingsName {
			continue
		}
		if i == 0 {
			return nil, fmt.Errorf("%w: %s is the first lump", ErrMalformedLevelGroup, ThingsName)
		}
		levels = append(levels, i-1)
	}
	return levels, nil
}
