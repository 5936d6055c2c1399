package wad

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jchantrell/wadex/internal/meta"
)

// Archive is an opened WAD with its directory, levels and metadata.
//
// Lump reads are positioned reads against the underlying io.ReaderAt, so an
// Archive carries no cursor. It is safe for concurrent reads whenever its
// ReaderAt is, which holds for archives returned by Open.
type Archive struct {
	r       io.ReaderAt
	closer  io.Closer
	size    int64 // -1 when unknown
	header  Header
	catalog *Catalog
	levels  []int
	meta    *meta.Metadata
}

// Open opens the WAD at wadPath and the metadata at metaPath. On error
// nothing is left open and no Archive is returned.
func Open(wadPath, metaPath string) (*Archive, error) {
	archive, err := OpenWithMetadata(wadPath, nil)
	if err != nil {
		return nil, err
	}

	metadata, err := meta.Load(metaPath)
	if err != nil {
		archive.Close()
		return nil, fmt.Errorf("loading metadata for %s: %w", wadPath, err)
	}
	archive.meta = metadata

	return archive, nil
}

// OpenWithMetadata opens the WAD at wadPath with already loaded metadata,
// which may be nil.
func OpenWithMetadata(wadPath string, metadata *meta.Metadata) (*Archive, error) {
	slog.Info("Loading WAD file", "path", wadPath)

	file, err := os.Open(wadPath)
	if err != nil {
		return nil, fmt.Errorf("opening WAD file %s: %w", wadPath, err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat WAD file %s: %w", wadPath, err)
	}

	archive, err := New(file, stat.Size(), metadata)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("invalid WAD file %s: %w", wadPath, err)
	}
	archive.closer = file

	slog.Info("WAD file loaded",
		"variant", archive.header.Variant,
		"lumps", archive.catalog.Len(),
		"levels", len(archive.levels))

	return archive, nil
}

// New builds an Archive over r, which holds size bytes. Pass a negative size
// to disable lump bounds checks. The caller keeps ownership of r.
func New(r io.ReaderAt, size int64, metadata *meta.Metadata) (*Archive, error) {
	archive, err := parse(r, size)
	if err != nil {
		return nil, err
	}
	if metadata == nil {
		metadata = &meta.Metadata{}
	}
	archive.meta = metadata
	return archive, nil
}

func parse(r io.ReaderAt, size int64) (*Archive, error) {
	header, err := ParseHeader(r)
	if err != nil {
		return nil, err
	}

	lumps, err := ParseDirectory(r, header)
	if err != nil {
		return nil, err
	}

	levels, err := findLevels(lumps)
	if err != nil {
		return nil, err
	}

	if size < 0 {
		size = -1
	}

	slog.Debug("WAD directory parsed",
		"variant", header.Variant,
		"lump_count", len(lumps),
		"level_count", len(levels))

	return &Archive{
		r:       r,
		size:    size,
		header:  header,
		catalog: NewCatalog(lumps),
		levels:  levels,
	}, nil
}

// Close releases the underlying file, if the Archive owns one.
func (a *Archive) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	if err != nil {
		return fmt.Errorf("closing WAD file: %w", err)
	}
	return nil
}

// Header returns the parsed container header.
func (a *Archive) Header() Header {
	return a.header
}

// Catalog returns the lump directory.
func (a *Archive) Catalog() *Catalog {
	return a.catalog
}

// Metadata returns the metadata bound to this archive.
func (a *Archive) Metadata() *meta.Metadata {
	return a.meta
}

// NumLumps returns the number of directory entries.
func (a *Archive) NumLumps() int {
	return a.catalog.Len()
}

// LumpIndex returns the position of the lump called name. With duplicate
// names the last one in the directory is returned.
func (a *Archive) LumpIndex(name string) (int, bool) {
	return a.catalog.Index(name)
}

// LumpName returns the canonical name of lump i. It panics if i is out of range.
func (a *Archive) LumpName(i int) Name {
	return a.catalog.Name(i)
}

// IsVirtualLump reports whether lump i is a zero-length marker.
func (a *Archive) IsVirtualLump(i int) bool {
	return a.catalog.IsVirtual(i)
}

// NumLevels returns the number of levels found in the directory.
func (a *Archive) NumLevels() int {
	return len(a.levels)
}

// LevelLumpIndex returns the position of the header lump of level l.
// It panics if l is out of range.
func (a *Archive) LevelLumpIndex(l int) int {
	if l < 0 || l >= len(a.levels) {
		panic(fmt.Sprintf("wad: level index %d out of range [0, %d)", l, len(a.levels)))
	}
	return a.levels[l]
}

// LevelName returns the name of the header lump of level l, e.g. E1M1.
func (a *Archive) LevelName(l int) Name {
	return a.catalog.Name(a.LevelLumpIndex(l))
}

// LevelIndex finds the level whose header lump is called name.
func (a *Archive) LevelIndex(name string) (int, bool) {
	n, err := ParseName(name)
	if err != nil {
		return 0, false
	}
	for l, pos := range a.levels {
		if a.catalog.Name(pos) == n {
			return l, true
		}
	}
	return 0, false
}
