package database

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/zeebo/blake3"

	"github.com/jchantrell/wadex/internal/level"
	"github.com/jchantrell/wadex/internal/wad"
)

// ProgressCallback is called once per processed lump
type ProgressCallback func(current int, total int, description string)

// IndexStats summarises a catalog build
type IndexStats struct {
	Lumps   int
	Levels  int
	Things  int
	Skipped int // lumps or levels that could not be read
}

// Indexer writes the contents of an archive into the catalog tables
type Indexer struct {
	db       *Database
	inserter *BulkInserter
}

// NewIndexer creates an indexer writing into db
func NewIndexer(db *Database, options *BulkInsertOptions) *Indexer {
	return &Indexer{
		db:       db,
		inserter: NewBulkInserter(db, options),
	}
}

// Index creates the schema and records every lump, level and thing of a.
// Unreadable lumps and levels are logged and counted rather than aborting the run.
func (ix *Indexer) Index(ctx context.Context, a *wad.Archive, source string, progress ProgressCallback) (*IndexStats, error) {
	if err := NewDDLManager(ix.db).CreateSchemas(ctx); err != nil {
		return nil, fmt.Errorf("creating schemas: %w", err)
	}

	stats := &IndexStats{}

	header := a.Header()
	info := &TableData{
		Name:    "_wad",
		Columns: []string{"key", "value"},
		Rows: [][]any{
			{"source", source},
			{"variant", header.Variant.String()},
			{"lump_count", fmt.Sprint(a.NumLumps())},
			{"level_count", fmt.Sprint(a.NumLevels())},
		},
	}
	if err := ix.inserter.InsertTableData(ctx, info); err != nil {
		return nil, err
	}

	lumps, err := ix.lumpRows(ctx, a, stats, progress)
	if err != nil {
		return nil, err
	}
	if err := ix.inserter.InsertTableData(ctx, lumps); err != nil {
		return nil, err
	}

	levels, things := ix.levelRows(a, stats)
	if err := ix.inserter.InsertTableData(ctx, levels); err != nil {
		return nil, err
	}
	if err := ix.inserter.InsertTableData(ctx, things); err != nil {
		return nil, err
	}

	slog.Info("Catalog written",
		"lumps", stats.Lumps,
		"levels", stats.Levels,
		"things", stats.Things,
		"skipped", stats.Skipped)

	return stats, nil
}

func (ix *Indexer) lumpRows(ctx context.Context, a *wad.Archive, stats *IndexStats, progress ProgressCallback) (*TableData, error) {
	catalog := a.Catalog()
	table := &TableData{
		Name:    "lumps",
		Columns: []string{"idx", "name", "file_offset", "size", "virtual", "digest"},
		Rows:    make([][]any, 0, catalog.Len()),
	}

	for i := 0; i < catalog.Len(); i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		lump := catalog.At(i)
		if progress != nil {
			progress(i+1, catalog.Len(), lump.Name.String())
		}

		var digest any
		if lump.Size > 0 {
			data, err := a.ReadRaw(i)
			if err != nil {
				slog.Warn("Failed to read lump", "lump", lump.Name, "index", i, "error", err)
				stats.Skipped++
			} else {
				digest = Digest(data)
			}
		}

		table.Rows = append(table.Rows, []any{i, lump.Name.String(), lump.Offset, lump.Size, lump.Size == 0, digest})
		stats.Lumps++
	}

	return table, nil
}

func (ix *Indexer) levelRows(a *wad.Archive, stats *IndexStats) (*TableData, *TableData) {
	levels := &TableData{
		Name:    "levels",
		Columns: []string{"idx", "name", "lump", "sky"},
	}
	things := &TableData{
		Name:    "things",
		Columns: []string{"level", "idx", "x", "y", "angle", "type", "flags", "sprite"},
	}
	metadata := a.Metadata()

	for l := 0; l < a.NumLevels(); l++ {
		name := a.LevelName(l).String()

		var sky any
		if s, ok := metadata.SkyFor(name); ok {
			sky = s.TextureName
		}
		levels.Rows = append(levels.Rows, []any{l, name, a.LevelLumpIndex(l), sky})
		stats.Levels++

		lvl, err := level.Load(a, l)
		if err != nil {
			slog.Warn("Failed to load level", "level", name, "error", err)
			stats.Skipped++
			continue
		}

		for i, t := range lvl.Things {
			var sprite any
			if desc, ok := metadata.FindThing(t.Type); ok {
				sprite = desc.Sprite
			}
			things.Rows = append(things.Rows, []any{l, i, t.X, t.Y, t.Angle, t.Type, t.Flags, sprite})
			stats.Things++
		}
	}

	return levels, things
}

// Digest returns the hex BLAKE3 digest of lump data
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
