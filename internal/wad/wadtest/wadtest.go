// Package wadtest builds synthetic WAD containers for tests.
package wadtest

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

type entry struct {
	name   string
	data   []byte
	raw    bool
	offset uint32
	size   uint32
}

// Builder assembles a WAD in memory. Lump data is laid out after the header
// in the order lumps are added, followed by the directory.
type Builder struct {
	magic   string
	entries []entry
}

// New returns a Builder for an IWAD.
func New() *Builder {
	return &Builder{magic: "IWAD"}
}

// Magic overrides the four header magic bytes.
func (b *Builder) Magic(magic string) *Builder {
	b.magic = magic
	return b
}

// Lump appends a lump holding data.
func (b *Builder) Lump(name string, data []byte) *Builder {
	b.entries = append(b.entries, entry{name: name, data: data})
	return b
}

// Marker appends a zero-length lump.
func (b *Builder) Marker(name string) *Builder {
	return b.Lump(name, nil)
}

// Records appends a lump holding records encoded little endian.
func (b *Builder) Records(name string, records any) *Builder {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, records); err != nil {
		panic(err)
	}
	return b.Lump(name, buf.Bytes())
}

// Entry appends a directory entry with an explicit offset and size and no data.
func (b *Builder) Entry(name string, offset, size uint32) *Builder {
	b.entries = append(b.entries, entry{name: name, raw: true, offset: offset, size: size})
	return b
}

// Bytes encodes the container.
func (b *Builder) Bytes() []byte {
	const headerSize = 12

	var data bytes.Buffer
	offsets := make([]uint32, len(b.entries))
	sizes := make([]uint32, len(b.entries))
	for i, e := range b.entries {
		if e.raw {
			offsets[i], sizes[i] = e.offset, e.size
			continue
		}
		offsets[i] = uint32(headerSize + data.Len())
		sizes[i] = uint32(len(e.data))
		data.Write(e.data)
	}

	var out bytes.Buffer
	out.WriteString((b.magic + "\x00\x00\x00\x00")[:4])
	binary.Write(&out, binary.LittleEndian, uint32(len(b.entries)))
	binary.Write(&out, binary.LittleEndian, uint32(headerSize+data.Len()))
	out.Write(data.Bytes())
	for i, e := range b.entries {
		var name [8]byte
		copy(name[:], e.name)
		binary.Write(&out, binary.LittleEndian, offsets[i])
		binary.Write(&out, binary.LittleEndian, sizes[i])
		out.Write(name[:])
	}
	return out.Bytes()
}

// Reader returns the container as a bytes.Reader.
func (b *Builder) Reader() *bytes.Reader {
	return bytes.NewReader(b.Bytes())
}

// WriteFile writes the container into a temporary directory and returns its path.
func (b *Builder) WriteFile(tb testing.TB) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "test.wad")
	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		tb.Fatalf("writing test WAD: %v", err)
	}
	return path
}

// Thing matches the 10 byte THINGS record layout.
type Thing struct {
	X, Y, Angle int16
	Type, Flags uint16
}

// Linedef matches the 14 byte LINEDEFS record layout.
type Linedef struct {
	Start, End, Flags, Special, Tag, Right, Left uint16
}

// Level appends a level header marker followed by a minimal set of level lumps.
func (b *Builder) Level(name string, things []Thing, lines []Linedef) *Builder {
	return b.Marker(name).
		Records("THINGS", things).
		Records("LINEDEFS", lines)
}
