package wad

import (
	"bytes"
	"fmt"
)

// Variant is the kind of WAD container, derived from the header magic.
type Variant int

const (
	// IWAD is a primary container holding a complete game's data.
	IWAD Variant = iota + 1
	// PWAD is a patch container that overrides lumps of an IWAD.
	PWAD
)

func (v Variant) String() string {
	switch v {
	case IWAD:
		return "IWAD"
	case PWAD:
		return "PWAD"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// variantFromMagic maps the four magic bytes to a Variant, reporting false for unknown magic.
func variantFromMagic(magic [4]byte) (Variant, bool) {
	switch string(magic[:]) {
	case "IWAD":
		return IWAD, true
	case "PWAD":
		return PWAD, true
	default:
		return 0, false
	}
}

// Header is the parsed container header.
type Header struct {
	Variant         Variant
	NumLumps        uint32
	InfoTableOffset uint32
}

// binHeader is the on-disk header layout.
type binHeader struct {
	Magic           [4]byte
	NumLumps        uint32
	InfoTableOffset uint32
}

// binLumpInfo is the on-disk directory entry layout.
type binLumpInfo struct {
	Offset uint32
	Size   uint32
	Name   Name
}

// LumpInfo is a single directory entry with a canonical name.
type LumpInfo struct {
	Name   Name
	Offset uint32
	Size   uint32
}

// Name is an eight-byte, NUL-padded lump name.
type Name [8]byte

// NameLen is the maximum length of a lump name.
const NameLen = len(Name{})

// ThingsName is the sentinel lump that follows every level header lump.
var ThingsName = MustName("THINGS")

// ParseName converts s into a canonical Name. Names longer than eight bytes are rejected.
func ParseName(s string) (Name, error) {
	var n Name
	if len(s) > NameLen {
		return n, fmt.Errorf("lump name %q is longer than %d bytes", s, NameLen)
	}
	copy(n[:], s)
	return n.Canonical(), nil
}

// MustName is like ParseName but panics on error.
func MustName(s string) Name {
	n, err := ParseName(s)
	if err != nil {
		panic(err)
	}
	return n
}

// Canonical upper-cases the name and zeroes everything after the first NUL,
// so that names compare equal regardless of case or padding garbage.
func (n Name) Canonical() Name {
	zero := false
	for i, c := range n {
		switch {
		case zero:
			n[i] = 0
		case c == 0:
			zero = true
		case c >= 'a' && c <= 'z':
			n[i] = c - 'a' + 'A'
		}
	}
	return n
}

func (n Name) String() string {
	i := bytes.IndexByte(n[:], 0)
	if i == -1 {
		i = len(n)
	}
	return string(n[:i])
}
