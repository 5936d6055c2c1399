package wad

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedMagic is returned when the header magic is neither IWAD nor PWAD.
	ErrUnrecognizedMagic = errors.New("wad: unrecognized magic")

	// ErrTruncatedDirectory is returned when the file ends before all directory entries are read.
	ErrTruncatedDirectory = errors.New("wad: truncated directory")

	// ErrMalformedLevelGroup is returned when a THINGS lump has no preceding header lump.
	ErrMalformedLevelGroup = errors.New("wad: malformed level group")

	// ErrSizeMismatch is returned when a lump's size is incompatible with the requested record type.
	ErrSizeMismatch = errors.New("wad: lump size mismatch")

	// ErrUnsupportedType is returned when a record type has no fixed binary size.
	ErrUnsupportedType = errors.New("wad: record type has no fixed size")

	// ErrLumpNotFound is returned by name-based reads when no lump has the name.
	ErrLumpNotFound = errors.New("wad: lump not found")

	// ErrLumpOutOfBounds is returned when a lump's byte range extends past the end of the file.
	ErrLumpOutOfBounds = errors.New("wad: lump out of bounds")
)

// SizeKind identifies which size rule a typed read violated.
type SizeKind int

const (
	// SizeNotAligned means the lump is empty or not a whole number of records.
	SizeNotAligned SizeKind = iota
	// SizeExact means the lump is not exactly one record long.
	SizeExact
)

// SizeError describes a lump whose length does not fit the requested record type.
type SizeError struct {
	Kind SizeKind
	Lump int
	Size int // lump length in bytes
	Elem int // record size in bytes
}

func (e *SizeError) Error() string {
	switch e.Kind {
	case SizeExact:
		return fmt.Sprintf("wad: lump %d has size %d, expected exactly %d", e.Lump, e.Size, e.Elem)
	default:
		return fmt.Sprintf("wad: lump %d has size %d, not a positive multiple of %d", e.Lump, e.Size, e.Elem)
	}
}

func (e *SizeError) Unwrap() error {
	return ErrSizeMismatch
}
