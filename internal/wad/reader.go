package wad

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"reflect"
)

// ReadLump decodes lump i as a sequence of fixed-size T records. The lump
// must be non-empty and a whole number of records long.
//
// T must have a fixed binary size as defined by encoding/binary; records are
// decoded field by field in little-endian order.
func ReadLump[T any](a *Archive, i int) ([]T, error) {
	var zero T
	elem := recordSize(zero)
	if elem <= 0 {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, zero)
	}

	info := a.catalog.At(i)
	size := int(info.Size)
	if size == 0 || size%elem != 0 {
		return nil, &SizeError{Kind: SizeNotAligned, Lump: i, Size: size, Elem: elem}
	}

	data, err := a.readRange(i, info)
	if err != nil {
		return nil, err
	}

	records := make([]T, size/elem)
	if err := binary.Read(bytes.NewReader(data), byteOrder, records); err != nil {
		return nil, fmt.Errorf("decoding lump %s (%d): %w", info.Name, i, err)
	}
	return records, nil
}

// ReadLumpSingle decodes lump i as exactly one T record.
func ReadLumpSingle[T any](a *Archive, i int) (T, error) {
	var record T
	elem := recordSize(record)
	if elem <= 0 {
		return record, fmt.Errorf("%w: %T", ErrUnsupportedType, record)
	}

	info := a.catalog.At(i)
	if int(info.Size) != elem {
		return record, &SizeError{Kind: SizeExact, Lump: i, Size: int(info.Size), Elem: elem}
	}

	data, err := a.readRange(i, info)
	if err != nil {
		return record, err
	}

	if err := binary.Read(bytes.NewReader(data), byteOrder, &record); err != nil {
		return record, fmt.Errorf("decoding lump %s (%d): %w", info.Name, i, err)
	}
	return record, nil
}

// recordSize returns the encoded size of v, or -1 when encoding/binary
// cannot decode into it: no fixed size, or unexported struct fields.
func recordSize(v any) int {
	if !decodable(reflect.TypeOf(v)) {
		return -1
	}
	return binary.Size(v)
}

func decodable(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Array:
		return decodable(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.Name == "_" {
				continue
			}
			if !f.IsExported() || !decodable(f.Type) {
				return false
			}
		}
	}
	return true
}

// ReadLumpByName is ReadLump for the lump called name.
func ReadLumpByName[T any](a *Archive, name string) ([]T, error) {
	i, ok := a.LumpIndex(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLumpNotFound, name)
	}
	return ReadLump[T](a, i)
}

// ReadRaw returns the bytes of lump i. Virtual lumps yield an empty slice.
func (a *Archive) ReadRaw(i int) ([]byte, error) {
	info := a.catalog.At(i)
	if info.Size == 0 {
		return []byte{}, nil
	}
	return a.readRange(i, info)
}

// readRange reads the bytes referenced by info, which is the entry for lump i.
func (a *Archive) readRange(i int, info LumpInfo) ([]byte, error) {
	off := int64(info.Offset)
	end := off + int64(info.Size)
	if a.size >= 0 && end > a.size {
		return nil, fmt.Errorf("%w: lump %s (%d) spans [%d, %d) in a %d byte file",
			ErrLumpOutOfBounds, info.Name, i, off, end, a.size)
	}

	data := make([]byte, info.Size)
	n, err := a.r.ReadAt(data, off)
	if n == len(data) {
		return data, nil
	}
	if err == nil || err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return nil, fmt.Errorf("reading lump %s (%d) at offset %d: %w", info.Name, i, off, err)
}
