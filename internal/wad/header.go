package wad

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// byteOrder is the byte order of every integer in a WAD.
var byteOrder = binary.LittleEndian

// readRecord decodes the fixed-layout value v from r at the absolute offset off.
// Fields are decoded one by one in declaration order, so v's in-memory layout is irrelevant.
func readRecord(r io.ReaderAt, off int64, v any) error {
	size := binary.Size(v)
	if size < 0 {
		return ErrUnsupportedType
	}
	sr := io.NewSectionReader(r, off, int64(size))
	if err := binary.Read(sr, byteOrder, v); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	return nil
}

// ParseHeader reads and validates the container header at the start of r.
func ParseHeader(r io.ReaderAt) (Header, error) {
	var bh binHeader
	if err := readRecord(r, 0, &bh); err != nil {
		return Header{}, fmt.Errorf("reading header: %w", err)
	}

	variant, ok := variantFromMagic(bh.Magic)
	if !ok {
		return Header{}, fmt.Errorf("%w %q", ErrUnrecognizedMagic, bh.Magic[:])
	}

	return Header{
		Variant:         variant,
		NumLumps:        bh.NumLumps,
		InfoTableOffset: bh.InfoTableOffset,
	}, nil
}

// ParseDirectory reads the h.NumLumps directory entries starting at h.InfoTableOffset.
// Entry names are canonicalised as they are read.
func ParseDirectory(r io.ReaderAt, h Header) ([]LumpInfo, error) {
	entrySize := int64(binary.Size(binLumpInfo{}))
	// Cap the preallocation; NumLumps comes straight from the file
	lumps := make([]LumpInfo, 0, min(h.NumLumps, 4096))

	table := io.NewSectionReader(r, int64(h.InfoTableOffset), entrySize*int64(h.NumLumps))
	for i := uint32(0); i < h.NumLumps; i++ {
		var bl binLumpInfo
		if err := binary.Read(table, byteOrder, &bl); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("%w: entry %d of %d at offset %d: %w",
				ErrTruncatedDirectory, i, h.NumLumps, int64(h.InfoTableOffset)+int64(i)*entrySize, err)
		}
		lumps = append(lumps, LumpInfo{
			Name:   bl.Name.Canonical(),
			Offset: bl.Offset,
			Size:   bl.Size,
		})
	}

	return lumps, nil
}
