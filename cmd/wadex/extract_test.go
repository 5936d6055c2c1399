package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jchantrell/wadex/internal/export"
	"github.com/jchantrell/wadex/internal/wad"
	"github.com/jchantrell/wadex/internal/wad/wadtest"
)

func testArchive(t *testing.T) *wad.Archive {
	t.Helper()
	data := wadtest.New().
		Lump("PLAYPAL", make([]byte, 768)).
		Level("E1M1", []wadtest.Thing{{Type: 1}}, []wadtest.Linedef{{}}).
		Lump("DEMO1", []byte{1}).
		Level("E1M2", nil, nil).
		Bytes()
	a, err := wad.New(bytes.NewReader(data), int64(len(data)), nil)
	require.NoError(t, err)
	return a
}

func TestSelectLumpsAll(t *testing.T) {
	a := testArchive(t)

	selections, err := selectLumps(a, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []export.Selection{
		{Indices: []int{0, 4}},
		{Dir: "E1M1", Indices: []int{1, 2, 3}},
		{Dir: "E1M2", Indices: []int{5, 6, 7}},
	}, selections)
}

func TestSelectLumpsByNameAndLevel(t *testing.T) {
	a := testArchive(t)

	selections, err := selectLumps(a, []string{"demo1"}, []string{"e1m2"})
	require.NoError(t, err)
	assert.Equal(t, []export.Selection{
		{Indices: []int{4}},
		{Dir: "E1M2", Indices: []int{5, 6, 7}},
	}, selections)
}

func TestSelectLumpsUnknown(t *testing.T) {
	a := testArchive(t)

	_, err := selectLumps(a, []string{"NOPE"}, nil)
	assert.ErrorIs(t, err, wad.ErrLumpNotFound)

	_, err = selectLumps(a, nil, []string{"MAP01"})
	assert.ErrorContains(t, err, "level MAP01 not found")
}
