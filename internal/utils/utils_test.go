package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	cases := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		123456:   "123,456",
		1234567:  "1,234,567",
		-9876543: "-9,876,543",
	}
	for in, want := range cases {
		assert.Equal(t, want, Number(in), "Number(%d)", in)
	}
}

func TestBytes(t *testing.T) {
	assert.Equal(t, "512 B", Bytes(512))
	assert.Equal(t, "3.9 KiB", Bytes(4000))
	assert.Equal(t, "1.0 MiB", Bytes(1<<20))
	assert.Equal(t, "11.8 MiB", Bytes(12408292))
}

func TestDuration(t *testing.T) {
	assert.Equal(t, "0s", Duration(500*time.Millisecond))
	assert.Equal(t, "5.2s", Duration(5200*time.Millisecond))
	assert.Equal(t, "3m5.0s", Duration(3*time.Minute+5*time.Second))
	assert.Equal(t, "2h15m", Duration(2*time.Hour+15*time.Minute))
}

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{
		"":            "",
		"lumps":       "lumps",
		"LevelThings": "level_things",
		"LumpID":      "lump_id",
		"WADHeader":   "wad_header",
		"E1M1Things":  "e1_m1_things",
	}
	for in, want := range cases {
		assert.Equal(t, want, ToSnakeCase(in), "ToSnakeCase(%q)", in)
	}
}

func TestProgressDisabled(t *testing.T) {
	p := NewProgress(10, false)
	assert.False(t, p.Enabled())
	p.Update(1, "E1M1")
	p.Callback()(2, 10, "E1M2")
	p.Finish()
}
