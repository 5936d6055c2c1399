// Package assets decodes the global graphics lumps of a WAD: palettes,
// light colormaps and the ENDOOM exit screen.
package assets

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/jchantrell/wadex/internal/wad"
)

const (
	PaletteLump  = "PLAYPAL"
	ColormapLump = "COLORMAP"
	EndoomLump   = "ENDOOM"

	// EndoomWidth and EndoomHeight are the text screen dimensions in cells.
	EndoomWidth  = 80
	EndoomHeight = 25
)

// Palette is 256 RGB triples.
type Palette [256][3]uint8

// Color returns entry i as a color.RGBA.
func (p *Palette) Color(i uint8) color.RGBA {
	c := p[i]
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xff}
}

// Colormap remaps palette indices for one light level.
type Colormap [256]uint8

// Cell is one character of the ENDOOM screen.
type Cell struct {
	Char uint8
	Attr uint8 // VGA attribute: low nibble foreground, high nibble background
}

// Endoom is the text screen shown on exit.
type Endoom [EndoomWidth * EndoomHeight]Cell

// Text returns the characters of the screen as lines with trailing blanks trimmed.
func (e *Endoom) Text() string {
	var sb strings.Builder
	for row := 0; row < EndoomHeight; row++ {
		line := make([]byte, EndoomWidth)
		for col := 0; col < EndoomWidth; col++ {
			c := e[row*EndoomWidth+col].Char
			if c < 0x20 || c > 0x7e {
				c = ' '
			}
			line[col] = c
		}
		sb.WriteString(strings.TrimRight(string(line), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Palettes reads every palette in PLAYPAL.
func Palettes(a *wad.Archive) ([]Palette, error) {
	palettes, err := wad.ReadLumpByName[Palette](a, PaletteLump)
	if err != nil {
		return nil, fmt.Errorf("reading palettes: %w", err)
	}
	return palettes, nil
}

// Colormaps reads every colormap in COLORMAP.
func Colormaps(a *wad.Archive) ([]Colormap, error) {
	colormaps, err := wad.ReadLumpByName[Colormap](a, ColormapLump)
	if err != nil {
		return nil, fmt.Errorf("reading colormaps: %w", err)
	}
	return colormaps, nil
}

// ReadEndoom reads the ENDOOM screen.
func ReadEndoom(a *wad.Archive) (*Endoom, error) {
	i, ok := a.LumpIndex(EndoomLump)
	if !ok {
		return nil, fmt.Errorf("reading endoom: %w: %s", wad.ErrLumpNotFound, EndoomLump)
	}
	screen, err := wad.ReadLumpSingle[Endoom](a, i)
	if err != nil {
		return nil, fmt.Errorf("reading endoom: %w", err)
	}
	return &screen, nil
}
