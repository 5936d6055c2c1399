package export

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/jchantrell/wadex/internal/assets"
)

const swatchSize = 8

// convertLump writes a human-readable rendition of lumps with a known format.
// basePath has no extension; unknown lumps are left alone.
func convertLump(name string, data []byte, basePath string) error {
	switch name {
	case assets.PaletteLump:
		return writePaletteSwatch(data, basePath+".png")
	case assets.EndoomLump:
		return writeEndoomText(data, basePath+".txt")
	default:
		return nil
	}
}

// writePaletteSwatch renders every palette in a PLAYPAL lump as a 16x16 grid
// of colour squares, palettes stacked vertically
func writePaletteSwatch(data []byte, outputPath string) error {
	recordSize := binary.Size(assets.Palette{})
	if len(data) == 0 || len(data)%recordSize != 0 {
		return fmt.Errorf("palette lump has %d bytes, not a multiple of %d", len(data), recordSize)
	}

	palettes := make([]assets.Palette, len(data)/recordSize)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, palettes); err != nil {
		return fmt.Errorf("decoding palettes: %w", err)
	}

	side := 16 * swatchSize
	img := image.NewRGBA(image.Rect(0, 0, side, side*len(palettes)))
	for p := range palettes {
		for i := 0; i < 256; i++ {
			c := palettes[p].Color(uint8(i))
			x0 := (i % 16) * swatchSize
			y0 := p*side + (i/16)*swatchSize
			for y := y0; y < y0+swatchSize; y++ {
				for x := x0; x < x0+swatchSize; x++ {
					img.SetRGBA(x, y, c)
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encoding palette swatch: %w", err)
	}
	return os.WriteFile(outputPath, buf.Bytes(), 0644)
}

// writeEndoomText writes the characters of an ENDOOM screen, dropping colour attributes
func writeEndoomText(data []byte, outputPath string) error {
	var screen assets.Endoom
	if len(data) != binary.Size(screen) {
		return fmt.Errorf("endoom lump has %d bytes, want %d", len(data), binary.Size(screen))
	}
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &screen); err != nil {
		return fmt.Errorf("decoding endoom: %w", err)
	}
	return os.WriteFile(outputPath, []byte(screen.Text()), 0644)
}
