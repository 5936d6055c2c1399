package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jchantrell/wadex/internal/assets"
	"github.com/jchantrell/wadex/internal/utils"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the WAD header and its levels",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openArchive()
		if err != nil {
			return err
		}
		defer a.Close()

		h := a.Header()
		fmt.Printf("File: %s\n", cfg.Wad)
		fmt.Printf("Type: %s\n", h.Variant)
		fmt.Printf("Lumps: %s\n", utils.Number(int64(a.NumLumps())))
		fmt.Printf("Directory offset: %d\n", h.InfoTableOffset)

		if palettes, err := assets.Palettes(a); err == nil {
			fmt.Printf("Palettes: %d\n", len(palettes))
		}
		if colormaps, err := assets.Colormaps(a); err == nil {
			fmt.Printf("Colormaps: %d\n", len(colormaps))
		}

		fmt.Printf("Levels: %d\n", a.NumLevels())
		for l := 0; l < a.NumLevels(); l++ {
			name := a.LevelName(l).String()
			sky := "-"
			if s, ok := a.Metadata().SkyFor(name); ok {
				sky = s.TextureName
			}
			fmt.Printf("  %-8s lump %-5d sky %s\n", name, a.LevelLumpIndex(l), sky)
		}

		return nil
	},
}

var endoomCmd = &cobra.Command{
	Use:   "endoom",
	Short: "Print the text of the ENDOOM screen",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openArchive()
		if err != nil {
			return err
		}
		defer a.Close()

		screen, err := assets.ReadEndoom(a)
		if err != nil {
			return fmt.Errorf("reading ENDOOM: %w", err)
		}
		fmt.Print(screen.Text())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(endoomCmd)
}
