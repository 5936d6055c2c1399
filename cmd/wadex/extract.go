package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/jchantrell/wadex/internal/export"
	"github.com/jchantrell/wadex/internal/level"
	"github.com/jchantrell/wadex/internal/utils"
	"github.com/jchantrell/wadex/internal/wad"
)

var extractLevels []string

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Write lumps to the output directory",
	Long: `Extract writes lumps as NNNN_NAME.lmp files into the output directory.
Each level's lumps go into a subdirectory named after the level.

By default every lump is written. Use --names to pick lumps by name and
--level to pick whole levels. PLAYPAL is also rendered as a PNG swatch and
ENDOOM as plain text.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		startTime := time.Now()

		a, err := openArchive()
		if err != nil {
			return err
		}
		defer a.Close()

		selections, err := selectLumps(a, cfg.Names, extractLevels)
		if err != nil {
			return err
		}

		total := 0
		for _, sel := range selections {
			total += len(sel.Indices)
		}
		slog.Info("Extracting lumps", "count", total, "output", cfg.Output)

		progress := utils.NewProgress(total, !noProgress)
		exporter := export.NewExporter(a, cfg.Output)
		exported, err := exporter.ExportLumps(selections, progress.Callback())
		progress.Finish()
		if err != nil {
			return fmt.Errorf("extracting lumps: %w", err)
		}

		fmt.Printf("Lumps extracted: %s\n", utils.Number(int64(exported)))
		fmt.Printf("Output directory: %s\n", cfg.Output)
		fmt.Printf("Total duration: %s\n", utils.Duration(time.Since(startTime)))
		return nil
	},
}

// selectLumps groups the requested lumps: level lumps under the level name,
// everything else at the top of the output directory
func selectLumps(a *wad.Archive, lumpNames, levelNames []string) ([]export.Selection, error) {
	inLevel := make([]string, a.NumLumps())
	for l := 0; l < a.NumLevels(); l++ {
		start, end := level.LumpRange(a, l)
		name := a.LevelName(l).String()
		for i := start; i < end; i++ {
			inLevel[i] = name
		}
	}

	if len(lumpNames) == 0 && len(levelNames) == 0 {
		selections := []export.Selection{{}}
		byLevel := map[string]int{"": 0}
		for i := 0; i < a.NumLumps(); i++ {
			pos, ok := byLevel[inLevel[i]]
			if !ok {
				pos = len(selections)
				byLevel[inLevel[i]] = pos
				selections = append(selections, export.Selection{Dir: inLevel[i]})
			}
			selections[pos].Indices = append(selections[pos].Indices, i)
		}
		return selections, nil
	}

	var selections []export.Selection
	if len(lumpNames) > 0 {
		top := export.Selection{}
		for _, name := range lumpNames {
			i, ok := a.LumpIndex(name)
			if !ok {
				return nil, fmt.Errorf("lump %s: %w", name, wad.ErrLumpNotFound)
			}
			top.Indices = append(top.Indices, i)
		}
		selections = append(selections, top)
	}

	for _, name := range levelNames {
		l, ok := a.LevelIndex(name)
		if !ok {
			return nil, fmt.Errorf("level %s not found", name)
		}
		start, end := level.LumpRange(a, l)
		sel := export.Selection{Dir: a.LevelName(l).String()}
		for i := start; i < end; i++ {
			sel.Indices = append(sel.Indices, i)
		}
		selections = append(selections, sel)
	}

	return selections, nil
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringSliceVarP(&extractLevels, "level", "l", []string{}, "comma-separated list of levels to extract")
}
