package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jchantrell/wadex/internal/level"
	"github.com/jchantrell/wadex/internal/utils"
	"github.com/jchantrell/wadex/internal/wad"
)

var lumpsLevel string

var lumpsCmd = &cobra.Command{
	Use:   "lumps",
	Short: "List the lump directory",
	Long: `Lumps prints every directory entry with its position, offset and size.
Use --level to list only the lumps that belong to one level.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openArchive()
		if err != nil {
			return err
		}
		defer a.Close()

		start, end := 0, a.NumLumps()
		if lumpsLevel != "" {
			l, ok := a.LevelIndex(lumpsLevel)
			if !ok {
				return fmt.Errorf("level %s not found", lumpsLevel)
			}
			start, end = level.LumpRange(a, l)
		}

		printLumps(a, start, end)
		return nil
	},
}

func printLumps(a *wad.Archive, start, end int) {
	catalog := a.Catalog()
	fmt.Printf("%-6s %-8s %10s %10s\n", "Index", "Name", "Offset", "Size")
	var total int64
	for i := start; i < end; i++ {
		info := catalog.At(i)
		size := utils.Bytes(int64(info.Size))
		if catalog.IsVirtual(i) {
			size = "-"
		}
		fmt.Printf("%-6d %-8s %10d %10s\n", i, info.Name, info.Offset, size)
		total += int64(info.Size)
	}
	fmt.Printf("%d lumps, %s\n", end-start, utils.Bytes(total))
}

func init() {
	rootCmd.AddCommand(lumpsCmd)
	lumpsCmd.Flags().StringVarP(&lumpsLevel, "level", "l", "", "only list the lumps of this level (e.g. E1M1)")
}
