package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jchantrell/wadex/internal/database"
	"github.com/jchantrell/wadex/internal/utils"
)

var batchSize int

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build a SQLite catalog of lumps, levels and things",
	Long: `Index records every lump (with a BLAKE3 digest of its data), every level
and every thing placed in a level into the configured SQLite database.
The database must not already contain tables.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		startTime := time.Now()

		a, err := openArchive()
		if err != nil {
			return err
		}
		defer a.Close()

		dbOptions := database.DefaultDatabaseOptions(cfg.Database)
		db, err := database.NewDatabase(dbOptions)
		if err != nil {
			return fmt.Errorf("creating database: %w", err)
		}
		defer db.Close()

		hasTables, err := db.HasUserTables(ctx)
		if err != nil {
			return fmt.Errorf("checking database tables: %w", err)
		}
		if hasTables {
			return fmt.Errorf("database %s already contains tables", cfg.Database)
		}

		slog.Info("Indexing WAD", "wad", cfg.Wad, "database", cfg.Database)

		options := database.DefaultBulkInsertOptions()
		if batchSize > 0 {
			options.BatchSize = batchSize
		}

		progress := utils.NewProgress(a.NumLumps(), !noProgress)
		stats, err := database.NewIndexer(db, options).Index(ctx, a, filepath.Base(cfg.Wad), progress.Callback())
		progress.Finish()
		if err != nil {
			return fmt.Errorf("indexing %s: %w", cfg.Wad, err)
		}

		fmt.Printf("Lumps indexed: %s\n", utils.Number(int64(stats.Lumps)))
		fmt.Printf("Levels indexed: %s\n", utils.Number(int64(stats.Levels)))
		fmt.Printf("Things indexed: %s\n", utils.Number(int64(stats.Things)))
		fmt.Printf("Skipped: %d\n", stats.Skipped)
		fmt.Printf("Total duration: %s\n", utils.Duration(time.Since(startTime)))
		fmt.Println("Try running: wadex query --tables")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().IntVar(&batchSize, "batch-size", 0, "rows per insert statement (default 1000)")
}
