package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/jchantrell/wadex/internal/config"
	"github.com/jchantrell/wadex/internal/wad"
)

var (
	cfg     *config.Config
	cfgFile string

	wadPath    string
	metaPath   string
	dbPath     string
	outputDir  string
	names      []string
	logLevel   string
	logFormat  string
	noProgress bool
)

var rootCmd = &cobra.Command{
	Use:   "wadex",
	Short: "WAD archive inspection, extraction and catalog tool",
	Long: `wadex reads IWAD and PWAD containers together with a metadata file
describing skies, animations and things.

It can list the lump directory and levels, extract lumps to disk and
build a queryable SQLite catalog of lumps, levels and things.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		flags := cmd.Flags()
		if flags.Changed("wad") {
			cfg.Wad = wadPath
		}
		if flags.Changed("metadata") {
			cfg.Metadata = metaPath
		}
		if flags.Changed("database") {
			cfg.Database = dbPath
		}
		if flags.Changed("output") {
			cfg.Output = outputDir
		}
		if flags.Changed("names") {
			cfg.Names = names
		}
		if flags.Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if flags.Changed("log-format") {
			cfg.LogFormat = logFormat
		}

		if err := cfg.Validate(); err != nil {
			return err
		}

		var handler slog.Handler
		if cfg.LogFormat == "json" {
			handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: cfg.SlogLevel(),
			})
		} else {
			handler = tint.NewHandler(os.Stderr, &tint.Options{
				Level: cfg.SlogLevel(),
			})
		}
		slog.SetDefault(slog.New(handler))

		slog.Debug("Configuration",
			"wad", cfg.Wad,
			"metadata", cfg.Metadata,
			"database", cfg.Database,
			"output", cfg.Output,
			"names", cfg.Names,
			"log_level", cfg.LogLevel,
			"log_format", cfg.LogFormat)

		return nil
	},
}

// openArchive opens the configured WAD and metadata. An empty metadata path
// opens the WAD without sky and thing definitions.
func openArchive() (*wad.Archive, error) {
	if cfg.Metadata == "" {
		return wad.OpenWithMetadata(cfg.Wad, nil)
	}
	return wad.Open(cfg.Wad, cfg.Metadata)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is wadex.yaml in home or pwd)")
	rootCmd.PersistentFlags().StringVarP(&wadPath, "wad", "w", "", "WAD file path")
	rootCmd.PersistentFlags().StringVarP(&metaPath, "metadata", "m", "", "metadata file path (.toml, .yaml), empty for none")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "database", "d", "", "database file path")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "output directory for extracted lumps")
	rootCmd.PersistentFlags().StringSliceVar(&names, "names", []string{}, "comma-separated list of lump names to extract")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json)")
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "disable progress bar")
}
