package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rsmmonaem/voter-talika/internal/config"
	"github.com/rsmmonaem/voter-talika/pkg/logger"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "voterroll",
	Short: "Extract voter records from Bangla electoral roll PDFs",
	Long: `voterroll repairs the text layer of electoral roll PDFs, recovers one
record per voter and loads the records into the configured store.

Settings come from the environment (and a .env file); the flags below
override the matching variables.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("engine", "", "PDF text engine: mupdf or plain (env PDF_ENGINE)")
	rootCmd.PersistentFlags().String("glyph-table", "", "Glyph table: mupdf or pdfjs (env GLYPH_TABLE)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (env LOG_LEVEL)")
}

// loadConfig reads the environment and applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command) *config.AppConfig {
	cfg := config.NewConfig()
	if v, _ := cmd.Flags().GetString("engine"); v != "" {
		cfg.PDFEngine = strings.ToLower(v)
	}
	if v, _ := cmd.Flags().GetString("glyph-table"); v != "" {
		cfg.GlyphTable = strings.ToLower(v)
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	return cfg
}

// stderrLogger keeps stdout free for command output.
func stderrLogger(cfg *config.AppConfig, component string) *logger.AppLogger {
	return logger.NewWithWriter(os.Stderr, cfg.GetLogLevel(), cfg.GetLogFormat()).WithComponent(component)
}
