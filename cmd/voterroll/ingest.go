package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rsmmonaem/voter-talika/internal/config"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Reset the store and ingest every roll PDF",
	Long: `Walk DATA_DIR/<folder> for every source folder, extract the voters of
each PDF and write them to the configured store. The store is emptied
first, so every run starts from scratch.`,
	Example: `  # Ingest the default folders into voters.db
  voterroll ingest

  # Ingest one upazila with more workers
  voterroll ingest --data-dir ./rolls --folders JHENAIGATI --workers 8`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().String("data-dir", "", "Directory holding the upazila folders (env DATA_DIR)")
	ingestCmd.Flags().StringSlice("folders", nil, "Upazila folders to ingest (env SOURCE_FOLDERS)")
	ingestCmd.Flags().Int("workers", 0, "Documents processed concurrently (env INGEST_WORKERS)")
	ingestCmd.Flags().Int("batch-size", 0, "Records per store write (env INSERT_BATCH_SIZE)")
	ingestCmd.Flags().String("store", "", "Store driver: sqlite or supabase (env STORE_DRIVER)")
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	if v, _ := cmd.Flags().GetString("data-dir"); v != "" {
		cfg.DataDir = v
	}
	if v, _ := cmd.Flags().GetStringSlice("folders"); len(v) > 0 {
		cfg.SourceFolders = v
	}
	if v, _ := cmd.Flags().GetInt("workers"); v > 0 {
		cfg.IngestWorkers = v
	}
	if v, _ := cmd.Flags().GetInt("batch-size"); v > 0 {
		cfg.InsertBatchSize = v
	}
	if v, _ := cmd.Flags().GetString("store"); v != "" {
		cfg.StoreDriver = strings.ToLower(v)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := config.NewContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	stats, err := container.IngestService.Run(ctx, cfg.GetDataDir(), cfg.GetSourceFolders())
	if err != nil {
		return fmt.Errorf("ingest run %s failed: %w", stats.RunID, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d voters from %d documents (%d failed)\n",
		stats.Voters, stats.Documents, stats.Failed)
	return nil
}
