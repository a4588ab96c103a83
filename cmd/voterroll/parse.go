package main

import (
	"context"
	"encoding/json"

	"github.com/rsmmonaem/voter-talika/internal/config"
	"github.com/rsmmonaem/voter-talika/internal/domain"
	"github.com/rsmmonaem/voter-talika/internal/service"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [pdf-file]",
	Short: "Extract the voters of one PDF and print them as JSON",
	Long: `Run the full pipeline over a single roll PDF and print the records as a
JSON array. Nothing is written to the store.`,
	Example: `  # Records with provenance
  voterroll parse roll.pdf --upazila JHENAIGATI --union NALKURA

  # Compact output for piping into jq
  voterroll parse roll.pdf --compact | jq length`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().String("upazila", "", "Upazila stamped on every record")
	parseCmd.Flags().String("union", "", "Union stamped on every record")
	parseCmd.Flags().Bool("compact", false, "Print JSON without indentation")
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	upazila, _ := cmd.Flags().GetString("upazila")
	union, _ := cmd.Flags().GetString("union")
	compact, _ := cmd.Flags().GetBool("compact")

	log := stderrLogger(cfg, "parse")
	reader, normalizer, err := config.NewPipeline(cfg, log)
	if err != nil {
		return err
	}

	ingest := service.NewIngestService(reader, normalizer, nil, log, 1, 0)
	records, err := ingest.ProcessDocument(context.Background(), domain.DocumentJob{
		Path:      args[0],
		Upazila:   upazila,
		UnionName: union,
	})
	if err != nil {
		return err
	}
	if records == nil {
		records = []domain.VoterRecord{}
	}
	log.Info("Document parsed", "file", args[0], "voters", len(records))

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	if !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(records)
}
