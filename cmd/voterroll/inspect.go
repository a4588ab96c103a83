package main

import (
	"context"
	"fmt"

	"github.com/rsmmonaem/voter-talika/internal/bangla"
	"github.com/rsmmonaem/voter-talika/internal/config"
	"github.com/rsmmonaem/voter-talika/internal/extract"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [pdf-file]",
	Short: "Print the text of one page, raw or normalized",
	Long: `Print one page of a roll PDF so glyph problems can be diagnosed.

Without --page the first page holding at least one voter entry is shown,
falling back to the first page.`,
	Example: `  # First page with voters, normalized
  voterroll inspect roll.pdf

  # Raw text layer of the cover page
  voterroll inspect roll.pdf --page 1 --raw

  # Header fields of the cover page
  voterroll inspect roll.pdf --header`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().IntP("page", "p", 0, "1-based page number (default: first page with entries)")
	inspectCmd.Flags().Bool("raw", false, "Print the text layer without normalization")
	inspectCmd.Flags().Bool("header", false, "Print the header fields read from the first page")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	page, _ := cmd.Flags().GetInt("page")
	raw, _ := cmd.Flags().GetBool("raw")
	header, _ := cmd.Flags().GetBool("header")

	reader, normalizer, err := config.NewPipeline(cfg, stderrLogger(cfg, "inspect"))
	if err != nil {
		return err
	}

	pdfPath := args[0]
	pages, err := reader.ReadPages(context.Background(), pdfPath)
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		return fmt.Errorf("%s has no pages", pdfPath)
	}

	out := cmd.OutOrStdout()
	if header {
		h := extract.ExtractHeader(normalizer.Normalize(pages[0]), pdfPath)
		fmt.Fprintf(out, "district:  %s\narea_code: %s\narea_name: %s\nward:      %s\n",
			h.District, h.AreaCode, h.AreaName, h.Ward)
		return nil
	}

	idx, err := selectPage(pages, normalizer, page)
	if err != nil {
		return err
	}

	text := pages[idx]
	if !raw {
		text = normalizer.Normalize(text)
	}
	fmt.Fprintf(out, "--- page %d of %d ---\n%s\n", idx+1, len(pages), text)
	return nil
}

// selectPage returns the 0-based index of the page to show. A positive page
// is taken as given; zero picks the first page with voter entries.
func selectPage(pages []string, normalizer *bangla.Normalizer, page int) (int, error) {
	if page < 0 || page > len(pages) {
		return 0, fmt.Errorf("page %d out of range (document has %d pages)", page, len(pages))
	}
	if page > 0 {
		return page - 1, nil
	}
	for i, p := range pages {
		if len(extract.Segment(normalizer.Normalize(p))) > 0 {
			return i, nil
		}
	}
	return 0, nil
}
