package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/helpcenter-rag/internal/core/ports/driving"
)

var (
	ingestInput    string
	ingestMaxChars int
	ingestOverlap  int
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load help-center snapshots into the vector index",
	Long: `Reads HTML snapshots from the input directory, extracts and chunks the
articles, embeds the chunks and upserts them into the configured vector
index. Re-running replaces existing records by chunk identifier.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestInput, "input", "i", "", "snapshot directory (default from config)")
	ingestCmd.Flags().IntVar(&ingestMaxChars, "max-chars", 0, "chunk size in characters (default from config)")
	ingestCmd.Flags().IntVar(&ingestOverlap, "overlap", 0, "chunk overlap in characters (default from config)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if err := initServices(); err != nil {
		return err
	}

	report, err := ingestService.Ingest(context.Background(), driving.IngestOptions{
		InputDir: ingestInput,
		MaxChars: ingestMaxChars,
		Overlap:  ingestOverlap,
	})
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Run %s\n", report.RunID)
	cmd.Printf("  Documents found:   %d\n", report.DocumentsFound)
	cmd.Printf("  Articles ingested: %d\n", report.ArticlesIngested)
	cmd.Printf("  Chunks upserted:   %d\n", report.ChunksUpserted)

	if len(report.Skipped) > 0 {
		cmd.Printf("  Skipped:           %d\n", len(report.Skipped))
		for _, s := range report.Skipped {
			cmd.Printf("    %s: %s\n", s.Path, s.Reason)
		}
	}
	return nil
}
