package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [doc-id]",
	Short: "Run the ingestion pipeline for a document",
	Long: `Extracts text, chunks it, embeds the chunks, and indexes the
document. Re-running for a failed or ready document replaces its
previous chunks and index entries.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

var ingestStatusCmd = &cobra.Command{
	Use:   "status [doc-id]",
	Short: "Show ingestion progress for a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runIngestStatus,
}

var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Fail documents stuck in processing",
	Long: `Marks documents that have been processing beyond the staleness
threshold as failed, making them eligible for re-ingestion. Useful
after a crash or interrupted run.`,
	Args: cobra.NoArgs,
	RunE: runRecover,
}

func init() {
	ingestCmd.AddCommand(ingestStatusCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(recoverCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	docID := args[0]
	ctx := context.Background()

	cmd.Printf("Ingesting document %s...\n", docID)

	if err := ingestService.Ingest(ctx, docID); err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	cmd.Printf("Document %s ingested.\n", docID)
	return nil
}

func runIngestStatus(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	docID := args[0]
	ctx := context.Background()

	status, err := ingestService.Status(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	cmd.Printf("Document: %s\n", status.DocumentID)
	if status.Running {
		cmd.Printf("  Ingestion running, %d chunks embedded\n", status.ChunksEmbedded)
	} else {
		cmd.Println("  No ingestion in progress")
	}
	return nil
}

func runRecover(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx := context.Background()

	n, err := ingestService.RecoverStale(ctx)
	if err != nil {
		return fmt.Errorf("recovery failed: %w", err)
	}

	if n == 0 {
		cmd.Println("No stale documents found.")
	} else {
		cmd.Printf("Recovered %d stale documents.\n", n)
	}
	return nil
}
