package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file...]",
	Short: "Upload and ingest PDF files",
	Long: `Uploads one or more PDF files and runs the ingestion pipeline
(extract, chunk, embed, index) for each. Use --no-ingest to upload
only and ingest later with 'docq ingest'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

// noIngest is a flag for the upload command.
var noIngest bool

func init() {
	uploadCmd.Flags().BoolVar(&noIngest, "no-ingest", false, "Upload without running ingestion")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	ctx := context.Background()

	var failed int
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			cmd.PrintErrf("Failed to read %s: %v\n", path, err)
			failed++
			continue
		}

		doc, err := documentService.Upload(ctx, ownerID, filepath.Base(path), data)
		if err != nil {
			cmd.PrintErrf("Failed to upload %s: %v\n", path, err)
			failed++
			continue
		}

		cmd.Printf("Uploaded %s (document %s)\n", filepath.Base(path), doc.ID)

		if noIngest {
			continue
		}

		if ingestService == nil {
			return errors.New("ingest service not configured")
		}

		if err := ingestService.Ingest(ctx, doc.ID); err != nil {
			cmd.PrintErrf("Ingestion failed for %s: %v\n", doc.ID, err)
			failed++
			continue
		}

		cmd.Printf("Ingested document %s\n", doc.ID)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}
