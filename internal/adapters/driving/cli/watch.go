package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/halcyon-labs/docq-cli/internal/adapters/driving/watch"
	"github.com/halcyon-labs/docq-cli/internal/core/services"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and ingest new PDFs",
	Long: `Watches a directory and automatically uploads and ingests PDF
files as they appear. Existing PDFs are ingested on startup. Runs
until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := watchDirectory(ctx, args[0]); err != nil {
		return err
	}

	cmd.Println("Watch stopped.")
	return nil
}

// watchDirectory runs the directory watcher alongside a periodic
// staleness sweep. Watch sessions are long-lived, so documents
// abandoned mid-processing are recovered continuously rather than
// only at startup.
func watchDirectory(ctx context.Context, dir string) error {
	if documentService == nil || ingestService == nil {
		return errors.New("services not configured")
	}

	recovery := services.NewRecovery(ingestService)
	go func() {
		_ = recovery.Start(ctx)
	}()
	defer func() {
		_ = recovery.Stop()
	}()

	watcher := watch.New(documentService, ingestService, ownerID)
	if err := watcher.Run(ctx, dir); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
