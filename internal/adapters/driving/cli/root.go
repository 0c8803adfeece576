// Package cli implements the docq command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/halcyon-labs/docq-cli/internal/core/ports/driven"
	"github.com/halcyon-labs/docq-cli/internal/core/ports/driving"
	"github.com/halcyon-labs/docq-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// DefaultOwner scopes documents when no --owner flag is given.
const DefaultOwner = "local"

// Services injected by the composition root before Execute.
var (
	documentService driving.DocumentService
	ingestService   driving.Ingestor
	answerService   driving.AnswerService
	configStore     driven.ConfigStore
)

// Services bundles the dependencies the CLI needs.
type Services struct {
	Document driving.DocumentService
	Ingest   driving.Ingestor
	Answer   driving.AnswerService
	Config   driven.ConfigStore
}

// SetServices injects service implementations into the CLI commands.
func SetServices(s Services) {
	documentService = s.Document
	ingestService = s.Ingest
	answerService = s.Answer
	configStore = s.Config
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Persistent flags.
var (
	verbose bool
	ownerID string
)

var rootCmd = &cobra.Command{
	Use:   "docq",
	Short: "Ask questions about your PDF documents",
	Long: `docq ingests PDF documents into a local index and answers
free-text questions about their content, citing the passages the
answer was drawn from.

Documents are chunked, embedded, and indexed locally. Answer synthesis
uses a configured LLM provider (Ollama by default).`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&ownerID, "owner", DefaultOwner, "Owner scope for documents and questions")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
