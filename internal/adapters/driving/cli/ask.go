package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halcyon-labs/docq-cli/internal/core/domain"
	"github.com/halcyon-labs/docq-cli/internal/core/ports/driving"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your documents",
	Long: `Retrieves the most relevant chunks from your indexed documents
and synthesises an answer with citations.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

// Flags for the ask command.
var (
	askTopK       int
	askMaxContext int
	askDocuments  []string
)

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "Number of chunks to retrieve (default 5)")
	askCmd.Flags().IntVar(&askMaxContext, "max-context", 0, "Maximum context size in characters (default 6000)")
	askCmd.Flags().StringSliceVar(&askDocuments, "doc", nil, "Restrict retrieval to specific document IDs (repeatable)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	question := args[0]
	ctx := context.Background()

	answer, err := answerService.Answer(ctx, ownerID, question, driving.AnswerOptions{
		K:               askTopK,
		MaxContextChars: askMaxContext,
		DocumentIDs:     askDocuments,
	})
	if err != nil {
		// Synthesis failures still return the retrieved citations,
		// which are worth showing.
		if errors.Is(err, domain.ErrAnswerProvider) && answer != nil {
			cmd.PrintErrf("Answer synthesis failed: %v\n\n", err)
			printCitations(cmd, answer.Citations)
			return err
		}
		return fmt.Errorf("failed to answer question: %w", err)
	}

	cmd.Println(answer.Text)

	if len(answer.Citations) > 0 {
		cmd.Println()
		printCitations(cmd, answer.Citations)
	}

	return nil
}

func printCitations(cmd *cobra.Command, citations []domain.Citation) {
	if len(citations) == 0 {
		return
	}

	cmd.Println("Sources:")
	for i, c := range citations {
		pages := fmt.Sprintf("p. %d", c.PageStart)
		if c.PageEnd > c.PageStart {
			pages = fmt.Sprintf("pp. %d-%d", c.PageStart, c.PageEnd)
		}
		cmd.Printf("  [%d] %s (%s, score %.3f)\n", i+1, c.Filename, pages, c.Score)
	}
}
