package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halcyon-labs/docq-cli/internal/core/domain"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Generate and manage document summaries",
}

var summaryCreateCmd = &cobra.Command{
	Use:   "create [doc-id]",
	Short: "Summarise a document",
	Long: `Generates an LLM summary of a ready document and stores it.
Styles: brief, comprehensive, bullet_points, key_concepts, exam_prep.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummaryCreate,
}

var summaryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored summaries",
	Args:  cobra.NoArgs,
	RunE:  runSummaryList,
}

var summaryDeleteCmd = &cobra.Command{
	Use:   "delete [summary-id]",
	Short: "Delete a stored summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummaryDelete,
}

// Flags for the create command.
var (
	summaryStyle string
	summaryFocus string
)

func init() {
	summaryCreateCmd.Flags().StringVarP(&summaryStyle, "style", "s", string(domain.SummaryBrief), "Summary style")
	summaryCreateCmd.Flags().StringVar(&summaryFocus, "focus", "", "Topic to pay special attention to")

	summaryCmd.AddCommand(summaryCreateCmd)
	summaryCmd.AddCommand(summaryListCmd)
	summaryCmd.AddCommand(summaryDeleteCmd)
	rootCmd.AddCommand(summaryCmd)
}

func runSummaryCreate(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	docID := args[0]
	ctx := context.Background()

	summary, err := answerService.Summarise(ctx, docID, domain.SummaryStyle(summaryStyle), summaryFocus)
	if err != nil {
		return fmt.Errorf("failed to summarise document: %w", err)
	}

	cmd.Println(summary.Content)
	cmd.Printf("\nSaved as summary %s\n", summary.ID)
	return nil
}

func runSummaryList(cmd *cobra.Command, _ []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	ctx := context.Background()

	summaries, err := answerService.ListSummaries(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to list summaries: %w", err)
	}

	if len(summaries) == 0 {
		cmd.Println("No summaries stored.")
		return nil
	}

	for i := range summaries {
		s := &summaries[i]
		cmd.Printf("  %s\n", s.ID)
		cmd.Printf("    Document:  %s\n", s.DocumentID)
		cmd.Printf("    Style:     %s\n", s.Style)
		cmd.Printf("    Created:   %s\n", s.CreatedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}

	cmd.Printf("Total: %d summaries\n", len(summaries))
	return nil
}

func runSummaryDelete(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	summaryID := args[0]
	ctx := context.Background()

	if err := answerService.DeleteSummary(ctx, summaryID); err != nil {
		return fmt.Errorf("failed to delete summary: %w", err)
	}

	cmd.Printf("Summary %s deleted.\n", summaryID)
	return nil
}
