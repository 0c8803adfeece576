package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halcyon-labs/docq-cli/internal/core/domain"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Generate and manage study questions",
}

var questionsGenerateCmd = &cobra.Command{
	Use:   "generate [doc-id]",
	Short: "Generate study questions from a document",
	Long: `Generates study questions from a ready document and stores them.
Types: mcq, short_answer, essay, mixed.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuestionsGenerate,
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored question sets",
	Args:  cobra.NoArgs,
	RunE:  runQuestionsList,
}

var questionsDeleteCmd = &cobra.Command{
	Use:   "delete [set-id]",
	Short: "Delete a stored question set",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuestionsDelete,
}

// Flags for the generate command.
var (
	questionsCount int
	questionsType  string
)

func init() {
	questionsGenerateCmd.Flags().IntVarP(&questionsCount, "count", "n", 0, "Number of questions to generate (default 5)")
	questionsGenerateCmd.Flags().StringVarP(&questionsType, "type", "t", string(domain.QuestionsMixed), "Question type")

	questionsCmd.AddCommand(questionsGenerateCmd)
	questionsCmd.AddCommand(questionsListCmd)
	questionsCmd.AddCommand(questionsDeleteCmd)
	rootCmd.AddCommand(questionsCmd)
}

func runQuestionsGenerate(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	docID := args[0]
	ctx := context.Background()

	set, err := answerService.GenerateQuestions(ctx, docID, questionsCount, domain.QuestionType(questionsType))
	if err != nil {
		return fmt.Errorf("failed to generate questions: %w", err)
	}

	cmd.Println(set.Content)
	cmd.Printf("\nSaved as question set %s\n", set.ID)
	return nil
}

func runQuestionsList(cmd *cobra.Command, _ []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	ctx := context.Background()

	sets, err := answerService.ListQuestionSets(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to list question sets: %w", err)
	}

	if len(sets) == 0 {
		cmd.Println("No question sets stored.")
		return nil
	}

	for i := range sets {
		set := &sets[i]
		cmd.Printf("  %s\n", set.ID)
		cmd.Printf("    Document:  %s\n", set.DocumentID)
		cmd.Printf("    Type:      %s\n", set.Type)
		cmd.Printf("    Count:     %d\n", set.Count)
		cmd.Printf("    Created:   %s\n", set.CreatedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}

	cmd.Printf("Total: %d question sets\n", len(sets))
	return nil
}

func runQuestionsDelete(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	setID := args[0]
	ctx := context.Background()

	if err := answerService.DeleteQuestionSet(ctx, setID); err != nil {
		return fmt.Errorf("failed to delete question set: %w", err)
	}

	cmd.Printf("Question set %s deleted.\n", setID)
	return nil
}
