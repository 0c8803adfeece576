package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent questions and answers",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

// historyLimit is a flag for the history command.
var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Maximum number of records to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	ctx := context.Background()

	records, err := answerService.History(ctx, ownerID, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No questions asked yet.")
		return nil
	}

	for i := range records {
		r := &records[i]
		cmd.Printf("[%s]\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
		cmd.Printf("Q: %s\n", r.Question)
		cmd.Printf("A: %s\n", r.AnswerText)
		cmd.Println()
	}

	return nil
}
