package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/provo-labs/provo-cli/internal/core/domain"
)

var (
	editProject string
	editTopics  []string
	editSummary string
)

var editCmd = &cobra.Command{
	Use:   "edit [fragment-id]",
	Short: "Edit a fragment's metadata",
	Long: `Updates a fragment's project, topics or summary. Content, source and
capture time are immutable; only the flags given here change anything,
and topics replace the existing set wholesale.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVarP(&editProject, "project", "p", "", "new project label")
	editCmd.Flags().StringArrayVarP(&editTopics, "topic", "t", nil, "replacement topic tag (repeatable)")
	editCmd.Flags().StringVar(&editSummary, "summary", "", "new summary")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	if fragmentService == nil {
		return errors.New("fragment service not configured")
	}

	update := domain.FragmentUpdate{}
	if cmd.Flags().Changed("project") {
		update.Project = &editProject
	}
	if cmd.Flags().Changed("topic") {
		update.Topics = editTopics
	}
	if cmd.Flags().Changed("summary") {
		update.Summary = &editSummary
	}

	fragment, err := fragmentService.Update(cmd.Context(), args[0], update)
	if err != nil {
		return fmt.Errorf("updating fragment: %w", err)
	}

	cmd.Printf("Updated fragment %s\n", shortID(fragment.ID))
	cmd.Printf("  Project: %s\n", strOrDash(fragment.Project))
	cmd.Printf("  Topics:  %s\n", joinOrDash(fragment.Topics))
	cmd.Printf("  Summary: %s\n", strOrDash(fragment.Summary))
	return nil
}
