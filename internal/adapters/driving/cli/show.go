package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [fragment-id]",
	Short: "Show a fragment in full",
	Long: `Shows a fragment with its metadata, content, extracted decisions and
tracked assumptions.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if fragmentService == nil {
		return errors.New("fragment service not configured")
	}

	fragment, err := fragmentService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("fetching fragment: %w", err)
	}

	printFragmentDetail(cmd, fragment)
	return nil
}
