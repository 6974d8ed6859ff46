package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete [fragment-id]",
	Short: "Delete a fragment",
	Long: `Deletes a fragment together with its decisions, its assumptions and
every link touching it. Assumptions elsewhere that were invalidated by
this fragment fall back to no recorded invalidator.

Asks for confirmation unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	if fragmentService == nil {
		return errors.New("fragment service not configured")
	}

	if !deleteYes {
		cmd.Printf("Delete fragment %s and everything referencing it? [y/N]: ", shortID(args[0]))
		reader := bufio.NewReader(os.Stdin)
		input, _ := reader.ReadString('\n') //nolint:errcheck // CLI prompt, empty input means no
		if !strings.EqualFold(strings.TrimSpace(input), "y") {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := fragmentService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("deleting fragment: %w", err)
	}

	cmd.Printf("Deleted fragment %s\n", shortID(args[0]))
	return nil
}
