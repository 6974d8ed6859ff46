package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/provo-labs/provo-cli/internal/core/domain"
)

var (
	relatedType  string
	relatedLimit int
)

var relatedCmd = &cobra.Command{
	Use:   "related [fragment-id]",
	Short: "Show fragments linked to a fragment",
	Long: `Lists fragments connected to the given one, strongest links first.
Use --type to restrict to a single relationship kind.`,
	Args: cobra.ExactArgs(1),
	RunE: runRelated,
}

func init() {
	relatedCmd.Flags().StringVar(&relatedType, "type", "", "filter by link type (relates_to, references, follows, contradicts, invalidates)")
	relatedCmd.Flags().IntVar(&relatedLimit, "limit", 20, "maximum number of results")
	rootCmd.AddCommand(relatedCmd)
}

func runRelated(cmd *cobra.Command, args []string) error {
	if fragmentService == nil {
		return errors.New("fragment service not configured")
	}

	var linkType *domain.LinkType
	if relatedType != "" {
		lt := domain.LinkType(relatedType)
		if !lt.IsValid() {
			return fmt.Errorf("%w: unknown link type %q", domain.ErrValidation, relatedType)
		}
		linkType = &lt
	}

	related, err := fragmentService.Related(cmd.Context(), args[0], linkType, relatedLimit)
	if err != nil {
		return fmt.Errorf("listing related fragments: %w", err)
	}

	if len(related) == 0 {
		cmd.Println("No linked fragments.")
		return nil
	}

	cmd.Printf("Fragments linked to %s:\n", shortID(args[0]))
	cmd.Println()
	for _, r := range related {
		cmd.Printf("  %s %s (%.2f)  %s\n", r.LinkType.Icon(), r.LinkType.Label(), r.Strength, shortID(r.Fragment.ID))
		cmd.Printf("      %s\n", snippet(r.Fragment.Content))
	}
	return nil
}
