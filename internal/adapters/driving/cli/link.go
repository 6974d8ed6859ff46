package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/provo-labs/provo-cli/internal/core/domain"
	"github.com/provo-labs/provo-cli/internal/core/ports/driving"
)

var (
	linkTypeFlag     string
	linkStrengthFlag float64
)

var linkCmd = &cobra.Command{
	Use:   "link [source-id] [target-id]",
	Short: "Link two fragments",
	Long: `Creates a typed, weighted link between two fragments. Links are
directed in the data and parallel links between the same pair
accumulate rather than replace each other.

Link types: relates_to (default), references, follows, contradicts,
invalidates.`,
	Args: cobra.ExactArgs(2),
	RunE: runLink,
}

func init() {
	linkCmd.Flags().StringVar(&linkTypeFlag, "type", string(domain.LinkRelatesTo), "link type")
	linkCmd.Flags().Float64Var(&linkStrengthFlag, "strength", domain.DefaultLinkStrength, "link strength in [0, 1]")
	rootCmd.AddCommand(linkCmd)
}

func runLink(cmd *cobra.Command, args []string) error {
	if linkService == nil {
		return errors.New("link service not configured")
	}

	strength := linkStrengthFlag
	link, err := linkService.AddLink(cmd.Context(), driving.LinkRequest{
		SourceID: args[0],
		TargetID: args[1],
		LinkType: domain.LinkType(linkTypeFlag),
		Strength: &strength,
	})
	if err != nil {
		return fmt.Errorf("creating link: %w", err)
	}

	cmd.Printf("Linked %s %s %s (%s, %.2f)\n",
		shortID(link.SourceID), link.LinkType.Icon(), shortID(link.TargetID),
		link.LinkType, link.Strength)
	return nil
}
