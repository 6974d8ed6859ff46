package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/provo-labs/provo-cli/internal/core/domain"
	"github.com/provo-labs/provo-cli/internal/core/ports/driving"
)

var (
	captureProject string
	captureTopics  []string
	captureSource  string
	captureRef     string
	captureLinkTo  string
)

var captureCmd = &cobra.Command{
	Use:   "capture [content]",
	Short: "Capture a new context fragment",
	Long: `Captures a fragment of context: a note, a meeting excerpt, a decision
as it happens. The fragment gets a stable identifier and a capture
timestamp; both are immutable afterwards.

Use --link to immediately connect the new fragment to an existing one
with a relates_to link.`,
	Args: cobra.ExactArgs(1),
	RunE: runCapture,
}

func init() {
	captureCmd.Flags().StringVarP(&captureProject, "project", "p", "", "project label")
	captureCmd.Flags().StringArrayVarP(&captureTopics, "topic", "t", nil, "topic tag (repeatable)")
	captureCmd.Flags().StringVar(&captureSource, "source", "", "source type (quick_capture, zoom, teams, notes)")
	captureCmd.Flags().StringVar(&captureRef, "ref", "", "source reference (file path, meeting id, URL)")
	captureCmd.Flags().StringVar(&captureLinkTo, "link", "", "fragment id to link the capture to")
	rootCmd.AddCommand(captureCmd)
}

func runCapture(cmd *cobra.Command, args []string) error {
	if fragmentService == nil {
		return errors.New("fragment service not configured")
	}

	req := driving.CaptureRequest{
		Content:    args[0],
		SourceType: domain.SourceType(captureSource),
		Topics:     captureTopics,
	}
	if captureProject != "" {
		req.Project = &captureProject
	}
	if captureRef != "" {
		req.SourceRef = &captureRef
	}

	fragment, err := fragmentService.Capture(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("capture failed: %w", err)
	}

	cmd.Printf("Captured fragment %s\n", fragment.ID)

	if captureLinkTo != "" {
		if linkService == nil {
			return errors.New("link service not configured")
		}
		link, err := linkService.AddLink(cmd.Context(), driving.LinkRequest{
			SourceID: fragment.ID,
			TargetID: captureLinkTo,
		})
		if err != nil {
			return fmt.Errorf("fragment captured but linking failed: %w", err)
		}
		cmd.Printf("Linked to %s (%s)\n", shortID(link.TargetID), link.LinkType)
	}

	return nil
}
