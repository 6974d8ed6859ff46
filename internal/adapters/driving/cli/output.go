package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/provo-labs/provo-cli/internal/core/domain"
)

// Shared rendering helpers for the command set. All output goes through
// the cobra command so tests can capture it.

const (
	displayTimeLayout = "2006-01-02 15:04"
	snippetLength     = 120
)

// shortID returns the first eight characters of an identifier, enough
// to disambiguate in a terminal listing. Full IDs stay available via
// --json output.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func fmtTime(t time.Time) string {
	return t.Local().Format(displayTimeLayout)
}

func strOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

// snippet returns a display-sized slice of the content with newlines
// collapsed.
func snippet(content string) string {
	flat := strings.Join(strings.Fields(content), " ")
	return domain.Truncate(flat, snippetLength)
}

// printFragmentLine renders the one-line listing form of a fragment.
func printFragmentLine(cmd *cobra.Command, f domain.Fragment) {
	cmd.Printf("  %s  %s  %s\n", shortID(f.ID), fmtTime(f.CapturedAt), snippet(f.Content))
	if f.Project != nil && *f.Project != "" {
		cmd.Printf("            project: %s\n", *f.Project)
	}
}

// printFragmentDetail renders the full fragment view used by show and
// capture.
func printFragmentDetail(cmd *cobra.Command, f *domain.Fragment) {
	cmd.Printf("Fragment %s\n", f.ID)
	cmd.Printf("  Captured:     %s\n", fmtTime(f.CapturedAt))
	cmd.Printf("  Source:       %s\n", f.SourceType.Label())
	if f.SourceRef != nil && *f.SourceRef != "" {
		cmd.Printf("  Source ref:   %s\n", *f.SourceRef)
	}
	cmd.Printf("  Project:      %s\n", strOrDash(f.Project))
	cmd.Printf("  Topics:       %s\n", joinOrDash(f.Topics))
	if len(f.Participants) > 0 {
		cmd.Printf("  Participants: %s\n", strings.Join(f.Participants, ", "))
	}
	if f.Summary != nil && *f.Summary != "" {
		cmd.Printf("  Summary:      %s\n", *f.Summary)
	}
	cmd.Println()
	cmd.Println(f.Content)

	if len(f.Decisions) > 0 {
		cmd.Println()
		cmd.Println("Decisions:")
		for _, d := range f.Decisions {
			cmd.Printf("  - %s\n", d.What)
			if d.Why != "" {
				cmd.Printf("    why: %s\n", d.Why)
			}
			cmd.Printf("    confidence: %.2f\n", d.Confidence)
		}
	}

	if len(f.Assumptions) > 0 {
		cmd.Println()
		cmd.Println("Assumptions:")
		for _, a := range f.Assumptions {
			cmd.Printf("  - [%s] %s\n", a.Validity().Label(), a.Statement)
			if a.InvalidatedBy != nil {
				cmd.Printf("    invalidated by: %s\n", shortID(*a.InvalidatedBy))
			}
		}
	}
}
