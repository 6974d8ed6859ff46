package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/provo-labs/provo-cli/internal/core/domain"
)

var (
	decisionsProject string
	decisionsLast    string
	decisionsLimit   int
)

var decisionsCmd = &cobra.Command{
	Use:   "decisions",
	Short: "List extracted decisions",
	Long: `Lists decisions recorded across fragments, newest first.

Use --last to restrict to a recent period: 7d (days), 2w (weeks) or
3m (months).`,
	RunE: runDecisions,
}

func init() {
	decisionsCmd.Flags().StringVarP(&decisionsProject, "project", "p", "", "restrict to a project")
	decisionsCmd.Flags().StringVar(&decisionsLast, "last", "", "restrict to a recent period (e.g. 7d, 2w, 3m)")
	decisionsCmd.Flags().IntVar(&decisionsLimit, "limit", 50, "maximum number of results")
	rootCmd.AddCommand(decisionsCmd)
}

func runDecisions(cmd *cobra.Command, _ []string) error {
	if decisionService == nil {
		return errors.New("decision service not configured")
	}

	var project *string
	if decisionsProject != "" {
		project = &decisionsProject
	}

	var since *time.Time
	if decisionsLast != "" {
		t, err := parsePeriod(decisionsLast, time.Now())
		if err != nil {
			return err
		}
		since = &t
	}

	decisions, err := decisionService.List(cmd.Context(), project, since, decisionsLimit)
	if err != nil {
		return fmt.Errorf("listing decisions: %w", err)
	}

	if len(decisions) == 0 {
		cmd.Println("No decisions found.")
		return nil
	}

	for _, d := range decisions {
		cmd.Printf("  %s  %s\n", fmtTime(d.CreatedAt), d.What)
		if d.Why != "" {
			cmd.Printf("                    why: %s\n", d.Why)
		}
		cmd.Printf("                    fragment: %s  confidence: %.2f\n", shortID(d.FragmentID), d.Confidence)
	}
	return nil
}

// parsePeriod turns a period like "7d", "2w" or "3m" into the moment
// that far before now. Months subtract calendar months, not a fixed
// number of days.
func parsePeriod(s string, now time.Time) (time.Time, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 2 {
		return time.Time{}, fmt.Errorf("%w: invalid period %q, expected forms like 7d, 2w, 3m", domain.ErrValidation, s)
	}

	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n <= 0 {
		return time.Time{}, fmt.Errorf("%w: invalid period %q, expected forms like 7d, 2w, 3m", domain.ErrValidation, s)
	}

	switch s[len(s)-1] {
	case 'd':
		return now.AddDate(0, 0, -n), nil
	case 'w':
		return now.AddDate(0, 0, -7*n), nil
	case 'm':
		return now.AddDate(0, -n, 0), nil
	default:
		return time.Time{}, fmt.Errorf("%w: invalid period unit in %q, expected d, w or m", domain.ErrValidation, s)
	}
}
