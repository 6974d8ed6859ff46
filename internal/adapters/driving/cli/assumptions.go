package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/provo-labs/provo-cli/internal/core/domain"
)

var (
	assumptionsProject string
	assumptionsValid   bool
	assumptionsInvalid bool
	assumptionsLimit   int
)

var assumptionsCmd = &cobra.Command{
	Use:   "assumptions",
	Short: "List tracked assumptions",
	Long: `Lists assumptions recorded across fragments, newest first. Each
assumption carries a tri-state validity: unchecked, still valid, or
invalidated.

Use --valid or --invalid to restrict to one state; with neither flag
all states are shown, unchecked included.`,
	RunE: runAssumptions,
}

var assumptionMarkCmd = &cobra.Command{
	Use:   "mark [assumption-id] (valid|invalid)",
	Short: "Toggle an assumption's validity",
	Long: `Applies a mark-valid or mark-invalid action. Marking the state the
assumption already holds clears it back to unchecked; flipping from
valid to invalid (or back) always passes through unchecked first.`,
	Args: cobra.ExactArgs(2),
	RunE: runAssumptionMark,
}

var assumptionInvalidateCmd = &cobra.Command{
	Use:   "invalidate [assumption-id] [fragment-id]",
	Short: "Invalidate an assumption, recording what broke it",
	Long: `Marks the assumption invalid in one step and records the fragment
that broke it. Unlike mark, this works from any state.`,
	Args: cobra.ExactArgs(2),
	RunE: runAssumptionInvalidate,
}

func init() {
	assumptionsCmd.Flags().StringVarP(&assumptionsProject, "project", "p", "", "restrict to a project")
	assumptionsCmd.Flags().BoolVar(&assumptionsValid, "valid", false, "only still-valid assumptions")
	assumptionsCmd.Flags().BoolVar(&assumptionsInvalid, "invalid", false, "only invalidated assumptions")
	assumptionsCmd.Flags().IntVar(&assumptionsLimit, "limit", 50, "maximum number of results")
	assumptionsCmd.AddCommand(assumptionMarkCmd)
	assumptionsCmd.AddCommand(assumptionInvalidateCmd)
	rootCmd.AddCommand(assumptionsCmd)
}

func runAssumptions(cmd *cobra.Command, _ []string) error {
	if assumptionService == nil {
		return errors.New("assumption service not configured")
	}
	if assumptionsValid && assumptionsInvalid {
		return fmt.Errorf("%w: --valid and --invalid are mutually exclusive", domain.ErrValidation)
	}

	filter := domain.AssumptionFilter{}
	if assumptionsProject != "" {
		filter.Project = &assumptionsProject
	}
	if assumptionsValid {
		v := domain.ValidityValid
		filter.Validity = &v
	}
	if assumptionsInvalid {
		v := domain.ValidityInvalid
		filter.Validity = &v
	}

	assumptions, err := assumptionService.List(cmd.Context(), filter, assumptionsLimit)
	if err != nil {
		return fmt.Errorf("listing assumptions: %w", err)
	}

	if len(assumptions) == 0 {
		cmd.Println("No assumptions found.")
		return nil
	}

	for _, a := range assumptions {
		cmd.Printf("  %s  [%s] %s\n", shortID(a.ID), a.Validity().Label(), a.Statement)
		cmd.Printf("            fragment: %s", shortID(a.FragmentID))
		if a.InvalidatedBy != nil {
			cmd.Printf("  invalidated by: %s", shortID(*a.InvalidatedBy))
		}
		cmd.Println()
	}
	return nil
}

func runAssumptionMark(cmd *cobra.Command, args []string) error {
	if assumptionService == nil {
		return errors.New("assumption service not configured")
	}

	mark := domain.Validity(args[1])
	if mark != domain.ValidityValid && mark != domain.ValidityInvalid {
		return fmt.Errorf("%w: mark must be valid or invalid, got %q", domain.ErrValidation, args[1])
	}

	assumption, err := assumptionService.Toggle(cmd.Context(), args[0], mark)
	if err != nil {
		return fmt.Errorf("marking assumption: %w", err)
	}

	cmd.Printf("Assumption %s is now %s\n", shortID(assumption.ID), assumption.Validity().Label())
	return nil
}

func runAssumptionInvalidate(cmd *cobra.Command, args []string) error {
	if assumptionService == nil {
		return errors.New("assumption service not configured")
	}

	assumption, err := assumptionService.Invalidate(cmd.Context(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("invalidating assumption: %w", err)
	}

	cmd.Printf("Assumption %s invalidated by fragment %s\n", shortID(assumption.ID), shortID(args[1]))
	return nil
}
