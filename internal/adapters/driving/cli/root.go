// Package cli implements the provo command line interface using cobra.
// Commands talk to the core services through the driving ports; wiring
// happens in cmd/provo, which injects the services before Execute runs.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/provo-labs/provo-cli/internal/core/ports/driven"
	"github.com/provo-labs/provo-cli/internal/core/ports/driving"
	"github.com/provo-labs/provo-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Injected services. Nil until SetServices runs; every command guards
// against the nil case so a partially wired binary fails cleanly.
var (
	fragmentService   driving.FragmentService
	linkService       driving.LinkService
	graphService      driving.GraphService
	searchService     driving.SearchService
	decisionService   driving.DecisionService
	assumptionService driving.AssumptionService
	configStore       driven.ConfigStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "provo",
	Short: "Decision provenance for your projects",
	Long: `Provo captures fragments of context (notes, meeting excerpts, decisions)
and builds a provenance graph over them: what was decided, why, on which
assumptions, and which later fragments broke those assumptions.

Start by capturing something:
  provo capture "We picked Postgres over Dynamo for the billing service"

Then explore:
  provo search "postgres"
  provo related <fragment-id>
  provo browse`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

// Services bundles everything the commands need. Fields left nil
// disable the commands that depend on them.
type Services struct {
	Fragment   driving.FragmentService
	Link       driving.LinkService
	Graph      driving.GraphService
	Search     driving.SearchService
	Decision   driving.DecisionService
	Assumption driving.AssumptionService
	Config     driven.ConfigStore
}

// SetServices injects the core services into the command tree.
func SetServices(s Services) {
	fragmentService = s.Fragment
	linkService = s.Link
	graphService = s.Graph
	searchService = s.Search
	decisionService = s.Decision
	assumptionService = s.Assumption
	configStore = s.Config
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
