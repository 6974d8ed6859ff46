// Command provo is the decision-provenance CLI. It wires the storage
// and search adapters to the core services according to the persisted
// configuration, then hands control to the cobra command tree.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/provo-labs/provo-cli/internal/adapters/driven/api"
	"github.com/provo-labs/provo-cli/internal/adapters/driven/config/file"
	"github.com/provo-labs/provo-cli/internal/adapters/driven/search/lexical"
	"github.com/provo-labs/provo-cli/internal/adapters/driven/storage/sqlite"
	"github.com/provo-labs/provo-cli/internal/adapters/driving/cli"
	"github.com/provo-labs/provo-cli/internal/core/ports/driven"
	"github.com/provo-labs/provo-cli/internal/core/services"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "provo: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	stores, cleanup, err := buildStores(configStore)
	if err != nil {
		return err
	}
	defer cleanup()

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Fragment:   services.NewFragmentService(stores.fragments, stores.links),
		Link:       services.NewLinkService(stores.links, stores.fragments),
		Graph:      services.NewGraphService(stores.fragments, stores.links),
		Search:     services.NewSearchService(stores.searcher),
		Decision:   services.NewDecisionService(stores.decisions),
		Assumption: services.NewAssumptionService(stores.assumptions, stores.fragments),
		Config:     configStore,
	})

	return cli.Execute()
}

// stores bundles the driven ports behind the services. In local mode
// they all come from one SQLite store; in api mode the remote client
// serves every port.
type stores struct {
	fragments   driven.FragmentStore
	links       driven.LinkStore
	decisions   driven.DecisionStore
	assumptions driven.AssumptionStore
	searcher    driven.Searcher
}

func buildStores(configStore *file.ConfigStore) (stores, func(), error) {
	if configStore.GetString(file.KeyStorageMode) == file.StorageModeAPI {
		cfg := api.Config{BaseURL: configStore.GetString(file.KeyAPIURL)}
		if secs := configStore.GetInt(file.KeyAPITimeoutSeconds); secs > 0 {
			cfg.Timeout = time.Duration(secs) * time.Second
		}

		client := api.NewClient(cfg)
		return stores{
			fragments:   client,
			links:       client,
			decisions:   client,
			assumptions: client,
			searcher:    client,
		}, func() {}, nil
	}

	store, err := sqlite.NewStore(configStore.GetString(file.KeyStorageDataDir))
	if err != nil {
		return stores{}, nil, fmt.Errorf("opening local store: %w", err)
	}

	fragments := store.FragmentStore()
	return stores{
		fragments:   fragments,
		links:       store.LinkStore(),
		decisions:   store.DecisionStore(),
		assumptions: store.AssumptionStore(),
		searcher:    lexical.NewSearcher(fragments),
	}, func() { _ = store.Close() }, nil
}
