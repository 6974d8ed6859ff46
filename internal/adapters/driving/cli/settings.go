package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/provo-labs/provo-cli/internal/adapters/driven/config/file"
)

// knownSettings maps accepted keys to a short description, shown by
// "settings" with no arguments.
var knownSettings = map[string]string{
	file.KeyStorageMode:        "storage backend: local (SQLite) or api (remote server)",
	file.KeyStorageDataDir:     "local data directory (default ~/.provo/data)",
	file.KeyAPIURL:             "remote API base URL for api mode",
	file.KeyAPITimeoutSeconds:  "remote request timeout in seconds",
	file.KeySearchDefaultLimit: "default search result count",
}

// settingsOrder keeps the listing stable.
var settingsOrder = []string{
	file.KeyStorageMode,
	file.KeyStorageDataDir,
	file.KeyAPIURL,
	file.KeyAPITimeoutSeconds,
	file.KeySearchDefaultLimit,
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change provo settings. Settings live in a TOML file under
~/.provo and take effect on the next invocation.`,
	RunE: runSettingsShow,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	for _, key := range settingsOrder {
		value, ok := configStore.Get(key)
		if !ok {
			cmd.Printf("  %s = (not set)\n", key)
		} else {
			cmd.Printf("  %s = %v\n", key, value)
		}
		cmd.Printf("      %s\n", knownSettings[key])
	}
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key := args[0]
	if _, known := knownSettings[key]; !known {
		return fmt.Errorf("unknown setting %q", key)
	}

	value, ok := configStore.Get(key)
	if !ok {
		cmd.Printf("%s is not set\n", key)
		return nil
	}
	cmd.Printf("%v\n", value)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]
	if _, known := knownSettings[key]; !known {
		return fmt.Errorf("unknown setting %q", key)
	}

	value, err := coerceSettingValue(key, raw)
	if err != nil {
		return err
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("saving setting: %w", err)
	}
	cmd.Printf("Set %s = %v\n", key, value)
	return nil
}

// coerceSettingValue validates and converts the raw CLI string to the
// type the setting expects.
func coerceSettingValue(key, raw string) (any, error) {
	switch key {
	case file.KeyStorageMode:
		if raw != file.StorageModeLocal && raw != file.StorageModeAPI {
			return nil, fmt.Errorf("storage mode must be %q or %q", file.StorageModeLocal, file.StorageModeAPI)
		}
		return raw, nil
	case file.KeyAPITimeoutSeconds, file.KeySearchDefaultLimit:
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer", key)
		}
		return int64(n), nil
	default:
		return raw, nil
	}
}
