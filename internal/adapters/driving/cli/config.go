package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/expense-tracker/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit configuration",
	Long: `Inspect and edit config.toml in the application home directory.

Keys:
  storage.database       SQLite database file
  resources.categories   categories file served as expense://categories
  mcp.watch_categories   notify subscribers when the categories file changes
  mcp.http_rate          HTTP transport requests per second (0 disables limiting)
  mcp.http_burst         HTTP transport burst size

Relative paths are resolved against the home directory.`,
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print the config file path",
	Args:        cobra.NoArgs,
	Annotations: needsSettings,
	RunE:        runConfigPath,
}

var configGetCmd = &cobra.Command{
	Use:         "get [key]",
	Short:       "Print resolved settings",
	Args:        cobra.MaximumNArgs(1),
	Annotations: needsSettings,
	RunE:        runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:         "set <key> <value>",
	Short:       "Persist a setting",
	Args:        cobra.ExactArgs(2),
	Annotations: needsSettings,
	RunE:        runConfigSet,
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	fmt.Fprintln(cmd.OutOrStdout(), settingsService.Path())
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(args) == 1 {
		value, ok := settingValue(settings, args[0])
		if !ok {
			return fmt.Errorf("unknown config key %q", args[0])
		}
		fmt.Fprintln(out, value)
		return nil
	}

	for _, key := range settingsService.Keys() {
		value, _ := settingValue(settings, key)
		fmt.Fprintf(out, "%s = %s\n", key, value)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}

	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func settingValue(s *domain.AppSettings, key string) (string, bool) {
	switch key {
	case "storage.database":
		return s.Storage.Database, true
	case "resources.categories":
		return s.Resources.Categories, true
	case "mcp.watch_categories":
		return strconv.FormatBool(s.MCP.WatchCategories), true
	case "mcp.http_rate":
		return strconv.FormatFloat(s.MCP.HTTPRate, 'g', -1, 64), true
	case "mcp.http_burst":
		return strconv.Itoa(s.MCP.HTTPBurst), true
	default:
		return "", false
	}
}
