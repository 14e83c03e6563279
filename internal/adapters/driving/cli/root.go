// Package cli provides the cobra command tree for the expense tracker.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/expense-tracker/internal/adapters/driven/config/environment"
	"github.com/custodia-labs/expense-tracker/internal/adapters/driven/config/file"
	"github.com/custodia-labs/expense-tracker/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/expense-tracker/internal/core/ports/driving"
	"github.com/custodia-labs/expense-tracker/internal/core/services"
	"github.com/custodia-labs/expense-tracker/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Service dependency levels, recorded in command annotations.
// Commands without the annotation get no services.
const (
	annotationServices = "services"
	servicesSettings   = "settings"
	servicesAll        = "all"
)

var (
	needsSettings = map[string]string{annotationServices: servicesSettings}
	needsAll      = map[string]string{annotationServices: servicesAll}
)

var (
	verbose bool
	homeDir string

	expenseService  driving.ExpenseService
	categoryService driving.CategoryService
	settingsService driving.SettingsService

	// closers release resources opened by initServices.
	closers []io.Closer

	// ownsServices is set when initServices created any service, so
	// closeServices knows to drop them again.
	ownsServices bool
)

var rootCmd = &cobra.Command{
	Use:   "expense-tracker",
	Short: "Track expenses from the terminal or an AI assistant",
	Long: `expense-tracker records expenses in a local SQLite database and
exposes them to AI assistants over the Model Context Protocol.

Data lives next to the executable unless --home, the config file or an
EXPENSE_TRACKER_* variable (also read from <home>/.env) points elsewhere.`,
	SilenceUsage:       true,
	PersistentPreRunE:  initServices,
	PersistentPostRunE: closeServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging to stderr")
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "application home directory (default: executable directory)")
}

// Execute runs the root command. It cancels the command context on
// SIGINT or SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// initServices wires adapters into services. Services already set, for
// example by tests, are left untouched.
func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	level := cmd.Annotations[annotationServices]
	if level != servicesSettings && level != servicesAll {
		return nil
	}

	home, err := resolveHome()
	if err != nil {
		return err
	}

	if settingsService == nil {
		fileStore, err := file.NewConfigStore(home)
		if err != nil {
			return fmt.Errorf("opening config: %w", err)
		}
		configStore, err := environment.NewConfigStore(fileStore, filepath.Join(home, ".env"))
		if err != nil {
			return fmt.Errorf("reading environment: %w", err)
		}
		settingsService = services.NewSettingsService(configStore, home)
		ownsServices = true
		logger.Debug("Config: %s", configStore.Path())
	}

	if level == servicesSettings || expenseService != nil {
		return nil
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	logger.Section("Storage")
	store, err := sqlite.NewStore(settings.Storage.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	if err := store.Initialize(cmd.Context()); err != nil {
		store.Close() //nolint:errcheck
		return fmt.Errorf("initialising database: %w", err)
	}
	closers = append(closers, store)
	logger.Debug("Database: %s", store.Path())

	expenseService = services.NewExpenseService(store)
	ownsServices = true
	categoryService = services.NewCategoryService(file.NewCategoryFile(settings.Resources.Categories))
	logger.Debug("Categories: %s", settings.Resources.Categories)

	return nil
}

func closeServices(_ *cobra.Command, _ []string) error {
	var firstErr error
	for _, c := range closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	closers = nil

	if ownsServices {
		expenseService = nil
		categoryService = nil
		settingsService = nil
		ownsServices = false
	}
	return firstErr
}

// resolveHome returns --home when given, otherwise the directory holding
// the running executable.
func resolveHome() (string, error) {
	if homeDir != "" {
		return filepath.Abs(homeDir)
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
