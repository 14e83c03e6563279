package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/expense-tracker/internal/adapters/driving/mcp"
	"github.com/custodia-labs/expense-tracker/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead. The MCP endpoint is served
at /, with /healthz and Prometheus /metrics alongside. MCP requests beyond
mcp.http_rate/mcp.http_burst are rejected with 429.

Examples:
  # Stdio mode (default, for Claude Desktop)
  expense-tracker mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  expense-tracker mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "expense-tracker": {
        "command": "/path/to/expense-tracker",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args:        cobra.NoArgs,
	Annotations: needsAll,
	RunE:        runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	ports := &mcp.Ports{
		Expense:    expenseService,
		Categories: categoryService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if settings.MCP.WatchCategories {
		watcher, err := mcp.NewCategoryWatcher(categoryService.Location())
		if err != nil {
			logger.Warn("category notifications disabled: %v", err)
		} else {
			g.Go(func() error {
				return watcher.Run(ctx, server.NotifyCategoriesChanged)
			})
		}
	}

	g.Go(func() error {
		// The watcher only stops with the context, so end it with the server.
		defer cancel()
		if port > 0 {
			addr := fmt.Sprintf(":%d", port)
			fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
			return server.RunHTTP(ctx, addr, mcp.HTTPLimits{
				RequestsPerSecond: settings.MCP.HTTPRate,
				Burst:             settings.MCP.HTTPBurst,
			})
		}
		return server.Run(ctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
