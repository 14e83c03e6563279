package mcp

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/expense-tracker/internal/logger"
)

const (
	// ServerName is the implementation name advertised to clients.
	ServerName = "ExpenseTracker"

	// Version is the MCP server version.
	Version = "0.1.0"
)

// Server is the MCP server for the expense tracker.
type Server struct {
	ports   *Ports
	server  *mcp.Server
	metrics *metrics
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    ServerName,
		Version: Version,
	}

	opts := &mcp.ServerOptions{
		Instructions:       "Record expenses with add_expense, query them with list_expenses and summarize. Dates are compared as text, so use YYYY-MM-DD.",
		Logger:             logger.Slog(),
		SubscribeHandler:   handleSubscribe,
		UnsubscribeHandler: handleUnsubscribe,
		GetSessionID:       uuid.NewString,
	}

	s := &Server{
		ports:   ports,
		server:  mcp.NewServer(impl, opts),
		metrics: newMetrics(),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// NotifyCategoriesChanged tells subscribed sessions that the categories
// resource changed.
func (s *Server) NotifyCategoriesChanged(ctx context.Context) error {
	return s.server.ResourceUpdated(ctx, &mcp.ResourceUpdatedNotificationParams{
		URI: CategoriesURI,
	})
}

func handleSubscribe(_ context.Context, req *mcp.SubscribeRequest) error {
	if req.Params.URI != CategoriesURI {
		return mcp.ResourceNotFoundError(req.Params.URI)
	}
	return nil
}

func handleUnsubscribe(_ context.Context, req *mcp.UnsubscribeRequest) error {
	if req.Params.URI != CategoriesURI {
		return mcp.ResourceNotFoundError(req.Params.URI)
	}
	return nil
}
