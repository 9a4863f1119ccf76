package mcpsrv

import (
	"context"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/ghspec/internal/config"
	"github.com/usestring/ghspec/internal/logging"
	"github.com/usestring/ghspec/internal/mcp"
	"github.com/usestring/ghspec/internal/mcp/tools"
)

// Server is the ghspec MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal   *mcp.Server
	toolDeps   *tools.Deps
	deps       *Deps
	logCleanup func() error
}

// NewServer creates a new MCP server with the builtin ghspec tools.
//
// Configuration is loaded from the environment; use functional options to
// pick the spec document, configure logging and add custom tools.
func NewServer(opts ...Option) (*Server, error) {
	cfg := &serverConfig{
		config: config.Load(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.specFile != "" {
		cfg.config.SpecFile = cfg.specFile
	}

	logCfg := logging.FromConfig(cfg.config)
	if cfg.logLevel != "" {
		logCfg.Level = cfg.logLevel
	}
	if cfg.logFile != "" {
		logCfg.FilePath = cfg.logFile
	}
	logCleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	toolDeps, err := tools.NewDeps(cfg.config)
	if err != nil {
		_ = logCleanup()
		return nil, err
	}

	// Same values, public type.
	deps := &Deps{
		Config:    toolDeps.Config,
		Validator: toolDeps.Validator,
		Indexer:   toolDeps.Indexer,
		Search:    toolDeps.Search,
		Query:     toolDeps.Query,
		Linter:    toolDeps.Linter,
		Batch:     toolDeps.Batch,
	}

	var internalOpts []mcp.ServerOption
	if !cfg.disableBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	if !cfg.disableBuiltinPrompts {
		internalOpts = append(internalOpts, mcp.WithBuiltinPrompts())
	}

	for _, fn := range cfg.toolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.promptRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.resourceRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.deferredToolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		_ = logCleanup()
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return &Server{
		internal:   internal,
		toolDeps:   toolDeps,
		deps:       deps,
		logCleanup: logCleanup,
	}, nil
}

// Run starts the MCP server with stdio transport and blocks until the context
// is cancelled or the client disconnects.
//
// The search index is built up front so the first search does not pay for
// it. A document that fails to load is logged, not fatal: validation tools
// report the load error per call, and the index rebuilds once the file is
// fixed.
func (s *Server) Run(ctx context.Context) error {
	if err := s.toolDeps.Indexer.Refresh(ctx); err != nil {
		slog.Warn("spec document not indexed",
			slog.String("path", s.toolDeps.Validator.Source),
			slog.String("error", err.Error()),
		)
	} else {
		slog.Info("spec document indexed",
			slog.String("path", s.toolDeps.Validator.Source),
			slog.Int("entries", s.toolDeps.Indexer.DocCount()),
		)
	}
	return s.internal.Run(ctx)
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}

// MCPServer returns the underlying SDK server, for in-memory transports in
// tests.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.internal.MCPServer()
}
