// ABOUTME: MCP server setup for the ITB measurement store.
// ABOUTME: Wraps the MCP server around the intake service.
package mcp

import (
	"context"

	"github.com/harperreed/itb/internal/i18n"
	"github.com/harperreed/itb/internal/service"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with service access.
type Server struct {
	mcpServer *mcp.Server
	svc       *service.Service
	lang      i18n.Lang
}

// NewServer creates a new MCP server over svc. lang is the default language
// for interpretation text when a tool call does not pick one.
func NewServer(svc *service.Service, lang i18n.Lang, version string) (*Server, error) {
	if version == "" {
		version = "dev"
	}
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "itb",
			Version: version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		svc:       svc,
		lang:      lang,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// table resolves a per-call language override against the server default.
func (s *Server) table(lang string) *i18n.Table {
	if l, ok := i18n.Parse(lang); ok {
		return i18n.For(l)
	}
	return i18n.For(s.lang)
}
