// Package mcp exposes read-only exercise and session tools over the Model
// Context Protocol.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("repbook", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("repbook workout log. List and search exercises, inspect workout sessions with their recorded sets (reps and weight in kg), and export sessions with exercise details inlined."),
	)

	h := &handlers{ds: ds, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolListSessions, Handler: h.listSessions},
		server.ServerTool{Tool: toolGetSession, Handler: h.getSession},
		server.ServerTool{Tool: toolExportSessions, Handler: h.exportSessions},
	)

	s.AddResources(
		server.ServerResource{Resource: resExercises, Handler: h.exercisesResource},
		server.ServerResource{Resource: resSessions, Handler: h.sessionsResource},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

var resExercises = mcp.NewResource(
	"repbook://exercises",
	"Exercises",
	mcp.WithResourceDescription("Every exercise sorted by name, with default sets, reps and charge"),
	mcp.WithMIMEType("application/json"),
)

var resSessions = mcp.NewResource(
	"repbook://sessions",
	"Sessions",
	mcp.WithResourceDescription("All workout sessions with their recorded sets"),
	mcp.WithMIMEType("application/json"),
)
