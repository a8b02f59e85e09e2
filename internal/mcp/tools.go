package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/repbook/internal/views"
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List exercises, optionally filtered by a case-insensitive search on name or muscle group. With sort=muscleGroup the result is also grouped."),
	mcp.WithString("query", mcp.Description("Substring to match against exercise name or muscle group")),
	mcp.WithString("sort", mcp.Description("Sort order. Defaults to name."), mcp.Enum("name", "muscleGroup", "charge", "recent")),
)

var toolListSessions = mcp.NewTool("list_sessions",
	mcp.WithDescription("List all workout sessions with their exercise references and recorded sets."),
)

var toolGetSession = mcp.NewTool("get_session",
	mcp.WithDescription("Get one session with each entry joined to its exercise, plus the exercises not yet in the session."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Session id")),
)

var toolExportSessions = mcp.NewTool("export_sessions",
	mcp.WithDescription("Export every session with exercise name, muscle group, notes and video link copied into each entry."),
)

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sort := views.SortName
	if raw := req.GetString("sort", ""); raw != "" {
		c, err := views.ParseSortCriterion(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		sort = c
	}

	list, err := h.ds.ListExercises(ctx, req.GetString("query", ""), sort)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(list)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listSessions(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := h.ds.ListSessions(ctx)
	if err != nil {
		h.log.Error("mcp list_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	detail, err := h.ds.GetSession(ctx, id)
	if err != nil {
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(detail)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) exportSessions(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := h.ds.ExportSessions(ctx)
	if err != nil {
		return mcp.NewToolResultError("export failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
