package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/repbook/internal/views"
)

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) exercisesResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	list, err := h.ds.ListExercises(ctx, "", views.SortName)
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, list.Exercises)
}

func (h *handlers) sessionsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	sessions, err := h.ds.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, sessions)
}
