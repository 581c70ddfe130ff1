package mcp

import (
	"context"
	"encoding/json"
	"errors"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolDefinition describes a tool exposed by the server.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema map[string]any
	Annotations *sdkmcp.ToolAnnotations
}

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	destructive := true
	return []ToolDefinition{
		{
			Name:        "create_note",
			Description: "Create a note at the top of the list. Empty content is ignored; whitespace is kept as written.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"content": map[string]any{
						"type":        "string",
						"description": "Note text",
					},
				},
				"required": []string{"content"},
			},
		},
		{
			Name:        "delete_note",
			Description: "Delete a note by id. Unknown ids are not an error.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "Note ID",
					},
				},
				"required": []string{"id"},
			},
			Annotations: &sdkmcp.ToolAnnotations{DestructiveHint: &destructive, IdempotentHint: true},
		},
		{
			Name:        "search_notes",
			Description: "Find notes whose content contains the query, ignoring case. Newest first.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "Substring to look for (empty matches every note)",
					},
					"limit": map[string]any{
						"type":        "integer",
						"description": "Maximum number of results",
					},
				},
			},
			Annotations: &sdkmcp.ToolAnnotations{ReadOnlyHint: true},
		},
		{
			Name:        "list_notes",
			Description: "List every note, newest first",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
			Annotations: &sdkmcp.ToolAnnotations{ReadOnlyHint: true},
		},
		{
			Name:        "dictation_status",
			Description: "Report whether speech recognition is available and the settings it runs with",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
			Annotations: &sdkmcp.ToolAnnotations{ReadOnlyHint: true},
		},
	}
}

func registerTools(server *sdkmcp.Server, handler *Handler) {
	for _, def := range buildToolCatalog() {
		name := def.Name
		server.AddTool(&sdkmcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.InputSchema,
			Annotations: def.Annotations,
		}, func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
			var args json.RawMessage
			if req != nil && req.Params != nil {
				args = req.Params.Arguments
			}
			result, err := handler.Handle(ctx, name, args)
			if err != nil {
				return toolError(err), nil
			}
			return toolResult(result)
		})
	}
}

func toolResult(payload any) (*sdkmcp.CallToolResult, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil
}

func toolError(err error) *sdkmcp.CallToolResult {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		apiErr = &APIError{Code: "INTERNAL", Message: err.Error()}
	}
	data, _ := json.Marshal(apiErr)
	res := &sdkmcp.CallToolResult{}
	res.SetError(err)
	res.Content = []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}}
	return res
}
