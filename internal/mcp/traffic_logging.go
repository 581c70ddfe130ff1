package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// trafficLoggingMiddleware writes one debug record per completed MCP call.
// Tool calls are summarized by the tool name and the note id or note count
// in the result; note content never reaches the log.
func trafficLoggingMiddleware(logger *slog.Logger, direction string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if logger == nil || !logger.Enabled(ctx, slog.LevelDebug) {
				return next(ctx, method, req)
			}

			start := time.Now()
			result, err := next(ctx, method, req)
			if strings.HasPrefix(method, "notifications/") {
				return result, err
			}

			attrs := []any{
				"direction", direction,
				"method", method,
				"session_id", requestSessionID(ctx, req),
				"elapsed", time.Since(start),
			}
			if tool := toolName(req); tool != "" {
				attrs = append(attrs, "tool", tool)
			}
			if res, ok := result.(*sdkmcp.CallToolResult); ok && res != nil {
				attrs = append(attrs, summarizeToolResult(res).attrs()...)
			}
			if err != nil {
				attrs = append(attrs, "error", err)
			}
			logger.Debug("mcp call", attrs...)
			return result, err
		}
	}
}

// toolOutcome picks the loggable fields out of a tool's JSON text result.
type toolOutcome struct {
	IsError bool `json:"-"`
	Note    *struct {
		ID string `json:"id"`
	} `json:"note"`
	ID      string `json:"id"`
	Count   *int   `json:"count"`
	Created *bool  `json:"created"`
	Deleted *bool  `json:"deleted"`
	Code    string `json:"code"`
}

func summarizeToolResult(res *sdkmcp.CallToolResult) toolOutcome {
	var out toolOutcome
	for _, c := range res.Content {
		if text, ok := c.(*sdkmcp.TextContent); ok {
			_ = json.Unmarshal([]byte(text.Text), &out)
			break
		}
	}
	out.IsError = res.IsError
	return out
}

func (o toolOutcome) attrs() []any {
	attrs := []any{"is_error", o.IsError}
	switch {
	case o.Note != nil:
		attrs = append(attrs, "note_id", o.Note.ID)
	case o.ID != "":
		attrs = append(attrs, "note_id", o.ID)
	}
	if o.Count != nil {
		attrs = append(attrs, "count", *o.Count)
	}
	if o.Created != nil {
		attrs = append(attrs, "created", *o.Created)
	}
	if o.Deleted != nil {
		attrs = append(attrs, "deleted", *o.Deleted)
	}
	if o.Code != "" {
		attrs = append(attrs, "code", o.Code)
	}
	return attrs
}

func toolName(req sdkmcp.Request) string {
	switch p := safeParams(req).(type) {
	case *sdkmcp.CallToolParamsRaw:
		if p != nil {
			return p.Name
		}
	case *sdkmcp.CallToolParams:
		if p != nil {
			return p.Name
		}
	}
	return ""
}

func requestSessionID(ctx context.Context, req sdkmcp.Request) string {
	if id := getSessionID(ctx); id != "" {
		return id
	}
	if req == nil {
		return ""
	}
	defer func() { recover() }()
	session := req.GetSession()
	if session == nil {
		return ""
	}
	return session.ID()
}

func safeParams(req sdkmcp.Request) any {
	if req == nil {
		return nil
	}
	defer func() { recover() }()
	return req.GetParams()
}
