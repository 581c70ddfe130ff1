package testserver_test

import (
	"context"
	"encoding/json"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/voicenotes/internal/app"
	"github.com/rpggio/voicenotes/internal/mcp"
	"github.com/rpggio/voicenotes/internal/speech"
	"github.com/rpggio/voicenotes/internal/testserver"
	"github.com/rpggio/voicenotes/internal/transport"
	"github.com/stretchr/testify/require"
)

func TestRPC_NoteLifecycleSurvivesRestart(t *testing.T) {
	ts := testserver.New(t)

	var first mcp.CreateNoteResponse
	ts.MustCall(t, "create_note", map[string]any{"content": "first note"}, &first)
	require.True(t, first.Created)

	var second mcp.CreateNoteResponse
	ts.MustCall(t, "create_note", map[string]any{"content": "second note"}, &second)

	var deleted mcp.DeleteNoteResponse
	ts.MustCall(t, "delete_note", map[string]any{"id": first.Note.ID}, &deleted)
	require.True(t, deleted.Deleted)

	ts = ts.Restart(t)

	var list mcp.NoteListResponse
	ts.MustCall(t, "list_notes", nil, &list)
	require.Equal(t, 1, list.Count)
	require.Equal(t, second.Note.ID, list.Notes[0].ID)
	require.Equal(t, second.Note.Date, list.Notes[0].Date)
}

func TestRPC_Errors(t *testing.T) {
	ts := testserver.New(t)

	resp := ts.Call(t, "no_such_method", nil)
	require.NotNil(t, resp.Error)
	require.Equal(t, transport.ErrMethodNotFound, resp.Error.Code)

	resp = ts.Call(t, "delete_note", map[string]any{"id": 7})
	require.NotNil(t, resp.Error)
	require.Equal(t, transport.ErrInvalidParams, resp.Error.Code)
	require.Equal(t, mcp.CodeInvalidParams, resp.Error.Data["code"])
}

func TestRPC_DictationStatus(t *testing.T) {
	ts := testserver.New(t)
	var status mcp.DictationStatusResponse
	ts.MustCall(t, "dictation_status", nil, &status)
	require.False(t, status.Available)

	ts = testserver.New(t, app.WithRecognizer(speech.NewScriptedRecognizer()))
	ts.MustCall(t, "dictation_status", nil, &status)
	require.True(t, status.Available)
	require.Equal(t, "pt-BR", status.Locale)
}

func TestStreamableMCP(t *testing.T) {
	ctx := context.Background()
	ts := testserver.New(t)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "functional", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{Endpoint: ts.Server.URL + "/mcp"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "create_note",
		Arguments: map[string]any{"content": "Ditado pelo MCP"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "search_notes",
		Arguments: map[string]any{"query": "ditado"},
	})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)

	var list mcp.NoteListResponse
	require.NoError(t, json.Unmarshal([]byte(text.Text), &list))
	require.Equal(t, 1, list.Count)
	require.Equal(t, 1, ts.App.Notes.Len())
}
