package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `voicenotes keeps a single list of short text notes, newest first.

- create_note adds a note to the top. Content is stored as written; only an empty string is ignored.
- delete_note removes a note by id. Deleting an unknown id succeeds and changes nothing.
- search_notes matches a case-insensitive substring of the content; an empty query lists everything.
- list_notes returns the whole list.
- dictation_status tells whether speech-to-text is configured on this host.

Every write saves the whole list. A PERSIST_FAILED error means the change is
kept in memory for this process but not yet on disk; the next successful write
saves it.

Docs: voicenotes://docs/index
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "voicenotes://docs/index",
		Name:        "docs_index",
		Title:       "voicenotes docs index",
		Description: "Tools, note format, and error codes.",
		Content: `# voicenotes

## Tools

| Tool | Arguments | Result |
|---|---|---|
| ` + "`create_note`" + ` | ` + "`content`" + ` | ` + "`{note, created}`" + ` |
| ` + "`delete_note`" + ` | ` + "`id`" + ` | ` + "`{id, deleted}`" + ` |
| ` + "`search_notes`" + ` | ` + "`query`" + `, ` + "`limit`" + ` | ` + "`{notes, count}`" + ` |
| ` + "`list_notes`" + ` | none | ` + "`{notes, count}`" + ` |
| ` + "`dictation_status`" + ` | none | availability and recognizer settings |

## Notes

A note is ` + "`{id, date, content}`" + `. ` + "`date`" + ` is an ISO-8601 UTC timestamp
with milliseconds, e.g. ` + "`2024-03-01T12:00:00.000Z`" + `. Lists are ordered newest
first.

## Errors

Tool errors carry a JSON body ` + "`{code, message, details, recovery_hint}`" + `.

- ` + "`PERSIST_FAILED`" + `: the list could not be written. The change is kept in
  memory; ` + "`details`" + ` holds the created note when there is one.
- ` + "`DUPLICATE_ID`" + `: a generated id collided; retry.
- ` + "`DICTATION_UNAVAILABLE`" + `: no speech recognizer is configured.
- ` + "`INVALID_PARAMS`" + `: arguments could not be decoded.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
