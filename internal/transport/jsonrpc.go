package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rpggio/voicenotes/internal/mcp"
)

// JSON-RPC 2.0 error codes.
const (
	ErrParseCode      = -32700
	ErrInvalidReq     = -32600
	ErrMethodNotFound = -32601
	ErrInvalidParams  = -32602
	ErrInternal       = -32603
	// ErrApplication carries an mcp.APIError in the error data.
	ErrApplication = -32000
)

var (
	// ErrParse wraps request bodies that are not valid JSON.
	ErrParse = errors.New("parse error")
	// ErrInvalidRequest wraps well-formed JSON that is not a JSON-RPC 2.0 call.
	ErrInvalidRequest = errors.New("invalid request")
)

// Request is one JSON-RPC 2.0 call. The id is kept raw so it is echoed back
// exactly as the client sent it.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
}

// Response carries either a result or an error. The id is always written,
// as null when the request could not be read.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  any             `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	ID      json.RawMessage `json:"id"`
}

// Error represents a JSON-RPC 2.0 error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ParseRequest reads exactly one JSON-RPC request from body.
func ParseRequest(body io.Reader) (Request, error) {
	var req Request
	dec := json.NewDecoder(body)
	if err := dec.Decode(&req); err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if dec.More() {
		return Request{}, fmt.Errorf("%w: trailing data after request", ErrInvalidRequest)
	}
	if req.JSONRPC != "2.0" {
		return Request{}, fmt.Errorf("%w: jsonrpc must be \"2.0\"", ErrInvalidRequest)
	}
	if req.Method == "" {
		return Request{}, fmt.Errorf("%w: missing method", ErrInvalidRequest)
	}
	return req, nil
}

// Success builds the response for a completed call.
func Success(id json.RawMessage, result any) Response {
	return Response{JSONRPC: "2.0", Result: result, ID: id}
}

// Failure builds the error response for err. Note errors keep their
// mcp.APIError as data so clients can read its code and recovery hint.
func Failure(id json.RawMessage, err error) Response {
	return Response{JSONRPC: "2.0", Error: ErrorFor(err), ID: id}
}

// ErrorFor maps a request or handler error onto a JSON-RPC error object.
func ErrorFor(err error) *Error {
	var apiErr *mcp.APIError
	switch {
	case errors.Is(err, ErrParse):
		return &Error{Code: ErrParseCode, Message: err.Error()}
	case errors.Is(err, ErrInvalidRequest):
		return &Error{Code: ErrInvalidReq, Message: err.Error()}
	case errors.Is(err, mcp.ErrUnknownMethod):
		return &Error{Code: ErrMethodNotFound, Message: err.Error()}
	case errors.As(err, &apiErr) && apiErr.Code == mcp.CodeInvalidParams:
		return &Error{Code: ErrInvalidParams, Message: apiErr.Message, Data: apiErr}
	case errors.As(err, &apiErr):
		return &Error{Code: ErrApplication, Message: apiErr.Message, Data: apiErr}
	default:
		return &Error{Code: ErrInternal, Message: err.Error()}
	}
}

// WriteResponse writes resp with status 200. Note text is written without
// HTML escaping.
func WriteResponse(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(resp)
}
