package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodyBytes bounds a single JSON-RPC request.
const maxBodyBytes = 1 << 20

// MCPHandler handles MCP method dispatch.
type MCPHandler interface {
	Handle(ctx context.Context, method string, params json.RawMessage) (any, error)
}

// Options configures the router.
type Options struct {
	Logger *slog.Logger
	// Streamable, when set, is mounted at /mcp for MCP clients speaking the
	// streamable HTTP transport.
	Streamable http.Handler
}

// Server wires HTTP handlers.
type Server struct {
	handler MCPHandler
	logger  *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(handler MCPHandler, opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	srv := &Server{handler: handler, logger: logger}

	r.Post("/rpc", srv.handleRPC)
	r.Get("/health", srv.handleHealth)
	if opts.Streamable != nil {
		r.Handle("/mcp", opts.Streamable)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		WriteResponse(w, Failure(nil, err))
		return
	}

	result, err := s.handler.Handle(r.Context(), req.Method, req.Params)
	if err != nil {
		s.logger.Debug("rpc call failed", "method", req.Method, "request_id", middleware.GetReqID(r.Context()), "error", err)
		WriteResponse(w, Failure(req.ID, err))
		return
	}

	WriteResponse(w, Success(req.ID, result))
}
