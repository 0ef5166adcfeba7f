package transport

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/ganot/po-manager/internal/resource"
	"github.com/go-chi/chi/v5"
)

const defaultMaxBodyBytes = 1 << 20

// MetricsExporter observes requests and serves the collected metrics.
type MetricsExporter interface {
	RequestObserver
	Handler() http.Handler
}

// Config wires the HTTP surface.
type Config struct {
	Resources []resource.Resource
	// MCP, when set, is mounted at /mcp.
	MCP     http.Handler
	Metrics MetricsExporter
	Logger  *slog.Logger
	// MaxBodyBytes caps create and update payloads. Zero means 1 MiB.
	MaxBodyBytes int64
}

// Server wires HTTP handlers.
type Server struct {
	logger       *slog.Logger
	maxBodyBytes int64
}

// NewServer creates an HTTP server router with middleware.
func NewServer(cfg Config) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	srv := &Server{logger: logger, maxBodyBytes: cfg.MaxBodyBytes}
	if srv.maxBodyBytes <= 0 {
		srv.maxBodyBytes = defaultMaxBodyBytes
	}

	r := chi.NewRouter()
	var observer RequestObserver
	if cfg.Metrics != nil {
		observer = cfg.Metrics
	}
	r.Use(logRequests(logger, observer))
	r.Use(recoverEnvelope(logger))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("no route for %s", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed on %s", r.Method, r.URL.Path))
	})

	r.Get("/", srv.handleRoot)
	r.Get("/health", srv.handleHealth)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}
	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
	}

	for _, res := range cfg.Resources {
		r.Route("/"+res.Kind(), func(r chi.Router) {
			r.Post("/create", srv.handleCreate(res))
			r.Get("/list", srv.handleList(res))
			r.Get("/get/{id}", srv.handleGet(res))
			r.Post("/delete/{id}", srv.handleDelete(res))
			r.Post("/update/{id}", srv.handleUpdate(res))
		})
	}

	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	WriteMessage(w, http.StatusOK, "Hello, World!")
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleCreate(res resource.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := s.readBody(w, r)
		if !ok {
			return
		}
		out, err := res.Create(r.Context(), body)
		s.reply(w, r, res, out, err)
	}
}

func (s *Server) handleList(res resource.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := res.List(r.Context(), r.URL.Query())
		s.reply(w, r, res, out, err)
	}
}

func (s *Server) handleGet(res resource.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := res.Get(r.Context(), chi.URLParam(r, "id"))
		s.reply(w, r, res, out, err)
	}
}

func (s *Server) handleDelete(res resource.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := res.Delete(r.Context(), chi.URLParam(r, "id"))
		s.reply(w, r, res, out, err)
	}
}

func (s *Server) handleUpdate(res resource.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := s.readBody(w, r)
		if !ok {
			return
		}
		out, err := res.Update(r.Context(), chi.URLParam(r, "id"), body)
		s.reply(w, r, res, out, err)
	}
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return nil, false
		}
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("reading request body: %v", err))
		return nil, false
	}
	return body, true
}

func (s *Server) reply(w http.ResponseWriter, r *http.Request, res resource.Resource, out any, err error) {
	if err == nil {
		WriteOK(w, out)
		return
	}

	switch resource.ClassOf(err) {
	case resource.ClassInput:
		WriteError(w, http.StatusBadRequest, err.Error())
	case resource.ClassNotFound:
		WriteError(w, http.StatusOK, err.Error())
	default:
		s.logger.Error("request failed", "kind", res.Kind(), "method", r.Method, "path", r.URL.Path, "error", err)
		WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
