package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// GuardRequest is the body of POST /guards and POST /visibility
type GuardRequest struct {
	Vertices []Point      `json:"vertices"`
	Options  BuildOptions `json:"options"`
	Simplify float64      `json:"simplify,omitempty"`
	// AutoSimplify derives the simplification epsilon when Simplify is 0
	AutoSimplify bool `json:"autoSimplify,omitempty"`
}

// PathRequest is the body of POST /path
type PathRequest struct {
	GuardRequest
	From int `json:"from"`
	To   int `json:"to"`
}

// GuardResponse carries the placement and the data needed to draw it
type GuardResponse struct {
	ID          string    `json:"id"`
	Success     bool      `json:"success"`
	Message     string    `json:"message,omitempty"`
	Code        string    `json:"code,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
	Vertices    int       `json:"vertices,omitempty"`
	Area        float64   `json:"area,omitempty"`
	Guards      []int     `json:"guards,omitempty"`
	Coordinates []Point   `json:"coordinates,omitempty"`
	Iterations  int       `json:"iterations,omitempty"`
	LowerBound  int       `json:"lowerBound,omitempty"`
	Visibility  [][]int   `json:"visibility,omitempty"`
	Lines       [][]Point `json:"lines,omitempty"`
	Route       *Route    `json:"route,omitempty"`
}

// Server exposes the solver over HTTP
type Server struct {
	cfg    *Config
	cache  ResultCache
	logger *log.Logger
}

// NewServer creates a server; a nil cache disables caching
func NewServer(cfg *Config, cache ResultCache, logger *log.Logger) *Server {
	if cache == nil {
		cache = nullCache{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{cfg: cfg, cache: cache, logger: logger}
}

// Routes builds the chi router
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(corsMiddleware(s.cfg.Server.CORSOrigin))

	r.Get("/health", s.healthHandler)
	r.Post("/guards", s.guardsHandler)
	r.Post("/visibility", s.visibilityHandler)
	r.Post("/path", s.pathHandler)

	return r
}

// ListenAndServe runs the server until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.cfg.Server.Addr, "cache", s.cfg.Cache.Backend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			}

			// Handle preflight
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method, "path", r.URL.Path,
			"status", ww.Status(), "elapsed", time.Since(start).Round(time.Microsecond))
	})
}

// GET /health - Health check endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ready",
		"cache":       s.cfg.Cache.Backend,
		"maxVertices": s.cfg.Server.MaxVertices,
	})
}

// POST /guards - Place guards on a polygon
func (s *Server) guardsHandler(w http.ResponseWriter, r *http.Request) {
	var req GuardRequest
	if !s.decode(w, r, &req) {
		return
	}

	result, cached, err := s.solve(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := newGuardResponse(result, cached)
	resp.Visibility = result.Visibility
	writeJSON(w, http.StatusOK, resp)
}

// POST /visibility - Visibility graph as rows and drawable line strings
func (s *Server) visibilityHandler(w http.ResponseWriter, r *http.Request) {
	var req GuardRequest
	if !s.decode(w, r, &req) {
		return
	}

	result, cached, err := s.solve(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := newGuardResponse(result, cached)
	resp.Visibility = result.Visibility
	resp.Lines = result.Graph().LineStrings(result.Polygon)
	writeJSON(w, http.StatusOK, resp)
}

// POST /path - Shortest route between two vertices along sight lines
func (s *Server) pathHandler(w http.ResponseWriter, r *http.Request) {
	var req PathRequest
	if !s.decode(w, r, &req) {
		return
	}

	result, cached, err := s.solve(r.Context(), req.GuardRequest)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if n := result.Polygon.Len(); req.From < 0 || req.From >= n || req.To < 0 || req.To >= n {
		writeJSON(w, http.StatusBadRequest, GuardResponse{
			ID:      uuid.NewString(),
			Message: fmt.Sprintf("from and to must be vertex indices below %d", n),
			Code:    "bad_request",
		})
		return
	}

	route, err := ShortestPath(result.Polygon, result.Graph(), req.From, req.To)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := newGuardResponse(result, cached)
	resp.Route = route
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.logger.Warn("invalid request body", "err", err)
		writeJSON(w, http.StatusBadRequest, GuardResponse{
			ID:      uuid.NewString(),
			Message: "Invalid request body",
			Code:    "bad_request",
		})
		return false
	}
	return true
}

// solve answers from the cache when possible and stores fresh results
func (s *Server) solve(ctx context.Context, req GuardRequest) (*Result, bool, error) {
	if limit := s.cfg.Server.MaxVertices; limit > 0 && len(req.Vertices) > limit {
		return nil, false, &tooLargeError{got: len(req.Vertices), limit: limit}
	}

	opts := SolveOptions{
		Build:        req.Options,
		Simplify:     req.Simplify,
		AutoSimplify: req.AutoSimplify,
		Logger:       s.logger,
	}
	// Parallelism is the server's call, not the client's
	opts.Build.Workers = s.cfg.Visibility.Workers
	opts.Build.IndexThreshold = s.cfg.Visibility.IndexThreshold

	key := resultKey(req.Vertices, opts)
	if result, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("cache read failed", "err", err)
	} else if ok {
		return result, true, nil
	}

	result, err := Solve(req.Vertices, opts)
	if err != nil {
		return nil, false, err
	}

	if err := s.cache.Set(ctx, key, result); err != nil {
		s.logger.Warn("cache write failed", "err", err)
	}
	return result, false, nil
}

type tooLargeError struct {
	got, limit int
}

func (e *tooLargeError) Error() string {
	return fmt.Sprintf("polygon has %d vertices, limit is %d", e.got, e.limit)
}

func newGuardResponse(result *Result, cached bool) GuardResponse {
	return GuardResponse{
		ID:          uuid.NewString(),
		Success:     true,
		Cached:      cached,
		Vertices:    result.Polygon.Len(),
		Area:        result.Polygon.Area(),
		Guards:      result.Placement.Guards,
		Coordinates: result.Placement.Coordinates,
		Iterations:  result.Placement.Iterations,
		LowerBound:  result.Placement.LowerBound,
	}
}

// writeError maps solver errors to status codes
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, "internal"

	var tooLarge *tooLargeError
	switch {
	case errors.Is(err, ErrInvalidPolygon):
		status, code = http.StatusUnprocessableEntity, "invalid_polygon"
	case errors.Is(err, ErrDegenerateInput):
		status, code = http.StatusUnprocessableEntity, "degenerate_input"
	case errors.Is(err, ErrUnreachableVertex):
		status, code = http.StatusUnprocessableEntity, "unreachable_vertex"
	case errors.Is(err, ErrInvalidOptions):
		status, code = http.StatusBadRequest, "invalid_options"
	case errors.Is(err, ErrNoPath):
		status, code = http.StatusNotFound, "no_path"
	case errors.As(err, &tooLarge):
		status, code = http.StatusRequestEntityTooLarge, "too_many_vertices"
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	} else {
		s.logger.Warn("request rejected", "code", code, "err", err)
	}

	writeJSON(w, status, GuardResponse{
		ID:      uuid.NewString(),
		Message: err.Error(),
		Code:    code,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
