package http

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	porthu "github.com/zmolnar/porthu-addon"
)

// Cache-Control values served by the addon. Success responses are safe to
// share and revalidate in the background; failure responses expire fast so
// a transient upstream outage doesn't stick.
const (
	cacheControlSuccess  = "public, s-maxage=300, stale-while-revalidate=600"
	cacheControlFailure  = "public, max-age=60"
	cacheControlManifest = "public, max-age=300"
)

// DefaultCatalogLimit is the page size served when the addon isn't
// configured otherwise.
const DefaultCatalogLimit = 50

// MaxCatalogLimit caps the page size regardless of configuration.
const MaxCatalogLimit = 100

// Server serves the Stremio addon HTTP interface.
type Server struct {
	server *http.Server
	router chi.Router

	catalog  porthu.CatalogService
	manifest porthu.Manifest
	logger   *slog.Logger

	catalogLimit int
	metrics      http.Handler
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithCatalogLimit sets the catalog page size. Values above MaxCatalogLimit
// are clamped at request time.
func WithCatalogLimit(limit int) ServerOption {
	return func(s *Server) {
		if limit > 0 {
			s.catalogLimit = limit
		}
	}
}

// WithMetricsHandler exposes the given handler at /metrics.
func WithMetricsHandler(h http.Handler) ServerOption {
	return func(s *Server) { s.metrics = h }
}

// WithLogger sets the logger used for request-level errors.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) { s.logger = logger }
}

// NewServer creates an addon server bound to addr.
func NewServer(addr string, catalog porthu.CatalogService, opts ...ServerOption) *Server {
	s := &Server{
		catalog:      catalog,
		manifest:     porthu.DefaultManifest(),
		logger:       slog.Default(),
		catalogLimit: DefaultCatalogLimit,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	r.Get("/configure", s.handleConfigure)

	s.mountAddonRoutes(r)
	// The same resources are also reachable behind a config token prefix,
	// as produced by the configure page's install URL.
	r.Route("/{config}", func(r chi.Router) {
		r.Get("/configure", s.handleConfigure)
		s.mountAddonRoutes(r)
	})

	s.router = r
	s.server = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return s
}

func (s *Server) mountAddonRoutes(r chi.Router) {
	r.Get("/", s.handleManifest)
	r.Get("/manifest.json", s.handleManifest)
	r.Get("/catalog/{type}/{id}.json", s.handleCatalog)
	r.Get("/catalog/{type}/{id}/{extra}.json", s.handleCatalog)
	r.Get("/meta/{type}/{id}.json", s.handleMeta)
	r.Get("/stream/{type}/{id}.json", s.handleStream)
}

// ServeHTTP dispatches to the addon router. Exposed so the server can be
// driven by httptest without binding a socket.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Open starts listening in a background goroutine.
func (s *Server) Open() error {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("addon server failed", "error", err)
		}
	}()
	return nil
}

// Close gracefully shuts the server down.
func (s *Server) Close(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, "", map[string]string{"status": "ok"})
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, cacheControlManifest, s.manifest)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	typ := porthu.Type(chi.URLParam(r, "type"))
	id := chi.URLParam(r, "id")

	// Stremio treats non-200 catalog responses as addon failures, so
	// unrecognized requests answer with an empty page instead.
	if !typ.Valid() || id != porthu.CatalogID(typ) {
		sendJSON(w, http.StatusOK, cacheControlFailure, emptyMetas())
		return
	}

	extra := parseExtra(chi.URLParam(r, "extra"), r.URL.Query())
	skip, _ := strconv.Atoi(extra.Get("skip"))
	if skip < 0 {
		skip = 0
	}

	limit := s.catalogLimit
	if limit > MaxCatalogLimit {
		limit = MaxCatalogLimit
	}

	result, err := s.catalog.FetchCatalog(r.Context(), porthu.CatalogRequest{
		Type:  typ,
		Genre: extra.Get("genre"),
		Skip:  skip,
		Limit: limit,
	})
	if err != nil {
		s.logger.Error("catalog fetch failed", "type", typ, "error", err)
		sendJSON(w, http.StatusOK, cacheControlFailure, emptyMetas())
		return
	}

	sendJSON(w, http.StatusOK, cacheControlSuccess, map[string]any{"metas": result.Metas})
}

func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	typ := porthu.Type(chi.URLParam(r, "type"))
	id := chi.URLParam(r, "id")

	meta, err := s.catalog.FetchMeta(r.Context(), typ, id)
	if err != nil {
		if porthu.ErrorCode(err) != porthu.ENOTFOUND {
			s.logger.Error("meta lookup failed", "type", typ, "id", id, "error", err)
		}
		sendJSON(w, http.StatusOK, cacheControlFailure, map[string]any{"meta": nil})
		return
	}

	sendJSON(w, http.StatusOK, cacheControlSuccess, map[string]any{"meta": meta})
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	typ := porthu.Type(chi.URLParam(r, "type"))
	id := chi.URLParam(r, "id")

	streams, err := s.catalog.FetchStreams(r.Context(), typ, id)
	if err != nil {
		s.logger.Error("stream lookup failed", "type", typ, "id", id, "error", err)
		sendJSON(w, http.StatusOK, cacheControlFailure, map[string]any{"streams": []porthu.Stream{}})
		return
	}
	if streams == nil {
		streams = []porthu.Stream{}
	}

	sendJSON(w, http.StatusOK, cacheControlSuccess, map[string]any{"streams": streams})
}

func (s *Server) handleConfigure(w http.ResponseWriter, r *http.Request) {
	cfg := porthu.DecodeConfig(chi.URLParam(r, "config"))
	origin := RequestOrigin(r)
	token := porthu.EncodeConfig(cfg)
	installURL := fmt.Sprintf("%s/%s/manifest.json", origin, token)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, configurePage,
		html.EscapeString(s.manifest.Name),
		html.EscapeString(installURL),
		html.EscapeString(installURL),
	)
}

const configurePage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>%s</title></head>
<body>
<h1>Install</h1>
<p><a href="%s">%s</a></p>
</body>
</html>
`

// RequestOrigin reconstructs the externally visible origin of a request,
// preferring forwarded headers set by reverse proxies.
func RequestOrigin(r *http.Request) string {
	scheme := r.Header.Get("X-Forwarded-Proto")
	if scheme == "" {
		if r.TLS != nil {
			scheme = "https"
		} else {
			scheme = "http"
		}
	}
	host := r.Header.Get("X-Forwarded-Host")
	if host == "" {
		host = r.Host
	}
	return scheme + "://" + host
}

// parseExtra merges the path-encoded extra segment with query parameters.
// Query parameters win on conflict; Stremio clients vary in which form
// they send.
func parseExtra(segment string, query url.Values) url.Values {
	extra := url.Values{}
	if segment != "" {
		if unescaped, err := url.PathUnescape(segment); err == nil {
			segment = unescaped
		}
		if parsed, err := url.ParseQuery(segment); err == nil {
			extra = parsed
		}
	}
	for key, values := range query {
		extra[key] = values
	}
	return extra
}

func emptyMetas() map[string]any {
	return map[string]any{"metas": []*porthu.Meta{}}
}

func sendJSON(w http.ResponseWriter, status int, cacheControl string, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if cacheControl != "" {
		w.Header().Set("Cache-Control", cacheControl)
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
