package api

import (
	"context"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rflorenc/azure-service-dashboard/internal/models"
)

// Reloader runs a settings load and installs the result.
type Reloader interface {
	Reload(ctx context.Context, trigger string) *models.Load
}

// Server holds shared state for all API handlers.
type Server struct {
	Sections *models.SectionStore
	Loads    *models.LoadStore
	Reloader Reloader

	// SettingsFile, when set, is served raw at SettingsPath so the loader
	// (or a browser) can fetch it from this origin.
	SettingsFile string
	SettingsPath string
}

// NewRouter builds the chi router with all API routes and static file serving.
func NewRouter(s *Server, webFS fs.FS) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(Metrics())
	r.Use(corsMiddleware)

	r.Route("/api", func(r chi.Router) {
		// Sections
		r.Get("/sections", s.ListSections)
		r.Get("/sections/{type}", s.GetSection)
		r.Get("/resources", s.ListResources)
		r.Get("/snapshot", s.GetSnapshot)

		// Loads
		r.With(ReloadRateLimit()).Post("/reload", s.RunReload)
		r.Get("/loads", s.ListLoads)
		r.Get("/loads/{id}", s.GetLoad)
	})

	// WebSocket (outside /api to avoid JSON content-type assumptions)
	r.Get("/ws/sections", s.StreamSections)

	r.Handle("/metrics", promhttp.Handler())

	if s.SettingsFile != "" && s.SettingsPath != "" {
		r.Get(s.SettingsPath, s.ServeSettings)
	}

	// Serve embedded frontend (catch-all)
	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path
		if path == "/" {
			path = "/index.html"
		}

		f, err := webFS.Open(path[1:])
		if err == nil {
			f.Close()
			http.ServeFileFS(w, req, webFS, path[1:])
			return
		}

		http.ServeFileFS(w, req, webFS, "index.html")
	})

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
