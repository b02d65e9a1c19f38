package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	dashboard "github.com/rflorenc/azure-service-dashboard"
	"github.com/rflorenc/azure-service-dashboard/internal/api"
	"github.com/rflorenc/azure-service-dashboard/internal/catalog"
	"github.com/rflorenc/azure-service-dashboard/internal/config"
	xlog "github.com/rflorenc/azure-service-dashboard/internal/log"
	"github.com/rflorenc/azure-service-dashboard/internal/models"
	"github.com/rflorenc/azure-service-dashboard/internal/settings"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-v" {
			fmt.Printf("dashboard %s (commit: %s, built: %s)\n", version, commit, date)
			os.Exit(0)
		}
	}

	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(2)
	}

	xlog.Configure(xlog.Config{Level: cfg.LogLevel, Service: "dashboard", Version: version})
	logger := xlog.WithComponent("main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader, err := newLoader(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid settings configuration")
	}
	if !loader.Parser.Links.Configured() {
		logger.Warn().
			Str("tenant_domain", cfg.TenantDomain).
			Str("primary_subscription", cfg.Subscriptions.Primary).
			Msg("tenant domain or primary subscription not set: portal links disabled")
	}

	server := &api.Server{
		Sections: models.NewSectionStore(),
		Loads:    models.NewLoadStore(cfg.HistoryLimit),
	}
	if cfg.Settings.File != "" {
		server.SettingsFile = cfg.Settings.File
		server.SettingsPath = cfg.Settings.Path
	}
	reloader := settings.NewReloader(loader, server.Sections, server.Loads)
	server.Reloader = reloader

	load := reloader.Reload(ctx, models.TriggerStartup)
	logger.Info().
		Str("source", load.Source).
		Str("status", load.Status).
		Int("sections", load.Sections).
		Int("resources", load.Resources).
		Msg("initial settings load")

	if cfg.Settings.Watch {
		watchLog := xlog.WithComponent("watcher")
		err := settings.Watch(ctx, cfg.Settings.File, watchLog, func() {
			reloader.Reload(ctx, models.TriggerWatch)
		})
		if err != nil {
			logger.Error().Err(err).Msg("settings watcher disabled")
		}
	}

	var handler http.Handler
	if cfg.Dev {
		handler = devRouter(server)
	} else {
		webFS, err := fs.Sub(dashboard.WebFS, "web/dist")
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to get embedded web FS")
		}
		handler = api.NewRouter(server, webFS)
	}

	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info().Str("listen", cfg.Listen).Str("version", version).Msg("Azure service dashboard starting")
	if cfg.Dev {
		logger.Info().Msg("dev mode: proxying frontend to http://localhost:5173")
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server failed")
	}
	logger.Info().Msg("shutdown complete")
}

// newLoader picks the fetcher and format from configuration.
func newLoader(cfg *config.Config) (*settings.Loader, error) {
	var fetcher settings.Fetcher
	if cfg.Settings.URL != "" {
		fetcher = settings.NewHTTPFetcher(cfg.Settings.URL, cfg.Settings.Path, cfg.Settings.Timeout)
	} else {
		fetcher = settings.FileFetcher{Path: cfg.Settings.File}
	}

	format := settings.DetectFormat(fetcher.Source())
	if cfg.Settings.Format != "" {
		f, err := settings.ParseFormat(cfg.Settings.Format)
		if err != nil {
			return nil, err
		}
		format = f
	}

	return &settings.Loader{
		Fetcher: fetcher,
		Format:  format,
		Parser: &settings.Parser{
			Links: catalog.LinkBuilder{
				TenantDomain:          cfg.TenantDomain,
				PrimarySubscription:   cfg.Subscriptions.Primary,
				SecondarySubscription: cfg.Subscriptions.Secondary,
			},
			Logger: xlog.WithComponent("parser"),
		},
		Logger: xlog.WithComponent("settings"),
	}, nil
}

// devRouter creates a handler that serves API routes directly and proxies
// everything else to the frontend dev server.
func devRouter(server *api.Server) http.Handler {
	apiRouter := api.NewRouter(server, emptyFS{})

	viteURL, _ := url.Parse("http://localhost:5173")
	proxy := httputil.NewSingleHostReverseProxy(viteURL)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path
		if strings.HasPrefix(p, "/api") || strings.HasPrefix(p, "/ws") || p == "/metrics" ||
			(server.SettingsPath != "" && p == server.SettingsPath) {
			apiRouter.ServeHTTP(w, r)
			return
		}
		proxy.ServeHTTP(w, r)
	})
}

// emptyFS is a minimal fs.FS that always returns not-found.
type emptyFS struct{}

func (emptyFS) Open(name string) (fs.File, error) {
	return nil, os.ErrNotExist
}
