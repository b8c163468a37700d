// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/chihom/internal/api"
	"github.com/starford/chihom/internal/catalog"
	"github.com/starford/chihom/internal/knowledge"
	"github.com/starford/chihom/internal/mcpserver"
	"github.com/starford/chihom/internal/metrics"
	"github.com/starford/chihom/internal/models"
	"github.com/starford/chihom/internal/prefs"
	"github.com/starford/chihom/internal/project"
	"github.com/starford/chihom/internal/service"
	"github.com/starford/chihom/internal/sse"
	"github.com/starford/chihom/internal/storage"
	"github.com/starford/chihom/internal/theme"
	"github.com/starford/chihom/internal/vault"
)

var errConfigRequired = errors.New("config is required")

// components are the pieces shared by the HTTP and MCP entry points.
type components struct {
	svc       *service.Service
	knowledge *knowledge.Collection
	loader    knowledge.Loader
	vaultRoot string
	db        *prefs.DB
}

func (c *components) Close() error {
	return c.db.Close()
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// build loads every data source and wires the service.
func build(ctx context.Context, cfg *Config, logger *slog.Logger, opts ...service.Option) (*components, error) {
	menu, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("load menu: %w", err)
	}

	var projects []models.Project
	if cfg.Projects.Path != "" {
		projects, err = project.LoadFile(cfg.Projects.Path)
	} else {
		projects, err = project.Seed()
	}
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}

	c := &components{knowledge: knowledge.NewCollection(nil)}
	factory := knowledge.NewFactory()
	if cfg.Knowledge.VaultPath != "" {
		if err := os.MkdirAll(cfg.Knowledge.VaultPath, 0o755); err != nil {
			return nil, fmt.Errorf("create vault dir: %w", err)
		}
		store, err := storage.NewFS(cfg.Knowledge.VaultPath)
		if err != nil {
			return nil, fmt.Errorf("init storage: %w", err)
		}
		c.loader = vault.NewLoader(store, factory, logger)
		c.vaultRoot = store.Root()
	} else {
		c.loader = knowledge.NewSeedLoader(factory)
	}
	n, err := vault.Sync(ctx, c.knowledge, c.loader)
	if err != nil {
		return nil, fmt.Errorf("load knowledge: %w", err)
	}
	logger.Info("Knowledge loaded", slog.Int("articles", n), slog.String("vault_path", c.vaultRoot))

	c.db, err = prefs.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("init preferences: %w", err)
	}

	registry := theme.NewRegistry(c.db,
		theme.WithFallback(cfg.Theme.Fallback),
		theme.WithLogger(logger))
	sheet := theme.NewStyleSheet()
	applied := registry.Initialize(sheet)
	logger.Info("Theme applied", slog.String("theme", applied.Name))

	c.svc = service.New(menu, c.knowledge, project.NewCollection(projects), registry, sheet, opts...)
	return c, nil
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	logger := newLogger(os.Stdout, cfg.App.LogLevel)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("vault_path", cfg.Knowledge.VaultPath),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	broker := sse.NewBroker(2*time.Second, sse.WithHeartbeat(30*time.Second))
	defer broker.Close()

	c, err := build(ctx, cfg, logger, service.WithPublisher(broker))
	if err != nil {
		return err
	}
	defer c.Close()

	apiRouter := api.NewRouter(c.svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	rec := metrics.New()
	rec.Gauge("knowledge_articles", "Articles currently loaded.", func() float64 {
		return float64(c.knowledge.Len())
	})
	rec.Gauge("sse_clients", "Connected event stream clients.", func() float64 {
		return float64(broker.ClientCount())
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(rec.Middleware)

	// Unauthenticated endpoints.
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if c.knowledge.Len() == 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"empty"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/theme.css", api.StyleSheet(c.svc))
	r.Handle("/metrics", rec.Handler())

	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	if c.vaultRoot != "" && cfg.Knowledge.Watch {
		g.Go(func() error {
			return vault.Watch(gCtx, c.vaultRoot, c.knowledge, c.loader, logger, func(n int, err error) {
				rec.ObserveReload(err)
				if err == nil {
					broker.PublishReload(n)
				}
			})
		})
	}

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group so the watcher stops with the server.
var errShutdown = errors.New("shutdown")

// RunMCP serves the MCP tools over stdio. Logs go to stderr so they do not
// corrupt the protocol stream.
func RunMCP(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, app.config.App.LogLevel)

	c, err := build(ctx, app.config, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	logger.Info("MCP server starting", slog.String("version", app.version))
	return mcpserver.New(c.svc, app.version).ServeStdio()
}
