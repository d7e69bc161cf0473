// Command bloglist serves the blog post API.
//
//	bloglist [-config file]
//	bloglist -healthcheck [-url http://127.0.0.1:3003/readyz]
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/gops/agent"

	"github.com/drblury/bloglist/app"
	"github.com/drblury/bloglist/blog"
	"github.com/drblury/bloglist/router"
)

var version = "dev"

func main() {
	configFile := flag.String("config", "", "location of configuration file")
	healthcheckMode := flag.Bool("healthcheck", false, "probe a running instance and exit")
	healthcheckURL := flag.String("url", "http://127.0.0.1:3003/readyz", "endpoint probed by -healthcheck")
	flag.Parse()

	if *healthcheckMode {
		if err := healthcheck(context.Background(), *healthcheckURL, 5*time.Second); err != nil {
			slog.Error("Healthcheck failed", "url", *healthcheckURL, "error", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := loadConfig(*configFile, os.Getenv)
	if err != nil {
		slog.Error("Could not load configuration", "path", *configFile, "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.logLevel}
	if cfg.Debug {
		opts.Level = slog.LevelDebug
	}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

func run(cfg *config, logger *slog.Logger) error {
	if cfg.Debug {
		if err := agent.Listen(agent.Options{ShutdownCleanup: true}); err != nil {
			logger.Warn("Could not start gops agent", "error", err)
		} else {
			defer agent.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
		defer cancel()
		if err := app.Close(closeCtx, store); err != nil {
			logger.Error("Could not close store", "error", err)
		}
	}()
	logger.Info("Store opened", "store", cfg.Store)

	handler, err := app.New(store,
		app.WithLogger(logger),
		app.WithBaseURL(cfg.BaseURL),
		app.WithBuildInfo(app.BuildInfo(version)),
		app.WithMaxBodyBytes(cfg.MaxBodyBytes),
		app.WithRouterConfig(router.Config{
			Timeout: cfg.requestTimeout,
			CORS: router.CORSConfig{
				Origins: cfg.CORSOrigins,
			},
			RateLimit: router.RateLimitConfig{
				RequestsPerSecond: cfg.RateLimit,
				Burst:             cfg.RateBurst,
			},
			QuietdownRoutes: []string{"/status", "/healthz", "/readyz"},
			HideHeaders:     []string{"Authorization", "Cookie"},
		}),
	)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       2 * time.Minute,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("Listening", "addr", cfg.Addr, "version", version)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func openStore(ctx context.Context, cfg *config) (blog.Store, error) {
	switch cfg.Store {
	case storeMongo:
		return blog.OpenMongoStore(ctx, blog.MongoOptions{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		})
	case storeBolt:
		return blog.OpenBoltStore(cfg.BoltPath)
	default:
		return blog.NewMemoryStore(), nil
	}
}
