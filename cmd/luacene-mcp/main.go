// Command luacene-mcp serves luacene indexes as MCP tools.
//
// With mcp.transport "stdio" the server speaks MCP on stdin/stdout and the
// HTTP listener only serves /healthz and /metrics. With "http" the MCP
// endpoint is mounted at /mcp on the same listener.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/luacene/internal/app"
	"github.com/jonwraymond/luacene/internal/config"
	logpkg "github.com/jonwraymond/luacene/internal/logger"
	"github.com/jonwraymond/luacene/internal/version"
	"github.com/jonwraymond/luacene/mcpserver"
	"github.com/jonwraymond/luacene/metrics"
)

func main() {
	configPath := flag.String("config", "", "config file (default: config/<ENV>.yaml)")
	transport := flag.String("transport", "", "override mcp.transport (stdio or http)")
	flag.Parse()

	env := config.GetEnv()
	cfg, err := loadConfig(env, *configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	if *transport != "" {
		cfg.MCP.Transport = *transport
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "invalid -transport:", err)
			os.Exit(2)
		}
	}

	logger, err := logpkg.New(logpkg.Config{Env: env, Level: cfg.Logging.Level, Version: version.Version})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting luacene MCP server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("transport", cfg.MCP.Transport),
		zap.Int("http_port", cfg.HTTP.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg, logger); err != nil {
		logger.Error("server error", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

func loadConfig(env, path string) (config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	cfg, err := config.Load(env)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func serve(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	var (
		m        *metrics.Metrics
		gatherer prometheus.Gatherer
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m = metrics.New()
		if err := m.Register(reg); err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
		gatherer = reg
	}

	eng, err := app.NewEngine(cfg, logger, m)
	if err != nil {
		return err
	}
	srv := mcpserver.New(eng, mcpserver.Config{
		ServerInfo: mcpserver.ServerInfo{Name: "luacene", Version: version.Version},
		Logger:     logger,
	})
	defer func() {
		if err := srv.Close(); err != nil {
			logger.Warn("releasing client handles", zap.Error(err))
		}
	}()

	opts := app.RouterOptions{Logger: logger, Metrics: m, Gatherer: gatherer}
	if cfg.MCP.Transport == "http" {
		opts.MCP = srv.HTTPHandler()
	}
	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           app.Router(opts),
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	if cfg.MCP.Transport == "stdio" {
		stdioCtx, cancel := context.WithCancel(gctx)
		defer cancel()
		// The client closing stdin ends the process.
		g.Go(func() error {
			defer cancel()
			return srv.ServeStdio(stdioCtx)
		})
		gctx = stdioCtx
	}
	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("addr", httpSrv.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
