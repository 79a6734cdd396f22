// Command luacene runs Lua scripts with the luacene module preloaded.
//
// Usage:
//
//	luacene [-config file] [-e chunk] script.lua...
//
// Scripts run concurrently, each in its own Lua state, up to
// scripts.concurrency at a time. The exit status is 1 if any script fails.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/luacene/internal/app"
	"github.com/jonwraymond/luacene/internal/config"
	logpkg "github.com/jonwraymond/luacene/internal/logger"
	"github.com/jonwraymond/luacene/internal/version"
	"github.com/jonwraymond/luacene/luabind"
)

func main() {
	configPath := flag.String("config", "", "config file (default: config/<ENV>.yaml)")
	chunk := flag.String("e", "", "Lua chunk to run before the scripts")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-config file] [-e chunk] script.lua...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *chunk == "" && flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	env := config.GetEnv()
	cfg, err := loadConfig(env, *configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	logger, err := logpkg.New(logpkg.Config{Env: env, Level: cfg.Logging.Level, Version: version.Version})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger, *chunk, flag.Args()); err != nil {
		logger.Error("script failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
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

func run(cfg config.Config, logger *zap.Logger, chunk string, scripts []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logpkg.WithLogger(ctx, logger)

	eng, err := app.NewEngine(cfg, logger, nil)
	if err != nil {
		return err
	}
	b := luabind.New(eng, logger)

	logger.Debug("starting luacene",
		zap.String("version", version.Version),
		zap.Int("scripts", len(scripts)),
		zap.Int("concurrency", cfg.Scripts.Concurrency),
		zap.String("charset", eng.Codec().Charset()),
	)

	if chunk != "" {
		if err := b.RunString(ctx, chunk, nil); err != nil {
			return fmt.Errorf("-e: %w", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Scripts.Concurrency)
	for _, script := range scripts {
		g.Go(func() error {
			sctx := logpkg.WithFields(gctx, zap.String("script", script))
			if err := b.RunFile(sctx, script); err != nil {
				return fmt.Errorf("%s: %w", script, err)
			}
			logpkg.FromContext(sctx).Debug("script done")
			return nil
		})
	}
	return g.Wait()
}
