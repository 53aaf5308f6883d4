package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockroom/internal/config"
	"stockroom/internal/http/handlers"
	applog "stockroom/internal/log"
	"stockroom/internal/repos"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		applog.Error(nil, "config.fail", err, nil)
		os.Exit(1)
	}
	if err := applog.SetLevel(cfg.LogLevel); err != nil {
		applog.Security(nil, "log.level.invalid", map[string]any{"level": cfg.LogLevel})
	}

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			applog.Error(nil, "log.file.fail", err, map[string]any{"path": cfg.LogFile})
		} else {
			defer f.Close()
			applog.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	store, err := repos.NewStore(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		applog.Error(nil, "db.open.fail", err, map[string]any{"driver": cfg.DBDriver})
		os.Exit(1)
	}
	defer store.Close()

	if cfg.SeedDemo {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := repos.SeedIfEmpty(ctx, store)
		cancel()
		if err != nil {
			applog.Error(nil, "seed.fail", err, nil)
			os.Exit(1)
		}
	}

	app, err := handlers.NewApp(cfg, store)
	if err != nil {
		applog.Error(nil, "app.init.fail", err, nil)
		os.Exit(1)
	}

	go func() {
		applog.Info(nil, "server.start", map[string]any{"port": cfg.Port})
		if err := app.Listen(":" + cfg.Port); err != nil {
			applog.Error(nil, "server.listen.fail", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	applog.Info(nil, "server.shutdown", nil)
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		applog.Error(nil, "server.shutdown.fail", err, nil)
	}
}
