package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"optmonitor/internal/api"
	"optmonitor/internal/config"
	"optmonitor/internal/engine"
	"optmonitor/internal/logger"
	"optmonitor/internal/watch"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}

	log := logger.New(cfg.Verbose)
	log.Info("starting optimization monitor", "dir", cfg.Dir, "listen", cfg.Listen)

	// 1. Pre-flight: refuse directories without a settings log
	if err := engine.ValidateDirectory(cfg.Dir); err != nil {
		return err
	}

	// 2. Initialize Handler with NIL data
	// The API is live immediately but answers 503 until the first refresh lands.
	// The index is not scanned here; the refresher's startup refresh does it.
	h := api.NewHandler(nil, nil)
	reader := engine.NewReaderFromIndex(engine.OpenIndex(cfg.Dir, log))

	refresher, err := watch.New(reader, h, watch.Options{
		Interval: cfg.RefreshInterval,
		Debounce: cfg.Debounce,
		Watch:    cfg.Watch,
		Logger:   log,
	})
	if err != nil {
		return fmt.Errorf("create refresher: %w", err)
	}
	h.SetRefresher(refresher)

	e := api.NewServer(h, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Refresh loop in background
	refreshDone := make(chan error, 1)
	go func() {
		refreshDone <- refresher.Run(ctx)
	}()

	// 4. Start Server
	serverErr := make(chan error, 1)
	go func() {
		log.Info("server ready", "listen", cfg.Listen)
		if err := e.Start(cfg.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		log.Info("received signal, shutting down")
	case err := <-serverErr:
		stop()
		<-refreshDone
		return fmt.Errorf("server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", "error", err)
	}
	if err := <-refreshDone; err != nil {
		log.Error("refresher stopped with error", "error", err)
	}

	log.Info("optimization monitor stopped")
	return nil
}
