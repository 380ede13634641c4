package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/tnguyen21/scenebook/internal/app"
	"github.com/tnguyen21/scenebook/internal/config"
	"github.com/tnguyen21/scenebook/internal/scene"
	"github.com/tnguyen21/scenebook/internal/server"
	"github.com/tnguyen21/scenebook/internal/store"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "path to config file")
	serve := flag.Bool("serve", false, "serve the TUI over SSH instead of running it here")
	port := flag.Int("port", 0, "override listen port (with -serve)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("loading config", "err", err)
	}
	if *port > 0 {
		cfg.Port = *port
	}

	logger, closeLog, err := newLogger(cfg, *serve)
	if err != nil {
		log.Fatal("opening log", "err", err)
	}
	defer closeLog()

	if err := run(cfg, *serve, logger); err != nil {
		logger.Error("scenebook failed", "err", err)
		closeLog()
		fmt.Fprintln(os.Stderr, "scenebook:", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, serve bool, logger *log.Logger) error {
	cat, err := cfg.Catalog()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	shared := store.Restore(st, cat, logger)

	if serve {
		err = serveSSH(cfg, shared, st, logger)
	} else {
		_, err = tea.NewProgram(
			app.New(cfg, shared, st),
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
		).Run()
	}

	// Save on the way out whatever happened above.
	if saveErr := st.Save(store.Capture(shared)); saveErr != nil {
		logger.Error("final save failed", "err", saveErr)
		if err == nil {
			err = saveErr
		}
	} else {
		logger.Info("saved", "backend", cfg.Store.Backend, "path", cfg.Store.Path)
	}
	return err
}

func serveSSH(cfg config.Config, shared *scene.Shared, st store.Store, logger *log.Logger) error {
	srv, err := server.New(&cfg, shared, st, logger)
	if err != nil {
		return err
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Start()
	}()

	select {
	case err := <-errc:
		return err
	case sig := <-done:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("scenebook stopped")
	return nil
}

// newLogger writes to stderr when serving. Locally the TUI owns the terminal,
// so logs go to the configured file, or nowhere if none is set.
func newLogger(cfg config.Config, serve bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}

	var (
		w       io.Writer = os.Stderr
		closeFn           = func() {}
	)
	if !serve {
		w = io.Discard
		if cfg.Log.File != "" {
			if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
				return nil, nil, err
			}
			f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return nil, nil, err
			}
			w = f
			closeFn = func() { _ = f.Close() }
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "scenebook",
		Level:           level,
	})
	return logger, closeFn, nil
}
