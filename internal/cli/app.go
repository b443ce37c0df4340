package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sandeepkv93/taskline/internal/commands"
	"github.com/sandeepkv93/taskline/internal/config"
	"github.com/sandeepkv93/taskline/internal/dateparse"
	"github.com/sandeepkv93/taskline/internal/storage"
	"github.com/sandeepkv93/taskline/internal/todo"
	"github.com/spf13/afero"
)

type app struct {
	cfg      config.Config
	logger   *slog.Logger
	store    storage.Store
	todo     *todo.Model
	executor *commands.Executor
	closers  []io.Closer

	// storageErrors receives non-fatal storage failures.
	storageErrors func(error)
	// startupErrors holds failures reported before the TUI is running.
	startupErrors []error
}

// bootstrap loads configuration and wires storage, the task model and the
// command executor. A TUI must not log to the terminal it draws on.
func bootstrap(opts *rootOptions, stderr io.Writer, tui bool) (*app, error) {
	cfg, err := config.Load(opts.v, opts.cfgFile)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	logOut := io.Discard
	switch {
	case cfg.Log.File != "":
		f, err := openLogFile(cfg.Log.File)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, f)
		logOut = f
	case cfg.Verbose && !tui:
		logOut = stderr
	}
	a.logger = newLogger(logOut, cfg.Log.Level, cfg.Verbose)

	store, err := storage.Open(afero.NewOsFs(), cfg.Data.File, storage.Format(cfg.Data.Format))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("open storage: %w", err)
	}
	a.store = store
	a.closers = append(a.closers, store)

	a.storageErrors = func(err error) {
		fmt.Fprintf(stderr, "warning: %v\n", err)
	}
	if tui {
		a.storageErrors = func(err error) {
			a.startupErrors = append(a.startupErrors, err)
		}
	}
	a.todo = todo.New(store, todo.Options{
		HistoryLimit: cfg.History.Limit,
		DefaultView:  cfg.View.Default,
		Now:          time.Now,
		Logger:       a.logger,
		OnStorageError: func(err error) {
			if a.storageErrors != nil {
				a.storageErrors(err)
			}
		},
	})
	registry := commands.NewRegistry(commands.Env{Dates: dateparse.NewResolver(time.Now)})
	a.executor = commands.NewExecutor(a.todo, registry, a.logger)
	a.logger.Debug("taskline started", "data", store.Location(), "tasks", len(a.todo.AllTasks()))
	return a, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
	a.closers = nil
}

func newLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
