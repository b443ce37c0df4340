package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskline/internal/scheduler"
	"github.com/sandeepkv93/taskline/internal/update"
)

func (a *app) displayOptions() update.Options {
	return update.Options{
		DesktopEnabled: a.cfg.UI.DesktopNotifications,
		Notifier:       update.ExecDesktopNotifier{},
		Refresh:        time.Duration(a.cfg.UI.RefreshSeconds) * time.Second,
		PreviewLimit:   a.cfg.UI.PreviewLimit,
		Logger:         a.logger,
		StartupErrors:  a.startupErrors,
	}
}

func (a *app) runTUI(ctx context.Context) error {
	opts := a.displayOptions()
	if a.cfg.UI.Alerts {
		engine := scheduler.NewEngine(a.cfg.UI.SchedulerBuffer)
		engine.Start()
		defer engine.Stop()
		opts.Scheduler = engine
	}

	m := update.NewModel(a.todo, a.executor, opts)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	a.storageErrors = func(err error) {
		go program.Send(update.SetStatusMsg{Text: err.Error(), IsError: true})
	}
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("taskline failed: %w", err)
	}
	return nil
}
