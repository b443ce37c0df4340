package update

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskline/internal/scheduler"
)

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func refreshTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(at time.Time) tea.Msg { return RefreshTickMsg{At: at} })
}

func waitForDueCmd(ch <-chan scheduler.DueEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return TaskDueMsg{Event: ev}
	}
}
