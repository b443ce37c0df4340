package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskline/internal/commands"
	"github.com/sandeepkv93/taskline/internal/views"
)

func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Preview = m.executor.Preview(m.commandInput.Value(), m.previewLimit)
	return m, cmd
}

func (m Model) clearInput() Model {
	m.commandInput.SetValue("")
	m.Preview = nil
	return m
}

func (m Model) execute(line string) (Model, tea.Cmd) {
	res := m.executor.Execute(line)
	m = m.clearInput()
	m.Feedback = feedbackFrom(res)
	m.Focus = res.Focus
	m.HelpLines = nil
	for _, s := range res.Help {
		m.HelpLines = append(m.HelpLines, s.String())
	}
	m.Status = StatusBar{Text: res.Feedback, IsError: res.Failed}
	if res.Failed {
		m.notify("Command failed", res.Feedback, levelFromError(true))
	}
	m.syncAlerts()

	if res.Exit {
		m.Quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func feedbackFrom(res commands.Result) views.FeedbackData {
	out := views.FeedbackData{Message: res.Feedback, Failed: res.Failed}
	for _, k := range res.ErrorKeys {
		out.Errors = append(out.Errors, fmt.Sprintf("%s: %s", k, res.Errors[k]))
	}
	return out
}

func (m Model) previewLines() []string {
	out := make([]string, 0, len(m.Preview))
	for _, s := range m.Preview {
		out = append(out, s.String())
	}
	return out
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
