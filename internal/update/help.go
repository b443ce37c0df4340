package update

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/taskline/internal/views"
)

type keyMap struct {
	Execute key.Binding
	Clear   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Execute: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run command")),
		Clear:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear input")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help (empty input)")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Execute, k.Clear, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func (m Model) renderHelpView() string {
	return views.RenderHelpPanel(m.commandSummaries(), m.helpModel.View(m.Keys))
}

func (m Model) commandSummaries() []string {
	out := make([]string, 0)
	for _, s := range m.executor.Preview("", 0) {
		out = append(out, s.String())
	}
	return out
}
