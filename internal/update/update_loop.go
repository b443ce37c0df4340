package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskline/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, refreshTickCmd(m.refresh)}
	if m.Scheduler != nil {
		cmds = append(cmds, waitForDueCmd(m.Scheduler.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.helpModel.Width = typed.Width
		m.commandInput.Width = max(typed.Width-4, 10)
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(typed, m.Keys.Quit):
			m.Quitting = true
			return m, tea.Quit
		case key.Matches(typed, m.Keys.Execute):
			if isBlank(m.Input()) {
				return m, nil
			}
			return m.execute(m.Input())
		case key.Matches(typed, m.Keys.Clear):
			m = m.clearInput()
			m.Focus = nil
			m.HelpLines = nil
			return m, nil
		case key.Matches(typed, m.Keys.Help) && isBlank(m.Input()):
			m.HelpVisible = !m.HelpVisible
			return m, nil
		}
		return m.handleInputKey(typed)
	case ExecuteMsg:
		return m.execute(typed.Line)
	case RefreshTickMsg:
		return m, refreshTickCmd(m.refresh)
	case TaskDueMsg:
		body := fmt.Sprintf("'%s' is due %s", typed.Event.Title, views.DeadlineText(typed.Event.DueAt, m.now()))
		m.Status = StatusBar{Text: body}
		m.notify("Task due", body, "warn")
		if m.Scheduler != nil {
			return m, waitForDueCmd(m.Scheduler.C())
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	now := m.now()

	list := views.TaskListData{ViewName: m.todo.CurrentView().Name}
	if status, ok := m.todo.SearchStatus(); ok {
		list.Search = views.RenderSearchStatus(status.Terms, status.Matches, status.Total)
	}
	for i, t := range m.todo.Tasks() {
		list.Items = append(list.Items, views.TaskItem(i+1, t, now))
	}

	tagNames := make([]string, 0)
	for _, t := range m.todo.GlobalTags() {
		tagNames = append(tagNames, t.Name)
	}

	right := []string{views.RenderTags(tagNames)}
	switch {
	case m.HelpVisible:
		right = append(right, m.renderHelpView())
	case len(m.Preview) > 0:
		right = append(right, views.RenderPreview(m.previewLines()))
	case m.Focus != nil:
		right = append(right, views.RenderTaskDetail(views.TaskDetail(*m.Focus, now)))
	case len(m.HelpLines) > 0:
		right = append(right, views.RenderPreview(m.HelpLines))
	}

	status := views.RenderCommandPrompt(m.commandInput.View())
	if fb := views.RenderFeedback(m.Feedback); fb != "" {
		status += "\n" + fb
	}

	notification := ""
	if len(m.Notifications) > 0 {
		n := m.Notifications[len(m.Notifications)-1]
		notification = views.RenderNotification(n.Level, n.Body)
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("taskline | view: %s | file: %s", m.todo.CurrentView().Name, m.todo.StorageLocation()),
		LeftPane:     views.RenderTaskList(list),
		RightPane:    strings.Join(right, "\n\n"),
		StatusLine:   status,
		StatusFailed: m.Feedback.Failed,
		Notification: notification,
		Footer:       m.helpModel.View(m.Keys),
		Width:        m.width,
	})
}
