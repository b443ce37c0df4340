package update

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/taskline/internal/commands"
	"github.com/sandeepkv93/taskline/internal/model"
	"github.com/sandeepkv93/taskline/internal/scheduler"
	"github.com/sandeepkv93/taskline/internal/todo"
	"github.com/sandeepkv93/taskline/internal/views"
)

const (
	defaultRefresh      = time.Minute
	defaultPreviewLimit = 5
	maxNotifications    = 40
)

type StatusBar struct {
	Text    string
	IsError bool
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

// RefreshTickMsg redraws time-relative text. It never touches the tasks.
type RefreshTickMsg struct {
	At time.Time
}

type TaskDueMsg struct {
	Event scheduler.DueEvent
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

// ExecuteMsg runs a command line as if it had been typed.
type ExecuteMsg struct {
	Line string
}

type Options struct {
	Scheduler      *scheduler.Engine
	Notifier       DesktopNotifier
	DesktopEnabled bool
	Refresh        time.Duration
	PreviewLimit   int
	Now            func() time.Time
	Logger         *slog.Logger
	// StartupErrors were reported before the display existed. They become
	// the first notifications.
	StartupErrors []error
}

type Model struct {
	Scheduler      *scheduler.Engine
	Status         StatusBar
	Feedback       views.FeedbackData
	Preview        []commands.Summary
	HelpLines      []string
	Focus          *model.Task
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	Keys           keyMap
	Quitting       bool

	todo         *todo.Model
	executor     *commands.Executor
	notifier     DesktopNotifier
	commandInput textinput.Model
	helpModel    help.Model
	refresh      time.Duration
	previewLimit int
	now          func() time.Time
	logger       *slog.Logger
	width        int
	lastVersion  uint64
}

func NewModel(tm *todo.Model, executor *commands.Executor, opts Options) Model {
	m := Model{
		Scheduler:      opts.Scheduler,
		DesktopEnabled: opts.DesktopEnabled,
		Keys:           defaultKeyMap(),
		todo:           tm,
		executor:       executor,
		notifier:       opts.Notifier,
		refresh:        opts.Refresh,
		previewLimit:   opts.PreviewLimit,
		now:            opts.Now,
		logger:         opts.Logger,
	}
	if m.notifier == nil {
		m.notifier = NoopDesktopNotifier{}
	}
	if m.refresh <= 0 {
		m.refresh = defaultRefresh
	}
	if m.previewLimit <= 0 {
		m.previewLimit = defaultPreviewLimit
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}

	m.commandInput = textinput.New()
	m.commandInput.Placeholder = "type a command, e.g. add Buy milk -d tomorrow 6pm"
	m.commandInput.Prompt = "> "
	m.commandInput.CharLimit = 512
	m.commandInput.Focus()
	m.helpModel = help.New()

	for _, err := range opts.StartupErrors {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Storage", err.Error(), levelFromError(true))
	}
	m.syncAlerts()
	return m
}

// Input returns the text currently typed.
func (m Model) Input() string {
	return m.commandInput.Value()
}

// syncAlerts reschedules due alerts whenever the tasks have changed.
func (m *Model) syncAlerts() {
	version := m.todo.Version()
	if m.Scheduler == nil || (version == m.lastVersion && version != 0) {
		return
	}
	m.lastVersion = version
	if err := m.Scheduler.Replace(scheduler.EventsFor(m.todo.AllTasks(), m.now())); err != nil {
		m.logger.Warn("reschedule alerts", "error", err)
	}
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.now(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > maxNotifications {
		m.Notifications = m.Notifications[len(m.Notifications)-maxNotifications:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		if err := m.notifier.Send(n); err != nil {
			m.logger.Debug("desktop notification failed", "error", err)
		}
	}
}
