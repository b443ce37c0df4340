package update

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sandeepkv93/taskline/internal/commands"
	"github.com/sandeepkv93/taskline/internal/model"
	"github.com/sandeepkv93/taskline/internal/scheduler"
	"github.com/sandeepkv93/taskline/internal/todo"
)

type memStore struct {
	tasks []model.Task
}

func (s *memStore) Read() ([]model.Task, error)   { return s.tasks, nil }
func (s *memStore) Save(tasks []model.Task) error { s.tasks = tasks; return nil }
func (s *memStore) Location() string              { return "mem" }

type recordingNotifier struct {
	sent []Notification
}

func (r *recordingNotifier) Send(n Notification) error {
	r.sent = append(r.sent, n)
	return nil
}

var fixedNow = time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, opts Options) (Model, *todo.Model) {
	t.Helper()
	tm := todo.New(&memStore{}, todo.Options{Now: func() time.Time { return fixedNow }})
	exec := commands.NewExecutor(tm, commands.NewRegistry(commands.Env{}), nil)
	opts.Now = func() time.Time { return fixedNow }
	return NewModel(tm, exec, opts), tm
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return updated.(Model)
}

func pressEnter(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

func TestTypingShowsPreview(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = typeText(t, m, "ad")
	if m.Input() != "ad" {
		t.Fatalf("unexpected input %q", m.Input())
	}
	if len(m.Preview) == 0 || m.Preview[0].Command != "add" {
		t.Fatalf("expected add preview first, got %+v", m.Preview)
	}
}

func TestEnterExecutesAndClearsInput(t *testing.T) {
	m, tm := newTestModel(t, Options{})
	m = typeText(t, m, "add Buy milk")
	m, cmd := pressEnter(t, m)
	if cmd != nil {
		t.Fatalf("expected no command after add")
	}
	if m.Input() != "" || len(m.Preview) != 0 {
		t.Fatalf("input should be cleared, got %q", m.Input())
	}
	if m.Status.Text != "Task 'Buy milk' added" || m.Status.IsError {
		t.Fatalf("unexpected status %+v", m.Status)
	}
	if len(tm.Tasks()) != 1 {
		t.Fatalf("task was not added")
	}
	if !strings.Contains(m.View(), "Buy milk") {
		t.Fatalf("view does not list the new task")
	}
}

func TestFailedCommandShowsFieldErrors(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	updated, _ := m.Update(ExecuteMsg{Line: "delete"})
	m = updated.(Model)
	if !m.Status.IsError || !m.Feedback.Failed {
		t.Fatalf("expected failure, got %+v", m.Status)
	}
	if len(m.Feedback.Errors) != 1 || !strings.HasPrefix(m.Feedback.Errors[0], "index: ") {
		t.Fatalf("unexpected field errors %v", m.Feedback.Errors)
	}
	if len(m.Notifications) != 1 || m.Notifications[0].Level != "error" {
		t.Fatalf("expected error notification, got %+v", m.Notifications)
	}
}

func TestShowFocusesTask(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	updated, _ := m.Update(ExecuteMsg{Line: "add Plan trip -m pack **light**"})
	updated, _ = updated.(Model).Update(ExecuteMsg{Line: "show 1"})
	m = updated.(Model)
	if m.Focus == nil || m.Focus.Title != "Plan trip" {
		t.Fatalf("expected focused task, got %+v", m.Focus)
	}
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if updated.(Model).Focus != nil {
		t.Fatalf("esc should clear focus")
	}
}

func TestExitQuits(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m, cmd := func() (Model, tea.Cmd) {
		updated, cmd := m.Update(ExecuteMsg{Line: "exit"})
		return updated.(Model), cmd
	}()
	if !m.Quitting || cmd == nil {
		t.Fatalf("exit should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}
}

func TestHelpToggleOnlyWithEmptyInput(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = typeText(t, m, "?")
	if !m.HelpVisible || m.Input() != "" {
		t.Fatalf("? on empty input should toggle help")
	}
	m = typeText(t, m, "find")
	m = typeText(t, m, "?")
	if m.Input() != "find?" {
		t.Fatalf("? should be typed once input is non-empty, got %q", m.Input())
	}
}

func TestRefreshTickKeepsTasks(t *testing.T) {
	m, tm := newTestModel(t, Options{})
	updated, _ := m.Update(ExecuteMsg{Line: "add a"})
	before := tm.Version()
	updated, cmd := updated.Update(RefreshTickMsg{At: fixedNow})
	if cmd == nil {
		t.Fatalf("refresh should schedule the next tick")
	}
	if tm.Version() != before {
		t.Fatalf("refresh must not change tasks")
	}
	_ = updated
}

func TestTaskDueNotifies(t *testing.T) {
	notifier := &recordingNotifier{}
	engine := scheduler.NewEngine(4)
	engine.Start()
	defer engine.Stop()

	m, _ := newTestModel(t, Options{Scheduler: engine, Notifier: notifier, DesktopEnabled: true})
	updated, cmd := m.Update(TaskDueMsg{Event: scheduler.DueEvent{TaskID: uuid.New(), Title: "Pay rent", DueAt: fixedNow.Add(5 * time.Minute)}})
	m = updated.(Model)
	if m.Status.Text != "'Pay rent' is due in 5 minutes" {
		t.Fatalf("unexpected status %q", m.Status.Text)
	}
	if len(notifier.sent) != 1 || notifier.sent[0].Title != "Task due" {
		t.Fatalf("expected desktop notification, got %+v", notifier.sent)
	}
	if cmd == nil {
		t.Fatalf("expected to keep waiting for due events")
	}
}

func TestCommandsRescheduleAlerts(t *testing.T) {
	engine := scheduler.NewEngine(4)
	engine.Start()
	defer engine.Stop()

	m, tm := newTestModel(t, Options{Scheduler: engine})
	end := fixedNow.Add(48 * time.Hour)
	if _, err := tm.Add("Later", func(task *model.Task) { task.EndTime = &end }); err != nil {
		t.Fatalf("add: %v", err)
	}
	updated, _ := m.Update(ExecuteMsg{Line: "add Other"})
	_ = updated
	if engine.Pending() != 1 {
		t.Fatalf("expected 1 pending alert, got %d", engine.Pending())
	}
}

func TestStartupErrorsBecomeNotifications(t *testing.T) {
	notifier := &recordingNotifier{}
	m, _ := newTestModel(t, Options{
		Notifier:       notifier,
		DesktopEnabled: true,
		StartupErrors:  []error{errors.New("read tasks: storage: invalid record")},
	})
	if !m.Status.IsError || m.Status.Text != "read tasks: storage: invalid record" {
		t.Fatalf("unexpected status %+v", m.Status)
	}
	if len(m.Notifications) != 1 || len(notifier.sent) != 1 {
		t.Fatalf("expected one notification, got %d in app and %d sent", len(m.Notifications), len(notifier.sent))
	}
	if !strings.Contains(m.View(), "invalid record") {
		t.Fatalf("startup error not rendered")
	}
}
