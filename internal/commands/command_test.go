package commands

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/taskline/internal/model"
	"github.com/sandeepkv93/taskline/internal/todo"
)

type memStore struct {
	tasks []model.Task
	files map[string][]model.Task
}

func (s *memStore) Read() ([]model.Task, error)   { return s.tasks, nil }
func (s *memStore) Save(tasks []model.Task) error { s.tasks = tasks; return nil }
func (s *memStore) Location() string              { return "mem" }

func (s *memStore) ReadFrom(location string) ([]model.Task, error) {
	tasks, ok := s.files[location]
	if !ok {
		return nil, errors.New("no such file")
	}
	return tasks, nil
}

func (s *memStore) MoveTo(location string, tasks []model.Task) error {
	if s.files == nil {
		s.files = map[string][]model.Task{}
	}
	s.files[location] = tasks
	return nil
}

// stubDates resolves "tomorrow 6pm" to a fixed deadline and fails otherwise.
type stubDates struct{}

var tomorrow6pm = time.Date(2026, 2, 10, 18, 0, 0, 0, time.UTC)

func (stubDates) Resolve(text string) (*time.Time, *time.Time, error) {
	switch text {
	case "tomorrow 6pm":
		end := tomorrow6pm
		return nil, &end, nil
	case "tomorrow 10 to 11pm":
		start := time.Date(2026, 2, 10, 22, 0, 0, 0, time.UTC)
		end := start.Add(time.Hour)
		return &start, &end, nil
	default:
		return nil, nil, errors.New("unknown")
	}
}

func newExecutor(t *testing.T) (*Executor, *todo.Model, *memStore) {
	t.Helper()
	store := &memStore{}
	m := todo.New(store, todo.Options{})
	return NewExecutor(m, NewRegistry(Env{Dates: stubDates{}}), nil), m, store
}

func run(t *testing.T, e *Executor, line string) Result {
	t.Helper()
	res := e.Execute(line)
	if res.Failed {
		t.Fatalf("%q failed: %s %v", line, res.Feedback, res.Errors)
	}
	return res
}

func titles(m *todo.Model) string {
	var out []string
	for _, task := range m.Tasks() {
		out = append(out, task.Title)
	}
	return strings.Join(out, ",")
}

func TestEmptyInputIsNoOp(t *testing.T) {
	e, m, _ := newExecutor(t)
	res := e.Execute("   ")
	if res.Failed || res.Feedback != "" || len(m.Tasks()) != 0 {
		t.Fatalf("unexpected result for empty input: %+v", res)
	}
}

func TestUnknownCommand(t *testing.T) {
	e, _, _ := newExecutor(t)
	res := e.Execute("/unknown do x")
	if !res.Failed || len(res.Errors) != 0 || !strings.Contains(res.Feedback, "unknown") {
		t.Fatalf("unexpected result: %+v", res)
	}
	var ce *CommandError
	_, err := NewRegistry(Env{}).Dispatch("nope")
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestMalformedInput(t *testing.T) {
	e, _, _ := newExecutor(t)
	res := e.Execute(`add "never closed`)
	if !res.Failed || len(res.Errors) != 0 {
		t.Fatalf("expected plain failure, got %+v", res)
	}
}

func TestAddWithFlags(t *testing.T) {
	e, m, store := newExecutor(t)
	res := run(t, e, "add Finish report -d tomorrow 6pm -m quarterly numbers -l office -p -t work,q1")
	if res.Feedback != "Task 'Finish report' added" {
		t.Fatalf("unexpected feedback: %q", res.Feedback)
	}
	task := m.Tasks()[0]
	if task.EndTime == nil || !task.EndTime.Equal(tomorrow6pm) || task.StartTime != nil {
		t.Fatalf("unexpected times: %v %v", task.StartTime, task.EndTime)
	}
	if task.Description != "quarterly numbers" || task.Location != "office" || !task.Pinned {
		t.Fatalf("unexpected fields: %+v", task)
	}
	if strings.Join(task.TagNames(), ",") != "work,q1" || len(m.GlobalTags()) != 2 {
		t.Fatalf("unexpected tags: %v", task.TagNames())
	}
	if len(store.tasks) != 1 {
		t.Fatalf("add was not persisted")
	}
}

func TestAddRejectsWordsAfterPinFlag(t *testing.T) {
	e, m, _ := newExecutor(t)
	res := e.Execute("add Buy milk -p today please")
	if !res.Failed {
		t.Fatalf("expected failure")
	}
	if _, ok := res.Errors["pin"]; !ok {
		t.Fatalf("missing pin error in %v", res.Errors)
	}
	if len(m.Tasks()) != 0 {
		t.Fatalf("task added despite argument error")
	}
}

func TestAddReportsEveryArgumentError(t *testing.T) {
	e, m, _ := newExecutor(t)
	res := e.Execute("add -d someday -z")
	if !res.Failed {
		t.Fatalf("expected failure")
	}
	for _, key := range []string{"title", "date", "z"} {
		if _, ok := res.Errors[key]; !ok {
			t.Fatalf("missing %s error in %v", key, res.Errors)
		}
	}
	if res.Errors["title"] != "The title parameter is required" {
		t.Fatalf("unexpected title error %q", res.Errors["title"])
	}
	if len(m.Tasks()) != 0 {
		t.Fatalf("failed add changed the model")
	}
}

func TestEditClearsDescriptionOnly(t *testing.T) {
	e, m, _ := newExecutor(t)
	run(t, e, "add one")
	run(t, e, "add two -m notes -l home")
	res := run(t, e, `edit 2 -m ""`)
	if res.Feedback != "Task 'two' edited" {
		t.Fatalf("unexpected feedback %q", res.Feedback)
	}
	task := m.Tasks()[1]
	if task.Description != "" || task.Location != "home" || task.Title != "two" {
		t.Fatalf("unexpected task after edit: %+v", task)
	}
}

func TestEditTitleAndDates(t *testing.T) {
	e, m, _ := newExecutor(t)
	run(t, e, "add draft")
	run(t, e, "edit 1 Final title -d tomorrow 10 to 11pm")
	task := m.Tasks()[0]
	if task.Title != "Final title" || !task.IsEvent() {
		t.Fatalf("unexpected task: %+v", task)
	}
	run(t, e, `edit 1 -d ""`)
	if task := m.Tasks()[0]; task.StartTime != nil || task.EndTime != nil {
		t.Fatalf("empty date should clear times")
	}
	res := e.Execute("edit 5 nothing")
	if !res.Failed || res.Feedback != "There is no task no. 5" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestPinScenario(t *testing.T) {
	e, m, _ := newExecutor(t)
	run(t, e, "add Task 3")
	run(t, e, "add Task 2")
	run(t, e, "add Task 1")
	if titles(m) != "Task 3,Task 2,Task 1" {
		t.Fatalf("unexpected order %s", titles(m))
	}
	if res := run(t, e, "pin 3"); res.Feedback != "Task 'Task 1' pinned" {
		t.Fatalf("unexpected feedback %q", res.Feedback)
	}
	if titles(m) != "Task 1,Task 3,Task 2" {
		t.Fatalf("unexpected order after pin %s", titles(m))
	}
	if res := run(t, e, "pin 1"); res.Feedback != "Task 'Task 1' unpinned" {
		t.Fatalf("unexpected feedback %q", res.Feedback)
	}
}

func TestDeleteFollowsView(t *testing.T) {
	e, m, _ := newExecutor(t)
	for _, title := range []string{"a", "b", "c"} {
		run(t, e, "add "+title)
	}
	run(t, e, "complete 1")
	run(t, e, "view incomplete")
	if res := run(t, e, "delete 1"); res.Feedback != "Task 'b' deleted" {
		t.Fatalf("unexpected feedback %q", res.Feedback)
	}
	run(t, e, "view all")
	if titles(m) != "a,c" {
		t.Fatalf("unexpected tasks %s", titles(m))
	}
	if res := run(t, e, "delete 1 2"); res.Feedback != "2 tasks deleted" {
		t.Fatalf("unexpected feedback %q", res.Feedback)
	}
}

func TestCompleteAll(t *testing.T) {
	e, m, _ := newExecutor(t)
	run(t, e, "add Buy milk")
	run(t, e, "add Write report")
	run(t, e, "find milk")
	if res := run(t, e, "complete -a"); res.Feedback != "1 task marked complete" {
		t.Fatalf("unexpected feedback %q", res.Feedback)
	}
	for _, task := range m.AllTasks() {
		if task.Completed != (task.Title == "Buy milk") {
			t.Fatalf("complete -a touched hidden task %q", task.Title)
		}
	}
	if res := e.Execute("complete"); !res.Failed || res.Errors["index"] == "" {
		t.Fatalf("expected missing index error, got %+v", res)
	}
}

func TestFindAndView(t *testing.T) {
	e, m, _ := newExecutor(t)
	run(t, e, "add Buy milk")
	run(t, e, "add buy bread")
	run(t, e, "add Write report")
	if res := run(t, e, "find BUY"); res.Feedback != "2 results found!" {
		t.Fatalf("unexpected feedback %q", res.Feedback)
	}
	if status, ok := m.SearchStatus(); !ok || status.Total != 3 || status.Terms[0] != "buy" {
		t.Fatalf("unexpected search status %+v", status)
	}
	if res := run(t, e, "find report"); res.Feedback != "1 result found!" {
		t.Fatalf("unexpected feedback %q", res.Feedback)
	}
	run(t, e, "view all")
	if len(m.Tasks()) != 3 {
		t.Fatalf("view should reset find")
	}
	if res := run(t, e, "view due soon"); m.CurrentView().Name != "due soon" {
		t.Fatalf("unexpected view %q after %q", m.CurrentView().Name, res.Feedback)
	}
	res := e.Execute("view someday")
	if !res.Failed || !strings.Contains(res.Errors["view"], "overdue") {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestTagCommands(t *testing.T) {
	e, m, _ := newExecutor(t)
	run(t, e, "add a")
	run(t, e, "add b")
	run(t, e, "tag 1 urgent home")
	run(t, e, "tag 2 critical")
	if res := run(t, e, "tag"); res.Feedback != "Tags: critical, home, urgent" {
		t.Fatalf("unexpected feedback %q", res.Feedback)
	}
	if res := e.Execute("tag -r urgent critical"); !res.Failed || res.Errors["newName"] == "" {
		t.Fatalf("expected rename conflict, got %+v", res)
	}
	run(t, e, "tag -r urgent now")
	run(t, e, "tag 1 -d home")
	if got := strings.Join(m.Tasks()[0].TagNames(), ","); got != "now" {
		t.Fatalf("unexpected tags on a: %s", got)
	}
	if res := run(t, e, "tag -d now critical"); res.Feedback != "Deleted 2 tags: critical, now" && res.Feedback != "Deleted 2 tags: now, critical" {
		t.Fatalf("unexpected feedback %q", res.Feedback)
	}
	for _, task := range m.AllTasks() {
		if len(task.Tags) != 0 {
			t.Fatalf("task %q kept tags %v", task.Title, task.TagNames())
		}
	}
}

func TestUndoRedoCommands(t *testing.T) {
	e, m, _ := newExecutor(t)
	if res := e.Execute("undo"); !res.Failed || res.Feedback != "There are no more steps to undo" {
		t.Fatalf("unexpected result %+v", res)
	}
	run(t, e, "add a")
	run(t, e, "undo")
	if len(m.Tasks()) != 0 {
		t.Fatalf("undo did not revert add")
	}
	run(t, e, "redo")
	if titles(m) != "a" {
		t.Fatalf("redo did not restore add")
	}
}

func TestSaveLoadCommands(t *testing.T) {
	e, m, store := newExecutor(t)
	store.files = map[string][]model.Task{"backup.json": {model.NewTask("restored")}}
	run(t, e, "add local")
	if res := run(t, e, "save copy.json"); res.Feedback != "Tasks saved to copy.json" {
		t.Fatalf("unexpected feedback %q", res.Feedback)
	}
	run(t, e, "load backup.json")
	if titles(m) != "restored" {
		t.Fatalf("load did not replace tasks: %s", titles(m))
	}
	if res := e.Execute("load missing.json"); !res.Failed {
		t.Fatalf("expected load failure")
	}
}

func TestShowHelpExit(t *testing.T) {
	e, _, _ := newExecutor(t)
	run(t, e, "add a")
	res := run(t, e, "show 1")
	if res.Focus == nil || res.Focus.Title != "a" {
		t.Fatalf("show should focus the task, got %+v", res)
	}
	help := run(t, e, "help")
	if len(help.Help) < 15 {
		t.Fatalf("expected every command summary, got %d", len(help.Help))
	}
	if help := run(t, e, "help tag"); len(help.Help) != 5 {
		t.Fatalf("expected tag summaries, got %v", help.Help)
	}
	if res := run(t, e, "exit"); !res.Exit {
		t.Fatalf("exit should request quit")
	}
}

func TestRegistryOrder(t *testing.T) {
	names := NewRegistry(Env{}).Names()
	want := "add,complete,delete,edit,exit,find,help,load,pin,redo,save,show,tag,undo,view"
	if strings.Join(names, ",") != want {
		t.Fatalf("unexpected registry order: %v", names)
	}
}
