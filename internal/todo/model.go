// Package todo is the task model the commands operate on. Every index it
// accepts is a 1-based displayed index.
package todo

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/taskline/internal/history"
	"github.com/sandeepkv93/taskline/internal/model"
	"github.com/sandeepkv93/taskline/internal/tags"
	"github.com/sandeepkv93/taskline/internal/tasklist"
	"github.com/sandeepkv93/taskline/internal/view"
)

const noMoreStepsFormat = "There are no more steps to %s"

type Options struct {
	HistoryLimit   int
	DefaultView    string
	Now            func() time.Time
	Logger         *slog.Logger
	OnStorageError func(error)
}

type Model struct {
	tasks    *tasklist.Collection
	pipeline *view.Pipeline
	registry *tags.Registry
	history  *history.Manager[[]model.Task]
	filters  []view.Filter
	logger   *slog.Logger
}

func New(store tasklist.Storage, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	collection := tasklist.New(store,
		tasklist.WithLogger(logger),
		tasklist.WithStorageErrorHandler(opts.OnStorageError),
	)
	m := &Model{
		tasks:    collection,
		pipeline: view.NewPipeline(collection),
		registry: tags.NewRegistry(),
		history:  history.NewManager[[]model.Task](opts.HistoryLimit),
		filters:  view.Filters(opts.Now),
		logger:   logger,
	}
	m.registry.Rebuild(collection.Tasks())

	initial, ok := view.Lookup(m.filters, opts.DefaultView)
	if !ok {
		initial, _ = view.Lookup(m.filters, view.DefaultFilterName)
	}
	m.pipeline.SetView(initial)
	return m
}

func (m *Model) Add(title string, mutate tasklist.Mutator) (model.Task, error) {
	var added model.Task
	err := m.record(func() error {
		var mutators []tasklist.Mutator
		if mutate != nil {
			mutators = append(mutators, mutate)
		}
		task, err := m.tasks.Add(title, mutators...)
		if err != nil {
			return err
		}
		m.registry.Associate(task, task.TagNames())
		added = task
		return nil
	})
	return added, err
}

// Delete removes the tasks at the given displayed indices.
func (m *Model) Delete(displayed ...int) ([]model.Task, error) {
	positions, err := m.resolveAll(displayed)
	if err != nil {
		return nil, err
	}
	var removed []model.Task
	err = m.record(func() error {
		out, err := m.tasks.Delete(positions)
		if err != nil {
			return err
		}
		for _, task := range out {
			m.registry.Dissociate(task, task.TagNames())
		}
		removed = out
		return nil
	})
	return removed, err
}

func (m *Model) Update(displayed int, mutate tasklist.Mutator) (model.Task, error) {
	pos, err := m.resolve(displayed)
	if err != nil {
		return model.Task{}, err
	}
	updated, err := m.updatePositions([]int{pos}, mutate)
	if err != nil {
		return model.Task{}, err
	}
	return updated[0], nil
}

// UpdateAll applies mutate to every displayed task as one batch.
func (m *Model) UpdateAll(mutate tasklist.Mutator) ([]model.Task, error) {
	positions := m.pipeline.Positions()
	if len(positions) == 0 {
		return nil, model.NewValidationError("There are no tasks to update")
	}
	return m.updatePositions(positions, mutate)
}

// View switches the view filter and clears any active find.
func (m *Model) View(f view.Filter) {
	m.pipeline.SetView(f)
	m.pipeline.SetFind(nil, nil)
}

// ViewByName switches to a named filter.
func (m *Model) ViewByName(name string) (view.Filter, error) {
	f, ok := view.Lookup(m.filters, name)
	if !ok {
		return view.Filter{}, model.NewValidationError("Unknown view %q", name)
	}
	m.View(f)
	return f, nil
}

// Find narrows the displayed tasks. With terms the search status is
// published; a nil predicate resets the find stage.
func (m *Model) Find(pred view.Predicate, terms ...string) {
	m.pipeline.SetFind(pred, terms)
}

func (m *Model) Undo() error {
	return m.step("undo", m.history.Undo)
}

func (m *Model) Redo() error {
	return m.step("redo", m.history.Redo)
}

// Save moves storage to location.
func (m *Model) Save(location string) error {
	if err := m.tasks.SaveTo(location); err != nil {
		return model.NewValidationError("Unable to save to %s: %v", location, err)
	}
	return nil
}

// Load replaces every task with the contents of location. It can be undone.
func (m *Model) Load(location string) error {
	loaded, err := m.tasks.ReadFrom(location)
	if err != nil {
		return model.NewValidationError("Unable to load from %s: %v", location, err)
	}
	return m.record(func() error {
		m.tasks.ReplaceAll(loaded)
		m.registry.Rebuild(loaded)
		return nil
	})
}

// Tasks returns the displayed tasks in display order.
func (m *Model) Tasks() []model.Task {
	return m.pipeline.Output()
}

func (m *Model) TaskAt(displayed int) (model.Task, error) {
	task, err := m.pipeline.TaskAt(displayed)
	if err != nil {
		return model.Task{}, model.NewValidationError("%s", err.Error())
	}
	return task, nil
}

func (m *Model) AllTasks() []model.Task   { return m.tasks.Tasks() }
func (m *Model) CurrentView() view.Filter { return m.pipeline.Filter() }
func (m *Model) Filters() []view.Filter   { return m.filters }
func (m *Model) GlobalTags() []model.Tag  { return m.registry.Tags() }
func (m *Model) StorageLocation() string  { return m.tasks.Location() }
func (m *Model) Version() uint64          { return m.tasks.Version() }
func (m *Model) SearchStatus() (view.SearchStatus, bool) {
	return m.pipeline.SearchStatus()
}

func (m *Model) AddTagsToTask(displayed int, names []string) (model.Task, error) {
	if err := tags.ValidateNames(names); err != nil {
		return model.Task{}, err
	}
	pos, err := m.resolve(displayed)
	if err != nil {
		return model.Task{}, err
	}
	current, _ := m.tasks.At(pos)
	for _, n := range names {
		if current.HasTag(n) {
			return model.Task{}, tagError("Task already has tag: %s", n)
		}
	}
	updated, err := m.updatePositions([]int{pos}, func(t *model.Task) {
		t.MergeTags(toTags(names))
	})
	if err != nil {
		return model.Task{}, err
	}
	return updated[0], nil
}

func (m *Model) DeleteTagsFromTask(displayed int, names []string) (model.Task, error) {
	if err := tags.ValidateNames(names); err != nil {
		return model.Task{}, err
	}
	pos, err := m.resolve(displayed)
	if err != nil {
		return model.Task{}, err
	}
	current, _ := m.tasks.At(pos)
	for _, n := range names {
		if !current.HasTag(n) {
			return model.Task{}, tagError("Task does not have tag: %s", n)
		}
	}
	updated, err := m.updatePositions([]int{pos}, func(t *model.Task) {
		t.RemoveTags(names)
	})
	if err != nil {
		return model.Task{}, err
	}
	return updated[0], nil
}

// DeleteTags removes tags from the registry and from every task, visible or not.
func (m *Model) DeleteTags(names []string) ([]model.Tag, error) {
	if err := tags.ValidateExisting(m.registry, names); err != nil {
		return nil, err
	}
	var deleted []model.Tag
	err := m.record(func() error {
		positions := m.positionsWithAnyTag(names)
		if len(positions) > 0 {
			if _, err := m.tasks.Update(positions, func(t *model.Task) { t.RemoveTags(names) }); err != nil {
				return err
			}
		}
		deleted = m.registry.DeleteTags(names)
		return nil
	})
	return deleted, err
}

func (m *Model) RenameTag(oldName, newName string) error {
	if err := tags.ValidateRename(m.registry, oldName, newName); err != nil {
		return err
	}
	return m.record(func() error {
		positions := m.positionsWithAnyTag([]string{oldName})
		if len(positions) > 0 {
			_, err := m.tasks.Update(positions, func(t *model.Task) {
				for i := range t.Tags {
					if t.Tags[i].Name == oldName {
						t.Tags[i].Name = newName
					}
				}
			})
			if err != nil {
				return err
			}
		}
		_, err := m.registry.RenameTag(oldName, newName)
		return err
	})
}

func (m *Model) updatePositions(positions []int, mutate tasklist.Mutator) ([]model.Task, error) {
	before := make(map[uuid.UUID]model.Task, len(positions))
	for _, p := range positions {
		t, _ := m.tasks.At(p)
		before[t.ID] = t
	}
	var updated []model.Task
	err := m.record(func() error {
		out, err := m.tasks.Update(positions, mutate)
		if err != nil {
			return err
		}
		for _, task := range out {
			m.syncTags(before[task.ID], task)
		}
		updated = out
		return nil
	})
	return updated, err
}

func (m *Model) syncTags(before, after model.Task) {
	var gone []string
	for _, n := range before.TagNames() {
		if !after.HasTag(n) {
			gone = append(gone, n)
		}
	}
	m.registry.Dissociate(after, gone)
	m.registry.Associate(after, after.TagNames())
}

// record captures the collection before fn runs and keeps the snapshot only
// when fn succeeds.
func (m *Model) record(fn func() error) error {
	snapshot := m.tasks.Tasks()
	if err := fn(); err != nil {
		return err
	}
	m.history.Record(snapshot)
	return nil
}

func (m *Model) step(name string, move func([]model.Task) ([]model.Task, error)) error {
	restored, err := move(m.tasks.Tasks())
	if err != nil {
		if errors.Is(err, history.ErrNothingToUndo) || errors.Is(err, history.ErrNothingToRedo) {
			return model.NewValidationError(noMoreStepsFormat, name)
		}
		return err
	}
	m.tasks.ReplaceAll(restored)
	m.registry.Rebuild(restored)
	m.logger.Debug("history step", "op", name, "tasks", len(restored))
	return nil
}

func (m *Model) resolve(displayed int) (int, error) {
	pos, err := m.pipeline.Resolve(displayed)
	if err != nil {
		return 0, model.NewValidationError("%s", err.Error())
	}
	return pos, nil
}

func (m *Model) resolveAll(displayed []int) ([]int, error) {
	if len(displayed) == 0 {
		return nil, model.NewValidationError("No task index given")
	}
	out := make([]int, 0, len(displayed))
	for _, d := range displayed {
		pos, err := m.resolve(d)
		if err != nil {
			return nil, err
		}
		out = append(out, pos)
	}
	return out, nil
}

func (m *Model) positionsWithAnyTag(names []string) []int {
	var out []int
	for i, t := range m.tasks.Tasks() {
		for _, n := range names {
			if t.HasTag(n) {
				out = append(out, i)
				break
			}
		}
	}
	return out
}

func tagError(format string, args ...any) error {
	var bag model.ErrorBag
	bag.Put(tags.FieldTags, fmt.Sprintf(format, args...))
	return bag.Err("")
}

func toTags(names []string) []model.Tag {
	out := make([]model.Tag, len(names))
	for i, n := range names {
		out[i] = model.Tag{Name: n}
	}
	return out
}
