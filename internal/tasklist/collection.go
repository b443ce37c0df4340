package tasklist

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/sandeepkv93/taskline/internal/model"
)

var ErrRelocationUnsupported = errors.New("tasklist: storage cannot change location")

// Storage persists whole snapshots of the collection.
type Storage interface {
	Read() ([]model.Task, error)
	Save(tasks []model.Task) error
	Location() string
}

// Relocator is implemented by storages that can switch files.
type Relocator interface {
	ReadFrom(location string) ([]model.Task, error)
	MoveTo(location string, tasks []model.Task) error
}

type IndexError struct {
	Position int
	Len      int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("tasklist: position %d out of range [0,%d)", e.Position, e.Len)
}

// Mutator edits a task in place. The collection restores the task's ID
// after every call.
type Mutator func(*model.Task)

type Option func(*Collection)

func WithLogger(l *slog.Logger) Option {
	return func(c *Collection) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStorageErrorHandler registers a callback for non-fatal storage failures.
func WithStorageErrorHandler(fn func(error)) Option {
	return func(c *Collection) { c.onStorageError = fn }
}

// Collection is the authoritative ordered task list. Every successful
// mutation writes one snapshot to storage.
type Collection struct {
	tasks          []model.Task
	store          Storage
	version        uint64
	logger         *slog.Logger
	onStorageError func(error)
}

// New loads the collection from store. A read failure leaves the collection
// empty and is reported through the storage error handler.
func New(store Storage, opts ...Option) *Collection {
	c := &Collection{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	if store == nil {
		return c
	}
	tasks, err := store.Read()
	if err != nil {
		c.reportStorageError("read tasks", err)
		return c
	}
	c.tasks = cloneAll(tasks)
	return c
}

func (c *Collection) Add(title string, mutators ...Mutator) (model.Task, error) {
	draft := model.NewTask(title)
	id := draft.ID
	for _, m := range mutators {
		m(&draft)
		draft.ID = id
	}
	if err := draft.Validate(); err != nil {
		return model.Task{}, err
	}
	c.tasks = append(c.tasks, draft)
	c.changed()
	return draft.Clone(), nil
}

// Delete removes the tasks at the given storage positions and returns them
// in input order.
func (c *Collection) Delete(positions []int) ([]model.Task, error) {
	if err := c.checkPositions(positions); err != nil {
		return nil, err
	}
	removed := make([]model.Task, 0, len(positions))
	drop := make(map[int]struct{}, len(positions))
	for _, p := range positions {
		if _, dup := drop[p]; dup {
			continue
		}
		drop[p] = struct{}{}
		removed = append(removed, c.tasks[p].Clone())
	}
	kept := c.tasks[:0:0]
	for i, task := range c.tasks {
		if _, ok := drop[i]; !ok {
			kept = append(kept, task)
		}
	}
	c.tasks = kept
	c.changed()
	return removed, nil
}

// Update applies mutate to every targeted task. Copies are validated first;
// live tasks change only when every copy is valid.
func (c *Collection) Update(positions []int, mutate Mutator) ([]model.Task, error) {
	if err := c.checkPositions(positions); err != nil {
		return nil, err
	}
	drafts := make([]model.Task, len(positions))
	var bag model.ErrorBag
	for i, p := range positions {
		draft := c.tasks[p].Clone()
		mutate(&draft)
		draft.ID = c.tasks[p].ID
		if err := draft.Validate(); err != nil {
			ve, ok := model.AsValidationError(err)
			if !ok {
				return nil, err
			}
			bag.Merge(ve)
		}
		drafts[i] = draft
	}
	if err := bag.Err(""); err != nil {
		return nil, err
	}
	out := make([]model.Task, len(positions))
	for i, p := range positions {
		c.tasks[p] = drafts[i]
		out[i] = drafts[i].Clone()
	}
	c.changed()
	return out, nil
}

// ReplaceAll swaps in deep copies of tasks.
func (c *Collection) ReplaceAll(tasks []model.Task) {
	c.tasks = cloneAll(tasks)
	c.changed()
}

// Tasks returns deep copies in collection order.
func (c *Collection) Tasks() []model.Task {
	return cloneAll(c.tasks)
}

func (c *Collection) At(pos int) (model.Task, bool) {
	if pos < 0 || pos >= len(c.tasks) {
		return model.Task{}, false
	}
	return c.tasks[pos].Clone(), true
}

// IndexOf returns the storage position of the task with id, or -1.
func (c *Collection) IndexOf(id uuid.UUID) int {
	return slices.IndexFunc(c.tasks, func(t model.Task) bool { return t.ID == id })
}

func (c *Collection) Len() int {
	return len(c.tasks)
}

// Version increases on every change and lets readers cache derived output.
func (c *Collection) Version() uint64 {
	return c.version
}

func (c *Collection) Location() string {
	if c.store == nil {
		return ""
	}
	return c.store.Location()
}

// SaveTo writes the current tasks to location and makes it the active file.
func (c *Collection) SaveTo(location string) error {
	r, ok := c.store.(Relocator)
	if !ok {
		return ErrRelocationUnsupported
	}
	if err := r.MoveTo(location, cloneAll(c.tasks)); err != nil {
		return fmt.Errorf("save to %s: %w", location, err)
	}
	c.logger.Info("storage relocated", "location", location)
	return nil
}

// ReadFrom loads tasks from location without touching the collection.
func (c *Collection) ReadFrom(location string) ([]model.Task, error) {
	r, ok := c.store.(Relocator)
	if !ok {
		return nil, ErrRelocationUnsupported
	}
	tasks, err := r.ReadFrom(location)
	if err != nil {
		return nil, fmt.Errorf("load from %s: %w", location, err)
	}
	return tasks, nil
}

func (c *Collection) checkPositions(positions []int) error {
	for _, p := range positions {
		if p < 0 || p >= len(c.tasks) {
			return &IndexError{Position: p, Len: len(c.tasks)}
		}
	}
	return nil
}

func (c *Collection) changed() {
	c.version++
	if c.store == nil {
		return
	}
	if err := c.store.Save(cloneAll(c.tasks)); err != nil {
		c.reportStorageError("save tasks", err)
	}
}

func (c *Collection) reportStorageError(op string, err error) {
	c.logger.Warn("storage failure", "op", op, "location", c.store.Location(), "error", err)
	if c.onStorageError != nil {
		c.onStorageError(fmt.Errorf("%s: %w", op, err))
	}
}

func cloneAll(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
