package storage

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sandeepkv93/taskline/internal/model"
)

// Record is the persisted form of a task. Only the UUID, title and the two
// flags are always present.
type Record struct {
	ID          string     `json:"uuid" yaml:"uuid" validate:"required,uuid"`
	Title       string     `json:"title" yaml:"title" validate:"required"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Location    string     `json:"location,omitempty" yaml:"location,omitempty"`
	Pinned      bool       `json:"pinned" yaml:"pinned"`
	Completed   bool       `json:"completed" yaml:"completed"`
	StartTime   *time.Time `json:"startTime,omitempty" yaml:"startTime,omitempty"`
	EndTime     *time.Time `json:"endTime,omitempty" yaml:"endTime,omitempty"`
	Tags        []string   `json:"tags,omitempty" yaml:"tags,omitempty" validate:"dive,required,excludesall=0x2C"`
}

// Document is the top level of a JSON or YAML data file.
type Document struct {
	Tasks []Record `json:"tasks" yaml:"tasks" validate:"dive"`
}

var validate = validator.New()

func FromTask(t model.Task) Record {
	return Record{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Location:    t.Location,
		Pinned:      t.Pinned,
		Completed:   t.Completed,
		StartTime:   copyTime(t.StartTime),
		EndTime:     copyTime(t.EndTime),
		Tags:        t.TagNames(),
	}
}

func (r Record) ToTask() (model.Task, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return model.Task{}, fmt.Errorf("parse uuid %q: %w", r.ID, err)
	}
	out := model.Task{
		ID:          id,
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Pinned:      r.Pinned,
		Completed:   r.Completed,
		StartTime:   copyTime(r.StartTime),
		EndTime:     copyTime(r.EndTime),
	}
	for _, name := range r.Tags {
		out.MergeTags([]model.Tag{{Name: name}})
	}
	return out, nil
}

func fromTasks(tasks []model.Task) Document {
	doc := Document{Tasks: make([]Record, 0, len(tasks))}
	for _, t := range tasks {
		doc.Tasks = append(doc.Tasks, FromTask(t))
	}
	return doc
}

func (d Document) toTasks() ([]model.Task, error) {
	if err := validate.Struct(d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	out := make([]model.Task, 0, len(d.Tasks))
	seen := make(map[uuid.UUID]struct{}, len(d.Tasks))
	for i, r := range d.Tasks {
		t, err := r.ToTask()
		if err != nil {
			return nil, fmt.Errorf("%w: task %d: %v", ErrInvalidRecord, i, err)
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("%w: task %d: %v", ErrInvalidRecord, i, err)
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("%w: task %d: duplicate id %s", ErrInvalidRecord, i, t.ID)
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
