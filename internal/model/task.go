package model

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	FieldTitle     = "title"
	FieldStartTime = "startTime"
	FieldEndTime   = "endTime"
)

type Tag struct {
	Name string
}

type Task struct {
	ID          uuid.UUID
	Title       string
	Description string
	Location    string
	StartTime   *time.Time
	EndTime     *time.Time
	Pinned      bool
	Completed   bool
	Tags        []Tag
}

// NewTask returns a plain task with a fresh identifier.
func NewTask(title string) Task {
	return Task{ID: uuid.New(), Title: title}
}

// Clone returns a deep copy; the result shares no pointers with t.
func (t Task) Clone() Task {
	out := t
	out.StartTime = cloneTime(t.StartTime)
	out.EndTime = cloneTime(t.EndTime)
	if t.Tags != nil {
		out.Tags = slices.Clone(t.Tags)
	}
	return out
}

func (t Task) IsEvent() bool {
	return t.StartTime != nil
}

func (t Task) IsDeadline() bool {
	return t.StartTime == nil && t.EndTime != nil
}

func (t Task) HasTag(name string) bool {
	return slices.ContainsFunc(t.Tags, func(tag Tag) bool { return tag.Name == name })
}

func (t Task) TagNames() []string {
	out := make([]string, 0, len(t.Tags))
	for _, tag := range t.Tags {
		out = append(out, tag.Name)
	}
	return out
}

// MergeTags adds tags not already present, keeping existing order.
func (t *Task) MergeTags(tags []Tag) {
	for _, tag := range tags {
		if !t.HasTag(tag.Name) {
			t.Tags = append(t.Tags, tag)
		}
	}
}

// RemoveTags drops every tag whose name is in names.
func (t *Task) RemoveTags(names []string) {
	t.Tags = slices.DeleteFunc(t.Tags, func(tag Tag) bool { return slices.Contains(names, tag.Name) })
}

// Validate checks the field invariants and reports every violation at once.
func (t Task) Validate() error {
	var bag ErrorBag
	if strings.TrimSpace(t.Title) == "" {
		bag.Put(FieldTitle, "Title should not be empty")
	}
	if t.StartTime != nil {
		if t.EndTime == nil {
			bag.Put(FieldEndTime, "End time is required when a start time is set")
		} else if t.StartTime.After(*t.EndTime) {
			bag.Put(FieldStartTime, "Start time should be before end time")
		}
	}
	return bag.Err("")
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
