package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	start := time.Date(2026, 2, 9, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	cases := []Task{
		NewTask("Buy milk"),
		{Title: "Deadline", EndTime: &end},
		{Title: "Event", StartTime: &start, EndTime: &end},
		{Title: "Instant", StartTime: &start, EndTime: &start},
	}
	for _, task := range cases {
		if err := task.Validate(); err != nil {
			t.Fatalf("expected %q to be valid, got: %v", task.Title, err)
		}
	}
}

func TestTaskValidateReportsEveryField(t *testing.T) {
	start := time.Date(2026, 2, 9, 10, 0, 0, 0, time.UTC)
	task := Task{Title: "  ", StartTime: &start}
	err := task.Validate()
	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got: %v", err)
	}
	if len(ve.Keys) != 2 || ve.Keys[0] != FieldTitle || ve.Keys[1] != FieldEndTime {
		t.Fatalf("unexpected field order: %v", ve.Keys)
	}
}

func TestTaskValidateStartAfterEnd(t *testing.T) {
	end := time.Date(2026, 2, 9, 10, 0, 0, 0, time.UTC)
	start := end.Add(time.Minute)
	err := Task{Title: "Backwards", StartTime: &start, EndTime: &end}.Validate()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if _, ok := ve.Fields[FieldStartTime]; !ok {
		t.Fatalf("expected startTime field error, got %v", ve.Fields)
	}
}

func TestTaskCloneIsDeep(t *testing.T) {
	end := time.Date(2026, 2, 9, 10, 0, 0, 0, time.UTC)
	orig := NewTask("Report")
	orig.EndTime = &end
	orig.Tags = []Tag{{Name: "work"}}

	cp := orig.Clone()
	*cp.EndTime = end.Add(time.Hour)
	cp.Tags[0].Name = "home"

	if !orig.EndTime.Equal(end) {
		t.Fatalf("clone shares end time pointer")
	}
	if orig.Tags[0].Name != "work" {
		t.Fatalf("clone shares tag slice")
	}
	if cp.ID != orig.ID {
		t.Fatalf("clone must keep the identifier")
	}
}

func TestTaskKinds(t *testing.T) {
	now := time.Date(2026, 2, 9, 10, 0, 0, 0, time.UTC)
	plain := NewTask("plain")
	deadline := Task{Title: "deadline", EndTime: &now}
	event := Task{Title: "event", StartTime: &now, EndTime: &now}
	if plain.IsEvent() || plain.IsDeadline() {
		t.Fatalf("plain task misclassified")
	}
	if !deadline.IsDeadline() || deadline.IsEvent() {
		t.Fatalf("deadline task misclassified")
	}
	if !event.IsEvent() || event.IsDeadline() {
		t.Fatalf("event misclassified")
	}
}

func TestTaskTagHelpers(t *testing.T) {
	task := NewTask("tags")
	task.MergeTags([]Tag{{Name: "a"}, {Name: "b"}, {Name: "a"}})
	if got := task.TagNames(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected tags after merge: %v", got)
	}
	task.RemoveTags([]string{"a", "missing"})
	if task.HasTag("a") || !task.HasTag("b") {
		t.Fatalf("unexpected tags after remove: %v", task.TagNames())
	}
}

func TestErrorBagKeepsInsertionOrder(t *testing.T) {
	var bag ErrorBag
	if bag.Err("x") != nil {
		t.Fatalf("empty bag must yield nil error")
	}
	bag.Put("b", "first")
	bag.Put("a", "second")
	bag.Put("b", "replaced")
	ve, _ := AsValidationError(bag.Err("summary"))
	if ve.Keys[0] != "b" || ve.Fields["b"] != "replaced" || ve.Message != "summary" {
		t.Fatalf("unexpected bag contents: %+v", ve)
	}
	if bag.Len() != 2 || !bag.Has("a") {
		t.Fatalf("unexpected bag length %d", bag.Len())
	}
}
