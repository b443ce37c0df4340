package tags

import (
	"testing"

	"github.com/sandeepkv93/taskline/internal/model"
)

func TestAssociateReusesTags(t *testing.T) {
	r := NewRegistry()
	a := model.NewTask("a")
	b := model.NewTask("b")
	r.Associate(a, []string{"work", "home", "work"})
	got := r.Associate(b, []string{"work"})
	if len(got) != 1 || got[0].Name != "work" {
		t.Fatalf("unexpected tags: %v", got)
	}
	if r.TaskCount("work") != 2 || r.TaskCount("home") != 1 {
		t.Fatalf("unexpected counts work=%d home=%d", r.TaskCount("work"), r.TaskCount("home"))
	}
	if tags := r.Tags(); len(tags) != 2 || tags[0].Name != "home" {
		t.Fatalf("expected sorted unique tags, got %v", tags)
	}
}

func TestDissociateKeepsEmptyTag(t *testing.T) {
	r := NewRegistry()
	a := model.NewTask("a")
	r.Associate(a, []string{"solo"})
	r.Dissociate(a, []string{"solo", "unknown"})
	if !r.Has("solo") || r.TaskCount("solo") != 0 {
		t.Fatalf("tag should stay registered with zero tasks")
	}
	if removed := r.DeleteTags([]string{"solo", "unknown"}); len(removed) != 1 {
		t.Fatalf("expected one removed tag, got %v", removed)
	}
	if r.Has("solo") {
		t.Fatalf("tag should be gone after delete")
	}
}

func TestRenameTag(t *testing.T) {
	r := NewRegistry()
	a := model.NewTask("a")
	b := model.NewTask("b")
	r.Associate(a, []string{"urgent"})
	r.Associate(b, []string{"urgent", "critical"})

	if _, err := r.RenameTag("urgent", "critical"); err == nil {
		t.Fatalf("expected rename onto existing name to fail")
	}
	if r.TaskCount("urgent") != 2 || r.TaskCount("critical") != 1 {
		t.Fatalf("failed rename must not change associations")
	}
	if _, err := r.RenameTag("missing", "other"); err == nil {
		t.Fatalf("expected rename of unknown tag to fail")
	}

	ids, err := r.RenameTag("urgent", "now")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if len(ids) != 2 || r.Has("urgent") || r.TaskCount("now") != 2 {
		t.Fatalf("unexpected rename result ids=%v tags=%v", ids, r.Tags())
	}
}

func TestRebuildFromTasks(t *testing.T) {
	r := NewRegistry()
	r.Associate(model.NewTask("stale"), []string{"old"})

	a := model.NewTask("a")
	a.Tags = []model.Tag{{Name: "x"}, {Name: "y"}}
	b := model.NewTask("b")
	b.Tags = []model.Tag{{Name: "y"}}
	r.Rebuild([]model.Task{a, b})

	if r.Has("old") {
		t.Fatalf("rebuild should discard previous tags")
	}
	if r.TaskCount("y") != 2 || r.TaskCount("x") != 1 {
		t.Fatalf("unexpected counts after rebuild: %v", r.Tags())
	}
}

func TestValidateNames(t *testing.T) {
	cases := []struct {
		names []string
		ok    bool
	}{
		{[]string{"work"}, true},
		{nil, false},
		{[]string{""}, false},
		{[]string{"a,b"}, false},
		{[]string{"two words"}, false},
	}
	for _, tc := range cases {
		err := ValidateNames(tc.names)
		if (err == nil) != tc.ok {
			t.Fatalf("ValidateNames(%v) = %v, want ok=%v", tc.names, err, tc.ok)
		}
	}
}

func TestValidateExisting(t *testing.T) {
	r := NewRegistry()
	r.Associate(model.NewTask("a"), []string{"known"})
	if err := ValidateExisting(r, []string{"known"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := ValidateExisting(r, []string{"known", "nope"})
	ve, ok := model.AsValidationError(err)
	if !ok || ve.Fields[FieldTags] != "Tag not found: nope" {
		t.Fatalf("unexpected error: %v", err)
	}
}
