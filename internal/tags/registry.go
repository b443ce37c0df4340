package tags

import (
	"sort"

	"github.com/google/uuid"
	"github.com/sandeepkv93/taskline/internal/model"
)

type entry struct {
	tag   model.Tag
	tasks map[uuid.UUID]struct{}
}

// Registry tracks the distinct tag names in use and which tasks carry each.
// Names are case-sensitive and unique.
type Registry struct {
	entries map[string]*entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Associate links task to each named tag, creating tags on first use. The
// caller merges the returned tags into the task itself.
func (r *Registry) Associate(task model.Task, names []string) []model.Tag {
	out := make([]model.Tag, 0, len(names))
	for _, name := range dedupe(names) {
		e := r.ensure(name)
		e.tasks[task.ID] = struct{}{}
		out = append(out, e.tag)
	}
	return out
}

// Dissociate unlinks task from the named tags. Tags left without tasks stay
// registered until DeleteTags removes them.
func (r *Registry) Dissociate(task model.Task, names []string) []model.Tag {
	out := make([]model.Tag, 0, len(names))
	for _, name := range dedupe(names) {
		e, ok := r.entries[name]
		if !ok {
			continue
		}
		delete(e.tasks, task.ID)
		out = append(out, e.tag)
	}
	return out
}

// DeleteTags removes the named tags entirely. Unknown names are ignored.
func (r *Registry) DeleteTags(names []string) []model.Tag {
	out := make([]model.Tag, 0, len(names))
	for _, name := range dedupe(names) {
		e, ok := r.entries[name]
		if !ok {
			continue
		}
		delete(r.entries, name)
		out = append(out, e.tag)
	}
	return out
}

// RenameTag moves every association of oldName onto newName and returns the
// affected task IDs so the caller can rewrite their tag fields.
func (r *Registry) RenameTag(oldName, newName string) ([]uuid.UUID, error) {
	if err := ValidateRename(r, oldName, newName); err != nil {
		return nil, err
	}
	old := r.entries[oldName]
	delete(r.entries, oldName)
	renamed := &entry{tag: model.Tag{Name: newName}, tasks: old.tasks}
	r.entries[newName] = renamed

	ids := make([]uuid.UUID, 0, len(renamed.tasks))
	for id := range renamed.tasks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

// Rebuild discards every association and rescans tasks.
func (r *Registry) Rebuild(tasks []model.Task) {
	r.entries = make(map[string]*entry)
	for _, task := range tasks {
		r.Associate(task, task.TagNames())
	}
}

// Tags returns the registered tags sorted by name.
func (r *Registry) Tags() []model.Tag {
	out := make([]model.Tag, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.tag)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

func (r *Registry) TaskCount(name string) int {
	if e, ok := r.entries[name]; ok {
		return len(e.tasks)
	}
	return 0
}

func (r *Registry) ensure(name string) *entry {
	if e, ok := r.entries[name]; ok {
		return e
	}
	e := &entry{tag: model.Tag{Name: name}, tasks: make(map[uuid.UUID]struct{})}
	r.entries[name] = e
	return e
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
