package view

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/sandeepkv93/taskline/internal/model"
)

type Predicate func(model.Task) bool

// Compare orders two tasks the way cmp.Compare does.
type Compare func(a, b model.Task) int

// Filter is a named perspective over the collection. A nil Predicate accepts
// every task and a nil Compare keeps collection order.
type Filter struct {
	Name      string
	Predicate Predicate
	Compare   Compare
}

type SearchStatus struct {
	Terms   []string
	Matches int
	Total   int
}

// Source is the collection the pipeline reads from.
type Source interface {
	Tasks() []model.Task
	Version() uint64
	IndexOf(id uuid.UUID) int
	Len() int
}

type NoSuchTaskError struct {
	Index int
}

func (e *NoSuchTaskError) Error() string {
	return fmt.Sprintf("There is no task no. %d", e.Index)
}

// Pipeline applies view filter, then find filter, then sort. Output is
// recomputed only when the source or a stage has changed.
type Pipeline struct {
	source Source
	filter Filter
	find   Predicate
	terms  []string

	stage        uint64
	cachedSource uint64
	cachedStage  uint64
	cached       bool
	output       []model.Task
}

func NewPipeline(source Source) *Pipeline {
	return &Pipeline{source: source}
}

// SetView replaces the view stage. Pinned tasks always sort first.
func (p *Pipeline) SetView(f Filter) {
	p.filter = f
	p.stage++
}

func (p *Pipeline) Filter() Filter {
	return p.filter
}

// SetFind replaces the find stage. A nil predicate accepts everything and
// clears the search status.
func (p *Pipeline) SetFind(pred Predicate, terms []string) {
	p.find = pred
	if pred == nil {
		p.terms = nil
	} else {
		p.terms = slices.Clone(terms)
	}
	p.stage++
}

// SearchStatus reports the active search, if any. Total counts every task in
// the collection.
func (p *Pipeline) SearchStatus() (SearchStatus, bool) {
	if p.find == nil || p.terms == nil {
		return SearchStatus{}, false
	}
	return SearchStatus{
		Terms:   slices.Clone(p.terms),
		Matches: len(p.current()),
		Total:   p.source.Len(),
	}, true
}

// Output returns a copy of the displayed tasks in display order.
func (p *Pipeline) Output() []model.Task {
	cur := p.current()
	out := make([]model.Task, len(cur))
	for i, t := range cur {
		out[i] = t.Clone()
	}
	return out
}

func (p *Pipeline) Len() int {
	return len(p.current())
}

// TaskAt returns the task at a 1-based displayed index.
func (p *Pipeline) TaskAt(displayed int) (model.Task, error) {
	cur := p.current()
	if displayed < 1 || displayed > len(cur) {
		return model.Task{}, &NoSuchTaskError{Index: displayed}
	}
	return cur[displayed-1].Clone(), nil
}

// Resolve maps a 1-based displayed index to a 0-based storage position.
func (p *Pipeline) Resolve(displayed int) (int, error) {
	task, err := p.TaskAt(displayed)
	if err != nil {
		return 0, err
	}
	pos := p.source.IndexOf(task.ID)
	if pos < 0 {
		return 0, &NoSuchTaskError{Index: displayed}
	}
	return pos, nil
}

// Positions resolves every displayed task to its storage position.
func (p *Pipeline) Positions() []int {
	cur := p.current()
	out := make([]int, 0, len(cur))
	for _, t := range cur {
		if pos := p.source.IndexOf(t.ID); pos >= 0 {
			out = append(out, pos)
		}
	}
	return out
}

func (p *Pipeline) current() []model.Task {
	version := p.source.Version()
	if p.cached && p.cachedSource == version && p.cachedStage == p.stage {
		return p.output
	}
	all := p.source.Tasks()
	out := make([]model.Task, 0, len(all))
	for _, t := range all {
		if p.filter.Predicate != nil && !p.filter.Predicate(t) {
			continue
		}
		if p.find != nil && !p.find(t) {
			continue
		}
		out = append(out, t)
	}
	slices.SortStableFunc(out, pinFirst(p.filter.Compare))
	p.output = out
	p.cachedSource = version
	p.cachedStage = p.stage
	p.cached = true
	return out
}

func pinFirst(then Compare) func(a, b model.Task) int {
	return func(a, b model.Task) int {
		if a.Pinned != b.Pinned {
			if a.Pinned {
				return -1
			}
			return 1
		}
		if then == nil {
			return 0
		}
		return then(a, b)
	}
}
