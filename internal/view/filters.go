package view

import (
	"strings"
	"time"

	"github.com/sandeepkv93/taskline/internal/model"
)

const DefaultFilterName = "all"

// Filters builds the named views. now is consulted on every evaluation so
// time-based views follow the clock.
func Filters(now func() time.Time) []Filter {
	if now == nil {
		now = time.Now
	}
	return []Filter{
		{Name: "all"},
		{Name: "incomplete", Predicate: func(t model.Task) bool { return !t.Completed }},
		{Name: "completed", Predicate: func(t model.Task) bool { return t.Completed }},
		{
			Name:      "due soon",
			Predicate: func(t model.Task) bool { return !t.Completed && t.IsDeadline() },
			Compare:   byEndTime,
		},
		{
			Name:      "events",
			Predicate: model.Task.IsEvent,
			Compare:   byStartTime,
		},
		{
			Name:      "today",
			Predicate: func(t model.Task) bool { return touchesDay(t, now()) },
			Compare:   byEndTime,
		},
		{
			Name: "overdue",
			Predicate: func(t model.Task) bool {
				return !t.Completed && t.EndTime != nil && t.EndTime.Before(now())
			},
			Compare: byEndTime,
		},
	}
}

// Lookup finds a filter by case-insensitive name. Runs of spaces count as
// one, so "due  soon" finds "due soon".
func Lookup(filters []Filter, name string) (Filter, bool) {
	name = strings.ToLower(strings.Join(strings.Fields(name), " "))
	for _, f := range filters {
		if f.Name == name {
			return f, true
		}
	}
	return Filter{}, false
}

// Names lists filter names in declaration order.
func Names(filters []Filter) []string {
	out := make([]string, len(filters))
	for i, f := range filters {
		out[i] = f.Name
	}
	return out
}

// AnyTerm matches tasks whose title or description contains any of terms,
// ignoring case.
func AnyTerm(terms []string) Predicate {
	lowered := make([]string, 0, len(terms))
	for _, term := range terms {
		if term = strings.ToLower(strings.TrimSpace(term)); term != "" {
			lowered = append(lowered, term)
		}
	}
	return func(t model.Task) bool {
		haystack := strings.ToLower(t.Title + "\n" + t.Description)
		for _, term := range lowered {
			if strings.Contains(haystack, term) {
				return true
			}
		}
		return false
	}
}

func touchesDay(t model.Task, now time.Time) bool {
	y, m, d := now.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	switch {
	case t.StartTime != nil && t.EndTime != nil:
		return t.StartTime.Before(dayEnd) && !t.EndTime.Before(dayStart)
	case t.EndTime != nil:
		return !t.EndTime.Before(dayStart) && t.EndTime.Before(dayEnd)
	default:
		return false
	}
}

func byEndTime(a, b model.Task) int {
	return compareTimes(a.EndTime, b.EndTime)
}

func byStartTime(a, b model.Task) int {
	return compareTimes(a.StartTime, b.StartTime)
}

// compareTimes puts nil last.
func compareTimes(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return a.Compare(*b)
	}
}
