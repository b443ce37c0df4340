package scheduler

import (
	"time"

	"github.com/sandeepkv93/taskline/internal/model"
)

// EventsFor lists the upcoming deadlines of incomplete tasks. Tasks already
// past due at now are left out; the display shows them as overdue instead.
func EventsFor(tasks []model.Task, now time.Time) []DueEvent {
	var out []DueEvent
	for _, t := range tasks {
		if t.Completed || t.EndTime == nil || !t.EndTime.After(now) {
			continue
		}
		out = append(out, DueEvent{TaskID: t.ID, Title: t.Title, DueAt: *t.EndTime})
	}
	return out
}
