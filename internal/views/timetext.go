package views

import (
	"fmt"
	"time"
)

const (
	dateLayout = "Mon 2 Jan"
	timeLayout = "15:04"
)

// DeadlineText describes how far end is from now, for example "in 5 minutes"
// or "2 hours ago".
func DeadlineText(end, now time.Time) string {
	d := end.Sub(now)
	past := d < 0
	if past {
		d = -d
	}
	minutes := int(d / time.Minute)
	hours := int(d / time.Hour)
	if minutes == 0 {
		return "right now"
	}

	var amount string
	switch {
	case hours == 0:
		amount = unit(minutes, "minute")
	default:
		amount = unit(hours, "hour")
	}
	if past {
		return amount + " ago"
	}
	return "in " + amount
}

// EventText renders an event's time range, collapsing the date when both
// ends fall on the same day.
func EventText(start, end time.Time) string {
	if sameDay(start, end) {
		return fmt.Sprintf("%s %s - %s", start.Format(dateLayout), start.Format(timeLayout), end.Format(timeLayout))
	}
	return fmt.Sprintf("%s %s - %s %s", start.Format(dateLayout), start.Format(timeLayout), end.Format(dateLayout), end.Format(timeLayout))
}

func unit(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
