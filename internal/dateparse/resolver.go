// Package dateparse resolves phrases such as "tomorrow 10 to 11pm" into a
// start and end time.
package dateparse

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var ErrUnrecognized = errors.New("dateparse: unrecognized date")

var (
	rangeSep     = regexp.MustCompile(`(?i)\s+(?:to|until|till|-)\s+`)
	meridiem     = regexp.MustCompile(`(?i)\d\s*([ap]\.?m\.?)\s*$`)
	bareHour     = regexp.MustCompile(`\b\d{1,2}(?::\d{2})?$`)
	explicitTime = regexp.MustCompile(`(?i)\d\s*[ap]\.?m\b|\d{1,2}:\d{2}|\bnoon\b|\bmidnight\b`)
)

// Resolver wraps a when parser with a clock. Phrases without a time of day
// resolve to the end of that day.
type Resolver struct {
	parser *when.Parser
	now    func() time.Time
}

func NewResolver(now func() time.Time) *Resolver {
	if now == nil {
		now = time.Now
	}
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Resolver{parser: w, now: now}
}

// Resolve returns (nil, end) for a single point in time and (start, end)
// for a range.
func (r *Resolver) Resolve(text string) (*time.Time, *time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil, ErrUnrecognized
	}
	parts := rangeSep.Split(text, 2)
	if len(parts) == 1 {
		end, err := r.point(text, r.now())
		if err != nil {
			return nil, nil, err
		}
		return nil, &end, nil
	}

	left, right := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if m := meridiem.FindStringSubmatch(right); m != nil && bareHour.MatchString(left) {
		left += m[1]
	}
	start, err := r.point(left, r.now())
	if err != nil {
		return nil, nil, err
	}
	y, mo, d := start.Date()
	end, err := r.point(right, time.Date(y, mo, d, 0, 0, 0, 0, start.Location()))
	if err != nil {
		return nil, nil, err
	}
	if end.Before(start) {
		end = end.AddDate(0, 0, 1)
	}
	return &start, &end, nil
}

func (r *Resolver) point(text string, base time.Time) (time.Time, error) {
	res, err := r.parser.Parse(text, base)
	if err != nil {
		return time.Time{}, err
	}
	if res == nil {
		return time.Time{}, ErrUnrecognized
	}
	t := res.Time.Truncate(time.Minute)
	if !explicitTime.MatchString(text) {
		y, m, d := t.Date()
		t = time.Date(y, m, d, 23, 59, 0, 0, t.Location())
	}
	return t, nil
}
