package arguments

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const requiredErrorFormat = "The %s parameter is required"

// Parameter is the type-erased view the binder works with.
type Parameter interface {
	Name() string
	Flag() string
	Description() string
	IsFlagOnly() bool
	IsRequired() bool
	IsBound() bool
	Set(raw string) error
}

// Argument is a typed command parameter. A parameter without a flag is
// positional.
type Argument[T any] struct {
	name        string
	flag        string
	description string
	required    bool
	flagOnly    bool
	bound       bool
	value       T
	parse       func(string) (T, error)
}

func New[T any](name string, parse func(string) (T, error)) *Argument[T] {
	return &Argument[T]{name: name, parse: parse}
}

func (a *Argument[T]) WithFlag(flag string) *Argument[T] {
	a.flag = strings.TrimLeft(flag, "-")
	return a
}

func (a *Argument[T]) Required() *Argument[T] {
	a.required = true
	return a
}

func (a *Argument[T]) Describe(d string) *Argument[T] {
	a.description = d
	return a
}

// Default sets the value used when nothing is bound. It never satisfies
// Required.
func (a *Argument[T]) Default(v T) *Argument[T] {
	if !a.bound {
		a.value = v
	}
	return a
}

func (a *Argument[T]) Name() string        { return a.name }
func (a *Argument[T]) Flag() string        { return a.flag }
func (a *Argument[T]) Description() string { return a.description }
func (a *Argument[T]) IsFlagOnly() bool    { return a.flagOnly }
func (a *Argument[T]) IsRequired() bool    { return a.required }
func (a *Argument[T]) IsBound() bool       { return a.bound }
func (a *Argument[T]) Value() T            { return a.value }

// Set parses raw and binds the result.
func (a *Argument[T]) Set(raw string) error {
	v, err := a.parse(raw)
	if err != nil {
		return err
	}
	a.value = v
	a.bound = true
	return nil
}

// CheckRequired reports a required parameter that was never bound.
func CheckRequired(p Parameter) error {
	if p.IsRequired() && !p.IsBound() {
		return fmt.Errorf(requiredErrorFormat, p.Name())
	}
	return nil
}

func Int(name string) *Argument[int] {
	return New(name, func(raw string) (int, error) {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return 0, fmt.Errorf("The %s should be a number", name)
		}
		return v, nil
	})
}

// Ints accepts numbers separated by spaces or commas.
func Ints(name string) *Argument[[]int] {
	return New(name, func(raw string) ([]int, error) {
		fields := SplitList(raw)
		if len(fields) == 0 {
			return nil, fmt.Errorf("The %s should be a number", name)
		}
		out := make([]int, 0, len(fields))
		for _, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("The %s should be a list of numbers", name)
			}
			out = append(out, v)
		}
		return out, nil
	})
}

func String(name string) *Argument[string] {
	return New(name, func(raw string) (string, error) {
		return strings.TrimSpace(raw), nil
	})
}

// Words splits its input on spaces and commas.
func Words(name string) *Argument[[]string] {
	return New(name, func(raw string) ([]string, error) {
		return SplitList(raw), nil
	})
}

// Flag is a boolean that becomes true as soon as its flag appears.
func Flag(name string) *Argument[bool] {
	a := New(name, func(string) (bool, error) { return true, nil })
	a.flagOnly = true
	return a
}

// Range is a resolved time span. Both ends nil means the dates are cleared.
type Range struct {
	Start *time.Time
	End   *time.Time
}

func (r Range) IsEmpty() bool {
	return r.Start == nil && r.End == nil
}

// DateResolver turns a date phrase into a start and end time.
type DateResolver interface {
	Resolve(text string) (start, end *time.Time, err error)
}

// DateRange binds a date phrase. An empty phrase yields an empty Range.
func DateRange(name string, resolver DateResolver) *Argument[Range] {
	return New(name, func(raw string) (Range, error) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return Range{}, nil
		}
		start, end, err := resolver.Resolve(raw)
		if err != nil {
			return Range{}, fmt.Errorf("Cannot understand the date %q", raw)
		}
		return Range{Start: start, End: end}, nil
	})
}

// SplitList splits on runs of whitespace and commas.
func SplitList(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}
