package model

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError aggregates field-level problems. Message is an optional
// summary shown when no single field is to blame.
type ValidationError struct {
	Message string
	Fields  map[string]string
	Keys    []string
}

func (e *ValidationError) Error() string {
	if len(e.Keys) == 0 {
		if e.Message == "" {
			return "model: validation failed"
		}
		return e.Message
	}
	parts := make([]string, 0, len(e.Keys))
	for _, k := range e.Keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	if e.Message != "" {
		return e.Message + " (" + strings.Join(parts, "; ") + ")"
	}
	return strings.Join(parts, "; ")
}

// NewValidationError builds an error carrying only a summary message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...), Fields: map[string]string{}}
}

// AsValidationError unwraps err into a *ValidationError when it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// ErrorBag collects field errors in insertion order. The zero value is ready.
type ErrorBag struct {
	keys   []string
	fields map[string]string
}

// Put records msg for field. A second message for the same field replaces
// the first but keeps its position.
func (b *ErrorBag) Put(field, msg string) {
	if b.fields == nil {
		b.fields = make(map[string]string)
	}
	if _, ok := b.fields[field]; !ok {
		b.keys = append(b.keys, field)
	}
	b.fields[field] = msg
}

func (b *ErrorBag) Len() int {
	return len(b.keys)
}

func (b *ErrorBag) Has(field string) bool {
	_, ok := b.fields[field]
	return ok
}

// Merge folds another validation error into the bag.
func (b *ErrorBag) Merge(err *ValidationError) {
	if err == nil {
		return
	}
	for _, k := range err.Keys {
		b.Put(k, err.Fields[k])
	}
}

// Err returns nil when the bag is empty, otherwise a *ValidationError
// snapshot of its contents.
func (b *ErrorBag) Err(message string) error {
	if b.Len() == 0 {
		return nil
	}
	out := &ValidationError{Message: message, Fields: make(map[string]string, len(b.keys)), Keys: append([]string(nil), b.keys...)}
	for _, k := range b.keys {
		out.Fields[k] = b.fields[k]
	}
	return out
}
