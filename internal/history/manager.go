package history

import "errors"

const DefaultLimit = 10

var (
	ErrNothingToUndo = errors.New("history: nothing to undo")
	ErrNothingToRedo = errors.New("history: nothing to redo")
)

// Manager keeps bounded undo and redo stacks of snapshots. Recording a new
// snapshot discards the redo stack.
type Manager[T any] struct {
	limit int
	undo  []T
	redo  []T
}

func NewManager[T any](limit int) *Manager[T] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Manager[T]{limit: limit}
}

// Record pushes a snapshot of the state before a change.
func (m *Manager[T]) Record(snapshot T) {
	m.undo = push(m.undo, snapshot, m.limit)
	m.redo = nil
}

// Undo returns the state to restore and keeps current for Redo.
func (m *Manager[T]) Undo(current T) (T, error) {
	var zero T
	if len(m.undo) == 0 {
		return zero, ErrNothingToUndo
	}
	prev := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = push(m.redo, current, m.limit)
	return prev, nil
}

func (m *Manager[T]) Redo(current T) (T, error) {
	var zero T
	if len(m.redo) == 0 {
		return zero, ErrNothingToRedo
	}
	next := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	m.undo = push(m.undo, current, m.limit)
	return next, nil
}

func (m *Manager[T]) CanUndo() bool { return len(m.undo) > 0 }
func (m *Manager[T]) CanRedo() bool { return len(m.redo) > 0 }
func (m *Manager[T]) Limit() int    { return m.limit }

func push[T any](stack []T, v T, limit int) []T {
	stack = append(stack, v)
	if len(stack) > limit {
		stack = append(stack[:0:0], stack[len(stack)-limit:]...)
	}
	return stack
}
