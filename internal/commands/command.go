package commands

import (
	"fmt"

	"github.com/sandeepkv93/taskline/internal/arguments"
	"github.com/sandeepkv93/taskline/internal/model"
	"github.com/sandeepkv93/taskline/internal/todo"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeComplete Type = "complete"
	TypeDelete   Type = "delete"
	TypeEdit     Type = "edit"
	TypeExit     Type = "exit"
	TypeFind     Type = "find"
	TypeHelp     Type = "help"
	TypeLoad     Type = "load"
	TypePin      Type = "pin"
	TypeRedo     Type = "redo"
	TypeSave     Type = "save"
	TypeShow     Type = "show"
	TypeTag      Type = "tag"
	TypeUndo     Type = "undo"
	TypeView     Type = "view"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeMalformedInput  ErrorCode = "malformed_input"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Summary describes one way to use a command.
type Summary struct {
	Scenario  string
	Command   string
	Arguments string
}

func (s Summary) String() string {
	if s.Arguments == "" {
		return fmt.Sprintf("%s - %s", s.Command, s.Scenario)
	}
	return fmt.Sprintf("%s %s - %s", s.Command, s.Arguments, s.Scenario)
}

// Result is what the display receives for one input line. Errors holds
// field-level problems keyed by parameter or field name.
type Result struct {
	Feedback  string
	Failed    bool
	Errors    map[string]string
	ErrorKeys []string
	Focus     *model.Task
	Help      []Summary
	Exit      bool
}

// Command is a freshly built instance for one input line.
type Command interface {
	Name() string
	Summaries() []Summary
	Parameters() []arguments.Parameter
	Execute(m *todo.Model) (Result, error)
}

// PositionalBinder is implemented by commands that split their positional
// text across several parameters.
type PositionalBinder interface {
	BindPositional(text string, bag *model.ErrorBag)
}

// Env carries what command constructors need.
type Env struct {
	Dates    arguments.DateResolver
	Registry *Registry
}

type Factory func(env Env) Command

func taskResult(task model.Task, verb string) Result {
	return Result{Feedback: fmt.Sprintf("Task '%s' %s", task.Title, verb)}
}

func failure(err error) Result {
	res := Result{Failed: true, Errors: map[string]string{}}
	if ve, ok := model.AsValidationError(err); ok {
		res.Feedback = ve.Message
		for _, k := range ve.Keys {
			res.Errors[k] = ve.Fields[k]
		}
		res.ErrorKeys = append(res.ErrorKeys, ve.Keys...)
		if res.Feedback == "" {
			res.Feedback = "Your command has some problems"
		}
		return res
	}
	if ce, ok := err.(*CommandError); ok {
		res.Feedback = ce.Message
		return res
	}
	res.Feedback = err.Error()
	return res
}

func summary(c Command, scenario string) Summary {
	return Summary{Scenario: scenario, Command: c.Name(), Arguments: arguments.Summary(c.Parameters())}
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
