package commands

import (
	"fmt"

	"github.com/sandeepkv93/taskline/internal/arguments"
	"github.com/sandeepkv93/taskline/internal/todo"
)

type undoCommand struct{}

func newUndo(Env) Command { return undoCommand{} }

func (undoCommand) Name() string                      { return string(TypeUndo) }
func (undoCommand) Parameters() []arguments.Parameter { return nil }
func (c undoCommand) Summaries() []Summary            { return []Summary{summary(c, "Undo the last change")} }

func (undoCommand) Execute(m *todo.Model) (Result, error) {
	if err := m.Undo(); err != nil {
		return Result{}, err
	}
	return Result{Feedback: "Undo successful"}, nil
}

type redoCommand struct{}

func newRedo(Env) Command { return redoCommand{} }

func (redoCommand) Name() string                      { return string(TypeRedo) }
func (redoCommand) Parameters() []arguments.Parameter { return nil }
func (c redoCommand) Summaries() []Summary            { return []Summary{summary(c, "Redo the last undone change")} }

func (redoCommand) Execute(m *todo.Model) (Result, error) {
	if err := m.Redo(); err != nil {
		return Result{}, err
	}
	return Result{Feedback: "Redo successful"}, nil
}

type saveCommand struct {
	location *arguments.Argument[string]
}

func newSave(Env) Command {
	return &saveCommand{location: arguments.String("location").Required()}
}

func (c *saveCommand) Name() string { return string(TypeSave) }

func (c *saveCommand) Parameters() []arguments.Parameter {
	return []arguments.Parameter{c.location}
}

func (c *saveCommand) Summaries() []Summary {
	return []Summary{summary(c, "Save tasks to another file and keep using it")}
}

func (c *saveCommand) Execute(m *todo.Model) (Result, error) {
	if err := m.Save(c.location.Value()); err != nil {
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf("Tasks saved to %s", c.location.Value())}, nil
}

type loadCommand struct {
	location *arguments.Argument[string]
}

func newLoad(Env) Command {
	return &loadCommand{location: arguments.String("location").Required()}
}

func (c *loadCommand) Name() string { return string(TypeLoad) }

func (c *loadCommand) Parameters() []arguments.Parameter {
	return []arguments.Parameter{c.location}
}

func (c *loadCommand) Summaries() []Summary {
	return []Summary{summary(c, "Replace tasks with the contents of a file")}
}

func (c *loadCommand) Execute(m *todo.Model) (Result, error) {
	if err := m.Load(c.location.Value()); err != nil {
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf("Tasks loaded from %s", c.location.Value())}, nil
}

type helpCommand struct {
	registry *Registry
	topic    *arguments.Argument[string]
}

func newHelp(env Env) Command {
	return &helpCommand{registry: env.Registry, topic: arguments.String("command")}
}

func (c *helpCommand) Name() string { return string(TypeHelp) }

func (c *helpCommand) Parameters() []arguments.Parameter {
	return []arguments.Parameter{c.topic}
}

func (c *helpCommand) Summaries() []Summary {
	return []Summary{summary(c, "Show how to use commands")}
}

func (c *helpCommand) Execute(*todo.Model) (Result, error) {
	if c.topic.IsBound() && c.topic.Value() != "" {
		cmd, err := c.registry.Dispatch(c.topic.Value())
		if err != nil {
			return Result{}, err
		}
		return Result{Feedback: fmt.Sprintf("Usage of %s", cmd.Name()), Help: cmd.Summaries()}, nil
	}
	return Result{Feedback: "Available commands", Help: c.registry.Summaries()}, nil
}

type exitCommand struct{}

func newExit(Env) Command { return exitCommand{} }

func (exitCommand) Name() string                      { return string(TypeExit) }
func (exitCommand) Parameters() []arguments.Parameter { return nil }
func (c exitCommand) Summaries() []Summary            { return []Summary{summary(c, "Quit")} }

func (exitCommand) Execute(*todo.Model) (Result, error) {
	return Result{Feedback: "Goodbye", Exit: true}, nil
}
