package commands

import (
	"fmt"

	"github.com/sandeepkv93/taskline/internal/arguments"
	"github.com/sandeepkv93/taskline/internal/model"
	"github.com/sandeepkv93/taskline/internal/tags"
	"github.com/sandeepkv93/taskline/internal/todo"
)

type addCommand struct {
	title       *arguments.Argument[string]
	date        *arguments.Argument[arguments.Range]
	description *arguments.Argument[string]
	location    *arguments.Argument[string]
	pin         *arguments.Argument[bool]
	tags        *arguments.Argument[[]string]
}

func newAdd(env Env) Command {
	return &addCommand{
		title:       arguments.String("title").Required(),
		date:        arguments.DateRange("date", env.Dates).WithFlag("d"),
		description: arguments.String("description").WithFlag("m"),
		location:    arguments.String("location").WithFlag("l"),
		pin:         arguments.Flag("pin").WithFlag("p"),
		tags:        arguments.Words("tags").WithFlag("t"),
	}
}

func (c *addCommand) Name() string { return string(TypeAdd) }

func (c *addCommand) Parameters() []arguments.Parameter {
	return []arguments.Parameter{c.title, c.date, c.description, c.location, c.pin, c.tags}
}

func (c *addCommand) Summaries() []Summary {
	return []Summary{summary(c, "Add a task")}
}

func (c *addCommand) Execute(m *todo.Model) (Result, error) {
	if c.tags.IsBound() {
		if err := tags.ValidateNames(c.tags.Value()); err != nil {
			return Result{}, err
		}
	}
	task, err := m.Add(c.title.Value(), func(t *model.Task) {
		t.Description = c.description.Value()
		t.Location = c.location.Value()
		t.Pinned = c.pin.Value()
		if c.date.IsBound() {
			t.StartTime, t.EndTime = c.date.Value().Start, c.date.Value().End
		}
		for _, name := range c.tags.Value() {
			t.MergeTags([]model.Tag{{Name: name}})
		}
	})
	if err != nil {
		return Result{}, err
	}
	return taskResult(task, "added"), nil
}

type editCommand struct {
	index       *arguments.Argument[int]
	title       *arguments.Argument[string]
	date        *arguments.Argument[arguments.Range]
	description *arguments.Argument[string]
	pin         *arguments.Argument[bool]
	location    *arguments.Argument[string]
}

func newEdit(env Env) Command {
	return &editCommand{
		index:       arguments.Int("index").Required(),
		title:       arguments.String("title"),
		date:        arguments.DateRange("date", env.Dates).WithFlag("d"),
		description: arguments.String("description").WithFlag("m"),
		pin:         arguments.Flag("pin").WithFlag("p"),
		location:    arguments.String("location").WithFlag("l"),
	}
}

func (c *editCommand) Name() string { return string(TypeEdit) }

func (c *editCommand) Parameters() []arguments.Parameter {
	return []arguments.Parameter{c.index, c.title, c.date, c.description, c.pin, c.location}
}

func (c *editCommand) Summaries() []Summary {
	return []Summary{summary(c, "Edit a task")}
}

// BindPositional takes the index and, optionally, a new title.
func (c *editCommand) BindPositional(text string, bag *model.ErrorBag) {
	first, rest := arguments.SplitKeyword(text)
	arguments.SetInto(c.index, first, bag)
	if rest != "" {
		arguments.SetInto(c.title, rest, bag)
	}
}

func (c *editCommand) Execute(m *todo.Model) (Result, error) {
	task, err := m.Update(c.index.Value(), func(t *model.Task) {
		if c.title.IsBound() {
			t.Title = c.title.Value()
		}
		if c.description.IsBound() {
			t.Description = c.description.Value()
		}
		if c.pin.IsBound() {
			t.Pinned = c.pin.Value()
		}
		if c.location.IsBound() {
			t.Location = c.location.Value()
		}
		if c.date.IsBound() {
			t.StartTime, t.EndTime = c.date.Value().Start, c.date.Value().End
		}
	})
	if err != nil {
		return Result{}, err
	}
	return taskResult(task, "edited"), nil
}

type deleteCommand struct {
	indices *arguments.Argument[[]int]
}

func newDelete(Env) Command {
	return &deleteCommand{indices: arguments.Ints("index").Required()}
}

func (c *deleteCommand) Name() string { return string(TypeDelete) }

func (c *deleteCommand) Parameters() []arguments.Parameter {
	return []arguments.Parameter{c.indices}
}

func (c *deleteCommand) Summaries() []Summary {
	return []Summary{summary(c, "Delete one or more tasks")}
}

func (c *deleteCommand) Execute(m *todo.Model) (Result, error) {
	removed, err := m.Delete(c.indices.Value()...)
	if err != nil {
		return Result{}, err
	}
	if len(removed) == 1 {
		return taskResult(removed[0], "deleted"), nil
	}
	return Result{Feedback: fmt.Sprintf("%s deleted", plural(len(removed), "task"))}, nil
}

type pinCommand struct {
	index *arguments.Argument[int]
}

func newPin(Env) Command {
	return &pinCommand{index: arguments.Int("index").Required()}
}

func (c *pinCommand) Name() string { return string(TypePin) }

func (c *pinCommand) Parameters() []arguments.Parameter {
	return []arguments.Parameter{c.index}
}

func (c *pinCommand) Summaries() []Summary {
	return []Summary{summary(c, "Pin or unpin a task")}
}

func (c *pinCommand) Execute(m *todo.Model) (Result, error) {
	task, err := m.Update(c.index.Value(), func(t *model.Task) { t.Pinned = !t.Pinned })
	if err != nil {
		return Result{}, err
	}
	if task.Pinned {
		return taskResult(task, "pinned"), nil
	}
	return taskResult(task, "unpinned"), nil
}

type completeCommand struct {
	index *arguments.Argument[int]
	all   *arguments.Argument[bool]
}

func newComplete(Env) Command {
	return &completeCommand{
		index: arguments.Int("index"),
		all:   arguments.Flag("all").WithFlag("a"),
	}
}

func (c *completeCommand) Name() string { return string(TypeComplete) }

func (c *completeCommand) Parameters() []arguments.Parameter {
	return []arguments.Parameter{c.index, c.all}
}

func (c *completeCommand) Summaries() []Summary {
	return []Summary{
		{Scenario: "Mark a task complete or incomplete", Command: c.Name(), Arguments: "<index>"},
		{Scenario: "Complete every task in view", Command: c.Name(), Arguments: "-a"},
	}
}

func (c *completeCommand) Execute(m *todo.Model) (Result, error) {
	if c.all.Value() {
		done, err := m.UpdateAll(func(t *model.Task) { t.Completed = true })
		if err != nil {
			return Result{}, err
		}
		return Result{Feedback: fmt.Sprintf("%s marked complete", plural(len(done), "task"))}, nil
	}
	if !c.index.IsBound() {
		var bag model.ErrorBag
		bag.Put(c.index.Name(), fmt.Sprintf("The %s parameter is required", c.index.Name()))
		return Result{}, bag.Err("")
	}
	task, err := m.Update(c.index.Value(), func(t *model.Task) { t.Completed = !t.Completed })
	if err != nil {
		return Result{}, err
	}
	if task.Completed {
		return taskResult(task, "marked complete"), nil
	}
	return taskResult(task, "marked incomplete"), nil
}

type showCommand struct {
	index *arguments.Argument[int]
}

func newShow(Env) Command {
	return &showCommand{index: arguments.Int("index").Required()}
}

func (c *showCommand) Name() string { return string(TypeShow) }

func (c *showCommand) Parameters() []arguments.Parameter {
	return []arguments.Parameter{c.index}
}

func (c *showCommand) Summaries() []Summary {
	return []Summary{summary(c, "Show the details of a task")}
}

func (c *showCommand) Execute(m *todo.Model) (Result, error) {
	task, err := m.TaskAt(c.index.Value())
	if err != nil {
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf("Showing task '%s'", task.Title), Focus: &task}, nil
}
