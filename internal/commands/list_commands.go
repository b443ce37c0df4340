package commands

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/taskline/internal/arguments"
	"github.com/sandeepkv93/taskline/internal/model"
	"github.com/sandeepkv93/taskline/internal/todo"
	"github.com/sandeepkv93/taskline/internal/view"
)

type findCommand struct {
	keywords *arguments.Argument[[]string]
}

func newFind(Env) Command {
	return &findCommand{keywords: arguments.Words("keywords").Required()}
}

func (c *findCommand) Name() string { return string(TypeFind) }

func (c *findCommand) Parameters() []arguments.Parameter {
	return []arguments.Parameter{c.keywords}
}

func (c *findCommand) Summaries() []Summary {
	return []Summary{summary(c, "Find tasks by keyword")}
}

func (c *findCommand) Execute(m *todo.Model) (Result, error) {
	terms := make([]string, 0, len(c.keywords.Value()))
	for _, k := range c.keywords.Value() {
		terms = append(terms, strings.ToLower(k))
	}
	m.Find(view.AnyTerm(terms), terms...)
	n := len(m.Tasks())
	return Result{Feedback: fmt.Sprintf("%s found!", plural(n, "result"))}, nil
}

type viewCommand struct {
	name *arguments.Argument[string]
}

func newView(Env) Command {
	return &viewCommand{name: arguments.String("view").Required()}
}

func (c *viewCommand) Name() string { return string(TypeView) }

func (c *viewCommand) Parameters() []arguments.Parameter {
	return []arguments.Parameter{c.name}
}

func (c *viewCommand) Summaries() []Summary {
	return []Summary{summary(c, "Switch view: all, incomplete, completed, due soon, events, today, overdue")}
}

func (c *viewCommand) Execute(m *todo.Model) (Result, error) {
	f, ok := view.Lookup(m.Filters(), c.name.Value())
	if !ok {
		var bag model.ErrorBag
		bag.Put(c.name.Name(), fmt.Sprintf("Choose one of: %s", strings.Join(view.Names(m.Filters()), ", ")))
		return Result{}, bag.Err(fmt.Sprintf("There is no view called '%s'", c.name.Value()))
	}
	m.View(f)
	return Result{Feedback: fmt.Sprintf("Showing %s tasks", f.Name)}, nil
}

type tagCommand struct {
	index  *arguments.Argument[int]
	names  *arguments.Argument[[]string]
	remove *arguments.Argument[[]string]
	rename *arguments.Argument[[]string]
}

func newTag(Env) Command {
	return &tagCommand{
		index:  arguments.Int("index"),
		names:  arguments.Words("tags"),
		remove: arguments.Words("delete").WithFlag("d"),
		rename: arguments.Words("rename").WithFlag("r"),
	}
}

func (c *tagCommand) Name() string { return string(TypeTag) }

func (c *tagCommand) Parameters() []arguments.Parameter {
	return []arguments.Parameter{c.index, c.names, c.remove, c.rename}
}

func (c *tagCommand) Summaries() []Summary {
	return []Summary{
		{Scenario: "List every tag", Command: c.Name()},
		{Scenario: "Tag a task", Command: c.Name(), Arguments: "<index> <tags>"},
		{Scenario: "Remove tags from a task", Command: c.Name(), Arguments: "<index> -d <tags>"},
		{Scenario: "Delete tags everywhere", Command: c.Name(), Arguments: "-d <tags>"},
		{Scenario: "Rename a tag", Command: c.Name(), Arguments: "-r <old> <new>"},
	}
}

func (c *tagCommand) BindPositional(text string, bag *model.ErrorBag) {
	first, rest := arguments.SplitKeyword(text)
	arguments.SetInto(c.index, first, bag)
	if rest != "" {
		arguments.SetInto(c.names, rest, bag)
	}
}

func (c *tagCommand) Execute(m *todo.Model) (Result, error) {
	switch {
	case c.rename.IsBound():
		pair := c.rename.Value()
		if len(pair) != 2 {
			var bag model.ErrorBag
			bag.Put(c.rename.Name(), "Give the old and the new tag name")
			return Result{}, bag.Err("")
		}
		if err := m.RenameTag(pair[0], pair[1]); err != nil {
			return Result{}, err
		}
		return Result{Feedback: fmt.Sprintf("Tag '%s' renamed to '%s'", pair[0], pair[1])}, nil
	case c.remove.IsBound() && c.index.IsBound():
		task, err := m.DeleteTagsFromTask(c.index.Value(), c.remove.Value())
		if err != nil {
			return Result{}, err
		}
		return taskResult(task, "untagged "+strings.Join(c.remove.Value(), ", ")), nil
	case c.remove.IsBound():
		deleted, err := m.DeleteTags(c.remove.Value())
		if err != nil {
			return Result{}, err
		}
		return Result{Feedback: fmt.Sprintf("Deleted %s: %s", plural(len(deleted), "tag"), joinTags(deleted))}, nil
	case c.index.IsBound():
		task, err := m.AddTagsToTask(c.index.Value(), c.names.Value())
		if err != nil {
			return Result{}, err
		}
		return taskResult(task, "tagged "+strings.Join(c.names.Value(), ", ")), nil
	default:
		all := m.GlobalTags()
		if len(all) == 0 {
			return Result{Feedback: "There are no tags yet"}, nil
		}
		return Result{Feedback: "Tags: " + joinTags(all)}, nil
	}
}

func joinTags(in []model.Tag) string {
	names := make([]string, len(in))
	for i, t := range in {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}
