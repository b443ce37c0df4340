package commands

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/sandeepkv93/taskline/internal/arguments"
	"github.com/sandeepkv93/taskline/internal/model"
	"github.com/sandeepkv93/taskline/internal/todo"
)

type Executor struct {
	model    *todo.Model
	registry *Registry
	logger   *slog.Logger
}

func NewExecutor(m *todo.Model, registry *Registry, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{model: m, registry: registry, logger: logger}
}

// Execute runs one input line against the model. It never panics on bad
// input; every failure comes back as a Result.
func (e *Executor) Execute(line string) Result {
	line = strings.TrimPrefix(strings.TrimSpace(line), "/")
	if strings.TrimSpace(line) == "" {
		return Result{}
	}

	parsed, err := arguments.Parse(line)
	if err != nil {
		e.logger.Debug("malformed input", "input", line, "error", err)
		return failure(&CommandError{Code: ErrCodeMalformedInput, Message: "Your command has an unclosed quote"})
	}

	cmd, err := e.registry.Dispatch(parsed.Command)
	if err != nil {
		e.logger.Debug("dispatch failed", "command", parsed.Command, "error", err)
		return failure(err)
	}

	var bag model.ErrorBag
	var positional arguments.PositionalFunc
	if pb, ok := cmd.(PositionalBinder); ok {
		positional = pb.BindPositional
	}
	arguments.Bind(parsed, cmd.Parameters(), positional, &bag)
	if err := bag.Err("Your command has some problems"); err != nil {
		e.logger.Info("invalid arguments", "command", cmd.Name(), "error", err)
		return failure(err)
	}

	res, err := cmd.Execute(e.model)
	if err != nil {
		var ve *model.ValidationError
		if !errors.As(err, &ve) {
			e.logger.Warn("command failed", "command", cmd.Name(), "error", err)
		} else {
			e.logger.Info("command rejected", "command", cmd.Name(), "error", err)
		}
		return failure(err)
	}
	e.logger.Debug("command executed", "command", cmd.Name(), "feedback", res.Feedback)
	return res
}

// Preview ranks command summaries by how closely they match what has been
// typed so far. It never touches the model.
func (e *Executor) Preview(partial string, limit int) []Summary {
	return e.registry.Preview(strings.TrimPrefix(strings.TrimSpace(partial), "/"), limit)
}
