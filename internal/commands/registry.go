package commands

import (
	"fmt"
	"sync"
)

var builtins = []Factory{
	newAdd,
	newComplete,
	newDelete,
	newEdit,
	newExit,
	newFind,
	newHelp,
	newLoad,
	newPin,
	newRedo,
	newSave,
	newShow,
	newTag,
	newUndo,
	newView,
}

type entry struct {
	name    string
	factory Factory
}

// Registry maps command keywords to constructors. The table is built once,
// on first use, in declaration order.
type Registry struct {
	once      sync.Once
	factories []Factory
	entries   []entry
	index     map[string]Factory
	env       Env
}

func NewRegistry(env Env) *Registry {
	return NewRegistryWith(env, builtins...)
}

// NewRegistryWith builds a registry over a custom command set.
func NewRegistryWith(env Env, factories ...Factory) *Registry {
	r := &Registry{factories: factories, env: env}
	r.env.Registry = r
	return r
}

func (r *Registry) build() {
	r.once.Do(func() {
		r.index = make(map[string]Factory, len(r.factories))
		for _, f := range r.factories {
			name := f(r.env).Name()
			if _, dup := r.index[name]; dup {
				continue
			}
			r.index[name] = f
			r.entries = append(r.entries, entry{name: name, factory: f})
		}
	})
}

// Dispatch returns a fresh instance of the named command.
func (r *Registry) Dispatch(keyword string) (Command, error) {
	r.build()
	f, ok := r.index[keyword]
	if !ok {
		return nil, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("'%s' is not a recognized command", keyword)}
	}
	return f(r.env), nil
}

func (r *Registry) Names() []string {
	r.build()
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.name
	}
	return out
}

// Summaries lists every command's summaries in registry order.
func (r *Registry) Summaries() []Summary {
	r.build()
	var out []Summary
	for _, e := range r.entries {
		out = append(out, e.factory(r.env).Summaries()...)
	}
	return out
}
