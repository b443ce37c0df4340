package arguments

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/taskline/internal/model"
)

// PositionalFunc consumes the positional text for commands that split it
// themselves, such as an index followed by a title.
type PositionalFunc func(text string, bag *model.ErrorBag)

// Bind fills params from r and collects every problem in bag keyed by
// parameter name. When positional is nil the text goes to the first
// parameter without a flag.
func Bind(r ParseResult, params []Parameter, positional PositionalFunc, bag *model.ErrorBag) {
	text := strings.TrimSpace(r.Positional)
	switch {
	case positional != nil:
		if text != "" {
			positional(text, bag)
		}
	case text != "":
		if p := firstPositional(params); p != nil {
			setInto(p, text, bag)
		} else {
			bag.Put("arguments", fmt.Sprintf("Unexpected argument %q", text))
		}
	}

	for _, name := range r.FlagOrder {
		p := lookupFlag(params, name)
		if p == nil {
			bag.Put(name, fmt.Sprintf("Unknown flag -%s", name))
			continue
		}
		setInto(p, r.Flags[name], bag)
	}

	for _, p := range params {
		if err := CheckRequired(p); err != nil && !bag.Has(p.Name()) {
			bag.Put(p.Name(), err.Error())
		}
	}
}

// SetInto binds raw to p, recording a failure under the parameter's name.
func SetInto(p Parameter, raw string, bag *model.ErrorBag) {
	setInto(p, raw, bag)
}

func setInto(p Parameter, raw string, bag *model.ErrorBag) {
	if p.IsFlagOnly() && strings.TrimSpace(raw) != "" {
		bag.Put(p.Name(), fmt.Sprintf("Unexpected argument %q", raw))
		return
	}
	if err := p.Set(raw); err != nil {
		bag.Put(p.Name(), err.Error())
	}
}

// Summary renders params the way help and previews show them, for example
// "<index> [title] [-m description] [-p]".
func Summary(params []Parameter) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		var s string
		switch {
		case p.Flag() == "":
			s = p.Name()
			if p.IsRequired() {
				parts = append(parts, "<"+s+">")
				continue
			}
		case p.IsFlagOnly():
			s = "-" + p.Flag()
		default:
			s = "-" + p.Flag() + " " + p.Name()
		}
		if !p.IsRequired() {
			s = "[" + s + "]"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

func firstPositional(params []Parameter) Parameter {
	for _, p := range params {
		if p.Flag() == "" {
			return p
		}
	}
	return nil
}

func lookupFlag(params []Parameter, name string) Parameter {
	for _, p := range params {
		if p.Flag() != "" && (p.Flag() == name || p.Name() == name) {
			return p
		}
	}
	return nil
}
