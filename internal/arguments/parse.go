package arguments

import (
	"errors"
	"strings"
	"unicode"
)

var ErrUnterminatedQuote = errors.New("arguments: unterminated quote")

// ParseResult is an input line split into its keyword, the positional text
// before the first flag, and flag values keyed by flag name.
type ParseResult struct {
	Command    string
	Positional string
	Flags      map[string]string
	FlagOrder  []string
}

func (r ParseResult) HasFlag(name string) bool {
	_, ok := r.Flags[name]
	return ok
}

type token struct {
	text   string
	quoted bool
}

// Parse splits a command line. Double quotes group words and allow an
// explicitly empty value such as -m "".
func Parse(line string) (ParseResult, error) {
	tokens, err := tokenize(line)
	if err != nil {
		return ParseResult{}, err
	}
	out := ParseResult{Flags: make(map[string]string)}
	if len(tokens) == 0 {
		return out, nil
	}
	out.Command = strings.ToLower(tokens[0].text)

	var positional []string
	current := ""
	inFlags := false
	var values []string
	flush := func() {
		if !inFlags {
			return
		}
		if _, seen := out.Flags[current]; !seen {
			out.FlagOrder = append(out.FlagOrder, current)
		}
		out.Flags[current] = strings.Join(values, " ")
	}
	for _, tok := range tokens[1:] {
		if name, ok := flagName(tok); ok {
			flush()
			current, inFlags, values = name, true, nil
			continue
		}
		if inFlags {
			values = append(values, tok.text)
		} else {
			positional = append(positional, tok.text)
		}
	}
	flush()
	out.Positional = strings.Join(positional, " ")
	return out, nil
}

// SplitKeyword returns the first word of line and the remaining text.
func SplitKeyword(line string) (string, string) {
	line = strings.TrimSpace(line)
	idx := strings.IndexFunc(line, unicode.IsSpace)
	if idx < 0 {
		return strings.ToLower(line), ""
	}
	return strings.ToLower(line[:idx]), strings.TrimSpace(line[idx:])
}

func flagName(tok token) (string, bool) {
	if tok.quoted {
		return "", false
	}
	t := tok.text
	switch {
	case len(t) == 2 && t[0] == '-' && isLetter(t[1]):
		return t[1:], true
	case len(t) > 2 && strings.HasPrefix(t, "--") && isLetter(t[2]):
		return t[2:], true
	default:
		return "", false
	}
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func tokenize(line string) ([]token, error) {
	var (
		out     []token
		buf     strings.Builder
		inQuote bool
		quoted  bool
		started bool
	)
	emit := func() {
		if started {
			out = append(out, token{text: buf.String(), quoted: quoted})
		}
		buf.Reset()
		quoted, started = false, false
	}
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			quoted, started = true, true
		case unicode.IsSpace(r) && !inQuote:
			emit()
		default:
			buf.WriteRune(r)
			started = true
		}
	}
	if inQuote {
		return nil, ErrUnterminatedQuote
	}
	emit()
	return out, nil
}
