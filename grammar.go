package cmdlinegen

import (
	"fmt"
	"strings"
)

// hiddenPrefix marks placeholders that take part in the canonical
// name of the command
const hiddenPrefix = "__"

// Command is the description of one command line, everything needed
// to emit its C declarations
type Command struct {
	// Name is the canonical name, all the emitted symbols are
	// prefixed with `cmd_<Name>`
	Name string
	// Fields follow the order of the words in the line
	Fields []Field
	// Help is what the line has after `#`
	Help string
	// Text is the line's words joined back with spaces
	Text string
	// Line is the 1-based line number the command came from
	Line int
}

// Field is one member of the result struct of a command along with
// its token descriptor
type Field struct {
	Name string
	Type ParamType
	// Default is the C expression passed as the value to the
	// string initializer: a quoted literal or `NULL`
	Default string
	// Token is the symbol of the token descriptor
	Token string
}

// InterpretOptions tweak the checks done by Interpret
type InterpretOptions struct {
	// AllowDuplicateFields accepts commands where two tokens map to
	// the same struct member.  The emitted struct then carries both
	// members and the C compiler gets the final word.
	AllowDuplicateFields bool
}

// Interpret turns the words of line number `lineno` into a Command.
// It never looks at other lines, so the same input always produces
// the same Command.
func Interpret(lineno int, ln Line, opts InterpretOptions) (*Command, error) {
	if ln.Empty() {
		return nil, GrammarError{Line: lineno, Message: "empty command"}
	}
	if isPlaceholder(ln.Words[0]) {
		return nil, GrammarError{Line: lineno, Message: "command must start with a literal string"}
	}
	for i, w := range ln.Words {
		if w == "" {
			return nil, GrammarError{Line: lineno, Message: fmt.Sprintf("word %d is empty", i+1)}
		}
	}
	name, err := deriveName(lineno, ln.Words)
	if err != nil {
		return nil, err
	}
	fields, err := classifyTokens(lineno, name, ln.Words)
	if err != nil {
		return nil, err
	}
	if !opts.AllowDuplicateFields {
		seen := make(map[string]struct{}, len(fields))
		for _, f := range fields {
			if _, ok := seen[f.Name]; ok {
				return nil, DuplicateFieldError{Line: lineno, Field: f.Name}
			}
			seen[f.Name] = struct{}{}
		}
	}
	return &Command{
		Name:   name,
		Fields: fields,
		Help:   ln.Help,
		Text:   strings.Join(ln.Words, " "),
		Line:   lineno,
	}, nil
}

// deriveName builds the canonical name out of the literal prefix of
// the command.  Hidden placeholders are part of the prefix, and the
// scan stops at the first regular one.
func deriveName(lineno int, words []string) (string, error) {
	var pieces []string
	for _, w := range words {
		if !isPlaceholder(w) {
			pieces = append(pieces, w)
			continue
		}
		_, name, err := splitPlaceholder(lineno, w)
		if err != nil {
			return "", err
		}
		if !strings.HasPrefix(name, hiddenPrefix) {
			break
		}
		pieces = append(pieces, strings.TrimPrefix(name, hiddenPrefix))
	}
	return sanitizeCIdent(strings.Join(pieces, "_")), nil
}

// classifyTokens resolves the type of every word, placeholders after
// the name prefix included
func classifyTokens(lineno int, name string, words []string) ([]Field, error) {
	fields := make([]Field, 0, len(words))
	for _, w := range words {
		var f Field
		if isPlaceholder(w) {
			tag, fname, err := splitPlaceholder(lineno, w)
			if err != nil {
				return nil, err
			}
			typ, choices, ok := lookupType(tag)
			if !ok {
				return nil, UnknownTypeError{Line: lineno, Tag: tag}
			}
			f = Field{
				Name:    sanitizeCIdent(strings.TrimPrefix(fname, hiddenPrefix)),
				Type:    typ,
				Default: "NULL",
			}
			if typ == TypeChoice {
				f.Default = cStringLiteral(strings.Join(choices, "#"))
			}
		} else {
			f = Field{
				Name:    sanitizeCIdent(w),
				Type:    TypeString,
				Default: cStringLiteral(w),
			}
		}
		f.Token = fmt.Sprintf("cmd_%s_%s_tok", name, f.Name)
		fields = append(fields, f)
	}
	return fields, nil
}

func isPlaceholder(word string) bool {
	return strings.HasPrefix(word, "<")
}

// splitPlaceholder breaks `<TYPE>NAME` into its tag and name
func splitPlaceholder(lineno int, word string) (tag, name string, err error) {
	tag, name, found := strings.Cut(word[1:], ">")
	if !found {
		return "", "", GrammarError{Line: lineno, Message: fmt.Sprintf("placeholder '%s' is missing '>'", word)}
	}
	if strings.TrimPrefix(name, hiddenPrefix) == "" {
		return "", "", GrammarError{Line: lineno, Message: fmt.Sprintf("placeholder '%s' has no name", word)}
	}
	return tag, name, nil
}
