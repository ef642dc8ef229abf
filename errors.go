package cmdlinegen

import (
	"errors"
	"fmt"
)

// ErrGeneratorState is returned when the Generator phases are called
// out of order
var ErrGeneratorState = errors.New("generator called out of order")

// SyntaxError is returned when a line can't be split into words, in
// general because of unbalanced quotes
type SyntaxError struct {
	Line int
	Err  error
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

func (e SyntaxError) Unwrap() error {
	return e.Err
}

// GrammarError is returned when a command line doesn't follow the
// shape of the grammar, for example when it starts with a placeholder
type GrammarError struct {
	Line    int
	Message string
}

func (e GrammarError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// UnknownTypeError is returned when the tag of a placeholder isn't
// one of the recognized types
type UnknownTypeError struct {
	Line int
	Tag  string
}

func (e UnknownTypeError) Error() string {
	return fmt.Sprintf("line %d: unknown token type '%s'", e.Line, e.Tag)
}

// DuplicateFieldError is returned when two tokens of the same command
// resolve to the same member of the result struct
type DuplicateFieldError struct {
	Line  int
	Field string
}

func (e DuplicateFieldError) Error() string {
	return fmt.Sprintf("line %d: field '%s' declared more than once", e.Line, e.Field)
}

// DuplicateCommandError is returned when two lines derive the same
// canonical name and would emit colliding symbols
type DuplicateCommandError struct {
	Line      int
	Name      string
	FirstLine int
}

func (e DuplicateCommandError) Error() string {
	return fmt.Sprintf("line %d: command 'cmd_%s' already defined at line %d", e.Line, e.Name, e.FirstLine)
}
