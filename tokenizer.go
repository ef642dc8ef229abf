package cmdlinegen

import (
	"strings"

	"github.com/google/shlex"
)

// Line is one input line split into words
type Line struct {
	// Words are the shell words of the line, with quotes removed and
	// the trailing comment discarded
	Words []string
	// Help is the trimmed text after the first `#` of the line
	Help string
}

// Empty is true for blank and comment only lines
func (l Line) Empty() bool {
	return len(l.Words) == 0
}

// Tokenize splits `line` into shell words and captures the comment as
// the help string of the command.  The error returned comes from the
// word splitter and means the quoting is broken.
func Tokenize(line string) (Line, error) {
	words, err := shlex.Split(line[:commentStart(line)])
	if err != nil {
		return Line{}, err
	}
	var help string
	if i := strings.IndexByte(line, '#'); i >= 0 {
		help = strings.TrimSpace(line[i+1:])
	}
	return Line{Words: words, Help: help}, nil
}

// commentStart returns the offset of the first `#` that is neither
// quoted nor escaped, or the length of `line` when there's none.  A
// `#` glued to the end of a word starts a comment as well.
func commentStart(line string) int {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote == '\'':
			if c == '\'' {
				quote = 0
			}
		case quote == '"':
			if c == '\\' {
				i++
			} else if c == '"' {
				quote = 0
			}
		case c == '\\':
			i++
		case c == '\'' || c == '"':
			quote = c
		case c == '#':
			return i
		}
	}
	return len(line)
}
