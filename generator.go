package cmdlinegen

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

type generatorState int

const (
	generatorState_New generatorState = iota
	generatorState_Open
	generatorState_Closed
)

// Generator writes the generated header, and optionally the stub
// source, one command at a time.  It's used in three phases: Open
// writes the preambles, Add writes one command, and Close writes the
// context table and closes the header guard.
type Generator struct {
	cfg    *Config
	header io.Writer
	stubs  io.Writer
	logger *slog.Logger

	state     generatorState
	instances []string
	// names maps canonical names to the line they were first seen
	names map[string]int
}

// Option configures optional collaborators of Generate and
// NewGenerator
type Option func(*Generator)

// WithLogger sends progress messages to `logger`
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator creates a generator writing the header to `header`.
// `stubs` may be nil, and when it isn't it receives one empty handler
// per command.
func NewGenerator(cfg *Config, header, stubs io.Writer, opts ...Option) *Generator {
	g := &Generator{
		cfg:    cfg,
		header: header,
		stubs:  stubs,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		names:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Open writes the header preamble and, when stubs are requested, the
// include at the top of the stub file
func (g *Generator) Open() error {
	if g.state != generatorState_New {
		return fmt.Errorf("open: %w", ErrGeneratorState)
	}
	g.state = generatorState_Open
	guard := g.cfg.GetString("output.header_guard")
	if _, err := io.WriteString(g.header, renderPreamble(g.cfg.GetString("output.banner"), guard)); err != nil {
		return err
	}
	if g.stubs != nil {
		if _, err := io.WriteString(g.stubs, renderStubPreamble(g.cfg.GetString("output.header_name"))); err != nil {
			return err
		}
	}
	return nil
}

// Add writes the declarations of `cmd`.  Nothing is written when the
// command's canonical name is already taken and unique names are
// enforced.
func (g *Generator) Add(cmd *Command) error {
	if g.state != generatorState_Open {
		return fmt.Errorf("add: %w", ErrGeneratorState)
	}
	if first, ok := g.names[cmd.Name]; ok && g.cfg.GetBool("check.unique_names") {
		return DuplicateCommandError{Line: cmd.Line, Name: cmd.Name, FirstLine: first}
	} else if !ok {
		g.names[cmd.Name] = cmd.Line
	}
	if _, err := io.WriteString(g.header, renderCommand(cmd)); err != nil {
		return err
	}
	if g.stubs != nil {
		if _, err := io.WriteString(g.stubs, renderStub(cmd)); err != nil {
			return err
		}
	}
	g.instances = append(g.instances, instanceName(cmd))
	g.logger.Debug("command generated",
		"line", cmd.Line,
		"name", instanceName(cmd),
		"fields", len(cmd.Fields))
	return nil
}

// Close writes the context table listing every command added so far
// and closes the header guard
func (g *Generator) Close() error {
	if g.state != generatorState_Open {
		return fmt.Errorf("close: %w", ErrGeneratorState)
	}
	g.state = generatorState_Closed
	out := renderPostamble(
		g.cfg.GetString("output.context_name"),
		g.cfg.GetString("output.header_guard"),
		g.instances,
	)
	if _, err := io.WriteString(g.header, out); err != nil {
		return err
	}
	g.logger.Info("header generated", "commands", len(g.instances))
	return nil
}

// Generate reads the command list from `r` and writes the header to
// `header` and the stubs to `stubs`, which may be nil.  The first
// error stops the run; what was written for previous lines stays
// written.
func Generate(r io.Reader, header, stubs io.Writer, cfg *Config, opts ...Option) error {
	g := NewGenerator(cfg, header, stubs, opts...)
	if err := g.Open(); err != nil {
		return err
	}
	if err := scanCommands(r, cfg, g.Add); err != nil {
		return err
	}
	return g.Close()
}

// ReadCommands interprets every command of the list in `r` without
// generating any code
func ReadCommands(r io.Reader, cfg *Config) ([]*Command, error) {
	var cmds []*Command
	err := scanCommands(r, cfg, func(cmd *Command) error {
		cmds = append(cmds, cmd)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cmds, nil
}

// scanCommands calls `fn` with every command of the list in `r`, in
// order, skipping blank and comment only lines.  Lines have no length
// limit, and the last one doesn't need a trailing newline.
func scanCommands(r io.Reader, cfg *Config, fn func(*Command) error) error {
	iopts := InterpretOptions{
		AllowDuplicateFields: !cfg.GetBool("check.unique_fields"),
	}
	br := bufio.NewReader(r)
	lineno := 0
	for {
		text, rerr := br.ReadString('\n')
		if rerr != nil && rerr != io.EOF {
			return fmt.Errorf("can't read commands: %w", rerr)
		}
		if rerr == io.EOF && text == "" {
			return nil
		}
		lineno++
		text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
		ln, err := Tokenize(text)
		if err != nil {
			return SyntaxError{Line: lineno, Err: err}
		}
		if ln.Empty() {
			if rerr == io.EOF {
				return nil
			}
			continue
		}
		cmd, err := Interpret(lineno, ln, iopts)
		if err != nil {
			return err
		}
		if err := fn(cmd); err != nil {
			return err
		}
		if rerr == io.EOF {
			return nil
		}
	}
}
