package cmdlinegen

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func TestGenerateGolden(t *testing.T) {
	input := readFixture(t, "commands.list")

	t.Run("Header only", func(t *testing.T) {
		var header bytes.Buffer
		err := Generate(strings.NewReader(input), &header, nil, NewConfig())
		require.NoError(t, err)
		assert.Equal(t, readFixture(t, "commands.h"), header.String())
	})

	t.Run("Header and stubs", func(t *testing.T) {
		var header, stubs bytes.Buffer
		cfg := NewConfig()
		cfg.SetString("output.header_name", "commands.h")
		err := Generate(strings.NewReader(input), &header, &stubs, cfg)
		require.NoError(t, err)
		assert.Equal(t, readFixture(t, "commands.h"), header.String())
		assert.Equal(t, readFixture(t, "commands_stubs.c"), stubs.String())
	})
}

func TestGenerateIsDeterministic(t *testing.T) {
	input := readFixture(t, "commands.list")
	var first, second bytes.Buffer
	require.NoError(t, Generate(strings.NewReader(input), &first, nil, NewConfig()))
	require.NoError(t, Generate(strings.NewReader(input), &second, nil, NewConfig()))
	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestGenerateSettings(t *testing.T) {
	cfg := NewConfig()
	cfg.SetString("output.context_name", "main_ctx")
	cfg.SetString("output.header_guard", "APP_COMMANDS_H")
	cfg.SetString("output.banner", "build.sh")

	var header bytes.Buffer
	require.NoError(t, Generate(strings.NewReader("quit\n"), &header, nil, cfg))
	out := header.String()

	assert.True(t, strings.HasPrefix(out, "/* File autogenerated by build.sh */\n#ifndef APP_COMMANDS_H\n#define APP_COMMANDS_H\n"))
	assert.Contains(t, out, "static __rte_used cmdline_parse_ctx_t main_ctx[] = {\n\t&cmd_quit,\n\tNULL\n};\n")
	assert.True(t, strings.HasSuffix(out, "#endif /* APP_COMMANDS_H */\n"))
}

func TestGenerateEmptyInput(t *testing.T) {
	var header bytes.Buffer
	require.NoError(t, Generate(strings.NewReader("\n# nothing\n\n"), &header, nil, NewConfig()))
	assert.Contains(t, header.String(), "cmdline_parse_ctx_t ctx[] = {\n\tNULL\n};\n")
	assert.NotContains(t, header.String(), "Auto-generated handling")
}

func TestGenerateStopsAtFirstError(t *testing.T) {
	input := "show version\n\n<STRING>x rest\nquit\n"
	var header, stubs bytes.Buffer
	err := Generate(strings.NewReader(input), &header, &stubs, NewConfig())

	var gerr GrammarError
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, 3, gerr.Line)

	out := header.String()
	assert.Contains(t, out, `command "show version"`)
	assert.NotContains(t, out, "<STRING>x")
	assert.NotContains(t, out, "cmd_quit")
	assert.NotContains(t, out, "#endif")
	assert.Contains(t, stubs.String(), "cmd_show_version_parsed")
	assert.NotContains(t, stubs.String(), "cmd_quit_parsed")
}

func TestGenerateUnknownType(t *testing.T) {
	err := Generate(strings.NewReader("show version\nset <FOO>x\n"), &bytes.Buffer{}, nil, NewConfig())
	var terr UnknownTypeError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, 2, terr.Line)
	assert.Equal(t, "FOO", terr.Tag)
}

func TestGenerateSyntaxError(t *testing.T) {
	err := Generate(strings.NewReader("quit\nsay \"hello\n"), &bytes.Buffer{}, nil, NewConfig())
	var serr SyntaxError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 2, serr.Line)
}

func TestGenerateDuplicateNames(t *testing.T) {
	input := "show <UINT32>id\nshow <STRING>name\n"

	t.Run("Rejected by default", func(t *testing.T) {
		var header bytes.Buffer
		err := Generate(strings.NewReader(input), &header, nil, NewConfig())
		var cerr DuplicateCommandError
		require.True(t, errors.As(err, &cerr))
		assert.Equal(t, 2, cerr.Line)
		assert.Equal(t, 1, cerr.FirstLine)
		assert.Equal(t, "show", cerr.Name)
		assert.Equal(t, 1, strings.Count(header.String(), "Auto-generated handling"))
	})

	t.Run("Allowed when disabled", func(t *testing.T) {
		cfg := NewConfig()
		cfg.SetBool("check.unique_names", false)
		var header bytes.Buffer
		require.NoError(t, Generate(strings.NewReader(input), &header, nil, cfg))
		assert.Equal(t, 2, strings.Count(header.String(), "static cmdline_parse_inst_t cmd_show = {"))
		assert.Contains(t, header.String(), "\t&cmd_show,\n\t&cmd_show,\n\tNULL\n")
	})
}

func TestGenerateDuplicateFields(t *testing.T) {
	input := "set mode <(auto,off)>mode\n"

	err := Generate(strings.NewReader(input), &bytes.Buffer{}, nil, NewConfig())
	var ferr DuplicateFieldError
	require.True(t, errors.As(err, &ferr))

	cfg := NewConfig()
	cfg.SetBool("check.unique_fields", false)
	var header bytes.Buffer
	require.NoError(t, Generate(strings.NewReader(input), &header, nil, cfg))
	assert.Equal(t, 2, strings.Count(header.String(), "\tcmdline_fixed_string_t mode;\n"))
}

func TestGeneratorPhases(t *testing.T) {
	cmd, err := interpretLine(t, 1, "quit")
	require.NoError(t, err)

	t.Run("Add before Open", func(t *testing.T) {
		g := NewGenerator(NewConfig(), &bytes.Buffer{}, nil)
		assert.ErrorIs(t, g.Add(cmd), ErrGeneratorState)
		assert.ErrorIs(t, g.Close(), ErrGeneratorState)
	})

	t.Run("Open twice", func(t *testing.T) {
		g := NewGenerator(NewConfig(), &bytes.Buffer{}, nil)
		require.NoError(t, g.Open())
		assert.ErrorIs(t, g.Open(), ErrGeneratorState)
	})

	t.Run("Add after Close", func(t *testing.T) {
		g := NewGenerator(NewConfig(), &bytes.Buffer{}, nil)
		require.NoError(t, g.Open())
		require.NoError(t, g.Close())
		assert.ErrorIs(t, g.Add(cmd), ErrGeneratorState)
		assert.ErrorIs(t, g.Close(), ErrGeneratorState)
	})

	t.Run("In order", func(t *testing.T) {
		var header bytes.Buffer
		g := NewGenerator(NewConfig(), &header, nil)
		require.NoError(t, g.Open())
		require.NoError(t, g.Add(cmd))
		require.NoError(t, g.Close())
		assert.Equal(t, renderPreamble("cmdlinegen", "GENERATED_COMMANDS_H")+
			renderCommand(cmd)+
			renderPostamble("ctx", "GENERATED_COMMANDS_H", []string{"cmd_quit"}), header.String())
	})
}

func TestGeneratorLogs(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	err := Generate(strings.NewReader("show version\nquit\n"), &bytes.Buffer{}, nil, NewConfig(), WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(logs.String(), "command generated"))
	assert.Contains(t, logs.String(), "name=cmd_show_version")
	assert.Contains(t, logs.String(), "commands=2")
}

func TestReadCommands(t *testing.T) {
	cmds, err := ReadCommands(strings.NewReader(readFixture(t, "commands.list")), NewConfig())
	require.NoError(t, err)

	names := make([]string, 0, len(cmds))
	lines := make([]int, 0, len(cmds))
	for _, cmd := range cmds {
		names = append(names, cmd.Name)
		lines = append(lines, cmd.Line)
	}
	assert.Equal(t, []string{"show_version", "show_port_id_stats", "set_link", "route_add", "quit"}, names)
	assert.Equal(t, []int{3, 4, 5, 6, 8}, lines)
}

func TestReadCommandsLongLine(t *testing.T) {
	word := strings.Repeat("a", 70000)
	cmds, err := ReadCommands(strings.NewReader("show "+word+"\nquit\n"), NewConfig())
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	assert.Equal(t, "show_"+word, cmds[0].Name)
	assert.Equal(t, "quit", cmds[1].Name)
	assert.Equal(t, 2, cmds[1].Line)
}

func TestReadCommandsLineEndings(t *testing.T) {
	for _, test := range []struct {
		Name  string
		Input string
	}{
		{"No trailing newline", "show version\nquit"},
		{"CRLF", "show version\r\nquit\r\n"},
		{"Trailing comment without newline", "show version\nquit\n# done"},
	} {
		t.Run(test.Name, func(t *testing.T) {
			cmds, err := ReadCommands(strings.NewReader(test.Input), NewConfig())
			require.NoError(t, err)
			require.Len(t, cmds, 2)
			assert.Equal(t, "show_version", cmds[0].Name)
			assert.Equal(t, "quit", cmds[1].Name)
			assert.Equal(t, 2, cmds[1].Line)
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestReadCommandsReadError(t *testing.T) {
	_, err := ReadCommands(failingReader{}, NewConfig())
	require.Error(t, err)
	assert.Equal(t, "can't read commands: disk on fire", err.Error())
}
