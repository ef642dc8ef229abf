package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clarete/cmdlinegen"
	"github.com/clarete/cmdlinegen/ascii"
)

const headerSuffix = ".h"

type options struct {
	stubs       bool
	outputFile  string
	contextName string
	configPath  string
	dump        bool
	noColor     bool
	verbose     bool
}

// errUsage marks errors in how the command was invoked, they're
// reported before any input is read
var errUsage = errors.New("usage")

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "cmdlinegen [flags] <commands-file>",
		Short: "Generate DPDK cmdline boilerplate from a list of commands",
		Long: `cmdlinegen reads a list of commands, one per line, and writes a C header
with the result structs, token initializers and instances the DPDK
cmdline library needs, plus a context table listing all of them.

Each line is a sequence of shell words.  Plain words are literals, and
words of the form <TYPE>name are typed parameters, where TYPE is one of
STRING, UINT8..UINT64, INT8..INT64, IP, IPV4, IPV6 or a choice list
like (on,off).  Text after '#' becomes the help string.

Examples:
  cmdlinegen commands.list
  cmdlinegen -o commands.h commands.list
  cmdlinegen --stubs -o commands.h --context-name main_ctx commands.list`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return fmt.Errorf("%w: %s", errUsage, err)
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0])
		},
	}
	cmd.Flags().BoolVar(&opts.stubs, "stubs", false, "Produce C file with empty function stubs for each command")
	cmd.Flags().StringVarP(&opts.outputFile, "output-file", "o", "-", "Output header filename [default to stdout]")
	cmd.Flags().StringVar(&opts.contextName, "context-name", "", "Name given to the cmdline context variable in the output header [default=ctx]")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML or YAML file with generator settings")
	cmd.Flags().BoolVar(&opts.dump, "dump", false, "Print the interpreted commands instead of generating code")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Don't color the --dump output")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log every generated command")
	return cmd
}

func run(cmd *cobra.Command, opts *options, inputPath string) (err error) {
	if opts.stubs && !strings.HasSuffix(opts.outputFile, headerSuffix) {
		return fmt.Errorf("%w: -o/--output-file: specify an output filename ending with %s when creating stubs",
			errUsage, headerSuffix)
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg := cmdlinegen.NewConfig()
	if opts.configPath != "" {
		if err := cmdlinegen.LoadConfigFile(cfg, opts.configPath); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("context-name") {
		cfg.SetString("output.context_name", opts.contextName)
	}
	cfg.SetString("output.header_name", opts.outputFile)
	if opts.verbose {
		cfg.Print(cmd.ErrOrStderr())
	}

	input, err := openInput(cmd, inputPath)
	if err != nil {
		return err
	}
	defer input.Close()

	if opts.dump {
		cmds, err := cmdlinegen.ReadCommands(input, cfg)
		if err != nil {
			return fmt.Errorf("%s: %w", inputPath, err)
		}
		out := cmd.OutOrStdout()
		if opts.noColor {
			fmt.Fprint(out, cmdlinegen.FormatCommands(cmds))
		} else {
			fmt.Fprint(out, cmdlinegen.HighlightCommands(cmds, ascii.ThemeFor(out)))
		}
		return nil
	}

	header, err := createOutput(cmd, opts.outputFile)
	if err != nil {
		return err
	}
	defer closeOutput(header, "output file", &err)

	// stubs stays a nil interface unless requested
	var stubs io.Writer
	if opts.stubs {
		stubPath := strings.TrimSuffix(opts.outputFile, headerSuffix) + ".c"
		f, cerr := createStubs(stubPath)
		if cerr != nil {
			return fmt.Errorf("can't create stub file: %w", cerr)
		}
		defer closeOutput(f, "stub file", &err)
		stubs = f
		logger.Debug("writing stubs", "path", stubPath)
	}

	err = cmdlinegen.Generate(input, header, stubs, cfg, cmdlinegen.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}
	return nil
}

func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("can't open input file: %w", err)
	}
	return f, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func createOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{cmd.OutOrStdout()}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("can't create output file: %w", err)
	}
	return f, nil
}

func defaultCreateStubs(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// createStubs is replaced in tests
var createStubs = defaultCreateStubs

// closeOutput closes `c` and reports its failure through `err` unless
// an earlier error is already there.  Buffered writes may only fail
// when the file is closed.
func closeOutput(c io.Closer, what string, err *error) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("can't write %s: %w", what, cerr)
	}
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		theme := ascii.ThemeFor(os.Stderr)
		fmt.Fprintf(os.Stderr, "%s %s\n", theme.Error.Render("error:"), err)
		if errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "%s\n", theme.Muted.Render("Run 'cmdlinegen --help' for usage."))
			os.Exit(2)
		}
		os.Exit(1)
	}
}
