package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/rfparse/internal/ctxlog"
	"github.com/aledsdavies/rfparse/pkgs/config"
	"github.com/aledsdavies/rfparse/pkgs/lexer"
	"github.com/aledsdavies/rfparse/pkgs/model"
	"github.com/aledsdavies/rfparse/pkgs/parser"
)

// app holds the flags and state shared by all commands.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	languages  []string
	dataOnly   bool
	noColor    bool
	debug      bool

	cfg      *config.Config
	logger   *slog.Logger
	useColor bool
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "rfparse",
		Short:         "Parse, check and format Robot Framework test data",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to rfparse.yaml or rfparse.toml (default: discovered from the working directory)")
	flags.StringSliceVarP(&a.languages, "language", "l", nil, "Activate a language in addition to configured ones")
	flags.BoolVar(&a.dataOnly, "data-only", false, "Leave separators, comments and line ends out of the tree")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable colored output")
	flags.BoolVar(&a.debug, "debug", false, "Enable debug output")

	root.AddCommand(
		newTokensCmd(a),
		newCheckCmd(a),
		newFmtCmd(a),
		newDumpCmd(a),
		newFingerprintCmd(a),
		newLanguagesCmd(a),
	)
	return root
}

// setup loads the config and installs the logger on the command context.
func (a *app) setup(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if a.debug {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	ctx := ctxlog.WithLogger(cmd.Context(), a.logger)
	cmd.SetContext(ctx)

	var err error
	if a.configPath != "" {
		a.cfg, err = config.Load(ctx, a.configPath)
	} else {
		a.cfg, err = config.Discover(ctx, ".")
	}
	if err != nil {
		return &CLIError{
			Type:    "config",
			Message: "invalid configuration",
			Details: err.Error(),
			Hint:    "Fix the config file or pass another one with --config",
		}
	}
	a.cfg.Languages = append(a.cfg.Languages, a.languages...)
	if a.dataOnly {
		a.cfg.DataOnly = true
	}
	a.useColor = !a.noColor && a.cfg.UseColor(isTerminal(a.stdout))
	return nil
}

func (a *app) parserOpts() []parser.ParserOpt {
	if a.debug {
		return []parser.ParserOpt{parser.WithLogger(a.logger)}
	}
	return nil
}

// parse reads path, or stdin when path is "-", into a model.
func (a *app) parse(cmd *cobra.Command, path string, cfg *config.Config) (*model.File, error) {
	if path == "-" {
		opts := append(cfg.ParserOpts(), a.parserOpts()...)
		return parser.GetModel(parser.FromReader(cmd.InOrStdin()), opts...)
	}
	f, err := cfg.GetModel(path, a.parserOpts()...)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, inputError(path, err)
		}
		return nil, &CLIError{Type: "language", Message: err.Error(), Hint: languageHint(err)}
	}
	return f, nil
}

// readInput returns the content of path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", inputError(path, err)
	}
	return string(data), nil
}

// collectFiles expands directories into the test data files below them.
func (a *app) collectFiles(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, inputError(p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if a.isDataFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, inputError(p, err)
		}
	}
	if len(files) == 0 {
		return nil, &CLIError{
			Type:    "input",
			Message: "no test data files found",
			Hint:    "Pass .robot or .resource files, or directories containing them",
		}
	}
	return files, nil
}

func (a *app) isDataFile(path string) bool {
	switch filepath.Ext(path) {
	case ".robot", ".resource":
		return true
	}
	return a.cfg.FileKind(path) == lexer.ResourceFile
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
