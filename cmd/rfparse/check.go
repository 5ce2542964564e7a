package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aledsdavies/rfparse/internal/ctxlog"
	"github.com/aledsdavies/rfparse/pkgs/lexer"
	"github.com/aledsdavies/rfparse/pkgs/parser"
)

func newCheckCmd(a *app) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "check PATH...",
		Short: "Report syntax errors in test data",
		Long: "Report syntax errors in test data files. Directories are searched for\n" +
			".robot and .resource files. Exits with status 1 when errors are found.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := a.collectFiles(args)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			result, err := a.check(ctx, cmd, files)
			if err != nil {
				return err
			}
			if !watch {
				return result.err()
			}
			return a.watch(ctx, cmd, files)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep running and re-check files when they change")
	return cmd
}

// checkResult counts the diagnostics of one check run.
type checkResult struct {
	files    int
	errors   int
	warnings int
}

func (r checkResult) err() error {
	if r.errors == 0 {
		return nil
	}
	return &CLIError{
		Type:    "check",
		Message: fmt.Sprintf("%s found in %s", plural(r.errors, "error"), plural(r.files, "file")),
	}
}

// check parses files and prints their errors. Resource files with invalid
// section headers are reported as a whole.
func (a *app) check(ctx context.Context, cmd *cobra.Command, files []string) (checkResult, error) {
	out := cmd.OutOrStdout()
	diag := &diagnostics{w: out, useColor: a.useColor}
	ctx = ctxlog.WithLogger(ctx, slog.New(diag))

	for _, path := range files {
		f, err := a.parse(cmd, path, a.cfg)
		if err != nil {
			return checkResult{}, err
		}
		reporter := &parser.ErrorReporter{
			Source:               path,
			RaiseOnInvalidHeader: a.cfg.FileKind(path) == lexer.ResourceFile,
		}
		if _, err := reporter.Report(ctx, f); err != nil {
			var dataErr *parser.DataError
			if !errors.As(err, &dataErr) {
				return checkResult{}, err
			}
			ctxlog.FromContext(ctx).Error(dataErr.Error())
		}
	}

	result := checkResult{files: len(files), errors: diag.errors, warnings: diag.warnings}
	if result.errors == 0 {
		green := newColor(a.useColor, color.FgGreen)
		summary := fmt.Sprintf("%s checked, no errors", plural(result.files, "file"))
		if result.warnings > 0 {
			summary += fmt.Sprintf(", %s", plural(result.warnings, "warning"))
		}
		_, _ = fmt.Fprintln(out, green.Sprint(summary))
	}
	return result, nil
}

func (a *app) watch(ctx context.Context, cmd *cobra.Command, files []string) error {
	seen := make(map[string]bool)
	var dirs []string
	for _, path := range files {
		dir := filepath.Dir(path)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	w, err := newFileWatcher(dirs, a.isDataFile)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for changes (Ctrl+C to stop)\n", plural(len(dirs), "directory"))
	return w.Run(ctx, func(path string) {
		result, err := a.check(ctx, cmd, []string{path})
		if err == nil {
			err = result.err()
		}
		if err != nil {
			FormatError(cmd.OutOrStdout(), err, a.useColor)
		}
	})
}

// diagnostics is a slog handler printing one line per error or warning.
type diagnostics struct {
	w        io.Writer
	useColor bool
	errors   int
	warnings int
}

func (d *diagnostics) Enabled(context.Context, slog.Level) bool { return true }

func (d *diagnostics) Handle(_ context.Context, r slog.Record) error {
	var label string
	switch {
	case r.Level >= slog.LevelError:
		d.errors++
		label = newColor(d.useColor, color.FgRed, color.Bold).Sprint("error")
	case r.Level >= slog.LevelWarn:
		d.warnings++
		label = newColor(d.useColor, color.FgYellow).Sprint("warning")
	default:
		return nil
	}
	_, err := fmt.Fprintf(d.w, "%s: %s\n", label, r.Message)
	return err
}

func (d *diagnostics) WithAttrs([]slog.Attr) slog.Handler { return d }

func (d *diagnostics) WithGroup(string) slog.Handler { return d }
