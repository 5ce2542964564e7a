package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/aledsdavies/rfparse/pkgs/parser"
)

// CLIError represents a formatted CLI error with context
type CLIError struct {
	Type    string // "input", "check", "format", "language", "usage"
	Message string
	Details string // Additional context
	Hint    string // How to fix it
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Details != "" {
		b.WriteString("\n")
		b.WriteString(e.Details)
	}
	if e.Hint != "" {
		b.WriteString("\n")
		b.WriteString(e.Hint)
	}
	return b.String()
}

// FormatError formats an error for CLI output with colors
func FormatError(w io.Writer, err error, useColor bool) {
	if err == nil {
		return
	}
	red := newColor(useColor, color.FgRed, color.Bold)

	var cliErr *CLIError
	var dataErr *parser.DataError
	switch {
	case errors.As(err, &cliErr):
		formatCLIError(w, cliErr, useColor)
	case errors.As(err, &dataErr):
		_, _ = fmt.Fprintf(w, "%s%s\n", red.Sprint("Error: "), dataErr.Error())
	default:
		_, _ = fmt.Fprintf(w, "%s%s\n", red.Sprint("Error: "), err.Error())
	}
}

func formatCLIError(w io.Writer, err *CLIError, useColor bool) {
	red := newColor(useColor, color.FgRed, color.Bold)
	yellow := newColor(useColor, color.FgYellow)

	_, _ = fmt.Fprintf(w, "%s%s\n", red.Sprint("Error: "), err.Message)
	if err.Details != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", err.Details)
	}
	if err.Hint != "" {
		_, _ = fmt.Fprintf(w, "%s%s\n", yellow.Sprint("Hint: "), err.Hint)
	}
}

func inputError(path string, err error) *CLIError {
	return &CLIError{
		Type:    "input",
		Message: fmt.Sprintf("cannot read %s", path),
		Details: err.Error(),
	}
}
