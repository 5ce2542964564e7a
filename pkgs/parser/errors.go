package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/aledsdavies/rfparse/internal/ctxlog"
	"github.com/aledsdavies/rfparse/pkgs/lexer"
	"github.com/aledsdavies/rfparse/pkgs/model"
	"github.com/aledsdavies/rfparse/pkgs/visitor"
)

// DataError is an error in parsed data that makes the whole file unusable.
type DataError struct {
	Source  string
	Line    int
	Message string
}

func (e *DataError) Error() string {
	return formatError(e.Source, e.Line, e.Message)
}

func formatError(source string, line int, message string) string {
	return fmt.Sprintf("Error in file '%s' on line %d: %s", source, line, message)
}

// ErrorReporter logs the errors of a model. Invalid section headers are
// logged as errors, other header problems as warnings.
type ErrorReporter struct {
	Source string
	// RaiseOnInvalidHeader makes Report return a DataError for the first
	// invalid section header instead of logging it. Resource files use it.
	RaiseOnInvalidHeader bool
}

// Report logs errors of n and everything below it with the logger from
// ctx. It returns the number of messages reported.
func (r *ErrorReporter) Report(ctx context.Context, n model.Node) (int, error) {
	logger := ctxlog.FromContext(ctx)
	var count int
	var raised error
	report := func(line int, message string, warn bool) {
		count++
		msg := formatError(r.Source, line, message)
		if warn {
			logger.Warn(msg)
		} else {
			logger.Error(msg)
		}
	}

	v := visitor.New()
	v.On("SectionHeader", func(_ *visitor.Visitor, n model.Node) {
		header := n.(*model.SectionHeader)
		for _, t := range header.Tokens() {
			if !t.Type.IsHeader() || t.Error == "" {
				continue
			}
			if t.Type != lexer.INVALID_HEADER {
				report(t.Line, t.Error, true)
				continue
			}
			if r.RaiseOnInvalidHeader && raised == nil {
				count++
				raised = &DataError{Source: r.Source, Line: t.Line, Message: t.Error}
				continue
			}
			report(t.Line, t.Error, false)
		}
		for _, err := range header.Errors() {
			report(header.Span().Line, err, false)
		}
	})
	v.On("Error", func(_ *visitor.Visitor, n model.Node) {
		var tokenErrors int
		for _, t := range n.(*model.Error).GetTokens(lexer.ERROR) {
			if t.Error != "" {
				tokenErrors++
				report(t.Line, t.Error, false)
			}
		}
		// Errors lists token errors first, then the ones set on the statement.
		for _, err := range n.Errors()[tokenErrors:] {
			report(n.Span().Line, err, false)
		}
	})
	v.On(visitor.AnyStatement, func(_ *visitor.Visitor, n model.Node) {
		for _, err := range n.Errors() {
			report(n.Span().Line, err, false)
		}
	})
	v.On(visitor.AnyBlock, func(v *visitor.Visitor, n model.Node) {
		if errs := n.Errors(); len(errs) > 0 {
			report(n.Span().Line, joinErrors(errs), false)
		}
		v.GenericVisit(n)
	})
	v.Visit(n)
	return count, raised
}

// joinErrors formats several errors of one node as a single message.
func joinErrors(errs []string) string {
	if len(errs) == 1 {
		return errs[0]
	}
	return strings.Join(append([]string{"Multiple errors:"}, errs...), "\n- ")
}
