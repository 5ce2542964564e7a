package parser_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/rfparse/pkgs/dump"
	"github.com/aledsdavies/rfparse/pkgs/lexer"
	"github.com/aledsdavies/rfparse/pkgs/model"
	"github.com/aledsdavies/rfparse/pkgs/parser"
	"github.com/aledsdavies/rfparse/pkgs/visitor"
)

func tok(typ lexer.TokenType, value string, line, col int) lexer.Token {
	return lexer.Token{Type: typ, Value: value, Line: line, Col: col}
}

func stmt(kind string, tokens ...lexer.Token) *dump.Node {
	return &dump.Node{Kind: kind, Tokens: tokens}
}

func withErrors(n *dump.Node, errs ...string) *dump.Node {
	n.Errors = errs
	return n
}

func end(line, col int) *dump.Node {
	return stmt("End", tok(lexer.END, "END", line, col))
}

func call(keyword string, line, col int, args ...lexer.Token) *dump.Node {
	return stmt("KeywordCall", append([]lexer.Token{tok(lexer.KEYWORD, keyword, line, col)}, args...)...)
}

// removeNonData drops separators, comments and empty lines so that a full
// model can be compared with a data-only one.
func removeNonData(f *model.File) {
	visitor.NewTransformer().On(visitor.AnyStatement, func(_ *visitor.Transformer, n model.Node) model.Node {
		s := n.(model.Statement)
		data := s.DataTokens()
		if len(data) == 0 {
			return nil
		}
		s.SetTokens(data)
		return s
	}).Visit(f)
}

// getAndAssert parses data with and without data-only mode and compares the
// node at path, a list of body indices starting from the first section.
func getAndAssert(t *testing.T, data string, path []int, want *dump.Node) {
	t.Helper()
	for _, dataOnly := range []bool{true, false} {
		var opts []parser.ParserOpt
		if dataOnly {
			opts = append(opts, parser.WithDataOnly())
		}
		file, err := parser.GetModel(parser.FromString(strings.TrimSpace(data)), opts...)
		require.NoError(t, err)
		if !dataOnly {
			removeNonData(file)
		}
		require.NotEmpty(t, file.Sections)
		got := dump.FromModel(file.Sections[0])
		for _, i := range path {
			require.Greater(t, len(got.Body), i, "no body item %d in %s", i, got.Kind)
			got = got.Body[i]
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("model mismatch (data only: %v) (-want +got):\n%s", dataOnly, diff)
		}
	}
}

var inTest = []int{0, 0}

func TestForLoop(t *testing.T) {
	data := `
*** Test Cases ***
Example
    FOR    ${x}    IN    a    b    c
        Log    ${x}
    END
`
	want := &dump.Node{
		Kind: "For",
		Header: stmt("ForHeader",
			tok(lexer.FOR, "FOR", 3, 4),
			tok(lexer.VARIABLE, "${x}", 3, 11),
			tok(lexer.FOR_SEPARATOR, "IN", 3, 19),
			tok(lexer.ARGUMENT, "a", 3, 25),
			tok(lexer.ARGUMENT, "b", 3, 30),
			tok(lexer.ARGUMENT, "c", 3, 35),
		),
		Body: []*dump.Node{call("Log", 4, 8, tok(lexer.ARGUMENT, "${x}", 4, 15))},
		End:  end(5, 4),
	}
	getAndAssert(t, data, inTest, want)
}

func TestForLoopEnumerateWithStart(t *testing.T) {
	data := `
*** Test Cases ***
Example
    FOR    ${x}    IN ENUMERATE    @{stuff}    start=1
        Log    ${x}
    END
`
	want := &dump.Node{
		Kind: "For",
		Header: stmt("ForHeader",
			tok(lexer.FOR, "FOR", 3, 4),
			tok(lexer.VARIABLE, "${x}", 3, 11),
			tok(lexer.FOR_SEPARATOR, "IN ENUMERATE", 3, 19),
			tok(lexer.ARGUMENT, "@{stuff}", 3, 35),
			tok(lexer.OPTION, "start=1", 3, 47),
		),
		Body: []*dump.Node{call("Log", 4, 8, tok(lexer.ARGUMENT, "${x}", 4, 15))},
		End:  end(5, 4),
	}
	getAndAssert(t, data, inTest, want)
}

func TestNestedForLoops(t *testing.T) {
	data := `
*** Test Cases ***
Example
    FOR    ${x}    IN    1    start=has no special meaning here
        FOR    ${y}    IN RANGE    ${x}
            Log    ${y}
        END
    END
`
	want := &dump.Node{
		Kind: "For",
		Header: stmt("ForHeader",
			tok(lexer.FOR, "FOR", 3, 4),
			tok(lexer.VARIABLE, "${x}", 3, 11),
			tok(lexer.FOR_SEPARATOR, "IN", 3, 19),
			tok(lexer.ARGUMENT, "1", 3, 25),
			tok(lexer.ARGUMENT, "start=has no special meaning here", 3, 30),
		),
		Body: []*dump.Node{{
			Kind: "For",
			Header: stmt("ForHeader",
				tok(lexer.FOR, "FOR", 4, 8),
				tok(lexer.VARIABLE, "${y}", 4, 15),
				tok(lexer.FOR_SEPARATOR, "IN RANGE", 4, 23),
				tok(lexer.ARGUMENT, "${x}", 4, 35),
			),
			Body: []*dump.Node{call("Log", 5, 12, tok(lexer.ARGUMENT, "${y}", 5, 19))},
			End:  end(6, 8),
		}},
		End: end(7, 4),
	}
	getAndAssert(t, data, inTest, want)
}

func TestInvalidForLoops(t *testing.T) {
	t.Run("no variables or separator", func(t *testing.T) {
		data := `
*** Test Cases ***
Example
    FOR

    END    ooops
`
		want := withErrors(&dump.Node{
			Kind: "For",
			Header: withErrors(stmt("ForHeader", tok(lexer.FOR, "FOR", 3, 4)),
				"FOR loop has no variables.",
				"FOR loop has no 'IN' or other valid separator.",
			),
			End: withErrors(stmt("End", tok(lexer.END, "END", 5, 4), tok(lexer.ARGUMENT, "ooops", 5, 11)),
				"END does not accept arguments, got 'ooops'.",
			),
		}, "FOR loop cannot be empty.")
		getAndAssert(t, data, inTest, want)
	})

	t.Run("bad variables and no END", func(t *testing.T) {
		data := `
*** Test Cases ***
Example
    FOR    bad    @{bad}    ${x: bad}    IN
`
		want := withErrors(&dump.Node{
			Kind: "For",
			Header: withErrors(stmt("ForHeader",
				tok(lexer.FOR, "FOR", 3, 4),
				tok(lexer.VARIABLE, "bad", 3, 11),
				tok(lexer.VARIABLE, "@{bad}", 3, 18),
				tok(lexer.VARIABLE, "${x: bad}", 3, 28),
				tok(lexer.FOR_SEPARATOR, "IN", 3, 41),
			),
				"Invalid FOR loop variable 'bad'.",
				"Invalid FOR loop variable '@{bad}'.",
				"Invalid FOR loop variable '${x: bad}': Unrecognized type 'bad'.",
				"FOR loop has no values.",
			),
		}, "FOR loop cannot be empty.", "FOR loop must have closing END.")
		getAndAssert(t, data, inTest, want)
	})
}

func TestWhileLoop(t *testing.T) {
	data := `
*** Test Cases ***
Example
    WHILE    True    limit=10s    on_limit=pass    on_limit_message=Error message
        Log    ${x}
    END
`
	want := &dump.Node{
		Kind: "While",
		Header: stmt("WhileHeader",
			tok(lexer.WHILE, "WHILE", 3, 4),
			tok(lexer.ARGUMENT, "True", 3, 13),
			tok(lexer.OPTION, "limit=10s", 3, 21),
			tok(lexer.OPTION, "on_limit=pass", 3, 34),
			tok(lexer.OPTION, "on_limit_message=Error message", 3, 51),
		),
		Body: []*dump.Node{call("Log", 4, 8, tok(lexer.ARGUMENT, "${x}", 4, 15))},
		End:  end(5, 4),
	}
	getAndAssert(t, data, inTest, want)
}

func TestInvalidWhileLoop(t *testing.T) {
	data := `
*** Test Cases ***
Example
    WHILE    too    many    values    !    limit=1    on_limit=bad
        # Empty body
    END
`
	want := withErrors(&dump.Node{
		Kind: "While",
		Header: withErrors(stmt("WhileHeader",
			tok(lexer.WHILE, "WHILE", 3, 4),
			tok(lexer.ARGUMENT, "too", 3, 13),
			tok(lexer.ARGUMENT, "many", 3, 20),
			tok(lexer.ARGUMENT, "values", 3, 28),
			tok(lexer.ARGUMENT, "!", 3, 38),
			tok(lexer.OPTION, "limit=1", 3, 43),
			tok(lexer.OPTION, "on_limit=bad", 3, 54),
		),
			"WHILE accepts only one condition, got 4 conditions 'too', 'many', 'values' and '!'.",
			"WHILE option 'on_limit' does not accept value 'bad'. Valid values are 'PASS' and 'FAIL'.",
		),
		End: end(5, 4),
	}, "WHILE loop cannot be empty.")
	getAndAssert(t, data, inTest, want)
}

func TestWhileDoesNotSupportTemplates(t *testing.T) {
	data := `
*** Test Cases ***
Example
    [Template]    Log
    WHILE    True
        Hello, world!
    END
`
	want := withErrors(&dump.Node{
		Kind: "While",
		Header: stmt("WhileHeader",
			tok(lexer.WHILE, "WHILE", 4, 4),
			tok(lexer.ARGUMENT, "True", 4, 13),
		),
		Body: []*dump.Node{stmt("TemplateArguments", tok(lexer.ARGUMENT, "Hello, world!", 5, 8))},
		End:  end(6, 4),
	}, "WHILE does not support templates.")
	getAndAssert(t, data, []int{0, 1}, want)
}

func TestGroup(t *testing.T) {
	data := `
*** Test Cases ***
Example
    GROUP   one   two
        Log    ${x}
`
	want := withErrors(&dump.Node{
		Kind: "Group",
		Header: withErrors(stmt("GroupHeader",
			tok(lexer.GROUP, "GROUP", 3, 4),
			tok(lexer.ARGUMENT, "one", 3, 12),
			tok(lexer.ARGUMENT, "two", 3, 18),
		), "GROUP accepts only one argument as name, got 2 arguments 'one' and 'two'."),
		Body: []*dump.Node{call("Log", 4, 8, tok(lexer.ARGUMENT, "${x}", 4, 15))},
	}, "GROUP must have closing END.")
	getAndAssert(t, data, inTest, want)

	file, err := parser.GetModel(parser.FromString(strings.TrimSpace(data)))
	require.NoError(t, err)
	test := file.Sections[0].SectionBody()[0].(*model.TestCase)
	group := test.Body[0].(*model.Group)
	require.Equal(t, "one, two", group.Name())
}

func TestIfElseIfElse(t *testing.T) {
	data := `
*** Test Cases ***
Example
    IF    True
        K1
    ELSE IF    False
        K2
    ELSE
        K3
    END
`
	want := &dump.Node{
		Kind:   "If",
		Header: stmt("IfHeader", tok(lexer.IF, "IF", 3, 4), tok(lexer.ARGUMENT, "True", 3, 10)),
		Body:   []*dump.Node{call("K1", 4, 8)},
		Next: &dump.Node{
			Kind:   "If",
			Header: stmt("ElseIfHeader", tok(lexer.ELSE_IF, "ELSE IF", 5, 4), tok(lexer.ARGUMENT, "False", 5, 15)),
			Body:   []*dump.Node{call("K2", 6, 8)},
			Next: &dump.Node{
				Kind:   "If",
				Header: stmt("ElseHeader", tok(lexer.ELSE, "ELSE", 7, 4)),
				Body:   []*dump.Node{call("K3", 8, 8)},
			},
		},
		End: end(9, 4),
	}
	getAndAssert(t, data, inTest, want)
}

func TestInvalidIf(t *testing.T) {
	t.Run("misplaced branches", func(t *testing.T) {
		data := `
*** Test Cases ***
Example
    IF
    ELSE    ooops
        # Empty
    ELSE IF

    END    ooops
`
		want := withErrors(&dump.Node{
			Kind:   "If",
			Header: withErrors(stmt("IfHeader", tok(lexer.IF, "IF", 3, 4)), "IF must have a condition."),
			Next: withErrors(&dump.Node{
				Kind: "If",
				Header: withErrors(stmt("ElseHeader", tok(lexer.ELSE, "ELSE", 4, 4), tok(lexer.ARGUMENT, "ooops", 4, 12)),
					"ELSE does not accept arguments, got 'ooops'."),
				Next: withErrors(&dump.Node{
					Kind:   "If",
					Header: withErrors(stmt("ElseIfHeader", tok(lexer.ELSE_IF, "ELSE IF", 6, 4)), "ELSE IF must have a condition."),
				}, "ELSE IF branch cannot be empty."),
			}, "ELSE branch cannot be empty."),
			End: withErrors(stmt("End", tok(lexer.END, "END", 8, 4), tok(lexer.ARGUMENT, "ooops", 8, 11)),
				"END does not accept arguments, got 'ooops'."),
		}, "IF branch cannot be empty.", "ELSE IF not allowed after ELSE.")
		getAndAssert(t, data, inTest, want)
	})

	t.Run("only header", func(t *testing.T) {
		data := `
*** Test Cases ***
Example
    IF
`
		want := withErrors(&dump.Node{
			Kind:   "If",
			Header: withErrors(stmt("IfHeader", tok(lexer.IF, "IF", 3, 4)), "IF must have a condition."),
		}, "IF branch cannot be empty.", "IF must have closing END.")
		getAndAssert(t, data, inTest, want)
	})
}

func TestInlineIf(t *testing.T) {
	data := `
*** Test Cases ***
Example
    IF    True    K1    ELSE IF    False    K2    ELSE    K3
`
	want := &dump.Node{
		Kind:   "If",
		Header: stmt("InlineIfHeader", tok(lexer.INLINE_IF, "IF", 3, 4), tok(lexer.ARGUMENT, "True", 3, 10)),
		Body:   []*dump.Node{call("K1", 3, 18)},
		Next: &dump.Node{
			Kind:   "If",
			Header: stmt("ElseIfHeader", tok(lexer.ELSE_IF, "ELSE IF", 3, 24), tok(lexer.ARGUMENT, "False", 3, 35)),
			Body:   []*dump.Node{call("K2", 3, 44)},
			Next: &dump.Node{
				Kind:   "If",
				Header: stmt("ElseHeader", tok(lexer.ELSE, "ELSE", 3, 50)),
				Body:   []*dump.Node{call("K3", 3, 58)},
			},
		},
		End: stmt("End", tok(lexer.END, "", 3, 60)),
	}
	getAndAssert(t, data, inTest, want)
}

func TestInlineIfWithAssign(t *testing.T) {
	data := `
*** Test Cases ***
Example
    ${x} =    IF    True    K1    ELSE    K2
`
	want := &dump.Node{
		Kind: "If",
		Header: stmt("InlineIfHeader",
			tok(lexer.ASSIGN, "${x} =", 3, 4),
			tok(lexer.INLINE_IF, "IF", 3, 14),
			tok(lexer.ARGUMENT, "True", 3, 20),
		),
		Body: []*dump.Node{call("K1", 3, 28)},
		Next: &dump.Node{
			Kind:   "If",
			Header: stmt("ElseHeader", tok(lexer.ELSE, "ELSE", 3, 34)),
			Body:   []*dump.Node{call("K2", 3, 42)},
		},
		End: stmt("End", tok(lexer.END, "", 3, 44)),
	}
	getAndAssert(t, data, inTest, want)
}

func TestNestedInlineIf(t *testing.T) {
	data := `
*** Test Cases ***
Example
    IF    ${x}    IF    ${y}    K1    ELSE    IF    ${z}    K2
`
	want := withErrors(&dump.Node{
		Kind:   "If",
		Header: stmt("InlineIfHeader", tok(lexer.INLINE_IF, "IF", 3, 4), tok(lexer.ARGUMENT, "${x}", 3, 10)),
		Body: []*dump.Node{withErrors(&dump.Node{
			Kind:   "If",
			Header: stmt("InlineIfHeader", tok(lexer.INLINE_IF, "IF", 3, 18), tok(lexer.ARGUMENT, "${y}", 3, 24)),
			Body:   []*dump.Node{call("K1", 3, 32)},
			Next: &dump.Node{
				Kind:   "If",
				Header: stmt("ElseHeader", tok(lexer.ELSE, "ELSE", 3, 38)),
				Body: []*dump.Node{{
					Kind:   "If",
					Header: stmt("InlineIfHeader", tok(lexer.INLINE_IF, "IF", 3, 46), tok(lexer.ARGUMENT, "${z}", 3, 52)),
					Body:   []*dump.Node{call("K2", 3, 60)},
					End:    stmt("End", tok(lexer.END, "", 3, 62)),
				}},
			},
		}, "Inline IF cannot be nested.")},
	}, "Inline IF cannot be nested.")
	getAndAssert(t, data, inTest, want)
}

func TestTryExceptElseFinally(t *testing.T) {
	data := `
*** Test Cases ***
Example
    TRY
        Fail    Oh no!
    EXCEPT    does not match
        No operation
    EXCEPT    AS    ${exp}
        Log    Catch
    ELSE
        No operation
    FINALLY
        Log    finally here!
    END
`
	want := &dump.Node{
		Kind:   "Try",
		Header: stmt("TryHeader", tok(lexer.TRY, "TRY", 3, 4)),
		Body:   []*dump.Node{call("Fail", 4, 8, tok(lexer.ARGUMENT, "Oh no!", 4, 16))},
		Next: &dump.Node{
			Kind:   "Try",
			Header: stmt("ExceptHeader", tok(lexer.EXCEPT, "EXCEPT", 5, 4), tok(lexer.ARGUMENT, "does not match", 5, 14)),
			Body:   []*dump.Node{call("No operation", 6, 8)},
			Next: &dump.Node{
				Kind: "Try",
				Header: stmt("ExceptHeader",
					tok(lexer.EXCEPT, "EXCEPT", 7, 4),
					tok(lexer.AS, "AS", 7, 14),
					tok(lexer.VARIABLE, "${exp}", 7, 20),
				),
				Body: []*dump.Node{call("Log", 8, 8, tok(lexer.ARGUMENT, "Catch", 8, 15))},
				Next: &dump.Node{
					Kind:   "Try",
					Header: stmt("ElseHeader", tok(lexer.ELSE, "ELSE", 9, 4)),
					Body:   []*dump.Node{call("No operation", 10, 8)},
					Next: &dump.Node{
						Kind:   "Try",
						Header: stmt("FinallyHeader", tok(lexer.FINALLY, "FINALLY", 11, 4)),
						Body:   []*dump.Node{call("Log", 12, 8, tok(lexer.ARGUMENT, "finally here!", 12, 15))},
					},
				},
			},
		},
		End: end(13, 4),
	}
	getAndAssert(t, data, inTest, want)
}

func TestInvalidTry(t *testing.T) {
	data := `
*** Test Cases ***
Example
    TRY             invalid
    ELSE            invalid

    FINALLY         invalid
    #
    EXCEPT    AS    invalid
    EXCEPT    AS
    EXCEPT    AS    ${too}    ${many}    ${values}
    EXCEPT    xx    type=invalid
`
	except := func(line int, errs []string, tokens ...lexer.Token) *dump.Node {
		header := stmt("ExceptHeader", append([]lexer.Token{tok(lexer.EXCEPT, "EXCEPT", line, 4)}, tokens...)...)
		return withErrors(&dump.Node{Kind: "Try", Header: withErrors(header, errs...)}, "EXCEPT branch cannot be empty.")
	}
	excepts := []*dump.Node{
		except(8, []string{"EXCEPT AS variable 'invalid' is invalid."},
			tok(lexer.AS, "AS", 8, 14), tok(lexer.VARIABLE, "invalid", 8, 20)),
		except(9, []string{"EXCEPT AS requires a value."}, tok(lexer.AS, "AS", 9, 14)),
		except(10, []string{"EXCEPT AS accepts only one value."},
			tok(lexer.AS, "AS", 10, 14),
			tok(lexer.VARIABLE, "${too}", 10, 20),
			tok(lexer.VARIABLE, "${many}", 10, 30),
			tok(lexer.VARIABLE, "${values}", 10, 41)),
		except(11, []string{"EXCEPT option 'type' does not accept value 'invalid'. Valid values are 'GLOB', 'REGEXP', 'START' and 'LITERAL'."},
			tok(lexer.ARGUMENT, "xx", 11, 14), tok(lexer.OPTION, "type=invalid", 11, 20)),
	}
	for i := len(excepts) - 2; i >= 0; i-- {
		excepts[i].Next = excepts[i+1]
	}
	finally := withErrors(&dump.Node{
		Kind: "Try",
		Header: withErrors(stmt("FinallyHeader", tok(lexer.FINALLY, "FINALLY", 6, 4), tok(lexer.ARGUMENT, "invalid", 6, 20)),
			"FINALLY does not accept arguments, got 'invalid'."),
		Next: excepts[0],
	}, "FINALLY branch cannot be empty.")
	elseBranch := withErrors(&dump.Node{
		Kind: "Try",
		Header: withErrors(stmt("ElseHeader", tok(lexer.ELSE, "ELSE", 4, 4), tok(lexer.ARGUMENT, "invalid", 4, 20)),
			"ELSE does not accept arguments, got 'invalid'."),
		Next: finally,
	}, "ELSE branch cannot be empty.")
	want := withErrors(&dump.Node{
		Kind: "Try",
		Header: withErrors(stmt("TryHeader", tok(lexer.TRY, "TRY", 3, 4), tok(lexer.ARGUMENT, "invalid", 3, 20)),
			"TRY does not accept arguments, got 'invalid'."),
		Next: elseBranch,
	},
		"TRY branch cannot be empty.",
		"EXCEPT not allowed after ELSE.",
		"EXCEPT not allowed after FINALLY.",
		"EXCEPT not allowed after ELSE.",
		"EXCEPT not allowed after FINALLY.",
		"EXCEPT not allowed after ELSE.",
		"EXCEPT not allowed after FINALLY.",
		"EXCEPT not allowed after ELSE.",
		"EXCEPT not allowed after FINALLY.",
		"EXCEPT without patterns must be last.",
		"Only one EXCEPT without patterns allowed.",
		"TRY must have closing END.",
	)
	getAndAssert(t, data, inTest, want)
}

func TestInvalidVariables(t *testing.T) {
	data := `
*** Variables ***
Ooops     I did it again
${}       invalid
${x}==    invalid
${not     closed
&{dict}   invalid    ${invalid}
${x: bad}            1
${x: list[broken}    1    2
`
	variable := func(name string, line int, errs []string, args ...lexer.Token) *dump.Node {
		tokens := append([]lexer.Token{tok(lexer.VARIABLE, name, line, 0)}, args...)
		return withErrors(stmt("Variable", tokens...), errs...)
	}
	itemError := func(item string) string {
		return "Invalid dictionary variable item '" + item + "'. Items must use 'name=value' syntax or be dictionary variables themselves."
	}
	want := &dump.Node{
		Kind:   "VariableSection",
		Header: stmt("SectionHeader", tok(lexer.VARIABLE_HEADER, "*** Variables ***", 1, 0)),
		Body: []*dump.Node{
			variable("Ooops", 2, []string{"Invalid variable name 'Ooops'."}, tok(lexer.ARGUMENT, "I did it again", 2, 10)),
			variable("${}", 3, []string{"Invalid variable name '${}'."}, tok(lexer.ARGUMENT, "invalid", 3, 10)),
			variable("${x}==", 4, []string{"Invalid variable name '${x}=='."}, tok(lexer.ARGUMENT, "invalid", 4, 10)),
			variable("${not", 5, []string{"Invalid variable name '${not'."}, tok(lexer.ARGUMENT, "closed", 5, 10)),
			variable("&{dict}", 6, []string{itemError("invalid"), itemError("${invalid}")},
				tok(lexer.ARGUMENT, "invalid", 6, 10), tok(lexer.ARGUMENT, "${invalid}", 6, 21)),
			variable("${x: bad}", 7, []string{"Invalid variable '${x: bad}': Unrecognized type 'bad'."},
				tok(lexer.ARGUMENT, "1", 7, 21)),
			variable("${x: list[broken}", 8,
				[]string{"Invalid variable '${x: list[broken}': Parsing type 'list[broken' failed: Error at end: Closing ']' missing."},
				tok(lexer.ARGUMENT, "1", 8, 21), tok(lexer.ARGUMENT, "2", 8, 26)),
		},
	}
	getAndAssert(t, data, nil, want)
}

func TestInvalidVar(t *testing.T) {
	data := `
*** Keywords ***
Keyword
    VAR    bad      name
    VAR    ${x}==   only one = accepted
    VAR    &{d}     o=k    bad
    VAR    ${x}     ok     scope=bad
    VAR    ${a: bad}            1
`
	want := &dump.Node{
		Kind:   "Keyword",
		Header: stmt("KeywordName", tok(lexer.KEYWORD_NAME, "Keyword", 2, 0)),
		Body: []*dump.Node{
			withErrors(stmt("Var",
				tok(lexer.VAR, "VAR", 3, 4),
				tok(lexer.VARIABLE, "bad", 3, 11),
				tok(lexer.ARGUMENT, "name", 3, 20),
			), "Invalid variable name 'bad'."),
			withErrors(stmt("Var",
				tok(lexer.VAR, "VAR", 4, 4),
				tok(lexer.VARIABLE, "${x}==", 4, 11),
				tok(lexer.ARGUMENT, "only one = accepted", 4, 20),
			), "Invalid variable name '${x}=='."),
			withErrors(stmt("Var",
				tok(lexer.VAR, "VAR", 5, 4),
				tok(lexer.VARIABLE, "&{d}", 5, 11),
				tok(lexer.ARGUMENT, "o=k", 5, 20),
				tok(lexer.ARGUMENT, "bad", 5, 27),
			), "Invalid dictionary variable item 'bad'. Items must use 'name=value' syntax or be dictionary variables themselves."),
			withErrors(stmt("Var",
				tok(lexer.VAR, "VAR", 6, 4),
				tok(lexer.VARIABLE, "${x}", 6, 11),
				tok(lexer.ARGUMENT, "ok", 6, 20),
				tok(lexer.OPTION, "scope=bad", 6, 27),
			), "VAR option 'scope' does not accept value 'bad'. Valid values are 'LOCAL', 'TEST', 'TASK', 'SUITE', 'SUITES' and 'GLOBAL'."),
			withErrors(stmt("Var",
				tok(lexer.VAR, "VAR", 7, 4),
				tok(lexer.VARIABLE, "${a: bad}", 7, 11),
				tok(lexer.ARGUMENT, "1", 7, 32),
			), "Invalid variable '${a: bad}': Unrecognized type 'bad'."),
		},
	}
	getAndAssert(t, data, []int{0}, want)
}

func TestKeywordCallAssign(t *testing.T) {
	data := `
*** Test Cases ***
Test
    ${x} =    Keyword    with assign
    ${x}    @{y}=    Keyword
    ${x} =       ${y}           Marker in wrong place
    @{x}         @{y} =         Only one list allowed
    ${x}         &{y}           Dict works only alone
    ${x: int=float}             Valid only with dicts
`
	want := &dump.Node{
		Kind:   "TestCase",
		Header: stmt("TestCaseName", tok(lexer.TESTCASE_NAME, "Test", 2, 0)),
		Body: []*dump.Node{
			stmt("KeywordCall",
				tok(lexer.ASSIGN, "${x} =", 3, 4),
				tok(lexer.KEYWORD, "Keyword", 3, 14),
				tok(lexer.ARGUMENT, "with assign", 3, 25),
			),
			stmt("KeywordCall",
				tok(lexer.ASSIGN, "${x}", 4, 4),
				tok(lexer.ASSIGN, "@{y}=", 4, 12),
				tok(lexer.KEYWORD, "Keyword", 4, 21),
			),
			withErrors(stmt("KeywordCall",
				tok(lexer.ASSIGN, "${x} =", 5, 4),
				tok(lexer.ASSIGN, "${y}", 5, 17),
				tok(lexer.KEYWORD, "Marker in wrong place", 5, 32),
			), "Assign mark '=' can be used only with the last variable."),
			withErrors(stmt("KeywordCall",
				tok(lexer.ASSIGN, "@{x}", 6, 4),
				tok(lexer.ASSIGN, "@{y} =", 6, 17),
				tok(lexer.KEYWORD, "Only one list allowed", 6, 32),
			), "Assignment can contain only one list variable."),
			withErrors(stmt("KeywordCall",
				tok(lexer.ASSIGN, "${x}", 7, 4),
				tok(lexer.ASSIGN, "&{y}", 7, 17),
				tok(lexer.KEYWORD, "Dict works only alone", 7, 32),
			), "Dictionary variable cannot be assigned with other variables."),
			withErrors(stmt("KeywordCall",
				tok(lexer.ASSIGN, "${x: int=float}", 8, 4),
				tok(lexer.KEYWORD, "Valid only with dicts", 8, 32),
			), "Invalid variable '${x: int=float}': Unrecognized type 'int=float'."),
		},
	}
	getAndAssert(t, data, []int{0}, want)
}

func TestEmptyTestsAndTasks(t *testing.T) {
	t.Run("test without body", func(t *testing.T) {
		data := `
*** Test Cases ***
Empty
    [Documentation]    Settings aren't enough.
`
		want := withErrors(&dump.Node{
			Kind:   "TestCase",
			Header: stmt("TestCaseName", tok(lexer.TESTCASE_NAME, "Empty", 2, 0)),
			Body: []*dump.Node{stmt("Documentation",
				tok(lexer.DOCUMENTATION, "[Documentation]", 3, 4),
				tok(lexer.ARGUMENT, "Settings aren't enough.", 3, 23),
			)},
		}, "Test cannot be empty.")
		getAndAssert(t, data, []int{0}, want)
	})

	t.Run("test without name", func(t *testing.T) {
		data := `
*** Test Cases ***
    Keyword
`
		want := &dump.Node{
			Kind:   "TestCase",
			Header: withErrors(stmt("TestCaseName", tok(lexer.TESTCASE_NAME, "", 2, 0)), "Test name cannot be empty."),
			Body:   []*dump.Node{call("Keyword", 2, 4)},
		}
		getAndAssert(t, data, []int{0}, want)
	})

	t.Run("task without name or body", func(t *testing.T) {
		data := `
*** Tasks ***
    [Documentation]    Empty name and body.
`
		want := withErrors(&dump.Node{
			Kind:   "TestCase",
			Header: withErrors(stmt("TestCaseName", tok(lexer.TESTCASE_NAME, "", 2, 0)), "Task name cannot be empty."),
			Body: []*dump.Node{stmt("Documentation",
				tok(lexer.DOCUMENTATION, "[Documentation]", 2, 4),
				tok(lexer.ARGUMENT, "Empty name and body.", 2, 23),
			)},
		}, "Task cannot be empty.")
		getAndAssert(t, data, []int{0}, want)
	})
}

func TestInvalidArgumentSpec(t *testing.T) {
	data := `
*** Keywords ***
Invalid
    [Arguments]    ooops    ${optional}=default    ${required}
    ...    @{too}    @{}    @{many}    &{notlast}    ${x}
    Keyword
`
	want := &dump.Node{
		Kind:   "Keyword",
		Header: stmt("KeywordName", tok(lexer.KEYWORD_NAME, "Invalid", 2, 0)),
		Body: []*dump.Node{
			withErrors(stmt("Arguments",
				tok(lexer.ARGUMENTS, "[Arguments]", 3, 4),
				tok(lexer.ARGUMENT, "ooops", 3, 19),
				tok(lexer.ARGUMENT, "${optional}=default", 3, 28),
				tok(lexer.ARGUMENT, "${required}", 3, 51),
				tok(lexer.ARGUMENT, "@{too}", 4, 11),
				tok(lexer.ARGUMENT, "@{}", 4, 21),
				tok(lexer.ARGUMENT, "@{many}", 4, 28),
				tok(lexer.ARGUMENT, "&{notlast}", 4, 39),
				tok(lexer.ARGUMENT, "${x}", 4, 53),
			),
				"Invalid argument syntax 'ooops'.",
				"Non-default argument after default arguments.",
				"Cannot have multiple varargs.",
				"Cannot have multiple varargs.",
				"Only last argument can be kwargs.",
			),
			call("Keyword", 5, 4),
		},
	}
	getAndAssert(t, data, []int{0}, want)
}

func TestEmptyKeyword(t *testing.T) {
	data := `
*** Keywords ***
Empty
    [Arguments]    ${ok}
`
	want := withErrors(&dump.Node{
		Kind:   "Keyword",
		Header: stmt("KeywordName", tok(lexer.KEYWORD_NAME, "Empty", 2, 0)),
		Body: []*dump.Node{stmt("Arguments",
			tok(lexer.ARGUMENTS, "[Arguments]", 3, 4),
			tok(lexer.ARGUMENT, "${ok}", 3, 19),
		)},
	}, "User keyword cannot be empty.")
	getAndAssert(t, data, []int{0}, want)
}

func TestControlStatementsAreNotKeywords(t *testing.T) {
	t.Run("return", func(t *testing.T) {
		data := `
*** Keywords ***
Name
    Return    RETURN
    RETURN    RETURN
`
		want := &dump.Node{
			Kind:   "Keyword",
			Header: stmt("KeywordName", tok(lexer.KEYWORD_NAME, "Name", 2, 0)),
			Body: []*dump.Node{
				call("Return", 3, 4, tok(lexer.ARGUMENT, "RETURN", 3, 14)),
				stmt("ReturnStatement", tok(lexer.RETURN_STATEMENT, "RETURN", 4, 4), tok(lexer.ARGUMENT, "RETURN", 4, 14)),
			},
		}
		getAndAssert(t, data, []int{0}, want)
	})

	t.Run("break", func(t *testing.T) {
		data := `
*** Keywords ***
Name
    WHILE    True
        Break    BREAK
        BREAK
    END
`
		want := &dump.Node{
			Kind:   "While",
			Header: stmt("WhileHeader", tok(lexer.WHILE, "WHILE", 3, 4), tok(lexer.ARGUMENT, "True", 3, 13)),
			Body: []*dump.Node{
				call("Break", 4, 8, tok(lexer.ARGUMENT, "BREAK", 4, 17)),
				stmt("Break", tok(lexer.BREAK, "BREAK", 5, 8)),
			},
			End: end(6, 4),
		}
		getAndAssert(t, data, inTest, want)
	})

	t.Run("continue", func(t *testing.T) {
		data := `
*** Keywords ***
Name
    FOR    ${x}    IN    @{stuff}
        Continue    CONTINUE
        CONTINUE
    END
`
		want := &dump.Node{
			Kind: "For",
			Header: stmt("ForHeader",
				tok(lexer.FOR, "FOR", 3, 4),
				tok(lexer.VARIABLE, "${x}", 3, 11),
				tok(lexer.FOR_SEPARATOR, "IN", 3, 19),
				tok(lexer.ARGUMENT, "@{stuff}", 3, 25),
			),
			Body: []*dump.Node{
				call("Continue", 4, 8, tok(lexer.ARGUMENT, "CONTINUE", 4, 20)),
				stmt("Continue", tok(lexer.CONTINUE, "CONTINUE", 5, 8)),
			},
			End: end(6, 4),
		}
		getAndAssert(t, data, inTest, want)
	})
}
