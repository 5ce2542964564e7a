package lexer

import (
	"strings"

	"github.com/aledsdavies/rfparse/pkgs/languages"
	"github.com/aledsdavies/rfparse/pkgs/variables"
)

// assignOpts is what counts as an assignment before a keyword or inline IF.
var assignOpts = variables.AssignOpts{AllowAssignMark: true, AllowNested: true, AllowItems: true}

var forSeparators = set("IN", "IN RANGE", "IN ENUMERATE", "IN ZIP")

// lexOptions marks trailing name=value cells as OPTION tokens. It walks
// backwards from end and stops at the first cell that is not an unseen
// option of the given names. Cells before start are never options.
func lexOptions(statement []*Token, start, end int, names ...string) {
	seen := make(map[string]bool)
	for i := end - 1; i >= start; i-- {
		name, _, ok := strings.Cut(statement[i].Value, "=")
		if !ok || seen[name] || !contains(names, name) {
			return
		}
		statement[i].Type = OPTION
		seen[name] = true
	}
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// lexTypeAndArguments gives the first token typ and the rest ARGUMENT.
func lexTypeAndArguments(statement []*Token, typ TokenType) {
	statement[0].Type = typ
	lexArguments(statement[1:])
}

func lexVariable(statement []*Token) {
	lexTypeAndArguments(statement, VARIABLE)
	if strings.HasPrefix(statement[0].Value, "$") {
		lexOptions(statement, 1, len(statement), "separator")
	}
}

func lexFor(statement []*Token) {
	statement[0].Type = FOR
	separator := ""
	for _, t := range statement[1:] {
		switch {
		case separator != "":
			t.Type = ARGUMENT
		case forSeparators[languages.NormalizeWhitespace(t.Value)]:
			t.Type = FOR_SEPARATOR
			separator = languages.NormalizeWhitespace(t.Value)
		default:
			t.Type = VARIABLE
		}
	}
	switch separator {
	case "IN ENUMERATE":
		lexOptions(statement, 1, len(statement), "start")
	case "IN ZIP":
		lexOptions(statement, 1, len(statement), "mode", "fill")
	}
}

func lexWhile(statement []*Token) {
	lexTypeAndArguments(statement, WHILE)
	lexOptions(statement, 1, len(statement), "limit", "on_limit", "on_limit_message")
}

func lexExcept(statement []*Token) {
	statement[0].Type = EXCEPT
	asIndex := len(statement)
	for i, t := range statement[1:] {
		switch {
		case t.Value == "AS" && asIndex == len(statement):
			t.Type = AS
			asIndex = i + 1
		case asIndex < len(statement):
			t.Type = VARIABLE
		default:
			t.Type = ARGUMENT
		}
	}
	lexOptions(statement, 1, asIndex, "type")
}

func lexVar(statement []*Token) {
	statement[0].Type = VAR
	if len(statement) == 1 {
		return
	}
	name := statement[1]
	name.Type = VARIABLE
	lexArguments(statement[2:])
	if strings.HasPrefix(name.Value, "$") {
		lexOptions(statement, 2, len(statement), "scope", "separator")
	} else {
		lexOptions(statement, 2, len(statement), "scope")
	}
}

func lexSyntaxError(statement []*Token) {
	first := statement[0]
	first.SetError(first.Value + " is not allowed in this context.")
	lexArguments(statement[1:])
}

func lexKeywordCall(statement []*Token, templateSet bool) {
	if templateSet {
		lexArguments(statement)
		return
	}
	keywordSeen := false
	for _, t := range statement {
		switch {
		case keywordSeen:
			t.Type = ARGUMENT
		case variables.IsAssign(t.Value, assignOpts):
			t.Type = ASSIGN
		default:
			t.Type = KEYWORD
			keywordSeen = true
		}
	}
}

func isInlineIf(statement []*Token) bool {
	if len(statement) <= 2 {
		return false
	}
	for _, t := range statement {
		if t.Value == "IF" {
			return true
		}
		if !variables.IsAssign(t.Value, assignOpts) {
			return false
		}
	}
	return false
}

func lexInlineIfHeader(statement []*Token) {
	ifSeen := false
	for _, t := range statement {
		switch {
		case ifSeen:
			t.Type = ARGUMENT
		case t.Value == "IF":
			t.Type = INLINE_IF
			ifSeen = true
		default:
			t.Type = ASSIGN
		}
	}
}

// splitInlineIf splits a one-line IF into header, body and branch parts and
// records where statements must end.
func (l *Lexer) splitInlineIf(statement []*Token) [][]*Token {
	var parts [][]*Token
	var current []*Token
	last := statement[len(statement)-1]
	expectCondition := false
	for _, t := range statement {
		switch {
		case expectCondition:
			if t != last {
				l.eosAfter[t] = true
			}
			parts = append(parts, append(current, t))
			current = nil
			expectCondition = false
		case t.Value == "IF":
			current = append(current, t)
			expectCondition = true
		case languages.NormalizeWhitespace(t.Value) == "ELSE IF":
			l.eosBefore[t] = true
			parts = append(parts, current)
			current = []*Token{t}
			expectCondition = true
		case t.Value == "ELSE":
			l.eosBefore[t] = true
			if t != last {
				l.eosAfter[t] = true
			}
			parts = append(parts, current, []*Token{t})
			current = nil
		default:
			current = append(current, t)
		}
	}
	return append(parts, current)
}

func (l *Lexer) lexInlineIf(statement []*Token, templateSet bool) {
	for _, part := range l.splitInlineIf(statement) {
		if len(part) == 0 {
			continue
		}
		switch first := part[0].Value; {
		case isInlineIfPart(part):
			lexInlineIfHeader(part)
		case languages.NormalizeWhitespace(first) == "ELSE IF":
			lexTypeAndArguments(part, ELSE_IF)
		case first == "ELSE":
			lexTypeAndArguments(part, ELSE)
		case first == "RETURN":
			lexTypeAndArguments(part, RETURN_STATEMENT)
		case first == "CONTINUE":
			lexTypeAndArguments(part, CONTINUE)
		case first == "BREAK":
			lexTypeAndArguments(part, BREAK)
		default:
			lexKeywordCall(part, templateSet)
		}
	}
}

func isInlineIfPart(part []*Token) bool {
	for _, t := range part {
		if t.Value == "IF" {
			return true
		}
		if !variables.IsAssign(t.Value, assignOpts) {
			return false
		}
	}
	return false
}
