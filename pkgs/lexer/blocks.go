package lexer

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/aledsdavies/rfparse/pkgs/languages"
)

type sectionKind int

const (
	implicitSection sectionKind = iota
	settingSection
	variableSection
	testCaseSection
	taskSection
	keywordSection
	commentSection
	invalidSection
)

var sectionKinds = map[string]sectionKind{
	languages.Settings:  settingSection,
	languages.Variables: variableSection,
	languages.TestCases: testCaseSection,
	languages.Tasks:     taskSection,
	languages.Keywords:  keywordSection,
	languages.Comments:  commentSection,
}

var headerTypes = map[sectionKind]TokenType{
	settingSection:  SETTING_HEADER,
	variableSection: VARIABLE_HEADER,
	testCaseSection: TESTCASE_HEADER,
	taskSection:     TASK_HEADER,
	keywordSection:  KEYWORD_HEADER,
	commentSection:  COMMENT_HEADER,
}

// section collects the data statements of one section until lexing.
type section struct {
	kind       sectionKind
	statements [][]*Token
	bodies     []*body
}

// body is a test, task or user keyword.
type body struct {
	name       *Token
	statements [][]*Token
}

func (l *Lexer) input(data []*Token) {
	if strings.HasPrefix(data[0].Value, "*") {
		l.sections = append(l.sections, l.startSection(data))
		return
	}
	if len(l.sections) == 0 {
		l.sections = append(l.sections, &section{kind: implicitSection})
	}
	current := l.sections[len(l.sections)-1]
	switch current.kind {
	case implicitSection:
		l.lexImplicitComment(data)
	case testCaseSection, taskSection, keywordSection:
		current.inputBody(l, data)
	default:
		current.statements = append(current.statements, data)
	}
}

func (l *Lexer) startSection(header []*Token) *section {
	name := strings.Trim(languages.NormalizeWhitespace(header[0].Value), "* ")
	canonical, ok := l.langs.Header(name)
	kind, known := sectionKinds[canonical]
	if !ok || !known || !l.allowsSection(kind) {
		header[0].Type = INVALID_HEADER
		header[0].Error = l.invalidSectionError(header[0].Value, name, canonical)
		for _, t := range header[1:] {
			t.Type = COMMENT
		}
		l.logger.Debug("invalid section", "line", header[0].Line, "header", header[0].Value)
		return &section{kind: invalidSection}
	}
	header[0].Type = headerTypes[kind]
	for _, t := range header[1:] {
		t.Type = NAME
	}
	l.logger.Debug("section", "line", header[0].Line, "type", header[0].Type)
	return &section{kind: kind}
}

func (l *Lexer) allowsSection(kind sectionKind) bool {
	if kind == testCaseSection || kind == taskSection {
		return l.config.kind == SuiteFile
	}
	return true
}

func (l *Lexer) invalidSectionError(header, name, canonical string) string {
	title := cases.Title(language.Und).String(name)
	isTests := canonical == languages.TestCases || canonical == languages.Tasks
	switch l.config.kind {
	case ResourceFile:
		if isTests {
			return fmt.Sprintf("Resource file with '%s' section is invalid.", title)
		}
		return fmt.Sprintf("Unrecognized section header '%s'. Valid sections: "+
			"'Settings', 'Variables', 'Keywords' and 'Comments'.", header)
	case InitFile:
		if isTests {
			return fmt.Sprintf("'%s' section is not allowed in suite initialization file.", title)
		}
		return fmt.Sprintf("Unrecognized section header '%s'. Valid sections: "+
			"'Settings', 'Variables', 'Keywords' and 'Comments'.", header)
	}
	return fmt.Sprintf("Unrecognized section header '%s'. Valid sections: "+
		"'Settings', 'Variables', 'Test Cases', 'Tasks', 'Keywords' and 'Comments'.", header)
}

// lexImplicitComment types data before the first section header. It runs at
// input time so that languages configured here apply to later headers.
func (l *Lexer) lexImplicitComment(data []*Token) {
	if !strings.HasPrefix(strings.ToLower(data[0].Value), "language:") {
		for _, t := range data {
			t.Type = COMMENT
		}
		return
	}
	values := make([]string, len(data))
	for i, t := range data {
		values[i] = t.Value
	}
	_, name, _ := strings.Cut(strings.Join(values, " "), ":")
	name = strings.TrimSpace(name)
	lang, err := l.langs.Add(name)
	if err != nil {
		for _, t := range data {
			t.SetError("Invalid language configuration: " + err.Error())
		}
		l.logger.Debug("invalid language", "line", data[0].Line, "language", name)
		return
	}
	for _, t := range data {
		t.Type = CONFIG
	}
	if !contains(l.configured, lang.Code) {
		l.configured = append(l.configured, lang.Code)
	}
}

func (s *section) inputBody(l *Lexer, data []*Token) {
	if data[0].Value != "" || len(s.bodies) == 0 {
		b := &body{name: data[0]}
		if len(data) > 1 {
			l.eosAfter[data[0]] = true
			b.statements = append(b.statements, data[1:])
		}
		s.bodies = append(s.bodies, b)
		return
	}
	for len(data) > 0 && data[0].Value == "" {
		data = data[1:]
	}
	if len(data) > 0 {
		current := s.bodies[len(s.bodies)-1]
		current.statements = append(current.statements, data)
	}
}

func (l *Lexer) lex() {
	for _, s := range l.sections {
		if s.kind == settingSection {
			for _, statement := range s.statements {
				l.fileSettings.lex(statement)
			}
		}
	}
	for _, s := range l.sections {
		switch s.kind {
		case variableSection:
			for _, statement := range s.statements {
				lexVariable(statement)
			}
		case commentSection, invalidSection:
			for _, statement := range s.statements {
				for _, t := range statement {
					t.Type = COMMENT
				}
			}
		case testCaseSection, taskSection:
			for _, b := range s.bodies {
				b.name.Type = TESTCASE_NAME
				l.lexBody(b, newSettings(testCaseSettings, l.langs))
			}
		case keywordSection:
			for _, b := range s.bodies {
				b.name.Type = KEYWORD_NAME
				l.lexBody(b, newSettings(keywordSettings, l.langs))
			}
		}
	}
}

type statementKind int

const (
	stmtKeywordCall statementKind = iota
	stmtSetting
	stmtFor
	stmtInlineIf
	stmtIf
	stmtElseIf
	stmtElse
	stmtTry
	stmtExcept
	stmtFinally
	stmtWhile
	stmtGroup
	stmtEnd
	stmtVar
	stmtReturn
	stmtContinue
	stmtBreak
	stmtSyntaxError
)

var syntaxErrorMarkers = set("ELSE", "ELSE IF", "EXCEPT", "FINALLY", "END")

// classify decides how a body statement is lexed given the innermost open
// block, and updates the stack of open blocks.
func classify(statement []*Token, stack *[]statementKind) statementKind {
	value := statement[0].Value
	top := statementKind(-1)
	if n := len(*stack); n > 0 {
		top = (*stack)[n-1]
	}
	push := func(kind statementKind) statementKind {
		*stack = append(*stack, kind)
		return kind
	}
	switch {
	case top == -1 && strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]"):
		return stmtSetting
	case value == "FOR":
		return push(stmtFor)
	case isInlineIf(statement):
		return stmtInlineIf
	case value == "IF":
		return push(stmtIf)
	case value == "TRY":
		return push(stmtTry)
	case value == "WHILE":
		return push(stmtWhile)
	case value == "GROUP":
		return push(stmtGroup)
	case value == "VAR":
		return stmtVar
	case value == "RETURN":
		return stmtReturn
	case value == "CONTINUE":
		return stmtContinue
	case value == "BREAK":
		return stmtBreak
	case top == stmtIf && languages.NormalizeWhitespace(value) == "ELSE IF":
		return stmtElseIf
	case (top == stmtIf || top == stmtTry) && value == "ELSE":
		return stmtElse
	case top == stmtTry && value == "EXCEPT":
		return stmtExcept
	case top == stmtTry && value == "FINALLY":
		return stmtFinally
	case top != -1 && value == "END":
		*stack = (*stack)[:len(*stack)-1]
		return stmtEnd
	case syntaxErrorMarkers[value]:
		return stmtSyntaxError
	}
	return stmtKeywordCall
}

// lexBody lexes settings first so that a [Template] anywhere in a test
// affects all of its keyword calls.
func (l *Lexer) lexBody(b *body, s *settings) {
	var stack []statementKind
	kinds := make([]statementKind, len(b.statements))
	for i, statement := range b.statements {
		kinds[i] = classify(statement, &stack)
	}
	for i, statement := range b.statements {
		if kinds[i] == stmtSetting {
			s.lex(statement)
		}
	}
	templateSet := s.spec == testCaseSettings && !s.disables("Template") &&
		(s.hasValue("Template") || l.fileSettings.hasValue("Test Template"))
	for i, statement := range b.statements {
		l.lexBodyStatement(statement, kinds[i], templateSet)
	}
	l.logger.Debug("body", "name", b.name.Value, "statements", len(b.statements), "template", templateSet)
}

func (l *Lexer) lexBodyStatement(statement []*Token, kind statementKind, templateSet bool) {
	switch kind {
	case stmtSetting:
	case stmtFor:
		lexFor(statement)
	case stmtInlineIf:
		l.lexInlineIf(statement, templateSet)
	case stmtIf:
		lexTypeAndArguments(statement, IF)
	case stmtElseIf:
		lexTypeAndArguments(statement, ELSE_IF)
	case stmtElse:
		lexTypeAndArguments(statement, ELSE)
	case stmtTry:
		lexTypeAndArguments(statement, TRY)
	case stmtExcept:
		lexExcept(statement)
	case stmtFinally:
		lexTypeAndArguments(statement, FINALLY)
	case stmtWhile:
		lexWhile(statement)
	case stmtGroup:
		lexTypeAndArguments(statement, GROUP)
	case stmtEnd:
		lexTypeAndArguments(statement, END)
	case stmtVar:
		lexVar(statement)
	case stmtReturn:
		lexTypeAndArguments(statement, RETURN_STATEMENT)
	case stmtContinue:
		lexTypeAndArguments(statement, CONTINUE)
	case stmtBreak:
		lexTypeAndArguments(statement, BREAK)
	case stmtSyntaxError:
		lexSyntaxError(statement)
	default:
		lexKeywordCall(statement, templateSet)
	}
}
