package model

import (
	"fmt"
	"strings"

	"github.com/aledsdavies/rfparse/pkgs/languages"
	"github.com/aledsdavies/rfparse/pkgs/lexer"
)

// Variable is one item in the variable section.
type Variable struct{ StatementBase }

func (*Variable) Kind() string { return "Variable" }

// Name is the variable without a possible trailing assignment mark.
func (s *Variable) Name() string {
	return stripAssignMark(s.GetValue(lexer.VARIABLE, ""))
}

func (s *Variable) Value() []string { return s.GetValues(lexer.ARGUMENT) }

func (s *Variable) Separator() string { return s.GetOption("separator", "") }

func (s *Variable) Validate(*ValidationContext) {
	validateVariable(&s.StatementBase)
}

// NewVariable creates a variable. A nil separator omits the option.
func NewVariable(name string, values []string, separator *string, opts ...FormatOpt) *Variable {
	b := newBuilder(opts).add(lexer.VARIABLE, name).cells(lexer.ARGUMENT, values...)
	if separator != nil {
		b.cells(lexer.OPTION, "separator="+*separator)
	}
	return build[Variable](b.eol())
}

// TestCaseName starts a test or a task.
type TestCaseName struct{ StatementBase }

func (*TestCaseName) Kind() string { return "TestCaseName" }

func (s *TestCaseName) Name() string { return s.GetValue(lexer.TESTCASE_NAME, "") }

func (s *TestCaseName) Validate(ctx *ValidationContext) {
	if strings.TrimSpace(s.Name()) == "" {
		s.AddError(ctx.testLabel() + " name cannot be empty.")
	}
}

func NewTestCaseName(name string, opts ...FormatOpt) *TestCaseName {
	return build[TestCaseName](newBuilder(opts).add(lexer.TESTCASE_NAME, name).eol())
}

// KeywordName starts a user keyword.
type KeywordName struct{ StatementBase }

func (*KeywordName) Kind() string { return "KeywordName" }

func (s *KeywordName) Name() string { return s.GetValue(lexer.KEYWORD_NAME, "") }

func (s *KeywordName) Validate(*ValidationContext) {
	if strings.TrimSpace(s.Name()) == "" {
		s.AddError("User keyword name cannot be empty.")
	}
}

func NewKeywordName(name string, opts ...FormatOpt) *KeywordName {
	return build[KeywordName](newBuilder(opts).add(lexer.KEYWORD_NAME, name).eol())
}

// KeywordCall runs a keyword, possibly assigning its return value.
type KeywordCall struct{ StatementBase }

func (*KeywordCall) Kind() string { return "KeywordCall" }

func (s *KeywordCall) Keyword() string  { return s.GetValue(lexer.KEYWORD, "") }
func (s *KeywordCall) Args() []string   { return s.GetValues(lexer.ARGUMENT) }
func (s *KeywordCall) Assign() []string { return s.GetValues(lexer.ASSIGN) }

func (s *KeywordCall) Validate(*ValidationContext) {
	for _, err := range validateAssignment(s.Assign()) {
		s.AddError(err)
	}
}

func NewKeywordCall(name string, assign, args []string, opts ...FormatOpt) *KeywordCall {
	b := newBuilder(opts).indent()
	for i, a := range assign {
		if i > 0 {
			b.sep()
		}
		b.add(lexer.ASSIGN, a)
	}
	if len(assign) > 0 {
		b.sep()
	}
	b.add(lexer.KEYWORD, name).cells(lexer.ARGUMENT, args...)
	return build[KeywordCall](b.eol())
}

// TemplateArguments are the arguments of a templated test row.
type TemplateArguments struct{ StatementBase }

func (*TemplateArguments) Kind() string { return "TemplateArguments" }

func (s *TemplateArguments) Args() []string { return s.GetValues(lexer.ARGUMENT) }

func NewTemplateArguments(args []string, opts ...FormatOpt) *TemplateArguments {
	b := newBuilder(opts).indent()
	for i, a := range args {
		if i > 0 {
			b.sep()
		}
		b.add(lexer.ARGUMENT, a)
	}
	return build[TemplateArguments](b.eol())
}

// ForHeader is the FOR line of a loop.
type ForHeader struct{ StatementBase }

func (*ForHeader) Kind() string { return "ForHeader" }

func (s *ForHeader) Assign() []string { return s.GetValues(lexer.VARIABLE) }
func (s *ForHeader) Values() []string { return s.GetValues(lexer.ARGUMENT) }

// Flavor is the normalized separator such as "IN RANGE", or "" if missing.
func (s *ForHeader) Flavor() string {
	if t := s.GetToken(lexer.FOR_SEPARATOR); t != nil {
		return languages.NormalizeWhitespace(t.Value)
	}
	return ""
}

func (s *ForHeader) Start() string {
	if s.Flavor() != "IN ENUMERATE" {
		return ""
	}
	return s.GetOption("start", "")
}

func (s *ForHeader) Mode() string {
	if s.Flavor() != "IN ZIP" {
		return ""
	}
	return s.GetOption("mode", "")
}

func (s *ForHeader) Fill() string {
	if s.Flavor() != "IN ZIP" {
		return ""
	}
	return s.GetOption("fill", "")
}

func (s *ForHeader) Validate(*ValidationContext) {
	assign := s.Assign()
	if len(assign) == 0 {
		s.AddError("FOR loop has no variables.")
	}
	if s.Flavor() == "" {
		s.AddError("FOR loop has no 'IN' or other valid separator.")
	} else {
		for _, v := range assign {
			if err := validateLoopVariable(v); err != "" {
				s.AddError(err)
			}
		}
		if len(s.Values()) == 0 {
			s.AddError("FOR loop has no values.")
		}
	}
	validateOptions(&s.StatementBase, "FOR", forOptions)
}

var forOptions = []option{
	{name: "start"},
	{name: "mode", values: []string{"STRICT", "SHORTEST", "LONGEST"}},
	{name: "fill"},
}

// NewForHeader creates a FOR line. An empty flavor means "IN".
func NewForHeader(assign []string, flavor string, values []string, opts ...FormatOpt) *ForHeader {
	if flavor == "" {
		flavor = "IN"
	}
	b := newBuilder(opts).indent().add(lexer.FOR, "FOR").cells(lexer.VARIABLE, assign...)
	b.cells(lexer.FOR_SEPARATOR, flavor).cells(lexer.ARGUMENT, values...)
	return build[ForHeader](b.eol())
}

// WhileHeader is the WHILE line of a loop.
type WhileHeader struct{ StatementBase }

func (*WhileHeader) Kind() string { return "WhileHeader" }

func (s *WhileHeader) Condition() string {
	return strings.Join(s.GetValues(lexer.ARGUMENT), ", ")
}

func (s *WhileHeader) Limit() string          { return s.GetOption("limit", "") }
func (s *WhileHeader) OnLimit() string        { return s.GetOption("on_limit", "") }
func (s *WhileHeader) OnLimitMessage() string { return s.GetOption("on_limit_message", "") }

func (s *WhileHeader) Validate(*ValidationContext) {
	conditions := s.GetValues(lexer.ARGUMENT)
	if len(conditions) == 0 && s.Limit() == "" {
		s.AddError("WHILE must have a condition.")
	}
	if len(conditions) > 1 {
		s.AddError(fmt.Sprintf("WHILE accepts only one condition, got %d conditions %s.", len(conditions), seq2str(conditions)))
	}
	options := s.Options()
	if _, ok := options["on_limit"]; ok {
		if _, ok := options["limit"]; !ok {
			s.AddError("WHILE option 'on_limit' cannot be used without 'limit'.")
		}
	}
	validateOptions(&s.StatementBase, "WHILE", whileOptions)
}

var whileOptions = []option{
	{name: "limit"},
	{name: "on_limit", values: []string{"PASS", "FAIL"}},
	{name: "on_limit_message"},
}

// WhileOptions are the optional settings of a WHILE loop. Empty fields are
// omitted.
type WhileOptions struct {
	Limit          string
	OnLimit        string
	OnLimitMessage string
}

func NewWhileHeader(condition string, options WhileOptions, opts ...FormatOpt) *WhileHeader {
	b := newBuilder(opts).indent().add(lexer.WHILE, "WHILE").cells(lexer.ARGUMENT, condition)
	for _, option := range [][2]string{
		{"limit", options.Limit},
		{"on_limit", options.OnLimit},
		{"on_limit_message", options.OnLimitMessage},
	} {
		if option[1] != "" {
			b.cells(lexer.OPTION, option[0]+"="+option[1])
		}
	}
	return build[WhileHeader](b.eol())
}

// conditionHeader is shared by IF and ELSE IF.
type conditionHeader struct{ StatementBase }

func (s *conditionHeader) Condition() string { return s.GetValue(lexer.ARGUMENT, "") }

func (s *conditionHeader) validateCondition(label string) {
	conditions := s.GetValues(lexer.ARGUMENT)
	if len(conditions) == 0 {
		s.AddError(label + " must have a condition.")
	}
	if len(conditions) > 1 {
		s.AddError(fmt.Sprintf("%s cannot have more than one condition, got %s.", label, seq2str(conditions)))
	}
}

// IfHeader starts an IF block.
type IfHeader struct{ conditionHeader }

func (*IfHeader) Kind() string { return "IfHeader" }

func (s *IfHeader) Validate(*ValidationContext) { s.validateCondition("IF") }

func NewIfHeader(condition string, opts ...FormatOpt) *IfHeader {
	return build[IfHeader](newBuilder(opts).indent().add(lexer.IF, "IF").cells(lexer.ARGUMENT, condition).eol())
}

// InlineIfHeader starts an IF written on one line.
type InlineIfHeader struct{ conditionHeader }

func (*InlineIfHeader) Kind() string { return "InlineIfHeader" }

func (s *InlineIfHeader) Assign() []string { return s.GetValues(lexer.ASSIGN) }

func (s *InlineIfHeader) Validate(*ValidationContext) {
	s.validateCondition("IF")
	for _, err := range validateAssignment(s.Assign()) {
		s.AddError(err)
	}
}

// NewInlineIfHeader creates the header part of a one-line IF. It has no EOL
// because the branches follow on the same line.
func NewInlineIfHeader(condition string, assign []string, opts ...FormatOpt) *InlineIfHeader {
	b := newBuilder(opts).indent()
	for _, a := range assign {
		b.add(lexer.ASSIGN, a).sep()
	}
	b.add(lexer.INLINE_IF, "IF").cells(lexer.ARGUMENT, condition)
	return build[InlineIfHeader](b.tokens)
}

// ElseIfHeader starts an ELSE IF branch.
type ElseIfHeader struct{ conditionHeader }

func (*ElseIfHeader) Kind() string { return "ElseIfHeader" }

func (s *ElseIfHeader) Validate(*ValidationContext) { s.validateCondition("ELSE IF") }

func NewElseIfHeader(condition string, opts ...FormatOpt) *ElseIfHeader {
	b := newBuilder(opts).indent().add(lexer.ELSE_IF, "ELSE IF").cells(lexer.ARGUMENT, condition)
	return build[ElseIfHeader](b.eol())
}

// noArgumentHeader is a marker line that takes no arguments.
type noArgumentHeader struct{ StatementBase }

func (s *noArgumentHeader) Values() []string { return s.GetValues(lexer.ARGUMENT) }

func (s *noArgumentHeader) validateNoArguments(label string) {
	if values := s.Values(); len(values) > 0 {
		s.AddError(fmt.Sprintf("%s does not accept arguments, got %s.", label, seq2str(values)))
	}
}

func noArgumentTokens(typ lexer.TokenType, value string, opts []FormatOpt) []*lexer.Token {
	return newBuilder(opts).indent().add(typ, value).eol()
}

type (
	// ElseHeader starts an ELSE branch of IF or TRY.
	ElseHeader struct{ noArgumentHeader }
	// TryHeader starts a TRY block.
	TryHeader struct{ noArgumentHeader }
	// FinallyHeader starts a FINALLY branch.
	FinallyHeader struct{ noArgumentHeader }
	// End closes a block. The implicit END of an inline IF has an empty value.
	End struct{ noArgumentHeader }
)

func (*ElseHeader) Kind() string    { return "ElseHeader" }
func (*TryHeader) Kind() string     { return "TryHeader" }
func (*FinallyHeader) Kind() string { return "FinallyHeader" }
func (*End) Kind() string           { return "End" }

func (s *ElseHeader) Validate(*ValidationContext)    { s.validateNoArguments("ELSE") }
func (s *TryHeader) Validate(*ValidationContext)     { s.validateNoArguments("TRY") }
func (s *FinallyHeader) Validate(*ValidationContext) { s.validateNoArguments("FINALLY") }
func (s *End) Validate(*ValidationContext)           { s.validateNoArguments("END") }

func NewElseHeader(opts ...FormatOpt) *ElseHeader {
	return build[ElseHeader](noArgumentTokens(lexer.ELSE, "ELSE", opts))
}

func NewTryHeader(opts ...FormatOpt) *TryHeader {
	return build[TryHeader](noArgumentTokens(lexer.TRY, "TRY", opts))
}

func NewFinallyHeader(opts ...FormatOpt) *FinallyHeader {
	return build[FinallyHeader](noArgumentTokens(lexer.FINALLY, "FINALLY", opts))
}

func NewEnd(opts ...FormatOpt) *End {
	return build[End](noArgumentTokens(lexer.END, "END", opts))
}

// ExceptHeader starts an EXCEPT branch.
type ExceptHeader struct{ StatementBase }

func (*ExceptHeader) Kind() string { return "ExceptHeader" }

func (s *ExceptHeader) Patterns() []string  { return s.GetValues(lexer.ARGUMENT) }
func (s *ExceptHeader) PatternType() string { return s.GetOption("type", "") }
func (s *ExceptHeader) Assign() string      { return s.GetValue(lexer.VARIABLE, "") }

func (s *ExceptHeader) Validate(*ValidationContext) {
	if s.GetToken(lexer.AS) != nil {
		assign := s.GetValues(lexer.VARIABLE)
		switch {
		case len(assign) == 0:
			s.AddError("EXCEPT AS requires a value.")
		case len(assign) > 1:
			s.AddError("EXCEPT AS accepts only one value.")
		case !isScalarAssign(assign[0]):
			s.AddError(fmt.Sprintf("EXCEPT AS variable '%s' is invalid.", assign[0]))
		}
	}
	validateOptions(&s.StatementBase, "EXCEPT", exceptOptions)
}

var exceptOptions = []option{
	{name: "type", values: []string{"GLOB", "REGEXP", "START", "LITERAL"}},
}

// NewExceptHeader creates an EXCEPT line. Empty patternType and assign are
// omitted.
func NewExceptHeader(patterns []string, patternType, assign string, opts ...FormatOpt) *ExceptHeader {
	b := newBuilder(opts).indent().add(lexer.EXCEPT, "EXCEPT").cells(lexer.ARGUMENT, patterns...)
	if patternType != "" {
		b.cells(lexer.OPTION, "type="+patternType)
	}
	if assign != "" {
		b.cells(lexer.AS, "AS").cells(lexer.VARIABLE, assign)
	}
	return build[ExceptHeader](b.eol())
}

// GroupHeader starts a GROUP block.
type GroupHeader struct{ StatementBase }

func (*GroupHeader) Kind() string { return "GroupHeader" }

func (s *GroupHeader) Name() string {
	return strings.Join(s.GetValues(lexer.ARGUMENT), ", ")
}

func (s *GroupHeader) Validate(*ValidationContext) {
	if names := s.GetValues(lexer.ARGUMENT); len(names) > 1 {
		s.AddError(fmt.Sprintf("GROUP accepts only one argument as name, got %d arguments %s.", len(names), seq2str(names)))
	}
}

func NewGroupHeader(name string, opts ...FormatOpt) *GroupHeader {
	b := newBuilder(opts).indent().add(lexer.GROUP, "GROUP")
	if name != "" {
		b.cells(lexer.ARGUMENT, name)
	}
	return build[GroupHeader](b.eol())
}

// Var creates a variable inside a test or keyword.
type Var struct{ StatementBase }

func (*Var) Kind() string { return "Var" }

func (s *Var) Name() string      { return stripAssignMark(s.GetValue(lexer.VARIABLE, "")) }
func (s *Var) Value() []string   { return s.GetValues(lexer.ARGUMENT) }
func (s *Var) Scope() string     { return s.GetOption("scope", "") }
func (s *Var) Separator() string { return s.GetOption("separator", "") }

func (s *Var) Validate(*ValidationContext) {
	validateVariable(&s.StatementBase)
	validateOptions(&s.StatementBase, "VAR", varOptions)
}

var varOptions = []option{
	{name: "scope", values: []string{"LOCAL", "TEST", "TASK", "SUITE", "SUITES", "GLOBAL"}},
	{name: "separator"},
}

// NewVar creates a VAR line. Empty scope and a nil separator are omitted.
func NewVar(name string, values []string, scope string, separator *string, opts ...FormatOpt) *Var {
	b := newBuilder(opts).indent().add(lexer.VAR, "VAR").cells(lexer.VARIABLE, name).cells(lexer.ARGUMENT, values...)
	if scope != "" {
		b.cells(lexer.OPTION, "scope="+scope)
	}
	if separator != nil {
		b.cells(lexer.OPTION, "separator="+*separator)
	}
	return build[Var](b.eol())
}

// ReturnStatement is RETURN inside a user keyword.
type ReturnStatement struct{ StatementBase }

func (*ReturnStatement) Kind() string { return "ReturnStatement" }

func (s *ReturnStatement) Values() []string { return s.GetValues(lexer.ARGUMENT) }

func NewReturnStatement(values []string, opts ...FormatOpt) *ReturnStatement {
	b := newBuilder(opts).indent().add(lexer.RETURN_STATEMENT, "RETURN").cells(lexer.ARGUMENT, values...)
	return build[ReturnStatement](b.eol())
}

// Placement of BREAK and CONTINUE is checked at execution time.
type (
	// Break ends the enclosing loop.
	Break struct{ noArgumentHeader }
	// Continue skips to the next loop iteration.
	Continue struct{ noArgumentHeader }
)

func (*Break) Kind() string    { return "Break" }
func (*Continue) Kind() string { return "Continue" }

func (s *Break) Validate(*ValidationContext)    { s.validateNoArguments("BREAK") }
func (s *Continue) Validate(*ValidationContext) { s.validateNoArguments("CONTINUE") }

func NewBreak(opts ...FormatOpt) *Break {
	return build[Break](noArgumentTokens(lexer.BREAK, "BREAK", opts))
}

func NewContinue(opts ...FormatOpt) *Continue {
	return build[Continue](noArgumentTokens(lexer.CONTINUE, "CONTINUE", opts))
}

// Comment is a line containing only a comment.
type Comment struct{ StatementBase }

func (*Comment) Kind() string { return "Comment" }

func NewComment(comment string, opts ...FormatOpt) *Comment {
	return build[Comment](newBuilder(opts).indent().add(lexer.COMMENT, comment).eol())
}

// Config is a "language: xx" line before the first section.
type Config struct{ StatementBase }

func (*Config) Kind() string { return "Config" }

// Language returns the configured language name, or "" if the line
// configures something else.
func (s *Config) Language() string {
	value := strings.Join(s.GetValues(lexer.CONFIG), " ")
	name, lang, ok := strings.Cut(value, ":")
	if !ok || strings.ToLower(strings.TrimSpace(name)) != "language" {
		return ""
	}
	return strings.TrimSpace(lang)
}

func NewConfig(config string, opts ...FormatOpt) *Config {
	return build[Config](newBuilder(opts).add(lexer.CONFIG, config).eol())
}

// Error is a statement the lexer could not make sense of.
type Error struct{ StatementBase }

func (*Error) Kind() string { return "Error" }

func NewError(value, message string, opts ...FormatOpt) *Error {
	b := newBuilder(opts).indent()
	b.tokens = append(b.tokens, lexer.NewError(value, -1, -1, message))
	return build[Error](b.eol())
}

// EmptyLine is a line without data or comments.
type EmptyLine struct{ StatementBase }

func (*EmptyLine) Kind() string { return "EmptyLine" }

func NewEmptyLine(opts ...FormatOpt) *EmptyLine {
	return build[EmptyLine](newBuilder(opts).eol())
}

func stripAssignMark(name string) string {
	if strings.HasSuffix(name, "=") {
		return strings.TrimRight(name[:len(name)-1], " ")
	}
	return name
}
