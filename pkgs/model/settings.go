package model

import (
	"strings"

	"github.com/aledsdavies/rfparse/pkgs/languages"
	"github.com/aledsdavies/rfparse/pkgs/lexer"
)

// build creates a statement of type T owning tokens.
func build[T any, PT interface {
	*T
	Statement
}](tokens []*lexer.Token) PT {
	s := PT(new(T))
	s.SetTokens(tokens)
	return s
}

// SectionHeader starts a section, e.g. "*** Test Cases ***".
type SectionHeader struct{ StatementBase }

func (*SectionHeader) Kind() string { return "SectionHeader" }

// Name is the header without asterisks and with whitespace normalized.
func (s *SectionHeader) Name() string {
	for _, t := range s.tokens {
		if t.Type.IsHeader() {
			return strings.Trim(languages.NormalizeWhitespace(t.Value), "* ")
		}
	}
	return ""
}

var defaultHeaderNames = map[lexer.TokenType]string{
	lexer.SETTING_HEADER:  "Settings",
	lexer.VARIABLE_HEADER: "Variables",
	lexer.TESTCASE_HEADER: "Test Cases",
	lexer.TASK_HEADER:     "Tasks",
	lexer.KEYWORD_HEADER:  "Keywords",
	lexer.COMMENT_HEADER:  "Comments",
}

// NewSectionHeader creates a header of typ. An empty name uses the English
// default and a name without leading asterisks gets them added.
func NewSectionHeader(typ lexer.TokenType, name string, opts ...FormatOpt) *SectionHeader {
	if name == "" {
		name = defaultHeaderNames[typ]
	}
	if !strings.HasPrefix(name, "*") {
		name = "*** " + name + " ***"
	}
	return build[SectionHeader](newBuilder(opts).add(typ, name).eol())
}

// LibraryImport is the Library setting.
type LibraryImport struct{ StatementBase }

func (*LibraryImport) Kind() string { return "LibraryImport" }

func (s *LibraryImport) Name() string   { return s.GetValue(lexer.NAME, "") }
func (s *LibraryImport) Args() []string { return s.GetValues(lexer.ARGUMENT) }

// Alias is the name given after AS, or "" without one.
func (s *LibraryImport) Alias() string {
	if s.GetToken(lexer.AS) == nil {
		return ""
	}
	if names := s.GetTokens(lexer.NAME); len(names) > 1 {
		return names[1].Value
	}
	return ""
}

func NewLibraryImport(name string, args []string, alias string, opts ...FormatOpt) *LibraryImport {
	b := newBuilder(opts).add(lexer.LIBRARY, "Library").cells(lexer.NAME, name).cells(lexer.ARGUMENT, args...)
	if alias != "" {
		b.cells(lexer.AS, "AS").cells(lexer.NAME, alias)
	}
	return build[LibraryImport](b.eol())
}

// ResourceImport is the Resource setting.
type ResourceImport struct{ StatementBase }

func (*ResourceImport) Kind() string { return "ResourceImport" }

func (s *ResourceImport) Name() string { return s.GetValue(lexer.NAME, "") }

func NewResourceImport(name string, opts ...FormatOpt) *ResourceImport {
	return build[ResourceImport](newBuilder(opts).add(lexer.RESOURCE, "Resource").cells(lexer.NAME, name).eol())
}

// VariablesImport is the Variables setting.
type VariablesImport struct{ StatementBase }

func (*VariablesImport) Kind() string { return "VariablesImport" }

func (s *VariablesImport) Name() string   { return s.GetValue(lexer.NAME, "") }
func (s *VariablesImport) Args() []string { return s.GetValues(lexer.ARGUMENT) }

func NewVariablesImport(name string, args []string, opts ...FormatOpt) *VariablesImport {
	b := newBuilder(opts).add(lexer.VARIABLES, "Variables").cells(lexer.NAME, name).cells(lexer.ARGUMENT, args...)
	return build[VariablesImport](b.eol())
}

// Metadata is one Metadata setting.
type Metadata struct{ StatementBase }

func (*Metadata) Kind() string { return "Metadata" }

func (s *Metadata) Name() string { return s.GetValue(lexer.NAME, "") }

// Value joins the value cells like Documentation.Value does.
func (s *Metadata) Value() string {
	return cached(&s.StatementBase, "value", func() string {
		return joinDocumentation(s.GetTokens(lexer.ARGUMENT, lexer.EOL), s.GetToken(lexer.METADATA))
	})
}

func NewMetadata(name, value string, opts ...FormatOpt) *Metadata {
	b := newBuilder(opts).add(lexer.METADATA, "Metadata").cells(lexer.NAME, name)
	lines := splitLines(value)
	if len(lines) > 0 {
		b.cells(lexer.ARGUMENT, lines[0])
	}
	for _, line := range lines[1:] {
		b.eol()
		b.add(lexer.CONTINUATION, "...").cells(lexer.ARGUMENT, line)
	}
	return build[Metadata](b.eol())
}

// SuiteName is the Name setting.
type SuiteName struct{ singleValue }

func (*SuiteName) Kind() string { return "SuiteName" }

func NewSuiteName(value string, opts ...FormatOpt) *SuiteName {
	return build[SuiteName](newBuilder(opts).add(lexer.SUITE_NAME, "Name").cells(lexer.ARGUMENT, value).eol())
}

// fixture is a setup or teardown: a keyword name and its arguments.
type fixture struct{ StatementBase }

func (s *fixture) Name() string   { return s.GetValue(lexer.NAME, "") }
func (s *fixture) Args() []string { return s.GetValues(lexer.ARGUMENT) }

// multiValue is a setting taking any number of argument values.
type multiValue struct{ StatementBase }

func (s *multiValue) Values() []string { return s.GetValues(lexer.ARGUMENT) }

// singleValue is a setting taking one value where NONE means no value.
type singleValue struct{ StatementBase }

func (s *singleValue) Value() string {
	values := s.GetValues(lexer.NAME, lexer.ARGUMENT)
	if len(values) > 0 && strings.ToUpper(values[0]) != "NONE" {
		return values[0]
	}
	return ""
}

type (
	SuiteSetup    struct{ fixture }
	SuiteTeardown struct{ fixture }
	TestSetup     struct{ fixture }
	TestTeardown  struct{ fixture }
	Setup         struct{ fixture }
	Teardown      struct{ fixture }

	TestTemplate struct{ singleValue }
	TestTimeout  struct{ singleValue }
	Template     struct{ singleValue }
	Timeout      struct{ singleValue }

	TestTags      struct{ multiValue }
	DefaultTags   struct{ multiValue }
	KeywordTags   struct{ multiValue }
	Tags          struct{ multiValue }
	ReturnSetting struct{ multiValue }
)

func (*SuiteSetup) Kind() string    { return "SuiteSetup" }
func (*SuiteTeardown) Kind() string { return "SuiteTeardown" }
func (*TestSetup) Kind() string     { return "TestSetup" }
func (*TestTeardown) Kind() string  { return "TestTeardown" }
func (*Setup) Kind() string         { return "Setup" }
func (*Teardown) Kind() string      { return "Teardown" }
func (*TestTemplate) Kind() string  { return "TestTemplate" }
func (*TestTimeout) Kind() string   { return "TestTimeout" }
func (*Template) Kind() string      { return "Template" }
func (*Timeout) Kind() string       { return "Timeout" }
func (*TestTags) Kind() string      { return "TestTags" }
func (*DefaultTags) Kind() string   { return "DefaultTags" }
func (*KeywordTags) Kind() string   { return "KeywordTags" }
func (*Tags) Kind() string          { return "Tags" }
func (*ReturnSetting) Kind() string { return "ReturnSetting" }

func fixtureTokens(typ lexer.TokenType, setting string, bracketed bool, name string, args []string, opts []FormatOpt) []*lexer.Token {
	b := settingBuilder(typ, setting, bracketed, opts)
	return b.cells(lexer.NAME, name).cells(lexer.ARGUMENT, args...).eol()
}

func settingBuilder(typ lexer.TokenType, setting string, bracketed bool, opts []FormatOpt) *tokenBuilder {
	b := newBuilder(opts)
	if bracketed {
		return b.indent().add(typ, "["+setting+"]")
	}
	return b.add(typ, setting)
}

func NewSuiteSetup(name string, args []string, opts ...FormatOpt) *SuiteSetup {
	return build[SuiteSetup](fixtureTokens(lexer.SUITE_SETUP, "Suite Setup", false, name, args, opts))
}

func NewSuiteTeardown(name string, args []string, opts ...FormatOpt) *SuiteTeardown {
	return build[SuiteTeardown](fixtureTokens(lexer.SUITE_TEARDOWN, "Suite Teardown", false, name, args, opts))
}

func NewTestSetup(name string, args []string, opts ...FormatOpt) *TestSetup {
	return build[TestSetup](fixtureTokens(lexer.TEST_SETUP, "Test Setup", false, name, args, opts))
}

func NewTestTeardown(name string, args []string, opts ...FormatOpt) *TestTeardown {
	return build[TestTeardown](fixtureTokens(lexer.TEST_TEARDOWN, "Test Teardown", false, name, args, opts))
}

func NewSetup(name string, args []string, opts ...FormatOpt) *Setup {
	return build[Setup](fixtureTokens(lexer.SETUP, "Setup", true, name, args, opts))
}

func NewTeardown(name string, args []string, opts ...FormatOpt) *Teardown {
	return build[Teardown](fixtureTokens(lexer.TEARDOWN, "Teardown", true, name, args, opts))
}

func NewTestTemplate(value string, opts ...FormatOpt) *TestTemplate {
	return build[TestTemplate](settingBuilder(lexer.TEST_TEMPLATE, "Test Template", false, opts).cells(lexer.NAME, value).eol())
}

func NewTestTimeout(value string, opts ...FormatOpt) *TestTimeout {
	return build[TestTimeout](settingBuilder(lexer.TEST_TIMEOUT, "Test Timeout", false, opts).cells(lexer.ARGUMENT, value).eol())
}

func NewTemplate(value string, opts ...FormatOpt) *Template {
	return build[Template](settingBuilder(lexer.TEMPLATE, "Template", true, opts).cells(lexer.NAME, value).eol())
}

func NewTimeout(value string, opts ...FormatOpt) *Timeout {
	return build[Timeout](settingBuilder(lexer.TIMEOUT, "Timeout", true, opts).cells(lexer.ARGUMENT, value).eol())
}

func NewTestTags(values []string, opts ...FormatOpt) *TestTags {
	return build[TestTags](settingBuilder(lexer.TEST_TAGS, "Test Tags", false, opts).cells(lexer.ARGUMENT, values...).eol())
}

func NewDefaultTags(values []string, opts ...FormatOpt) *DefaultTags {
	return build[DefaultTags](settingBuilder(lexer.DEFAULT_TAGS, "Default Tags", false, opts).cells(lexer.ARGUMENT, values...).eol())
}

func NewKeywordTags(values []string, opts ...FormatOpt) *KeywordTags {
	return build[KeywordTags](settingBuilder(lexer.KEYWORD_TAGS, "Keyword Tags", false, opts).cells(lexer.ARGUMENT, values...).eol())
}

func NewTags(values []string, opts ...FormatOpt) *Tags {
	return build[Tags](settingBuilder(lexer.TAGS, "Tags", true, opts).cells(lexer.ARGUMENT, values...).eol())
}

func NewReturnSetting(values []string, opts ...FormatOpt) *ReturnSetting {
	return build[ReturnSetting](settingBuilder(lexer.RETURN, "Return", true, opts).cells(lexer.ARGUMENT, values...).eol())
}

// Arguments is the [Arguments] setting of a user keyword.
type Arguments struct{ multiValue }

func (*Arguments) Kind() string { return "Arguments" }

func (s *Arguments) Validate(*ValidationContext) {
	for _, err := range validateArgumentSpec(s.Values()) {
		s.AddError(err)
	}
}

func NewArguments(values []string, opts ...FormatOpt) *Arguments {
	return build[Arguments](settingBuilder(lexer.ARGUMENTS, "Arguments", true, opts).cells(lexer.ARGUMENT, values...).eol())
}
