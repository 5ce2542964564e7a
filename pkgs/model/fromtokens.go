package model

import "github.com/aledsdavies/rfparse/pkgs/lexer"

type statementFactory func([]*lexer.Token) Statement

func factory[T any, PT interface {
	*T
	Statement
}]() statementFactory {
	return func(tokens []*lexer.Token) Statement { return build[T, PT](tokens) }
}

var statementFactories = map[lexer.TokenType]statementFactory{
	lexer.SETTING_HEADER:   factory[SectionHeader](),
	lexer.VARIABLE_HEADER:  factory[SectionHeader](),
	lexer.TESTCASE_HEADER:  factory[SectionHeader](),
	lexer.TASK_HEADER:      factory[SectionHeader](),
	lexer.KEYWORD_HEADER:   factory[SectionHeader](),
	lexer.COMMENT_HEADER:   factory[SectionHeader](),
	lexer.INVALID_HEADER:   factory[SectionHeader](),
	lexer.LIBRARY:          factory[LibraryImport](),
	lexer.RESOURCE:         factory[ResourceImport](),
	lexer.VARIABLES:        factory[VariablesImport](),
	lexer.DOCUMENTATION:    factory[Documentation](),
	lexer.METADATA:         factory[Metadata](),
	lexer.TEST_TAGS:        factory[TestTags](),
	lexer.DEFAULT_TAGS:     factory[DefaultTags](),
	lexer.KEYWORD_TAGS:     factory[KeywordTags](),
	lexer.SUITE_NAME:       factory[SuiteName](),
	lexer.SUITE_SETUP:      factory[SuiteSetup](),
	lexer.SUITE_TEARDOWN:   factory[SuiteTeardown](),
	lexer.TEST_SETUP:       factory[TestSetup](),
	lexer.TEST_TEARDOWN:    factory[TestTeardown](),
	lexer.TEST_TEMPLATE:    factory[TestTemplate](),
	lexer.TEST_TIMEOUT:     factory[TestTimeout](),
	lexer.VARIABLE:         factory[Variable](),
	lexer.TESTCASE_NAME:    factory[TestCaseName](),
	lexer.KEYWORD_NAME:     factory[KeywordName](),
	lexer.SETUP:            factory[Setup](),
	lexer.TEARDOWN:         factory[Teardown](),
	lexer.TAGS:             factory[Tags](),
	lexer.TEMPLATE:         factory[Template](),
	lexer.TIMEOUT:          factory[Timeout](),
	lexer.ARGUMENTS:        factory[Arguments](),
	lexer.RETURN:           factory[ReturnSetting](),
	lexer.KEYWORD:          factory[KeywordCall](),
	lexer.ARGUMENT:         factory[TemplateArguments](),
	lexer.FOR:              factory[ForHeader](),
	lexer.IF:               factory[IfHeader](),
	lexer.INLINE_IF:        factory[InlineIfHeader](),
	lexer.ELSE_IF:          factory[ElseIfHeader](),
	lexer.ELSE:             factory[ElseHeader](),
	lexer.TRY:              factory[TryHeader](),
	lexer.EXCEPT:           factory[ExceptHeader](),
	lexer.FINALLY:          factory[FinallyHeader](),
	lexer.END:              factory[End](),
	lexer.WHILE:            factory[WhileHeader](),
	lexer.GROUP:            factory[GroupHeader](),
	lexer.VAR:              factory[Var](),
	lexer.RETURN_STATEMENT: factory[ReturnStatement](),
	lexer.CONTINUE:         factory[Continue](),
	lexer.BREAK:            factory[Break](),
	lexer.COMMENT:          factory[Comment](),
	lexer.CONFIG:           factory[Config](),
	lexer.ERROR:            factory[Error](),
}

// FromTokens creates the statement matching the first token that identifies
// a statement type. A line with only assignments is a keyword call missing
// its keyword and anything else is an EmptyLine.
func FromTokens(tokens []*lexer.Token) Statement {
	for _, t := range tokens {
		if f, ok := statementFactories[t.Type]; ok {
			return f(tokens)
		}
	}
	for _, t := range tokens {
		if t.Type == lexer.ASSIGN {
			return build[KeywordCall](tokens)
		}
	}
	return build[EmptyLine](tokens)
}
