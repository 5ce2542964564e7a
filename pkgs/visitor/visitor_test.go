package visitor_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/rfparse/pkgs/model"
	"github.com/aledsdavies/rfparse/pkgs/parser"
	"github.com/aledsdavies/rfparse/pkgs/visitor"
)

const data = `*** Settings ***
Test Tags    tag

*** Test Cases ***
Example
    Keyword    arg
    FOR    ${x}    IN    a
        Log    ${x}
    END

*** Keywords ***
Keyword
    [Arguments]    ${arg}
    [Return]    ${arg}
    RETURN    ${arg}
`

func parse(t *testing.T) *model.File {
	t.Helper()
	f, err := parser.GetModel(parser.FromString(data))
	require.NoError(t, err)
	return f
}

func TestVisitorDispatch(t *testing.T) {
	var calls, sections, blocks []string
	v := visitor.New().
		On("KeywordCall", func(_ *visitor.Visitor, n model.Node) {
			calls = append(calls, n.(*model.KeywordCall).Keyword())
		}).
		On(visitor.AnySection, func(v *visitor.Visitor, n model.Node) {
			sections = append(sections, n.Kind())
			v.GenericVisit(n)
		}).
		On(visitor.AnyBlock, func(v *visitor.Visitor, n model.Node) {
			blocks = append(blocks, n.Kind())
			v.GenericVisit(n)
		})
	v.Visit(parse(t))

	assert.Equal(t, []string{"Keyword", "Log"}, calls)
	assert.Equal(t, []string{"SettingSection", "TestCaseSection", "KeywordSection"}, sections)
	assert.Equal(t, []string{"File", "TestCase", "For", "Keyword"}, blocks)
}

func TestVisitorWithoutGenericVisitStopsDescending(t *testing.T) {
	var statements int
	visitor.New().
		On("TestCase", func(*visitor.Visitor, model.Node) {}).
		On(visitor.AnyStatement, func(*visitor.Visitor, model.Node) { statements++ }).
		Visit(parse(t))
	// Three headers, the setting, an empty line and the keyword statements.
	assert.Equal(t, 9, statements)
}

func TestVisitorAliases(t *testing.T) {
	var visited []string
	visitor.New().
		On("Return", func(_ *visitor.Visitor, n model.Node) { visited = append(visited, "Return:"+n.Kind()) }).
		On("ForceTags", func(_ *visitor.Visitor, n model.Node) { visited = append(visited, "ForceTags:"+n.Kind()) }).
		On("ReturnSetting", func(_ *visitor.Visitor, n model.Node) { visited = append(visited, "ReturnSetting") }).
		Visit(parse(t))
	assert.Equal(t, []string{"ForceTags:TestTags", "ReturnSetting", "Return:ReturnStatement"}, visited)
}

func TestVisitorPrefersExactKind(t *testing.T) {
	var visited []string
	visitor.New().
		On("ReturnStatement", func(*visitor.Visitor, model.Node) { visited = append(visited, "exact") }).
		On("Return", func(*visitor.Visitor, model.Node) { visited = append(visited, "alias") }).
		Visit(parse(t))
	assert.Equal(t, []string{"exact"}, visited)
}

func TestTransformer(t *testing.T) {
	f := parse(t)
	visitor.NewTransformer().
		On("EmptyLine", func(*visitor.Transformer, model.Node) model.Node { return nil }).
		On("KeywordCall", func(_ *visitor.Transformer, n model.Node) model.Node {
			call := n.(*model.KeywordCall)
			if call.Keyword() != "Keyword" {
				return n
			}
			return model.Nodes{
				model.NewKeywordCall("Set Up", nil, nil),
				n,
			}
		}).
		On("For", func(_ *visitor.Transformer, n model.Node) model.Node {
			return model.NewKeywordCall("Loop Was Here", nil, nil)
		}).
		Visit(f)

	test := f.Sections[1].SectionBody()[0].(*model.TestCase)
	var keywords []string
	for _, n := range test.Body {
		keywords = append(keywords, n.(*model.KeywordCall).Keyword())
	}
	assert.Equal(t, []string{"Set Up", "Keyword", "Loop Was Here"}, keywords)

	var out bytes.Buffer
	require.NoError(t, f.SaveTo(&out))
	want := "*** Settings ***\n" +
		"Test Tags    tag\n" +
		"*** Test Cases ***\n" +
		"Example\n" +
		"    Set Up\n" +
		"    Keyword    arg\n" +
		"    Loop Was Here\n" +
		"*** Keywords ***\n" +
		"Keyword\n" +
		"    [Arguments]    ${arg}\n" +
		"    [Return]    ${arg}\n" +
		"    RETURN    ${arg}\n"
	assert.Equal(t, want, out.String())
}

func TestTransformerReplacingSections(t *testing.T) {
	f := parse(t)
	visitor.NewTransformer().
		On("SettingSection", func(*visitor.Transformer, model.Node) model.Node { return nil }).
		Visit(f)
	require.Len(t, f.Sections, 2)
	assert.Equal(t, "TestCaseSection", f.Sections[0].Kind())
}
