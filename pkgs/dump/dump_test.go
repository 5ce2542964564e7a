package dump_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aledsdavies/rfparse/pkgs/dump"
	"github.com/aledsdavies/rfparse/pkgs/lexer"
	"github.com/aledsdavies/rfparse/pkgs/model"
	"github.com/aledsdavies/rfparse/pkgs/parser"
)

const data = `*** Test Cases ***
Example
    IF    $x    Log    yes    ELSE    Fail
    TRY
        Keyword
    EXCEPT    AS    ${err}
        Log    ${err}
    END
`

func parse(t *testing.T) *model.File {
	t.Helper()
	f, err := parser.GetModel(parser.FromString(data), parser.WithDataOnly())
	require.NoError(t, err)
	return f
}

func TestFromModel(t *testing.T) {
	tree := dump.FromModel(parse(t))
	require.Equal(t, "File", tree.Kind)
	require.Len(t, tree.Body, 1)

	section := tree.Body[0]
	assert.Equal(t, "TestCaseSection", section.Kind)
	assert.Equal(t, "SectionHeader", section.Header.Kind)

	test := section.Body[0]
	assert.Equal(t, "TestCase", test.Kind)
	require.Len(t, test.Body, 2)

	inline := test.Body[0]
	assert.Equal(t, "If", inline.Kind)
	assert.Equal(t, "InlineIfHeader", inline.Header.Kind)
	assert.Equal(t, "ElseHeader", inline.Next.Header.Kind)
	assert.Equal(t, []lexer.Token{{Type: lexer.END, Value: "", Line: 3, Col: 42}}, inline.End.Tokens)

	try := test.Body[1]
	assert.Equal(t, "Try", try.Kind)
	assert.Equal(t, "ExceptHeader", try.Next.Header.Kind)
	assert.Nil(t, try.Next.End)
	assert.Equal(t, "End", try.End.Kind)
}

func TestFromModelErrors(t *testing.T) {
	f, err := parser.GetModel(parser.FromString("*** Test Cases ***\nT\n    FOR\n"), parser.WithDataOnly())
	require.NoError(t, err)
	loop := dump.FromModel(f).Body[0].Body[0].Body[0]
	assert.Equal(t, []string{"FOR loop cannot be empty.", "FOR loop must have closing END."}, loop.Errors)
	assert.Equal(t, []string{"FOR loop has no variables.", "FOR loop has no 'IN' or other valid separator."}, loop.Header.Errors)
	assert.Nil(t, dump.FromModel(nil))
}

func TestWrite(t *testing.T) {
	f := parse(t)
	want := dump.FromModel(f)

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, dump.Write(&buf, f, dump.YAML))
		assert.Contains(t, buf.String(), "kind: TestCaseSection")
		assert.Contains(t, buf.String(), "type: INLINE IF")
		var got dump.Node
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		if diff := cmp.Diff(want, &got); diff != "" {
			t.Errorf("yaml mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, dump.Write(&buf, f, dump.JSON))
		assert.Contains(t, buf.String(), `"type": "EXCEPT"`)
		var got dump.Node
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		if diff := cmp.Diff(want, &got); diff != "" {
			t.Errorf("json mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("cbor", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, dump.Write(&buf, f, dump.CBOR))
		var got dump.Node
		require.NoError(t, cbor.Unmarshal(buf.Bytes(), &got))
		if diff := cmp.Diff(want, &got); diff != "" {
			t.Errorf("cbor mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		err := dump.Write(&bytes.Buffer{}, f, dump.Format("xml"))
		assert.EqualError(t, err, `unknown dump format "xml"`)
	})
}
