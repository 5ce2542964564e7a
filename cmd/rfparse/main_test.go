package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/rfparse/pkgs/dump"
)

type cliResult struct {
	code   int
	stdout string
	stderr string
}

// runCLI runs the command line in a fresh temporary working directory
// populated with files.
func runCLI(t *testing.T, files map[string]string, stdin string, args ...string) cliResult {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

const validSuite = "*** Test Cases ***\nExample\n    Log    Hello\n"

func TestTokens(t *testing.T) {
	res := runCLI(t, map[string]string{"suite.robot": validSuite}, "", "tokens", "suite.robot")
	require.Equal(t, 0, res.code, res.stderr)
	for _, want := range []string{"LINE", "TYPE", "TESTCASE HEADER", "TESTCASE NAME", "KEYWORD", `"Log"`, "ARGUMENT", `"Hello"`, "SEPARATOR", "EOL"} {
		assert.Contains(t, res.stdout, want)
	}

	t.Run("data only", func(t *testing.T) {
		res := runCLI(t, map[string]string{"suite.robot": validSuite}, "", "tokens", "--data-only", "suite.robot")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "KEYWORD")
		assert.NotContains(t, res.stdout, "SEPARATOR")
		assert.NotContains(t, res.stdout, "EOL")
	})

	t.Run("stdin", func(t *testing.T) {
		res := runCLI(t, nil, "*** Keywords ***\nK\n    RETURN    ${x}\n", "tokens", "--tokenize-variables", "-")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "KEYWORD NAME")
		assert.Contains(t, res.stdout, "RETURN STATEMENT")
	})

	t.Run("missing file", func(t *testing.T) {
		res := runCLI(t, nil, "", "tokens", "missing.robot")
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "Error: cannot read missing.robot")
	})
}

func TestCheckReportsErrors(t *testing.T) {
	res := runCLI(t, map[string]string{"bad.robot": "*** Test Cases ***\nT\n    FOR\n"}, "", "check", "bad.robot")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stdout, "error: Error in file 'bad.robot' on line 3: FOR loop has no variables.\n")
	assert.Contains(t, res.stdout, "error: Error in file 'bad.robot' on line 3: FOR loop has no 'IN' or other valid separator.\n")
	assert.Contains(t, res.stdout, "Multiple errors:")
	assert.Equal(t, "Error: 3 errors found in 1 file\n", res.stderr)
}

func TestCheckDirectory(t *testing.T) {
	files := map[string]string{
		"suite.robot":             validSuite,
		"resources/keys.resource": "*** Keywords ***\nK\n    No Operation\n",
		"notes.txt":               "*** Invalid ***\n",
		".hidden/broken.robot":    "*** Invalid ***\n",
	}
	res := runCLI(t, files, "", "check", ".")
	require.Equal(t, 0, res.code, res.stdout+res.stderr)
	assert.Equal(t, "2 files checked, no errors\n", res.stdout)
}

func TestCheckResourceWithTests(t *testing.T) {
	res := runCLI(t, map[string]string{"keys.resource": "*** Test Cases ***\nT\n    No Operation\n"}, "", "check", "keys.resource")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stdout, "error: Error in file 'keys.resource' on line 1: Resource file with 'Test Cases' section is invalid.")
}

func TestCheckNoFiles(t *testing.T) {
	res := runCLI(t, map[string]string{"notes.txt": "x"}, "", "check", ".")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Error: no test data files found")
	assert.Contains(t, res.stderr, "Hint: Pass .robot or .resource files")
}

func TestConfigIsApplied(t *testing.T) {
	files := map[string]string{
		"rfparse.yaml": "languages: [fi]\n",
		"suite.robot":  "*** Testit ***\nT\n    No Operation\n",
	}
	res := runCLI(t, files, "", "check", "suite.robot")
	require.Equal(t, 0, res.code, res.stdout+res.stderr)
	assert.Equal(t, "1 file checked, no errors\n", res.stdout)

	t.Run("without language", func(t *testing.T) {
		res := runCLI(t, map[string]string{"suite.robot": files["suite.robot"]}, "", "check", "suite.robot")
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stdout, "Unrecognized section header '*** Testit ***'.")
	})

	t.Run("language flag", func(t *testing.T) {
		res := runCLI(t, map[string]string{"suite.robot": files["suite.robot"]}, "", "check", "-l", "Finnish", "suite.robot")
		require.Equal(t, 0, res.code, res.stdout+res.stderr)
	})

	t.Run("invalid config", func(t *testing.T) {
		res := runCLI(t, map[string]string{"rfparse.yaml": "format: xml\n", "suite.robot": validSuite}, "", "check", "suite.robot")
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "Error: invalid configuration")
		assert.Contains(t, res.stderr, "/format")
	})

	t.Run("explicit config", func(t *testing.T) {
		files := map[string]string{
			"conf/project.toml": "languages = [\"fi\"]\n",
			"suite.robot":       files["suite.robot"],
		}
		res := runCLI(t, files, "", "check", "--config", "conf/project.toml", "suite.robot")
		require.Equal(t, 0, res.code, res.stdout+res.stderr)
	})
}

func TestUnknownLanguage(t *testing.T) {
	res := runCLI(t, map[string]string{"suite.robot": validSuite}, "", "check", "-l", "Finish", "suite.robot")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Error: Language 'Finish' not found nor importable as a language module.")
	assert.Contains(t, res.stderr, "Hint: Did you mean 'fi'?")
}

func TestFmt(t *testing.T) {
	messy := "*** Test Cases ***  \nT\n    Log  a\t b  \n"
	formatted := "*** Test Cases ***\nT\n    Log    a    b\n"

	t.Run("rewrites", func(t *testing.T) {
		res := runCLI(t, map[string]string{"suite.robot": messy}, "", "fmt", "suite.robot")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, "reformatted suite.robot\n", res.stdout)
		data, err := os.ReadFile("suite.robot")
		require.NoError(t, err)
		assert.Equal(t, formatted, string(data))
	})

	t.Run("check", func(t *testing.T) {
		res := runCLI(t, map[string]string{"suite.robot": messy}, "", "fmt", "--check", "suite.robot")
		assert.Equal(t, 1, res.code)
		assert.Equal(t, "would reformat suite.robot\n", res.stdout)
		assert.Contains(t, res.stderr, "Error: 1 file would be reformatted")
		data, err := os.ReadFile("suite.robot")
		require.NoError(t, err)
		assert.Equal(t, messy, string(data))
	})

	t.Run("already formatted", func(t *testing.T) {
		res := runCLI(t, map[string]string{"suite.robot": formatted}, "", "fmt", "--check", "--data-only", "suite.robot")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Empty(t, res.stdout)
	})
}

func TestDump(t *testing.T) {
	res := runCLI(t, map[string]string{"suite.robot": validSuite}, "", "dump", "--format", "json", "suite.robot")
	require.Equal(t, 0, res.code, res.stderr)
	var tree dump.Node
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &tree))
	assert.Equal(t, "File", tree.Kind)
	assert.Equal(t, "suite.robot", tree.Source)
	require.Len(t, tree.Body, 1)
	assert.Equal(t, "TestCaseSection", tree.Body[0].Kind)

	t.Run("format from config", func(t *testing.T) {
		files := map[string]string{"rfparse.yml": "format: yaml\n", "suite.robot": validSuite}
		res := runCLI(t, files, "", "dump", "suite.robot")
		require.Equal(t, 0, res.code, res.stderr)
		assert.True(t, strings.HasPrefix(res.stdout, "kind: File\n"), res.stdout)
	})

	t.Run("unknown format", func(t *testing.T) {
		res := runCLI(t, map[string]string{"suite.robot": validSuite}, "", "dump", "-o", "xml", "suite.robot")
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, `Error: unknown dump format "xml"`)
		assert.Contains(t, res.stderr, "Hint: Use one of [yaml json cbor]")
	})
}

func TestFingerprint(t *testing.T) {
	files := map[string]string{
		"a.robot": "*** Test Cases ***\nT\n    Log    x\n",
		"b.robot": "*** Test Cases ***\n# comment\nT\n    Log  x    # inline\n\n",
		"c.robot": "*** Test Cases ***\nT\n    Log    y\n",
	}
	res := runCLI(t, files, "", "fingerprint", "a.robot", "b.robot", "c.robot")
	require.Equal(t, 0, res.code, res.stderr)

	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.Len(t, lines, 3)
	digests := make(map[string]string)
	for _, line := range lines {
		digest, path, ok := strings.Cut(line, "  ")
		require.True(t, ok, line)
		assert.True(t, strings.HasPrefix(digest, "blake2b:"), digest)
		digests[path] = digest
	}
	assert.Equal(t, digests["a.robot"], digests["b.robot"])
	assert.NotEqual(t, digests["a.robot"], digests["c.robot"])
}

func TestLanguages(t *testing.T) {
	res := runCLI(t, nil, "", "languages")
	require.Equal(t, 0, res.code, res.stderr)
	for _, want := range []string{"CODE", "NAME", "fi", "Finnish", "de", "German", "sv", "Swedish"} {
		assert.Contains(t, res.stdout, want)
	}

	t.Run("translations", func(t *testing.T) {
		res := runCLI(t, nil, "", "languages", "fi")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "Testit")
		assert.Contains(t, res.stdout, "Dokumentaatio")
	})

	t.Run("suggestion", func(t *testing.T) {
		res := runCLI(t, nil, "", "languages", "swedsh")
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "Hint: Did you mean 'sv'?")
	})
}

func TestFormatError(t *testing.T) {
	err := &CLIError{Type: "input", Message: "broken", Details: "details", Hint: "fix it"}

	var buf bytes.Buffer
	FormatError(&buf, err, false)
	assert.Equal(t, "Error: broken\n\ndetails\nHint: fix it\n", buf.String())

	buf.Reset()
	FormatError(&buf, err, true)
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "broken")

	buf.Reset()
	FormatError(&buf, errors.New("plain"), false)
	assert.Equal(t, "Error: plain\n", buf.String())
}

func TestFileWatcher(t *testing.T) {
	dir := t.TempDir()
	w, err := newFileWatcher([]string{dir}, func(path string) bool {
		return filepath.Ext(path) == ".robot"
	})
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan string, 10)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(path string) { changes <- path })
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))
	suite := filepath.Join(dir, "suite.robot")
	require.NoError(t, os.WriteFile(suite, []byte(validSuite), 0o644))

	select {
	case path := <-changes:
		assert.Equal(t, suite, path)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
