package lexer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/aledsdavies/rfparse/pkgs/languages"
)

// settingTypes maps canonical setting names to their token types.
var settingTypes = map[string]TokenType{
	"Documentation":  DOCUMENTATION,
	"Metadata":       METADATA,
	"Name":           SUITE_NAME,
	"Suite Setup":    SUITE_SETUP,
	"Suite Teardown": SUITE_TEARDOWN,
	"Test Setup":     TEST_SETUP,
	"Test Teardown":  TEST_TEARDOWN,
	"Test Template":  TEST_TEMPLATE,
	"Test Timeout":   TEST_TIMEOUT,
	"Test Tags":      TEST_TAGS,
	"Default Tags":   DEFAULT_TAGS,
	"Keyword Tags":   KEYWORD_TAGS,
	"Library":        LIBRARY,
	"Resource":       RESOURCE,
	"Variables":      VARIABLES,
	"Tags":           TAGS,
	"Setup":          SETUP,
	"Teardown":       TEARDOWN,
	"Template":       TEMPLATE,
	"Timeout":        TIMEOUT,
	"Arguments":      ARGUMENTS,
	"Return":         RETURN,
}

var (
	multiUse = set("Metadata", "Library", "Resource", "Variables")

	singleValue = set("Resource", "Test Timeout", "Test Template", "Timeout", "Template", "Name")

	nameAndArguments = set("Metadata", "Suite Setup", "Suite Teardown", "Test Setup",
		"Test Teardown", "Test Template", "Setup", "Teardown", "Template", "Resource", "Variables")
)

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, name := range names {
		m[name] = true
	}
	return m
}

var taskAliases = map[string]string{
	"Force Tags":    "Test Tags",
	"Task Tags":     "Test Tags",
	"Task Setup":    "Test Setup",
	"Task Teardown": "Test Teardown",
	"Task Template": "Test Template",
	"Task Timeout":  "Test Timeout",
}

// settingsSpec describes which settings a context accepts.
type settingsSpec struct {
	names      []string
	aliases    map[string]string
	notAllowed string
	bracketed  bool
}

var (
	suiteFileSettings = &settingsSpec{
		names: []string{"Documentation", "Metadata", "Name", "Suite Setup", "Suite Teardown",
			"Test Setup", "Test Teardown", "Test Template", "Test Timeout", "Test Tags",
			"Default Tags", "Keyword Tags", "Library", "Resource", "Variables"},
		aliases:    taskAliases,
		notAllowed: "in suite file",
	}
	initFileSettings = &settingsSpec{
		names: []string{"Documentation", "Metadata", "Name", "Suite Setup", "Suite Teardown",
			"Test Setup", "Test Teardown", "Test Timeout", "Test Tags", "Keyword Tags",
			"Library", "Resource", "Variables"},
		aliases:    withoutKey(taskAliases, "Task Template"),
		notAllowed: "in suite initialization file",
	}
	resourceFileSettings = &settingsSpec{
		names:      []string{"Documentation", "Keyword Tags", "Library", "Resource", "Variables"},
		notAllowed: "in resource file",
	}
	testCaseSettings = &settingsSpec{
		names:      []string{"Documentation", "Tags", "Setup", "Teardown", "Template", "Timeout"},
		notAllowed: "with tests or tasks",
		bracketed:  true,
	}
	keywordSettings = &settingsSpec{
		names:      []string{"Documentation", "Arguments", "Setup", "Teardown", "Timeout", "Tags", "Return"},
		notAllowed: "with user keywords",
		bracketed:  true,
	}
	allSettingsSpecs = []*settingsSpec{
		suiteFileSettings, initFileSettings, resourceFileSettings, testCaseSettings, keywordSettings,
	}
)

func withoutKey(m map[string]string, key string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		if k != key {
			out[k] = v
		}
	}
	return out
}

func (s *settingsSpec) allows(name string) bool {
	for _, n := range s.names {
		if n == name {
			return true
		}
	}
	return false
}

// settings lexes setting statements of one context and remembers the values
// seen so far.
type settings struct {
	spec   *settingsSpec
	langs  *languages.Languages
	values map[string][]*Token
}

func newSettings(spec *settingsSpec, langs *languages.Languages) *settings {
	return &settings{spec: spec, langs: langs, values: make(map[string][]*Token)}
}

func (s *settings) lex(statement []*Token) {
	orig := statement[0].Value
	if s.spec.bracketed {
		orig = strings.TrimSpace(orig[1 : len(orig)-1])
	}
	name, _ := s.langs.Setting(orig)
	if alias, ok := s.spec.aliases[name]; ok {
		name = alias
	}
	if err := s.validate(orig, name, statement); err != nil {
		statement[0].SetError(err.Error())
		for _, t := range statement[1:] {
			t.Type = COMMENT
		}
		return
	}
	s.lexSetting(statement, name)
}

func (s *settings) validate(orig, name string, statement []*Token) error {
	if !s.spec.allows(name) {
		return fmt.Errorf("%s", s.nonExistingMessage(orig, name))
	}
	if _, seen := s.values[name]; seen && !multiUse[name] {
		return fmt.Errorf("Setting '%s' is allowed only once. Only the first value is used.", orig)
	}
	if singleValue[name] && len(statement) > 2 {
		return fmt.Errorf("Setting '%s' accepts only one value, got %d.", orig, len(statement)-1)
	}
	return nil
}

func (s *settings) nonExistingMessage(orig, name string) string {
	for _, spec := range allSettingsSpecs {
		if _, alias := spec.aliases[name]; spec.allows(name) || alias {
			return fmt.Sprintf("Setting '%s' is not allowed %s.", orig, s.spec.notAllowed)
		}
	}
	candidates := append([]string(nil), s.spec.names...)
	for alias := range s.spec.aliases {
		candidates = append(candidates, alias)
	}
	return formatRecommendations(fmt.Sprintf("Non-existing setting '%s'.", orig), recommend(name, candidates))
}

func (s *settings) lexSetting(statement []*Token, name string) {
	statement[0].Type = settingTypes[name]
	values := statement[1:]
	s.values[name] = values
	switch {
	case nameAndArguments[name]:
		lexNameAndArguments(values)
	case name == "Library":
		lexNameAndArguments(values)
		if n := len(values); n > 1 {
			if marker := languages.NormalizeWhitespace(values[n-2].Value); marker == "AS" || marker == "WITH NAME" {
				values[n-2].Type = AS
				values[n-1].Type = NAME
			}
		}
	default:
		lexArguments(values)
	}
}

func lexNameAndArguments(tokens []*Token) {
	if len(tokens) > 0 {
		tokens[0].Type = NAME
		lexArguments(tokens[1:])
	}
}

func lexArguments(tokens []*Token) {
	for _, t := range tokens {
		t.Type = ARGUMENT
	}
}

// hasValue reports whether the setting was given a non-empty first value.
func (s *settings) hasValue(name string) bool {
	values := s.values[name]
	return len(values) > 0 && values[0].Value != ""
}

// disables reports whether the setting was given without value or with NONE.
func (s *settings) disables(name string) bool {
	values, seen := s.values[name]
	if !seen {
		return false
	}
	return len(values) == 0 || strings.ToUpper(values[0].Value) == "NONE"
}

// recommend returns candidates close to name, closest first.
func recommend(name string, candidates []string) []string {
	type scored struct {
		name     string
		distance int
	}
	source := strings.ToLower(name)
	var matches []scored
	for _, candidate := range candidates {
		target := strings.ToLower(candidate)
		distance := fuzzy.LevenshteinDistance(source, target)
		longest := max(len(source), len(target))
		if longest == 0 || float64(distance)/float64(longest) > 0.4 {
			continue
		}
		matches = append(matches, scored{candidate, distance})
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].name < matches[j].name
	})
	var names []string
	for i, m := range matches {
		if i == 5 {
			break
		}
		names = append(names, m.name)
	}
	return names
}

func formatRecommendations(message string, recommendations []string) string {
	if len(recommendations) == 0 {
		return message
	}
	var b strings.Builder
	b.WriteString(message)
	b.WriteString(" Did you mean:")
	for _, r := range recommendations {
		b.WriteString("\n    ")
		b.WriteString(r)
	}
	return b.String()
}
