package languages

import (
	"strings"

	"golang.org/x/text/cases"
)

// Languages is the set of languages active during one parse. English is
// always active.
type Languages struct {
	registry *Registry
	active   []*Language
	headers  map[string]string
	settings map[string]string
	fold     cases.Caser
}

// New activates the given languages on top of English.
func (r *Registry) New(names ...string) (*Languages, error) {
	l := &Languages{
		registry: r,
		headers:  make(map[string]string),
		settings: make(map[string]string),
		fold:     cases.Fold(),
	}
	l.activate(English)
	for _, name := range names {
		if _, err := l.Add(name); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Add activates a language by code or name. Activating a language twice is
// a no-op.
func (l *Languages) Add(name string) (*Language, error) {
	lang, err := l.registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	l.activate(lang)
	return lang, nil
}

func (l *Languages) activate(lang *Language) {
	for _, active := range l.active {
		if active == lang {
			return
		}
	}
	l.active = append(l.active, lang)
	for canonical, translated := range lang.Headers {
		l.headers[l.normalize(translated)] = canonical
	}
	for canonical, translated := range lang.Settings {
		l.settings[l.normalize(translated)] = canonical
	}
}

// Active returns activated languages in activation order.
func (l *Languages) Active() []*Language {
	return append([]*Language(nil), l.active...)
}

// Header maps a section header, without its asterisks, to the canonical
// section name.
func (l *Languages) Header(name string) (string, bool) {
	canonical, ok := l.headers[l.normalize(name)]
	return canonical, ok
}

// Setting maps a setting name to its canonical English name. Unknown names
// are returned whitespace-normalised and title-cased so that callers can
// still report them.
func (l *Languages) Setting(name string) (string, bool) {
	canonical, ok := l.settings[l.normalize(name)]
	if ok {
		return canonical, true
	}
	return NormalizeWhitespace(name), false
}

// SettingNames lists every known setting name in all active languages.
func (l *Languages) SettingNames() []string {
	var names []string
	for _, lang := range l.active {
		for _, translated := range lang.Settings {
			names = append(names, translated)
		}
	}
	return names
}

func (l *Languages) normalize(name string) string {
	return l.fold.String(NormalizeWhitespace(name))
}

// NormalizeWhitespace collapses whitespace runs into single spaces and trims
// the result.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
