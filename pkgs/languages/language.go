// Package languages holds translations of section headers and setting names.
//
// A Registry is built once and shared. Every parse activates languages on its
// own Languages value, so files configuring different languages can be parsed
// concurrently.
package languages

import (
	"fmt"
	"sort"
	"strings"
)

// Canonical English section names.
const (
	Settings  = "Settings"
	Variables = "Variables"
	TestCases = "Test Cases"
	Tasks     = "Tasks"
	Keywords  = "Keywords"
	Comments  = "Comments"
)

// SectionNames lists the canonical section names in file order.
var SectionNames = []string{Settings, Variables, TestCases, Tasks, Keywords, Comments}

// Language translates headers and settings. Both maps are keyed by the
// canonical English name.
type Language struct {
	Code     string
	Name     string
	Headers  map[string]string
	Settings map[string]string
}

// Registry is an immutable set of known languages.
type Registry struct {
	languages []*Language
	byKey     map[string]*Language
}

// NewRegistry builds a registry. Later languages win on key collisions.
func NewRegistry(langs ...*Language) *Registry {
	r := &Registry{byKey: make(map[string]*Language)}
	for _, lang := range langs {
		r.languages = append(r.languages, lang)
		r.byKey[lookupKey(lang.Code)] = lang
		r.byKey[lookupKey(lang.Name)] = lang
	}
	return r
}

var defaultRegistry = NewRegistry(English, Finnish, German, Swedish, French)

// Default returns the registry of built-in languages.
func Default() *Registry {
	return defaultRegistry
}

// Lookup finds a language by code or name ignoring case, spaces and hyphens.
func (r *Registry) Lookup(name string) (*Language, error) {
	if lang, ok := r.byKey[lookupKey(name)]; ok {
		return lang, nil
	}
	return nil, fmt.Errorf("Language '%s' not found nor importable as a language module.", name)
}

// All returns the languages sorted by code.
func (r *Registry) All() []*Language {
	all := append([]*Language(nil), r.languages...)
	sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	return all
}

func lookupKey(name string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '_' {
			return -1
		}
		return r
	}, strings.ToLower(name))
}
