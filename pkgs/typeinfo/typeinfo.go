// Package typeinfo parses the type hints used in "${name: type}" variables
// and argument specs, such as "int", "list[str]" or "int | float".
package typeinfo

import (
	"fmt"
	"strings"
)

// Info is a parsed type hint.
type Info struct {
	Name   string
	Nested []*Info
}

// known maps lower-cased type names to how many parameters they take.
// -1 means any number.
var known = map[string]int{
	"...":       0,
	"ellipsis":  0,
	"any":       0,
	"str":       0,
	"string":    0,
	"unicode":   0,
	"boolean":   0,
	"bool":      0,
	"int":       0,
	"integer":   0,
	"long":      0,
	"float":     0,
	"double":    0,
	"decimal":   0,
	"bytes":     0,
	"bytearray": 0,
	"datetime":  0,
	"date":      0,
	"timedelta": 0,
	"path":      0,
	"none":      0,
	"list":      1,
	"sequence":  1,
	"tuple":     -1,

	"dictionary": 2,
	"dict":       2,
	"mapping":    2,
	"map":        2,
	"set":        1,
	"frozenset":  1,
	"union":      -1,
	"literal":    -1,
}

// IsLiteral reports whether parameters are literal values, not types.
func (i *Info) IsLiteral() bool {
	return strings.EqualFold(i.Name, "literal")
}

func (i *Info) IsUnion() bool {
	return strings.EqualFold(i.Name, "union")
}

func (i *Info) String() string {
	if i.IsUnion() && len(i.Nested) > 0 {
		parts := make([]string, len(i.Nested))
		for n, nested := range i.Nested {
			parts[n] = nested.String()
		}
		return strings.Join(parts, " | ")
	}
	if i.Nested == nil {
		return i.Name
	}
	parts := make([]string, len(i.Nested))
	for n, nested := range i.Nested {
		parts[n] = nested.String()
	}
	return i.Name + "[" + strings.Join(parts, ", ") + "]"
}

// Validate checks that every type name is recognised and that generics get
// the right number of parameters.
func (i *Info) Validate() error {
	params, ok := known[strings.ToLower(i.Name)]
	if !ok {
		return fmt.Errorf("Unrecognized type '%s'.", i.Name)
	}
	if i.IsLiteral() {
		return nil
	}
	if i.Nested != nil && params >= 0 && len(i.Nested) != params {
		return fmt.Errorf("'%s[]' requires exactly %d %s, '%s' has %d.",
			i.Name, params, plural(params, "parameter"), i, len(i.Nested))
	}
	for _, nested := range i.Nested {
		if err := nested.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// FromVariable parses and validates the type of a variable. When wrap is
// true, list and dict variables get their type wrapped so that "@{x: int}"
// means list[int] and "&{x: str=int}" means dict[str, int].
func FromVariable(identifier byte, typ string, wrap bool) (*Info, error) {
	var info *Info
	var err error
	switch {
	case wrap && identifier == '@':
		var item *Info
		if item, err = Parse(typ); err == nil {
			info = &Info{Name: "list", Nested: []*Info{item}}
		}
	case wrap && identifier == '&':
		key, value := "Any", typ
		if k, v, ok := strings.Cut(typ, "="); ok {
			key, value = k, v
		}
		var keyInfo, valueInfo *Info
		if keyInfo, err = Parse(key); err == nil {
			if valueInfo, err = Parse(value); err == nil {
				info = &Info{Name: "dict", Nested: []*Info{keyInfo, valueInfo}}
			}
		}
	default:
		info, err = Parse(typ)
	}
	if err != nil {
		return nil, err
	}
	if err := info.Validate(); err != nil {
		return nil, err
	}
	return info, nil
}
