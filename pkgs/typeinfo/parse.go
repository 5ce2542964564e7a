package typeinfo

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokName tokenKind = iota
	tokLeft
	tokRight
	tokComma
	tokPipe
)

type token struct {
	kind     tokenKind
	value    string
	position int
}

var markers = map[byte]tokenKind{
	'[': tokLeft,
	']': tokRight,
	',': tokComma,
	'|': tokPipe,
}

func tokenize(source string) []token {
	var tokens []token
	i := 0
	for i < len(source) {
		c := source[i]
		if kind, ok := markers[c]; ok {
			tokens = append(tokens, token{kind: kind, value: string(c), position: i})
			i++
			continue
		}
		if c == ' ' || c == '\t' {
			i++
			continue
		}
		start := i
		if c == '"' || c == '\'' {
			end := strings.IndexByte(source[i+1:], c)
			if end < 0 {
				i = len(source)
			} else {
				i += end + 2
			}
		} else {
			for i < len(source) {
				if _, ok := markers[source[i]]; ok {
					break
				}
				i++
			}
		}
		tokens = append(tokens, token{
			kind:     tokName,
			value:    strings.TrimRight(source[start:i], " \t"),
			position: start,
		})
	}
	return tokens
}

type parser struct {
	source  string
	tokens  []token
	current int
}

// Parse parses a type hint without validating the names in it.
func Parse(source string) (*Info, error) {
	p := &parser{source: source, tokens: tokenize(source)}
	info, err := p.typ()
	if err != nil {
		return nil, err
	}
	if p.current < len(p.tokens) {
		return nil, p.error(fmt.Sprintf("Extra content after '%s'.", info))
	}
	return info, nil
}

func (p *parser) peek() *token {
	if p.current >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.current]
}

func (p *parser) match(kind tokenKind) bool {
	if t := p.peek(); t != nil && t.kind == kind {
		p.current++
		return true
	}
	return false
}

func (p *parser) error(message string) error {
	position := "end"
	if t := p.peek(); t != nil {
		position = fmt.Sprintf("index %d", t.position)
	}
	return fmt.Errorf("Parsing type '%s' failed: Error at %s: %s", p.source, position, message)
}

func (p *parser) typ() (*Info, error) {
	t := p.peek()
	if t == nil || t.kind != tokName {
		return nil, p.error("Type name missing.")
	}
	p.current++
	info := &Info{Name: t.value}
	if p.match(tokLeft) {
		nested, err := p.params(info.IsLiteral())
		if err != nil {
			return nil, err
		}
		info.Nested = nested
	}
	if p.match(tokPipe) {
		rest, err := p.union()
		if err != nil {
			return nil, err
		}
		info = &Info{Name: "Union", Nested: append([]*Info{info}, rest...)}
	}
	return info, nil
}

func (p *parser) union() ([]*Info, error) {
	var types []*Info
	for {
		t := p.peek()
		if t == nil || t.kind != tokName {
			return nil, p.error("Type name missing.")
		}
		p.current++
		info := &Info{Name: t.value}
		if p.match(tokLeft) {
			nested, err := p.params(info.IsLiteral())
			if err != nil {
				return nil, err
			}
			info.Nested = nested
		}
		types = append(types, info)
		if !p.match(tokPipe) {
			return types, nil
		}
	}
}

func (p *parser) params(literal bool) ([]*Info, error) {
	params := []*Info{}
	var prev *token
	for {
		t := p.peek()
		if t == nil {
			return nil, p.error("Closing ']' missing.")
		}
		switch t.kind {
		case tokRight:
			p.current++
			if literal && len(params) == 0 {
				return nil, p.error("Literal cannot be empty.")
			}
			return params, nil
		case tokComma:
			if prev == nil || prev.kind == tokComma {
				return nil, p.error("Type name missing.")
			}
			p.current++
		default:
			if prev != nil && prev.kind != tokComma {
				return nil, p.error("Expected ',' or ']'.")
			}
			if literal {
				if t.kind != tokName {
					return nil, p.error("Literal value missing.")
				}
				p.current++
				params = append(params, &Info{Name: t.value})
			} else {
				param, err := p.typ()
				if err != nil {
					return nil, err
				}
				params = append(params, param)
			}
		}
		prev = t
	}
}
