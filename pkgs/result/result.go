// Package result is the small part of an execution result tree that gives
// every step and message a stable id such as "k1-k2-m1".
//
// Ids are not stored. They are computed by walking from an item to the root
// and counting siblings of the same category, so they stay the same as long
// as the shape of the tree does not change.
package result

import (
	"fmt"
	"slices"
)

// StepType is the kind of a step.
type StepType string

const (
	KeywordStep StepType = "KEYWORD"
	VarStep     StepType = "VAR"
	ForStep     StepType = "FOR"
	WhileStep   StepType = "WHILE"
	GroupStep   StepType = "GROUP"
	IfStep      StepType = "IF"
	ElseIfStep  StepType = "ELSE IF"
	ElseStep    StepType = "ELSE"
)

// Parent is something messages can belong to.
type Parent interface {
	ID() string
	messages() []*Message
}

// Step is a keyword or a control structure. Steps have the "k" prefix in ids
// regardless of their type.
type Step struct {
	Type StepType
	Name string

	parent *Step
	body   []any
}

// NewStep creates a root step.
func NewStep(typ StepType, name string) *Step {
	return &Step{Type: typ, Name: name}
}

func NewKeyword(name string) *Step { return NewStep(KeywordStep, name) }

// Parent returns the enclosing step, or nil for a root step.
func (s *Step) Parent() *Step { return s.parent }

// Body returns the steps and messages in creation order.
func (s *Step) Body() []any { return slices.Clone(s.body) }

// CreateStep appends a child step.
func (s *Step) CreateStep(typ StepType, name string) *Step {
	child := &Step{Type: typ, Name: name, parent: s}
	s.body = append(s.body, child)
	return child
}

func (s *Step) CreateKeyword(name string) *Step { return s.CreateStep(KeywordStep, name) }

// CreateMessage appends a message.
func (s *Step) CreateMessage(text, level string) *Message {
	m := &Message{Text: text, Level: level, parent: s}
	s.body = append(s.body, m)
	return m
}

// ID is "k1" for a root step and "<parent>-k<n>" otherwise, where n counts
// the non-message items of the parent. A step not yet in its parent's body
// gets the next free number.
func (s *Step) ID() string {
	if s.parent == nil {
		return "k1"
	}
	var steps []*Step
	for _, item := range s.parent.body {
		if step, ok := item.(*Step); ok {
			steps = append(steps, step)
		}
	}
	return fmt.Sprintf("%s-k%d", s.parent.ID(), position(steps, s))
}

func (s *Step) messages() []*Message {
	var out []*Message
	for _, item := range s.body {
		if m, ok := item.(*Message); ok {
			out = append(out, m)
		}
	}
	return out
}

// Message is a log message.
type Message struct {
	Text  string
	Level string

	parent Parent
}

// NewMessage creates a message pointing to parent without adding it to the
// parent's body. parent may be nil.
func NewMessage(text, level string, parent Parent) *Message {
	return &Message{Text: text, Level: level, parent: parent}
}

// ID is "m1" without a parent and "<parent>-m<n>" otherwise.
func (m *Message) ID() string {
	if m.parent == nil {
		return "m1"
	}
	return fmt.Sprintf("%s-m%d", m.parent.ID(), position(m.parent.messages(), m))
}

// Errors holds execution errors that are not tied to any step.
type Errors struct {
	list []*Message
}

func (*Errors) ID() string { return "errors" }

func (e *Errors) messages() []*Message { return e.list }

// Messages returns the error messages in creation order.
func (e *Errors) Messages() []*Message { return slices.Clone(e.list) }

// CreateMessage appends an error message.
func (e *Errors) CreateMessage(text, level string) *Message {
	m := &Message{Text: text, Level: level, parent: e}
	e.list = append(e.list, m)
	return m
}

// position is the 1-based index of item, or one past the end when missing.
func position[T comparable](items []T, item T) int {
	if i := slices.Index(items, item); i >= 0 {
		return i + 1
	}
	return len(items) + 1
}
