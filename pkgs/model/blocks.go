package model

import (
	"github.com/aledsdavies/rfparse/pkgs/invariant"
	"github.com/aledsdavies/rfparse/pkgs/lexer"
)

// BlockBase holds the errors of a block. Errors of the statements inside a
// block belong to those statements.
type BlockBase struct {
	errors []string
}

func (b *BlockBase) Errors() []string {
	if len(b.errors) == 0 {
		return nil
	}
	return b.errors
}

func (b *BlockBase) SetErrors(errors ...string) {
	b.errors = append([]string(nil), errors...)
}

func (b *BlockBase) AddError(err string) {
	b.errors = append(b.errors, err)
}

// addErrorOnce skips errors the block already has.
func (b *BlockBase) addErrorOnce(err string) {
	for _, e := range b.errors {
		if e == err {
			return
		}
	}
	b.AddError(err)
}

func blockSpan(children []Node) Span {
	if len(children) == 0 {
		return unknownSpan
	}
	first, last := children[0].Span(), children[len(children)-1].Span()
	return Span{first.Line, first.Col, last.EndLine, last.EndCol}
}

// children drops missing optional parts such as an absent END.
func children(nodes ...Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if !isNil(n) {
			out = append(out, n)
		}
	}
	return out
}

func isNil(n Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case Nodes:
		return v == nil
	case *SectionHeader:
		return v == nil
	case *TestCaseName:
		return v == nil
	case *KeywordName:
		return v == nil
	case *ForHeader:
		return v == nil
	case *WhileHeader:
		return v == nil
	case *GroupHeader:
		return v == nil
	case *End:
		return v == nil
	case *If:
		return v == nil
	case *Try:
		return v == nil
	}
	return false
}

// rewriteOne rewrites a single-valued child. Removing the child yields the
// zero value.
func rewriteOne[T Node](n T, fn func(Node) []Node) T {
	var zero T
	if isNil(n) {
		return zero
	}
	result := flatten(fn(n))
	if len(result) == 0 {
		return zero
	}
	invariant.Invariant(len(result) == 1, "%s cannot be replaced with %d nodes", n.Kind(), len(result))
	out, ok := result[0].(T)
	invariant.Invariant(ok, "%s cannot be replaced with %s", n.Kind(), result[0].Kind())
	return out
}

func rewriteBody(body []Node, fn func(Node) []Node) []Node {
	out := make([]Node, 0, len(body))
	for _, n := range body {
		out = append(out, flatten(fn(n))...)
	}
	return out
}

func flatten(nodes []Node) []Node {
	var out []Node
	for _, n := range nodes {
		switch v := n.(type) {
		case nil:
		case Nodes:
			out = append(out, flatten(v)...)
		default:
			out = append(out, n)
		}
	}
	return out
}

// executable reports whether a body has something to run. Settings, comments
// and empty lines alone do not count.
func executable(body []Node) bool {
	for _, n := range body {
		switch n.(type) {
		case *KeywordCall, *TemplateArguments, *Var, *Continue, *Break,
			*ReturnSetting, *ReturnStatement, *Error,
			*For, *While, *If, *Try, *Group:
			return true
		}
	}
	return false
}

func hasTemplates(n Node) bool {
	if _, ok := n.(*TemplateArguments); ok {
		return true
	}
	if b, ok := n.(Block); ok {
		for _, child := range b.Children() {
			if hasTemplates(child) {
				return true
			}
		}
	}
	return false
}

// File is the root of a parsed file.
type File struct {
	BlockBase
	Sections []Section
	// Source is the path the file was read from, or "" when the data came
	// from a string or a reader.
	Source string
	// Languages are the languages configured in the file, in order.
	Languages []string
}

func (*File) Kind() string { return "File" }

func (f *File) Span() Span {
	span := blockSpan(f.Children())
	if span == unknownSpan {
		return Span{1, 0, 1, 0}
	}
	return span
}

func (f *File) Children() []Node {
	nodes := make([]Node, len(f.Sections))
	for i, s := range f.Sections {
		nodes[i] = s
	}
	return nodes
}

func (f *File) Rewrite(fn func(Node) []Node) {
	var sections []Section
	for _, n := range rewriteBody(f.Children(), fn) {
		s, ok := n.(Section)
		invariant.Invariant(ok, "file can only contain sections, got %s", n.Kind())
		sections = append(sections, s)
	}
	f.Sections = sections
}

func (*File) Validate(*ValidationContext) {}

// Section is one of the sections of a file.
type Section interface {
	Block
	SectionHeader() *SectionHeader
	SectionBody() []Node
	// Append adds nodes to the end of the body.
	Append(nodes ...Node)
}

type sectionBase struct {
	BlockBase
	// Header is nil in the implicit comment section.
	Header *SectionHeader
	Body   []Node
}

func (s *sectionBase) SectionHeader() *SectionHeader { return s.Header }
func (s *sectionBase) SectionBody() []Node           { return s.Body }
func (s *sectionBase) Append(nodes ...Node)          { s.Body = append(s.Body, nodes...) }

func (s *sectionBase) Children() []Node {
	return append(children(s.Header), s.Body...)
}

func (s *sectionBase) Span() Span { return blockSpan(s.Children()) }

func (s *sectionBase) Rewrite(fn func(Node) []Node) {
	s.Header = rewriteOne(s.Header, fn)
	s.Body = rewriteBody(s.Body, fn)
}

func (*sectionBase) Validate(*ValidationContext) {}

type (
	// SettingSection holds suite settings and imports.
	SettingSection struct{ sectionBase }
	// VariableSection holds Variable statements.
	VariableSection struct{ sectionBase }
	// TestCaseSection holds tests or tasks.
	TestCaseSection struct{ sectionBase }
	// KeywordSection holds user keywords.
	KeywordSection struct{ sectionBase }
	// CommentSection is an explicit comment section.
	CommentSection struct{ sectionBase }
	// ImplicitCommentSection holds data before the first section header.
	ImplicitCommentSection struct{ sectionBase }
	// InvalidSection follows an unrecognized section header.
	InvalidSection struct{ sectionBase }
)

func (*SettingSection) Kind() string         { return "SettingSection" }
func (*VariableSection) Kind() string        { return "VariableSection" }
func (*TestCaseSection) Kind() string        { return "TestCaseSection" }
func (*KeywordSection) Kind() string         { return "KeywordSection" }
func (*CommentSection) Kind() string         { return "CommentSection" }
func (*ImplicitCommentSection) Kind() string { return "ImplicitCommentSection" }
func (*InvalidSection) Kind() string         { return "InvalidSection" }

// Tasks reports whether the section is a task section.
func (s *TestCaseSection) Tasks() bool {
	return s.Header != nil && s.Header.Type() == lexer.TASK_HEADER
}

// NewSection creates an empty section for a header. A nil header creates an
// implicit comment section.
func NewSection(header *SectionHeader, body ...Node) Section {
	base := sectionBase{Header: header, Body: body}
	if header == nil {
		return &ImplicitCommentSection{base}
	}
	switch header.Type() {
	case lexer.SETTING_HEADER:
		return &SettingSection{base}
	case lexer.VARIABLE_HEADER:
		return &VariableSection{base}
	case lexer.TESTCASE_HEADER, lexer.TASK_HEADER:
		return &TestCaseSection{base}
	case lexer.KEYWORD_HEADER:
		return &KeywordSection{base}
	case lexer.COMMENT_HEADER:
		return &CommentSection{base}
	}
	return &InvalidSection{base}
}

// TestCase is a test or a task.
type TestCase struct {
	BlockBase
	Header *TestCaseName
	Body   []Node
}

func (*TestCase) Kind() string { return "TestCase" }

func (b *TestCase) Name() string {
	if b.Header == nil {
		return ""
	}
	return b.Header.Name()
}

func (b *TestCase) Children() []Node { return append(children(b.Header), b.Body...) }
func (b *TestCase) Span() Span       { return blockSpan(b.Children()) }

func (b *TestCase) Rewrite(fn func(Node) []Node) {
	b.Header = rewriteOne(b.Header, fn)
	b.Body = rewriteBody(b.Body, fn)
}

func (b *TestCase) Validate(ctx *ValidationContext) {
	if !executable(b.Body) {
		b.AddError(ctx.testLabel() + " cannot be empty.")
	}
}

// Keyword is a user keyword.
type Keyword struct {
	BlockBase
	Header *KeywordName
	Body   []Node
}

func (*Keyword) Kind() string { return "Keyword" }

func (b *Keyword) Name() string {
	if b.Header == nil {
		return ""
	}
	return b.Header.Name()
}

func (b *Keyword) Children() []Node { return append(children(b.Header), b.Body...) }
func (b *Keyword) Span() Span       { return blockSpan(b.Children()) }

func (b *Keyword) Rewrite(fn func(Node) []Node) {
	b.Header = rewriteOne(b.Header, fn)
	b.Body = rewriteBody(b.Body, fn)
}

func (b *Keyword) Validate(*ValidationContext) {
	if !executable(b.Body) {
		b.AddError("User keyword cannot be empty.")
	}
}

// For is a FOR loop.
type For struct {
	BlockBase
	Header *ForHeader
	Body   []Node
	End    *End
}

func (*For) Kind() string { return "For" }

func (b *For) Children() []Node {
	return children(append(append([]Node{b.Header}, b.Body...), b.End)...)
}
func (b *For) Span() Span { return blockSpan(b.Children()) }

func (b *For) Rewrite(fn func(Node) []Node) {
	b.Header = rewriteOne(b.Header, fn)
	b.Body = rewriteBody(b.Body, fn)
	b.End = rewriteOne(b.End, fn)
}

func (b *For) Validate(*ValidationContext) {
	if !executable(b.Body) {
		b.AddError("FOR loop cannot be empty.")
	}
	if b.End == nil {
		b.AddError("FOR loop must have closing END.")
	}
}

// While is a WHILE loop.
type While struct {
	BlockBase
	Header *WhileHeader
	Body   []Node
	End    *End
}

func (*While) Kind() string { return "While" }

func (b *While) Children() []Node {
	return children(append(append([]Node{b.Header}, b.Body...), b.End)...)
}
func (b *While) Span() Span { return blockSpan(b.Children()) }

func (b *While) Rewrite(fn func(Node) []Node) {
	b.Header = rewriteOne(b.Header, fn)
	b.Body = rewriteBody(b.Body, fn)
	b.End = rewriteOne(b.End, fn)
}

func (b *While) Validate(*ValidationContext) {
	if !executable(b.Body) {
		b.AddError("WHILE loop cannot be empty.")
	}
	if b.End == nil {
		b.AddError("WHILE loop must have closing END.")
	}
	if hasTemplates(b) {
		b.AddError("WHILE does not support templates.")
	}
}

// If is an IF, ELSE IF or ELSE branch. Later branches are chained through
// Orelse and only the first branch has the END.
type If struct {
	BlockBase
	// Header is an *IfHeader, *InlineIfHeader, *ElseIfHeader or *ElseHeader.
	Header Statement
	Body   []Node
	Orelse *If
	End    *End
}

func (*If) Kind() string { return "If" }

// Type is IF, INLINE_IF, ELSE_IF or ELSE.
func (b *If) Type() lexer.TokenType {
	switch b.Header.(type) {
	case *InlineIfHeader:
		return lexer.INLINE_IF
	case *ElseIfHeader:
		return lexer.ELSE_IF
	case *ElseHeader:
		return lexer.ELSE
	}
	return lexer.IF
}

func (b *If) Condition() string {
	if b.Header == nil || b.Type() == lexer.ELSE {
		return ""
	}
	return b.Header.GetValue(lexer.ARGUMENT, "")
}

func (b *If) Assign() []string {
	if h, ok := b.Header.(*InlineIfHeader); ok {
		return h.Assign()
	}
	return nil
}

func (b *If) Children() []Node {
	nodes := children(b.Header)
	nodes = append(nodes, b.Body...)
	return append(nodes, children(b.Orelse, b.End)...)
}

func (b *If) Span() Span { return blockSpan(b.Children()) }

func (b *If) Rewrite(fn func(Node) []Node) {
	b.Header = rewriteOne(b.Header, fn)
	b.Body = rewriteBody(b.Body, fn)
	b.Orelse = rewriteOne(b.Orelse, fn)
	b.End = rewriteOne(b.End, fn)
}

func branchLabel(typ lexer.TokenType) string {
	if typ == lexer.INLINE_IF {
		return "IF"
	}
	return typ.String()
}

func (b *If) Validate(*ValidationContext) {
	if !executable(b.Body) {
		b.AddError(branchLabel(b.Type()) + " branch cannot be empty.")
	}
	switch b.Type() {
	case lexer.IF:
		b.validateStructure()
		if b.End == nil {
			b.AddError("IF must have closing END.")
		}
	case lexer.INLINE_IF:
		b.validateStructure()
		b.validateInline()
	}
}

func (b *If) validateStructure() {
	elseSeen := false
	for branch := b.Orelse; branch != nil; branch = branch.Orelse {
		if elseSeen {
			if branch.Type() == lexer.ELSE {
				b.addErrorOnce("Only one ELSE allowed.")
			} else {
				b.addErrorOnce("ELSE IF not allowed after ELSE.")
			}
		}
		elseSeen = elseSeen || branch.Type() == lexer.ELSE
	}
}

func (b *If) validateInline() {
	assign := b.Assign()
	for branch := b; branch != nil; branch = branch.Orelse {
		if len(branch.Body) == 0 {
			continue
		}
		item := branch.Body[0]
		call, isCall := item.(*KeywordCall)
		if len(assign) > 0 && !isCall {
			b.AddError("Inline IF with assignment can only contain keyword calls.")
		}
		if isCall && len(call.Assign()) > 0 {
			b.AddError("Inline IF branches cannot contain assignments.")
		}
		if nested, ok := item.(*If); ok && nested.Type() == lexer.INLINE_IF {
			if len(nested.Assign()) > 0 {
				b.AddError("Inline IF branches cannot contain assignments.")
			}
			b.AddError("Inline IF cannot be nested.")
		}
	}
}

// Try is a TRY, EXCEPT, ELSE or FINALLY branch. Later branches are chained
// through Next and only the first branch has the END.
type Try struct {
	BlockBase
	// Header is a *TryHeader, *ExceptHeader, *ElseHeader or *FinallyHeader.
	Header Statement
	Body   []Node
	Next   *Try
	End    *End
}

func (*Try) Kind() string { return "Try" }

// Type is TRY, EXCEPT, ELSE or FINALLY.
func (b *Try) Type() lexer.TokenType {
	if b.Header == nil {
		return lexer.TRY
	}
	return b.Header.Type()
}

func (b *Try) Patterns() []string {
	if h, ok := b.Header.(*ExceptHeader); ok {
		return h.Patterns()
	}
	return nil
}

func (b *Try) PatternType() string {
	if h, ok := b.Header.(*ExceptHeader); ok {
		return h.PatternType()
	}
	return ""
}

func (b *Try) Assign() string {
	if h, ok := b.Header.(*ExceptHeader); ok {
		return h.Assign()
	}
	return ""
}

func (b *Try) Children() []Node {
	nodes := children(b.Header)
	nodes = append(nodes, b.Body...)
	return append(nodes, children(b.Next, b.End)...)
}

func (b *Try) Span() Span { return blockSpan(b.Children()) }

func (b *Try) Rewrite(fn func(Node) []Node) {
	b.Header = rewriteOne(b.Header, fn)
	b.Body = rewriteBody(b.Body, fn)
	b.Next = rewriteOne(b.Next, fn)
	b.End = rewriteOne(b.End, fn)
}

func (b *Try) Validate(*ValidationContext) {
	if !executable(b.Body) {
		b.AddError(b.Type().String() + " branch cannot be empty.")
	}
	if b.Type() != lexer.TRY {
		return
	}
	b.validateStructure()
	if b.End == nil {
		b.AddError("TRY must have closing END.")
	}
	if hasTemplates(b) {
		b.AddError("TRY does not support templates.")
	}
}

func (b *Try) validateStructure() {
	var elses, finallies, excepts, emptyExcepts int
	for branch := b.Next; branch != nil; branch = branch.Next {
		switch branch.Type() {
		case lexer.EXCEPT:
			if elses > 0 {
				b.AddError("EXCEPT not allowed after ELSE.")
			}
			if finallies > 0 {
				b.AddError("EXCEPT not allowed after FINALLY.")
			}
			if len(branch.Patterns()) > 0 && emptyExcepts > 0 {
				b.AddError("EXCEPT without patterns must be last.")
			}
			if len(branch.Patterns()) == 0 {
				emptyExcepts++
			}
			excepts++
		case lexer.ELSE:
			if finallies > 0 {
				b.AddError("ELSE not allowed after FINALLY.")
			}
			elses++
		case lexer.FINALLY:
			finallies++
		}
	}
	if finallies > 1 {
		b.AddError("Only one FINALLY allowed.")
	}
	if elses > 1 {
		b.AddError("Only one ELSE allowed.")
	}
	if emptyExcepts > 1 {
		b.AddError("Only one EXCEPT without patterns allowed.")
	}
	if excepts == 0 && finallies == 0 {
		b.AddError("TRY structure must have EXCEPT or FINALLY branch.")
	}
}

// Group is a named GROUP of steps.
type Group struct {
	BlockBase
	Header *GroupHeader
	Body   []Node
	End    *End
}

func (*Group) Kind() string { return "Group" }

func (b *Group) Name() string {
	if b.Header == nil {
		return ""
	}
	return b.Header.Name()
}

func (b *Group) Children() []Node {
	return children(append(append([]Node{b.Header}, b.Body...), b.End)...)
}
func (b *Group) Span() Span { return blockSpan(b.Children()) }

func (b *Group) Rewrite(fn func(Node) []Node) {
	b.Header = rewriteOne(b.Header, fn)
	b.Body = rewriteBody(b.Body, fn)
	b.End = rewriteOne(b.End, fn)
}

func (b *Group) Validate(*ValidationContext) {
	if !executable(b.Body) {
		b.AddError("GROUP cannot be empty.")
	}
	if b.End == nil {
		b.AddError("GROUP must have closing END.")
	}
}
