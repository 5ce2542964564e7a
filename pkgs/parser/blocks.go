package parser

import "github.com/aledsdavies/rfparse/pkgs/model"

type blockParser interface {
	handles(s model.Statement) bool
	// parse consumes s and returns a parser for the block it opens, if any.
	parse(s model.Statement) blockParser
}

// fileParser opens a section for every header. Data before the first header
// goes to an implicit comment section.
type fileParser struct {
	file *model.File
}

func (*fileParser) handles(model.Statement) bool { return true }

func (p *fileParser) parse(s model.Statement) blockParser {
	var section model.Section
	if header, ok := s.(*model.SectionHeader); ok {
		section = model.NewSection(header)
	} else {
		section = model.NewSection(nil, s)
	}
	p.file.Sections = append(p.file.Sections, section)
	return &sectionParser{section: section}
}

type sectionParser struct {
	section model.Section
}

func (*sectionParser) handles(s model.Statement) bool {
	_, header := s.(*model.SectionHeader)
	return !header
}

func (p *sectionParser) parse(s model.Statement) blockParser {
	switch s := s.(type) {
	case *model.TestCaseName:
		if _, ok := p.section.(*model.TestCaseSection); ok {
			test := &model.TestCase{Header: s}
			p.section.Append(test)
			return &bodyParser{body: &test.Body}
		}
	case *model.KeywordName:
		if _, ok := p.section.(*model.KeywordSection); ok {
			kw := &model.Keyword{Header: s}
			p.section.Append(kw)
			return &bodyParser{body: &kw.Body}
		}
	}
	p.section.Append(s)
	return nil
}

// bodyParser fills the body of a test, keyword or control structure and
// opens nested control structures.
type bodyParser struct {
	body *[]model.Node
}

func (*bodyParser) handles(s model.Statement) bool {
	switch s.(type) {
	case *model.SectionHeader, *model.TestCaseName, *model.KeywordName:
		return false
	}
	return true
}

func (p *bodyParser) parse(s model.Statement) blockParser {
	var block model.Node
	var next blockParser
	switch s := s.(type) {
	case *model.ForHeader:
		b := &model.For{Header: s}
		block, next = b, newNestedParser(&b.Body, &b.End, true)
	case *model.WhileHeader:
		b := &model.While{Header: s}
		block, next = b, newNestedParser(&b.Body, &b.End, true)
	case *model.GroupHeader:
		b := &model.Group{Header: s}
		block, next = b, newNestedParser(&b.Body, &b.End, true)
	case *model.IfHeader, *model.InlineIfHeader:
		b := &model.If{Header: s}
		block, next = b, newIfParser(b, true)
	case *model.TryHeader:
		b := &model.Try{Header: s}
		block, next = b, newTryParser(b, true)
	default:
		*p.body = append(*p.body, s)
		return nil
	}
	*p.body = append(*p.body, block)
	return next
}

// nestedParser parses a block closed by END. Branch parsers of IF and TRY
// leave the END to the parser of the first branch.
type nestedParser struct {
	bodyParser
	end       **model.End
	handleEnd bool
	// branch opens the next branch of an IF or TRY, or returns nil.
	branch func(model.Statement) blockParser
}

func newNestedParser(body *[]model.Node, end **model.End, handleEnd bool) *nestedParser {
	return &nestedParser{bodyParser: bodyParser{body: body}, end: end, handleEnd: handleEnd}
}

func (p *nestedParser) handles(s model.Statement) bool {
	if *p.end != nil {
		return false
	}
	if _, ok := s.(*model.End); ok {
		return p.handleEnd
	}
	return p.bodyParser.handles(s)
}

func (p *nestedParser) parse(s model.Statement) blockParser {
	if end, ok := s.(*model.End); ok {
		*p.end = end
		return nil
	}
	if p.branch != nil {
		if next := p.branch(s); next != nil {
			return next
		}
	}
	return p.bodyParser.parse(s)
}

func newIfParser(b *model.If, handleEnd bool) *nestedParser {
	p := newNestedParser(&b.Body, &b.End, handleEnd)
	p.branch = func(s model.Statement) blockParser {
		switch s.(type) {
		case *model.ElseIfHeader, *model.ElseHeader:
			b.Orelse = &model.If{Header: s}
			return newIfParser(b.Orelse, false)
		}
		return nil
	}
	return p
}

func newTryParser(b *model.Try, handleEnd bool) *nestedParser {
	p := newNestedParser(&b.Body, &b.End, handleEnd)
	p.branch = func(s model.Statement) blockParser {
		switch s.(type) {
		case *model.ExceptHeader, *model.ElseHeader, *model.FinallyHeader:
			b.Next = &model.Try{Header: s}
			return newTryParser(b.Next, false)
		}
		return nil
	}
	return p
}
