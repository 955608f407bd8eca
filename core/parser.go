package core

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// ReferenceResolver loads indirect objects. The parser needs one to read
// streams whose /Length is an indirect reference.
type ReferenceResolver interface {
	ResolveReference(ref IndirectRef) (Object, error)
}

// Parser builds objects from the tokens of a Scanner.
type Parser struct {
	s        *Scanner
	ahead    []Token
	resolver ReferenceResolver
}

// NewParser returns a parser reading data from the start.
func NewParser(data []byte) *Parser {
	return &Parser{s: NewScanner(data)}
}

// SetReferenceResolver sets the resolver used for indirect stream lengths.
func (p *Parser) SetReferenceResolver(resolver ReferenceResolver) {
	p.resolver = resolver
}

func (p *Parser) next() (Token, error) {
	if len(p.ahead) > 0 {
		tok := p.ahead[0]
		p.ahead = p.ahead[1:]
		return tok, nil
	}
	return p.s.Next()
}

// peek returns the token i places ahead without consuming it.
func (p *Parser) peek(i int) (Token, error) {
	for len(p.ahead) <= i {
		tok, err := p.s.Next()
		if err != nil {
			return Token{}, err
		}
		p.ahead = append(p.ahead, tok)
	}
	return p.ahead[i], nil
}

// Tail returns the input after the last token consumed. It is only
// meaningful while no token has been read ahead, which holds right after a
// keyword.
func (p *Parser) Tail() ([]byte, error) {
	if len(p.ahead) > 0 {
		return nil, fmt.Errorf("parser has %d tokens buffered", len(p.ahead))
	}
	return p.s.Data()[p.s.Offset():], nil
}

// Skip advances n bytes past the Tail position.
func (p *Parser) Skip(n int) {
	p.s.Seek(p.s.Offset() + n)
}

// SkipEOL consumes the end of line at the Tail position.
func (p *Parser) SkipEOL() {
	p.s.SkipEOL()
}

// Next returns the next object, or the keyword when the next token is a
// bare keyword other than true, false or null. It returns io.EOF at the end
// of the input.
func (p *Parser) Next() (Object, string, error) {
	tok, err := p.next()
	if err != nil {
		return nil, "", err
	}
	switch tok.Kind {
	case TokenEOF:
		return nil, "", io.EOF
	case TokenNumber:
		if ref, ok := p.reference(tok); ok {
			return ref, "", nil
		}
		return number(tok)
	case TokenString:
		return String(tok.Value), "", nil
	case TokenName:
		return Name(tok.Value), "", nil
	case TokenArrayOpen:
		arr, err := p.array()
		return arr, "", err
	case TokenDictOpen:
		d, err := p.dict()
		return d, "", err
	case TokenKeyword:
		switch kw := string(tok.Value); kw {
		case "true":
			return Bool(true), "", nil
		case "false":
			return Bool(false), "", nil
		case "null":
			return Null{}, "", nil
		default:
			return nil, kw, nil
		}
	}
	return nil, "", &SyntaxError{Offset: tok.Offset, Msg: "unexpected " + tok.Kind.String()}
}

// reference completes "num gen R" when tok is its first number. It looks
// one token ahead, and a second only when the first is an integer, so the
// lookahead never runs past a keyword into binary data.
func (p *Parser) reference(tok Token) (IndirectRef, bool) {
	num, ok := unsigned(tok)
	if !ok {
		return IndirectRef{}, false
	}
	gen, err := p.peek(0)
	if err != nil {
		return IndirectRef{}, false
	}
	g, ok := unsigned(gen)
	if !ok {
		return IndirectRef{}, false
	}
	r, err := p.peek(1)
	if err != nil || r.Kind != TokenKeyword || string(r.Value) != "R" {
		return IndirectRef{}, false
	}
	p.ahead = p.ahead[2:]
	return IndirectRef{Number: num, Generation: g}, true
}

func unsigned(tok Token) (int, bool) {
	if tok.Kind != TokenNumber {
		return 0, false
	}
	n, err := strconv.Atoi(string(tok.Value))
	return n, err == nil && n >= 0
}

func number(tok Token) (Object, string, error) {
	if i, err := strconv.ParseInt(string(tok.Value), 10, 64); err == nil {
		return Int(i), "", nil
	}
	f, err := strconv.ParseFloat(string(tok.Value), 64)
	if err != nil {
		return nil, "", &SyntaxError{Offset: tok.Offset, Msg: fmt.Sprintf("invalid number %q", tok.Value)}
	}
	return Real(f), "", nil
}

// ParseObject returns the next object. A keyword is an error.
func (p *Parser) ParseObject() (Object, error) {
	offset := p.offset()
	obj, kw, err := p.Next()
	switch {
	case err == io.EOF:
		return nil, &SyntaxError{Offset: offset, Msg: "unexpected end of input"}
	case err != nil:
		return nil, err
	case kw != "":
		return nil, &SyntaxError{Offset: offset, Msg: "unexpected keyword " + kw}
	}
	return obj, nil
}

// offset is the position of the next token, for error messages.
func (p *Parser) offset() int {
	if len(p.ahead) > 0 {
		return p.ahead[0].Offset
	}
	return p.s.Offset()
}

func (p *Parser) array() (Array, error) {
	arr := Array{}
	for {
		tok, err := p.peek(0)
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case TokenArrayClose:
			p.ahead = p.ahead[1:]
			return arr, nil
		case TokenEOF:
			return nil, &SyntaxError{Offset: tok.Offset, Msg: "unterminated array"}
		}
		obj, err := p.ParseObject()
		if err != nil {
			return nil, err
		}
		arr = append(arr, obj)
	}
}

func (p *Parser) dict() (Dict, error) {
	d := Dict{}
	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case TokenDictClose:
			return d, nil
		case TokenName:
		case TokenEOF:
			return nil, &SyntaxError{Offset: tok.Offset, Msg: "unterminated dictionary"}
		default:
			return nil, &SyntaxError{Offset: tok.Offset, Msg: "dictionary key is a " + tok.Kind.String()}
		}

		if next, err := p.peek(0); err == nil && next.Kind == TokenDictClose {
			return nil, &SyntaxError{Offset: next.Offset, Msg: fmt.Sprintf("key /%s has no value", tok.Value)}
		}
		v, err := p.ParseObject()
		if err != nil {
			return nil, fmt.Errorf("/%s: %w", tok.Value, err)
		}
		// a null value is the same as an absent key
		if _, null := v.(Null); !null {
			d[string(tok.Value)] = v
		}
	}
}

// ParseIndirectObject reads "num gen obj ... endobj", including a stream
// body if there is one.
func (p *Parser) ParseIndirectObject() (*IndirectObject, error) {
	var ref IndirectRef
	for i, dst := range []*int{&ref.Number, &ref.Generation} {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		n, ok := unsigned(tok)
		if !ok {
			what := [...]string{"object number", "generation"}[i]
			return nil, &SyntaxError{Offset: tok.Offset, Msg: fmt.Sprintf("expected %s, got %s", what, tok.Kind)}
		}
		*dst = n
	}
	if err := p.keyword("obj"); err != nil {
		return nil, err
	}

	var obj Object = Null{}
	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokenKeyword || string(tok.Value) != "endobj" {
		if obj, err = p.ParseObject(); err != nil {
			return nil, fmt.Errorf("object %d: %w", ref.Number, err)
		}
	}

	tok, err = p.next()
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokenKeyword && string(tok.Value) == "stream" {
		dict, ok := obj.(Dict)
		if !ok {
			return nil, &SyntaxError{Offset: tok.Offset, Msg: "stream without a dictionary"}
		}
		if obj, err = p.stream(dict); err != nil {
			return nil, fmt.Errorf("object %d: %w", ref.Number, err)
		}
		if tok, err = p.next(); err != nil {
			return nil, err
		}
	}
	if tok.Kind != TokenKeyword || string(tok.Value) != "endobj" {
		return nil, &SyntaxError{Offset: tok.Offset, Msg: fmt.Sprintf("object %d: expected endobj, got %s", ref.Number, tok.Kind)}
	}
	return &IndirectObject{Ref: ref, Object: obj}, nil
}

func (p *Parser) keyword(want string) error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok.Kind != TokenKeyword || string(tok.Value) != want {
		return &SyntaxError{Offset: tok.Offset, Msg: fmt.Sprintf("expected %s, got %s %q", want, tok.Kind, tok.Value)}
	}
	return nil
}

var endstream = []byte("endstream")

// stream reads the body that follows the stream keyword. A /Length that
// does not land on endstream is ignored and the body runs to the keyword.
func (p *Parser) stream(dict Dict) (*Stream, error) {
	p.s.SkipEOL()
	data := p.s.Data()
	start := p.s.Offset()

	length, lerr := p.streamLength(dict)
	if end := start + length; lerr == nil && end <= len(data) && endsAt(data, end) {
		p.s.Seek(end)
	} else {
		i := bytes.Index(data[start:], endstream)
		if i < 0 {
			if lerr != nil {
				return nil, lerr
			}
			return nil, &SyntaxError{Offset: start, Msg: "stream has no endstream"}
		}
		length = trimEOL(data[start : start+i])
		p.s.Seek(start + i)
	}
	body := data[start : start+length]

	if err := p.keyword("endstream"); err != nil {
		return nil, err
	}
	return &Stream{Dict: dict, Data: body}, nil
}

func (p *Parser) streamLength(dict Dict) (int, error) {
	obj := dict.Get("Length")
	if ref, ok := obj.(IndirectRef); ok {
		if p.resolver == nil {
			return 0, fmt.Errorf("stream /Length %v needs a resolver", ref)
		}
		var err error
		if obj, err = p.resolver.ResolveReference(ref); err != nil {
			return 0, fmt.Errorf("stream /Length: %w", err)
		}
	}
	n, ok := obj.(Int)
	if !ok || n < 0 {
		return 0, fmt.Errorf("invalid stream /Length %v", obj)
	}
	return int(n), nil
}

// endsAt reports whether endstream follows offset, allowing whitespace.
func endsAt(data []byte, offset int) bool {
	for offset < len(data) && isWhitespace(data[offset]) {
		offset++
	}
	return bytes.HasPrefix(data[offset:], endstream)
}

// trimEOL returns the length of body without one trailing end of line.
func trimEOL(body []byte) int {
	n := len(body)
	if n > 0 && body[n-1] == '\n' {
		n--
	}
	if n > 0 && body[n-1] == '\r' {
		n--
	}
	return n
}
