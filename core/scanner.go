package core

import (
	"bytes"
	"fmt"
)

// TokenKind classifies a token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenNumber
	TokenString // literal or hex; Value holds the decoded bytes
	TokenName   // Value holds the decoded name without the slash
	TokenKeyword
	TokenArrayOpen
	TokenArrayClose
	TokenDictOpen
	TokenDictClose
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "end of input"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenName:
		return "name"
	case TokenKeyword:
		return "keyword"
	case TokenArrayOpen:
		return "'['"
	case TokenArrayClose:
		return "']'"
	case TokenDictOpen:
		return "'<<'"
	case TokenDictClose:
		return "'>>'"
	default:
		return "unknown token"
	}
}

// Token is one lexical unit of PDF syntax. A keyword is any run of regular
// characters that is not a number: obj, R, true, and content stream
// operators such as Tj, T* or ' all scan the same way.
type Token struct {
	Kind   TokenKind
	Value  []byte
	Offset int
}

// SyntaxError reports malformed PDF syntax at a byte offset.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg)
}

// Scanner splits PDF syntax held in memory into tokens. Whitespace and
// comments are skipped.
type Scanner struct {
	data []byte
	pos  int
}

// NewScanner returns a scanner positioned at the start of data.
func NewScanner(data []byte) *Scanner {
	return &Scanner{data: data}
}

// Offset returns the position of the next unread byte.
func (s *Scanner) Offset() int {
	return s.pos
}

// Seek moves to offset, clamped to the input.
func (s *Scanner) Seek(offset int) {
	s.pos = max(0, min(offset, len(s.data)))
}

// Data returns the whole input.
func (s *Scanner) Data() []byte {
	return s.data
}

// Next returns the next token. On error the position is left at the start
// of the offending token.
func (s *Scanner) Next() (Token, error) {
	s.skipSpace()
	start := s.pos
	if start >= len(s.data) {
		return Token{Kind: TokenEOF, Offset: start}, nil
	}

	tok, err := s.scan()
	if err != nil {
		s.pos = start
		return Token{}, err
	}
	tok.Offset = start
	return tok, nil
}

func (s *Scanner) scan() (Token, error) {
	switch c := s.data[s.pos]; c {
	case '[':
		s.pos++
		return Token{Kind: TokenArrayOpen}, nil
	case ']':
		s.pos++
		return Token{Kind: TokenArrayClose}, nil
	case '{', '}':
		// PostScript calculator functions
		s.pos++
		return Token{Kind: TokenKeyword, Value: s.data[s.pos-1 : s.pos]}, nil
	case '(':
		v, err := s.literal()
		return Token{Kind: TokenString, Value: v}, err
	case ')':
		return Token{}, s.errorf("unbalanced ')'")
	case '<':
		if s.at(1) == '<' {
			s.pos += 2
			return Token{Kind: TokenDictOpen}, nil
		}
		v, err := s.hex()
		return Token{Kind: TokenString, Value: v}, err
	case '>':
		if s.at(1) == '>' {
			s.pos += 2
			return Token{Kind: TokenDictClose}, nil
		}
		return Token{}, s.errorf("unexpected '>'")
	case '/':
		s.pos++
		v, err := s.name()
		return Token{Kind: TokenName, Value: v}, err
	}

	word := s.regular()
	if isNumeric(word) {
		return Token{Kind: TokenNumber, Value: word}, nil
	}
	return Token{Kind: TokenKeyword, Value: word}, nil
}

// at returns the byte i past the current position, or 0 past the end.
func (s *Scanner) at(i int) byte {
	if s.pos+i < len(s.data) {
		return s.data[s.pos+i]
	}
	return 0
}

func (s *Scanner) errorf(format string, args ...any) error {
	return &SyntaxError{Offset: s.pos, Msg: fmt.Sprintf(format, args...)}
}

func (s *Scanner) skipSpace() {
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		switch {
		case isWhitespace(c):
			s.pos++
		case c == '%':
			for s.pos < len(s.data) && s.data[s.pos] != '\n' && s.data[s.pos] != '\r' {
				s.pos++
			}
		default:
			return
		}
	}
}

// SkipEOL consumes the end of line after a stream or ID keyword: LF, CR LF
// or a lone CR. Spaces some producers put before it are skipped too.
func (s *Scanner) SkipEOL() {
	for s.pos < len(s.data) && s.data[s.pos] == ' ' {
		s.pos++
	}
	switch s.at(0) {
	case '\n':
		s.pos++
	case '\r':
		s.pos++
		if s.at(0) == '\n' {
			s.pos++
		}
	}
}

func (s *Scanner) regular() []byte {
	start := s.pos
	for s.pos < len(s.data) && !isWhitespace(s.data[s.pos]) && !isDelimiter(s.data[s.pos]) {
		s.pos++
	}
	return s.data[start:s.pos]
}

// literal decodes a parenthesized string, starting at '('.
func (s *Scanner) literal() ([]byte, error) {
	open := s.pos
	s.pos++
	var out []byte
	depth := 1
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		s.pos++
		switch c {
		case '(':
			depth++
		case ')':
			if depth--; depth == 0 {
				return out, nil
			}
		case '\r':
			// an unescaped end of line reads as a single LF
			if s.at(0) == '\n' {
				s.pos++
			}
			c = '\n'
		case '\\':
			if s.pos >= len(s.data) {
				continue
			}
			e := s.data[s.pos]
			s.pos++
			switch e {
			case 'n':
				c = '\n'
			case 'r':
				c = '\r'
			case 't':
				c = '\t'
			case 'b':
				c = '\b'
			case 'f':
				c = '\f'
			case '\r':
				if s.at(0) == '\n' {
					s.pos++
				}
				continue
			case '\n':
				continue
			default:
				if !isOctal(e) {
					c = e
					break
				}
				c = e - '0'
				for i := 0; i < 2 && isOctal(s.at(0)); i++ {
					c = c<<3 | (s.data[s.pos] - '0')
					s.pos++
				}
			}
		}
		out = append(out, c)
	}
	s.pos = open
	return nil, s.errorf("unterminated string")
}

// hex decodes a <...> string. An odd final digit is padded with 0.
func (s *Scanner) hex() ([]byte, error) {
	s.pos++
	var out []byte
	var hi byte
	odd := false
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if c == '>' {
			s.pos++
			if odd {
				out = append(out, hi<<4)
			}
			return out, nil
		}
		if isWhitespace(c) {
			s.pos++
			continue
		}
		v, ok := hexDigit(c)
		if !ok {
			return nil, s.errorf("invalid hex digit %q", c)
		}
		s.pos++
		if odd {
			out = append(out, hi<<4|v)
		} else {
			hi = v
		}
		odd = !odd
	}
	return nil, s.errorf("unterminated hex string")
}

// name decodes the characters of a name after the slash, expanding #xx.
func (s *Scanner) name() ([]byte, error) {
	raw := s.regular()
	if bytes.IndexByte(raw, '#') < 0 {
		return raw, nil
	}
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] != '#' {
			out = append(out, raw[i])
			continue
		}
		if i+2 >= len(raw) {
			return nil, s.errorf("truncated #escape in name")
		}
		h, ok1 := hexDigit(raw[i+1])
		l, ok2 := hexDigit(raw[i+2])
		if !ok1 || !ok2 {
			return nil, s.errorf("invalid #escape in name")
		}
		out = append(out, h<<4|l)
		i += 2
	}
	return out, nil
}

// isNumeric reports whether a run of regular characters is a PDF number:
// an optional sign, digits and at most one decimal point.
func isNumeric(word []byte) bool {
	if len(word) > 0 && (word[0] == '+' || word[0] == '-') {
		word = word[1:]
	}
	digits, dots := 0, 0
	for _, c := range word {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t' || c == '\f' || c == 0
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
