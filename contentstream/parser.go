package contentstream

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/tsawler/judgeforms/core"
)

// Parser splits a content stream into operations.
type Parser struct {
	p *core.Parser
}

// NewParser returns a parser for data.
func NewParser(data []byte) *Parser {
	return &Parser{p: core.NewParser(data)}
}

// Parse returns every operation in order. Operands left over at the end of
// the stream are an error.
func (p *Parser) Parse() ([]Operation, error) {
	ops := []Operation{}
	var operands []core.Object
	for {
		obj, op, err := p.p.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch op {
		case "":
			operands = append(operands, obj)
		case "BI":
			if len(operands) > 0 {
				return nil, fmt.Errorf("%d operands before BI", len(operands))
			}
			img, err := p.inlineImage()
			if err != nil {
				return nil, err
			}
			ops = append(ops, img)
		default:
			ops = append(ops, Operation{Operator: op, Operands: operands})
			operands = nil
		}
	}

	if len(operands) > 0 {
		return nil, fmt.Errorf("%d operands without an operator at end of stream", len(operands))
	}
	return ops, nil
}

// Parse is shorthand for NewParser(data).Parse().
func Parse(data []byte) ([]Operation, error) {
	return NewParser(data).Parse()
}

// inlineImage reads "key value ... ID data EI" after a BI operator. The
// result is a BI operation whose operands are the image dictionary and the
// raw image data.
func (p *Parser) inlineImage() (Operation, error) {
	dict := core.Dict{}
	for {
		obj, op, err := p.p.Next()
		if err == io.EOF {
			return Operation{}, errors.New("inline image has no ID")
		}
		if err != nil {
			return Operation{}, err
		}
		if op == "ID" {
			break
		}
		key, ok := obj.(core.Name)
		if !ok {
			return Operation{}, fmt.Errorf("inline image key is %v %s", obj, op)
		}
		if dict[string(key)], err = p.p.ParseObject(); err != nil {
			return Operation{}, fmt.Errorf("inline image /%s: %w", key, err)
		}
	}

	tail, err := p.p.Tail()
	if err != nil {
		return Operation{}, err
	}
	// one whitespace byte separates ID from the data
	if len(tail) > 0 && isSpace(tail[0]) {
		p.p.Skip(1)
		tail = tail[1:]
	}

	end := endOfImage(tail)
	if end < 0 {
		return Operation{}, errors.New("inline image has no EI")
	}
	data := bytes.Clone(tail[:end])
	p.p.Skip(end)
	if _, op, err := p.p.Next(); err != nil || op != "EI" {
		return Operation{}, errors.New("inline image has no EI")
	}
	return Operation{Operator: "BI", Operands: []core.Object{dict, core.String(data)}}, nil
}

// endOfImage finds the EI that closes the image data: EI preceded by
// whitespace and followed by whitespace or the end of the stream. It returns
// the length of the data, without the whitespace before EI.
func endOfImage(tail []byte) int {
	for from := 0; ; {
		i := bytes.Index(tail[from:], []byte("EI"))
		if i < 0 {
			return -1
		}
		i += from
		if i == 0 && (len(tail) == 2 || isSpace(tail[2])) {
			return 0
		}
		if i > 0 && isSpace(tail[i-1]) && (i+2 == len(tail) || isSpace(tail[i+2])) {
			return i - 1
		}
		from = i + 2
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t' || c == '\f' || c == 0
}
