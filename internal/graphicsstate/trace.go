package graphicsstate

import (
	"fmt"

	"github.com/tsawler/judgeforms/contentstream"
	"github.com/tsawler/judgeforms/core"
	"github.com/tsawler/judgeforms/font"
	"github.com/tsawler/judgeforms/model"
)

// FontFunc returns the metrics for a font resource name, or nil when they
// are unknown.
type FontFunc func(resource string) *font.Font

// Metrics assumed for fonts a FontFunc does not know, in 1000ths of an em.
const (
	fallbackWidth   = 500
	fallbackAscent  = 750
	fallbackDescent = -250
)

// TextRun is one string drawn by a show-text operator.
type TextRun struct {
	Text   []byte
	Font   string
	Size   float64
	Origin model.Point // baseline start in device space
	Box    model.Rect  // device space box from descender to ascender
}

// Trace interprets ops and reports where every string is drawn. Operators
// that do not affect text placement are ignored.
func Trace(ops []contentstream.Operation, fonts FontFunc) ([]TextRun, error) {
	t := &tracer{gs: New(), fonts: fonts}
	for i, op := range ops {
		if err := t.apply(op); err != nil {
			return t.runs, fmt.Errorf("operation %d (%s): %w", i, op.Operator, err)
		}
	}
	return t.runs, nil
}

type tracer struct {
	gs    *State
	fonts FontFunc
	runs  []TextRun
}

func (t *tracer) apply(op contentstream.Operation) error {
	gs := t.gs
	switch op.Operator {
	case "q":
		gs.Push()
	case "Q":
		return gs.Pop()
	case "cm":
		m, err := matrixOperand(op.Operands)
		if err != nil {
			return err
		}
		gs.Concat(m)
	case "BT":
		gs.BeginText()
	case "Tf":
		if len(op.Operands) != 2 {
			return fmt.Errorf("want 2 operands, got %d", len(op.Operands))
		}
		name, _ := op.Operands[0].(core.Name)
		size, ok := core.Number(op.Operands[1])
		if !ok {
			return fmt.Errorf("font size %v", op.Operands[1])
		}
		gs.Text.Font, gs.Text.Size = string(name), size
	case "Tm":
		m, err := matrixOperand(op.Operands)
		if err != nil {
			return err
		}
		gs.SetTextMatrix(m)
	case "Td", "TD":
		nums, err := numbers(op.Operands, 2)
		if err != nil {
			return err
		}
		if op.Operator == "TD" {
			gs.Text.Leading = -nums[1]
		}
		gs.MoveLine(nums[0], nums[1])
	case "TL":
		nums, err := numbers(op.Operands, 1)
		if err != nil {
			return err
		}
		gs.Text.Leading = nums[0]
	case "Ts":
		nums, err := numbers(op.Operands, 1)
		if err != nil {
			return err
		}
		gs.Text.Rise = nums[0]
	case "T*":
		gs.NextLine()
	case "Tj", "'", "\"":
		if op.Operator != "Tj" {
			gs.NextLine()
		}
		if len(op.Operands) == 0 {
			return fmt.Errorf("missing string operand")
		}
		s, ok := op.Operands[len(op.Operands)-1].(core.String)
		if !ok {
			return fmt.Errorf("string operand is %T", op.Operands[len(op.Operands)-1])
		}
		t.show([]byte(s))
	case "TJ":
		if len(op.Operands) != 1 {
			return fmt.Errorf("want 1 operand, got %d", len(op.Operands))
		}
		arr, _ := op.Operands[0].(core.Array)
		for _, elem := range arr {
			if s, ok := elem.(core.String); ok {
				t.show([]byte(s))
			} else if n, ok := core.Number(elem); ok {
				gs.Advance(-n * gs.Text.Size / 1000)
			}
		}
	}
	return nil
}

func (t *tracer) show(text []byte) {
	gs := t.gs
	size := gs.Text.Size

	var f *font.Font
	if t.fonts != nil {
		f = t.fonts(gs.Text.Font)
	}
	ascent, descent := float64(fallbackAscent), float64(fallbackDescent)
	units := float64(fallbackWidth * len(text))
	if f != nil {
		ascent, descent = f.Ascent, f.Descent
		units = 0
		for _, c := range text {
			units += f.CodeWidth(c)
		}
	}

	width := units * size / 1000
	m := gs.TextToDevice()
	t.runs = append(t.runs, TextRun{
		Text:   text,
		Font:   gs.Text.Font,
		Size:   size,
		Origin: m.Apply(model.Point{}),
		Box:    m.ApplyRect(model.Rect{LLY: descent * size / 1000, URX: width, URY: ascent * size / 1000}),
	})
	gs.Advance(width)
}

func numbers(operands []core.Object, n int) ([]float64, error) {
	if len(operands) != n {
		return nil, fmt.Errorf("want %d operands, got %d", n, len(operands))
	}
	out := make([]float64, n)
	for i, o := range operands {
		v, ok := core.Number(o)
		if !ok {
			return nil, fmt.Errorf("operand %d is %T, not a number", i, o)
		}
		out[i] = v
	}
	return out, nil
}

func matrixOperand(operands []core.Object) (model.Matrix, error) {
	nums, err := numbers(operands, 6)
	if err != nil {
		return model.Matrix{}, err
	}
	return model.Matrix{nums[0], nums[1], nums[2], nums[3], nums[4], nums[5]}, nil
}
