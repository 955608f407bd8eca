package contentstream

import (
	"bytes"
	"strings"

	"github.com/tsawler/judgeforms/core"
)

// Operation is an operator and the operands that precede it. An inline
// image is a BI operation with two operands: its dictionary and its data.
type Operation struct {
	Operator string        // The operator (e.g., "Tj", "Tm", "q")
	Operands []core.Object // The operands
}

// Op builds an operation.
func Op(operator string, operands ...core.Object) Operation {
	return Operation{Operator: operator, Operands: operands}
}

// Nums converts numbers to operands.
func Nums(values ...float64) []core.Object {
	out := make([]core.Object, len(values))
	for i, v := range values {
		out[i] = core.Real(v)
	}
	return out
}

// String formats the operation the way it appears in a content stream.
func (o Operation) String() string {
	var b strings.Builder
	writeOperation(&b, o)
	return b.String()
}

type byteWriter interface {
	WriteString(string) (int, error)
	WriteByte(byte) error
}

func writeOperation(b byteWriter, o Operation) {
	if o.Operator == "BI" && len(o.Operands) == 2 {
		writeInlineImage(b, o)
		return
	}
	for _, operand := range o.Operands {
		writeOperand(b, operand)
		b.WriteByte(' ')
	}
	b.WriteString(o.Operator)
}

func writeOperand(b byteWriter, obj core.Object) {
	var buf bytes.Buffer
	// WriteObject only fails for types that cannot appear in content
	_ = core.WriteObject(&buf, obj)
	b.WriteString(buf.String())
}

// writeInlineImage writes a BI operation back as BI ... ID data EI.
func writeInlineImage(b byteWriter, o Operation) {
	dict, _ := o.Operands[0].(core.Dict)
	data, _ := o.Operands[1].(core.String)
	b.WriteString("BI")
	for _, k := range dict.SortedKeys() {
		b.WriteByte(' ')
		writeOperand(b, core.Name(k))
		b.WriteByte(' ')
		writeOperand(b, dict[k])
	}
	b.WriteString(" ID ")
	b.WriteString(string(data))
	b.WriteString("\nEI")
}

// Encode serializes operations one per line.
func Encode(ops []Operation) []byte {
	var buf bytes.Buffer
	for _, o := range ops {
		writeOperation(&buf, o)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
