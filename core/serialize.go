package core

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// FormatNumber formats a real for PDF syntax: fixed point, at most five
// decimals, no trailing zeros and no exponent.
func FormatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "0"
	}
	s := strconv.FormatFloat(f, 'f', 5, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

// EscapeString returns s as a PDF literal string including the parentheses.
func EscapeString(s string) string {
	var buf bytes.Buffer
	buf.Grow(len(s) + 2)
	buf.WriteByte('(')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '(', ')', '\\':
			buf.WriteByte('\\')
			buf.WriteByte(c)
		case '\r':
			buf.WriteString(`\r`)
		case '\n':
			buf.WriteString(`\n`)
		default:
			buf.WriteByte(c)
		}
	}
	buf.WriteByte(')')
	return buf.String()
}

// EscapeName returns n in PDF name syntax with the leading slash. Bytes
// outside the regular printable range and delimiters are written as #xx.
func EscapeName(n string) string {
	var buf bytes.Buffer
	buf.WriteByte('/')
	for i := 0; i < len(n); i++ {
		c := n[i]
		if c < '!' || c > '~' || c == '#' || isDelimiter(c) {
			fmt.Fprintf(&buf, "#%02X", c)
			continue
		}
		buf.WriteByte(c)
	}
	return buf.String()
}

// WriteObject serializes obj in PDF syntax. Dictionary keys are written in
// sorted order so output is deterministic. A stream's /Length is rewritten to
// match its data.
func WriteObject(w io.Writer, obj Object) error {
	switch v := obj.(type) {
	case nil, Null:
		_, err := io.WriteString(w, "null")
		return err
	case Bool:
		_, err := io.WriteString(w, v.String())
		return err
	case Int:
		_, err := io.WriteString(w, v.String())
		return err
	case Real:
		_, err := io.WriteString(w, FormatNumber(float64(v)))
		return err
	case String:
		_, err := io.WriteString(w, EscapeString(string(v)))
		return err
	case Name:
		_, err := io.WriteString(w, EscapeName(string(v)))
		return err
	case IndirectRef:
		_, err := fmt.Fprintf(w, "%d %d R", v.Number, v.Generation)
		return err
	case Array:
		if _, err := io.WriteString(w, "["); err != nil {
			return err
		}
		for i, elem := range v {
			if i > 0 {
				if _, err := io.WriteString(w, " "); err != nil {
					return err
				}
			}
			if err := WriteObject(w, elem); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "]")
		return err
	case Dict:
		if _, err := io.WriteString(w, "<<"); err != nil {
			return err
		}
		for _, k := range v.SortedKeys() {
			if _, err := io.WriteString(w, EscapeName(k)+" "); err != nil {
				return err
			}
			if err := WriteObject(w, v[k]); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, ">>")
		return err
	case *Stream:
		v.Dict["Length"] = Int(len(v.Data))
		if err := WriteObject(w, v.Dict); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\nstream\n"); err != nil {
			return err
		}
		if _, err := w.Write(v.Data); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\nendstream")
		return err
	default:
		return fmt.Errorf("cannot serialize %T", obj)
	}
}

// WriteIndirectObject writes "num gen obj ... endobj" followed by a newline.
func WriteIndirectObject(w io.Writer, ref IndirectRef, obj Object) error {
	if _, err := fmt.Fprintf(w, "%d %d obj\n", ref.Number, ref.Generation); err != nil {
		return err
	}
	if err := WriteObject(w, obj); err != nil {
		return fmt.Errorf("object %d: %w", ref.Number, err)
	}
	_, err := io.WriteString(w, "\nendobj\n")
	return err
}
