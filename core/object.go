package core

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Object is a PDF value: Null, Bool, Int, Real, String, Name, Array, Dict,
// *Stream or IndirectRef. String gives a debugging form, not PDF syntax;
// WriteObject produces the syntax.
type Object interface {
	fmt.Stringer
	pdfObject()
}

type (
	Null   struct{}
	Bool   bool
	Int    int64
	Real   float64
	String string // raw bytes; no text encoding is implied
	Name   string // without the leading slash
	Array  []Object
	Dict   map[string]Object
)

// Stream is a dictionary and the raw bytes between the stream and
// endstream keywords, still encoded.
type Stream struct {
	Dict Dict
	Data []byte
}

// IndirectRef is a "num gen R" reference.
type IndirectRef struct {
	Number     int
	Generation int
}

// IndirectObject is a "num gen obj ... endobj" definition.
type IndirectObject struct {
	Ref    IndirectRef
	Object Object
}

func (Null) pdfObject()        {}
func (Bool) pdfObject()        {}
func (Int) pdfObject()         {}
func (Real) pdfObject()        {}
func (String) pdfObject()      {}
func (Name) pdfObject()        {}
func (Array) pdfObject()       {}
func (Dict) pdfObject()        {}
func (*Stream) pdfObject()     {}
func (IndirectRef) pdfObject() {}

func (Null) String() string     { return "null" }
func (b Bool) String() string   { return strconv.FormatBool(bool(b)) }
func (i Int) String() string    { return strconv.FormatInt(int64(i), 10) }
func (r Real) String() string   { return strconv.FormatFloat(float64(r), 'f', -1, 64) }
func (s String) String() string { return string(s) }
func (n Name) String() string   { return "/" + string(n) }

func (a Array) String() string {
	parts := make([]string, len(a))
	for i, obj := range a {
		parts[i] = obj.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (d Dict) String() string {
	var b strings.Builder
	b.WriteString("<<")
	for i, key := range d.SortedKeys() {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "/%s %s", key, d[key])
	}
	b.WriteString(">>")
	return b.String()
}

func (s *Stream) String() string {
	return fmt.Sprintf("stream %s (%d bytes)", s.Dict, len(s.Data))
}

func (r IndirectRef) String() string {
	return fmt.Sprintf("%d %d R", r.Number, r.Generation)
}

// as reports obj as a T. A nil obj is never a T.
func as[T Object](obj Object) (T, bool) {
	v, ok := obj.(T)
	return v, ok
}

// Get returns element i, or nil when i is out of range.
func (a Array) Get(i int) Object {
	if i < 0 || i >= len(a) {
		return nil
	}
	return a[i]
}

func (a Array) GetInt(i int) (Int, bool)   { return as[Int](a.Get(i)) }
func (a Array) GetName(i int) (Name, bool) { return as[Name](a.Get(i)) }

// Get returns the value for key, or nil.
func (d Dict) Get(key string) Object { return d[key] }

func (d Dict) GetName(key string) (Name, bool)               { return as[Name](d[key]) }
func (d Dict) GetInt(key string) (Int, bool)                 { return as[Int](d[key]) }
func (d Dict) GetArray(key string) (Array, bool)             { return as[Array](d[key]) }
func (d Dict) GetString(key string) (String, bool)           { return as[String](d[key]) }
func (d Dict) GetIndirectRef(key string) (IndirectRef, bool) { return as[IndirectRef](d[key]) }

// GetNumber returns an Int or Real value as a float64.
func (d Dict) GetNumber(key string) (float64, bool) { return Number(d[key]) }

func (d Dict) Has(key string) bool {
	_, ok := d[key]
	return ok
}

func (d Dict) Delete(key string) { delete(d, key) }

// Keys returns the keys in no particular order.
func (d Dict) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	return keys
}

// SortedKeys returns the keys in byte order, which is how dictionaries are
// serialized.
func (d Dict) SortedKeys() []string {
	keys := d.Keys()
	slices.Sort(keys)
	return keys
}

// Number returns an Int or Real as a float64.
func Number(obj Object) (float64, bool) {
	switch v := obj.(type) {
	case Int:
		return float64(v), true
	case Real:
		return float64(v), true
	}
	return 0, false
}

// Clone deep-copies arrays and dictionaries. References are copied as they
// are, and a cloned stream gets its own dictionary but shares its data.
func Clone(obj Object) Object {
	switch v := obj.(type) {
	case Array:
		out := make(Array, len(v))
		for i, elem := range v {
			out[i] = Clone(elem)
		}
		return out
	case Dict:
		out := make(Dict, len(v))
		for k, val := range v {
			out[k] = Clone(val)
		}
		return out
	case *Stream:
		return &Stream{Dict: Clone(v.Dict).(Dict), Data: v.Data}
	}
	return obj
}
