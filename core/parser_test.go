package core

import (
	"fmt"
	"io"
	"reflect"
	"testing"
)

func TestParseObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Object
	}{
		{"integer", "42", Int(42)},
		{"negative real", "-.5", Real(-0.5)},
		{"bool", "false", Bool(false)},
		{"null", "null", Null{}},
		{"literal string escapes", `(a\(b\)\\c\n\101)`, String("a(b)\\c\nA")},
		{"nested parens", "(x (y) z)", String("x (y) z")},
		{"hex string odd length", "<41 42 4>", String("AB@")},
		{"name with hex escape", "/Helvetica#2DBold", Name("Helvetica-Bold")},
		{"reference", "12 0 R", IndirectRef{Number: 12}},
		{"array with references", "[1 0 R 2 3]", Array{IndirectRef{Number: 1}, Int(2), Int(3)}},
		{"dict", "<< /Type /Page /MediaBox [0 0 612 792] % comment\n /Rotate 0 >>", Dict{
			"Type":     Name("Page"),
			"MediaBox": Array{Int(0), Int(0), Int(612), Int(792)},
			"Rotate":   Int(0),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewParser([]byte(tt.input)).ParseObject()
			if err != nil {
				t.Fatalf("ParseObject() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseObject() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParseObjectErrors(t *testing.T) {
	for _, input := range []string{"", "[1 2", "<< /A >>", "<< 1 2 >>", "endobj"} {
		if _, err := NewParser([]byte(input)).ParseObject(); err == nil {
			t.Errorf("ParseObject(%q) expected error", input)
		}
	}
}

func TestParseIndirectObjectStream(t *testing.T) {
	tests := []struct {
		name string
		eol  string
	}{
		{"lf", "\n"},
		{"crlf", "\r\n"},
		{"cr", "\r"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "4 0 obj\n<< /Length 5 >>\nstream" + tt.eol + "q\nQ\n\nendstream\nendobj\n"
			obj, err := NewParser([]byte(input)).ParseIndirectObject()
			if err != nil {
				t.Fatalf("ParseIndirectObject() error = %v", err)
			}
			if obj.Ref.Number != 4 {
				t.Errorf("Ref = %v, want 4 0 R", obj.Ref)
			}
			s, ok := obj.Object.(*Stream)
			if !ok {
				t.Fatalf("object is %T, want *Stream", obj.Object)
			}
			if string(s.Data) != "q\nQ\n\n" {
				t.Errorf("Data = %q", s.Data)
			}
		})
	}
}

type lengthResolver map[int]Object

func (r lengthResolver) ResolveReference(ref IndirectRef) (Object, error) {
	if obj, ok := r[ref.Number]; ok {
		return obj, nil
	}
	return nil, fmt.Errorf("object %d not found", ref.Number)
}

func TestParseStreamIndirectLength(t *testing.T) {
	input := "5 0 obj\n<< /Length 6 0 R >>\nstream\nBT ET\nendstream\nendobj\n"

	p := NewParser([]byte(input))
	p.SetReferenceResolver(lengthResolver{6: Int(5)})
	obj, err := p.ParseIndirectObject()
	if err != nil {
		t.Fatalf("ParseIndirectObject() error = %v", err)
	}
	if got := string(obj.Object.(*Stream).Data); got != "BT ET" {
		t.Errorf("Data = %q, want %q", got, "BT ET")
	}

	// without a resolver the body still runs to endstream
	obj, err = NewParser([]byte(input)).ParseIndirectObject()
	if err != nil {
		t.Fatalf("ParseIndirectObject() without resolver error = %v", err)
	}
	if got := string(obj.Object.(*Stream).Data); got != "BT ET" {
		t.Errorf("Data = %q, want %q", got, "BT ET")
	}
}

func TestParseStreamWrongLength(t *testing.T) {
	for _, length := range []string{"2", "400", "-1", "/Five"} {
		input := "5 0 obj\n<< /Length " + length + " >>\nstream\r\nBT ET\r\nendstream\nendobj\n"
		obj, err := NewParser([]byte(input)).ParseIndirectObject()
		if err != nil {
			t.Fatalf("Length %s: error = %v", length, err)
		}
		if got := string(obj.Object.(*Stream).Data); got != "BT ET" {
			t.Errorf("Length %s: Data = %q, want %q", length, got, "BT ET")
		}
	}

	input := "5 0 obj\n<< /Length 5 >>\nstream\nBT ET"
	if _, err := NewParser([]byte(input)).ParseIndirectObject(); err == nil {
		t.Error("expected error for a stream without endstream")
	}
}

func TestParseIndirectObjectErrors(t *testing.T) {
	for _, input := range []string{
		"1 0 R",
		"1 obj 2 endobj",
		"1 0 obj 2",
		"1 0 obj [1] stream\nxx\nendstream endobj",
		"-1 0 obj null endobj",
	} {
		if _, err := NewParser([]byte(input)).ParseIndirectObject(); err == nil {
			t.Errorf("ParseIndirectObject(%q) expected error", input)
		}
	}

	obj, err := NewParser([]byte("3 0 obj endobj")).ParseIndirectObject()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := obj.Object.(Null); !ok {
		t.Errorf("empty object = %#v, want null", obj.Object)
	}
}

func TestParseDictDropsNull(t *testing.T) {
	got, err := NewParser([]byte("<< /A null /B 1 >>")).ParseObject()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, Dict{"B": Int(1)}) {
		t.Errorf("ParseObject() = %#v", got)
	}
}

func TestNextKeywords(t *testing.T) {
	p := NewParser([]byte("1 0 0 1 72 700 cm /F1 12 Tf (Hi) ' T* 4 0 R"))
	var words []string
	var objs []Object
	for {
		obj, kw, err := p.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if kw != "" {
			words = append(words, kw)
			continue
		}
		objs = append(objs, obj)
	}
	if want := []string{"cm", "Tf", "'", "T*"}; !reflect.DeepEqual(words, want) {
		t.Errorf("keywords = %q, want %q", words, want)
	}
	if len(objs) != 10 || objs[9] != (IndirectRef{Number: 4}) {
		t.Errorf("objects = %#v", objs)
	}
}

func TestTail(t *testing.T) {
	p := NewParser([]byte("ID\r\n\x00\x01 EI"))
	if _, kw, err := p.Next(); err != nil || kw != "ID" {
		t.Fatalf("Next() = %q, %v", kw, err)
	}
	p.SkipEOL()
	tail, err := p.Tail()
	if err != nil {
		t.Fatal(err)
	}
	if string(tail) != "\x00\x01 EI" {
		t.Errorf("Tail() = %q", tail)
	}
	p.Skip(3)
	if _, kw, _ := p.Next(); kw != "EI" {
		t.Errorf("after Skip: %q, want EI", kw)
	}

	p = NewParser([]byte("1 2"))
	p.Next()
	if _, err := p.Tail(); err == nil {
		t.Error("Tail() with a token read ahead should fail")
	}
}
