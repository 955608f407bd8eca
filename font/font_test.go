package font

import (
	"bytes"
	"math"
	"testing"
)

func TestStringWidth(t *testing.T) {
	tests := []struct {
		font *Font
		s    string
		size float64
		want float64
	}{
		{Helvetica, "", 12, 0},
		{Helvetica, "10. Test Quartet", 12, 86.712},
		{HelveticaBold, "Jane Smith", 16, 85.36},
		{HelveticaBold, "1", 36, 20.016},
		{Helvetica, "Ré", 10, 12.78},
	}

	for _, tt := range tests {
		got := tt.font.StringWidth(tt.s, tt.size)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s StringWidth(%q, %v) = %v, want %v", tt.font.BaseFont, tt.s, tt.size, got, tt.want)
		}
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		in   string
		want []byte
	}{
		{"Test Quartet", []byte("Test Quartet")},
		{"Renée", []byte{'R', 'e', 'n', 0xe9, 'e'}},
		{"Rene\u0301e", []byte{'R', 'e', 'n', 0xe9, 'e'}},
		{"A–B", []byte{'A', 0x96, 'B'}},
		{"名", []byte{'?'}},
		{"a\tb", []byte{'a', '?', 'b'}},
	}

	for _, tt := range tests {
		if got := Helvetica.Encode(tt.in); !bytes.Equal(got, tt.want) {
			t.Errorf("Encode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStandard(t *testing.T) {
	f, err := Standard("Helvetica-Bold")
	if err != nil || f != HelveticaBold {
		t.Errorf("Standard(Helvetica-Bold) = %v, %v", f, err)
	}
	if _, err := Standard("Comic Sans"); err == nil {
		t.Error("expected error for unknown font")
	}

	d := Helvetica.Dict()
	if name, _ := d.GetName("BaseFont"); name != "Helvetica" {
		t.Errorf("BaseFont = %v", name)
	}
	if enc, _ := d.GetName("Encoding"); enc != "WinAnsiEncoding" {
		t.Errorf("Encoding = %v", enc)
	}
}
