package core

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestStreamDecode(t *testing.T) {
	content := []byte("BT /F1 12 Tf 50 745 Td (10. Test Quartet) Tj ET")

	flate, err := NewFlateStream(Dict{"DecodeParms": Dict{"Predictor": Int(12)}}, content)
	if err != nil {
		t.Fatalf("NewFlateStream() error = %v", err)
	}
	if flate.Dict.Has("DecodeParms") {
		t.Error("NewFlateStream kept stale DecodeParms")
	}
	if n, _ := flate.Dict.GetInt("Length"); int(n) != len(flate.Data) {
		t.Errorf("Length = %d, want %d", n, len(flate.Data))
	}

	chained := &Stream{
		Dict: Dict{"Filter": Array{Name("AHx"), Name("Fl")}},
		Data: []byte(hex.EncodeToString(flate.Data) + ">"),
	}

	tests := []struct {
		name   string
		stream *Stream
		want   []byte
	}{
		{"unfiltered", NewStream(nil, content), content},
		{"flate", flate, content},
		{"ascii hex", &Stream{Dict: Dict{"Filter": Name("ASCIIHexDecode")}, Data: []byte("48 69>")}, []byte("Hi")},
		{"filter chain", chained, content},
		{"run length", &Stream{Dict: Dict{"Filter": Name("RL")}, Data: []byte{1, 'H', 'i', 128}}, []byte("Hi")},
		{"jpeg passthrough", &Stream{Dict: Dict{"Filter": Name("DCTDecode")}, Data: []byte{0xff, 0xd8}}, []byte{0xff, 0xd8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.stream.Decode()
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Decode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStreamDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		filter Object
	}{
		{"unsupported filter", Name("LZWDecode")},
		{"filter not a name", Int(3)},
		{"array element not a name", Array{Int(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Stream{Dict: Dict{"Filter": tt.filter}, Data: []byte("x")}
			if _, err := s.Decode(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestStreamDecodeParms(t *testing.T) {
	raw := []byte{0, 10, 20, 2, 1, 1}
	flate, err := NewFlateStream(nil, raw)
	if err != nil {
		t.Fatal(err)
	}
	png := Dict{"Predictor": Int(12), "Columns": Int(2)}

	tests := []struct {
		name   string
		filter Object
		parms  Object
	}{
		{"single dictionary", Name("FlateDecode"), png},
		{"array aligned with filters", Array{Name("FlateDecode")}, Array{png}},
		{"null entry for an unparameterized filter", Array{Name("AHx"), Name("Fl")}, Array{Null{}, png}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := flate.Data
			if arr, ok := tt.filter.(Array); ok && len(arr) == 2 {
				data = []byte(hex.EncodeToString(data))
			}
			s := &Stream{Dict: Dict{"Filter": tt.filter, "DecodeParms": tt.parms}, Data: data}
			got, err := s.Decode()
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if want := []byte{10, 20, 11, 21}; !bytes.Equal(got, want) {
				t.Errorf("Decode() = %v, want %v", got, want)
			}
		})
	}
}
