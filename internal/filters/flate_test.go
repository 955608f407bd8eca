package filters

import (
	"bytes"
	"testing"
)

func mustEncode(t *testing.T, data []byte) []byte {
	t.Helper()
	out, err := FlateEncode(data)
	if err != nil {
		t.Fatalf("FlateEncode failed: %v", err)
	}
	return out
}

func TestFlateRoundTrip(t *testing.T) {
	inputs := [][]byte{
		nil,
		[]byte("q 1 0 0 1 0 0 cm BT /F1 12 Tf 50 745 Td (10. Test Quartet) Tj ET Q"),
		bytes.Repeat([]byte{0x00, 0xff}, 4096),
	}

	for _, in := range inputs {
		decoded, err := FlateDecode(mustEncode(t, in), nil)
		if err != nil {
			t.Fatalf("FlateDecode failed: %v", err)
		}
		if !bytes.Equal(decoded, in) {
			t.Errorf("round trip mismatch for %d bytes", len(in))
		}
	}
}

func TestFlateDecodePredictors(t *testing.T) {
	png := func(cols int) Params {
		return Params{"Predictor": 12, "Columns": cols, "Colors": 1, "BitsPerComponent": 8}
	}

	tests := []struct {
		name   string
		raw    []byte
		params Params
		want   []byte
	}{
		{"predictor 1 is identity", []byte{1, 2, 3}, Params{"Predictor": 1}, []byte{1, 2, 3}},
		{"png none", []byte{0, 1, 2, 3, 0, 4, 5, 6}, png(3), []byte{1, 2, 3, 4, 5, 6}},
		{"png sub", []byte{1, 10, 10, 10}, png(3), []byte{10, 20, 30}},
		{"png up", []byte{0, 10, 20, 30, 2, 5, 5, 5}, png(3), []byte{10, 20, 30, 15, 25, 35}},
		// xref stream rows: type, 2-byte offset, gen; second row is Up-encoded
		{"png up xref rows", []byte{2, 1, 0, 15, 0, 2, 0, 0, 16, 0}, png(4), []byte{1, 0, 15, 0, 1, 0, 31, 0}},
		{"png sub 16 bit", []byte{1, 1, 0, 1, 0}, Params{"Predictor": 11, "Columns": 2, "BitsPerComponent": 16}, []byte{1, 0, 2, 0}},
		{"png average", []byte{0, 10, 20, 3, 2, 2}, png(2), []byte{10, 20, 7, 15}},
		{"png paeth", []byte{0, 10, 20, 4, 1, 1}, png(2), []byte{10, 20, 11, 21}},
		{"tiff 2", []byte{10, 10, 10, 10}, Params{"Predictor": 2, "Columns": 4, "Colors": 1, "BitsPerComponent": 8}, []byte{10, 20, 30, 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FlateDecode(mustEncode(t, tt.raw), tt.params)
			if err != nil {
				t.Fatalf("FlateDecode failed: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFlateDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		params Params
	}{
		{"not zlib", []byte("plain text"), nil},
		{"unsupported predictor", mustEncode(t, []byte{1, 2}), Params{"Predictor": 7}},
		{"odd bits per component", mustEncode(t, []byte{0, 1, 2}), Params{"Predictor": 10, "Columns": 1, "BitsPerComponent": 3}},
		{"tiff 16 bit", mustEncode(t, []byte{0, 1}), Params{"Predictor": 2, "Columns": 1, "BitsPerComponent": 16}},
		{"unknown png filter", mustEncode(t, []byte{9, 1}), Params{"Predictor": 10, "Columns": 1}},
		{"png ragged rows", mustEncode(t, []byte{0, 1, 2, 3, 0}), Params{"Predictor": 10, "Columns": 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FlateDecode(tt.data, tt.params); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestPaethPredictor(t *testing.T) {
	tests := []struct {
		a, b, c byte
		want    byte
	}{
		{10, 20, 15, 15},
		{15, 20, 10, 20},
		{0, 0, 0, 0},
		{200, 10, 10, 200},
	}

	for _, tt := range tests {
		if got := paethPredictor(tt.a, tt.b, tt.c); got != tt.want {
			t.Errorf("paethPredictor(%d, %d, %d) = %d, want %d", tt.a, tt.b, tt.c, got, tt.want)
		}
	}
}

func TestFlateDecodeTruncated(t *testing.T) {
	full := mustEncode(t, bytes.Repeat([]byte("BT (x) Tj ET\n"), 200))
	got, err := FlateDecode(full[:len(full)-4], nil)
	if err != nil {
		t.Fatalf("missing checksum: %v", err)
	}
	if !bytes.HasPrefix(got, []byte("BT (x) Tj ET")) {
		t.Errorf("got %q", got[:min(len(got), 20)])
	}
}

func TestParams(t *testing.T) {
	params := Params{"Columns": 5, "Colors": 3.0, "Bad": "x", "BlackIs1": true, "Align": "true"}

	if got := params.Int("Columns", 1); got != 5 {
		t.Errorf("Columns = %d, want 5", got)
	}
	if got := params.Int("Colors", 1); got != 3 {
		t.Errorf("Colors = %d, want 3", got)
	}
	if got := params.Int("Bad", 8); got != 8 {
		t.Errorf("Bad = %d, want default 8", got)
	}
	if got := Params(nil).Int("Columns", 1); got != 1 {
		t.Errorf("nil params = %d, want 1", got)
	}
	if !params.Bool("BlackIs1", false) {
		t.Error("BlackIs1 should be true")
	}
	if params.Bool("Align", false) {
		t.Error("non-bool value should fall back to the default")
	}
}
