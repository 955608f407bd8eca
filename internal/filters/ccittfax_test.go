package filters

import "testing"

func TestCCITTFaxDecodeErrors(t *testing.T) {
	if _, err := CCITTFaxDecode([]byte{0xff}, Params{"Columns": 0}); err == nil {
		t.Error("expected error for zero columns")
	}
}
