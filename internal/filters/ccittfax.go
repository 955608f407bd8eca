package filters

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/image/ccitt"
)

// CCITTFaxDecode decodes Group 3 or Group 4 fax data, as found in scanned
// templates. K below zero selects Group 4. Without Rows the image height is
// taken from the data. Output rows are packed one bit per pixel, 0 for
// black unless BlackIs1 is set.
func CCITTFaxDecode(data []byte, params Params) ([]byte, error) {
	columns := params.Int("Columns", 1728)
	if columns < 1 {
		return nil, fmt.Errorf("CCITTFaxDecode: invalid Columns %d", columns)
	}
	rows := params.Int("Rows", 0)
	if rows <= 0 {
		rows = ccitt.AutoDetectHeight
	}
	format := ccitt.Group3
	if params.Int("K", 0) < 0 {
		format = ccitt.Group4
	}

	r := ccitt.NewReader(bytes.NewReader(data), ccitt.MSB, format, columns, rows, &ccitt.Options{
		Invert: params.Bool("BlackIs1", false),
		Align:  params.Bool("EncodedByteAlign", false),
	})
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("CCITTFaxDecode: %w", err)
	}
	return out, nil
}
