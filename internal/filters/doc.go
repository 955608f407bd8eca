// Package filters implements the PDF stream filters needed to read form
// templates and write composed documents.
//
// Decoding covers what real templates use:
//
//   - FlateDecode, with TIFF (2) and PNG (10-15) predictors
//   - ASCIIHexDecode and ASCII85Decode
//   - RunLengthDecode
//   - CCITTFaxDecode, for scanned forms, through golang.org/x/image/ccitt
//
// Encoding is limited to Flate, which is all the writer emits:
//
//	compressed, err := filters.FlateEncode(content)
//
// Filters that take parameters receive the stream's /DecodeParms as
// [Params], with PDF objects converted to plain Go values:
//
//	decoded, err := filters.FlateDecode(data, filters.Params{"Predictor": 12, "Columns": 5})
package filters
