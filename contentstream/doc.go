// Package contentstream reads and writes PDF content streams.
//
// A content stream is a sequence of operations, each a run of operands
// followed by an operator:
//
//	ops := []contentstream.Operation{
//	    contentstream.Op("BT"),
//	    contentstream.Op("Tf", core.Name("F1"), core.Real(12)),
//	    contentstream.Op("Tm", contentstream.Nums(1, 0, 0, 1, 50, 745)...),
//	    contentstream.Op("Tj", core.String("10. Test Quartet")),
//	    contentstream.Op("ET"),
//	}
//	data := contentstream.Encode(ops)
//
// [Parse] turns bytes back into operations, using the object syntax of the
// core package for operands. An inline image (BI ... ID ... EI) comes back
// as a single BI operation carrying the image dictionary and its raw data,
// and [Encode] writes it out the same way.
package contentstream
