// Package core reads and writes the object layer of PDF files.
//
// An [Object] is one of [Null], [Bool], [Int], [Real], [String], [Name],
// [Array], [Dict], *[Stream] or [IndirectRef]. Dictionaries never hold a
// null value: the parser drops such keys, so absent and null read the same.
//
// Files are read whole and parsed from byte slices. A [Scanner] splits the
// input into tokens and a [Parser] builds objects from them: one object, a
// "num gen obj ... endobj" definition, or the mixed run of operands and
// operators found in content streams.
//
// [XRefParser] reads both xref tables and xref streams and follows /Prev
// through incremental updates. [ObjectStream] unpacks /Type /ObjStm
// containers.
//
// [Stream.Decode] applies the stream's filter chain. FlateDecode,
// ASCIIHexDecode, ASCII85Decode, RunLengthDecode and CCITTFaxDecode are
// decoded; DCTDecode and JPXDecode data is returned as it is stored.
//
// [WriteObject] and [WriteIndirectObject] write PDF syntax with dictionary
// keys in sorted order, so the same document always serializes to the same
// bytes.
package core
