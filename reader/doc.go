// Package reader opens PDF files and resolves their objects.
//
// The whole file is held in memory; templates are small and are read many
// times per run. Cross-reference tables, cross-reference streams, hybrid
// files and incremental updates are merged so the newest definition of each
// object wins. Objects stored in object streams are resolved transparently.
// When the cross-reference data is missing or unreadable the reader rebuilds
// it by scanning for object headers; [Reader.Repaired] reports this.
//
//	r, err := reader.Open("MUS_Long.pdf")
//	if err != nil {
//	    return err
//	}
//	page, err := r.GetPage(0)
//
// Encrypted documents are rejected with [ErrEncrypted].
//
// Reader implements [pages.ObjectResolver], so the pages it returns can be
// handed to package writer for import.
package reader
