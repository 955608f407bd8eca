// Package writer builds PDF files.
//
// A [Document] collects indirect objects and pages and serializes them with
// a classic cross-reference table:
//
//	doc := writer.New()
//	page := doc.NewPage(612, 792)
//	name := page.AddResource("Font", "F", doc.AddFont(font.Helvetica))
//	page.AppendContent([]byte("BT /" + name + " 12 Tf 72 720 Td (Hello) Tj ET"))
//	data, err := doc.Bytes()
//
// # Importing pages
//
// [Document.ImportPage] deep-copies a page read by package reader, giving
// every object it reaches a new number. Copies are memoized per source, so
// importing the same template page a hundred times stores its fonts and
// content streams once and only the page dictionaries differ.
//
// Imported pages share resource dictionaries with each other. [Page.Resources]
// and [Page.ResourceCategory] hand out page-local copies so adding a font to
// one page never leaks into another.
package writer
