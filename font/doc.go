// Package font provides metrics and text encoding for the standard PDF
// fonts used to set overlay text.
//
// Only Helvetica and Helvetica-Bold are carried. Both are referenced by name
// and never embedded, so a [Font] knows its advance widths, its WinAnsi
// encoding and the resource dictionary that names it:
//
//	w := font.HelveticaBold.StringWidth("Jane Smith", 16) // points
//	b := font.Helvetica.Encode("Renée")                   // WinAnsi bytes
package font
