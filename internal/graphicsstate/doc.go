// Package graphicsstate tracks the PDF graphics state through a content
// stream to find where text is drawn.
//
// State follows the CTM through q/Q and cm, and the text matrices
// through BT, Tm, Td and the show-text operators. Trace runs a parsed
// content stream through it and reports each string with its device space
// position, which is how generated pages are checked against their layout:
//
//	ops, _ := contentstream.Parse(data)
//	runs, err := graphicsstate.Trace(ops, widths)
//	for _, r := range runs {
//	    fmt.Println(string(r.Text), r.Box)
//	}
package graphicsstate
