// Package overlay lays out the text printed over a judging form.
//
// Every form carries three lines: the judge at the top right, the
// competitor below it on the left, and the contest centered underneath.
// Long forms print "{number}. {name}" for the judge; the two-up short form
// prints the judge number at 36pt to the left of the name so it can be read
// across a table. Chorus long forms add the director below the competitor.
//
// Text is set in unembedded Helvetica and Helvetica-Bold and measured with
// their AFM widths, so right and center alignment match what a viewer draws.
package overlay
