// Package labels writes RTF label sheets: one contest label per judge and
// competitor pair, and Avery 8163 folder labels for the judges.
//
// RTF is emitted as text with only backslash and braces escaped; characters
// outside ASCII use \u escapes so word processors show them regardless of
// the system code page.
package labels
