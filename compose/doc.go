// Package compose places overlays on template pages.
//
// Overlays are laid out on a US Letter canvas and shrunk uniformly to fit
// inside a margin (a quarter inch by default) before they are drawn; the
// template page itself is never scaled and its MediaBox is left alone.
//
// Long forms copy every template page per competitor and label the first.
// Short forms fit two competitors on one page: the first slot sits in the
// top half as laid out, the second is the same layout turned a half turn so
// it reads from the opposite edge once the sheet is cut.
package compose
