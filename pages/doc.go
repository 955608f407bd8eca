// Package pages flattens a PDF page tree into its pages.
//
// [Collect] walks from the catalog's /Pages root to the leaves. Resources,
// MediaBox, CropBox and Rotate may be set on any ancestor; each [Page]
// carries what it inherited, and [Page.Flatten] writes those attributes
// into a standalone copy of the page dictionary so a template page can be
// moved into a generated document on its own.
//
// Indirect references are followed through an [ObjectResolver], which the
// reader package implements.
package pages
