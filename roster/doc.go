// Package roster holds the judge and competitor tables of a contest and the
// rules that normalize them.
//
// An imported judge roster is balanced, so every category seats the same
// number of Official judges (short panels receive "Absent <CAT> Judge"
// placeholders numbered 0 and not printed), and then numbered: Officials
// 1..n across MUS, PER and SNG, practice judges from 50 within each
// category.
//
// Rosters are read from CSV or from the first table of an HTML export.
package roster
