// Package model holds the page geometry shared by layout and composition:
// points, rectangles and affine matrices in PDF user space, with the origin
// at the bottom-left of the page and y growing upward.
//
// Matrices compose left to right. m.Then(n) applies m first, which is the
// order a cm operator in a content stream concatenates onto the CTM.
package model
