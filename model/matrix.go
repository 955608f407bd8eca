package model

// Points per inch in PDF user space, and the US Letter page every template
// is laid out on.
const (
	PointsPerInch = 72.0
	LetterWidth   = 8.5 * PointsPerInch
	LetterHeight  = 11 * PointsPerInch
)

// Point is a position in user space.
type Point struct {
	X, Y float64
}

// Matrix is an affine transform [a b c d e f] taking (x, y) to
// (a*x + c*y + e, b*x + d*y + f).
type Matrix [6]float64

func Identity() Matrix { return Matrix{1, 0, 0, 1, 0, 0} }

func Translate(tx, ty float64) Matrix { return Matrix{1, 0, 0, 1, tx, ty} }

func Scale(sx, sy float64) Matrix { return Matrix{sx, 0, 0, sy, 0, 0} }

// QuarterTurns rotates counterclockwise by n quarter turns about the origin.
// Negative n turns clockwise. The entries are exact.
func QuarterTurns(n int) Matrix {
	switch ((n % 4) + 4) % 4 {
	case 1:
		return Matrix{0, 1, -1, 0, 0, 0}
	case 2:
		return Matrix{-1, 0, 0, -1, 0, 0}
	case 3:
		return Matrix{0, -1, 1, 0, 0, 0}
	}
	return Identity()
}

// Then returns the transform that applies m and then n.
func (m Matrix) Then(n Matrix) Matrix {
	return Matrix{
		m[0]*n[0] + m[1]*n[2],
		m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2],
		m[2]*n[1] + m[3]*n[3],
		m[4]*n[0] + m[5]*n[2] + n[4],
		m[4]*n[1] + m[5]*n[3] + n[5],
	}
}

func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// ApplyRect returns the smallest rectangle holding the transformed corners
// of r.
func (m Matrix) ApplyRect(r Rect) Rect {
	return Bound(
		m.Apply(Point{r.LLX, r.LLY}),
		m.Apply(Point{r.URX, r.LLY}),
		m.Apply(Point{r.LLX, r.URY}),
		m.Apply(Point{r.URX, r.URY}),
	)
}

func (m Matrix) IsIdentity() bool { return m == Identity() }
