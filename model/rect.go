package model

// Rect is a rectangle given by its lower-left and upper-right corners, the
// way PDF writes boxes.
type Rect struct {
	LLX, LLY, URX, URY float64
}

// XYWH returns the rectangle with lower-left corner (x, y) and the given size.
func XYWH(x, y, w, h float64) Rect {
	return Rect{x, y, x + w, y + h}
}

// Bound returns the smallest rectangle holding pts, or the zero Rect.
func Bound(pts ...Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{pts[0].X, pts[0].Y, pts[0].X, pts[0].Y}
	for _, p := range pts[1:] {
		r.LLX, r.URX = min(r.LLX, p.X), max(r.URX, p.X)
		r.LLY, r.URY = min(r.LLY, p.Y), max(r.URY, p.Y)
	}
	return r
}

func (r Rect) Width() float64  { return r.URX - r.LLX }
func (r Rect) Height() float64 { return r.URY - r.LLY }

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.URX <= r.LLX || r.URY <= r.LLY
}

// Inset moves every edge d toward the center.
func (r Rect) Inset(d float64) Rect {
	return Rect{r.LLX + d, r.LLY + d, r.URX - d, r.URY - d}
}

// tolerance for rounding left by matrix products
const eps = 1e-6

// Contains reports whether o lies inside r.
func (r Rect) Contains(o Rect) bool {
	return o.LLX >= r.LLX-eps && o.URX <= r.URX+eps &&
		o.LLY >= r.LLY-eps && o.URY <= r.URY+eps
}

func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.LLX && p.X <= r.URX && p.Y >= r.LLY && p.Y <= r.URY
}

// Union returns the smallest rectangle holding both. The zero Rect counts
// as nothing, so a Union can be accumulated from it.
func (r Rect) Union(o Rect) Rect {
	switch {
	case r == Rect{}:
		return o
	case o == Rect{}:
		return r
	}
	return Rect{min(r.LLX, o.LLX), min(r.LLY, o.LLY), max(r.URX, o.URX), max(r.URY, o.URY)}
}
