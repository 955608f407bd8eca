package model

import (
	"math"
	"testing"
)

func nearPoint(a, b Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		in   Point
		want Point
	}{
		{"identity", Identity(), Point{3, 4}, Point{3, 4}},
		{"translate", Translate(10, -5), Point{1, 1}, Point{11, -4}},
		{"scale", Scale(2, 3), Point{1, 1}, Point{2, 3}},
		{"quarter turn", QuarterTurns(1), Point{1, 0}, Point{0, 1}},
		{"half turn", QuarterTurns(2), Point{3, 4}, Point{-3, -4}},
		{"clockwise", QuarterTurns(-1), Point{1, 0}, Point{0, -1}},
		{"full turn", QuarterTurns(4), Point{3, 4}, Point{3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Apply(tt.in); !nearPoint(got, tt.want) {
				t.Errorf("Apply(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestThenOrder(t *testing.T) {
	// scale first, then move
	m := Scale(2, 2).Then(Translate(10, 0))
	if got := m.Apply(Point{1, 1}); !nearPoint(got, Point{12, 2}) {
		t.Errorf("got %v, want (12, 2)", got)
	}

	flip := QuarterTurns(2).Then(Translate(LetterWidth, LetterHeight))
	if got := flip.Apply(Point{100, 700}); !nearPoint(got, Point{512, 92}) {
		t.Errorf("half turn on the page = %v", got)
	}
	if !flip.Then(flip).IsIdentity() {
		t.Error("two half turns are not the identity")
	}
}

func TestApplyRect(t *testing.T) {
	r := XYWH(10, 20, 30, 40)
	got := QuarterTurns(2).Then(Translate(100, 100)).ApplyRect(r)
	if want := XYWH(60, 40, 30, 40); got != want {
		t.Errorf("ApplyRect() = %+v, want %+v", got, want)
	}
}

func TestRect(t *testing.T) {
	page := XYWH(0, 0, LetterWidth, LetterHeight)
	inner := page.Inset(18)
	if inner.LLX != 18 || inner.URY != LetterHeight-18 || inner.Width() != LetterWidth-36 {
		t.Errorf("Inset(18) = %+v", inner)
	}
	if !page.Contains(inner) || inner.Contains(page) {
		t.Error("Contains() wrong")
	}
	if !inner.ContainsPoint(Point{306, 396}) || inner.ContainsPoint(Point{5, 5}) {
		t.Error("ContainsPoint() wrong")
	}

	u := Rect{}.Union(XYWH(1, 1, 1, 1)).Union(XYWH(5, 0, 1, 1))
	if u != (Rect{1, 0, 6, 2}) {
		t.Errorf("Union() = %+v", u)
	}
	if !XYWH(0, 0, 3, 0).Empty() || page.Empty() {
		t.Error("Empty() wrong")
	}
	if got := Bound(Point{3, 1}, Point{1, 3}); got != (Rect{1, 1, 3, 3}) {
		t.Errorf("Bound() = %+v", got)
	}
}
