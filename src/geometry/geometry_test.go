package geometry

import (
	"math"
	"testing"

	"secondbest/src/base"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestResolveClickAtCenter(t *testing.T) {
	sizes := []struct{ canvas, piece float64 }{
		{350, 50},
		{700, 100},
		{500, 60},
	}
	for _, sz := range sizes {
		for i := 0; i < base.PositionCount; i++ {
			c := PositionCenter(sz.canvas, i)
			got, ok := ResolveClick(sz.canvas, sz.piece, c.X, c.Y)
			if !ok || got.Index() != i {
				t.Errorf("canvas %.0f: center of %d resolved to %v (ok=%v)", sz.canvas, i, got, ok)
			}
		}
	}
}

func TestResolveClickMiss(t *testing.T) {
	if p, ok := ResolveClick(350, 50, 175, 175); ok {
		t.Fatalf("canvas center should miss, got %s", p)
	}
	if _, ok := ResolveClick(350, 50, -10, -10); ok {
		t.Fatal("outside click should miss")
	}
}

func TestPositionCenterEllipse(t *testing.T) {
	const canvas = 350.0
	rx := RadiusX * canvas
	ry := rx * RadiusYRatio
	for i := 0; i < base.PositionCount; i++ {
		c := PositionCenter(canvas, i)
		dx := (c.X - canvas/2) / rx
		dy := (c.Y - canvas/2) / ry
		if !near(dx*dx+dy*dy, 1) {
			t.Errorf("position %d is off the ellipse: %v", i, c)
		}
	}
	// index 0 and 7 mirror each other across the vertical axis, above center
	a, b := PositionCenter(canvas, 0), PositionCenter(canvas, 7)
	if !near(a.Y, b.Y) || !near(a.X-canvas/2, canvas/2-b.X) || a.Y >= canvas/2 {
		t.Errorf("unexpected top pair: %v %v", a, b)
	}
}

func TestPieceAnchor(t *testing.T) {
	const canvas, pw = 350.0, 50.0
	c := PositionCenter(canvas, 3)

	p0 := PieceAnchor(canvas, pw, 3, 0, 0)
	if !near(p0.X, c.X) || !near(c.Y-p0.Y, 0.12*pw) {
		t.Fatalf("bottom piece anchor %v for center %v", p0, c)
	}
	p2 := PieceAnchor(canvas, pw, 3, 2, 0)
	if !near(c.Y-p2.Y, (0.12+0.38)*pw) {
		t.Fatalf("height 2 offset = %v", c.Y-p2.Y)
	}
	lifted := PieceAnchor(canvas, pw, 3, 2, 0.2)
	if !near(p2.Y-lifted.Y, 0.2*pw) {
		t.Fatalf("lift offset = %v", p2.Y-lifted.Y)
	}
}

func TestCellHitRect(t *testing.T) {
	const canvas, pw = 350.0, 50.0
	c := PositionCenter(canvas, 5)
	r := CellHitRect(canvas, pw, 5)
	if !near(r.W, pw) || !near(r.H, 1.39*pw) {
		t.Fatalf("rect size %vx%v", r.W, r.H)
	}
	if !near(r.X+r.W/2, c.X) || !near(c.Y-r.Y, 0.97*pw) {
		t.Fatalf("rect %v not placed around %v", r, c)
	}
	if !r.Contains(r.X, r.Y) || !r.Contains(r.X+r.W, r.Y+r.H) {
		t.Fatal("edges must be inclusive")
	}
}

func TestHitRectsDoNotOverlap(t *testing.T) {
	const canvas, pw = 350.0, 50.0
	for i := 0; i < base.PositionCount; i++ {
		for j := i + 1; j < base.PositionCount; j++ {
			a, b := CellHitRect(canvas, pw, i), CellHitRect(canvas, pw, j)
			overlap := a.X <= b.X+b.W && b.X <= a.X+a.W && a.Y <= b.Y+b.H && b.Y <= a.Y+a.H
			if overlap {
				t.Errorf("rects %d and %d overlap", i, j)
			}
		}
	}
}

func TestScaleToWidth(t *testing.T) {
	w, h := ScaleToWidth(200, 100, 50)
	if w != 50 || h != 25 {
		t.Fatalf("got %vx%v", w, h)
	}
	w, h = ScaleToWidth(0, 100, 50)
	if w != 50 || h != 0 {
		t.Fatalf("degenerate source: %vx%v", w, h)
	}
}
