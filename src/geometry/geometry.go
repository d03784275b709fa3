// Package geometry maps board positions and stacked pieces to canvas pixels
// and back. Everything here is pure.
package geometry

import (
	"math"

	"secondbest/src/base"
)

const (
	RadiusX      = 0.358 // horizontal ellipse radius, fraction of canvas size
	RadiusYRatio = 0.8   // vertical radius relative to RadiusX

	PieceBase = 0.12 // offset from cell center to the bottom piece, in piece widths
	PieceStep = 0.19 // height of one stacked piece, in piece widths

	HitTop    = 0.97 // hit area above the cell center, in piece widths
	HitBottom = 0.42 // hit area below the cell center, in piece widths
)

type Point struct {
	X, Y float64
}

type Rect struct {
	X, Y, W, H float64
}

// Contains treats all four edges as inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

func angle(idx int) float64 {
	return -3*math.Pi/8 + math.Pi/4*float64(idx)
}

func PositionCenter(canvas float64, idx int) Point {
	rx := RadiusX * canvas
	ry := rx * RadiusYRatio
	a := angle(idx)
	return Point{
		X: canvas/2 + rx*math.Cos(a),
		Y: canvas/2 + ry*math.Sin(a),
	}
}

// PieceAnchor is the center of the piece at height (0 = bottom) of a stack.
// lift moves the piece further up by that many piece widths.
func PieceAnchor(canvas, pieceWidth float64, idx, height int, lift float64) Point {
	c := PositionCenter(canvas, idx)
	dy := (PieceBase+PieceStep*float64(height))*pieceWidth + lift*pieceWidth
	return Point{X: c.X, Y: c.Y - dy}
}

func CellHitRect(canvas, pieceWidth float64, idx int) Rect {
	c := PositionCenter(canvas, idx)
	top := HitTop * pieceWidth
	return Rect{
		X: c.X - pieceWidth/2,
		Y: c.Y - top,
		W: pieceWidth,
		H: top + HitBottom*pieceWidth,
	}
}

// ResolveClick returns the lowest-index position whose hit rect contains the
// point, or false when the click misses every cell.
func ResolveClick(canvas, pieceWidth, x, y float64) (base.Position, bool) {
	for i := 0; i < base.PositionCount; i++ {
		if CellHitRect(canvas, pieceWidth, i).Contains(x, y) {
			return base.Position(i), true
		}
	}
	return base.NoPosition, false
}

// ScaleToWidth resizes (w, h) to the target width keeping the aspect ratio.
func ScaleToWidth(w, h, target float64) (float64, float64) {
	if w <= 0 {
		return target, 0
	}
	return target, target * h / w
}
