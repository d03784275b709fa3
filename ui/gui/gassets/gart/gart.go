// Package gart paints the built-in board images with gg. The shapes follow
// the board geometry so the painted cells line up with the hit areas.
package gart

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"secondbest/src/base"
	"secondbest/src/geometry"
	"secondbest/src/render"
)

// art is painted at twice the canvas resolution and scaled down when drawn
const supersample = 2

var (
	boardFill  = color.RGBA{0xd9, 0xc3, 0x9a, 0xff}
	boardEdge  = color.RGBA{0x8a, 0x6a, 0x3c, 0xff}
	cellFill   = color.RGBA{0xc4, 0xa8, 0x78, 0xff}
	blackTop   = color.RGBA{0x3a, 0x3a, 0x3a, 0xff}
	blackSide  = color.RGBA{0x18, 0x18, 0x18, 0xff}
	whiteTop   = color.RGBA{0xfa, 0xfa, 0xf4, 0xff}
	whiteSide  = color.RGBA{0xc8, 0xc8, 0xbe, 0xff}
	cellMark   = color.RGBA{0x22, 0x88, 0xcc, 0xff}
	pieceMark  = color.RGBA{0xf0, 0xa0, 0x10, 0xff}
	bannerFill = color.RGBA{0xc0, 0x22, 0x22, 0xe6}
	bannerText = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// Paint returns the built-in image for img at the given board metrics.
func Paint(img render.Image, p render.Params) image.Image {
	switch img {
	case render.ImgBoard:
		return board(p)
	case render.ImgPieceBlack:
		return piece(p, blackTop, blackSide)
	case render.ImgPieceWhite:
		return piece(p, whiteTop, whiteSide)
	case render.ImgCellFrame:
		return cellFrame(p)
	case render.ImgPieceFrame:
		return pieceFrame(p)
	case render.ImgSecondBest:
		return banner(p)
	default:
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
}

func setColor(dc *gg.Context, c color.RGBA) {
	dc.SetRGBA255(int(c.R), int(c.G), int(c.B), int(c.A))
}

func board(p render.Params) image.Image {
	size := p.Canvas * supersample
	dc := gg.NewContext(int(size), int(size))

	rx := geometry.RadiusX*size + p.CellWidth*supersample*0.7
	ry := geometry.RadiusX*geometry.RadiusYRatio*size + p.CellWidth*supersample*0.6
	setColor(dc, boardFill)
	dc.DrawEllipse(size/2, size/2, rx, ry)
	dc.FillPreserve()
	setColor(dc, boardEdge)
	dc.SetLineWidth(3 * supersample)
	dc.Stroke()

	cw := p.CellWidth * supersample
	for i := 0; i < base.PositionCount; i++ {
		c := geometry.PositionCenter(size, i)
		setColor(dc, cellFill)
		dc.DrawEllipse(c.X, c.Y, cw/2, cw/4)
		dc.FillPreserve()
		setColor(dc, boardEdge)
		dc.SetLineWidth(supersample)
		dc.Stroke()
	}
	return dc.Image()
}

// piece is a flat disc seen from above at an angle: a top ellipse over a band.
func piece(p render.Params, top, side color.RGBA) image.Image {
	w := p.PieceWidth * supersample
	h := w * 0.8
	dc := gg.NewContext(int(w), int(h))

	rx, ry := w/2-supersample, h*0.3
	band := h - 2*ry - 2*supersample
	cy := ry + supersample

	setColor(dc, side)
	dc.DrawRectangle(w/2-rx, cy, 2*rx, band)
	dc.Fill()
	dc.DrawEllipse(w/2, cy+band, rx, ry)
	dc.Fill()

	setColor(dc, top)
	dc.DrawEllipse(w/2, cy, rx, ry)
	dc.FillPreserve()
	setColor(dc, side)
	dc.SetLineWidth(supersample)
	dc.Stroke()
	return dc.Image()
}

func cellFrame(p render.Params) image.Image {
	w := p.CellWidth * supersample
	h := w / 2
	dc := gg.NewContext(int(w), int(h))
	setColor(dc, cellMark)
	dc.SetLineWidth(3 * supersample)
	dc.DrawEllipse(w/2, h/2, w/2-2*supersample, h/2-2*supersample)
	dc.Stroke()
	return dc.Image()
}

func pieceFrame(p render.Params) image.Image {
	w := p.PieceWidth * supersample
	h := w * 0.8
	dc := gg.NewContext(int(w), int(h))
	setColor(dc, pieceMark)
	dc.SetLineWidth(2.5 * supersample)
	dc.DrawEllipse(w/2, h*0.3+supersample, w/2-2*supersample, h*0.3-supersample)
	dc.Stroke()
	return dc.Image()
}

func banner(p render.Params) image.Image {
	w := p.Canvas * supersample
	h := w / 4
	dc := gg.NewContext(int(w), int(h))
	setColor(dc, bannerFill)
	dc.DrawRoundedRectangle(0, 0, w, h, h/5)
	dc.Fill()

	setColor(dc, bannerText)
	dc.ScaleAbout(4*supersample, 4*supersample, w/2, h/2)
	dc.DrawStringAnchored("Second Best!", w/2, h/2, 0.5, 0.5)
	return dc.Image()
}
