// Package render turns a session snapshot into an ordered list of image
// placements. It knows nothing about the graphics backend.
package render

import (
	"secondbest/src/base"
	"secondbest/src/geometry"
	"secondbest/src/session"
)

type Image uint8

const (
	ImgBoard Image = iota
	ImgPieceBlack
	ImgPieceWhite
	ImgCellFrame
	ImgPieceFrame
	ImgSecondBest
	ImageCount
)

func (i Image) String() string {
	switch i {
	case ImgBoard:
		return "board"
	case ImgPieceBlack:
		return "piece_black"
	case ImgPieceWhite:
		return "piece_white"
	case ImgCellFrame:
		return "cell_frame"
	case ImgPieceFrame:
		return "piece_frame"
	case ImgSecondBest:
		return "secondbest"
	default:
		return "unknown"
	}
}

type Layer uint8

const (
	LayerBackground Layer = iota
	LayerCellFrames
	LayerPieces
	LayerPieceFrames
	LayerBanner
)

// Size is the natural size of a source image.
type Size struct {
	W, H float64
}

// Sizes holds the natural size of every image, indexed by Image.
type Sizes [ImageCount]Size

// Params are the board metrics in canvas pixels.
type Params struct {
	Canvas     float64
	PieceWidth float64
	CellWidth  float64
	LiftRatio  float64
}

func DefaultParams() Params {
	return Params{Canvas: 350, PieceWidth: 50, CellWidth: 70, LiftRatio: 0.2}
}

// Op draws Image into the box (X, Y, W, H).
type Op struct {
	Layer    Layer
	Image    Image
	Position base.Position // NoPosition for full canvas layers
	X, Y     float64
	W, H     float64
}

// Build runs every stage in draw order.
func Build(st session.State, p Params, sz Sizes) []Op {
	ops := make([]Op, 0, 2+len(st.Pieces)+2*base.PositionCount)
	ops = Background(ops, p, sz)
	ops = CellFrames(ops, st.Overlay.Cells, p, sz)
	var tops [base.PositionCount]int
	ops, tops = Pieces(ops, st.Pieces, st.Overlay.Lifted, p, sz)
	ops = PieceFrames(ops, st.Overlay.Pieces, st.Overlay.Lifted, tops, p, sz)
	if st.Overlay.BannerVisible {
		ops = Banner(ops, p, sz)
	}
	return ops
}

func centered(l Layer, img Image, pos base.Position, c geometry.Point, width float64, sz Sizes) Op {
	w, h := geometry.ScaleToWidth(sz[img].W, sz[img].H, width)
	return Op{Layer: l, Image: img, Position: pos, X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

func fullCanvas(l Layer, img Image, p Params, sz Sizes) Op {
	c := geometry.Point{X: p.Canvas / 2, Y: p.Canvas / 2}
	return centered(l, img, base.NoPosition, c, p.Canvas, sz)
}

func Background(ops []Op, p Params, sz Sizes) []Op {
	return append(ops, fullCanvas(LayerBackground, ImgBoard, p, sz))
}

func CellFrames(ops []Op, cells base.PositionSet, p Params, sz Sizes) []Op {
	for _, pos := range cells.Slice() {
		c := geometry.PositionCenter(p.Canvas, pos.Index())
		ops = append(ops, centered(LayerCellFrames, ImgCellFrame, pos, c, p.CellWidth, sz))
	}
	return ops
}

// Pieces draws stacks bottom to top; the top piece of a lifted position is
// raised. It also returns the top height per position, -1 when empty.
func Pieces(ops []Op, pieces []base.Piece, lifted base.PositionSet, p Params, sz Sizes) ([]Op, [base.PositionCount]int) {
	var tops [base.PositionCount]int
	for i := range tops {
		tops[i] = -1
	}
	for _, pc := range pieces {
		if pc.Position.IsValid() && pc.Height > tops[pc.Position] {
			tops[pc.Position] = pc.Height
		}
	}
	for _, pc := range pieces {
		if !pc.Position.IsValid() {
			continue
		}
		lift := 0.0
		if pc.Height == tops[pc.Position] && lifted.Has(pc.Position) {
			lift = p.LiftRatio
		}
		img := ImgPieceBlack
		if pc.Color == base.White {
			img = ImgPieceWhite
		}
		c := geometry.PieceAnchor(p.Canvas, p.PieceWidth, pc.Position.Index(), pc.Height, lift)
		ops = append(ops, centered(LayerPieces, img, pc.Position, c, p.PieceWidth, sz))
	}
	return ops, tops
}

// PieceFrames outlines the top piece of every highlighted, non-empty position.
func PieceFrames(ops []Op, highlighted, lifted base.PositionSet, tops [base.PositionCount]int, p Params, sz Sizes) []Op {
	for _, pos := range highlighted.Slice() {
		h := tops[pos]
		if h < 0 {
			continue
		}
		lift := 0.0
		if lifted.Has(pos) {
			lift = p.LiftRatio
		}
		c := geometry.PieceAnchor(p.Canvas, p.PieceWidth, pos.Index(), h, lift)
		ops = append(ops, centered(LayerPieceFrames, ImgPieceFrame, pos, c, p.PieceWidth, sz))
	}
	return ops
}

func Banner(ops []Op, p Params, sz Sizes) []Op {
	return append(ops, fullCanvas(LayerBanner, ImgSecondBest, p, sz))
}
