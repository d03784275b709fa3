package render

import (
	"math"
	"testing"

	"secondbest/src/base"
	"secondbest/src/geometry"
	"secondbest/src/session"
)

func squareSizes() Sizes {
	var sz Sizes
	for i := range sz {
		sz[i] = Size{W: 100, H: 100}
	}
	sz[ImgPieceBlack] = Size{W: 100, H: 80}
	sz[ImgPieceWhite] = Size{W: 100, H: 80}
	sz[ImgSecondBest] = Size{W: 200, H: 100}
	return sz
}

func snapshot() session.State {
	var b base.Board
	b[base.E] = base.PieceStack{Pieces: []base.Player{base.White, base.Black}}
	b[base.W] = base.PieceStack{Pieces: []base.Player{base.Black}}
	st := session.State{
		Game:   base.GameState{Board: b},
		Pieces: base.Pieces(&b),
	}
	st.Overlay.Origin = base.NoPosition
	st.Overlay.Cells = base.SetOf(base.N, base.S)
	st.Overlay.Pieces = base.SetOf(base.E, base.SE)
	return st
}

func TestBuildLayerOrder(t *testing.T) {
	st := snapshot()
	st.Overlay.BannerVisible = true
	ops := Build(st, DefaultParams(), squareSizes())

	// background, 2 cell frames, 3 pieces, 1 piece frame (SE is empty), banner
	if len(ops) != 8 {
		t.Fatalf("got %d ops: %+v", len(ops), ops)
	}
	for i := 1; i < len(ops); i++ {
		if ops[i].Layer < ops[i-1].Layer {
			t.Fatalf("op %d layer %d drawn after layer %d", i, ops[i].Layer, ops[i-1].Layer)
		}
	}
	if ops[0].Image != ImgBoard || ops[len(ops)-1].Image != ImgSecondBest {
		t.Fatalf("first %s last %s", ops[0].Image, ops[len(ops)-1].Image)
	}
	if ops[6].Layer != LayerPieceFrames || ops[6].Position != base.E {
		t.Fatalf("piece frame %+v", ops[6])
	}
}

func TestBannerOnlyWhileVisible(t *testing.T) {
	ops := Build(snapshot(), DefaultParams(), squareSizes())
	for _, op := range ops {
		if op.Layer == LayerBanner {
			t.Fatal("banner drawn while hidden")
		}
	}
}

func TestPiecesStackBottomToTop(t *testing.T) {
	p := DefaultParams()
	st := snapshot()
	ops, tops := Pieces(nil, st.Pieces, 0, p, squareSizes())

	if tops[base.E] != 1 || tops[base.W] != 0 || tops[base.N] != -1 {
		t.Fatalf("tops %v", tops)
	}
	var e []Op
	for _, op := range ops {
		if op.Position == base.E {
			e = append(e, op)
		}
	}
	if len(e) != 2 || e[0].Image != ImgPieceWhite || e[1].Image != ImgPieceBlack {
		t.Fatalf("stack E %+v", e)
	}
	if !(e[1].Y < e[0].Y) {
		t.Fatal("upper piece must be drawn higher")
	}
	if math.Abs((e[0].Y-e[1].Y)-geometry.PieceStep*p.PieceWidth) > 1e-9 {
		t.Fatalf("step %v", e[0].Y-e[1].Y)
	}
	if e[0].W != p.PieceWidth || e[0].H != p.PieceWidth*0.8 {
		t.Fatalf("size %vx%v", e[0].W, e[0].H)
	}
}

func TestLiftOnlyTopPiece(t *testing.T) {
	p := DefaultParams()
	st := snapshot()
	flat, _ := Pieces(nil, st.Pieces, 0, p, squareSizes())
	lifted, _ := Pieces(nil, st.Pieces, base.SetOf(base.E), p, squareSizes())

	for i := range flat {
		dy := flat[i].Y - lifted[i].Y
		top := flat[i].Position == base.E && i == 1
		switch {
		case top && math.Abs(dy-p.LiftRatio*p.PieceWidth) > 1e-9:
			t.Fatalf("top piece lifted by %v", dy)
		case !top && dy != 0:
			t.Fatalf("piece %d moved by %v", i, dy)
		}
	}
}

func TestCellFrameCentered(t *testing.T) {
	p := DefaultParams()
	ops := CellFrames(nil, base.SetOf(base.SW), p, squareSizes())
	if len(ops) != 1 {
		t.Fatalf("ops %+v", ops)
	}
	c := geometry.PositionCenter(p.Canvas, base.SW.Index())
	op := ops[0]
	if op.W != p.CellWidth || math.Abs(op.X+op.W/2-c.X) > 1e-9 || math.Abs(op.Y+op.H/2-c.Y) > 1e-9 {
		t.Fatalf("frame %+v center %+v", op, c)
	}
}

func TestBannerScaledToCanvas(t *testing.T) {
	p := DefaultParams()
	ops := Banner(nil, p, squareSizes())
	op := ops[0]
	if op.W != p.Canvas || op.H != p.Canvas/2 || op.X != 0 || op.Y != p.Canvas/4 {
		t.Fatalf("banner %+v", op)
	}
}
