package gdraw

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"

	"secondbest/ui/gui/gctx"
	"secondbest/ui/gui/ghelper"
)

// ---- Scene ----

type Scene interface {
	Update(ctx *gctx.GUIGameContext) error
	Draw(ctx *gctx.GUIGameContext, screen *ebiten.Image)
}

// DrawModal draws a centered box over the canvas; scale animates it open (0..1).
func DrawModal(ctx *gctx.GUIGameContext, scale float64, message, hint string, x, y, w, h int, screen *ebiten.Image) {
	face := ctx.AssetsWorker.Fonts().Normal

	bounds := text.BoundString(face, message)
	mw := bounds.Dx() + 64
	if hb := text.BoundString(face, hint); hb.Dx()+64 > mw {
		mw = hb.Dx() + 64
	}
	mh := bounds.Dy() + 72

	if scale < 0 {
		scale = 0
	}
	if scale > 1 {
		scale = 1
	}
	currW := int(float64(mw) * scale)
	currH := int(float64(mh) * scale)
	if currW < 6 || currH < 6 {
		return
	}
	mx := x + (w-currW)/2
	my := y + (h-currH)/2

	modalImg := ghelper.RenderRoundedRect(currW, currH, 16, ctx.Theme.ButtonFill, ctx.Theme.Accent, 3)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(mx), float64(my))
	screen.DrawImage(modalImg, op)

	// text only once fully opened
	if scale > 0.85 {
		text.Draw(screen, message, face, mx+(currW-bounds.Dx())/2, my+32, ctx.Theme.MenuText)
		hb := text.BoundString(face, hint)
		text.Draw(screen, hint, face, mx+(currW-hb.Dx())/2, my+currH-20, ctx.Theme.Disabled)
	}
}
