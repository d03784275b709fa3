package gui

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"secondbest/src/config"
	"secondbest/src/logx"
	"secondbest/src/session"
	"secondbest/ui/gui/gassets"
	"secondbest/ui/gui/gbase"
	"secondbest/ui/gui/gctx"
	"secondbest/ui/gui/gdraw"
)

type GUIProcessing struct {
	current gdraw.Scene
	ctx     *gctx.GUIGameContext
	w, h    int
}

// NewGUI wires a started session to the window. The session loop is pumped
// from Update, so nothing else may drive it.
func NewGUI(s *session.Session, c *config.Config, l logx.Logger) *GUIProcessing {
	aw := gassets.NewGUIAssetsWorker(c.AssetsDir, c.Render(), l.Named("assets"))
	ctx := gctx.NewGUIGameContext(s, aw, c, l)
	w, h := gbase.WindowSize(int(ctx.Params.Canvas))
	return &GUIProcessing{
		current: gdraw.NewGUIBoardDrawer(ctx),
		ctx:     ctx,
		w:       w,
		h:       h,
	}
}

func (gp *GUIProcessing) Run() error {
	ebiten.SetWindowSize(gp.w, gp.h)
	ebiten.SetWindowTitle("Second Best")
	err := ebiten.RunGame(gp)
	if errors.Is(err, gbase.ErrExit) {
		return nil
	}
	return err
}

func (gp *GUIProcessing) Update() error {
	return gp.current.Update(gp.ctx)
}

func (gp *GUIProcessing) Draw(screen *ebiten.Image) {
	gp.current.Draw(gp.ctx, screen)
}

func (gp *GUIProcessing) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return gp.w, gp.h
}
