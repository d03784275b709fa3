package gdraw

import (
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"

	"secondbest/src/base"
	"secondbest/src/render"
	"secondbest/src/session"
	"secondbest/ui/gui/gbase"
	"secondbest/ui/gui/gctx"
	"secondbest/ui/gui/ghelper"
	"secondbest/ui/gui/ghelper/gclipboard"
)

// GUIBoardDrawer is the game screen: canvas, side buttons and status line.
type GUIBoardDrawer struct {
	canvas   int
	canvasBg *ebiten.Image

	buttons    []*gbase.Button
	idxSecond  int
	idxNewGame int
	idxRefresh int

	prevMouseDown bool
	lastTick      time.Time
	modalScale    float64
	note          string
	noteUntil     time.Time
}

func NewGUIBoardDrawer(ctx *gctx.GUIGameContext) *GUIBoardDrawer {
	bd := &GUIBoardDrawer{
		canvas:   int(ctx.Params.Canvas),
		lastTick: time.Now(),
	}
	bd.canvasBg = ghelper.RenderRoundedRect(bd.canvas, bd.canvas, 18, ctx.Theme.CanvasBg, ctx.Theme.ButtonStroke, 2)
	bd.makeLayoutButtons(ctx)
	return bd
}

func (bd *GUIBoardDrawer) makeLayoutButtons(ctx *gctx.GUIGameContext) {
	bd.buttons = []*gbase.Button{}
	addBtn := func(label string, x, y int) int {
		img := ghelper.RenderRoundedRect(gbase.PanelW, gbase.ButtonH, 12, ctx.Theme.ButtonFill, ctx.Theme.ButtonStroke, 3)
		bd.buttons = append(bd.buttons, gbase.NewButton(label, x, y, gbase.PanelW, gbase.ButtonH, img))
		return len(bd.buttons) - 1
	}

	x := gbase.PanelX(bd.canvas)
	y := gbase.BoardY + 40
	bd.idxSecond = addBtn("Second Best!", x, y)
	y += gbase.ButtonH + gbase.Gap
	bd.idxNewGame = addBtn("New game", x, y)
	y += gbase.ButtonH + gbase.Gap
	bd.idxRefresh = addBtn("Refresh", x, y)
}

func (bd *GUIBoardDrawer) Update(ctx *gctx.GUIGameContext) error {
	s := ctx.Session
	s.Pump()
	ready := ctx.AssetsWorker.Poll()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return gbase.ErrExit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		bd.copyBoard(ctx)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		s.NewGame()
	}

	now := time.Now()
	dt := now.Sub(bd.lastTick).Seconds()
	bd.lastTick = now

	mx, my := ebiten.CursorPosition()
	mouseDown := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	justPressed := mouseDown && !bd.prevMouseDown
	justReleased := !mouseDown && bd.prevMouseDown
	bd.prevMouseDown = mouseDown

	st := s.State()
	bd.buttons[bd.idxSecond].Disabled = !st.CanDeclareSecondBest()
	if st.Over != nil {
		bd.modalScale += (1 - bd.modalScale) * (1 - math.Exp(-8*dt))
	} else {
		bd.modalScale = 0
	}

	for i, b := range bd.buttons {
		if b.HandleInput(mx, my, justPressed, justReleased) {
			switch i {
			case bd.idxSecond:
				s.DeclareSecondBest()
			case bd.idxNewGame:
				s.NewGame()
			case bd.idxRefresh:
				s.Refresh()
			}
		}
		b.UpdateAnim(dt)
	}

	// the board only takes clicks once it can be drawn
	if justPressed && ready && ghelper.PointInRect(mx, my, gbase.BoardX, gbase.BoardY, bd.canvas, bd.canvas) {
		out := s.Click(float64(mx-gbase.BoardX), float64(my-gbase.BoardY))
		if out != session.Ignored {
			ctx.Logx.Debugf("click (%d,%d): %s", mx, my, out)
		}
	}
	return nil
}

func (bd *GUIBoardDrawer) Draw(ctx *gctx.GUIGameContext, screen *ebiten.Image) {
	screen.Fill(ctx.Theme.Bg)
	face := ctx.AssetsWorker.Fonts().Normal
	st := ctx.Session.State()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(gbase.BoardX), float64(gbase.BoardY))
	screen.DrawImage(bd.canvasBg, op)

	text.Draw(screen, headerLine(st), ctx.AssetsWorker.Fonts().Title, gbase.BoardX, gbase.BoardY-12, ctx.Theme.MenuText)

	aw := ctx.AssetsWorker
	switch {
	case aw.Err() != nil:
		text.Draw(screen, "images unavailable", face, gbase.BoardX+16, gbase.BoardY+24, ctx.Theme.Error)
	case !aw.Ready() || !st.Ready:
		text.Draw(screen, "loading...", face, gbase.BoardX+16, gbase.BoardY+24, ctx.Theme.MenuText)
	default:
		for _, o := range render.Build(st, ctx.Params, aw.Sizes()) {
			ghelper.DrawImageBox(screen, aw.Image(o.Image),
				float64(gbase.BoardX)+o.X, float64(gbase.BoardY)+o.Y, o.W, o.H)
		}
	}

	for _, b := range bd.buttons {
		b.Draw(screen, face, ctx.Theme)
	}
	if bd.note != "" && time.Now().Before(bd.noteUntil) {
		px := gbase.PanelX(bd.canvas)
		text.Draw(screen, bd.note, face, px, gbase.BoardY+40+3*(gbase.ButtonH+gbase.Gap)+10, ctx.Theme.Accent)
	}
	if st.Over != nil {
		DrawModal(ctx, bd.modalScale, gameOverLine(st.Over), "press N or New game",
			gbase.BoardX, gbase.BoardY, bd.canvas, bd.canvas, screen)
	}

	sy := gbase.BoardY + bd.canvas + 26
	switch {
	case st.Overlay.ErrorMessage != "":
		text.Draw(screen, st.Overlay.ErrorMessage, face, gbase.BoardX, sy, ctx.Theme.Error)
	case st.Over != nil:
		text.Draw(screen, gameOverLine(st.Over), face, gbase.BoardX, sy, ctx.Theme.Accent)
	case st.Ready && !st.Overlay.InteractionEnabled:
		text.Draw(screen, "waiting for the engine...", face, gbase.BoardX, sy, ctx.Theme.MenuText)
	}

	if ctx.Config.Debug {
		w, _ := gbase.WindowSize(bd.canvas)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %0.0f gen %d", ebiten.ActualTPS(), st.Gen), w-120, 4)
	}
}

// copyBoard puts a one-line dump of the position on the clipboard.
func (bd *GUIBoardDrawer) copyBoard(ctx *gctx.GUIGameContext) {
	st := ctx.Session.State()
	if !st.Ready {
		return
	}
	dump := fmt.Sprintf("%s | %s to play | %s", st.Game.Board.String(), st.CurrentPlayer, st.Phase)
	if err := gclipboard.WriteAll(dump); err != nil {
		ctx.Logx.Errorf("error copy board to clipboard: %v", err)
		bd.note = "clipboard error"
	} else {
		bd.note = "board copied"
	}
	bd.noteUntil = time.Now().Add(2 * time.Second)
}

func headerLine(st session.State) string {
	if !st.Ready {
		return "Second Best"
	}
	return fmt.Sprintf("Second Best   turn: %s   %s", st.CurrentPlayer, phaseLabel(st.Phase))
}

func phaseLabel(tp base.TurnPhase) string {
	switch tp {
	case base.WaitingForSecondBest:
		return "second best?"
	case base.WaitingForSecondMove:
		return "play another move"
	default:
		return "make a move"
	}
}

func gameOverLine(g *session.GameOverInfo) string {
	if g.Winner == base.NoPlayer {
		return fmt.Sprintf("Game over: draw (%s)", g.Reason)
	}
	return fmt.Sprintf("Game over: %s wins (%s)", g.Winner, g.Reason)
}
