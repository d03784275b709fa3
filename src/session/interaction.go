package session

import (
	"context"

	"secondbest/src/base"
	"secondbest/src/geometry"
)

// Click resolves canvas coordinates to a position and activates it.
func (s *Session) Click(x, y float64) Outcome {
	if !s.st.Overlay.InteractionEnabled {
		return Ignored
	}
	pos, ok := geometry.ResolveClick(s.cfg.CanvasSize, s.cfg.PieceWidth, x, y)
	if !ok {
		return Ignored
	}
	return s.Activate(pos)
}

// Activate applies a tap on pos to the current selection and highlights.
func (s *Session) Activate(pos base.Position) Outcome {
	ov := &s.st.Overlay
	if !ov.InteractionEnabled || s.st.Over != nil || !pos.IsValid() {
		return Ignored
	}

	if ov.Origin != base.NoPosition {
		if ov.Cells.Has(pos) {
			s.submit(base.Move(ov.Origin, pos))
			return Moved
		}
		s.clearAllHighlights()
		s.refreshHighlights()
		return Cancelled
	}

	switch {
	case ov.Cells.Has(pos):
		s.submit(base.Place(pos, s.st.CurrentPlayer))
		return Placed
	case ov.Pieces.Has(pos):
		ov.Origin = pos
		ov.Lifted = base.SetOf(pos)
		ov.Pieces = 0
		ov.Cells = 0
		s.refreshHighlights()
		return Selected
	}
	return Ignored
}

func (s *Session) submit(action base.MoveAction) {
	s.st.Overlay.InteractionEnabled = false
	s.logx.Infof("submit %s", action)
	seq := s.nextSeq()

	move := func(ctx context.Context) (base.GameState, error) {
		return s.gw.MakeMove(ctx, action)
	}
	call(s, move, func(gs base.GameState, err error) {
		if err != nil {
			s.fail(msgMakeMove, err, true)
			return
		}
		if s.install(gs, seq) {
			s.turnActive = false
		}
	})
}

// DeclareSecondBest sends the human retraction. It reports false when the
// option is not available right now.
func (s *Session) DeclareSecondBest() bool {
	if !s.st.CanDeclareSecondBest() {
		return false
	}
	s.st.Overlay.InteractionEnabled = false
	s.logx.Info("declare second best")
	seq := s.nextSeq()

	call(s, s.gw.DeclareSecondBest, func(gs base.GameState, err error) {
		if err != nil {
			s.fail(msgSecondBest, err, true)
			return
		}
		if s.install(gs, seq) {
			s.turnActive = false
		}
	})
	return true
}
