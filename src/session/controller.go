package session

import (
	"secondbest/src/base"
	"secondbest/src/engine"
)

// install replaces the authoritative snapshot unless a newer one is already
// in place. It resets the overlay except for the timed error and banner.
func (s *Session) install(gs base.GameState, seq uint64) bool {
	if seq <= s.installed {
		s.logx.Debugf("drop stale state #%d (have #%d)", seq, s.installed)
		return false
	}
	s.installed = seq

	if seq < s.pushed {
		// a later push already moved the turn on; keep its phase and overlay
		s.logx.Debugf("late state #%d (push #%d): board only", seq, s.pushed)
		s.st.Game = gs
		s.st.Pieces = base.Pieces(&gs.Board)
		s.st.Ready = true
		return false
	}

	s.st.Game = gs
	s.st.Pieces = base.Pieces(&gs.Board)
	s.st.Phase = gs.TurnPhase
	s.st.CurrentPlayer = gs.CurrentPlayer
	s.st.SecondBestOffered = false
	s.st.Gen++
	s.st.Ready = true

	s.clearAllHighlights()
	s.st.Overlay.InteractionEnabled = false
	return true
}

// beginTurn marks a human turn as active and derives its highlights.
func (s *Session) beginTurn() {
	s.turnActive = true
	s.refreshHighlights()
}

func (s *Session) dispatch(ev engine.Event) {
	if s.st.Over != nil {
		s.logx.Debugf("game over, ignore %s", ev.Kind())
		return
	}
	s.logx.Debugf("dispatch %s", ev.Kind())

	switch e := ev.(type) {
	case engine.AiMoveCompleted:
		s.logx.Infof("ai played %s", e.Action)
		if s.install(e.NewState, s.nextSeq()) {
			s.st.Phase = base.WaitingForMove
			s.beginTurn()
		}

	case engine.AiSecondBestDeclared:
		s.logx.Info("ai declared second best")
		if s.install(e.NewState, s.nextSeq()) {
			s.showBanner()
			s.st.Phase = base.WaitingForSecondMove
			s.beginTurn()
		}

	case engine.AiSecondMoveCompleted:
		s.logx.Infof("ai played second move %s", e.Action)
		if s.install(e.NewState, s.nextSeq()) {
			s.st.Phase = base.WaitingForMove
			s.beginTurn()
		}

	case engine.TurnPhaseChanged:
		s.pushed = s.nextSeq()
		s.st.Phase = e.NewPhase
		s.st.CurrentPlayer = e.CurrentPlayer
		switch e.NewPhase {
		case base.WaitingForMove:
			s.beginTurn()
		case base.WaitingForSecondBest:
			s.offerSecondBest()
		case base.WaitingForSecondMove:
			s.clearAllHighlights()
			s.beginTurn()
		}

	case engine.GameOver:
		s.logx.Infof("game over: winner=%s reason=%s", e.Winner, e.Reason)
		s.pushed = s.nextSeq()
		s.st.Over = &GameOverInfo{Winner: e.Winner, Reason: e.Reason}
		s.turnActive = false
		s.hlSeq++
		s.clearAllHighlights()
		s.st.Overlay.InteractionEnabled = false

	case engine.AiError:
		s.logx.Warnf("ai error: %s", e.Message)
		s.showError("AI error: " + e.Message)
		s.resync(s.turnActive)

	default:
		s.logx.Warnf("unhandled event %T", ev)
	}
}

// offerSecondBest asks whether the human may retract the last move; the
// highlights stay as they are.
func (s *Session) offerSecondBest() {
	gen := s.st.Gen
	call(s, s.gw.CanDeclareSecondBest, func(ok bool, err error) {
		if err != nil {
			s.logx.Errorf("%s: %v", msgCanSecondBest, err)
			s.showError(errorText(msgCanSecondBest, err))
			return
		}
		if gen != s.st.Gen || s.st.Over != nil {
			return
		}
		s.st.SecondBestOffered = ok
	})
}
