package session

import (
	"errors"

	"secondbest/src/base"
	"secondbest/src/engine"
)

const (
	msgNewGame       = "failed to start a new game"
	msgGameState     = "failed to get game state"
	msgLegalMoves    = "failed to get legal moves"
	msgMakeMove      = "failed to execute move"
	msgSecondBest    = "failed to declare second best"
	msgCanSecondBest = "failed to check second best"
)

// errorText is what the player sees: the engine's own reason when it gave one.
func errorText(msg string, err error) string {
	var re *engine.RemoteError
	if errors.As(err, &re) && re.Message != "" {
		return msg + ": " + re.Message
	}
	return msg
}

// fail surfaces a remote failure and resynchronises. rederive restarts the
// human turn once the fresh state is in.
func (s *Session) fail(msg string, err error, rederive bool) {
	s.logx.Errorf("%s: %v", msg, err)
	s.showError(errorText(msg, err))
	s.clearAllHighlights()
	s.st.Overlay.InteractionEnabled = false
	s.resync(rederive)
}

func (s *Session) resync(rederive bool) {
	seq := s.nextSeq()
	call(s, s.gw.GameState, func(gs base.GameState, err error) {
		if err != nil {
			s.logx.Errorf("%s: %v", msgGameState, err)
			return
		}
		if !s.install(gs, seq) {
			return
		}
		if rederive && s.st.Over == nil {
			s.beginTurn()
		}
	})
}

// showError displays msg until the error timeout; a newer message restarts it.
func (s *Session) showError(msg string) {
	s.errTok++
	tok := s.errTok
	s.st.Overlay.ErrorMessage = msg
	s.clock.AfterFunc(s.cfg.ErrorTTL, func() {
		s.post(func() {
			if s.errTok == tok {
				s.st.Overlay.ErrorMessage = ""
			}
		})
	})
}

func (s *Session) showBanner() {
	s.bannerTok++
	tok := s.bannerTok
	s.st.Overlay.BannerVisible = true
	s.clock.AfterFunc(s.cfg.BannerTTL, func() {
		s.post(func() {
			if s.bannerTok == tok {
				s.st.Overlay.BannerVisible = false
			}
		})
	})
}
