package session

import (
	"secondbest/src/base"
)

// DeriveHighlights splits legal moves into interactable cells and pieces.
// With no origin, placements mark cells and movement sources mark pieces.
// With an origin, cells are the destinations reachable from it and no piece
// is highlighted.
func DeriveHighlights(moves []base.MoveAction, origin base.Position) (cells, pieces base.PositionSet) {
	for _, m := range moves {
		switch m.Kind {
		case base.ActionPlace:
			if origin == base.NoPosition {
				cells = cells.Add(m.Position)
			}
		case base.ActionMove:
			if origin == base.NoPosition {
				pieces = pieces.Add(m.From)
			} else if m.From == origin {
				cells = cells.Add(m.To)
			}
		}
	}
	return cells, pieces
}

func (s *Session) clearAllHighlights() {
	ov := &s.st.Overlay
	ov.Cells, ov.Pieces, ov.Lifted = 0, 0, 0
	ov.Origin = base.NoPosition
}

// refreshHighlights asks the engine for legal moves and enables interaction
// once they are derived. Any newer install or refresh makes the answer stale.
func (s *Session) refreshHighlights() {
	if s.st.Over != nil {
		return
	}
	s.st.Overlay.InteractionEnabled = false
	s.hlSeq++
	gen, hl, origin := s.st.Gen, s.hlSeq, s.st.Overlay.Origin

	call(s, s.gw.LegalMoves, func(moves []base.MoveAction, err error) {
		if gen != s.st.Gen || hl != s.hlSeq || s.st.Over != nil {
			s.logx.Debugf("drop stale legal moves (gen %d/%d)", gen, s.st.Gen)
			return
		}
		if err != nil {
			s.fail(msgLegalMoves, err, false)
			return
		}
		cells, pieces := DeriveHighlights(moves, origin)
		ov := &s.st.Overlay
		ov.Cells, ov.Pieces = cells, pieces
		ov.InteractionEnabled = true
		s.logx.Debugf("highlights cells=%s pieces=%s", cells, pieces)
	})
}
