package session

import (
	"secondbest/src/base"
)

// Overlay is the client-only decoration of the board.
type Overlay struct {
	Cells  base.PositionSet // empty positions that accept a placement or a destination
	Pieces base.PositionSet // stacks whose top piece may be picked up
	Lifted base.PositionSet
	Origin base.Position // NoPosition when nothing is selected

	BannerVisible      bool
	ErrorMessage       string
	InteractionEnabled bool
}

type GameOverInfo struct {
	Winner base.Player // NoPlayer on a draw
	Reason base.GameOverReason
}

// State is the session snapshot handed to renderers. It is a value: callers
// may keep it, the session never mutates a State it returned.
type State struct {
	Game          base.GameState
	Pieces        []base.Piece
	Phase         base.TurnPhase
	CurrentPlayer base.Player
	Overlay       Overlay

	SecondBestOffered bool
	Over              *GameOverInfo

	// Gen is bumped on every installed authoritative state.
	Gen uint64
	// Ready is false until the first state arrives.
	Ready bool
}

func newState() State {
	return State{Overlay: Overlay{Origin: base.NoPosition}}
}

func (st *State) GameOver() bool {
	return st.Over != nil
}

// CanDeclareSecondBest reports whether the human second best button is live.
func (st *State) CanDeclareSecondBest() bool {
	if st.Over != nil || !st.Overlay.InteractionEnabled {
		return false
	}
	return st.Game.SecondBestAvailable || st.SecondBestOffered
}

// Outcome tells what an activation did.
type Outcome uint8

const (
	Ignored Outcome = iota
	Placed
	Moved
	Selected
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Placed:
		return "placed"
	case Moved:
		return "moved"
	case Selected:
		return "selected"
	case Cancelled:
		return "cancelled"
	default:
		return "ignored"
	}
}
