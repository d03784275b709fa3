package engine

import (
	"encoding/json"
	"fmt"

	"secondbest/src/base"
)

type EventKind string

const (
	KindAiMoveCompleted       EventKind = "ai_move_completed"
	KindAiSecondBestDeclared  EventKind = "ai_second_best_declared"
	KindAiSecondMoveCompleted EventKind = "ai_second_move_completed"
	KindGameOver              EventKind = "game_over"
	KindTurnPhaseChanged      EventKind = "turn_phase_changed"
	KindAiError               EventKind = "ai_error"
)

// Event is one of the push notifications below; the set is closed.
type Event interface {
	Kind() EventKind
	event()
}

type AiMoveCompleted struct {
	Action   base.MoveAction `json:"action"`
	NewState base.GameState  `json:"new_state"`
}

type AiSecondBestDeclared struct {
	NewState base.GameState `json:"new_state"`
}

type AiSecondMoveCompleted struct {
	Action   base.MoveAction `json:"action"`
	NewState base.GameState  `json:"new_state"`
}

type GameOver struct {
	Winner base.Player // NoPlayer on a draw
	Reason base.GameOverReason
}

type TurnPhaseChanged struct {
	NewPhase      base.TurnPhase `json:"new_phase"`
	CurrentPlayer base.Player    `json:"current_player"`
}

type AiError struct {
	Message string `json:"message"`
}

func (AiMoveCompleted) Kind() EventKind       { return KindAiMoveCompleted }
func (AiSecondBestDeclared) Kind() EventKind  { return KindAiSecondBestDeclared }
func (AiSecondMoveCompleted) Kind() EventKind { return KindAiSecondMoveCompleted }
func (GameOver) Kind() EventKind              { return KindGameOver }
func (TurnPhaseChanged) Kind() EventKind      { return KindTurnPhaseChanged }
func (AiError) Kind() EventKind               { return KindAiError }

func (AiMoveCompleted) event()       {}
func (AiSecondBestDeclared) event()  {}
func (AiSecondMoveCompleted) event() {}
func (GameOver) event()              {}
func (TurnPhaseChanged) event()      {}
func (AiError) event()               {}

type gameOverJSON struct {
	Winner *base.Player        `json:"winner,omitempty"`
	Reason base.GameOverReason `json:"reason"`
}

func (g GameOver) MarshalJSON() ([]byte, error) {
	raw := gameOverJSON{Reason: g.Reason}
	if g.Winner != base.NoPlayer {
		w := g.Winner
		raw.Winner = &w
	}
	return json.Marshal(raw)
}

func (g *GameOver) UnmarshalJSON(data []byte) error {
	var raw gameOverJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	g.Reason = raw.Reason
	g.Winner = base.NoPlayer
	if raw.Winner != nil {
		g.Winner = *raw.Winner
	}
	return nil
}

// DecodeEvent builds the typed event for a wire name and payload.
func DecodeEvent(kind EventKind, payload json.RawMessage) (Event, error) {
	var (
		ev  Event
		err error
	)
	switch kind {
	case KindAiMoveCompleted:
		var e AiMoveCompleted
		err = json.Unmarshal(payload, &e)
		ev = e
	case KindAiSecondBestDeclared:
		var e AiSecondBestDeclared
		err = json.Unmarshal(payload, &e)
		ev = e
	case KindAiSecondMoveCompleted:
		var e AiSecondMoveCompleted
		err = json.Unmarshal(payload, &e)
		ev = e
	case KindGameOver:
		var e GameOver
		err = json.Unmarshal(payload, &e)
		ev = e
	case KindTurnPhaseChanged:
		var e TurnPhaseChanged
		err = json.Unmarshal(payload, &e)
		ev = e
	case KindAiError:
		var e AiError
		err = json.Unmarshal(payload, &e)
		ev = e
	default:
		return nil, fmt.Errorf("unknown event %q", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	return ev, nil
}
