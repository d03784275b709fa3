package base

import (
	"encoding/json"
	"fmt"
)

// Wire encodings follow the engine's JSON protocol: enums travel as their
// labels, actions are externally tagged ({"Place":{...}} / {"Move":{...}}).

func (p Position) MarshalJSON() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("marshal invalid position %d", uint8(p))
	}
	return json.Marshal(p.String())
}

func (p *Position) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParsePosition(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p Player) MarshalJSON() ([]byte, error) {
	if p != Black && p != White {
		return nil, fmt.Errorf("marshal invalid player %d", uint8(p))
	}
	return json.Marshal(p.String())
}

func (p *Player) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParsePlayer(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (tp TurnPhase) MarshalJSON() ([]byte, error) {
	return json.Marshal(tp.String())
}

func (tp *TurnPhase) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseTurnPhase(s)
	if err != nil {
		return err
	}
	*tp = v
	return nil
}

func (r GameOverReason) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *GameOverReason) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseGameOverReason(s)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

type pieceStackJSON struct {
	Pieces []Player `json:"pieces"`
}

func (ps PieceStack) MarshalJSON() ([]byte, error) {
	pieces := ps.Pieces
	if pieces == nil {
		pieces = []Player{}
	}
	return json.Marshal(pieceStackJSON{Pieces: pieces})
}

func (ps *PieceStack) UnmarshalJSON(data []byte) error {
	var raw pieceStackJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	st := PieceStack{Pieces: raw.Pieces}
	if err := st.Validate(); err != nil {
		return err
	}
	*ps = st
	return nil
}

func (b Board) MarshalJSON() ([]byte, error) {
	m := make(map[string]PieceStack, PositionCount)
	for i, st := range b {
		m[Position(i).String()] = st
	}
	return json.Marshal(m)
}

// UnmarshalJSON accepts a partial object: absent positions are empty stacks.
func (b *Board) UnmarshalJSON(data []byte) error {
	var m map[string]PieceStack
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	var out Board
	for k, st := range m {
		pos, err := ParsePosition(k)
		if err != nil {
			return fmt.Errorf("board: %w", err)
		}
		out[pos] = st
	}
	*b = out
	return nil
}

type gameStateJSON struct {
	Board               Board     `json:"board"`
	CurrentPlayer       Player    `json:"current_player"`
	TurnPhase           TurnPhase `json:"turn_phase"`
	SecondBestAvailable bool      `json:"second_best_available"`
	Winner              *Player   `json:"winner,omitempty"`
}

func (gs GameState) MarshalJSON() ([]byte, error) {
	raw := gameStateJSON{
		Board:               gs.Board,
		CurrentPlayer:       gs.CurrentPlayer,
		TurnPhase:           gs.TurnPhase,
		SecondBestAvailable: gs.SecondBestAvailable,
	}
	if gs.Winner != NoPlayer {
		w := gs.Winner
		raw.Winner = &w
	}
	return json.Marshal(raw)
}

func (gs *GameState) UnmarshalJSON(data []byte) error {
	var raw gameStateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*gs = GameState{
		Board:               raw.Board,
		CurrentPlayer:       raw.CurrentPlayer,
		TurnPhase:           raw.TurnPhase,
		SecondBestAvailable: raw.SecondBestAvailable,
	}
	if raw.Winner != nil {
		gs.Winner = *raw.Winner
	}
	return nil
}

type placeJSON struct {
	Position Position `json:"position"`
	Player   Player   `json:"player"`
}

type moveJSON struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type actionJSON struct {
	Place *placeJSON `json:"Place,omitempty"`
	Move  *moveJSON  `json:"Move,omitempty"`
}

func (a MoveAction) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case ActionPlace:
		return json.Marshal(actionJSON{Place: &placeJSON{Position: a.Position, Player: a.Player}})
	case ActionMove:
		return json.Marshal(actionJSON{Move: &moveJSON{From: a.From, To: a.To}})
	default:
		return nil, fmt.Errorf("marshal action: unknown kind %d", a.Kind)
	}
}

func (a *MoveAction) UnmarshalJSON(data []byte) error {
	var raw actionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Place != nil && raw.Move == nil:
		*a = Place(raw.Place.Position, raw.Place.Player)
	case raw.Move != nil && raw.Place == nil:
		*a = Move(raw.Move.From, raw.Move.To)
	default:
		return fmt.Errorf("action must carry exactly one of Place or Move: %s", data)
	}
	return nil
}
