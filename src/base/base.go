package base

import (
	"fmt"
	"strings"
)

// MaxStackHeight is the tallest pile a single position may hold.
const MaxStackHeight = 3

// PositionCount is the number of board positions.
const PositionCount = 8

type Position uint8

const (
	N Position = iota
	NE
	E
	SE
	S
	SW
	W
	NW
	NoPosition Position = 0xff
)

var positionLabels = [PositionCount]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

func (p Position) String() string {
	if p.IsValid() {
		return positionLabels[p]
	}
	return "none"
}

func (p Position) IsValid() bool {
	return p < PositionCount
}

// Index returns the dense 0..7 index used by geometry and highlight sets.
func (p Position) Index() int {
	return int(p)
}

func PositionFromIndex(i int) (Position, error) {
	if i < 0 || i >= PositionCount {
		return NoPosition, fmt.Errorf("position index out of range: %d", i)
	}
	return Position(i), nil
}

func ParsePosition(s string) (Position, error) {
	for i, l := range positionLabels {
		if l == s {
			return Position(i), nil
		}
	}
	return NoPosition, fmt.Errorf("unknown position %q", s)
}

// AllPositions lists positions in canonical order.
func AllPositions() []Position {
	return []Position{N, NE, E, SE, S, SW, W, NW}
}

type Player uint8

const (
	Black Player = iota + 1
	White
	NoPlayer Player = 0
)

func (p Player) String() string {
	switch p {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "none"
	}
}

// Short is the one-letter color code used by the board printers.
func (p Player) Short() string {
	switch p {
	case Black:
		return "B"
	case White:
		return "W"
	default:
		return "."
	}
}

func (p Player) Opponent() Player {
	switch p {
	case Black:
		return White
	case White:
		return Black
	default:
		return NoPlayer
	}
}

func ParsePlayer(s string) (Player, error) {
	switch s {
	case "Black":
		return Black, nil
	case "White":
		return White, nil
	default:
		return NoPlayer, fmt.Errorf("unknown player %q", s)
	}
}

type TurnPhase uint8

const (
	WaitingForMove TurnPhase = iota
	WaitingForSecondBest
	WaitingForSecondMove
)

func (tp TurnPhase) String() string {
	switch tp {
	case WaitingForMove:
		return "WaitingForMove"
	case WaitingForSecondBest:
		return "WaitingForSecondBest"
	case WaitingForSecondMove:
		return "WaitingForSecondMove"
	default:
		return "invalid"
	}
}

func ParseTurnPhase(s string) (TurnPhase, error) {
	switch s {
	case "WaitingForMove":
		return WaitingForMove, nil
	case "WaitingForSecondBest":
		return WaitingForSecondBest, nil
	case "WaitingForSecondMove":
		return WaitingForSecondMove, nil
	default:
		return WaitingForMove, fmt.Errorf("unknown turn phase %q", s)
	}
}

type GameOverReason uint8

const (
	VerticalLineup GameOverReason = iota
	HorizontalLineup
	NoMoves
)

func (r GameOverReason) String() string {
	switch r {
	case VerticalLineup:
		return "VerticalLineup"
	case HorizontalLineup:
		return "HorizontalLineup"
	case NoMoves:
		return "NoMoves"
	default:
		return "invalid"
	}
}

func ParseGameOverReason(s string) (GameOverReason, error) {
	switch s {
	case "VerticalLineup":
		return VerticalLineup, nil
	case "HorizontalLineup":
		return HorizontalLineup, nil
	case "NoMoves":
		return NoMoves, nil
	default:
		return VerticalLineup, fmt.Errorf("unknown game over reason %q", s)
	}
}

// PieceStack holds the pieces of one position, index 0 is the bottom piece.
type PieceStack struct {
	Pieces []Player
}

func (ps PieceStack) Height() int {
	return len(ps.Pieces)
}

// Top returns the color of the topmost piece or NoPlayer for an empty stack.
func (ps PieceStack) Top() Player {
	if len(ps.Pieces) == 0 {
		return NoPlayer
	}
	return ps.Pieces[len(ps.Pieces)-1]
}

func (ps PieceStack) Validate() error {
	if len(ps.Pieces) > MaxStackHeight {
		return fmt.Errorf("stack holds %d pieces, max %d", len(ps.Pieces), MaxStackHeight)
	}
	for i, p := range ps.Pieces {
		if p != Black && p != White {
			return fmt.Errorf("invalid piece at height %d", i)
		}
	}
	return nil
}

// Board maps every position to exactly one stack.
type Board [PositionCount]PieceStack

func (b *Board) At(p Position) PieceStack {
	if !p.IsValid() {
		return PieceStack{}
	}
	return b[p]
}

// String lists occupied positions bottom-to-top, e.g. "N:B E:WB".
func (b *Board) String() string {
	var sb strings.Builder
	for i, st := range b {
		if st.Height() == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(Position(i).String())
		sb.WriteByte(':')
		for _, p := range st.Pieces {
			sb.WriteString(p.Short())
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

func (b *Board) Count() int {
	n := 0
	for _, st := range b {
		n += st.Height()
	}
	return n
}

// GameState is the authoritative snapshot received from the engine.
// It is never mutated after decoding.
type GameState struct {
	Board               Board
	CurrentPlayer       Player
	TurnPhase           TurnPhase
	SecondBestAvailable bool
	Winner              Player // NoPlayer while the game runs
}

func (gs *GameState) HasWinner() bool {
	return gs.Winner != NoPlayer
}

type ActionKind uint8

const (
	ActionPlace ActionKind = iota + 1
	ActionMove
)

func (k ActionKind) String() string {
	switch k {
	case ActionPlace:
		return "Place"
	case ActionMove:
		return "Move"
	default:
		return "invalid"
	}
}

// MoveAction is either a placement (Position, Player) or a movement (From, To),
// discriminated by Kind.
type MoveAction struct {
	Kind     ActionKind
	Position Position
	Player   Player
	From     Position
	To       Position
}

func Place(pos Position, pl Player) MoveAction {
	return MoveAction{Kind: ActionPlace, Position: pos, Player: pl, From: NoPosition, To: NoPosition}
}

func Move(from, to Position) MoveAction {
	return MoveAction{Kind: ActionMove, Position: NoPosition, From: from, To: to}
}

func (a MoveAction) String() string {
	switch a.Kind {
	case ActionPlace:
		return fmt.Sprintf("Place(%s, %s)", a.Position, a.Player)
	case ActionMove:
		return fmt.Sprintf("Move(%s->%s)", a.From, a.To)
	default:
		return "invalid action"
	}
}

func (a MoveAction) Validate() error {
	switch a.Kind {
	case ActionPlace:
		if !a.Position.IsValid() {
			return fmt.Errorf("place: invalid position")
		}
		if a.Player != Black && a.Player != White {
			return fmt.Errorf("place: invalid player")
		}
	case ActionMove:
		if !a.From.IsValid() || !a.To.IsValid() {
			return fmt.Errorf("move: invalid position")
		}
	default:
		return fmt.Errorf("unknown action kind %d", a.Kind)
	}
	return nil
}

// Piece is a render primitive flattened from a board.
type Piece struct {
	Position Position
	Height   int
	Color    Player
}

// Pieces flattens a board into render primitives, ordered by position then height.
func Pieces(b *Board) []Piece {
	out := make([]Piece, 0, b.Count())
	for i := range b {
		for h, c := range b[i].Pieces {
			out = append(out, Piece{Position: Position(i), Height: h, Color: c})
		}
	}
	return out
}
