package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"secondbest/src/base"
)

const (
	DialTimeout  = 5 * time.Second
	CallTimeout  = 5 * time.Second // request/response round trip
	CloseTimeout = 2 * time.Second
)

var ErrClosed = errors.New("engine: gateway closed")

// RemoteError is an engine-side rejection of a call (an illegal move, a
// second best that is no longer available, ...).
type RemoteError struct {
	Method  string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("engine: %s: %s", e.Method, e.Message)
}

// Gateway is the client view of the rules/AI engine: request/response calls
// plus a push event stream. Implementations are safe for concurrent use.
type Gateway interface {
	NewGame(ctx context.Context) (base.GameState, error)
	GameState(ctx context.Context) (base.GameState, error)
	LegalMoves(ctx context.Context) ([]base.MoveAction, error)
	MakeMove(ctx context.Context, action base.MoveAction) (base.GameState, error)
	DeclareSecondBest(ctx context.Context) (base.GameState, error)
	CanDeclareSecondBest(ctx context.Context) (bool, error)
	// CheckWinner returns NoPlayer while the game is undecided.
	CheckWinner(ctx context.Context) (base.Player, error)
	PositionStack(ctx context.Context, pos base.Position) (base.PieceStack, error)

	// Subscribe delivers every push event to ch in arrival order until
	// unsubscribe is called. Delivery blocks on a full channel.
	Subscribe(ch chan<- Event) (unsubscribe func())
	Close() error
}

// Method names of the wire protocol.
const (
	MethodNewGame              = "new_game"
	MethodGetGameState         = "get_game_state"
	MethodGetLegalMoves        = "get_legal_moves"
	MethodMakeMove             = "make_move"
	MethodDeclareSecondBest    = "declare_second_best"
	MethodCanDeclareSecondBest = "can_declare_second_best"
	MethodCheckWinner          = "check_winner"
	MethodGetPositionStack     = "get_position_stack"
)
