package session

import (
	"context"
	"sync"

	"secondbest/src/base"
	"secondbest/src/engine"
)

// fakeGateway is an in-memory engine.Gateway with scriptable answers.
type fakeGateway struct {
	mu sync.Mutex

	state      base.GameState
	moved      base.GameState // returned by MakeMove and DeclareSecondBest
	moves      []base.MoveAction
	canDeclare bool

	newGameErr error
	stateErr   error
	movesErr   error
	moveErr    error

	hold  map[string]chan struct{}
	calls map[string]int
	made  []base.MoveAction

	subs map[int]chan<- engine.Event
	next int
}

func newFakeGateway(state base.GameState, moves ...base.MoveAction) *fakeGateway {
	return &fakeGateway{
		state: state,
		moved: state,
		moves: moves,
		hold:  make(map[string]chan struct{}),
		calls: make(map[string]int),
		subs:  make(map[int]chan<- engine.Event),
	}
}

func (f *fakeGateway) enter(ctx context.Context, method string) error {
	f.mu.Lock()
	f.calls[method]++
	gate := f.hold[method]
	f.mu.Unlock()
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// holdCall blocks method until the returned release is called.
func (f *fakeGateway) holdCall(method string) (release func()) {
	ch := make(chan struct{})
	f.mu.Lock()
	f.hold[method] = ch
	f.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

func (f *fakeGateway) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeGateway) callCounts() map[string]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]int, len(f.calls))
	for k, v := range f.calls {
		out[k] = v
	}
	return out
}

func (f *fakeGateway) set(fn func(f *fakeGateway)) {
	f.mu.Lock()
	fn(f)
	f.mu.Unlock()
}

func (f *fakeGateway) push(ev engine.Event) {
	f.mu.Lock()
	subs := make([]chan<- engine.Event, 0, len(f.subs))
	for _, ch := range f.subs {
		subs = append(subs, ch)
	}
	f.mu.Unlock()
	for _, ch := range subs {
		ch <- ev
	}
}

func (f *fakeGateway) NewGame(ctx context.Context) (base.GameState, error) {
	if err := f.enter(ctx, engine.MethodNewGame); err != nil {
		return base.GameState{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state, f.newGameErr
}

func (f *fakeGateway) GameState(ctx context.Context) (base.GameState, error) {
	if err := f.enter(ctx, engine.MethodGetGameState); err != nil {
		return base.GameState{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state, f.stateErr
}

func (f *fakeGateway) LegalMoves(ctx context.Context) ([]base.MoveAction, error) {
	if err := f.enter(ctx, engine.MethodGetLegalMoves); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.movesErr != nil {
		return nil, f.movesErr
	}
	return append([]base.MoveAction(nil), f.moves...), nil
}

func (f *fakeGateway) MakeMove(ctx context.Context, action base.MoveAction) (base.GameState, error) {
	if err := f.enter(ctx, engine.MethodMakeMove); err != nil {
		return base.GameState{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.made = append(f.made, action)
	if f.moveErr != nil {
		return base.GameState{}, f.moveErr
	}
	return f.moved, nil
}

func (f *fakeGateway) DeclareSecondBest(ctx context.Context) (base.GameState, error) {
	if err := f.enter(ctx, engine.MethodDeclareSecondBest); err != nil {
		return base.GameState{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.moved, nil
}

func (f *fakeGateway) CanDeclareSecondBest(ctx context.Context) (bool, error) {
	if err := f.enter(ctx, engine.MethodCanDeclareSecondBest); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.canDeclare, nil
}

func (f *fakeGateway) CheckWinner(ctx context.Context) (base.Player, error) {
	if err := f.enter(ctx, engine.MethodCheckWinner); err != nil {
		return base.NoPlayer, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Winner, nil
}

func (f *fakeGateway) PositionStack(ctx context.Context, pos base.Position) (base.PieceStack, error) {
	if err := f.enter(ctx, engine.MethodGetPositionStack); err != nil {
		return base.PieceStack{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Board.At(pos), nil
}

func (f *fakeGateway) Subscribe(ch chan<- engine.Event) func() {
	f.mu.Lock()
	id := f.next
	f.next++
	f.subs[id] = ch
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}

func (f *fakeGateway) Close() error { return nil }
