// Package remote implements engine.Gateway over the JSON wire protocol.
// The same client runs over a WebSocket or over a child process' stdio.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"secondbest/src/base"
	"secondbest/src/engine"
	"secondbest/src/logx"
)

// transport moves whole protocol messages.
type transport interface {
	send(ctx context.Context, msg []byte) error
	recv(ctx context.Context) ([]byte, error)
	close() error
}

type request struct {
	ID     string      `json:"id"`
	Method string      `json:"method"`
	Params interface{} `json:"params,omitempty"`
}

// envelope is any inbound message: a response carries ID, an event carries Event.
type envelope struct {
	ID      string          `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
	Event   string          `json:"event,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Client struct {
	tr   transport
	logx logx.Logger

	// read loop
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	done   chan struct{}
	err    error

	sendmu sync.Mutex

	// pending calls
	mu      sync.Mutex
	waiters map[string]chan envelope

	// subscribers
	submu sync.Mutex
	subs  map[int]subscription
	subid int
}

type subscription struct {
	ch   chan<- engine.Event
	done chan struct{} // closed by unsubscribe
}

func newClient(tr transport, l logx.Logger) *Client {
	c := &Client{
		tr:      tr,
		logx:    l,
		done:    make(chan struct{}),
		waiters: make(map[string]chan envelope),
		subs:    make(map[int]subscription),
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.wg.Add(1)
	go c.readLoop()
	return c
}

func (c *Client) readLoop() {
	defer c.wg.Done()
	defer close(c.done)
	for {
		data, err := c.tr.recv(c.ctx)
		if err != nil {
			if c.ctx.Err() == nil {
				c.logx.Errorf("read loop stopped: %v", err)
				c.err = err
			}
			return
		}
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			c.logx.Warnf("drop malformed message: %v", err)
			continue
		}
		switch {
		case env.ID != "":
			c.deliver(env)
		case env.Event != "":
			ev, err := engine.DecodeEvent(engine.EventKind(env.Event), env.Payload)
			if err != nil {
				c.logx.Warnf("drop event: %v", err)
				continue
			}
			c.logx.Debugf("event %s", ev.Kind())
			c.publish(ev)
		default:
			c.logx.Warnf("drop message without id or event: %s", data)
		}
	}
}

func (c *Client) deliver(env envelope) {
	c.mu.Lock()
	ch, ok := c.waiters[env.ID]
	delete(c.waiters, env.ID)
	c.mu.Unlock()
	if !ok {
		c.logx.Debugf("response for unknown call %s", env.ID)
		return
	}
	ch <- env // buffered, one response per call
}

func (c *Client) publish(ev engine.Event) {
	c.submu.Lock()
	subs := make([]subscription, 0, len(c.subs))
	for _, sub := range c.subs {
		subs = append(subs, sub)
	}
	c.submu.Unlock()

	for _, sub := range subs {
		select {
		case sub.ch <- ev:
		case <-sub.done:
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Client) Subscribe(ch chan<- engine.Event) (unsubscribe func()) {
	c.submu.Lock()
	id := c.subid
	c.subid++
	sub := subscription{ch: ch, done: make(chan struct{})}
	c.subs[id] = sub
	c.submu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.submu.Lock()
			delete(c.subs, id)
			c.submu.Unlock()
			close(sub.done)
		})
	}
}

// invoke sends one request and decodes the result into out (nil skips decoding).
func (c *Client) invoke(ctx context.Context, method string, params, out interface{}) error {
	id := uuid.NewString()
	data, err := json.Marshal(request{ID: id, Method: method, Params: params})
	if err != nil {
		return fmt.Errorf("encode %s: %w", method, err)
	}

	ch := make(chan envelope, 1)
	c.mu.Lock()
	c.waiters[id] = ch
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.waiters, id)
		c.mu.Unlock()
	}()

	select {
	case <-c.done:
		return engine.ErrClosed
	default:
	}

	c.logx.Debugf("call %s id=%s", method, id)
	c.sendmu.Lock()
	err = c.tr.send(ctx, data)
	c.sendmu.Unlock()
	if err != nil {
		return fmt.Errorf("send %s: %w", method, err)
	}

	select {
	case env := <-ch:
		if env.Error != "" {
			return &engine.RemoteError{Method: method, Message: env.Error}
		}
		if out == nil {
			return nil
		}
		result := env.Result
		if len(result) == 0 {
			result = json.RawMessage("null")
		}
		if err := json.Unmarshal(result, out); err != nil {
			return fmt.Errorf("decode %s result: %w", method, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return engine.ErrClosed
	}
}

func (c *Client) NewGame(ctx context.Context) (base.GameState, error) {
	var gs base.GameState
	err := c.invoke(ctx, engine.MethodNewGame, nil, &gs)
	return gs, err
}

func (c *Client) GameState(ctx context.Context) (base.GameState, error) {
	var gs base.GameState
	err := c.invoke(ctx, engine.MethodGetGameState, nil, &gs)
	return gs, err
}

func (c *Client) LegalMoves(ctx context.Context) ([]base.MoveAction, error) {
	var moves []base.MoveAction
	err := c.invoke(ctx, engine.MethodGetLegalMoves, nil, &moves)
	return moves, err
}

func (c *Client) MakeMove(ctx context.Context, action base.MoveAction) (base.GameState, error) {
	if err := action.Validate(); err != nil {
		return base.GameState{}, err
	}
	var gs base.GameState
	err := c.invoke(ctx, engine.MethodMakeMove, map[string]interface{}{"action": action}, &gs)
	return gs, err
}

func (c *Client) DeclareSecondBest(ctx context.Context) (base.GameState, error) {
	var gs base.GameState
	err := c.invoke(ctx, engine.MethodDeclareSecondBest, nil, &gs)
	return gs, err
}

func (c *Client) CanDeclareSecondBest(ctx context.Context) (bool, error) {
	var ok bool
	err := c.invoke(ctx, engine.MethodCanDeclareSecondBest, nil, &ok)
	return ok, err
}

func (c *Client) CheckWinner(ctx context.Context) (base.Player, error) {
	var w *base.Player
	if err := c.invoke(ctx, engine.MethodCheckWinner, nil, &w); err != nil {
		return base.NoPlayer, err
	}
	if w == nil {
		return base.NoPlayer, nil
	}
	return *w, nil
}

func (c *Client) PositionStack(ctx context.Context, pos base.Position) (base.PieceStack, error) {
	if !pos.IsValid() {
		return base.PieceStack{}, fmt.Errorf("position stack: invalid position")
	}
	var st base.PieceStack
	err := c.invoke(ctx, engine.MethodGetPositionStack, map[string]interface{}{"position": pos}, &st)
	return st, err
}

// Err reports why the read loop stopped, nil while it runs or after Close.
func (c *Client) Err() error {
	select {
	case <-c.done:
		return c.err
	default:
		return nil
	}
}

func (c *Client) Close() error {
	c.cancel()
	err := c.tr.close()
	c.wg.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
