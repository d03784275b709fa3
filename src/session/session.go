// Package session keeps the local view of a game consistent with the engine.
//
// All state lives on one loop goroutine. Remote calls run concurrently and
// post their continuation back to the loop; push events arrive on the loop
// too. Drive the loop with Pump (frame based front-ends), Run (blocking) or
// Step/Settle (tests). Every exported method except Post, Close and the loop
// drivers must be called from the loop goroutine.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"secondbest/src/base"
	"secondbest/src/engine"
	"secondbest/src/logx"
)

var ErrStopped = errors.New("session: stopped")

type Config struct {
	CanvasSize  float64
	PieceWidth  float64
	ErrorTTL    time.Duration
	BannerTTL   time.Duration
	CallTimeout time.Duration
	Clock       clockwork.Clock // real clock when nil
}

func DefaultConfig() Config {
	return Config{
		CanvasSize:  350,
		PieceWidth:  50,
		ErrorTTL:    3 * time.Second,
		BannerTTL:   2 * time.Second,
		CallTimeout: engine.CallTimeout,
	}
}

type Session struct {
	gw    engine.Gateway
	cfg   Config
	clock clockwork.Clock
	logx  logx.Logger

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once

	inbox  chan func()
	events chan engine.Event
	unsub  func()

	// loop owned
	st         State
	pending    int
	seq        uint64 // last issued state request
	installed  uint64 // tag of the installed state
	pushed     uint64 // tag of the last push without a state
	hlSeq      uint64
	turnActive bool
	errTok     uint64
	bannerTok  uint64
	observer   func(State)
}

func New(gw engine.Gateway, cfg Config, l logx.Logger) *Session {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = engine.CallTimeout
	}
	if l == nil {
		l = logx.NewNop()
	}
	s := &Session{
		gw: gw, cfg: cfg, clock: cfg.Clock, logx: l,
		done:   make(chan struct{}),
		inbox:  make(chan func(), 64),
		events: make(chan engine.Event, 64),
		st:     newState(),
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s
}

// Start subscribes to engine events and opens a new game.
func (s *Session) Start() {
	if s.unsub == nil {
		s.unsub = s.gw.Subscribe(s.events)
	}
	s.NewGame()
}

// Close stops the session; in flight calls are cancelled. Safe from any goroutine.
func (s *Session) Close() {
	s.once.Do(func() {
		if s.unsub != nil {
			s.unsub()
		}
		s.cancel()
		close(s.done)
	})
}

func (s *Session) State() State {
	return s.st
}

func (s *Session) Config() Config {
	return s.cfg
}

// Gateway exposes the engine for read-only queries.
func (s *Session) Gateway() engine.Gateway {
	return s.gw
}

// SetObserver registers fn to be called on the loop after every processed item.
func (s *Session) SetObserver(fn func(State)) {
	s.observer = fn
}

// NewGame drops the current game and asks the engine for a fresh one.
func (s *Session) NewGame() {
	s.st.Over = nil
	s.turnActive = false
	s.clearAllHighlights()
	s.st.Overlay.InteractionEnabled = false
	seq := s.nextSeq()

	call(s, s.gw.NewGame, func(gs base.GameState, err error) {
		if err != nil {
			s.fail(msgNewGame, err, false)
			return
		}
		if s.install(gs, seq) {
			s.logx.Info("new game started")
			s.beginTurn()
		}
	})
}

// Refresh refetches the authoritative state and derives highlights again.
func (s *Session) Refresh() {
	s.clearAllHighlights()
	s.st.Overlay.InteractionEnabled = false
	s.resync(true)
}

// Post queues fn on the loop goroutine. Safe from any goroutine.
func (s *Session) Post(fn func()) bool {
	return s.post(fn)
}

func (s *Session) post(fn func()) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.inbox <- fn:
		return true
	case <-s.done:
		return false
	}
}

func (s *Session) nextSeq() uint64 {
	s.seq++
	return s.seq
}

// call runs fn off the loop and hands its result to then on the loop.
func call[T any](s *Session, fn func(context.Context) (T, error), then func(T, error)) {
	s.pending++
	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.CallTimeout)
	go func() {
		v, err := fn(ctx)
		cancel()
		s.post(func() {
			s.pending--
			then(v, err)
		})
	}()
}

func (s *Session) handle(fn func()) {
	fn()
	if s.observer != nil {
		s.observer(s.st)
	}
}

// Pump processes everything already queued without blocking and reports how
// many items ran.
func (s *Session) Pump() int {
	n := 0
	for {
		select {
		case fn := <-s.inbox:
			s.handle(fn)
		case ev := <-s.events:
			s.handle(func() { s.dispatch(ev) })
		default:
			return n
		}
		n++
	}
}

// Step blocks until one item has been processed.
func (s *Session) Step(ctx context.Context) error {
	select {
	case fn := <-s.inbox:
		s.handle(fn)
	case ev := <-s.events:
		s.handle(func() { s.dispatch(ev) })
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrStopped
	}
	return nil
}

// Run processes items until ctx is done or the session is closed.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := s.Step(ctx); err != nil {
			if errors.Is(err, ErrStopped) {
				return nil
			}
			return err
		}
	}
}

// Settle runs the loop until no remote call is pending and nothing is queued.
// Timers still armed are not waited for.
func (s *Session) Settle(ctx context.Context) error {
	for s.pending > 0 || len(s.inbox) > 0 || len(s.events) > 0 {
		if err := s.Step(ctx); err != nil {
			return err
		}
	}
	return nil
}
