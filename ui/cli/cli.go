package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"golang.org/x/term"

	"secondbest/src/base"
	"secondbest/src/engine"
	"secondbest/src/logx"
	"secondbest/src/session"
)

const helpText = `commands:
  tap <POS>      activate a position (N NE E SE S SW W NW)
  click <X> <Y>  activate canvas coordinates
  second         declare second best
  new            start a new game
  refresh        refetch the game state
  moves          list legal moves
  stack <POS>    show one stack as the engine sees it
  winner         ask the engine for a winner
  can            ask whether second best may be declared
  show           redraw the board
  copy           copy the game state JSON to the clipboard
  help           this text
  q, quit        leave`

// view is what the board printout depends on; redraw skips unchanged views.
type view struct {
	gen     uint64
	ready   bool
	phase   base.TurnPhase
	player  base.Player
	overlay session.Overlay
	offered bool
	over    session.GameOverInfo
	isOver  bool
}

func viewOf(st session.State) view {
	v := view{
		gen:     st.Gen,
		ready:   st.Ready,
		phase:   st.Phase,
		player:  st.CurrentPlayer,
		overlay: st.Overlay,
		offered: st.SecondBestOffered,
	}
	if st.Over != nil {
		v.over, v.isOver = *st.Over, true
	}
	return v
}

type CLIProcessing struct {
	s     *session.Session
	draw  DrawFunc
	in    io.Reader
	out   io.Writer
	color bool
	logx  logx.Logger

	mu    sync.Mutex // out
	last  view
	drawn bool
	wg    sync.WaitGroup // queries
}

func NewCLI(s *session.Session, draw DrawFunc, l logx.Logger) *CLIProcessing {
	return &CLIProcessing{
		s:     s,
		draw:  draw,
		in:    os.Stdin,
		out:   os.Stdout,
		color: term.IsTerminal(int(os.Stdout.Fd())),
		logx:  l,
	}
}

// Run drives the session loop on the calling goroutine and reads commands
// line by line until quit, EOF or ctx is done.
func (c *CLIProcessing) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.s.SetObserver(c.redraw)
	c.printf("%s\n", helpText)
	go c.readLoop(ctx)

	err := c.s.Run(ctx)
	c.wg.Wait()
	return err
}

func (c *CLIProcessing) readLoop(ctx context.Context) {
	defer c.s.Close()
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		quit := make(chan bool, 1)
		if !c.s.Post(func() { quit <- c.handle(ctx, line) }) {
			return
		}
		select {
		case q := <-quit:
			if q {
				return
			}
		case <-ctx.Done():
			return
		}
	}
	if err := scanner.Err(); err != nil {
		c.logx.Errorf("read input: %v", err)
	}
}

func (c *CLIProcessing) printf(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

// redraw runs on the session loop after every processed item.
func (c *CLIProcessing) redraw(st session.State) {
	v := viewOf(st)
	if c.drawn && v == c.last {
		return
	}
	c.last, c.drawn = v, true
	c.show(st)
}

func (c *CLIProcessing) show(st session.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draw(c.out, st, c.color)
}

// handle executes one command on the session loop and reports whether the
// user asked to leave.
func (c *CLIProcessing) handle(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	args := fields[1:]
	gw := c.s.Gateway()

	switch strings.ToLower(fields[0]) {
	case "q", "quit", "exit":
		c.printf("bye\n")
		return true
	case "help", "h", "?":
		c.printf("%s\n", helpText)
	case "show":
		c.show(c.s.State())
	case "copy":
		c.copyState()
	case "new":
		c.s.NewGame()
	case "refresh":
		c.s.Refresh()
	case "tap":
		pos, ok := c.position(args)
		if !ok {
			return false
		}
		if out := c.s.Activate(pos); out == session.Ignored {
			c.printf("nothing to do at %s\n", pos)
		} else {
			c.logx.Debugf("tap %s: %s", pos, out)
		}
	case "click":
		if len(args) != 2 {
			c.printf("usage: click <X> <Y>\n")
			return false
		}
		x, errX := strconv.ParseFloat(args[0], 64)
		y, errY := strconv.ParseFloat(args[1], 64)
		if errX != nil || errY != nil {
			c.printf("bad coordinates: %s %s\n", args[0], args[1])
			return false
		}
		if out := c.s.Click(x, y); out == session.Ignored {
			c.printf("nothing to do at (%g, %g)\n", x, y)
		}
	case "second", "sb":
		if !c.s.DeclareSecondBest() {
			c.printf("second best is not available\n")
		}
	case "moves":
		c.query(ctx, func(ctx context.Context) (string, error) {
			moves, err := gw.LegalMoves(ctx)
			if err != nil {
				return "", err
			}
			parts := make([]string, 0, len(moves))
			for _, m := range moves {
				parts = append(parts, m.String())
			}
			return fmt.Sprintf("legal moves (%d): %s", len(moves), strings.Join(parts, " ")), nil
		})
	case "stack":
		pos, ok := c.position(args)
		if !ok {
			return false
		}
		c.query(ctx, func(ctx context.Context) (string, error) {
			st, err := gw.PositionStack(ctx, pos)
			if err != nil {
				return "", err
			}
			parts := make([]string, 0, st.Height())
			for _, p := range st.Pieces {
				parts = append(parts, p.Short())
			}
			return fmt.Sprintf("%s: [%s] top %s", pos, strings.Join(parts, ""), st.Top()), nil
		})
	case "winner":
		c.query(ctx, func(ctx context.Context) (string, error) {
			w, err := gw.CheckWinner(ctx)
			if err != nil {
				return "", err
			}
			if w == base.NoPlayer {
				return "no winner yet", nil
			}
			return fmt.Sprintf("winner: %s", w), nil
		})
	case "can":
		c.query(ctx, func(ctx context.Context) (string, error) {
			ok, err := gw.CanDeclareSecondBest(ctx)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("second best declarable: %t", ok), nil
		})
	default:
		c.printf("unknown command %q, try 'help'\n", fields[0])
	}
	return false
}

func (c *CLIProcessing) copyState() {
	st := c.s.State()
	if !st.Ready {
		c.printf("no game yet\n")
		return
	}
	data, err := json.Marshal(st.Game)
	if err != nil {
		c.printf("error encode state: %v\n", err)
		return
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		c.logx.Errorf("error copy state to clipboard: %v", err)
		c.printf("clipboard error: %v\n", err)
		return
	}
	c.printf("state copied (%d bytes)\n", len(data))
}

func (c *CLIProcessing) position(args []string) (base.Position, bool) {
	if len(args) != 1 {
		c.printf("expected one position (N NE E SE S SW W NW)\n")
		return base.NoPosition, false
	}
	pos, err := base.ParsePosition(strings.ToUpper(args[0]))
	if err != nil {
		c.printf("%v\n", err)
		return base.NoPosition, false
	}
	return pos, true
}

// query runs a read-only engine call off the session loop.
func (c *CLIProcessing) query(ctx context.Context, fn func(ctx context.Context) (string, error)) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(ctx, engine.CallTimeout)
		defer cancel()
		res, err := fn(ctx)
		if err != nil {
			c.printf("error: %v\n", err)
			return
		}
		c.printf("%s\n", res)
	}()
}
