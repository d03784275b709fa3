package cli

import (
	"fmt"
	"io"
	"strings"

	"secondbest/src/base"
	"secondbest/src/session"
)

// ANSI-code
const (
	reset  = "\033[0m"
	boldF  = "\033[1m"
	whiteF = "\033[97m"
	blackF = "\033[30;47m"
	dimF   = "\033[90m"
	cyanF  = "\033[36m"
	yellF  = "\033[33m"
	redF   = "\033[31m"
)

// ringGrid lays the ring out on a 3x3 grid, NoPosition is the hub.
var ringGrid = [3][3]base.Position{
	{base.NW, base.N, base.NE},
	{base.W, base.NoPosition, base.E},
	{base.SW, base.S, base.SE},
}

type DrawFunc func(w io.Writer, st session.State, color bool)

// PrintRing draws the eight stacks bottom-to-top with their highlight markers:
// '*' accepts a placement or a destination, '+' may be picked up, '^' is lifted.
func PrintRing(w io.Writer, st session.State, color bool) {
	paint := func(code, s string) string {
		if !color {
			return s
		}
		return code + s + reset
	}

	fmt.Fprintln(w)
	for _, row := range ringGrid {
		var line strings.Builder
		for _, pos := range row {
			if pos == base.NoPosition {
				line.WriteString(paint(dimF, "     .     "))
				continue
			}
			line.WriteString(cell(st, pos, paint))
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
	fmt.Fprintln(w)
	printStatus(w, st, paint)
}

func cell(st session.State, pos base.Position, paint func(code, s string) string) string {
	stack := st.Game.Board.At(pos)
	var pieces strings.Builder
	for _, p := range stack.Pieces {
		if p == base.Black {
			pieces.WriteString(paint(blackF, "B"))
		} else {
			pieces.WriteString(paint(whiteF+boldF, "W"))
		}
	}
	pieces.WriteString(strings.Repeat("_", base.MaxStackHeight-stack.Height()))

	marker := " "
	ov := st.Overlay
	switch {
	case ov.Lifted.Has(pos):
		marker = paint(yellF, "^")
	case ov.Cells.Has(pos):
		marker = paint(cyanF, "*")
	case ov.Pieces.Has(pos):
		marker = paint(cyanF, "+")
	}
	return fmt.Sprintf("%-2s [%s]%s  ", pos, pieces.String(), marker)
}

func printStatus(w io.Writer, st session.State, paint func(code, s string) string) {
	if !st.Ready {
		fmt.Fprintln(w, "waiting for the engine...")
		return
	}
	input := "locked"
	if st.Overlay.InteractionEnabled {
		input = "open"
	}
	fmt.Fprintf(w, "turn: %s  phase: %s  input: %s\n", st.CurrentPlayer, st.Phase, input)
	if st.Overlay.Origin != base.NoPosition {
		fmt.Fprintf(w, "selected: %s\n", st.Overlay.Origin)
	}
	if st.CanDeclareSecondBest() {
		fmt.Fprintln(w, "second best may be declared ('second')")
	}
	if st.Overlay.BannerVisible {
		fmt.Fprintln(w, paint(yellF+boldF, "*** Second Best! ***"))
	}
	if st.Overlay.ErrorMessage != "" {
		fmt.Fprintln(w, paint(redF, st.Overlay.ErrorMessage))
	}
	if st.Over != nil {
		if st.Over.Winner == base.NoPlayer {
			fmt.Fprintf(w, "game over: draw (%s)\n", st.Over.Reason)
		} else {
			fmt.Fprintf(w, "game over: %s wins (%s)\n", st.Over.Winner, st.Over.Reason)
		}
	}
}
