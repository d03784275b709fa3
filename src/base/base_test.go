package base

import (
	"encoding/json"
	"sort"
	"testing"
)

// alternating start layout: even index W,B,W; odd index B,W,B
func startBoard() Board {
	var b Board
	for i := range b {
		if i%2 == 0 {
			b[i] = PieceStack{Pieces: []Player{White, Black, White}}
		} else {
			b[i] = PieceStack{Pieces: []Player{Black, White, Black}}
		}
	}
	return b
}

func TestPiecesStartLayout(t *testing.T) {
	b := startBoard()
	pieces := Pieces(&b)
	if len(pieces) != 24 {
		t.Fatalf("expected 24 pieces, got %d", len(pieces))
	}

	perPos := map[Position][]Piece{}
	for _, p := range pieces {
		perPos[p.Position] = append(perPos[p.Position], p)
	}
	for _, pos := range AllPositions() {
		got := perPos[pos]
		if len(got) != 3 {
			t.Fatalf("%s: expected 3 pieces, got %d", pos, len(got))
		}
		for h, p := range got {
			if p.Height != h {
				t.Errorf("%s: piece %d has height %d", pos, h, p.Height)
			}
			want := b[pos].Pieces[h]
			if p.Color != want {
				t.Errorf("%s/%d: color %s, want %s", pos, h, p.Color, want)
			}
		}
	}
}

func TestPiecesDeterministic(t *testing.T) {
	b := startBoard()
	b[S] = PieceStack{}
	b[E] = PieceStack{Pieces: []Player{Black}}

	key := func(ps []Piece) []string {
		out := make([]string, 0, len(ps))
		for _, p := range ps {
			out = append(out, p.Position.String()+"/"+string(rune('0'+p.Height))+"/"+p.Color.Short())
		}
		sort.Strings(out)
		return out
	}
	first := key(Pieces(&b))
	second := key(Pieces(&b))
	if len(first) != len(second) {
		t.Fatalf("piece counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("piece multisets differ at %d: %s vs %s", i, first[i], second[i])
		}
	}
}

func TestPositionIndexBijection(t *testing.T) {
	for i := 0; i < PositionCount; i++ {
		p, err := PositionFromIndex(i)
		if err != nil {
			t.Fatalf("index %d: %v", i, err)
		}
		if p.Index() != i {
			t.Fatalf("index %d maps back to %d", i, p.Index())
		}
		back, err := ParsePosition(p.String())
		if err != nil || back != p {
			t.Fatalf("label %s does not parse back: %v", p, err)
		}
	}
	if _, err := PositionFromIndex(8); err == nil {
		t.Fatal("expected error for index 8")
	}
}

func TestPositionSet(t *testing.T) {
	s := SetOf(N, E, E, NW)
	if s.Len() != 3 {
		t.Fatalf("len = %d, want 3", s.Len())
	}
	if !s.Has(E) || s.Has(S) {
		t.Fatalf("unexpected membership in %s", s)
	}
	s = s.Remove(E).Add(NoPosition)
	if got := s.String(); got != "{N,NW}" {
		t.Fatalf("got %s", got)
	}
}

func TestActionJSON(t *testing.T) {
	tests := []struct {
		name   string
		action MoveAction
		wire   string
	}{
		{"place", Place(N, Black), `{"Place":{"position":"N","player":"Black"}}`},
		{"move", Move(E, S), `{"Move":{"from":"E","to":"S"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.action)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tt.wire {
				t.Fatalf("wire = %s, want %s", data, tt.wire)
			}
			var back MoveAction
			if err := json.Unmarshal([]byte(tt.wire), &back); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if back != tt.action {
				t.Fatalf("decoded %v, want %v", back, tt.action)
			}
		})
	}

	var a MoveAction
	if err := json.Unmarshal([]byte(`{"Jump":{}}`), &a); err == nil {
		t.Fatal("expected error for unknown action tag")
	}
}

func TestGameStateDecode(t *testing.T) {
	wire := `{
		"board": {"N": {"pieces": ["White","Black"]}, "SE": {"pieces": []}},
		"current_player": "White",
		"turn_phase": "WaitingForSecondMove",
		"second_best_available": true,
		"winner": "Black"
	}`
	var gs GameState
	if err := json.Unmarshal([]byte(wire), &gs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if gs.Board[N].Height() != 2 || gs.Board[N].Top() != Black {
		t.Fatalf("unexpected N stack %+v", gs.Board[N])
	}
	if gs.Board[S].Height() != 0 {
		t.Fatalf("absent position should be empty")
	}
	if gs.CurrentPlayer != White || gs.TurnPhase != WaitingForSecondMove || !gs.SecondBestAvailable {
		t.Fatalf("unexpected state %+v", gs)
	}
	if gs.Winner != Black {
		t.Fatalf("winner = %s", gs.Winner)
	}

	tooTall := `{"board": {"N": {"pieces": ["White","Black","White","Black"]}}, "current_player": "Black", "turn_phase": "WaitingForMove", "second_best_available": false}`
	if err := json.Unmarshal([]byte(tooTall), &gs); err == nil {
		t.Fatal("expected error for a stack taller than 3")
	}
}

func TestBoardString(t *testing.T) {
	var b Board
	if b.String() != "-" {
		t.Fatalf("empty board = %q", b.String())
	}
	b[N] = PieceStack{Pieces: []Player{Black}}
	b[E] = PieceStack{Pieces: []Player{White, Black}}
	if got := b.String(); got != "N:B E:WB" {
		t.Fatalf("board = %q", got)
	}
}
