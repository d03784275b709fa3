package engine

import (
	"encoding/json"
	"errors"
	"testing"

	"secondbest/src/base"
)

func TestDecodeEvent(t *testing.T) {
	state := `{"board":{},"current_player":"Black","turn_phase":"WaitingForMove","second_best_available":false}`
	tests := []struct {
		kind    EventKind
		payload string
		check   func(t *testing.T, ev Event)
	}{
		{KindAiMoveCompleted, `{"action":{"Move":{"from":"E","to":"S"}},"new_state":` + state + `}`, func(t *testing.T, ev Event) {
			e := ev.(AiMoveCompleted)
			if e.Action != base.Move(base.E, base.S) || e.NewState.CurrentPlayer != base.Black {
				t.Fatalf("unexpected %+v", e)
			}
		}},
		{KindAiSecondBestDeclared, `{"new_state":` + state + `}`, func(t *testing.T, ev Event) {
			if _, ok := ev.(AiSecondBestDeclared); !ok {
				t.Fatalf("got %T", ev)
			}
		}},
		{KindAiSecondMoveCompleted, `{"action":{"Place":{"position":"NW","player":"White"}},"new_state":` + state + `}`, func(t *testing.T, ev Event) {
			if e := ev.(AiSecondMoveCompleted); e.Action != base.Place(base.NW, base.White) {
				t.Fatalf("unexpected %+v", e)
			}
		}},
		{KindGameOver, `{"winner":"Black","reason":"VerticalLineup"}`, func(t *testing.T, ev Event) {
			if e := ev.(GameOver); e.Winner != base.Black || e.Reason != base.VerticalLineup {
				t.Fatalf("unexpected %+v", e)
			}
		}},
		{KindGameOver, `{"reason":"NoMoves"}`, func(t *testing.T, ev Event) {
			if e := ev.(GameOver); e.Winner != base.NoPlayer || e.Reason != base.NoMoves {
				t.Fatalf("unexpected %+v", e)
			}
		}},
		{KindTurnPhaseChanged, `{"new_phase":"WaitingForSecondBest","current_player":"White"}`, func(t *testing.T, ev Event) {
			if e := ev.(TurnPhaseChanged); e.NewPhase != base.WaitingForSecondBest || e.CurrentPlayer != base.White {
				t.Fatalf("unexpected %+v", e)
			}
		}},
		{KindAiError, `{"message":"boom"}`, func(t *testing.T, ev Event) {
			if e := ev.(AiError); e.Message != "boom" {
				t.Fatalf("unexpected %+v", e)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			ev, err := DecodeEvent(tt.kind, json.RawMessage(tt.payload))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if ev.Kind() != tt.kind {
				t.Fatalf("kind %s, want %s", ev.Kind(), tt.kind)
			}
			tt.check(t, ev)
		})
	}
}

func TestDecodeEventErrors(t *testing.T) {
	if _, err := DecodeEvent("ai_dance", json.RawMessage(`{}`)); err == nil {
		t.Fatal("expected unknown event error")
	}
	if _, err := DecodeEvent(KindGameOver, json.RawMessage(`{"reason":"Tie"}`)); err == nil {
		t.Fatal("expected bad reason error")
	}
}

func TestRemoteError(t *testing.T) {
	var err error = &RemoteError{Method: MethodMakeMove, Message: "illegal"}
	var re *RemoteError
	if !errors.As(err, &re) || re.Method != "make_move" {
		t.Fatalf("errors.As failed for %v", err)
	}
	if err.Error() != "engine: make_move: illegal" {
		t.Fatalf("message %q", err.Error())
	}
}
