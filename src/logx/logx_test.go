package logx

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestGetLoggerLevelByString(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"bogus": zapcore.InfoLevel,
		"":      zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := GetLoggerLevelByString(in); got != want {
			t.Errorf("%q: got %v, want %v", in, got, want)
		}
	}
}

func TestJSONLoggerNamedAndFiltered(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogx(zapcore.InfoLevel, false, false)
	l.InitLogger(&buf)

	s := l.Named("session")
	s.Debug("hidden")
	s.Infof("installed state gen=%d", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected a single line, got %d: %q", len(lines), buf.String())
	}
	var rec map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec["NAME"] != "session" || rec["MESSAGE"] != "installed state gen=3" || rec["LEVEL"] != "info" {
		t.Fatalf("unexpected record %v", rec)
	}
}

func TestNopDoesNotPanic(t *testing.T) {
	l := NewNop()
	l.Named("x").Errorf("ignored %d", 1)
	_ = l.Sync()
}
