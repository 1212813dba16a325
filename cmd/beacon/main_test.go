package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/swarm-beacon/internal/bot"
	"github.com/vovakirdan/swarm-beacon/internal/config"
	"github.com/vovakirdan/swarm-beacon/internal/core"
	"github.com/vovakirdan/swarm-beacon/internal/game"
	"github.com/vovakirdan/swarm-beacon/internal/host"
	"github.com/vovakirdan/swarm-beacon/internal/storage"
	"github.com/vovakirdan/swarm-beacon/internal/telemetry"
)

func TestParseSeed(t *testing.T) {
	tests := []struct {
		in     string
		want   uint32
		wantOK bool
	}{
		{"", 0, false},
		{"  ", 0, false},
		{"42", 42, true},
		{"0x10", 16, true},
		{"4294967297", 1, true},
		{"0", core.FallbackSeed, true},
		{"4294967296", core.FallbackSeed, true},
		{"daily-42", core.SeedFromString("daily-42"), true},
		{"-5", core.SeedFromString("-5"), true},
	}
	for _, tt := range tests {
		got, ok := parseSeed(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parseSeed(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestStandaloneHost(t *testing.T) {
	h, standalone, err := standaloneHost("", "", "7", false)
	if err != nil {
		t.Fatal(err)
	}
	if !standalone || h.Seed != 7 || h.AllowAbort || h.Username != game.DefaultUsername {
		t.Errorf("no query: %+v standalone=%v", h, standalone)
	}

	h, standalone, err = standaloneHost("standalone&username=ace&roomId=r9&seed=abc", "", "", true)
	if err != nil {
		t.Fatal(err)
	}
	if !standalone || h.Username != "ace" || h.RoomID != "r9" || h.Seed != core.SeedFromString("abc") {
		t.Errorf("query: %+v standalone=%v", h, standalone)
	}

	h, standalone, err = standaloneHost("username=ace", "bo", "3", true)
	if err != nil {
		t.Fatal(err)
	}
	if standalone {
		t.Error("query without the standalone flag should not be standalone")
	}
	if h.Username != "bo" || h.Seed != 3 {
		t.Errorf("flags should override the query: %+v", h)
	}

	if _, _, err := standaloneHost("%zz", "", "", true); err == nil {
		t.Error("malformed query should fail")
	}
}

func quietLogger() *log.Logger {
	var buf bytes.Buffer
	return log.New(&buf)
}

func decodeLines(t *testing.T, out string) []map[string]any {
	t.Helper()
	var msgs []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("bad output line %q: %v", line, err)
		}
		msgs = append(msgs, m)
	}
	return msgs
}

func TestServeEmbedded(t *testing.T) {
	in := strings.Join([]string{
		`not json`,
		`{"type":"ping"}`,
		`{"type":"init","seed":11,"username":"ana"}`,
		`{"origin":"https://host.example","data":{"type":"init","seed":"daily"}}`,
	}, "\n") + "\n"
	var out bytes.Buffer
	opts := telemetry.BatchOptions{MaxSeconds: 3, Workers: 1, Profile: bot.DefaultProfile(), Logger: quietLogger()}

	err := serveEmbedded(context.Background(), strings.NewReader(in), &out, config.DefaultTuning(), host.AnyOrigin, opts, quietLogger())
	if err != nil {
		t.Fatalf("serveEmbedded: %v", err)
	}

	msgs := decodeLines(t, out.String())
	if len(msgs) != 3 {
		t.Fatalf("expected ready + 2 outcomes, got %d:\n%s", len(msgs), out.String())
	}
	if msgs[0]["type"] != host.MsgReady || msgs[0]["gameId"] != game.DefaultGameID {
		t.Errorf("first message = %v, want ready", msgs[0])
	}
	for i, m := range msgs[1:] {
		if m["type"] != host.MsgOutcome {
			t.Errorf("message %d = %v, want outcome", i+1, m)
		}
	}
	payload, ok := msgs[1]["payload"].(map[string]any)
	if !ok {
		t.Fatalf("outcome without payload: %v", msgs[1])
	}
	if payload["seed"] != float64(11) {
		t.Errorf("outcome seed = %v, want 11", payload["seed"])
	}
}

func TestServeEmbeddedRespectsOrigin(t *testing.T) {
	in := `{"origin":"https://evil.example","data":{"type":"init","seed":1}}` + "\n"
	var out bytes.Buffer
	opts := telemetry.BatchOptions{MaxSeconds: 1, Profile: bot.DefaultProfile(), Logger: quietLogger()}

	err := serveEmbedded(context.Background(), strings.NewReader(in), &out, config.DefaultTuning(), "https://host.example", opts, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if msgs := decodeLines(t, out.String()); len(msgs) != 1 {
		t.Errorf("cross-origin init should not start a run; got %d messages", len(msgs))
	}
}

func TestPrintScores(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	var empty bytes.Buffer
	if err := printScores(&empty, store, game.DefaultGameID, "", 10); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(empty.String(), "No runs recorded yet.") {
		t.Errorf("empty ledger output:\n%s", empty.String())
	}

	for _, e := range []storage.RunEntry{
		{GameID: game.DefaultGameID, Username: "ana", Outcome: "win", Score: 900, Round: 3, TimeSurvivedMs: 125000},
		{GameID: game.DefaultGameID, Username: "a-very-long-player-name", Outcome: "lose", Score: 120, Round: 1},
	} {
		if _, err := store.SaveRun(e); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if err := printScores(&buf, store, game.DefaultGameID, "", 10); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Top runs - swarm-beacon", "ana", "2:05", "a-very-long…", "Runs: 2  Wins: 1  Best: 900"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestLogHostErrorsReportsReadFailure(t *testing.T) {
	var logs bytes.Buffer
	logger := log.New(&logs)

	tr := host.NewLineTransport(failingReader{err: errors.New("pipe broke")}, io.Discard)
	msgs, errs := tr.Listen(context.Background())
	for range msgs {
	}
	logHostErrors(errs, logger)

	if !strings.Contains(logs.String(), "host input failed") || !strings.Contains(logs.String(), "pipe broke") {
		t.Errorf("read failure was not logged:\n%s", logs.String())
	}
}
