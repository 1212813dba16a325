package host

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/swarm-beacon/internal/config"
	"github.com/vovakirdan/swarm-beacon/internal/core"
	"github.com/vovakirdan/swarm-beacon/internal/game"
)

type recordingSender struct {
	sent []any
	err  error
}

func (r *recordingSender) Send(msg any) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func TestAcceptOrigin(t *testing.T) {
	tests := []struct {
		target, origin string
		want           bool
	}{
		{"", "https://evil.example", true},
		{"*", "https://evil.example", true},
		{"https://host.example", "https://host.example", true},
		{"https://host.example", "https://evil.example", false},
		{"https://host.example", "", false},
	}
	for _, tt := range tests {
		if got := AcceptOrigin(tt.target, tt.origin); got != tt.want {
			t.Errorf("AcceptOrigin(%q, %q) = %v, want %v", tt.target, tt.origin, got, tt.want)
		}
	}
}

func TestBridgeDropsCrossOriginInit(t *testing.T) {
	b := NewBridge(&recordingSender{}, "https://host.example", nil)
	body := []byte(`{"type":"init","seed":1}`)
	if _, ok := b.Handle(Message{Origin: "https://evil.example", Data: body}); ok {
		t.Error("cross-origin init should be dropped")
	}
	cfg, ok := b.Handle(Message{Origin: "https://host.example", Data: body})
	if !ok || cfg.Seed != 1 {
		t.Errorf("same-origin init should be accepted, got %+v %v", cfg, ok)
	}
}

func TestBridgeIgnoresOtherMessages(t *testing.T) {
	b := NewBridge(&recordingSender{}, "", nil)
	for _, data := range []string{``, `garbage`, `{"type":"ping"}`, `{"type":"outcome"}`} {
		if _, ok := b.Handle(Message{Data: []byte(data)}); ok {
			t.Errorf("%q should not be treated as init", data)
		}
	}
}

func TestBridgeReadyOnce(t *testing.T) {
	s := &recordingSender{}
	b := NewBridge(s, "", nil)
	for range 3 {
		if err := b.Ready(game.DefaultGameID); err != nil {
			t.Fatal(err)
		}
	}
	if len(s.sent) != 1 {
		t.Errorf("expected one ready, got %d", len(s.sent))
	}
}

func TestBridgeOutcomeLatch(t *testing.T) {
	s := &recordingSender{}
	b := NewBridge(s, "", nil)
	rec := game.OutcomeRecord{Outcome: game.OutcomeLose, Score: 10}

	if sent, err := b.Outcome(rec); !sent || err != nil {
		t.Fatalf("first outcome should send, got %v %v", sent, err)
	}
	if sent, _ := b.Outcome(rec); sent {
		t.Error("second outcome in the same run should be suppressed")
	}
	if len(s.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(s.sent))
	}

	b.Handle(Message{Data: []byte(`{"type":"init"}`)})
	if sent, _ := b.Outcome(rec); !sent {
		t.Error("init should re-arm the outcome latch")
	}
}

func TestBridgeOutcomeSendError(t *testing.T) {
	boom := errors.New("pipe closed")
	b := NewBridge(&recordingSender{err: boom}, "", nil)
	sent, err := b.Outcome(game.OutcomeRecord{Outcome: game.OutcomeAbort})
	if !sent || !errors.Is(err, boom) {
		t.Errorf("expected attempted send with error, got %v %v", sent, err)
	}
	if sent, _ := b.Outcome(game.OutcomeRecord{}); sent {
		t.Error("a failed send still consumes the latch")
	}
}

// TestBridgeDrivesGame runs a full embedded session: init over the
// transport, an aborted run, and exactly one outcome line.
func TestBridgeDrivesGame(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader(`{"origin":"https://host.example","data":{"type":"init","seed":"daily","username":"ace"}}` + "\n")
	tr := NewLineTransport(in, &out)
	b := NewBridge(tr, "https://host.example", nil)
	if err := b.Ready(game.DefaultGameID); err != nil {
		t.Fatal(err)
	}

	msgs, _ := tr.Listen(context.Background())
	var cfg game.HostConfig
	select {
	case msg := <-msgs:
		var ok bool
		if cfg, ok = b.Handle(msg); !ok {
			t.Fatal("init was dropped")
		}
	case <-time.After(time.Second):
		t.Fatal("no message received")
	}
	if cfg.Seed != core.SeedFromString("daily") || cfg.Username != "ace" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	g := game.New(config.DefaultTuning())
	g.ApplyInit(cfg)
	f := core.NewInputFrame()
	f.Set(core.ActionConfirm)
	g.Step(f, 0)
	abort := core.NewInputFrame()
	abort.Set(core.ActionAbort)
	res := g.Step(abort, 1.0/60)
	if res.Outcome == nil {
		t.Fatal("expected an outcome record")
	}
	if _, err := b.Outcome(*res.Outcome); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected ready and outcome lines, got %q", lines)
	}
	msg, err := Decode[OutcomeMessage]([]byte(lines[1]))
	if err != nil {
		t.Fatal(err)
	}
	if msg.Outcome != "abort" || msg.Payload.Seed != cfg.Seed || msg.Payload.Version != Version {
		t.Errorf("unexpected outcome %+v", msg)
	}
}

func TestListenStopsAtEOF(t *testing.T) {
	tr := NewLineTransport(strings.NewReader("{\"type\":\"init\"}\n\n{\"type\":\"x\"}\n"), io.Discard)
	msgs, errc := tr.Listen(context.Background())
	n := 0
	for range msgs {
		n++
	}
	if n != 2 {
		t.Errorf("expected 2 messages, got %d", n)
	}
	if err := <-errc; err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestParseLine(t *testing.T) {
	m := parseLine([]byte(`{"origin":"o","data":{"type":"init"}}`))
	if m.Origin != "o" || string(m.Data) != `{"type":"init"}` {
		t.Errorf("wrapped line parsed as %+v", m)
	}
	m = parseLine([]byte(`{"type":"init"}`))
	if m.Origin != "" || string(m.Data) != `{"type":"init"}` {
		t.Errorf("bare line parsed as %+v", m)
	}
}
