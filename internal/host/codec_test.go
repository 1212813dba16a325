package host

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/vovakirdan/swarm-beacon/internal/core"
	"github.com/vovakirdan/swarm-beacon/internal/game"
)

func TestDecodeType(t *testing.T) {
	typ, err := DecodeType([]byte(`{"type":"init","seed":4}`))
	if err != nil || typ != MsgInit {
		t.Fatalf("expected init, got %q, %v", typ, err)
	}
	if _, err := DecodeType(nil); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("expected ErrEmptyMessage, got %v", err)
	}
	if _, err := DecodeType([]byte(`not json`)); err == nil {
		t.Error("expected an error for invalid JSON")
	}
}

func TestDecodeInitDefaults(t *testing.T) {
	cfg, err := DecodeInit([]byte(`{"type":"init"}`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GameID != game.DefaultGameID || cfg.RoomID != "" || cfg.Username != game.DefaultUsername || !cfg.AllowAbort {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Seed == 0 {
		t.Error("absent seed should draw a non-zero random seed")
	}
}

func TestDecodeInitFields(t *testing.T) {
	tests := []struct {
		name string
		body string
		want game.HostConfig
	}{
		{
			name: "all fields",
			body: `{"type":"init","gameId":"g1","roomId":"r9","username":"ace","allowAbort":false,"seed":42}`,
			want: game.HostConfig{GameID: "g1", RoomID: "r9", Username: "ace", AllowAbort: false, Seed: 42},
		},
		{
			name: "mistyped fields fall back independently",
			body: `{"type":"init","gameId":7,"roomId":["x"],"username":"  ","allowAbort":"no","seed":"beacon"}`,
			want: game.HostConfig{GameID: game.DefaultGameID, Username: game.DefaultUsername, AllowAbort: true, Seed: 1568825369},
		},
		{
			name: "explicit nulls",
			body: `{"type":"init","gameId":null,"allowAbort":null,"seed":0}`,
			want: game.HostConfig{GameID: game.DefaultGameID, Username: game.DefaultUsername, AllowAbort: true, Seed: core.FallbackSeed},
		},
		{
			name: "username trimmed",
			body: `{"type":"init","username":"  Nova ","seed":-1}`,
			want: game.HostConfig{GameID: game.DefaultGameID, Username: "Nova", AllowAbort: true, Seed: 4294967295},
		},
		{
			name: "seed wraps modulo 2^32",
			body: `{"type":"init","seed":4294967301.9}`,
			want: game.HostConfig{GameID: game.DefaultGameID, Username: game.DefaultUsername, AllowAbort: true, Seed: 5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeInit([]byte(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestDecodeInitRejectsNonObject(t *testing.T) {
	if _, err := DecodeInit([]byte(`[1,2]`)); err == nil {
		t.Error("expected an error for a non-object init")
	}
}

func TestResolveSeedFallbacks(t *testing.T) {
	for _, raw := range []string{`true`, `{}`, `null`, `1e999`} {
		if seed := ResolveSeed(json.RawMessage(raw)); seed == 0 {
			t.Errorf("%s: fallback seed must be non-zero", raw)
		}
	}
	if seed := ResolveSeed(nil); seed == 0 {
		t.Error("absent seed must be non-zero")
	}
}

func TestEncodeOutcome(t *testing.T) {
	msg := NewOutcome(game.OutcomeRecord{
		Outcome:         game.OutcomeWin,
		Score:           4200,
		TimeSurvivedMs:  61234,
		MaxAssimilation: 37.5,
		BeaconCharge:    100,
		Seed:            42,
	})
	b, err := Encode(msg)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"type":"outcome","outcome":"win","payload":{"score":4200,"timeSurvivedMs":61234,"maxAssimilation":37.5,"beaconCharge":100,"seed":42,"version":"` + Version + `"}}`
	if string(b) != want {
		t.Errorf("unexpected wire form:\n got %s\nwant %s", b, want)
	}
}

func TestEncodeReady(t *testing.T) {
	b, err := Encode(NewReady("swarm-beacon"))
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode[ReadyMessage](b)
	if err != nil {
		t.Fatal(err)
	}
	if got.Type != MsgReady || got.GameID != "swarm-beacon" || got.Version != Version {
		t.Errorf("unexpected ready %+v", got)
	}
	if _, err := Encode(nil); err == nil {
		t.Error("encoding nil should fail")
	}
}
