package host

import (
	"testing"

	"github.com/vovakirdan/swarm-beacon/internal/core"
	"github.com/vovakirdan/swarm-beacon/internal/game"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		query      string
		standalone bool
		username   string
		room       string
		gameID     string
	}{
		{"", false, game.DefaultUsername, "", game.DefaultGameID},
		{"standalone", true, game.DefaultUsername, "", game.DefaultGameID},
		{"?standalone=1&username=ace", true, "ace", "", game.DefaultGameID},
		{"standalone=false", false, game.DefaultUsername, "", game.DefaultGameID},
		{"standalone=0&roomId=lobby&gameId=custom", false, game.DefaultUsername, "lobby", "custom"},
		{"standalone&username=%20%20", true, game.DefaultUsername, "", game.DefaultGameID},
	}
	for _, tt := range tests {
		b, err := ParseQuery(tt.query)
		if err != nil {
			t.Fatalf("%q: %v", tt.query, err)
		}
		if b.Standalone != tt.standalone || b.Config.Username != tt.username ||
			b.Config.RoomID != tt.room || b.Config.GameID != tt.gameID {
			t.Errorf("%q: got %+v", tt.query, b)
		}
		if !b.Config.AllowAbort {
			t.Errorf("%q: abort should be allowed by default", tt.query)
		}
		if b.Config.Seed == 0 {
			t.Errorf("%q: seed must be non-zero", tt.query)
		}
	}
}

func TestParseQuerySeedIsHashed(t *testing.T) {
	b, err := ParseQuery("standalone&seed=42")
	if err != nil {
		t.Fatal(err)
	}
	if b.Config.Seed != core.SeedFromString("42") {
		t.Errorf("query seed should be hashed as a string, got %d", b.Config.Seed)
	}
}

func TestParseQueryRejectsBadEscapes(t *testing.T) {
	if _, err := ParseQuery("username=%zz"); err == nil {
		t.Error("expected an error for a malformed escape")
	}
}
