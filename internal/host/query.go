package host

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/vovakirdan/swarm-beacon/internal/core"
	"github.com/vovakirdan/swarm-beacon/internal/game"
)

// StandaloneParam selects standalone mode when present in a bootstrap query.
const StandaloneParam = "standalone"

// Bootstrap is the result of parsing a bootstrap query string.
type Bootstrap struct {
	Standalone bool
	Config     game.HostConfig
}

// ParseQuery reads a bootstrap query such as
// "standalone=1&username=ace&seed=daily-42". The standalone flag may be bare;
// "0" and "false" turn it off. A seed, when given, is hashed like an init
// string seed; otherwise a random seed is drawn.
func ParseQuery(raw string) (Bootstrap, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return Bootstrap{}, fmt.Errorf("host: parse query: %w", err)
	}
	b := Bootstrap{Config: game.DefaultHostConfig(0)}
	if values.Has(StandaloneParam) {
		switch strings.ToLower(values.Get(StandaloneParam)) {
		case "0", "false", "no":
		default:
			b.Standalone = true
		}
	}
	if v := values.Get("gameId"); v != "" {
		b.Config.GameID = v
	}
	if values.Has("roomId") {
		b.Config.RoomID = values.Get("roomId")
	}
	if v := strings.TrimSpace(values.Get("username")); v != "" {
		b.Config.Username = v
	}
	if values.Has("seed") {
		b.Config.Seed = core.SeedFromString(values.Get("seed"))
	} else {
		b.Config.Seed = core.RandomSeed()
	}
	return b, nil
}
