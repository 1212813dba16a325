package host

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/swarm-beacon/internal/core"
	"github.com/vovakirdan/swarm-beacon/internal/game"
)

// ErrEmptyMessage is returned when decoding zero bytes.
var ErrEmptyMessage = errors.New("host: empty message")

// Encode marshals an outbound message.
func Encode(msg any) ([]byte, error) {
	if msg == nil {
		return nil, errors.New("host: trying to encode nil message")
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("host: encode: %w", err)
	}
	return b, nil
}

// DecodeType extracts the "type" field of an inbound message.
func DecodeType(b []byte) (string, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return "", ErrEmptyMessage
	}
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return "", fmt.Errorf("host: decode type: %w", err)
	}
	return head.Type, nil
}

// Decode unmarshals a message of a known type.
func Decode[T any](b []byte) (T, error) {
	var out T
	if len(b) == 0 {
		return out, ErrEmptyMessage
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("host: decode %T: %w", out, err)
	}
	return out, nil
}

// DecodeInit coerces an init message into a host config. Fields are
// independent: a missing or mistyped field falls back to its own default and
// never fails the message. Only a body that is not a JSON object is an error.
func DecodeInit(b []byte) (game.HostConfig, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return game.HostConfig{}, fmt.Errorf("host: decode init: %w", err)
	}
	cfg := game.DefaultHostConfig(0)
	if s, ok := stringField(fields["gameId"]); ok && s != "" {
		cfg.GameID = s
	}
	if s, ok := stringField(fields["roomId"]); ok {
		cfg.RoomID = s
	}
	if s, ok := stringField(fields["username"]); ok && strings.TrimSpace(s) != "" {
		cfg.Username = strings.TrimSpace(s)
	}
	var allow bool
	if raw := fields["allowAbort"]; !isNull(raw) && json.Unmarshal(raw, &allow) == nil {
		cfg.AllowAbort = allow
	}
	cfg.Seed = ResolveSeed(fields["seed"])
	return cfg, nil
}

// ResolveSeed follows the seed fallback chain: a finite number is truncated
// to 32 bits, a string is hashed, anything else draws a random seed.
func ResolveSeed(raw json.RawMessage) uint32 {
	if s, ok := stringField(raw); ok {
		return core.SeedFromString(s)
	}
	var f float64
	if !isNull(raw) && json.Unmarshal(raw, &f) == nil && !math.IsInf(f, 0) {
		if seed, ok := core.SeedFromNumber(f); ok {
			return seed
		}
	}
	return core.RandomSeed()
}

// isNull treats an absent field and an explicit null alike.
func isNull(raw json.RawMessage) bool {
	return raw == nil || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func stringField(raw json.RawMessage) (string, bool) {
	if isNull(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
