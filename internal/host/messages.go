// Package host implements the embedding protocol between the simulation and
// an outer host: the init/ready/outcome messages, lenient coercion of init
// fields, the standalone query bootstrap and the origin filter.
package host

import "github.com/vovakirdan/swarm-beacon/internal/game"

// Version is reported in ready and outcome messages.
const Version = "1.0.0"

// Message types. Field names on the wire are fixed.
const (
	MsgInit    = "init"
	MsgReady   = "ready"
	MsgOutcome = "outcome"
)

// ReadyMessage is sent once when the core starts in embedded mode.
type ReadyMessage struct {
	Type    string `json:"type"`
	GameID  string `json:"gameId"`
	Version string `json:"version"`
}

// OutcomePayload is the final tally of a run.
type OutcomePayload struct {
	Score           int     `json:"score"`
	TimeSurvivedMs  int64   `json:"timeSurvivedMs"`
	MaxAssimilation float64 `json:"maxAssimilation"`
	BeaconCharge    float64 `json:"beaconCharge"`
	Seed            uint32  `json:"seed"`
	Version         string  `json:"version"`
}

// OutcomeMessage is sent once per run when the game reaches its result.
type OutcomeMessage struct {
	Type    string         `json:"type"`
	Outcome string         `json:"outcome"`
	Payload OutcomePayload `json:"payload"`
}

// NewReady builds the ready message for gameID.
func NewReady(gameID string) ReadyMessage {
	return ReadyMessage{Type: MsgReady, GameID: gameID, Version: Version}
}

// NewOutcome converts a finished run into its wire message.
func NewOutcome(rec game.OutcomeRecord) OutcomeMessage {
	return OutcomeMessage{
		Type:    MsgOutcome,
		Outcome: rec.Outcome.String(),
		Payload: OutcomePayload{
			Score:           rec.Score,
			TimeSurvivedMs:  rec.TimeSurvivedMs,
			MaxAssimilation: rec.MaxAssimilation,
			BeaconCharge:    rec.BeaconCharge,
			Seed:            rec.Seed,
			Version:         Version,
		},
	}
}
