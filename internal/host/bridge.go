package host

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/swarm-beacon/internal/game"
)

// AnyOrigin disables origin filtering.
const AnyOrigin = "*"

// Message is an inbound message together with the origin it arrived from.
type Message struct {
	Origin string
	Data   []byte
}

// Sender delivers outbound messages to the host.
type Sender interface {
	Send(msg any) error
}

// AcceptOrigin reports whether a message from origin may be processed when
// the expected host origin is target. An unknown target ("" or "*") accepts
// everything.
func AcceptOrigin(target, origin string) bool {
	if target == "" || target == AnyOrigin {
		return true
	}
	return target == origin
}

// Bridge mediates between a game and its host: it filters and decodes
// inbound messages and sends ready and outcome messages at most once each.
type Bridge struct {
	sender Sender
	target string
	logger *log.Logger

	mu          sync.Mutex
	readySent   bool
	outcomeSent bool
}

// NewBridge creates a bridge that sends through s and only accepts messages
// from target. logger may be nil.
func NewBridge(s Sender, target string, logger *log.Logger) *Bridge {
	if logger == nil {
		logger = log.Default()
	}
	return &Bridge{sender: s, target: target, logger: logger}
}

// Ready announces the core once. Later calls are no-ops.
func (b *Bridge) Ready(gameID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.readySent {
		return nil
	}
	if err := b.sender.Send(NewReady(gameID)); err != nil {
		return err
	}
	b.readySent = true
	return nil
}

// Handle filters and decodes an inbound message. It returns the coerced
// config and true for an accepted init; cross-origin, unknown and malformed
// messages are dropped silently. An accepted init re-arms the outcome latch.
func (b *Bridge) Handle(msg Message) (game.HostConfig, bool) {
	if !AcceptOrigin(b.target, msg.Origin) {
		b.logger.Debug("dropping cross-origin message", "origin", msg.Origin, "want", b.target)
		return game.HostConfig{}, false
	}
	typ, err := DecodeType(msg.Data)
	if err != nil {
		b.logger.Debug("dropping malformed message", "error", err)
		return game.HostConfig{}, false
	}
	if typ != MsgInit {
		b.logger.Debug("ignoring message", "type", typ)
		return game.HostConfig{}, false
	}
	cfg, err := DecodeInit(msg.Data)
	if err != nil {
		b.logger.Debug("dropping malformed init", "error", err)
		return game.HostConfig{}, false
	}
	b.mu.Lock()
	b.outcomeSent = false
	b.mu.Unlock()
	b.logger.Info("init applied", "gameId", cfg.GameID, "room", cfg.RoomID, "user", cfg.Username, "seed", cfg.Seed)
	return cfg, true
}

// Outcome sends the outcome of a run. Only the first call after
// construction or after an accepted init sends; it reports whether it did.
func (b *Bridge) Outcome(rec game.OutcomeRecord) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.outcomeSent {
		return false, nil
	}
	b.outcomeSent = true
	if err := b.sender.Send(NewOutcome(rec)); err != nil {
		return true, err
	}
	return true, nil
}
