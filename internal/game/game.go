package game

import (
	"math"

	"github.com/vovakirdan/swarm-beacon/internal/config"
	"github.com/vovakirdan/swarm-beacon/internal/core"
)

// DefaultGameID identifies this game to a host that did not name it.
const DefaultGameID = "swarm-beacon"

// DefaultUsername is used when the host supplies no usable name.
const DefaultUsername = "Pilot"

// HostConfig is the run configuration applied by an init message or by a
// standalone start. It is immutable for the run once applied.
type HostConfig struct {
	GameID     string
	RoomID     string
	Username   string
	AllowAbort bool
	Seed       uint32
}

// DefaultHostConfig returns the per-field defaults with the given seed.
func DefaultHostConfig(seed uint32) HostConfig {
	return HostConfig{
		GameID:     DefaultGameID,
		Username:   DefaultUsername,
		AllowAbort: true,
		Seed:       seed,
	}
}

// Meters are the run's accumulators.
type Meters struct {
	Assimilation    float64
	MaxAssimilation float64
	Beacon          float64
	Score           int
}

// StepResult is what one Step hands back to the caller.
type StepResult struct {
	Phase   Phase
	Events  []Event
	Outcome *OutcomeRecord // non-nil only on the tick the outcome is emitted
}

// Game is the simulation context. Every mutable field of a session lives
// here; nothing is package-level.
type Game struct {
	tuning     config.Tuning
	difficulty *config.DifficultyManager
	worldW     float64
	worldH     float64

	host HostConfig
	rng  *core.RNG
	fx   *core.RNG // cosmetic stream; particles never draw from rng

	phase       Phase
	outcome     Outcome
	outcomeSent bool
	pending     *OutcomeRecord

	round      RoundConfig
	roundTime  float64
	spawnTimer float64
	empCharges int

	ship   Ship
	store  Store
	nextID uint64
	meters Meters

	muted  bool
	tick   uint64
	events []Event
}

// New creates a game in PhaseBoot. It does nothing until ApplyInit.
func New(t config.Tuning) *Game {
	g := &Game{
		tuning:     t,
		difficulty: config.NewDifficultyManager(t.Director),
		worldW:     t.World.Width,
		worldH:     t.World.Height,
		rng:        core.NewRNG(core.FallbackSeed),
		fx:         core.NewRNG(fxSeed(core.FallbackSeed)),
		phase:      PhaseBoot,
	}
	g.resetRun()
	return g
}

// ApplyInit applies a host configuration from any phase. In-flight round
// state is discarded, the RNG is reseeded, the outcome latch is re-armed and
// the game lands on the title screen.
func (g *Game) ApplyInit(h HostConfig) {
	if h.Username == "" {
		h.Username = DefaultUsername
	}
	if h.GameID == "" {
		h.GameID = DefaultGameID
	}
	if h.Seed == 0 {
		h.Seed = core.FallbackSeed
	}
	g.host = h
	g.rng = core.NewRNG(h.Seed)
	g.fx = core.NewRNG(fxSeed(h.Seed))
	g.outcomeSent = false
	g.pending = nil
	g.events = g.events[:0]
	g.resetRun()
	g.setPhase(PhaseTitle)
}

// SetWorldSize changes the toroidal extents, e.g. when the viewport resizes.
// Positions are folded into the new bounds immediately.
func (g *Game) SetWorldSize(w, h float64) {
	if w <= 0 || h <= 0 || math.IsNaN(w) || math.IsNaN(h) {
		return
	}
	g.worldW, g.worldH = w, h
	g.ship.Pos = g.wrap(g.ship.Pos)
	for i := range g.store.Clumps {
		g.store.Clumps[i].Pos = g.wrap(g.store.Clumps[i].Pos)
	}
	for i := range g.store.Bullets {
		g.store.Bullets[i].Pos = g.wrap(g.store.Bullets[i].Pos)
	}
}

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.phase }

// Host returns the applied host configuration.
func (g *Game) Host() HostConfig { return g.host }

// Muted reports whether audio output is muted.
func (g *Game) Muted() bool { return g.muted }

// Step advances the session by dt seconds under the given intents. dt is
// clamped to [0, MaxDT]; non-finite values count as zero.
func (g *Game) Step(in core.InputFrame, dt float64) StepResult {
	g.events = g.events[:0]
	g.pending = nil
	dt = g.clampDT(dt)

	if in.Has(core.ActionMute) {
		g.muted = !g.muted
		g.emit(Event{Kind: EventMuteToggled, Muted: g.muted})
	}

	//exhaustive:enforce
	switch g.phase {
	case PhaseBoot:
		// Nothing runs until ApplyInit.
	case PhaseTitle:
		if in.Has(core.ActionConfirm) {
			g.startRound(1)
			g.setPhase(PhasePlaying)
		}
	case PhasePlaying:
		switch {
		case in.Has(core.ActionAbort) && g.host.AllowAbort:
			g.finish(OutcomeAbort)
		case in.Has(core.ActionPause):
			g.setPhase(PhasePaused)
		default:
			g.simulate(in, dt)
		}
	case PhasePaused:
		switch {
		case in.Has(core.ActionAbort) && g.host.AllowAbort:
			g.finish(OutcomeAbort)
		case in.Has(core.ActionRestart):
			g.toTitle()
		case in.Has(core.ActionPause):
			g.setPhase(PhasePlaying)
		}
	case PhaseRoundComplete:
		if in.Has(core.ActionConfirm) {
			next := g.round.Round + 1
			g.startRound(next)
			g.emit(Event{Kind: EventRoundAdvanced, Round: g.round.Round})
			g.setPhase(PhasePlaying)
		}
	case PhaseResult:
		if in.Has(core.ActionRestart) {
			g.toTitle()
		}
	}

	res := StepResult{Phase: g.phase, Outcome: g.pending}
	if len(g.events) > 0 {
		res.Events = append([]Event(nil), g.events...)
	}
	return res
}

// simulate runs one Playing tick in the fixed order: EMP, physics, director,
// collisions, meters, evaluation.
func (g *Game) simulate(in core.InputFrame, dt float64) {
	g.tick++
	g.roundTime += dt

	if in.Has(core.ActionEMP) {
		g.TryEMP()
	}
	g.updateShip(in, dt)
	g.updateBullets(dt)
	g.updateClumps(dt)
	g.runDirector(dt)
	g.resolveBulletHits()
	g.resolveLatches()
	g.updateParticles(dt)
	g.updateMeters(dt)
	g.store.Compact()
	g.evaluate()
}

func (g *Game) clampDT(dt float64) float64 {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		return 0
	}
	return math.Min(dt, g.tuning.World.MaxDT)
}

// evaluate applies the end-of-tick checks. A loss takes precedence over a
// full beacon in the same tick.
func (g *Game) evaluate() {
	if g.meters.Assimilation >= 100 {
		g.finish(OutcomeLose)
		return
	}
	if g.meters.Beacon >= 100 {
		if g.round.Final {
			g.finish(OutcomeWin)
			return
		}
		g.setPhase(PhaseRoundComplete)
	}
}

// finish enters PhaseResult and emits the outcome if the latch allows it.
func (g *Game) finish(o Outcome) {
	g.outcome = o
	g.setPhase(PhaseResult)
	g.emitOutcome()
}

// emitOutcome produces the outcome record at most once per arming of the
// latch. It reports whether a record was produced.
func (g *Game) emitOutcome() bool {
	if g.outcomeSent || g.outcome == OutcomeNone {
		return false
	}
	g.outcomeSent = true
	rec := g.outcomeRecord()
	g.pending = &rec
	g.emit(Event{Kind: EventOutcome, Outcome: g.outcome, Round: g.round.Round})
	return true
}

func (g *Game) outcomeRecord() OutcomeRecord {
	return OutcomeRecord{
		Outcome:         g.outcome,
		Score:           g.meters.Score,
		TimeSurvivedMs:  int64(math.Floor(g.roundTime * 1000)),
		MaxAssimilation: round1(g.meters.MaxAssimilation),
		BeaconCharge:    round1(g.meters.Beacon),
		Round:           g.round.Round,
		Seed:            g.host.Seed,
	}
}

// Outcome returns the current outcome, OutcomeNone until PhaseResult.
func (g *Game) Outcome() Outcome { return g.outcome }

func (g *Game) setPhase(p Phase) {
	if p == g.phase {
		return
	}
	g.emit(Event{Kind: EventPhaseChanged, From: g.phase, To: p})
	g.phase = p
}

func (g *Game) emit(e Event) {
	g.events = append(g.events, e)
}

// toTitle resets meters, entities, timers and round number. The RNG keeps
// its position in the stream.
func (g *Game) toTitle() {
	g.resetRun()
	g.setPhase(PhaseTitle)
}

func (g *Game) resetRun() {
	g.outcome = OutcomeNone
	g.meters = Meters{}
	g.tick = 0
	g.nextID = 1
	g.startRound(1)
}

// startRound begins round r. Score and the assimilation high-water mark
// carry over; everything else is per round.
func (g *Game) startRound(r int) {
	g.round = RoundConfigFor(g.tuning.Rounds, r)
	g.roundTime = 0
	g.spawnTimer = g.difficulty.SpawnInterval(0)
	g.empCharges = g.round.EMPCharges
	g.store.Reset()
	g.meters.Assimilation = 0
	g.meters.Beacon = 0
	g.ship = Ship{
		Pos:     core.V(g.worldW/2, g.worldH/2),
		Heading: -math.Pi / 2,
		Radius:  g.tuning.Ship.Radius,
	}
}

func (g *Game) wrap(p core.Vec2) core.Vec2 {
	return core.Wrap(p, g.worldW, g.worldH)
}

func (g *Game) delta(from, to core.Vec2) core.Vec2 {
	return core.WrapDelta(from, to, g.worldW, g.worldH)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
