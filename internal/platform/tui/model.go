package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/swarm-beacon/internal/audio"
	"github.com/vovakirdan/swarm-beacon/internal/bot"
	"github.com/vovakirdan/swarm-beacon/internal/config"
	"github.com/vovakirdan/swarm-beacon/internal/core"
	"github.com/vovakirdan/swarm-beacon/internal/game"
	"github.com/vovakirdan/swarm-beacon/internal/host"
	"github.com/vovakirdan/swarm-beacon/internal/storage"
)

// Options configures a terminal session.
type Options struct {
	TickRate int
	Tuning   config.Tuning

	// Host is applied at startup in standalone mode.
	Host game.HostConfig

	// Bridge and Inbound switch the session to embedded mode: the game
	// waits in Boot until the host sends an init.
	Bridge  *host.Bridge
	Inbound <-chan host.Message

	Sounds    *audio.SoundManager // may be nil
	Store     *storage.Store      // may be nil
	Autopilot bool
	Mono      bool
	Logger    *log.Logger
}

// Model is the Bubble Tea model for a run.
type Model struct {
	game     *game.Game
	screen   *core.Screen
	renderer *Renderer
	keys     KeyMap
	help     help.Model
	holder   *Holder
	pilot    *bot.Pilot
	opts     Options

	lastTick time.Time
	width    int
	height   int
	quitting bool
}

// hostMsg carries an inbound host message into the update loop.
type hostMsg host.Message

// hostClosedMsg reports that the host stream ended.
type hostClosedMsg struct{}

// NewModel creates a model. The screen is sized on the first WindowSizeMsg.
func NewModel(opts Options) Model {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	m := Model{
		game:     game.New(opts.Tuning),
		screen:   core.NewScreen(80, 24),
		renderer: NewRenderer(opts.Mono),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		holder:   NewHolder(HoldDuration),
		opts:     opts,
		width:    80,
		height:   24,
	}
	if opts.Autopilot {
		m.pilot = bot.NewPilot(bot.DefaultProfile())
	}
	return m
}

// Game exposes the running simulation.
func (m Model) Game() *game.Game { return m.game }

// Init starts the tick loop and, in embedded mode, announces the core.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.opts.TickRate)}
	if m.opts.Bridge != nil {
		if err := m.opts.Bridge.Ready(m.opts.Host.GameID); err != nil {
			m.opts.Logger.Warn("could not announce ready", "error", err)
		}
		cmds = append(cmds, m.waitHost())
	} else {
		m.game.ApplyInit(m.opts.Host)
	}
	return tea.Batch(cmds...)
}

// waitHost blocks on the next inbound host message.
func (m Model) waitHost() tea.Cmd {
	in := m.opts.Inbound
	if in == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-in
		if !ok {
			return hostClosedMsg{}
		}
		return hostMsg(msg)
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case TickMsg:
		return m.handleTick(time.Time(msg))
	case hostMsg:
		if cfg, ok := m.opts.Bridge.Handle(host.Message(msg)); ok {
			m.game.ApplyInit(cfg)
			m.holder.Release()
		}
		return m, m.waitHost()
	case hostClosedMsg:
		m.opts.Logger.Debug("host stream closed")
		return m, nil
	}
	return m, nil
}

func (m *Model) resize() {
	helpRows := 1
	if m.help.ShowAll {
		helpRows = len(m.keys.FullHelp()[0])
	}
	m.help.Width = m.width
	m.screen.Resize(m.width, max(m.height-helpRows, 1))
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	}
	m.holder.Press(m.keys.Action(msg), time.Now())
	return m, nil
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := frameDT(m.lastTick, now, m.opts.TickRate)
	m.lastTick = now

	in := m.holder.Frame(now)
	if m.pilot != nil {
		snap := m.game.Snapshot()
		auto := m.pilot.Decide(&snap)
		for a, on := range in.Actions {
			if on && !a.IsLevel() {
				auto.Set(a)
			}
		}
		in = auto
	}

	res := m.game.Step(in, dt)
	if m.opts.Sounds != nil {
		m.opts.Sounds.SetMuted(m.game.Muted())
		m.opts.Sounds.Handle(res.Events)
	}
	if res.Outcome != nil {
		m.recordOutcome(*res.Outcome)
	}
	return m, tickCmd(m.opts.TickRate)
}

// recordOutcome forwards the outcome to the host and the ledger. Both are
// best-effort; the run is already over.
func (m Model) recordOutcome(rec game.OutcomeRecord) {
	h := m.game.Host()
	m.opts.Logger.Info("run finished",
		"user", h.Username, "outcome", rec.Outcome, "score", rec.Score, "round", rec.Round)
	if m.opts.Bridge != nil {
		if _, err := m.opts.Bridge.Outcome(rec); err != nil {
			m.opts.Logger.Warn("could not send outcome", "error", err)
		}
	}
	if m.opts.Store != nil {
		if _, err := m.opts.Store.SaveRun(storage.NewRunEntry(h, rec)); err != nil {
			m.opts.Logger.Warn("could not save run", "error", err)
		}
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	snap := m.game.Snapshot()
	game.RenderSnapshot(m.screen, &snap)
	return m.renderer.Render(m.screen) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
