package game

import (
	"fmt"
	"math"

	"github.com/vovakirdan/swarm-beacon/internal/core"
)

// Visual characters for rendering
const (
	BulletChar   = '·'
	LatchedColor = core.ColorBrightRed
)

// shipGlyphs are indexed by heading octant, starting at +X and turning
// clockwise in screen space.
var shipGlyphs = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

var tierGlyphs = [3]rune{'o', 'O', '@'}

var typeColors = [3]core.Color{core.ColorGreen, core.ColorYellow, core.ColorMagenta}

// Smallest screen the renderer lays out on.
const (
	MinScreenW = 40
	MinScreenH = 12
)

// RenderSnapshot draws snap onto dst. It only reads snap.
func RenderSnapshot(dst *core.Screen, snap *Snapshot) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()
	if w < MinScreenW || h < MinScreenH {
		dst.DrawTextCentered(h/2, fmt.Sprintf("need %dx%d", MinScreenW, MinScreenH), core.ColorBrightRed)
		return
	}

	field := core.NewRect(0, 1, w, h-3)
	dst.DrawBox(field, core.ColorBlue)
	inner := core.NewRect(field.X+1, field.Y+1, field.W-2, field.H-2)

	drawHUD(dst, snap, w)
	if snap.Phase != PhaseBoot && snap.Phase != PhaseTitle {
		drawField(dst, snap, inner)
	}
	drawMeters(dst, snap, w, h)
	drawOverlay(dst, snap, inner)
}

func drawHUD(dst *core.Screen, snap *Snapshot, w int) {
	left := fmt.Sprintf(" ROUND %d/%d  SCORE %d", snap.Round, snap.TotalRounds, snap.Meters.Score)
	dst.DrawText(0, 0, left, core.ColorBrightWhite)
	right := snap.Username
	if snap.Muted {
		right += "  [muted]"
	}
	right += " "
	dst.DrawText(w-len([]rune(right)), 0, right, core.ColorGray)
}

// project maps a world position onto a cell inside r.
func project(p core.Vec2, snap *Snapshot, r core.Rect) (int, int) {
	x := r.X + int(p.X/snap.WorldW*float64(r.W))
	y := r.Y + int(p.Y/snap.WorldH*float64(r.H))
	return core.Clamp(x, r.X, r.Right()-1), core.Clamp(y, r.Y, r.Bottom()-1)
}

func drawField(dst *core.Screen, snap *Snapshot, r core.Rect) {
	for _, p := range snap.Particles {
		x, y := project(p.Pos, snap, r)
		glyph, color := particleGlyph(p)
		dst.SetColored(x, y, glyph, color)
	}
	for _, b := range snap.Bullets {
		if b.Dead {
			continue
		}
		x, y := project(b.Pos, snap, r)
		dst.SetColored(x, y, BulletChar, core.ColorBrightWhite)
	}
	for _, c := range snap.Clumps {
		if c.Dead {
			continue
		}
		x, y := project(c.Pos, snap, r)
		color := typeColors[c.Type]
		if c.Latched {
			color = LatchedColor
		}
		dst.SetColored(x, y, tierGlyphs[c.Tier], color)
	}

	x, y := project(snap.Ship.Pos, snap, r)
	color := core.ColorBrightCyan
	if snap.Ship.EMPPulse > 0 {
		color = core.ColorBrightBlue
	}
	dst.SetColored(x, y, shipGlyph(snap.Ship.Heading), color)
}

func shipGlyph(heading float64) rune {
	octant := int(math.Round(heading/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return shipGlyphs[octant]
}

// particleGlyph picks the glyph for a particle; the last third of its life
// is drawn faded.
func particleGlyph(p ParticleView) (rune, core.Color) {
	r, c := '.', core.ColorOrange
	switch p.Kind {
	case ParticleExhaust:
	case ParticleMuzzle:
		r, c = '+', core.ColorBrightYellow
	case ParticleDebris:
		r, c = ',', core.ColorGray
	case ParticleRing:
		r, c = '∘', core.ColorBrightBlue
	default:
		if p.LifeFrac > 0.5 {
			r, c = '*', core.ColorBrightYellow
		}
	}
	if p.LifeFrac < 1.0/3 {
		c = c.Dim()
	}
	return r, c
}

func drawMeters(dst *core.Screen, snap *Snapshot, w, h int) {
	barW := (w - 24) / 2
	y := h - 2
	dst.DrawText(1, y, "ASSIM", core.ColorBrightRed)
	dst.DrawBar(7, y, barW, snap.Meters.Assimilation/100, core.ColorRed)
	dst.DrawText(7+barW+1, y, fmt.Sprintf("%3.0f", snap.Meters.Assimilation), core.ColorWhite)

	bx := w/2 + 1
	dst.DrawText(bx, y, "BEACON", core.ColorBrightCyan)
	dst.DrawBar(bx+7, y, barW, snap.Meters.Beacon/100, core.ColorCyan)
	dst.DrawText(bx+7+barW+1, y, fmt.Sprintf("%3.0f", snap.Meters.Beacon), core.ColorWhite)

	dst.DrawText(1, h-1, empStatus(snap), core.ColorBrightBlue)
}

func empStatus(snap *Snapshot) string {
	if snap.EMPCharges == 0 {
		return "EMP spent"
	}
	status := "EMP ready [E]"
	if snap.EMPCooldown > 0 {
		status = fmt.Sprintf("EMP %.1fs", snap.EMPCooldown)
	}
	if snap.EMPCharges > 0 {
		status += fmt.Sprintf("  charges %d", snap.EMPCharges)
	}
	return status
}

func drawOverlay(dst *core.Screen, snap *Snapshot, r core.Rect) {
	mid := r.Y + r.H/2
	//exhaustive:enforce
	switch snap.Phase {
	case PhaseBoot:
		dst.DrawTextCentered(mid, "waiting for host", core.ColorGray)
	case PhaseTitle:
		dst.DrawTextCentered(mid-2, "S W A R M   B E A C O N", core.ColorBrightCyan)
		dst.DrawTextCentered(mid, "clear the swarm, charge the beacon", core.ColorWhite)
		dst.DrawTextCentered(mid+2, "ENTER to launch", core.ColorBrightYellow)
	case PhasePlaying:
	case PhasePaused:
		dst.DrawTextCentered(mid, "PAUSED", core.ColorBrightYellow)
		hint := "P resume  R title"
		if snap.AllowAbort {
			hint += "  X abort"
		}
		dst.DrawTextCentered(mid+1, hint, core.ColorGray)
	case PhaseRoundComplete:
		dst.DrawTextCentered(mid, fmt.Sprintf("ROUND %d COMPLETE", snap.Round), core.ColorBrightGreen)
		dst.DrawTextCentered(mid+1, fmt.Sprintf("ENTER for round %d", snap.Round+1), core.ColorGray)
	case PhaseResult:
		title, color := "ABORTED", core.ColorGray
		switch snap.Outcome {
		case OutcomeWin:
			title, color = "RESCUED", core.ColorBrightGreen
		case OutcomeLose:
			title, color = "ASSIMILATED", core.ColorBrightRed
		}
		dst.DrawTextCentered(mid-1, title, color)
		dst.DrawTextCentered(mid, fmt.Sprintf("score %d  peak assimilation %.1f%%", snap.Meters.Score, snap.Meters.MaxAssimilation), core.ColorWhite)
		dst.DrawTextCentered(mid+1, "R to return to title", core.ColorGray)
	}
}
