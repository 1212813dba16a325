package game

// Store owns every live entity collection. Entities are removed by marking
// them dead during a tick and compacting once at the end, so indices stay
// valid for the whole tick even while children are appended.
type Store struct {
	Bullets   []Bullet
	Clumps    []Clump
	Particles []Particle
}

// Reset empties all collections but keeps their backing arrays.
func (s *Store) Reset() {
	s.Bullets = s.Bullets[:0]
	s.Clumps = s.Clumps[:0]
	s.Particles = s.Particles[:0]
}

// Compact drops dead entities in place, preserving order.
func (s *Store) Compact() {
	s.Bullets = compact(s.Bullets, func(b *Bullet) bool { return b.Dead })
	s.Clumps = compact(s.Clumps, func(c *Clump) bool { return c.Dead })
	s.Particles = compact(s.Particles, func(p *Particle) bool { return p.Dead })
}

// FreeClumps counts live clumps that are not latched.
func (s *Store) FreeClumps() int {
	n := 0
	for i := range s.Clumps {
		if !s.Clumps[i].Dead && !s.Clumps[i].Latched {
			n++
		}
	}
	return n
}

// LatchedClumps counts live latched clumps.
func (s *Store) LatchedClumps() int {
	n := 0
	for i := range s.Clumps {
		if !s.Clumps[i].Dead && s.Clumps[i].Latched {
			n++
		}
	}
	return n
}

func compact[T any](items []T, dead func(*T) bool) []T {
	out := items[:0]
	for i := range items {
		if !dead(&items[i]) {
			out = append(out, items[i])
		}
	}
	var zero T
	for i := len(out); i < len(items); i++ {
		items[i] = zero
	}
	return out
}
