package core

import "math"

// Vec2 is a 2D vector in world units.
// Methods use value receivers and return new values; callers that need
// in-place updates assign the result back to the field.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// FromAngle returns the unit vector pointing along angle (radians).
func FromAngle(angle float64) Vec2 {
	return Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// LenSq returns the squared length.
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len returns the Euclidean length.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Angle returns the bearing of v in radians.
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Normalize returns the unit vector in the direction of v.
// The zero vector normalizes to zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// ClampLen limits the length of v to max while preserving direction.
func (v Vec2) ClampLen(max float64) Vec2 {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Scale(max / l)
}

// WrapScalar folds x into [0, extent).
func WrapScalar(x, extent float64) float64 {
	if extent <= 0 {
		return x
	}
	x = math.Mod(x, extent)
	if x < 0 {
		x += extent
	}
	// math.Mod of a tiny negative can round up to extent exactly.
	if x >= extent {
		x = 0
	}
	return x
}

// Wrap folds a position onto the torus of size w x h.
func Wrap(p Vec2, w, h float64) Vec2 {
	return Vec2{X: WrapScalar(p.X, w), Y: WrapScalar(p.Y, h)}
}

// WrapDelta returns the shortest vector from a to b on a torus of size w x h.
// An axis whose naive delta exceeds half the extent is shifted by one full
// extent, which is exact for a single wrap.
func WrapDelta(a, b Vec2, w, h float64) Vec2 {
	d := b.Sub(a)
	if d.X > w/2 {
		d.X -= w
	} else if d.X < -w/2 {
		d.X += w
	}
	if d.Y > h/2 {
		d.Y -= h
	} else if d.Y < -h/2 {
		d.Y += h
	}
	return d
}

// Damp applies exponential damping at rate k over dt seconds.
func Damp(v Vec2, k, dt float64) Vec2 {
	return v.Scale(math.Exp(-k * dt))
}
