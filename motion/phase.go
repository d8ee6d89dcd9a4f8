package motion

import "gonum.org/v1/gonum/floats/scalar"

// Phase is one constant-acceleration interval of a motion profile. It is
// created during planning and never mutated afterward.
type Phase struct {
	Duration        float64 // seconds
	Displacement    float64 // signed net position change over the phase
	Acceleration    float64 // signed; 0 denotes a coast phase
	InitialVelocity float64 // velocity entering the phase
}

// NewPhase builds a phase from its duration, acceleration and entry
// velocity. Displacement follows from the constant-acceleration
// displacement formula, so the kinematic invariant
// d = v0*t + 0.5*a*t^2 holds by construction.
func NewPhase(duration, acceleration, initialVelocity float64) Phase {
	return Phase{
		Duration:        duration,
		Displacement:    initialVelocity*duration + 0.5*acceleration*duration*duration,
		Acceleration:    acceleration,
		InitialVelocity: initialVelocity,
	}
}

// EndVelocity returns the velocity when the phase completes.
func (p Phase) EndVelocity() float64 {
	return p.InitialVelocity + p.Acceleration*p.Duration
}

// Equal reports whether two phases match: durations exactly, the
// remaining fields within Tolerance.
func (p Phase) Equal(o Phase) bool {
	return p.Duration == o.Duration &&
		scalar.EqualWithinAbs(p.Displacement, o.Displacement, Tolerance) &&
		scalar.EqualWithinAbs(p.Acceleration, o.Acceleration, Tolerance) &&
		scalar.EqualWithinAbs(p.InitialVelocity, o.InitialVelocity, Tolerance)
}
