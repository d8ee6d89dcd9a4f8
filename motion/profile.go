package motion

import (
	"math"
	"time"
)

// Profile is an immutable piecewise-quadratic trajectory: an ordered
// sequence of constant-acceleration phases anchored at an initial state.
// A constructed profile is never mutated, so it is safe to sample
// concurrently without locking.
type Profile struct {
	initial   State
	final     State
	phases    []Phase
	total     float64
	direction float64
}

// Point is a timed sample of the trajectory, including the feedforward
// acceleration of the containing phase.
type Point struct {
	Time         float64 // seconds from profile start
	Position     float64
	Velocity     float64
	Acceleration float64
}

// NewProfile assembles a profile from an initial state and a phase
// sequence. Phases with non-positive duration are dropped so the sample
// walk never stalls on a zero-length interval.
func NewProfile(initial State, phases ...Phase) *Profile {
	p := &Profile{initial: initial, direction: 1}
	pos := initial.Position
	vel := initial.Velocity
	for _, ph := range phases {
		if ph.Duration <= 0 {
			continue
		}
		p.phases = append(p.phases, ph)
		p.total += ph.Duration
		pos += ph.Displacement
		vel = ph.EndVelocity()
	}
	p.final = State{Position: pos, Velocity: vel}
	if pos < initial.Position {
		p.direction = -1
	}
	return p
}

// Sample returns the reference state after t elapsed seconds. Negative t
// returns the initial state unchanged. Past the end it returns the final
// position with the last phase's end velocity (the target velocity
// whenever that velocity was reachable).
func (p *Profile) Sample(t float64) State {
	st, _ := p.at(t)
	return st
}

func (p *Profile) at(t float64) (State, float64) {
	if t <= 0 {
		return p.initial, 0
	}
	pos := p.initial.Position
	for _, ph := range p.phases {
		if t < ph.Duration {
			return State{
				Position: pos + ph.InitialVelocity*t + 0.5*ph.Acceleration*t*t,
				Velocity: ph.InitialVelocity + ph.Acceleration*t,
			}, ph.Acceleration
		}
		t -= ph.Duration
		pos += ph.Displacement
	}
	return p.final, 0
}

// TotalTime returns the profile duration in seconds.
func (p *Profile) TotalTime() float64 { return p.total }

// Duration returns the profile duration as a time.Duration.
func (p *Profile) Duration() time.Duration {
	return time.Duration(p.total * float64(time.Second))
}

// IsFinished reports whether the profile has run to completion after t
// elapsed seconds.
func (p *Profile) IsFinished(t float64) bool { return t >= p.total }

// Initial returns the state the profile starts from.
func (p *Profile) Initial() State { return p.initial }

// Final returns the state the profile ends at. Its velocity is the last
// phase's end velocity: the target velocity when reachable, the closest
// achievable velocity otherwise.
func (p *Profile) Final() State { return p.final }

// Phases returns a copy of the phase sequence.
func (p *Profile) Phases() []Phase {
	out := make([]Phase, len(p.phases))
	copy(out, p.phases)
	return out
}

// TimeLeftUntil returns the elapsed time at which the profile first
// reaches the given position, by walking the phase sequence by
// displacement and inverting the kinematic formula inside the containing
// phase. Positions at or behind the start return 0; positions at or
// beyond the final position return TotalTime().
func (p *Profile) TimeLeftUntil(position float64) float64 {
	rem := position - p.initial.Position
	if rem*p.direction <= 0 {
		return 0
	}
	if (position-p.final.Position)*p.direction >= 0 {
		return p.total
	}
	elapsed := 0.0
	for _, ph := range p.phases {
		if (rem-ph.Displacement)*p.direction >= 0 {
			rem -= ph.Displacement
			elapsed += ph.Duration
			continue
		}
		if ph.Acceleration == 0 {
			return elapsed + rem/ph.InitialVelocity
		}
		disc := math.Max(0, ph.InitialVelocity*ph.InitialVelocity+2*ph.Acceleration*rem)
		return elapsed + (-ph.InitialVelocity+p.direction*math.Sqrt(disc))/ph.Acceleration
	}
	return p.total
}

// Generate samples the whole trajectory at sampleRate Hz. The final
// point always lands exactly on TotalTime(). A zero-length profile
// yields a single point at the initial state.
func (p *Profile) Generate(sampleRate float64) []Point {
	if p.total == 0 || sampleRate <= 0 {
		return []Point{{
			Position: p.initial.Position,
			Velocity: p.initial.Velocity,
		}}
	}
	dt := 1.0 / sampleRate
	n := int(math.Ceil(p.total*sampleRate)) + 1
	points := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		t := math.Min(float64(i)*dt, p.total)
		st, acc := p.at(t)
		points = append(points, Point{
			Time:         t,
			Position:     st.Position,
			Velocity:     st.Velocity,
			Acceleration: acc,
		})
	}
	return points
}
