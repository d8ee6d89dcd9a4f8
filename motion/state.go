package motion

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats/scalar"
)

// Tolerance is the absolute tolerance used by State and Phase equality.
// Profiles are recomputed from floating-point arithmetic, so comparisons
// must absorb rounding noise.
const Tolerance = 1e-4

// State is a position/velocity pair: a profile endpoint or a sampled
// setpoint along the trajectory.
type State struct {
	Position float64
	Velocity float64
}

// Equal reports whether both fields match within Tolerance.
func (s State) Equal(o State) bool {
	return scalar.EqualWithinAbs(s.Position, o.Position, Tolerance) &&
		scalar.EqualWithinAbs(s.Velocity, o.Velocity, Tolerance)
}

func (s State) validate() error {
	if !isFinite(s.Position) || !isFinite(s.Velocity) {
		return errors.Errorf("state must be finite, got position=%v velocity=%v",
			s.Position, s.Velocity)
	}
	return nil
}

// Constraints are the kinematic limits a planner may not exceed. All
// three fields are magnitudes; the planner applies signs based on the
// direction of travel.
type Constraints struct {
	MaxVelocity     float64 // units/sec
	MaxAcceleration float64 // units/sec^2
	MaxDeceleration float64 // units/sec^2
}

// Validate rejects limits that would make the closed-form solve divide
// by zero or propagate NaN.
func (c Constraints) Validate() error {
	if !(c.MaxVelocity > 0) || math.IsInf(c.MaxVelocity, 0) {
		return errors.Errorf("max velocity must be positive and finite, got %v", c.MaxVelocity)
	}
	if !(c.MaxAcceleration > 0) || math.IsInf(c.MaxAcceleration, 0) {
		return errors.Errorf("max acceleration must be positive and finite, got %v", c.MaxAcceleration)
	}
	if !(c.MaxDeceleration > 0) || math.IsInf(c.MaxDeceleration, 0) {
		return errors.Errorf("max deceleration must be positive and finite, got %v", c.MaxDeceleration)
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
