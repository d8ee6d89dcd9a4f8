package motion

import (
	"math"

	"github.com/pkg/errors"
)

// NewAsymmetricTrapezoid plans a motion from initial to target under the
// given limits, producing at most three phases: accelerate, coast,
// decelerate. The target position is always reached exactly. The target
// velocity is reached whenever the limits allow it; when it is
// unreachable the profile instead ends at the closest achievable
// velocity for that exact position.
func NewAsymmetricTrapezoid(c Constraints, target, initial State) (*Profile, error) {
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid constraints")
	}
	if err := initial.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid initial state")
	}
	if err := target.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid target state")
	}

	delta := target.Position - initial.Position
	if delta == 0 && target.Velocity != initial.Velocity {
		return nil, errors.Errorf("cannot change velocity from %v to %v over zero displacement",
			initial.Velocity, target.Velocity)
	}

	// Normalize so the derivation below can assume positive motion.
	dir := 1.0
	if delta < 0 {
		dir = -1
	}
	vMax := c.MaxVelocity * dir
	aAcc := math.Abs(c.MaxAcceleration) * dir
	aDec := -math.Abs(c.MaxDeceleration) * dir

	// Clamp only the co-directional excess: an initial velocity pointing
	// the wrong way (already moving away from the target) is legal and
	// handled by the ramp intersection below.
	vInit := clampToward(initial.Velocity, vMax, dir)
	vGoal := clampToward(target.Velocity, vMax, dir)

	accelTime := (vMax - vInit) / aAcc
	accelPos := vInit*accelTime + 0.5*aAcc*accelTime*accelTime
	decelTime := (vGoal - vMax) / aDec
	decelPos := vMax*decelTime + 0.5*aDec*decelTime*decelTime

	coastPos := delta - (accelPos + decelPos)
	coastTime := coastPos / vMax

	decelRate := aDec

	if coastPos*dir < 0 {
		// The limit velocity cannot be reached without overshooting, so
		// the accel and decel ramps intersect early. Writing the total
		// displacement as the sum of the two ramp integrals gives a
		// quadratic in the acceleration time.
		coastTime = 0
		dv := vInit - vGoal
		qa := 0.5*aAcc - aAcc*aAcc/(2*aDec)
		qb := vInit - vInit*aAcc/aDec
		qc := -(dv*dv/(2*aDec) + vGoal*dv/aDec + delta)
		disc := math.Max(0, qb*qb-4*qa*qc)
		accelTime = (-qb + dir*math.Sqrt(disc)) / (2 * qa)
		decelTime = -((aAcc/aDec)*accelTime + dv/aDec)

		if decelTime < 0 {
			// Target velocity too high to reach: accelerate maximally
			// across the entire remaining displacement.
			decelTime = 0
			accelTime = (-vInit + dir*math.Sqrt(math.Max(0, vInit*vInit+2*aAcc*delta))) / aAcc
		} else if accelTime < 0 {
			// Target velocity too low to reach: decelerate the whole way
			// at the rate that lands exactly on (delta, vGoal).
			accelTime = 0
			decelTime = 0
			if vInit+vGoal != 0 {
				decelTime = 2 * delta / (vInit + vGoal)
			}
			if decelTime > 0 {
				decelRate = (vGoal - vInit) / decelTime
			}
		}
	}

	// Velocity entering the coast/decel phases. Equals vMax in the
	// nominal case and the ramp-intersection peak otherwise.
	vCruise := vInit + aAcc*accelTime

	phases := make([]Phase, 0, 3)
	if accelTime > 0 {
		phases = append(phases, NewPhase(accelTime, aAcc, vInit))
	}
	if coastTime > 0 {
		phases = append(phases, NewPhase(coastTime, 0, vCruise))
	}
	if decelTime > 0 {
		phases = append(phases, NewPhase(decelTime, decelRate, vCruise))
	}
	return NewProfile(initial, phases...), nil
}

// NewTrapezoid plans a symmetric profile where acceleration and
// deceleration share a single magnitude.
func NewTrapezoid(maxVelocity, maxAcceleration float64, target, initial State) (*Profile, error) {
	return NewAsymmetricTrapezoid(Constraints{
		MaxVelocity:     maxVelocity,
		MaxAcceleration: maxAcceleration,
		MaxDeceleration: maxAcceleration,
	}, target, initial)
}

func clampToward(v, vMax, dir float64) float64 {
	if dir > 0 {
		return math.Min(v, vMax)
	}
	return math.Max(v, vMax)
}
