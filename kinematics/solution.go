package kinematics

import (
	"fmt"

	"go.viam.com/planarkin/referenceframe"
)

// Status is the state of an inverse kinematics solve.
type Status int

const (
	// Iterating means the solver is still refining the configuration.
	Iterating Status = iota
	// Converged means the end effector is within tolerance of the goal.
	Converged
	// Failed means the iteration limit was reached first.
	Failed
)

func (s Status) String() string {
	switch s {
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Solution is the outcome of an inverse kinematics solve. A Failed solution still carries the best configuration
// found so that callers can retry from another seed, accept the approximate pose, or report the failure.
type Solution struct {
	Configuration []referenceframe.Input
	Status        Status
	Iterations    int

	// Distance between the end effector and goal positions.
	PositionError float64
	// Absolute angular difference between the end effector and goal orientations, in radians.
	OrientationError float64
	// Weighted norm of the remaining (x, y, theta) error, as compared against the tolerance.
	Error float64
}

// Converged is shorthand for s.Status == Converged.
func (s *Solution) Converged() bool {
	return s.Status == Converged
}

// Err returns nil for converged solutions and an error wrapping ErrNonConvergence otherwise.
func (s *Solution) Err() error {
	if s.Converged() {
		return nil
	}
	return NewNonConvergenceError(s.Iterations, s.PositionError, s.OrientationError)
}
