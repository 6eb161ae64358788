package kinematics

import (
	"github.com/pkg/errors"
)

var (
	// ErrNoDegreesOfFreedom is returned when a Jacobian or an inverse kinematics solve is requested for a chain
	// without rotary joints.
	ErrNoDegreesOfFreedom = errors.New("chain has no degrees of freedom")

	// ErrSingularJacobian is returned when even the largest allowed damping cannot produce a finite joint update.
	ErrSingularJacobian = errors.New("jacobian is singular and damping could not regularize it")

	// ErrNonConvergence signals that a solve ran out of iterations before reaching the goal. It is not fatal, the
	// best effort configuration is still returned in the Solution.
	ErrNonConvergence = errors.New("inverse kinematics did not converge")
)

// NewNonConvergenceError returns an error describing how far from the goal a failed solve ended.
func NewNonConvergenceError(iterations int, positionErr, orientationErr float64) error {
	return errors.Wrapf(ErrNonConvergence, "after %d iterations, position error %.6f, orientation error %.6f rad",
		iterations, positionErr, orientationErr)
}
