package kinematics

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/planarkin/utils"
)

// default values for inverse kinematics.
const (
	// Maximum number of solver iterations before giving up.
	defaultMaxIterations = 100

	// A solve has converged once the norm of the (x, y, theta) error twist is below this value.
	defaultTolerance = 1e-6

	// Levenberg-Marquardt style damping added to J*J^T. Small enough to leave well conditioned steps alone.
	defaultDamping = 1e-2

	// Damping grows tenfold after every rejected step, up to this value.
	defaultMaxDamping = 1e6

	// Fraction of the damped least squares update applied each step.
	defaultStepSize = 1.
)

// SolverOptions holds the tunables of the Jacobian inverse kinematics solver.
type SolverOptions struct {
	// Number of iterations after which a solve is reported as failed.
	MaxIterations int `json:"max_iterations"`

	// Error twist norm below which a solve is reported as converged.
	Tolerance float64 `json:"tolerance"`

	// Initial and minimum damping factor of the damped least squares step.
	Damping float64 `json:"damping"`

	// Largest damping factor tried before a step is given up on.
	MaxDamping float64 `json:"max_damping"`

	// Scale applied to every joint update, in (0, 1].
	StepSize float64 `json:"step_size"`

	// Weights of the x, y and theta error components in the convergence test, the step and solution ranking.
	Weights DistanceWeights `json:"weights"`
}

// NewDefaultSolverOptions returns the options used when none are given.
func NewDefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations: defaultMaxIterations,
		Tolerance:     defaultTolerance,
		Damping:       defaultDamping,
		MaxDamping:    defaultMaxDamping,
		StepSize:      defaultStepSize,
		Weights:       NewDefaultDistanceWeights(),
	}
}

// WithDefaults returns a copy of the options with every zero field replaced by its default.
func (opts SolverOptions) WithDefaults() SolverOptions {
	def := NewDefaultSolverOptions()
	if opts.MaxIterations == 0 {
		opts.MaxIterations = def.MaxIterations
	}
	if opts.Tolerance == 0 {
		opts.Tolerance = def.Tolerance
	}
	if opts.Damping == 0 {
		opts.Damping = def.Damping
	}
	if opts.MaxDamping == 0 {
		opts.MaxDamping = def.MaxDamping
	}
	if opts.StepSize == 0 {
		opts.StepSize = def.StepSize
	}
	if opts.Weights == (DistanceWeights{}) {
		opts.Weights = def.Weights
	}
	return opts
}

// Validate returns every problem with the options at once.
func (opts SolverOptions) Validate() error {
	var err error
	if opts.MaxIterations <= 0 {
		err = multierr.Append(err, errors.Errorf("max_iterations must be positive, got %d", opts.MaxIterations))
	}
	if !utils.IsFinite(opts.Tolerance) || opts.Tolerance <= 0 {
		err = multierr.Append(err, errors.Errorf("tolerance must be positive, got %v", opts.Tolerance))
	}
	// a nonzero damping keeps J*J^T + damping^2*I positive definite at singular configurations
	if !utils.IsFinite(opts.Damping) || opts.Damping <= 0 {
		err = multierr.Append(err, errors.Errorf("damping must be positive, got %v", opts.Damping))
	}
	if !utils.IsFinite(opts.MaxDamping) || opts.MaxDamping < opts.Damping {
		err = multierr.Append(err, errors.Errorf("max_damping must be at least damping, got %v", opts.MaxDamping))
	}
	if !utils.IsFinite(opts.StepSize) || opts.StepSize <= 0 || opts.StepSize > 1 {
		err = multierr.Append(err, errors.Errorf("step_size must be in (0, 1], got %v", opts.StepSize))
	}
	if wErr := opts.Weights.Validate(); wErr != nil {
		err = multierr.Append(err, wErr)
	}
	return err
}
