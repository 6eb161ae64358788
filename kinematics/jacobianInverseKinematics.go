package kinematics

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/planarkin/logging"
	"go.viam.com/planarkin/referenceframe"
	"go.viam.com/planarkin/spatialmath"
	"go.viam.com/planarkin/utils"
)

// dampingGrowth is the factor damping is raised by after a rejected step and lowered by after an accepted one.
const dampingGrowth = 10.

// JacobianIK iteratively moves a seed configuration toward a goal pose using damped least squares steps on the
// planar Jacobian. It holds no per-solve state, so one solver may be used from several goroutines.
type JacobianIK struct {
	chain  *referenceframe.Chain
	logger logging.Logger
	opts   SolverOptions
	metric Metric
}

// NewJacobianIKSolver creates a solver for the chain. Zero valued options fall back to their defaults.
func NewJacobianIKSolver(chain *referenceframe.Chain, logger logging.Logger, opts SolverOptions) (*JacobianIK, error) {
	if chain == nil {
		return nil, errors.New("chain cannot be nil")
	}
	if chain.DoF() == 0 {
		return nil, ErrNoDegreesOfFreedom
	}
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewBlankLogger("ik")
	}
	return &JacobianIK{chain: chain, logger: logger, opts: opts, metric: NewWeightedSquaredNormMetric(opts.Weights)}, nil
}

// Chain returns the chain being solved.
func (ik *JacobianIK) Chain() *referenceframe.Chain {
	return ik.chain
}

// Options returns the options in effect.
func (ik *JacobianIK) Options() SolverOptions {
	return ik.opts
}

// Solve refines seed until the end effector reaches goal or the iteration limit is hit. The seed is copied and
// never modified. The only errors are for a seed that cannot drive the chain and for a Jacobian that no damping
// can regularize; running out of iterations is reported through the returned Solution's Status.
func (ik *JacobianIK) Solve(seed []referenceframe.Input, goal spatialmath.Pose) (*Solution, error) {
	return ik.solve(context.Background(), seed, goal)
}

// solve stops early, with a Failed solution, once ctx is done.
func (ik *JacobianIK) solve(ctx context.Context, seed []referenceframe.Input, goal spatialmath.Pose) (*Solution, error) {
	if err := ik.chain.ValidInputs(seed); err != nil {
		return nil, err
	}
	if err := checkGoal(goal); err != nil {
		return nil, err
	}

	q := referenceframe.CopyInputs(seed)
	poses := computePoses(ik.chain, q)
	current := poses[len(poses)-1]
	twist := spatialmath.PoseDelta(current, goal)
	errNorm := ik.errorNorm(current, goal)
	damping := ik.opts.Damping

	ik.logger.Debugw("starting solve", "seed", seed, "start", current, "goal", goal)

	iteration := 0
	status := Iterating
	for status == Iterating {
		switch {
		case errNorm < ik.opts.Tolerance:
			status = Converged
			continue
		case iteration >= ik.opts.MaxIterations || ctx.Err() != nil:
			status = Failed
			continue
		}
		iteration++

		jac, e := applyWeights(jacobianFromPoses(ik.chain, poses), twist.Slice(), ik.opts.Weights)
		dq, err := dampedLeastSquares(jac, e, damping)
		if err != nil {
			if damping >= ik.opts.MaxDamping {
				return nil, err
			}
			damping = math.Min(damping*dampingGrowth, ik.opts.MaxDamping)
			continue
		}

		candidate := make([]referenceframe.Input, len(q))
		for i := range q {
			candidate[i] = q[i] + ik.opts.StepSize*dq[i]
		}
		candidatePoses := computePoses(ik.chain, candidate)
		candidateTwist := spatialmath.PoseDelta(candidatePoses[len(candidatePoses)-1], goal)
		candidateNorm := ik.errorNorm(candidatePoses[len(candidatePoses)-1], goal)

		if candidateNorm < errNorm {
			q, poses, twist, errNorm = candidate, candidatePoses, candidateTwist, candidateNorm
			damping = math.Max(damping/dampingGrowth, ik.opts.Damping)
		} else {
			// the linearization overshot; retry from the same configuration with a shorter, more damped step
			damping = math.Min(damping*dampingGrowth, ik.opts.MaxDamping)
		}
		ik.logger.Debugw("ik iteration", "iteration", iteration, "error", errNorm, "damping", damping)
	}

	posErr, orientErr := poseErrors(poses[len(poses)-1], goal)
	solution := &Solution{
		Configuration:    referenceframe.NormalizeInputs(q),
		Status:           status,
		Iterations:       iteration,
		PositionError:    posErr,
		OrientationError: orientErr,
		Error:            errNorm,
	}
	if status == Converged {
		ik.logger.Debugf("converged after %d iterations, error %v", iteration, errNorm)
	} else {
		ik.logger.Debugw("failed to converge", "iterations", iteration, "position_error", posErr,
			"orientation_error", orientErr)
	}
	return solution, nil
}

// errorNorm is the weighted norm of the twist from pose to goal.
func (ik *JacobianIK) errorNorm(pose, goal spatialmath.Pose) float64 {
	return math.Sqrt(ik.metric(pose, goal))
}

// checkGoal returns an error for a goal pose no configuration can be measured against.
func checkGoal(goal spatialmath.Pose) error {
	if goal == nil {
		return errors.New("goal pose cannot be nil")
	}
	pt := goal.Point()
	if !utils.IsFinite(pt.X) || !utils.IsFinite(pt.Y) || !utils.IsFinite(goal.Orientation().Theta()) {
		return errors.Errorf("goal pose must be finite, got %v", goal)
	}
	return nil
}

// dampedLeastSquares returns dq = J^T (J J^T + damping^2 I)^-1 e. The damping term keeps the system positive definite
// at and near singular configurations, and also covers chains with fewer than three degrees of freedom, where
// J J^T is rank deficient.
func dampedLeastSquares(jac *mat.Dense, e []float64, damping float64) ([]float64, error) {
	rows, _ := jac.Dims()

	var jjt mat.SymDense
	jjt.SymOuterK(1, jac)
	d2 := damping * damping
	for i := 0; i < rows; i++ {
		jjt.SetSym(i, i, jjt.At(i, i)+d2)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(&jjt); !ok {
		return nil, ErrSingularJacobian
	}
	var y mat.VecDense
	if err := chol.SolveVecTo(&y, mat.NewVecDense(rows, e)); err != nil {
		return nil, errors.Wrap(ErrSingularJacobian, err.Error())
	}

	var dq mat.VecDense
	dq.MulVec(jac.T(), &y)
	out := make([]float64, dq.Len())
	for i := range out {
		out[i] = dq.AtVec(i)
		if !utils.IsFinite(out[i]) {
			return nil, ErrSingularJacobian
		}
	}
	return out, nil
}
