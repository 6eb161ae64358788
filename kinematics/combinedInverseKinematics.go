package kinematics

import (
	"context"
	"math/rand"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"go.viam.com/planarkin/logging"
	"go.viam.com/planarkin/referenceframe"
	"go.viam.com/planarkin/spatialmath"
)

// CombinedIK defines the fields necessary to run a combined solver.
type CombinedIK struct {
	solver   *JacobianIK
	restarts int
	randSeed int64
	logger   logging.Logger
}

// NewCombinedIKSolver creates a combined parallel IK solver. When asked to solve, it runs one Jacobian solve from the
// caller's seed and one from each of restarts random configurations, all in parallel, and stops the others once any
// of them converges. Random configurations are drawn from randSeed, so repeated solves try the same seeds.
func NewCombinedIKSolver(
	chain *referenceframe.Chain,
	logger logging.Logger,
	opts SolverOptions,
	restarts int,
	randSeed int64,
) (*CombinedIK, error) {
	if restarts < 0 {
		return nil, errors.Errorf("restarts cannot be negative, got %d", restarts)
	}
	if logger == nil {
		logger = logging.NewBlankLogger("ik")
	}
	solver, err := NewJacobianIKSolver(chain, logger.Sublogger("jacobian"), opts)
	if err != nil {
		return nil, err
	}
	return &CombinedIK{solver: solver, restarts: restarts, randSeed: randSeed, logger: logger}, nil
}

// Chain returns the chain being solved.
func (ik *CombinedIK) Chain() *referenceframe.Chain {
	return ik.solver.Chain()
}

// Solve is SolveContext without a deadline.
func (ik *CombinedIK) Solve(seed []referenceframe.Input, goal spatialmath.Pose) (*Solution, error) {
	return ik.SolveContext(context.Background(), seed, goal)
}

// SolveContext will initiate solving for the given goal from every seed. The returned solution is the converged one
// closest to seed, or the failed one that came nearest the goal when none converged.
func (ik *CombinedIK) SolveContext(ctx context.Context, seed []referenceframe.Input, goal spatialmath.Pose) (*Solution, error) {
	chain := ik.solver.Chain()
	if err := chain.ValidInputs(seed); err != nil {
		return nil, err
	}
	if err := checkGoal(goal); err != nil {
		return nil, err
	}

	//nolint:gosec
	r := rand.New(rand.NewSource(ik.randSeed))
	seeds := make([][]referenceframe.Input, 0, ik.restarts+1)
	seeds = append(seeds, referenceframe.CopyInputs(seed))
	for i := 0; i < ik.restarts; i++ {
		seeds = append(seeds, referenceframe.RandomConfiguration(chain, r))
	}
	ik.logger.Debugf("solving for %v from %d seeds", goal, len(seeds))

	// canceled as soon as one seed converges
	solveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	solutions := make([]*Solution, len(seeds))
	g, gctx := errgroup.WithContext(solveCtx)
	g.SetLimit(runtime.NumCPU())
	for i, s := range seeds {
		i, s := i, s
		g.Go(func() error {
			// every solve works on its own copy of s; the chain is only read
			sol, err := ik.solver.solve(gctx, s, goal)
			if err != nil {
				return errors.Wrapf(err, "seed %d", i)
			}
			solutions[i] = sol
			if sol.Converged() {
				cancel()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	best, err := bestSolution(chain, seed, solutions)
	if err != nil {
		return nil, err
	}
	if best.Converged() {
		ik.logger.Debugw("combined solve converged", "configuration", best.Configuration, "iterations", best.Iterations)
	} else {
		ik.logger.Infow("no seed converged", "seeds", len(seeds), "position_error", best.PositionError,
			"orientation_error", best.OrientationError)
	}
	return best, nil
}
