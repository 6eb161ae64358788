package kinematics

import (
	"math"

	"go.viam.com/planarkin/referenceframe"
	"go.viam.com/planarkin/spatialmath"
)

// Solver is implemented by anything that can move a chain's end effector to a goal pose.
type Solver interface {
	// Solve receives the starting joint angles and a goal pose and returns the joint angles that reach it. A
	// non-nil error means the inputs were unusable; failing to reach the goal is reported on the Solution.
	Solve(seed []referenceframe.Input, goal spatialmath.Pose) (*Solution, error)
	Chain() *referenceframe.Chain
}

// InverseKinematics solves for goal from seed with the default solver options, overriding the iteration limit and
// convergence tolerance when they are positive.
func InverseKinematics(
	chain *referenceframe.Chain,
	seed []referenceframe.Input,
	goal spatialmath.Pose,
	maxIterations int,
	tolerance float64,
) (*Solution, error) {
	opts := NewDefaultSolverOptions()
	if maxIterations > 0 {
		opts.MaxIterations = maxIterations
	}
	if tolerance > 0 {
		opts.Tolerance = tolerance
	}
	ik, err := NewJacobianIKSolver(chain, nil, opts)
	if err != nil {
		return nil, err
	}
	return ik.Solve(seed, goal)
}

// calcSwingAmount will calculate the distance from the start position to the halfway point, and also the start position to
// the end position, and return the ratio of the two. If the result >1.0, then the halfway point is further from the
// start position than the end position is, and the motion swings wide on its way.
func calcSwingAmount(chain *referenceframe.Chain, from, to []referenceframe.Input) (float64, error) {
	startPos, err := EndEffectorPose(chain, from)
	if err != nil {
		return math.Inf(1), err
	}
	endPos, err := EndEffectorPose(chain, to)
	if err != nil {
		return math.Inf(1), err
	}
	// inputs are already validated, so the interpolated ones are too
	halfPos := computePoses(chain, referenceframe.InterpolateInputs(from, to, 0.5))
	thirdPos := computePoses(chain, referenceframe.InterpolateInputs(from, to, 1./3))

	dist := NewSquaredNormMetric()
	halfEE, thirdEE := halfPos[len(halfPos)-1], thirdPos[len(thirdPos)-1]
	endDist := dist(startPos, endPos)
	halfDist := dist(startPos, halfEE) + dist(endPos, halfEE)
	thirdDist := dist(startPos, thirdEE) + dist(endPos, thirdEE)

	// Prevent division by 0
	if endDist < 0.1 {
		endDist++
		halfDist++
		thirdDist++
	}

	return halfDist/endDist + thirdDist/endDist, nil
}

// solutionTieDistance is how close, in radians of joint space distance, two converged solutions must be for the
// swing amount to decide between them.
const solutionTieDistance = 1e-3

// bestSolution picks among solutions for the same goal. Converged solutions always beat failed ones. Among converged
// solutions the one closest in joint space to the seed wins, with the swing amount breaking near ties; among failed
// ones the smallest weighted remaining error wins.
func bestSolution(chain *referenceframe.Chain, seed []referenceframe.Input, solutions []*Solution) (*Solution, error) {
	// solutions are normalized to (-pi, pi], so the seed is too
	seed = referenceframe.NormalizeInputs(seed)

	var best *Solution
	bestScore := math.Inf(1)
	bestSwing := math.Inf(1)
	for _, sol := range solutions {
		if sol == nil || (best != nil && best.Converged() && !sol.Converged()) {
			continue
		}

		var score, swing float64
		if sol.Converged() {
			score = referenceframe.InputsL2Distance(seed, sol.Configuration)
			var err error
			if swing, err = calcSwingAmount(chain, seed, sol.Configuration); err != nil {
				return nil, err
			}
		} else {
			score = sol.Error
		}

		switch {
		case best == nil, sol.Converged() != best.Converged():
		case sol.Converged() && math.Abs(score-bestScore) <= solutionTieDistance:
			if swing >= bestSwing {
				continue
			}
		case score >= bestScore:
			continue
		}
		best, bestScore, bestSwing = sol, score, swing
	}
	return best, nil
}
