package kinematics

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"go.viam.com/planarkin/logging"
	"go.viam.com/planarkin/referenceframe"
	"go.viam.com/planarkin/spatialmath"
)

func TestCombinedIK(t *testing.T) {
	chain := twoLinkChain(t, &referenceframe.PayloadSize{Width: 600, Height: 400})
	ik, err := NewCombinedIKSolver(chain, logging.NewTestLogger(t), NewDefaultSolverOptions(), 4, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ik.Chain(), test.ShouldEqual, chain)

	// stretched straight up is a singular seed
	seed := []referenceframe.Input{0, 0, 0}
	sol, err := ik.Solve(seed, target)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, sol.Converged(), test.ShouldBeTrue)

	ee, err := EndEffectorPose(chain, sol.Configuration)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.PoseAlmostEqualEps(ee, target, 1e-3), test.ShouldBeTrue)
	test.That(t, seed, test.ShouldResemble, []referenceframe.Input{0, 0, 0})
}

func TestCombinedIKUnreachable(t *testing.T) {
	chain := twoLinkChain(t, nil)
	logger, logs := logging.NewObservedTestLogger(t)
	opts := NewDefaultSolverOptions()
	opts.MaxIterations = 20
	ik, err := NewCombinedIKSolver(chain, logger, opts, 3, 1)
	test.That(t, err, test.ShouldBeNil)

	sol, err := ik.Solve(home, spatialmath.NewPoseFromPoint(r2.Point{X: 2000}))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, sol.Status, test.ShouldEqual, Failed)
	test.That(t, sol.PositionError, test.ShouldBeGreaterThanOrEqualTo, 1000-1e-6)
	test.That(t, logs.FilterMessage("no seed converged").Len(), test.ShouldEqual, 1)
}

func TestCombinedIKErrors(t *testing.T) {
	chain := twoLinkChain(t, nil)
	_, err := NewCombinedIKSolver(chain, nil, SolverOptions{}, -1, 0)
	test.That(t, err, test.ShouldNotBeNil)

	ik, err := NewCombinedIKSolver(chain, nil, SolverOptions{}, 0, 0)
	test.That(t, err, test.ShouldBeNil)
	_, err = ik.Solve([]referenceframe.Input{0}, target)
	test.That(t, errors.Is(err, referenceframe.ErrDimensionMismatch), test.ShouldBeTrue)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ik.SolveContext(ctx, home, target)
	test.That(t, errors.Is(err, context.Canceled), test.ShouldBeTrue)
}

func TestBestSolution(t *testing.T) {
	chain := twoLinkChain(t, nil)
	seed := []referenceframe.Input{0, 0, 0}
	near := &Solution{Configuration: []referenceframe.Input{0.1, 0, 0}, Status: Converged}
	far := &Solution{Configuration: []referenceframe.Input{2, -2, 1}, Status: Converged}
	closeFail := &Solution{Configuration: []referenceframe.Input{0, 0, 0}, Status: Failed, PositionError: 10, Error: 1}
	wideFail := &Solution{Configuration: []referenceframe.Input{0, 0, 0}, Status: Failed, PositionError: 1, Error: 10}

	best, err := bestSolution(chain, seed, []*Solution{closeFail, far, nil, near})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, best, test.ShouldEqual, near)

	best, err = bestSolution(chain, seed, []*Solution{wideFail, closeFail})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, best, test.ShouldEqual, closeFail)

	best, err = bestSolution(chain, seed, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, best, test.ShouldBeNil)

	// a seed one turn away from near is still closest to it
	wrapped := []referenceframe.Input{0.1 + 2*math.Pi, 0, 0}
	wrappedFar := &Solution{Configuration: []referenceframe.Input{2, 0, 0}, Status: Converged}
	best, err = bestSolution(chain, wrapped, []*Solution{wrappedFar, near})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, best, test.ShouldEqual, near)
}

func TestBestSolutionSwingTiebreak(t *testing.T) {
	chain := twoLinkChain(t, nil)
	seed := []referenceframe.Input{0, 0, 0}
	// both one radian from the seed, but turning the elbow sweeps the end effector around while turning the wrist
	// only spins it in place
	elbow := &Solution{Configuration: []referenceframe.Input{0, 1, 0}, Status: Converged}
	wrist := &Solution{Configuration: []referenceframe.Input{0, 0, 1}, Status: Converged}

	elbowSwing, err := calcSwingAmount(chain, seed, elbow.Configuration)
	test.That(t, err, test.ShouldBeNil)
	wristSwing, err := calcSwingAmount(chain, seed, wrist.Configuration)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, wristSwing, test.ShouldBeLessThan, elbowSwing-0.01)

	for _, order := range [][]*Solution{{elbow, wrist}, {wrist, elbow}} {
		best, err := bestSolution(chain, seed, order)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, best, test.ShouldEqual, wrist)
	}
}
