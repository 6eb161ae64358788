package kinematics

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/planarkin/referenceframe"
	"go.viam.com/planarkin/spatialmath"
)

// numericalJacobian differentiates the end effector pose with central differences.
func numericalJacobian(t *testing.T, chain *referenceframe.Chain, q []referenceframe.Input) *mat.Dense {
	t.Helper()
	const h = 1e-6
	jac := mat.NewDense(3, len(q), nil)
	for j := range q {
		plus := referenceframe.CopyInputs(q)
		plus[j] += h
		minus := referenceframe.CopyInputs(q)
		minus[j] -= h
		pPlus, err := EndEffectorPose(chain, plus)
		test.That(t, err, test.ShouldBeNil)
		pMinus, err := EndEffectorPose(chain, minus)
		test.That(t, err, test.ShouldBeNil)
		delta := spatialmath.PoseDelta(pMinus, pPlus)
		jac.Set(0, j, delta.X/(2*h))
		jac.Set(1, j, delta.Y/(2*h))
		jac.Set(2, j, delta.Theta/(2*h))
	}
	return jac
}

func TestJacobianSingleLink(t *testing.T) {
	const length = 250.
	chain := referenceframe.NewChain(
		referenceframe.NewSegment(referenceframe.NewRotaryJoint(), spatialmath.NewPoseFromPoint(r2.Point{X: length})),
	)
	q := []referenceframe.Input{0}
	jac, err := ComputeJacobian(chain, q)
	test.That(t, err, test.ShouldBeNil)
	rows, cols := jac.Dims()
	test.That(t, rows, test.ShouldEqual, 3)
	test.That(t, cols, test.ShouldEqual, 1)
	test.That(t, jac.At(0, 0), test.ShouldAlmostEqual, 0.)
	test.That(t, jac.At(1, 0), test.ShouldAlmostEqual, length)
	test.That(t, jac.At(2, 0), test.ShouldEqual, 1.)

	test.That(t, mat.EqualApprox(jac, numericalJacobian(t, chain, q), 1e-4), test.ShouldBeTrue)
}

func TestJacobianMatchesFiniteDifferences(t *testing.T) {
	chain := twoLinkChain(t, &referenceframe.PayloadSize{Width: 600, Height: 400})
	//nolint:gosec
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 10; i++ {
		q := referenceframe.RandomConfiguration(chain, r)
		jac, err := ComputeJacobian(chain, q)
		test.That(t, err, test.ShouldBeNil)
		rows, cols := jac.Dims()
		test.That(t, rows, test.ShouldEqual, 3)
		test.That(t, cols, test.ShouldEqual, chain.DoF())
		test.That(t, mat.EqualApprox(jac, numericalJacobian(t, chain, q), 1e-3), test.ShouldBeTrue)
	}
}

func TestJacobianErrors(t *testing.T) {
	chain := twoLinkChain(t, nil)
	_, err := ComputeJacobian(chain, []referenceframe.Input{0, 0})
	test.That(t, errors.Is(err, referenceframe.ErrDimensionMismatch), test.ShouldBeTrue)

	box, err := referenceframe.NewBoxChain(referenceframe.PayloadSize{Width: 10, Height: 5})
	test.That(t, err, test.ShouldBeNil)
	_, err = ComputeJacobian(box, nil)
	test.That(t, errors.Is(err, ErrNoDegreesOfFreedom), test.ShouldBeTrue)
}
