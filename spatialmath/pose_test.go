package spatialmath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"
)

func TestRotation(t *testing.T) {
	r := NewRotation(math.Pi / 2)
	test.That(t, R2VectorAlmostEqual(r.Apply(r2.Point{X: 1}), r2.Point{Y: 1}, 1e-9), test.ShouldBeTrue)
	test.That(t, R2VectorAlmostEqual(r.Apply(r2.Point{Y: 1}), r2.Point{X: -1}, 1e-9), test.ShouldBeTrue)

	// orthonormal with determinant +1
	m := NewRotation(0.7).Matrix()
	test.That(t, m.Det(), test.ShouldAlmostEqual, 1.)
	test.That(t, m.Mul2(m.Transpose()).ApproxEqualThreshold(NewZeroRotation().Matrix(), 1e-12), test.ShouldBeTrue)
	test.That(t, NewRotation(0.7).Inverse().Matrix().ApproxEqualThreshold(m.Transpose(), 1e-12), test.ShouldBeTrue)

	// composition wraps
	c := NewRotation(3 * math.Pi / 4).Compose(NewRotation(math.Pi / 2))
	test.That(t, c.Theta(), test.ShouldAlmostEqual, -3*math.Pi/4)
	test.That(t, NewRotation(-math.Pi).Theta(), test.ShouldAlmostEqual, math.Pi)
	test.That(t, NewRotation(math.Pi).AlmostEqual(NewRotation(-math.Pi+1e-9), 1e-6), test.ShouldBeTrue)
	test.That(t, NewRotation(math.Pi/2).Degrees(), test.ShouldAlmostEqual, 90.)
}

func TestPoseApplyAndCompose(t *testing.T) {
	a := NewPose(r2.Point{X: 10, Y: 0}, math.Pi/2)
	b := NewPoseFromPoint(r2.Point{X: 0, Y: 5})

	// b's origin seen from a's parent
	test.That(t, R2VectorAlmostEqual(a.Apply(r2.Point{Y: 5}), r2.Point{X: 5, Y: 0}, 1e-9), test.ShouldBeTrue)

	ab := Compose(a, b)
	test.That(t, R2VectorAlmostEqual(ab.Point(), r2.Point{X: 5, Y: 0}, 1e-9), test.ShouldBeTrue)
	test.That(t, ab.Orientation().Theta(), test.ShouldAlmostEqual, math.Pi/2)

	// apply then compose must agree
	pt := r2.Point{X: 1, Y: 2}
	test.That(t, R2VectorAlmostEqual(ab.Apply(pt), a.Apply(b.Apply(pt)), 1e-9), test.ShouldBeTrue)

	test.That(t, PoseAlmostEqual(Compose(NewZeroPose(), a), a), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(Compose(a, NewZeroPose()), a), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(PoseBetween(a, ab), b), test.ShouldBeTrue)
	test.That(t, PoseAlmostCoincident(NewPose(r2.Point{X: 1}, 1), NewPoseFromPoint(r2.Point{X: 1})), test.ShouldBeTrue)
}

func TestPoseInverseRoundTrip(t *testing.T) {
	//nolint:gosec
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		p := NewPose(r2.Point{X: r.Float64()*2000 - 1000, Y: r.Float64()*2000 - 1000}, r.Float64()*4*math.Pi-2*math.Pi)
		test.That(t, PoseAlmostEqualEps(Compose(p, PoseInverse(p)), NewZeroPose(), 1e-9), test.ShouldBeTrue)
		test.That(t, PoseAlmostEqualEps(Compose(PoseInverse(p), p), NewZeroPose(), 1e-9), test.ShouldBeTrue)
	}
}

func TestPoseDelta(t *testing.T) {
	from := NewPose(r2.Point{X: -824.26, Y: 424.26}, 3*math.Pi/4)
	to := NewPoseFromPoint(r2.Point{X: -400, Y: 400})
	delta := PoseDelta(from, to)
	test.That(t, delta.X, test.ShouldAlmostEqual, 424.26)
	test.That(t, delta.Y, test.ShouldAlmostEqual, -24.26)
	test.That(t, delta.Theta, test.ShouldAlmostEqual, -3*math.Pi/4)
	test.That(t, delta.Linear(), test.ShouldResemble, r2.Point{X: delta.X, Y: delta.Y})
	test.That(t, delta.Slice(), test.ShouldResemble, []float64{delta.X, delta.Y, delta.Theta})

	// angular differences take the short way round
	delta = PoseDelta(NewPose(r2.Point{}, 3), NewPose(r2.Point{}, -3))
	test.That(t, delta.Theta, test.ShouldAlmostEqual, 2*math.Pi-6)

	test.That(t, Twist{X: 3, Y: 4}.Norm(), test.ShouldAlmostEqual, 5.)
	test.That(t, Twist{X: 1, Y: 2, Theta: 2}.Norm(), test.ShouldAlmostEqual, 3.)
	test.That(t, PoseDelta(from, from).Norm(), test.ShouldEqual, 0.)
}
