// Package spatialmath defines planar spatial mathematical operations: rotations, rigid poses and
// the twists used to measure the distance between poses.
package spatialmath

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r2"

	"go.viam.com/planarkin/utils"
)

// Rotation is an orientation in the plane, i.e. a rotation about the axis perpendicular to it.
// The angle is kept normalized to (-pi, pi].
type Rotation struct {
	theta float64
}

// NewRotation returns the rotation by theta radians, counterclockwise.
func NewRotation(theta float64) Rotation {
	return Rotation{theta: utils.NormalizeAngle(theta)}
}

// NewZeroRotation returns the identity rotation.
func NewZeroRotation() Rotation {
	return Rotation{}
}

// Theta returns the rotation angle in radians, in (-pi, pi].
func (r Rotation) Theta() float64 {
	return r.theta
}

// Degrees returns the rotation angle in degrees, in (-180, 180].
func (r Rotation) Degrees() float64 {
	return utils.RadToDeg(r.theta)
}

// Matrix returns the 2x2 orthonormal rotation matrix.
func (r Rotation) Matrix() mgl64.Mat2 {
	return mgl64.Rotate2D(r.theta)
}

// Apply rotates the vector v. Unlike Pose.Apply no translation is involved, which is what is
// needed to rotate displacement vectors such as frame axes.
func (r Rotation) Apply(v r2.Point) r2.Point {
	rotated := r.Matrix().Mul2x1(mgl64.Vec2{v.X, v.Y})
	return r2.Point{X: rotated.X(), Y: rotated.Y()}
}

// Compose returns the rotation equivalent to applying other, then r.
func (r Rotation) Compose(other Rotation) Rotation {
	return NewRotation(r.theta + other.theta)
}

// Inverse returns the rotation that undoes r. For the matrix form this is the transpose.
func (r Rotation) Inverse() Rotation {
	return NewRotation(-r.theta)
}

// AlmostEqual returns whether the two rotations differ by no more than epsilon radians.
func (r Rotation) AlmostEqual(other Rotation, epsilon float64) bool {
	return utils.Float64AlmostEqual(utils.AngleDiffRad(r.theta, other.theta), 0, epsilon)
}

func (r Rotation) String() string {
	return fmt.Sprintf("%.4fdeg", r.Degrees())
}
