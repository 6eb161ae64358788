package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r2"
)

// Pose represents a rigid motion in the plane, a rotation followed by a translation, with respect
// to a parent frame. A Pose maps points expressed in its own (child) frame into the parent frame.
type Pose interface {
	// Point returns the position of the child frame origin in the parent frame.
	Point() r2.Point
	// Orientation returns the rotation of the child frame relative to the parent frame.
	Orientation() Rotation
	// Apply maps a point expressed in the child frame into the parent frame.
	Apply(pt r2.Point) r2.Point
}

type planarPose struct {
	rotation    Rotation
	translation r2.Point
}

// NewZeroPose returns the identity pose.
func NewZeroPose() Pose {
	return &planarPose{}
}

// NewPose returns a pose at point with orientation theta radians.
func NewPose(point r2.Point, theta float64) Pose {
	return &planarPose{rotation: NewRotation(theta), translation: point}
}

// NewPoseFromPoint returns a pose with the given translation and no rotation.
func NewPoseFromPoint(point r2.Point) Pose {
	return &planarPose{translation: point}
}

// NewPoseFromRotation returns a pure rotation pose.
func NewPoseFromRotation(rotation Rotation) Pose {
	return &planarPose{rotation: rotation}
}

func (p *planarPose) Point() r2.Point {
	return p.translation
}

func (p *planarPose) Orientation() Rotation {
	return p.rotation
}

func (p *planarPose) Apply(pt r2.Point) r2.Point {
	return p.rotation.Apply(pt).Add(p.translation)
}

func (p *planarPose) String() string {
	return fmt.Sprintf("{X:%.4f Y:%.4f Theta:%s}", p.translation.X, p.translation.Y, p.rotation)
}

// Compose returns the pose equivalent to applying b, then a. If b maps frame C into frame B and a
// maps frame B into frame A, the result maps C into A.
func Compose(a, b Pose) Pose {
	return &planarPose{
		rotation:    a.Orientation().Compose(b.Orientation()),
		translation: a.Apply(b.Point()),
	}
}

// PoseInverse returns the pose that undoes p, so that Compose(p, PoseInverse(p)) is the identity.
func PoseInverse(p Pose) Pose {
	inv := p.Orientation().Inverse()
	return &planarPose{
		rotation:    inv,
		translation: inv.Apply(p.Point()).Mul(-1),
	}
}

// PoseBetween returns the pose which, composed with a, yields b: Compose(a, PoseBetween(a, b)) == b.
func PoseBetween(a, b Pose) Pose {
	return Compose(PoseInverse(a), b)
}
