package spatialmath

import (
	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/floats"

	"go.viam.com/planarkin/utils"
)

// Twist is a planar velocity (vx, vy, omega), or equivalently a small pose error, expressed in the
// parent frame.
type Twist struct {
	X     float64
	Y     float64
	Theta float64
}

// PoseDelta returns the twist that moves from to to: the translational difference in the parent
// frame and the signed angular difference, normalized to (-pi, pi].
func PoseDelta(from, to Pose) Twist {
	d := to.Point().Sub(from.Point())
	return Twist{
		X:     d.X,
		Y:     d.Y,
		Theta: utils.AngleDiffRad(from.Orientation().Theta(), to.Orientation().Theta()),
	}
}

// Linear returns the translational part of the twist.
func (t Twist) Linear() r2.Point {
	return r2.Point{X: t.X, Y: t.Y}
}

// Norm returns the Euclidean norm of (x, y, theta).
func (t Twist) Norm() float64 {
	return floats.Norm(t.Slice(), 2)
}

// Slice returns the twist as []float64{x, y, theta}, the row order of a planar Jacobian.
func (t Twist) Slice() []float64 {
	return []float64{t.X, t.Y, t.Theta}
}
