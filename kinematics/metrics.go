package kinematics

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/planarkin/spatialmath"
	"go.viam.com/planarkin/utils"
)

// DistanceWeights scales the components of an error twist. The solver converges on, and ranks solutions by, the
// weighted norm of the remaining error.
type DistanceWeights struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Theta float64 `json:"theta"`
}

// NewDefaultDistanceWeights counts a millimeter of position error the same as a radian of orientation error.
func NewDefaultDistanceWeights() DistanceWeights {
	return DistanceWeights{X: 1, Y: 1, Theta: 1}
}

// Validate returns an error unless every weight is finite and non-negative and at least one is positive.
func (dw DistanceWeights) Validate() error {
	positive := false
	for _, w := range dw.toArray() {
		if !utils.IsFinite(w) || w < 0 {
			return errors.Errorf("weights must be finite and non-negative, got %+v", dw)
		}
		positive = positive || w > 0
	}
	if !positive {
		return errors.New("at least one weight must be positive")
	}
	return nil
}

// toArray returns the weights in the same order as Twist.Slice.
func (dw DistanceWeights) toArray() []float64 {
	return []float64{dw.X, dw.Y, dw.Theta}
}

// SquaredNorm returns the dot product of a vector with itself.
func SquaredNorm(vec []float64) float64 {
	norm := 0.0
	for _, v := range vec {
		norm += utils.Square(v)
	}
	return norm
}

// WeightedSquaredNorm returns the dot product of a vector with itself, applying the given weights to each piece.
func WeightedSquaredNorm(vec []float64, weights DistanceWeights) float64 {
	weightArr := weights.toArray()
	norm := 0.0
	for i, v := range vec {
		norm += v * v * weightArr[i]
	}
	return norm
}

// Metric scores how far a pose is from another. Lower is better.
type Metric func(from, to spatialmath.Pose) float64

// NewSquaredNormMetric is the default distance function between two poses.
func NewSquaredNormMetric() Metric {
	return func(from, to spatialmath.Pose) float64 {
		return SquaredNorm(spatialmath.PoseDelta(from, to).Slice())
	}
}

// NewWeightedSquaredNormMetric scales the twist components by weights before summing.
func NewWeightedSquaredNormMetric(weights DistanceWeights) Metric {
	return func(from, to spatialmath.Pose) float64 {
		return WeightedSquaredNorm(spatialmath.PoseDelta(from, to).Slice(), weights)
	}
}

// applyWeights scales the rows of jac and e by the square roots of the weights, so that the plain least squares
// step of the result minimizes the weighted error.
func applyWeights(jac *mat.Dense, e []float64, weights DistanceWeights) (*mat.Dense, []float64) {
	rows, cols := jac.Dims()
	weightArr := weights.toArray()
	wJac := mat.NewDense(rows, cols, nil)
	we := make([]float64, rows)
	for i := 0; i < rows; i++ {
		w := math.Sqrt(weightArr[i])
		for j := 0; j < cols; j++ {
			wJac.Set(i, j, w*jac.At(i, j))
		}
		we[i] = w * e[i]
	}
	return wJac, we
}

// poseErrors splits the distance between two poses into position and absolute orientation errors.
func poseErrors(from, to spatialmath.Pose) (float64, float64) {
	delta := spatialmath.PoseDelta(from, to)
	return delta.Linear().Norm(), math.Abs(delta.Theta)
}
