package spatialmath

import (
	"github.com/golang/geo/r2"

	"go.viam.com/planarkin/utils"
)

const defaultFloatPrecision = 1e-6

// R2VectorAlmostEqual compares two r2.Point objects and returns if the all elementwise differences are less than epsilon.
func R2VectorAlmostEqual(a, b r2.Point, epsilon float64) bool {
	return utils.Float64AlmostEqual(a.X, b.X, epsilon) && utils.Float64AlmostEqual(a.Y, b.Y, epsilon)
}

// PoseAlmostEqual will return a bool describing whether 2 poses are approximately the same.
func PoseAlmostEqual(a, b Pose) bool {
	return PoseAlmostEqualEps(a, b, defaultFloatPrecision)
}

// PoseAlmostEqualEps will return a bool describing whether 2 poses are approximately the same, with both the
// translation and the rotation compared against epsilon.
func PoseAlmostEqualEps(a, b Pose, epsilon float64) bool {
	return R2VectorAlmostEqual(a.Point(), b.Point(), epsilon) && a.Orientation().AlmostEqual(b.Orientation(), epsilon)
}

// PoseAlmostCoincident will return a bool describing whether 2 poses approximately are at the same position.
func PoseAlmostCoincident(a, b Pose) bool {
	return R2VectorAlmostEqual(a.Point(), b.Point(), defaultFloatPrecision)
}
