package utils

import (
	"math"
	"math/rand"
	"testing"

	"go.viam.com/test"
)

func TestDegRad(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldAlmostEqual, math.Pi)
	test.That(t, RadToDeg(math.Pi/2), test.ShouldAlmostEqual, 90)
	test.That(t, RadToDeg(DegToRad(-37.5)), test.ShouldAlmostEqual, -37.5)
}

func TestNormalizeAngle(t *testing.T) {
	for _, tc := range []struct {
		in       float64
		expected float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi, math.Pi},
		{-3 * math.Pi / 2, math.Pi / 2},
		{5 * math.Pi / 2, math.Pi / 2},
		{-math.Pi / 4, -math.Pi / 4},
	} {
		test.That(t, NormalizeAngle(tc.in), test.ShouldAlmostEqual, tc.expected)
	}

	test.That(t, AngleDiffRad(3*math.Pi/4, 0), test.ShouldAlmostEqual, -3*math.Pi/4)
	test.That(t, AngleDiffRad(-3*math.Pi/4, 3*math.Pi/4), test.ShouldAlmostEqual, -math.Pi/2)
}

func TestFloatHelpers(t *testing.T) {
	test.That(t, Float64AlmostEqual(1, 1+1e-9, 1e-6), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1, 1.1, 1e-6), test.ShouldBeFalse)
	test.That(t, Square(-3), test.ShouldEqual, 9.)
	test.That(t, IsFinite(1), test.ShouldBeTrue)
	test.That(t, IsFinite(math.NaN()), test.ShouldBeFalse)
	test.That(t, IsFinite(math.Inf(-1)), test.ShouldBeFalse)

	//nolint:gosec
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		f := SampleRandomFloatRange(-2, 3, r)
		test.That(t, f, test.ShouldBeGreaterThanOrEqualTo, -2.)
		test.That(t, f, test.ShouldBeLessThan, 3.)
	}
}
