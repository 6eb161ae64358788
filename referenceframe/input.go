package referenceframe

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"go.viam.com/planarkin/utils"
)

// Input is the value of a single degree of freedom, i.e. the angle of a rotary joint in radians. A joint
// configuration is a []Input with one entry per rotary joint, in chain order.
type Input = float64

// CopyInputs returns a copy of the inputs so that the caller's configuration is never mutated by a solve.
func CopyInputs(inputs []Input) []Input {
	out := make([]Input, len(inputs))
	copy(out, inputs)
	return out
}

// InputsFromDegrees converts joint angles in degrees into radian inputs.
func InputsFromDegrees(degrees []float64) []Input {
	n := make([]Input, len(degrees))
	for idx, d := range degrees {
		n[idx] = utils.DegToRad(d)
	}
	return n
}

// InputsToDegrees converts radian inputs into joint angles in degrees.
func InputsToDegrees(inputs []Input) []float64 {
	n := make([]float64, len(inputs))
	for idx, a := range inputs {
		n[idx] = utils.RadToDeg(a)
	}
	return n
}

// NormalizeInputs wraps every rotary input into (-pi, pi].
func NormalizeInputs(inputs []Input) []Input {
	n := make([]Input, len(inputs))
	for idx, a := range inputs {
		n[idx] = utils.NormalizeAngle(a)
	}
	return n
}

// InterpolateInputs will return a set of inputs that are the specified percent between the two given sets of
// inputs. For example, setting by to 0.5 will return the inputs halfway between the from/to values, and 0.25 would
// return one quarter of the way from "from" to "to".
func InterpolateInputs(from, to []Input, by float64) []Input {
	var newVals []Input
	for i, j1 := range from {
		newVals = append(newVals, j1+((to[i]-j1)*by))
	}
	return newVals
}

// InputsL2Distance returns the two-norm between the from and to vectors.
func InputsL2Distance(from, to []Input) float64 {
	if len(from) != len(to) {
		return math.Inf(1)
	}
	diff := make([]float64, 0, len(from))
	for i, f := range from {
		diff = append(diff, f-to[i])
	}
	// 2 is the L value returning a standard L2 Normalization
	return floats.Norm(diff, 2)
}

// RandomConfiguration will produce a configuration for the chain with every rotary joint uniformly drawn from [-pi, pi).
func RandomConfiguration(c *Chain, rSeed *rand.Rand) []Input {
	if rSeed == nil {
		//nolint:gosec
		rSeed = rand.New(rand.NewSource(1))
	}
	pos := make([]Input, 0, c.DoF())
	for i := 0; i < c.DoF(); i++ {
		pos = append(pos, utils.SampleRandomFloatRange(-math.Pi, math.Pi, rSeed))
	}
	return pos
}
