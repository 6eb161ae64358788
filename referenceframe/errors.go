package referenceframe

import (
	"github.com/pkg/errors"
)

// ErrDimensionMismatch is returned when a joint configuration does not have exactly one value per
// degree of freedom of the chain it is applied to. Configurations are never truncated or padded.
var ErrDimensionMismatch = errors.New("joint configuration does not match chain degrees of freedom")

// NewIncorrectDoFError returns an error indicating that the length of an input slice does not match the DoF of a chain.
func NewIncorrectDoFError(actual, expected int) error {
	return errors.Wrapf(ErrDimensionMismatch, "number of inputs %d does not match chain DoF %d", actual, expected)
}

// NewSegmentIndexError returns an error indicating that a requested segment boundary does not exist.
func NewSegmentIndexError(idx, segmentCount int) error {
	return errors.Errorf("segment index %d out of range [0, %d]", idx, segmentCount)
}

// NewInvalidLinkLengthError returns an error indicating that a link length cannot build a chain.
func NewInvalidLinkLengthError(idx int, length float64) error {
	return errors.Errorf("link %d has invalid length %v, lengths must be finite and non-negative", idx, length)
}

// NewNonFiniteInputError returns an error indicating that a joint value is NaN or infinite.
func NewNonFiniteInputError(idx int, value float64) error {
	return errors.Errorf("input %d is not finite: %v", idx, value)
}
