package referenceframe

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/planarkin/spatialmath"
	"go.viam.com/planarkin/utils"
)

// PayloadSize is the size of a rectangular payload held by the end effector.
type PayloadSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Validate returns an error if the payload cannot form a rectangle.
func (ps PayloadSize) Validate() error {
	if !utils.IsFinite(ps.Width) || !utils.IsFinite(ps.Height) || ps.Width <= 0 || ps.Height <= 0 {
		return errors.Errorf("payload size must be positive and finite, got %vx%v", ps.Width, ps.Height)
	}
	return nil
}

// NewChainFromLinks creates a chain with one rotary joint per link, each followed by an offset of the link
// length along the joint frame's Y axis, then a bare rotary end effector joint. If payload is not nil, a
// rectangular payload grasped at the middle of its top edge is appended after the end effector joint.
func NewChainFromLinks(linkLengths []float64, payload *PayloadSize) (*Chain, error) {
	c := &Chain{}
	for i, length := range linkLengths {
		if !utils.IsFinite(length) || length < 0 {
			return nil, NewInvalidLinkLengthError(i, length)
		}
		c.AddSegment(NewSegment(NewRotaryJoint(), spatialmath.NewPoseFromPoint(r2.Point{X: 0, Y: length})))
	}

	// end effector
	c.AddSegment(NewSegment(NewRotaryJoint(), nil))

	if payload != nil {
		box, err := NewBoxChain(*payload)
		if err != nil {
			return nil, err
		}
		c.AddChain(box)
	}
	return c, nil
}

// NewBoxChain returns the outline of a rectangular payload as five fixed segments. The outline starts and ends at
// the grasp point in the middle of the top edge: half the width right, the height down, the width left, the
// height up and half the width right again. The longer side of the payload is always used as its width.
func NewBoxChain(size PayloadSize) (*Chain, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}
	width, height := math.Max(size.Width, size.Height), math.Min(size.Width, size.Height)

	sides := []r2.Point{
		{X: width / 2},
		{Y: -height},
		{X: -width},
		{Y: height},
		{X: width / 2},
	}
	box := &Chain{}
	for _, side := range sides {
		box.AddSegment(NewSegment(NewFixedJoint(), spatialmath.NewPoseFromPoint(side)))
	}
	return box, nil
}
