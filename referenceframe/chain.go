// Package referenceframe describes planar serial kinematic chains: ordered segments of rotary and fixed
// joints joined by rigid offsets, and the joint configurations that drive them.
package referenceframe

import (
	"github.com/samber/lo"

	"go.viam.com/planarkin/utils"
)

// Chain is an ordered sequence of segments from the base to the end effector. The number of rotary
// segments is the length of the joint configuration the chain accepts.
//
// A chain is built with AddSegment and AddChain and must not be modified once it is shared; readers such
// as forward kinematics may then use it concurrently.
type Chain struct {
	segments []Segment
}

// NewChain returns a chain made of the given segments, in order.
func NewChain(segments ...Segment) *Chain {
	c := &Chain{}
	for _, seg := range segments {
		c.AddSegment(seg)
	}
	return c
}

// AddSegment appends a segment to the end of the chain.
func (c *Chain) AddSegment(seg Segment) {
	if seg.Offset == nil {
		seg = NewSegment(seg.Joint, nil)
	}
	c.segments = append(c.segments, seg)
}

// AddChain appends all of other's segments, preserving their order. The segments are copied, so later
// changes to either chain do not affect the other.
func (c *Chain) AddChain(other *Chain) {
	if other == nil {
		return
	}
	for _, seg := range other.Segments() {
		c.AddSegment(seg)
	}
}

// SegmentCount returns the number of segments.
func (c *Chain) SegmentCount() int {
	return len(c.segments)
}

// DoF returns the number of rotary segments.
func (c *Chain) DoF() int {
	return lo.CountBy(c.segments, func(seg Segment) bool {
		return seg.Joint.Type == Rotary
	})
}

// Segment returns the segment at index i.
func (c *Chain) Segment(i int) (Segment, error) {
	if i < 0 || i >= len(c.segments) {
		return Segment{}, NewSegmentIndexError(i, len(c.segments)-1)
	}
	return c.segments[i], nil
}

// Segments returns a copy of the chain's segments.
func (c *Chain) Segments() []Segment {
	out := make([]Segment, len(c.segments))
	copy(out, c.segments)
	return out
}

// Clone returns an independent copy of the chain.
func (c *Chain) Clone() *Chain {
	return &Chain{segments: c.Segments()}
}

// ValidInputs returns an error if inputs cannot drive this chain: the length must equal DoF and every value
// must be finite.
func (c *Chain) ValidInputs(inputs []Input) error {
	if len(inputs) != c.DoF() {
		return NewIncorrectDoFError(len(inputs), c.DoF())
	}
	for i, in := range inputs {
		if !utils.IsFinite(in) {
			return NewNonFiniteInputError(i, in)
		}
	}
	return nil
}
