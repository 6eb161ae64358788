package referenceframe

import (
	"fmt"

	"go.viam.com/planarkin/spatialmath"
)

// JointType enumerates the kinds of joints a planar chain can be built from.
type JointType int

const (
	// Fixed joints have no degree of freedom and contribute the identity transform.
	Fixed JointType = iota
	// Rotary joints rotate about the axis perpendicular to the plane and have one degree of freedom.
	Rotary
)

func (jt JointType) String() string {
	switch jt {
	case Fixed:
		return "fixed"
	case Rotary:
		return "rotary"
	default:
		return fmt.Sprintf("JointType(%d)", int(jt))
	}
}

// DoF returns the number of inputs a joint of this type consumes.
func (jt JointType) DoF() int {
	if jt == Rotary {
		return 1
	}
	return 0
}

// Joint is the movable (or fixed) part of a segment.
type Joint struct {
	Type JointType
}

// NewRotaryJoint returns a joint rotating about the axis perpendicular to the plane.
func NewRotaryJoint() Joint {
	return Joint{Type: Rotary}
}

// NewFixedJoint returns a joint with no degree of freedom.
func NewFixedJoint() Joint {
	return Joint{Type: Fixed}
}

// Pose returns the transform contributed by the joint at the given input. Fixed joints ignore the input.
func (j Joint) Pose(input Input) spatialmath.Pose {
	if j.Type == Rotary {
		return spatialmath.NewPoseFromRotation(spatialmath.NewRotation(input))
	}
	return spatialmath.NewZeroPose()
}

// Segment pairs a joint with the fixed offset from this segment's joint frame to the next segment's joint
// frame, evaluated at joint value zero.
type Segment struct {
	Joint  Joint
	Offset spatialmath.Pose
}

// NewSegment creates a segment. A nil offset is the identity, e.g. for a bare end effector joint.
func NewSegment(joint Joint, offset spatialmath.Pose) Segment {
	if offset == nil {
		offset = spatialmath.NewZeroPose()
	}
	return Segment{Joint: joint, Offset: offset}
}

// Pose returns the transform from the segment's input frame to its output frame. The input is ignored
// for fixed joints.
func (s Segment) Pose(input Input) spatialmath.Pose {
	if s.Joint.Type == Fixed {
		return s.Offset
	}
	return spatialmath.Compose(s.Joint.Pose(input), s.Offset)
}

func (s Segment) String() string {
	return fmt.Sprintf("%s joint, offset %v", s.Joint.Type, s.Offset)
}
