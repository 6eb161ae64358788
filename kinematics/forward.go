// Package kinematics solves the forward and inverse kinematics of planar serial chains.
package kinematics

import (
	"github.com/golang/geo/r2"

	"go.viam.com/planarkin/referenceframe"
	"go.viam.com/planarkin/spatialmath"
)

// ComputePoses returns the pose of every segment boundary of the chain, expressed in the base frame, for the joint
// configuration q. The result has chain.SegmentCount()+1 entries: entry 0 is the base frame (the identity) and
// entry i is the frame at the end of segment i-1. Inputs are consumed in chain order, one per rotary segment.
func ComputePoses(chain *referenceframe.Chain, q []referenceframe.Input) ([]spatialmath.Pose, error) {
	if err := chain.ValidInputs(q); err != nil {
		return nil, err
	}
	return computePoses(chain, q), nil
}

// computePoses does a single pass over the segments; inputs must already be validated.
func computePoses(chain *referenceframe.Chain, q []referenceframe.Input) []spatialmath.Pose {
	segments := chain.Segments()
	poses := make([]spatialmath.Pose, 0, len(segments)+1)
	running := spatialmath.NewZeroPose()
	poses = append(poses, running)

	inputIdx := 0
	for _, seg := range segments {
		var input referenceframe.Input
		if dof := seg.Joint.Type.DoF(); dof > 0 {
			input = q[inputIdx]
			inputIdx += dof
		}
		running = spatialmath.Compose(running, seg.Pose(input))
		poses = append(poses, running)
	}
	return poses
}

// ComputePose returns the pose of the frame at the end of the first segmentIdx segments, i.e. entry segmentIdx of
// ComputePoses. segmentIdx 0 is the base frame and segmentIdx chain.SegmentCount() is the end effector.
func ComputePose(chain *referenceframe.Chain, q []referenceframe.Input, segmentIdx int) (spatialmath.Pose, error) {
	if segmentIdx < 0 || segmentIdx > chain.SegmentCount() {
		return nil, referenceframe.NewSegmentIndexError(segmentIdx, chain.SegmentCount())
	}
	poses, err := ComputePoses(chain, q)
	if err != nil {
		return nil, err
	}
	return poses[segmentIdx], nil
}

// EndEffectorPose returns the pose of the last frame of the chain.
func EndEffectorPose(chain *referenceframe.Chain, q []referenceframe.Input) (spatialmath.Pose, error) {
	poses, err := ComputePoses(chain, q)
	if err != nil {
		return nil, err
	}
	return poses[len(poses)-1], nil
}

// JointPositions returns the position of every rotary joint, in chain order.
func JointPositions(chain *referenceframe.Chain, q []referenceframe.Input) ([]r2.Point, error) {
	poses, err := ComputePoses(chain, q)
	if err != nil {
		return nil, err
	}
	return jointPositions(chain, poses), nil
}

// a rotary joint turns about the origin of the frame its segment starts from.
func jointPositions(chain *referenceframe.Chain, poses []spatialmath.Pose) []r2.Point {
	positions := make([]r2.Point, 0, chain.DoF())
	for i, seg := range chain.Segments() {
		if seg.Joint.Type == referenceframe.Rotary {
			positions = append(positions, poses[i].Point())
		}
	}
	return positions
}
