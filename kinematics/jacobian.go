package kinematics

import (
	"gonum.org/v1/gonum/mat"

	"go.viam.com/planarkin/referenceframe"
	"go.viam.com/planarkin/spatialmath"
)

// jacobianRows is the size of a planar twist: vx, vy, omega.
const jacobianRows = 3

// ComputeJacobian returns the 3 x DoF matrix mapping joint rates to the end effector twist (vx, vy, omega) at the
// configuration q. Column j belongs to the j-th rotary joint at position p_j and is the cross product of the
// out-of-plane rotation axis with the lever arm to the end effector: (-(p_end.y - p_j.y), p_end.x - p_j.x, 1).
func ComputeJacobian(chain *referenceframe.Chain, q []referenceframe.Input) (*mat.Dense, error) {
	if chain.DoF() == 0 {
		return nil, ErrNoDegreesOfFreedom
	}
	poses, err := ComputePoses(chain, q)
	if err != nil {
		return nil, err
	}
	return jacobianFromPoses(chain, poses), nil
}

// jacobianFromPoses expects a chain with at least one rotary joint, gonum does not allow zero sized matrices.
func jacobianFromPoses(chain *referenceframe.Chain, poses []spatialmath.Pose) *mat.Dense {
	dof := chain.DoF()
	end := poses[len(poses)-1].Point()
	jac := mat.NewDense(jacobianRows, dof, nil)
	for j, p := range jointPositions(chain, poses) {
		lever := end.Sub(p)
		jac.Set(0, j, -lever.Y)
		jac.Set(1, j, lever.X)
		jac.Set(2, j, 1)
	}
	return jac
}
