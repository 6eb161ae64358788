package cli

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/plot/vg"

	"go.viam.com/planarkin/config"
	"go.viam.com/planarkin/kinematics"
	"go.viam.com/planarkin/logging"
	"go.viam.com/planarkin/referenceframe"
	"go.viam.com/planarkin/render"
	"go.viam.com/planarkin/spatialmath"
)

// driver holds what every command needs: the loaded config, the chain it describes and a logger.
type driver struct {
	cfg    *config.Config
	chain  *referenceframe.Chain
	logger logging.Logger
}

func newDriver(c *cli.Context) (*driver, error) {
	logger := logging.NewBlankLogger("planarik")
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	if !c.Bool(generalFlagDebug) {
		logger.SetLevel(logging.INFO)
	}

	cfg := config.Default()
	if path := c.String(generalFlagConfig); path != "" {
		var err error
		if cfg, err = config.Read(path); err != nil {
			return nil, err
		}
		logger.Debugf("loaded config from %q", path)
	}

	chain, err := cfg.BuildChain()
	if err != nil {
		return nil, err
	}
	return &driver{cfg: cfg, chain: chain, logger: logger}, nil
}

// joints returns the --joints flag in radians, or the configured seed when it is not set.
func (d *driver) joints(c *cli.Context) []referenceframe.Input {
	if degrees := c.Float64Slice(jointsFlag); len(degrees) > 0 {
		return referenceframe.InputsFromDegrees(degrees)
	}
	return d.cfg.Seed()
}

// draw renders the chain at q, plus the base frame and, if not nil, the goal frame, to path.
func (d *driver) draw(q []referenceframe.Input, goal spatialmath.Pose, path string) error {
	p := render.NewPlot(d.cfg.Render.Title)
	if err := render.DrawChain(p, d.chain, q, d.cfg.Render.DrawFrames); err != nil {
		return err
	}
	if err := render.DrawFrame(p, spatialmath.NewZeroPose(), render.DefaultFrameLength); err != nil {
		return err
	}
	if goal != nil {
		if err := render.DrawFrame(p, goal, render.DefaultFrameLength); err != nil {
			return err
		}
	}
	render.EqualAxes(p)
	if err := render.Save(p, path, vg.Length(d.cfg.Render.SizeInches)*vg.Inch); err != nil {
		return err
	}
	d.logger.Debugf("wrote %q", path)
	return nil
}

// SolveAction runs inverse kinematics from the configured seed to the configured target. A solve that does not
// converge is still printed and drawn before its error is returned.
func SolveAction(c *cli.Context) error {
	d, err := newDriver(c)
	if err != nil {
		return err
	}
	//nolint:errcheck
	defer d.logger.Sync()

	seed := d.cfg.Seed()
	goal := d.cfg.Target.Pose()

	var solver kinematics.Solver
	if restarts := c.Int(solveFlagRestarts); restarts > 0 {
		combined, err := kinematics.NewCombinedIKSolver(d.chain, d.logger, d.cfg.Solver, restarts, c.Int64(solveFlagRandSeed))
		if err != nil {
			return err
		}
		solver = contextSolver{combined, c}
	} else {
		if solver, err = kinematics.NewJacobianIKSolver(d.chain, d.logger, d.cfg.Solver); err != nil {
			return err
		}
	}

	sol, err := solver.Solve(seed, goal)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", solutionSummary(sol))
	printf(c.App.Writer, "%s", jointTable(sol.Configuration))
	poses, err := kinematics.ComputePoses(d.chain, sol.Configuration)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", poseTable(d.chain, poses))

	out := c.String(outFlag)
	if out == "" {
		out = d.cfg.Render.Output
	}
	if out != "" {
		if err := d.draw(sol.Configuration, goal, out); err != nil {
			return err
		}
		infof(c.App.Writer, "Wrote %s", out)
	}

	if !sol.Converged() {
		warningf(c.App.ErrWriter, "Try --%s or a different seed", solveFlagRestarts)
	}
	return sol.Err()
}

// contextSolver ties a combined solve to the command's context so that an interrupt stops every seed.
type contextSolver struct {
	*kinematics.CombinedIK
	c *cli.Context
}

func (cs contextSolver) Solve(seed []referenceframe.Input, goal spatialmath.Pose) (*kinematics.Solution, error) {
	return cs.SolveContext(cs.c.Context, seed, goal)
}

// ForwardAction prints the pose of every frame at --joints.
func ForwardAction(c *cli.Context) error {
	d, err := newDriver(c)
	if err != nil {
		return err
	}
	poses, err := kinematics.ComputePoses(d.chain, d.joints(c))
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", poseTable(d.chain, poses))
	return nil
}

// JacobianAction prints the end effector jacobian at --joints, one row per twist component (vx, vy, omega).
func JacobianAction(c *cli.Context) error {
	d, err := newDriver(c)
	if err != nil {
		return err
	}
	jac, err := kinematics.ComputeJacobian(d.chain, d.joints(c))
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", matrixString(jac))
	return nil
}

// RenderAction draws the chain at --joints.
func RenderAction(c *cli.Context) error {
	d, err := newDriver(c)
	if err != nil {
		return err
	}
	out := c.String(outFlag)
	if out == "" {
		return errors.New("an output file is required")
	}
	if err := d.draw(d.joints(c), nil, out); err != nil {
		return err
	}
	infof(c.App.Writer, "Wrote %s", out)
	return nil
}
