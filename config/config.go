// Package config defines the configuration of the planarik driver: the chain to build, where to start, where to go,
// how to solve and what to draw.
package config

import (
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/planarkin/kinematics"
	"go.viam.com/planarkin/referenceframe"
	"go.viam.com/planarkin/spatialmath"
	"go.viam.com/planarkin/utils"
)

const (
	defaultSeedDegrees = 45.
	defaultImageInches = 8.
	defaultTitle       = "Planar Kinematic Chain"
)

// Config describes a chain, a solve and a rendering of the result.
type Config struct {
	// Link lengths in mm, base first.
	Links   []float64                   `json:"links"`
	Payload *referenceframe.PayloadSize `json:"payload,omitempty"`

	// Seed joint angles in degrees, one per link plus one for the end effector joint. Every joint starts at 45
	// degrees when empty.
	SeedDegrees []float64 `json:"seed_degrees,omitempty"`

	Target Target                   `json:"target"`
	Solver kinematics.SolverOptions `json:"solver"`
	Render Render                   `json:"render"`
}

// Target is the goal pose of the end effector.
type Target struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	ThetaDegrees float64 `json:"theta_degrees"`
}

// Render controls the image written after a solve.
type Render struct {
	Title      string  `json:"title"`
	SizeInches float64 `json:"size_inches"`
	DrawFrames bool    `json:"draw_frames"`
	Output     string  `json:"output,omitempty"`
}

// Default returns the configuration of a 600 mm and a 400 mm link holding a 600x400 mm box, starting with every joint
// at 45 degrees and reaching for (-400, 400).
func Default() *Config {
	return &Config{
		Links:   []float64{600, 400},
		Payload: &referenceframe.PayloadSize{Width: 600, Height: 400},
		Target:  Target{X: -400, Y: 400},
		Solver:  kinematics.NewDefaultSolverOptions(),
		Render: Render{
			Title:      defaultTitle,
			SizeInches: defaultImageInches,
			DrawFrames: true,
		},
	}
}

// DoF returns the number of joints the configured chain has.
func (c *Config) DoF() int {
	return len(c.Links) + 1
}

// BuildChain returns the configured chain.
func (c *Config) BuildChain() (*referenceframe.Chain, error) {
	return referenceframe.NewChainFromLinks(c.Links, c.Payload)
}

// Seed returns the starting configuration in radians.
func (c *Config) Seed() []referenceframe.Input {
	if len(c.SeedDegrees) == 0 {
		seed := make([]referenceframe.Input, c.DoF())
		for i := range seed {
			seed[i] = utils.DegToRad(defaultSeedDegrees)
		}
		return seed
	}
	return referenceframe.InputsFromDegrees(c.SeedDegrees)
}

// Pose returns the target as a pose.
func (t Target) Pose() spatialmath.Pose {
	return spatialmath.NewPose(r2.Point{X: t.X, Y: t.Y}, utils.DegToRad(t.ThetaDegrees))
}

// Validate returns every problem with the config at once, and fills zero solver and render settings with defaults.
func (c *Config) Validate() error {
	var err error
	if len(c.Links) == 0 {
		err = multierr.Append(err, utils.NewConfigValidationFieldRequiredError("config", "links"))
	}
	for i, l := range c.Links {
		if !utils.IsFinite(l) || l <= 0 {
			err = multierr.Append(err, utils.NewConfigValidationError(fmt.Sprintf("links.%d", i),
				errors.Errorf("length must be positive, got %v", l)))
		}
	}
	if c.Payload != nil {
		if pErr := c.Payload.Validate(); pErr != nil {
			err = multierr.Append(err, utils.NewConfigValidationError("payload", pErr))
		}
	}
	if len(c.SeedDegrees) != 0 && len(c.SeedDegrees) != c.DoF() {
		err = multierr.Append(err, utils.NewConfigValidationError("seed_degrees",
			referenceframe.NewIncorrectDoFError(len(c.SeedDegrees), c.DoF())))
	}
	for i, s := range c.SeedDegrees {
		if !utils.IsFinite(s) {
			err = multierr.Append(err, utils.NewConfigValidationError(fmt.Sprintf("seed_degrees.%d", i),
				errors.Errorf("must be finite, got %v", s)))
		}
	}
	if !utils.IsFinite(c.Target.X) || !utils.IsFinite(c.Target.Y) || !utils.IsFinite(c.Target.ThetaDegrees) {
		err = multierr.Append(err, utils.NewConfigValidationError("target", errors.Errorf("must be finite, got %+v", c.Target)))
	}

	c.Solver = c.Solver.WithDefaults()
	if sErr := c.Solver.Validate(); sErr != nil {
		err = multierr.Append(err, utils.NewConfigValidationError("solver", sErr))
	}

	if c.Render.SizeInches == 0 {
		c.Render.SizeInches = defaultImageInches
	}
	if !utils.IsFinite(c.Render.SizeInches) || c.Render.SizeInches < 0 {
		err = multierr.Append(err, utils.NewConfigValidationError("render.size_inches",
			errors.Errorf("must be positive, got %v", c.Render.SizeInches)))
	}
	if c.Render.Title == "" {
		c.Render.Title = defaultTitle
	}
	return err
}
