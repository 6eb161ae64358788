package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"go.viam.com/planarkin/kinematics"
	"go.viam.com/planarkin/referenceframe"
	"go.viam.com/planarkin/spatialmath"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	test.That(t, cfg.Validate(), test.ShouldBeNil)
	test.That(t, cfg.Links, test.ShouldResemble, []float64{600, 400})
	test.That(t, cfg.Payload, test.ShouldResemble, &referenceframe.PayloadSize{Width: 600, Height: 400})
	test.That(t, cfg.Solver, test.ShouldResemble, kinematics.NewDefaultSolverOptions())

	seed := cfg.Seed()
	test.That(t, len(seed), test.ShouldEqual, 3)
	for _, s := range seed {
		test.That(t, s, test.ShouldAlmostEqual, math.Pi/4)
	}
	test.That(t, spatialmath.PoseAlmostEqual(cfg.Target.Pose(), spatialmath.NewPoseFromPoint(r2.Point{X: -400, Y: 400})),
		test.ShouldBeTrue)

	chain, err := cfg.BuildChain()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, chain.DoF(), test.ShouldEqual, cfg.DoF())
	test.That(t, chain.SegmentCount(), test.ShouldEqual, 8)
}

func TestFromReaderValidate(t *testing.T) {
	_, err := FromReader("somepath", strings.NewReader(""), FormatJSON)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "EOF")

	_, err = FromReader("somepath", strings.NewReader(`{}`), Format("yaml"))
	test.That(t, err, test.ShouldNotBeNil)

	conf, err := FromReader("somepath", strings.NewReader(`{}`), FormatJSON)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf, test.ShouldResemble, Default())

	_, err = FromReader("somepath", strings.NewReader(`{"linkz": [1]}`), FormatJSON)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "linkz")

	_, err = FromReader("somepath", strings.NewReader(`{"links": [], "solver": {"step_size": 3}}`), FormatJSON)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"links" is required`)
	test.That(t, err.Error(), test.ShouldContainSubstring, "step_size")

	_, err = FromReader("somepath", strings.NewReader(`{"links": [100, -5], "seed_degrees": [0, 0]}`), FormatJSON)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"links.1"`)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"seed_degrees"`)

	conf, err = FromReader("somepath", strings.NewReader(`{"links": [500], "payload": null, "seed_degrees": [10, 20],
		"target": {"x": 300, "y": 100, "theta_degrees": 90}, "solver": {"max_iterations": 20}}`), FormatJSON)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf.Links, test.ShouldResemble, []float64{500})
	test.That(t, conf.Payload, test.ShouldBeNil)
	test.That(t, conf.Solver.MaxIterations, test.ShouldEqual, 20)
	test.That(t, conf.Solver.Tolerance, test.ShouldEqual, kinematics.NewDefaultSolverOptions().Tolerance)
	test.That(t, conf.Target.Pose().Orientation().Degrees(), test.ShouldAlmostEqual, 90.)
	test.That(t, conf.Seed()[1], test.ShouldAlmostEqual, math.Pi/9)
	test.That(t, conf.Solver.Weights, test.ShouldResemble, kinematics.NewDefaultDistanceWeights())

	conf, err = FromReader("somepath", strings.NewReader(`{"solver": {"weights": {"x": 1, "y": 1, "theta": 0}}}`), FormatJSON)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf.Solver.Weights, test.ShouldResemble, kinematics.DistanceWeights{X: 1, Y: 1})

	_, err = FromReader("somepath", strings.NewReader(`{"solver": {"weights": {"x": -1, "y": 1, "theta": 1}}}`), FormatJSON)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "weights")
}

func TestReadTOMLWithEnv(t *testing.T) {
	t.Setenv("PLANARIK_REACH", "450")
	path := filepath.Join(t.TempDir(), "arm.toml")
	contents := `
links = [700, ${PLANARIK_REACH}]

[payload]
width = 200
height = 300

[target]
x = 100
y = 900

[render]
title = "test"
draw_frames = false
`
	test.That(t, os.WriteFile(path, []byte(contents), 0o600), test.ShouldBeNil)

	cfg, err := Read(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Links, test.ShouldResemble, []float64{700, 450})
	test.That(t, cfg.Payload, test.ShouldResemble, &referenceframe.PayloadSize{Width: 200, Height: 300})
	test.That(t, cfg.Target, test.ShouldResemble, Target{X: 100, Y: 900})
	test.That(t, cfg.Render.Title, test.ShouldEqual, "test")
	test.That(t, cfg.Render.DrawFrames, test.ShouldBeFalse)
	test.That(t, cfg.Render.SizeInches, test.ShouldEqual, defaultImageInches)

	_, err = Read(filepath.Join(t.TempDir(), "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestFormatFromPath(t *testing.T) {
	test.That(t, FormatFromPath("a/b.TOML"), test.ShouldEqual, FormatTOML)
	test.That(t, FormatFromPath("a/b.json"), test.ShouldEqual, FormatJSON)
	test.That(t, FormatFromPath("noext"), test.ShouldEqual, FormatJSON)
	test.That(t, FormatFromPath("arm.json5"), test.ShouldEqual, FormatJSON5)
}

func TestFromReaderJSON5(t *testing.T) {
	conf, err := FromReader("arm.json5", strings.NewReader(`{
		// a single long link
		links: [1200],
		target: {x: 0, y: 1200,},
	}`), FormatJSON5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf.Links, test.ShouldResemble, []float64{1200})
	test.That(t, conf.Target, test.ShouldResemble, Target{X: 0, Y: 1200})
	test.That(t, conf.DoF(), test.ShouldEqual, 2)

	_, err = FromReader("arm.json5", strings.NewReader(`{links: [}`), FormatJSON5)
	test.That(t, err, test.ShouldNotBeNil)
}
