// Package cli contains the planarik command line actions.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	generalFlagConfig = "config"
	generalFlagDebug  = "debug"

	jointsFlag = "joints"
	outFlag    = "out"

	solveFlagRestarts = "restarts"
	solveFlagRandSeed = "rand-seed"
)

// flags hold parse state, so every command gets its own.
func newJointsFlag() cli.Flag {
	return &cli.Float64SliceFlag{
		Name:    jointsFlag,
		Aliases: []string{"j"},
		Usage:   "joint angles in degrees, one per joint; the configured seed is used when empty",
	}
}

func newOutFlag(required bool) cli.Flag {
	return &cli.StringFlag{
		Name:     outFlag,
		Aliases:  []string{"o"},
		Usage:    "write an image of the chain to `FILE` (png, svg, pdf)",
		Required: required,
	}
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "planarik",
		Usage:           "solve planar serial chain kinematics",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    generalFlagConfig,
				Aliases: []string{"c"},
				Usage:   "load configuration from `FILE` (json or toml); built in defaults are used when empty",
			},
			&cli.BoolFlag{
				Name:    generalFlagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "solve",
				Usage:     "solve for the joint angles that put the end effector on the configured target",
				UsageText: "planarik [global options] solve [--restarts N] [--out FILE]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  solveFlagRestarts,
						Usage: "also solve from N random seeds in parallel and keep the best solution",
					},
					&cli.Int64Flag{
						Name:  solveFlagRandSeed,
						Value: 1,
						Usage: "random source seed for --restarts",
					},
					newOutFlag(false),
				},
				Action: SolveAction,
			},
			{
				Name:   "forward",
				Usage:  "print the pose of every frame of the chain",
				Flags:  []cli.Flag{newJointsFlag()},
				Action: ForwardAction,
			},
			{
				Name:   "jacobian",
				Usage:  "print the end effector jacobian",
				Flags:  []cli.Flag{newJointsFlag()},
				Action: JacobianAction,
			},
			{
				Name:   "render",
				Usage:  "draw the chain without solving",
				Flags:  []cli.Flag{newJointsFlag(), newOutFlag(true)},
				Action: RenderAction,
			},
		},
	}
}
