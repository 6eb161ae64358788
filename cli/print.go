package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/planarkin/kinematics"
	"go.viam.com/planarkin/referenceframe"
	"go.viam.com/planarkin/spatialmath"
	"go.viam.com/planarkin/utils"
)

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// infof prints a message prefixed with a bold cyan "Info: ".
func infof(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, color.New(color.Bold, color.FgCyan).Sprint("Info: ")+format+"\n", a...)
}

// warningf prints a message prefixed with a bold yellow "Warning: ".
func warningf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, color.New(color.Bold, color.FgYellow).Sprint("Warning: ")+format+"\n", a...)
}

// jointTable prints a table of joint angles, in chain order.
func jointTable(q []referenceframe.Input) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Joint", "Angle (deg)", "Angle (rad)"})
	for i, v := range q {
		t.AppendRow(table.Row{i, fmt.Sprintf("%.4f", utils.RadToDeg(v)), fmt.Sprintf("%.6f", v)})
	}
	return t.Render()
}

// poseTable prints a table of the frame at every segment boundary, with columns of index, joint type of the segment
// ending there, translation and orientation.
func poseTable(chain *referenceframe.Chain, poses []spatialmath.Pose) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Segment", "X (mm)", "Y (mm)", "Theta (deg)"})
	segments := chain.Segments()
	for i, pose := range poses {
		name := "base"
		if i > 0 {
			name = fmt.Sprintf("%d (%s)", i-1, segments[i-1].Joint.Type)
		}
		pt := pose.Point()
		t.AppendRow(table.Row{
			i,
			name,
			fmt.Sprintf("%.3f", pt.X),
			fmt.Sprintf("%.3f", pt.Y),
			fmt.Sprintf("%.3f", pose.Orientation().Degrees()),
		})
	}
	return t.Render()
}

// solutionSummary describes how a solve ended.
func solutionSummary(sol *kinematics.Solution) string {
	return fmt.Sprintf("%s after %d iterations: position error %.6f mm, orientation error %.6f deg",
		sol.Status, sol.Iterations, sol.PositionError, utils.RadToDeg(sol.OrientationError))
}

// matrixString formats a matrix one row per line.
func matrixString(m mat.Matrix) string {
	return strings.TrimRight(fmt.Sprintf("%.4f", mat.Formatted(m, mat.Squeeze())), "\n")
}
