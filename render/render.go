// Package render draws planar chains onto gonum plots. It never computes kinematics itself, every pose comes from
// the kinematics package.
package render

import (
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"go.viam.com/planarkin/kinematics"
	"go.viam.com/planarkin/referenceframe"
	"go.viam.com/planarkin/spatialmath"
)

// DefaultFrameLength is the axis length, in mm, used for frames drawn by DrawChain.
const DefaultFrameLength = 100.

var (
	linkColor  = color.Black
	xAxisColor = color.RGBA{R: 220, A: 255}
	yAxisColor = color.RGBA{G: 160, A: 255}
)

// NewPlot returns an empty plot with millimeter axes and a grid.
func NewPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "X (mm)"
	p.Y.Label.Text = "Y (mm)"
	p.Add(plotter.NewGrid())
	return p
}

// DrawLink draws a black line between two points with a circle at each end. A zero length link still gets its
// circle, marking the joint.
func DrawLink(p *plot.Plot, from, to r2.Point) error {
	l, joints, err := plotter.NewLinePoints(plotter.XYs{{X: from.X, Y: from.Y}, {X: to.X, Y: to.Y}})
	if err != nil {
		return err
	}
	l.Color = linkColor
	l.Width = vg.Points(2)
	joints.Shape = draw.CircleGlyph{}
	joints.Color = linkColor
	joints.Radius = vg.Points(3)
	p.Add(l, joints)
	return nil
}

// DrawFrame draws the axes of pose: its X axis in red and its Y axis in green, each length mm long.
func DrawFrame(p *plot.Plot, pose spatialmath.Pose, length float64) error {
	origin := pose.Point()
	for _, axis := range []struct {
		dir r2.Point
		c   color.Color
	}{
		{r2.Point{X: length}, xAxisColor},
		{r2.Point{Y: length}, yAxisColor},
	} {
		tip := pose.Apply(axis.dir)
		l, err := plotter.NewLine(plotter.XYs{{X: origin.X, Y: origin.Y}, {X: tip.X, Y: tip.Y}})
		if err != nil {
			return err
		}
		l.Color = axis.c
		l.Width = vg.Points(1.5)
		p.Add(l)
	}
	return nil
}

// DrawChain draws one link per segment of chain at configuration q and, if drawFrames is set, the frame each segment
// starts from.
func DrawChain(p *plot.Plot, chain *referenceframe.Chain, q []referenceframe.Input, drawFrames bool) error {
	poses, err := kinematics.ComputePoses(chain, q)
	if err != nil {
		return err
	}
	for i := 0; i < len(poses)-1; i++ {
		if err := DrawLink(p, poses[i].Point(), poses[i+1].Point()); err != nil {
			return err
		}
		if drawFrames {
			if err := DrawFrame(p, poses[i], DefaultFrameLength); err != nil {
				return err
			}
		}
	}
	return nil
}

// EqualAxes widens the shorter axis of p so that both span the same range, keeping one millimeter the same length in
// X and Y when the plot is saved with a square size.
func EqualAxes(p *plot.Plot) {
	xSpan := p.X.Max - p.X.Min
	ySpan := p.Y.Max - p.Y.Min
	span := math.Max(xSpan, ySpan)
	if span <= 0 {
		return
	}
	xMid := (p.X.Max + p.X.Min) / 2
	yMid := (p.Y.Max + p.Y.Min) / 2
	p.X.Min, p.X.Max = xMid-span/2, xMid+span/2
	p.Y.Min, p.Y.Max = yMid-span/2, yMid+span/2
}

// Save writes p to path as a square image size wide. The format follows the file extension (png, svg, pdf, ...).
func Save(p *plot.Plot, path string, size vg.Length) error {
	if size <= 0 {
		return errors.Errorf("image size must be positive, got %v", size)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.Wrap(err, "cannot create output directory")
		}
	}
	return errors.Wrapf(p.Save(size, size, path), "cannot save plot to %q", path)
}
