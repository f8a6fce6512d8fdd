// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"

	"github.com/petenewcomb/rebal-go"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// WriteLoadChart saves a grouped bar chart of per-resource capacity and load
// before and after a pass to path. The image format follows the file
// extension (e.g. .png, .svg, .pdf).
func WriteLoadChart(path string, capacity rebal.Capacities, before, after []int) error {
	space := capacity.Space()
	if space == nil {
		return fmt.Errorf("%w: capacities not bound to a resource space", rebal.ErrInvalidSpace)
	}
	n := space.Len()
	if len(before) != n || len(after) != n {
		return fmt.Errorf("%w: %d resources, load vectors of length %d and %d",
			rebal.ErrCapacityMismatch, n, len(before), len(after))
	}

	p := plot.New()
	p.Title.Text = "Load per resource"
	p.X.Label.Text = "Resource"
	p.Y.Label.Text = "Tasks"
	p.Title.TextStyle.Color = color.Gray{128}
	p.X.Color = color.Gray{128}
	p.Y.Color = color.Gray{128}
	p.X.Label.TextStyle.Color = color.Gray{128}
	p.Y.Label.TextStyle.Color = color.Gray{128}
	p.X.Tick.Color = color.Gray{128}
	p.Y.Tick.Color = color.Gray{128}
	p.X.Tick.Label.Color = color.Gray{128}
	p.Y.Tick.Label.Color = color.Gray{128}
	p.Legend.TextStyle.Color = color.Gray{128}
	p.Legend.Top = true
	p.Legend.Padding = 1 * vg.Millimeter

	series := []struct {
		label  string
		values []int
	}{
		{"capacity", capacity.Values()},
		{"before", before},
		{"after", after},
	}

	palette, err := brewer.GetPalette(brewer.TypeQualitative, "Paired", len(series))
	if err != nil {
		return err
	}
	colors := palette.Colors()

	barSpacing := vg.Points(3)
	barWidth := vg.Points(20)
	groupWidth := (barWidth + barSpacing) * vg.Length(len(series)-1)
	for i, sr := range series {
		values := make(plotter.Values, n)
		for j, v := range sr.values {
			values[j] = float64(v)
		}
		bc, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return err
		}
		bc.Offset = (barWidth+barSpacing)*vg.Length(i) - groupWidth/2
		bc.Color = colors[i]
		bc.LineStyle.Width = 0
		p.Add(bc)
		p.Legend.Add(sr.label, bc)
	}

	names := make([]string, n)
	for i, id := range space.IDs() {
		names[i] = strconv.Itoa(int(id))
	}
	p.NominalX(names...)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	width := vg.Length(3+2*n) * vg.Centimeter
	return p.Save(width, 8*vg.Centimeter, path)
}
