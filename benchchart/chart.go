// Copyright 2024 The benchscore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchchart renders a run's per-benchmark aggregate scores
// as a bar chart. A horizontal line at 1.0 marks parity with the
// reference machine.
package benchchart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/dcbench/benchscore/benchreport"
)

const barWidth = 18 // points

// Chart renders rep's scored benchmarks to dir/scores.png. Benchmarks
// without a score are left out of the chart; the report itself is the
// place to surface those. Returns an error if nothing is chartable.
func Chart(rep *benchreport.Report, dir string) error {
	var names []string
	var values plotter.Values
	for _, row := range rep.Rows {
		if !row.Score.HasScore {
			continue
		}
		names = append(names, row.Benchmark)
		values = append(values, row.Score.Aggregate)
	}
	if len(values) == 0 {
		return fmt.Errorf("chart: no scored benchmarks to render")
	}
	if err := os.MkdirAll(dir, 0777); err != nil {
		return err
	}

	pl := plot.New()
	pl.Title.Text = rep.Title
	pl.Y.Label.Text = "score vs. reference machine"

	bars, err := plotter.NewBarChart(values, vg.Points(barWidth))
	if err != nil {
		return err
	}
	bars.LineStyle.Width = 0
	bars.Color = color.RGBA{R: 0x33, G: 0x66, B: 0xcc, A: 0xff}
	pl.Add(plotter.NewGrid(), bars)
	pl.NominalX(names...)

	pl.X.Tick.Label.Rotation = -math.Pi / 8
	pl.X.Tick.Label.YAlign = draw.YTop
	pl.X.Tick.Label.XAlign = draw.XLeft

	// Force the parity line onto the graph so every chart has the
	// same visual anchor.
	if pl.Y.Min > 1 {
		pl.Y.Min = 1
	}
	if pl.Y.Max < 1 {
		pl.Y.Max = 1
	}
	parity := plotter.NewFunction(func(x float64) float64 { return 1 })
	parity.Color = color.RGBA{R: 0xcc, A: 0xff}
	parity.Width = vg.Points(1)
	pl.Add(parity)

	width := vg.Length(2+len(values)) * vg.Centimeter
	if width < 12*vg.Centimeter {
		width = 12 * vg.Centimeter
	}
	height := width / 2

	canvas := vgimg.PngCanvas{Canvas: vgimg.NewWith(
		vgimg.UseWH(width, height),
		vgimg.UseDPI(150),
		vgimg.UseBackgroundColor(color.White),
	)}
	pl.Draw(draw.New(canvas))

	file := filepath.Join(dir, "scores.png")
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if _, err := canvas.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
