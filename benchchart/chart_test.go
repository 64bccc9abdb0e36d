// Copyright 2024 The benchscore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dcbench/benchscore/benchreport"
	"github.com/dcbench/benchscore/benchscore"
)

func TestChart(t *testing.T) {
	rep := &benchreport.Report{Title: "test set"}
	rep.Add(benchscore.BenchmarkScore{
		Benchmark: "memcpy",
		OpScores:  map[string]float64{"A": 1.2},
		Aggregate: 1.2,
		HasScore:  true,
	})
	rep.Add(benchscore.BenchmarkScore{Benchmark: "vdso"}) // uncovered, not charted

	dir := filepath.Join(t.TempDir(), "charts")
	if err := Chart(rep, dir); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(filepath.Join(dir, "scores.png"))
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() == 0 {
		t.Error("chart file is empty")
	}
}

func TestChartNothingToRender(t *testing.T) {
	rep := &benchreport.Report{}
	rep.AddFailure("openssl", "parse failure")
	if err := Chart(rep, t.TempDir()); err == nil {
		t.Error("Chart with no scored benchmarks succeeded, want error")
	}
}
