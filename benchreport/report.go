// Copyright 2024 The benchscore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchreport collects per-benchmark scores into a single
// consolidated report.
//
// The report makes no scoring decisions; it records outcomes in the
// order benchmarks were executed and renders them as text, CSV or
// HTML. Writing a report always replaces the previous artifact so a
// stale run can never leak into a new one.
package benchreport

import (
	"fmt"
	"io"
	"os"

	"github.com/dcbench/benchscore/benchscore"
)

// A Row is the outcome for one benchmark.
type Row struct {
	// Benchmark names the suite.
	Benchmark string

	// Score is the scored outcome. Meaningful only when Note is
	// empty or Score.HasScore is true.
	Score benchscore.BenchmarkScore

	// Note carries a failure annotation ("parse failure: ...",
	// "no records extracted") or, for a scored benchmark with no
	// baseline coverage, the explicit no-coverage marker.
	Note string
}

// A Report is the consolidated outcome of one run.
type Report struct {
	// Title identifies the benchmark set that was run; it appears
	// in the report header.
	Title string

	// Rows, one per benchmark, in execution order.
	Rows []Row
}

// NoCoverage is the marker used for benchmarks with zero scored
// operations. Such a benchmark must never be given a numeric score;
// both 0 and 1 would be misleading.
const NoCoverage = "no baseline coverage"

// Add appends one scored benchmark.
func (r *Report) Add(s benchscore.BenchmarkScore) {
	row := Row{Benchmark: s.Benchmark, Score: s}
	if !s.HasScore {
		row.Note = NoCoverage
	}
	r.Rows = append(r.Rows, row)
}

// AddFailure appends a benchmark whose artifact could not be scored
// at all, with the reason.
func (r *Report) AddFailure(benchmark, note string) {
	r.Rows = append(r.Rows, Row{Benchmark: benchmark, Note: note})
}

// Benchmarks returns the benchmark names in execution order.
func (r *Report) Benchmarks() []string {
	names := make([]string, len(r.Rows))
	for i, row := range r.Rows {
		names[i] = row.Benchmark
	}
	return names
}

// A Format renders a report to a writer.
type Format func(w io.Writer, r *Report) error

// Formats maps the format names accepted on the command line.
var Formats = map[string]Format{
	"text": FormatText,
	"csv":  FormatCSV,
	"html": FormatHTML,
}

// WriteFile renders the report to path, truncating any pre-existing
// artifact first. Nothing is written if the format name is unknown.
func (r *Report) WriteFile(path string, format Format) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return format(f, r)
}

// scoreCell renders the aggregate-score column for one row.
func scoreCell(row Row) string {
	if !row.Score.HasScore {
		return "-"
	}
	return fmt.Sprintf("%.2f", row.Score.Aggregate)
}

// coverageCell renders "scored/total" operation counts.
func coverageCell(row Row) string {
	return fmt.Sprintf("%d/%d", row.Score.Scored(), row.Score.Total())
}
