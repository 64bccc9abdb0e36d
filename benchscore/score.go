// Copyright 2024 The benchscore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchscore normalizes one benchmark's measurements against
// the baseline repository and aggregates them into a single score.
//
// Each operation's score is the ratio of its measured value to the
// reference value (inverted for lower-is-better metrics so that >1
// always means faster than the reference machine). The aggregate is
// the geometric mean of the ratios: ratios are multiplicative
// quantities spanning very different absolute scales, and an
// arithmetic mean would let one high-throughput operation dominate.
package benchscore

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"

	"github.com/dcbench/benchscore/benchbase"
	"github.com/dcbench/benchscore/benchcfg"
	"github.com/dcbench/benchscore/benchraw"
)

// A BenchmarkScore is the scored outcome for one benchmark in one
// run. It is computed fresh each run and never written back into the
// baseline.
type BenchmarkScore struct {
	// Benchmark names the suite this score summarizes.
	Benchmark string

	// OpScores maps each scored operation to its ratio. A ratio of
	// exactly 1 is parity with the reference machine.
	OpScores map[string]float64

	// Unscored lists operations that were measured but excluded
	// from the aggregate: no baseline entry, a degenerate (zero)
	// baseline, or a zero measurement. Sorted.
	Unscored []string

	// Aggregate is the geometric mean of OpScores, weighted if the
	// benchmark configures weights. Valid only if HasScore.
	Aggregate float64

	// HasScore reports whether at least one operation was scored.
	// When false the benchmark has no baseline coverage and must
	// be reported as such, never as a score of 0 or 1.
	HasScore bool

	// Warnings lists per-operation diagnostics (degenerate
	// baselines, unusable measurements).
	Warnings []error
}

// Scored returns the number of operations included in the aggregate.
func (s *BenchmarkScore) Scored() int { return len(s.OpScores) }

// Total returns the number of operations that carried a usable
// measurement, scored or not. Entries the tool itself skipped never
// reach the scorer and are not counted here.
func (s *BenchmarkScore) Total() int { return len(s.OpScores) + len(s.Unscored) }

// Score combines one benchmark's metric records with the baseline
// repository. cfg supplies the metric direction and optional weights.
func Score(benchmark string, recs []benchraw.MetricRecord, base *benchbase.Repository, cfg benchcfg.Benchmark) BenchmarkScore {
	s := BenchmarkScore{
		Benchmark: benchmark,
		OpScores:  make(map[string]float64),
	}
	var ratios, weights []float64
	weighted := len(cfg.Weights) > 0
	for _, rec := range recs {
		ref, ok := base.Get(benchmark, rec.Op)
		if !ok {
			s.Unscored = append(s.Unscored, rec.Op)
			continue
		}
		if ref <= 0 {
			s.Unscored = append(s.Unscored, rec.Op)
			s.Warnings = append(s.Warnings, fmt.Errorf("%s: degenerate baseline (%v), excluded", rec.Op, ref))
			continue
		}
		if rec.Value <= 0 {
			s.Unscored = append(s.Unscored, rec.Op)
			s.Warnings = append(s.Warnings, fmt.Errorf("%s: measured value %v is not scoreable, excluded", rec.Op, rec.Value))
			continue
		}
		ratio := rec.Value / ref
		if !cfg.HigherBetter() {
			ratio = ref / rec.Value
		}
		s.OpScores[rec.Op] = ratio
		ratios = append(ratios, ratio)
		if weighted {
			w, ok := cfg.Weights[rec.Op]
			if !ok {
				w = 1
			}
			weights = append(weights, w)
		}
	}
	sort.Strings(s.Unscored)
	switch {
	case len(ratios) == 0:
		return s
	case len(ratios) == 1:
		// The geometric mean of one ratio is that ratio; computing
		// it through logs would smudge the last bit.
		s.Aggregate = ratios[0]
	case weighted:
		s.Aggregate = weightedGeoMean(ratios, weights)
	default:
		s.Aggregate = stats.GeoMean(ratios)
	}
	s.HasScore = !math.IsNaN(s.Aggregate)
	return s
}

// weightedGeoMean computes exp of the weighted mean of logs. With all
// weights equal it reduces to the plain geometric mean.
func weightedGeoMean(xs, ws []float64) float64 {
	var sumLog, sumW float64
	for i, x := range xs {
		sumLog += ws[i] * math.Log(x)
		sumW += ws[i]
	}
	if sumW == 0 {
		return math.NaN()
	}
	return math.Exp(sumLog / sumW)
}
