// Copyright 2024 The benchscore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchraw extracts metric records from raw benchmark output
// artifacts.
//
// Benchmark runners produce two incompatible artifact shapes:
// structured JSON (Google-Benchmark-style entry arrays, or the flat
// name→value maps the conversion step emits) and free-form text whose
// layout differs per upstream tool. ParseStructured handles the
// former; the latter goes through per-tool Extractor strategies
// looked up in a registry.
package benchraw

import (
	"fmt"
	"math"
)

// A MetricRecord is one measured operation extracted from one
// benchmark artifact. Value is a throughput or, for tools that report
// latency, a duration; which one it is follows from the producing
// tool's convention and is folded into the operation name by the
// extractors ("...: MB/s", "...: ns").
type MetricRecord struct {
	// Benchmark identifies the suite or binary that produced the
	// artifact. Artifacts do not self-identify, so this is always
	// supplied by the caller.
	Benchmark string

	// Op names the measured operation or variant. Unique within
	// one artifact after duplicate resolution.
	Op string

	// Value is the measurement. Always finite and non-negative;
	// extraction drops entries that would violate this.
	Value float64

	// Iters is the iteration count behind Value, when the artifact
	// reports one. Diagnostic only.
	Iters int

	fileName string
}

// Pos returns the name of the file the record was extracted from, or
// "" for records built directly in memory.
func (r *MetricRecord) Pos() string { return r.fileName }

// A DupPolicy determines how repeated operation names within one
// artifact are resolved.
type DupPolicy int

const (
	// DupLast keeps the last value seen. Default for structured
	// artifacts.
	DupLast DupPolicy = iota
	// DupFirst keeps the first value seen.
	DupFirst
	// DupSum accumulates repeated values. The default for
	// extraction rules whose tools emit one line per repetition.
	DupSum
)

func (p DupPolicy) String() string {
	switch p {
	case DupLast:
		return "last"
	case DupFirst:
		return "first"
	case DupSum:
		return "sum"
	}
	return fmt.Sprintf("DupPolicy(%d)", int(p))
}

// ParseDupPolicy parses the textual policy names used in run
// configuration.
func ParseDupPolicy(s string) (DupPolicy, error) {
	switch s {
	case "last":
		return DupLast, nil
	case "first":
		return DupFirst, nil
	case "sum":
		return DupSum, nil
	}
	return 0, fmt.Errorf("unknown duplicate policy %q", s)
}

// A recordSet accumulates records, applying a DupPolicy and
// preserving first-seen order.
type recordSet struct {
	benchmark string
	fileName  string
	policy    DupPolicy

	recs  []MetricRecord
	index map[string]int
	dups  []string
}

func newRecordSet(benchmark, fileName string, policy DupPolicy) *recordSet {
	return &recordSet{
		benchmark: benchmark,
		fileName:  fileName,
		policy:    policy,
		index:     make(map[string]int),
	}
}

// add records one measurement. Non-finite and negative values are
// dropped silently; they carry no usable signal and must not poison
// duplicate accumulation.
func (s *recordSet) add(op string, value float64, iters int) {
	if !isUsable(value) {
		return
	}
	if i, ok := s.index[op]; ok {
		s.dups = append(s.dups, op)
		switch s.policy {
		case DupLast:
			s.recs[i].Value = value
			s.recs[i].Iters = iters
		case DupSum:
			s.recs[i].Value += value
		}
		return
	}
	s.index[op] = len(s.recs)
	s.recs = append(s.recs, MetricRecord{
		Benchmark: s.benchmark,
		Op:        op,
		Value:     value,
		Iters:     iters,
		fileName:  s.fileName,
	})
}

// warnings returns one error per duplicated operation name.
func (s *recordSet) warnings() []error {
	var warns []error
	for _, op := range s.dups {
		warns = append(warns, fmt.Errorf("%s: duplicate operation %q (resolved by %q policy)", s.fileName, op, s.policy))
	}
	return warns
}

// isUsable reports whether v can appear in a MetricRecord.
func isUsable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
