// Copyright 2024 The benchscore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchraw

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// A ParseError reports a malformed structured artifact. It is fatal
// for that one artifact only; callers record it against the benchmark
// and keep going.
type ParseError struct {
	FileName string
	Msg      string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.FileName, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.FileName, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// gbenchEntry is one element of a Google-Benchmark-style
// "benchmarks" array. Only the fields the scoring pipeline consumes
// are decoded.
type gbenchEntry struct {
	Name           string          `json:"name"`
	RunType        string          `json:"run_type"`
	Iterations     int             `json:"iterations"`
	RealTime       float64         `json:"real_time"`
	TimeUnit       string          `json:"time_unit"`
	ItemsPerSecond float64         `json:"items_per_second"`
	BytesPerSecond float64         `json:"bytes_per_second"`
	ErrorOccurred  bool            `json:"error_occurred"`
	ErrorMessage   string          `json:"error_message"`
	Skipped        json.RawMessage `json:"skipped"`
	SkipMessage    string          `json:"skip_message"`
}

// skipped reports whether the producing tool flagged this entry as
// not run. Tool versions disagree on the field's type: older ones
// emit a bool, newer ones a reason string.
func (e *gbenchEntry) skipped() bool {
	if e.ErrorOccurred || e.SkipMessage != "" {
		return true
	}
	switch string(bytes.TrimSpace(e.Skipped)) {
	case "", "null", "false", `""`:
		return false
	}
	return true
}

// rate returns the throughput-like value for this entry. An explicit
// rate field wins over deriving one from timing, because producers
// calibrate explicit rates more carefully.
func (e *gbenchEntry) rate() (float64, bool) {
	if e.BytesPerSecond > 0 {
		return e.BytesPerSecond, true
	}
	if e.ItemsPerSecond > 0 {
		return e.ItemsPerSecond, true
	}
	if e.RealTime > 0 {
		sec := e.RealTime * timeUnitSeconds(e.TimeUnit)
		return 1 / sec, true
	}
	return 0, false
}

func timeUnitSeconds(unit string) float64 {
	switch unit {
	case "ns", "":
		return 1e-9
	case "us":
		return 1e-6
	case "ms":
		return 1e-3
	case "s":
		return 1
	}
	return 1e-9
}

// ParseStructured parses one structured JSON artifact into metric
// records tagged with benchmark. fileName is diagnostic only.
//
// Two container shapes are accepted: a Google-Benchmark-style object
// with a "benchmarks" entry array, and a flat object mapping
// operation names to numbers (nested objects are flattened with "/"
// separators). Entries the tool flagged as skipped or errored
// produce no record and no warning; they are the tool's own report of
// platform support, not a failure. Duplicate operation names are
// resolved by dup and reported in the returned warnings.
//
// A malformed container returns a *ParseError.
func ParseStructured(r io.Reader, fileName, benchmark string, dup DupPolicy) ([]MetricRecord, []error, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, &ParseError{fileName, "reading artifact", err}
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, nil, &ParseError{fileName, "malformed JSON", err}
	}

	set := newRecordSet(benchmark, fileName, dup)
	if raw, ok := top["benchmarks"]; ok {
		var entries []gbenchEntry
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, nil, &ParseError{fileName, `malformed "benchmarks" array`, err}
		}
		for _, e := range entries {
			if e.Name == "" {
				return nil, nil, &ParseError{fileName, "entry with empty name", nil}
			}
			if e.skipped() {
				continue
			}
			if v, ok := e.rate(); ok {
				set.add(e.Name, v, e.Iterations)
			}
		}
		return set.recs, set.warnings(), nil
	}

	// Flat map shape.
	for op, raw := range top {
		if err := addFlat(set, op, raw); err != nil {
			return nil, nil, &ParseError{fileName, fmt.Sprintf("operation %q", op), err}
		}
	}
	return set.recs, set.warnings(), nil
}

// addFlat adds one flat-map entry, flattening nested objects into
// "/"-joined names ("large_inputs": {"xxh3": {"log9": 17750}} becomes
// "large_inputs/xxh3/log9").
func addFlat(set *recordSet, op string, raw json.RawMessage) error {
	var v float64
	if err := json.Unmarshal(raw, &v); err == nil {
		set.add(op, v, 0)
		return nil
	}
	var nested map[string]json.RawMessage
	if err := json.Unmarshal(raw, &nested); err != nil {
		// Strings and other non-numeric values carry commentary,
		// not measurements.
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return nil
		}
		return err
	}
	for k, sub := range nested {
		if err := addFlat(set, op+"/"+k, sub); err != nil {
			return err
		}
	}
	return nil
}
