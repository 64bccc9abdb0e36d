// Copyright 2024 The benchscore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchraw

import (
	"errors"
	"sort"
	"strings"
	"testing"
)

// byOp returns recs as an op→value map for order-independent
// comparison.
func byOp(t *testing.T, recs []MetricRecord) map[string]float64 {
	t.Helper()
	m := make(map[string]float64)
	for _, r := range recs {
		if _, ok := m[r.Op]; ok {
			t.Fatalf("record set contains op %q twice", r.Op)
		}
		m[r.Op] = r.Value
	}
	return m
}

func TestParseStructuredGoogleBenchmark(t *testing.T) {
	const in = `{
		"context": {"host_name": "ref"},
		"benchmarks": [
			{"name": "memcpy/0_to_7", "iterations": 1000, "real_time": 10.0, "time_unit": "ns", "bytes_per_second": 120.0},
			{"name": "memcpy/8_to_16", "iterations": 1000, "real_time": 5.0, "time_unit": "ns", "items_per_second": 50.0},
			{"name": "memcpy/derived", "iterations": 10, "real_time": 4.0, "time_unit": "ms"},
			{"name": "memcpy/avx512", "error_occurred": true, "error_message": "CPU feature not supported"},
			{"name": "memcpy/sve", "skipped": "skipped with message", "real_time": 1.0}
		]
	}`
	recs, warns, err := ParseStructured(strings.NewReader(in), "out.json", "memcpy", DupLast)
	if err != nil {
		t.Fatal(err)
	}
	if len(warns) != 0 {
		t.Errorf("unexpected warnings: %v", warns)
	}
	got := byOp(t, recs)
	want := map[string]float64{
		"memcpy/0_to_7":  120.0, // explicit rate wins
		"memcpy/8_to_16": 50.0,
		"memcpy/derived": 250.0, // 1 / 4ms
	}
	for op, v := range want {
		if got[op] != v {
			t.Errorf("op %q = %v, want %v", op, got[op], v)
		}
	}
	if len(got) != len(want) {
		t.Errorf("got ops %v, want exactly %v", got, want)
	}
	for _, r := range recs {
		if r.Benchmark != "memcpy" {
			t.Errorf("record %q tagged %q, want memcpy", r.Op, r.Benchmark)
		}
	}
}

func TestParseStructuredFlatMap(t *testing.T) {
	const in = `{
		"folly::memset: size=1": 293.0,
		"folly::memset: size=2": 310.5,
		"large_inputs": {"xxh3": {"log9": 17750}},
		"detailed results in out.json": " "
	}`
	recs, _, err := ParseStructured(strings.NewReader(in), "out.json", "memset", DupLast)
	if err != nil {
		t.Fatal(err)
	}
	got := byOp(t, recs)
	want := map[string]float64{
		"folly::memset: size=1":  293.0,
		"folly::memset: size=2":  310.5,
		"large_inputs/xxh3/log9": 17750,
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for op, v := range want {
		if got[op] != v {
			t.Errorf("op %q = %v, want %v", op, got[op], v)
		}
	}
}

func TestParseStructuredMalformed(t *testing.T) {
	_, _, err := ParseStructured(strings.NewReader("not json"), "bad.json", "b", DupLast)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
	if perr.FileName != "bad.json" {
		t.Errorf("FileName = %q, want bad.json", perr.FileName)
	}
}

func TestParseStructuredDuplicates(t *testing.T) {
	const in = `{
		"benchmarks": [
			{"name": "op", "items_per_second": 10},
			{"name": "op", "items_per_second": 30}
		]
	}`
	tests := []struct {
		dup  DupPolicy
		want float64
	}{
		{DupLast, 30},
		{DupFirst, 10},
		{DupSum, 40},
	}
	for _, test := range tests {
		recs, warns, err := ParseStructured(strings.NewReader(in), "dup.json", "b", test.dup)
		if err != nil {
			t.Fatal(err)
		}
		if len(recs) != 1 || recs[0].Value != test.want {
			t.Errorf("%v: got %v, want single record with value %v", test.dup, recs, test.want)
		}
		if len(warns) != 1 {
			t.Errorf("%v: warnings = %v, want one duplicate warning", test.dup, warns)
		}
	}
}

func TestParseStructuredOrderIrrelevant(t *testing.T) {
	const in = `{"b": 2, "a": 1, "c": 3}`
	recs, _, err := ParseStructured(strings.NewReader(in), "x.json", "b", DupLast)
	if err != nil {
		t.Fatal(err)
	}
	var ops []string
	for _, r := range recs {
		ops = append(ops, r.Op)
	}
	sort.Strings(ops)
	if len(ops) != 3 || ops[0] != "a" || ops[2] != "c" {
		t.Errorf("ops = %v, want [a b c]", ops)
	}
}
