// Copyright 2024 The benchscore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchunit parses and formats the scaled numbers that appear
// in benchmark tool output.
//
// Upstream tools abbreviate large throughput figures with SI suffixes
// ("4.13M iters/s", "117K ops/s") and report latencies with a unit
// glued onto the number ("893ns", "2us"). This package converts both
// forms to plain float64 values, and formats values back with three
// significant digits for report cells.
package benchunit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// suffixes maps a trailing multiplier character to its factor.
// Lowercase m means milli; the rest scale up.
var suffixes = map[byte]float64{
	'm': 1e-3,
	'K': 1e3,
	'k': 1e3,
	'M': 1e6,
	'G': 1e9,
	'T': 1e12,
}

// ParseValue parses a number with an optional SI multiplier suffix,
// such as "4.13M" or "117K". The literal "Infinity" parses to +Inf,
// which some tools emit when an operation completes faster than the
// timer resolution.
func ParseValue(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("parsing %q: empty value", s)
	}
	if s == "Infinity" {
		return math.Inf(1), nil
	}
	factor := 1.0
	num := s
	if f, ok := suffixes[s[len(s)-1]]; ok {
		factor = f
		num = s[:len(s)-1]
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %v", s, err)
	}
	return v * factor, nil
}

// durUnits lists duration units longest-suffix first so "ns" wins
// over "s".
var durUnits = []struct {
	suffix string
	nanos  float64
}{
	{"ns", 1},
	{"us", 1e3},
	{"µs", 1e3},
	{"ms", 1e6},
	{"s", 1e9},
}

// ParseDuration parses a latency like "893ns", "2.5us" or "3ms" and
// returns its value in nanoseconds.
func ParseDuration(s string) (float64, error) {
	for _, u := range durUnits {
		if !strings.HasSuffix(s, u.suffix) {
			continue
		}
		num := strings.TrimSuffix(s, u.suffix)
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			break
		}
		return v * u.nanos, nil
	}
	return 0, fmt.Errorf("parsing duration %q: unrecognized syntax", s)
}
