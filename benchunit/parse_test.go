// Copyright 2024 The benchscore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import (
	"math"
	"testing"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		err  bool
	}{
		{"123", 123, false},
		{"4.13", 4.13, false},
		{"117K", 117e3, false},
		{"117k", 117e3, false},
		{"4.13M", 4.13e6, false},
		{"1.5G", 1.5e9, false},
		{"2T", 2e12, false},
		{"250m", 0.25, false},
		{"Infinity", math.Inf(1), false},
		{"", 0, true},
		{"x13", 0, true},
		{"13Q", 0, true},
	}
	for _, test := range tests {
		got, err := ParseValue(test.in)
		if test.err {
			if err == nil {
				t.Errorf("ParseValue(%q) = %v, want error", test.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseValue(%q): unexpected error %v", test.in, err)
			continue
		}
		if got != test.want {
			t.Errorf("ParseValue(%q) = %v, want %v", test.in, got, test.want)
		}
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		err  bool
	}{
		{"893ns", 893, false},
		{"2us", 2000, false},
		{"2.5µs", 2500, false},
		{"3ms", 3e6, false},
		{"1s", 1e9, false},
		{"893", 0, true},
		{"fastns", 0, true},
	}
	for _, test := range tests {
		got, err := ParseDuration(test.in)
		if test.err {
			if err == nil {
				t.Errorf("ParseDuration(%q) = %v, want error", test.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDuration(%q): unexpected error %v", test.in, err)
			continue
		}
		if got != test.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", test.in, got, test.want)
		}
	}
}

func TestScale(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1.00"},
		{1.2, "1.20"},
		{12.345, "12.3"},
		{123456789, "123M"},
		{4.13e6, "4.13M"},
		{0.002, "2.00m"},
	}
	for _, test := range tests {
		if got := Scale(test.in); got != test.want {
			t.Errorf("Scale(%v) = %q, want %q", test.in, got, test.want)
		}
	}
}
