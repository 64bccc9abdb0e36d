// Copyright 2024 The benchscore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcfg

import (
	"strings"
	"testing"

	"github.com/dcbench/benchscore/benchraw"
)

const sampleConfig = `
benchmarks:
  - name: lzbench
    format: unstructured
  - name: chm
    format: unstructured
    higher_is_better: false
  - name: memcpy
    weights:
      "0_to_7": 1.0
      "8_to_16": 1.38
  - name: hashmaps
    format: unstructured
    extractor: folly
    duplicate: first
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatal(err)
	}

	lz := cfg.Get("lzbench")
	if lz.Format != Unstructured || lz.ExtractorName() != "lzbench" || !lz.HigherBetter() {
		t.Errorf("lzbench config wrong: %+v", lz)
	}
	if dup, _ := lz.DupPolicy(); dup != benchraw.DupSum {
		t.Errorf("lzbench dup = %v, want sum", dup)
	}

	chm := cfg.Get("chm")
	if chm.HigherBetter() {
		t.Error("chm should be lower-is-better")
	}
	// chm's tool restates results, so its rule registers last-wins.
	if dup, _ := chm.DupPolicy(); dup != benchraw.DupLast {
		t.Errorf("chm dup = %v, want last", dup)
	}

	mc := cfg.Get("memcpy")
	if mc.Format != "" && mc.Format != Structured {
		t.Errorf("memcpy format = %q, want structured", mc.Format)
	}
	if mc.Weights["8_to_16"] != 1.38 {
		t.Errorf("memcpy weights = %v", mc.Weights)
	}
	if dup, _ := mc.DupPolicy(); dup != benchraw.DupLast {
		t.Errorf("memcpy dup = %v, want last", dup)
	}

	hm := cfg.Get("hashmaps")
	if hm.ExtractorName() != "folly" {
		t.Errorf("hashmaps extractor = %q, want folly", hm.ExtractorName())
	}
	if dup, _ := hm.DupPolicy(); dup != benchraw.DupFirst {
		t.Errorf("hashmaps dup = %v, want first", dup)
	}

	// Unlisted benchmarks fall back to defaults.
	def := cfg.Get("openssl")
	if def.Format != Structured || !def.HigherBetter() {
		t.Errorf("default config wrong: %+v", def)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"badYAML", ":", "parsing config"},
		{"badFormat", "benchmarks:\n  - name: x\n    format: csv\n", "unknown format"},
		{"badExtractor", "benchmarks:\n  - name: nosuch\n    format: unstructured\n", "unknown extractor"},
		{"badDup", "benchmarks:\n  - name: x\n    duplicate: average\n", "duplicate policy"},
		{"badWeight", "benchmarks:\n  - name: x\n    weights: {op: -1}\n", "must be positive"},
		{"emptyName", "benchmarks:\n  - format: structured\n", "empty name"},
		{"repeated", "benchmarks:\n  - name: x\n  - name: x\n", "listed twice"},
	}
	for _, test := range tests {
		_, err := Parse([]byte(test.in))
		if err == nil || !strings.Contains(err.Error(), test.want) {
			t.Errorf("%s: err = %v, want substring %q", test.name, err, test.want)
		}
	}
}
