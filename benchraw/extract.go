// Copyright 2024 The benchscore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchraw

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
)

// An Extractor converts one tool's line-oriented output into metric
// records. Each upstream tool has its own layout, so extractors are
// registered by tool name and selected per benchmark by the run
// configuration.
//
// Extractors must ignore lines they do not recognize; partial
// platform support routinely truncates or reshapes tool output.
type Extractor interface {
	Extract(data []byte, set *Adder)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(data []byte, set *Adder)

func (f ExtractorFunc) Extract(data []byte, set *Adder) { f(data, set) }

// An Adder receives the records an Extractor finds. It applies the
// duplicate policy and tags records with the benchmark name.
type Adder struct {
	set *recordSet
}

// Add records one measurement. Values that are negative or not
// finite are dropped.
func (a *Adder) Add(op string, value float64) { a.set.add(op, value, 0) }

// AddIters is Add with an iteration count attached.
func (a *Adder) AddIters(op string, value float64, iters int) { a.set.add(op, value, iters) }

type extractorRule struct {
	ext Extractor
	dup DupPolicy
}

var extractors = make(map[string]extractorRule)

// RegisterExtractor registers the extraction rule for one upstream
// tool, along with the duplicate policy that matches the tool's
// output conventions (DupSum for tools that emit one line per
// repetition, DupLast for tools that restate a result). It panics if
// name is already registered; rules are wired up in package init
// functions, so a duplicate is a programming error.
func RegisterExtractor(name string, ext Extractor, dup DupPolicy) {
	if _, ok := extractors[name]; ok {
		panic(fmt.Sprintf("extractor %q registered twice", name))
	}
	extractors[name] = extractorRule{ext, dup}
}

// LookupExtractor returns the extraction rule registered under name.
func LookupExtractor(name string) (Extractor, bool) {
	rule, ok := extractors[name]
	return rule.ext, ok
}

// ExtractorDup returns the default duplicate policy registered for
// name.
func ExtractorDup(name string) (DupPolicy, bool) {
	rule, ok := extractors[name]
	return rule.dup, ok
}

// ExtractorNames returns the registered tool names, sorted. Used in
// usage and configuration error messages.
func ExtractorNames() []string {
	names := make([]string, 0, len(extractors))
	for name := range extractors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ErrNoRecords reports that a non-empty unstructured artifact yielded
// no records. It is warning-level: the benchmark shows up with zero
// scored operations rather than aborting the run.
var ErrNoRecords = errors.New("no records extracted")

// Extract runs the named extraction rule over one unstructured
// artifact, returning records tagged with benchmark along with
// duplicate warnings.
//
// An unknown extractor name is an error. A non-empty input that
// produces no records returns an error wrapping ErrNoRecords.
func Extract(name string, r io.Reader, fileName, benchmark string, dup DupPolicy) ([]MetricRecord, []error, error) {
	ext, ok := LookupExtractor(name)
	if !ok {
		return nil, nil, fmt.Errorf("unknown extractor %q", name)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", fileName, err)
	}
	set := newRecordSet(benchmark, fileName, dup)
	ext.Extract(data, &Adder{set})
	if len(set.recs) == 0 && len(bytes.TrimSpace(data)) > 0 {
		return nil, set.warnings(), fmt.Errorf("%s: %w", fileName, ErrNoRecords)
	}
	return set.recs, set.warnings(), nil
}

// lines splits data into lines, dropping trailing carriage returns
// and empty lines.
func lines(data []byte) []string {
	var out []string
	for _, l := range bytes.Split(data, []byte("\n")) {
		l = bytes.TrimRight(l, "\r")
		if len(bytes.TrimSpace(l)) == 0 {
			continue
		}
		out = append(out, string(l))
	}
	return out
}
