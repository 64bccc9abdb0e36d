// Copyright 2024 The benchscore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchbase loads and serves baseline reference values.
//
// The baseline dataset is a directory with one file per benchmark,
// captured once on a designated reference machine and versioned
// independently of any run: <benchmark>.json for structured artifacts
// and <benchmark>.txt for unstructured ones, both in the exact shapes
// benchraw accepts. The repository is loaded once per run and is
// read-only afterwards, so it is safe for concurrent readers.
package benchbase

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dcbench/benchscore/benchcfg"
	"github.com/dcbench/benchscore/benchraw"
)

// A LoadError reports that the baseline dataset could not be loaded.
// This is fatal for the whole run: no score is derivable without a
// baseline.
type LoadError struct {
	Dir string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading baseline dataset from %s: %v", e.Dir, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

type key struct {
	benchmark, op string
}

// A Repository maps (benchmark, operation) to its reference value.
type Repository struct {
	refs map[key]float64
}

// Load builds a Repository from the baseline files under dir. cfg
// supplies each benchmark's extraction rule and duplicate policy; it
// may be nil, in which case every benchmark uses defaults.
//
// A missing or unreadable directory, and any unparseable baseline
// file, returns a *LoadError: a corrupt baseline invalidates every
// comparison against it.
func Load(dir string, cfg *benchcfg.Config) (*Repository, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{dir, err}
	}
	repo := &Repository{refs: make(map[key]float64)}
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		name := ent.Name()
		ext := filepath.Ext(name)
		benchmark := strings.TrimSuffix(name, ext)
		if benchmark == "" {
			continue
		}
		bcfg := cfg.Get(benchmark)
		dup, err := bcfg.DupPolicy()
		if err != nil {
			return nil, &LoadError{dir, err}
		}
		path := filepath.Join(dir, name)
		f, err := os.Open(path)
		if err != nil {
			return nil, &LoadError{dir, err}
		}
		var recs []benchraw.MetricRecord
		switch ext {
		case ".json":
			recs, _, err = benchraw.ParseStructured(f, path, benchmark, dup)
		case ".txt":
			recs, _, err = benchraw.Extract(bcfg.ExtractorName(), f, path, benchmark, dup)
		default:
			f.Close()
			continue
		}
		f.Close()
		if err != nil {
			return nil, &LoadError{dir, err}
		}
		for _, r := range recs {
			repo.refs[key{r.Benchmark, r.Op}] = r.Value
		}
	}
	return repo, nil
}

// Get returns the reference value for one operation. A miss is not
// fatal; it tells the scorer to exclude the operation from the
// aggregate. The returned value may be zero (a degenerate baseline),
// which the scorer likewise excludes.
func (r *Repository) Get(benchmark, op string) (float64, bool) {
	v, ok := r.refs[key{benchmark, op}]
	return v, ok
}

// Len returns the number of baseline entries loaded.
func (r *Repository) Len() int { return len(r.refs) }
