// Copyright 2024 The benchscore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchscore normalizes raw benchmark result artifacts against a
// baseline dataset and produces a consolidated score report.
//
// Usage:
//
//	benchscore -baseline dir [options] [name=]artifact [[name=]artifact ...]
//
// Each positional argument names one raw result artifact produced by
// an external benchmark runner. Artifacts do not self-identify, so
// each may be prefixed with the benchmark name ("lzbench=out.txt");
// without a prefix the file's base name is used, minus any extension
// and any "out_" prefix, so "out_lzbench.txt" is the lzbench
// benchmark. Benchmarks are reported in argument order.
//
// The baseline dataset directory holds one file per benchmark
// (<benchmark>.json or <benchmark>.txt) captured on the reference
// machine. A missing or unreadable baseline aborts the run before any
// report is written; every other failure is recorded in the report
// against its benchmark and the run continues.
//
// The -config option supplies per-benchmark tool settings: artifact
// format, extraction rule for unstructured output, metric direction,
// scoring weights, and the duplicate-name policy. For example:
//
//	benchmarks:
//	  - name: lzbench
//	    format: unstructured
//	  - name: chm
//	    format: unstructured
//	    higher_is_better: false
//
// A score of 1.00 is parity with the reference machine; benchmarks
// with no baseline coverage are marked explicitly rather than scored.
//
// The -save option appends the run to a score history database,
// e.g. -save sqlite3:scores.db or -save "mysql:user@/benchscores".
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/go-sql-driver/mysql"

	"github.com/dcbench/benchscore/benchbase"
	"github.com/dcbench/benchscore/benchcfg"
	"github.com/dcbench/benchscore/benchchart"
	"github.com/dcbench/benchscore/benchdb"
	_ "github.com/dcbench/benchscore/benchdb/sqlite3"
	"github.com/dcbench/benchscore/benchraw"
	"github.com/dcbench/benchscore/benchreport"
	"github.com/dcbench/benchscore/benchscore"
	"github.com/dcbench/benchscore/benchunit"
)

var exit = os.Exit // replaced during testing

func usage() {
	fmt.Fprintf(os.Stderr, "usage: benchscore -baseline dir [options] [name=]artifact [[name=]artifact ...]\n")
	fmt.Fprintf(os.Stderr, "options:\n")
	flag.PrintDefaults()
	exit(2)
}

var (
	flagBaseline = flag.String("baseline", "", "baseline dataset `dir` (required)")
	flagConfig   = flag.String("config", "", "per-benchmark tool configuration YAML `file`")
	flagOut      = flag.String("o", "", "write the report to `file` instead of stdout")
	flagFormat   = flag.String("format", "text", "report `format`: text, csv, or html")
	flagTitle    = flag.String("title", "benchmark results", "report `title` identifying the benchmark set")
	flagChart    = flag.String("chart", "", "also render a score chart under `dir`")
	flagSave     = flag.String("save", "", "also save the run to a score history database (`driver:dsn`)")
	flagLabel    = flag.String("label", "", "run label stored with -save")
	flagVerbose  = flag.Bool("v", false, "log every extracted record")
)

func main() {
	log.SetPrefix("benchscore: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	format, ok := benchreport.Formats[*flagFormat]
	if *flagBaseline == "" || flag.NArg() == 0 || !ok {
		flag.Usage()
	}

	var cfg *benchcfg.Config
	if *flagConfig != "" {
		var err error
		cfg, err = benchcfg.Load(*flagConfig)
		if err != nil {
			log.Fatal(err)
		}
	}

	rep, err := run(cfg, *flagBaseline, *flagTitle, flag.Args())
	if err != nil {
		// Baseline failures are the one hard abort: no score is
		// derivable, so no report is produced.
		log.Fatal(err)
	}

	if *flagOut == "" {
		if err := format(os.Stdout, rep); err != nil {
			log.Fatal(err)
		}
	} else if err := rep.WriteFile(*flagOut, format); err != nil {
		log.Fatal(err)
	}

	if *flagChart != "" {
		if err := benchchart.Chart(rep, *flagChart); err != nil {
			log.Fatal(err)
		}
	}
	if *flagSave != "" {
		driver, dsn, ok := strings.Cut(*flagSave, ":")
		if !ok {
			log.Fatalf("-save %q: want driver:dsn", *flagSave)
		}
		db, err := benchdb.OpenSQL(driver, dsn)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		if _, err := db.SaveReport(context.Background(), *flagLabel, rep); err != nil {
			log.Fatal(err)
		}
	}
}

// run scores every artifact in order against the baseline dataset.
// Only a baseline load failure is returned as an error; per-artifact
// problems become report rows.
func run(cfg *benchcfg.Config, baselineDir, title string, args []string) (*benchreport.Report, error) {
	base, err := benchbase.Load(baselineDir, cfg)
	if err != nil {
		return nil, err
	}
	rep := &benchreport.Report{Title: title}
	for _, arg := range args {
		name, path := splitArg(arg)
		scoreArtifact(rep, cfg, base, name, path)
	}
	return rep, nil
}

// splitArg splits a "name=path" argument; a bare path derives the
// benchmark name from the file name.
func splitArg(arg string) (name, path string) {
	if name, path, ok := strings.Cut(arg, "="); ok {
		return name, path
	}
	base := filepath.Base(arg)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimPrefix(base, "out_"), arg
}

// scoreArtifact parses and scores one benchmark's artifact, recording
// the outcome (including failures) in rep.
func scoreArtifact(rep *benchreport.Report, cfg *benchcfg.Config, base *benchbase.Repository, name, path string) {
	bcfg := cfg.Get(name)
	dup, err := bcfg.DupPolicy()
	if err != nil {
		rep.AddFailure(name, err.Error())
		return
	}
	f, err := os.Open(path)
	if err != nil {
		log.Print(err)
		rep.AddFailure(name, "unreadable artifact")
		return
	}
	defer f.Close()

	var recs []benchraw.MetricRecord
	var warns []error
	if bcfg.Format == benchcfg.Unstructured {
		recs, warns, err = benchraw.Extract(bcfg.ExtractorName(), f, path, name, dup)
	} else {
		recs, warns, err = benchraw.ParseStructured(f, path, name, dup)
	}
	for _, w := range warns {
		log.Print(w)
	}
	if *flagVerbose {
		for _, r := range recs {
			log.Printf("%s: %s = %s", name, r.Op, benchunit.Scale(r.Value))
		}
	}
	switch {
	case errors.Is(err, benchraw.ErrNoRecords):
		log.Print(err)
		rep.AddFailure(name, "no records extracted")
		return
	case err != nil:
		log.Print(err)
		rep.AddFailure(name, "parse failure")
		return
	}

	s := benchscore.Score(name, recs, base, bcfg)
	for _, w := range s.Warnings {
		log.Printf("%s: %v", name, w)
	}
	rep.Add(s)
}
