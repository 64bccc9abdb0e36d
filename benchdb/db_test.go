// Copyright 2024 The benchscore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchdb_test

import (
	"context"
	"testing"

	"github.com/dcbench/benchscore/benchdb"
	_ "github.com/dcbench/benchscore/benchdb/sqlite3"
	"github.com/dcbench/benchscore/benchreport"
	"github.com/dcbench/benchscore/benchscore"
)

func openMemDB(t *testing.T) *benchdb.DB {
	t.Helper()
	db, err := benchdb.OpenSQL("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndHistory(t *testing.T) {
	ctx := context.Background()
	db := openMemDB(t)

	rep := &benchreport.Report{Title: "run one"}
	rep.Add(benchscore.BenchmarkScore{
		Benchmark: "memcpy",
		OpScores:  map[string]float64{"A": 1.2},
		Aggregate: 1.2,
		HasScore:  true,
	})
	rep.AddFailure("openssl", "parse failure")

	id1, err := db.SaveReport(ctx, "night-1", rep)
	if err != nil {
		t.Fatal(err)
	}
	rep.Rows[0].Score.Aggregate = 1.4
	id2, err := db.SaveReport(ctx, "night-2", rep)
	if err != nil {
		t.Fatal(err)
	}
	if id1 == id2 {
		t.Fatalf("both saves returned run ID %d", id1)
	}

	hist, err := db.History(ctx, "memcpy")
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 2 {
		t.Fatalf("history has %d entries, want 2", len(hist))
	}
	if hist[0].Label != "night-1" || hist[0].Score != 1.2 || !hist[0].HasScore {
		t.Errorf("first entry = %+v", hist[0])
	}
	if hist[1].Label != "night-2" || hist[1].Score != 1.4 {
		t.Errorf("second entry = %+v", hist[1])
	}

	failed, err := db.History(ctx, "openssl")
	if err != nil {
		t.Fatal(err)
	}
	if len(failed) != 2 || failed[0].HasScore {
		t.Errorf("failure rows = %+v, want 2 entries without scores", failed)
	}
}

func TestHistoryEmpty(t *testing.T) {
	db := openMemDB(t)
	hist, err := db.History(context.Background(), "unknown")
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 0 {
		t.Errorf("history = %+v, want empty", hist)
	}
}
