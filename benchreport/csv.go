// Copyright 2024 The benchscore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchreport

import (
	"encoding/csv"
	"io"
	"strconv"
)

// FormatCSV renders the report as CSV, one row per benchmark plus a
// header row. The score column is empty for benchmarks without
// coverage so downstream tooling cannot mistake a marker for a value.
func FormatCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"benchmark", "score", "scored_ops", "total_ops", "note"}); err != nil {
		return err
	}
	for _, row := range r.Rows {
		score := ""
		if row.Score.HasScore {
			score = strconv.FormatFloat(row.Score.Aggregate, 'f', -1, 64)
		}
		rec := []string{
			row.Benchmark,
			score,
			strconv.Itoa(row.Score.Scored()),
			strconv.Itoa(row.Score.Total()),
			row.Note,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
