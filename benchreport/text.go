// Copyright 2024 The benchscore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchreport

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// FormatText renders the report as an aligned text table with a fixed
// header and a footer summarizing which benchmarks ran.
func FormatText(w io.Writer, r *Report) error {
	title := r.Title
	if title == "" {
		title = "benchmark results"
	}
	if _, err := fmt.Fprintf(w, "=== %s ===\n", title); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "benchmark\tscore\tops\tnote")
	for _, row := range r.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.Benchmark, scoreCell(row), coverageCell(row), row.Note)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "=== %d benchmarks run: %s ===\n",
		len(r.Rows), strings.Join(r.Benchmarks(), ", "))
	return err
}
