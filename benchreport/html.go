// Copyright 2024 The benchscore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchreport

import (
	"html/template"
	"io"
)

var htmlTemplate = template.Must(template.New("").Funcs(template.FuncMap{
	"score":    scoreCell,
	"coverage": coverageCell,
}).Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{if .Title}}{{.Title}}{{else}}benchmark results{{end}}</title>
<style>
.benchscore { border-collapse: collapse; }
.benchscore th, .benchscore td { text-align: left; padding: 0.2em 1em; }
.benchscore th { border-bottom: 1px solid #666; }
.benchscore td.num { text-align: right; }
.benchscore tr.nocoverage td { color: #999; }
</style>
</head>
<body>
<h2>{{if .Title}}{{.Title}}{{else}}benchmark results{{end}}</h2>
<table class='benchscore'>
<tr><th>benchmark<th>score<th>ops<th>note
{{range .Rows -}}
<tr{{if not .Score.HasScore}} class='nocoverage'{{end}}><td>{{.Benchmark}}<td class='num'>{{score .}}<td class='num'>{{coverage .}}<td>{{.Note}}
{{end -}}
</table>
<p>{{len .Rows}} benchmarks run.</p>
</body>
</html>
`))

// FormatHTML renders the report as a standalone HTML page.
func FormatHTML(w io.Writer, r *Report) error {
	return htmlTemplate.Execute(w, r)
}
