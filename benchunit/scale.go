// Copyright 2024 The benchscore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import (
	"math"
	"strconv"
)

type factor struct {
	factor float64
	prefix string
}

// siFactors is ordered largest first so Scale picks the first factor
// that keeps the mantissa at or above 1.
var siFactors = []factor{
	{1e12, "T"},
	{1e9, "G"},
	{1e6, "M"},
	{1e3, "k"},
	{1, ""},
	{1e-3, "m"},
	{1e-6, "µ"},
	{1e-9, "n"},
}

// Scale formats val with three significant digits and an SI prefix,
// e.g. Scale(123456789) == "123M". Zero formats as "0".
func Scale(val float64) string {
	if val == 0 {
		return "0"
	}
	abs := math.Abs(val)
	f := siFactors[len(siFactors)-1]
	for _, cand := range siFactors {
		if abs >= cand.factor {
			f = cand
			break
		}
	}
	mant := val / f.factor
	// Keep three significant digits: 123, 12.3, 1.23.
	prec := 2
	switch {
	case math.Abs(mant) >= 99.95:
		prec = 0
	case math.Abs(mant) >= 9.995:
		prec = 1
	}
	return strconv.FormatFloat(mant, 'f', prec, 64) + f.prefix
}
