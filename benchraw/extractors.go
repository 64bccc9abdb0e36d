// Copyright 2024 The benchscore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchraw

// The extraction rules for the upstream tools the suite drives. Each
// rule knows one tool's output layout and nothing else; adding a tool
// means adding a rule here (or registering one from another package)
// and naming it in the run configuration.

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dcbench/benchscore/benchunit"
)

func init() {
	// folly and lzbench emit one line per repetition, so repeats
	// accumulate; the other tools restate results and keep the
	// last one.
	RegisterExtractor("folly", ExtractorFunc(extractFolly), DupSum)
	RegisterExtractor("lzbench", ExtractorFunc(extractLzbench), DupSum)
	RegisterExtractor("openssl", ExtractorFunc(extractOpenssl), DupLast)
	RegisterExtractor("vdso", ExtractorFunc(extractVdso), DupLast)
	RegisterExtractor("libaegis", ExtractorFunc(extractLibaegis), DupLast)
	RegisterExtractor("erasure_code", ExtractorFunc(extractErasureCode), DupLast)
	RegisterExtractor("chm", ExtractorFunc(extractCHM), DupLast)
	RegisterExtractor("xxhash", ExtractorFunc(extractXXHash), DupLast)
	RegisterExtractor("hash_maps", ExtractorFunc(extractHashMaps), DupLast)
}

// timeRE matches a timing token like "113ns", "4.2us" or "1.08s"
// anywhere in a field. Its presence marks a measurement row in a
// folly-style benchmark table.
var timeRE = regexp.MustCompile(`[0-9][nmufp]?s`)

// extractFolly handles the folly/Google-Benchmark text table: one row
// per operation, with an optional relative-percent column, a timing
// column, and a suffix-scaled throughput column after it.
//
//	name               [relative]  113.02ns    8.85M
//
// The throughput column is the measurement; the operation name is
// everything before the timing (and relative) columns. Repeated rows
// for one name accumulate.
func extractFolly(data []byte, set *Adder) {
	for _, line := range lines(data) {
		if !timeRE.MatchString(line) {
			continue
		}
		fields := strings.Fields(line)
		hasRelative := false
		idxTime := -1
		for i, f := range fields {
			if strings.Contains(f, "%") {
				hasRelative = true
			}
			if timeRE.MatchString(f) {
				idxTime = i
				break
			}
		}
		if idxTime < 0 || idxTime+1 >= len(fields) {
			continue
		}
		nameEnd := idxTime
		if hasRelative {
			nameEnd = idxTime - 1
		}
		if nameEnd < 1 {
			continue
		}
		v, err := benchunit.ParseValue(fields[idxTime+1])
		if err != nil {
			continue
		}
		set.Add(strings.Join(fields[:nameEnd], " ")+": iters/s", v)
	}
}

// extractLzbench handles lzbench rows, which report compression and
// decompression throughput around a size column:
//
//	zstd 1.5.5 -1   780 MB/s  2205 MB/s  ... datasets
func extractLzbench(data []byte, set *Adder) {
	for _, line := range lines(data) {
		if !strings.Contains(line, "datasets") {
			continue
		}
		fields := strings.Fields(line)
		idx := -1
		for i, f := range fields {
			if strings.Contains(f, "MB") {
				idx = i
				break
			}
		}
		if idx < 2 || idx+1 >= len(fields) {
			continue
		}
		comp, err1 := strconv.ParseFloat(fields[idx-1], 64)
		decomp, err2 := strconv.ParseFloat(fields[idx+1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		name := strings.Join(fields[:idx-1], " ")
		set.Add(name+" compression: MB/s", comp)
		set.Add(name+" decompression: MB/s", decomp)
	}
}

// opensslSizes are the fixed block-size columns of `openssl speed`
// summary rows, in output order.
var opensslSizes = [...]string{"16B", "64B", "256B", "1KB", "8KB", "16KB"}

// extractOpenssl handles `openssl speed` output. Only the final
// summary line matters; it carries the cipher name and one
// KB/s-with-trailing-k figure per block size.
func extractOpenssl(data []byte, set *Adder) {
	all := lines(data)
	if len(all) == 0 {
		return
	}
	fields := strings.Fields(all[len(all)-1])
	if len(fields) < len(opensslSizes)+1 {
		return
	}
	name := fields[0]
	for i, size := range opensslSizes {
		f := fields[i+1]
		v, err := strconv.ParseFloat(strings.TrimSuffix(f, "k"), 64)
		if err != nil {
			continue
		}
		set.Add(fmt.Sprintf("%s %s: KB/s", name, size), v)
	}
}

// extractVdso handles the vdso call-rate benchmark:
//
//	Number of calls to gettimeofday per second: 42.17 M/s
func extractVdso(data []byte, set *Adder) {
	for _, line := range lines(data) {
		fields := strings.Fields(line)
		if len(fields) < 8 || !strings.Contains(fields[0], "Number") {
			continue
		}
		v, err := strconv.ParseFloat(fields[7], 64)
		if err != nil {
			continue
		}
		set.Add(fields[4]+": M/s", v)
	}
}

// extractLibaegis handles the libaegis benchmark table, whose rows
// name an AEGIS-128L variant and end in a Mb/s figure plus its unit.
func extractLibaegis(data []byte, set *Adder) {
	for _, line := range lines(data) {
		fields := strings.Fields(line)
		if len(fields) < 3 || !strings.Contains(fields[0], "128L") {
			continue
		}
		v, err := strconv.ParseFloat(fields[len(fields)-2], 64)
		if err != nil {
			continue
		}
		set.Add(strings.Join(fields[:len(fields)-2], " ")+": Mb/s", v)
	}
}

// extractErasureCode handles isa-l's erasure_code_perf output. Only
// warm-cache rows are measurements.
func extractErasureCode(data []byte, set *Adder) {
	for _, line := range lines(data) {
		fields := strings.Fields(line)
		if len(fields) < 3 || !strings.Contains(fields[0], "warm") {
			continue
		}
		v, err := strconv.ParseFloat(fields[len(fields)-2], 64)
		if err != nil {
			continue
		}
		set.Add(fields[0]+": MB/s", v)
	}
}

// xxhashSections maps the section header phrases of xxhsum's
// benchmark output to the section key used in operation names.
var xxhashSections = []struct {
	phrase, key string
}{
	{"benchmarking large inputs", "large_inputs"},
	{"throughput small inputs of fixed size", "throughput_small_fixed"},
	{"benchmarking random size inputs", "random_size_inputs"},
	{"latency for small inputs of fixed size", "latency_small_fixed"},
	{"latency for small inputs of random size", "latency_small_random"},
}

// extractXXHash handles the xxHash benchmark, whose output is grouped
// into sections of comma-separated rows, one row per hash variant:
//
//	Benchmarking large inputs
//	xxh3   , 17750, 27813, ...
//
// Column position encodes the input size: the large-inputs section
// runs log9 through log27 (512 bytes to 128 MB), every other section
// counts bytes from 1. The operation name is section/hash/size.
func extractXXHash(data []byte, set *Adder) {
	section := ""
	for _, line := range lines(data) {
		lower := strings.ToLower(line)
		matched := false
		for _, s := range xxhashSections {
			if strings.Contains(lower, s.phrase) {
				section = s.key
				matched = true
				break
			}
		}
		if matched || section == "" || !strings.Contains(line, ",") {
			continue
		}
		parts := strings.Split(line, ",")
		hash := strings.TrimSpace(parts[0])
		if hash == "" {
			continue
		}
		col := 0
		for _, p := range parts[1:] {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				continue
			}
			size := fmt.Sprintf("%d_bytes", col+1)
			if section == "large_inputs" {
				size = fmt.Sprintf("log%d", 9+col)
			}
			set.Add(section+"/"+hash+"/"+size, v)
			col++
		}
	}
}

// hashMapsOpRE matches the operation keys of the container hash maps
// benchmark. Its JSON output mixes measurements with run metadata;
// only the measurement keys start with an operation verb.
var hashMapsOpRE = regexp.MustCompile(`^(Find|Insert|InsertSqBr|Erase|Iter)`)

// extractHashMaps handles the container hash maps benchmark, a JSON
// object filtered to the keys naming a map operation.
func extractHashMaps(data []byte, set *Adder) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return
	}
	for op, raw := range top {
		if !hashMapsOpRE.MatchString(op) {
			continue
		}
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		set.Add(op, v)
	}
}

// extractCHM handles folly's ConcurrentHashMap latency table. The
// output is grouped into thread-count sections; each CHM row names a
// workload ending in an "item"/"empty" token, followed by max/avg/min
// latency pairs. The average latency, normalized to nanoseconds, is
// the measurement — note this is a lower-is-better metric.
func extractCHM(data []byte, set *Adder) {
	threads := 0
	for _, line := range lines(data) {
		fields := strings.Fields(line)
		if strings.Contains(line, "threads") && len(fields) >= 2 {
			if n, err := strconv.Atoi(fields[1]); err == nil {
				threads = n
			}
			continue
		}
		if !strings.Contains(line, "CHM") {
			continue
		}
		idxName := 0
		for i, f := range fields {
			if strings.Contains(f, "item") || strings.Contains(f, "empty") {
				idxName = i
			}
		}
		if idxName+5 > len(fields) {
			continue
		}
		avg, err := benchunit.ParseDuration(fields[idxName+3] + fields[idxName+4])
		if err != nil {
			continue
		}
		op := fmt.Sprintf("%dthreads %s: ns", threads, strings.Join(fields[:idxName+1], " "))
		set.Add(op, avg)
	}
}
