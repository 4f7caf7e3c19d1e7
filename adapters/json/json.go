// Package json is an external Reader/Writer adapter (§6) for JSON Lines:
// one JSON object per line, each line's keys becoming columns. It parses
// with tidwall/gjson, the same library the teacher's own jsonl adapter
// uses to pull a line apart (datasource/parser/jsonl/jsonl_partition_iterator.go
// calls gjson.Parse per line before walking its fields) rather than
// unmarshaling into a generic map.
package json

import (
	"bufio"
	"io"
	"sort"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/Conqxeror/veloxx/dataframe"
	"github.com/Conqxeror/veloxx/series"
	"github.com/Conqxeror/veloxx/value"
)

// Read scans r line by line, parsing each non-empty line as a JSON object
// and inferring a DataFrame with per-column type inference over I32, F64,
// Bool, then String, with gjson's own null/missing detection standing in
// for the null-literal set a text format needs. Unlike adapters/csv, it
// does not try DateTime: JSON strings always become String columns.
func Read(r io.Reader) (*dataframe.DataFrame, error) {
	scanner := bufio.NewScanner(r)
	var lines []gjson.Result
	colSeen := make(map[string]bool)
	var colOrder []string
	for scanner.Scan() {
		text := scanner.Text()
		if len(text) == 0 {
			continue
		}
		parsed := gjson.Parse(text)
		lines = append(lines, parsed)
		parsed.ForEach(func(key, _ gjson.Result) bool {
			k := key.String()
			if !colSeen[k] {
				colSeen[k] = true
				colOrder = append(colOrder, k)
			}
			return true
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	cols := make([]*series.Series, 0, len(colOrder))
	for _, name := range colOrder {
		s, err := inferColumn(name, lines)
		if err != nil {
			return nil, err
		}
		cols = append(cols, s)
	}
	return dataframe.New(cols...)
}

func inferColumn(name string, lines []gjson.Result) (*series.Series, error) {
	allInt, allFloat, allBool := true, true, true
	for _, line := range lines {
		v := line.Get(name)
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		switch v.Type {
		case gjson.Number:
			if v.Num != float64(int64(v.Num)) {
				allInt = false
			}
			allBool = false
		case gjson.True, gjson.False:
			allInt, allFloat = false, false
		default:
			allInt, allFloat, allBool = false, false, false
		}
	}

	switch {
	case allInt:
		vals := make([]int32, len(lines))
		mask := make([]bool, len(lines))
		for i, line := range lines {
			v := line.Get(name)
			if !v.Exists() || v.Type == gjson.Null {
				mask[i] = true
				continue
			}
			vals[i] = int32(v.Int())
		}
		return series.NewI32(name, vals, mask)
	case allFloat:
		vals := make([]float64, len(lines))
		mask := make([]bool, len(lines))
		for i, line := range lines {
			v := line.Get(name)
			if !v.Exists() || v.Type == gjson.Null {
				mask[i] = true
				continue
			}
			vals[i] = v.Float()
		}
		return series.NewF64(name, vals, mask)
	case allBool:
		vals := make([]bool, len(lines))
		mask := make([]bool, len(lines))
		for i, line := range lines {
			v := line.Get(name)
			if !v.Exists() || v.Type == gjson.Null {
				mask[i] = true
				continue
			}
			vals[i] = v.Bool()
		}
		return series.NewBool(name, vals, mask)
	default:
		vals := make([]string, len(lines))
		mask := make([]bool, len(lines))
		for i, line := range lines {
			v := line.Get(name)
			if !v.Exists() || v.Type == gjson.Null {
				mask[i] = true
				continue
			}
			vals[i] = v.String()
		}
		return series.NewString(name, vals, mask)
	}
}

// Write serializes df as JSON Lines: one compact JSON object per row,
// keyed by column name, with null cells omitted from the object entirely
// (the same "absent means null" convention Read's gjson-based inference
// relies on).
func Write(w io.Writer, df *dataframe.DataFrame) error {
	names := df.ColumnNames()
	sort.Strings(names) // stable key order independent of schema history
	cols := make([]*series.Series, len(names))
	for i, n := range names {
		c, err := df.Column(n)
		if err != nil {
			return err
		}
		cols[i] = c
	}
	bw := bufio.NewWriter(w)
	for r := 0; r < df.NumRows(); r++ {
		if _, err := bw.WriteString("{"); err != nil {
			return err
		}
		first := true
		for c, col := range cols {
			v := col.At(r)
			if v.IsNull() {
				continue
			}
			if !first {
				bw.WriteString(",")
			}
			first = false
			bw.WriteString(strconv.Quote(names[c]))
			bw.WriteString(":")
			writeValue(bw, v)
		}
		bw.WriteString("}\n")
	}
	return bw.Flush()
}

func writeValue(bw *bufio.Writer, v value.Value) {
	switch v.DataType() {
	case value.I32:
		n, _ := v.AsI32()
		bw.WriteString(strconv.FormatInt(int64(n), 10))
	case value.F64:
		f, _ := v.AsF64()
		bw.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	case value.Bool:
		b, _ := v.AsBool()
		bw.WriteString(strconv.FormatBool(b))
	default:
		bw.WriteString(strconv.Quote(v.String()))
	}
}
