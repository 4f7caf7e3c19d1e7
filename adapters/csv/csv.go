// Package csv is an external Reader/Writer adapter (§6): it sits outside
// the core engine and turns a CSV byte stream into a dataframe.DataFrame
// and back. It wraps the standard library's encoding/csv directly, the
// same choice the teacher's own dsv parser makes (datasource/parser/dsv/
// dsv_parser.go wraps csv.Reader rather than reaching for a third-party
// CSV library), so this is one of the few places in the engine that is
// deliberately stdlib-based rather than corpus-library-based.
package csv

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/Conqxeror/veloxx/dataframe"
	"github.com/Conqxeror/veloxx/series"
)

// NullLiterals are the field strings treated as a null value during type
// inference and parsing, per §6.
var NullLiterals = map[string]bool{"": true, "null": true, "NA": true}

// Config holds the options for Read.
type Config struct {
	// HasHeader indicates the first row names the columns. If false,
	// columns are named col0, col1, ...
	HasHeader bool
	// Delimiter is the field separator; defaults to ',' if zero.
	Delimiter rune
}

// Read parses r as CSV and infers a DataFrame, trying each dtype in turn
// per column — I32, then F64, then Bool, then DateTime (RFC3339), then
// falling back to String — per §6's inference rule: a column is only as
// narrow as every one of its non-null values parses under.
func Read(r io.Reader, cfg Config) (*dataframe.DataFrame, error) {
	cr := csv.NewReader(r)
	if cfg.Delimiter != 0 {
		cr.Comma = cfg.Delimiter
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return dataframe.New()
	}

	var header []string
	rows := records
	if cfg.HasHeader {
		header = records[0]
		rows = records[1:]
	} else {
		header = make([]string, len(records[0]))
		for i := range header {
			header[i] = "col" + strconv.Itoa(i)
		}
	}

	cols := make([]*series.Series, len(header))
	for c, name := range header {
		raw := make([]string, len(rows))
		for r, row := range rows {
			if c < len(row) {
				raw[r] = row[c]
			}
		}
		s, err := inferSeries(name, raw)
		if err != nil {
			return nil, err
		}
		cols[c] = s
	}
	return dataframe.New(cols...)
}

func inferSeries(name string, raw []string) (*series.Series, error) {
	if asI32, mask, ok := tryI32(raw); ok {
		return series.NewI32(name, asI32, mask)
	}
	if asF64, mask, ok := tryF64(raw); ok {
		return series.NewF64(name, asF64, mask)
	}
	if asBool, mask, ok := tryBool(raw); ok {
		return series.NewBool(name, asBool, mask)
	}
	if asDT, mask, ok := tryDateTime(raw); ok {
		return series.NewDateTime(name, asDT, mask)
	}
	mask := make([]bool, len(raw))
	for i, v := range raw {
		mask[i] = NullLiterals[v]
	}
	return series.NewString(name, raw, mask)
}

func tryI32(raw []string) ([]int32, []bool, bool) {
	out := make([]int32, len(raw))
	mask := make([]bool, len(raw))
	for i, v := range raw {
		if NullLiterals[v] {
			mask[i] = true
			continue
		}
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return nil, nil, false
		}
		out[i] = int32(n)
	}
	return out, mask, true
}

func tryF64(raw []string) ([]float64, []bool, bool) {
	out := make([]float64, len(raw))
	mask := make([]bool, len(raw))
	for i, v := range raw {
		if NullLiterals[v] {
			mask[i] = true
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, nil, false
		}
		out[i] = f
	}
	return out, mask, true
}

func tryBool(raw []string) ([]bool, []bool, bool) {
	out := make([]bool, len(raw))
	mask := make([]bool, len(raw))
	for i, v := range raw {
		if NullLiterals[v] {
			mask[i] = true
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, nil, false
		}
		out[i] = b
	}
	return out, mask, true
}

func tryDateTime(raw []string) ([]int64, []bool, bool) {
	out := make([]int64, len(raw))
	mask := make([]bool, len(raw))
	for i, v := range raw {
		if NullLiterals[v] {
			mask[i] = true
			continue
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, nil, false
		}
		out[i] = t.Unix()
	}
	return out, mask, true
}

// Write serializes df to w as CSV, with a header row of column names and
// null cells written as the empty string.
func Write(w io.Writer, df *dataframe.DataFrame) error {
	cw := csv.NewWriter(w)
	names := df.ColumnNames()
	if err := cw.Write(names); err != nil {
		return err
	}
	cols := make([]*series.Series, len(names))
	for i, n := range names {
		c, err := df.Column(n)
		if err != nil {
			return err
		}
		cols[i] = c
	}
	row := make([]string, len(names))
	for r := 0; r < df.NumRows(); r++ {
		for c, col := range cols {
			v := col.At(r)
			if v.IsNull() {
				row[c] = ""
			} else {
				row[c] = v.String()
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

