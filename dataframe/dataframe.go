// Package dataframe implements the engine's L3 layer: DataFrame, an
// ordered, named collection of equal-length Series. Column order is
// insertion order, preserved the way the teacher's schema package tracks
// column order explicitly (schema/schema.go keeps a []string alongside its
// name->index map rather than relying on Go map iteration, precisely so
// ForEachColumn is deterministic) — the same discipline carries over here
// since spec §8 requires column order to never leak from a hash map.
package dataframe

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	verrors "github.com/Conqxeror/veloxx/errors"
	"github.com/Conqxeror/veloxx/series"
)

// DataFrame is an ordered, named collection of equal-length Series.
type DataFrame struct {
	names  []string
	byName map[string]int
	cols   []*series.Series
	rows   int
}

// New builds a DataFrame from Series in the given order. All Series must
// share the same length and carry distinct, non-empty names. Every
// offending column is checked and reported together as a combined error
// (via go-multierror, the same aggregation the teacher's partition-level
// row operations use to report every failing row at once rather than
// bailing out on the first one, see internal/partition/partition-operable.go)
// instead of stopping at the first problem found.
func New(cols ...*series.Series) (*DataFrame, error) {
	df := &DataFrame{byName: make(map[string]int, len(cols))}
	if len(cols) > 0 {
		df.rows = cols[0].Len()
	}
	var errs *multierror.Error
	for _, c := range cols {
		if c.Name() == "" {
			errs = multierror.Append(errs, verrors.EmptyColumnName{})
			continue
		}
		if _, exists := df.byName[c.Name()]; exists {
			errs = multierror.Append(errs, verrors.DuplicateColumn{Name: c.Name()})
			continue
		}
		if c.Len() != df.rows {
			errs = multierror.Append(errs, verrors.LengthMismatch{Name: c.Name(), Expected: df.rows, Actual: c.Len()})
			continue
		}
		df.byName[c.Name()] = len(df.names)
		df.names = append(df.names, c.Name())
		df.cols = append(df.cols, c)
	}
	if errs != nil {
		return nil, errs.ErrorOrNil()
	}
	return df, nil
}

// NumRows returns the number of rows.
func (df *DataFrame) NumRows() int { return df.rows }

// NumCols returns the number of columns.
func (df *DataFrame) NumCols() int { return len(df.names) }

// ColumnNames returns column names in their insertion order. The returned
// slice is a copy; mutating it does not affect df.
func (df *DataFrame) ColumnNames() []string {
	return append([]string(nil), df.names...)
}

// Column returns the named Series, or an error if no such column exists.
func (df *DataFrame) Column(name string) (*series.Series, error) {
	idx, ok := df.byName[name]
	if !ok {
		return nil, verrors.ColumnNotFound{Name: name}
	}
	return df.cols[idx], nil
}

// HasColumn reports whether name exists in the schema.
func (df *DataFrame) HasColumn(name string) bool {
	_, ok := df.byName[name]
	return ok
}

// Select returns a new DataFrame containing only the named columns, in the
// order requested.
func (df *DataFrame) Select(names ...string) (*DataFrame, error) {
	cols := make([]*series.Series, 0, len(names))
	for _, n := range names {
		c, err := df.Column(n)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return New(cols...)
}

// Drop returns a new DataFrame with the named columns removed.
func (df *DataFrame) Drop(names ...string) (*DataFrame, error) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		if !df.HasColumn(n) {
			return nil, verrors.ColumnNotFound{Name: n}
		}
		drop[n] = true
	}
	cols := make([]*series.Series, 0, len(df.cols))
	for _, n := range df.names {
		if !drop[n] {
			c, _ := df.Column(n)
			cols = append(cols, c)
		}
	}
	return New(cols...)
}

// Rename returns a new DataFrame where column from is renamed to.
func (df *DataFrame) Rename(from, to string) (*DataFrame, error) {
	return df.RenameAll(map[string]string{from: to})
}

// RenameAll returns a new DataFrame with every from->to pair in mapping
// applied simultaneously. Supplements the single-pair Rename with the
// bulk form veloxx's manipulation surface offers, useful for schema
// normalization passes that touch many columns at once.
func (df *DataFrame) RenameAll(mapping map[string]string) (*DataFrame, error) {
	cols := make([]*series.Series, 0, len(df.cols))
	for _, n := range df.names {
		c, _ := df.Column(n)
		if newName, ok := mapping[n]; ok {
			renamed, err := c.Rename(newName)
			if err != nil {
				return nil, err
			}
			c = renamed
		}
		cols = append(cols, c)
	}
	return New(cols...)
}

// WithColumn returns a new DataFrame with col added or, if a column with
// the same name already exists, replaced in place at its existing
// position.
func (df *DataFrame) WithColumn(col *series.Series) (*DataFrame, error) {
	if col.Name() == "" {
		return nil, verrors.EmptyColumnName{}
	}
	if col.Len() != df.rows && len(df.cols) > 0 {
		return nil, verrors.LengthMismatch{Name: col.Name(), Expected: df.rows, Actual: col.Len()}
	}
	cols := append([]*series.Series(nil), df.cols...)
	if idx, exists := df.byName[col.Name()]; exists {
		cols[idx] = col
		return New(reorder(cols, df.names)...)
	}
	cols = append(cols, col)
	return New(cols...)
}

func reorder(cols []*series.Series, names []string) []*series.Series {
	byName := make(map[string]*series.Series, len(cols))
	for _, c := range cols {
		byName[c.Name()] = c
	}
	out := make([]*series.Series, len(names))
	for i, n := range names {
		out[i] = byName[n]
	}
	return out
}

// Take returns a new DataFrame containing the rows at the given indices, in
// order, across every column. The building block the row-reordering and
// row-selecting operators (Sort, Filter, DropNulls, Head, Tail) use.
func (df *DataFrame) Take(indices []int) (*DataFrame, error) {
	cols := make([]*series.Series, len(df.cols))
	for i, c := range df.cols {
		cols[i] = c.Take(indices)
	}
	return New(cols...)
}

// Head returns a new DataFrame containing the first n rows (or all rows,
// if df has fewer than n).
func (df *DataFrame) Head(n int) (*DataFrame, error) {
	if n > df.rows {
		n = df.rows
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return df.Take(indices)
}

// Tail returns a new DataFrame containing the last n rows (or all rows, if
// df has fewer than n).
func (df *DataFrame) Tail(n int) (*DataFrame, error) {
	if n > df.rows {
		n = df.rows
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = df.rows - n + i
	}
	return df.Take(indices)
}

// Append returns a new DataFrame with other's rows concatenated after df's.
// Both DataFrames must have identical schemas: same column names, in the
// same order, with matching dtypes.
func (df *DataFrame) Append(other *DataFrame) (*DataFrame, error) {
	if len(df.names) != len(other.names) {
		return nil, verrors.SchemaMismatch{Message: fmt.Sprintf("column count mismatch: %d vs %d", len(df.names), len(other.names))}
	}
	cols := make([]*series.Series, len(df.cols))
	for i, name := range df.names {
		if other.names[i] != name {
			return nil, verrors.SchemaMismatch{Message: fmt.Sprintf("column %d: %q vs %q", i, name, other.names[i])}
		}
		if other.cols[i].DataType() != df.cols[i].DataType() {
			return nil, verrors.SchemaMismatch{Message: fmt.Sprintf("column %q: %v vs %v", name, df.cols[i].DataType(), other.cols[i].DataType())}
		}
		merged, err := df.cols[i].Append(other.cols[i])
		if err != nil {
			return nil, err
		}
		cols[i] = merged
	}
	return New(cols...)
}

// DropNulls returns a new DataFrame excluding any row where at least one
// of the given columns (or, if none given, any column) holds a null.
// Supplements the core column-oriented null handling (Series.FillNulls,
// Series.InterpolateNulls) with the row-oriented cleanup veloxx's
// dataframe/cleaning.rs offers.
func (df *DataFrame) DropNulls(columns ...string) (*DataFrame, error) {
	check := df.cols
	if len(columns) > 0 {
		check = make([]*series.Series, len(columns))
		for i, n := range columns {
			c, err := df.Column(n)
			if err != nil {
				return nil, err
			}
			check[i] = c
		}
	}
	var indices []int
	for row := 0; row < df.rows; row++ {
		keep := true
		for _, c := range check {
			if !c.IsValid(row) {
				keep = false
				break
			}
		}
		if keep {
			indices = append(indices, row)
		}
	}
	return df.Take(indices)
}

// formatHeadRows and formatTailRows bound how many rows Format renders
// from the start and end of a DataFrame before eliding the middle with a
// single "..." row, per §4.2.
const (
	formatHeadRows = 10
	formatTailRows = 5
	formatMaxWidth = 64
)

// capCell truncates s to formatMaxWidth bytes, replacing the tail with
// "..." when it's too long to render in full.
func capCell(s string) string {
	if len(s) <= formatMaxWidth {
		return s
	}
	return s[:formatMaxWidth-3] + "..."
}

// Format renders df as an aligned plain-text table: a header row of
// column names, a separator row, then one row per record — eliding all
// but the first formatHeadRows and last formatTailRows behind a single
// "..." row when df has more than formatHeadRows+formatTailRows+1 rows,
// and right-truncating any cell wider than formatMaxWidth — matching the
// presentation contract in §4.2.
func (df *DataFrame) Format() string {
	elide := df.rows > formatHeadRows+formatTailRows+1
	var rowsToShow []int
	if elide {
		for r := 0; r < formatHeadRows; r++ {
			rowsToShow = append(rowsToShow, r)
		}
		for r := df.rows - formatTailRows; r < df.rows; r++ {
			rowsToShow = append(rowsToShow, r)
		}
	} else {
		for r := 0; r < df.rows; r++ {
			rowsToShow = append(rowsToShow, r)
		}
	}

	widths := make([]int, len(df.names))
	header := make([]string, len(df.names))
	for i, n := range df.names {
		header[i] = capCell(n)
		widths[i] = len(header[i])
	}
	cells := make([][]string, len(rowsToShow))
	for i, r := range rowsToShow {
		cells[i] = make([]string, len(df.cols))
		for c, col := range df.cols {
			s := capCell(col.At(r).String())
			cells[i][c] = s
			if len(s) > widths[c] {
				widths[c] = len(s)
			}
		}
	}

	var b strings.Builder
	writeRow := func(vals []string) {
		for i, v := range vals {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(v)
			if pad := widths[i] - len(v); pad > 0 {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
		b.WriteString("\n")
	}
	writeSeparator := func() {
		for i, w := range widths {
			if i > 0 {
				b.WriteString("-+-")
			}
			b.WriteString(strings.Repeat("-", w))
		}
		b.WriteString("\n")
	}

	writeRow(header)
	writeSeparator()
	ellipsisAt := formatHeadRows
	for i, cell := range cells {
		if elide && i == ellipsisAt {
			ellipsis := make([]string, len(widths))
			for c := range ellipsis {
				ellipsis[c] = "..."
			}
			writeRow(ellipsis)
		}
		writeRow(cell)
	}
	return b.String()
}
