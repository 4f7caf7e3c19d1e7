package relational

import (
	"fmt"
	"sort"

	"github.com/Conqxeror/veloxx/config"
	"github.com/Conqxeror/veloxx/dataframe"
	verrors "github.com/Conqxeror/veloxx/errors"
	"github.com/Conqxeror/veloxx/series"
	"github.com/Conqxeror/veloxx/value"
)

func sortRowKeys(keys []series.RowKey) {
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
}

// AggFunc names a reduction Agg applies to one column within each group.
type AggFunc int

const (
	// AggSum sums the column within each group.
	AggSum AggFunc = iota
	// AggMean averages the column within each group.
	AggMean
	// AggMin takes the minimum within each group.
	AggMin
	// AggMax takes the maximum within each group.
	AggMax
	// AggCount counts every row in the group, including nulls.
	AggCount
	// AggCountNonNull counts only the group's non-null values in Column.
	AggCountNonNull
	// AggMedian takes the lower median within each group.
	AggMedian
	// AggStdDev takes the sample standard deviation within each group.
	AggStdDev
)

// String names of aggregation functions, used to build the default
// "{source}_{function}" output column name when Aggregation.As is empty.
var aggFuncNames = map[AggFunc]string{
	AggSum:          "sum",
	AggMean:         "mean",
	AggMin:          "min",
	AggMax:          "max",
	AggCount:        "count",
	AggCountNonNull: "count_non_null",
	AggMedian:       "median",
	AggStdDev:       "std_dev",
}

// Aggregation names one output column: apply Func to column Column,
// naming the result As. If As is empty, the output column defaults to
// "{Column}_{function}" (e.g. "age_mean"), with "_1", "_2", ... appended
// to resolve a collision against another aggregation's default name.
type Aggregation struct {
	Column string
	Func   AggFunc
	As     string
}

// GroupedDataFrame is the intermediate result of GroupBy: a DataFrame
// partitioned into groups by the distinct values of its key columns,
// ready for Agg. Groups are recorded in first-occurrence order of their
// key tuple — a deliberate departure from building them in a sorted map
// (as veloxx's GroupedDataFrame does via a BTreeMap), chosen so repeated
// runs over the same input always produce the same group order (§4.5,
// §8).
type GroupedDataFrame struct {
	df      *dataframe.DataFrame
	keys    []string
	groups  []groupEntry
}

type groupEntry struct {
	keyRow int // representative row index for this group's key values
	rows   []int
}

// GroupBy partitions df into groups sharing identical values across keys,
// via the same hash-bucket-then-compare strategy Join uses. Group order
// follows first occurrence of each distinct key by default; set
// config.StableGroupBy to false to instead order groups by ascending hash,
// which a chunked parallel grouper merging per-chunk bucket maps would
// produce more cheaply than preserving input order globally.
func GroupBy(df *dataframe.DataFrame, keys ...string) (*GroupedDataFrame, error) {
	if len(keys) == 0 {
		return nil, verrors.EmptyArgument{Argument: "group-by keys"}
	}
	keyCols, err := columnsOf(df, keys)
	if err != nil {
		return nil, err
	}

	type bucketed struct {
		hash series.RowKey
		row  int
	}
	n := df.NumRows()
	rows := make([]bucketed, n)
	for i := 0; i < n; i++ {
		rows[i] = bucketed{hash: series.HashRow(keyCols, i), row: i}
	}

	bucketIndex := make(map[series.RowKey][]int)
	order := make([]series.RowKey, 0)
	for _, r := range rows {
		if _, ok := bucketIndex[r.hash]; !ok {
			order = append(order, r.hash)
		}
		bucketIndex[r.hash] = append(bucketIndex[r.hash], r.row)
	}

	if !config.Get().StableGroupBy {
		// Group order by ascending hash instead of first occurrence. This
		// is not useful for single-threaded grouping (it's strictly less
		// informative than input order) but matches what a chunked
		// parallel grouper would produce if it merged per-chunk bucket
		// maps by hash key instead of paying for a global order-preserving
		// merge; exposed so callers that explicitly opt out of
		// determinism can exercise the same row order a future parallel
		// implementation would give them.
		sortRowKeys(order)
	}

	var groups []groupEntry
	for _, h := range order {
		bucket := bucketIndex[h]
		// Within a hash bucket, rows may still differ (hash collision) or
		// the bucket may mix multiple distinct key tuples that happened to
		// land on the same hash; split by exact equality, preserving each
		// sub-group's first-occurrence position within the bucket.
		var local []groupEntry
		for _, row := range bucket {
			placed := false
			for gi := range local {
				if series.RowEqual(keyCols, local[gi].keyRow, keyCols, row) {
					local[gi].rows = append(local[gi].rows, row)
					placed = true
					break
				}
			}
			if !placed {
				local = append(local, groupEntry{keyRow: row, rows: []int{row}})
			}
		}
		groups = append(groups, local...)
	}

	return &GroupedDataFrame{df: df, keys: keys, groups: groups}, nil
}

// NumGroups returns the number of distinct groups.
func (g *GroupedDataFrame) NumGroups() int { return len(g.groups) }

// Agg reduces each group to one row: the group's key values followed by
// one output column per requested Aggregation, and returns the resulting
// DataFrame with one row per group in first-occurrence order.
func (g *GroupedDataFrame) Agg(aggs ...Aggregation) (*dataframe.DataFrame, error) {
	keyCols, err := columnsOf(g.df, g.keys)
	if err != nil {
		return nil, err
	}
	keyRepIdx := make([]int, len(g.groups))
	for i, grp := range g.groups {
		keyRepIdx[i] = grp.keyRow
	}

	outCols := make([]*series.Series, 0, len(g.keys)+len(aggs))
	for i := range g.keys {
		outCols = append(outCols, keyCols[i].Take(keyRepIdx))
	}

	used := make(map[string]bool, len(g.keys)+len(aggs))
	for _, k := range g.keys {
		used[k] = true
	}
	for _, agg := range aggs {
		col, err := g.df.Column(agg.Column)
		if err != nil {
			return nil, err
		}
		out, err := aggregateGroups(col, g.groups, agg.Func)
		if err != nil {
			return nil, err
		}
		name := agg.As
		if name == "" {
			name = defaultAggName(agg, used)
		}
		used[name] = true
		renamed, err := out.Rename(name)
		if err != nil {
			return nil, err
		}
		outCols = append(outCols, renamed)
	}
	return dataframe.New(outCols...)
}

// defaultAggName builds the "{source}_{function}" default output name for
// agg, appending "_1", "_2", ... if that name (or a prior suffix attempt)
// is already taken by a key column or an earlier aggregation's output.
func defaultAggName(agg Aggregation, used map[string]bool) string {
	base := agg.Column + "_" + aggFuncNames[agg.Func]
	if !used[base] {
		return base
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s_%d", base, n)
		if !used[candidate] {
			return candidate
		}
	}
}

func aggregateGroups(col *series.Series, groups []groupEntry, fn AggFunc) (*series.Series, error) {
	results := make([]value.Value, len(groups))
	for i, grp := range groups {
		if fn == AggCount {
			results[i] = value.NewI32(int32(len(grp.rows)))
			continue
		}
		sub := col.Take(grp.rows)
		v, err := reduceOne(sub, fn)
		if err != nil {
			return nil, err
		}
		results[i] = v
	}
	return seriesFromValues(col.Name(), results)
}

func reduceOne(s *series.Series, fn AggFunc) (value.Value, error) {
	switch fn {
	case AggSum:
		return s.Sum()
	case AggMean:
		return s.Mean()
	case AggMin:
		return s.Min()
	case AggMax:
		return s.Max()
	case AggMedian:
		return s.Median()
	case AggStdDev:
		return s.StdDev()
	case AggCountNonNull:
		return value.NewI32(int32(s.Count())), nil
	}
	return value.Null, verrors.TypeMismatch{Message: "unknown aggregation function"}
}

// seriesFromValues builds a Series from a heterogeneity-checked slice of
// value.Value, inferring a common dtype (every non-null element must
// share one). Used to materialize aggregation output columns, where each
// group contributes exactly one already-typed Value.
func seriesFromValues(name string, vals []value.Value) (*series.Series, error) {
	var dt value.DataType
	found := false
	for _, v := range vals {
		if !v.IsNull() {
			dt = v.DataType()
			found = true
			break
		}
	}
	if !found {
		return series.NewF64(name, make([]float64, len(vals)), allTrue(len(vals)))
	}
	mask := make([]bool, len(vals))
	for i, v := range vals {
		mask[i] = v.IsNull()
	}
	switch dt {
	case value.I32:
		out := make([]int32, len(vals))
		for i, v := range vals {
			if !v.IsNull() {
				out[i], _ = v.AsI32()
			}
		}
		return series.NewI32(name, out, mask)
	case value.F64:
		out := make([]float64, len(vals))
		for i, v := range vals {
			if !v.IsNull() {
				out[i], _ = v.AsF64()
			}
		}
		return series.NewF64(name, out, mask)
	case value.Bool:
		out := make([]bool, len(vals))
		for i, v := range vals {
			if !v.IsNull() {
				out[i], _ = v.AsBool()
			}
		}
		return series.NewBool(name, out, mask)
	case value.String:
		out := make([]string, len(vals))
		for i, v := range vals {
			if !v.IsNull() {
				out[i], _ = v.AsString()
			}
		}
		return series.NewString(name, out, mask)
	case value.DateTime:
		out := make([]int64, len(vals))
		for i, v := range vals {
			if !v.IsNull() {
				out[i], _ = v.AsDateTime()
			}
		}
		return series.NewDateTime(name, out, mask)
	}
	return nil, verrors.TypeMismatch{Message: "unsupported aggregation result dtype"}
}

func allTrue(n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = true
	}
	return out
}
