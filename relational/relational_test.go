package relational

import (
	"testing"

	"github.com/Conqxeror/veloxx/dataframe"
	"github.com/Conqxeror/veloxx/expr"
	"github.com/Conqxeror/veloxx/series"
	"github.com/Conqxeror/veloxx/value"
	"github.com/stretchr/testify/require"
)

func mustCol(t *testing.T, s *series.Series, err error) *series.Series {
	t.Helper()
	require.NoError(t, err)
	return s
}

func TestFilterKeepsOnlyTrueRows(t *testing.T) {
	__tmp1s, __tmp1e := series.NewI32("a", []int32{1, 2, 3, 4}, nil)
	require.NoError(t, __tmp1e)
	a := __tmp1s
	df, err := dataframe.New(a)
	require.NoError(t, err)

	out, err := Filter(df, expr.GreaterThan{Left: expr.Col{Name: "a"}, Right: expr.Lit{Value: value.NewI32(2)}})
	require.NoError(t, err)
	require.Equal(t, 2, out.NumRows())
}

func buildJoinFrames(t *testing.T) (*dataframe.DataFrame, *dataframe.DataFrame) {
	__tmp2s, __tmp2e := series.NewI32("id", []int32{1, 2, 3}, nil)
	require.NoError(t, __tmp2e)
	lid := __tmp2s
	__tmp3s, __tmp3e := series.NewString("name", []string{"a", "b", "c"}, nil)
	require.NoError(t, __tmp3e)
	lname := __tmp3s
	left, err := dataframe.New(lid, lname)
	require.NoError(t, err)

	__tmp4s, __tmp4e := series.NewI32("id", []int32{2, 3, 4}, nil)
	require.NoError(t, __tmp4e)
	rid := __tmp4s
	__tmp5s, __tmp5e := series.NewI32("val", []int32{20, 30, 40}, nil)
	require.NoError(t, __tmp5e)
	rval := __tmp5s
	right, err := dataframe.New(rid, rval)
	require.NoError(t, err)
	return left, right
}

func TestInnerJoinMatchesOnly(t *testing.T) {
	left, right := buildJoinFrames(t)
	out, err := Join(left, right, []string{"id"}, []string{"id"}, InnerJoin)
	require.NoError(t, err)
	require.Equal(t, 2, out.NumRows())
}

func TestLeftJoinKeepsAllLeftRows(t *testing.T) {
	left, right := buildJoinFrames(t)
	out, err := Join(left, right, []string{"id"}, []string{"id"}, LeftJoin)
	require.NoError(t, err)
	require.Equal(t, 3, out.NumRows())
	valCol, err := out.Column("val")
	require.NoError(t, err)
	require.True(t, valCol.At(0).IsNull())
}

func TestOuterJoinKeepsUnmatchedBothSides(t *testing.T) {
	left, right := buildJoinFrames(t)
	out, err := Join(left, right, []string{"id"}, []string{"id"}, OuterJoin)
	require.NoError(t, err)
	require.Equal(t, 4, out.NumRows())
}

func TestOuterJoinCoalescesKeyOnRightOnlyRows(t *testing.T) {
	left, right := buildJoinFrames(t)
	out, err := Join(left, right, []string{"id"}, []string{"id"}, OuterJoin)
	require.NoError(t, err)

	idCol, err := out.Column("id")
	require.NoError(t, err)
	var ids []int32
	for i := 0; i < out.NumRows(); i++ {
		v, ok := idCol.GetI32(i)
		require.True(t, ok, "key column must never be null in an outer join")
		ids = append(ids, v)
	}
	require.ElementsMatch(t, []int32{1, 2, 3, 4}, ids)
}

func TestJoinExcludesNullKeys(t *testing.T) {
	__tmp6s, __tmp6e := series.NewI32("id", []int32{1, 2, 0}, []bool{false, false, true})
	require.NoError(t, __tmp6e)
	lid := __tmp6s
	__tmp7s, __tmp7e := series.NewI32("a", []int32{10, 20, 30}, nil)
	require.NoError(t, __tmp7e)
	a := __tmp7s
	left, err := dataframe.New(lid, a)
	require.NoError(t, err)

	__tmp8s, __tmp8e := series.NewI32("id", []int32{1, 0}, []bool{false, true})
	require.NoError(t, __tmp8e)
	rid := __tmp8s
	__tmp9s, __tmp9e := series.NewI32("b", []int32{100, 200}, nil)
	require.NoError(t, __tmp9e)
	b := __tmp9s
	right, err := dataframe.New(rid, b)
	require.NoError(t, err)

	out, err := Join(left, right, []string{"id"}, []string{"id"}, InnerJoin)
	require.NoError(t, err)
	require.Equal(t, 1, out.NumRows()) // only id=1 matches; the two null keys must not

	outer, err := Join(left, right, []string{"id"}, []string{"id"}, OuterJoin)
	require.NoError(t, err)
	require.Equal(t, 4, outer.NumRows()) // 1 match + left's unmatched (id=2, null) + right's unmatched (null)
}

func TestGroupByAggSumFirstOccurrenceOrder(t *testing.T) {
	__tmp10s, __tmp10e := series.NewString("cat", []string{"b", "a", "b", "a"}, nil)
	require.NoError(t, __tmp10e)
	cat := __tmp10s
	__tmp11s, __tmp11e := series.NewF64("amt", []float64{1, 2, 3, 4}, nil)
	require.NoError(t, __tmp11e)
	amt := __tmp11s
	df, err := dataframe.New(cat, amt)
	require.NoError(t, err)

	grouped, err := GroupBy(df, "cat")
	require.NoError(t, err)
	out, err := grouped.Agg(Aggregation{Column: "amt", Func: AggSum, As: "total"})
	require.NoError(t, err)

	require.Equal(t, 2, out.NumRows())
	catCol, _ := out.Column("cat")
	first, _ := catCol.GetString(0)
	require.Equal(t, "b", first) // first-occurrence order, not alphabetical

	totalCol, _ := out.Column("total")
	require.Equal(t, value.NewF64(4), totalCol.At(0)) // b: 1+3
	require.Equal(t, value.NewF64(6), totalCol.At(1)) // a: 2+4
}

func TestGroupByCountDistinguishesAllRowsFromNonNull(t *testing.T) {
	__tmp12s, __tmp12e := series.NewString("cat", []string{"a", "a", "a"}, nil)
	require.NoError(t, __tmp12e)
	cat := __tmp12s
	__tmp13s, __tmp13e := series.NewF64("amt", []float64{1, 0, 3}, []bool{false, true, false})
	require.NoError(t, __tmp13e)
	amt := __tmp13s
	df, err := dataframe.New(cat, amt)
	require.NoError(t, err)

	grouped, err := GroupBy(df, "cat")
	require.NoError(t, err)
	out, err := grouped.Agg(
		Aggregation{Column: "amt", Func: AggCount, As: "all_rows"},
		Aggregation{Column: "amt", Func: AggCountNonNull, As: "non_null"},
	)
	require.NoError(t, err)

	allRows, _ := out.Column("all_rows")
	v0, _ := allRows.GetI32(0)
	require.Equal(t, int32(3), v0)

	nonNull, _ := out.Column("non_null")
	v1, _ := nonNull.GetI32(0)
	require.Equal(t, int32(2), v1)
}

func TestAggDefaultNamingWithCollisionResolution(t *testing.T) {
	__tmp14s, __tmp14e := series.NewString("cat", []string{"a", "a"}, nil)
	require.NoError(t, __tmp14e)
	cat := __tmp14s
	__tmp15s, __tmp15e := series.NewF64("amt", []float64{1, 3}, nil)
	require.NoError(t, __tmp15e)
	amt := __tmp15s
	df, err := dataframe.New(cat, amt)
	require.NoError(t, err)

	grouped, err := GroupBy(df, "cat")
	require.NoError(t, err)
	out, err := grouped.Agg(
		Aggregation{Column: "amt", Func: AggSum},
		Aggregation{Column: "amt", Func: AggMean},
	)
	require.NoError(t, err)
	require.True(t, out.HasColumn("amt_sum"))
	require.True(t, out.HasColumn("amt_mean"))

	// Two aggregations that would default to the same name resolve via
	// "_1", "_2", ...
	out2, err := grouped.Agg(
		Aggregation{Column: "amt", Func: AggSum},
		Aggregation{Column: "amt", Func: AggSum},
	)
	require.NoError(t, err)
	require.True(t, out2.HasColumn("amt_sum"))
	require.True(t, out2.HasColumn("amt_sum_1"))
}

func TestPivotSpreadsColumnsSortedAscending(t *testing.T) {
	__tmp16s, __tmp16e := series.NewString("region", []string{"east", "east", "west"}, nil)
	require.NoError(t, __tmp16e)
	idx := __tmp16s
	__tmp17s, __tmp17e := series.NewString("quarter", []string{"Q2", "Q1", "Q1"}, nil)
	require.NoError(t, __tmp17e)
	piv := __tmp17s
	__tmp18s, __tmp18e := series.NewF64("sales", []float64{10, 20, 30}, nil)
	require.NoError(t, __tmp18e)
	val := __tmp18s
	df, err := dataframe.New(idx, piv, val)
	require.NoError(t, err)

	out, err := Pivot(df, []string{"region"}, "quarter", "sales", AggSum)
	require.NoError(t, err)
	require.Equal(t, []string{"region", "Q1", "Q2"}, out.ColumnNames())
	require.Equal(t, 2, out.NumRows())
}

func TestPushDownFilterNarrowsColumns(t *testing.T) {
	__tmp19s, __tmp19e := series.NewI32("a", []int32{1, 2, 3}, nil)
	require.NoError(t, __tmp19e)
	a := __tmp19s
	__tmp20s, __tmp20e := series.NewI32("b", []int32{9, 9, 9}, nil)
	require.NoError(t, __tmp20e)
	b := __tmp20s
	__tmp21s, __tmp21e := series.NewI32("c", []int32{1, 1, 1}, nil)
	require.NoError(t, __tmp21e)
	c := __tmp21s
	df, err := dataframe.New(a, b, c)
	require.NoError(t, err)

	pred := expr.GreaterThan{Left: expr.Col{Name: "a"}, Right: expr.Lit{Value: value.NewI32(1)}}
	out, err := PushDownFilter(df, pred, "c")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a", "c"}, out.ColumnNames())
	require.Equal(t, 2, out.NumRows())
}
