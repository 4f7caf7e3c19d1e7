// Package veloxx ties together value, series, dataframe, expr, and
// relational through the end-to-end scenarios that exercise the whole
// stack at once, the way go-sif's own integration tests run full task
// chains rather than individual operators in isolation.
package veloxx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Conqxeror/veloxx/dataframe"
	"github.com/Conqxeror/veloxx/expr"
	"github.com/Conqxeror/veloxx/relational"
	"github.com/Conqxeror/veloxx/series"
	"github.com/Conqxeror/veloxx/value"
)

func mustS(t *testing.T, s *series.Series, err error) *series.Series {
	t.Helper()
	require.NoError(t, err)
	return s
}

func TestScenarioS1FilterAndSort(t *testing.T) {
	__tmp1s, __tmp1e := series.NewString("name", []string{"Alice", "Bob", "Charlie", "David"}, nil)
	require.NoError(t, __tmp1e)
	name := __tmp1s
	__tmp2s, __tmp2e := series.NewI32("age", []int32{25, 30, 22, 35}, nil)
	require.NoError(t, __tmp2e)
	age := __tmp2s
	__tmp3s, __tmp3e := series.NewString("city", []string{"NY", "LON", "NY", "PAR"}, nil)
	require.NoError(t, __tmp3e)
	city := __tmp3s
	df, err := dataframe.New(name, age, city)
	require.NoError(t, err)

	emptyPred := expr.And{
		Left:  expr.GreaterThan{Left: expr.Col{Name: "age"}, Right: expr.Lit{Value: value.NewI32(25)}},
		Right: expr.Equals{Left: expr.Col{Name: "city"}, Right: expr.Lit{Value: value.NewString("NY")}},
	}
	empty, err := relational.Filter(df, emptyPred)
	require.NoError(t, err)
	require.Equal(t, 0, empty.NumRows())

	over25, err := relational.Filter(df, expr.GreaterThan{Left: expr.Col{Name: "age"}, Right: expr.Lit{Value: value.NewI32(25)}})
	require.NoError(t, err)
	sorted, err := over25.Sort(dataframe.SortKey{Column: "age"})
	require.NoError(t, err)

	require.Equal(t, 2, sorted.NumRows())
	nameCol, _ := sorted.Column("name")
	n0, _ := nameCol.GetString(0)
	n1, _ := nameCol.GetString(1)
	require.Equal(t, "Bob", n0)
	require.Equal(t, "David", n1)
}

func TestScenarioS2GroupByAggregate(t *testing.T) {
	__tmp4s, __tmp4e := series.NewString("city", []string{"NY", "LON", "NY", "PAR"}, nil)
	require.NoError(t, __tmp4e)
	city := __tmp4s
	__tmp5s, __tmp5e := series.NewF64("age", []float64{25, 30, 22, 35}, nil)
	require.NoError(t, __tmp5e)
	age := __tmp5s
	df, err := dataframe.New(city, age)
	require.NoError(t, err)

	grouped, err := relational.GroupBy(df, "city")
	require.NoError(t, err)
	out, err := grouped.Agg(
		relational.Aggregation{Column: "age", Func: relational.AggMean, As: "mean_age"},
		relational.Aggregation{Column: "age", Func: relational.AggCount, As: "n"},
	)
	require.NoError(t, err)

	require.Equal(t, 3, out.NumRows())
	cityCol, _ := out.Column("city")
	meanCol, _ := out.Column("mean_age")
	countCol, _ := out.Column("n")

	c0, _ := cityCol.GetString(0)
	require.Equal(t, "NY", c0)
	m0, _ := meanCol.GetF64(0)
	require.InDelta(t, 23.5, m0, 0.0001)
	n0, _ := countCol.GetI32(0)
	require.Equal(t, int32(2), n0)

	c1, _ := cityCol.GetString(1)
	require.Equal(t, "LON", c1)
	c2, _ := cityCol.GetString(2)
	require.Equal(t, "PAR", c2)
}

func TestScenarioS3OuterJoin(t *testing.T) {
	__tmp6s, __tmp6e := series.NewI32("id", []int32{1, 2, 3}, nil)
	require.NoError(t, __tmp6e)
	leftID := __tmp6s
	__tmp7s, __tmp7e := series.NewI32("a", []int32{10, 20, 30}, nil)
	require.NoError(t, __tmp7e)
	a := __tmp7s
	left, err := dataframe.New(leftID, a)
	require.NoError(t, err)

	__tmp8s, __tmp8e := series.NewI32("id", []int32{2, 3, 4}, nil)
	require.NoError(t, __tmp8e)
	rightID := __tmp8s
	__tmp9s, __tmp9e := series.NewI32("b", []int32{200, 300, 400}, nil)
	require.NoError(t, __tmp9e)
	b := __tmp9s
	right, err := dataframe.New(rightID, b)
	require.NoError(t, err)

	out, err := relational.Join(left, right, []string{"id"}, []string{"id"}, relational.OuterJoin)
	require.NoError(t, err)
	require.Equal(t, 4, out.NumRows())
}

func TestScenarioS4Pivot(t *testing.T) {
	__tmp10s, __tmp10e := series.NewString("region", []string{"N", "N", "S", "S"}, nil)
	require.NoError(t, __tmp10e)
	region := __tmp10s
	__tmp11s, __tmp11e := series.NewString("q", []string{"Q1", "Q2", "Q1", "Q2"}, nil)
	require.NoError(t, __tmp11e)
	q := __tmp11s
	__tmp12s, __tmp12e := series.NewF64("sales", []float64{10, 20, 30, 40}, nil)
	require.NoError(t, __tmp12e)
	sales := __tmp12s
	df, err := dataframe.New(region, q, sales)
	require.NoError(t, err)

	out, err := relational.Pivot(df, []string{"region"}, "q", "sales", relational.AggSum)
	require.NoError(t, err)
	require.Equal(t, []string{"region", "Q1", "Q2"}, out.ColumnNames())

	regionCol, _ := out.Column("region")
	q1Col, _ := out.Column("Q1")
	q2Col, _ := out.Column("Q2")
	r0, _ := regionCol.GetString(0)
	require.Equal(t, "N", r0)
	v1, _ := q1Col.GetF64(0)
	require.Equal(t, float64(10), v1)
	v2, _ := q2Col.GetF64(0)
	require.Equal(t, float64(20), v2)
}

func TestScenarioS5NullArithmetic(t *testing.T) {
	__tmp13s, __tmp13e := series.NewF64("a", []float64{1, 2, 0, 4}, []bool{false, false, true, false})
	require.NoError(t, __tmp13e)
	a := __tmp13s
	__tmp14s, __tmp14e := series.NewF64("b", []float64{10, 0, 30, 0}, []bool{false, true, false, false})
	require.NoError(t, __tmp14e)
	b := __tmp14s
	df, err := dataframe.New(a, b)
	require.NoError(t, err)

	out, err := expr.Divide{Left: expr.Col{Name: "a"}, Right: expr.Col{Name: "b"}}.Evaluate(df)
	require.NoError(t, err)

	v0, _ := out.GetF64(0)
	require.Equal(t, 0.1, v0)
	require.True(t, out.At(1).IsNull())
	require.True(t, out.At(2).IsNull())
	require.True(t, out.At(3).IsNull())
}

func TestScenarioS6Interpolate(t *testing.T) {
	__tmp15s, __tmp15e := series.NewF64("x", []float64{0, 1, 0, 3, 0, 0, 6, 0},
		[]bool{true, false, true, false, true, true, false, true})
	require.NoError(t, __tmp15e)
	x := __tmp15s
	out, err := x.InterpolateNulls()
	require.NoError(t, err)

	require.True(t, out.At(0).IsNull())
	for i, want := range []float64{0, 1, 2, 3, 4, 5, 6, 0} {
		if i == 0 || i == 7 {
			continue
		}
		v, ok := out.GetF64(i)
		require.True(t, ok)
		require.InDelta(t, want, v, 0.0001)
	}
	require.True(t, out.At(7).IsNull())
}
