package dataframe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/Conqxeror/veloxx/series"
)

func buildTestFrame(t *testing.T) *DataFrame {
	a, err := series.NewI32("id", []int32{1, 2, 3}, nil)
	require.NoError(t, err)
	b, err := series.NewString("name", []string{"x", "y", "z"}, nil)
	require.NoError(t, err)
	df, err := New(a, b)
	require.NoError(t, err)
	return df
}

func TestNewRejectsLengthMismatch(t *testing.T) {
	a, _ := series.NewI32("a", []int32{1, 2}, nil)
	b, _ := series.NewI32("b", []int32{1, 2, 3}, nil)
	_, err := New(a, b)
	require.Error(t, err)
}

func TestNewRejectsDuplicateColumn(t *testing.T) {
	a, _ := series.NewI32("a", []int32{1}, nil)
	b, _ := series.NewI32("a", []int32{2}, nil)
	_, err := New(a, b)
	require.Error(t, err)
}

func TestColumnNamesPreservesInsertionOrder(t *testing.T) {
	df := buildTestFrame(t)
	require.Equal(t, []string{"id", "name"}, df.ColumnNames())
}

func TestSelectAndDrop(t *testing.T) {
	df := buildTestFrame(t)
	sel, err := df.Select("name")
	require.NoError(t, err)
	require.Equal(t, []string{"name"}, sel.ColumnNames())

	dropped, err := df.Drop("name")
	require.NoError(t, err)
	require.Equal(t, []string{"id"}, dropped.ColumnNames())
}

func TestWithColumnReplacesInPlace(t *testing.T) {
	df := buildTestFrame(t)
	replacement, _ := series.NewI32("id", []int32{9, 9, 9}, nil)
	out, err := df.WithColumn(replacement)
	require.NoError(t, err)
	require.Equal(t, []string{"id", "name"}, out.ColumnNames())
	col, _ := out.Column("id")
	v, _ := col.GetI32(0)
	require.Equal(t, int32(9), v)
}

func TestHeadAndTail(t *testing.T) {
	df := buildTestFrame(t)
	head, err := df.Head(2)
	require.NoError(t, err)
	require.Equal(t, 2, head.NumRows())

	tail, err := df.Tail(2)
	require.NoError(t, err)
	require.Equal(t, 2, tail.NumRows())
	col, _ := tail.Column("id")
	v, _ := col.GetI32(0)
	require.Equal(t, int32(2), v)
}

func TestAppendRequiresIdenticalSchema(t *testing.T) {
	df := buildTestFrame(t)
	other, _ := New(mustSeries(t, "id", []int32{4}), mustSeries(t, "other", []string{"w"}))
	_, err := df.Append(other)
	require.Error(t, err)
}

func TestSortNullsLastBothDirections(t *testing.T) {
	col, _ := series.NewI32("v", []int32{3, 0, 1}, []bool{false, true, false})
	df, _ := New(col)

	asc, err := df.Sort(SortKey{Column: "v"})
	require.NoError(t, err)
	c, _ := asc.Column("v")
	require.True(t, c.At(2).IsNull())

	desc, err := df.Sort(SortKey{Column: "v", Descending: true})
	require.NoError(t, err)
	c2, _ := desc.Column("v")
	require.True(t, c2.At(2).IsNull())
	v0, _ := c2.GetI32(0)
	require.Equal(t, int32(3), v0)
}

func TestDropNullsExcludesRowsWithNull(t *testing.T) {
	a, _ := series.NewI32("a", []int32{1, 0, 3}, []bool{false, true, false})
	df, _ := New(a)
	out, err := df.DropNulls()
	require.NoError(t, err)
	require.Equal(t, 2, out.NumRows())
}

func TestFormatWritesSeparatorRowAfterHeader(t *testing.T) {
	df := buildTestFrame(t)
	lines := strings.Split(strings.TrimRight(df.Format(), "\n"), "\n")
	require.Len(t, lines, 4) // header + separator + 3 rows
	require.Regexp(t, `^[-+ ]+$`, lines[1])
}

func TestFormatElidesMiddleRowsPastSixteen(t *testing.T) {
	ids := make([]int32, 20)
	for i := range ids {
		ids[i] = int32(i)
	}
	a, err := series.NewI32("id", ids, nil)
	require.NoError(t, err)
	df, err := New(a)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(df.Format(), "\n"), "\n")
	// header + separator + 10 head rows + 1 ellipsis row + 5 tail rows
	require.Len(t, lines, 18)
	require.Equal(t, "...", strings.TrimSpace(lines[12]))
	require.Equal(t, "0", strings.TrimSpace(lines[2]))
	require.Equal(t, "19", strings.TrimSpace(lines[17]))
}

func TestFormatCapsWideCellsWithEllipsis(t *testing.T) {
	long := strings.Repeat("x", 100)
	s, err := series.NewString("name", []string{long}, nil)
	require.NoError(t, err)
	df, err := New(s)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(df.Format(), "\n"), "\n")
	require.LessOrEqual(t, len(lines[2]), formatMaxWidth)
	require.True(t, strings.HasSuffix(lines[2], "..."))
}

func mustSeries(t *testing.T, name string, v interface{}) *series.Series {
	t.Helper()
	switch vv := v.(type) {
	case []int32:
		s, err := series.NewI32(name, vv, nil)
		require.NoError(t, err)
		return s
	case []string:
		s, err := series.NewString(name, vv, nil)
		require.NoError(t, err)
		return s
	}
	t.Fatalf("unsupported type in mustSeries")
	return nil
}
