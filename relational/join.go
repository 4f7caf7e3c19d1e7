package relational

import (
	"github.com/Conqxeror/veloxx/dataframe"
	verrors "github.com/Conqxeror/veloxx/errors"
	"github.com/Conqxeror/veloxx/series"
	"github.com/Conqxeror/veloxx/value"
)

// JoinType selects which unmatched rows a Join keeps.
type JoinType int

const (
	// InnerJoin keeps only rows with a match on both sides.
	InnerJoin JoinType = iota
	// LeftJoin keeps every left row, with nulls on the right where
	// unmatched.
	LeftJoin
	// RightJoin keeps every right row, with nulls on the left where
	// unmatched.
	RightJoin
	// OuterJoin keeps every row from both sides, with nulls filling
	// whichever side didn't match.
	OuterJoin
)

// Join combines left and right on equality of leftKeys[i] == rightKeys[i]
// for all i (a single key is the frozen contract; more than one is
// supported as an extension, per §9's open-question resolution). A null
// key never matches anything, on either side — not even another null key
// — per §4.5. Output column order is left's columns first, then right's
// columns; a right key column sharing its name with the paired left key
// is coalesced into one output column (taking the left value where the
// left side matched, the right value otherwise) rather than duplicated or
// nulled out; any other right column whose name collides with a left
// column is disambiguated by appending "_r" (repeated if that still
// collides). Row order is: for Inner/Left/Outer, left's row order with
// each left row's matches emitted contiguously in right-row order; Outer
// and Right additionally append right rows with no left match, in
// right's row order, at the end.
func Join(left, right *dataframe.DataFrame, leftKeys, rightKeys []string, joinType JoinType) (*dataframe.DataFrame, error) {
	if len(leftKeys) == 0 || len(rightKeys) == 0 {
		return nil, verrors.EmptyArgument{Argument: "join keys"}
	}
	if len(leftKeys) != len(rightKeys) {
		return nil, verrors.TypeMismatch{Message: "join key count mismatch"}
	}
	lkeys, err := columnsOf(left, leftKeys)
	if err != nil {
		return nil, err
	}
	rkeys, err := columnsOf(right, rightKeys)
	if err != nil {
		return nil, err
	}

	buckets := make(map[series.RowKey][]int, right.NumRows())
	for i := 0; i < right.NumRows(); i++ {
		if hasNullKey(rkeys, i) {
			continue
		}
		k := series.HashRow(rkeys, i)
		buckets[k] = append(buckets[k], i)
	}

	var leftIdx, rightIdx []int // rightIdx[i] == -1 means "no match, emit null"
	matchedRight := make([]bool, right.NumRows())

	for i := 0; i < left.NumRows(); i++ {
		matched := false
		if !hasNullKey(lkeys, i) {
			k := series.HashRow(lkeys, i)
			for _, j := range buckets[k] {
				if series.RowEqual(lkeys, i, rkeys, j) {
					leftIdx = append(leftIdx, i)
					rightIdx = append(rightIdx, j)
					matchedRight[j] = true
					matched = true
				}
			}
		}
		if !matched && joinType != InnerJoin && joinType != RightJoin {
			leftIdx = append(leftIdx, i)
			rightIdx = append(rightIdx, -1)
		}
	}

	if joinType == OuterJoin || joinType == RightJoin {
		for j := 0; j < right.NumRows(); j++ {
			if !matchedRight[j] {
				leftIdx = append(leftIdx, -1)
				rightIdx = append(rightIdx, j)
			}
		}
	}

	return materializeJoin(left, right, leftIdx, rightIdx, leftKeys, rightKeys)
}

// hasNullKey reports whether any key column is null at row — a null key
// never matches another key, including another null, so such rows are
// excluded from both the build (right) and probe (left) side of the hash
// join entirely.
func hasNullKey(keys []*series.Series, row int) bool {
	for _, k := range keys {
		if !k.IsValid(row) {
			return true
		}
	}
	return false
}

func columnsOf(df *dataframe.DataFrame, names []string) ([]*series.Series, error) {
	cols := make([]*series.Series, len(names))
	for i, n := range names {
		c, err := df.Column(n)
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}
	return cols, nil
}

func materializeJoin(left, right *dataframe.DataFrame, leftIdx, rightIdx []int, leftKeys, rightKeys []string) (*dataframe.DataFrame, error) {
	mergedKey := make(map[string]bool, len(leftKeys))
	for i := range leftKeys {
		if leftKeys[i] == rightKeys[i] {
			mergedKey[leftKeys[i]] = true
		}
	}

	var cols []*series.Series
	for _, name := range left.ColumnNames() {
		c, _ := left.Column(name)
		if mergedKey[name] {
			rc, err := right.Column(name)
			if err != nil {
				return nil, err
			}
			out, err := coalesceKeyColumn(name, c, rc, leftIdx, rightIdx)
			if err != nil {
				return nil, err
			}
			cols = append(cols, out)
			continue
		}
		cols = append(cols, c.TakeWithNulls(leftIdx))
	}
	for _, name := range right.ColumnNames() {
		if mergedKey[name] {
			continue // already emitted, coalesced, in the left pass above
		}
		c, _ := right.Column(name)
		out := c.TakeWithNulls(rightIdx)
		if left.HasColumn(name) {
			renamed, err := out.Rename(disambiguate(name, left))
			if err != nil {
				return nil, err
			}
			out = renamed
		}
		cols = append(cols, out)
	}
	return dataframe.New(cols...)
}

// coalesceKeyColumn builds the single output column for a key shared by
// name between both sides: the left key's value where the left side
// participated in this output row (leftIdx[i] >= 0), otherwise the right
// key's value. At most one of leftIdx[i]/rightIdx[i] is -1 for any given
// output row, since every row comes from at least one real source row.
func coalesceKeyColumn(name string, leftCol, rightCol *series.Series, leftIdx, rightIdx []int) (*series.Series, error) {
	vals := make([]value.Value, len(leftIdx))
	for i := range leftIdx {
		if leftIdx[i] >= 0 {
			vals[i] = leftCol.At(leftIdx[i])
		} else {
			vals[i] = rightCol.At(rightIdx[i])
		}
	}
	return seriesFromValues(name, vals)
}

// disambiguate appends "_r" to name until it no longer collides with any
// column of left, so repeated collisions resolve idempotently to
// name_r, name_r_r, and so on rather than a counter that depends on join
// order.
func disambiguate(name string, left *dataframe.DataFrame) string {
	candidate := name
	for left.HasColumn(candidate) {
		candidate += "_r"
	}
	return candidate
}
