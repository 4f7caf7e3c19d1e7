package dataframe

import (
	"sort"

	"github.com/Conqxeror/veloxx/config"
	verrors "github.com/Conqxeror/veloxx/errors"
	"github.com/Conqxeror/veloxx/series"
)

// SortKey names one column to sort by and the direction to sort it in.
type SortKey struct {
	Column     string
	Descending bool
}

// Sort returns a new DataFrame with rows reordered by the given keys,
// applied in order (the first key is primary, subsequent keys break ties).
// Nulls sort after every non-null value in a column regardless of
// direction — both ascending and descending order put nulls last — per
// §4.2's determinism contract; with config.NullSortsLast set to false they
// sort before every non-null value instead, again in both directions. This
// is enforced uniformly here rather than left to Value.Less, so a
// Descending key can't accidentally flip the null placement along with
// everything else.
func (df *DataFrame) Sort(keys ...SortKey) (*DataFrame, error) {
	if len(keys) == 0 {
		return nil, verrors.EmptyArgument{Argument: "sort keys"}
	}
	cols := make([]*series.Series, len(keys))
	for i, k := range keys {
		c, err := df.Column(k.Column)
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}

	nullsLast := config.Get().NullSortsLast
	indices := make([]int, df.rows)
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		ra, rb := indices[a], indices[b]
		for i, k := range keys {
			col := cols[i]
			av, bv := col.IsValid(ra), col.IsValid(rb)
			if av != bv {
				return av == nullsLast // null placement is independent of direction
			}
			if !av {
				continue // both null on this key: move to next key
			}
			va, vb := col.At(ra), col.At(rb)
			if va.Equal(vb) {
				continue
			}
			if k.Descending {
				return vb.Less(va)
			}
			return va.Less(vb)
		}
		return false
	})
	return df.Take(indices)
}
