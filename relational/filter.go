// Package relational implements the engine's L5 layer: the relational
// operators that combine L2 Series and L4 Expression/Predicate trees into
// whole-DataFrame transformations — Filter, Join, GroupBy.Agg, Pivot,
// Append, and Sort's predicate-aware sibling, predicate pushdown. The
// hash-bucket strategy behind Join and GroupBy is grounded on the
// teacher's bucketed partition index (go-sif's
// internal/pindex/bucketed/bucketed_partition_index.go): hash the key
// columns into a bucket, then fall back to an exact comparison within the
// bucket to rule out collisions.
package relational

import (
	"github.com/Conqxeror/veloxx/dataframe"
	"github.com/Conqxeror/veloxx/expr"
)

// Filter returns a new DataFrame containing only the rows where pred
// evaluates to true (unknown and false rows are both dropped, per §4.4's
// mask-to-filter rule).
func Filter(df *dataframe.DataFrame, pred expr.Predicate) (*dataframe.DataFrame, error) {
	mask, err := expr.Mask(pred, df)
	if err != nil {
		return nil, err
	}
	var indices []int
	for i := 0; i < mask.Len(); i++ {
		v, _ := mask.GetBool(i)
		if v {
			indices = append(indices, i)
		}
	}
	return df.Take(indices)
}
