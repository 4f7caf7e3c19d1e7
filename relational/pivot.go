package relational

import (
	"sort"

	"github.com/Conqxeror/veloxx/dataframe"
	verrors "github.com/Conqxeror/veloxx/errors"
	"github.com/Conqxeror/veloxx/series"
	"github.com/Conqxeror/veloxx/value"
)

// Pivot reshapes df from long to wide form: group by indexCols plus
// pivotCol, aggregate valueCol within each group with fn, then spread the
// distinct pivotCol values into their own output columns. Row order in
// the result follows first appearance of each indexCols tuple (mirroring
// GroupBy's own ordering contract); output pivot-value columns are sorted
// ascending by their String() form for determinism, the same fallback
// veloxx's pivot.rs uses when it sorts unique_headers before emitting
// them.
func Pivot(df *dataframe.DataFrame, indexCols []string, pivotCol, valueCol string, fn AggFunc) (*dataframe.DataFrame, error) {
	if len(indexCols) == 0 {
		return nil, verrors.EmptyArgument{Argument: "pivot index columns"}
	}
	allKeys := append(append([]string(nil), indexCols...), pivotCol)
	grouped, err := GroupBy(df, allKeys...)
	if err != nil {
		return nil, err
	}

	pivotValues, err := df.Column(pivotCol)
	if err != nil {
		return nil, err
	}
	valCol, err := df.Column(valueCol)
	if err != nil {
		return nil, err
	}

	type indexKey string
	indexOrder := make([]indexKey, 0)
	indexSeen := make(map[indexKey]bool)
	indexRepRow := make(map[indexKey]int)
	headerSeen := make(map[string]bool)
	cellByIndexHeader := make(map[indexKey]map[string]value.Value)

	for _, grp := range grouped.groups {
		rep := grp.keyRow
		var idxParts []string
		for _, col := range indexCols {
			c, _ := df.Column(col)
			idxParts = append(idxParts, c.At(rep).String())
		}
		ik := indexKey(joinParts(idxParts))
		if !indexSeen[ik] {
			indexSeen[ik] = true
			indexOrder = append(indexOrder, ik)
			indexRepRow[ik] = rep
			cellByIndexHeader[ik] = make(map[string]value.Value)
		}
		header := pivotValues.At(rep).String()
		headerSeen[header] = true

		sub := valCol.Take(grp.rows)
		v, err := reduceOne(sub, fn)
		if err != nil {
			return nil, err
		}
		cellByIndexHeader[ik][header] = v
	}

	headers := make([]string, 0, len(headerSeen))
	for h := range headerSeen {
		headers = append(headers, h)
	}
	sort.Strings(headers)

	outCols := make([]*series.Series, 0, len(indexCols)+len(headers))
	for _, col := range indexCols {
		c, _ := df.Column(col)
		reps := make([]int, len(indexOrder))
		for i, ik := range indexOrder {
			reps[i] = indexRepRow[ik]
		}
		outCols = append(outCols, c.Take(reps))
	}
	for _, h := range headers {
		vals := make([]value.Value, len(indexOrder))
		for i, ik := range indexOrder {
			if v, ok := cellByIndexHeader[ik][h]; ok {
				vals[i] = v
			} else {
				vals[i] = value.Null
			}
		}
		s, err := seriesFromValues(h, vals)
		if err != nil {
			return nil, err
		}
		outCols = append(outCols, s)
	}
	return dataframe.New(outCols...)
}

func joinParts(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "\x1f"
		}
		out += p
	}
	return out
}
