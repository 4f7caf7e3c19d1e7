package relational

import (
	"github.com/Conqxeror/veloxx/dataframe"
	"github.com/Conqxeror/veloxx/expr"
)

// ReferencedColumns walks a Predicate tree and returns the set of column
// names it reads, in first-encounter order. Supplements Filter with the
// predicate-pushdown groundwork §4.5 calls for: a caller building a
// multi-stage pipeline can Select down to ReferencedColumns(pred) plus
// whatever it needs downstream before calling Filter, so the filter runs
// over a narrower column set instead of carrying untouched columns through
// the predicate evaluation.
func ReferencedColumns(pred expr.Predicate) []string {
	seen := make(map[string]bool)
	var order []string
	visitPredicate(pred, func(name string) {
		if !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
	})
	return order
}

func visitPredicate(p expr.Predicate, visit func(string)) {
	switch n := p.(type) {
	case expr.Equals:
		visitExpr(n.Left, visit)
		visitExpr(n.Right, visit)
	case expr.NotEquals:
		visitExpr(n.Left, visit)
		visitExpr(n.Right, visit)
	case expr.GreaterThan:
		visitExpr(n.Left, visit)
		visitExpr(n.Right, visit)
	case expr.LessThan:
		visitExpr(n.Left, visit)
		visitExpr(n.Right, visit)
	case expr.GreaterThanOrEqual:
		visitExpr(n.Left, visit)
		visitExpr(n.Right, visit)
	case expr.LessThanOrEqual:
		visitExpr(n.Left, visit)
		visitExpr(n.Right, visit)
	case expr.IsNull:
		visitExpr(n.Operand, visit)
	case expr.And:
		visitPredicate(n.Left, visit)
		visitPredicate(n.Right, visit)
	case expr.Or:
		visitPredicate(n.Left, visit)
		visitPredicate(n.Right, visit)
	case expr.Not:
		visitPredicate(n.Operand, visit)
	}
}

func visitExpr(e expr.Expr, visit func(string)) {
	switch n := e.(type) {
	case expr.Col:
		visit(n.Name)
	case expr.Add:
		visitExpr(n.Left, visit)
		visitExpr(n.Right, visit)
	case expr.Subtract:
		visitExpr(n.Left, visit)
		visitExpr(n.Right, visit)
	case expr.Multiply:
		visitExpr(n.Left, visit)
		visitExpr(n.Right, visit)
	case expr.Divide:
		visitExpr(n.Left, visit)
		visitExpr(n.Right, visit)
	}
}

// PushDownFilter narrows df to ReferencedColumns(pred) plus keep (any
// columns the caller still needs downstream) before applying Filter, so
// the predicate evaluation and the row gather it drives never touch
// columns outside that set.
func PushDownFilter(df *dataframe.DataFrame, pred expr.Predicate, keep ...string) (*dataframe.DataFrame, error) {
	wanted := append(ReferencedColumns(pred), keep...)
	seen := make(map[string]bool)
	var names []string
	for _, n := range wanted {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	narrowed, err := df.Select(names...)
	if err != nil {
		return nil, err
	}
	return Filter(narrowed, pred)
}
