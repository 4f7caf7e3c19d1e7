package expr

import (
	verrors "github.com/Conqxeror/veloxx/errors"
	"github.com/Conqxeror/veloxx/series"
	"github.com/Conqxeror/veloxx/value"
)

// Predicate is a node in a boolean expression tree. Evaluate materializes
// it into a Bool Series, where null represents "unknown" under Kleene
// three-valued logic (§4.4): a comparison against a null operand is
// unknown, not false, and And/Or propagate unknown the way SQL's NULL
// does rather than collapsing it to a Go zero value.
type Predicate interface {
	Evaluate(cols ColumnLookup) (*series.Series, error)
}

type comparison struct {
	Left, Right Expr
	cmp         func(value.Value, value.Value) (bool, bool) // (result, known)
}

func (c comparison) Evaluate(cols ColumnLookup) (*series.Series, error) {
	l, err := c.Left.Evaluate(cols)
	if err != nil {
		return nil, err
	}
	r, err := c.Right.Evaluate(cols)
	if err != nil {
		return nil, err
	}
	if l.Len() != r.Len() {
		return nil, verrors.LengthMismatch{Name: "predicate operand", Expected: l.Len(), Actual: r.Len()}
	}
	if l.DataType() != r.DataType() {
		return nil, verrors.TypeMismatch{Message: "comparison operands must share a dtype"}
	}
	n := l.Len()
	vals := make([]bool, n)
	mask := make([]bool, n)
	for i := 0; i < n; i++ {
		lv, rv := l.At(i), r.At(i)
		res, known := c.cmp(lv, rv)
		if !known {
			mask[i] = true
			continue
		}
		vals[i] = res
	}
	return series.NewBool("__pred", vals, mask)
}

func bothKnown(l, r value.Value) bool {
	return !l.IsNull() && !r.IsNull()
}

// Equals is l == r. Two nulls compare unknown, not true, per §4.4 — use
// IsNull for an explicit null test.
type Equals struct{ Left, Right Expr }

// Evaluate implements Predicate.
func (n Equals) Evaluate(cols ColumnLookup) (*series.Series, error) {
	return comparison{n.Left, n.Right, func(l, r value.Value) (bool, bool) {
		if !bothKnown(l, r) {
			return false, false
		}
		return l.Equal(r), true
	}}.Evaluate(cols)
}

// NotEquals is l != r.
type NotEquals struct{ Left, Right Expr }

// Evaluate implements Predicate.
func (n NotEquals) Evaluate(cols ColumnLookup) (*series.Series, error) {
	return comparison{n.Left, n.Right, func(l, r value.Value) (bool, bool) {
		if !bothKnown(l, r) {
			return false, false
		}
		return !l.Equal(r), true
	}}.Evaluate(cols)
}

// GreaterThan is l > r.
type GreaterThan struct{ Left, Right Expr }

// Evaluate implements Predicate.
func (n GreaterThan) Evaluate(cols ColumnLookup) (*series.Series, error) {
	return comparison{n.Left, n.Right, func(l, r value.Value) (bool, bool) {
		if !bothKnown(l, r) {
			return false, false
		}
		return r.Less(l), true
	}}.Evaluate(cols)
}

// LessThan is l < r.
type LessThan struct{ Left, Right Expr }

// Evaluate implements Predicate.
func (n LessThan) Evaluate(cols ColumnLookup) (*series.Series, error) {
	return comparison{n.Left, n.Right, func(l, r value.Value) (bool, bool) {
		if !bothKnown(l, r) {
			return false, false
		}
		return l.Less(r), true
	}}.Evaluate(cols)
}

// GreaterThanOrEqual is l >= r.
type GreaterThanOrEqual struct{ Left, Right Expr }

// Evaluate implements Predicate.
func (n GreaterThanOrEqual) Evaluate(cols ColumnLookup) (*series.Series, error) {
	return comparison{n.Left, n.Right, func(l, r value.Value) (bool, bool) {
		if !bothKnown(l, r) {
			return false, false
		}
		return !l.Less(r), true
	}}.Evaluate(cols)
}

// LessThanOrEqual is l <= r.
type LessThanOrEqual struct{ Left, Right Expr }

// Evaluate implements Predicate.
func (n LessThanOrEqual) Evaluate(cols ColumnLookup) (*series.Series, error) {
	return comparison{n.Left, n.Right, func(l, r value.Value) (bool, bool) {
		if !bothKnown(l, r) {
			return false, false
		}
		return !r.Less(l), true
	}}.Evaluate(cols)
}

// IsNull tests whether an expression evaluates to null.
type IsNull struct{ Operand Expr }

// Evaluate implements Predicate.
func (n IsNull) Evaluate(cols ColumnLookup) (*series.Series, error) {
	s, err := n.Operand.Evaluate(cols)
	if err != nil {
		return nil, err
	}
	vals := make([]bool, s.Len())
	for i := range vals {
		vals[i] = !s.IsValid(i)
	}
	return series.NewBool("__pred", vals, nil)
}

// And combines two predicates with Kleene conjunction: false wins over
// unknown (false AND unknown = false), unknown wins over true.
type And struct{ Left, Right Predicate }

// Evaluate implements Predicate.
func (n And) Evaluate(cols ColumnLookup) (*series.Series, error) {
	l, err := n.Left.Evaluate(cols)
	if err != nil {
		return nil, err
	}
	r, err := n.Right.Evaluate(cols)
	if err != nil {
		return nil, err
	}
	return combine(l, r, func(lv, lok, rv, rok bool) (bool, bool) {
		switch {
		case lok && !lv, rok && !rv:
			return false, true
		case lok && rok:
			return lv && rv, true
		default:
			return false, false
		}
	})
}

// Or combines two predicates with Kleene disjunction: true wins over
// unknown, unknown wins over false.
type Or struct{ Left, Right Predicate }

// Evaluate implements Predicate.
func (n Or) Evaluate(cols ColumnLookup) (*series.Series, error) {
	l, err := n.Left.Evaluate(cols)
	if err != nil {
		return nil, err
	}
	r, err := n.Right.Evaluate(cols)
	if err != nil {
		return nil, err
	}
	return combine(l, r, func(lv, lok, rv, rok bool) (bool, bool) {
		switch {
		case lok && lv, rok && rv:
			return true, true
		case lok && rok:
			return lv || rv, true
		default:
			return false, false
		}
	})
}

// Not negates a predicate. Unknown stays unknown.
type Not struct{ Operand Predicate }

// Evaluate implements Predicate.
func (n Not) Evaluate(cols ColumnLookup) (*series.Series, error) {
	s, err := n.Operand.Evaluate(cols)
	if err != nil {
		return nil, err
	}
	vals := make([]bool, s.Len())
	mask := make([]bool, s.Len())
	for i := 0; i < s.Len(); i++ {
		if !s.IsValid(i) {
			mask[i] = true
			continue
		}
		b, _ := s.GetBool(i)
		vals[i] = !b
	}
	return series.NewBool("__pred", vals, mask)
}

func combine(l, r *series.Series, op func(lv, lok, rv, rok bool) (bool, bool)) (*series.Series, error) {
	if l.Len() != r.Len() {
		return nil, verrors.LengthMismatch{Name: "predicate operand", Expected: l.Len(), Actual: r.Len()}
	}
	n := l.Len()
	vals := make([]bool, n)
	mask := make([]bool, n)
	for i := 0; i < n; i++ {
		lv, lok := l.GetBool(i)
		rv, rok := r.GetBool(i)
		res, known := op(lv, lok, rv, rok)
		if !known {
			mask[i] = true
			continue
		}
		vals[i] = res
	}
	return series.NewBool("__pred", vals, mask)
}

// Mask evaluates p against cols and returns the resulting Bool Series
// alone, with unknown (null) positions treated as false — the "mask to
// filter" rule of §4.4: a row is kept by Filter only when its predicate is
// definitely true.
func Mask(p Predicate, cols ColumnLookup) (*series.Series, error) {
	s, err := p.Evaluate(cols)
	if err != nil {
		return nil, err
	}
	vals := make([]bool, s.Len())
	for i := 0; i < s.Len(); i++ {
		v, ok := s.GetBool(i)
		vals[i] = ok && v
	}
	return series.NewBool(s.Name(), vals, nil)
}
