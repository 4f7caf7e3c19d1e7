// Package expr implements the engine's L4 layer: a tree of Expression and
// Predicate nodes evaluated column-wise over a whole DataFrame rather than
// row-by-row. veloxx's src/expressions.rs and src/conditions.rs both
// evaluate one row index at a time against a &DataFrame; this package
// keeps the same node shapes (Column/Literal/arithmetic/comparison/
// boolean) but evaluates each node once into a full Series, so a
// multi-column expression only walks the DataFrame once per node instead
// of once per node per row.
package expr

import (
	verrors "github.com/Conqxeror/veloxx/errors"
	"github.com/Conqxeror/veloxx/series"
	"github.com/Conqxeror/veloxx/value"
)

// Expr is a node in an arithmetic expression tree. Evaluate materializes
// it into a Series over a DataFrame's rows.
type Expr interface {
	Evaluate(cols ColumnLookup) (*series.Series, error)
}

// ColumnLookup is the minimal surface Evaluate needs from a DataFrame:
// name-addressed column access plus row count. dataframe.DataFrame
// satisfies this directly; tests can satisfy it with a lighter stand-in.
type ColumnLookup interface {
	Column(name string) (*series.Series, error)
	NumRows() int
}

// Col references a column by name.
type Col struct{ Name string }

// Evaluate returns the named column unchanged.
func (c Col) Evaluate(cols ColumnLookup) (*series.Series, error) {
	return cols.Column(c.Name)
}

// Lit wraps a constant value.Value, broadcast to the DataFrame's row
// count when evaluated.
type Lit struct{ Value value.Value }

// Evaluate returns a constant Series of cols.NumRows() rows, every one set
// to l.Value (or null, if l.Value is null).
func (l Lit) Evaluate(cols ColumnLookup) (*series.Series, error) {
	n := cols.NumRows()
	if l.Value.IsNull() {
		mask := make([]bool, n)
		for i := range mask {
			mask[i] = true
		}
		return series.NewF64("__lit", make([]float64, n), mask)
	}
	switch l.Value.DataType() {
	case value.I32:
		v, _ := l.Value.AsI32()
		vals := make([]int32, n)
		for i := range vals {
			vals[i] = v
		}
		return series.NewI32("__lit", vals, nil)
	case value.F64:
		v, _ := l.Value.AsF64()
		vals := make([]float64, n)
		for i := range vals {
			vals[i] = v
		}
		return series.NewF64("__lit", vals, nil)
	case value.Bool:
		v, _ := l.Value.AsBool()
		vals := make([]bool, n)
		for i := range vals {
			vals[i] = v
		}
		return series.NewBool("__lit", vals, nil)
	case value.String:
		v, _ := l.Value.AsString()
		vals := make([]string, n)
		for i := range vals {
			vals[i] = v
		}
		return series.NewString("__lit", vals, nil)
	case value.DateTime:
		v, _ := l.Value.AsDateTime()
		vals := make([]int64, n)
		for i := range vals {
			vals[i] = v
		}
		return series.NewDateTime("__lit", vals, nil)
	}
	return nil, verrors.TypeMismatch{Message: "unsupported literal dtype"}
}

// binArith is the shared shape of Add/Subtract/Multiply/Divide: evaluate
// both operands, promote to a common dtype, then dispatch to the matching
// series kernel. Per §4.3, the result is F64 if either operand is F64,
// else I32; a mismatched F64/I32 pair is promoted by widening the I32 side
// rather than rejected.
type binArith struct {
	Left, Right Expr
	f64op       func(a, b *series.Series) (*series.Series, error)
	i32op       func(a, b *series.Series) (*series.Series, error)
}

func (n binArith) Evaluate(cols ColumnLookup) (*series.Series, error) {
	l, err := n.Left.Evaluate(cols)
	if err != nil {
		return nil, err
	}
	r, err := n.Right.Evaluate(cols)
	if err != nil {
		return nil, err
	}
	l, r, err = promoteNumeric(l, r)
	if err != nil {
		return nil, err
	}
	switch l.DataType() {
	case value.F64:
		return n.f64op(l, r)
	case value.I32:
		return n.i32op(l, r)
	}
	return nil, verrors.TypeMismatch{Message: "arithmetic requires a numeric dtype"}
}

// promoteNumeric widens whichever of l/r is I32 to F64 when the other is
// F64, so mixed-width arithmetic produces F64 rather than erroring; if
// both are already the same numeric dtype they're returned unchanged.
// Any non-numeric dtype is a TypeMismatch.
func promoteNumeric(l, r *series.Series) (*series.Series, *series.Series, error) {
	isNumeric := func(s *series.Series) bool {
		return s.DataType() == value.I32 || s.DataType() == value.F64
	}
	if !isNumeric(l) || !isNumeric(r) {
		return nil, nil, verrors.TypeMismatch{Message: "arithmetic requires a numeric dtype"}
	}
	if l.DataType() == r.DataType() {
		return l, r, nil
	}
	if l.DataType() == value.I32 {
		widened, err := l.Cast(value.F64)
		if err != nil {
			return nil, nil, err
		}
		return widened, r, nil
	}
	widened, err := r.Cast(value.F64)
	if err != nil {
		return nil, nil, err
	}
	return l, widened, nil
}

// Add is l + r, element-wise.
type Add struct{ Left, Right Expr }

// Evaluate implements Expr.
func (n Add) Evaluate(cols ColumnLookup) (*series.Series, error) {
	return binArith{n.Left, n.Right, series.AddF64, series.AddI32}.Evaluate(cols)
}

// Subtract is l - r, element-wise.
type Subtract struct{ Left, Right Expr }

// Evaluate implements Expr.
func (n Subtract) Evaluate(cols ColumnLookup) (*series.Series, error) {
	return binArith{n.Left, n.Right, series.SubF64, series.SubI32}.Evaluate(cols)
}

// Multiply is l * r, element-wise.
type Multiply struct{ Left, Right Expr }

// Evaluate implements Expr.
func (n Multiply) Evaluate(cols ColumnLookup) (*series.Series, error) {
	return binArith{n.Left, n.Right, series.MulF64, series.MulI32}.Evaluate(cols)
}

// Divide is l / r, element-wise; division by zero yields null rather than
// an error or an infinity (§4.3).
type Divide struct{ Left, Right Expr }

// Evaluate implements Expr.
func (n Divide) Evaluate(cols ColumnLookup) (*series.Series, error) {
	return binArith{n.Left, n.Right, series.DivF64, series.DivI32}.Evaluate(cols)
}
