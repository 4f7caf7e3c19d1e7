package expr

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/Conqxeror/veloxx/series"
	"github.com/Conqxeror/veloxx/value"
)

type fakeFrame struct {
	cols map[string]*series.Series
	n    int
}

func (f fakeFrame) Column(name string) (*series.Series, error) {
	s, ok := f.cols[name]
	if !ok {
		panic("missing column " + name)
	}
	return s, nil
}
func (f fakeFrame) NumRows() int { return f.n }

func newFrame(t *testing.T) fakeFrame {
	a, err := series.NewF64("a", []float64{1, 2, 3}, []bool{false, true, false})
	require.NoError(t, err)
	b, err := series.NewF64("b", []float64{10, 20, 0}, nil)
	require.NoError(t, err)
	return fakeFrame{cols: map[string]*series.Series{"a": a, "b": b}, n: 3}
}

func TestAddPropagatesNull(t *testing.T) {
	f := newFrame(t)
	out, err := Add{Col{"a"}, Col{"b"}}.Evaluate(f)
	require.NoError(t, err)
	require.Equal(t, value.NewF64(11), out.At(0))
	require.True(t, out.At(1).IsNull())
}

func TestDivideByZeroIsNull(t *testing.T) {
	f := newFrame(t)
	out, err := Divide{Col{"b"}, Col{"b"}}.Evaluate(f)
	require.NoError(t, err)
	require.True(t, out.At(2).IsNull())
	require.Equal(t, value.NewF64(1), out.At(0))
}

func TestGreaterThanUnknownWhenNull(t *testing.T) {
	f := newFrame(t)
	p := GreaterThan{Col{"a"}, Lit{value.NewF64(0)}}
	out, err := p.Evaluate(f)
	require.NoError(t, err)
	v0, ok0 := out.GetBool(0)
	require.True(t, ok0)
	require.True(t, v0)
	require.True(t, out.At(1).IsNull())
}

func TestAndFalseDominatesUnknown(t *testing.T) {
	f := newFrame(t)
	falsePred := LessThan{Col{"b"}, Lit{value.NewF64(-1)}}
	unknownPred := GreaterThan{Col{"a"}, Lit{value.NewF64(0)}}
	out, err := And{falsePred, unknownPred}.Evaluate(f)
	require.NoError(t, err)
	v, ok := out.GetBool(1)
	require.True(t, ok)
	require.False(t, v)
}

func TestMaskTreatsUnknownAsFalse(t *testing.T) {
	f := newFrame(t)
	p := GreaterThan{Col{"a"}, Lit{value.NewF64(0)}}
	mask, err := Mask(p, f)
	require.NoError(t, err)
	v1, ok1 := mask.GetBool(1)
	require.True(t, ok1)
	require.False(t, v1)
}

func TestI32ArithmeticKernels(t *testing.T) {
	a, err := series.NewI32("a", []int32{10, 20, 7}, nil)
	require.NoError(t, err)
	b, err := series.NewI32("b", []int32{3, 0, 2}, nil)
	require.NoError(t, err)
	f := fakeFrame{cols: map[string]*series.Series{"a": a, "b": b}, n: 3}

	sub, err := Subtract{Col{"a"}, Col{"b"}}.Evaluate(f)
	require.NoError(t, err)
	require.Equal(t, value.NewI32(7), sub.At(0))

	mul, err := Multiply{Col{"a"}, Col{"b"}}.Evaluate(f)
	require.NoError(t, err)
	require.Equal(t, value.NewI32(30), mul.At(0))

	div, err := Divide{Col{"a"}, Col{"b"}}.Evaluate(f)
	require.NoError(t, err)
	require.True(t, div.At(1).IsNull()) // division by zero
	require.Equal(t, value.NewI32(3), div.At(0))
}

func TestMixedI32F64ArithmeticPromotesToF64(t *testing.T) {
	i, err := series.NewI32("i", []int32{2, 4}, nil)
	require.NoError(t, err)
	f64, err := series.NewF64("f", []float64{0.5, 1.5}, nil)
	require.NoError(t, err)
	f := fakeFrame{cols: map[string]*series.Series{"i": i, "f": f64}, n: 2}

	out, err := Add{Col{"i"}, Col{"f"}}.Evaluate(f)
	require.NoError(t, err)
	require.Equal(t, value.F64, out.DataType())
	require.Equal(t, value.NewF64(2.5), out.At(0))
}

func TestComparisonAcrossDtypesIsTypeMismatch(t *testing.T) {
	i, err := series.NewI32("i", []int32{1, 2}, nil)
	require.NoError(t, err)
	s, err := series.NewString("s", []string{"1", "2"}, nil)
	require.NoError(t, err)
	f := fakeFrame{cols: map[string]*series.Series{"i": i, "s": s}, n: 2}

	_, err = Equals{Col{"i"}, Col{"s"}}.Evaluate(f)
	require.Error(t, err)
}

func TestBuilderChaining(t *testing.T) {
	f := newFrame(t)
	pred := ColB("a").Add(LitB(value.NewF64(1))).Gt(LitB(value.NewF64(2)))
	out, err := pred.Evaluate(f)
	require.NoError(t, err)
	v0, ok0 := out.GetBool(0)
	require.True(t, ok0)
	require.False(t, v0)
}
