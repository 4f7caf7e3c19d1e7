// Package series implements the engine's L2 layer: Series, a typed nullable
// column, together with the element-wise and reduction kernels that back
// Expression evaluation and the relational operators. Storage is
// struct-of-arrays: one typed Go slice per Series plus a packed validity
// bitset, the same split veloxx keeps internally (src/series/arithmetic.rs
// operates on parallel values+bitmap slices), kept explicit here instead of
// being hidden behind a boxed Value per element.
package series

import (
	"fmt"

	"github.com/Conqxeror/veloxx/config"
	verrors "github.com/Conqxeror/veloxx/errors"
	"github.com/Conqxeror/veloxx/value"
)

// Series is an ordered, typed, nullable column. Every Series has exactly
// one value.DataType and a fixed length; element access always goes
// through At and the typed GetXxx accessors rather than exposing the
// backing slice, so callers cannot
// observe whether a particular dtype happens to be stored as []int32,
// []float64, []bool, []string, or []int64.
type Series struct {
	name  string
	dtype value.DataType
	len   int
	valid validity

	i32  []int32
	f64  []float64
	b    []bool
	str  []string
	dt   []int64 // DateTime, seconds since epoch UTC
}

// Name returns the Series' column name.
func (s *Series) Name() string { return s.name }

// DataType returns the Series' logical element type.
func (s *Series) DataType() value.DataType { return s.dtype }

// Len returns the number of elements, including nulls.
func (s *Series) Len() int { return s.len }

// Rename returns a copy of s under a new name.
func (s *Series) Rename(name string) (*Series, error) {
	if name == "" {
		return nil, verrors.EmptyColumnName{}
	}
	out := s.shallowCopy()
	out.name = name
	return out, nil
}

func (s *Series) shallowCopy() *Series {
	return &Series{
		name: s.name, dtype: s.dtype, len: s.len, valid: s.valid,
		i32: s.i32, f64: s.f64, b: s.b, str: s.str, dt: s.dt,
	}
}

// NewI32 builds an I32 Series from values and an optional null mask (nil
// means every value is valid).
func NewI32(name string, values []int32, nullMask []bool) (*Series, error) {
	s, err := newBase(name, value.I32, len(values), nullMask)
	if err != nil {
		return nil, err
	}
	s.i32 = append([]int32(nil), values...)
	return s, nil
}

// NewF64 builds an F64 Series from values and an optional null mask.
func NewF64(name string, values []float64, nullMask []bool) (*Series, error) {
	s, err := newBase(name, value.F64, len(values), nullMask)
	if err != nil {
		return nil, err
	}
	s.f64 = append([]float64(nil), values...)
	return s, nil
}

// NewBool builds a Bool Series from values and an optional null mask.
func NewBool(name string, values []bool, nullMask []bool) (*Series, error) {
	s, err := newBase(name, value.Bool, len(values), nullMask)
	if err != nil {
		return nil, err
	}
	s.b = append([]bool(nil), values...)
	return s, nil
}

// NewString builds a String Series from values and an optional null mask.
func NewString(name string, values []string, nullMask []bool) (*Series, error) {
	s, err := newBase(name, value.String, len(values), nullMask)
	if err != nil {
		return nil, err
	}
	s.str = append([]string(nil), values...)
	return s, nil
}

// NewDateTime builds a DateTime Series from epoch-second values and an
// optional null mask.
func NewDateTime(name string, values []int64, nullMask []bool) (*Series, error) {
	s, err := newBase(name, value.DateTime, len(values), nullMask)
	if err != nil {
		return nil, err
	}
	s.dt = append([]int64(nil), values...)
	return s, nil
}

func newBase(name string, dt value.DataType, n int, nullMask []bool) (*Series, error) {
	if name == "" {
		return nil, verrors.EmptyColumnName{}
	}
	if nullMask != nil && len(nullMask) != n {
		return nil, verrors.LengthMismatch{Name: name, Expected: n, Actual: len(nullMask)}
	}
	v := newValidityAllSet(n)
	if nullMask != nil {
		for i, isNull := range nullMask {
			if isNull {
				v.set(i, false)
			}
		}
	}
	return &Series{name: name, dtype: dt, len: n, valid: v}, nil
}

// IsValid reports whether position i holds a non-null value.
func (s *Series) IsValid(i int) bool {
	s.checkBounds(i)
	return s.valid.get(i)
}

// NullCount returns the number of null positions.
func (s *Series) NullCount() int {
	return s.len - s.valid.countValid(s.len)
}

func (s *Series) checkBounds(i int) {
	if i < 0 || i >= s.len {
		panic(verrors.OutOfBounds{Index: i, Length: s.len})
	}
}

// At returns the element at position i as a value.Value, or value.Null if
// that position is null.
func (s *Series) At(i int) value.Value {
	s.checkBounds(i)
	if !s.valid.get(i) {
		return value.Null
	}
	switch s.dtype {
	case value.I32:
		return value.NewI32(s.i32[i])
	case value.F64:
		return value.NewF64(s.f64[i])
	case value.Bool:
		return value.NewBool(s.b[i])
	case value.String:
		return value.NewString(s.str[i])
	case value.DateTime:
		return value.NewDateTime(s.dt[i])
	}
	panic(fmt.Sprintf("series: unreachable dtype %v", s.dtype))
}

// GetI32 returns the raw int32 at i without allocating a value.Value; ok is
// false if i is null. Panics if the Series is not I32.
func (s *Series) GetI32(i int) (int32, bool) {
	s.mustType(value.I32)
	s.checkBounds(i)
	return s.i32[i], s.valid.get(i)
}

// GetF64 returns the raw float64 at i; ok is false if i is null.
func (s *Series) GetF64(i int) (float64, bool) {
	s.mustType(value.F64)
	s.checkBounds(i)
	return s.f64[i], s.valid.get(i)
}

// GetBool returns the raw bool at i; ok is false if i is null.
func (s *Series) GetBool(i int) (bool, bool) {
	s.mustType(value.Bool)
	s.checkBounds(i)
	return s.b[i], s.valid.get(i)
}

// GetString returns the raw string at i; ok is false if i is null.
func (s *Series) GetString(i int) (string, bool) {
	s.mustType(value.String)
	s.checkBounds(i)
	return s.str[i], s.valid.get(i)
}

// GetDateTime returns the raw epoch-seconds at i; ok is false if i is null.
func (s *Series) GetDateTime(i int) (int64, bool) {
	s.mustType(value.DateTime)
	s.checkBounds(i)
	return s.dt[i], s.valid.get(i)
}

func (s *Series) mustType(dt value.DataType) {
	if s.dtype != dt {
		panic(verrors.TypeMismatch{Message: fmt.Sprintf("series %q is %v, not %v", s.name, s.dtype, dt)})
	}
}

// Take returns a new Series containing the elements at the given indices,
// in order. Used by Sort, Filter, GroupBy, and Pivot to materialize
// permuted or selected output without each operator re-implementing the
// per-dtype gather loop.
func (s *Series) Take(indices []int) *Series {
	out := &Series{name: s.name, dtype: s.dtype, len: len(indices), valid: newValidity(len(indices))}
	switch s.dtype {
	case value.I32:
		out.i32 = make([]int32, len(indices))
	case value.F64:
		out.f64 = make([]float64, len(indices))
	case value.Bool:
		out.b = make([]bool, len(indices))
	case value.String:
		out.str = make([]string, len(indices))
	case value.DateTime:
		out.dt = make([]int64, len(indices))
	}
	for dst, src := range indices {
		if !s.valid.get(src) {
			continue
		}
		out.valid.set(dst, true)
		switch s.dtype {
		case value.I32:
			out.i32[dst] = s.i32[src]
		case value.F64:
			out.f64[dst] = s.f64[src]
		case value.Bool:
			out.b[dst] = s.b[src]
		case value.String:
			out.str[dst] = s.str[src]
		case value.DateTime:
			out.dt[dst] = s.dt[src]
		}
	}
	return out
}

// TakeWithNulls gathers elements like Take, but an index of -1 produces a
// null at that output position instead of panicking on an out-of-range
// index. Used by the join operator to materialize the unmatched side of
// an outer/left/right join without a separate null-overlay pass.
func (s *Series) TakeWithNulls(indices []int) *Series {
	out := &Series{name: s.name, dtype: s.dtype, len: len(indices), valid: newValidity(len(indices))}
	switch s.dtype {
	case value.I32:
		out.i32 = make([]int32, len(indices))
	case value.F64:
		out.f64 = make([]float64, len(indices))
	case value.Bool:
		out.b = make([]bool, len(indices))
	case value.String:
		out.str = make([]string, len(indices))
	case value.DateTime:
		out.dt = make([]int64, len(indices))
	}
	for dst, src := range indices {
		if src < 0 || !s.valid.get(src) {
			continue
		}
		out.valid.set(dst, true)
		switch s.dtype {
		case value.I32:
			out.i32[dst] = s.i32[src]
		case value.F64:
			out.f64[dst] = s.f64[src]
		case value.Bool:
			out.b[dst] = s.b[src]
		case value.String:
			out.str[dst] = s.str[src]
		case value.DateTime:
			out.dt[dst] = s.dt[src]
		}
	}
	return out
}

// Append returns a new Series with other's elements concatenated after s's.
// Both must share a dtype.
func (s *Series) Append(other *Series) (*Series, error) {
	if s.dtype != other.dtype {
		return nil, verrors.TypeMismatch{Message: fmt.Sprintf("cannot append %v series to %v series", other.dtype, s.dtype)}
	}
	n := s.len + other.len
	out := &Series{name: s.name, dtype: s.dtype, len: n, valid: newValidity(n)}
	for i := 0; i < s.len; i++ {
		out.valid.set(i, s.valid.get(i))
	}
	for i := 0; i < other.len; i++ {
		out.valid.set(s.len+i, other.valid.get(i))
	}
	switch s.dtype {
	case value.I32:
		out.i32 = append(append([]int32(nil), s.i32...), other.i32...)
	case value.F64:
		out.f64 = append(append([]float64(nil), s.f64...), other.f64...)
	case value.Bool:
		out.b = append(append([]bool(nil), s.b...), other.b...)
	case value.String:
		out.str = append(append([]string(nil), s.str...), other.str...)
	case value.DateTime:
		out.dt = append(append([]int64(nil), s.dt...), other.dt...)
	}
	return out, nil
}

// execTier names the three-tier scalar/vector/parallel classification
// described in §5: below SIMDThreshold a kernel is scalar-tier; at or above
// it but below ParThreshold it is vector-tier; at or above ParThreshold it
// fans out across config.MaxWorkers via internal/exec. The scalar and
// vector tiers run the same kernel inline, and every kernel walks its range
// in lane-width blocks with a scalar tail, so there is no separate scalar
// loop below SIMDThreshold.
type execTier int

const (
	tierScalar execTier = iota
	tierVector
	tierParallel
)

func pickTier(n int) execTier {
	cfg := config.Get()
	switch {
	case n >= cfg.ParThreshold:
		return tierParallel
	case n >= cfg.SIMDThreshold:
		return tierVector
	default:
		return tierScalar
	}
}
