package series

import (
	"math"
	"strconv"
	"time"

	verrors "github.com/Conqxeror/veloxx/errors"
	"github.com/Conqxeror/veloxx/value"
)

// Cast converts s to a new Series of dtype to, per §4.1's cast contract:
// I32<->F64 (widening/narrowing), String->{I32,F64,Bool,DateTime} via
// parsing, Bool<->I32, and any dtype to String. A value that fails to
// parse, or an F64 that is NaN or outside I32's range when narrowing,
// becomes null at that position rather than failing the whole cast,
// consistent with the engine's preference for null propagation over
// partial-operation errors.
func (s *Series) Cast(to value.DataType) (*Series, error) {
	if s.dtype == to {
		return s.cloneStorage(), nil
	}
	switch {
	case s.dtype == value.I32 && to == value.F64:
		vals := make([]float64, s.len)
		mask := make([]bool, s.len)
		for i := 0; i < s.len; i++ {
			if s.valid.get(i) {
				vals[i] = float64(s.i32[i])
			} else {
				mask[i] = true
			}
		}
		return NewF64(s.name, vals, mask)
	case s.dtype == value.F64 && to == value.I32:
		vals := make([]int32, s.len)
		mask := make([]bool, s.len)
		for i := 0; i < s.len; i++ {
			if !s.valid.get(i) {
				mask[i] = true
				continue
			}
			f := s.f64[i]
			if math.IsNaN(f) || f < math.MinInt32 || f > math.MaxInt32 {
				mask[i] = true
				continue
			}
			vals[i] = int32(f)
		}
		return NewI32(s.name, vals, mask)
	case s.dtype == value.I32 && to == value.Bool:
		vals := make([]bool, s.len)
		mask := make([]bool, s.len)
		for i := 0; i < s.len; i++ {
			if s.valid.get(i) {
				vals[i] = s.i32[i] != 0
			} else {
				mask[i] = true
			}
		}
		return NewBool(s.name, vals, mask)
	case s.dtype == value.Bool && to == value.I32:
		vals := make([]int32, s.len)
		mask := make([]bool, s.len)
		for i := 0; i < s.len; i++ {
			if !s.valid.get(i) {
				mask[i] = true
				continue
			}
			if s.b[i] {
				vals[i] = 1
			}
		}
		return NewI32(s.name, vals, mask)
	case s.dtype == value.String && to == value.I32:
		vals := make([]int32, s.len)
		mask := make([]bool, s.len)
		for i := 0; i < s.len; i++ {
			if !s.valid.get(i) {
				mask[i] = true
				continue
			}
			n, err := strconv.ParseInt(s.str[i], 10, 32)
			if err != nil {
				mask[i] = true
				continue
			}
			vals[i] = int32(n)
		}
		return NewI32(s.name, vals, mask)
	case s.dtype == value.String && to == value.F64:
		vals := make([]float64, s.len)
		mask := make([]bool, s.len)
		for i := 0; i < s.len; i++ {
			if !s.valid.get(i) {
				mask[i] = true
				continue
			}
			f, err := strconv.ParseFloat(s.str[i], 64)
			if err != nil {
				mask[i] = true
				continue
			}
			vals[i] = f
		}
		return NewF64(s.name, vals, mask)
	case s.dtype == value.String && to == value.Bool:
		vals := make([]bool, s.len)
		mask := make([]bool, s.len)
		for i := 0; i < s.len; i++ {
			if !s.valid.get(i) {
				mask[i] = true
				continue
			}
			b, err := strconv.ParseBool(s.str[i])
			if err != nil {
				mask[i] = true
				continue
			}
			vals[i] = b
		}
		return NewBool(s.name, vals, mask)
	case s.dtype == value.String && to == value.DateTime:
		vals := make([]int64, s.len)
		mask := make([]bool, s.len)
		for i := 0; i < s.len; i++ {
			if !s.valid.get(i) {
				mask[i] = true
				continue
			}
			t, err := time.Parse(time.RFC3339, s.str[i])
			if err != nil {
				mask[i] = true
				continue
			}
			vals[i] = t.Unix()
		}
		return NewDateTime(s.name, vals, mask)
	case to == value.String:
		vals := make([]string, s.len)
		mask := make([]bool, s.len)
		for i := 0; i < s.len; i++ {
			if !s.valid.get(i) {
				mask[i] = true
				continue
			}
			vals[i] = s.At(i).String()
		}
		return NewString(s.name, vals, mask)
	}
	return nil, verrors.InvalidCast{From: s.dtype.String(), To: to.String()}
}
