package series

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/Conqxeror/veloxx/config"
	"github.com/Conqxeror/veloxx/internal/exec"
	"github.com/Conqxeror/veloxx/logging"
	"github.com/Conqxeror/veloxx/value"
)

// Count returns the number of non-null elements. veloxx's series.rs count()
// has the same "nulls excluded" contract.
func (s *Series) Count() int {
	return s.valid.countValid(s.len)
}

// validF64 copies the Series' valid elements to float64, in position
// order. I32 values widen losslessly; any other dtype yields an empty slice,
// so callers check requireNumeric first.
func (s *Series) validF64() []float64 {
	out := make([]float64, 0, s.len)
	switch s.dtype {
	case value.F64:
		for i := 0; i < s.len; i++ {
			if s.valid.get(i) {
				out = append(out, s.f64[i])
			}
		}
	case value.I32:
		for i := 0; i < s.len; i++ {
			if s.valid.get(i) {
				out = append(out, float64(s.i32[i]))
			}
		}
	}
	return out
}

// Sum returns the sum of non-null numeric elements, or value.Null if every
// element is null. F64 and mixed-width I32 Series both reduce to F64 so
// that a partially-null sum can't silently truncate; when
// config.StableFloatSum is set, summation uses pairwise accumulation
// (halving the working set each pass) instead of a single left-to-right
// fold, bounding rounding error growth on long Series — stable summation
// stays single-threaded, since merging per-worker partial sums would
// reintroduce the rounding-order sensitivity pairwise summation exists to
// avoid. Otherwise summation runs through the same scalar/vector/parallel
// tiers as the element-wise kernels in arithmetic.go (§5).
func (s *Series) Sum() (value.Value, error) {
	if err := requireNumeric(s); err != nil {
		return value.Null, err
	}
	vals := s.validF64()
	if len(vals) == 0 {
		return value.Null, nil
	}
	if config.Get().StableFloatSum {
		return value.NewF64(pairwiseSum(vals)), nil
	}
	total, err := tieredSum(vals)
	if err != nil {
		return value.Null, err
	}
	return value.NewF64(total), nil
}

func sumChunk(vals []float64, start, end int) float64 {
	var total float64
	i := start
	for ; i+simdWidthF64 <= end; i += simdWidthF64 {
		for j := 0; j < simdWidthF64; j++ {
			total += vals[i+j]
		}
	}
	for ; i < end; i++ {
		total += vals[i]
	}
	return total
}

func tieredSum(vals []float64) (float64, error) {
	n := len(vals)
	if pickTier(n) != tierParallel {
		return sumChunk(vals, 0, n), nil
	}
	cfg := config.Get()
	cfg.Logger.Log(logging.DebugLevel, fmt.Sprintf("series: escalating %d-element sum to parallel tier (%d workers)", n, cfg.MaxWorkers))
	var mu sync.Mutex
	var total float64
	err := exec.Run(n, cfg.MaxWorkers, func(start, end int) error {
		partial := sumChunk(vals, start, end)
		mu.Lock()
		total += partial
		mu.Unlock()
		return nil
	})
	return total, err
}

func pairwiseSum(vals []float64) float64 {
	if len(vals) <= 8 {
		var total float64
		for _, v := range vals {
			total += v
		}
		return total
	}
	mid := len(vals) / 2
	return pairwiseSum(vals[:mid]) + pairwiseSum(vals[mid:])
}

// Mean returns the arithmetic mean of non-null elements as F64, or
// value.Null if every element is null.
func (s *Series) Mean() (value.Value, error) {
	if err := requireNumeric(s); err != nil {
		return value.Null, err
	}
	vals := s.validF64()
	if len(vals) == 0 {
		return value.Null, nil
	}
	sum, err := s.Sum()
	if err != nil {
		return value.Null, err
	}
	total, _ := sum.AsF64()
	return value.NewF64(total / float64(len(vals))), nil
}

// Median returns the lower median of non-null elements: for an odd count,
// the middle element after sorting; for an even count, the lower of the
// two middle elements. This is a deliberate departure from interpolating
// the two middle elements, chosen so the result is always a value that
// actually occurred in the Series (§9, resolved open question).
func (s *Series) Median() (value.Value, error) {
	if err := requireNumeric(s); err != nil {
		return value.Null, err
	}
	vals := s.validF64()
	if len(vals) == 0 {
		return value.Null, nil
	}
	sort.Float64s(vals)
	lower := (len(vals) - 1) / 2
	return value.NewF64(vals[lower]), nil
}

// StdDev returns the sample standard deviation (n-1 denominator) of
// non-null elements, or value.Null if fewer than two are non-null.
func (s *Series) StdDev() (value.Value, error) {
	if err := requireNumeric(s); err != nil {
		return value.Null, err
	}
	vals := s.validF64()
	if len(vals) < 2 {
		return value.Null, nil
	}
	var mean float64
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))
	var sq float64
	for _, v := range vals {
		d := v - mean
		sq += d * d
	}
	return value.NewF64(math.Sqrt(sq / float64(len(vals)-1))), nil
}

// Min returns the smallest non-null element, or value.Null if every
// element is null.
func (s *Series) Min() (value.Value, error) {
	return s.extreme(func(a, b value.Value) bool { return a.Less(b) })
}

// Max returns the largest non-null element, or value.Null if every element
// is null.
func (s *Series) Max() (value.Value, error) {
	return s.extreme(func(a, b value.Value) bool { return b.Less(a) })
}

func (s *Series) extreme(better func(candidate, current value.Value) bool) (value.Value, error) {
	n := s.len
	if pickTier(n) != tierParallel {
		best, found := extremeChunk(s, better, 0, n)
		if !found {
			return value.Null, nil
		}
		return best, nil
	}
	cfg := config.Get()
	cfg.Logger.Log(logging.DebugLevel, fmt.Sprintf("series: escalating %d-element extreme to parallel tier (%d workers)", n, cfg.MaxWorkers))
	var mu sync.Mutex
	var best value.Value
	found := false
	err := exec.Run(n, cfg.MaxWorkers, func(start, end int) error {
		localBest, localFound := extremeChunk(s, better, start, end)
		if !localFound {
			return nil
		}
		mu.Lock()
		if !found || better(localBest, best) {
			best = localBest
			found = true
		}
		mu.Unlock()
		return nil
	})
	if err != nil {
		return value.Null, err
	}
	if !found {
		return value.Null, nil
	}
	return best, nil
}

func extremeChunk(s *Series, better func(candidate, current value.Value) bool, start, end int) (value.Value, bool) {
	var best value.Value
	found := false
	for i := start; i < end; i++ {
		if !s.valid.get(i) {
			continue
		}
		v := s.At(i)
		if !found || better(v, best) {
			best = v
			found = true
		}
	}
	return best, found
}

// Unique returns a new Series holding each distinct value (nulls counted
// as one distinct value if present) in first-occurrence order. This
// diverges from a sort-then-dedup approach, which would lose the original
// appearance order the spec's determinism contract requires (§8).
func (s *Series) Unique() *Series {
	seen := make(map[string]bool)
	var indices []int
	sawNull := false
	for i := 0; i < s.len; i++ {
		if !s.valid.get(i) {
			if !sawNull {
				sawNull = true
				indices = append(indices, i)
			}
			continue
		}
		key := s.At(i).String() + "\x00" + string(byte(s.dtype))
		if !seen[key] {
			seen[key] = true
			indices = append(indices, i)
		}
	}
	return s.Take(indices)
}

// FillNulls returns a copy of s with every null position replaced by fill.
// fill must share s's dtype.
func (s *Series) FillNulls(fill value.Value) (*Series, error) {
	if fill.DataType() != s.dtype {
		return nil, requireType(s, fill.DataType())
	}
	out := s.cloneStorage()
	for i := 0; i < s.len; i++ {
		if out.valid.get(i) {
			continue
		}
		out.valid.set(i, true)
		switch s.dtype {
		case value.I32:
			v, _ := fill.AsI32()
			out.i32[i] = v
		case value.F64:
			v, _ := fill.AsF64()
			out.f64[i] = v
		case value.Bool:
			v, _ := fill.AsBool()
			out.b[i] = v
		case value.String:
			v, _ := fill.AsString()
			out.str[i] = v
		case value.DateTime:
			v, _ := fill.AsDateTime()
			out.dt[i] = v
		}
	}
	return out, nil
}

// InterpolateNulls returns a copy of s (numeric dtypes only) with interior
// null runs replaced by linear interpolation between their bounding valid
// values. Leading and trailing null runs have no lower or upper bound to
// interpolate between and are left untouched, matching veloxx's
// interpolate_nulls behavior.
func (s *Series) InterpolateNulls() (*Series, error) {
	if err := requireNumeric(s); err != nil {
		return nil, err
	}
	out := s.cloneStorage()
	get := func(i int) float64 {
		if s.dtype == value.I32 {
			return float64(s.i32[i])
		}
		return s.f64[i]
	}
	set := func(i int, v float64) {
		if s.dtype == value.I32 {
			out.i32[i] = int32(v)
		} else {
			out.f64[i] = v
		}
	}

	i := 0
	for i < s.len {
		if s.valid.get(i) {
			i++
			continue
		}
		runStart := i
		for i < s.len && !s.valid.get(i) {
			i++
		}
		runEnd := i // first valid index after the run, or s.len
		if runStart == 0 || runEnd == s.len {
			continue // leading or trailing run: leave as null
		}
		lo, hi := get(runStart-1), get(runEnd)
		span := float64(runEnd - (runStart - 1))
		for j := runStart; j < runEnd; j++ {
			frac := float64(j-(runStart-1)) / span
			set(j, lo+(hi-lo)*frac)
			out.valid.set(j, true)
		}
	}
	return out, nil
}

func (s *Series) cloneStorage() *Series {
	out := &Series{name: s.name, dtype: s.dtype, len: s.len, valid: s.valid.clone()}
	out.i32 = append([]int32(nil), s.i32...)
	out.f64 = append([]float64(nil), s.f64...)
	out.b = append([]bool(nil), s.b...)
	out.str = append([]string(nil), s.str...)
	out.dt = append([]int64(nil), s.dt...)
	return out
}

// Correlation returns the Pearson correlation coefficient between s and
// other over the positions where both are non-null, or value.Null if fewer
// than two such positions exist. Supplements the spec's core reduction set
// with a bivariate statistic veloxx's series.rs correlation() offers but
// the distilled spec's L2 operator list omits.
func (s *Series) Correlation(other *Series) (value.Value, error) {
	if err := requireNumeric(s); err != nil {
		return value.Null, err
	}
	if err := requireNumeric(other); err != nil {
		return value.Null, err
	}
	if _, err := checkSameLenNoType(s, other); err != nil {
		return value.Null, err
	}
	var xs, ys []float64
	for i := 0; i < s.len; i++ {
		if !s.valid.get(i) || !other.valid.get(i) {
			continue
		}
		xs = append(xs, valueAt(s, i))
		ys = append(ys, valueAt(other, i))
	}
	if len(xs) < 2 {
		return value.Null, nil
	}
	var mx, my float64
	for i := range xs {
		mx += xs[i]
		my += ys[i]
	}
	mx /= float64(len(xs))
	my /= float64(len(ys))
	var cov, vx, vy float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	if vx == 0 || vy == 0 {
		return value.Null, nil
	}
	return value.NewF64(cov / math.Sqrt(vx*vy)), nil
}

func valueAt(s *Series, i int) float64 {
	if s.dtype == value.I32 {
		return float64(s.i32[i])
	}
	return s.f64[i]
}

func checkSameLenNoType(a, b *Series) (int, error) {
	if err := requireLen(a, b.len); err != nil {
		return 0, err
	}
	return a.len, nil
}
