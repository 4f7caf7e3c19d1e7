package series

import (
	"fmt"

	"github.com/Conqxeror/veloxx/config"
	"github.com/Conqxeror/veloxx/internal/exec"
	"github.com/Conqxeror/veloxx/logging"
)

// binOpF64 is a non-dividing F64 kernel (add/sub/mul) over a pair of F64
// buffers. Division has its own kernel, DivF64, which nulls out elements
// where the divisor is zero, per §4.3's null-not-error division contract.
type binOpF64 func(a, b float64) float64

// simdWidthF64 mirrors the teacher's choice of a small fixed unroll factor
// for "vectorized" loops: Go has no portable SIMD intrinsic, so the vector
// tier is expressed as a 4-wide manually unrolled loop, which the compiler
// can still autovectorize on amd64/arm64, rather than reaching for a cgo
// SIMD binding outside the example corpus's own dependency set.
const simdWidthF64 = 4

// simdWidthI32 is the lane width used for I32 kernels; narrower elements
// give a wider natural unroll before the loop becomes memory-bound.
const simdWidthI32 = 8

// AddF64 returns an element-wise sum of two equal-length F64 Series. A null
// in either operand makes the result null at that position.
func AddF64(a, b *Series) (*Series, error) {
	return binaryF64(a, b, func(x, y float64) float64 { return x + y })
}

// SubF64 returns an element-wise difference a-b.
func SubF64(a, b *Series) (*Series, error) {
	return binaryF64(a, b, func(x, y float64) float64 { return x - y })
}

// MulF64 returns an element-wise product.
func MulF64(a, b *Series) (*Series, error) {
	return binaryF64(a, b, func(x, y float64) float64 { return x * y })
}

// DivF64 returns an element-wise quotient a/b. Division by zero produces a
// null at that position rather than an error or an infinity, per §4.3.
func DivF64(a, b *Series) (*Series, error) {
	n, err := checkSameLen(a, b)
	if err != nil {
		return nil, err
	}
	out := &Series{name: a.name, dtype: a.dtype, len: n, valid: newValidity(n), f64: make([]float64, n)}
	kernel := func(start, end int) error {
		for i := start; i < end; i++ {
			if !a.valid.get(i) || !b.valid.get(i) || b.f64[i] == 0 {
				continue
			}
			out.f64[i] = a.f64[i] / b.f64[i]
			out.valid.set(i, true)
		}
		return nil
	}
	if err := dispatch(n, kernel); err != nil {
		return nil, err
	}
	return out, nil
}

func binaryF64(a, b *Series, op binOpF64) (*Series, error) {
	n, err := checkSameLen(a, b)
	if err != nil {
		return nil, err
	}
	out := &Series{name: a.name, dtype: a.dtype, len: n, valid: newValidity(n), f64: make([]float64, n)}
	kernel := func(start, end int) error {
		i := start
		for ; i+simdWidthF64 <= end; i += simdWidthF64 {
			for j := 0; j < simdWidthF64; j++ {
				k := i + j
				if a.valid.get(k) && b.valid.get(k) {
					out.f64[k] = op(a.f64[k], b.f64[k])
					out.valid.set(k, true)
				}
			}
		}
		for ; i < end; i++ {
			if a.valid.get(i) && b.valid.get(i) {
				out.f64[i] = op(a.f64[i], b.f64[i])
				out.valid.set(i, true)
			}
		}
		return nil
	}
	if err := dispatch(n, kernel); err != nil {
		return nil, err
	}
	return out, nil
}

// AddI32 returns an element-wise sum of two equal-length I32 Series.
func AddI32(a, b *Series) (*Series, error) {
	n, err := checkSameLen(a, b)
	if err != nil {
		return nil, err
	}
	out := &Series{name: a.name, dtype: a.dtype, len: n, valid: newValidity(n), i32: make([]int32, n)}
	kernel := func(start, end int) error {
		i := start
		for ; i+simdWidthI32 <= end; i += simdWidthI32 {
			for j := 0; j < simdWidthI32; j++ {
				k := i + j
				if a.valid.get(k) && b.valid.get(k) {
					out.i32[k] = a.i32[k] + b.i32[k]
					out.valid.set(k, true)
				}
			}
		}
		for ; i < end; i++ {
			if a.valid.get(i) && b.valid.get(i) {
				out.i32[i] = a.i32[i] + b.i32[i]
				out.valid.set(i, true)
			}
		}
		return nil
	}
	if err := dispatch(n, kernel); err != nil {
		return nil, err
	}
	return out, nil
}

// binOpI32 is a non-dividing I32 kernel (add/sub/mul).
type binOpI32 func(a, b int32) int32

// SubI32 returns an element-wise difference a-b over two equal-length I32
// Series.
func SubI32(a, b *Series) (*Series, error) {
	return binaryI32(a, b, func(x, y int32) int32 { return x - y })
}

// MulI32 returns an element-wise product over two equal-length I32 Series.
func MulI32(a, b *Series) (*Series, error) {
	return binaryI32(a, b, func(x, y int32) int32 { return x * y })
}

// DivI32 returns an element-wise quotient a/b over two equal-length I32
// Series. Division by zero produces a null at that position rather than
// an error or a panic, per §4.3.
func DivI32(a, b *Series) (*Series, error) {
	n, err := checkSameLen(a, b)
	if err != nil {
		return nil, err
	}
	out := &Series{name: a.name, dtype: a.dtype, len: n, valid: newValidity(n), i32: make([]int32, n)}
	kernel := func(start, end int) error {
		for i := start; i < end; i++ {
			if !a.valid.get(i) || !b.valid.get(i) || b.i32[i] == 0 {
				continue
			}
			out.i32[i] = a.i32[i] / b.i32[i]
			out.valid.set(i, true)
		}
		return nil
	}
	if err := dispatch(n, kernel); err != nil {
		return nil, err
	}
	return out, nil
}

func binaryI32(a, b *Series, op binOpI32) (*Series, error) {
	n, err := checkSameLen(a, b)
	if err != nil {
		return nil, err
	}
	out := &Series{name: a.name, dtype: a.dtype, len: n, valid: newValidity(n), i32: make([]int32, n)}
	kernel := func(start, end int) error {
		i := start
		for ; i+simdWidthI32 <= end; i += simdWidthI32 {
			for j := 0; j < simdWidthI32; j++ {
				k := i + j
				if a.valid.get(k) && b.valid.get(k) {
					out.i32[k] = op(a.i32[k], b.i32[k])
					out.valid.set(k, true)
				}
			}
		}
		for ; i < end; i++ {
			if a.valid.get(i) && b.valid.get(i) {
				out.i32[i] = op(a.i32[i], b.i32[i])
				out.valid.set(i, true)
			}
		}
		return nil
	}
	if err := dispatch(n, kernel); err != nil {
		return nil, err
	}
	return out, nil
}

func checkSameLen(a, b *Series) (int, error) {
	if err := requireLen(a, b.len); err != nil {
		return 0, err
	}
	if err := requireType(a, b.dtype); err != nil {
		return 0, err
	}
	return a.len, nil
}

// dispatch routes a chunk-processing kernel through the scalar/vector/
// parallel tiers per §5: scalar and vector tiers both run the same kernel
// inline over the full range (the kernel's loop stride does not depend on
// the tier), parallel fans out via internal/exec.
func dispatch(n int, kernel exec.ChunkFunc) error {
	cfg := config.Get()
	if pickTier(n) != tierParallel {
		return kernel(0, n)
	}
	cfg.Logger.Log(logging.DebugLevel, fmt.Sprintf("series: escalating %d-element kernel to parallel tier (%d workers)", n, cfg.MaxWorkers))
	return exec.Run(n, cfg.MaxWorkers, kernel)
}
