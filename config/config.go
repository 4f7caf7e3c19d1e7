// Package config holds the process-wide execution policy knobs the engine
// consults when deciding whether a kernel runs scalar, vectorized, or
// parallel. It follows the teacher's NodeOptions pattern (see go-sif's
// cluster package, where a NodeOptions struct carries defaults that
// FillDefaults applies post-construction): a struct of options plus a
// package-level default instance, swappable wholesale via Set for tests
// that need deterministic single-threaded behavior.
package config

import (
	"runtime"

	"github.com/Conqxeror/veloxx/logging"
)

// Config holds the thresholds and feature flags that govern the engine's
// hybrid scalar/vector/parallel execution policy, per §5.
type Config struct {
	// SIMDThreshold is the minimum element count at which a Series kernel
	// is classed as the vector tier rather than the scalar tier. Both tiers
	// run the same lane-width blocked loop inline, so this threshold does
	// not change which loop runs; only ParThreshold changes execution.
	SIMDThreshold int
	// ParThreshold is the minimum element count before a kernel further
	// escalates to the chunked worker-pool parallel strategy.
	ParThreshold int
	// MaxWorkers caps the number of goroutines the worker pool spawns for
	// a single parallel kernel invocation.
	MaxWorkers int
	// StableFloatSum selects pairwise (Kahan-style) float summation over
	// naive left-to-right accumulation, trading speed for reduced rounding
	// drift on large Series.
	StableFloatSum bool
	// StableGroupBy makes GroupBy emit groups in first-occurrence key
	// order. When false, GroupBy emits groups in ascending key-hash order
	// instead; grouping itself is single-threaded either way.
	StableGroupBy bool
	// NullSortsLast controls DataFrame.Sort's placement of nulls. The
	// spec's default is true (nulls last in both ascending and descending
	// order); set false only for callers that need nulls-first semantics.
	NullSortsLast bool
	// Logger receives diagnostics about execution-tier decisions (e.g. a
	// kernel escalating to the parallel strategy). Defaults to
	// logging.NopLogger{}.
	Logger logging.Logger
}

// Default returns the spec-mandated default Config: SIMD threshold 1024,
// parallel threshold 131072, worker count bound to GOMAXPROCS, stable float
// summation and stable group-by both on, and nulls sorting last.
func Default() Config {
	return Config{
		SIMDThreshold:  1024,
		ParThreshold:   131072,
		MaxWorkers:     runtime.GOMAXPROCS(0),
		StableFloatSum: true,
		StableGroupBy:  true,
		NullSortsLast:  true,
		Logger:         logging.NopLogger{},
	}
}

var current = Default()

// Get returns the active process-wide Config.
func Get() Config { return current }

// Set replaces the active process-wide Config wholesale. Tests that need a
// deterministic scalar-only run call Set with inflated thresholds rather
// than mutating fields of the live Config piecemeal.
func Set(c Config) { current = c }
