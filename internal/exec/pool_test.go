package exec

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRunInline(t *testing.T) {
	var calls int32
	err := Run(10, 1, func(start, end int) error {
		atomic.AddInt32(&calls, 1)
		require.Equal(t, 0, start)
		require.Equal(t, 10, end)
		return nil
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, calls)
}

func TestRunParallelCoversAllElements(t *testing.T) {
	n := 1000
	var seen int64
	err := Run(n, 8, func(start, end int) error {
		atomic.AddInt64(&seen, int64(end-start))
		return nil
	})
	require.NoError(t, err)
	require.EqualValues(t, n, seen)
}

func TestRunPropagatesFirstError(t *testing.T) {
	boom := errors.New("boom")
	err := Run(1000, 8, func(start, end int) error {
		if start == 0 {
			return boom
		}
		return nil
	})
	require.Error(t, err)
}

func TestRunZeroElements(t *testing.T) {
	err := Run(0, 8, func(start, end int) error {
		t.Fatal("fn should not be called for n<=0")
		return nil
	})
	require.NoError(t, err)
}
