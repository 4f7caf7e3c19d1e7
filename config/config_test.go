package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesSpec(t *testing.T) {
	c := Default()
	require.Equal(t, 1024, c.SIMDThreshold)
	require.Equal(t, 131072, c.ParThreshold)
	require.True(t, c.StableFloatSum)
	require.True(t, c.StableGroupBy)
	require.True(t, c.NullSortsLast)
	require.NotNil(t, c.Logger)
}

func TestSetReplacesActiveConfig(t *testing.T) {
	original := Get()
	defer Set(original)

	custom := Default()
	custom.SIMDThreshold = 4
	Set(custom)
	require.Equal(t, 4, Get().SIMDThreshold)
}
