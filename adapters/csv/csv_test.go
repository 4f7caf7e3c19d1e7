package csv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadInfersColumnTypes(t *testing.T) {
	data := "id,name,score,active\n1,alice,9.5,true\n2,bob,NA,false\n"
	df, err := Read(strings.NewReader(data), Config{HasHeader: true})
	require.NoError(t, err)
	require.Equal(t, 4, df.NumCols())
	require.Equal(t, 2, df.NumRows())

	score, err := df.Column("score")
	require.NoError(t, err)
	require.True(t, score.At(1).IsNull())
}

func TestWriteRoundTrips(t *testing.T) {
	data := "a,b\n1,x\n2,y\n"
	df, err := Read(strings.NewReader(data), Config{HasHeader: true})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, df))
	require.Contains(t, buf.String(), "a,b")
}
