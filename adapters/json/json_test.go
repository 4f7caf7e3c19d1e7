package json

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadInfersTypesAcrossLines(t *testing.T) {
	data := `{"id":1,"name":"a"}` + "\n" + `{"id":2,"name":"b"}` + "\n"
	df, err := Read(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 2, df.NumRows())
	idCol, err := df.Column("id")
	require.NoError(t, err)
	v, ok := idCol.GetI32(0)
	require.True(t, ok)
	require.Equal(t, int32(1), v)
}

func TestReadTreatsMissingKeyAsNull(t *testing.T) {
	data := `{"id":1,"name":"a"}` + "\n" + `{"id":2}` + "\n"
	df, err := Read(strings.NewReader(data))
	require.NoError(t, err)
	nameCol, err := df.Column("name")
	require.NoError(t, err)
	require.True(t, nameCol.At(1).IsNull())
}

func TestWriteOmitsNullKeys(t *testing.T) {
	data := `{"id":1,"name":"a"}` + "\n" + `{"id":2}` + "\n"
	df, err := Read(strings.NewReader(data))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, df))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.NotContains(t, lines[1], "name")
}
