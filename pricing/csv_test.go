package pricing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/signals/stream"
)

const sampleCSV = `time,open,high,low,close,volume
2024-01-01T00:00:00Z,9,10,8,9,100

2024-01-01T01:00:00Z,9,11,9,10,150
1704074400,10,12,10,11
`

func TestCSVReader(t *testing.T) {
	r := NewCSVReader(strings.NewReader(sampleCSV))

	c, ok, err := r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), c.Time)
	assert.Equal(t, "10", c.High.String())
	assert.Equal(t, "8", c.Low.String())
	assert.Equal(t, "9", c.Close.String())
	assert.Equal(t, "100", c.Volume.String())

	c, ok, err = r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "150", c.Volume.String())

	c, ok, err = r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC), c.Time)
	assert.True(t, c.Volume.IsZero())

	_, ok, err = r.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCSVReaderMalformedRow(t *testing.T) {
	r := NewCSVReader(strings.NewReader("2024-01-01T00:00:00Z,1,2,abc,1\n"))
	_, _, err := r.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
	assert.Contains(t, err.Error(), "bad low")

	r = NewCSVReader(strings.NewReader("time,open,high,low,close\n\n\n2024-01-01T00:00:00Z,1,2,x,1\n"))
	_, _, err = r.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 4:")

	r = NewCSVReader(strings.NewReader("2024-01-01T00:00:00Z,1,2\n"))
	_, _, err = r.Next()
	assert.Error(t, err)
}

func TestCSVStream(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bars.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	r, err := OpenCSV(path)
	require.NoError(t, err)
	defer r.Close()

	candles, err := stream.Collect(r.Stream())
	require.NoError(t, err)
	assert.Len(t, candles, 3)
}

func TestCSVStreamFailsOnMalformedRow(t *testing.T) {
	r := NewCSVReader(strings.NewReader("time,open,high,low,close\n1,1,2,1,1\nx,1,2,1,1\n"))
	candles, err := stream.Collect(r.Stream())
	assert.Error(t, err)
	assert.Len(t, candles, 1)
}

func TestCandleDerivedPrices(t *testing.T) {
	c := HLC("12", "9", "9")
	assert.Equal(t, "10.5", c.Median().String())
	assert.Equal(t, "10", c.Typical().String())
	assert.Equal(t, "3", c.Range().String())
}
