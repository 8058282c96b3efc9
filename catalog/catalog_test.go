package catalog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/signals/config"
	"github.com/rustyeddy/signals/indicators"
	"github.com/rustyeddy/signals/pricing"
	"github.com/rustyeddy/signals/stream"
)

const bars = `time,open,high,low,close,volume
2024-01-01T00:00:00Z,9,10,8,9,100
2024-01-01T01:00:00Z,9,11,9,10,150
2024-01-01T02:00:00Z,10,12,10,11,120
2024-01-01T03:00:00Z,11,9,7,8,300
`

func candles(t *testing.T) stream.Stream[pricing.Candle] {
	t.Helper()
	return pricing.NewCSVReader(strings.NewReader(bars)).Stream()
}

func TestBuildScalar(t *testing.T) {
	p, err := Build(config.IndicatorSpec{Name: "sma", Interval: 3})
	require.NoError(t, err)

	rows, err := stream.Collect(p(candles(t)))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "SMA(3)", rows[0].Indicator)
	assert.Equal(t, time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC), rows[0].Time)
	v, ok := rows[0].Value("value")
	require.True(t, ok)
	assert.Equal(t, "10", v.String())

	assert.Equal(t, "2024-01-01T03:00:00Z,SMA(3),value=9.66667", rows[1].Format(5))
}

func TestBuildCandleIndicator(t *testing.T) {
	p, err := Build(config.IndicatorSpec{Name: "TR"})
	require.NoError(t, err)

	rows, err := stream.Collect(p(candles(t)))
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "2024-01-01T03:00:00Z,TR,value=4", rows[3].Format(0))
}

func TestBuildMultiField(t *testing.T) {
	p, err := Build(config.IndicatorSpec{Name: "DMA", Short: 1, Long: 2})
	require.NoError(t, err)

	rows, err := stream.Collect(p(candles(t)))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2024-01-01T01:00:00Z,DMA(1,2),short=10,long=9.5", rows[0].Format(2))
}

func TestBuildDefaultsAndLabels(t *testing.T) {
	tests := []struct {
		spec  config.IndicatorSpec
		label string
	}{
		{config.IndicatorSpec{Name: "RSI"}, "RSI(14)"},
		{config.IndicatorSpec{Name: "RSI", Smoothing: "ema", Source: "typical"}, "RSI(14,EMA,typical)"},
		{config.IndicatorSpec{Name: "MACD"}, "MACD(12,26,9)"},
		{config.IndicatorSpec{Name: "BBANDS", Multiplier: "2.5"}, "BBANDS(20,2.5)"},
		{config.IndicatorSpec{Name: "ABANDS"}, "ABANDS(20,4)"},
		{config.IndicatorSpec{Name: "OBV"}, "OBV"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			e, p, err := resolve(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.label, p.label)
			_, err = e.build(p)
			assert.NoError(t, err)
		})
	}
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(config.IndicatorSpec{Name: "HMA"})
	assert.ErrorIs(t, err, ErrUnknownIndicator)

	_, err = Build(config.IndicatorSpec{Name: "SMA", Interval: -2})
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = Build(config.IndicatorSpec{Name: "MACD", Smoothing: "WSMA"})
	assert.ErrorIs(t, err, indicators.ErrInvalidParameter)
}

func TestEveryEntryBuilds(t *testing.T) {
	for _, e := range List() {
		t.Run(e.Name, func(t *testing.T) {
			p, err := Build(config.IndicatorSpec{Name: e.Name})
			require.NoError(t, err)
			_, err = stream.Collect(p(candles(t)))
			assert.NoError(t, err)
			assert.NotEmpty(t, e.Description)
			assert.Contains(t, []string{"price", "candle"}, e.Input)
		})
	}
}

func TestBuildAll(t *testing.T) {
	p, err := BuildAll([]config.IndicatorSpec{
		{Name: "TR"},
		{Name: "SMA", Interval: 2},
	})
	require.NoError(t, err)

	rows, err := stream.Collect(p(candles(t)))
	require.NoError(t, err)

	var got []string
	for _, r := range rows {
		got = append(got, r.Format(0))
	}
	assert.Equal(t, []string{
		"2024-01-01T00:00:00Z,TR,value=2",
		"2024-01-01T01:00:00Z,TR,value=2",
		"2024-01-01T01:00:00Z,SMA(2),value=9.5",
		"2024-01-01T02:00:00Z,TR,value=2",
		"2024-01-01T02:00:00Z,SMA(2),value=10.5",
		"2024-01-01T03:00:00Z,TR,value=4",
		"2024-01-01T03:00:00Z,SMA(2),value=9.5",
	}, got)

	_, err = BuildAll([]config.IndicatorSpec{{Name: "TR"}, {Name: "nope"}})
	assert.ErrorIs(t, err, ErrUnknownIndicator)
}

func TestTrack(t *testing.T) {
	tr, err := Track(config.IndicatorSpec{Name: "ATR", Interval: 3})
	require.NoError(t, err)
	assert.Equal(t, "ATR(3)", tr.Name())
	assert.Equal(t, 3, tr.Warmup())

	all, err := stream.Collect(candles(t))
	require.NoError(t, err)
	row := tr.Calculate(all)
	require.True(t, tr.Ready())
	assert.Equal(t, "2024-01-01T03:00:00Z,ATR(3),value=2.6667", row.Format(4))
}

func TestListIsSorted(t *testing.T) {
	list := List()
	require.NotEmpty(t, list)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].Name, list[i].Name)
	}
	e, ok := Lookup(" macd ")
	require.True(t, ok)
	assert.Equal(t, "short=12 long=26 signal=9", e.Params)
}
