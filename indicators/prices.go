package indicators

import (
	"github.com/rustyeddy/signals/num"
	"github.com/rustyeddy/signals/pricing"
	"github.com/rustyeddy/signals/stream"
)

// Prices parses decimal literals. A malformed literal fails the stream.
func Prices() stream.Operator[string, num.Decimal] {
	return stream.TryMap(num.Parse)
}

// Closes extracts candle closes.
func Closes() stream.Operator[pricing.Candle, num.Decimal] {
	return stream.Map(func(c pricing.Candle) num.Decimal { return c.Close })
}

// MedianPrices maps candles to (High+Low)/2.
func MedianPrices() stream.Operator[pricing.Candle, num.Decimal] {
	return stream.Map(pricing.Candle.Median)
}

// TypicalPrices maps candles to (High+Low+Close)/3.
func TypicalPrices() stream.Operator[pricing.Candle, num.Decimal] {
	return stream.Map(pricing.Candle.Typical)
}
