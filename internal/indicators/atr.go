package indicators

import (
	"math"

	"gentrader/internal/models"
)

// ATR — Average True Range по Уайлдеру. TR считается с бара 1 (нужен
// prev close), сид = среднее первых period TR, длина результата
// len(candles)-period.
func ATR(candles []models.Candle, period int) []float64 {
	if period <= 0 || len(candles) <= period {
		return nil
	}

	trs := make([]float64, 0, len(candles)-1)
	for i := 1; i < len(candles); i++ {
		c := candles[i]
		prevClose := candles[i-1].Close
		tr := math.Max(c.High-c.Low,
			math.Max(math.Abs(c.High-prevClose), math.Abs(c.Low-prevClose)))
		trs = append(trs, tr)
	}

	var sum float64
	for _, tr := range trs[:period] {
		sum += tr
	}
	prev := sum / float64(period)

	out := make([]float64, 0, len(trs)-period+1)
	out = append(out, prev)

	n := float64(period)
	for _, tr := range trs[period:] {
		prev = (prev*(n-1) + tr) / n
		out = append(out, prev)
	}
	return out
}
