package indicators

import (
	"math"

	"gentrader/internal/models"
)

// HeikinAshi — строго последовательное HA-преобразование: каждый бар
// зависит только от своего OHLC и HA-бара i-1. Бар 0 сеется из
// собственных open/close/high/low.
func HeikinAshi(candles []models.Candle) []models.EnrichedCandle {
	out := make([]models.EnrichedCandle, len(candles))
	for i, c := range candles {
		haClose := (c.Open + c.High + c.Low + c.Close) / 4

		var haOpen, haHigh, haLow float64
		if i == 0 {
			haOpen = (c.Open + c.Close) / 2
			haHigh = c.High
			haLow = c.Low
		} else {
			prev := out[i-1]
			haOpen = (prev.HAOpen + prev.HAClose) / 2
			haHigh = math.Max(c.High, math.Max(haOpen, haClose))
			haLow = math.Min(c.Low, math.Min(haOpen, haClose))
		}

		out[i] = models.EnrichedCandle{
			Candle:  c,
			HAOpen:  haOpen,
			HAHigh:  haHigh,
			HALow:   haLow,
			HAClose: haClose,
		}
	}
	return out
}
