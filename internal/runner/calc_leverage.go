package runner

import (
	"math"

	"gentrader/internal/helper"
	"gentrader/internal/indicators"
	"gentrader/internal/models"
)

// calcLeverage — волатильностный сайзинг плеча: ATR в процентах от
// последнего close, rawLeverage = riskRatio / (atrPct/100), кап по
// maxLeverage. marginRatio = leverage / ceil(leverage) — доля маржи,
// согласованная с целочисленным плечом, которое реально уйдёт на биржу.
// При нулевом/несчитаемом ATR откатываемся на максимальное плечо.
func calcLeverage(candles []models.Candle, atrPeriod int, riskRatio, maxLeverage float64) (leverage, marginRatio float64) {
	var atr float64
	if series := indicators.ATR(candles, atrPeriod); len(series) > 0 {
		atr = series[len(series)-1]
	}

	var lastClose float64
	if len(candles) > 0 {
		lastClose = candles[len(candles)-1].Close
	}

	var atrPct float64
	if lastClose > 0 {
		atrPct = atr / lastClose * 100
	}

	raw := maxLeverage
	if atrPct > 0 {
		raw = riskRatio / (atrPct / 100)
	}

	leverage = helper.Round2(math.Min(raw, maxLeverage))

	if intLev := math.Ceil(leverage); intLev > 0 {
		marginRatio = helper.Round4(leverage / intLev)
	}
	return leverage, marginRatio
}
