package strategy

import (
	"gentrader/internal/indicators"
	"gentrader/internal/models"
)

// Параметры StochRSI генератора фиксированные и сознательно не совпадают
// с пайплайном (14/14/3/3): генератор всегда пересчитывает от сырых close.
const (
	rsiPeriod    = 19
	stochPeriod  = 19
	smoothK      = 3
	smoothD      = 4
	oversoldK    = 0.2
	overboughtK  = 0.8
	minWindowLen = rsiPeriod + stochPeriod + smoothD
)

// Params — конфигурируемая часть генератора: трендовая EMA и фиксированные
// проценты TP/SL, которые уходят в сигнал как есть.
type Params struct {
	EMAPeriod int
	TPPct     float64
	SLPct     float64
}

// Generate — чистая функция: окно свечей -> сигнал или nil.
//
// LONG: цена выше трендовой EMA, %K пересёк %D снизу вверх и %K в зоне
// перепроданности. SHORT — зеркально.
func Generate(candles []models.Candle, p Params) *models.TradeSignal {
	if len(candles) < minWindowLen {
		return nil
	}

	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}

	emaValues := indicators.EMA(closes, p.EMAPeriod)
	if len(emaValues) == 0 {
		return nil
	}
	emaLast := emaValues[len(emaValues)-1]
	price := closes[len(closes)-1]

	rsiValues := indicators.RSI(closes, rsiPeriod)
	if len(rsiValues) < stochPeriod {
		return nil
	}

	stochValues := indicators.Stoch(rsiValues, stochPeriod)
	if len(stochValues) < smoothK+smoothD {
		return nil
	}

	kValues := indicators.SMA(stochValues, smoothK)
	if len(kValues) < smoothD+1 {
		return nil
	}
	dValues := indicators.SMA(kValues, smoothD)
	if len(dValues) < 2 {
		return nil
	}

	kLast := kValues[len(kValues)-1]
	kPrev := kValues[len(kValues)-2]
	dLast := dValues[len(dValues)-1]
	dPrev := dValues[len(dValues)-2]

	crossedUp := kPrev < dPrev && kLast > dLast
	crossedDown := kPrev > dPrev && kLast < dLast

	if price > emaLast && crossedUp && kLast < oversoldK {
		return &models.TradeSignal{
			Side:       models.SideLong,
			EntryPrice: price,
			TPPct:      p.TPPct,
			SLPct:      p.SLPct,
		}
	}
	if price < emaLast && crossedDown && kLast > overboughtK {
		return &models.TradeSignal{
			Side:       models.SideShort,
			EntryPrice: price,
			TPPct:      p.TPPct,
			SLPct:      p.SLPct,
		}
	}
	return nil
}
