package indicators

import "gentrader/internal/models"

// Параметры пайплайна фиксированные. Генератор сигналов считает свой
// StochRSI (19/19/3/4) независимо и по сырым close — это два разных
// расчёта, см. internal/strategy.
const (
	pipelineEMAPeriod = 200

	pipelineRSIPeriod   = 14
	pipelineStochPeriod = 14
	pipelineKPeriod     = 3
	pipelineDPeriod     = 3
)

// Enrich — индикаторный пайплайн: Heikin-Ashi, трендовая EMA200 и
// StochRSI поверх HA close. Длина результата равна длине входа,
// ранним барам достаются nil-индикаторы.
func Enrich(candles []models.Candle) []models.EnrichedCandle {
	out := HeikinAshi(candles)

	haCloses := make([]float64, len(out))
	for i, c := range out {
		haCloses[i] = c.HAClose
	}

	ema := EMAPadded(haCloses, pipelineEMAPeriod)
	for i := range out {
		out[i].EMA200 = ema[i]
	}

	k, d := StochRSI(haCloses, StochRSIParams{
		RSIPeriod:   pipelineRSIPeriod,
		StochPeriod: pipelineStochPeriod,
		KPeriod:     pipelineKPeriod,
		DPeriod:     pipelineDPeriod,
	})
	// компактные серии выравниваем по хвосту входа
	for j, v := range k {
		v := v
		out[len(out)-len(k)+j].StochRSIK = &v
	}
	for j, v := range d {
		v := v
		out[len(out)-len(d)+j].StochRSID = &v
	}
	return out
}
