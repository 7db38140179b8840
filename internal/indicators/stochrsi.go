package indicators

const stochEps = 1e-9

// StochRSIParams — периоды стохастика поверх RSI.
type StochRSIParams struct {
	RSIPeriod   int
	StochPeriod int
	KPeriod     int
	DPeriod     int
}

// Stoch — min-max нормализация серии по скользящему окну period.
// Длина результата len(values)-period+1. Нулевой размах заменяется
// на stochEps, чтобы не делить на ноль.
func Stoch(values []float64, period int) []float64 {
	if period <= 0 || len(values) < period {
		return nil
	}
	out := make([]float64, 0, len(values)-period+1)
	for i := period - 1; i < len(values); i++ {
		window := values[i-period+1 : i+1]
		lo, hi := window[0], window[0]
		for _, v := range window[1:] {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		denom := hi - lo
		if denom == 0 {
			denom = stochEps
		}
		out = append(out, (values[i]-lo)/denom)
	}
	return out
}

// StochRSI — %K/%D: RSI → стохастик-нормализация → два SMA-сглаживания.
// Серии компактные; выравнивание по длине входа делает пайплайн.
func StochRSI(values []float64, p StochRSIParams) (k, d []float64) {
	rsi := RSI(values, p.RSIPeriod)
	raw := Stoch(rsi, p.StochPeriod)
	k = SMA(raw, p.KPeriod)
	d = SMA(k, p.DPeriod)
	return k, d
}
