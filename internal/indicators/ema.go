package indicators

// EMA — компактная серия: сид = SMA первых period значений, дальше
// стандартная рекуррента. Длина результата len(values)-period+1.
func EMA(values []float64, period int) []float64 {
	if period <= 0 || len(values) < period {
		return nil
	}
	out := make([]float64, 0, len(values)-period+1)

	var sum float64
	for _, v := range values[:period] {
		sum += v
	}
	prev := sum / float64(period)
	out = append(out, prev)

	k := 2.0 / float64(period+1)
	for _, v := range values[period:] {
		prev = (v-prev)*k + prev
		out = append(out, prev)
	}
	return out
}

// EMAPadded — та же серия, выровненная по длине входа: первые period-1
// позиций nil, чтобы массив свечей сохранял исходную длину.
func EMAPadded(values []float64, period int) []*float64 {
	out := make([]*float64, len(values))
	compact := EMA(values, period)
	for i, v := range compact {
		v := v
		out[period-1+i] = &v
	}
	return out
}
