package indicators

// RSI — компактная серия по сглаживанию Уайлдера. Первое значение
// считается по первым period приращениям, длина результата
// len(values)-period. При нулевых потерях RSI = 100.
func RSI(values []float64, period int) []float64 {
	if period <= 0 || len(values) <= period {
		return nil
	}

	var gains, losses float64
	for i := 1; i <= period; i++ {
		d := values[i] - values[i-1]
		if d > 0 {
			gains += d
		} else {
			losses -= d
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	value := func(g, l float64) float64 {
		if l == 0 {
			return 100
		}
		rs := g / l
		return 100 - 100/(1+rs)
	}

	out := make([]float64, 0, len(values)-period)
	out = append(out, value(avgGain, avgLoss))

	n := float64(period)
	for i := period + 1; i < len(values); i++ {
		d := values[i] - values[i-1]
		var gain, loss float64
		if d > 0 {
			gain = d
		} else {
			loss = -d
		}
		avgGain = (avgGain*(n-1) + gain) / n
		avgLoss = (avgLoss*(n-1) + loss) / n
		out = append(out, value(avgGain, avgLoss))
	}
	return out
}
