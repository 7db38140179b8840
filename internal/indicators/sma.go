package indicators

// SMA — компактная серия скользящего среднего, длина len(values)-period+1.
// Сумма окна пересчитывается заново: серии здесь короткие, дрейф
// накопленной суммы важнее экономии на сложениях.
func SMA(values []float64, period int) []float64 {
	if period <= 0 || len(values) < period {
		return nil
	}
	out := make([]float64, 0, len(values)-period+1)
	for i := period - 1; i < len(values); i++ {
		var sum float64
		for _, v := range values[i-period+1 : i+1] {
			sum += v
		}
		out = append(out, sum/float64(period))
	}
	return out
}
