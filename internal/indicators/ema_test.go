package indicators

import (
	"math"
	"testing"
)

func TestEMAPaddedShape(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	period := 4

	out := EMAPadded(values, period)
	if len(out) != len(values) {
		t.Fatalf("len = %d, want %d", len(out), len(values))
	}
	for i := 0; i < period-1; i++ {
		if out[i] != nil {
			t.Fatalf("out[%d] = %v, want nil", i, *out[i])
		}
	}
	for i := period - 1; i < len(out); i++ {
		if out[i] == nil {
			t.Fatalf("out[%d] is nil, want value", i)
		}
	}
}

func TestEMAPaddedRecurrence(t *testing.T) {
	values := []float64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3.5}
	period := 3

	out := EMAPadded(values, period)

	// сид = простое среднее первых period значений
	seed := (values[0] + values[1] + values[2]) / 3
	if math.Abs(*out[period-1]-seed) > 1e-12 {
		t.Fatalf("seed = %v, want %v", *out[period-1], seed)
	}

	k := 2.0 / float64(period+1)
	for i := period; i < len(values); i++ {
		want := (values[i]-*out[i-1])*k + *out[i-1]
		if math.Abs(*out[i]-want) > 1e-9 {
			t.Fatalf("out[%d] = %v, want %v", i, *out[i], want)
		}
	}
}

func TestEMATooShort(t *testing.T) {
	if got := EMA([]float64{1, 2}, 3); got != nil {
		t.Fatalf("EMA on short input = %v, want nil", got)
	}
	out := EMAPadded([]float64{1, 2}, 3)
	for i, v := range out {
		if v != nil {
			t.Fatalf("padded[%d] = %v, want nil", i, *v)
		}
	}
}
