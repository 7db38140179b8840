package indicators

import (
	"math"
	"testing"

	"gentrader/internal/models"
)

func testCandles() []models.Candle {
	return []models.Candle{
		{Timestamp: 1, Open: 10, High: 12, Low: 9, Close: 11, Volume: 100},
		{Timestamp: 2, Open: 11, High: 14, Low: 10, Close: 13, Volume: 120},
		{Timestamp: 3, Open: 13, High: 13.5, Low: 11, Close: 11.5, Volume: 90},
		{Timestamp: 4, Open: 11.5, High: 12, Low: 10, Close: 10.5, Volume: 80},
	}
}

func TestHeikinAshiSeedBar(t *testing.T) {
	cs := testCandles()
	ha := HeikinAshi(cs)

	c := cs[0]
	wantClose := (c.Open + c.High + c.Low + c.Close) / 4
	wantOpen := (c.Open + c.Close) / 2

	if ha[0].HAClose != wantClose {
		t.Fatalf("ha_close[0] = %v, want %v", ha[0].HAClose, wantClose)
	}
	if ha[0].HAOpen != wantOpen {
		t.Fatalf("ha_open[0] = %v, want %v", ha[0].HAOpen, wantOpen)
	}
	if ha[0].HAHigh != c.High || ha[0].HALow != c.Low {
		t.Fatalf("seed high/low = %v/%v, want %v/%v", ha[0].HAHigh, ha[0].HALow, c.High, c.Low)
	}
}

func TestHeikinAshiRecurrence(t *testing.T) {
	cs := testCandles()
	ha := HeikinAshi(cs)

	for i := 1; i < len(ha); i++ {
		c := cs[i]
		prev := ha[i-1]

		wantClose := (c.Open + c.High + c.Low + c.Close) / 4
		wantOpen := (prev.HAOpen + prev.HAClose) / 2
		wantHigh := math.Max(c.High, math.Max(wantOpen, wantClose))
		wantLow := math.Min(c.Low, math.Min(wantOpen, wantClose))

		got := ha[i]
		if got.HAClose != wantClose || got.HAOpen != wantOpen ||
			got.HAHigh != wantHigh || got.HALow != wantLow {
			t.Fatalf("bar %d: got %+v, want open=%v high=%v low=%v close=%v",
				i, got, wantOpen, wantHigh, wantLow, wantClose)
		}
	}
}

func TestHeikinAshiDeterministic(t *testing.T) {
	cs := testCandles()
	a := HeikinAshi(cs)
	b := HeikinAshi(cs)

	for i := range a {
		if a[i].HAOpen != b[i].HAOpen || a[i].HAHigh != b[i].HAHigh ||
			a[i].HALow != b[i].HALow || a[i].HAClose != b[i].HAClose {
			t.Fatalf("run mismatch at bar %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}
