package strategy

import (
	"testing"

	"gentrader/internal/models"
)

// Осциллирующее снижение с мелким отскоком в конце: %K пересекает %D
// снизу вверх в зоне перепроданности, а цена успевает выйти выше
// короткой трендовой EMA. Зеркало (200 - close) даёт SHORT.
var longCloses = []float64{
	100.000000000000, 100.988435374475, 101.370899459977, 100.826418733298, 99.469976300312,
	97.798433544621, 96.456848455173, 95.935094774751, 96.337466724255, 97.333627800969,
	98.313973197438, 98.676336467754, 98.109197816177, 96.738196724699, 95.067041741496,
	93.740608480057, 93.241644541697, 93.663725775526, 94.667246094442, 95.639139524393,
	95.981214711390, 95.391493662286, 94.006236713491, 92.335857165632, 91.024865932837,
	90.548747989064, 90.990334355187, 92.000845375614, 92.963927240136, 93.285532811672,
	92.673311277072, 91.274105302655, 89.604888633757, 88.309625264361, 87.856403108512,
	88.317284940270, 89.334416145051, 90.288329336504, 90.589289547756, 89.954655801191,
	88.541811576616, 86.874144901519, 85.594890783580, 85.164607735732, 85.644569911109,
	86.667948911383, 87.612338914361, 87.892483857510, 87.235532509053, 85.809364665688,
	84.143634661008, 82.880666656333, 82.980666656333, 83.180666656333, 83.480666656333,
}

func candlesFromCloses(closes []float64) []models.Candle {
	cs := make([]models.Candle, len(closes))
	for i, c := range closes {
		cs[i] = models.Candle{
			Timestamp: int64(i) * 900_000,
			Open:      c,
			High:      c + 0.5,
			Low:       c - 0.5,
			Close:     c,
			Volume:    1,
		}
	}
	return cs
}

func testParams() Params {
	return Params{EMAPeriod: 3, TPPct: 0.0785, SLPct: 0.0257}
}

func TestGenerateTooShortWindow(t *testing.T) {
	closes := longCloses[:minWindowLen-1]
	if sig := Generate(candlesFromCloses(closes), testParams()); sig != nil {
		t.Fatalf("short window produced signal %+v", sig)
	}
}

func TestGenerateLong(t *testing.T) {
	p := testParams()
	sig := Generate(candlesFromCloses(longCloses), p)
	if sig == nil {
		t.Fatal("expected LONG signal, got nil")
	}
	if sig.Side != models.SideLong {
		t.Fatalf("side = %s, want LONG", sig.Side)
	}
	if want := longCloses[len(longCloses)-1]; sig.EntryPrice != want {
		t.Fatalf("entry = %v, want latest close %v", sig.EntryPrice, want)
	}
	if sig.TPPct != p.TPPct || sig.SLPct != p.SLPct {
		t.Fatalf("tp/sl = %v/%v, want %v/%v from params", sig.TPPct, sig.SLPct, p.TPPct, p.SLPct)
	}
}

func TestGenerateShortMirror(t *testing.T) {
	mirrored := make([]float64, len(longCloses))
	for i, c := range longCloses {
		mirrored[i] = 200 - c
	}
	sig := Generate(candlesFromCloses(mirrored), testParams())
	if sig == nil {
		t.Fatal("expected SHORT signal, got nil")
	}
	if sig.Side != models.SideShort {
		t.Fatalf("side = %s, want SHORT", sig.Side)
	}
	if want := mirrored[len(mirrored)-1]; sig.EntryPrice != want {
		t.Fatalf("entry = %v, want latest close %v", sig.EntryPrice, want)
	}
}

func TestGenerateNoSignalOnFlatSeries(t *testing.T) {
	flat := make([]float64, len(longCloses))
	for i := range flat {
		flat[i] = 100
	}
	if sig := Generate(candlesFromCloses(flat), testParams()); sig != nil {
		t.Fatalf("flat series produced signal %+v", sig)
	}
}
