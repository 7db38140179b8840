package runner

import (
	"context"
	"errors"
	"testing"

	"gentrader/internal/models"
)

func flatCandle(ts int64) models.Candle {
	return models.Candle{Timestamp: ts, Open: 100, High: 101, Low: 99, Close: 100, Volume: 1}
}

func TestPushCandleAppendAndTrim(t *testing.T) {
	cfg := testConfig()
	r := newTestRunner(cfg, &fakeMarket{}, &fakeExec{}, &fakeStore{}, &fakeNotifier{})

	keep := cfg.WindowKeep()
	for i := 0; i < keep+10; i++ {
		r.pushCandle(flatCandle(int64(i) * 900_000))
	}

	if len(r.candles) != keep {
		t.Fatalf("window len = %d, want %d", len(r.candles), keep)
	}
	// хвост — самые свежие бары
	want := int64(keep+9) * 900_000
	if last := r.candles[len(r.candles)-1].Timestamp; last != want {
		t.Fatalf("last ts = %d, want %d", last, want)
	}
	// голова сдвинулась на 10 баров
	if first := r.candles[0].Timestamp; first != 10*900_000 {
		t.Fatalf("first ts = %d, want %d", first, int64(10*900_000))
	}
}

func TestPushCandleReplacesSameTimestamp(t *testing.T) {
	r := newTestRunner(testConfig(), &fakeMarket{}, &fakeExec{}, &fakeStore{}, &fakeNotifier{})

	r.pushCandle(flatCandle(900_000))
	updated := flatCandle(900_000)
	updated.Close = 102
	r.pushCandle(updated)

	if len(r.candles) != 1 {
		t.Fatalf("window len = %d, want 1", len(r.candles))
	}
	if r.candles[0].Close != 102 {
		t.Fatalf("bar not replaced: close = %v", r.candles[0].Close)
	}
}

func TestPushCandleDropsOutOfOrder(t *testing.T) {
	r := newTestRunner(testConfig(), &fakeMarket{}, &fakeExec{}, &fakeStore{}, &fakeNotifier{})

	r.pushCandle(flatCandle(1_800_000))
	r.pushCandle(flatCandle(900_000))

	if len(r.candles) != 1 || r.candles[0].Timestamp != 1_800_000 {
		t.Fatalf("out-of-order bar not dropped: %+v", r.candles)
	}
}

func TestBootstrapLoadsHistory(t *testing.T) {
	cfg := testConfig()
	market := &fakeMarket{}
	for i := 0; i < cfg.HistoryLimit(); i++ {
		market.historical = append(market.historical, flatCandle(int64(i)*900_000))
	}
	r := newTestRunner(cfg, market, &fakeExec{}, &fakeStore{}, &fakeNotifier{})

	if err := r.Bootstrap(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(r.candles) != cfg.HistoryLimit() {
		t.Fatalf("window = %d candles, want %d", len(r.candles), cfg.HistoryLimit())
	}
	if !r.state.Ready() {
		t.Fatal("runner not marked ready after bootstrap")
	}
}

func TestBootstrapFailsOnEmptyHistory(t *testing.T) {
	r := newTestRunner(testConfig(), &fakeMarket{}, &fakeExec{}, &fakeStore{}, &fakeNotifier{})
	if err := r.Bootstrap(context.Background()); err == nil {
		t.Fatal("expected error on empty history")
	}
	if r.state.Ready() {
		t.Fatal("runner must not be ready after failed bootstrap")
	}
}

func TestBootstrapFailsOnMarketError(t *testing.T) {
	market := &fakeMarket{err: errors.New("exchange down")}
	r := newTestRunner(testConfig(), market, &fakeExec{}, &fakeStore{}, &fakeNotifier{})
	if err := r.Bootstrap(context.Background()); err == nil {
		t.Fatal("expected error when historical fetch fails")
	}
}

func TestOpenPositionWiresBracket(t *testing.T) {
	cfg := testConfig()
	market := &fakeMarket{balance: 1000}
	exec := &fakeExec{}
	store := &fakeStore{}
	n := &fakeNotifier{}
	r := newTestRunner(cfg, market, exec, store, n)
	r.candles = constRangeCandles(30)

	sig := &models.TradeSignal{Side: models.SideLong, EntryPrice: 100, TPPct: cfg.Trading.TPPct, SLPct: cfg.Trading.SLPct}
	if err := r.openPosition(context.Background(), sig); err != nil {
		t.Fatal(err)
	}

	if len(exec.opened) != 1 {
		t.Fatalf("executor got %d requests, want 1", len(exec.opened))
	}
	req := exec.opened[0]
	// qty = 1000 * 0.5 / 100
	if req.Qty != 5 {
		t.Fatalf("qty = %v, want 5", req.Qty)
	}
	// atrPct=2%, raw lev 0.5/0.02=25 -> кап по max_leverage
	if req.Leverage != 20 {
		t.Fatalf("leverage = %d, want 20", req.Leverage)
	}

	if len(store.opens) != 1 {
		t.Fatalf("store got %d opens, want 1", len(store.opens))
	}
	if n.opens != 1 {
		t.Fatalf("notifier got %d opens, want 1", n.opens)
	}

	// все три ордера брекета ведут к одной сделке
	if r.book.Len() != 1 || r.book.OrderCount() != 3 {
		t.Fatalf("book = %d/%d, want 1 trade / 3 orders", r.book.Len(), r.book.OrderCount())
	}
	if !r.guard.allows(cfg.Trading.MaxDailyTrades) {
		t.Fatal("guard must still allow under the daily limit")
	}
	if r.guard.count != 1 {
		t.Fatalf("daily count = %d, want 1", r.guard.count)
	}
}

func TestOpenPositionExecutorFailureLeavesNoState(t *testing.T) {
	market := &fakeMarket{balance: 1000}
	exec := &fakeExec{openErr: errors.New("rejected")}
	store := &fakeStore{}
	r := newTestRunner(testConfig(), market, exec, store, &fakeNotifier{})
	r.candles = constRangeCandles(30)

	sig := &models.TradeSignal{Side: models.SideShort, EntryPrice: 100, TPPct: 0.01, SLPct: 0.01}
	if err := r.openPosition(context.Background(), sig); err == nil {
		t.Fatal("expected executor error to propagate")
	}
	if r.book.Len() != 0 || len(store.opens) != 0 || r.guard.count != 0 {
		t.Fatal("failed open must not register trade state")
	}
}

func TestTickEmergencyOnError(t *testing.T) {
	market := &fakeMarket{err: errors.New("feed down")}
	n := &fakeNotifier{}
	r := newTestRunner(testConfig(), market, &fakeExec{}, &fakeStore{}, n)
	r.candles = constRangeCandles(30)

	r.runTick(context.Background())

	if len(n.emergencies) != 1 {
		t.Fatalf("got %d emergency alerts, want 1", len(n.emergencies))
	}
	if r.state.LastTick().IsZero() {
		t.Fatal("tick timestamp not touched")
	}
}
