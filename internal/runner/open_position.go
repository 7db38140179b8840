package runner

import (
	"context"
	"fmt"
	"math"
	"time"

	"gentrader/internal/models"
	"gentrader/pkg/logger"
)

// openPosition — переход OPENING -> OPEN: сайзинг, брекет из трёх
// ордеров, запись входа и регистрация маппингов orderId -> tradeId.
func (r *Runner) openPosition(ctx context.Context, sig *models.TradeSignal) error {
	t := r.cfg.Trading

	r.n.Sendf("🔔 Сигнал %s %s\nвход: %.4f\nTP: %.2f%%  SL: %.2f%%",
		t.Symbol, sig.Side, sig.EntryPrice, sig.TPPct*100, sig.SLPct*100)

	leverage, marginRatio := calcLeverage(r.candles, t.ATRPeriod, t.UseMarginRatio, t.MaxLeverage)
	intLeverage := int(math.Min(math.Ceil(leverage), t.MaxLeverage))
	if intLeverage < 1 {
		intLeverage = 1
	}

	balance, err := r.market.FetchAccountBalance(ctx)
	if err != nil {
		return fmt.Errorf("fetch balance: %w", err)
	}

	// сайзинг от всего баланса на каждый вход; при нескольких
	// одновременно открытых сделках маржа переиспользуется — поведение
	// исходного бота сохранено, см. DESIGN.md
	qty := balance * t.UseMarginRatio / sig.EntryPrice
	if qty <= 0 {
		return fmt.Errorf("position size <= 0 (balance=%.4f entry=%.4f)", balance, sig.EntryPrice)
	}

	bracket, err := r.exec.OpenPosition(ctx, models.OpenRequest{
		Symbol:     t.Symbol,
		Side:       sig.Side,
		Qty:        qty,
		EntryPrice: sig.EntryPrice,
		Leverage:   intLeverage,
		TPPct:      sig.TPPct,
		SLPct:      sig.SLPct,
	})
	if err != nil {
		return fmt.Errorf("open position: %w", err)
	}

	open := &models.TradeOpen{
		Timestamp:  time.Now().UTC(),
		Symbol:     t.Symbol,
		Side:       sig.Side,
		EntryPrice: sig.EntryPrice,
		Qty:        qty,
		Leverage:   intLeverage,
		TPPct:      sig.TPPct,
		SLPct:      sig.SLPct,
	}
	tradeID, err := r.store.LogTradeOpen(ctx, open)
	if err != nil {
		return fmt.Errorf("log trade open: %w", err)
	}

	r.n.TradeOpen(open)

	r.book.Register(&openTrade{
		TradeID:      tradeID,
		Symbol:       t.Symbol,
		Side:         sig.Side,
		EntryPrice:   sig.EntryPrice,
		Qty:          qty,
		Leverage:     intLeverage,
		OpenedAt:     time.Now().UnixMilli(),
		EntryOrderID: bracket.Entry.ID,
		TPOrderID:    bracket.TP.ID,
		SLOrderID:    bracket.SL.ID,
	})
	r.guard.inc()

	r.metrics.Signals.WithLabelValues(string(sig.Side)).Inc()
	r.metrics.TradesOpened.Inc()
	r.metrics.OpenTrades.Set(float64(r.book.Len()))

	logger.Info("opened trade %d: %s %s qty=%.6f lev=%dx (raw=%.2f marginRatio=%.4f) entry=%.4f",
		tradeID, t.Symbol, sig.Side, qty, intLeverage, leverage, marginRatio, sig.EntryPrice)
	return nil
}
