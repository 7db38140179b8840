package runner

import (
	"context"
	"fmt"

	"gentrader/internal/models"
	"gentrader/pkg/logger"
)

// reconcile — переход OPEN -> CLOSED: сопоставляет fills открытым
// сделкам, считает причину выхода и PnL, отправляет закрытие в БД и
// нотификации, снимает маппинги. Идемпотентность: уже обработанный
// fill id пропускается до любых поисков по книге.
func (r *Runner) reconcile(ctx context.Context, fills []models.Fill) error {
	for _, fill := range fills {
		if _, done := r.processedFills[fill.ID]; done {
			continue
		}

		trade, role, ok := r.book.Resolve(fill.OrderID)
		if !ok {
			// ордер не наш — не ошибка, просто помечаем fill
			r.processedFills[fill.ID] = struct{}{}
			continue
		}

		reason := models.ExitEmergency
		switch role {
		case roleTP:
			reason = models.ExitTakeProfit
		case roleSL:
			reason = models.ExitStopLoss
		}

		var pnl float64
		if trade.Side == models.SideLong {
			pnl = (fill.Price - trade.EntryPrice) * trade.Qty
		} else {
			pnl = (trade.EntryPrice - fill.Price) * trade.Qty
		}

		closed := &models.TradeClose{
			TradeID:         trade.TradeID,
			Symbol:          trade.Symbol,
			Side:            trade.Side,
			ExitPrice:       fill.Price,
			ExitReason:      reason,
			PnL:             pnl,
			DurationSeconds: (fill.Timestamp - trade.OpenedAt) / 1000,
		}
		if err := r.store.LogTradeClose(ctx, closed); err != nil {
			// fill не помечен обработанным: следующий тик повторит
			return fmt.Errorf("log trade close %d: %w", trade.TradeID, err)
		}

		r.n.TradeClose(closed)

		// retirement одним шагом: книга и processed согласованы всегда
		r.book.Retire(trade.TradeID)
		r.processedFills[fill.ID] = struct{}{}

		r.metrics.TradesClosed.WithLabelValues(string(reason)).Inc()
		r.metrics.RealizedPnL.Add(pnl)
		r.metrics.OpenTrades.Set(float64(r.book.Len()))

		logger.Info("closed trade %d: %s exit=%.4f reason=%s pnl=%.4f dur=%ds",
			trade.TradeID, trade.Symbol, fill.Price, reason, pnl, closed.DurationSeconds)
	}
	return nil
}
