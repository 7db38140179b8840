package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"gentrader/internal/models"
)

// LogTradeOpen пишет вход и возвращает присвоенный id сделки —
// он же ключ для LogTradeClose.
func (s *Store) LogTradeOpen(ctx context.Context, open *models.TradeOpen) (tradeID int64, err error) {
	defer func() {
		if err != nil {
			err = errors.Wrap(err, "storage.LogTradeOpen")
		}
	}()
	err = s.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		return tx.QueryRow(ctxTx, `
			INSERT INTO trades (opened_at, symbol, side, entry_price, qty, leverage, tp_pct, sl_pct)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id`,
			open.Timestamp, open.Symbol, string(open.Side), open.EntryPrice,
			open.Qty, open.Leverage, open.TPPct, open.SLPct,
		).Scan(&tradeID)
	})
	return tradeID, err
}

// LogTradeClose дополняет строку сделки итогами выхода.
func (s *Store) LogTradeClose(ctx context.Context, cl *models.TradeClose) (err error) {
	defer func() {
		if err != nil {
			err = errors.Wrap(err, "storage.LogTradeClose")
		}
	}()
	return s.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctxTx, `
			UPDATE trades
			SET exit_price = $2, exit_reason = $3, pnl = $4,
			    duration_seconds = $5, closed_at = $6
			WHERE id = $1`,
			cl.TradeID, cl.ExitPrice, string(cl.ExitReason), cl.PnL,
			cl.DurationSeconds, time.Now().UTC(),
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return errors.Errorf("trade %d not found", cl.TradeID)
		}
		return nil
	})
}
