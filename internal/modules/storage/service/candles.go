package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"gentrader/internal/models"
)

// UpsertCandles кладёт обогащённое окно одной транзакцией. Конфликт по
// (ts, timeframe) перезаписывает бар: последний расчёт индикаторов
// всегда побеждает.
func (s *Store) UpsertCandles(ctx context.Context, timeframe string, candles []models.EnrichedCandle) (err error) {
	if len(candles) == 0 {
		return nil
	}
	defer func() {
		if err != nil {
			err = errors.Wrap(err, "storage.UpsertCandles")
		}
	}()
	return s.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, c := range candles {
			batch.Queue(`
				INSERT INTO candles (ts, timeframe, open, high, low, close, volume,
					ha_open, ha_high, ha_low, ha_close, ema200, stoch_k, stoch_d)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
				ON CONFLICT (ts, timeframe) DO UPDATE SET
					open = EXCLUDED.open, high = EXCLUDED.high,
					low = EXCLUDED.low, close = EXCLUDED.close,
					volume = EXCLUDED.volume,
					ha_open = EXCLUDED.ha_open, ha_high = EXCLUDED.ha_high,
					ha_low = EXCLUDED.ha_low, ha_close = EXCLUDED.ha_close,
					ema200 = EXCLUDED.ema200,
					stoch_k = EXCLUDED.stoch_k, stoch_d = EXCLUDED.stoch_d`,
				c.Timestamp, timeframe, c.Open, c.High, c.Low, c.Close, c.Volume,
				c.HAOpen, c.HAHigh, c.HALow, c.HAClose,
				c.EMA200, c.StochRSIK, c.StochRSID,
			)
		}
		return tx.SendBatch(ctxTx, batch).Close()
	})
}
