package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"gentrader/pkg/db"
)

// Store — журнал сделок и витрина обогащённых свечей в Postgres.
// Все записи идут через транзакционный менеджер.
type Store struct {
	db *db.PgTxManager
}

func NewStore(manager *db.PgTxManager) *Store {
	return &Store{db: manager}
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS trades (
	id               BIGSERIAL PRIMARY KEY,
	opened_at        TIMESTAMPTZ NOT NULL,
	symbol           TEXT        NOT NULL,
	side             TEXT        NOT NULL,
	entry_price      DOUBLE PRECISION NOT NULL,
	qty              DOUBLE PRECISION NOT NULL,
	leverage         INT         NOT NULL,
	tp_pct           DOUBLE PRECISION NOT NULL,
	sl_pct           DOUBLE PRECISION NOT NULL,
	exit_price       DOUBLE PRECISION,
	exit_reason      TEXT,
	pnl              DOUBLE PRECISION,
	duration_seconds BIGINT,
	closed_at        TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS candles (
	ts        BIGINT NOT NULL,
	timeframe TEXT   NOT NULL,
	open      DOUBLE PRECISION NOT NULL,
	high      DOUBLE PRECISION NOT NULL,
	low       DOUBLE PRECISION NOT NULL,
	close     DOUBLE PRECISION NOT NULL,
	volume    DOUBLE PRECISION NOT NULL,
	ha_open   DOUBLE PRECISION NOT NULL,
	ha_high   DOUBLE PRECISION NOT NULL,
	ha_low    DOUBLE PRECISION NOT NULL,
	ha_close  DOUBLE PRECISION NOT NULL,
	ema200    DOUBLE PRECISION,
	stoch_k   DOUBLE PRECISION,
	stoch_d   DOUBLE PRECISION,
	PRIMARY KEY (ts, timeframe)
);
`

// Init накатывает схему. Идемпотентно, вызывается на каждом старте.
func (s *Store) Init(ctx context.Context) (err error) {
	defer func() {
		if err != nil {
			err = errors.Wrap(err, "storage.Init")
		}
	}()
	return s.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, schemaDDL)
		return err
	})
}
