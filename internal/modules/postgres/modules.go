package postgres

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"gentrader/internal/modules/config"
	"gentrader/pkg/db"
)

// Module — пул соединений к Postgres как fx-провайдер. Пинг на старте,
// чтобы падать сразу, а не на первой записи сделки.
func Module() fx.Option {
	return fx.Module("postgres",
		fx.Provide(
			func(ctx context.Context, cfg *config.Config, lc fx.Lifecycle) (*db.PgTxManager, error) {
				pool, err := db.NewPool(ctx, db.PoolConfig{
					DSN: cfg.DB,
				})
				if err != nil {
					return nil, fmt.Errorf("failed to create pool: %w", err)
				}

				if err = pool.Ping(ctx); err != nil {
					return nil, fmt.Errorf("ping postgres: %w", err)
				}

				manager := db.NewPgTxManager(pool)
				lc.Append(fx.Hook{
					OnStop: func(context.Context) error {
						manager.Close()
						return nil
					},
				})
				return manager, nil
			},
		),
	)
}
