package storage

import (
	"go.uber.org/fx"

	"gentrader/internal/modules/storage/service"
	"gentrader/internal/runner"
)

func Module() fx.Option {
	return fx.Module("storage",
		fx.Provide(
			service.NewStore,
		),
		// Адаптер: *service.Store -> runner.TradeStore
		fx.Provide(
			func(s *service.Store) runner.TradeStore {
				return s
			},
		),
	)
}
