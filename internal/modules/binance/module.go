package binance

import (
	"context"

	"go.uber.org/fx"

	"gentrader/internal/modules/binance/service"
	"gentrader/internal/modules/config"
	"gentrader/internal/runner"
	"gentrader/pkg/logger"
)

// Module — биржевой слой. В dry-run режиме маркет-данные остаются
// живыми, а исполнение подменяется бумажным.
func Module() fx.Option {
	return fx.Module("binance",
		fx.Provide(
			service.NewClient,
			service.NewPaper,
		),

		fx.Provide(
			func(cfg *config.Config, client *service.Client, paper *service.Paper) runner.MarketData {
				if cfg.Trading.DryRun {
					return service.NewPaperMarket(client, paper)
				}
				return client
			},
		),
		fx.Provide(
			func(cfg *config.Config, client *service.Client, paper *service.Paper) runner.OrderExecutor {
				if cfg.Trading.DryRun {
					logger.Info("dry-run mode: бумажный исполнитель, биржевые ордера не отправляются")
					return paper
				}
				return client
			},
		),

		// kline-стрим живёт весь срок приложения
		fx.Invoke(
			func(lc fx.Lifecycle, client *service.Client, ctx context.Context) {
				lc.Append(fx.Hook{
					OnStart: func(context.Context) error {
						go client.StreamKlines(ctx)
						return nil
					},
				})
			},
		),
	)
}
