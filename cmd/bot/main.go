package main

import (
	"context"
	"log"

	"go.uber.org/fx"

	"gentrader/internal/modules/binance"
	"gentrader/internal/modules/config"
	"gentrader/internal/modules/health"
	"gentrader/internal/modules/postgres"
	"gentrader/internal/modules/storage"
	"gentrader/internal/notify"
	"gentrader/internal/runner"
	"gentrader/pkg/logger"
	"gentrader/pkg/tracing"
)

func main() {
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		config.Module(),
		fx.Invoke(func(cfg *config.Config) {
			// трейсер не критичен: без агента работаем с noop-спанами
			tracing.SetServiceName("gentrader")
			if _, _, err := tracing.InitTracer(tracing.Config{
				Host: cfg.Jaeger.Host,
				Port: cfg.Jaeger.Port,
			}); err != nil {
				logger.Warn("jaeger tracer: %v", err)
			}
		}),
		postgres.Module(),
		storage.Module(),
		binance.Module(),
		notify.Module(),
		health.Module(),
		runner.Module(),
	)
	app.Run()
}
