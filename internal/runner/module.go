package runner

import (
	"context"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			New,
		),
		fx.Invoke(func(
			lc fx.Lifecycle,
			r *Runner,
			ctx context.Context,
		) {
			lc.Append(fx.Hook{
				OnStart: func(startCtx context.Context) error {
					// ошибки Bootstrap фатальны: fx.Start вернёт их
					// наверх и процесс выйдет с ненулевым статусом
					if err := r.Bootstrap(startCtx); err != nil {
						return err
					}
					go r.Loop(ctx)
					return nil
				},
			})
		}),
	)
}
