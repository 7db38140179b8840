package notify

import (
	"go.uber.org/fx"

	"gentrader/internal/modules/config"
	"gentrader/internal/runner"
	"gentrader/pkg/logger"
)

// Module собирает нотифайер из сконфигурированных каналов.
// Нет ни Telegram, ни Discord — шлём в лог, бот работает дальше.
func Module() fx.Option {
	return fx.Module("notify",
		fx.Provide(
			func(cfg *config.Config) (runner.Notifier, error) {
				var sinks []runner.Notifier

				if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != 0 {
					tg, err := NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
					if err != nil {
						return nil, err
					}
					sinks = append(sinks, tg)
				}
				if cfg.Discord.WebhookURL != "" {
					sinks = append(sinks, NewDiscord(cfg.Discord.WebhookURL))
				}

				if len(sinks) == 0 {
					logger.Warn("нотификации не сконфигурированы, алерты уходят в лог")
					return Stdout{}, nil
				}
				return NewMulti(sinks...), nil
			},
		),
	)
}
