package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics — счётчики торгового цикла, отдаются на админ-порту.
type Metrics struct {
	Ticks      prometheus.Counter
	TickErrors prometheus.Counter

	Signals      *prometheus.CounterVec // side
	TradesOpened prometheus.Counter
	TradesClosed *prometheus.CounterVec // reason

	RealizedPnL prometheus.Gauge // накопленный реализованный PnL
	OpenTrades  prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Ticks: f.NewCounter(prometheus.CounterOpts{
			Name: "bot_ticks_total",
			Help: "Trading loop ticks.",
		}),
		TickErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "bot_tick_errors_total",
			Help: "Ticks aborted by an error.",
		}),
		Signals: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bot_signals_total",
			Help: "Signals emitted by the generator.",
		}, []string{"side"}),
		TradesOpened: f.NewCounter(prometheus.CounterOpts{
			Name: "bot_trades_opened_total",
			Help: "Bracket positions opened.",
		}),
		TradesClosed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bot_trades_closed_total",
			Help: "Trades closed by exit reason.",
		}, []string{"reason"}),
		RealizedPnL: f.NewGauge(prometheus.GaugeOpts{
			Name: "bot_realized_pnl",
			Help: "Cumulative realized PnL in quote currency.",
		}),
		OpenTrades: f.NewGauge(prometheus.GaugeOpts{
			Name: "bot_open_trades",
			Help: "Currently tracked open trades.",
		}),
	}
}
