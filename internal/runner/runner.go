package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"

	"gentrader/internal/indicators"
	"gentrader/internal/models"
	"gentrader/internal/modules/config"
	healthsvc "gentrader/internal/modules/health/service"
	"gentrader/internal/strategy"
	"gentrader/pkg/logger"
)

// Runner — один логический поток управления: цикл с фиксированным
// интервалом, все ожидания внутри тика последовательны. Окно свечей,
// книга сделок и дневной счётчик принадлежат только раннеру, никакой
// синхронизации не нужно — но и второй инстанс рядом запускать нельзя,
// он продублирует order-tracking.
type Runner struct {
	cfg    *config.Config
	market MarketData
	exec   OrderExecutor
	store  TradeStore
	n      Notifier

	state   *healthsvc.State
	metrics *healthsvc.Metrics

	candles        []models.Candle
	guard          *dailyGuard
	book           *tradeBook
	processedFills map[string]struct{}
}

func New(
	cfg *config.Config,
	market MarketData,
	exec OrderExecutor,
	store TradeStore,
	n Notifier,
	state *healthsvc.State,
	metrics *healthsvc.Metrics,
) *Runner {
	return &Runner{
		cfg:            cfg,
		market:         market,
		exec:           exec,
		store:          store,
		n:              n,
		state:          state,
		metrics:        metrics,
		guard:          newDailyGuard(time.Now()),
		book:           newTradeBook(),
		processedFills: make(map[string]struct{}),
	}
}

// Bootstrap — стартовая фаза: инициализация хранилища и прогрев окна
// истории. Любая ошибка здесь фатальна — процесс не должен входить в
// цикл с полупустым состоянием.
func (r *Runner) Bootstrap(ctx context.Context) error {
	if err := r.store.Init(ctx); err != nil {
		return fmt.Errorf("store init: %w", err)
	}

	t := r.cfg.Trading
	candles, err := r.market.FetchHistorical(ctx, t.Symbol, t.Timeframe, r.cfg.HistoryLimit())
	if err != nil {
		return fmt.Errorf("load historical candles: %w", err)
	}
	if len(candles) == 0 {
		return fmt.Errorf("empty candle history for %s %s", t.Symbol, t.Timeframe)
	}
	r.candles = candles

	r.state.SetReady(true)
	logger.Info("loaded %d historical candles for %s %s", len(candles), t.Symbol, t.Timeframe)
	return nil
}

// Loop — тики с фиксированным интервалом до завершения процесса.
// Первый тик выполняется сразу, дальше по тикеру.
func (r *Runner) Loop(ctx context.Context) {
	interval := r.cfg.TickInterval()
	logger.Info("trading loop started: %s %s, interval %s",
		r.cfg.Trading.Symbol, r.cfg.Trading.Timeframe, interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		r.runTick(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// runTick — граница обработки ошибок: всё, что упало внутри тика,
// логируется и уходит emergency-алертом, цикл живёт дальше. Никаких
// ретраев внутри тика.
func (r *Runner) runTick(ctx context.Context) {
	span := opentracing.StartSpan("tick")
	defer span.Finish()

	r.state.TouchTick(time.Now())
	r.metrics.Ticks.Inc()

	if err := r.tick(opentracing.ContextWithSpan(ctx, span)); err != nil {
		ext.Error.Set(span, true)
		r.metrics.TickErrors.Inc()
		logger.Error("tick failed: %v", err)
		r.n.Emergency(err.Error())
	}
}

func (r *Runner) tick(ctx context.Context) error {
	if r.guard.checkReset(time.Now()) {
		logger.Info("[%s] daily trade count reset", r.guard.lastReset)
	}

	t := r.cfg.Trading

	latest, err := r.market.FetchLatestCandle(ctx, t.Symbol, t.Timeframe)
	if err != nil {
		return fmt.Errorf("fetch latest candle: %w", err)
	}
	if latest == nil {
		// транзиентный сбой фида, работаем на имеющемся окне
		logger.Warn("latest candle unavailable for %s %s", t.Symbol, t.Timeframe)
	} else {
		r.pushCandle(*latest)
	}

	// обогащённое окно уходит в БД best-effort: сорванный upsert не
	// должен останавливать торговую логику
	if err := r.store.UpsertCandles(ctx, t.Timeframe, indicators.Enrich(r.candles)); err != nil {
		logger.Error("candle upsert: %v", err)
	}

	sig := strategy.Generate(r.candles, strategy.Params{
		EMAPeriod: t.EMAPeriod,
		TPPct:     t.TPPct,
		SLPct:     t.SLPct,
	})
	if sig != nil && r.guard.allows(t.MaxDailyTrades) {
		if err := r.openPosition(ctx, sig); err != nil {
			return err
		}
	}

	fills, err := r.market.FetchRecentFills(ctx, t.Symbol)
	if err != nil {
		return fmt.Errorf("fetch fills: %w", err)
	}
	return r.reconcile(ctx, fills)
}

// pushCandle поддерживает окно: добавление в хвост, замена бара с тем же
// timestamp, FIFO-вытеснение сверх ёмкости. Бары из прошлого
// отбрасываются — окно строго возрастает по времени.
func (r *Runner) pushCandle(c models.Candle) {
	if n := len(r.candles); n > 0 {
		last := r.candles[n-1]
		switch {
		case c.Timestamp == last.Timestamp:
			r.candles[n-1] = c
			return
		case c.Timestamp < last.Timestamp:
			logger.Warn("out-of-order candle dropped: ts=%d < %d", c.Timestamp, last.Timestamp)
			return
		}
	}
	r.candles = append(r.candles, c)
	if keep := r.cfg.WindowKeep(); len(r.candles) > keep {
		r.candles = r.candles[len(r.candles)-keep:]
	}
}
