package notify

import (
	"fmt"

	"gentrader/internal/models"
	"gentrader/internal/runner"
	"gentrader/pkg/logger"
)

// Multi — фан-аут по всем сконфигурированным каналам. Доставка
// best-effort: упавший канал не мешает остальным и не влияет на тик.
type Multi struct {
	sinks []runner.Notifier
}

func NewMulti(sinks ...runner.Notifier) *Multi {
	return &Multi{sinks: sinks}
}

func (m *Multi) Send(msg string) {
	for _, s := range m.sinks {
		s.Send(msg)
	}
}

func (m *Multi) Sendf(format string, args ...any) {
	for _, s := range m.sinks {
		s.Sendf(format, args...)
	}
}

func (m *Multi) TradeOpen(open *models.TradeOpen) {
	for _, s := range m.sinks {
		s.TradeOpen(open)
	}
}

func (m *Multi) TradeClose(cl *models.TradeClose) {
	for _, s := range m.sinks {
		s.TradeClose(cl)
	}
}

func (m *Multi) Emergency(msg string) {
	for _, s := range m.sinks {
		s.Emergency(msg)
	}
}

// Stdout — фоллбэк, когда ни один канал не сконфигурирован.
type Stdout struct{}

func (Stdout) Send(msg string)                  { logger.Info("[notify] %s", msg) }
func (Stdout) Sendf(format string, args ...any) { logger.Info("[notify] %s", fmt.Sprintf(format, args...)) }
func (Stdout) TradeOpen(open *models.TradeOpen) {
	logger.Info("[notify] open %s %s @ %g", open.Symbol, open.Side, open.EntryPrice)
}
func (Stdout) TradeClose(cl *models.TradeClose) {
	logger.Info("[notify] close %s %s reason=%s pnl=%+.4f", cl.Symbol, cl.Side, cl.ExitReason, cl.PnL)
}
func (Stdout) Emergency(msg string) { logger.Error("[notify] EMERGENCY: %s", msg) }
