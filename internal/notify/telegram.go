package notify

import (
	"fmt"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"gentrader/internal/models"
	"gentrader/pkg/logger"
)

// Telegram — пассивный нотифайер: только исходящие сообщения в один
// чат, без обработки команд.
type Telegram struct {
	bot    *tgbot.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Telegram{bot: b, chatID: chatID}, nil
}

func (t *Telegram) Send(msg string) {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return
	}
	if _, err := t.bot.Send(tgbot.NewMessage(t.chatID, msg)); err != nil {
		logger.Error("telegram send: %v", err)
	}
}

func (t *Telegram) Sendf(format string, args ...any) { t.Send(fmt.Sprintf(format, args...)) }

func (t *Telegram) TradeOpen(open *models.TradeOpen) {
	t.Sendf("📈 Вход %s %s\nцена: %g\nобъём: %g\nплечо: %dx\nTP +%.2f%%  SL -%.2f%%",
		open.Symbol, open.Side, open.EntryPrice, open.Qty, open.Leverage,
		open.TPPct*100, open.SLPct*100)
}

func (t *Telegram) TradeClose(cl *models.TradeClose) {
	emoji := "✅"
	if cl.PnL < 0 {
		emoji = "🔻"
	}
	t.Sendf("%s Выход %s %s\nцена: %g\nпричина: %s\nPnL: %+.4f\nдлительность: %ds",
		emoji, cl.Symbol, cl.Side, cl.ExitPrice, cl.ExitReason, cl.PnL, cl.DurationSeconds)
}

func (t *Telegram) Emergency(msg string) {
	t.Send("🚨 EMERGENCY\n" + msg)
}
