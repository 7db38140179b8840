package notify

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"gentrader/internal/models"
	"gentrader/pkg/logger"
)

// Discord — вебхук-нотифайер. Emergency уходит с @here, остальное
// обычным сообщением. Ошибки доставки только логируются.
type Discord struct {
	client     *resty.Client
	webhookURL string
}

func NewDiscord(webhookURL string) *Discord {
	return &Discord{
		client:     resty.New().SetTimeout(10 * time.Second),
		webhookURL: webhookURL,
	}
}

func (d *Discord) post(content string) {
	if d == nil || d.webhookURL == "" {
		return
	}
	resp, err := d.client.R().
		SetBody(map[string]string{"content": content}).
		Post(d.webhookURL)
	if err != nil {
		logger.Error("discord webhook: %v", err)
		return
	}
	if resp.IsError() {
		logger.Error("discord webhook: http %d: %s", resp.StatusCode(), resp.String())
	}
}

func (d *Discord) Send(msg string)                  { d.post(msg) }
func (d *Discord) Sendf(format string, args ...any) { d.post(fmt.Sprintf(format, args...)) }

func (d *Discord) TradeOpen(open *models.TradeOpen) {
	d.post(fmt.Sprintf(
		"**[TRADE ENTERED]** %s %s\n• Entry Price: %g\n• Quantity: %g\n• Leverage: %dx\n• TP: +%.2f%%  SL: -%.2f%%",
		open.Symbol, open.Side, open.EntryPrice, open.Qty, open.Leverage,
		open.TPPct*100, open.SLPct*100))
}

func (d *Discord) TradeClose(cl *models.TradeClose) {
	sign := ""
	if cl.PnL >= 0 {
		sign = "+"
	}
	d.post(fmt.Sprintf(
		"**[TRADE CLOSED]** %s %s\n• Exit Price: %g\n• Reason: %s\n• P&L: %s%g",
		cl.Symbol, cl.Side, cl.ExitPrice, cl.ExitReason, sign, cl.PnL))
}

func (d *Discord) Emergency(msg string) {
	d.post("@here\n**[EMERGENCY]**\n" + msg)
}
