package runner

import (
	"context"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"gentrader/internal/models"
	"gentrader/internal/modules/config"
	healthsvc "gentrader/internal/modules/health/service"
	"gentrader/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Trading = config.Trading{
		Symbol:          "ETHUSDC",
		Timeframe:       "15m",
		QuoteAsset:      "USDC",
		MaxLeverage:     20,
		UseMarginRatio:  0.5,
		ATRPeriod:       14,
		BBPeriod:        20,
		BBStdMultiplier: 2.0,
		EMAPeriod:       200,
		MaxDailyTrades:  5,
		TPPct:           0.0785,
		SLPct:           0.0257,
	}
	return cfg
}

type fakeMarket struct {
	historical []models.Candle
	latest     *models.Candle
	balance    float64
	fills      []models.Fill
	err        error
}

func (m *fakeMarket) FetchHistorical(_ context.Context, _, _ string, limit int) ([]models.Candle, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.historical) > limit {
		return m.historical[len(m.historical)-limit:], nil
	}
	return m.historical, nil
}

func (m *fakeMarket) FetchLatestCandle(_ context.Context, _, _ string) (*models.Candle, error) {
	return m.latest, m.err
}

func (m *fakeMarket) FetchAccountBalance(context.Context) (float64, error) {
	return m.balance, m.err
}

func (m *fakeMarket) FetchRecentFills(context.Context, string) ([]models.Fill, error) {
	return m.fills, m.err
}

type fakeExec struct {
	next    int
	opened  []models.OpenRequest
	openErr error
}

func (e *fakeExec) OpenPosition(_ context.Context, req models.OpenRequest) (*models.BracketOrders, error) {
	if e.openErr != nil {
		return nil, e.openErr
	}
	e.next++
	n := e.next
	e.opened = append(e.opened, req)
	return &models.BracketOrders{
		Entry: models.Order{ID: orderID("entry", n), Price: req.EntryPrice, Qty: req.Qty},
		TP:    models.Order{ID: orderID("tp", n), Qty: req.Qty},
		SL:    models.Order{ID: orderID("sl", n), Qty: req.Qty},
	}, nil
}

func orderID(role string, n int) string {
	return role + "-" + string(rune('0'+n))
}

type fakeStore struct {
	nextID   int64
	opens    []*models.TradeOpen
	closes   []*models.TradeClose
	closeErr error
}

func (s *fakeStore) Init(context.Context) error { return nil }

func (s *fakeStore) LogTradeOpen(_ context.Context, open *models.TradeOpen) (int64, error) {
	s.nextID++
	s.opens = append(s.opens, open)
	return s.nextID, nil
}

func (s *fakeStore) LogTradeClose(_ context.Context, cl *models.TradeClose) error {
	if s.closeErr != nil {
		return s.closeErr
	}
	s.closes = append(s.closes, cl)
	return nil
}

func (s *fakeStore) UpsertCandles(context.Context, string, []models.EnrichedCandle) error {
	return nil
}

type fakeNotifier struct {
	sent        []string
	opens       int
	closes      []*models.TradeClose
	emergencies []string
}

func (n *fakeNotifier) Send(msg string)                     { n.sent = append(n.sent, msg) }
func (n *fakeNotifier) Sendf(format string, args ...any)    { n.sent = append(n.sent, format) }
func (n *fakeNotifier) TradeOpen(*models.TradeOpen)         { n.opens++ }
func (n *fakeNotifier) TradeClose(cl *models.TradeClose)    { n.closes = append(n.closes, cl) }
func (n *fakeNotifier) Emergency(msg string)                { n.emergencies = append(n.emergencies, msg) }

func newTestRunner(cfg *config.Config, market *fakeMarket, exec *fakeExec, store *fakeStore, n *fakeNotifier) *Runner {
	return New(cfg, market, exec, store, n,
		healthsvc.NewState(),
		healthsvc.NewMetrics(prometheus.NewRegistry()))
}
