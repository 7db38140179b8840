package runner

import (
	"context"

	"gentrader/internal/models"
)

// Коллабораторы раннера. Ядро владеет только своим in-memory состоянием,
// всё остальное — за этими интерфейсами.

// MarketData — рыночные данные и аккаунт.
type MarketData interface {
	// FetchHistorical — до limit свечей по возрастанию времени.
	FetchHistorical(ctx context.Context, symbol, timeframe string, limit int) ([]models.Candle, error)
	// FetchLatestCandle — nil без ошибки означает транзиентный сбой
	// фида, а не отсутствие данных.
	FetchLatestCandle(ctx context.Context, symbol, timeframe string) (*models.Candle, error)
	// FetchAccountBalance — баланс в котируемой валюте.
	FetchAccountBalance(ctx context.Context) (float64, error)
	// FetchRecentFills — фид исполнения, at-least-once.
	FetchRecentFills(ctx context.Context, symbol string) ([]models.Fill, error)
}

// OrderExecutor — размещение брекета: рыночный вход + TP + SL.
type OrderExecutor interface {
	OpenPosition(ctx context.Context, req models.OpenRequest) (*models.BracketOrders, error)
}

// TradeStore — персистентность сделок и обогащённых свечей.
type TradeStore interface {
	Init(ctx context.Context) error
	LogTradeOpen(ctx context.Context, open *models.TradeOpen) (int64, error)
	LogTradeClose(ctx context.Context, cl *models.TradeClose) error
	UpsertCandles(ctx context.Context, timeframe string, candles []models.EnrichedCandle) error
}

// Notifier — исходящие алерты, best-effort: ошибки доставки логируются
// внутри реализации и никогда не роняют тик.
type Notifier interface {
	Send(msg string)
	Sendf(format string, args ...any)
	TradeOpen(open *models.TradeOpen)
	TradeClose(cl *models.TradeClose)
	Emergency(msg string)
}
