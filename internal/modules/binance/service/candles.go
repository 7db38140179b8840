package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"gentrader/internal/models"
	"gentrader/pkg/logger"
)

// kline Binance — массив смешанных типов:
// [openTime, open, high, low, close, volume, closeTime, ...]
func parseKline(row []any) (*models.Candle, error) {
	if len(row) < 6 {
		return nil, fmt.Errorf("kline row too short: %d fields", len(row))
	}
	ts, ok := row[0].(float64)
	if !ok {
		return nil, fmt.Errorf("kline openTime: unexpected type %T", row[0])
	}
	vals := make([]float64, 5)
	for i := 1; i <= 5; i++ {
		s, ok := row[i].(string)
		if !ok {
			return nil, fmt.Errorf("kline field %d: unexpected type %T", i, row[i])
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("kline field %d: %w", i, err)
		}
		vals[i-1] = v
	}
	return &models.Candle{
		Timestamp: int64(ts),
		Open:      vals[0],
		High:      vals[1],
		Low:       vals[2],
		Close:     vals[3],
		Volume:    vals[4],
	}, nil
}

// FetchHistorical — прогрев окна закрытыми свечами. Последний kline в
// ответе ещё формируется, его отбрасываем.
func (c *Client) FetchHistorical(ctx context.Context, symbol, timeframe string, limit int) ([]models.Candle, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("interval", timeframe)
	params.Set("limit", strconv.Itoa(limit+1))

	var rows [][]any
	if err := c.public(ctx, "/fapi/v1/klines", params, &rows); err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		rows = rows[:len(rows)-1]
	}

	out := make([]models.Candle, 0, len(rows))
	for _, row := range rows {
		candle, err := parseKline(row)
		if err != nil {
			return nil, err
		}
		out = append(out, *candle)
	}
	return out, nil
}

// FetchLatestCandle отдаёт последнюю закрытую свечу. Если WS-стрим уже
// принёс её — REST не дёргаем. nil без ошибки = транзиентный сбой фида,
// тик продолжается на имеющемся окне.
func (c *Client) FetchLatestCandle(ctx context.Context, symbol, timeframe string) (*models.Candle, error) {
	if cached := c.cachedCandle(); cached != nil {
		return cached, nil
	}

	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("interval", timeframe)
	params.Set("limit", "2")

	var rows [][]any
	if err := c.public(ctx, "/fapi/v1/klines", params, &rows); err != nil {
		return nil, err
	}
	// rows[последний] — текущая незакрытая свеча
	if len(rows) < 2 {
		logger.Warn("klines: got %d rows for %s %s, no closed candle", len(rows), symbol, timeframe)
		return nil, nil
	}
	return parseKline(rows[len(rows)-2])
}

func (c *Client) cachedCandle() *models.Candle {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.latest == nil {
		return nil
	}
	candle := *c.latest
	return &candle
}
