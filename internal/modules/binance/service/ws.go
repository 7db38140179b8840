package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"gentrader/internal/helper"
	"gentrader/internal/models"
	"gentrader/pkg/logger"
)

// StreamKlines держит WebSocket к kline-стриму и кэширует последнюю
// закрытую свечу — REST-фоллбэк в FetchLatestCandle остаётся на случай
// мёртвого стрима. Реконнект с паузой, живёт до отмены контекста.
func (c *Client) StreamKlines(ctx context.Context) {
	symbol := strings.ToLower(c.cfg.Trading.Symbol)
	timeframe := helper.NormTF(c.cfg.Trading.Timeframe)
	url := c.wsURL + "/" + symbol + "@kline_" + timeframe

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		conn, _, err := c.wsDialer.DialContext(ctx, url, nil)
		if err != nil {
			logger.Error("[WS] dial %s: %v", url, err)
			c.state.SetWSConnected(false)
			time.Sleep(3 * time.Second)
			continue
		}
		logger.Info("[WS] connected: %s@kline_%s", symbol, timeframe)
		c.state.SetWSConnected(true)

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				logger.Error("[WS] read: %v", err)
				_ = conn.Close()
				c.state.SetWSConnected(false)
				break
			}

			var frame struct {
				Kline struct {
					OpenTime int64  `json:"t"`
					Open     string `json:"o"`
					High     string `json:"h"`
					Low      string `json:"l"`
					Close    string `json:"c"`
					Volume   string `json:"v"`
					Closed   bool   `json:"x"`
				} `json:"k"`
			}
			if err := sonic.Unmarshal(msg, &frame); err != nil {
				continue
			}
			if !frame.Kline.Closed {
				continue // ждём закрытую свечу
			}

			open, err1 := strconv.ParseFloat(frame.Kline.Open, 64)
			high, err2 := strconv.ParseFloat(frame.Kline.High, 64)
			low, err3 := strconv.ParseFloat(frame.Kline.Low, 64)
			closep, err4 := strconv.ParseFloat(frame.Kline.Close, 64)
			if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
				continue
			}
			volume, _ := strconv.ParseFloat(frame.Kline.Volume, 64)

			c.mu.Lock()
			c.latest = &models.Candle{
				Timestamp: frame.Kline.OpenTime,
				Open:      open,
				High:      high,
				Low:       low,
				Close:     closep,
				Volume:    volume,
			}
			c.mu.Unlock()
		}
	}
}
