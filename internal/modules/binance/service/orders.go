package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"gentrader/internal/helper"
	"gentrader/internal/models"
	"gentrader/pkg/logger"
)

type orderResponse struct {
	OrderID int64  `json:"orderId"`
	Status  string `json:"status"`
}

func formatQty(qty float64) string {
	return strconv.FormatFloat(qty, 'f', 3, 64)
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(helper.Round2(price), 'f', 2, 64)
}

// setupPosition — изолированная маржа + плечо перед входом. Binance
// отвечает ошибкой, если маржа уже изолированная — это не сбой.
func (c *Client) setupPosition(ctx context.Context, symbol string, leverage int) error {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("marginType", "ISOLATED")
	if err := c.signed(ctx, "POST", "/fapi/v1/marginType", params, nil); err != nil {
		if !strings.Contains(err.Error(), "No need to change margin type") {
			return fmt.Errorf("set margin type: %w", err)
		}
	}

	params = url.Values{}
	params.Set("symbol", symbol)
	params.Set("leverage", strconv.Itoa(leverage))
	if err := c.signed(ctx, "POST", "/fapi/v1/leverage", params, nil); err != nil {
		return fmt.Errorf("set leverage: %w", err)
	}
	return nil
}

// OpenPosition — вход по рынку плюс брекет: лимитный тейк и
// стоп-маркет, оба reduceOnly. Возвращает все три exchange order id —
// по ним реконсилятор узнаёт свои fills.
func (c *Client) OpenPosition(ctx context.Context, req models.OpenRequest) (*models.BracketOrders, error) {
	if err := c.setupPosition(ctx, req.Symbol, req.Leverage); err != nil {
		return nil, err
	}

	entrySide, exitSide := "BUY", "SELL"
	tpPrice := req.EntryPrice * (1 + req.TPPct)
	slPrice := req.EntryPrice * (1 - req.SLPct)
	if req.Side == models.SideShort {
		entrySide, exitSide = "SELL", "BUY"
		tpPrice = req.EntryPrice * (1 - req.TPPct)
		slPrice = req.EntryPrice * (1 + req.SLPct)
	}
	qty := formatQty(req.Qty)

	params := url.Values{}
	params.Set("symbol", req.Symbol)
	params.Set("side", entrySide)
	params.Set("type", "MARKET")
	params.Set("quantity", qty)
	var entry orderResponse
	if err := c.signed(ctx, "POST", "/fapi/v1/order", params, &entry); err != nil {
		return nil, fmt.Errorf("entry order: %w", err)
	}

	params = url.Values{}
	params.Set("symbol", req.Symbol)
	params.Set("side", exitSide)
	params.Set("type", "LIMIT")
	params.Set("timeInForce", "GTC")
	params.Set("quantity", qty)
	params.Set("price", formatPrice(tpPrice))
	params.Set("reduceOnly", "true")
	var tp orderResponse
	if err := c.signed(ctx, "POST", "/fapi/v1/order", params, &tp); err != nil {
		return nil, fmt.Errorf("take-profit order: %w", err)
	}

	params = url.Values{}
	params.Set("symbol", req.Symbol)
	params.Set("side", exitSide)
	params.Set("type", "STOP_MARKET")
	params.Set("quantity", qty)
	params.Set("stopPrice", formatPrice(slPrice))
	params.Set("reduceOnly", "true")
	var sl orderResponse
	if err := c.signed(ctx, "POST", "/fapi/v1/order", params, &sl); err != nil {
		return nil, fmt.Errorf("stop-loss order: %w", err)
	}

	logger.Info("bracket placed: %s %s qty=%s entry=%d tp=%d@%s sl=%d@%s",
		req.Symbol, req.Side, qty, entry.OrderID,
		tp.OrderID, formatPrice(tpPrice), sl.OrderID, formatPrice(slPrice))

	return &models.BracketOrders{
		Entry: models.Order{ID: strconv.FormatInt(entry.OrderID, 10), Price: req.EntryPrice, Qty: req.Qty},
		TP:    models.Order{ID: strconv.FormatInt(tp.OrderID, 10), Price: helper.Round2(tpPrice), Qty: req.Qty},
		SL:    models.Order{ID: strconv.FormatInt(sl.OrderID, 10), Price: helper.Round2(slPrice), Qty: req.Qty},
	}, nil
}
