package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"gentrader/internal/models"
)

const fillsLimit = 50

// FetchRecentFills — последние исполнения по символу. Дедупликация по
// fill id живёт выше, здесь просто отдаём хвост истории.
func (c *Client) FetchRecentFills(ctx context.Context, symbol string) ([]models.Fill, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("limit", strconv.Itoa(fillsLimit))

	var rows []struct {
		ID      int64  `json:"id"`
		OrderID int64  `json:"orderId"`
		Time    int64  `json:"time"`
		Price   string `json:"price"`
		Side    string `json:"side"`
	}
	if err := c.signed(ctx, "GET", "/fapi/v1/userTrades", params, &rows); err != nil {
		return nil, err
	}

	out := make([]models.Fill, 0, len(rows))
	for _, row := range rows {
		price, err := strconv.ParseFloat(row.Price, 64)
		if err != nil {
			return nil, fmt.Errorf("parse fill price %q: %w", row.Price, err)
		}
		out = append(out, models.Fill{
			ID:        strconv.FormatInt(row.ID, 10),
			OrderID:   strconv.FormatInt(row.OrderID, 10),
			Timestamp: row.Time,
			Price:     price,
			Side:      row.Side,
		})
	}
	return out, nil
}
