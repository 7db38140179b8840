package service

import (
	"context"
	"fmt"
	"strconv"
)

// FetchAccountBalance — доступный баланс в котируемом активе
// (cfg.Trading.QuoteAsset) на фьючерсном кошельке.
func (c *Client) FetchAccountBalance(ctx context.Context) (float64, error) {
	var entries []struct {
		Asset            string `json:"asset"`
		AvailableBalance string `json:"availableBalance"`
	}
	if err := c.signed(ctx, "GET", "/fapi/v2/balance", nil, &entries); err != nil {
		return 0, err
	}

	for _, e := range entries {
		if e.Asset != c.cfg.Trading.QuoteAsset {
			continue
		}
		balance, err := strconv.ParseFloat(e.AvailableBalance, 64)
		if err != nil {
			return 0, fmt.Errorf("parse balance %q: %w", e.AvailableBalance, err)
		}
		return balance, nil
	}
	return 0, fmt.Errorf("no %s balance in futures wallet", c.cfg.Trading.QuoteAsset)
}
