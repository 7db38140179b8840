package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"gentrader/internal/models"
	"gentrader/internal/modules/config"
	healthsvc "gentrader/internal/modules/health/service"
)

// Client — REST + WebSocket к Binance USDⓈ-M futures. Приватные
// эндпоинты подписываются HMAC-SHA256 по query string.
type Client struct {
	cfg   *config.Config
	state *healthsvc.State

	http      *http.Client
	wsDialer  *websocket.Dialer
	baseURL   string
	wsURL     string
	apiKey    string
	apiSecret string

	mu     sync.RWMutex
	latest *models.Candle // последняя закрытая свеча из WS-стрима
}

func NewClient(cfg *config.Config, state *healthsvc.State) *Client {
	return &Client{
		cfg:       cfg,
		state:     state,
		http:      &http.Client{Timeout: 10 * time.Second},
		wsDialer:  &websocket.Dialer{},
		baseURL:   cfg.Binance.BaseURL,
		wsURL:     cfg.Binance.WSURL,
		apiKey:    cfg.Binance.APIKey,
		apiSecret: cfg.Binance.APISecret,
	}
}

func (c *Client) sign(query string) string {
	h := hmac.New(sha256.New, []byte(c.apiSecret))
	h.Write([]byte(query))
	return hex.EncodeToString(h.Sum(nil))
}

// public — запрос без подписи (klines и прочие маркет-данные).
func (c *Client) public(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// signed — приватный запрос: timestamp + signature в query,
// X-MBX-APIKEY в заголовке.
func (c *Client) signed(ctx context.Context, method, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("timestamp", strconv.FormatInt(time.Now().UnixMilli(), 10))
	params.Set("recvWindow", "5000")
	query := params.Encode()
	query += "&signature=" + c.sign(query)

	var req *http.Request
	var err error
	if method == http.MethodGet {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path+"?"+query, nil)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader([]byte(query)))
	}
	if err != nil {
		return err
	}
	if method != http.MethodGet {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("X-MBX-APIKEY", c.apiKey)
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	rb, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		var apiErr struct {
			Code int    `json:"code"`
			Msg  string `json:"msg"`
		}
		if sonic.Unmarshal(rb, &apiErr) == nil && apiErr.Msg != "" {
			return fmt.Errorf("binance error: code=%d msg=%s", apiErr.Code, apiErr.Msg)
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(rb))
	}
	if out == nil {
		return nil
	}
	return sonic.Unmarshal(rb, out)
}
