package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"gentrader/internal/helper"
	"gentrader/internal/models"
	"gentrader/pkg/logger"
)

// Paper — dry-run исполнитель: та же форма брекета, но ордера живут
// только в памяти. Биржа не трогается вообще.
type Paper struct {
	mu       sync.Mutex
	brackets []*paperBracket
}

type paperBracket struct {
	side    models.Side
	qty     float64
	tpID    string
	slID    string
	tpPrice float64
	slPrice float64
}

func NewPaper() *Paper {
	return &Paper{}
}

func (p *Paper) OpenPosition(_ context.Context, req models.OpenRequest) (*models.BracketOrders, error) {
	tpPrice := req.EntryPrice * (1 + req.TPPct)
	slPrice := req.EntryPrice * (1 - req.SLPct)
	if req.Side == models.SideShort {
		tpPrice = req.EntryPrice * (1 - req.TPPct)
		slPrice = req.EntryPrice * (1 + req.SLPct)
	}

	bracket := &paperBracket{
		side:    req.Side,
		qty:     req.Qty,
		tpID:    uuid.NewString(),
		slID:    uuid.NewString(),
		tpPrice: helper.Round2(tpPrice),
		slPrice: helper.Round2(slPrice),
	}
	p.mu.Lock()
	p.brackets = append(p.brackets, bracket)
	p.mu.Unlock()

	entryID := uuid.NewString()
	logger.Info("[paper] bracket: %s %s qty=%.6f entry=%.4f tp=%.2f sl=%.2f",
		req.Symbol, req.Side, req.Qty, req.EntryPrice, bracket.tpPrice, bracket.slPrice)

	return &models.BracketOrders{
		Entry: models.Order{ID: entryID, Price: req.EntryPrice, Qty: req.Qty},
		TP:    models.Order{ID: bracket.tpID, Price: bracket.tpPrice, Qty: req.Qty},
		SL:    models.Order{ID: bracket.slID, Price: bracket.slPrice, Qty: req.Qty},
	}, nil
}

// SimulateFills исполняет бумажные брекеты по экстремумам свечи.
// Если бар задел и тейк, и стоп — консервативно отдаём стоп.
func (p *Paper) SimulateFills(c *models.Candle) []models.Fill {
	if c == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	var fills []models.Fill
	remaining := p.brackets[:0]
	for _, b := range p.brackets {
		var tpHit, slHit bool
		if b.side == models.SideLong {
			tpHit = c.High >= b.tpPrice
			slHit = c.Low <= b.slPrice
		} else {
			tpHit = c.Low <= b.tpPrice
			slHit = c.High >= b.slPrice
		}

		switch {
		case slHit:
			fills = append(fills, models.Fill{
				ID: uuid.NewString(), OrderID: b.slID,
				Timestamp: c.Timestamp, Price: b.slPrice,
			})
		case tpHit:
			fills = append(fills, models.Fill{
				ID: uuid.NewString(), OrderID: b.tpID,
				Timestamp: c.Timestamp, Price: b.tpPrice,
			})
		default:
			remaining = append(remaining, b)
		}
	}
	p.brackets = remaining
	return fills
}

// PaperMarket — маркет-данные живые, fills бумажные.
type PaperMarket struct {
	*Client
	paper *Paper
}

func NewPaperMarket(client *Client, paper *Paper) *PaperMarket {
	return &PaperMarket{Client: client, paper: paper}
}

func (m *PaperMarket) FetchRecentFills(ctx context.Context, symbol string) ([]models.Fill, error) {
	latest, err := m.FetchLatestCandle(ctx, m.cfg.Trading.Symbol, m.cfg.Trading.Timeframe)
	if err != nil {
		return nil, err
	}
	return m.paper.SimulateFills(latest), nil
}
