package runner

import "gentrader/internal/models"

type orderRole uint8

const (
	roleEntry orderRole = iota
	roleTP
	roleSL
)

// openTrade — метаданные открытой сделки между входом и закрытием.
type openTrade struct {
	TradeID    int64
	Symbol     string
	Side       models.Side
	EntryPrice float64
	Qty        float64
	Leverage   int
	OpenedAt   int64 // миллисекунды UTC

	EntryOrderID string
	TPOrderID    string
	SLOrderID    string
}

type orderRef struct {
	tradeID int64
	role    orderRole
}

// tradeBook — таблица открытых сделок с индексом orderId -> (tradeId, роль).
// Инвариант: каждый orderId открытой сделки присутствует ровно в одной
// роли; Retire снимает сделку и все три её ордера одним шагом, частичное
// состояние снаружи не наблюдаемо. Книга поддерживает N одновременных
// сделок — единственный тормоз на входы это дневной лимит.
type tradeBook struct {
	trades map[int64]*openTrade
	orders map[string]orderRef
}

func newTradeBook() *tradeBook {
	return &tradeBook{
		trades: make(map[int64]*openTrade),
		orders: make(map[string]orderRef),
	}
}

func (b *tradeBook) Register(t *openTrade) {
	b.trades[t.TradeID] = t
	b.orders[t.EntryOrderID] = orderRef{tradeID: t.TradeID, role: roleEntry}
	b.orders[t.TPOrderID] = orderRef{tradeID: t.TradeID, role: roleTP}
	b.orders[t.SLOrderID] = orderRef{tradeID: t.TradeID, role: roleSL}
}

// Resolve — сделка и роль ордера по его id; false для неизвестных ордеров.
func (b *tradeBook) Resolve(orderID string) (*openTrade, orderRole, bool) {
	ref, ok := b.orders[orderID]
	if !ok {
		return nil, 0, false
	}
	t, ok := b.trades[ref.tradeID]
	if !ok {
		return nil, 0, false
	}
	return t, ref.role, true
}

// Retire убирает сделку и все три маппинга её ордеров.
func (b *tradeBook) Retire(tradeID int64) {
	t, ok := b.trades[tradeID]
	if !ok {
		return
	}
	delete(b.orders, t.EntryOrderID)
	delete(b.orders, t.TPOrderID)
	delete(b.orders, t.SLOrderID)
	delete(b.trades, tradeID)
}

func (b *tradeBook) Len() int { return len(b.trades) }

func (b *tradeBook) OrderCount() int { return len(b.orders) }
