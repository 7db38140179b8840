package models

import "time"

// Side — направление позиции.
type Side string

const (
	SideLong  Side = "LONG"
	SideShort Side = "SHORT"
)

// ExitReason — причина закрытия сделки.
type ExitReason string

const (
	ExitTakeProfit ExitReason = "TAKE_PROFIT"
	ExitStopLoss   ExitReason = "STOP_LOSS"
	// ExitEmergency — fill по известному трейду, но не TP и не SL:
	// принудительная/ручная ликвидация мимо брекета.
	ExitEmergency ExitReason = "EMERGENCY"
	ExitManual    ExitReason = "MANUAL"
)

// TradeSignal — ответ генератора сигналов. Живёт один тик, никуда не
// персистится.
type TradeSignal struct {
	Side       Side
	EntryPrice float64
	TPPct      float64
	SLPct      float64
}

// TradeOpen — запись о входе для БД и нотификаций.
type TradeOpen struct {
	Timestamp  time.Time
	Symbol     string
	Side       Side
	EntryPrice float64
	Qty        float64
	Leverage   int
	TPPct      float64
	SLPct      float64
}

// TradeClose — запись о закрытии сделки.
type TradeClose struct {
	TradeID         int64
	Symbol          string
	Side            Side
	ExitPrice       float64
	ExitReason      ExitReason
	PnL             float64
	DurationSeconds int64
}

// OpenRequest — параметры брекет-входа для исполнителя ордеров.
type OpenRequest struct {
	Symbol     string
	Side       Side
	Qty        float64
	EntryPrice float64
	Leverage   int
	TPPct      float64
	SLPct      float64
}

// Order — минимум, который нужен ядру от биржевого ордера.
type Order struct {
	ID    string
	Price float64
	Qty   float64
}

// BracketOrders — тройка ордеров одного входа: рыночный вход + TP + SL.
type BracketOrders struct {
	Entry Order
	TP    Order
	SL    Order
}
