package models

// Candle — сырая свеча с биржи. Timestamp в миллисекундах UTC,
// свечи идут по возрастанию времени, без дублей внутри таймфрейма.
type Candle struct {
	Timestamp int64
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// EnrichedCandle — свеча после индикаторного пайплайна.
// Индикаторные поля nil, пока истории не хватает для расчёта.
type EnrichedCandle struct {
	Candle

	HAOpen  float64
	HAHigh  float64
	HALow   float64
	HAClose float64

	EMA200    *float64
	StochRSIK *float64
	StochRSID *float64
}
