package helper

import (
	"math"
	"strings"
	"time"
)

func NormTF(raw string) string {
	s := strings.TrimSpace(strings.ToLower(raw))
	s = strings.TrimPrefix(s, "candle")
	switch s {
	case "60m", "1h":
		return "1h"
	case "15m":
		return "15m"
	case "5m":
		return "5m"
	case "1m":
		return "1m"
	default:
		return s
	}
}

// TFDuration — период опроса для таймфрейма. Неизвестный таймфрейм
// трактуем как 15m, исходный дефолт бота.
func TFDuration(raw string) time.Duration {
	switch NormTF(raw) {
	case "1m":
		return time.Minute
	case "5m":
		return 5 * time.Minute
	case "1h":
		return time.Hour
	default:
		return 15 * time.Minute
	}
}

func Round2(x float64) float64 { return math.Round(x*100) / 100 }

func Round4(x float64) float64 { return math.Round(x*10000) / 10000 }
