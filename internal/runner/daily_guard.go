package runner

import "time"

const dateLayout = "2006-01-02"

// dailyGuard — лимит входов на календарные сутки UTC. Счётчик
// сбрасывается один раз при первой смене даты, которую увидел тик.
type dailyGuard struct {
	count     int
	lastReset string
}

func newDailyGuard(now time.Time) *dailyGuard {
	return &dailyGuard{lastReset: now.UTC().Format(dateLayout)}
}

// checkReset возвращает true, если дата сменилась и счётчик обнулён.
func (g *dailyGuard) checkReset(now time.Time) bool {
	today := now.UTC().Format(dateLayout)
	if today == g.lastReset {
		return false
	}
	g.count = 0
	g.lastReset = today
	return true
}

func (g *dailyGuard) allows(maxTrades int) bool { return g.count < maxTrades }

func (g *dailyGuard) inc() { g.count++ }
