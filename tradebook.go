package pnlbook

import (
	"maps"
	"slices"
)

// TradeStats accumulates one side of a day's activity in an instrument.
type TradeStats struct {
	Qty   Quantity
	Value Money
}

func (s *TradeStats) add(qty Quantity, value Money) {
	s.Qty = s.Qty.Add(qty)
	s.Value = s.Value.Add(value)
}

// AvgPrice returns Value/Qty. Callers must check Qty is positive first; the
// matcher never averages an empty side.
func (s TradeStats) AvgPrice() Money { return s.Value.Div(s.Qty) }

// DailyStats aggregates all trades of one instrument on one date.
type DailyStats struct {
	Buy     TradeStats
	Sell    TradeStats
	Segment string
	Expiry  bool // the instrument expires on this very date
}

// TradeBook holds the aggregated activity of one feed: date, then instrument
// symbol, to daily stats. It is built once per ingestion pass and treated as
// read-only by the merge and matching stages.
type TradeBook struct {
	days map[Date]map[string]*DailyStats
}

// NewTradeBook creates an empty trade book.
func NewTradeBook() *TradeBook {
	return &TradeBook{days: make(map[Date]map[string]*DailyStats)}
}

// Add folds one normalized trade record into the book.
func (b *TradeBook) Add(r TradeRecord) {
	day, ok := b.days[r.Date]
	if !ok {
		day = make(map[string]*DailyStats)
		b.days[r.Date] = day
	}
	stats, ok := day[r.Symbol]
	if !ok {
		stats = &DailyStats{
			Segment: r.Segment,
			Expiry:  IsExpiry(r.Symbol, r.Date, r.Segment),
		}
		day[r.Symbol] = stats
	}
	switch r.Side {
	case Buy:
		stats.Buy.add(r.Qty, r.Value)
	case Sell:
		stats.Sell.add(r.Qty, r.Value)
	}
}

// Len returns the number of dates with activity.
func (b *TradeBook) Len() int { return len(b.days) }

// Day returns the per-instrument stats for a date, or nil.
func (b *TradeBook) Day(d Date) map[string]*DailyStats { return b.days[d] }

// Dates returns all dates with activity in ascending chronological order.
func (b *TradeBook) Dates() []Date {
	dates := slices.Collect(maps.Keys(b.days))
	slices.SortFunc(dates, func(a, b Date) int {
		if a.Before(b) {
			return -1
		}
		if a.After(b) {
			return 1
		}
		return 0
	})
	return dates
}

// Merge combines the authoritative contract-note book with the network feed's
// book. The override is date-level: a date present in primary keeps the
// primary entry wholesale, a date only in secondary is copied wholesale. No
// instrument-level merge happens.
func Merge(primary, secondary *TradeBook) *TradeBook {
	merged := NewTradeBook()
	for d, day := range primary.days {
		merged.days[d] = day
	}
	for d, day := range secondary.days {
		if _, ok := merged.days[d]; !ok {
			merged.days[d] = day
		}
	}
	return merged
}

// BillMap holds bill amounts by date, pre-summed per date by ingestion.
type BillMap map[Date]Money

// ExpenseMap holds transaction-expense totals by date.
type ExpenseMap map[Date]Money
