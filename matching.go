package pnlbook

import (
	"fmt"
	"maps"
	"slices"
)

// lot is a single unit of open inventory: the unmatched remainder of one
// day's buys, waiting for a later sell.
type lot struct {
	date  Date
	qty   Quantity
	price Money // average buy price of the originating day
}

// lots is an ordered FIFO queue, oldest lot first.
type lots []lot

// push appends a newly opened lot.
func (l lots) push(n lot) lots { return append(l, n) }

// front returns the oldest open lot. Callers must check the queue is not empty.
func (l lots) front() *lot { return &l[0] }

// popIfSpent drops the front lot once fully consumed.
func (l lots) popIfSpent() (lots, error) {
	if l[0].qty.IsNegative() {
		return nil, fmt.Errorf("lot %s of %s over-consumed: %s remaining", l[0].date, l[0].price, l[0].qty)
	}
	if l[0].qty.IsZero() {
		return l[1:], nil
	}
	return l, nil
}

// position is the open inventory of one instrument across the whole run.
type position struct {
	qty  Quantity
	lots lots
}

// MatchedPosition records one sell consuming one buy lot: a single realized
// round trip. Appended in consumption order, never mutated.
type MatchedPosition struct {
	Symbol     string
	BuyDate    Date
	SellDate   Date
	Qty        Quantity
	BuyAmount  Money
	SellAmount Money
	PnL        Money
}

// DayResult is the realized outcome for one instrument on one date.
type DayResult struct {
	Stats *DailyStats

	Intraday Money // same-day buy/sell offset
	SellPnL  Money // FIFO consumption of earlier lots
	Expiry   Money // write-off of a contract lapsing unsold

	UnmatchedBuy  Quantity // opened a new lot of this size
	UnmatchedSell Quantity // uncovered short: sold with no inventory left
}

// Total is the instrument's realized P&L for the date.
func (r *DayResult) Total() Money {
	return r.Intraday.Add(r.SellPnL).Add(r.Expiry)
}

// MatchTrades walks the merged trade book in strict chronological order and
// realizes P&L per instrument and date:
//
//   - a contract expiring unsold writes off its whole buy notional
//   - same-day buy and sell volume offsets at the day's average prices
//   - residual buys open a lot in the instrument's FIFO queue
//   - residual sells consume the queue oldest-first, one MatchedPosition per
//     consumption; a sell outliving the queue is recorded as an uncovered
//     short quantity and produces no further P&L
//
// Chronological order is mandatory: a sell may consume lots opened on any
// earlier date. Instruments are independent of each other; they are processed
// in symbol order only so results are reproducible.
func MatchTrades(book *TradeBook) (map[Date]map[string]*DayResult, []MatchedPosition, error) {
	results := make(map[Date]map[string]*DayResult, book.Len())
	var matched []MatchedPosition
	positions := make(map[string]*position)

	for _, date := range book.Dates() {
		day := book.Day(date)
		dayResults := make(map[string]*DayResult, len(day))
		results[date] = dayResults

		for _, symbol := range slices.Sorted(maps.Keys(day)) {
			stats := day[symbol]
			result := &DayResult{Stats: stats}
			dayResults[symbol] = result

			pos := positions[symbol]
			if pos == nil {
				pos = &position{}
				positions[symbol] = pos
			}

			buyQty, sellQty := stats.Buy.Qty, stats.Sell.Qty

			// Expiry write-off: the contract lapsed with nothing sold, the
			// whole buy notional is a realized loss and no inventory opens.
			if stats.Expiry && buyQty.IsPositive() && sellQty.IsZero() {
				result.Expiry = stats.Buy.Value.Neg()
				continue
			}

			matchedQty := buyQty.Min(sellQty)
			if matchedQty.IsPositive() {
				spread := stats.Sell.AvgPrice().Sub(stats.Buy.AvgPrice())
				result.Intraday = spread.Mul(matchedQty)
			}

			if remaining := buyQty.Sub(matchedQty); remaining.IsPositive() {
				pos.lots = pos.lots.push(lot{date: date, qty: remaining, price: stats.Buy.AvgPrice()})
				pos.qty = pos.qty.Add(remaining)
				result.UnmatchedBuy = remaining
			}

			remaining := sellQty.Sub(matchedQty)
			if !remaining.IsPositive() {
				continue
			}
			sellPrice := stats.Sell.AvgPrice()
			for remaining.IsPositive() && len(pos.lots) > 0 {
				open := pos.lots.front()
				consumed := open.qty.Min(remaining)

				pnl := sellPrice.Sub(open.price).Mul(consumed)
				result.SellPnL = result.SellPnL.Add(pnl)

				matched = append(matched, MatchedPosition{
					Symbol:     symbol,
					BuyDate:    open.date,
					SellDate:   date,
					Qty:        consumed,
					BuyAmount:  open.price.Mul(consumed),
					SellAmount: sellPrice.Mul(consumed),
					PnL:        pnl,
				})

				open.qty = open.qty.Sub(consumed)
				pos.qty = pos.qty.Sub(consumed)
				remaining = remaining.Sub(consumed)

				var err error
				if pos.lots, err = pos.lots.popIfSpent(); err != nil {
					// An inconsistent queue poisons every later date; abort
					// rather than emit partially matched results.
					return nil, nil, fmt.Errorf("position %s corrupted on %s: %w", symbol, date, err)
				}
			}
			if remaining.IsPositive() {
				result.UnmatchedSell = remaining
			}
		}
	}

	return results, matched, nil
}
