package pnlbook

import (
	"fmt"
	"maps"
	"slices"
)

// DayEntry is one date of the reconciled ledger.
type DayEntry struct {
	Date       Date
	BillAmount Money
	Expense    Money
	PnL        Money // realized trading P&L of the date (intraday + FIFO + expiry)
	NetPnL     Money // PnL - Expense
	Gross      Money // BillAmount + Expense, meaningful only when HasBill
	HasBill    bool  // trade-only dates have no bill and no gross figure
	Trades     map[string]*DailyStats
}

// Totals sums the ledger fields over a set of day entries.
type Totals struct {
	BillAmount Money
	Expense    Money
	PnL        Money
	NetPnL     Money
	Gross      Money
}

func (t *Totals) add(e DayEntry) {
	t.BillAmount = t.BillAmount.Add(e.BillAmount)
	t.Expense = t.Expense.Add(e.Expense)
	t.PnL = t.PnL.Add(e.PnL)
	t.NetPnL = t.NetPnL.Add(e.NetPnL)
	t.Gross = t.Gross.Add(e.Gross)
}

// YearSummary groups the day entries of one fiscal year (April to March),
// most recent date first, with summed totals.
type YearSummary struct {
	FiscalYear string
	Days       []DayEntry
	Totals     Totals
}

// Inputs are the three normalized record streams the engine consumes, fully
// materialized by the ingestion collaborators before processing starts. An
// ingestion source that failed contributes empty maps; the engine never fails
// on an empty source.
type Inputs struct {
	Bills    BillMap
	Expenses ExpenseMap // itemized expense ledger of the contract-note archive

	Primary   *TradeBook // contract-note archive, authoritative per date
	Secondary *TradeBook // network tradebook, fills missing dates

	// EstimatedExpenses carries the reconstructed charges of the network
	// feed's sessions, used only for dates absent from Expenses and Bills.
	EstimatedExpenses ExpenseMap
}

// Statement is the complete reconciliation result.
type Statement struct {
	Years   []YearSummary
	Results map[Date]map[string]*DayResult
	Matches []MatchedPosition
}

// Reconcile merges the two trade feeds, realizes P&L with FIFO matching, and
// folds the daily results into fiscal-year summaries. It is a pure function
// of its inputs: identical inputs yield an identical statement.
func Reconcile(in Inputs) (*Statement, error) {
	primary, secondary := in.Primary, in.Secondary
	if primary == nil {
		primary = NewTradeBook()
	}
	if secondary == nil {
		secondary = NewTradeBook()
	}
	book := Merge(primary, secondary)

	results, matches, err := MatchTrades(book)
	if err != nil {
		return nil, fmt.Errorf("matching trades: %w", err)
	}

	years := buildYears(in.Bills, in.Expenses, in.EstimatedExpenses, book, results)

	return &Statement{Years: years, Results: results, Matches: matches}, nil
}

// dayPnL sums the realized P&L of every instrument traded on a date.
func dayPnL(results map[Date]map[string]*DayResult, d Date) Money {
	var pnl Money
	for _, r := range results[d] {
		pnl = pnl.Add(r.Total())
	}
	return pnl
}

func buildYears(bills BillMap, expenses, estimated ExpenseMap, book *TradeBook, results map[Date]map[string]*DayResult) []YearSummary {
	byYear := make(map[string][]DayEntry)

	// Dates with a bill: the itemized expense ledger applies, and gross
	// profit is the bill amount with charges added back.
	for d, bill := range bills {
		expense := expenses[d]
		pnl := dayPnL(results, d)
		byYear[d.FiscalYear()] = append(byYear[d.FiscalYear()], DayEntry{
			Date:       d,
			BillAmount: bill,
			Expense:    expense,
			PnL:        pnl,
			NetPnL:     pnl.Sub(expense),
			Gross:      bill.Add(expense),
			HasBill:    true,
			Trades:     book.Day(d),
		})
	}

	// Dates with trades but no bill: fall back to the network feed's
	// estimated charges; no gross figure exists for these.
	for _, d := range book.Dates() {
		if _, ok := bills[d]; ok {
			continue
		}
		expense := estimated[d]
		pnl := dayPnL(results, d)
		byYear[d.FiscalYear()] = append(byYear[d.FiscalYear()], DayEntry{
			Date:    d,
			Expense: expense,
			PnL:     pnl,
			NetPnL:  pnl.Sub(expense),
			Trades:  book.Day(d),
		})
	}

	years := make([]YearSummary, 0, len(byYear))
	for _, fy := range slices.Sorted(maps.Keys(byYear)) {
		days := byYear[fy]
		slices.SortFunc(days, func(a, b DayEntry) int {
			// most recent first
			if a.Date.After(b.Date) {
				return -1
			}
			if a.Date.Before(b.Date) {
				return 1
			}
			return 0
		})
		summary := YearSummary{FiscalYear: fy, Days: days}
		for _, e := range days {
			summary.Totals.add(e)
		}
		years = append(years, summary)
	}
	// fiscal-year labels sort chronologically; most recent year first
	slices.Reverse(years)
	return years
}
