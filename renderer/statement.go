package renderer

import (
	"fmt"
	"strings"

	"github.com/pnlbook/pnlbook"
)

// StatementMarkdown renders the full fiscal-year statement: a global summary
// followed by one table per fiscal year, most recent first.
func StatementMarkdown(s *pnlbook.Statement, full bool) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Profit & Loss Statement\n\n")

	var global pnlbook.Totals
	for _, year := range s.Years {
		global.BillAmount = global.BillAmount.Add(year.Totals.BillAmount)
		global.Expense = global.Expense.Add(year.Totals.Expense)
		global.PnL = global.PnL.Add(year.Totals.PnL)
		global.NetPnL = global.NetPnL.Add(year.Totals.NetPnL)
		global.Gross = global.Gross.Add(year.Totals.Gross)
	}

	fmt.Fprint(&b, "## Summary\n\n")
	fmt.Fprintln(&b, "| Total Bills | Total Expenses | TPL | NTPL | Gross Profit |")
	fmt.Fprintln(&b, "|---:|---:|---:|---:|---:|")
	fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n\n",
		Amount(global.BillAmount, full),
		Amount(global.Expense, full),
		Amount(global.PnL, full),
		Amount(global.NetPnL, full),
		Amount(global.Gross, full),
	)

	for _, year := range s.Years {
		fmt.Fprintf(&b, "## FY %s\n\n", year.FiscalYear)
		fmt.Fprintln(&b, "| Date | Bill | Expense | TPL | NTPL | Gross P. |")
		fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|")
		for _, day := range year.Days {
			gross := "NA"
			if day.HasBill {
				gross = Amount(day.Gross, full)
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				day.Date.Format("02 Jan 2006"),
				Amount(day.BillAmount, full),
				Amount(day.Expense, full),
				Amount(day.PnL, full),
				Amount(day.NetPnL, full),
				gross,
			)
		}
		fmt.Fprintf(&b, "| **Total** | **%s** | **%s** | **%s** | **%s** | **%s** |\n\n",
			Amount(year.Totals.BillAmount, full),
			Amount(year.Totals.Expense, full),
			Amount(year.Totals.PnL, full),
			Amount(year.Totals.NetPnL, full),
			Amount(year.Totals.Gross, full),
		)
	}

	return b.String()
}

// PositionsMarkdown renders the matched positions: one row per lot
// consumption, in matching order, with the summed realized P&L.
func PositionsMarkdown(matches []pnlbook.MatchedPosition, full bool) string {
	var b strings.Builder

	var total pnlbook.Money
	for _, m := range matches {
		total = total.Add(m.PnL)
	}

	fmt.Fprintf(&b, "# Matched Positions (%d)\n\n", len(matches))
	fmt.Fprintf(&b, "Total TPL: %s\n\n", Amount(total, full))

	if len(matches) == 0 {
		return b.String()
	}

	fmt.Fprintln(&b, "| Symbol | Qty | Buy Date | Sell Date | Buy Amount | Sell Amount | TPL |")
	fmt.Fprintln(&b, "|:---|---:|:---|:---|---:|---:|---:|")
	for _, m := range matches {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			m.Symbol, m.Qty, m.BuyDate, m.SellDate,
			Amount(m.BuyAmount, full),
			Amount(m.SellAmount, full),
			Amount(m.PnL, full),
		)
	}

	return b.String()
}
