package renderer

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/pnlbook/pnlbook"
)

// TradesMarkdown renders the per-instrument detail of one date, classifying
// each instrument's activity the way the statement breaks it down: expiry
// write-offs, intraday matches, carried buys, FIFO sells.
func TradesMarkdown(date pnlbook.Date, results map[string]*pnlbook.DayResult, full bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Trades on %s\n\n", date.Format("02 Jan 2006"))

	if len(results) == 0 {
		fmt.Fprint(&b, "No trades on this date.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Symbol | Kind | Value | TPL |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|")

	for _, symbol := range slices.Sorted(maps.Keys(results)) {
		r := results[symbol]
		stats := r.Stats
		buyQty, sellQty := stats.Buy.Qty, stats.Sell.Qty

		switch {
		case stats.Expiry && buyQty.IsPositive() && sellQty.IsZero():
			row(&b, symbol, "BUYexp", stats.Buy.Value, r.Expiry, full)
		case stats.Expiry && sellQty.IsPositive() && buyQty.IsZero():
			row(&b, symbol, "SELLexp", stats.Sell.Value, r.SellPnL, full)
		case buyQty.IsPositive() && sellQty.IsPositive():
			matched := buyQty.Min(sellQty)
			buyLeg := stats.Buy.AvgPrice().Mul(matched)
			sellLeg := stats.Sell.AvgPrice().Mul(matched)
			value := buyLeg
			if sellLeg.GreaterThan(buyLeg) {
				value = sellLeg
			}
			row(&b, symbol, "Intraday", value, r.Intraday, full)
			if r.UnmatchedBuy.IsPositive() {
				row(&b, symbol, "BUY", stats.Buy.AvgPrice().Mul(r.UnmatchedBuy), pnlbook.Money{}, full)
			}
			if rem := sellQty.Sub(matched); rem.IsPositive() {
				row(&b, symbol, "SELL", stats.Sell.AvgPrice().Mul(rem), r.SellPnL, full)
			}
		case buyQty.IsPositive():
			row(&b, symbol, "BUY", stats.Buy.Value, pnlbook.Money{}, full)
		case sellQty.IsPositive():
			row(&b, symbol, "SELL", stats.Sell.Value, r.SellPnL, full)
		}
	}

	return b.String()
}

func row(b *strings.Builder, symbol, kind string, value, pnl pnlbook.Money, full bool) {
	tpl := ""
	if kind != "BUY" {
		tpl = Amount(pnl, full)
	}
	fmt.Fprintf(b, "| %s | %s | %s | %s |\n", symbol, kind, Amount(value, full), tpl)
}
