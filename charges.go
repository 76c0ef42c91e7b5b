package pnlbook

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Execution is one raw fill from the network tradebook, at the granularity the
// charge schedule needs: charges depend on the order, the exchange and the
// side, none of which survive the per-day aggregation into DailyStats.
type Execution struct {
	OrderID  string
	Symbol   string
	Exchange int // exchange code of the feed (10 NSE, 12 BSE)
	Side     Side
	Qty      Quantity
	Value    Money
}

// Statutory charge schedule for Indian F&O trades. The network feed ships no
// expense ledger, so the charges of its sessions are reconstructed from this
// schedule.
var (
	brokeragePerOrder = INR(20)
	sttRate           = decimal.RequireFromString("0.001")     // 0.1% on sells
	nseTxnRate        = decimal.RequireFromString("0.0003503") // NSE exchange charge
	bseIndexTxnRate   = decimal.RequireFromString("0.000325")  // SENSEX, BANKEX
	bseDefaultTxnRate = decimal.RequireFromString("0.00005")   // SENSEX 50 and the rest
	sebiPerCrore      = INR(10)
	stampRate         = decimal.RequireFromString("0.00003") // 0.003% on buys
	ipftPerCrore      = INR(50)                              // NSE only
	gstRate           = decimal.RequireFromString("0.18")
)

var crore = Q(10_000_000)

// perCrore charges a flat rupee amount per crore of notional.
func perCrore(notional Money, amountPerCrore Money) Money {
	return amountPerCrore.MulRate(notional.Div(crore).value)
}

// bseTxnCharge selects the BSE exchange-charge rate from the symbol.
//
// The index-family check runs in a fixed order: SENSEX 50 contracts also
// contain "SENSEX", so the "50" marker must be tested on the SENSEX branch
// before the plain index rate applies.
func bseTxnCharge(symbol string, value Money) Money {
	switch {
	case strings.Contains(symbol, "SENSEX") && !strings.Contains(symbol, "50"):
		return value.MulRate(bseIndexTxnRate)
	case strings.Contains(symbol, "BANKEX"):
		return value.MulRate(bseIndexTxnRate)
	default:
		return value.MulRate(bseDefaultTxnRate)
	}
}

// EstimateCharges computes the total transaction charges for one session
// (all executions of one date), following the statutory schedule:
//
//   - brokerage: a flat fee once per distinct order
//   - STT on sell-side notional
//   - exchange transaction charge, rate per exchange and index family
//   - SEBI fee per crore of notional, both sides
//   - stamp duty on buy-side notional
//   - NSE IPFT per crore of notional, NSE only
//   - GST on brokerage + exchange charge + SEBI + IPFT (STT and stamp duty
//     are outside the GST base)
func EstimateCharges(executions []Execution) Money {
	orders := make(map[string]bool)
	var brokerage, stt, exchangeTxn, sebi, stamp, ipft Money

	for _, exec := range executions {
		if !orders[exec.OrderID] {
			orders[exec.OrderID] = true
			brokerage = brokerage.Add(brokeragePerOrder)
		}

		if exec.Side == Sell {
			stt = stt.Add(exec.Value.MulRate(sttRate))
		}

		switch exec.Exchange {
		case exchangeNSE:
			exchangeTxn = exchangeTxn.Add(exec.Value.MulRate(nseTxnRate))
		case exchangeBSE:
			exchangeTxn = exchangeTxn.Add(bseTxnCharge(exec.Symbol, exec.Value))
		}

		sebi = sebi.Add(perCrore(exec.Value, sebiPerCrore))

		if exec.Side == Buy {
			stamp = stamp.Add(exec.Value.MulRate(stampRate))
		}

		if exec.Exchange == exchangeNSE {
			ipft = ipft.Add(perCrore(exec.Value, ipftPerCrore))
		}
	}

	gstBase := brokerage.Add(exchangeTxn).Add(sebi).Add(ipft)
	gst := gstBase.MulRate(gstRate)

	return brokerage.Add(stt).Add(exchangeTxn).Add(sebi).Add(stamp).Add(ipft).Add(gst)
}
