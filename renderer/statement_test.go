package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/pnlbook/pnlbook"
)

func TestAmount_ShortFormat(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{25000000, "2.50 Cr"},
		{-25000000, "-2.50 Cr"},
		{150000, "1.50 L"},
		{2500, "2.5k"},
		{950, "950"},
		{-42, "-42"},
	}
	for _, tt := range tests {
		if got := Amount(pnlbook.INR(tt.value), false); got != tt.want {
			t.Errorf("Amount(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestStatementMarkdown(t *testing.T) {
	d := pnlbook.NewDate(2025, time.January, 6)
	trades := pnlbook.NewTradeBook()
	trades.Add(pnlbook.TradeRecord{
		Date: d, Symbol: "Z", Side: pnlbook.Buy,
		Qty: pnlbook.Q(10), Value: pnlbook.INR(100), Segment: pnlbook.SegmentNSEFNO,
	})
	trades.Add(pnlbook.TradeRecord{
		Date: d, Symbol: "Z", Side: pnlbook.Sell,
		Qty: pnlbook.Q(10), Value: pnlbook.INR(160), Segment: pnlbook.SegmentNSEFNO,
	})

	s, err := pnlbook.Reconcile(pnlbook.Inputs{
		Bills:    pnlbook.BillMap{d: pnlbook.INR(500)},
		Expenses: pnlbook.ExpenseMap{d: pnlbook.INR(20)},
		Primary:  trades,
	})
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}

	md := StatementMarkdown(s, false)
	for _, want := range []string{
		"# Profit & Loss Statement",
		"## FY 2024-2025",
		"06 Jan 2025",
		"| 500 |", // bill
	} {
		if !strings.Contains(md, want) {
			t.Errorf("statement markdown missing %q:\n%s", want, md)
		}
	}
}

func TestStatementMarkdown_TradeOnlyDateShowsNA(t *testing.T) {
	d := pnlbook.NewDate(2025, time.January, 6)
	trades := pnlbook.NewTradeBook()
	trades.Add(pnlbook.TradeRecord{
		Date: d, Symbol: "Z", Side: pnlbook.Buy,
		Qty: pnlbook.Q(10), Value: pnlbook.INR(100), Segment: pnlbook.SegmentNSEFNO,
	})

	s, err := pnlbook.Reconcile(pnlbook.Inputs{Secondary: trades})
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}

	md := StatementMarkdown(s, false)
	if !strings.Contains(md, "| NA |") {
		t.Errorf("trade-only date must display NA for gross profit:\n%s", md)
	}
}

func TestPositionsMarkdown(t *testing.T) {
	matches := []pnlbook.MatchedPosition{{
		Symbol:     "NIFTY26Jun2025CE25000",
		BuyDate:    pnlbook.NewDate(2025, time.January, 6),
		SellDate:   pnlbook.NewDate(2025, time.January, 8),
		Qty:        pnlbook.Q(50),
		BuyAmount:  pnlbook.INR(1000),
		SellAmount: pnlbook.INR(1200),
		PnL:        pnlbook.INR(200),
	}}

	md := PositionsMarkdown(matches, false)
	for _, want := range []string{"# Matched Positions (1)", "NIFTY26Jun2025CE25000", "06/01/2025", "08/01/2025"} {
		if !strings.Contains(md, want) {
			t.Errorf("positions markdown missing %q:\n%s", want, md)
		}
	}
}
