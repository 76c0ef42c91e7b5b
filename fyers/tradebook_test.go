package fyers

import (
	"testing"
	"time"

	"github.com/pnlbook/pnlbook"
)

func TestParseTradebook(t *testing.T) {
	payload := map[string]urlDay{
		"2025_01_06": {
			S: "ok",
			TradeBook: []urlTrade{
				{Exchange: 10, ExchangeOrderNo: "O1", Segment: 11, Side: 1,
					Symbol: "NSE:NIFTY26Jun2025CE25000", TradedQty: 50, TradeValue: 1000},
				{Exchange: 10, ExchangeOrderNo: "O2", Segment: 11, Side: -1,
					Symbol: "NSE:NIFTY26Jun2025CE25000", TradedQty: 20, TradeValue: 500},
				{Exchange: 10, ExchangeOrderNo: "O3", Segment: 11, Side: 0,
					Symbol: "NSE:BADSIDE", TradedQty: 1, TradeValue: 1},
			},
		},
		"garbage": {TradeBook: []urlTrade{{Exchange: 10, Side: 1, Symbol: "X", TradedQty: 1, TradeValue: 1}}},
	}

	book, expenses, err := parseTradebook(payload)
	if err != nil {
		t.Fatalf("parseTradebook() error = %v", err)
	}

	d := pnlbook.NewDate(2025, time.January, 6)
	day := book.Day(d)
	if day == nil {
		t.Fatal("expected trades on 06/01/2025")
	}
	// the exchange prefix is stripped from symbols
	stats := day["NIFTY26Jun2025CE25000"]
	if stats == nil {
		t.Fatalf("expected NIFTY26Jun2025CE25000, got %v", day)
	}
	if !stats.Buy.Qty.Equal(pnlbook.Q(50)) || !stats.Sell.Qty.Equal(pnlbook.Q(20)) {
		t.Errorf("stats = buy %s sell %s, want buy 50 sell 20", stats.Buy.Qty, stats.Sell.Qty)
	}
	if stats.Segment != pnlbook.SegmentNSEFNO {
		t.Errorf("segment = %q, want %q", stats.Segment, pnlbook.SegmentNSEFNO)
	}
	if _, ok := day["BADSIDE"]; ok {
		t.Error("fills with an unknown side code must be dropped")
	}

	if book.Len() != 1 {
		t.Errorf("payload with an unparseable date key must be dropped, got %d dates", book.Len())
	}
	if expenses[d].IsZero() {
		t.Error("expected estimated charges for the session")
	}
}
