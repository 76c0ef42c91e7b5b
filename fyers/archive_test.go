package fyers

import (
	"archive/zip"
	"bytes"
	"testing"
	"time"

	"github.com/pnlbook/pnlbook"
)

// buildArchive assembles an in-memory contract-note ZIP from name -> content.
func buildArchive(t *testing.T, files map[string]string) *Archive {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("cannot create zip entry %q: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("cannot write zip entry %q: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("cannot close zip: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("cannot reopen zip: %v", err)
	}
	return NewArchive(zr)
}

func TestArchive_Bills(t *testing.T) {
	a := buildArchive(t, map[string]string{
		"fybills/bills_2024.json": `{"s":"ok","data":{"DATA":[
			{"date":"06/01/2025","bill_amt":100.5},
			{"trade_date":"06/01/2025","turnover":50},
			{"date":"07/01/2025","bill_amt":0},
			{"bill_amt":999}
		]}}`,
		"fybills/ignored.txt": "not json",
	})

	bills := a.Bills()
	d := pnlbook.NewDate(2025, time.January, 6)
	if len(bills) != 1 {
		t.Fatalf("expected 1 bill date, got %d", len(bills))
	}
	// same-date entries sum, the zero amount and the dateless record drop
	if !bills[d].Equal(pnlbook.INR(150.5)) {
		t.Errorf("bill for %s = %s, want ₹150.50", d, bills[d])
	}
}

func TestArchive_Expenses(t *testing.T) {
	a := buildArchive(t, map[string]string{
		"fyexpense/expense_2024.json": `{"s":"ok","data":{"DATA":[
			{"trade_date":"06/01/2025","brokerage":20,"stt":10,"gst":4,
			 "sebi_toc":0.25,"exchange_txn_charge":5,"cm_charge":1,
			 "stamp_duty":2,"ipft":0.5}
		]}}`,
	})

	expenses := a.Expenses()
	d := pnlbook.NewDate(2025, time.January, 6)
	if !expenses[d].Equal(pnlbook.INR(42.75)) {
		t.Errorf("expense for %s = %s, want ₹42.75 (sum of all heads)", d, expenses[d])
	}
}

func TestArchive_TradeBook(t *testing.T) {
	a := buildArchive(t, map[string]string{
		"fytradebooks/tradebooks_2024.json": `{"s":"ok","data":{"DATA":[
			{"date":"06/01/2025","symbol":"NIFTY26Jun2025CE25000","type":"BUY","qty":50,"trade_val":1000,"segment":"NSE_FNO"},
			{"date":"06/01/2025","symbol":"NIFTY26Jun2025CE25000","type":"SELL","qty":20,"trade_val":500,"segment":"NSE_FNO"},
			{"symbol":"NODATE","type":"BUY","qty":1,"trade_val":1},
			{"date":"06/01/2025","symbol":"BADSIDE","type":"HOLD","qty":1,"trade_val":1}
		]}}`,
	})

	book := a.TradeBook()
	d := pnlbook.NewDate(2025, time.January, 6)
	day := book.Day(d)
	if day == nil {
		t.Fatal("expected trades on 06/01/2025")
	}
	stats := day["NIFTY26Jun2025CE25000"]
	if stats == nil {
		t.Fatal("expected NIFTY26Jun2025CE25000 stats")
	}
	if !stats.Buy.Qty.Equal(pnlbook.Q(50)) || !stats.Sell.Qty.Equal(pnlbook.Q(20)) {
		t.Errorf("stats = buy %s sell %s, want buy 50 sell 20", stats.Buy.Qty, stats.Sell.Qty)
	}
	if stats.Segment != pnlbook.SegmentNSEFNO {
		t.Errorf("segment = %q, want %q", stats.Segment, pnlbook.SegmentNSEFNO)
	}
	if _, ok := day["NODATE"]; ok {
		t.Error("dateless records must be dropped")
	}
	if _, ok := day["BADSIDE"]; ok {
		t.Error("records with an unknown side must be dropped")
	}
}

func TestArchive_MalformedFileIsSkipped(t *testing.T) {
	a := buildArchive(t, map[string]string{
		"fybills/bills_bad.json":  `{not json`,
		"fybills/bills_good.json": `{"s":"ok","data":{"DATA":[{"date":"06/01/2025","bill_amt":10}]}}`,
	})

	bills := a.Bills()
	if len(bills) != 1 {
		t.Errorf("one malformed file must not drop the whole source, got %d bill dates", len(bills))
	}
}
