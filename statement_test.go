package pnlbook

import (
	"testing"
	"time"
)

func TestReconcile_BillDates(t *testing.T) {
	d := NewDate(2025, time.January, 6)

	primary := NewTradeBook()
	primary.Add(record(d, "Z", Buy, 30, 150))
	primary.Add(record(d, "Z", Sell, 30, 210)) // intraday +60

	s, err := Reconcile(Inputs{
		Bills:    BillMap{d: INR(500)},
		Expenses: ExpenseMap{d: INR(80)},
		Primary:  primary,
	})
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}

	if len(s.Years) != 1 || len(s.Years[0].Days) != 1 {
		t.Fatalf("expected a single day entry, got %+v", s.Years)
	}
	day := s.Years[0].Days[0]
	if !day.HasBill {
		t.Error("date with a bill record must be flagged HasBill")
	}
	if !day.PnL.Equal(INR(60)) {
		t.Errorf("PnL = %s, want ₹60", day.PnL)
	}
	if !day.NetPnL.Equal(INR(-20)) { // 60 - 80
		t.Errorf("NetPnL = %s, want -₹20", day.NetPnL)
	}
	// gross profit adds the charges back onto the (net) bill amount
	if !day.Gross.Equal(INR(580)) {
		t.Errorf("Gross = %s, want ₹580", day.Gross)
	}
}

func TestReconcile_TradeOnlyDateUsesEstimatedExpense(t *testing.T) {
	d := NewDate(2025, time.February, 10)

	secondary := NewTradeBook()
	secondary.Add(record(d, "Z", Buy, 30, 150))
	secondary.Add(record(d, "Z", Sell, 30, 210))

	s, err := Reconcile(Inputs{
		Secondary:         secondary,
		EstimatedExpenses: ExpenseMap{d: INR(25)},
	})
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}

	day := s.Years[0].Days[0]
	if day.HasBill {
		t.Error("trade-only date must not be flagged HasBill")
	}
	if !day.Expense.Equal(INR(25)) {
		t.Errorf("Expense = %s, want the estimated ₹25", day.Expense)
	}
	if !day.NetPnL.Equal(INR(35)) { // 60 - 25
		t.Errorf("NetPnL = %s, want ₹35", day.NetPnL)
	}
	if !day.Gross.IsZero() {
		t.Errorf("Gross = %s, want zero (displayed as NA)", day.Gross)
	}
}

func TestReconcile_FiscalYearGroupingAndOrder(t *testing.T) {
	// 31 March and 1 April of the same calendar year land in different
	// fiscal years; years and days are both most-recent-first.
	march := NewDate(2025, time.March, 31)
	april := NewDate(2025, time.April, 1)
	february := NewDate(2025, time.February, 3)

	primary := NewTradeBook()
	for _, d := range []Date{march, april, february} {
		primary.Add(record(d, "Z", Buy, 10, 100))
		primary.Add(record(d, "Z", Sell, 10, 110))
	}

	s, err := Reconcile(Inputs{Primary: primary})
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}

	if len(s.Years) != 2 {
		t.Fatalf("expected 2 fiscal years, got %d", len(s.Years))
	}
	if s.Years[0].FiscalYear != "2025-2026" || s.Years[1].FiscalYear != "2024-2025" {
		t.Errorf("years = [%s %s], want most recent first", s.Years[0].FiscalYear, s.Years[1].FiscalYear)
	}
	old := s.Years[1]
	if len(old.Days) != 2 || old.Days[0].Date != march || old.Days[1].Date != february {
		t.Errorf("days of %s not sorted date-descending: %v, %v", old.FiscalYear, old.Days[0].Date, old.Days[1].Date)
	}
}

func TestReconcile_YearTotals(t *testing.T) {
	d1 := NewDate(2024, time.June, 3)
	d2 := NewDate(2024, time.June, 4)

	primary := NewTradeBook()
	for _, d := range []Date{d1, d2} {
		primary.Add(record(d, "Z", Buy, 10, 100))
		primary.Add(record(d, "Z", Sell, 10, 150)) // +50 each day
	}

	s, err := Reconcile(Inputs{
		Bills:    BillMap{d1: INR(200), d2: INR(300)},
		Expenses: ExpenseMap{d1: INR(10), d2: INR(20)},
		Primary:  primary,
	})
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}

	totals := s.Years[0].Totals
	if !totals.BillAmount.Equal(INR(500)) {
		t.Errorf("total bills = %s, want ₹500", totals.BillAmount)
	}
	if !totals.Expense.Equal(INR(30)) {
		t.Errorf("total expense = %s, want ₹30", totals.Expense)
	}
	if !totals.PnL.Equal(INR(100)) {
		t.Errorf("total PnL = %s, want ₹100", totals.PnL)
	}
	if !totals.NetPnL.Equal(INR(70)) {
		t.Errorf("total NetPnL = %s, want ₹70", totals.NetPnL)
	}
	if !totals.Gross.Equal(INR(530)) {
		t.Errorf("total gross = %s, want ₹530", totals.Gross)
	}
}

func TestReconcile_EmptySources(t *testing.T) {
	s, err := Reconcile(Inputs{})
	if err != nil {
		t.Fatalf("Reconcile() with empty inputs error = %v", err)
	}
	if len(s.Years) != 0 || len(s.Matches) != 0 {
		t.Errorf("empty inputs must yield an empty statement, got %+v", s)
	}
}

func TestReconcile_BillDateWithoutTrades(t *testing.T) {
	d := NewDate(2025, time.January, 6)
	s, err := Reconcile(Inputs{Bills: BillMap{d: INR(500)}})
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	day := s.Years[0].Days[0]
	if !day.PnL.IsZero() {
		t.Errorf("PnL = %s, want zero for a bill-only date", day.PnL)
	}
	if !day.Gross.Equal(INR(500)) {
		t.Errorf("Gross = %s, want ₹500", day.Gross)
	}
}
