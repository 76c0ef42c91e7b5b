// Package fyers ingests the two raw trade sources of the broker: the yearly
// contract-note ZIP archive and the live tradebook endpoint. It produces the
// normalized record streams the pnlbook engine consumes.
//
// Ingestion is deliberately forgiving: a source that cannot be read degrades
// to empty maps so the other source still gets processed. Records missing
// their date are dropped.
package fyers

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/pnlbook/pnlbook"
)

// billEntry is one line of a bills_*.json file. The feed is inconsistent
// about field names: date or trade_date, bill_amt or turnover.
type billEntry struct {
	Date      string   `json:"date"`
	TradeDate string   `json:"trade_date"`
	BillAmt   *float64 `json:"bill_amt"`
	Turnover  *float64 `json:"turnover"`
}

// expenseEntry is one line of an expense_*.json file, already itemized into
// the broker's charge heads.
type expenseEntry struct {
	TradeDate      string  `json:"trade_date"`
	SebiTOC        float64 `json:"sebi_toc"`
	ExchangeCharge float64 `json:"exchange_txn_charge"`
	Brokerage      float64 `json:"brokerage"`
	CMCharge       float64 `json:"cm_charge"`
	STT            float64 `json:"stt"`
	GST            float64 `json:"gst"`
	StampDuty      float64 `json:"stamp_duty"`
	IPFT           float64 `json:"ipft"`
}

// tradeEntry is one line of a tradebooks_*.json file.
type tradeEntry struct {
	Date      string  `json:"date"`
	TradeDate string  `json:"trade_date"`
	Symbol    string  `json:"symbol"`
	Type      string  `json:"type"`
	Qty       float64 `json:"qty"`
	TradeVal  float64 `json:"trade_val"`
	Segment   string  `json:"segment"`
}

// records extracts the DATA array nested in the archive's response wrapper
// {"s": ..., "data": {"DATA": [...]}} and decodes each element into T.
func records[T any](content []byte) ([]T, error) {
	var jobj any
	if err := json.Unmarshal(content, &jobj); err != nil {
		return nil, fmt.Errorf("cannot parse archive file: %w", err)
	}
	jval, err := jsonpath.Get("$.data.DATA", jobj)
	if err != nil {
		return nil, fmt.Errorf("no DATA array in archive file: %w", err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("DATA is not an array")
	}

	out := make([]T, 0, len(jlist))
	for _, item := range jlist {
		// round-trip through json to apply the record's field tags
		raw, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("cannot decode archive record: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Archive gives access to the record streams of one contract-note ZIP.
type Archive struct {
	zr *zip.Reader
}

// OpenArchive opens the contract-note ZIP at path.
func OpenArchive(path string) (*Archive, func() error, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open archive %q: %w", path, err)
	}
	return &Archive{zr: &rc.Reader}, rc.Close, nil
}

// NewArchive wraps an already open zip.Reader, for tests and callers that
// fetched the archive themselves.
func NewArchive(zr *zip.Reader) *Archive { return &Archive{zr: zr} }

// eachFile reads every archive file under dir whose name contains marker and
// ends in .json, passing its content to fn. Unreadable or malformed files are
// logged and skipped: one bad file must not drop the rest of the source.
func (a *Archive) eachFile(dir, marker string, fn func(content []byte) error) {
	for _, f := range a.zr.File {
		if !strings.HasPrefix(f.Name, dir+"/") || !strings.Contains(f.Name, marker) || !strings.HasSuffix(f.Name, ".json") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			log.Printf("skipping archive file %q: %v", f.Name, err)
			continue
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			log.Printf("skipping archive file %q: %v", f.Name, err)
			continue
		}
		if err := fn(content); err != nil {
			log.Printf("skipping archive file %q: %v", f.Name, err)
		}
	}
}

// Bills reads all bill files and sums bill amounts per date. A record's date
// is the first non-empty of its two date fields, its amount the first
// non-nil of bill_amt and turnover; zero amounts are ignored.
func (a *Archive) Bills() pnlbook.BillMap {
	bills := make(pnlbook.BillMap)
	a.eachFile("fybills", "bills_", func(content []byte) error {
		entries, err := records[billEntry](content)
		if err != nil {
			return err
		}
		for _, e := range entries {
			dateStr := e.Date
			if dateStr == "" {
				dateStr = e.TradeDate
			}
			date, err := pnlbook.ParseTradeDate(dateStr)
			if err != nil {
				continue // dateless records are dropped
			}
			amount := 0.0
			if e.BillAmt != nil {
				amount = *e.BillAmt
			} else if e.Turnover != nil {
				amount = *e.Turnover
			}
			if amount == 0 {
				continue
			}
			bills[date] = bills[date].Add(pnlbook.INR(amount))
		}
		return nil
	})
	return bills
}

// Expenses reads all expense files and sums the itemized charge heads into
// one total per date.
func (a *Archive) Expenses() pnlbook.ExpenseMap {
	expenses := make(pnlbook.ExpenseMap)
	a.eachFile("fyexpense", "expense_", func(content []byte) error {
		entries, err := records[expenseEntry](content)
		if err != nil {
			return err
		}
		for _, e := range entries {
			date, err := pnlbook.ParseTradeDate(e.TradeDate)
			if err != nil {
				continue
			}
			total := e.SebiTOC + e.ExchangeCharge + e.Brokerage + e.CMCharge +
				e.STT + e.GST + e.StampDuty + e.IPFT
			expenses[date] = expenses[date].Add(pnlbook.INR(total))
		}
		return nil
	})
	return expenses
}

// TradeBook reads all tradebook files into the primary trade book.
func (a *Archive) TradeBook() *pnlbook.TradeBook {
	book := pnlbook.NewTradeBook()
	a.eachFile("fytradebooks", "tradebooks_", func(content []byte) error {
		entries, err := records[tradeEntry](content)
		if err != nil {
			return err
		}
		for _, e := range entries {
			dateStr := e.Date
			if dateStr == "" {
				dateStr = e.TradeDate
			}
			date, err := pnlbook.ParseTradeDate(dateStr)
			if err != nil {
				continue
			}
			side, err := pnlbook.ParseSide(e.Type)
			if err != nil {
				continue
			}
			segment := e.Segment
			if segment == "" {
				segment = pnlbook.SegmentUnknown
			}
			book.Add(pnlbook.TradeRecord{
				Date:    date,
				Symbol:  e.Symbol,
				Side:    side,
				Qty:     pnlbook.Q(e.Qty),
				Value:   pnlbook.INR(e.TradeVal),
				Segment: segment,
			})
		}
		return nil
	})
	return book
}
