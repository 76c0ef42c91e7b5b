package fyers

import (
	"fmt"
	"strings"

	"github.com/pnlbook/pnlbook"
)

// urlTrade is one fill of the tradebook endpoint. Sides are signed integers,
// segments and exchanges numeric codes.
type urlTrade struct {
	ClientID        string  `json:"clientId"`
	Exchange        int     `json:"exchange"`
	ExchangeOrderNo string  `json:"exchangeOrderNo"`
	OrderDateTime   string  `json:"orderDateTime"`
	Segment         int     `json:"segment"`
	Side            int     `json:"side"`
	Symbol          string  `json:"symbol"`
	TradeNumber     string  `json:"tradeNumber"`
	TradePrice      float64 `json:"tradePrice"`
	TradeValue      float64 `json:"tradeValue"`
	TradedQty       float64 `json:"tradedQty"`
}

// urlDay is the per-date payload of the endpoint, keyed by a YYYY_MM_DD date.
type urlDay struct {
	Code      int        `json:"code"`
	Message   string     `json:"message"`
	S         string     `json:"s"`
	TradeBook []urlTrade `json:"tradeBook"`
}

// FetchTradebook retrieves the live tradebook from the endpoint and returns
// the secondary trade book plus the estimated charges per session date.
//
// The endpoint ships no expense ledger; charges are reconstructed from the
// raw fills with the statutory schedule so that trade-only dates still get an
// expense figure.
func FetchTradebook(endpoint string) (*pnlbook.TradeBook, pnlbook.ExpenseMap, error) {
	var payload map[string]urlDay
	if err := jwget(daily(), endpoint, &payload); err != nil {
		return nil, nil, fmt.Errorf("cannot fetch tradebook from %q: %w", endpoint, err)
	}
	return parseTradebook(payload)
}

func parseTradebook(payload map[string]urlDay) (*pnlbook.TradeBook, pnlbook.ExpenseMap, error) {
	book := pnlbook.NewTradeBook()
	expenses := make(pnlbook.ExpenseMap)

	for dateKey, day := range payload {
		date, err := pnlbook.ParseTradeDate(dateKey)
		if err != nil {
			continue // dateless payloads are dropped
		}

		executions := make([]pnlbook.Execution, 0, len(day.TradeBook))
		for _, t := range day.TradeBook {
			side, err := pnlbook.SideFromCode(t.Side)
			if err != nil {
				continue
			}
			// the feed prefixes symbols with the exchange, e.g. "NSE:NIFTY..."
			symbol := t.Symbol
			if _, after, found := strings.Cut(symbol, ":"); found {
				symbol = after
			}
			segment := pnlbook.SegmentFromCodes(t.Segment, t.Exchange)

			book.Add(pnlbook.TradeRecord{
				Date:    date,
				Symbol:  symbol,
				Side:    side,
				Qty:     pnlbook.Q(t.TradedQty),
				Value:   pnlbook.INR(t.TradeValue),
				Segment: segment,
			})
			executions = append(executions, pnlbook.Execution{
				OrderID:  t.ExchangeOrderNo,
				Symbol:   symbol,
				Exchange: t.Exchange,
				Side:     side,
				Qty:      pnlbook.Q(t.TradedQty),
				Value:    pnlbook.INR(t.TradeValue),
			})
		}
		expenses[date] = pnlbook.EstimateCharges(executions)
	}
	return book, expenses, nil
}
