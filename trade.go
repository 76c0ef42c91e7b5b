package pnlbook

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Side indicates whether a trade bought or sold the instrument.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "unknown"
	}
}

// ParseSide parses the string side label used by the contract-note feed.
func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(s) {
	case "BUY":
		return Buy, nil
	case "SELL":
		return Sell, nil
	default:
		return 0, fmt.Errorf("unknown trade side: %q", s)
	}
}

// SideFromCode parses the signed integer side used by the network tradebook
// feed: +1 is a buy, -1 a sell.
func SideFromCode(code int) (Side, error) {
	switch code {
	case 1:
		return Buy, nil
	case -1:
		return Sell, nil
	default:
		return 0, fmt.Errorf("unknown trade side code: %d", code)
	}
}

// Segment tags of the exchange segments this ledger understands.
//
// The contract-note feed carries these labels verbatim; the network feed
// encodes them as integer segment/exchange codes resolved by SegmentFromCodes.
const (
	SegmentNSEFNO  = "NSE_FNO"
	SegmentBSEFNO  = "BSE_FNO"
	SegmentUnknown = "UNKNOWN"
)

// Exchange codes of the network tradebook feed.
const (
	exchangeNSE = 10
	exchangeBSE = 12
)

// SegmentFromCodes resolves the network feed's numeric segment and exchange
// codes into a segment tag. Segment code 11 always means NSE derivatives;
// otherwise the exchange code decides.
func SegmentFromCodes(segment, exchange int) string {
	if segment == 11 {
		return SegmentNSEFNO
	}
	switch exchange {
	case exchangeNSE:
		return SegmentNSEFNO
	case exchangeBSE:
		return SegmentBSEFNO
	default:
		return SegmentUnknown
	}
}

// TradeRecord is one normalized trade from either feed. Immutable once built.
type TradeRecord struct {
	Date    Date
	Symbol  string
	Side    Side
	Qty     Quantity
	Value   Money
	Segment string
}

// expiryRE matches the embedded day/month-abbreviation/year token of
// derivatives symbols, e.g. NIFTY25Jan2024CE21000.
var expiryRE = regexp.MustCompile(`(\d{1,2})([A-Za-z]{3})(\d{4})`)

var months = map[string]int{
	"Jan": 1, "Feb": 2, "Mar": 3, "Apr": 4,
	"May": 5, "Jun": 6, "Jul": 7, "Aug": 8,
	"Sep": 9, "Oct": 10, "Nov": 11, "Dec": 12,
}

// ExpiryFromSymbol extracts the contract expiry date embedded in a derivatives
// symbol. The second return is false when the symbol carries no parseable
// expiry token.
func ExpiryFromSymbol(symbol string) (Date, bool) {
	match := expiryRE.FindStringSubmatch(symbol)
	if match == nil {
		return Date{}, false
	}
	month, ok := months[match[2]]
	if !ok {
		return Date{}, false
	}
	day := 0
	for _, c := range match[1] {
		day = day*10 + int(c-'0')
	}
	year := 0
	for _, c := range match[3] {
		year = year*10 + int(c-'0')
	}
	return NewDate(year, time.Month(month), day), true
}

// IsExpiry reports whether a trade in symbol on the given date is trading the
// contract on its own expiry day. Only NSE derivatives are write-off
// candidates; other segments never expire in this ledger.
func IsExpiry(symbol string, on Date, segment string) bool {
	if segment != SegmentNSEFNO {
		return false
	}
	expiry, ok := ExpiryFromSymbol(symbol)
	return ok && expiry == on
}
