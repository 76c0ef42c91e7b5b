package pnlbook

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// KeyFormat is the format used to key records by trade date, as broker feeds do.
const KeyFormat = "02/01/2006"

// ISOFormat is the alternate date encoding found in contract-note archives.
const ISOFormat = "2006-01-02"

// Date represents a trade date with day-level granularity.
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Year returns current year.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns current day of the month.
func (d Date) Day() int { return d.d }

// String formats the date in the broker key format DD/MM/YYYY.
func (d Date) String() string { return d.time().Format(KeyFormat) }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool {
	return d.y == 0 && d.m == 0 && d.d == 0
}

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Format returns a textual representation of the date value formatted according to the layout defined by the argument.
//
//	See the documentation for the [time.Format].
func (d Date) Format(format string) string { return d.time().Format(format) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return NewDate(d.y, d.m, d.d+i) }

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// ParseTradeDate parses a date as encoded by any of the feeds.
//
// Three encodings coexist in the wild: "2006-01-02" (contract notes),
// "02/01/2006" (bills) and "2006_01_02" (the network tradebook keys its dates
// with underscores). All of them resolve to the same Date.
func ParseTradeDate(str string) (Date, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return Date{}, fmt.Errorf("empty date")
	}
	var layout string
	switch {
	case strings.Contains(str, "_"):
		layout = "2006_01_02"
	case strings.Contains(str, "/"):
		layout = KeyFormat
	default:
		layout = ISOFormat
	}
	on, err := time.Parse(layout, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid trade date %q: %w", str, err)
	}
	return NewDate(on.Date()), nil
}

// MustParse is like ParseTradeDate but panics on error.
func MustParse(str string) Date {
	d, err := ParseTradeDate(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// FiscalYear returns the label of the fiscal year the date belongs to.
//
// A fiscal year runs from 1 April to 31 March: 31 March 2025 belongs to
// "2024-2025", 1 April 2025 to "2025-2026". Labels sort chronologically.
func (d Date) FiscalYear() string {
	if d.m >= time.April {
		return fmt.Sprintf("%d-%d", d.y, d.y+1)
	}
	return fmt.Sprintf("%d-%d", d.y-1, d.y)
}

// UnmarshalJSON implements the json specific way to unmarshall a date from a json string.
func (j *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	d, err := ParseTradeDate(str)
	if err != nil {
		return err
	}
	*j = d
	return nil
}

func (j Date) MarshalJSON() ([]byte, error) {
	str := j.String()
	return json.Marshal(&str)
}

// check that a Date pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
