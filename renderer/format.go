// Package renderer turns reconciliation results into markdown reports.
package renderer

import (
	"fmt"
	"math"

	"github.com/pnlbook/pnlbook"
)

// Amount formats a rupee amount. The short form scales Indian style:
// crores (Cr), lakhs (L), thousands (k). The full form is the exact figure
// with the currency symbol.
func Amount(m pnlbook.Money, full bool) string {
	if full {
		return m.String()
	}
	v := m.AsFloat()
	abs := math.Abs(v)
	sign := ""
	if v < 0 {
		sign = "-"
	}
	switch {
	case abs >= 1e7:
		return fmt.Sprintf("%s%.2f Cr", sign, abs/1e7)
	case abs >= 1e5:
		return fmt.Sprintf("%s%.2f L", sign, abs/1e5)
	case abs >= 1e3:
		return fmt.Sprintf("%s%.1fk", sign, abs/1e3)
	default:
		return fmt.Sprintf("%s%.0f", sign, abs)
	}
}
