package formatter

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount accountant-style: comma thousands separators,
// two decimal places, parentheses for negatives. Zero renders as "0.00".
func FormatMoney(d decimal.Decimal) string {
	negative := d.IsNegative()
	fixed := d.Abs().StringFixed(2)

	dot := strings.Index(fixed, ".")
	whole, frac := fixed[:dot], fixed[dot:]

	var b strings.Builder
	lead := len(whole) % 3
	if lead > 0 {
		b.WriteString(whole[:lead])
	}
	for i := lead; i < len(whole); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(whole[i : i+3])
	}
	b.WriteString(frac)

	if negative {
		return "(" + b.String() + ")"
	}
	return b.String()
}
