package formatter

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"5", "5.00"},
		{"1250.509", "1,250.51"},
		{"-300", "(300.00)"},
		{"1234567.8", "1,234,567.80"},
		{"-1234567.8", "(1,234,567.80)"},
		{"999", "999.00"},
		{"1000", "1,000.00"},
		{"-0.005", "(0.01)"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatMoney(dec(tc.in)))
		})
	}
}
