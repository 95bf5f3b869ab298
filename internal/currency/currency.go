package currency

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const symbol = "$"

// Digits strips every non-digit character from value.
func Digits(value string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, value)
}

// Format renders a raw income string as a US dollar amount with thousands
// separators ("1000" -> "$1,000"). Input without any digit yields "".
func Format(value string) string {
	digits := Digits(value)
	if digits == "" {
		return ""
	}

	amount, err := decimal.NewFromString(digits)
	if err != nil {
		return ""
	}

	return symbol + humanize.BigComma(amount.BigInt())
}
