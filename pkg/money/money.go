// Package money formats Vietnamese đồng amounts for display.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const Symbol = "₫"

var printer = message.NewPrinter(language.Vietnamese)

// FormatVND renders an amount with vi-VN digit grouping, e.g. "25.000₫".
// VND has no minor unit so the amount is rounded to whole đồng.
func FormatVND(amount decimal.Decimal) string {
	return printer.Sprintf("%d", amount.Round(0).IntPart()) + Symbol
}

// Price pairs a decimal amount with its display string.
type Price struct {
	Value     decimal.Decimal `json:"value"`
	Formatted string          `json:"formatted"`
}

func NewPrice(amount decimal.Decimal) Price {
	return Price{Value: amount, Formatted: FormatVND(amount)}
}
