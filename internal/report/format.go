// Package report renders estimates for people: VND amounts, areas, chart
// shares and a plain-text quote.
package report

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	billion = decimal.NewFromInt(1_000_000_000)
	million = decimal.NewFromInt(1_000_000)
)

func printer() *message.Printer {
	return message.NewPrinter(language.Vietnamese)
}

// RoundVND rounds an amount to whole dong.
func RoundVND(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(0)
}

// VND formats an amount in full, e.g. "7.687.500 ₫".
func VND(v float64) string {
	return printer().Sprint(number.Decimal(RoundVND(v).InexactFloat64(), number.MaxFractionDigits(0))) + " ₫"
}

// Compact formats an amount in billions ("2,99 Tỷ") from one billion up and
// in millions ("450 Triệu") below that.
func Compact(v float64) string {
	d := decimal.NewFromFloat(v)
	if d.GreaterThanOrEqual(billion) {
		return strings.Replace(d.Div(billion).StringFixed(2), ".", ",", 1) + " Tỷ"
	}
	return d.Div(million).StringFixed(0) + " Triệu"
}

// Area formats square meters with at most one decimal, e.g. "412,5 m²".
func Area(v float64) string {
	return printer().Sprint(number.Decimal(v, number.MaxFractionDigits(1))) + " m²"
}

// Number formats a plain number with Vietnamese grouping.
func Number(v float64) string {
	return printer().Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}
