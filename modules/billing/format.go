package billing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders a monetary amount with grouping separators and
// its currency code, e.g. "20,000 XOF". Whole amounts drop the decimal
// part; fractional amounts keep two digits.
func FormatAmount(amount decimal.Decimal, currency string) string {
	f, _ := amount.Float64()

	var formatted string
	if amount.IsInteger() {
		formatted = amountPrinter.Sprint(number.Decimal(f, number.MaxFractionDigits(0)))
	} else {
		formatted = amountPrinter.Sprint(number.Decimal(f,
			number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	}

	return formatted + " " + currency
}
