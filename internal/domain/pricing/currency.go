package pricing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders money and percentages for one output locale.
// Quotes print US dollars; contracts print Canadian dollars. The two
// documents deliberately carry independent currencies.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// QuoteFormatter formats en-US dollar amounts for quote documents.
func QuoteFormatter() *Formatter {
	return &Formatter{printer: message.NewPrinter(language.AmericanEnglish), symbol: "$"}
}

// en-CA has no predeclared tag in x/text/language.
var canadianEnglish = language.MustParse("en-CA")

// ContractFormatter formats en-CA dollar amounts for contract documents.
func ContractFormatter() *Formatter {
	return &Formatter{printer: message.NewPrinter(canadianEnglish), symbol: "$"}
}

// Money renders an amount with grouping and two decimals, e.g. "$1,234.50".
func (f *Formatter) Money(amount float64) string {
	return f.printer.Sprintf("%s%v", f.symbol,
		number.Decimal(amount, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Percent renders a tax rate without trailing zeros, e.g. "13%".
func (f *Formatter) Percent(rate float64) string {
	return f.printer.Sprintf("%v%%",
		number.Decimal(rate, number.MaxFractionDigits(2)))
}
