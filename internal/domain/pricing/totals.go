// Package pricing computes document totals and formats money for the
// two output locales. All arithmetic runs on decimals; float inputs
// are coerced once at the boundary.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/Huzeyfe22/otomatik-quote/internal/domain/library"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/quote"
)

// Totals is the computed financial summary of a quote.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	TaxRate  float64 `json:"taxRate"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Compute derives subtotal, tax and total for a quote. When manual
// pricing is active and a manual subtotal is set, it replaces the sum
// of line items. A zero tax rate on the quote falls back to the
// company rate.
func Compute(q *quote.Quote, settings library.CompanySettings) Totals {
	sub := decimal.NewFromFloat(coerce(q.TotalPrice))
	if q.IsManualPricing && q.ManualSubtotal != nil {
		sub = decimal.NewFromFloat(coerce(*q.ManualSubtotal))
	}

	rate := coerce(q.TaxRate)
	if rate == 0 {
		rate = coerce(settings.TaxRate)
	}

	tax := sub.Mul(decimal.NewFromFloat(rate)).Div(decimal.NewFromInt(100)).Round(2)
	sub = sub.Round(2)
	total := sub.Add(tax)

	return Totals{
		Subtotal: sub.InexactFloat64(),
		TaxRate:  rate,
		Tax:      tax.InexactFloat64(),
		Total:    total.InexactFloat64(),
	}
}

// LineTotal is the price of one line item. Item prices are entered as
// line prices, so quantity is informational and never multiplied in.
func LineTotal(it quote.Item) float64 {
	return decimal.NewFromFloat(coerce(it.Price)).Round(2).InexactFloat64()
}

func coerce(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
