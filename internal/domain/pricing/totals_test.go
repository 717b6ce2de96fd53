package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Huzeyfe22/otomatik-quote/internal/domain/library"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/quote"
)

func TestCompute_AutomaticPricing(t *testing.T) {
	q := &quote.Quote{TotalPrice: 1000, TaxRate: 10}
	got := Compute(q, library.CompanySettings{})

	assert.Equal(t, 1000.0, got.Subtotal)
	assert.Equal(t, 100.0, got.Tax)
	assert.Equal(t, 1100.0, got.Total)
}

func TestCompute_ManualSubtotalReplacesItemSum(t *testing.T) {
	sub := 500.0
	q := &quote.Quote{
		TotalPrice:      1000,
		TaxRate:         10,
		IsManualPricing: true,
		ManualSubtotal:  &sub,
	}
	got := Compute(q, library.CompanySettings{})

	assert.Equal(t, 500.0, got.Subtotal)
	assert.Equal(t, 50.0, got.Tax)
	assert.Equal(t, 550.0, got.Total)
}

func TestCompute_ManualFlagOffIgnoresManualSubtotal(t *testing.T) {
	sub := 500.0
	q := &quote.Quote{
		TotalPrice:     1000,
		TaxRate:        10,
		ManualSubtotal: &sub,
	}
	got := Compute(q, library.CompanySettings{})

	assert.Equal(t, 1000.0, got.Subtotal)
	assert.Equal(t, 100.0, got.Tax)
	assert.Equal(t, 1100.0, got.Total)
}

func TestCompute_TaxRateFallsBackToCompany(t *testing.T) {
	q := &quote.Quote{TotalPrice: 200}
	got := Compute(q, library.CompanySettings{TaxRate: 13})

	assert.Equal(t, 13.0, got.TaxRate)
	assert.Equal(t, 26.0, got.Tax)
	assert.Equal(t, 226.0, got.Total)
}

func TestCompute_NoTaxAnywhere(t *testing.T) {
	q := &quote.Quote{TotalPrice: 200}
	got := Compute(q, library.CompanySettings{})

	assert.Equal(t, 0.0, got.Tax)
	assert.Equal(t, 200.0, got.Total)
}

func TestCompute_CoercesNonFinite(t *testing.T) {
	q := &quote.Quote{TotalPrice: math.NaN(), TaxRate: math.Inf(1)}
	got := Compute(q, library.CompanySettings{})

	assert.Equal(t, 0.0, got.Subtotal)
	assert.Equal(t, 0.0, got.Total)
}

func TestCompute_FractionalCentsRound(t *testing.T) {
	q := &quote.Quote{TotalPrice: 99.99, TaxRate: 13}
	got := Compute(q, library.CompanySettings{})

	assert.Equal(t, 13.0, got.Tax)
	assert.Equal(t, 112.99, got.Total)
}

func TestFormatter_Money(t *testing.T) {
	assert.Equal(t, "$1,234.50", QuoteFormatter().Money(1234.5))
	assert.Equal(t, "$0.00", QuoteFormatter().Money(0))
	assert.Equal(t, "$1,234.50", ContractFormatter().Money(1234.5))
}

func TestFormatter_Percent(t *testing.T) {
	assert.Equal(t, "13%", QuoteFormatter().Percent(13))
	assert.Equal(t, "13.5%", QuoteFormatter().Percent(13.5))
}
