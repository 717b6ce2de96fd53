// Package quote provides the quote aggregate: the mutable document a
// user assembles from line items, client info, and selected terms, and
// from which both downstream documents are generated.
package quote

import (
	"math"
	"time"

	"github.com/Huzeyfe22/otomatik-quote/internal/core/apperror"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/library"
)

// Placeholder ids used by extras (simple/service) items.
const (
	PlaceholderSeriesID = "s_simple"
	PlaceholderUnitID   = "u_na"
)

// ClientInfo identifies the customer. The Show* flags gate PDF
// visibility independently of whether the value is populated.
type ClientInfo struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	ShowEmail bool   `json:"showEmail,omitempty"`
	ShowPhone bool   `json:"showPhone,omitempty"`
}

// Item is one line in a quote. ProductType, ProductSeries, Unit, and
// Attributes are value snapshots of library entities taken at selection
// time; later library edits never reach them.
type Item struct {
	ID            string                       `json:"id"`
	ProductType   library.Entity               `json:"productType"`
	ProductSeries library.Entity               `json:"productSeries"`
	Attributes    map[string]library.Selection `json:"attributes"`

	// Name overrides the product type name in document headers.
	Name string `json:"name,omitempty"`

	// Description is auto-derived unless IsCustomDescription is set, in
	// which case it is operator-authored and must never be regenerated.
	Description         string `json:"description,omitempty"`
	IsCustomDescription bool   `json:"isCustomDescription,omitempty"`

	Width          float64        `json:"width"`
	Height         float64        `json:"height"`
	Unit           library.Entity `json:"unit"`
	Quantity       int            `json:"quantity"`
	Price          float64        `json:"price"`
	HasScreen      bool           `json:"hasScreen"`
	ShowDimensions bool           `json:"showDimensions"`
}

// IsExtras reports whether the line bypasses series/dimension/unit
// requirements.
func (it *Item) IsExtras() bool {
	return it.ProductType.IsExtras
}

// DisplayName returns the custom name or the product type name.
func (it *Item) DisplayName() string {
	if it.Name != "" {
		return it.Name
	}
	return it.ProductType.Name
}

// Normalize applies the construction defaults for extras lines and
// guards numeric fields. Units defaults to the library's first unit for
// extras items when none was chosen.
func (it *Item) Normalize(units []library.Entity) {
	if it.Quantity < 1 {
		it.Quantity = 1
	}
	it.Price = safeNumber(it.Price)
	it.Width = safeNumber(it.Width)
	it.Height = safeNumber(it.Height)

	if it.IsExtras() {
		if it.ProductSeries.ID == "" {
			it.ProductSeries = library.Entity{ID: PlaceholderSeriesID, IsExtras: true}
		}
		it.Width = 0
		it.Height = 0
		it.ShowDimensions = false
	}
	if it.Unit.ID == "" {
		if len(units) > 0 {
			it.Unit = units[0]
		} else {
			it.Unit = library.Entity{ID: PlaceholderUnitID, Name: "-"}
		}
	}
}

// Validate checks the line item. Extras items skip the series,
// dimension, and unit requirements entirely.
func (it *Item) Validate() error {
	if it.ProductType.ID == "" {
		return apperror.NewValidation("product type is required").
			WithDetail("field", "productType")
	}
	if it.Price < 0 {
		return apperror.NewValidation("price cannot be negative").
			WithDetail("field", "price")
	}
	if it.IsExtras() {
		return nil
	}
	if it.ProductSeries.ID == "" || it.ProductSeries.ID == PlaceholderSeriesID {
		return apperror.NewValidation("product series is required").
			WithDetail("field", "productSeries")
	}
	if it.ShowDimensions {
		if it.Width <= 0 {
			return apperror.NewValidation("width must be greater than 0").
				WithDetail("field", "width")
		}
		if it.Height <= 0 {
			return apperror.NewValidation("height must be greater than 0").
				WithDetail("field", "height")
		}
		if it.Unit.ID == "" {
			return apperror.NewValidation("unit is required").
				WithDetail("field", "unit")
		}
	}
	return nil
}

// Quote is the aggregate root.
type Quote struct {
	ID          string     `json:"id"`
	QuoteNumber string     `json:"quoteNumber,omitempty"`
	Name        string     `json:"name"`
	Client      ClientInfo `json:"client"`
	Items       []Item     `json:"items"`

	// SelectedTerms maps term category id to the chosen values.
	SelectedTerms map[string][]library.Entity `json:"selectedTerms"`

	ExtraNotes     string `json:"extraNotes,omitempty"`
	ShowExtraNotes bool   `json:"showExtraNotes"`

	// Terms is free-form text scanned by the contract keyword extractor.
	Terms string `json:"terms,omitempty"`

	// TotalPrice is always the computed sum of item prices, even in
	// manual pricing mode.
	TotalPrice float64 `json:"totalPrice"`

	// TaxRate is a snapshot of the company tax rate at quote creation.
	TaxRate float64 `json:"taxRate"`

	// IsManualPricing substitutes ManualSubtotal for the computed total
	// in displayed and charged amounts only.
	IsManualPricing bool     `json:"isManualPricing,omitempty"`
	ManualSubtotal  *float64 `json:"manualSubtotal,omitempty"`

	HasCoverPage  bool      `json:"hasCoverPage"`
	ShowQuoteName bool      `json:"showQuoteName"`
	ShowQuoteDate bool      `json:"showQuoteDate"`
	QuoteDate     time.Time `json:"quoteDate"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Recompute refreshes TotalPrice from the items. Called after every
// item mutation; a stale cached total is never trusted.
func (q *Quote) Recompute() {
	var sum float64
	for i := range q.Items {
		sum += safeNumber(q.Items[i].Price)
	}
	q.TotalPrice = sum
}

// ItemByID returns the item with the given id, or nil.
func (q *Quote) ItemByID(itemID string) *Item {
	for i := range q.Items {
		if q.Items[i].ID == itemID {
			return &q.Items[i]
		}
	}
	return nil
}

// EffectiveDate returns the override date or the creation date.
func (q *Quote) EffectiveDate() time.Time {
	if !q.QuoteDate.IsZero() {
		return q.QuoteDate
	}
	return q.CreatedAt
}

// ValidateForDocument checks the structural preconditions for document
// generation. All other missing data degrades at display level.
func (q *Quote) ValidateForDocument() error {
	if q == nil {
		return apperror.NewValidation("quote is required")
	}
	if len(q.Items) == 0 {
		return apperror.NewEmptyQuote()
	}
	return nil
}

// Clone returns a deep copy. Document generation operates on clones so
// the live aggregate is never mutated by rendering.
func (q *Quote) Clone() *Quote {
	if q == nil {
		return nil
	}
	out := *q
	out.Items = make([]Item, len(q.Items))
	for i, it := range q.Items {
		out.Items[i] = it.clone()
	}
	if q.SelectedTerms != nil {
		out.SelectedTerms = make(map[string][]library.Entity, len(q.SelectedTerms))
		for k, v := range q.SelectedTerms {
			out.SelectedTerms[k] = append([]library.Entity(nil), v...)
		}
	}
	if q.ManualSubtotal != nil {
		v := *q.ManualSubtotal
		out.ManualSubtotal = &v
	}
	return &out
}

func (it Item) clone() Item {
	out := it
	if it.Attributes != nil {
		out.Attributes = make(map[string]library.Selection, len(it.Attributes))
		for k, sel := range it.Attributes {
			out.Attributes[k] = sel.Clone()
		}
	}
	return out
}

func safeNumber(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
