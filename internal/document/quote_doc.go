package document

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Huzeyfe22/otomatik-quote/internal/domain/library"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/pricing"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/quote"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/richtext"
)

// BuildQuoteDocument assembles the quote output. The quote is cloned
// up front so synthesis never touches the caller's aggregate. Item
// cards must not split across pages; the price column is suppressed
// when manual pricing is active.
func BuildQuoteDocument(q *quote.Quote, settings library.CompanySettings, categories, termCategories []library.Category) (*Document, error) {
	if err := q.ValidateForDocument(); err != nil {
		return nil, err
	}
	q = q.Clone()

	f := pricing.QuoteFormatter()
	totals := pricing.Compute(q, settings)

	doc := &Document{
		Title:     "Quote " + quoteNumberOrDraft(q),
		PageSize:  PageA4,
		Theme:     ThemeByID(settings.SelectedTemplate),
		Watermark: settings.WatermarkURL,
		Header:    &HeaderFooter{Left: settings.Name, Right: "QUOTE"},
		Footer:    &HeaderFooter{Left: fmt.Sprintf("Generated by %s Quotation Robot", settings.Name), PageNumbers: true},
	}

	if q.HasCoverPage {
		doc.Cover = quoteCover(q, settings)
	}

	doc.Sections = append(doc.Sections,
		Section{Blocks: []Block{{Kind: BlockRows, Rows: quoteMetaRows(q), KeepTogether: true}}},
		Section{Blocks: []Block{{Kind: BlockRows, Rows: projectRows(q), KeepTogether: true}}},
	)

	items := Section{Title: "Items"}
	for _, it := range q.Items {
		card := quoteItemCard(it, q.IsManualPricing, f, settings, categories)
		items.Blocks = append(items.Blocks, Block{Kind: BlockItemCard, Card: &card, KeepTogether: true})
	}
	doc.Sections = append(doc.Sections, items)

	doc.Sections = append(doc.Sections, Section{Blocks: []Block{{
		Kind:         BlockRows,
		KeepTogether: true,
		Rows: []Row{
			{Label: "Subtotal:", Value: f.Money(totals.Subtotal)},
			{Label: fmt.Sprintf("Tax (%s):", f.Percent(totals.TaxRate)), Value: f.Money(totals.Tax)},
			{Label: "Grand Total:", Value: f.Money(totals.Total), Strong: true},
		},
	}}})

	if terms := termsSection(q, termCategories); terms != nil {
		doc.Sections = append(doc.Sections, *terms)
	}

	return doc, nil
}

func quoteCover(q *quote.Quote, settings library.CompanySettings) *Cover {
	return &Cover{
		CompanyName: settings.Name,
		Subtitle:    "Quotation",
		Logo:        settings.ResolvedLogo(),
		Fields: []CoverField{
			{Label: "Prepared For", Value: clientNameOrDefault(q)},
			{Label: "Project", Value: q.Name},
			{Label: "Quote Number", Value: quoteNumberOrDraft(q)},
		},
		Date: q.EffectiveDate().Format("2006-01-02"),
	}
}

func quoteMetaRows(q *quote.Quote) []Row {
	rows := []Row{}
	if q.QuoteNumber != "" {
		rows = append(rows, Row{Label: "No:", Value: q.QuoteNumber})
	}
	if q.ShowQuoteDate {
		rows = append(rows, Row{Label: "Date:", Value: q.EffectiveDate().Format("2006-01-02")})
	}
	if q.ShowQuoteName && q.Name != "" {
		rows = append(rows, Row{Label: "Project:", Value: q.Name})
	}
	return rows
}

func projectRows(q *quote.Quote) []Row {
	rows := []Row{{Label: "Prepared For", Value: clientNameOrDefault(q)}}
	if q.Client.ShowEmail && q.Client.Email != "" {
		rows = append(rows, Row{Label: "Email", Value: q.Client.Email})
	}
	if q.Client.ShowPhone && q.Client.Phone != "" {
		rows = append(rows, Row{Label: "Phone", Value: q.Client.Phone})
	}
	address := q.Client.Address
	if address == "" {
		address = "No Address Provided"
	}
	rows = append(rows, Row{Label: "Project Location", Value: address})
	return rows
}

// quoteItemCard renders one line item. A custom description replaces
// the series and attribute rows with classified rich text.
func quoteItemCard(it quote.Item, manualPricing bool, f *pricing.Formatter, settings library.CompanySettings, categories []library.Category) ItemCard {
	card := ItemCard{
		Title:    it.DisplayName(),
		Quantity: it.Quantity,
	}
	if it.ShowDimensions {
		card.Dimensions = fmt.Sprintf("(%s x %s %s)", trimFloat(it.Width), trimFloat(it.Height), it.Unit.Name)
	}
	if !manualPricing {
		card.Price = f.Money(pricing.LineTotal(it))
	}

	if it.IsCustomDescription && it.Description != "" {
		card.Description = it.Description
		card.Rich = richtext.Classify(it.Description)
	} else {
		card.Attributes = attributeLines(it, settings, categories)
	}
	if it.HasScreen {
		card.ScreenNote = "Includes Screen"
	}
	return card
}

// attributeLines walks the merged category order: the series row
// first among the system slots, then each dynamic category the item
// has a selection for. Deleted categories are skipped.
func attributeLines(it quote.Item, settings library.CompanySettings, categories []library.Category) []AttributeLine {
	var lines []AttributeLine
	for _, catID := range library.FullCategoryOrder(settings, categories) {
		switch catID {
		case library.SysProductTypes, library.SysUnits:
			// Product type is the card title; unit lives in the
			// dimension string.
			continue
		case library.SysProductSeries:
			if it.IsExtras() || it.ProductSeries.Name == "" {
				continue
			}
			lines = append(lines, AttributeLine{
				Label:       "Series",
				Value:       it.ProductSeries.Name,
				Description: it.ProductSeries.Description,
			})
			continue
		}
		cat := library.CategoryByID(categories, catID)
		if cat == nil {
			continue
		}
		sel, ok := it.Attributes[catID]
		if !ok {
			continue
		}
		entities := sel.Entities()
		if len(entities) == 0 {
			continue
		}
		names := make([]string, len(entities))
		for i, e := range entities {
			names[i] = e.Name
		}
		lines = append(lines, AttributeLine{Label: cat.Name, Value: strings.Join(names, ", ")})
	}
	return lines
}

// termsSection renders each term category's selections, bullets for
// multi-select categories and plain text for single-select, plus the
// extra-notes block when enabled.
func termsSection(q *quote.Quote, termCategories []library.Category) *Section {
	var rich []richtext.Block
	for _, cat := range termCategories {
		selected := q.SelectedTerms[cat.ID]
		if len(selected) == 0 {
			continue
		}
		rich = append(rich, richtext.Block{Kind: richtext.Subheading, Text: cat.Name})
		for _, e := range selected {
			kind := richtext.Paragraph
			if cat.Type == library.ArityMultiple {
				kind = richtext.Bullet
			}
			rich = append(rich, richtext.Block{Kind: kind, Text: e.Name})
		}
	}
	if q.ShowExtraNotes && q.ExtraNotes != "" {
		rich = append(rich, richtext.Block{Kind: richtext.Subheading, Text: "Additional Notes"})
		rich = append(rich, richtext.Classify(q.ExtraNotes)...)
	}
	if len(rich) == 0 {
		return nil
	}
	return &Section{
		Title:  "Terms & Conditions",
		Blocks: []Block{{Kind: BlockRich, Rich: rich, KeepTogether: true}},
	}
}

func clientNameOrDefault(q *quote.Quote) string {
	if q.Client.Name == "" {
		return "Valued Client"
	}
	return q.Client.Name
}

func quoteNumberOrDraft(q *quote.Quote) string {
	if q.QuoteNumber == "" {
		return "DRAFT"
	}
	return q.QuoteNumber
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
