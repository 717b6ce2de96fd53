package synthesis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Huzeyfe22/otomatik-quote/internal/domain/library"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/quote"
)

// AutoDescription derives an item's description from its series,
// dimensions, attribute selections, and screen flag. Attribute
// categories render in the configured display order; selections whose
// category no longer exists are skipped.
func AutoDescription(it quote.Item, settings library.CompanySettings, categories []library.Category) string {
	var parts []string

	if !it.IsExtras() {
		if it.ProductSeries.Name != "" {
			parts = append(parts, "Series: "+it.ProductSeries.Name)
			if it.ProductSeries.HasDescription && it.ProductSeries.Description != "" {
				parts = append(parts, it.ProductSeries.Description)
			}
		}
	}

	if it.ShowDimensions && it.Width > 0 && it.Height > 0 {
		parts = append(parts, fmt.Sprintf("Dimensions: %s\" x %s\"", formatDim(it.Width), formatDim(it.Height)))
	}

	parts = append(parts, attributeFragments(it, settings, categories)...)

	if it.HasScreen {
		parts = append(parts, "Includes Screen")
	}

	return strings.Join(parts, "\n")
}

// attributeFragments walks attribute categories in display order and
// emits "<Category>: <names>" plus each selected entity's description.
func attributeFragments(it quote.Item, settings library.CompanySettings, categories []library.Category) []string {
	if len(it.Attributes) == 0 {
		return nil
	}
	var parts []string
	for _, catID := range library.FullCategoryOrder(settings, categories) {
		if catID == library.SysProductTypes || catID == library.SysProductSeries || catID == library.SysUnits {
			continue
		}
		sel, ok := it.Attributes[catID]
		if !ok {
			continue
		}
		cat := library.CategoryByID(categories, catID)
		if cat == nil {
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
		parts = append(parts, cat.Name+": "+strings.Join(names, ", "))
		for _, e := range entities {
			if e.Description != "" {
				parts = append(parts, e.Description)
			}
		}
	}
	return parts
}

// FillDescriptions populates auto-derived descriptions on a copy of
// the quote. Items carrying a custom description keep it verbatim.
func FillDescriptions(q *quote.Quote, settings library.CompanySettings, categories []library.Category) *quote.Quote {
	out := q.Clone()
	for i := range out.Items {
		if out.Items[i].IsCustomDescription {
			continue
		}
		out.Items[i].Description = AutoDescription(out.Items[i], settings, categories)
	}
	return out
}

func formatDim(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
