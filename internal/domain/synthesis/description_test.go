package synthesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Huzeyfe22/otomatik-quote/internal/domain/library"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/quote"
)

func colorSelection(names ...string) library.Selection {
	entities := make([]library.Entity, len(names))
	for i, n := range names {
		entities[i] = library.Entity{ID: "e_" + n, Name: n}
	}
	return library.SelectMany(entities...)
}

func descItem() quote.Item {
	return quote.Item{
		ProductType:    library.Entity{ID: "t1", Name: "Casement Window"},
		ProductSeries:  library.Entity{ID: "s1", Name: "Series 400"},
		Width:          36,
		Height:         48,
		ShowDimensions: true,
		Quantity:       1,
	}
}

func TestAutoDescription_SeriesAndDimensions(t *testing.T) {
	got := AutoDescription(descItem(), library.CompanySettings{}, nil)
	assert.Equal(t, "Series: Series 400\nDimensions: 36\" x 48\"", got)
}

func TestAutoDescription_SeriesDescriptionFollowsName(t *testing.T) {
	it := descItem()
	it.ProductSeries.HasDescription = true
	it.ProductSeries.Description = "Triple-glazed aluminum"
	it.ShowDimensions = false
	got := AutoDescription(it, library.CompanySettings{}, nil)
	assert.Equal(t, "Series: Series 400\nTriple-glazed aluminum", got)
}

func TestAutoDescription_AttributesFollowCategoryOrder(t *testing.T) {
	cats := []library.Category{
		{ID: "catA", Name: "Color", Type: library.ArityMultiple},
		{ID: "catB", Name: "Glazing", Type: library.AritySingle},
	}
	settings := library.CompanySettings{CategoryOrder: []string{
		library.SysProductTypes, library.SysProductSeries, library.SysUnits, "catB", "catA",
	}}
	it := descItem()
	it.ShowDimensions = false
	it.Attributes = map[string]library.Selection{
		"catA": colorSelection("Black", "White"),
		"catB": library.SelectOne(library.Entity{ID: "g1", Name: "Triple"}),
	}
	got := AutoDescription(it, settings, cats)
	assert.Equal(t, "Series: Series 400\nGlazing: Triple\nColor: Black, White", got)
}

func TestAutoDescription_UnlistedCategoryAppended(t *testing.T) {
	cats := []library.Category{
		{ID: "catA", Name: "Color", Type: library.ArityMultiple},
		{ID: "catB", Name: "Glazing", Type: library.AritySingle},
	}
	// catB exists but is missing from the configured order.
	settings := library.CompanySettings{CategoryOrder: []string{library.SysProductTypes, "catA"}}
	it := descItem()
	it.ShowDimensions = false
	it.Attributes = map[string]library.Selection{
		"catA": colorSelection("Black"),
		"catB": library.SelectOne(library.Entity{ID: "g1", Name: "Triple"}),
	}
	got := AutoDescription(it, settings, cats)
	assert.Equal(t, "Series: Series 400\nColor: Black\nGlazing: Triple", got)
}

func TestAutoDescription_DeletedCategorySkipped(t *testing.T) {
	it := descItem()
	it.ShowDimensions = false
	it.Attributes = map[string]library.Selection{
		"gone": colorSelection("Black"),
	}
	got := AutoDescription(it, library.CompanySettings{}, nil)
	assert.Equal(t, "Series: Series 400", got)
}

func TestAutoDescription_ExtrasSkipsSeries(t *testing.T) {
	it := quote.Item{
		ProductType:   library.Entity{ID: "t2", Name: "Delivery Fee", IsExtras: true},
		ProductSeries: library.Entity{ID: quote.PlaceholderSeriesID},
		Quantity:      1,
		HasScreen:     false,
	}
	got := AutoDescription(it, library.CompanySettings{}, nil)
	assert.Equal(t, "", got)
}

func TestAutoDescription_Screen(t *testing.T) {
	it := descItem()
	it.ShowDimensions = false
	it.HasScreen = true
	got := AutoDescription(it, library.CompanySettings{}, nil)
	assert.Equal(t, "Series: Series 400\nIncludes Screen", got)
}

func TestFillDescriptions_CustomIsSticky(t *testing.T) {
	q := &quote.Quote{Items: []quote.Item{descItem(), descItem()}}
	q.Items[1].IsCustomDescription = true
	q.Items[1].Description = "Custom text"

	out := FillDescriptions(q, library.CompanySettings{}, nil)
	assert.Equal(t, "Series: Series 400\nDimensions: 36\" x 48\"", out.Items[0].Description)
	assert.Equal(t, "Custom text", out.Items[1].Description)
}

func TestFillDescriptions_DoesNotMutateInput(t *testing.T) {
	q := &quote.Quote{Items: []quote.Item{descItem()}}
	out := FillDescriptions(q, library.CompanySettings{}, nil)
	require.NotEmpty(t, out.Items[0].Description)
	assert.Empty(t, q.Items[0].Description)
}

func TestFillDescriptions_Idempotent(t *testing.T) {
	q := &quote.Quote{Items: []quote.Item{descItem()}}
	once := FillDescriptions(q, library.CompanySettings{}, nil)
	twice := FillDescriptions(once, library.CompanySettings{}, nil)
	assert.Equal(t, once.Items[0].Description, twice.Items[0].Description)
}
