package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Huzeyfe22/otomatik-quote/internal/document"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/library"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/quote"
)

func renderQuote() *quote.Quote {
	return &quote.Quote{
		ID:          "q1",
		QuoteNumber: "20260314/1",
		Name:        "Lakeside Residence",
		Client:      quote.ClientInfo{Name: "Jordan Reyes", Address: "12 Shoreline Dr"},
		Items: []quote.Item{{
			ID:            "i1",
			ProductType:   library.Entity{ID: "t1", Name: "Casement Window"},
			ProductSeries: library.Entity{ID: "s1", Name: "Series 400"},
			Quantity:      2,
			Price:         900,
		}},
		SelectedTerms: map[string][]library.Entity{},
		TotalPrice:    900,
		TaxRate:       13,
		HasCoverPage:  true,
	}
}

func TestRender_QuotePDF(t *testing.T) {
	doc, err := document.BuildQuoteDocument(renderQuote(), library.CompanySettings{Name: "Apex"}, nil, nil)
	require.NoError(t, err)

	out, err := NewPDF().Render(doc)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRender_ContractPDF(t *testing.T) {
	doc, err := document.BuildContractDocument(renderQuote(), library.CompanySettings{Name: "Apex"}, nil, time.Now())
	require.NoError(t, err)

	out, err := NewPDF().Render(doc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRender_AllThemes(t *testing.T) {
	for _, theme := range document.Themes {
		t.Run(theme.ID, func(t *testing.T) {
			settings := library.CompanySettings{Name: "Apex", SelectedTemplate: theme.ID}
			doc, err := document.BuildQuoteDocument(renderQuote(), settings, nil, nil)
			require.NoError(t, err)
			out, err := NewPDF().Render(doc)
			require.NoError(t, err)
			assert.NotEmpty(t, out)
		})
	}
}

func TestRender_MalformedWatermarkDegradesToOmission(t *testing.T) {
	doc, err := document.BuildContractDocument(renderQuote(),
		library.CompanySettings{Name: "Apex", WatermarkURL: "data:image/png;base64,!!!notbase64"},
		nil, time.Now())
	require.NoError(t, err)

	out, err := NewPDF().Render(doc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRender_ManyItemsPaginate(t *testing.T) {
	q := renderQuote()
	for i := 0; i < 40; i++ {
		it := q.Items[0]
		it.ID = it.ID + "x"
		q.Items = append(q.Items, it)
	}
	q.Recompute()

	doc, err := document.BuildQuoteDocument(q, library.CompanySettings{Name: "Apex"}, nil, nil)
	require.NoError(t, err)
	out, err := NewPDF().Render(doc)
	require.NoError(t, err)
	assert.Greater(t, len(out), 4000)
}
