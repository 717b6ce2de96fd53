package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Huzeyfe22/otomatik-quote/internal/domain/library"
)

func TestBuildContractDocument_FixedSectionNumbering(t *testing.T) {
	doc, err := BuildContractDocument(docQuote(), library.CompanySettings{Name: "Apex"}, nil, time.Now())
	require.NoError(t, err)

	want := map[string]string{
		"01": "Parties",
		"02": "Subject",
		"03": "Scope",
		"04": "Product Specifications",
		"05": "Financial Summary",
		"06": "Site Readiness & Permits",
		"07": "Drawings & Changes",
		"08": "Terms of Sale & Liability",
		"09": "Payment Schedule",
		"10": "Warranty & Exclusions",
		"11": "Timeline & Delivery",
		"12": "Scope of Work",
	}
	got := map[string]string{}
	for _, sec := range doc.Sections {
		if sec.Number != "" {
			got[sec.Number] = sec.Title
		}
	}
	assert.Equal(t, want, got)
}

func TestBuildContractDocument_CoverAlwaysPresent(t *testing.T) {
	q := docQuote()
	q.HasCoverPage = false
	doc, err := BuildContractDocument(q, library.CompanySettings{Name: "Apex"}, nil, time.Now())
	require.NoError(t, err)

	require.NotNil(t, doc.Cover)
	assert.Equal(t, "Supply Agreement", doc.Cover.Subtitle)
	assert.Equal(t, "Jordan Reyes", doc.Cover.Fields[0].Value)
}

func TestBuildContractDocument_DraftFallback(t *testing.T) {
	q := docQuote()
	q.QuoteNumber = ""
	q.Client.Name = ""
	doc, err := BuildContractDocument(q, library.CompanySettings{}, nil, time.Now())
	require.NoError(t, err)

	assert.Equal(t, "Valued Client", doc.Cover.Fields[0].Value)
	assert.Equal(t, "DRAFT", doc.Cover.Fields[2].Value)
}

func TestBuildContractDocument_WatermarkFromSettings(t *testing.T) {
	settings := library.CompanySettings{WatermarkURL: "data:image/png;base64,AAAA"}
	doc, err := BuildContractDocument(docQuote(), settings, nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, settings.WatermarkURL, doc.Watermark)
}

func TestBuildContractDocument_PartiesConditionalContact(t *testing.T) {
	q := docQuote()
	q.Client.ShowEmail = true
	q.Client.ShowPhone = false

	doc, err := BuildContractDocument(q, library.CompanySettings{Name: "Apex"}, nil, time.Now())
	require.NoError(t, err)

	parties := sectionByNumber(t, doc, "01")
	texts := []string{}
	for _, b := range parties.Blocks[0].Rich {
		texts = append(texts, b.Text)
	}
	assert.Contains(t, texts, "Client Email: jordan@example.com")
	assert.NotContains(t, texts, "Client Phone: 555-0100")
}

func TestBuildContractDocument_SignatureBlock(t *testing.T) {
	doc, err := BuildContractDocument(docQuote(), library.CompanySettings{Name: "Apex"}, nil, time.Now())
	require.NoError(t, err)

	last := doc.Sections[len(doc.Sections)-1]
	require.Len(t, last.Blocks, 1)
	block := last.Blocks[0]
	assert.Equal(t, BlockSignature, block.Kind)
	require.Len(t, block.Signatures, 2)
	assert.Equal(t, "Apex", block.Signatures[0].Name)
	assert.Equal(t, "Jordan Reyes", block.Signatures[1].Name)
}

func TestBuildContractDocument_EmptyQuoteFails(t *testing.T) {
	q := docQuote()
	q.Items = nil
	_, err := BuildContractDocument(q, library.CompanySettings{}, nil, time.Now())
	require.Error(t, err)
}

func sectionByNumber(t *testing.T, doc *Document, number string) Section {
	t.Helper()
	for _, sec := range doc.Sections {
		if sec.Number == number {
			return sec
		}
	}
	t.Fatalf("section %q not found", number)
	return Section{}
}
