package document

import (
	"fmt"
	"time"

	"github.com/Huzeyfe22/otomatik-quote/internal/domain/library"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/quote"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/richtext"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/synthesis"
)

const contractSubjectText = "The subject of this contract is the supply of architectural fenestration systems as detailed in the attached quote and specifications."

const contractScopeText = "The scope includes the manufacturing and supply of the products listed in the quote. Installation is excluded unless explicitly stated."

const witnessText = "IN WITNESS WHEREOF, the parties have executed this Agreement as of the date first above written."

// BuildContractDocument assembles the contract output. The cover page
// always renders and never carries the watermark; product cards may
// span pages while every other section keeps together. Clauses after
// the five fixed sections number sequentially from 06.
func BuildContractDocument(q *quote.Quote, settings library.CompanySettings, categories []library.Category, now time.Time) (*Document, error) {
	if err := q.ValidateForDocument(); err != nil {
		return nil, err
	}
	q = q.Clone()

	data := synthesis.GenerateContractData(q, settings, categories, now)

	doc := &Document{
		Title:     "Supply Agreement " + quoteNumberOrDraft(q),
		PageSize:  PageLetter,
		Theme:     ThemeByID(settings.SelectedTemplate),
		Watermark: settings.WatermarkURL,
		Cover: &Cover{
			CompanyName: settings.Name,
			Subtitle:    "Supply Agreement",
			Logo:        settings.ResolvedLogo(),
			Fields: []CoverField{
				{Label: "Prepared For", Value: clientNameOrDefault(q)},
				{Label: "Project", Value: q.Name},
				{Label: "Quote Number", Value: quoteNumberOrDraft(q)},
			},
			Date: q.EffectiveDate().Format("2006-01-02"),
		},
		Header: &HeaderFooter{Left: settings.Name, PageNumbers: true},
		Footer: &HeaderFooter{Left: "Confidential & Proprietary", Right: settings.Name},
	}

	doc.Sections = append(doc.Sections,
		Section{Number: "01", Title: "Parties", Blocks: []Block{{
			Kind: BlockRich, Rich: partiesBlocks(q, settings), KeepTogether: true,
		}}},
		Section{Number: "02", Title: "Subject", Blocks: []Block{{
			Kind: BlockRich,
			Rich: []richtext.Block{{Kind: richtext.Paragraph, Text: contractSubjectText}},
			KeepTogether: true,
		}}},
		Section{Number: "03", Title: "Scope", Blocks: []Block{{
			Kind: BlockRich,
			Rich: []richtext.Block{{Kind: richtext.Paragraph, Text: contractScopeText}},
			KeepTogether: true,
		}}},
		productSpecSection(q, data.Products),
		Section{Number: "05", Title: "Financial Summary", Blocks: []Block{{
			Kind: BlockRich, Rich: richtext.Classify(data.Financials), KeepTogether: true,
		}}},
	)

	for i, clause := range data.Clauses {
		doc.Sections = append(doc.Sections, Section{
			Number: fmt.Sprintf("%02d", i+6),
			Title:  clause.Title,
			Blocks: []Block{{Kind: BlockRich, Rich: richtext.Classify(clause.Content), KeepTogether: true}},
		})
	}

	doc.Sections = append(doc.Sections, Section{Blocks: []Block{{
		Kind:         BlockSignature,
		Preamble:     witnessText,
		KeepTogether: true,
		Signatures: []SignatureLine{
			{Name: settings.Name, Title: "Authorized Signature"},
			{Name: signingClient(q), Title: "Authorized Signature"},
		},
	}}})

	return doc, nil
}

func partiesBlocks(q *quote.Quote, settings library.CompanySettings) []richtext.Block {
	client := q.Client.Name
	if client == "" {
		client = "The Client"
	}
	blocks := []richtext.Block{
		{Kind: richtext.Paragraph, Text: fmt.Sprintf(
			`This Agreement is entered into between %s ("Supplier") and %s ("Client").`,
			settings.Name, client)},
		{Kind: richtext.Paragraph, Text: "Supplier Address: " + settings.Address},
		{Kind: richtext.Paragraph, Text: "Client Address: " + q.Client.Address},
	}
	if q.Client.ShowEmail && q.Client.Email != "" {
		blocks = append(blocks, richtext.Block{Kind: richtext.Paragraph, Text: "Client Email: " + q.Client.Email})
	}
	if q.Client.ShowPhone && q.Client.Phone != "" {
		blocks = append(blocks, richtext.Block{Kind: richtext.Paragraph, Text: "Client Phone: " + q.Client.Phone})
	}
	return blocks
}

// productSpecSection renders one card per item. Cards keep together
// but the section as a whole may span any number of pages.
func productSpecSection(q *quote.Quote, specs []synthesis.ProductSpec) Section {
	sec := Section{Number: "04", Title: "Product Specifications"}
	for i, it := range q.Items {
		content := ""
		if i < len(specs) {
			content = specs[i].Content
		}
		card := ItemCard{
			Title:    it.DisplayName(),
			Quantity: it.Quantity,
			Rich:     richtext.Classify(content),
		}
		sec.Blocks = append(sec.Blocks, Block{Kind: BlockItemCard, Card: &card, KeepTogether: true})
	}
	return sec
}

func signingClient(q *quote.Quote) string {
	if q.Client.Name == "" {
		return "Client"
	}
	return q.Client.Name
}
