// Package document builds renderer-agnostic page structures for the
// quote and contract outputs. A Document is a cover plus ordered
// sections of typed blocks with layout hints; rendering backends
// consume it without knowing quote semantics.
package document

import "github.com/Huzeyfe22/otomatik-quote/internal/domain/richtext"

// PageSize selects the physical page format.
type PageSize string

const (
	PageLetter PageSize = "LETTER"
	PageA4     PageSize = "A4"
)

// BlockKind discriminates the content blocks a section may hold.
type BlockKind string

const (
	BlockRich      BlockKind = "rich"
	BlockRows      BlockKind = "rows"
	BlockItemCard  BlockKind = "itemCard"
	BlockSignature BlockKind = "signature"
)

// Row is one label/value line in a panel, e.g. a totals row.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
	// Strong marks the grand-total style row.
	Strong bool `json:"strong,omitempty"`
}

// AttributeLine is one attribute row inside an item card.
type AttributeLine struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// ItemCard is the rendered form of one quote line item.
type ItemCard struct {
	Title       string          `json:"title"`
	Dimensions  string          `json:"dimensions,omitempty"`
	Quantity    int             `json:"quantity"`
	Description string          `json:"description,omitempty"`
	Attributes  []AttributeLine `json:"attributes,omitempty"`
	Rich        []richtext.Block `json:"rich,omitempty"`
	ScreenNote  string          `json:"screenNote,omitempty"`
	// Price is pre-formatted; empty means the price block is suppressed.
	Price string `json:"price,omitempty"`
}

// SignatureLine is one of the two signing parties.
type SignatureLine struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Block is one content unit. Exactly one payload field is set,
// according to Kind.
type Block struct {
	Kind       BlockKind        `json:"kind"`
	Rich       []richtext.Block `json:"rich,omitempty"`
	Rows       []Row            `json:"rows,omitempty"`
	Card       *ItemCard        `json:"card,omitempty"`
	Signatures []SignatureLine  `json:"signatures,omitempty"`
	Preamble   string           `json:"preamble,omitempty"`
	// KeepTogether forbids splitting the block across a page break.
	KeepTogether bool `json:"keepTogether,omitempty"`
}

// Section is a titled group of blocks. Number is a pre-formatted
// zero-padded clause number, empty for unnumbered sections.
type Section struct {
	Number string  `json:"number,omitempty"`
	Title  string  `json:"title,omitempty"`
	Blocks []Block `json:"blocks"`
}

// CoverField is one labeled value on the cover page.
type CoverField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Cover is the optional first page.
type Cover struct {
	CompanyName string       `json:"companyName"`
	Subtitle    string       `json:"subtitle"`
	Logo        string       `json:"logo,omitempty"`
	Fields      []CoverField `json:"fields"`
	Date        string       `json:"date"`
}

// HeaderFooter is the fixed band repeated on every content page.
type HeaderFooter struct {
	Left  string `json:"left,omitempty"`
	Right string `json:"right,omitempty"`
	// PageNumbers enables a "Page N of M" marker in place of Right.
	PageNumbers bool `json:"pageNumbers,omitempty"`
}

// Document is a complete paginated output description.
type Document struct {
	Title    string   `json:"title"`
	PageSize PageSize `json:"pageSize"`
	Theme    Theme    `json:"theme"`
	// Watermark is an image reference stamped on content pages only,
	// never on the cover.
	Watermark string        `json:"watermark,omitempty"`
	Cover     *Cover        `json:"cover,omitempty"`
	Header    *HeaderFooter `json:"header,omitempty"`
	Footer    *HeaderFooter `json:"footer,omitempty"`
	Sections  []Section     `json:"sections"`
}
