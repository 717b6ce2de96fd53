// Package render turns document structures into PDF bytes using fpdf.
// Layout hints (keep-together, page size, theme colors) come from the
// document; this package owns fonts, spacing, and pagination.
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/Huzeyfe22/otomatik-quote/internal/core/apperror"
	"github.com/Huzeyfe22/otomatik-quote/internal/document"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/richtext"
)

const (
	marginSide   = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	lineHeight   = 5.0
	watermarkW   = 160.0
)

// PDF renders documents produced by the document package.
type PDF struct{}

// NewPDF returns a ready renderer.
func NewPDF() *PDF {
	return &PDF{}
}

// Render writes the document to a PDF byte slice.
func (r *PDF) Render(doc *document.Document) ([]byte, error) {
	size := "A4"
	if doc.PageSize == document.PageLetter {
		size = "Letter"
	}
	pdf := fpdf.New("P", "mm", size, "")
	pdf.SetTitle(doc.Title, true)
	pdf.AliasNbPages("")
	pdf.SetMargins(marginSide, marginTop, marginSide)
	pdf.SetAutoPageBreak(true, marginBottom)

	font := doc.Theme.FontFamily
	if font == "" {
		font = "Helvetica"
	}
	st := &state{pdf: pdf, doc: doc, font: font}

	wmName, wmOpt := registerDataImage(pdf, doc.Watermark, "watermark")

	coverPages := 0
	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() <= coverPages {
			return
		}
		if wmName != "" {
			st.stampWatermark(wmName, wmOpt)
		}
		st.pageHeader()
	})
	pdf.SetFooterFunc(func() {
		if pdf.PageNo() <= coverPages {
			return
		}
		st.pageFooter()
	})

	if doc.Cover != nil {
		coverPages = 1
		pdf.AddPage()
		st.cover(doc.Cover)
	}
	pdf.AddPage()
	for _, sec := range doc.Sections {
		st.section(sec)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("pdf output: %w", err))
	}
	return buf.Bytes(), nil
}

type state struct {
	pdf  *fpdf.Fpdf
	doc  *document.Document
	font string
}

func (s *state) contentWidth() float64 {
	w, _ := s.pdf.GetPageSize()
	return w - 2*marginSide
}

func (s *state) pageHeader() {
	hf := s.doc.Header
	if hf == nil {
		return
	}
	pr, pg, pb := rgb(s.doc.Theme.PrimaryColor)
	s.pdf.SetTextColor(pr, pg, pb)
	s.pdf.SetFont(s.font, "B", 11)
	s.pdf.SetXY(marginSide, 8)
	s.pdf.CellFormat(s.contentWidth()/2, 6, hf.Left, "", 0, "L", false, 0, "")
	s.pdf.SetFont(s.font, "", 9)
	s.pdf.SetTextColor(100, 116, 139)
	right := hf.Right
	if hf.PageNumbers {
		right = fmt.Sprintf("Page %d of {nb}", s.pdf.PageNo())
	}
	s.pdf.CellFormat(s.contentWidth()/2, 6, right, "", 0, "R", false, 0, "")
	s.pdf.SetDrawColor(pr, pg, pb)
	s.pdf.SetLineWidth(0.5)
	s.pdf.Line(marginSide, marginTop, marginSide+s.contentWidth(), marginTop)
	s.pdf.SetXY(marginSide, marginTop+4)
	s.resetText()
}

func (s *state) pageFooter() {
	hf := s.doc.Footer
	if hf == nil {
		return
	}
	_, pageH := s.pdf.GetPageSize()
	s.pdf.SetY(pageH - marginBottom + 5)
	s.pdf.SetFont(s.font, "", 8)
	s.pdf.SetTextColor(148, 163, 184)
	s.pdf.CellFormat(s.contentWidth()/2, 5, hf.Left, "", 0, "L", false, 0, "")
	right := hf.Right
	if hf.PageNumbers {
		right = fmt.Sprintf("Page %d of {nb}", s.pdf.PageNo())
	}
	s.pdf.CellFormat(s.contentWidth()/2, 5, right, "", 0, "R", false, 0, "")
	s.resetText()
}

func (s *state) stampWatermark(name string, opt fpdf.ImageOptions) {
	pageW, pageH := s.pdf.GetPageSize()
	s.pdf.TransformBegin()
	s.pdf.TransformRotate(45, pageW/2, pageH/2)
	s.pdf.SetAlpha(0.1, "Normal")
	s.pdf.ImageOptions(name, (pageW-watermarkW)/2, pageH/2-40, watermarkW, 0, false, opt, 0, "")
	s.pdf.SetAlpha(1, "Normal")
	s.pdf.TransformEnd()
}

func (s *state) cover(c *document.Cover) {
	pr, pg, pb := rgb(s.doc.Theme.PrimaryColor)
	pageW, pageH := s.pdf.GetPageSize()

	s.pdf.SetFillColor(pr, pg, pb)
	s.pdf.Rect(0, 0, pageW, 90, "F")

	y := 30.0
	if name, opt := registerDataImage(s.pdf, c.Logo, "cover-logo"); name != "" {
		s.pdf.ImageOptions(name, marginSide, 22, 28, 0, false, opt, 0, "")
	}
	s.pdf.SetTextColor(255, 255, 255)
	s.pdf.SetFont(s.font, "B", 26)
	s.pdf.SetXY(marginSide+35, y)
	s.pdf.CellFormat(0, 12, c.CompanyName, "", 1, "L", false, 0, "")
	s.pdf.SetFont(s.font, "", 13)
	s.pdf.SetX(marginSide + 35)
	s.pdf.CellFormat(0, 8, c.Subtitle, "", 1, "L", false, 0, "")

	y = 120.0
	s.pdf.SetTextColor(100, 116, 139)
	for _, field := range c.Fields {
		s.pdf.SetFont(s.font, "B", 9)
		s.pdf.SetTextColor(100, 116, 139)
		s.pdf.SetXY(marginSide, y)
		s.pdf.CellFormat(0, 5, strings.ToUpper(field.Label), "", 1, "L", false, 0, "")
		s.pdf.SetFont(s.font, "", 14)
		s.pdf.SetTextColor(15, 23, 42)
		s.pdf.SetX(marginSide)
		s.pdf.CellFormat(0, 8, field.Value, "", 1, "L", false, 0, "")
		y += 18
	}
	s.pdf.SetFont(s.font, "B", 9)
	s.pdf.SetTextColor(100, 116, 139)
	s.pdf.SetXY(marginSide, pageH-60)
	s.pdf.CellFormat(0, 5, "DATE", "", 1, "L", false, 0, "")
	s.pdf.SetFont(s.font, "", 14)
	s.pdf.SetTextColor(15, 23, 42)
	s.pdf.SetX(marginSide)
	s.pdf.CellFormat(0, 8, c.Date, "", 1, "L", false, 0, "")
	s.resetText()
}

func (s *state) section(sec document.Section) {
	if sec.Title != "" {
		s.ensureSpace(16)
		pr, pg, pb := rgb(s.doc.Theme.PrimaryColor)
		s.pdf.Ln(4)
		s.pdf.SetFont(s.font, "B", 13)
		s.pdf.SetTextColor(pr, pg, pb)
		title := sec.Title
		if sec.Number != "" {
			title = sec.Number + "  " + title
		}
		s.pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
		s.pdf.SetDrawColor(226, 232, 240)
		s.pdf.SetLineWidth(0.3)
		s.pdf.Line(marginSide, s.pdf.GetY(), marginSide+s.contentWidth(), s.pdf.GetY())
		s.pdf.Ln(2)
		s.resetText()
	}
	for _, block := range sec.Blocks {
		if block.KeepTogether {
			s.ensureSpace(s.blockHeight(block))
		}
		s.block(block)
	}
}

func (s *state) block(b document.Block) {
	switch b.Kind {
	case document.BlockRich:
		s.rich(b.Rich, s.contentWidth())
	case document.BlockRows:
		s.rows(b.Rows)
	case document.BlockItemCard:
		if b.Card != nil {
			s.card(*b.Card)
		}
	case document.BlockSignature:
		s.signatures(b)
	}
}

func (s *state) rich(blocks []richtext.Block, width float64) {
	for _, rb := range blocks {
		switch rb.Kind {
		case richtext.Spacer:
			s.pdf.Ln(3)
		case richtext.Heading:
			s.pdf.SetFont(s.font, "B", 11)
			s.pdf.MultiCell(width, lineHeight+1, rb.Text, "", "L", false)
			s.pdf.SetFont(s.font, "", 10)
		case richtext.Subheading:
			s.pdf.SetFont(s.font, "B", 10)
			s.pdf.MultiCell(width, lineHeight, rb.Text, "", "L", false)
			s.pdf.SetFont(s.font, "", 10)
		case richtext.Bullet:
			s.pdf.SetFont(s.font, "", 10)
			s.pdf.CellFormat(5, lineHeight, "•", "", 0, "R", false, 0, "")
			s.pdf.MultiCell(width-5, lineHeight, rb.Text, "", "L", false)
		default:
			s.pdf.SetFont(s.font, "", 10)
			s.pdf.MultiCell(width, lineHeight, rb.Text, "", "L", false)
		}
	}
}

func (s *state) rows(rows []document.Row) {
	s.pdf.Ln(2)
	for _, row := range rows {
		if row.Strong {
			pr, pg, pb := rgb(s.doc.Theme.PrimaryColor)
			s.pdf.SetFont(s.font, "B", 12)
			s.pdf.SetTextColor(pr, pg, pb)
		} else {
			s.pdf.SetFont(s.font, "", 10)
			s.pdf.SetTextColor(100, 116, 139)
		}
		s.pdf.CellFormat(s.contentWidth()-45, 6, row.Label, "", 0, "R", false, 0, "")
		if !row.Strong {
			s.pdf.SetTextColor(15, 23, 42)
		}
		s.pdf.CellFormat(45, 6, row.Value, "", 1, "R", false, 0, "")
	}
	s.resetText()
}

func (s *state) card(c document.ItemCard) {
	width := s.contentWidth()
	s.pdf.Ln(2)

	s.pdf.SetFont(s.font, "B", 11)
	s.pdf.SetTextColor(15, 23, 42)
	header := c.Title
	if c.Dimensions != "" {
		header += "  " + c.Dimensions
	}
	priceW := 35.0
	s.pdf.CellFormat(width-priceW, 7, fmt.Sprintf("%s   x%d", header, c.Quantity), "", 0, "L", false, 0, "")
	if c.Price != "" {
		pr, pg, pb := rgb(s.doc.Theme.PrimaryColor)
		s.pdf.SetTextColor(pr, pg, pb)
		s.pdf.CellFormat(priceW, 7, c.Price, "", 0, "R", false, 0, "")
	}
	s.pdf.Ln(7)
	s.resetText()

	for _, attr := range c.Attributes {
		s.pdf.SetFont(s.font, "B", 9)
		s.pdf.SetTextColor(100, 116, 139)
		s.pdf.CellFormat(30, lineHeight, strings.ToUpper(attr.Label)+":", "", 0, "L", false, 0, "")
		s.pdf.SetFont(s.font, "", 10)
		s.pdf.SetTextColor(15, 23, 42)
		s.pdf.MultiCell(width-30, lineHeight, attr.Value, "", "L", false)
		if attr.Description != "" {
			s.pdf.SetX(marginSide + 30)
			s.pdf.SetFont(s.font, "I", 9)
			s.pdf.SetTextColor(100, 116, 139)
			s.pdf.MultiCell(width-30, lineHeight-0.5, attr.Description, "", "L", false)
			s.resetText()
		}
	}
	if len(c.Rich) > 0 {
		s.rich(c.Rich, width)
	}
	if c.ScreenNote != "" {
		s.pdf.SetFont(s.font, "I", 9)
		s.pdf.SetTextColor(22, 163, 74)
		s.pdf.MultiCell(width, lineHeight, c.ScreenNote, "", "L", false)
		s.resetText()
	}

	s.pdf.Ln(1)
	s.pdf.SetDrawColor(226, 232, 240)
	s.pdf.SetLineWidth(0.2)
	s.pdf.Line(marginSide, s.pdf.GetY(), marginSide+width, s.pdf.GetY())
	s.pdf.Ln(2)
}

func (s *state) signatures(b document.Block) {
	s.pdf.Ln(10)
	if b.Preamble != "" {
		s.pdf.SetFont(s.font, "", 10)
		s.pdf.MultiCell(s.contentWidth(), lineHeight, b.Preamble, "", "L", false)
		s.pdf.Ln(14)
	}
	colW := s.contentWidth()/2 - 10
	x := marginSide
	y := s.pdf.GetY()
	for _, sig := range b.Signatures {
		s.pdf.SetDrawColor(15, 23, 42)
		s.pdf.SetLineWidth(0.3)
		s.pdf.Line(x, y, x+colW, y)
		s.pdf.SetXY(x, y+2)
		s.pdf.SetFont(s.font, "B", 10)
		s.pdf.CellFormat(colW, 5, sig.Name, "", 2, "L", false, 0, "")
		s.pdf.SetFont(s.font, "", 8)
		s.pdf.SetTextColor(100, 116, 139)
		s.pdf.CellFormat(colW, 4, sig.Title, "", 0, "L", false, 0, "")
		s.resetText()
		x += colW + 20
	}
	s.pdf.Ln(12)
}

// blockHeight estimates rendered height for keep-together checks. The
// estimate errs high so a block never overflows the page bottom.
func (s *state) blockHeight(b document.Block) float64 {
	width := s.contentWidth()
	switch b.Kind {
	case document.BlockRows:
		return float64(len(b.Rows))*6 + 4
	case document.BlockSignature:
		h := 40.0
		if b.Preamble != "" {
			h += s.textHeight(b.Preamble, width, lineHeight)
		}
		return h
	case document.BlockItemCard:
		if b.Card == nil {
			return 0
		}
		h := 14.0
		for _, attr := range b.Card.Attributes {
			h += s.textHeight(attr.Value, width-30, lineHeight)
			if attr.Description != "" {
				h += s.textHeight(attr.Description, width-30, lineHeight)
			}
		}
		h += s.richHeight(b.Card.Rich, width)
		if b.Card.ScreenNote != "" {
			h += lineHeight
		}
		return h
	case document.BlockRich:
		return s.richHeight(b.Rich, width)
	}
	return 0
}

func (s *state) richHeight(blocks []richtext.Block, width float64) float64 {
	h := 0.0
	for _, rb := range blocks {
		switch rb.Kind {
		case richtext.Spacer:
			h += 3
		case richtext.Heading:
			h += s.textHeight(rb.Text, width, lineHeight+1)
		case richtext.Bullet:
			h += s.textHeight(rb.Text, width-5, lineHeight)
		default:
			h += s.textHeight(rb.Text, width, lineHeight)
		}
	}
	return h
}

func (s *state) textHeight(text string, width, lineHt float64) float64 {
	s.pdf.SetFont(s.font, "", 10)
	lines := s.pdf.SplitText(text, width)
	if len(lines) == 0 {
		return lineHt
	}
	return float64(len(lines)) * lineHt
}

// ensureSpace forces a page break when fewer than h millimeters remain
// before the bottom margin. Oversized blocks still render from a fresh
// page and break naturally.
func (s *state) ensureSpace(h float64) {
	_, pageH := s.pdf.GetPageSize()
	limit := pageH - marginBottom
	if s.pdf.GetY()+h > limit {
		s.pdf.AddPage()
	}
}

func (s *state) resetText() {
	s.pdf.SetFont(s.font, "", 10)
	s.pdf.SetTextColor(51, 51, 51)
}

// registerDataImage decodes a base64 data URL and registers it with
// the PDF under the given name. Unsupported or malformed references
// are dropped silently; images degrade to omission.
func registerDataImage(pdf *fpdf.Fpdf, dataURL, name string) (string, fpdf.ImageOptions) {
	const prefix = "data:image/"
	const marker = ";base64,"
	if !strings.HasPrefix(dataURL, prefix) {
		return "", fpdf.ImageOptions{}
	}
	idx := strings.Index(dataURL, marker)
	if idx < 0 {
		return "", fpdf.ImageOptions{}
	}
	imgType := strings.ToUpper(dataURL[len(prefix):idx])
	if imgType == "JPEG" {
		imgType = "JPG"
	}
	raw, err := base64.StdEncoding.DecodeString(dataURL[idx+len(marker):])
	if err != nil {
		return "", fpdf.ImageOptions{}
	}
	opt := fpdf.ImageOptions{ImageType: imgType}
	info := pdf.RegisterImageOptionsReader(name, opt, bytes.NewReader(raw))
	if info == nil || pdf.Err() {
		pdf.ClearError()
		return "", fpdf.ImageOptions{}
	}
	return name, opt
}

func rgb(hex string) (int, int, int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 51, 51, 51
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 51, 51, 51
	}
	return int(v >> 16), int((v >> 8) & 0xff), int(v & 0xff)
}
