package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Huzeyfe22/otomatik-quote/internal/document"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/library"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/quote"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/synthesis"
	"github.com/Huzeyfe22/otomatik-quote/internal/infrastructure/render"
)

// DocumentHandler produces quote and contract documents from the
// quote under construction.
type DocumentHandler struct {
	base     *BaseHandler
	store    *library.Store
	quotes   *quote.Service
	renderer *render.PDF
}

// NewDocumentHandler creates a document handler.
func NewDocumentHandler(base *BaseHandler, store *library.Store, quotes *quote.Service, renderer *render.PDF) *DocumentHandler {
	return &DocumentHandler{base: base, store: store, quotes: quotes, renderer: renderer}
}

// QuotePDF renders the current quote as a PDF.
func (h *DocumentHandler) QuotePDF(c *gin.Context) {
	q := h.quotes.Current()
	doc, err := h.buildQuote(q)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.servePDF(c, doc, fmt.Sprintf("quote-%s.pdf", fileStem(q)))
}

// QuoteModel returns the assembled quote document model as JSON for
// preview without rendering.
func (h *DocumentHandler) QuoteModel(c *gin.Context) {
	doc, err := h.buildQuote(h.quotes.Current())
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, doc)
}

// ContractPDF renders the current quote as a supply agreement PDF.
func (h *DocumentHandler) ContractPDF(c *gin.Context) {
	q := h.quotes.Current()
	doc, err := h.buildContract(q)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.servePDF(c, doc, fmt.Sprintf("contract-%s.pdf", fileStem(q)))
}

// ContractModel returns the assembled contract document model as JSON.
func (h *DocumentHandler) ContractModel(c *gin.Context) {
	doc, err := h.buildContract(h.quotes.Current())
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, doc)
}

func (h *DocumentHandler) buildQuote(q *quote.Quote) (*document.Document, error) {
	return document.BuildQuoteDocument(q, h.store.Settings(), h.store.AttributeCategories(), h.store.TermCategories())
}

func (h *DocumentHandler) buildContract(q *quote.Quote) (*document.Document, error) {
	return document.BuildContractDocument(q, h.store.Settings(), h.store.AttributeCategories(), time.Now())
}

// ContractData returns the synthesized contract content as JSON,
// letting clients preview clauses without rendering.
func (h *DocumentHandler) ContractData(c *gin.Context) {
	q := h.quotes.Current()
	data := synthesis.GenerateContractData(q, h.store.Settings(), h.store.AttributeCategories(), time.Now())
	h.base.OK(c, data)
}

func (h *DocumentHandler) servePDF(c *gin.Context, doc *document.Document, filename string) {
	out, err := h.renderer.Render(doc)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", out)
}

func fileStem(q *quote.Quote) string {
	if q.QuoteNumber != "" {
		return sanitizeStem(q.QuoteNumber)
	}
	return "draft"
}

// sanitizeStem keeps filenames shell and header safe.
func sanitizeStem(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-' || r == '_':
			out = append(out, r)
		default:
			out = append(out, '-')
		}
	}
	return string(out)
}
