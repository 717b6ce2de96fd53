package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Huzeyfe22/otomatik-quote/internal/domain/quote"
	"github.com/Huzeyfe22/otomatik-quote/internal/infrastructure/http/v1/dto"
)

// QuoteHandler serves the quote-building endpoints.
type QuoteHandler struct {
	base    *BaseHandler
	quotes  *quote.Service
	persist func()
}

// NewQuoteHandler creates a quote handler.
func NewQuoteHandler(base *BaseHandler, quotes *quote.Service, persist func()) *QuoteHandler {
	return &QuoteHandler{base: base, quotes: quotes, persist: persist}
}

// Current returns the quote under construction.
func (h *QuoteHandler) Current(c *gin.Context) {
	h.base.OK(c, h.quotes.Current())
}

// Replace swaps in a full quote, e.g. from client-side import.
func (h *QuoteHandler) Replace(c *gin.Context) {
	var q quote.Quote
	if !h.base.BindJSON(c, &q) {
		return
	}
	updated, err := h.quotes.SetCurrent(&q)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.OK(c, updated)
}

// AddItem appends a line item.
func (h *QuoteHandler) AddItem(c *gin.Context) {
	var item quote.Item
	if !h.base.BindJSON(c, &item) {
		return
	}
	updated, err := h.quotes.AddItem(item)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.OK(c, updated)
}

// UpdateItem replaces a line item.
func (h *QuoteHandler) UpdateItem(c *gin.Context) {
	var item quote.Item
	if !h.base.BindJSON(c, &item) {
		return
	}
	updated, err := h.quotes.UpdateItem(c.Param("itemID"), item)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.OK(c, updated)
}

// RemoveItem deletes a line item.
func (h *QuoteHandler) RemoveItem(c *gin.Context) {
	updated, err := h.quotes.RemoveItem(c.Param("itemID"))
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.OK(c, updated)
}

// DuplicateItem copies a line item.
func (h *QuoteHandler) DuplicateItem(c *gin.Context) {
	updated, err := h.quotes.DuplicateItem(c.Param("itemID"))
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.OK(c, updated)
}

// UpdateTerms sets the selection for one term category.
func (h *QuoteHandler) UpdateTerms(c *gin.Context) {
	var req dto.TermsSelectionRequest
	if !h.base.BindJSON(c, &req) {
		return
	}
	updated, err := h.quotes.UpdateTerms(c.Param("categoryID"), req.Items)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.OK(c, updated)
}

// UpdateClient merges client info.
func (h *QuoteHandler) UpdateClient(c *gin.Context) {
	var req dto.ClientRequest
	if !h.base.BindJSON(c, &req) {
		return
	}
	info := quote.ClientInfo{
		Name:    req.Name,
		Address: req.Address,
		Email:   req.Email,
		Phone:   req.Phone,
	}
	applyFlags := req.ShowEmail != nil || req.ShowPhone != nil
	if req.ShowEmail != nil {
		info.ShowEmail = *req.ShowEmail
	}
	if req.ShowPhone != nil {
		info.ShowPhone = *req.ShowPhone
	}
	updated, err := h.quotes.UpdateClient(info, applyFlags)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.OK(c, updated)
}

// UpdateMeta applies a metadata patch.
func (h *QuoteHandler) UpdateMeta(c *gin.Context) {
	var patch quote.MetaPatch
	if !h.base.BindJSON(c, &patch) {
		return
	}
	updated, err := h.quotes.UpdateMeta(patch)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.OK(c, updated)
}

// UpdateNotes sets the extra notes block.
func (h *QuoteHandler) UpdateNotes(c *gin.Context) {
	var req dto.NotesRequest
	if !h.base.BindJSON(c, &req) {
		return
	}
	updated, err := h.quotes.UpdateNotes(req.Notes, req.Show)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.OK(c, updated)
}

// SetNumber assigns an explicit quote number.
func (h *QuoteHandler) SetNumber(c *gin.Context) {
	var req dto.NumberRequest
	if !h.base.BindJSON(c, &req) {
		return
	}
	updated, err := h.quotes.SetNumber(req.Number)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.OK(c, updated)
}

// NextNumber generates the next date-scoped quote number.
func (h *QuoteHandler) NextNumber(c *gin.Context) {
	updated, err := h.quotes.NextNumber(time.Now())
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.OK(c, updated)
}

// Save stores the current quote.
func (h *QuoteHandler) Save(c *gin.Context) {
	saved, err := h.quotes.Save()
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.OK(c, saved)
}

// ListSaved returns all saved quotes.
func (h *QuoteHandler) ListSaved(c *gin.Context) {
	h.base.OK(c, h.quotes.Saved())
}

// GetSaved returns one saved quote.
func (h *QuoteHandler) GetSaved(c *gin.Context) {
	q, err := h.quotes.SavedByID(c.Param("quoteID"))
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, q)
}

// Load makes a saved quote current.
func (h *QuoteHandler) Load(c *gin.Context) {
	q, err := h.quotes.Load(c.Param("quoteID"))
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.OK(c, q)
}

// Duplicate copies a saved quote.
func (h *QuoteHandler) Duplicate(c *gin.Context) {
	q, err := h.quotes.Duplicate(c.Param("quoteID"))
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.OK(c, q)
}

// DeleteSaved removes a saved quote.
func (h *QuoteHandler) DeleteSaved(c *gin.Context) {
	if err := h.quotes.DeleteSaved(c.Param("quoteID")); err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.NoContent(c)
}
