package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Huzeyfe22/otomatik-quote/internal/core/apperror"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/library"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/quote"
	"github.com/Huzeyfe22/otomatik-quote/internal/infrastructure/http/v1/dto"
	"github.com/Huzeyfe22/otomatik-quote/internal/infrastructure/storage/snapshot"
)

// WorkspaceHandler serves whole-workspace export, import and the
// compressed saved-quote archive.
type WorkspaceHandler struct {
	base    *BaseHandler
	store   *library.Store
	quotes  *quote.Service
	persist func()
}

// NewWorkspaceHandler creates a workspace handler.
func NewWorkspaceHandler(base *BaseHandler, store *library.Store, quotes *quote.Service, persist func()) *WorkspaceHandler {
	return &WorkspaceHandler{base: base, store: store, quotes: quotes, persist: persist}
}

// Export returns the full workspace as JSON.
func (h *WorkspaceHandler) Export(c *gin.Context) {
	h.base.OK(c, dto.WorkspaceExport{
		Library:      h.store.Snapshot(),
		CurrentQuote: h.quotes.Current(),
		SavedQuotes:  h.quotes.Saved(),
	})
}

// Import replaces the full workspace from an export payload.
func (h *WorkspaceHandler) Import(c *gin.Context) {
	var payload dto.WorkspaceExport
	if !h.base.BindJSON(c, &payload) {
		return
	}
	h.store.Import(payload.Library)
	h.quotes.Restore(payload.CurrentQuote, payload.SavedQuotes)
	h.persist()
	h.base.Success(c, "workspace imported")
}

// ExportArchive streams the saved quotes as a zstd archive.
func (h *WorkspaceHandler) ExportArchive(c *gin.Context) {
	saved := h.quotes.Saved()
	name := fmt.Sprintf("quotes-%s.jsonl.zst", time.Now().UTC().Format("20060102"))
	c.Header("Content-Type", "application/zstd")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Status(http.StatusOK)
	if err := snapshot.WriteArchive(c.Writer, saved); err != nil {
		// Headers are already committed, nothing sensible left to send.
		_ = c.Error(err)
	}
}

// ImportArchive merges quotes from an uploaded zstd archive into the
// saved list.
func (h *WorkspaceHandler) ImportArchive(c *gin.Context) {
	quotes, err := snapshot.ReadArchive(c.Request.Body)
	if err != nil {
		h.base.Error(c, apperror.NewValidation("malformed quote archive").WithDetail("cause", err.Error()))
		return
	}
	merged := h.quotes.ImportSaved(quotes)
	h.persist()
	h.base.OK(c, gin.H{"imported": merged})
}
