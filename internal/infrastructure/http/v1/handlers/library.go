package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Huzeyfe22/otomatik-quote/internal/core/apperror"
	"github.com/Huzeyfe22/otomatik-quote/internal/document"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/library"
	"github.com/Huzeyfe22/otomatik-quote/internal/infrastructure/http/v1/dto"
)

// LibraryHandler serves taxonomy management endpoints.
type LibraryHandler struct {
	base    *BaseHandler
	store   *library.Store
	persist func()
}

// NewLibraryHandler creates a library handler. persist is invoked
// best-effort after every successful mutation.
func NewLibraryHandler(base *BaseHandler, store *library.Store, persist func()) *LibraryHandler {
	return &LibraryHandler{base: base, store: store, persist: persist}
}

// Snapshot returns the full taxonomy state.
func (h *LibraryHandler) Snapshot(c *gin.Context) {
	h.base.OK(c, h.store.Snapshot())
}

// Import replaces the taxonomy state wholesale.
func (h *LibraryHandler) Import(c *gin.Context) {
	var st library.State
	if !h.base.BindJSON(c, &st) {
		return
	}
	h.store.Import(st)
	h.persist()
	h.base.Success(c, "library imported")
}

// --- System collections ---

func (h *LibraryHandler) collection(c *gin.Context) (library.SystemCollection, bool) {
	col := library.SystemCollection(c.Param("collection"))
	if !col.Valid() {
		h.base.Error(c, apperror.NewValidation("unknown system collection").WithDetail("collection", string(col)))
		return "", false
	}
	return col, true
}

// ListSystemItems returns one system collection.
func (h *LibraryHandler) ListSystemItems(c *gin.Context) {
	col, ok := h.collection(c)
	if !ok {
		return
	}
	items, err := h.store.SystemItems(col)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, items)
}

// AddSystemItem appends an entity to a system collection.
func (h *LibraryHandler) AddSystemItem(c *gin.Context) {
	col, ok := h.collection(c)
	if !ok {
		return
	}
	var req dto.EntityRequest
	if !h.base.BindJSON(c, &req) {
		return
	}
	item, err := h.store.AddSystemItem(col, req.ToEntity())
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.Created(c, item.ID)
}

// UpdateSystemItem replaces an entity in a system collection.
func (h *LibraryHandler) UpdateSystemItem(c *gin.Context) {
	col, ok := h.collection(c)
	if !ok {
		return
	}
	var req dto.EntityRequest
	if !h.base.BindJSON(c, &req) {
		return
	}
	item, err := h.store.UpdateSystemItem(col, c.Param("itemID"), req.ToEntity())
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.OK(c, item)
}

// DeleteSystemItem removes an entity from a system collection.
func (h *LibraryHandler) DeleteSystemItem(c *gin.Context) {
	col, ok := h.collection(c)
	if !ok {
		return
	}
	if err := h.store.DeleteSystemItem(col, c.Param("itemID")); err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.NoContent(c)
}

// --- Attribute categories ---

// ListAttributeCategories returns all attribute categories.
func (h *LibraryHandler) ListAttributeCategories(c *gin.Context) {
	h.base.OK(c, h.store.AttributeCategories())
}

// AddAttributeCategory creates an attribute category.
func (h *LibraryHandler) AddAttributeCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if !h.base.BindJSON(c, &req) {
		return
	}
	cat, err := h.store.AddAttributeCategory(req.Name, req.Type)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.Created(c, cat.ID)
}

// UpdateAttributeCategory renames an attribute category.
func (h *LibraryHandler) UpdateAttributeCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if !h.base.BindJSON(c, &req) {
		return
	}
	cat, err := h.store.UpdateAttributeCategory(c.Param("catID"), req.Name)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.OK(c, cat)
}

// DeleteAttributeCategory removes an attribute category. Historical
// quote items keep their selections; synthesis skips them.
func (h *LibraryHandler) DeleteAttributeCategory(c *gin.Context) {
	if err := h.store.DeleteAttributeCategory(c.Param("catID")); err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.NoContent(c)
}

// AddAttributeItem adds an entity to an attribute category.
func (h *LibraryHandler) AddAttributeItem(c *gin.Context) {
	var req dto.EntityRequest
	if !h.base.BindJSON(c, &req) {
		return
	}
	item, err := h.store.AddAttributeItem(c.Param("catID"), req.ToEntity())
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.Created(c, item.ID)
}

// UpdateAttributeItem replaces an entity in an attribute category.
func (h *LibraryHandler) UpdateAttributeItem(c *gin.Context) {
	var req dto.EntityRequest
	if !h.base.BindJSON(c, &req) {
		return
	}
	item, err := h.store.UpdateAttributeItem(c.Param("catID"), c.Param("itemID"), req.ToEntity())
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.OK(c, item)
}

// DeleteAttributeItem removes an entity from an attribute category.
func (h *LibraryHandler) DeleteAttributeItem(c *gin.Context) {
	if err := h.store.DeleteAttributeItem(c.Param("catID"), c.Param("itemID")); err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.NoContent(c)
}

// --- Term categories ---

// ListTermCategories returns all term categories.
func (h *LibraryHandler) ListTermCategories(c *gin.Context) {
	h.base.OK(c, h.store.TermCategories())
}

// AddTermCategory creates a term category.
func (h *LibraryHandler) AddTermCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if !h.base.BindJSON(c, &req) {
		return
	}
	cat, err := h.store.AddTermCategory(req.Name, req.Type)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.Created(c, cat.ID)
}

// UpdateTermCategory renames a term category or changes its arity.
func (h *LibraryHandler) UpdateTermCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if !h.base.BindJSON(c, &req) {
		return
	}
	cat, err := h.store.UpdateTermCategory(c.Param("catID"), req.Name, req.Type)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.OK(c, cat)
}

// DeleteTermCategory removes a term category.
func (h *LibraryHandler) DeleteTermCategory(c *gin.Context) {
	if err := h.store.DeleteTermCategory(c.Param("catID")); err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.NoContent(c)
}

// AddTermItem adds an entity to a term category.
func (h *LibraryHandler) AddTermItem(c *gin.Context) {
	var req dto.EntityRequest
	if !h.base.BindJSON(c, &req) {
		return
	}
	item, err := h.store.AddTermItem(c.Param("catID"), req.ToEntity())
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.Created(c, item.ID)
}

// UpdateTermItem replaces an entity in a term category.
func (h *LibraryHandler) UpdateTermItem(c *gin.Context) {
	var req dto.EntityRequest
	if !h.base.BindJSON(c, &req) {
		return
	}
	item, err := h.store.UpdateTermItem(c.Param("catID"), c.Param("itemID"), req.ToEntity())
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.OK(c, item)
}

// DeleteTermItem removes an entity from a term category.
func (h *LibraryHandler) DeleteTermItem(c *gin.Context) {
	if err := h.store.DeleteTermItem(c.Param("catID"), c.Param("itemID")); err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.NoContent(c)
}

// --- Settings ---

// GetSettings returns company settings.
func (h *LibraryHandler) GetSettings(c *gin.Context) {
	h.base.OK(c, h.store.Settings())
}

// UpdateSettings merges non-zero fields into company settings.
func (h *LibraryHandler) UpdateSettings(c *gin.Context) {
	var patch library.CompanySettings
	if !h.base.BindJSON(c, &patch) {
		return
	}
	settings := h.store.UpdateSettings(patch)
	h.persist()
	h.base.OK(c, settings)
}

// UpdateLabel changes a system category display label. The key comes
// from the route, falling back to the body for older clients.
func (h *LibraryHandler) UpdateLabel(c *gin.Context) {
	var req dto.LabelRequest
	if !h.base.BindJSON(c, &req) {
		return
	}
	key := c.Param("key")
	if key == "" {
		key = req.Key
	}
	if err := h.store.UpdateCategoryLabel(key, req.Label); err != nil {
		h.base.Error(c, err)
		return
	}
	h.persist()
	h.base.OK(c, h.store.Settings())
}

// Reorder replaces the category display order. Unknown ids are
// dropped and missing categories appended, never lost.
func (h *LibraryHandler) Reorder(c *gin.Context) {
	var req dto.OrderRequest
	if !h.base.BindJSON(c, &req) {
		return
	}
	order := h.store.ReorderCategories(req.Order)
	h.persist()
	h.base.OK(c, gin.H{"categoryOrder": order})
}

// ListTemplates returns the selectable document themes.
func (h *LibraryHandler) ListTemplates(c *gin.Context) {
	h.base.OK(c, document.Themes)
}
