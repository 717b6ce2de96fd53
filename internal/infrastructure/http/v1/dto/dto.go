// Package dto defines request and response shapes for API v1.
package dto

import (
	"time"

	"github.com/Huzeyfe22/otomatik-quote/internal/domain/library"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/quote"
)

// IDResponse is a minimal created-entity response.
type IDResponse struct {
	ID string `json:"id"`
}

// SuccessResponse is a generic acknowledgement.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// LoginRequest carries the workspace password.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns an access token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// EntityRequest creates or updates a taxonomy entity.
type EntityRequest struct {
	Name           string `json:"name"`
	HasDescription bool   `json:"hasDescription"`
	Description    string `json:"description"`
	IsExtras       bool   `json:"isExtras"`
}

// ToEntity maps the request onto a library entity.
func (r EntityRequest) ToEntity() library.Entity {
	return library.Entity{
		Name:           r.Name,
		HasDescription: r.HasDescription,
		Description:    r.Description,
		IsExtras:       r.IsExtras,
	}
}

// CategoryRequest creates or renames a category.
type CategoryRequest struct {
	Name string        `json:"name" binding:"required"`
	Type library.Arity `json:"type"`
}

// LabelRequest updates one system category label.
type LabelRequest struct {
	Key   string `json:"key"`
	Label string `json:"label" binding:"required"`
}

// OrderRequest replaces the category display order.
type OrderRequest struct {
	Order []string `json:"order" binding:"required"`
}

// TermsSelectionRequest sets the selection for one term category.
type TermsSelectionRequest struct {
	Items []library.Entity `json:"items"`
}

// ClientRequest updates quote client info.
type ClientRequest struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	ShowEmail *bool  `json:"showEmail"`
	ShowPhone *bool  `json:"showPhone"`
}

// NotesRequest updates the extra notes block.
type NotesRequest struct {
	Notes string `json:"notes"`
	Show  bool   `json:"show"`
}

// NumberRequest assigns an explicit quote number.
type NumberRequest struct {
	Number string `json:"number" binding:"required"`
}

// WorkspaceExport is the import/export payload for the full workspace.
type WorkspaceExport struct {
	Library      library.State `json:"library"`
	CurrentQuote *quote.Quote  `json:"currentQuote,omitempty"`
	SavedQuotes  []quote.Quote `json:"savedQuotes,omitempty"`
}
