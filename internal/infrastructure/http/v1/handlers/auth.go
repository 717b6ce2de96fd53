package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Huzeyfe22/otomatik-quote/internal/domain/auth"
	"github.com/Huzeyfe22/otomatik-quote/internal/infrastructure/http/v1/dto"
)

// AuthHandler serves login.
type AuthHandler struct {
	base *BaseHandler
	auth *auth.Service
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(base *BaseHandler, svc *auth.Service) *AuthHandler {
	return &AuthHandler{base: base, auth: svc}
}

// Login exchanges the workspace password for an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.base.BindJSON(c, &req) {
		return
	}
	token, expiresAt, err := h.auth.Login(req.Password)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.LoginResponse{Token: token, ExpiresAt: expiresAt})
}
