// Package auth holds the HTTP handlers for registration, login, and token
// lifecycle.
package auth

import (
	"agrimitra/internal/service"
)

// Handler routes auth requests to the auth service.
type Handler struct {
	authService *service.AuthService
}

func NewHandler(authService *service.AuthService) *Handler {
	return &Handler{
		authService: authService,
	}
}
