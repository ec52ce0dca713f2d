package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"meumuseu/application/ports"
	"meumuseu/pkg/auth"
	"meumuseu/pkg/common"
	pkgerrors "meumuseu/pkg/errors"
	"meumuseu/pkg/utils"
)

const authBodyLimit = 1 << 20 // 1 MB

// AuthHandler handles login, registration and logout
type AuthHandler struct {
	identity ports.IdentityStore
	tokens   *auth.TokenService
	errors   *pkgerrors.ErrorHandler
	logger   *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(identity ports.IdentityStore, tokens *auth.TokenService, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		identity: identity,
		tokens:   tokens,
		errors:   errorHandler,
		logger:   logger,
	}
}

// LoginRequest is the login request body
type LoginRequest struct {
	Email    string `json:"email" validate:"required,contains=@"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterRequest is the registration request body
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,contains=@"`
	Password string `json:"password" validate:"required,min=6"`
}

// SessionResponse carries the minted session token and its user
type SessionResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := common.ParseJSONBody(r, &req, authBodyLimit); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	user, err := h.identity.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	token, err := h.tokens.Mint(user.ID.String(), user.Email, user.Name)
	if err != nil {
		h.errors.Handle(w, r, pkgerrors.NewInternalError("failed to mint session token"))
		return
	}

	common.RespondJSON(w, http.StatusOK, SessionResponse{Token: token, User: user})
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := common.ParseJSONBody(r, &req, authBodyLimit); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	user, err := h.identity.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	token, err := h.tokens.Mint(user.ID.String(), user.Email, user.Name)
	if err != nil {
		h.errors.Handle(w, r, pkgerrors.NewInternalError("failed to mint session token"))
		return
	}

	common.RespondJSON(w, http.StatusCreated, SessionResponse{Token: token, User: user})
}

// Logout handles POST /api/v1/auth/logout. Clearing the session also wipes
// the shared rooms and memories collections.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.identity.Logout(r.Context()); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
