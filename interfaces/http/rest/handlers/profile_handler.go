package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"meumuseu/application/ports"
	"meumuseu/pkg/auth"
	"meumuseu/pkg/common"
	pkgerrors "meumuseu/pkg/errors"
)

// Avatars are inline base64 data URIs
const avatarBodyLimit = 12 << 20 // 12 MB

// ProfileHandler serves the session profile and its avatar
type ProfileHandler struct {
	avatars ports.AvatarStore
	errors  *pkgerrors.ErrorHandler
	logger  *zap.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(avatars ports.AvatarStore, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		avatars: avatars,
		errors:  errorHandler,
		logger:  logger,
	}
}

// ProfileResponse describes the authenticated user plus their avatar
type ProfileResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// AvatarRequest is the avatar update request body. An empty URI clears the
// stored avatar.
type AvatarRequest struct {
	Avatar string `json:"avatar"`
}

// Get handles GET /api/v1/profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}
	userID, err := requestUserID(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	avatar, err := h.avatars.Get(r.Context(), userID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, ProfileResponse{
		ID:     user.UserID,
		Email:  user.Email,
		Name:   user.Name,
		Avatar: avatar,
	})
}

// GetAvatar handles GET /api/v1/profile/avatar
func (h *ProfileHandler) GetAvatar(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	avatar, err := h.avatars.Get(r.Context(), userID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, AvatarRequest{Avatar: avatar})
}

// PutAvatar handles PUT /api/v1/profile/avatar
func (h *ProfileHandler) PutAvatar(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	var req AvatarRequest
	if err := common.ParseJSONBody(r, &req, avatarBodyLimit); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}

	if err := h.avatars.Set(r.Context(), userID, req.Avatar); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, AvatarRequest{Avatar: req.Avatar})
}
