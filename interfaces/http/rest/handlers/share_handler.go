package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"meumuseu/application/ports"
	"meumuseu/pkg/common"
	pkgerrors "meumuseu/pkg/errors"
)

// ShareHandler serves the public, read-only museum view
type ShareHandler struct {
	share  ports.ShareReader
	errors *pkgerrors.ErrorHandler
	logger *zap.Logger
}

// NewShareHandler creates a new share handler
func NewShareHandler(share ports.ShareReader, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *ShareHandler {
	return &ShareHandler{
		share:  share,
		errors: errorHandler,
		logger: logger,
	}
}

// Get handles GET /api/v1/share/{userID}. No authentication: anyone with
// the owner's id sees the museum, grouped by room with media counts.
func (h *ShareHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	museum, err := h.share.Museum(r.Context(), userID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, museum)
}
