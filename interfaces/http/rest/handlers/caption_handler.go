package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"meumuseu/application/ports"
	"meumuseu/pkg/common"
	pkgerrors "meumuseu/pkg/errors"
	"meumuseu/pkg/utils"
)

const captionBodyLimit = 1 << 20 // 1 MB

// CaptionHandler handles caption generation
type CaptionHandler struct {
	captions ports.CaptionGenerator
	errors   *pkgerrors.ErrorHandler
	logger   *zap.Logger
}

// NewCaptionHandler creates a new caption handler
func NewCaptionHandler(captions ports.CaptionGenerator, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *CaptionHandler {
	return &CaptionHandler{
		captions: captions,
		errors:   errorHandler,
		logger:   logger,
	}
}

// CaptionRequest is the caption generation request body
type CaptionRequest struct {
	Description string `json:"description" validate:"required"`
}

// CaptionResponse carries the generated caption
type CaptionResponse struct {
	Caption string `json:"caption"`
}

// Generate handles POST /api/v1/captions
func (h *CaptionHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req CaptionRequest
	if err := common.ParseJSONBody(r, &req, captionBodyLimit); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("description is required"))
		return
	}

	caption, err := h.captions.GenerateWithContext(r.Context(), req.Description)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, CaptionResponse{Caption: caption})
}
