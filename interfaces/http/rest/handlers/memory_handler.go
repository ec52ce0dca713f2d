package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"meumuseu/application/ports"
	"meumuseu/domain/core/entities"
	"meumuseu/domain/core/valueobjects"
	"meumuseu/pkg/common"
	pkgerrors "meumuseu/pkg/errors"
	"meumuseu/pkg/utils"
)

// Media payloads arrive inline as data URIs, so memory bodies can be large
const memoryBodyLimit = 12 << 20 // 12 MB

// MemoryHandler handles memory CRUD inside a room
type MemoryHandler struct {
	museum ports.MuseumStore
	errors *pkgerrors.ErrorHandler
	logger *zap.Logger
}

// NewMemoryHandler creates a new memory handler
func NewMemoryHandler(museum ports.MuseumStore, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *MemoryHandler {
	return &MemoryHandler{
		museum: museum,
		errors: errorHandler,
		logger: logger,
	}
}

// CreateMemoryRequest is the memory creation request body
type CreateMemoryRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	MediaType   string `json:"mediaType" validate:"required,oneof=text image video audio"`
	MediaURL    string `json:"mediaUrl"`
	Content     string `json:"content"`
	AIGenerated bool   `json:"aiGenerated"`
}

// UpdateMemoryRequest is the partial memory update request body
type UpdateMemoryRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	MediaType   *string `json:"mediaType" validate:"omitempty,oneof=text image video audio"`
	MediaURL    *string `json:"mediaUrl"`
	Content     *string `json:"content"`
	AIGenerated *bool   `json:"aiGenerated"`
}

// Create handles POST /api/v1/rooms/{roomID}/memories
func (h *MemoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	roomID, err := pathID(r, "roomID")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	var req CreateMemoryRequest
	if err := common.ParseJSONBody(r, &req, memoryBodyLimit); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	mediaType, err := valueobjects.ParseMediaType(req.MediaType)
	if err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid media type"))
		return
	}

	memory, err := h.museum.CreateMemory(r.Context(), userID, roomID, entities.MemoryDraft{
		Title:       req.Title,
		Description: req.Description,
		MediaType:   mediaType,
		MediaURL:    req.MediaURL,
		Content:     req.Content,
		AIGenerated: req.AIGenerated,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, memory)
}

// List handles GET /api/v1/rooms/{roomID}/memories
func (h *MemoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	roomID, err := pathID(r, "roomID")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	memories, err := h.museum.ListMemories(r.Context(), userID, roomID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, memories)
}

// Get handles GET /api/v1/rooms/{roomID}/memories/{memoryID}
func (h *MemoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, memoryID, err := h.scopedMemoryID(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	memory, err := h.museum.GetMemory(r.Context(), userID, memoryID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	if err := h.checkRoomScope(r, memory); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, memory)
}

// Update handles PUT /api/v1/rooms/{roomID}/memories/{memoryID}
func (h *MemoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, memoryID, err := h.scopedMemoryID(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	var req UpdateMemoryRequest
	if err := common.ParseJSONBody(r, &req, memoryBodyLimit); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	patch := entities.MemoryPatch{
		Title:       req.Title,
		Description: req.Description,
		MediaURL:    req.MediaURL,
		Content:     req.Content,
		AIGenerated: req.AIGenerated,
	}
	if req.MediaType != nil {
		mediaType, err := valueobjects.ParseMediaType(*req.MediaType)
		if err != nil {
			h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid media type"))
			return
		}
		patch.MediaType = &mediaType
	}

	existing, err := h.museum.GetMemory(r.Context(), userID, memoryID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	if err := h.checkRoomScope(r, existing); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	memory, err := h.museum.UpdateMemory(r.Context(), userID, memoryID, patch)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, memory)
}

// Delete handles DELETE /api/v1/rooms/{roomID}/memories/{memoryID}
func (h *MemoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, memoryID, err := h.scopedMemoryID(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	existing, err := h.museum.GetMemory(r.Context(), userID, memoryID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	if err := h.checkRoomScope(r, existing); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	if err := h.museum.DeleteMemory(r.Context(), userID, memoryID); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *MemoryHandler) scopedMemoryID(r *http.Request) (valueobjects.EntityID, valueobjects.EntityID, error) {
	userID, err := requestUserID(r)
	if err != nil {
		return valueobjects.EntityID{}, valueobjects.EntityID{}, err
	}
	memoryID, err := pathID(r, "memoryID")
	if err != nil {
		return valueobjects.EntityID{}, valueobjects.EntityID{}, err
	}
	return userID, memoryID, nil
}

// checkRoomScope rejects a memory addressed through the wrong room
func (h *MemoryHandler) checkRoomScope(r *http.Request, memory *entities.Memory) error {
	roomID, err := pathID(r, "roomID")
	if err != nil {
		return err
	}
	if !memory.RoomID.Equals(roomID) {
		return pkgerrors.NewNotFoundError("memory")
	}
	return nil
}
