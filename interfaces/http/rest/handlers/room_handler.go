package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"meumuseu/application/ports"
	"meumuseu/domain/core/entities"
	"meumuseu/domain/core/valueobjects"
	"meumuseu/pkg/auth"
	"meumuseu/pkg/common"
	pkgerrors "meumuseu/pkg/errors"
	"meumuseu/pkg/utils"
)

// Cover images arrive inline as data URIs, so room bodies can be large
const roomBodyLimit = 12 << 20 // 12 MB

// RoomHandler handles room CRUD
type RoomHandler struct {
	museum ports.MuseumStore
	plans  ports.PlanStore
	errors *pkgerrors.ErrorHandler
	logger *zap.Logger
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(museum ports.MuseumStore, plans ports.PlanStore, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *RoomHandler {
	return &RoomHandler{
		museum: museum,
		plans:  plans,
		errors: errorHandler,
		logger: logger,
	}
}

// CreateRoomRequest is the room creation request body
type CreateRoomRequest struct {
	Name          string `json:"name" validate:"required,max=120"`
	Description   string `json:"description" validate:"max=2000"`
	CoverImageURL string `json:"coverImageUrl"`
}

// UpdateRoomRequest is the partial room update request body
type UpdateRoomRequest struct {
	Name          *string `json:"name" validate:"omitempty,max=120"`
	Description   *string `json:"description" validate:"omitempty,max=2000"`
	CoverImageURL *string `json:"coverImageUrl"`
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	var req CreateRoomRequest
	if err := common.ParseJSONBody(r, &req, roomBodyLimit); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	room, err := h.museum.CreateRoom(r.Context(), userID, entities.RoomDraft{
		Name:          req.Name,
		Description:   req.Description,
		CoverImageURL: req.CoverImageURL,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, room)
}

// List handles GET /api/v1/rooms
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	rooms, err := h.museum.ListRooms(r.Context(), userID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, rooms)
}

// Get handles GET /api/v1/rooms/{roomID}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	room, err := h.museum.GetRoom(r.Context(), userID, roomID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, room)
}

// Update handles PUT /api/v1/rooms/{roomID}
func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req UpdateRoomRequest
	if err := common.ParseJSONBody(r, &req, roomBodyLimit); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	room, err := h.museum.UpdateRoom(r.Context(), userID, roomID, entities.RoomPatch{
		Name:          req.Name,
		Description:   req.Description,
		CoverImageURL: req.CoverImageURL,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, room)
}

// Delete handles DELETE /api/v1/rooms/{roomID}
func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.museum.DeleteRoom(r.Context(), userID, roomID); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Usage handles GET /api/v1/rooms/{roomID}/usage
func (h *RoomHandler) Usage(w http.ResponseWriter, r *http.Request) {
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

	// The room must exist and belong to the caller before usage is reported
	if _, err := h.museum.GetRoom(r.Context(), userID, roomID); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	usage, err := h.plans.UsageDetails(r.Context(), userID, roomID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, usage)
}

// requestUserID resolves the authenticated user id from the request context
func requestUserID(r *http.Request) (valueobjects.EntityID, error) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		return valueobjects.EntityID{}, pkgerrors.NewUnauthorizedError("authentication required")
	}
	id, err := valueobjects.NewEntityIDFromString(user.UserID)
	if err != nil {
		return valueobjects.EntityID{}, pkgerrors.NewUnauthorizedError("invalid session user")
	}
	return id, nil
}

// pathID resolves an entity id from a chi URL parameter
func pathID(r *http.Request, param string) (valueobjects.EntityID, error) {
	raw := chi.URLParam(r, param)
	id, err := valueobjects.NewEntityIDFromString(raw)
	if err != nil {
		return valueobjects.EntityID{}, pkgerrors.NewValidationError(param + " is required")
	}
	return id, nil
}
