package entities

import (
	"strings"
	"time"
	"unicode/utf8"

	"meumuseu/domain/config"
	"meumuseu/domain/core/valueobjects"
	pkgerrors "meumuseu/pkg/errors"
)

// Room is a user-owned, named collection of memories.
type Room struct {
	ID            valueobjects.EntityID `json:"id" validate:"required"`
	UserID        valueobjects.EntityID `json:"userId" validate:"required"`
	Name          string                `json:"name" validate:"required"`
	Description   string                `json:"description"`
	CoverImageURL string                `json:"coverImageUrl,omitempty"`
	CreatedAt     time.Time             `json:"createdAt" validate:"required"`
	UpdatedAt     time.Time             `json:"updatedAt" validate:"required"`
}

// RoomDraft carries the caller-supplied fields for creating a room
type RoomDraft struct {
	Name          string
	Description   string
	CoverImageURL string
}

// RoomPatch carries a partial update; nil fields are left untouched
type RoomPatch struct {
	Name          *string
	Description   *string
	CoverImageURL *string
}

// NewRoom creates a room owned by the given user, with both timestamps set
// to the same creation instant.
func NewRoom(userID valueobjects.EntityID, draft RoomDraft) (*Room, error) {
	if userID.IsZero() {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	if err := validateRoomFields(draft.Name, draft.Description); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Room{
		ID:            valueobjects.NewEntityID(),
		UserID:        userID,
		Name:          strings.TrimSpace(draft.Name),
		Description:   draft.Description,
		CoverImageURL: draft.CoverImageURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Apply merges a partial update into the room and refreshes UpdatedAt
func (r *Room) Apply(patch RoomPatch) error {
	name := r.Name
	description := r.Description
	if patch.Name != nil {
		name = *patch.Name
	}
	if patch.Description != nil {
		description = *patch.Description
	}
	if err := validateRoomFields(name, description); err != nil {
		return err
	}

	r.Name = strings.TrimSpace(name)
	r.Description = description
	if patch.CoverImageURL != nil {
		r.CoverImageURL = *patch.CoverImageURL
	}
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// OwnedBy reports whether the room belongs to the given user
func (r *Room) OwnedBy(userID valueobjects.EntityID) bool {
	return r.UserID.Equals(userID)
}

func validateRoomFields(name, description string) error {
	cfg := config.DefaultDomainConfig()

	if strings.TrimSpace(name) == "" {
		return pkgerrors.NewValidationError("room name cannot be empty")
	}
	if utf8.RuneCountInString(name) > cfg.MaxRoomNameLength {
		return pkgerrors.NewValidationError("room name too long")
	}
	if utf8.RuneCountInString(description) > cfg.MaxRoomDescriptionLength {
		return pkgerrors.NewValidationError("room description too long")
	}
	return nil
}
