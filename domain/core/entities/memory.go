package entities

import (
	"strings"
	"time"
	"unicode/utf8"

	"meumuseu/domain/config"
	"meumuseu/domain/core/valueobjects"
	pkgerrors "meumuseu/pkg/errors"
)

// Memory is a single media or text entry belonging to one room. Non-text
// memories carry their payload inline as a base64 data URI; text memories
// carry free-form content instead.
type Memory struct {
	ID          valueobjects.EntityID  `json:"id" validate:"required"`
	RoomID      valueobjects.EntityID  `json:"roomId" validate:"required"`
	UserID      valueobjects.EntityID  `json:"userId" validate:"required"`
	Title       string                 `json:"title" validate:"required"`
	Description string                 `json:"description"`
	MediaType   valueobjects.MediaType `json:"mediaType" validate:"required,oneof=text image video audio"`
	MediaURL    string                 `json:"mediaUrl,omitempty"`
	Content     string                 `json:"content,omitempty"`
	AIGenerated bool                   `json:"aiGenerated,omitempty"`
	CreatedAt   time.Time              `json:"createdAt" validate:"required"`
	UpdatedAt   time.Time              `json:"updatedAt" validate:"required"`
}

// MemoryDraft carries the caller-supplied fields for creating a memory
type MemoryDraft struct {
	Title       string
	Description string
	MediaType   valueobjects.MediaType
	MediaURL    string
	Content     string
	AIGenerated bool
}

// MemoryPatch carries a partial update; nil fields are left untouched
type MemoryPatch struct {
	Title       *string
	Description *string
	MediaType   *valueobjects.MediaType
	MediaURL    *string
	Content     *string
	AIGenerated *bool
}

// NewMemory creates a memory owned by the given user inside the given room
func NewMemory(userID, roomID valueobjects.EntityID, draft MemoryDraft) (*Memory, error) {
	if userID.IsZero() {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	if roomID.IsZero() {
		return nil, pkgerrors.NewValidationError("roomID cannot be empty")
	}
	if err := validateMemoryFields(draft.Title, draft.Description, draft.MediaType, draft.MediaURL, draft.Content); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Memory{
		ID:          valueobjects.NewEntityID(),
		RoomID:      roomID,
		UserID:      userID,
		Title:       strings.TrimSpace(draft.Title),
		Description: draft.Description,
		MediaType:   draft.MediaType,
		MediaURL:    draft.MediaURL,
		Content:     draft.Content,
		AIGenerated: draft.AIGenerated,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Apply merges a partial update into the memory and refreshes UpdatedAt
func (m *Memory) Apply(patch MemoryPatch) error {
	title := m.Title
	description := m.Description
	mediaType := m.MediaType
	mediaURL := m.MediaURL
	content := m.Content

	if patch.Title != nil {
		title = *patch.Title
	}
	if patch.Description != nil {
		description = *patch.Description
	}
	if patch.MediaType != nil {
		mediaType = *patch.MediaType
	}
	if patch.MediaURL != nil {
		mediaURL = *patch.MediaURL
	}
	if patch.Content != nil {
		content = *patch.Content
	}
	if err := validateMemoryFields(title, description, mediaType, mediaURL, content); err != nil {
		return err
	}

	m.Title = strings.TrimSpace(title)
	m.Description = description
	m.MediaType = mediaType
	m.MediaURL = mediaURL
	m.Content = content
	if patch.AIGenerated != nil {
		m.AIGenerated = *patch.AIGenerated
	}
	m.UpdatedAt = time.Now().UTC()
	return nil
}

// OwnedBy reports whether the memory belongs to the given user
func (m *Memory) OwnedBy(userID valueobjects.EntityID) bool {
	return m.UserID.Equals(userID)
}

func validateMemoryFields(title, description string, mediaType valueobjects.MediaType, mediaURL, content string) error {
	cfg := config.DefaultDomainConfig()

	if strings.TrimSpace(title) == "" {
		return pkgerrors.NewValidationError("memory title cannot be empty")
	}
	if utf8.RuneCountInString(title) > cfg.MaxMemoryTitleLength {
		return pkgerrors.NewValidationError("memory title too long")
	}
	if utf8.RuneCountInString(description) > cfg.MaxMemoryDescriptionLength {
		return pkgerrors.NewValidationError("memory description too long")
	}
	if !mediaType.IsValid() {
		return pkgerrors.NewValidationError("invalid media type")
	}
	if mediaType.UsesMediaURL() {
		if len(mediaURL) > cfg.MaxMediaURLLength {
			return pkgerrors.NewValidationError("media payload too large")
		}
	} else if utf8.RuneCountInString(content) > cfg.MaxMemoryContentLength {
		return pkgerrors.NewValidationError("memory content too long")
	}
	return nil
}
