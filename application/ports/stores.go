package ports

import (
	"context"

	"meumuseu/domain/core/aggregates"
	"meumuseu/domain/core/entities"
	"meumuseu/domain/core/valueobjects"
)

// IdentityStore manages the single logged-in user record. Login and
// register fabricate the user; there is no credential verification behind
// them.
type IdentityStore interface {
	// Login validates the credential format and starts a fresh session
	Login(ctx context.Context, email, password string) (*entities.User, error)

	// Register validates the registration fields and starts a fresh session
	Register(ctx context.Context, name, email, password string) (*entities.User, error)

	// Logout clears the session and wipes the shared collections
	Logout(ctx context.Context) error

	// Current returns the stored session user, or nil when logged out
	Current(ctx context.Context) (*entities.User, error)
}

// PlanStore tracks the per-user subscription tier and its quotas
type PlanStore interface {
	// Current returns the user's tier, defaulting (and persisting) basic
	Current(ctx context.Context, userID valueobjects.EntityID) (valueobjects.PlanType, error)

	// IsWithinLimits checks room count (and optionally memory count, pass
	// ports.NoCount to skip) against the user's tier quotas
	IsWithinLimits(ctx context.Context, userID valueobjects.EntityID, roomCount, memoryCount int) (bool, error)

	// CanAddMemoryToRoom checks the per-room memory ceiling against the
	// durable collection (not any in-memory view)
	CanAddMemoryToRoom(ctx context.Context, userID, roomID valueobjects.EntityID) (bool, error)

	// UpgradeToPremium flips the tier flag; no payment verification happens
	UpgradeToPremium(ctx context.Context, userID valueobjects.EntityID) error

	// UsageDetails reports current/max/percentage for a room's memory quota
	UsageDetails(ctx context.Context, userID, roomID valueobjects.EntityID) (Usage, error)
}

// NoCount skips the optional memory-count check in IsWithinLimits
const NoCount = -1

// Usage reports quota consumption for a single room
type Usage struct {
	Current    int     `json:"current"`
	Max        int     `json:"max"`
	Percentage float64 `json:"percentage"`
}

// MuseumStore manages the rooms and memories collections. Every call takes
// the acting user id explicitly; ownership mismatches surface as not found.
type MuseumStore interface {
	CreateRoom(ctx context.Context, userID valueobjects.EntityID, draft entities.RoomDraft) (*entities.Room, error)
	UpdateRoom(ctx context.Context, userID, roomID valueobjects.EntityID, patch entities.RoomPatch) (*entities.Room, error)
	DeleteRoom(ctx context.Context, userID, roomID valueobjects.EntityID) error
	GetRoom(ctx context.Context, userID, roomID valueobjects.EntityID) (*entities.Room, error)
	ListRooms(ctx context.Context, userID valueobjects.EntityID) ([]*entities.Room, error)

	CreateMemory(ctx context.Context, userID, roomID valueobjects.EntityID, draft entities.MemoryDraft) (*entities.Memory, error)
	UpdateMemory(ctx context.Context, userID, memoryID valueobjects.EntityID, patch entities.MemoryPatch) (*entities.Memory, error)
	DeleteMemory(ctx context.Context, userID, memoryID valueobjects.EntityID) error
	GetMemory(ctx context.Context, userID, memoryID valueobjects.EntityID) (*entities.Memory, error)
	ListMemories(ctx context.Context, userID, roomID valueobjects.EntityID) ([]*entities.Memory, error)

	// RoomMemoryCount counts the user's memories in a room
	RoomMemoryCount(ctx context.Context, userID, roomID valueobjects.EntityID) (int, error)
}

// CaptionGenerator produces a decorative caption from a free-text
// description. The context bounds the simulated backend latency.
type CaptionGenerator interface {
	GenerateWithContext(ctx context.Context, description string) (string, error)
}

// ShareReader assembles the public, read-only museum view for a user id
type ShareReader interface {
	Museum(ctx context.Context, userID valueobjects.EntityID) (*aggregates.Museum, error)
}

// AvatarStore persists per-user profile images as base64 data URIs
type AvatarStore interface {
	Get(ctx context.Context, userID valueobjects.EntityID) (string, error)
	Set(ctx context.Context, userID valueobjects.EntityID, dataURI string) error
}
