package config

import "time"

// DomainConfig holds configurable business rules and constraints
type DomainConfig struct {
	// Room constraints
	MaxRoomNameLength        int
	MaxRoomDescriptionLength int

	// Memory constraints
	MaxMemoryTitleLength       int
	MaxMemoryDescriptionLength int
	MaxMemoryContentLength     int
	MaxMediaURLLength          int

	// Identity constraints
	MinPasswordLength int
	MaxNameLength     int

	// Session constraints
	SessionTTL time.Duration

	// Validation settings
	AllowEmptyDescription bool
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxRoomNameLength:        120,
		MaxRoomDescriptionLength: 2000,

		MaxMemoryTitleLength:       200,
		MaxMemoryDescriptionLength: 2000,
		MaxMemoryContentLength:     50000,
		// Media is persisted inline as a base64 data URI, so the cap is
		// generous: ~8 MB of encoded payload.
		MaxMediaURLLength: 8 << 20,

		MinPasswordLength: 6,
		MaxNameLength:     120,

		SessionTTL: 24 * time.Hour,

		AllowEmptyDescription: true,
	}
}
