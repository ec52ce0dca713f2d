package valueobjects

import "fmt"

// PlanType represents a subscription tier
type PlanType string

const (
	PlanBasic   PlanType = "basic"
	PlanPremium PlanType = "premium"
)

// Unlimited is the sentinel for quota fields without a ceiling
const Unlimited = -1

// ParsePlanType validates and converts a raw string into a PlanType
func ParsePlanType(s string) (PlanType, error) {
	pt := PlanType(s)
	if !pt.IsValid() {
		return "", fmt.Errorf("invalid plan type %q", s)
	}
	return pt, nil
}

// IsValid reports whether the plan type is a known tier
func (p PlanType) IsValid() bool {
	return p == PlanBasic || p == PlanPremium
}

// IsPremium reports whether the plan has unlimited quotas
func (p PlanType) IsPremium() bool {
	return p == PlanPremium
}

// String returns the string representation of the plan type
func (p PlanType) String() string {
	return string(p)
}

// PlanLimits holds the numeric quotas of a tier
type PlanLimits struct {
	MaxRooms           int `json:"maxRooms"`
	MaxMemoriesPerRoom int `json:"maxMemoriesPerRoom"`
}

// Limits returns the static quota table entry for the tier
func (p PlanType) Limits() PlanLimits {
	if p.IsPremium() {
		return PlanLimits{MaxRooms: Unlimited, MaxMemoriesPerRoom: Unlimited}
	}
	return PlanLimits{MaxRooms: 1, MaxMemoriesPerRoom: 3}
}

// AllowsRooms reports whether count more rooms stay within the tier quota
func (l PlanLimits) AllowsRooms(current int) bool {
	return l.MaxRooms == Unlimited || current < l.MaxRooms
}

// AllowsMemories reports whether one more memory stays within the per-room quota
func (l PlanLimits) AllowsMemories(current int) bool {
	return l.MaxMemoriesPerRoom == Unlimited || current < l.MaxMemoriesPerRoom
}
