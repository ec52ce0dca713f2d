// Package layout defines the durable key layout and the strict JSON codec
// used at the storage boundary. The key names are a compatibility contract
// with the data this service inherits; renaming them orphans existing data.
package layout

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"meumuseu/domain/core/entities"
	pkgerrors "meumuseu/pkg/errors"
)

// Durable keys. The rooms and memories collections span all users and are
// filtered by user id on every read.
const (
	KeyUser     = "museum_user"
	KeyRooms    = "museum_rooms"
	KeyMemories = "museum_memories"

	planKeyPrefix   = "museum_plan_"
	avatarKeyPrefix = "museum_avatar_"
)

// PlanKey returns the per-user plan key
func PlanKey(userID string) string {
	return planKeyPrefix + userID
}

// AvatarKey returns the per-user avatar key
func AvatarKey(userID string) string {
	return avatarKeyPrefix + userID
}

// Codec decodes and encodes persisted records. Decoding is strict: JSON
// that does not parse, or records missing required fields, surface as a
// PersistenceError instead of propagating zero values into the application.
type Codec struct {
	validate *validator.Validate
}

// NewCodec creates a codec with a fresh validator instance
func NewCodec() *Codec {
	return &Codec{validate: validator.New()}
}

// DecodeUser decodes the single session user record
func (c *Codec) DecodeUser(raw string) (*entities.User, error) {
	var user entities.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, pkgerrors.NewPersistenceError("decode user", err)
	}
	if err := c.validate.Struct(&user); err != nil {
		return nil, pkgerrors.NewPersistenceError("validate user", err)
	}
	return &user, nil
}

// EncodeUser encodes the single session user record
func (c *Codec) EncodeUser(user *entities.User) (string, error) {
	return c.encode("user", user)
}

// DecodeRooms decodes the shared rooms collection
func (c *Codec) DecodeRooms(raw string) ([]*entities.Room, error) {
	var rooms []*entities.Room
	if err := json.Unmarshal([]byte(raw), &rooms); err != nil {
		return nil, pkgerrors.NewPersistenceError("decode rooms", err)
	}
	for i, room := range rooms {
		if room == nil {
			return nil, pkgerrors.NewPersistenceError("validate rooms",
				fmt.Errorf("null room record at index %d", i))
		}
		if err := c.validate.Struct(room); err != nil {
			return nil, pkgerrors.NewPersistenceError("validate rooms", err)
		}
	}
	return rooms, nil
}

// EncodeRooms encodes the shared rooms collection
func (c *Codec) EncodeRooms(rooms []*entities.Room) (string, error) {
	if rooms == nil {
		rooms = []*entities.Room{}
	}
	return c.encode("rooms", rooms)
}

// DecodeMemories decodes the shared memories collection
func (c *Codec) DecodeMemories(raw string) ([]*entities.Memory, error) {
	var memories []*entities.Memory
	if err := json.Unmarshal([]byte(raw), &memories); err != nil {
		return nil, pkgerrors.NewPersistenceError("decode memories", err)
	}
	for i, memory := range memories {
		if memory == nil {
			return nil, pkgerrors.NewPersistenceError("validate memories",
				fmt.Errorf("null memory record at index %d", i))
		}
		if err := c.validate.Struct(memory); err != nil {
			return nil, pkgerrors.NewPersistenceError("validate memories", err)
		}
	}
	return memories, nil
}

// EncodeMemories encodes the shared memories collection
func (c *Codec) EncodeMemories(memories []*entities.Memory) (string, error) {
	if memories == nil {
		memories = []*entities.Memory{}
	}
	return c.encode("memories", memories)
}

func (c *Codec) encode(what string, v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", pkgerrors.NewPersistenceError("encode "+what, err)
	}
	return string(data), nil
}
