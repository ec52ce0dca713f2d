package entities

import (
	"strings"

	"meumuseu/domain/config"
	"meumuseu/domain/core/valueobjects"
	pkgerrors "meumuseu/pkg/errors"
)

// User is the single active account record. There is no user table behind
// it: login and registration fabricate a fresh record that replaces any
// prior session, matching the persisted-data contract this service inherits.
type User struct {
	ID    valueobjects.EntityID `json:"id" validate:"required"`
	Email string                `json:"email" validate:"required,contains=@"`
	Name  string                `json:"name" validate:"required"`
}

// NewUser fabricates a user record for a fresh session. When name is empty
// it is derived from the email local part.
func NewUser(email, name string) (*User, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	if !strings.Contains(email, "@") {
		return nil, pkgerrors.NewValidationError("email must contain @")
	}
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	if maxLen := config.DefaultDomainConfig().MaxNameLength; len(name) > maxLen {
		name = name[:maxLen]
	}

	return &User{
		ID:    valueobjects.NewEntityID(),
		Email: email,
		Name:  name,
	}, nil
}

// ValidateCredentials applies the format checks login and register share.
// There is no credential store; this is the entire "authentication".
func ValidateCredentials(email, password string) error {
	if !strings.Contains(email, "@") {
		return pkgerrors.NewValidationError("email must contain @")
	}
	if len(password) < config.DefaultDomainConfig().MinPasswordLength {
		return pkgerrors.NewValidationError("password must be at least 6 characters")
	}
	return nil
}
