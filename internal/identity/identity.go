package identity

import (
	"context"
	"errors"
	"time"
)

// Identity is a persisted account record, local- or externally-authenticated.
// PasswordHash and ExternalID use "" for absent; at least one of the two is
// set on every stored record.
type Identity struct {
	ID           string
	Email        string
	PasswordHash string
	ExternalID   string
	Name         string
	AvatarURL    string
	CreatedAt    time.Time
}

// Update carries the mutable descriptive fields. Nil means leave unchanged.
type Update struct {
	Name      *string
	AvatarURL *string
}

var (
	ErrNotFound            = errors.New("identity not found")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrDuplicateExternalID = errors.New("external id already linked")
)

// Store persists identities. Uniqueness of email (case-insensitive) and
// external id is enforced by the store, not by callers; concurrent inserts
// racing on either field lose with the matching duplicate error.
type Store interface {
	FindByID(ctx context.Context, id string) (*Identity, error)
	FindByEmail(ctx context.Context, email string) (*Identity, error)
	FindByExternalID(ctx context.Context, externalID string) (*Identity, error)
	Insert(ctx context.Context, ident *Identity) (*Identity, error)
	UpdateByID(ctx context.Context, id string, fields Update) (*Identity, error)
}
