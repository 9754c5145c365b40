package credentials

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/duyng2512/devmeet/internal/identity"
)

const minPasswordLength = 5

var (
	// ErrInvalidCredentials covers unknown email, password-less account and
	// password mismatch alike, so callers cannot probe for account existence.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyRegistered  = errors.New("account already exists")
	ErrWeakPassword       = errors.New("password must have at least 5 characters")
)

// Service implements local (email + password) registration and login.
type Service struct {
	store identity.Store
}

func NewService(store identity.Store) *Service {
	return &Service{store: store}
}

// Register creates a locally-authenticated identity and returns it.
func (s *Service) Register(
	ctx context.Context,
	name string,
	email string,
	password string,
) (*identity.Identity, error) {

	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	ident, err := s.store.Insert(ctx, &identity.Identity{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		AvatarURL:    AvatarURL(email),
	})
	if errors.Is(err, identity.ErrDuplicateEmail) {
		return nil, ErrAlreadyRegistered
	}
	if err != nil {
		return nil, fmt.Errorf("insert identity: %w", err)
	}

	return ident, nil
}

// Authenticate validates an email/password pair and returns the identity id.
func (s *Service) Authenticate(
	ctx context.Context,
	email string,
	password string,
) (string, error) {

	ident, err := s.store.FindByEmail(ctx, email)
	if errors.Is(err, identity.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("find identity: %w", err)
	}

	// Accounts created via an external provider have no password.
	if ident.PasswordHash == "" {
		return "", ErrInvalidCredentials
	}

	if err := VerifyPassword(ident.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	return ident.ID, nil
}

// AvatarURL derives a deterministic placeholder avatar for accounts
// registered without one.
func AvatarURL(email string) string {
	return "https://avatars.dicebear.com/api/avataaars/" +
		url.PathEscape(email) + ".svg"
}
