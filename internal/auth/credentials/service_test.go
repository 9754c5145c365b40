package credentials

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duyng2512/devmeet/internal/identity"
	"github.com/duyng2512/devmeet/internal/identity/identitytest"
)

func TestRegisterThenAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(identitytest.NewStore())

	ident, err := svc.Register(ctx, "Alice", "a@x.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, ident.ID)
	assert.NotEmpty(t, ident.PasswordHash)
	assert.NotEqual(t, "secret1", ident.PasswordHash)
	assert.Contains(t, ident.AvatarURL, "a@x.com")

	id, err := svc.Authenticate(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, ident.ID, id)

	_, err = svc.Authenticate(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	svc := NewService(identitytest.NewStore())

	_, err := svc.Authenticate(context.Background(), "nobody@x.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateExternalOnlyAccount(t *testing.T) {
	ctx := context.Background()
	store := identitytest.NewStore()
	svc := NewService(store)

	_, err := store.Insert(ctx, &identity.Identity{
		Email:      "b@x.com",
		ExternalID: "g-123",
	})
	require.NoError(t, err)

	// Same error as a wrong password; must not reveal the account shape.
	_, err = svc.Authenticate(ctx, "b@x.com", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewService(identitytest.NewStore())

	_, err := svc.Register(ctx, "Alice", "a@x.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Mallory", "A@X.COM", "secret2")
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegisterWeakPassword(t *testing.T) {
	svc := NewService(identitytest.NewStore())

	_, err := svc.Register(context.Background(), "Alice", "a@x.com", "abc")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestHashPasswordSaltVaries(t *testing.T) {
	h1, err := HashPassword("secret1")
	require.NoError(t, err)
	h2, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.NoError(t, VerifyPassword(h1, "secret1"))
	assert.NoError(t, VerifyPassword(h2, "secret1"))
	assert.Error(t, VerifyPassword(h1, "secret2"))
}
