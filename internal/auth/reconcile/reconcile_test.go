package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duyng2512/devmeet/internal/identity"
	"github.com/duyng2512/devmeet/internal/identity/identitytest"
)

func TestReconcileCreatesOnFirstSight(t *testing.T) {
	ctx := context.Background()
	r := New(identitytest.NewStore())

	ident, err := r.Reconcile(ctx, Assertion{
		ExternalID: "g-123",
		Email:      "b@x.com",
		Name:       "Bob",
		AvatarURL:  "https://example.com/bob.png",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, ident.ID)
	assert.Equal(t, "g-123", ident.ExternalID)
	assert.Empty(t, ident.PasswordHash)
}

func TestReconcileIdempotentPerExternalID(t *testing.T) {
	ctx := context.Background()
	r := New(identitytest.NewStore())

	first, err := r.Reconcile(ctx, Assertion{ExternalID: "g-123", Email: "b@x.com"})
	require.NoError(t, err)

	second, err := r.Reconcile(ctx, Assertion{ExternalID: "g-123", Email: "b@x.com"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestReconcileDoesNotClobberUserEdits(t *testing.T) {
	ctx := context.Background()
	store := identitytest.NewStore()
	r := New(store)

	first, err := r.Reconcile(ctx, Assertion{
		ExternalID: "g-123",
		Email:      "b@x.com",
		Name:       "Bob",
	})
	require.NoError(t, err)

	edited := "Robert"
	_, err = store.UpdateByID(ctx, first.ID, identity.Update{Name: &edited})
	require.NoError(t, err)

	again, err := r.Reconcile(ctx, Assertion{
		ExternalID: "g-123",
		Email:      "b@x.com",
		Name:       "Bob",
	})
	require.NoError(t, err)
	assert.Equal(t, "Robert", again.Name)
}

func TestReconcileDuplicateEmailConflict(t *testing.T) {
	ctx := context.Background()
	store := identitytest.NewStore()
	r := New(store)

	// Locally-registered account holds the email, no external id.
	_, err := store.Insert(ctx, &identity.Identity{
		Email:        "b@x.com",
		PasswordHash: "hash",
	})
	require.NoError(t, err)

	_, err = r.Reconcile(ctx, Assertion{ExternalID: "g-123", Email: "b@x.com"})
	assert.ErrorIs(t, err, identity.ErrDuplicateEmail)
}

func TestReconcileRejectsIncompleteAssertion(t *testing.T) {
	r := New(identitytest.NewStore())

	_, err := r.Reconcile(context.Background(), Assertion{Email: "b@x.com"})
	assert.Error(t, err)

	_, err = r.Reconcile(context.Background(), Assertion{ExternalID: "g-123"})
	assert.Error(t, err)
}
