// Package reconcile maps verified external identity assertions to local
// accounts. It is the ONLY place where provider-identity-to-account mapping
// policy lives.
package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/duyng2512/devmeet/internal/identity"
)

// Assertion is a verified profile assertion produced by a provider
// integration. It contains facts only; the provider handshake has already
// established their authenticity.
type Assertion struct {
	ExternalID string // provider-scoped unique user identifier (sub)
	Email      string // verified email returned by the provider
	Name       string
	AvatarURL  string
}

// Reconciler resolves assertions against the identity store, creating an
// account on first sight of an external id.
type Reconciler struct {
	store identity.Store
}

func New(store identity.Store) *Reconciler {
	return &Reconciler{store: store}
}

// Reconcile returns the local identity for the assertion.
//
// Lookup is keyed on the external id. An existing account is returned as-is:
// no field updates are forced, so user edits to name or avatar survive later
// logins. A missing account is created without a password hash; if the email
// is already bound to another account the insert fails with
// identity.ErrDuplicateEmail rather than creating a second account sharing
// the email.
func (r *Reconciler) Reconcile(
	ctx context.Context,
	assertion Assertion,
) (*identity.Identity, error) {

	if assertion.ExternalID == "" || assertion.Email == "" {
		return nil, errors.New("assertion missing external id or email")
	}

	ident, err := r.store.FindByExternalID(ctx, assertion.ExternalID)
	if err == nil {
		return ident, nil
	}
	if !errors.Is(err, identity.ErrNotFound) {
		return nil, fmt.Errorf("lookup identity: %w", err)
	}

	ident, err = r.store.Insert(ctx, &identity.Identity{
		Email:      assertion.Email,
		ExternalID: assertion.ExternalID,
		Name:       assertion.Name,
		AvatarURL:  assertion.AvatarURL,
	})
	if err != nil {
		// Duplicate sentinels propagate unchanged; a concurrent registration
		// racing on the same email or external id must lose visibly.
		return nil, err
	}

	return ident, nil
}
