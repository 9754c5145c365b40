package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := NewService(testSecret, 10*time.Hour)

	raw, err := svc.Issue("identity-42")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	id, err := svc.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "identity-42", id)
}

func TestVerifyExpired(t *testing.T) {
	svc := NewService(testSecret, time.Hour)

	issued := time.Now()
	svc.now = func() time.Time { return issued }

	raw, err := svc.Issue("identity-42")
	require.NoError(t, err)

	// Move past the TTL before verifying.
	svc.now = func() time.Time { return issued.Add(2 * time.Hour) }

	_, err = svc.Verify(raw)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewService(testSecret, time.Hour)
	verifier := NewService("another-secret-another-secret-32", time.Hour)

	raw, err := issuer.Issue("identity-42")
	require.NoError(t, err)

	_, err = verifier.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyMalformed(t *testing.T) {
	svc := NewService(testSecret, time.Hour)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Verify(raw)
		assert.ErrorIs(t, err, ErrMalformed, "input %q", raw)
	}
}

func TestVerifyMissingSubject(t *testing.T) {
	svc := NewService(testSecret, time.Hour)

	raw, err := svc.Issue("")
	require.NoError(t, err)

	_, err = svc.Verify(raw)
	assert.ErrorIs(t, err, ErrMalformed)
}
