// Package identitytest provides an in-memory identity.Store for tests.
// It enforces the same uniqueness rules as the Postgres store.
package identitytest

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/duyng2512/devmeet/internal/identity"
)

type Store struct {
	mu      sync.Mutex
	records map[string]*identity.Identity
}

func NewStore() *Store {
	return &Store{records: make(map[string]*identity.Identity)}
}

func (s *Store) FindByID(_ context.Context, id string) (*identity.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, identity.ErrNotFound
	}
	out := *rec
	return &out, nil
}

func (s *Store) FindByEmail(_ context.Context, email string) (*identity.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if strings.EqualFold(rec.Email, email) {
			out := *rec
			return &out, nil
		}
	}
	return nil, identity.ErrNotFound
}

func (s *Store) FindByExternalID(_ context.Context, externalID string) (*identity.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if rec.ExternalID != "" && rec.ExternalID == externalID {
			out := *rec
			return &out, nil
		}
	}
	return nil, identity.ErrNotFound
}

func (s *Store) Insert(_ context.Context, ident *identity.Identity) (*identity.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if strings.EqualFold(rec.Email, ident.Email) {
			return nil, identity.ErrDuplicateEmail
		}
		if ident.ExternalID != "" && rec.ExternalID == ident.ExternalID {
			return nil, identity.ErrDuplicateExternalID
		}
	}

	rec := *ident
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now()
	s.records[rec.ID] = &rec

	out := rec
	return &out, nil
}

func (s *Store) UpdateByID(_ context.Context, id string, fields identity.Update) (*identity.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, identity.ErrNotFound
	}
	if fields.Name != nil {
		rec.Name = *fields.Name
	}
	if fields.AvatarURL != nil {
		rec.AvatarURL = *fields.AvatarURL
	}

	out := *rec
	return &out, nil
}
