package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/duyng2512/devmeet/internal/db"
)

// PostgresStore is the canonical identity store.
type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const identityColumns = `
	id,
	email,
	COALESCE(password_hash, ''),
	COALESCE(external_id, ''),
	name,
	avatar_url,
	created_at
`

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*Identity, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+identityColumns+`
		FROM identities
		WHERE id = $1
	`, id)
	return scanIdentity(row)
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*Identity, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+identityColumns+`
		FROM identities
		WHERE LOWER(email) = LOWER($1)
	`, email)
	return scanIdentity(row)
}

func (s *PostgresStore) FindByExternalID(ctx context.Context, externalID string) (*Identity, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+identityColumns+`
		FROM identities
		WHERE external_id = $1
	`, externalID)
	return scanIdentity(row)
}

func (s *PostgresStore) Insert(ctx context.Context, ident *Identity) (*Identity, error) {
	out := *ident
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO identities (email, password_hash, external_id, name, avatar_url)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5)
		RETURNING id, created_at
	`,
		ident.Email,
		ident.PasswordHash,
		ident.ExternalID,
		ident.Name,
		ident.AvatarURL,
	).Scan(&out.ID, &out.CreatedAt)

	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	return &out, nil
}

func (s *PostgresStore) UpdateByID(ctx context.Context, id string, fields Update) (*Identity, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE identities
		SET name       = COALESCE($2::text, name),
		    avatar_url = COALESCE($3::text, avatar_url),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING `+identityColumns+`
	`, id, fields.Name, fields.AvatarURL)
	return scanIdentity(row)
}

func scanIdentity(row *sql.Row) (*Identity, error) {
	var ident Identity
	err := row.Scan(
		&ident.ID,
		&ident.Email,
		&ident.PasswordHash,
		&ident.ExternalID,
		&ident.Name,
		&ident.AvatarURL,
		&ident.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan identity: %w", err)
	}
	return &ident, nil
}

// mapUniqueViolation translates Postgres unique_violation errors into the
// store's duplicate sentinels by constraint name.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		switch pqErr.Constraint {
		case "identities_email_lower_unique":
			return ErrDuplicateEmail
		case "identities_external_id_unique":
			return ErrDuplicateExternalID
		}
	}
	return err
}
