// Package snippets stores code snippets shared between developers.
package snippets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/duyng2512/devmeet/internal/db"
)

var ErrNotFound = errors.New("snippet not found")

type Snippet struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Content     string    `json:"content"`
	Description string    `json:"description,omitempty"`
	Language    string    `json:"language,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Store struct {
	db *db.DB
}

func NewStore(db *db.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, sn *Snippet) (*Snippet, error) {
	out := *sn
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO snippets (owner_id, content, description, language)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, sn.OwnerID, sn.Content, sn.Description, sn.Language).
		Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert snippet: %w", err)
	}
	return &out, nil
}

// ListByOwner returns the owner's snippets, newest first.
func (s *Store) ListByOwner(ctx context.Context, ownerID string) ([]Snippet, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, content, description, language, created_at
		FROM snippets
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list snippets: %w", err)
	}
	defer rows.Close()

	out := []Snippet{}
	for rows.Next() {
		var sn Snippet
		if err := rows.Scan(&sn.ID, &sn.OwnerID, &sn.Content, &sn.Description, &sn.Language, &sn.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan snippet: %w", err)
		}
		out = append(out, sn)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (*Snippet, error) {
	var sn Snippet
	err := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, content, description, language, created_at
		FROM snippets
		WHERE id = $1
	`, id).Scan(&sn.ID, &sn.OwnerID, &sn.Content, &sn.Description, &sn.Language, &sn.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get snippet: %w", err)
	}
	return &sn, nil
}

// Delete removes a snippet if it belongs to the owner.
func (s *Store) Delete(ctx context.Context, id, ownerID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM snippets
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete snippet: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
