// Package files stores uploaded images and PDFs as database blobs, the way
// the rest of the system keeps all state in the primary store.
package files

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/duyng2512/devmeet/internal/db"
)

var ErrNotFound = errors.New("file not found")

// MaxSize bounds uploads at 8 MiB.
const MaxSize = 8 << 20

// allowedTypes is the upload content-type whitelist.
var allowedTypes = map[string]string{
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/gif":       ".gif",
	"application/pdf": ".pdf",
}

type File struct {
	Name        string    `json:"name"`
	OwnerID     string    `json:"owner_id"`
	ContentType string    `json:"content_type"`
	Data        []byte    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// RandomName builds a random hex name with the extension matching the
// content type, or "" if the type is not allowed.
func RandomName(contentType string) (string, error) {
	ext, ok := allowedTypes[contentType]
	if !ok {
		return "", fmt.Errorf("unsupported content type %q", contentType)
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate file name: %w", err)
	}
	return hex.EncodeToString(buf) + ext, nil
}

type Store struct {
	db *db.DB
}

func NewStore(db *db.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Save(ctx context.Context, f *File) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO files (name, owner_id, content_type, data)
		VALUES ($1, $2, $3, $4)
	`, f.Name, f.OwnerID, f.ContentType, f.Data)
	if err != nil {
		return fmt.Errorf("insert file: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, name string) (*File, error) {
	var f File
	err := s.db.QueryRowContext(ctx, `
		SELECT name, owner_id, content_type, data, created_at
		FROM files
		WHERE name = $1
	`, name).Scan(&f.Name, &f.OwnerID, &f.ContentType, &f.Data, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}
	return &f, nil
}

// Delete removes a file if it belongs to the owner.
func (s *Store) Delete(ctx context.Context, name, ownerID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM files
		WHERE name = $1 AND owner_id = $2
	`, name, ownerID)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
