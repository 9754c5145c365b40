// Package posts implements the social feed: posts with likes and comments.
package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/duyng2512/devmeet/internal/db"
)

var (
	ErrNotFound     = errors.New("post not found")
	ErrAlreadyLiked = errors.New("post already liked")
	ErrNotLiked     = errors.New("post not liked")
)

// Post carries an author snapshot (name, avatar) taken at creation so the
// feed renders without joining identities.
type Post struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	AuthorAvatar string    `json:"author_avatar"`
	Body         string    `json:"body"`
	Likes        []string  `json:"likes"`
	Comments     []Comment `json:"comments"`
	CreatedAt    time.Time `json:"created_at"`
}

type Comment struct {
	ID           string    `json:"id"`
	PostID       string    `json:"post_id"`
	AuthorID     string    `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	AuthorAvatar string    `json:"author_avatar"`
	Body         string    `json:"body"`
	CreatedAt    time.Time `json:"created_at"`
}

type Store struct {
	db *db.DB
}

func NewStore(db *db.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, p *Post) (*Post, error) {
	out := *p
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO posts (author_id, author_name, author_avatar, body)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, p.AuthorID, p.AuthorName, p.AuthorAvatar, p.Body).
		Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	out.Likes = []string{}
	out.Comments = []Comment{}
	return &out, nil
}

// List returns all posts, newest first, with likes and comments attached.
func (s *Store) List(ctx context.Context) ([]Post, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, author_id, author_name, author_avatar, body, created_at
		FROM posts
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []Post{}
	index := make(map[string]int)
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.AuthorName, &p.AuthorAvatar, &p.Body, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		p.Likes = []string{}
		p.Comments = []Comment{}
		index[p.ID] = len(posts)
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachLikes(ctx, posts, index); err != nil {
		return nil, err
	}
	if err := s.attachComments(ctx, posts, index); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *Store) Get(ctx context.Context, id string) (*Post, error) {
	var p Post
	err := s.db.QueryRowContext(ctx, `
		SELECT id, author_id, author_name, author_avatar, body, created_at
		FROM posts
		WHERE id = $1
	`, id).Scan(&p.ID, &p.AuthorID, &p.AuthorName, &p.AuthorAvatar, &p.Body, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	p.Likes = []string{}
	p.Comments = []Comment{}
	posts := []Post{p}
	index := map[string]int{p.ID: 0}
	if err := s.attachLikes(ctx, posts, index); err != nil {
		return nil, err
	}
	if err := s.attachComments(ctx, posts, index); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Like records a like; a second like by the same identity is rejected.
func (s *Store) Like(ctx context.Context, postID, identityID string) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO post_likes (post_id, identity_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, postID, identityID)
	if err != nil {
		return fmt.Errorf("like post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAlreadyLiked
	}
	return nil
}

func (s *Store) Unlike(ctx context.Context, postID, identityID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM post_likes
		WHERE post_id = $1 AND identity_id = $2
	`, postID, identityID)
	if err != nil {
		return fmt.Errorf("unlike post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotLiked
	}
	return nil
}

func (s *Store) AddComment(ctx context.Context, cm *Comment) (*Comment, error) {
	out := *cm
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO post_comments (post_id, author_id, author_name, author_avatar, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, cm.PostID, cm.AuthorID, cm.AuthorName, cm.AuthorAvatar, cm.Body).
		Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return &out, nil
}

// DeleteComment removes a comment if it belongs to the author.
func (s *Store) DeleteComment(ctx context.Context, postID, commentID, authorID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM post_comments
		WHERE id = $1 AND post_id = $2 AND author_id = $3
	`, commentID, postID, authorID)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) attachLikes(ctx context.Context, posts []Post, index map[string]int) error {
	if len(posts) == 0 {
		return nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT post_id, identity_id
		FROM post_likes
		ORDER BY created_at DESC
	`)
	if err != nil {
		return fmt.Errorf("list likes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID, identityID string
		if err := rows.Scan(&postID, &identityID); err != nil {
			return fmt.Errorf("scan like: %w", err)
		}
		if i, ok := index[postID]; ok {
			posts[i].Likes = append(posts[i].Likes, identityID)
		}
	}
	return rows.Err()
}

func (s *Store) attachComments(ctx context.Context, posts []Post, index map[string]int) error {
	if len(posts) == 0 {
		return nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, post_id, author_id, author_name, author_avatar, body, created_at
		FROM post_comments
		ORDER BY created_at DESC
	`)
	if err != nil {
		return fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cm Comment
		if err := rows.Scan(&cm.ID, &cm.PostID, &cm.AuthorID, &cm.AuthorName, &cm.AuthorAvatar, &cm.Body, &cm.CreatedAt); err != nil {
			return fmt.Errorf("scan comment: %w", err)
		}
		if i, ok := index[cm.PostID]; ok {
			posts[i].Comments = append(posts[i].Comments, cm)
		}
	}
	return rows.Err()
}
