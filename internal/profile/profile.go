// Package profile stores developer profiles: status, skills, experience and
// education history, plus social links.
package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/duyng2512/devmeet/internal/db"
)

var ErrNotFound = errors.New("profile not found")

type Profile struct {
	IdentityID     string            `json:"identity_id"`
	Status         string            `json:"status"`
	Skills         []string          `json:"skills"`
	Company        string            `json:"company,omitempty"`
	Website        string            `json:"website,omitempty"`
	Location       string            `json:"location,omitempty"`
	Bio            string            `json:"bio,omitempty"`
	GithubUsername string            `json:"github_username,omitempty"`
	Links          map[string]string `json:"links"`
	Experience     []Experience      `json:"experience"`
	Education      []Education       `json:"education"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

type Experience struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

type Education struct {
	ID      string     `json:"id"`
	School  string     `json:"school"`
	Degree  string     `json:"degree"`
	From    time.Time  `json:"from"`
	To      *time.Time `json:"to,omitempty"`
	Current bool       `json:"current"`
	GPA     *float64   `json:"gpa,omitempty"`
}

type Store struct {
	db *db.DB
}

func NewStore(db *db.DB) *Store {
	return &Store{db: db}
}

// Upsert creates or replaces the scalar part of a profile. Experience and
// education entries are managed separately.
func (s *Store) Upsert(ctx context.Context, p *Profile) error {
	links, err := json.Marshal(p.Links)
	if err != nil {
		return fmt.Errorf("marshal links: %w", err)
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (identity_id, status, skills, company, website,
		                      location, bio, github_username, links)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (identity_id) DO UPDATE SET
			status          = EXCLUDED.status,
			skills          = EXCLUDED.skills,
			company         = EXCLUDED.company,
			website         = EXCLUDED.website,
			location        = EXCLUDED.location,
			bio             = EXCLUDED.bio,
			github_username = EXCLUDED.github_username,
			links           = EXCLUDED.links,
			updated_at      = NOW()
	`,
		p.IdentityID, p.Status, pq.Array(p.Skills), p.Company, p.Website,
		p.Location, p.Bio, p.GithubUsername, links,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, identityID string) (*Profile, error) {
	var (
		p        Profile
		rawLinks []byte
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT identity_id, status, skills, company, website, location,
		       bio, github_username, links, updated_at
		FROM profiles
		WHERE identity_id = $1
	`, identityID).Scan(
		&p.IdentityID, &p.Status, pq.Array(&p.Skills), &p.Company, &p.Website,
		&p.Location, &p.Bio, &p.GithubUsername, &rawLinks, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	if err := json.Unmarshal(rawLinks, &p.Links); err != nil {
		return nil, fmt.Errorf("unmarshal links: %w", err)
	}

	if p.Experience, err = s.listExperience(ctx, identityID); err != nil {
		return nil, err
	}
	if p.Education, err = s.listEducation(ctx, identityID); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns the scalar part of every profile, newest update first.
func (s *Store) List(ctx context.Context) ([]Profile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT identity_id, status, skills, company, website, location,
		       bio, github_username, links, updated_at
		FROM profiles
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	profiles := []Profile{}
	for rows.Next() {
		var (
			p        Profile
			rawLinks []byte
		)
		if err := rows.Scan(
			&p.IdentityID, &p.Status, pq.Array(&p.Skills), &p.Company, &p.Website,
			&p.Location, &p.Bio, &p.GithubUsername, &rawLinks, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		if err := json.Unmarshal(rawLinks, &p.Links); err != nil {
			return nil, fmt.Errorf("unmarshal links: %w", err)
		}
		p.Experience = []Experience{}
		p.Education = []Education{}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (s *Store) Delete(ctx context.Context, identityID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM profiles WHERE identity_id = $1
	`, identityID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) AddExperience(ctx context.Context, identityID string, e *Experience) (*Experience, error) {
	out := *e
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO profile_experience (identity_id, title, company, from_date,
		                                to_date, current, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, identityID, e.Title, e.Company, e.From, e.To, e.Current, e.Description).
		Scan(&out.ID)
	if err != nil {
		return nil, fmt.Errorf("insert experience: %w", err)
	}
	return &out, nil
}

func (s *Store) RemoveExperience(ctx context.Context, identityID, experienceID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM profile_experience
		WHERE id = $1 AND identity_id = $2
	`, experienceID, identityID)
	if err != nil {
		return fmt.Errorf("delete experience: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) AddEducation(ctx context.Context, identityID string, e *Education) (*Education, error) {
	out := *e
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO profile_education (identity_id, school, degree, from_date,
		                               to_date, current, gpa)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, identityID, e.School, e.Degree, e.From, e.To, e.Current, e.GPA).
		Scan(&out.ID)
	if err != nil {
		return nil, fmt.Errorf("insert education: %w", err)
	}
	return &out, nil
}

func (s *Store) RemoveEducation(ctx context.Context, identityID, educationID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM profile_education
		WHERE id = $1 AND identity_id = $2
	`, educationID, identityID)
	if err != nil {
		return fmt.Errorf("delete education: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) listExperience(ctx context.Context, identityID string) ([]Experience, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, company, from_date, to_date, current, description
		FROM profile_experience
		WHERE identity_id = $1
		ORDER BY from_date DESC
	`, identityID)
	if err != nil {
		return nil, fmt.Errorf("list experience: %w", err)
	}
	defer rows.Close()

	out := []Experience{}
	for rows.Next() {
		var e Experience
		if err := rows.Scan(&e.ID, &e.Title, &e.Company, &e.From, &e.To, &e.Current, &e.Description); err != nil {
			return nil, fmt.Errorf("scan experience: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) listEducation(ctx context.Context, identityID string) ([]Education, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, school, degree, from_date, to_date, current, gpa
		FROM profile_education
		WHERE identity_id = $1
		ORDER BY from_date DESC
	`, identityID)
	if err != nil {
		return nil, fmt.Errorf("list education: %w", err)
	}
	defer rows.Close()

	out := []Education{}
	for rows.Next() {
		var e Education
		if err := rows.Scan(&e.ID, &e.School, &e.Degree, &e.From, &e.To, &e.Current, &e.GPA); err != nil {
			return nil, fmt.Errorf("scan education: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
