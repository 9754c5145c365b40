// Package jobs implements job postings and applications.
package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/duyng2512/devmeet/internal/db"
)

var (
	ErrNotFound       = errors.New("job not found")
	ErrAlreadyApplied = errors.New("already applied to this job")
)

type Job struct {
	ID             string    `json:"id"`
	PosterID       string    `json:"poster_id"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	Title          string    `json:"title"`
	Remote         string    `json:"remote"`
	EmploymentType string    `json:"employment_type"`
	SalaryMin      *int64    `json:"salary_min,omitempty"`
	SalaryMax      *int64    `json:"salary_max,omitempty"`
	SalaryCurrency string    `json:"salary_currency,omitempty"`
	Description    string    `json:"description"`
	Requirements   string    `json:"requirements,omitempty"`
	Stack          []string  `json:"stack"`
	Applicants     []string  `json:"applicants"`
	CreatedAt      time.Time `json:"created_at"`
}

type Store struct {
	db *db.DB
}

func NewStore(db *db.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, j *Job) (*Job, error) {
	out := *j
	if out.Stack == nil {
		out.Stack = []string{}
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO jobs (poster_id, company, location, title, remote,
		                  employment_type, salary_min, salary_max,
		                  salary_currency, description, requirements, stack)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`,
		j.PosterID, j.Company, j.Location, j.Title, j.Remote,
		j.EmploymentType, j.SalaryMin, j.SalaryMax,
		j.SalaryCurrency, j.Description, j.Requirements, pq.Array(out.Stack),
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	out.Applicants = []string{}
	return &out, nil
}

const jobColumns = `
	id, poster_id, company, location, title, remote, employment_type,
	salary_min, salary_max, salary_currency, description, requirements,
	stack, created_at
`

func (s *Store) List(ctx context.Context) ([]Job, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	out := []Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *j)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (*Job, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	j, err := scanJob(rows)
	if err != nil {
		return nil, err
	}

	if j.Applicants, err = s.listApplicants(ctx, id); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Apply records an application once per identity.
func (s *Store) Apply(ctx context.Context, jobID, identityID string) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO job_applicants (job_id, identity_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, jobID, identityID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrNotFound
		}
		return fmt.Errorf("apply to job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAlreadyApplied
	}
	return nil
}

func (s *Store) listApplicants(ctx context.Context, jobID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT identity_id
		FROM job_applicants
		WHERE job_id = $1
		ORDER BY created_at
	`, jobID)
	if err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan applicant: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func scanJob(rows *sql.Rows) (*Job, error) {
	var j Job
	if err := rows.Scan(
		&j.ID, &j.PosterID, &j.Company, &j.Location, &j.Title, &j.Remote,
		&j.EmploymentType, &j.SalaryMin, &j.SalaryMax, &j.SalaryCurrency,
		&j.Description, &j.Requirements, pq.Array(&j.Stack), &j.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan job: %w", err)
	}
	if j.Stack == nil {
		j.Stack = []string{}
	}
	j.Applicants = []string{}
	return &j, nil
}
