package repositories

import (
	"context"
	"errors"

	"github.com/jobboard-dev/jobboard/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
}

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	// GetByID loads the job with its employer.
	GetByID(ctx context.Context, id string) (*models.Job, error)
	// List returns jobs matching filter, newest first, with their employers.
	List(ctx context.Context, filter JobFilter) ([]models.Job, error)
	Save(ctx context.Context, job *models.Job) error
	// Delete removes the job, and its applications as well when cascade is set.
	Delete(ctx context.Context, id string, cascade bool) error
}

type ApplicationRepository interface {
	// Create fails with ErrDuplicate when the (job, seeker) pair already applied.
	Create(ctx context.Context, application *models.Application) error
	// GetByID loads the application with its job and the job's employer.
	GetByID(ctx context.Context, id string) (*models.Application, error)
	FindByJobAndSeeker(ctx context.Context, jobID, seekerID string) (*models.Application, error)
	// ListBySeeker returns the seeker's applications, newest first, with job and employer.
	ListBySeeker(ctx context.Context, seekerID string) ([]models.Application, error)
	// ListByJob returns a job's applications, newest first, with seekers.
	ListByJob(ctx context.Context, jobID string) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Store groups the repositories backed by one database.
type Store struct {
	Users        UserRepository
	Jobs         JobRepository
	Applications ApplicationRepository
	Pinger       Pinger
}
