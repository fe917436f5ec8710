// Package memory is an in-process implementation of the repositories, used when
// DB_DRIVER=memory and by tests. One mutex guards all tables so check-and-insert and
// cascades are atomic.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jobboard-dev/jobboard/internal/models"
	"github.com/jobboard-dev/jobboard/internal/repositories"
)

type DB struct {
	mu           sync.RWMutex
	users        []models.User
	jobs         []models.Job
	applications []models.Application
	now          func() time.Time
}

func NewDB() *DB {
	return &DB{now: func() time.Time { return time.Now().UTC() }}
}

// NewStore returns a Store whose repositories share one in-memory DB.
func NewStore() *repositories.Store {
	db := NewDB()
	return &repositories.Store{
		Users:        &UserRepository{db: db},
		Jobs:         &JobRepository{db: db},
		Applications: &ApplicationRepository{db: db},
		Pinger:       db,
	}
}

func (db *DB) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (db *DB) userIndex(id string) int {
	for i := range db.users {
		if db.users[i].ID == id {
			return i
		}
	}
	return -1
}

func (db *DB) jobIndex(id string) int {
	for i := range db.jobs {
		if db.jobs[i].ID == id {
			return i
		}
	}
	return -1
}

func (db *DB) applicationIndex(id string) int {
	for i := range db.applications {
		if db.applications[i].ID == id {
			return i
		}
	}
	return -1
}

// Associations are detached on write and re-attached as copies on read.

func (db *DB) userCopy(id string) *models.User {
	if i := db.userIndex(id); i >= 0 {
		user := db.users[i]
		return &user
	}
	return nil
}

func (db *DB) jobWithEmployer(job models.Job) models.Job {
	job.Employer = db.userCopy(job.EmployerID)
	return job
}

type UserRepository struct {
	db *DB
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.users {
		if existing.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := r.db.now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	stored := *user
	stored.Jobs, stored.Applications = nil, nil
	r.db.users = append(r.db.users, stored)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if user := r.db.userCopy(id); user != nil {
		return user, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, user := range r.db.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *UserRepository) Save(ctx context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	i := r.db.userIndex(user.ID)
	if i < 0 {
		return repositories.ErrNotFound
	}

	for _, existing := range r.db.users {
		if existing.Email == user.Email && existing.ID != user.ID {
			return repositories.ErrDuplicate
		}
	}

	user.UpdatedAt = r.db.now()
	stored := *user
	stored.Jobs, stored.Applications = nil, nil
	r.db.users[i] = stored
	return nil
}

type JobRepository struct {
	db *DB
}

func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	now := r.db.now()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now

	stored := *job
	stored.Employer = nil
	r.db.jobs = append(r.db.jobs, stored)
	return nil
}

func (r *JobRepository) GetByID(ctx context.Context, id string) (*models.Job, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if i := r.db.jobIndex(id); i >= 0 {
		job := r.db.jobWithEmployer(r.db.jobs[i])
		return &job, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *JobRepository) List(ctx context.Context, filter repositories.JobFilter) ([]models.Job, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	f := filter.Normalize()
	jobs := []models.Job{}

	// Newest inserts first so equal timestamps still come out newest first.
	for i := len(r.db.jobs) - 1; i >= 0; i-- {
		if f.Matches(r.db.jobs[i]) {
			jobs = append(jobs, r.db.jobWithEmployer(r.db.jobs[i]))
		}
	}

	sort.SliceStable(jobs, func(a, b int) bool {
		return jobs[a].CreatedAt.After(jobs[b].CreatedAt)
	})

	return jobs, nil
}

func (r *JobRepository) Save(ctx context.Context, job *models.Job) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	i := r.db.jobIndex(job.ID)
	if i < 0 {
		return repositories.ErrNotFound
	}

	job.UpdatedAt = r.db.now()
	stored := *job
	stored.Employer = nil
	stored.EmployerID = r.db.jobs[i].EmployerID
	stored.CreatedAt = r.db.jobs[i].CreatedAt
	r.db.jobs[i] = stored
	return nil
}

func (r *JobRepository) Delete(ctx context.Context, id string, cascade bool) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	i := r.db.jobIndex(id)
	if i < 0 {
		return repositories.ErrNotFound
	}

	r.db.jobs = append(r.db.jobs[:i], r.db.jobs[i+1:]...)

	if cascade {
		kept := r.db.applications[:0]
		for _, application := range r.db.applications {
			if application.JobID != id {
				kept = append(kept, application)
			}
		}
		r.db.applications = kept
	}

	return nil
}

type ApplicationRepository struct {
	db *DB
}

func (r *ApplicationRepository) Create(ctx context.Context, application *models.Application) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.applications {
		if existing.JobID == application.JobID && existing.SeekerID == application.SeekerID {
			return repositories.ErrDuplicate
		}
	}

	if application.ID == "" {
		application.ID = uuid.NewString()
	}
	now := r.db.now()
	if application.AppliedDate.IsZero() {
		application.AppliedDate = now
	}
	if application.Status == "" {
		application.Status = models.StatusPending
	}
	application.UpdatedAt = now

	stored := *application
	stored.Job, stored.Seeker = nil, nil
	r.db.applications = append(r.db.applications, stored)
	return nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*models.Application, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	i := r.db.applicationIndex(id)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}

	application := r.db.applications[i]
	if j := r.db.jobIndex(application.JobID); j >= 0 {
		job := r.db.jobWithEmployer(r.db.jobs[j])
		application.Job = &job
	}
	return &application, nil
}

func (r *ApplicationRepository) FindByJobAndSeeker(ctx context.Context, jobID, seekerID string) (*models.Application, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, application := range r.db.applications {
		if application.JobID == jobID && application.SeekerID == seekerID {
			return &application, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *ApplicationRepository) ListBySeeker(ctx context.Context, seekerID string) ([]models.Application, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.list(func(application *models.Application) bool {
		if application.SeekerID != seekerID {
			return false
		}
		if j := r.db.jobIndex(application.JobID); j >= 0 {
			job := r.db.jobWithEmployer(r.db.jobs[j])
			application.Job = &job
		}
		return true
	}), nil
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID string) ([]models.Application, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.list(func(application *models.Application) bool {
		if application.JobID != jobID {
			return false
		}
		application.Seeker = r.db.userCopy(application.SeekerID)
		return true
	}), nil
}

// list walks newest inserts first; keep decides membership and may attach associations.
func (r *ApplicationRepository) list(keep func(*models.Application) bool) []models.Application {
	applications := []models.Application{}

	for i := len(r.db.applications) - 1; i >= 0; i-- {
		application := r.db.applications[i]
		if keep(&application) {
			applications = append(applications, application)
		}
	}

	sort.SliceStable(applications, func(a, b int) bool {
		return applications[a].AppliedDate.After(applications[b].AppliedDate)
	})

	return applications
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	i := r.db.applicationIndex(id)
	if i < 0 {
		return repositories.ErrNotFound
	}

	r.db.applications[i].Status = status
	r.db.applications[i].UpdatedAt = r.db.now()
	return nil
}
