package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jobboard-dev/jobboard/internal/access"
	"github.com/jobboard-dev/jobboard/internal/apperrors"
	"github.com/jobboard-dev/jobboard/internal/logger"
	"github.com/jobboard-dev/jobboard/internal/models"
	"github.com/jobboard-dev/jobboard/internal/repositories"
	"github.com/jobboard-dev/jobboard/internal/validator"
)

// DeletePolicy decides what happens to a job's applications when the job is deleted.
type DeletePolicy string

const (
	DeleteCascade DeletePolicy = "cascade"
	DeleteOrphan  DeletePolicy = "orphan"
)

func ParseDeletePolicy(value string) (DeletePolicy, error) {
	switch DeletePolicy(value) {
	case "", DeleteCascade:
		return DeleteCascade, nil
	case DeleteOrphan:
		return DeleteOrphan, nil
	default:
		return "", fmt.Errorf("unknown job delete policy %q", value)
	}
}

type JobInput struct {
	Title        string         `json:"title" validate:"required,max=100"`
	Description  string         `json:"description" validate:"required,max=1000"`
	Requirements string         `json:"requirements" validate:"required"`
	SalaryRange  string         `json:"salaryRange" validate:"required"`
	Location     string         `json:"location" validate:"required"`
	JobType      models.JobType `json:"jobType" validate:"required,jobtype"`
	Category     string         `json:"category" validate:"required"`
}

// JobPatch is a partial update; nil fields are left alone. The owner can not be changed.
type JobPatch struct {
	Title        *string         `json:"title"`
	Description  *string         `json:"description"`
	Requirements *string         `json:"requirements"`
	SalaryRange  *string         `json:"salaryRange"`
	Location     *string         `json:"location"`
	JobType      *models.JobType `json:"jobType"`
	Category     *string         `json:"category"`
}

func (in JobInput) normalize() JobInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Location = strings.TrimSpace(in.Location)
	in.Category = strings.TrimSpace(in.Category)
	in.JobType = models.JobType(strings.TrimSpace(string(in.JobType)))
	return in
}

func (in JobInput) applyTo(job *models.Job) {
	job.Title = in.Title
	job.Description = in.Description
	job.Requirements = in.Requirements
	job.SalaryRange = in.SalaryRange
	job.Location = in.Location
	job.JobType = in.JobType
	job.Category = in.Category
}

func inputFromJob(job *models.Job) JobInput {
	return JobInput{
		Title:        job.Title,
		Description:  job.Description,
		Requirements: job.Requirements,
		SalaryRange:  job.SalaryRange,
		Location:     job.Location,
		JobType:      job.JobType,
		Category:     job.Category,
	}
}

// merge overlays the supplied fields of p on in.
func (p JobPatch) merge(in JobInput) JobInput {
	assign(&in.Title, p.Title)
	assign(&in.Description, p.Description)
	assign(&in.Requirements, p.Requirements)
	assign(&in.SalaryRange, p.SalaryRange)
	assign(&in.Location, p.Location)
	assign(&in.Category, p.Category)
	if p.JobType != nil {
		in.JobType = *p.JobType
	}
	return in
}

type JobService struct {
	jobs         repositories.JobRepository
	validate     *validator.Validator
	deletePolicy DeletePolicy
}

func NewJobService(jobs repositories.JobRepository, validate *validator.Validator, deletePolicy DeletePolicy) *JobService {
	if deletePolicy == "" {
		deletePolicy = DeleteCascade
	}
	return &JobService{jobs: jobs, validate: validate, deletePolicy: deletePolicy}
}

func (s *JobService) Create(ctx context.Context, requester access.Identity, in JobInput) (*models.Job, error) {
	if err := access.Require(requester, access.CreateJob); err != nil {
		return nil, err
	}

	in = in.normalize()

	if err := s.validate.Validate(in); err != nil {
		return nil, invalid(err)
	}

	job := &models.Job{EmployerID: requester.ID}
	in.applyTo(job)

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, unexpected("creating job", err)
	}

	logger.CtxInfo(ctx, "job created", "job_id", job.ID)

	return s.Get(ctx, job.ID)
}

func (s *JobService) List(ctx context.Context, filter repositories.JobFilter) ([]models.Job, error) {
	jobs, err := s.jobs.List(ctx, filter)
	if err != nil {
		return nil, unexpected("listing jobs", err)
	}
	return jobs, nil
}

// ListMine returns the requesting employer's own postings.
func (s *JobService) ListMine(ctx context.Context, requester access.Identity) ([]models.Job, error) {
	if err := access.Require(requester, access.ManageOwnJobs); err != nil {
		return nil, err
	}
	return s.List(ctx, repositories.JobFilter{EmployerID: requester.ID})
}

func (s *JobService) Get(ctx context.Context, id string) (*models.Job, error) {
	job, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperrors.NotFound("Job")
	}
	return job, nil
}

// find returns nil without error when the job does not exist.
func (s *JobService) find(ctx context.Context, id string) (*models.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, unexpected("fetching job", err)
	}
	return job, nil
}

func (s *JobService) Update(ctx context.Context, requester access.Identity, id string, patch JobPatch) (*models.Job, error) {
	job, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := access.AuthorizeJobMutation(requester, job, "update"); err != nil {
		return nil, err
	}

	in := patch.merge(inputFromJob(job)).normalize()

	if err := s.validate.Validate(in); err != nil {
		return nil, invalid(err)
	}

	in.applyTo(job)

	if err := s.jobs.Save(ctx, job); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("Job")
		}
		return nil, unexpected("updating job", err)
	}

	logger.CtxInfo(ctx, "job updated", "job_id", job.ID)

	return job, nil
}

func (s *JobService) Delete(ctx context.Context, requester access.Identity, id string) error {
	job, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := access.AuthorizeJobMutation(requester, job, "delete"); err != nil {
		return err
	}

	if err := s.jobs.Delete(ctx, job.ID, s.deletePolicy == DeleteCascade); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NotFound("Job")
		}
		return unexpected("deleting job", err)
	}

	logger.CtxInfo(ctx, "job deleted", "job_id", job.ID, "policy", s.deletePolicy)

	return nil
}
