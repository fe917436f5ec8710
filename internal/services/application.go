package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jobboard-dev/jobboard/internal/access"
	"github.com/jobboard-dev/jobboard/internal/apperrors"
	"github.com/jobboard-dev/jobboard/internal/logger"
	"github.com/jobboard-dev/jobboard/internal/models"
	"github.com/jobboard-dev/jobboard/internal/repositories"
	"github.com/jobboard-dev/jobboard/internal/validator"
	"github.com/jobboard-dev/jobboard/internal/workflow"
)

type ApplyInput struct {
	JobID      string `json:"jobID" validate:"required"`
	SeekerName string `json:"seekerName" validate:"required"`
	Expertise  string `json:"expertise" validate:"required"`
	Education  string `json:"education" validate:"required"`
	ResumeURL  string `json:"resumeURL" validate:"required"`
}

type ApplicationService struct {
	applications repositories.ApplicationRepository
	jobs         *JobService
	engine       *workflow.Engine
	validate     *validator.Validator
	now          clock
}

func NewApplicationService(applications repositories.ApplicationRepository, jobs *JobService, engine *workflow.Engine, validate *validator.Validator) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		jobs:         jobs,
		engine:       engine,
		validate:     validate,
		now:          utcNow,
	}
}

func (s *ApplicationService) Apply(ctx context.Context, requester access.Identity, in ApplyInput) (*models.Application, error) {
	if err := access.Require(requester, access.ApplyToJob); err != nil {
		return nil, err
	}

	in.JobID = strings.TrimSpace(in.JobID)
	if in.JobID == "" {
		return nil, apperrors.Validation("jobID", "jobID is required")
	}

	job, err := s.jobs.find(ctx, in.JobID)
	if err != nil {
		return nil, err
	}

	var existing *models.Application

	if job != nil {
		existing, err = s.applications.FindByJobAndSeeker(ctx, job.ID, requester.ID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, unexpected("checking existing application", err)
		}
	}

	if err := access.AuthorizeApply(requester, job, existing); err != nil {
		return nil, err
	}

	// Attributes are checked only once the pair is known to be new.
	if err := s.validate.Validate(in); err != nil {
		return nil, invalid(err)
	}

	application := &models.Application{
		JobID:       job.ID,
		SeekerID:    requester.ID,
		SeekerName:  in.SeekerName,
		Expertise:   in.Expertise,
		Education:   in.Education,
		ResumeURL:   in.ResumeURL,
		Status:      models.StatusPending,
		AppliedDate: s.now(),
	}

	if err := s.applications.Create(ctx, application); err != nil {
		// Lost a race with a concurrent apply for the same pair.
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.AlreadyApplied()
		}
		return nil, unexpected("creating application", err)
	}

	logger.CtxInfo(ctx, "application created", "application_id", application.ID, "job_id", job.ID)

	return application, nil
}

func (s *ApplicationService) ListMine(ctx context.Context, requester access.Identity) ([]models.Application, error) {
	if err := access.Require(requester, access.ViewOwnApplications); err != nil {
		return nil, err
	}

	applications, err := s.applications.ListBySeeker(ctx, requester.ID)
	if err != nil {
		return nil, unexpected("listing applications", err)
	}

	return applications, nil
}

func (s *ApplicationService) ListByJob(ctx context.Context, requester access.Identity, jobID string) ([]models.Application, error) {
	if err := access.Require(requester, access.ReviewJobApplications); err != nil {
		return nil, err
	}

	job, err := s.jobs.find(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if err := access.AuthorizeApplicationsListing(requester, job); err != nil {
		return nil, err
	}

	applications, err := s.applications.ListByJob(ctx, job.ID)
	if err != nil {
		return nil, unexpected("listing job applications", err)
	}

	return applications, nil
}

// UpdateStatus rejects unknown statuses before looking anything up.
func (s *ApplicationService) UpdateStatus(ctx context.Context, requester access.Identity, id string, status string) (*models.Application, error) {
	if err := access.Require(requester, access.ReviewJobApplications); err != nil {
		return nil, err
	}

	if !models.ApplicationStatus(status).Valid() {
		return nil, apperrors.Validation("status", "Invalid status")
	}

	application, err := s.applications.GetByID(ctx, id)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, unexpected("fetching application", err)
	}

	var job *models.Job
	if application != nil {
		job = application.Job
	}

	if err := access.AuthorizeStatusChange(requester, application, job); err != nil {
		return nil, err
	}

	previous := application.Status

	changed, err := s.engine.Transition(application, status)
	if err != nil {
		return nil, err
	}

	if !changed {
		return application, nil
	}

	if err := s.applications.UpdateStatus(ctx, application.ID, application.Status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("Application")
		}
		return nil, unexpected("updating application status", err)
	}

	logger.CtxInfo(ctx, "application status changed",
		"application_id", application.ID,
		"from", previous,
		"to", application.Status,
	)

	return application, nil
}
