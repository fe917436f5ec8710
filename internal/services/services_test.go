package services

import (
	"context"
	"testing"
	"time"

	"github.com/jobboard-dev/jobboard/internal/access"
	"github.com/jobboard-dev/jobboard/internal/apperrors"
	"github.com/jobboard-dev/jobboard/internal/auth"
	"github.com/jobboard-dev/jobboard/internal/models"
	"github.com/jobboard-dev/jobboard/internal/repositories"
	"github.com/jobboard-dev/jobboard/internal/repositories/memory"
	"github.com/jobboard-dev/jobboard/internal/validator"
	"github.com/jobboard-dev/jobboard/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store        *repositories.Store
	identity     *IdentityService
	jobs         *JobService
	applications *ApplicationService
}

func newFixture(t *testing.T, policy workflow.Policy, deletePolicy DeletePolicy) *fixture {
	t.Helper()

	store := memory.NewStore()
	validate := validator.New()
	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	jobs := NewJobService(store.Jobs, validate, deletePolicy)

	return &fixture{
		store:        store,
		identity:     NewIdentityService(store.Users, tokens, validate),
		jobs:         jobs,
		applications: NewApplicationService(store.Applications, jobs, workflow.NewEngine(policy), validate),
	}
}

func (f *fixture) register(t *testing.T, name string, role models.Role) access.Identity {
	t.Helper()

	session, err := f.identity.Register(context.Background(), RegisterInput{
		Name:     name,
		Email:    name + "@example.test",
		Password: "secret123",
		Role:     string(role),
	})
	require.NoError(t, err)

	return access.Identity{ID: session.User.ID, Role: session.User.Role}
}

func validJob() JobInput {
	return JobInput{
		Title:        "Go Developer",
		Description:  "Build and run APIs",
		Requirements: "3 years of Go",
		SalaryRange:  "$100k-$120k",
		Location:     "Remote, EU",
		JobType:      models.JobTypeFullTime,
		Category:     "Engineering",
	}
}

func validApplication(jobID string) ApplyInput {
	return ApplyInput{
		JobID:      jobID,
		SeekerName: "Jane Doe",
		Expertise:  "Backend",
		Education:  "BSc Computer Science",
		ResumeURL:  "https://example.test/resume.pdf",
	}
}

func assertAppError(t *testing.T, err error, code apperrors.Code, status int) *apperrors.AppError {
	t.Helper()
	require.Error(t, err)
	appErr := apperrors.From(err)
	assert.Equal(t, code, appErr.Code, appErr.Message)
	assert.Equal(t, status, appErr.HTTPCode)
	return appErr
}
