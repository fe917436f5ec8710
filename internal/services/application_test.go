package services

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/jobboard-dev/jobboard/internal/access"
	"github.com/jobboard-dev/jobboard/internal/apperrors"
	"github.com/jobboard-dev/jobboard/internal/models"
	"github.com/jobboard-dev/jobboard/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type applicationScenario struct {
	*fixture
	employer access.Identity
	seeker   access.Identity
	job      *models.Job
}

func newApplicationScenario(t *testing.T, policy workflow.Policy) *applicationScenario {
	t.Helper()

	f := newFixture(t, policy, "")
	employer := f.register(t, "acme", models.RoleEmployer)
	seeker := f.register(t, "jane", models.RoleSeeker)

	job, err := f.jobs.Create(context.Background(), employer, validJob())
	require.NoError(t, err)

	return &applicationScenario{fixture: f, employer: employer, seeker: seeker, job: job}
}

func TestApplyCreatesPendingApplication(t *testing.T) {
	s := newApplicationScenario(t, "")
	applied := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.applications.now = func() time.Time { return applied }

	application, err := s.applications.Apply(context.Background(), s.seeker, validApplication(s.job.ID))
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, application.Status)
	assert.Equal(t, applied, application.AppliedDate)
	assert.Equal(t, s.seeker.ID, application.SeekerID)
	assert.Equal(t, s.job.ID, application.JobID)
}

func TestApplyTwiceReportsAlreadyApplied(t *testing.T) {
	s := newApplicationScenario(t, "")
	ctx := context.Background()

	_, err := s.applications.Apply(ctx, s.seeker, validApplication(s.job.ID))
	require.NoError(t, err)

	_, err = s.applications.Apply(ctx, s.seeker, validApplication(s.job.ID))
	appErr := assertAppError(t, err, apperrors.CodeAlreadyApplied, http.StatusBadRequest)
	assert.Equal(t, "You have already applied for this job", appErr.Message)
}

func TestApplyChecksJobAndDuplicateBeforeAttributes(t *testing.T) {
	s := newApplicationScenario(t, "")
	ctx := context.Background()

	_, err := s.applications.Apply(ctx, s.seeker, validApplication(s.job.ID))
	require.NoError(t, err)

	again := validApplication(s.job.ID)
	again.Expertise = ""
	_, err = s.applications.Apply(ctx, s.seeker, again)
	assertAppError(t, err, apperrors.CodeAlreadyApplied, http.StatusBadRequest)

	missing := validApplication("no-such-job")
	missing.ResumeURL = ""
	_, err = s.applications.Apply(ctx, s.seeker, missing)
	assertAppError(t, err, apperrors.CodeNotFound, http.StatusNotFound)

	_, err = s.applications.Apply(ctx, s.seeker, validApplication("   "))
	appErr := assertAppError(t, err, apperrors.CodeValidation, http.StatusBadRequest)
	assert.Equal(t, "jobID", appErr.Field)
}

func TestConcurrentApplyCreatesOneApplication(t *testing.T) {
	s := newApplicationScenario(t, "")
	ctx := context.Background()

	const attempts = 16
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.applications.Apply(ctx, s.seeker, validApplication(s.job.ID))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, apperrors.HasCode(err, apperrors.CodeAlreadyApplied), err.Error())
	}
	assert.Equal(t, 1, succeeded)

	mine, err := s.applications.ListMine(ctx, s.seeker)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestApplyValidationAndMissingJob(t *testing.T) {
	s := newApplicationScenario(t, "")
	ctx := context.Background()

	in := validApplication(s.job.ID)
	in.ResumeURL = ""
	_, err := s.applications.Apply(ctx, s.seeker, in)
	appErr := assertAppError(t, err, apperrors.CodeValidation, http.StatusBadRequest)
	assert.Equal(t, "resumeURL", appErr.Field)

	_, err = s.applications.Apply(ctx, s.seeker, validApplication("missing"))
	assertAppError(t, err, apperrors.CodeNotFound, http.StatusNotFound)

	_, err = s.applications.Apply(ctx, s.employer, validApplication(s.job.ID))
	assertAppError(t, err, apperrors.CodeForbidden, http.StatusForbidden)
}

func TestListMineReturnsOnlyOwnNewestFirst(t *testing.T) {
	s := newApplicationScenario(t, "")
	other := s.register(t, "john", models.RoleSeeker)
	ctx := context.Background()

	second, err := s.jobs.Create(ctx, s.employer, validJob())
	require.NoError(t, err)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.applications.now = func() time.Time { return base }
	older, err := s.applications.Apply(ctx, s.seeker, validApplication(s.job.ID))
	require.NoError(t, err)

	s.applications.now = func() time.Time { return base.Add(time.Hour) }
	newer, err := s.applications.Apply(ctx, s.seeker, validApplication(second.ID))
	require.NoError(t, err)

	_, err = s.applications.Apply(ctx, other, validApplication(s.job.ID))
	require.NoError(t, err)

	mine, err := s.applications.ListMine(ctx, s.seeker)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, newer.ID, mine[0].ID)
	assert.Equal(t, older.ID, mine[1].ID)
	for _, application := range mine {
		assert.Equal(t, s.seeker.ID, application.SeekerID)
		require.NotNil(t, application.Job)
	}

	_, err = s.applications.ListMine(ctx, s.employer)
	assertAppError(t, err, apperrors.CodeForbidden, http.StatusForbidden)
}

func TestListByJobRequiresOwnership(t *testing.T) {
	s := newApplicationScenario(t, "")
	globex := s.register(t, "globex", models.RoleEmployer)
	ctx := context.Background()

	_, err := s.applications.Apply(ctx, s.seeker, validApplication(s.job.ID))
	require.NoError(t, err)

	applications, err := s.applications.ListByJob(ctx, s.employer, s.job.ID)
	require.NoError(t, err)
	require.Len(t, applications, 1)
	require.NotNil(t, applications[0].Seeker)
	assert.Equal(t, "jane@example.test", applications[0].Seeker.Email)

	_, err = s.applications.ListByJob(ctx, globex, s.job.ID)
	appErr := assertAppError(t, err, apperrors.CodeForbidden, http.StatusForbidden)
	assert.Equal(t, "Not authorized to view these applications", appErr.Message)

	_, err = s.applications.ListByJob(ctx, s.employer, "missing")
	assertAppError(t, err, apperrors.CodeNotFound, http.StatusNotFound)
}

func TestUpdateStatusPermissive(t *testing.T) {
	s := newApplicationScenario(t, workflow.PolicyPermissive)
	ctx := context.Background()

	application, err := s.applications.Apply(ctx, s.seeker, validApplication(s.job.ID))
	require.NoError(t, err)

	for _, status := range []models.ApplicationStatus{models.StatusAccepted, models.StatusPending, models.StatusInterview} {
		updated, err := s.applications.UpdateStatus(ctx, s.employer, application.ID, string(status))
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	mine, err := s.applications.ListMine(ctx, s.seeker)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, models.StatusInterview, mine[0].Status)
}

func TestUpdateStatusStrict(t *testing.T) {
	s := newApplicationScenario(t, workflow.PolicyStrict)
	ctx := context.Background()

	application, err := s.applications.Apply(ctx, s.seeker, validApplication(s.job.ID))
	require.NoError(t, err)

	_, err = s.applications.UpdateStatus(ctx, s.employer, application.ID, string(models.StatusShortlisted))
	require.NoError(t, err)

	_, err = s.applications.UpdateStatus(ctx, s.employer, application.ID, string(models.StatusReviewed))
	assertAppError(t, err, apperrors.CodeValidation, http.StatusBadRequest)

	_, err = s.applications.UpdateStatus(ctx, s.employer, application.ID, string(models.StatusRejected))
	require.NoError(t, err)

	_, err = s.applications.UpdateStatus(ctx, s.employer, application.ID, string(models.StatusInterview))
	appErr := assertAppError(t, err, apperrors.CodeValidation, http.StatusBadRequest)
	assert.Equal(t, "Application status is final", appErr.Message)
}

func TestUpdateStatusChecks(t *testing.T) {
	s := newApplicationScenario(t, "")
	globex := s.register(t, "globex", models.RoleEmployer)
	ctx := context.Background()

	application, err := s.applications.Apply(ctx, s.seeker, validApplication(s.job.ID))
	require.NoError(t, err)

	_, err = s.applications.UpdateStatus(ctx, s.employer, application.ID, "Hired")
	appErr := assertAppError(t, err, apperrors.CodeValidation, http.StatusBadRequest)
	assert.Equal(t, "Invalid status", appErr.Message)

	_, err = s.applications.UpdateStatus(ctx, s.employer, "missing", string(models.StatusReviewed))
	assertAppError(t, err, apperrors.CodeNotFound, http.StatusNotFound)

	_, err = s.applications.UpdateStatus(ctx, globex, application.ID, string(models.StatusReviewed))
	appErr = assertAppError(t, err, apperrors.CodeForbidden, http.StatusForbidden)
	assert.Equal(t, "Not authorized to update this application", appErr.Message)

	_, err = s.applications.UpdateStatus(ctx, s.seeker, application.ID, string(models.StatusReviewed))
	assertAppError(t, err, apperrors.CodeForbidden, http.StatusForbidden)

	mine, err := s.applications.ListMine(ctx, s.seeker)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, models.StatusPending, mine[0].Status)
}

func TestUpdateStatusOnOrphanedApplication(t *testing.T) {
	f := newFixture(t, "", DeleteOrphan)
	employer := f.register(t, "acme", models.RoleEmployer)
	seeker := f.register(t, "jane", models.RoleSeeker)
	ctx := context.Background()

	job, err := f.jobs.Create(ctx, employer, validJob())
	require.NoError(t, err)
	application, err := f.applications.Apply(ctx, seeker, validApplication(job.ID))
	require.NoError(t, err)
	require.NoError(t, f.jobs.Delete(ctx, employer, job.ID))

	_, err = f.applications.UpdateStatus(ctx, employer, application.ID, string(models.StatusReviewed))
	assertAppError(t, err, apperrors.CodeForbidden, http.StatusForbidden)
}
