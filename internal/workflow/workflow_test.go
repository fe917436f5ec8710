package workflow

import (
	"testing"

	"github.com/jobboard-dev/jobboard/internal/apperrors"
	"github.com/jobboard-dev/jobboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionAcceptsExactlyTheSixStatuses(t *testing.T) {
	engine := NewEngine(PolicyPermissive)

	for _, status := range models.ApplicationStatuses {
		application := &models.Application{Status: models.StatusInterview}
		_, err := engine.Transition(application, string(status))
		assert.NoError(t, err, status)
		assert.Equal(t, status, application.Status)
	}

	for _, bad := range []string{"", "pending", "ACCEPTED", "Hired", "Shortlisted "} {
		application := &models.Application{Status: models.StatusReviewed}
		changed, err := engine.Transition(application, bad)
		require.Error(t, err, bad)
		assert.False(t, changed)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
		assert.Equal(t, "Invalid status", apperrors.From(err).Message)
		assert.Equal(t, models.StatusReviewed, application.Status, "status must be unchanged")
	}
}

func TestPermissivePolicyAllowsAnyMove(t *testing.T) {
	engine := NewEngine("")
	application := &models.Application{Status: models.StatusAccepted}

	changed, err := engine.Transition(application, "Pending")

	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, models.StatusPending, application.Status)
	assert.Equal(t, PolicyPermissive, engine.Policy())
}

func TestSameStatusIsNoop(t *testing.T) {
	for _, policy := range []Policy{PolicyPermissive, PolicyStrict} {
		application := &models.Application{Status: models.StatusRejected}
		changed, err := NewEngine(policy).Transition(application, "Rejected")
		assert.NoError(t, err, policy)
		assert.False(t, changed, policy)
	}
}

func TestStrictPolicy(t *testing.T) {
	engine := NewEngine(PolicyStrict)

	cases := []struct {
		from models.ApplicationStatus
		to   models.ApplicationStatus
		ok   bool
	}{
		{models.StatusPending, models.StatusReviewed, true},
		{models.StatusPending, models.StatusInterview, true},
		{models.StatusShortlisted, models.StatusRejected, true},
		{models.StatusInterview, models.StatusAccepted, true},
		{models.StatusInterview, models.StatusReviewed, false},
		{models.StatusShortlisted, models.StatusPending, false},
		{models.StatusAccepted, models.StatusRejected, false},
		{models.StatusRejected, models.StatusInterview, false},
	}

	for _, tc := range cases {
		application := &models.Application{Status: tc.from}
		changed, err := engine.Transition(application, string(tc.to))
		if tc.ok {
			assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
			assert.True(t, changed)
			assert.Equal(t, tc.to, application.Status)
		} else {
			assert.Error(t, err, "%s -> %s", tc.from, tc.to)
			assert.Equal(t, tc.from, application.Status)
		}
	}
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("strict")
	require.NoError(t, err)
	assert.Equal(t, PolicyStrict, p)

	p, err = ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyPermissive, p)

	_, err = ParsePolicy("monotonic")
	assert.Error(t, err)
}
