package workflow

import (
	"fmt"

	"github.com/jobboard-dev/jobboard/internal/apperrors"
	"github.com/jobboard-dev/jobboard/internal/models"
)

type Policy string

const (
	// PolicyPermissive lets any recognized status replace any other.
	PolicyPermissive Policy = "permissive"
	// PolicyStrict only moves forward through the pipeline and freezes Accepted/Rejected.
	PolicyStrict Policy = "strict"
)

func ParsePolicy(value string) (Policy, error) {
	switch Policy(value) {
	case "", PolicyPermissive:
		return PolicyPermissive, nil
	case PolicyStrict:
		return PolicyStrict, nil
	default:
		return "", fmt.Errorf("unknown status policy %q", value)
	}
}

type Engine struct {
	policy Policy
}

func NewEngine(policy Policy) *Engine {
	if policy == "" {
		policy = PolicyPermissive
	}
	return &Engine{policy: policy}
}

func (e *Engine) Policy() Policy {
	return e.policy
}

// Transition moves application to requested. It reports whether the status changed.
// On error application is left untouched.
func (e *Engine) Transition(application *models.Application, requested string) (bool, error) {
	next := models.ApplicationStatus(requested)

	if !next.Valid() {
		return false, apperrors.Validation("status", "Invalid status")
	}

	current := application.Status

	if next == current {
		return false, nil
	}

	if e.policy == PolicyStrict {
		if current.Terminal() {
			return false, apperrors.Validation("status", "Application status is final")
		}
		if !isForward(current, next) {
			return false, apperrors.Validation("status", fmt.Sprintf("Cannot move application from %s to %s", current, next))
		}
	}

	application.Status = next
	return true, nil
}

// Rejected is reachable from every open state; everything else only moves forward.
func isForward(from, to models.ApplicationStatus) bool {
	if to == models.StatusRejected {
		return true
	}
	return rank(to) > rank(from)
}

func rank(status models.ApplicationStatus) int {
	switch status {
	case models.StatusPending:
		return 0
	case models.StatusReviewed:
		return 1
	case models.StatusShortlisted:
		return 2
	case models.StatusInterview:
		return 3
	case models.StatusAccepted, models.StatusRejected:
		return 4
	default:
		return -1
	}
}
