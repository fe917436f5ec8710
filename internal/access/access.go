// Package access decides whether an identity may perform an operation.
// Every function is pure over the records it is given and never touches a store.
package access

import (
	"fmt"
	"net/http"

	"github.com/jobboard-dev/jobboard/internal/apperrors"
	"github.com/jobboard-dev/jobboard/internal/models"
)

// Identity is the authenticated requester.
type Identity struct {
	ID   string
	Role models.Role
}

type Capability string

const (
	CreateJob             Capability = "job:create"
	ManageOwnJobs         Capability = "job:manage"
	ApplyToJob            Capability = "application:create"
	ViewOwnApplications   Capability = "application:list-own"
	ReviewJobApplications Capability = "application:review"
)

var capabilityRoles = map[Capability]models.Role{
	CreateJob:             models.RoleEmployer,
	ManageOwnJobs:         models.RoleEmployer,
	ApplyToJob:            models.RoleSeeker,
	ViewOwnApplications:   models.RoleSeeker,
	ReviewJobApplications: models.RoleEmployer,
}

func (i Identity) Can(c Capability) bool {
	role, ok := capabilityRoles[c]
	return ok && i.ID != "" && i.Role == role
}

// Require fails with Forbidden when the identity's role lacks c.
func Require(i Identity, c Capability) error {
	if i.Can(c) {
		return nil
	}
	return apperrors.Forbidden(fmt.Sprintf("User role %s is not authorized to access this route", i.Role))
}

// AuthorizeJobMutation checks that i owns job. A missing job is reported before any ownership
// decision. Job ownership failures answer 401.
func AuthorizeJobMutation(i Identity, job *models.Job, verb string) error {
	if job == nil {
		return apperrors.NotFound("Job")
	}

	if err := Require(i, ManageOwnJobs); err != nil {
		return err
	}

	if job.EmployerID != i.ID {
		return apperrors.Forbidden("Not authorized to " + verb + " this job").WithStatus(http.StatusUnauthorized)
	}

	return nil
}

// AuthorizeApply checks role, job existence and the one-application-per-job rule.
func AuthorizeApply(i Identity, job *models.Job, existing *models.Application) error {
	if err := Require(i, ApplyToJob); err != nil {
		return err
	}

	if job == nil {
		return apperrors.NotFound("Job")
	}

	if existing != nil {
		return apperrors.AlreadyApplied()
	}

	return nil
}

// AuthorizeApplicationsListing allows only the owner of job to read its applications.
func AuthorizeApplicationsListing(i Identity, job *models.Job) error {
	if err := Require(i, ReviewJobApplications); err != nil {
		return err
	}

	if job == nil {
		return apperrors.NotFound("Job")
	}

	if job.EmployerID != i.ID {
		return apperrors.Forbidden("Not authorized to view these applications")
	}

	return nil
}

// AuthorizeStatusChange allows only the employer owning the application's job to move it.
// job may be nil when the job was removed while the application survived.
func AuthorizeStatusChange(i Identity, application *models.Application, job *models.Job) error {
	if err := Require(i, ReviewJobApplications); err != nil {
		return err
	}

	if application == nil {
		return apperrors.NotFound("Application")
	}

	if job == nil || job.EmployerID != i.ID {
		return apperrors.Forbidden("Not authorized to update this application")
	}

	return nil
}
