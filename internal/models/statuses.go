package models

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleEmployer Role = "employer"
	RoleSeeker   Role = "seeker"
)

func (r Role) Valid() bool {
	return r == RoleEmployer || r == RoleSeeker
}

func ParseRole(value string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(value)))

	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", value)
	}

	return role, nil
}

type JobType string

const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeContract   JobType = "Contract"
	JobTypeRemote     JobType = "Remote"
	JobTypeInternship JobType = "Internship"
)

var JobTypes = []JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeRemote, JobTypeInternship}

func (t JobType) Valid() bool {
	for _, known := range JobTypes {
		if t == known {
			return true
		}
	}
	return false
}

type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "Pending"
	StatusReviewed    ApplicationStatus = "Reviewed"
	StatusShortlisted ApplicationStatus = "Shortlisted"
	StatusInterview   ApplicationStatus = "Interview"
	StatusAccepted    ApplicationStatus = "Accepted"
	StatusRejected    ApplicationStatus = "Rejected"
)

// ApplicationStatuses is ordered by pipeline position.
var ApplicationStatuses = []ApplicationStatus{
	StatusPending,
	StatusReviewed,
	StatusShortlisted,
	StatusInterview,
	StatusAccepted,
	StatusRejected,
}

func (s ApplicationStatus) Valid() bool {
	for _, known := range ApplicationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s ApplicationStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}
