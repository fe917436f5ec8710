package types

import (
	"time"

	"github.com/jobboard-dev/jobboard/internal/models"
)

// Envelope is the success body of every API route. Count is set on listings only.
type Envelope struct {
	Success bool `json:"success"`
	Count   *int `json:"count,omitempty"`
	Data    any  `json:"data"`
}

type UserResponse struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Email            string      `json:"email"`
	Role             models.Role `json:"role"`
	Skills           []string    `json:"skills"`
	Experience       string      `json:"experience"`
	Education        string      `json:"education"`
	Resume           string      `json:"resume"`
	Company          string      `json:"company"`
	About            string      `json:"about"`
	ProfessionalRole string      `json:"professionalRole"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// AuthResponse is a profile plus a freshly issued bearer token.
type AuthResponse struct {
	UserResponse
	Token string `json:"token"`
}

type EmployerSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
}

type JobResponse struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Requirements string           `json:"requirements"`
	SalaryRange  string           `json:"salaryRange"`
	Location     string           `json:"location"`
	JobType      models.JobType   `json:"jobType"`
	Category     string           `json:"category"`
	EmployerID   string           `json:"employerID"`
	Employer     *EmployerSummary `json:"employer,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
}

type ApplicationJobSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	SalaryRange string `json:"salaryRange"`
}

type SeekerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ApplicationResponse struct {
	ID          string                   `json:"id"`
	JobID       string                   `json:"jobID"`
	SeekerID    string                   `json:"seekerID"`
	SeekerName  string                   `json:"seekerName"`
	Expertise   string                   `json:"expertise"`
	Education   string                   `json:"education"`
	ResumeURL   string                   `json:"resumeURL"`
	Status      models.ApplicationStatus `json:"status"`
	AppliedDate time.Time                `json:"appliedDate"`
	Job         *ApplicationJobSummary   `json:"job"`
	Seeker      *SeekerSummary           `json:"seeker,omitempty"`
}

func NewUserResponse(user *models.User) UserResponse {
	skills := []string(user.Skills)
	if skills == nil {
		skills = []string{}
	}

	return UserResponse{
		ID:               user.ID,
		Name:             user.Name,
		Email:            user.Email,
		Role:             user.Role,
		Skills:           skills,
		Experience:       user.Experience,
		Education:        user.Education,
		Resume:           user.Resume,
		Company:          user.Company,
		About:            user.About,
		ProfessionalRole: user.ProfessionalRole,
		CreatedAt:        user.CreatedAt,
	}
}

func NewJobResponse(job *models.Job) JobResponse {
	resp := JobResponse{
		ID:           job.ID,
		Title:        job.Title,
		Description:  job.Description,
		Requirements: job.Requirements,
		SalaryRange:  job.SalaryRange,
		Location:     job.Location,
		JobType:      job.JobType,
		Category:     job.Category,
		EmployerID:   job.EmployerID,
		CreatedAt:    job.CreatedAt,
	}

	if job.Employer != nil {
		resp.Employer = &EmployerSummary{
			ID:      job.Employer.ID,
			Name:    job.Employer.Name,
			Email:   job.Employer.Email,
			Company: job.Employer.Company,
		}
	}

	return resp
}

func NewJobResponses(jobs []models.Job) []JobResponse {
	resp := make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		resp = append(resp, NewJobResponse(&jobs[i]))
	}
	return resp
}

// NewApplicationResponse embeds the job summary when the job is loaded and still exists.
func NewApplicationResponse(application *models.Application) ApplicationResponse {
	resp := ApplicationResponse{
		ID:          application.ID,
		JobID:       application.JobID,
		SeekerID:    application.SeekerID,
		SeekerName:  application.SeekerName,
		Expertise:   application.Expertise,
		Education:   application.Education,
		ResumeURL:   application.ResumeURL,
		Status:      application.Status,
		AppliedDate: application.AppliedDate,
	}

	if job := application.Job; job != nil {
		resp.Job = &ApplicationJobSummary{
			ID:          job.ID,
			Title:       job.Title,
			Location:    job.Location,
			SalaryRange: job.SalaryRange,
		}
		if job.Employer != nil {
			resp.Job.Company = job.Employer.Company
		}
	}

	if seeker := application.Seeker; seeker != nil {
		resp.Seeker = &SeekerSummary{
			ID:    seeker.ID,
			Name:  seeker.Name,
			Email: seeker.Email,
		}
	}

	return resp
}

func NewApplicationResponses(applications []models.Application) []ApplicationResponse {
	resp := make([]ApplicationResponse, 0, len(applications))
	for i := range applications {
		resp = append(resp, NewApplicationResponse(&applications[i]))
	}
	return resp
}
