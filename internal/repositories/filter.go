package repositories

import (
	"strings"

	"github.com/jobboard-dev/jobboard/internal/models"
)

// JobFilter fields are optional and combine with AND. Keyword, Location and Category
// are case-insensitive substrings; JobType is exact.
type JobFilter struct {
	Keyword    string
	Location   string
	JobType    models.JobType
	Category   string
	EmployerID string
}

func (f JobFilter) Normalize() JobFilter {
	return JobFilter{
		Keyword:    strings.TrimSpace(f.Keyword),
		Location:   strings.TrimSpace(f.Location),
		JobType:    models.JobType(strings.TrimSpace(string(f.JobType))),
		Category:   strings.TrimSpace(f.Category),
		EmployerID: strings.TrimSpace(f.EmployerID),
	}
}

func (f JobFilter) Matches(job models.Job) bool {
	if f.Keyword != "" && !containsFold(job.Title, f.Keyword) && !containsFold(job.Description, f.Keyword) {
		return false
	}
	if f.Location != "" && !containsFold(job.Location, f.Location) {
		return false
	}
	if f.JobType != "" && job.JobType != f.JobType {
		return false
	}
	if f.Category != "" && !containsFold(job.Category, f.Category) {
		return false
	}
	if f.EmployerID != "" && job.EmployerID != f.EmployerID {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

const likeEscape = "!"

// likePattern builds a lowercase %substr% pattern with LIKE wildcards escaped by '!'.
func likePattern(substr string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + r.Replace(strings.ToLower(substr)) + "%"
}
