package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Application is unique per (JobID, SeekerID); the composite index enforces it.
type Application struct {
	ID       string `gorm:"type:varchar(36);primaryKey"`
	JobID    string `gorm:"type:varchar(36);not null;uniqueIndex:idx_application_job_seeker;<-:create"`
	SeekerID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_application_job_seeker;index;<-:create"`

	SeekerName string `gorm:"not null;<-:create"`
	Expertise  string `gorm:"not null;<-:create"`
	Education  string `gorm:"not null;<-:create"`
	ResumeURL  string `gorm:"not null;<-:create"`

	Status      ApplicationStatus `gorm:"type:varchar(20);not null;default:'Pending'"`
	AppliedDate time.Time         `gorm:"not null;index"`
	UpdatedAt   time.Time

	// Relationships
	Job    *Job  `gorm:"foreignKey:JobID"`
	Seeker *User `gorm:"foreignKey:SeekerID"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	return nil
}
