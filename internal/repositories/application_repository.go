package repositories

import (
	"context"

	"github.com/jobboard-dev/jobboard/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *GormApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// Create relies on idx_application_job_seeker; the database rejects a second row for the pair
// even when two requests race past the service-level check.
func (r *GormApplicationRepository) Create(ctx context.Context, application *models.Application) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(application).Error)
}

func (r *GormApplicationRepository) GetByID(ctx context.Context, id string) (*models.Application, error) {
	var application models.Application

	if err := r.db.WithContext(ctx).Preload("Job").Preload("Job.Employer").Where("id = ?", id).First(&application).Error; err != nil {
		return nil, translate(err)
	}

	return &application, nil
}

func (r *GormApplicationRepository) FindByJobAndSeeker(ctx context.Context, jobID, seekerID string) (*models.Application, error) {
	var application models.Application

	if err := r.db.WithContext(ctx).Where("job_id = ? AND seeker_id = ?", jobID, seekerID).First(&application).Error; err != nil {
		return nil, translate(err)
	}

	return &application, nil
}

func (r *GormApplicationRepository) ListBySeeker(ctx context.Context, seekerID string) ([]models.Application, error) {
	var applications []models.Application

	err := r.db.WithContext(ctx).
		Preload("Job").
		Preload("Job.Employer").
		Where("seeker_id = ?", seekerID).
		Order("applied_date DESC").Order("id DESC").
		Find(&applications).Error

	if err != nil {
		return nil, translate(err)
	}

	return applications, nil
}

func (r *GormApplicationRepository) ListByJob(ctx context.Context, jobID string) ([]models.Application, error) {
	var applications []models.Application

	err := r.db.WithContext(ctx).
		Preload("Seeker").
		Where("job_id = ?", jobID).
		Order("applied_date DESC").Order("id DESC").
		Find(&applications).Error

	if err != nil {
		return nil, translate(err)
	}

	return applications, nil
}

func (r *GormApplicationRepository) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	return translate(r.db.WithContext(ctx).Model(&models.Application{}).Where("id = ?", id).Update("status", status).Error)
}
