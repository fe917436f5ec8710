package repositories

import (
	"context"

	"github.com/jobboard-dev/jobboard/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormJobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{db: db}
}

func (r *GormJobRepository) Create(ctx context.Context, job *models.Job) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(job).Error)
}

func (r *GormJobRepository) GetByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job

	if err := r.db.WithContext(ctx).Preload("Employer").Where("id = ?", id).First(&job).Error; err != nil {
		return nil, translate(err)
	}

	return &job, nil
}

func (r *GormJobRepository) List(ctx context.Context, filter JobFilter) ([]models.Job, error) {
	f := filter.Normalize()
	query := r.db.WithContext(ctx).Model(&models.Job{}).Preload("Employer")

	if f.Keyword != "" {
		pattern := likePattern(f.Keyword)
		query = query.Where("(LOWER(title) LIKE ? ESCAPE '"+likeEscape+"' OR LOWER(description) LIKE ? ESCAPE '"+likeEscape+"')", pattern, pattern)
	}

	if f.Location != "" {
		query = query.Where("LOWER(location) LIKE ? ESCAPE '"+likeEscape+"'", likePattern(f.Location))
	}

	if f.JobType != "" {
		query = query.Where("job_type = ?", f.JobType)
	}

	if f.Category != "" {
		query = query.Where("LOWER(category) LIKE ? ESCAPE '"+likeEscape+"'", likePattern(f.Category))
	}

	if f.EmployerID != "" {
		query = query.Where("employer_id = ?", f.EmployerID)
	}

	var jobs []models.Job

	if err := query.Order("created_at DESC").Order("id DESC").Find(&jobs).Error; err != nil {
		return nil, translate(err)
	}

	return jobs, nil
}

func (r *GormJobRepository) Save(ctx context.Context, job *models.Job) error {
	return updateRow(r.db.WithContext(ctx), job, job.ID, "EmployerID")
}

func (r *GormJobRepository) Delete(ctx context.Context, id string, cascade bool) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&models.Job{})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		if cascade {
			return tx.Where("job_id = ?", id).Delete(&models.Application{}).Error
		}

		return nil
	})

	return translate(err)
}
