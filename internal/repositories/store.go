package repositories

import (
	"context"

	"gorm.io/gorm"
)

func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users:        NewUserRepository(db),
		Jobs:         NewJobRepository(db),
		Applications: NewApplicationRepository(db),
		Pinger:       gormPinger{db: db},
	}
}

type gormPinger struct {
	db *gorm.DB
}

func (p gormPinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
