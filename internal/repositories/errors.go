package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// translate maps gorm sentinel errors onto the repository ones.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

// updateRow rewrites the columns of an existing row keyed by id and never
// inserts; a row that is gone reports ErrNotFound.
func updateRow(db *gorm.DB, model any, id string, omit ...string) error {
	omit = append([]string{clause.Associations, "ID", "CreatedAt"}, omit...)

	result := db.Model(model).Select("*").Omit(omit...).Updates(model)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// MySQL counts an unchanged row as unaffected.
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
