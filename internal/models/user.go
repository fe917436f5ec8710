package models

import "gorm.io/datatypes"

type User struct {
	BaseModel

	Name         string `gorm:"not null"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         Role   `gorm:"type:varchar(20);not null"`

	// Profile
	Skills           datatypes.JSONSlice[string]
	Experience       string `gorm:"type:text"`
	Education        string `gorm:"type:text"`
	Resume           string
	Company          string
	About            string `gorm:"type:text"`
	ProfessionalRole string

	// Relationships
	Jobs         []Job         `gorm:"foreignKey:EmployerID"`
	Applications []Application `gorm:"foreignKey:SeekerID"`
}
