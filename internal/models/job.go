package models

type Job struct {
	BaseModel

	// EmployerID is written once at creation and never updated.
	EmployerID   string  `gorm:"type:varchar(36);not null;index;<-:create"`
	Title        string  `gorm:"size:100;not null"`
	Description  string  `gorm:"size:1000;not null"`
	Requirements string  `gorm:"type:text;not null"`
	SalaryRange  string  `gorm:"not null"`
	Location     string  `gorm:"not null"`
	JobType      JobType `gorm:"type:varchar(20);not null;index"`
	Category     string  `gorm:"not null"`

	// Relationships
	Employer *User `gorm:"foreignKey:EmployerID"`
}
