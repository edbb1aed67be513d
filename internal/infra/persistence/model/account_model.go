// Package model holds the GORM persistence models mirroring the database tables.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. IDs are generated by the service
// at registration time, not by the database.
type AccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Email        string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Permission   string    `gorm:"type:varchar(20);not null;default:user"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Owned 1:1 sub-record; the FK constraint cascades deletes.
	AcademicProfile *AcademicProfileModel `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// AcademicProfileModel mirrors the 'academic_profiles' table. The owning
// account's ID doubles as this record's primary key.
type AcademicProfileModel struct {
	AccountID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EnrollmentYear     int       `gorm:"not null"`
	GraduationYear     int       `gorm:"not null"`
	EnrollmentSemester *string   `gorm:"type:varchar(10)"`
	GraduationSemester *string   `gorm:"type:varchar(10)"`
	Major              string    `gorm:"type:varchar(100);not null"`
	Minor              string    `gorm:"type:varchar(100)"`
	Concentration      string    `gorm:"type:varchar(100)"`
	UpdatedAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (AcademicProfileModel) TableName() string {
	return "academic_profiles"
}
