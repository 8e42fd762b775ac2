package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Account struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Email           string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	EmailVerified   bool       `gorm:"not null;default:false"`
	Phone           *string    `gorm:"type:varchar(20);index"`
	PhoneVerified   bool       `gorm:"not null;default:false"`
	Stage           string     `gorm:"type:varchar(50);not null;default:'UNVERIFIED_EMAIL'"`
	EmailVerifiedAt *time.Time `gorm:"type:timestamp"`
	PhoneVerifiedAt *time.Time `gorm:"type:timestamp"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}
