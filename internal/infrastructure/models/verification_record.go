package models

import (
	"time"

	"github.com/google/uuid"
)

// VerificationRecord is the SQL shape of a live verification code. The unique
// index on (channel, recipient) is what makes the single-active-code invariant
// hold under concurrent writers.
type VerificationRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Channel   string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_channel_recipient"`
	Recipient string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_channel_recipient"`
	CodeHash  string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

func (VerificationRecord) TableName() string {
	return "verification_records"
}
