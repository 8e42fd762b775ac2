package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// VerificationStage represents an account's progress through onboarding
// verification. It only ever advances.
type VerificationStage string

const (
	StageUnverifiedEmail VerificationStage = "UNVERIFIED_EMAIL"
	StageEmailVerified   VerificationStage = "EMAIL_VERIFIED"
	StageFullyVerified   VerificationStage = "FULLY_VERIFIED"
)

// rank orders stages; a transition is legal only to a strictly higher rank.
func (s VerificationStage) rank() int {
	switch s {
	case StageEmailVerified:
		return 1
	case StageFullyVerified:
		return 2
	default:
		return 0
	}
}

// CanAdvanceTo reports whether moving to next would be a forward transition.
func (s VerificationStage) CanAdvanceTo(next VerificationStage) bool {
	return next.rank() > s.rank()
}

// Account represents a marketplace account as seen by the verification
// pipeline: contact identities, their verified flags, and the onboarding stage.
type Account struct {
	ID              uuid.UUID         `json:"id"`
	Email           string            `json:"email"`
	EmailVerified   bool              `json:"emailVerified"`
	Phone           null.String       `json:"phone,omitempty"`
	PhoneVerified   bool              `json:"phoneVerified"`
	Stage           VerificationStage `json:"stage"`
	EmailVerifiedAt null.Time         `json:"emailVerifiedAt,omitempty"`
	PhoneVerifiedAt null.Time         `json:"phoneVerifiedAt,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// PhoneBinding is a read projection over accounts used by the uniqueness
// guard: which account, if any, holds a verified claim on a phone number.
type PhoneBinding struct {
	Phone         string    `json:"phone"`
	AccountID     uuid.UUID `json:"accountId"`
	PhoneVerified bool      `json:"phoneVerified"`
}
