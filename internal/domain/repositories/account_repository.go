package repositories

import (
	"context"

	"github.com/google/uuid"
	"veriflow.backend/internal/domain/entities"
)

// AccountRepository defines account data operations used by the pipeline
type AccountRepository interface {
	Create(ctx context.Context, account *entities.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error)

	// PhoneBoundElsewhere reports whether any account other than excluding
	// holds a verified claim on the normalized phone number. An unverified or
	// same-account match does not count as bound.
	PhoneBoundElsewhere(ctx context.Context, phone string, excluding uuid.UUID) (bool, error)

	// MarkEmailVerified flips the email flag and advances the stage. The
	// stage move is applied only when it is a forward transition.
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error

	// MarkPhoneVerified binds phone to the account, flips the phone flag and
	// advances the stage, forward transitions only.
	MarkPhoneVerified(ctx context.Context, id uuid.UUID, phone string) error
}
