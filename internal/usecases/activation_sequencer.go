package usecases

import (
	"context"

	"github.com/google/uuid"
	"veriflow.backend/internal/domain/entities"
	"veriflow.backend/internal/domain/repositories"
)

// ActivationSequencer advances an account's onboarding stage after a
// successful validation. Stage moves are monotonic; the sequencer never
// regresses an account.
type ActivationSequencer interface {
	Advance(ctx context.Context, accountID uuid.UUID, channel entities.Channel, recipient string) error
}

// AccountActivation is the default sequencer, backed by the account store.
type AccountActivation struct {
	accounts repositories.AccountRepository
}

// NewAccountActivation creates the default activation sequencer
func NewAccountActivation(accounts repositories.AccountRepository) *AccountActivation {
	return &AccountActivation{accounts: accounts}
}

// Advance records the verified identity on the account and moves the stage
// forward: email verification to EMAIL_VERIFIED, phone to FULLY_VERIFIED.
func (a *AccountActivation) Advance(ctx context.Context, accountID uuid.UUID, channel entities.Channel, recipient string) error {
	switch channel {
	case entities.ChannelPhone:
		return a.accounts.MarkPhoneVerified(ctx, accountID, recipient)
	default:
		return a.accounts.MarkEmailVerified(ctx, accountID)
	}
}
