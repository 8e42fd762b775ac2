package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"veriflow.backend/internal/domain/entities"
	domainerrors "veriflow.backend/internal/domain/errors"
	"veriflow.backend/internal/domain/repositories"
	"veriflow.backend/pkg/crypto"
	"veriflow.backend/pkg/logger"
	"veriflow.backend/pkg/metrics"
)

// ValidationUsecase checks a submitted code against the live record. Three
// terminal outcomes per call: no active code, expired, mismatch; a match
// consumes the record and advances the requester's verification stage.
type ValidationUsecase struct {
	store     repositories.RecordStore
	sequencer ActivationSequencer
	now       func() time.Time

	checkCode func(code, hash string) bool
}

// NewValidationUsecase creates a new validation usecase
func NewValidationUsecase(store repositories.RecordStore, sequencer ActivationSequencer) *ValidationUsecase {
	return &ValidationUsecase{
		store:     store,
		sequencer: sequencer,
		now:       time.Now,
		checkCode: crypto.CheckCode,
	}
}

// Validate resolves a submitted code for the recipient. On success the record
// is consumed (one-time use) and the requester's account stage advances.
// On mismatch the record is kept so the user may retry within the TTL.
func (u *ValidationUsecase) Validate(ctx context.Context, channel entities.Channel, rawRecipient, submitted string, requester uuid.UUID) error {
	recipient, ok := entities.NormalizeRecipient(channel, rawRecipient)
	if !ok {
		return domainerrors.ErrInvalidRecipient
	}

	rec, err := u.store.Get(ctx, channel, recipient)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNoActiveCode) {
			metrics.Validations.WithLabelValues(string(channel), metrics.OutcomeNoCode).Inc()
		} else {
			metrics.Validations.WithLabelValues(string(channel), metrics.OutcomeError).Inc()
		}
		return err
	}

	if rec.Expired(u.now()) {
		// lazy reclaim; the TTL is the source of truth, not the sweeper
		if err := u.store.Consume(ctx, channel, recipient); err != nil {
			return err
		}
		metrics.Validations.WithLabelValues(string(channel), metrics.OutcomeExpired).Inc()
		return domainerrors.ErrCodeExpired
	}

	if !entities.IsCodeShaped(submitted) || !u.checkCode(submitted, rec.CodeHash) {
		metrics.Validations.WithLabelValues(string(channel), metrics.OutcomeMismatch).Inc()
		return domainerrors.ErrCodeMismatch
	}

	if err := u.store.Consume(ctx, channel, recipient); err != nil {
		return err
	}

	if err := u.sequencer.Advance(ctx, requester, channel, recipient); err != nil {
		return err
	}

	metrics.Validations.WithLabelValues(string(channel), metrics.OutcomeSuccess).Inc()
	logger.Info(ctx, "verification code accepted",
		zap.String("channel", string(channel)),
		zap.String("requester", requester.String()),
	)
	return nil
}
