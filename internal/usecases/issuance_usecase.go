package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"veriflow.backend/internal/domain/entities"
	domainerrors "veriflow.backend/internal/domain/errors"
	"veriflow.backend/internal/domain/repositories"
	"veriflow.backend/internal/infrastructure/transport"
	"veriflow.backend/pkg/crypto"
	"veriflow.backend/pkg/logger"
	"veriflow.backend/pkg/metrics"
)

// dispatchTimeout bounds a single delivery attempt; a timed-out dispatch is a
// transport failure, never silently retried.
const dispatchTimeout = 10 * time.Second

// IssuanceUsecase orchestrates code issuance: normalize, uniqueness check,
// revoke-prior, persist, dispatch. It does not enforce any resend cooldown;
// that is a client-side throttle. The security invariant is that only the
// most recently issued code is ever valid, which Put guarantees on its own.
type IssuanceUsecase struct {
	store    repositories.RecordStore
	accounts repositories.AccountRepository
	senders  map[entities.Channel]transport.CodeSender
	ttl      time.Duration

	generateCode func() (string, error)
}

// NewIssuanceUsecase creates a new issuance usecase
func NewIssuanceUsecase(
	store repositories.RecordStore,
	accounts repositories.AccountRepository,
	senders map[entities.Channel]transport.CodeSender,
	ttl time.Duration,
) *IssuanceUsecase {
	if ttl <= 0 {
		ttl = entities.CodeTTL
	}
	return &IssuanceUsecase{
		store:        store,
		accounts:     accounts,
		senders:      senders,
		ttl:          ttl,
		generateCode: crypto.GenerateCode,
	}
}

// Issue generates and delivers a fresh code for the recipient on behalf of
// the requesting account. Any previously issued code for the same recipient
// is revoked before the new one becomes visible.
func (u *IssuanceUsecase) Issue(ctx context.Context, channel entities.Channel, rawRecipient string, requester uuid.UUID) error {
	recipient, ok := entities.NormalizeRecipient(channel, rawRecipient)
	if !ok {
		return domainerrors.ErrInvalidRecipient
	}

	if channel == entities.ChannelPhone {
		bound, err := u.accounts.PhoneBoundElsewhere(ctx, recipient, requester)
		if err != nil {
			return fmt.Errorf("uniqueness check failed: %w", err)
		}
		if bound {
			return domainerrors.ErrRecipientBound
		}
	}

	code, err := u.generateCode()
	if err != nil {
		return err
	}
	hash, err := crypto.HashCode(code)
	if err != nil {
		return err
	}

	if err := u.store.Put(ctx, channel, recipient, hash, u.ttl); err != nil {
		return err
	}

	metrics.CodesIssued.WithLabelValues(string(channel)).Inc()
	logger.Info(ctx, "verification code issued",
		zap.String("channel", string(channel)),
		zap.String("requester", requester.String()),
	)

	sender, ok := u.senders[channel]
	if !ok {
		return fmt.Errorf("no sender configured for channel %s: %w", channel, domainerrors.ErrTransport)
	}

	// The record stands even when delivery fails; the user can resend, and
	// the new Put will revoke this code anyway.
	sendCtx, cancel := context.WithTimeout(ctx, dispatchTimeout)
	defer cancel()
	if err := sender.Send(sendCtx, recipient, code); err != nil {
		metrics.DeliveryFailures.WithLabelValues(string(channel)).Inc()
		logger.Warn(ctx, "verification code delivery failed",
			zap.String("channel", string(channel)),
			zap.Error(err),
		)
		return fmt.Errorf("delivery to %s channel failed: %w", channel, domainerrors.ErrTransport)
	}

	return nil
}
