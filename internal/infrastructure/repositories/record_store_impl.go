package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"veriflow.backend/internal/domain/entities"
	domainerrors "veriflow.backend/internal/domain/errors"
	"veriflow.backend/internal/infrastructure/models"
)

// RecordStoreImpl is the SQL verification-record store. Put runs
// delete-prior + insert in one transaction so a concurrent Get sees either
// the old record or the new one. Physical reclaim of expired rows is the
// sweeper job's business; correctness never depends on it.
type RecordStoreImpl struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRecordStore creates a new SQL record store
func NewRecordStore(db *gorm.DB) *RecordStoreImpl {
	return &RecordStoreImpl{db: db, now: time.Now}
}

// Put stores a new record for the recipient, replacing any prior one
func (r *RecordStoreImpl) Put(ctx context.Context, channel entities.Channel, recipient, codeHash string, ttl time.Duration) error {
	now := r.now()
	m := &models.VerificationRecord{
		ID:        uuid.New(),
		Channel:   string(channel),
		Recipient: recipient,
		CodeHash:  codeHash,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("channel = ? AND recipient = ?", channel, recipient).
			Delete(&models.VerificationRecord{}).Error; err != nil {
			return err
		}
		return tx.Create(m).Error
	})
	if err != nil {
		return fmt.Errorf("failed to store verification record: %w", domainerrors.ErrStorage)
	}
	return nil
}

// Get returns the stored record for the recipient
func (r *RecordStoreImpl) Get(ctx context.Context, channel entities.Channel, recipient string) (*entities.VerificationRecord, error) {
	var m models.VerificationRecord
	err := r.db.WithContext(ctx).
		Where("channel = ? AND recipient = ?", channel, recipient).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNoActiveCode
		}
		return nil, fmt.Errorf("failed to read verification record: %w", domainerrors.ErrStorage)
	}

	return &entities.VerificationRecord{
		Channel:   entities.Channel(m.Channel),
		Recipient: m.Recipient,
		CodeHash:  m.CodeHash,
		CreatedAt: m.CreatedAt,
		ExpiresAt: m.ExpiresAt,
	}, nil
}

// Consume deletes the record; deleting an absent record is not an error
func (r *RecordStoreImpl) Consume(ctx context.Context, channel entities.Channel, recipient string) error {
	err := r.db.WithContext(ctx).
		Where("channel = ? AND recipient = ?", channel, recipient).
		Delete(&models.VerificationRecord{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete verification record: %w", domainerrors.ErrStorage)
	}
	return nil
}

// DeleteExpired reclaims records whose expiry is before the cutoff. Used by
// the sweeper job; returns the number of rows removed.
func (r *RecordStoreImpl) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&models.VerificationRecord{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
