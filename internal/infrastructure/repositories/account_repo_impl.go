package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"veriflow.backend/internal/domain/entities"
	domainerrors "veriflow.backend/internal/domain/errors"
	"veriflow.backend/internal/infrastructure/models"
)

// AccountRepository implements account data operations
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, account *entities.Account) error {
	m := &models.Account{
		ID:            account.ID,
		Email:         account.Email,
		EmailVerified: account.EmailVerified,
		PhoneVerified: account.PhoneVerified,
		Stage:         string(account.Stage),
		CreatedAt:     account.CreatedAt,
		UpdatedAt:     account.UpdatedAt,
	}
	if account.Phone.Valid {
		m.Phone = &account.Phone.String
	}
	if m.Stage == "" {
		m.Stage = string(entities.StageUnverifiedEmail)
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	account.ID = m.ID
	return nil
}

// GetByID gets an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error) {
	var m models.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// PhoneBoundElsewhere reports whether another account already holds a verified
// claim on the phone number
func (r *AccountRepository) PhoneBoundElsewhere(ctx context.Context, phone string, excluding uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("phone = ? AND phone_verified = ? AND id <> ?", phone, true, excluding).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkEmailVerified flips the email flag and advances the stage
func (r *AccountRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	account, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"email_verified":    true,
		"email_verified_at": now,
		"updated_at":        now,
	}
	if account.Stage.CanAdvanceTo(entities.StageEmailVerified) {
		updates["stage"] = string(entities.StageEmailVerified)
	}

	result := r.db.WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// MarkPhoneVerified binds the phone to the account, flips the phone flag and
// advances the stage
func (r *AccountRepository) MarkPhoneVerified(ctx context.Context, id uuid.UUID, phone string) error {
	account, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"phone":             phone,
		"phone_verified":    true,
		"phone_verified_at": now,
		"updated_at":        now,
	}
	if account.Stage.CanAdvanceTo(entities.StageFullyVerified) {
		updates["stage"] = string(entities.StageFullyVerified)
	}

	result := r.db.WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) toEntity(m *models.Account) *entities.Account {
	account := &entities.Account{
		ID:            m.ID,
		Email:         m.Email,
		EmailVerified: m.EmailVerified,
		PhoneVerified: m.PhoneVerified,
		Stage:         entities.VerificationStage(m.Stage),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.Phone != nil {
		account.Phone = null.StringFrom(*m.Phone)
	}
	if m.EmailVerifiedAt != nil {
		account.EmailVerifiedAt = null.TimeFrom(*m.EmailVerifiedAt)
	}
	if m.PhoneVerifiedAt != nil {
		account.PhoneVerifiedAt = null.TimeFrom(*m.PhoneVerifiedAt)
	}
	return account
}
