package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"veriflow.backend/internal/domain/entities"
	domainerrors "veriflow.backend/internal/domain/errors"
)

// CodeStore is a Redis-backed verification-record store. One key per
// (channel, recipient); SET replaces the whole value atomically, so a reissued
// code revokes the previous one in a single operation. The key TTL reclaims
// storage; logical expiry is still carried in the record itself.
type CodeStore struct{}

var (
	setRecordValue = Set
	getRecordValue = Get
	delRecordValue = Del
)

// NewCodeStore creates a new Redis code store
func NewCodeStore() *CodeStore {
	return &CodeStore{}
}

func recordKey(channel entities.Channel, recipient string) string {
	return "verify:" + string(channel) + ":" + recipient
}

// Put stores a new record for the recipient, replacing any prior one
func (s *CodeStore) Put(ctx context.Context, channel entities.Channel, recipient, codeHash string, ttl time.Duration) error {
	now := time.Now()
	rec := entities.VerificationRecord{
		Channel:   channel,
		Recipient: recipient,
		CodeHash:  codeHash,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	payload, err := json.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("failed to encode verification record: %w", err)
	}

	if err := setRecordValue(ctx, recordKey(channel, recipient), payload, ttl); err != nil {
		return fmt.Errorf("failed to store verification record: %w", domainerrors.ErrStorage)
	}
	return nil
}

// Get returns the stored record for the recipient, or errors.ErrNoActiveCode
// when Redis no longer holds one
func (s *CodeStore) Get(ctx context.Context, channel entities.Channel, recipient string) (*entities.VerificationRecord, error) {
	raw, err := getRecordValue(ctx, recordKey(channel, recipient))
	if err != nil {
		if IsNil(err) {
			return nil, domainerrors.ErrNoActiveCode
		}
		return nil, domainerrors.ErrStorage
	}

	var rec entities.VerificationRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, domainerrors.ErrStorage
	}
	return &rec, nil
}

// Consume deletes the record; deleting an absent record is not an error
func (s *CodeStore) Consume(ctx context.Context, channel entities.Channel, recipient string) error {
	if err := delRecordValue(ctx, recordKey(channel, recipient)); err != nil {
		return domainerrors.ErrStorage
	}
	return nil
}
