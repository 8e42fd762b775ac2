package usecases

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"veriflow.backend/internal/domain/entities"
	domainerrors "veriflow.backend/internal/domain/errors"
)

// memRecordStore is an in-memory RecordStore for usecase tests.
type memRecordStore struct {
	mu      sync.Mutex
	records map[string]*entities.VerificationRecord
	now     func() time.Time

	putErr     error
	getErr     error
	consumeErr error
}

func newMemRecordStore() *memRecordStore {
	return &memRecordStore{
		records: make(map[string]*entities.VerificationRecord),
		now:     time.Now,
	}
}

func memKey(channel entities.Channel, recipient string) string {
	return string(channel) + ":" + recipient
}

func (s *memRecordStore) Put(_ context.Context, channel entities.Channel, recipient, codeHash string, ttl time.Duration) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.records[memKey(channel, recipient)] = &entities.VerificationRecord{
		Channel:   channel,
		Recipient: recipient,
		CodeHash:  codeHash,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	return nil
}

func (s *memRecordStore) Get(_ context.Context, channel entities.Channel, recipient string) (*entities.VerificationRecord, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[memKey(channel, recipient)]
	if !ok {
		return nil, domainerrors.ErrNoActiveCode
	}
	copy := *rec
	return &copy, nil
}

func (s *memRecordStore) Consume(_ context.Context, channel entities.Channel, recipient string) error {
	if s.consumeErr != nil {
		return s.consumeErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, memKey(channel, recipient))
	return nil
}

// stubAccounts implements repositories.AccountRepository.
type stubAccounts struct {
	boundElsewhere    bool
	boundErr          error
	emailVerifiedIDs  []uuid.UUID
	phoneVerifiedIDs  []uuid.UUID
	lastVerifiedPhone string
	markErr           error
}

func (s *stubAccounts) Create(context.Context, *entities.Account) error { return nil }

func (s *stubAccounts) GetByID(context.Context, uuid.UUID) (*entities.Account, error) {
	return nil, domainerrors.ErrNotFound
}

func (s *stubAccounts) PhoneBoundElsewhere(context.Context, string, uuid.UUID) (bool, error) {
	return s.boundElsewhere, s.boundErr
}

func (s *stubAccounts) MarkEmailVerified(_ context.Context, id uuid.UUID) error {
	if s.markErr != nil {
		return s.markErr
	}
	s.emailVerifiedIDs = append(s.emailVerifiedIDs, id)
	return nil
}

func (s *stubAccounts) MarkPhoneVerified(_ context.Context, id uuid.UUID, phone string) error {
	if s.markErr != nil {
		return s.markErr
	}
	s.phoneVerifiedIDs = append(s.phoneVerifiedIDs, id)
	s.lastVerifiedPhone = phone
	return nil
}

// stubSender records delivered codes.
type stubSender struct {
	mu         sync.Mutex
	recipients []string
	codes      []string
	err        error
}

func (s *stubSender) Send(_ context.Context, recipient, code string) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipients = append(s.recipients, recipient)
	s.codes = append(s.codes, code)
	return nil
}

func (s *stubSender) lastCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.codes) == 0 {
		return ""
	}
	return s.codes[len(s.codes)-1]
}

// stubSequencer records Advance calls.
type stubSequencer struct {
	advanced  []uuid.UUID
	channel   entities.Channel
	recipient string
	err       error
}

func (s *stubSequencer) Advance(_ context.Context, accountID uuid.UUID, channel entities.Channel, recipient string) error {
	if s.err != nil {
		return s.err
	}
	s.advanced = append(s.advanced, accountID)
	s.channel = channel
	s.recipient = recipient
	return nil
}
