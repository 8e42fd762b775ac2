package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"veriflow.backend/internal/domain/entities"
	domainerrors "veriflow.backend/internal/domain/errors"
)

type memRecordStore struct {
	mu      sync.Mutex
	records map[string]*entities.VerificationRecord

	getErr error
}

func newMemRecordStore() *memRecordStore {
	return &memRecordStore{records: make(map[string]*entities.VerificationRecord)}
}

func (s *memRecordStore) key(channel entities.Channel, recipient string) string {
	return string(channel) + ":" + recipient
}

func (s *memRecordStore) Put(_ context.Context, channel entities.Channel, recipient, codeHash string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.records[s.key(channel, recipient)] = &entities.VerificationRecord{
		Channel:   channel,
		Recipient: recipient,
		CodeHash:  codeHash,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	return nil
}

func (s *memRecordStore) Get(_ context.Context, channel entities.Channel, recipient string) (*entities.VerificationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	rec, ok := s.records[s.key(channel, recipient)]
	if !ok {
		return nil, domainerrors.ErrNoActiveCode
	}
	cp := *rec
	return &cp, nil
}

func (s *memRecordStore) Consume(_ context.Context, channel entities.Channel, recipient string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, s.key(channel, recipient))
	return nil
}

type stubAccounts struct {
	account  *entities.Account
	bound    bool
	boundErr error

	emailMarked []uuid.UUID
	phoneMarked map[uuid.UUID]string
}

func newStubAccounts() *stubAccounts {
	return &stubAccounts{phoneMarked: make(map[uuid.UUID]string)}
}

func (a *stubAccounts) Create(context.Context, *entities.Account) error { return nil }

func (a *stubAccounts) GetByID(_ context.Context, id uuid.UUID) (*entities.Account, error) {
	if a.account == nil || a.account.ID != id {
		return nil, domainerrors.ErrNotFound
	}
	return a.account, nil
}

func (a *stubAccounts) PhoneBoundElsewhere(context.Context, string, uuid.UUID) (bool, error) {
	return a.bound, a.boundErr
}

func (a *stubAccounts) MarkEmailVerified(_ context.Context, id uuid.UUID) error {
	a.emailMarked = append(a.emailMarked, id)
	return nil
}

func (a *stubAccounts) MarkPhoneVerified(_ context.Context, id uuid.UUID, phone string) error {
	a.phoneMarked[id] = phone
	return nil
}

type stubSender struct {
	mu    sync.Mutex
	codes []string
	err   error
}

func (s *stubSender) Send(_ context.Context, _ string, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
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
