package repositories

import (
	"context"
	"time"

	"veriflow.backend/internal/domain/entities"
)

// RecordStore defines verification-record storage operations. At most one live
// record exists per (channel, recipient); Put replaces any prior record
// atomically, so issuing a new code always revokes the previous one.
type RecordStore interface {
	// Put stores a new record for the recipient, deleting any prior record in
	// the same operation. A concurrent Get observes either the old record or
	// the new one, never a half-written state.
	Put(ctx context.Context, channel entities.Channel, recipient, codeHash string, ttl time.Duration) error

	// Get returns the stored record, or errors.ErrNoActiveCode when the
	// backend holds none. Logical expiry is computed by the caller from
	// ExpiresAt at read time; backends may reclaim expired records at any
	// point after that. Backend failures surface errors.ErrStorage so callers
	// can distinguish "retry later" from "request a new code".
	Get(ctx context.Context, channel entities.Channel, recipient string) (*entities.VerificationRecord, error)

	// Consume deletes the record. Deleting an absent record is not an error.
	Consume(ctx context.Context, channel entities.Channel, recipient string) error
}
