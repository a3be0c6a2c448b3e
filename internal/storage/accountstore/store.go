// Package accountstore provides keyed persistence for program-owned accounts.
//
// Every account this program owns (VerificationConfig, Rate, Receipt, Proof,
// MintAuthority, ...) is addressed by its 32-byte PDA key. The store does not
// know about account shapes; internal/accounts owns (de)serialization and
// internal/core/pda owns address derivation. This package only owns the
// key->bytes persistence contract, matching the teacher's keyValueDb split
// between a narrow DB interface and per-backend implementations.
package accountstore

import (
	"context"

	"github.com/cockroachdb/errors"
)

// ErrNotFound is returned by Get when no account is stored at the given key.
var ErrNotFound = errors.New("accountstore: key not found")

// ErrAlreadyExists is returned by Create when an account already exists at the key.
var ErrAlreadyExists = errors.New("accountstore: key already exists")

// Key is a PDA address: 32 raw bytes, no encoding implied.
type Key [32]byte

// Store is the minimal persistence contract every backend must satisfy.
type Store interface {
	// Get reads the raw bytes stored at key. Returns ErrNotFound if absent.
	Get(ctx context.Context, key Key) ([]byte, error)

	// Exists reports whether key currently holds data.
	Exists(ctx context.Context, key Key) (bool, error)

	// Create writes data at key. Returns ErrAlreadyExists if key is occupied.
	Create(ctx context.Context, key Key, data []byte) error

	// Put overwrites (or creates) the bytes stored at key.
	Put(ctx context.Context, key Key, data []byte) error

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key Key) error

	// Close releases the underlying backend.
	Close() error
}

// RentLedger tracks lamport-equivalent balances moved in and out of the
// store on account resize, matching spec.md §4.3/§4.8's rent-delta
// accounting. It is intentionally separate from Store: rent bookkeeping is
// a property of the operation applying it, not of the backend.
type RentLedger struct {
	// LamportsPerByte prices account growth; configurable so tests can use
	// round numbers instead of the real token runtime's rent schedule.
	LamportsPerByte uint64
}

// Delta returns the lamports owed (positive) or refunded (negative) for
// resizing an account from oldLen to newLen bytes.
func (r RentLedger) Delta(oldLen, newLen int) int64 {
	return int64(newLen-oldLen) * int64(r.LamportsPerByte)
}
