// Store persists the Rate Account (§3 "Rate Account"): the per-action
// (num, den, rounding) triple Split/Convert read through rate.Rate.
// Grounded in the same create/update/close shape as
// internal/core/verification.Store, narrowed to a single fixed-size
// account with no sparse-list bookkeeping.
package rate

import (
	"context"

	"github.com/vtoken-labs/vtoken/internal/accounts"
	"github.com/vtoken-labs/vtoken/internal/core/pda"
	"github.com/vtoken-labs/vtoken/internal/crypto"
	"github.com/vtoken-labs/vtoken/internal/storage/accountstore"
)

// Store wires Rate Account CRUD to its backing accountstore and PDA deriver.
type Store struct {
	Accounts accountstore.Store
	Program  pda.Program
	Rent     accountstore.RentLedger
}

func rateKey(addr crypto.PublicKey) accountstore.Key {
	return accountstore.Key(addr)
}

// Create allocates the rate PDA for (actionID, mintFrom, mintTo) holding r.
func (s *Store) Create(ctx context.Context, actionID uint64, mintFrom, mintTo crypto.PublicKey, r Rate) (accounts.RateAccount, error) {
	addr := s.Program.Rate(actionID, mintFrom, mintTo)
	rec := accounts.RateAccount{Rate: r, Bump: addr.Bump}
	if err := s.Accounts.Create(ctx, rateKey(addr.Address), rec.Encode()); err != nil {
		return accounts.RateAccount{}, err
	}
	return rec, nil
}

// Load reads and decodes the rate account for (actionID, mintFrom, mintTo),
// re-validating the stored bump per spec.md §4.9.
func (s *Store) Load(ctx context.Context, actionID uint64, mintFrom, mintTo crypto.PublicKey) (accounts.RateAccount, error) {
	addr := s.Program.Rate(actionID, mintFrom, mintTo)
	raw, err := s.Accounts.Get(ctx, rateKey(addr.Address))
	if err != nil {
		return accounts.RateAccount{}, err
	}
	rec, err := accounts.DecodeRateAccount(raw)
	if err != nil {
		return accounts.RateAccount{}, err
	}
	if rec.Bump != addr.Bump {
		return accounts.RateAccount{}, pda.ErrBumpMismatch
	}
	return rec, nil
}

// Update mutates an existing rate account's (num, den, rounding) triple in
// place; the account's size never changes, so no rent delta applies.
func (s *Store) Update(ctx context.Context, actionID uint64, mintFrom, mintTo crypto.PublicKey, r Rate) (accounts.RateAccount, error) {
	existing, err := s.Load(ctx, actionID, mintFrom, mintTo)
	if err != nil {
		return accounts.RateAccount{}, err
	}
	rec := accounts.RateAccount{Rate: r, Bump: existing.Bump}
	addr := s.Program.Rate(actionID, mintFrom, mintTo)
	if err := s.Accounts.Put(ctx, rateKey(addr.Address), rec.Encode()); err != nil {
		return accounts.RateAccount{}, err
	}
	return rec, nil
}

// Close frees the rate account and reports the lamports refunded to recipient.
func (s *Store) Close(ctx context.Context, actionID uint64, mintFrom, mintTo crypto.PublicKey) (refund int64, err error) {
	addr := s.Program.Rate(actionID, mintFrom, mintTo)
	key := rateKey(addr.Address)
	raw, err := s.Accounts.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	if err := s.Accounts.Delete(ctx, key); err != nil {
		return 0, err
	}
	return -s.Rent.Delta(len(raw), 0), nil
}
