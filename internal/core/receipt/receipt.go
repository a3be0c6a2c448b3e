// Package receipt implements the Action Receipts (C6): at-most-once
// markers whose mere existence proves a Split/Convert/Distribution action
// has already executed. Grounded in the teacher's depositpreauth-style
// single-use ledger entries, simplified to an existence check over a small
// (mint, action id, bump) account in internal/storage/accountstore rather
// than a ledger-entry tree node.
package receipt

import (
	"context"

	"github.com/vtoken-labs/vtoken/internal/accounts"
	"github.com/vtoken-labs/vtoken/internal/core/merkle"
	"github.com/vtoken-labs/vtoken/internal/core/pda"
	"github.com/vtoken-labs/vtoken/internal/crypto"
	"github.com/vtoken-labs/vtoken/internal/storage/accountstore"
)

// Store wires receipt creation/closure to its backing accountstore and PDA
// deriver. The same shape serves both receipt kinds; only the seeds differ.
type Store struct {
	Accounts accountstore.Store
	Program  pda.Program
	Rent     accountstore.RentLedger
}

// EncodeProofPath concatenates a claim's sibling proof into the seed bytes
// the Claim Receipt PDA derives from, preserving the source's choice to
// key claims by proof path rather than just leaf index (spec.md §9's
// flagged design note).
func EncodeProofPath(proof []merkle.Node) []byte {
	buf := make([]byte, len(proof)*32)
	for i, n := range proof {
		copy(buf[i*32:(i+1)*32], n[:])
	}
	return buf
}

// CreateActionReceipt creates the common Split/Convert receipt for
// (mint, actionID). Fails with accountstore.ErrAlreadyExists on replay —
// the canonical "already initialized" signal.
func (s *Store) CreateActionReceipt(ctx context.Context, mint crypto.PublicKey, actionID uint64) (accounts.ReceiptAccount, error) {
	addr := s.Program.Receipt(mint, actionID)
	rec := accounts.ReceiptAccount{Mint: mint, ActionID: actionID, Bump: addr.Bump}
	if err := s.Accounts.Create(ctx, accountstore.Key(addr.Address), rec.Encode()); err != nil {
		return accounts.ReceiptAccount{}, err
	}
	return rec, nil
}

// ActionReceiptExists reports whether the action has already executed.
func (s *Store) ActionReceiptExists(ctx context.Context, mint crypto.PublicKey, actionID uint64) (bool, error) {
	addr := s.Program.Receipt(mint, actionID)
	return s.Accounts.Exists(ctx, accountstore.Key(addr.Address))
}

// CloseActionReceipt reclaims a settled receipt's rent.
func (s *Store) CloseActionReceipt(ctx context.Context, mint crypto.PublicKey, actionID uint64) (refund int64, err error) {
	addr := s.Program.Receipt(mint, actionID)
	key := accountstore.Key(addr.Address)
	raw, err := s.Accounts.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	if err := s.Accounts.Delete(ctx, key); err != nil {
		return 0, err
	}
	return -s.Rent.Delta(len(raw), 0), nil
}

// CreateClaimReceipt creates the Distribution claim receipt keyed by
// (mint, eligibleTokenAccount, actionID, proof path).
func (s *Store) CreateClaimReceipt(ctx context.Context, mint, eligibleTokenAccount crypto.PublicKey, actionID uint64, proof []merkle.Node) (accounts.ReceiptAccount, error) {
	addr := s.Program.ClaimReceipt(mint, eligibleTokenAccount, actionID, EncodeProofPath(proof))
	rec := accounts.ReceiptAccount{Mint: mint, ActionID: actionID, Bump: addr.Bump}
	if err := s.Accounts.Create(ctx, accountstore.Key(addr.Address), rec.Encode()); err != nil {
		return accounts.ReceiptAccount{}, err
	}
	return rec, nil
}

// ClaimReceiptExists reports whether this exact leaf path has already claimed.
func (s *Store) ClaimReceiptExists(ctx context.Context, mint, eligibleTokenAccount crypto.PublicKey, actionID uint64, proof []merkle.Node) (bool, error) {
	addr := s.Program.ClaimReceipt(mint, eligibleTokenAccount, actionID, EncodeProofPath(proof))
	return s.Accounts.Exists(ctx, accountstore.Key(addr.Address))
}

// CloseClaimReceipt reclaims a settled claim receipt's rent.
func (s *Store) CloseClaimReceipt(ctx context.Context, mint, eligibleTokenAccount crypto.PublicKey, actionID uint64, proof []merkle.Node) (refund int64, err error) {
	addr := s.Program.ClaimReceipt(mint, eligibleTokenAccount, actionID, EncodeProofPath(proof))
	key := accountstore.Key(addr.Address)
	raw, err := s.Accounts.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	if err := s.Accounts.Delete(ctx, key); err != nil {
		return 0, err
	}
	return -s.Rent.Delta(len(raw), 0), nil
}
