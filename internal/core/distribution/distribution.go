// Package distribution implements Distribution + Proof Accounts (C8):
// Merkle-proof-gated escrow claims, with either externally-supplied proof
// paths or a persisted Proof account amortizing large paths across
// transactions. Grounded in the teacher's internal/core/tx settlement
// pattern (verify a cryptographic precondition, then move value, then
// finalize with a single-use ledger marker) generalized from XRPL escrow
// finish/cancel to Merkle-eligibility claims.
package distribution

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/vtoken-labs/vtoken/internal/accounts"
	"github.com/vtoken-labs/vtoken/internal/core/merkle"
	"github.com/vtoken-labs/vtoken/internal/core/pda"
	"github.com/vtoken-labs/vtoken/internal/core/receipt"
	"github.com/vtoken-labs/vtoken/internal/core/tokenruntime"
	"github.com/vtoken-labs/vtoken/internal/crypto"
	"github.com/vtoken-labs/vtoken/internal/storage/accountstore"
)

// ErrInvalidProofChannel reports a Claim supplying both or neither of
// merkle_proof / proof_account, per spec.md §4.8's "supplying both or
// neither ⇒ invalid-instruction-data".
var ErrInvalidProofChannel = errors.New("distribution: exactly one of merkle proof or proof account must be supplied")

// ErrProofAccountMismatch reports a supplied proof_account whose PDA does
// not derive from (eligible_token_account, action_id).
var ErrProofAccountMismatch = errors.New("distribution: proof account does not match derivation")

// ErrEscrowAccountMismatch reports an escrow_token_account that does not
// match the pool created for (mint, action_id, root).
var ErrEscrowAccountMismatch = errors.New("distribution: escrow token account does not match derivation")

// Engine wires escrow creation, claims, and proof-account CRUD to their
// collaborators.
type Engine struct {
	Accounts accountstore.Store
	Program  pda.Program
	Runtime  tokenruntime.Runtime
	Receipts *receipt.Store
	Rent     accountstore.RentLedger
}

// CreateEscrow derives the escrow authority PDA for (mint, actionID, root)
// and creates its associated token pool. The (action_id, root) pair is the
// escrow's identity; double-creation is forbidden by the pool's own
// existence check.
func (e *Engine) CreateEscrow(ctx context.Context, mint crypto.PublicKey, actionID uint64, merkleRoot merkle.Node) (crypto.PublicKey, error) {
	escrowAuthority := e.Program.DistributionEscrowAuthority(mint, actionID, merkleRoot)
	return e.Runtime.CreateDistributionPool(ctx, mint, escrowAuthority.Address)
}

// ClaimInput carries a single claim's eligibility proof and settlement mode.
type ClaimInput struct {
	Mint                 crypto.PublicKey
	ActionID             uint64
	Amount               uint64
	MerkleRoot           merkle.Node
	LeafIndex            uint32
	EligibleTokenAccount crypto.PublicKey

	// Exactly one of MerkleProof / ProofAccount must be set.
	MerkleProof  []merkle.Node
	ProofAccount *crypto.PublicKey

	// EscrowTokenAccount selects on-chain settlement (transfer from the
	// pool) when set, or external settlement (receipt only) when nil.
	EscrowTokenAccount *crypto.PublicKey
}

// ClaimResult reports whether on-chain settlement moved tokens.
type ClaimResult struct {
	Settled bool
	Amount  uint64
}

// Claim verifies the eligibility leaf against in's proof channel, performs
// on-chain settlement when an escrow account is supplied, and creates the
// claim receipt so the leaf cannot be re-claimed.
func (e *Engine) Claim(ctx context.Context, in ClaimInput) (ClaimResult, error) {
	hasPath := len(in.MerkleProof) > 0
	hasAccount := in.ProofAccount != nil
	if hasPath == hasAccount {
		return ClaimResult{}, ErrInvalidProofChannel
	}

	var proof []merkle.Node
	if hasPath {
		proof = in.MerkleProof
	} else {
		expected := e.Program.Proof(in.EligibleTokenAccount, in.ActionID)
		if expected.Address != *in.ProofAccount {
			return ClaimResult{}, ErrProofAccountMismatch
		}
		raw, err := e.Accounts.Get(ctx, accountstore.Key(expected.Address))
		if err != nil {
			return ClaimResult{}, err
		}
		pa, err := accounts.DecodeProofAccount(raw)
		if err != nil {
			return ClaimResult{}, err
		}
		if err := pa.Validate(); err != nil {
			return ClaimResult{}, err
		}
		if pa.Bump != expected.Bump {
			return ClaimResult{}, pda.ErrBumpMismatch
		}
		proof = pa.Data
	}

	leaf := merkle.Leaf(in.EligibleTokenAccount, in.Mint, in.ActionID, in.Amount)
	if err := merkle.Verify(leaf, in.LeafIndex, proof, in.MerkleRoot); err != nil {
		return ClaimResult{}, err
	}

	settled := in.EscrowTokenAccount != nil
	if settled {
		escrowAuthority := e.Program.DistributionEscrowAuthority(in.Mint, in.ActionID, in.MerkleRoot)
		pool, err := e.Runtime.DistributionPool(ctx, in.Mint, escrowAuthority.Address)
		if err != nil {
			return ClaimResult{}, err
		}
		if pool != *in.EscrowTokenAccount {
			return ClaimResult{}, ErrEscrowAccountMismatch
		}
		permDelegate := e.Program.PermanentDelegate(in.Mint).Address
		if err := e.Runtime.TransferChecked(ctx, in.Mint, pool, in.EligibleTokenAccount, permDelegate, in.Amount); err != nil {
			return ClaimResult{}, err
		}
	}

	if _, err := e.Receipts.CreateClaimReceipt(ctx, in.Mint, in.EligibleTokenAccount, in.ActionID, proof); err != nil {
		return ClaimResult{}, err
	}

	return ClaimResult{Settled: settled, Amount: in.Amount}, nil
}

// CreateProof persists an initial non-empty, no-zero-node proof path for
// (tokenAccount, actionID).
func (e *Engine) CreateProof(ctx context.Context, tokenAccount crypto.PublicKey, actionID uint64, data []merkle.Node) (accounts.ProofAccount, error) {
	addr := e.Program.Proof(tokenAccount, actionID)
	p := accounts.ProofAccount{Bump: addr.Bump, Data: data}
	if err := p.Validate(); err != nil {
		return accounts.ProofAccount{}, err
	}
	if err := e.Accounts.Create(ctx, accountstore.Key(addr.Address), p.Encode()); err != nil {
		return accounts.ProofAccount{}, err
	}
	return p, nil
}

// UpdateProof overwrites (offset < len) or appends (offset == len) a single
// node, returning the rent delta the resize incurs.
func (e *Engine) UpdateProof(ctx context.Context, tokenAccount crypto.PublicKey, actionID uint64, offset uint32, node merkle.Node) (accounts.ProofAccount, int64, error) {
	addr := e.Program.Proof(tokenAccount, actionID)
	key := accountstore.Key(addr.Address)

	raw, err := e.Accounts.Get(ctx, key)
	if err != nil {
		return accounts.ProofAccount{}, 0, err
	}
	p, err := accounts.DecodeProofAccount(raw)
	if err != nil {
		return accounts.ProofAccount{}, 0, err
	}
	if p.Bump != addr.Bump {
		return accounts.ProofAccount{}, 0, pda.ErrBumpMismatch
	}

	next, err := p.UpdateAt(offset, node)
	if err != nil {
		return accounts.ProofAccount{}, 0, err
	}

	delta := e.Rent.Delta(len(raw), len(next.Encode()))
	if err := e.Accounts.Put(ctx, key, next.Encode()); err != nil {
		return accounts.ProofAccount{}, 0, err
	}
	return next, delta, nil
}
