// Package pda derives and validates every program-derived address this
// program uses, matching spec.md §4.9. It is the Go-native analogue of the
// teacher's internal/core/ledger/keylet package: a fixed set of named
// "space" constructors, each hashing a domain tag with seed material, with
// the crucial difference that a PDA also carries a canonical bump that must
// be re-validated against stored state at load time (spec.md §4.9's "all
// derivations store and reuse the bump").
package pda

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"

	"github.com/vtoken-labs/vtoken/internal/crypto"
)

// MaxBump is the first bump tried on derivation, the off-chain analogue of
// Solana's find_program_address search. Collisions that would land a
// derived address on-curve are vanishingly rare (~1 in 2^31); this
// simulation does not model curve membership and always accepts the
// maximum bump.
const MaxBump uint8 = 255

// PDA is a derived address together with the bump that produced it.
type PDA struct {
	Address crypto.PublicKey
	Bump    uint8
}

// ErrBumpMismatch is returned when a stored bump no longer reproduces the
// expected address, e.g. because the wrong seeds were supplied.
var ErrBumpMismatch = errors.New("pda: stored bump does not re-derive address")

// Derive computes the canonical PDA for programID and seeds.
func Derive(programID crypto.PublicKey, seeds ...[]byte) PDA {
	return deriveWithBump(programID, MaxBump, seeds...)
}

// Verify recomputes the PDA for programID/seeds at the stored bump and
// fails if it does not match addr, enforcing spec.md §4.9's re-derivation
// invariant.
func Verify(programID crypto.PublicKey, bump uint8, addr crypto.PublicKey, seeds ...[]byte) error {
	got := deriveWithBump(programID, bump, seeds...)
	if got.Address != addr {
		return ErrBumpMismatch
	}
	return nil
}

func deriveWithBump(programID crypto.PublicKey, bump uint8, seeds ...[]byte) PDA {
	parts := make([][]byte, 0, len(seeds)+2)
	parts = append(parts, seeds...)
	parts = append(parts, []byte{bump}, programID[:])
	hash := crypto.Sha256(parts...)
	addr, _ := crypto.NewPublicKey(hash[:])
	return PDA{Address: addr, Bump: bump}
}

func leU64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

// Program is the set of PDAs that belong to this program (as opposed to
// the external transfer-hook program, see ExtraMetas below). Callers build
// one Program per running instance, holding just the program's own address.
type Program struct {
	ProgramID crypto.PublicKey
}

const (
	seedMintAuthority          = "mint.authority"
	seedFreezeAuthority        = "mint.freeze_authority"
	seedPermanentDelegate      = "mint.permanent_delegate"
	seedPauseAuthority         = "mint.pause_authority"
	seedTransferHookAuthority  = "mint.transfer_hook"
	seedVerificationConfig     = "verification_config"
	seedRate                   = "rate"
	seedReceipt                = "receipt"
	seedClaimReceipt           = "claim_receipt"
	seedProof                  = "proof"
	seedDistributionEscrowAuth = "distribution_escrow_authority"
	seedExtraMetas             = "extra-account-metas"
)

// MintAuthority derives the PDA signing authority for mint operations on mint.
func (p Program) MintAuthority(mint, creator crypto.PublicKey) PDA {
	return Derive(p.ProgramID, []byte(seedMintAuthority), mint[:], creator[:])
}

// FreezeAuthority derives the PDA signing authority for freeze/thaw on mint.
func (p Program) FreezeAuthority(mint crypto.PublicKey) PDA {
	return Derive(p.ProgramID, []byte(seedFreezeAuthority), mint[:])
}

// PermanentDelegate derives the PDA authorized to burn/transfer on behalf
// of any holder of mint (used by Split burns, Convert burns, and Clawback-
// style Distribution settlement).
func (p Program) PermanentDelegate(mint crypto.PublicKey) PDA {
	return Derive(p.ProgramID, []byte(seedPermanentDelegate), mint[:])
}

// PauseAuthority derives the PDA signing authority for pause/resume on mint.
func (p Program) PauseAuthority(mint crypto.PublicKey) PDA {
	return Derive(p.ProgramID, []byte(seedPauseAuthority), mint[:])
}

// TransferHookAuthority derives the PDA that signs the transfer-hook
// program's init/update-extra-account-metas CPIs on this mint's behalf.
func (p Program) TransferHookAuthority(mint crypto.PublicKey) PDA {
	return Derive(p.ProgramID, []byte(seedTransferHookAuthority), mint[:])
}

// VerificationConfig derives the per-(mint, op) verifier-list account.
func (p Program) VerificationConfig(mint crypto.PublicKey, opDiscriminator uint8) PDA {
	return Derive(p.ProgramID, []byte(seedVerificationConfig), mint[:], []byte{opDiscriminator})
}

// Rate derives the per-action rate account for a mint_from/mint_to pair.
func (p Program) Rate(actionID uint64, mintFrom, mintTo crypto.PublicKey) PDA {
	return Derive(p.ProgramID, []byte(seedRate), leU64(actionID), mintFrom[:], mintTo[:])
}

// Receipt derives the common Split/Convert action receipt.
func (p Program) Receipt(mint crypto.PublicKey, actionID uint64) PDA {
	return Derive(p.ProgramID, []byte(seedReceipt), mint[:], leU64(actionID))
}

// ClaimReceipt derives a Distribution claim receipt, keyed additionally by
// the eligible token account and the full proof path (spec.md §9's
// preserved-but-flagged design choice).
func (p Program) ClaimReceipt(mint, eligibleTokenAccount crypto.PublicKey, actionID uint64, proofPathBytes []byte) PDA {
	return Derive(p.ProgramID, []byte(seedClaimReceipt), mint[:], eligibleTokenAccount[:], leU64(actionID), proofPathBytes)
}

// Proof derives the optional persisted proof account for a token account/action.
func (p Program) Proof(tokenAccount crypto.PublicKey, actionID uint64) PDA {
	return Derive(p.ProgramID, []byte(seedProof), tokenAccount[:], leU64(actionID))
}

// DistributionEscrowAuthority derives the stateless PDA that owns a
// distribution pool's associated token account.
func (p Program) DistributionEscrowAuthority(mint crypto.PublicKey, actionID uint64, merkleRoot [32]byte) PDA {
	return Derive(p.ProgramID, []byte(seedDistributionEscrowAuth), mint[:], leU64(actionID), merkleRoot[:])
}

// ExtraMetas derives the transfer-hook program's extra-account-metas
// record for mint. Unlike every other PDA above, it is owned by the
// transfer-hook program, not this one, so the caller passes that program's
// address explicitly rather than using Program.ProgramID.
func ExtraMetas(transferHookProgramID, mint crypto.PublicKey) PDA {
	return Derive(transferHookProgramID, []byte(seedExtraMetas), mint[:])
}
