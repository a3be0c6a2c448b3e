// Package tokenruntime narrows the base Token-2022-style token runtime
// this program builds on to the handful of operations its privileged ops
// actually invoke: minting, burning, transferring, pausing, freezing, and
// metadata updates, all signed by one of this program's authority PDAs
// (internal/core/pda). Mint/extension initialization, metadata field
// serialization, and the runtime's own account layout are spec.md's
// explicit non-goals — this package only defines the narrow collaborator
// interface and, for tests, a deterministic in-memory double, the same
// split the teacher uses between internal/core/ledger's LedgerView
// interface and its in-memory ApplyStateTable test double.
package tokenruntime

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/vtoken-labs/vtoken/internal/crypto"
)

// ErrMintNotOwnedByRuntime reports a mint account not owned by the base
// token runtime, failing the "mint account is owned by the base token
// runtime" precondition spec.md §4.3/§4.5 require of every privileged op.
var ErrMintNotOwnedByRuntime = errors.New("tokenruntime: mint not owned by base token runtime")

// ErrInsufficientFunds reports a burn or transfer exceeding the source's balance.
var ErrInsufficientFunds = errors.New("tokenruntime: insufficient funds")

// ErrMintNotFound reports an operation against a mint the runtime has never seen.
var ErrMintNotFound = errors.New("tokenruntime: mint not found")

// ErrPaused reports a privileged op attempted against a paused mint.
var ErrPaused = errors.New("tokenruntime: mint is paused")

// ErrFrozen reports a transfer or burn attempted against a frozen token account.
var ErrFrozen = errors.New("tokenruntime: token account is frozen")

// ErrPoolAlreadyExists reports a second CreateDistributionPool for the
// same (mint, escrowAuthority), enforcing spec.md §4.8's "double-creation
// is forbidden" invariant.
var ErrPoolAlreadyExists = errors.New("tokenruntime: distribution pool already exists")

// ErrPoolNotFound reports a lookup against an escrow that was never created.
var ErrPoolNotFound = errors.New("tokenruntime: distribution pool not found")

// Runtime is the narrow surface this program drives the base token
// runtime through. Every method takes the authority PDA the caller has
// already derived and verified (internal/core/pda), matching spec.md's
// framing of MintAuthority/PermanentDelegate/PauseAuthority/FreezeAuthority
// as collaborators this program signs with, not state it owns.
type Runtime interface {
	// MintOwner reports the owning program of mint, so callers can assert
	// "mint account is owned by the base token runtime" without this
	// program reimplementing mint initialization.
	MintOwner(ctx context.Context, mint crypto.PublicKey) (crypto.PublicKey, error)

	// Decimals reports mint's decimal places, used by Convert's §4.1 shift.
	Decimals(ctx context.Context, mint crypto.PublicKey) (uint8, error)

	// BalanceOf reports account's balance of mint, used by Split's
	// current_token_balance read.
	BalanceOf(ctx context.Context, mint, account crypto.PublicKey) (uint64, error)

	// MintTo mints amount of mint into dest, signed by mintAuthority.
	MintTo(ctx context.Context, mint, dest, mintAuthority crypto.PublicKey, amount uint64) error

	// BurnFrom burns amount of mint from src, signed by permanentDelegate.
	BurnFrom(ctx context.Context, mint, src, permanentDelegate crypto.PublicKey, amount uint64) error

	// TransferChecked moves amount of mint from src to dst, signed by
	// authority (either the holder for ordinary transfers or the
	// permanent delegate for Distribution on-chain settlement).
	TransferChecked(ctx context.Context, mint, src, dst, authority crypto.PublicKey, amount uint64) error

	// SetPaused pauses or resumes mint, signed by pauseAuthority.
	SetPaused(ctx context.Context, mint, pauseAuthority crypto.PublicKey, paused bool) error

	// SetFrozen freezes or thaws account for mint, signed by freezeAuthority.
	SetFrozen(ctx context.Context, mint, account, freezeAuthority crypto.PublicKey, frozen bool) error

	// UpdateMetadataField sets a metadata field on mint, signed by authority.
	// Field serialization is a non-goal; value is carried opaquely.
	UpdateMetadataField(ctx context.Context, mint, authority crypto.PublicKey, field, value string) error

	// CreateDistributionPool creates the associated token account owned by
	// escrowAuthority, failing if one already exists for (mint,
	// escrowAuthority) — the "double-creation is forbidden" invariant of
	// spec.md §4.8's escrow creation.
	CreateDistributionPool(ctx context.Context, mint, escrowAuthority crypto.PublicKey) (crypto.PublicKey, error)

	// DistributionPool looks up the associated token account already
	// created for (mint, escrowAuthority).
	DistributionPool(ctx context.Context, mint, escrowAuthority crypto.PublicKey) (crypto.PublicKey, error)
}
