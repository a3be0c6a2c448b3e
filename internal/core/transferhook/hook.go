// Package transferhook narrows the base token runtime's transfer-hook
// program to the two entrypoints the Verification Config Store (C3)
// drives it through: creating and updating the "extra account metas"
// record consumed on every Transfer. The wire format of that record
// beyond the meta sequence this core must emit is spec.md's explicit
// non-goal, so this package models it as an ordered list of addresses,
// not the real TLV encoding.
package transferhook

import (
	"context"

	"github.com/vtoken-labs/vtoken/internal/crypto"
)

// Hook is the collaborator interface the Verification Config Store and
// Extra-Meta Mirror (spec.md §4.3/§4.4) invoke to keep the hook program's
// mirror in sync with a mint's Transfer-op VerificationConfig.
type Hook interface {
	// InitializeExtraAccountMetas creates the mirror for mint with the
	// given ordered metas, signed by hookAuthority (the
	// TransferHookAuthority PDA). Fails if a mirror already exists.
	InitializeExtraAccountMetas(ctx context.Context, mint, hookAuthority crypto.PublicKey, metas []crypto.PublicKey) error

	// UpdateExtraAccountMetas overwrites the mirror's meta sequence.
	UpdateExtraAccountMetas(ctx context.Context, mint, hookAuthority crypto.PublicKey, metas []crypto.PublicKey) error

	// ExtraAccountMetas reads back the mirror's current meta sequence,
	// for mirror-equality assertions (spec.md §8's "Mirror equality").
	ExtraAccountMetas(ctx context.Context, mint crypto.PublicKey) ([]crypto.PublicKey, error)
}
