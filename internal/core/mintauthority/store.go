// Package mintauthority persists the Mint Authority Record (§3): the
// one-per-mint, create-once-never-mutated account that anchors both the
// MintAuthority PDA strategy in the Verification Dispatcher (§4.5) and
// the original creator's signing authority over every later
// VerificationConfig/Rate mutation. Grounded in the same create/load
// shape as internal/core/rate.Store, narrowed further since this account
// is immutable after creation (§3: "immutable after creation").
package mintauthority

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/vtoken-labs/vtoken/internal/accounts"
	"github.com/vtoken-labs/vtoken/internal/core/pda"
	"github.com/vtoken-labs/vtoken/internal/crypto"
	"github.com/vtoken-labs/vtoken/internal/storage/accountstore"
)

// ErrCreatorNotAllowed reports a mint creator outside AllowedCreators.
var ErrCreatorNotAllowed = errors.New("mintauthority: creator not in genesis allowlist")

// Store wires Mint Authority Record creation/lookup to its backing
// accountstore and PDA deriver.
type Store struct {
	Accounts accountstore.Store
	Program  pda.Program

	// AllowedCreators, when non-empty, restricts Initialize to genesis's
	// configured mint-creator allowlist (genesis.mint_creators). Empty
	// means any creator may initialize a mint.
	AllowedCreators []crypto.PublicKey
}

func (s *Store) creatorAllowed(creator crypto.PublicKey) bool {
	if len(s.AllowedCreators) == 0 {
		return true
	}
	for _, c := range s.AllowedCreators {
		if c == creator {
			return true
		}
	}
	return false
}

// Initialize creates the one-time Mint Authority Record for (mint, creator).
// Initializing the underlying mint/extension state against the base token
// runtime is spec.md's explicit non-goal; this only records this
// program's own bookkeeping account.
func (s *Store) Initialize(ctx context.Context, mint, creator crypto.PublicKey) (accounts.MintAuthorityRecord, error) {
	if !s.creatorAllowed(creator) {
		return accounts.MintAuthorityRecord{}, ErrCreatorNotAllowed
	}
	addr := s.Program.MintAuthority(mint, creator)
	rec := accounts.MintAuthorityRecord{Mint: mint, MintCreator: creator, Bump: addr.Bump}
	if err := s.Accounts.Create(ctx, accountstore.Key(addr.Address), rec.Encode()); err != nil {
		return accounts.MintAuthorityRecord{}, err
	}
	return rec, nil
}

// Load reads and re-derives the Mint Authority Record for (mint, creator).
func (s *Store) Load(ctx context.Context, mint, creator crypto.PublicKey) (accounts.MintAuthorityRecord, error) {
	addr := s.Program.MintAuthority(mint, creator)
	raw, err := s.Accounts.Get(ctx, accountstore.Key(addr.Address))
	if err != nil {
		return accounts.MintAuthorityRecord{}, err
	}
	rec, err := accounts.DecodeMintAuthorityRecord(raw)
	if err != nil {
		return accounts.MintAuthorityRecord{}, err
	}
	if rec.Bump != addr.Bump {
		return accounts.MintAuthorityRecord{}, pda.ErrBumpMismatch
	}
	return rec, nil
}
