package router

import (
	"github.com/cockroachdb/errors"
)

// ErrNotEnoughAccountKeys reports an instruction whose account array is
// missing a slot its op's fixed shape requires.
var ErrNotEnoughAccountKeys = errors.New("router: not enough account keys")

// accountSlot names one required position of an op's account shape and
// knows how to detect its absence on a Request.
type accountSlot struct {
	name    string
	missing func(Request) bool
}

func slotMint(r Request) bool         { return r.Mint.IsZero() }
func slotConfig(r Request) bool       { return len(r.ConfigSlotData) == 0 }
func slotCreator(r Request) bool      { return r.Creator.IsZero() }
func slotDest(r Request) bool         { return r.Dest.IsZero() }
func slotSrc(r Request) bool          { return r.Src.IsZero() }
func slotDst(r Request) bool          { return r.Dst.IsZero() }
func slotAccount(r Request) bool      { return r.Account.IsZero() }
func slotAuthority(r Request) bool    { return r.Authority.IsZero() }
func slotMintFrom(r Request) bool     { return r.MintFrom.IsZero() }
func slotMintTo(r Request) bool       { return r.MintTo.IsZero() }
func slotCreatorTo(r Request) bool    { return r.CreatorTo.IsZero() }
func slotTokenAccount(r Request) bool { return r.TokenAccount.IsZero() }
func slotEligible(r Request) bool     { return r.EligibleTokenAccount.IsZero() }

var (
	mintOnly       = []accountSlot{{"mint", slotMint}}
	mintAndConfig  = []accountSlot{{"mint", slotMint}, {"config", slotConfig}}
	rateShape      = []accountSlot{{"mint_from", slotMintFrom}, {"mint_to", slotMintTo}, {"config", slotConfig}}
	proofShape     = []accountSlot{{"eligible_token_account", slotEligible}}
	claimLikeShape = []accountSlot{{"mint", slotMint}, {"eligible_token_account", slotEligible}}
)

// opShapes declares every op's fixed account-array shape (spec.md §4.10).
// A Request missing any listed slot fails with ErrNotEnoughAccountKeys
// before its handler runs, the not-enough-account-keys shape error of
// spec.md §7. Optional slots (escrow token account, proof account, hook
// program, trailing verifier accounts) are never listed here; each
// handler interprets their absence itself.
var opShapes = map[Op][]accountSlot{
	OpInitializeMint:               {{"mint", slotMint}, {"creator", slotCreator}},
	OpUpdateMetadata:               {{"mint", slotMint}, {"config", slotConfig}, {"authority", slotAuthority}},
	OpInitializeVerificationConfig: mintAndConfig,
	OpUpdateVerificationConfig:     mintAndConfig,
	OpTrimVerificationConfig:       mintAndConfig,
	OpVerify:                       mintAndConfig,
	OpMint:                         {{"mint", slotMint}, {"config", slotConfig}, {"creator", slotCreator}, {"dest", slotDest}},
	OpBurn:                         {{"mint", slotMint}, {"config", slotConfig}, {"src", slotSrc}},
	OpPause:                        mintAndConfig,
	OpResume:                       mintAndConfig,
	OpFreeze:                       {{"mint", slotMint}, {"config", slotConfig}, {"account", slotAccount}},
	OpThaw:                         {{"mint", slotMint}, {"config", slotConfig}, {"account", slotAccount}},
	OpTransfer:                     {{"mint", slotMint}, {"config", slotConfig}, {"src", slotSrc}, {"dst", slotDst}, {"authority", slotAuthority}},
	OpCreateRateAccount:            rateShape,
	OpUpdateRateAccount:            rateShape,
	OpCloseRateAccount:             rateShape,
	OpSplit:                        {{"mint", slotMint}, {"config", slotConfig}, {"creator", slotCreator}, {"token_account", slotTokenAccount}},
	OpConvert:                      {{"mint_from", slotMintFrom}, {"mint_to", slotMintTo}, {"config", slotConfig}, {"creator_to", slotCreatorTo}, {"src", slotSrc}, {"dst", slotDst}},
	OpCreateDistributionEscrow:     mintOnly,
	OpClaimDistribution:            claimLikeShape,
	OpCreateProof:                  proofShape,
	OpUpdateProof:                  proofShape,
	OpCloseActionReceipt:           mintOnly,
	OpCloseClaimReceipt:            claimLikeShape,
}

// checkShape verifies req carries every account its op's shape requires.
func checkShape(req Request) error {
	for _, slot := range opShapes[req.Op] {
		if slot.missing(req) {
			return errors.Wrapf(ErrNotEnoughAccountKeys, "op=%s missing %s", req.Op, slot.name)
		}
	}
	return nil
}
