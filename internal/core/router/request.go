package router

import (
	"github.com/vtoken-labs/vtoken/internal/accounts"
	"github.com/vtoken-labs/vtoken/internal/core/distribution"
	"github.com/vtoken-labs/vtoken/internal/core/splitconvert"
	"github.com/vtoken-labs/vtoken/internal/core/verification"
	"github.com/vtoken-labs/vtoken/internal/crypto"
)

// Request carries one decoded instruction: the op discriminator, its raw
// op_args payload, and every account identity spec.md §4.10 positions in
// the instruction's account array. Not every field applies to every op;
// each handler reads only the fields its own account shape defines.
//
// The first three fields below are spec.md §4.10's universal prefix
// "(mint, config-or-authority, instructions-sysvar-or-creator)"; Signer
// doubles as that third slot's creator-signer reading under the
// MintAuthority strategy, and InstructionsSysvar/PriorInstructions are
// only consulted when the config slot resolves to introspection mode.
type Request struct {
	Op   Op
	Data []byte

	Mint               crypto.PublicKey
	ConfigSlotOwner    crypto.PublicKey
	ConfigSlotData     []byte
	Signer             crypto.PublicKey
	InstructionsSysvar *crypto.PublicKey
	PriorInstructions  []verification.Instruction
	RemainingAccounts  []crypto.PublicKey

	Creator   crypto.PublicKey
	Dest      crypto.PublicKey
	Src       crypto.PublicKey
	Dst       crypto.PublicKey
	Account   crypto.PublicKey
	Authority crypto.PublicKey
	Recipient crypto.PublicKey

	MintFrom     crypto.PublicKey
	MintTo       crypto.PublicKey
	CreatorTo    crypto.PublicKey
	TokenAccount crypto.PublicKey

	EligibleTokenAccount crypto.PublicKey
	EscrowTokenAccount   *crypto.PublicKey
	ProofAccountAddress  *crypto.PublicKey

	HookProgramID *crypto.PublicKey
}

func (r Request) strategyRequest(opData []byte) verification.StrategyRequest {
	return r.strategyRequestFor(uint8(r.Op), opData)
}

// strategyRequestFor builds a StrategyRequest gated on an explicit op
// discriminator rather than r.Op, the shape OpVerify needs since it wraps
// an inner op discriminator supplied in its own op_args rather than being
// routed under that inner op's own discriminator.
func (r Request) strategyRequestFor(opDiscriminator uint8, opData []byte) verification.StrategyRequest {
	return r.strategyRequestForMint(r.Mint, opDiscriminator, opData)
}

// strategyRequestForMint builds a StrategyRequest gated against an
// explicit mint rather than r.Mint, the shape Rate CRUD and Convert need:
// their governing config-or-mint-authority slot is keyed by MintFrom, not
// the (empty, for these ops) Mint field.
func (r Request) strategyRequestForMint(mint crypto.PublicKey, opDiscriminator uint8, opData []byte) verification.StrategyRequest {
	return verification.StrategyRequest{
		Mint:               mint,
		ConfigSlotOwner:    r.ConfigSlotOwner,
		ConfigSlotData:     r.ConfigSlotData,
		Signer:             r.Signer,
		OpDiscriminator:    opDiscriminator,
		OpData:             opData,
		OpAccounts:         r.RemainingAccounts,
		InstructionsSysvar: r.InstructionsSysvar,
		PriorInstructions:  r.PriorInstructions,
	}
}

// Result carries whichever outputs the dispatched op produced; unused
// fields stay at their zero value.
type Result struct {
	MintAuthority accounts.MintAuthorityRecord

	VerificationConfig accounts.VerificationConfig
	RentDelta          int64
	// RentRecipient is the account a negative RentDelta is credited to,
	// echoed from the op's recipient slot for the embedding runtime to
	// apply; the program itself keeps no lamport ledger.
	RentRecipient crypto.PublicKey
	Closed        bool

	RateAccount accounts.RateAccount

	Split   splitconvert.SplitResult
	Convert splitconvert.ConvertResult

	EscrowPool crypto.PublicKey
	Claim      distribution.ClaimResult
	Proof      accounts.ProofAccount
}
