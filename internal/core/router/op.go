// Package router implements Op Entry & Routing (C10): discriminator
// decoding and the fixed per-op account shape spec.md §4.10/§6 describe,
// gluing every other component together into the single entrypoint a
// caller submits an instruction through. Grounded in the teacher's
// internal/core/tx registry (Register a factory per transaction Type,
// NewFromType/apply dispatch by that type), adapted from a JSON
// transaction envelope to a single leading discriminator byte plus a
// flat binary op_args payload.
package router

// Op is the single leading instruction byte that selects one of the 24
// operations this program routes (spec.md §6's 0-17 plus SPEC_FULL.md
// §E's assigned 18-23 for the distribution/proof/receipt-close ops the
// args table and original_source/ name but the discriminator table omits).
type Op uint8

const (
	OpInitializeMint                Op = 0
	OpUpdateMetadata                Op = 1
	OpInitializeVerificationConfig  Op = 2
	OpUpdateVerificationConfig      Op = 3
	OpTrimVerificationConfig        Op = 4
	OpVerify                        Op = 5
	OpMint                          Op = 6
	OpBurn                          Op = 7
	OpPause                         Op = 8
	OpResume                        Op = 9
	OpFreeze                        Op = 10
	OpThaw                          Op = 11
	OpTransfer                      Op = 12
	OpCreateRateAccount             Op = 13
	OpUpdateRateAccount             Op = 14
	OpCloseRateAccount              Op = 15
	OpSplit                         Op = 16
	OpConvert                       Op = 17
	OpCreateDistributionEscrow      Op = 18
	OpClaimDistribution             Op = 19
	OpCreateProof                   Op = 20
	OpUpdateProof                   Op = 21
	OpCloseActionReceipt            Op = 22
	OpCloseClaimReceipt             Op = 23
)

// String names an Op for error messages and logs.
func (o Op) String() string {
	switch o {
	case OpInitializeMint:
		return "InitializeMint"
	case OpUpdateMetadata:
		return "UpdateMetadata"
	case OpInitializeVerificationConfig:
		return "InitializeVerificationConfig"
	case OpUpdateVerificationConfig:
		return "UpdateVerificationConfig"
	case OpTrimVerificationConfig:
		return "TrimVerificationConfig"
	case OpVerify:
		return "Verify"
	case OpMint:
		return "Mint"
	case OpBurn:
		return "Burn"
	case OpPause:
		return "Pause"
	case OpResume:
		return "Resume"
	case OpFreeze:
		return "Freeze"
	case OpThaw:
		return "Thaw"
	case OpTransfer:
		return "Transfer"
	case OpCreateRateAccount:
		return "CreateRateAccount"
	case OpUpdateRateAccount:
		return "UpdateRateAccount"
	case OpCloseRateAccount:
		return "CloseRateAccount"
	case OpSplit:
		return "Split"
	case OpConvert:
		return "Convert"
	case OpCreateDistributionEscrow:
		return "CreateDistributionEscrow"
	case OpClaimDistribution:
		return "ClaimDistribution"
	case OpCreateProof:
		return "CreateProof"
	case OpUpdateProof:
		return "UpdateProof"
	case OpCloseActionReceipt:
		return "CloseActionReceipt"
	case OpCloseClaimReceipt:
		return "CloseClaimReceipt"
	default:
		return "Unknown"
	}
}
