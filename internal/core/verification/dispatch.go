package verification

import (
	"bytes"
	"context"

	"github.com/cockroachdb/errors"

	"github.com/vtoken-labs/vtoken/internal/accounts"
	"github.com/vtoken-labs/vtoken/internal/core/pda"
	"github.com/vtoken-labs/vtoken/internal/core/tokenruntime"
	"github.com/vtoken-labs/vtoken/internal/crypto"
)

// Verifier invokes an external verifier program synchronously, the CPI-mode
// collaborator (spec.md §4.5). A non-nil error is any non-success return.
type Verifier interface {
	Invoke(ctx context.Context, program crypto.PublicKey, data []byte, accounts []crypto.PublicKey) error
}

// Instruction is one entry of the current transaction's instruction
// history, the unit introspection mode scans.
type Instruction struct {
	Program  crypto.PublicKey
	Data     []byte
	Accounts []crypto.PublicKey
}

var (
	// ErrVerificationProgramNotFound reports a configured verifier absent
	// from the expected mode (no successful CPI, or no matching prior
	// instruction in introspection mode).
	ErrVerificationProgramNotFound = errors.New("verification: verification program not found")

	// ErrAccountIntersectionMismatch reports a prior instruction matched by
	// program+data but whose accounts don't line up with the op's.
	ErrAccountIntersectionMismatch = errors.New("verification: account intersection mismatch")

	// ErrInvalidAccountData reports a config-slot discriminator that is
	// neither VerificationConfig nor MintAuthority.
	ErrInvalidAccountData = errors.New("verification: invalid account data in config slot")

	// ErrMintCreatorMismatch reports a MintAuthority-strategy signer that
	// does not match the mint's original creator.
	ErrMintCreatorMismatch = errors.New("verification: signer does not match mint creator")

	// ErrConfigNotOwnedByProgram reports a config-slot account not owned
	// by this program.
	ErrConfigNotOwnedByProgram = errors.New("verification: config account not owned by this program")

	// ErrWrongInstructionsSysvar reports an introspection-mode call whose
	// supplied instructions-sysvar account does not match the canonical id.
	ErrWrongInstructionsSysvar = errors.New("verification: wrong instructions sysvar account")

	// ErrNoCPIVerifier reports a CPI-mode config reached through a
	// Dispatcher with no Verifier wired. The embedding deployment supplies
	// the real cross-program caller; without one, CPI-mode configs must
	// fail closed rather than pass.
	ErrNoCPIVerifier = errors.New("verification: no CPI verifier wired")
)

// InstructionsSysvarID is the canonical address of the instructions
// sysvar account introspection mode reads prior instructions from.
var InstructionsSysvarID = wellKnown("sysvar:instructions")

// SystemProgramID is the well-known system program address stripped from
// any leading run of accounts during account-intersection comparison.
var SystemProgramID = wellKnown("system_program")

func wellKnown(label string) crypto.PublicKey {
	h := crypto.Sha256([]byte(label))
	pk, _ := crypto.NewPublicKey(h[:])
	return pk
}

func isSystemOrSysvar(pk crypto.PublicKey) bool {
	return pk == SystemProgramID || pk == InstructionsSysvarID
}

func stripLeadingSystemAccounts(accs []crypto.PublicKey) []crypto.PublicKey {
	i := 0
	for i < len(accs) && isSystemOrSysvar(accs[i]) {
		i++
	}
	return accs[i:]
}

// accountsIntersect reports whether op's remaining accounts equal prior's,
// in order, once a leading run of system/sysvar accounts is stripped from
// each side (spec.md §9's "ordered equality modulo a leading run of
// system/sysvar accounts").
func accountsIntersect(prior, op []crypto.PublicKey) bool {
	p := stripLeadingSystemAccounts(prior)
	o := stripLeadingSystemAccounts(op)
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// Dispatcher gates a privileged op behind its configured verifier list.
// Runtime, when wired, backs the "mint account is owned by the base token
// runtime" precondition every dispatch re-checks; a nil Runtime skips the
// check for callers that have already authenticated the mint themselves.
type Dispatcher struct {
	Program  pda.Program
	Verifier Verifier
	Runtime  tokenruntime.Runtime
}

func instructionData(opDiscriminator uint8, opData []byte) []byte {
	data := make([]byte, 0, 1+len(opData))
	data = append(data, opDiscriminator)
	data = append(data, opData...)
	return data
}

// VerifyCPI invokes every program configured in cfg, in order, with
// instruction data [op_discriminator] || op_instruction_data and the op's
// own remaining accounts. Any non-success invocation fails the op.
func (d *Dispatcher) VerifyCPI(ctx context.Context, cfg accounts.VerificationConfig, opDiscriminator uint8, opData []byte, opAccounts []crypto.PublicKey) error {
	if d.Verifier == nil {
		return ErrNoCPIVerifier
	}
	data := instructionData(opDiscriminator, opData)
	for _, program := range cfg.Programs {
		if err := d.Verifier.Invoke(ctx, program, data, opAccounts); err != nil {
			return errors.Wrapf(ErrVerificationProgramNotFound, "cpi call to verifier failed: %v", err)
		}
	}
	return nil
}

// VerifyIntrospection walks prior from its end toward its start, matching
// each configured program against an unmatched prior instruction with
// identical (program, data), as a multiset (k copies of program P require
// k distinct matching prior instructions). Once an instruction is matched
// its accounts must intersect the op's, or the whole call fails.
func (d *Dispatcher) VerifyIntrospection(cfg accounts.VerificationConfig, opDiscriminator uint8, opData []byte, opAccounts []crypto.PublicKey, prior []Instruction) error {
	wantData := instructionData(opDiscriminator, opData)
	unmatched := append([]crypto.PublicKey{}, cfg.Programs...)

	for i := len(prior) - 1; i >= 0 && len(unmatched) > 0; i-- {
		instr := prior[i]
		slot := -1
		for j, program := range unmatched {
			if program == instr.Program {
				slot = j
				break
			}
		}
		if slot == -1 || !bytes.Equal(instr.Data, wantData) {
			continue
		}
		if !accountsIntersect(instr.Accounts, opAccounts) {
			return ErrAccountIntersectionMismatch
		}
		unmatched = append(unmatched[:slot], unmatched[slot+1:]...)
	}

	if len(unmatched) > 0 {
		return ErrVerificationProgramNotFound
	}
	return nil
}

// StrategyRequest carries everything verify_by_strategy (spec.md §4.5)
// needs to branch on the discriminator at account-slot #1 and dispatch
// accordingly.
type StrategyRequest struct {
	Mint crypto.PublicKey

	// ConfigSlotOwner is the program that owns the account occupying
	// slot #1; it must equal Dispatcher.Program.ProgramID.
	ConfigSlotOwner crypto.PublicKey
	// ConfigSlotData is the raw bytes of that account.
	ConfigSlotData []byte

	// Signer is the adjacent account at slot #2, checked against the
	// mint's stored creator under the MintAuthority strategy.
	Signer crypto.PublicKey

	OpDiscriminator uint8
	OpData          []byte
	OpAccounts      []crypto.PublicKey

	// CPIMode selects CPI vs introspection when the slot holds a
	// VerificationConfig; ignored under the MintAuthority strategy.
	CPIMode bool
	// InstructionsSysvar, when set, is checked against InstructionsSysvarID
	// (required by introspection mode).
	InstructionsSysvar *crypto.PublicKey
	PriorInstructions  []Instruction
}

// DispatchByStrategy implements spec.md §4.5's verify_by_strategy: the
// config slot may hold either a VerificationConfig (gated by CPI or
// introspection mode, per the account's own CPIMode flag) or a
// MintAuthority record (gated by a direct signer-equals-creator check
// plus bump re-derivation).
func (d *Dispatcher) DispatchByStrategy(ctx context.Context, req StrategyRequest) error {
	if req.ConfigSlotOwner != d.Program.ProgramID {
		return ErrConfigNotOwnedByProgram
	}
	if d.Runtime != nil {
		if _, err := d.Runtime.MintOwner(ctx, req.Mint); err != nil {
			return err
		}
	}

	discriminator, err := accounts.PeekDiscriminator(req.ConfigSlotData)
	if err != nil {
		return err
	}

	switch discriminator {
	case accounts.DiscriminatorVerificationConfig:
		cfg, err := accounts.DecodeVerificationConfig(req.ConfigSlotData)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if cfg.CPIMode {
			return d.VerifyCPI(ctx, cfg, req.OpDiscriminator, req.OpData, req.OpAccounts)
		}
		if req.InstructionsSysvar == nil || *req.InstructionsSysvar != InstructionsSysvarID {
			return ErrWrongInstructionsSysvar
		}
		return d.VerifyIntrospection(cfg, req.OpDiscriminator, req.OpData, req.OpAccounts, req.PriorInstructions)

	case accounts.DiscriminatorMintAuthority:
		rec, err := accounts.DecodeMintAuthorityRecord(req.ConfigSlotData)
		if err != nil {
			return err
		}
		if rec.Mint != req.Mint {
			return ErrInvalidAccountData
		}
		if rec.MintCreator != req.Signer {
			return ErrMintCreatorMismatch
		}
		mintAuthorityPDA := d.Program.MintAuthority(req.Mint, req.Signer)
		if rec.Bump != mintAuthorityPDA.Bump {
			return pda.ErrBumpMismatch
		}
		return nil

	default:
		return ErrInvalidAccountData
	}
}
