// Package splitconvert implements the Split and Convert corporate-action
// engines (C7): rate-gated mint/burn over a single mint, and rate-gated
// burn-from-A/mint-to-B across two mints, each settled through the base
// token runtime and finalized by an at-most-once Action Receipt.
// Grounded in the teacher's fee/transfer-fee settlement helpers in
// internal/core/tx, which also compute a delta then route to mint-or-burn
// before finalizing ledger state.
package splitconvert

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/vtoken-labs/vtoken/internal/core/pda"
	"github.com/vtoken-labs/vtoken/internal/core/rate"
	"github.com/vtoken-labs/vtoken/internal/core/receipt"
	"github.com/vtoken-labs/vtoken/internal/core/tokenruntime"
	"github.com/vtoken-labs/vtoken/internal/crypto"
	"github.com/vtoken-labs/vtoken/internal/storage/accountstore"
)

// ErrEmptyBalance reports a Split attempted against a zero current balance,
// which spec.md §4.7 calls "no meaningful split".
var ErrEmptyBalance = errors.New("splitconvert: split requires a non-zero current balance")

// ErrZeroConvertAmount reports a Convert whose computed amount_to is zero.
var ErrZeroConvertAmount = errors.New("splitconvert: convert would mint a zero amount")

// Engine wires Split/Convert to the base token runtime, the PDA deriver,
// and the receipt store that finalizes each action.
type Engine struct {
	Program  pda.Program
	Runtime  tokenruntime.Runtime
	Receipts *receipt.Store
}

// SplitResult reports which side of the mint/burn fork fired.
type SplitResult struct {
	Minted     uint64
	Burned     uint64
	NewBalance uint64
}

// Split re-rates tokenAccount's balance on mint to rate.Evaluate(balance):
// minting the shortfall via the MintAuthority PDA when the target exceeds
// the current balance, burning the excess via the PermanentDelegate PDA
// otherwise. delta == balance still creates the receipt; balance == 0 fails
// outright.
func (e *Engine) Split(ctx context.Context, mint, creator, tokenAccount crypto.PublicKey, actionID uint64, r rate.Rate) (SplitResult, error) {
	balance, err := e.Runtime.BalanceOf(ctx, mint, tokenAccount)
	if err != nil {
		return SplitResult{}, err
	}
	if balance == 0 {
		return SplitResult{}, ErrEmptyBalance
	}

	delta, err := r.Evaluate(balance)
	if err != nil {
		return SplitResult{}, err
	}

	var result SplitResult
	switch {
	case delta > balance:
		mintAmt := delta - balance
		mintAuthority := e.Program.MintAuthority(mint, creator).Address
		if err := e.Runtime.MintTo(ctx, mint, tokenAccount, mintAuthority, mintAmt); err != nil {
			return SplitResult{}, err
		}
		result.Minted = mintAmt
	case delta < balance:
		burnAmt := balance - delta
		permDelegate := e.Program.PermanentDelegate(mint).Address
		if err := e.Runtime.BurnFrom(ctx, mint, tokenAccount, permDelegate, burnAmt); err != nil {
			return SplitResult{}, err
		}
		result.Burned = burnAmt
	}

	if _, err := e.Receipts.CreateActionReceipt(ctx, mint, actionID); err != nil {
		return SplitResult{}, err
	}

	newBalance, err := e.Runtime.BalanceOf(ctx, mint, tokenAccount)
	if err != nil {
		return SplitResult{}, err
	}
	result.NewBalance = newBalance
	return result, nil
}

// ConvertResult reports the burned/minted amounts of a Convert.
type ConvertResult struct {
	AmountFrom uint64
	AmountTo   uint64
}

// Convert burns amountFrom of mintFrom from srcAccount via mintFrom's
// PermanentDelegate, converts it through r across the two mints' decimals,
// and mints the result into destAccount of mintTo via mintTo's
// MintAuthority. The receipt is keyed by mintTo, per spec.md §4.7; a
// replayed action fails with accountstore.ErrAlreadyExists before any burn.
func (e *Engine) Convert(ctx context.Context, mintFrom, mintTo, creatorTo, srcAccount, destAccount crypto.PublicKey, actionID uint64, r rate.Rate, amountFrom uint64) (ConvertResult, error) {
	decFrom, err := e.Runtime.Decimals(ctx, mintFrom)
	if err != nil {
		return ConvertResult{}, err
	}
	decTo, err := e.Runtime.Decimals(ctx, mintTo)
	if err != nil {
		return ConvertResult{}, err
	}

	amountTo, err := r.Convert(amountFrom, decFrom, decTo)
	if err != nil {
		return ConvertResult{}, err
	}
	if amountTo == 0 {
		return ConvertResult{}, ErrZeroConvertAmount
	}

	done, err := e.Receipts.ActionReceiptExists(ctx, mintTo, actionID)
	if err != nil {
		return ConvertResult{}, err
	}
	if done {
		return ConvertResult{}, accountstore.ErrAlreadyExists
	}

	permDelegateFrom := e.Program.PermanentDelegate(mintFrom).Address
	if err := e.Runtime.BurnFrom(ctx, mintFrom, srcAccount, permDelegateFrom, amountFrom); err != nil {
		return ConvertResult{}, err
	}

	mintAuthorityTo := e.Program.MintAuthority(mintTo, creatorTo).Address
	if err := e.Runtime.MintTo(ctx, mintTo, destAccount, mintAuthorityTo, amountTo); err != nil {
		return ConvertResult{}, err
	}

	if _, err := e.Receipts.CreateActionReceipt(ctx, mintTo, actionID); err != nil {
		return ConvertResult{}, err
	}

	return ConvertResult{AmountFrom: amountFrom, AmountTo: amountTo}, nil
}
