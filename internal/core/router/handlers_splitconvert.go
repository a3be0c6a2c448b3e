package router

import (
	"context"

	"github.com/vtoken-labs/vtoken/internal/codec/ixcodec"
)

// registerSplitConvertOps wires the Split and Convert corporate-action
// engines. Both must clear the Verification Dispatcher before mutating any
// balance (spec.md §4.7, "Both must pass the dispatcher before mutating
// balances") and each reads its governing Rate Account before settling.
func (r *Router) registerSplitConvertOps() {
	r.register(OpSplit, r.handleSplit)
	r.register(OpConvert, r.handleConvert)
}

func (r *Router) handleSplit(ctx context.Context, req Request) (Result, error) {
	args, err := ixcodec.DecodeActionIDArgs(req.Data)
	if err != nil {
		return Result{}, err
	}
	if err := r.Dispatcher.DispatchByStrategy(ctx, req.strategyRequest(req.Data)); err != nil {
		return Result{}, err
	}
	acct, err := r.Rates.Load(ctx, args.ActionID, req.Mint, req.Mint)
	if err != nil {
		return Result{}, err
	}
	split, err := r.SplitConvert.Split(ctx, req.Mint, req.Creator, req.TokenAccount, args.ActionID, acct.Rate)
	if err != nil {
		return Result{}, err
	}
	return Result{Split: split}, nil
}

func (r *Router) handleConvert(ctx context.Context, req Request) (Result, error) {
	args, err := ixcodec.DecodeConvertArgs(req.Data)
	if err != nil {
		return Result{}, err
	}
	if err := r.Dispatcher.DispatchByStrategy(ctx, req.strategyRequestForMint(req.MintFrom, uint8(req.Op), req.Data)); err != nil {
		return Result{}, err
	}
	acct, err := r.Rates.Load(ctx, args.ActionID, req.MintFrom, req.MintTo)
	if err != nil {
		return Result{}, err
	}
	convert, err := r.SplitConvert.Convert(ctx, req.MintFrom, req.MintTo, req.CreatorTo, req.Src, req.Dst, args.ActionID, acct.Rate, args.AmountToConvert)
	if err != nil {
		return Result{}, err
	}
	return Result{Convert: convert}, nil
}
