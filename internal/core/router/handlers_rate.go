package router

import (
	"context"

	"github.com/vtoken-labs/vtoken/internal/codec/ixcodec"
	"github.com/vtoken-labs/vtoken/internal/core/rate"
)

// registerRateOps wires Rate Account creation, update, and close. Each op
// is gated through the Verification Dispatcher's MintAuthority strategy
// keyed by MintFrom before it mutates anything, matching spec.md §4.5's
// verify_by_strategy over rate CRUD and §5's "Rate is mutated only under
// the same authority" as the mint it prices from.
func (r *Router) registerRateOps() {
	r.register(OpCreateRateAccount, r.handleCreateRateAccount)
	r.register(OpUpdateRateAccount, r.handleUpdateRateAccount)
	r.register(OpCloseRateAccount, r.handleCloseRateAccount)
}

func (r *Router) handleCreateRateAccount(ctx context.Context, req Request) (Result, error) {
	args, err := ixcodec.DecodeRateArgs(req.Data)
	if err != nil {
		return Result{}, err
	}
	if err := r.Dispatcher.DispatchByStrategy(ctx, req.strategyRequestForMint(req.MintFrom, uint8(req.Op), req.Data)); err != nil {
		return Result{}, err
	}
	rt, err := rate.New(args.Num, args.Den, rate.Rounding(args.Rounding))
	if err != nil {
		return Result{}, err
	}
	acct, err := r.Rates.Create(ctx, args.ActionID, req.MintFrom, req.MintTo, rt)
	if err != nil {
		return Result{}, err
	}
	return Result{RateAccount: acct}, nil
}

func (r *Router) handleUpdateRateAccount(ctx context.Context, req Request) (Result, error) {
	args, err := ixcodec.DecodeRateArgs(req.Data)
	if err != nil {
		return Result{}, err
	}
	if err := r.Dispatcher.DispatchByStrategy(ctx, req.strategyRequestForMint(req.MintFrom, uint8(req.Op), req.Data)); err != nil {
		return Result{}, err
	}
	rt, err := rate.New(args.Num, args.Den, rate.Rounding(args.Rounding))
	if err != nil {
		return Result{}, err
	}
	acct, err := r.Rates.Update(ctx, args.ActionID, req.MintFrom, req.MintTo, rt)
	if err != nil {
		return Result{}, err
	}
	return Result{RateAccount: acct}, nil
}

func (r *Router) handleCloseRateAccount(ctx context.Context, req Request) (Result, error) {
	args, err := ixcodec.DecodeActionIDArgs(req.Data)
	if err != nil {
		return Result{}, err
	}
	if err := r.Dispatcher.DispatchByStrategy(ctx, req.strategyRequestForMint(req.MintFrom, uint8(req.Op), req.Data)); err != nil {
		return Result{}, err
	}
	refund, err := r.Rates.Close(ctx, args.ActionID, req.MintFrom, req.MintTo)
	if err != nil {
		return Result{}, err
	}
	return Result{Closed: true, RentDelta: refund, RentRecipient: req.Recipient}, nil
}
