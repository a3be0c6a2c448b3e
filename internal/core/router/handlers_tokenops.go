package router

import (
	"context"

	"github.com/vtoken-labs/vtoken/internal/codec/ixcodec"
)

// registerTokenOps wires the thin base-runtime wrapper ops to
// r.TokenOps, each gated by the Verification Dispatcher under that op's
// own discriminator before any mutation runs.
func (r *Router) registerTokenOps() {
	r.register(OpUpdateMetadata, r.handleUpdateMetadata)
	r.register(OpMint, r.handleMint)
	r.register(OpBurn, r.handleBurn)
	r.register(OpPause, r.handlePause)
	r.register(OpResume, r.handleResume)
	r.register(OpFreeze, r.handleFreeze)
	r.register(OpThaw, r.handleThaw)
	r.register(OpTransfer, r.handleTransfer)
}

func (r *Router) handleUpdateMetadata(ctx context.Context, req Request) (Result, error) {
	args, err := ixcodec.DecodeUpdateMetadataArgs(req.Data)
	if err != nil {
		return Result{}, err
	}
	sreq := req.strategyRequest(req.Data)
	if err := r.TokenOps.UpdateMetadata(ctx, sreq, req.Mint, req.Authority, args.Field, args.Value); err != nil {
		return Result{}, err
	}
	return Result{}, nil
}

func (r *Router) handleMint(ctx context.Context, req Request) (Result, error) {
	args, err := ixcodec.DecodeAmountArgs(req.Data)
	if err != nil {
		return Result{}, err
	}
	sreq := req.strategyRequest(req.Data)
	if err := r.TokenOps.Mint(ctx, sreq, req.Mint, req.Creator, req.Dest, args.Amount); err != nil {
		return Result{}, err
	}
	return Result{}, nil
}

func (r *Router) handleBurn(ctx context.Context, req Request) (Result, error) {
	args, err := ixcodec.DecodeAmountArgs(req.Data)
	if err != nil {
		return Result{}, err
	}
	sreq := req.strategyRequest(req.Data)
	if err := r.TokenOps.Burn(ctx, sreq, req.Mint, req.Src, args.Amount); err != nil {
		return Result{}, err
	}
	return Result{}, nil
}

func (r *Router) handlePause(ctx context.Context, req Request) (Result, error) {
	sreq := req.strategyRequest(req.Data)
	if err := r.TokenOps.Pause(ctx, sreq, req.Mint); err != nil {
		return Result{}, err
	}
	return Result{}, nil
}

func (r *Router) handleResume(ctx context.Context, req Request) (Result, error) {
	sreq := req.strategyRequest(req.Data)
	if err := r.TokenOps.Resume(ctx, sreq, req.Mint); err != nil {
		return Result{}, err
	}
	return Result{}, nil
}

func (r *Router) handleFreeze(ctx context.Context, req Request) (Result, error) {
	sreq := req.strategyRequest(req.Data)
	if err := r.TokenOps.Freeze(ctx, sreq, req.Mint, req.Account); err != nil {
		return Result{}, err
	}
	return Result{}, nil
}

func (r *Router) handleThaw(ctx context.Context, req Request) (Result, error) {
	sreq := req.strategyRequest(req.Data)
	if err := r.TokenOps.Thaw(ctx, sreq, req.Mint, req.Account); err != nil {
		return Result{}, err
	}
	return Result{}, nil
}

func (r *Router) handleTransfer(ctx context.Context, req Request) (Result, error) {
	args, err := ixcodec.DecodeAmountArgs(req.Data)
	if err != nil {
		return Result{}, err
	}
	sreq := req.strategyRequest(req.Data)
	if err := r.TokenOps.Transfer(ctx, sreq, req.Mint, req.Src, req.Dst, req.Authority, args.Amount); err != nil {
		return Result{}, err
	}
	return Result{}, nil
}
