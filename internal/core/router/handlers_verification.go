package router

import (
	"context"

	"github.com/vtoken-labs/vtoken/internal/codec/ixcodec"
)

// registerVerificationOps wires InitializeMint, the Verification Config
// Store's Initialize/Update/Trim, and the standalone Verify op that exposes
// verify_by_strategy directly (spec.md §6's VerifyArgs wraps an inner op
// discriminator + its own op_args, letting a caller probe dispatch without
// executing a privileged mutation).
func (r *Router) registerVerificationOps() {
	r.register(OpInitializeMint, r.handleInitializeMint)
	r.register(OpInitializeVerificationConfig, r.handleInitializeVerificationConfig)
	r.register(OpUpdateVerificationConfig, r.handleUpdateVerificationConfig)
	r.register(OpTrimVerificationConfig, r.handleTrimVerificationConfig)
	r.register(OpVerify, r.handleVerify)
}

func (r *Router) handleInitializeMint(ctx context.Context, req Request) (Result, error) {
	rec, err := r.MintAuthority.Initialize(ctx, req.Mint, req.Creator)
	if err != nil {
		return Result{}, err
	}
	return Result{MintAuthority: rec}, nil
}

func (r *Router) handleInitializeVerificationConfig(ctx context.Context, req Request) (Result, error) {
	args, err := ixcodec.DecodeInitializeVerificationConfigArgs(req.Data)
	if err != nil {
		return Result{}, err
	}
	if err := r.Dispatcher.DispatchByStrategy(ctx, req.strategyRequest(req.Data)); err != nil {
		return Result{}, err
	}
	cfg, err := r.Verification.Initialize(ctx, req.Mint, args.OpDiscriminator, args.CPIMode, args.Programs, req.HookProgramID)
	if err != nil {
		return Result{}, err
	}
	return Result{VerificationConfig: cfg}, nil
}

func (r *Router) handleUpdateVerificationConfig(ctx context.Context, req Request) (Result, error) {
	args, err := ixcodec.DecodeUpdateVerificationConfigArgs(req.Data)
	if err != nil {
		return Result{}, err
	}
	if err := r.Dispatcher.DispatchByStrategy(ctx, req.strategyRequest(req.Data)); err != nil {
		return Result{}, err
	}
	cfg, delta, err := r.Verification.Update(ctx, req.Mint, args.OpDiscriminator, args.CPIMode, args.Offset, args.Programs, req.HookProgramID)
	if err != nil {
		return Result{}, err
	}
	return Result{VerificationConfig: cfg, RentDelta: delta}, nil
}

func (r *Router) handleTrimVerificationConfig(ctx context.Context, req Request) (Result, error) {
	args, err := ixcodec.DecodeTrimVerificationConfigArgs(req.Data)
	if err != nil {
		return Result{}, err
	}
	if err := r.Dispatcher.DispatchByStrategy(ctx, req.strategyRequest(req.Data)); err != nil {
		return Result{}, err
	}
	closed, refund, err := r.Verification.Trim(ctx, req.Mint, args.OpDiscriminator, args.Size, args.Close, req.HookProgramID)
	if err != nil {
		return Result{}, err
	}
	return Result{Closed: closed, RentDelta: refund, RentRecipient: req.Recipient}, nil
}

func (r *Router) handleVerify(ctx context.Context, req Request) (Result, error) {
	args, err := ixcodec.DecodeVerifyArgs(req.Data)
	if err != nil {
		return Result{}, err
	}
	if err := r.Dispatcher.DispatchByStrategy(ctx, req.strategyRequestFor(args.InnerOp, args.InnerData)); err != nil {
		return Result{}, err
	}
	return Result{}, nil
}
