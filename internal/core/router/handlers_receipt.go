package router

import (
	"context"

	"github.com/vtoken-labs/vtoken/internal/codec/ixcodec"
	"github.com/vtoken-labs/vtoken/internal/core/merkle"
)

// registerReceiptOps wires rent reclamation for settled Action and Claim
// receipts. Neither op touches the receipt's at-most-once guarantee: by
// the time a receipt is eligible for closing, the action it marks has
// already executed and the only remaining state is the account's rent.
func (r *Router) registerReceiptOps() {
	r.register(OpCloseActionReceipt, r.handleCloseActionReceipt)
	r.register(OpCloseClaimReceipt, r.handleCloseClaimReceipt)
}

func (r *Router) handleCloseActionReceipt(ctx context.Context, req Request) (Result, error) {
	args, err := ixcodec.DecodeActionIDArgs(req.Data)
	if err != nil {
		return Result{}, err
	}
	refund, err := r.Receipts.CloseActionReceipt(ctx, req.Mint, args.ActionID)
	if err != nil {
		return Result{}, err
	}
	return Result{Closed: true, RentDelta: refund, RentRecipient: req.Recipient}, nil
}

func (r *Router) handleCloseClaimReceipt(ctx context.Context, req Request) (Result, error) {
	args, err := ixcodec.DecodeCloseClaimReceiptArgs(req.Data)
	if err != nil {
		return Result{}, err
	}
	var proof []merkle.Node
	if args.ProofPresent {
		proof = nodesToMerkle(args.Proof)
	}
	refund, err := r.Receipts.CloseClaimReceipt(ctx, req.Mint, req.EligibleTokenAccount, args.ActionID, proof)
	if err != nil {
		return Result{}, err
	}
	return Result{Closed: true, RentDelta: refund, RentRecipient: req.Recipient}, nil
}
