package router

import (
	"context"

	"github.com/vtoken-labs/vtoken/internal/codec/ixcodec"
	"github.com/vtoken-labs/vtoken/internal/core/distribution"
	"github.com/vtoken-labs/vtoken/internal/core/merkle"
)

// registerDistributionOps wires escrow creation, claims, and the optional
// persisted Proof account CRUD Claims may reference in place of an inline
// merkle path.
func (r *Router) registerDistributionOps() {
	r.register(OpCreateDistributionEscrow, r.handleCreateDistributionEscrow)
	r.register(OpClaimDistribution, r.handleClaimDistribution)
	r.register(OpCreateProof, r.handleCreateProof)
	r.register(OpUpdateProof, r.handleUpdateProof)
}

func nodesToMerkle(in [][32]byte) []merkle.Node {
	out := make([]merkle.Node, len(in))
	for i, n := range in {
		out[i] = merkle.Node(n)
	}
	return out
}

func (r *Router) handleCreateDistributionEscrow(ctx context.Context, req Request) (Result, error) {
	args, err := ixcodec.DecodeCreateDistributionEscrowArgs(req.Data)
	if err != nil {
		return Result{}, err
	}
	pool, err := r.Distribution.CreateEscrow(ctx, req.Mint, args.ActionID, merkle.Node(args.MerkleRoot))
	if err != nil {
		return Result{}, err
	}
	return Result{EscrowPool: pool}, nil
}

func distributionClaimInput(args ixcodec.ClaimDistributionArgs, req Request) distribution.ClaimInput {
	in := distribution.ClaimInput{
		Mint:                 req.Mint,
		ActionID:             args.ActionID,
		Amount:               args.Amount,
		MerkleRoot:           merkle.Node(args.Root),
		LeafIndex:            args.LeafIndex,
		EligibleTokenAccount: req.EligibleTokenAccount,
		EscrowTokenAccount:   req.EscrowTokenAccount,
		ProofAccount:         req.ProofAccountAddress,
	}
	if args.ProofPresent {
		in.MerkleProof = nodesToMerkle(args.Proof)
	}
	return in
}

func (r *Router) handleClaimDistribution(ctx context.Context, req Request) (Result, error) {
	args, err := ixcodec.DecodeClaimDistributionArgs(req.Data)
	if err != nil {
		return Result{}, err
	}

	in := distributionClaimInput(args, req)
	claim, err := r.Distribution.Claim(ctx, in)
	if err != nil {
		return Result{}, err
	}
	return Result{Claim: claim}, nil
}

func (r *Router) handleCreateProof(ctx context.Context, req Request) (Result, error) {
	args, err := ixcodec.DecodeCreateProofArgs(req.Data)
	if err != nil {
		return Result{}, err
	}
	proof, err := r.Distribution.CreateProof(ctx, req.EligibleTokenAccount, args.ActionID, nodesToMerkle(args.Nodes))
	if err != nil {
		return Result{}, err
	}
	return Result{Proof: proof}, nil
}

func (r *Router) handleUpdateProof(ctx context.Context, req Request) (Result, error) {
	args, err := ixcodec.DecodeUpdateProofArgs(req.Data)
	if err != nil {
		return Result{}, err
	}
	proof, delta, err := r.Distribution.UpdateProof(ctx, req.EligibleTokenAccount, args.ActionID, args.Offset, merkle.Node(args.Data))
	if err != nil {
		return Result{}, err
	}
	return Result{Proof: proof, RentDelta: delta}, nil
}
