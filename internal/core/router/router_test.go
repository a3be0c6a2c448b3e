package router

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vtoken-labs/vtoken/internal/accounts"
	"github.com/vtoken-labs/vtoken/internal/codec/ixcodec"
	"github.com/vtoken-labs/vtoken/internal/core/distribution"
	"github.com/vtoken-labs/vtoken/internal/core/merkle"
	"github.com/vtoken-labs/vtoken/internal/core/mintauthority"
	"github.com/vtoken-labs/vtoken/internal/core/pda"
	"github.com/vtoken-labs/vtoken/internal/core/rate"
	"github.com/vtoken-labs/vtoken/internal/core/receipt"
	"github.com/vtoken-labs/vtoken/internal/core/splitconvert"
	"github.com/vtoken-labs/vtoken/internal/core/tokenops"
	"github.com/vtoken-labs/vtoken/internal/core/tokenruntime"
	"github.com/vtoken-labs/vtoken/internal/core/transferhook"
	"github.com/vtoken-labs/vtoken/internal/core/verification"
	"github.com/vtoken-labs/vtoken/internal/crypto"
	"github.com/vtoken-labs/vtoken/internal/storage/accountstore"
)

func pk(b byte) crypto.PublicKey {
	var k crypto.PublicKey
	k[0] = b
	return k
}

type harness struct {
	router  *Router
	runtime *tokenruntime.MemoryRuntime
	hook    *transferhook.MemoryHook
	program pda.Program
	rent    accountstore.RentLedger
}

func newHarness() *harness {
	programID := pk(0xAA)
	program := pda.Program{ProgramID: programID}
	accts := accountstore.NewMemoryStore()
	rt := tokenruntime.NewMemoryRuntime(pk(0xFF))
	hook := transferhook.NewMemoryHook()
	rent := accountstore.RentLedger{LamportsPerByte: 5}

	mintAuth := &mintauthority.Store{Accounts: accts, Program: program}
	verif := &verification.Store{Accounts: accts, Program: program, Runtime: rt, Hook: hook, Rent: rent}
	dispatcher := &verification.Dispatcher{Program: program, Runtime: rt}
	rates := &rate.Store{Accounts: accts, Program: program, Rent: rent}
	receipts := &receipt.Store{Accounts: accts, Program: program, Rent: rent}
	splitConvert := &splitconvert.Engine{Program: program, Runtime: rt, Receipts: receipts}
	distributionEngine := &distribution.Engine{Accounts: accts, Program: program, Runtime: rt, Receipts: receipts, Rent: rent}
	tokenOps := &tokenops.Engine{Program: program, Runtime: rt, Dispatcher: dispatcher}

	r := New(program, mintAuth, verif, dispatcher, rates, receipts, splitConvert, distributionEngine, tokenOps)
	return &harness{router: r, runtime: rt, hook: hook, program: program, rent: rent}
}

// mintAuthorityRequest builds a Request whose account-slot #1 holds a
// MintAuthority record for (mint, creator), the "original creator signs"
// strategy exercised throughout these tests.
func (h *harness) mintAuthorityRequest(mint, creator crypto.PublicKey) Request {
	authPDA := h.program.MintAuthority(mint, creator)
	rec := accounts.MintAuthorityRecord{Mint: mint, MintCreator: creator, Bump: authPDA.Bump}
	return Request{
		Mint:            mint,
		ConfigSlotOwner: h.program.ProgramID,
		ConfigSlotData:  rec.Encode(),
		Signer:          creator,
		Creator:         creator,
	}
}

func TestInitializeMintAndMintUnderMintAuthorityStrategy(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	mint, creator, dest := pk(1), pk(2), pk(3)
	h.runtime.RegisterMint(mint, 6)

	res, err := h.router.Route(ctx, []byte{byte(OpInitializeMint)}, Request{Mint: mint, Creator: creator})
	require.NoError(t, err)
	require.Equal(t, mint, res.MintAuthority.Mint)
	require.Equal(t, creator, res.MintAuthority.MintCreator)

	mintReq := h.mintAuthorityRequest(mint, creator)
	mintReq.Dest = dest
	args := ixcodec.AmountArgs{Amount: 1_000}
	data := append([]byte{byte(OpMint)}, args.Encode()...)

	_, err = h.router.Route(ctx, data, mintReq)
	require.NoError(t, err)

	bal, err := h.runtime.BalanceOf(ctx, mint, dest)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000), bal)
}

func TestMintRejectedWhenSignerIsNotMintCreator(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	mint, creator, impostor, dest := pk(1), pk(2), pk(9), pk(3)
	h.runtime.RegisterMint(mint, 6)

	mintReq := h.mintAuthorityRequest(mint, creator)
	mintReq.Signer = impostor
	mintReq.Dest = dest
	args := ixcodec.AmountArgs{Amount: 500}
	data := append([]byte{byte(OpMint)}, args.Encode()...)

	_, err := h.router.Route(ctx, data, mintReq)
	require.ErrorIs(t, err, verification.ErrMintCreatorMismatch)
}

func TestInitializeUpdateTrimVerificationConfig(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	mint, creator := pk(1), pk(2)
	h.runtime.RegisterMint(mint, 0)
	verifierA, verifierB := pk(0x10), pk(0x11)

	initArgs := ixcodec.InitializeVerificationConfigArgs{OpDiscriminator: uint8(OpMint), CPIMode: true, Programs: []crypto.PublicKey{verifierA}}
	data := append([]byte{byte(OpInitializeVerificationConfig)}, initArgs.Encode()...)
	res, err := h.router.Route(ctx, data, h.mintAuthorityRequest(mint, creator))
	require.NoError(t, err)
	require.Equal(t, []crypto.PublicKey{verifierA}, res.VerificationConfig.Programs)

	updateArgs := ixcodec.UpdateVerificationConfigArgs{OpDiscriminator: uint8(OpMint), CPIMode: true, Offset: 1, Programs: []crypto.PublicKey{verifierB}}
	data = append([]byte{byte(OpUpdateVerificationConfig)}, updateArgs.Encode()...)
	res, err = h.router.Route(ctx, data, h.mintAuthorityRequest(mint, creator))
	require.NoError(t, err)
	require.Equal(t, []crypto.PublicKey{verifierA, verifierB}, res.VerificationConfig.Programs)

	trimArgs := ixcodec.TrimVerificationConfigArgs{OpDiscriminator: uint8(OpMint), Size: 0, Close: true}
	data = append([]byte{byte(OpTrimVerificationConfig)}, trimArgs.Encode()...)
	closeRes, err := h.router.Route(ctx, data, h.mintAuthorityRequest(mint, creator))
	require.NoError(t, err)
	require.True(t, closeRes.Closed)
}

func TestInitializeVerificationConfigRejectedWhenSignerIsNotMintCreator(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	mint, creator, impostor := pk(1), pk(2), pk(9)
	h.runtime.RegisterMint(mint, 0)

	initArgs := ixcodec.InitializeVerificationConfigArgs{OpDiscriminator: uint8(OpMint), CPIMode: true, Programs: []crypto.PublicKey{pk(0x10)}}
	data := append([]byte{byte(OpInitializeVerificationConfig)}, initArgs.Encode()...)
	req := h.mintAuthorityRequest(mint, creator)
	req.Signer = impostor
	_, err := h.router.Route(ctx, data, req)
	require.ErrorIs(t, err, verification.ErrMintCreatorMismatch)
}

func TestMintUnderIntrospectionVerificationConfig(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	mint, creator, dest := pk(1), pk(2), pk(3)
	verifierA, verifierB := pk(0x10), pk(0x11)
	h.runtime.RegisterMint(mint, 6)

	initArgs := ixcodec.InitializeVerificationConfigArgs{OpDiscriminator: uint8(OpMint), CPIMode: false, Programs: []crypto.PublicKey{verifierA, verifierB}}
	data := append([]byte{byte(OpInitializeVerificationConfig)}, initArgs.Encode()...)
	res, err := h.router.Route(ctx, data, h.mintAuthorityRequest(mint, creator))
	require.NoError(t, err)

	args := ixcodec.AmountArgs{Amount: 1_000}
	opData := args.Encode()
	wantData := append([]byte{byte(OpMint)}, opData...)
	opAccounts := []crypto.PublicKey{mint, dest}

	sysvar := verification.InstructionsSysvarID
	mintReq := Request{
		Mint:               mint,
		ConfigSlotOwner:    h.program.ProgramID,
		ConfigSlotData:     res.VerificationConfig.Encode(),
		Creator:            creator,
		Dest:               dest,
		InstructionsSysvar: &sysvar,
		RemainingAccounts:  opAccounts,
		PriorInstructions: []verification.Instruction{
			{Program: verifierA, Data: wantData, Accounts: opAccounts},
			{Program: verifierB, Data: wantData, Accounts: opAccounts},
		},
	}
	_, err = h.router.Route(ctx, append([]byte{byte(OpMint)}, opData...), mintReq)
	require.NoError(t, err)

	bal, err := h.runtime.BalanceOf(ctx, mint, dest)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000), bal)

	// With one verifier's prior call missing, the op is rejected.
	mintReq.PriorInstructions = mintReq.PriorInstructions[:1]
	_, err = h.router.Route(ctx, append([]byte{byte(OpMint)}, opData...), mintReq)
	require.ErrorIs(t, err, verification.ErrVerificationProgramNotFound)
}

func TestSplitMintsUpUnderUpRounding(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	mint, creator, tokenAccount := pk(1), pk(2), pk(3)
	h.runtime.RegisterMint(mint, 0)
	h.runtime.SetBalance(mint, tokenAccount, 100)

	const actionID = uint64(7)
	rateArgs := ixcodec.RateArgs{ActionID: actionID, Rounding: uint8(rate.RoundingUp), Num: 3, Den: 2}
	data := append([]byte{byte(OpCreateRateAccount)}, rateArgs.Encode()...)
	rateReq := h.mintAuthorityRequest(mint, creator)
	rateReq.MintFrom, rateReq.MintTo = mint, mint
	_, err := h.router.Route(ctx, data, rateReq)
	require.NoError(t, err)

	splitArgs := ixcodec.ActionIDArgs{ActionID: actionID}
	data = append([]byte{byte(OpSplit)}, splitArgs.Encode()...)
	splitReq := h.mintAuthorityRequest(mint, creator)
	splitReq.TokenAccount = tokenAccount
	res, err := h.router.Route(ctx, data, splitReq)
	require.NoError(t, err)
	require.Equal(t, uint64(50), res.Split.Minted)
	require.Equal(t, uint64(150), res.Split.NewBalance)
}

func TestSplitRejectedWhenSignerIsNotMintCreator(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	mint, creator, impostor, tokenAccount := pk(1), pk(2), pk(9), pk(3)
	h.runtime.RegisterMint(mint, 0)
	h.runtime.SetBalance(mint, tokenAccount, 100)

	const actionID = uint64(7)
	rateArgs := ixcodec.RateArgs{ActionID: actionID, Rounding: uint8(rate.RoundingUp), Num: 3, Den: 2}
	data := append([]byte{byte(OpCreateRateAccount)}, rateArgs.Encode()...)
	rateReq := h.mintAuthorityRequest(mint, creator)
	rateReq.MintFrom, rateReq.MintTo = mint, mint
	_, err := h.router.Route(ctx, data, rateReq)
	require.NoError(t, err)

	splitArgs := ixcodec.ActionIDArgs{ActionID: actionID}
	data = append([]byte{byte(OpSplit)}, splitArgs.Encode()...)
	splitReq := h.mintAuthorityRequest(mint, creator)
	splitReq.TokenAccount = tokenAccount
	splitReq.Signer = impostor
	_, err = h.router.Route(ctx, data, splitReq)
	require.ErrorIs(t, err, verification.ErrMintCreatorMismatch)
}

func TestConvertAcrossDecimals(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	mintFrom, mintTo, creator, creatorTo, src, dst := pk(1), pk(2), pk(8), pk(3), pk(4), pk(5)
	h.runtime.RegisterMint(mintFrom, 6)
	h.runtime.RegisterMint(mintTo, 9)
	h.runtime.SetBalance(mintFrom, src, 1_000_000)

	const actionID = uint64(11)
	rateArgs := ixcodec.RateArgs{ActionID: actionID, Rounding: uint8(rate.RoundingDown), Num: 1, Den: 1}
	data := append([]byte{byte(OpCreateRateAccount)}, rateArgs.Encode()...)
	rateReq := h.mintAuthorityRequest(mintFrom, creator)
	rateReq.MintFrom, rateReq.MintTo = mintFrom, mintTo
	_, err := h.router.Route(ctx, data, rateReq)
	require.NoError(t, err)

	convertArgs := ixcodec.ConvertArgs{ActionID: actionID, AmountToConvert: 1_000_000}
	data = append([]byte{byte(OpConvert)}, convertArgs.Encode()...)
	convertReq := h.mintAuthorityRequest(mintFrom, creator)
	convertReq.MintFrom, convertReq.MintTo = mintFrom, mintTo
	convertReq.CreatorTo, convertReq.Src, convertReq.Dst = creatorTo, src, dst
	res, err := h.router.Route(ctx, data, convertReq)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000), res.Convert.AmountFrom)
	require.Equal(t, uint64(1_000_000_000), res.Convert.AmountTo)

	bal, err := h.runtime.BalanceOf(ctx, mintTo, dst)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000_000), bal)
}

func TestDistributionEscrowAndClaimWithInlineProof(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	mint, eligible := pk(1), pk(6)
	h.runtime.RegisterMint(mint, 0)

	const actionID = uint64(42)
	amount := uint64(777)
	leaf := merkle.Leaf(eligible, mint, actionID, amount)
	sibling := merkle.Leaf(pk(0x77), mint, actionID, 1) // second leaf, leafIndex 1 in the two-leaf tree below
	root := crypto.Keccak256(leaf[:], sibling[:])

	createArgs := ixcodec.CreateDistributionEscrowArgs{ActionID: actionID, MerkleRoot: root}
	data := append([]byte{byte(OpCreateDistributionEscrow)}, createArgs.Encode()...)
	escrowRes, err := h.router.Route(ctx, data, Request{Mint: mint})
	require.NoError(t, err)

	escrowAuthority := h.program.DistributionEscrowAuthority(mint, actionID, root)
	h.runtime.SeedPoolBalance(mint, escrowAuthority.Address, amount)

	claimArgs := ixcodec.ClaimDistributionArgs{ActionID: actionID, Amount: amount, Root: root, LeafIndex: 0, ProofPresent: true, Proof: [][32]byte{sibling}}
	data = append([]byte{byte(OpClaimDistribution)}, claimArgs.Encode()...)
	claimReq := Request{Mint: mint, EligibleTokenAccount: eligible, EscrowTokenAccount: &escrowRes.EscrowPool}
	claimRes, err := h.router.Route(ctx, data, claimReq)
	require.NoError(t, err)
	require.True(t, claimRes.Claim.Settled)
	require.Equal(t, amount, claimRes.Claim.Amount)

	bal, err := h.runtime.BalanceOf(ctx, mint, eligible)
	require.NoError(t, err)
	require.Equal(t, amount, bal)
}

func TestMissingAccountSlotFailsShapeCheck(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	mint, creator := pk(1), pk(2)
	h.runtime.RegisterMint(mint, 6)

	// Mint's shape requires a dest account; omit it.
	mintReq := h.mintAuthorityRequest(mint, creator)
	args := ixcodec.AmountArgs{Amount: 1}
	data := append([]byte{byte(OpMint)}, args.Encode()...)
	_, err := h.router.Route(ctx, data, mintReq)
	require.ErrorIs(t, err, ErrNotEnoughAccountKeys)

	// Split's shape requires the token account being re-rated.
	data = append([]byte{byte(OpSplit)}, ixcodec.ActionIDArgs{ActionID: 1}.Encode()...)
	_, err = h.router.Route(ctx, data, h.mintAuthorityRequest(mint, creator))
	require.ErrorIs(t, err, ErrNotEnoughAccountKeys)
}

func TestUnknownOpReturnsError(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	_, err := h.router.Route(ctx, []byte{255}, Request{})
	require.ErrorIs(t, err, ErrUnknownOp)
}

func TestEmptyInstructionDataRejected(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	_, err := h.router.Route(ctx, nil, Request{})
	require.Error(t, err)
}
