package tokenops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vtoken-labs/vtoken/internal/accounts"
	"github.com/vtoken-labs/vtoken/internal/core/pda"
	"github.com/vtoken-labs/vtoken/internal/core/tokenruntime"
	"github.com/vtoken-labs/vtoken/internal/core/verification"
	"github.com/vtoken-labs/vtoken/internal/crypto"
)

func pk(b byte) crypto.PublicKey {
	var k crypto.PublicKey
	k[0] = b
	return k
}

// mintAuthorityStrategy builds a StrategyRequest whose config slot holds a
// MintAuthority record for (mint, creator), the "original creator signs"
// strategy every wrapper op exercises in these tests.
func mintAuthorityStrategy(e *Engine, mint, creator crypto.PublicKey) verification.StrategyRequest {
	authPDA := e.Program.MintAuthority(mint, creator)
	rec := accounts.MintAuthorityRecord{Mint: mint, MintCreator: creator, Bump: authPDA.Bump}
	return verification.StrategyRequest{
		Mint:            mint,
		ConfigSlotOwner: e.Program.ProgramID,
		ConfigSlotData:  rec.Encode(),
		Signer:          creator,
	}
}

func newEngine() (*Engine, *tokenruntime.MemoryRuntime) {
	programID := pk(0xAA)
	rt := tokenruntime.NewMemoryRuntime(pk(0xFF))
	program := pda.Program{ProgramID: programID}
	return &Engine{
		Program:    program,
		Runtime:    rt,
		Dispatcher: &verification.Dispatcher{Program: program},
	}, rt
}

func TestMintDelegatesToRuntimeAfterDispatch(t *testing.T) {
	ctx := context.Background()
	e, rt := newEngine()
	mint, creator, dest := pk(1), pk(2), pk(3)
	rt.RegisterMint(mint, 6)

	req := mintAuthorityStrategy(e, mint, creator)
	require.NoError(t, e.Mint(ctx, req, mint, creator, dest, 1000))

	bal, err := rt.BalanceOf(ctx, mint, dest)
	require.NoError(t, err)
	require.Equal(t, uint64(1000), bal)
}

func TestMintFailsDispatchBeforeTouchingBalance(t *testing.T) {
	ctx := context.Background()
	e, rt := newEngine()
	mint, creator, dest := pk(1), pk(2), pk(3)
	rt.RegisterMint(mint, 6)

	req := mintAuthorityStrategy(e, mint, creator)
	req.Signer = pk(9) // wrong signer
	err := e.Mint(ctx, req, mint, creator, dest, 1000)
	require.ErrorIs(t, err, verification.ErrMintCreatorMismatch)

	bal, err := rt.BalanceOf(ctx, mint, dest)
	require.NoError(t, err)
	require.Equal(t, uint64(0), bal)
}

func TestBurnDelegatesToRuntime(t *testing.T) {
	ctx := context.Background()
	e, rt := newEngine()
	mint, creator, src := pk(1), pk(2), pk(3)
	rt.RegisterMint(mint, 0)
	rt.SetBalance(mint, src, 500)

	req := mintAuthorityStrategy(e, mint, creator)
	require.NoError(t, e.Burn(ctx, req, mint, src, 200))

	bal, err := rt.BalanceOf(ctx, mint, src)
	require.NoError(t, err)
	require.Equal(t, uint64(300), bal)
}

func TestPauseAndResumeRoundTrip(t *testing.T) {
	ctx := context.Background()
	e, rt := newEngine()
	mint, creator, dest := pk(1), pk(2), pk(3)
	rt.RegisterMint(mint, 0)

	req := mintAuthorityStrategy(e, mint, creator)
	require.NoError(t, e.Pause(ctx, req, mint))
	require.ErrorIs(t, rt.MintTo(ctx, mint, dest, pk(0), 1), tokenruntime.ErrPaused)

	require.NoError(t, e.Resume(ctx, req, mint))
	require.NoError(t, rt.MintTo(ctx, mint, dest, pk(0), 1))
}

func TestFreezeAndThawRoundTrip(t *testing.T) {
	ctx := context.Background()
	e, rt := newEngine()
	mint, creator, account := pk(1), pk(2), pk(3)
	rt.RegisterMint(mint, 0)
	rt.SetBalance(mint, account, 10)

	req := mintAuthorityStrategy(e, mint, creator)
	require.NoError(t, e.Freeze(ctx, req, mint, account))
	require.ErrorIs(t, rt.BurnFrom(ctx, mint, account, pk(0), 1), tokenruntime.ErrFrozen)

	require.NoError(t, e.Thaw(ctx, req, mint, account))
	require.NoError(t, rt.BurnFrom(ctx, mint, account, pk(0), 1))
}

func TestTransferDelegatesToRuntime(t *testing.T) {
	ctx := context.Background()
	e, rt := newEngine()
	mint, creator, src, dst := pk(1), pk(2), pk(3), pk(4)
	rt.RegisterMint(mint, 0)
	rt.SetBalance(mint, src, 100)

	req := mintAuthorityStrategy(e, mint, creator)
	require.NoError(t, e.Transfer(ctx, req, mint, src, dst, src, 40))

	bal, err := rt.BalanceOf(ctx, mint, dst)
	require.NoError(t, err)
	require.Equal(t, uint64(40), bal)
}

func TestUpdateMetadataDelegatesToRuntime(t *testing.T) {
	ctx := context.Background()
	e, rt := newEngine()
	mint, creator := pk(1), pk(2)
	rt.RegisterMint(mint, 0)

	req := mintAuthorityStrategy(e, mint, creator)
	require.NoError(t, e.UpdateMetadata(ctx, req, mint, creator, "name", "vToken"))
}
