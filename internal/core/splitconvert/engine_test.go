package splitconvert

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vtoken-labs/vtoken/internal/core/pda"
	"github.com/vtoken-labs/vtoken/internal/core/rate"
	"github.com/vtoken-labs/vtoken/internal/core/receipt"
	"github.com/vtoken-labs/vtoken/internal/core/tokenruntime"
	"github.com/vtoken-labs/vtoken/internal/crypto"
	"github.com/vtoken-labs/vtoken/internal/storage/accountstore"
)

func pk(b byte) crypto.PublicKey {
	var k crypto.PublicKey
	k[0] = b
	return k
}

func newEngine() (*Engine, *tokenruntime.MemoryRuntime) {
	programID := pk(0xAA)
	rt := tokenruntime.NewMemoryRuntime(pk(0xFF))
	rs := &receipt.Store{
		Accounts: accountstore.NewMemoryStore(),
		Program:  pda.Program{ProgramID: programID},
		Rent:     accountstore.RentLedger{LamportsPerByte: 5},
	}
	return &Engine{Program: pda.Program{ProgramID: programID}, Runtime: rt, Receipts: rs}, rt
}

func TestSplitMintsWhenTargetExceedsBalance(t *testing.T) {
	ctx := context.Background()
	e, rt := newEngine()
	mint := pk(1)
	creator := pk(2)
	account := pk(3)
	rt.RegisterMint(mint, 6)
	rt.SetBalance(mint, account, 1_000_000)

	r, err := rate.New(2, 1, rate.RoundingUp)
	require.NoError(t, err)

	result, err := e.Split(ctx, mint, creator, account, 77, r)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000), result.Minted)
	require.Equal(t, uint64(2_000_000), result.NewBalance)

	_, err = e.Split(ctx, mint, creator, account, 77, r)
	require.ErrorIs(t, err, accountstore.ErrAlreadyExists)
}

func TestSplitBurnsWhenTargetBelowBalance(t *testing.T) {
	ctx := context.Background()
	e, rt := newEngine()
	mint := pk(1)
	creator := pk(2)
	account := pk(3)
	rt.RegisterMint(mint, 0)
	rt.SetBalance(mint, account, 100)

	r, err := rate.New(1, 2, rate.RoundingDown)
	require.NoError(t, err)

	result, err := e.Split(ctx, mint, creator, account, 1, r)
	require.NoError(t, err)
	require.Equal(t, uint64(50), result.Burned)
	require.Equal(t, uint64(50), result.NewBalance)
}

func TestSplitRejectsEmptyBalance(t *testing.T) {
	ctx := context.Background()
	e, rt := newEngine()
	mint := pk(1)
	rt.RegisterMint(mint, 0)

	r, _ := rate.New(1, 1, rate.RoundingDown)
	_, err := e.Split(ctx, mint, pk(2), pk(3), 1, r)
	require.ErrorIs(t, err, ErrEmptyBalance)
}

func TestConvertAcrossMints(t *testing.T) {
	ctx := context.Background()
	e, rt := newEngine()
	mintFrom := pk(1)
	mintTo := pk(2)
	creatorTo := pk(5)
	src := pk(3)
	dest := pk(4)

	rt.RegisterMint(mintFrom, 6)
	rt.RegisterMint(mintTo, 9)
	rt.SetBalance(mintFrom, src, 1000)

	r, err := rate.New(1, 1, rate.RoundingDown)
	require.NoError(t, err)

	result, err := e.Convert(ctx, mintFrom, mintTo, creatorTo, src, dest, 99, r, 1000)
	require.NoError(t, err)
	require.Equal(t, uint64(1000), result.AmountFrom)
	require.Equal(t, uint64(1_000_000), result.AmountTo) // 1000 * 10^(9-6)

	bal, err := rt.BalanceOf(ctx, mintFrom, src)
	require.NoError(t, err)
	require.Equal(t, uint64(0), bal)

	bal, err = rt.BalanceOf(ctx, mintTo, dest)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000), bal)

	_, err = e.Convert(ctx, mintFrom, mintTo, creatorTo, src, dest, 99, r, 1)
	require.ErrorIs(t, err, accountstore.ErrAlreadyExists)
}

func TestConvertRejectsZeroResult(t *testing.T) {
	ctx := context.Background()
	e, rt := newEngine()
	mintFrom := pk(1)
	mintTo := pk(2)
	src := pk(3)
	dest := pk(4)

	rt.RegisterMint(mintFrom, 9)
	rt.RegisterMint(mintTo, 0)
	rt.SetBalance(mintFrom, src, 1)

	r, err := rate.New(1, 1, rate.RoundingDown)
	require.NoError(t, err)

	_, err = e.Convert(ctx, mintFrom, mintTo, pk(5), src, dest, 1, r, 1)
	require.ErrorIs(t, err, ErrZeroConvertAmount)
}
