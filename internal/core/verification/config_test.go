package verification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vtoken-labs/vtoken/internal/core/pda"
	"github.com/vtoken-labs/vtoken/internal/core/tokenruntime"
	"github.com/vtoken-labs/vtoken/internal/core/transferhook"
	"github.com/vtoken-labs/vtoken/internal/crypto"
	"github.com/vtoken-labs/vtoken/internal/storage/accountstore"
)

const opBurn uint8 = 3

func pk(b byte) crypto.PublicKey {
	var k crypto.PublicKey
	k[0] = b
	return k
}

func newTestStore(t *testing.T) (*Store, crypto.PublicKey) {
	t.Helper()
	programID := pk(0xAA)
	mint := pk(1)
	rt := tokenruntime.NewMemoryRuntime(pk(0xFF))
	rt.RegisterMint(mint, 6)
	return &Store{
		Accounts: accountstore.NewMemoryStore(),
		Program:  pda.Program{ProgramID: programID},
		Runtime:  rt,
		Hook:     transferhook.NewMemoryHook(),
		Rent:     accountstore.RentLedger{LamportsPerByte: 10},
	}, mint
}

func TestVerificationConfigInitializeAndLoad(t *testing.T) {
	ctx := context.Background()
	s, mint := newTestStore(t)

	programs := []crypto.PublicKey{pk(10), pk(11)}
	cfg, err := s.Initialize(ctx, mint, opBurn, false, programs, nil)
	require.NoError(t, err)
	require.Equal(t, programs, cfg.Programs)

	loaded, err := s.Load(ctx, mint, opBurn)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)

	_, err = s.Initialize(ctx, mint, opBurn, false, programs, nil)
	require.ErrorIs(t, err, accountstore.ErrAlreadyExists)
}

func TestVerificationConfigTransferRequiresHook(t *testing.T) {
	ctx := context.Background()
	s, mint := newTestStore(t)

	_, err := s.Initialize(ctx, mint, OpTransfer, true, []crypto.PublicKey{pk(10)}, nil)
	require.ErrorIs(t, err, ErrTransferHookRequired)
}

func TestVerificationConfigInitializeSyncsMirrorOnTransfer(t *testing.T) {
	ctx := context.Background()
	s, mint := newTestStore(t)
	hookProgram := pk(0xEE)

	programs := []crypto.PublicKey{pk(10), pk(11)}
	cfg, err := s.Initialize(ctx, mint, OpTransfer, true, programs, &hookProgram)
	require.NoError(t, err)

	cfgPDA := s.Program.VerificationConfig(mint, OpTransfer)
	metas, err := s.Hook.ExtraAccountMetas(ctx, mint)
	require.NoError(t, err)
	require.Equal(t, s.mirrorMetas(cfgPDA.Address, cfg.Programs), metas)
}

func TestVerificationConfigUpdateSparseWriteAndRent(t *testing.T) {
	ctx := context.Background()
	s, mint := newTestStore(t)

	_, err := s.Initialize(ctx, mint, opBurn, false, []crypto.PublicKey{pk(10), pk(11)}, nil)
	require.NoError(t, err)

	next, delta, err := s.Update(ctx, mint, opBurn, true, 2, []crypto.PublicKey{pk(12), pk(13)}, nil)
	require.NoError(t, err)
	require.Equal(t, []crypto.PublicKey{pk(10), pk(11), pk(12), pk(13)}, next.Programs)
	require.True(t, next.CPIMode)
	require.Equal(t, int64(640), delta) // 2 new 32-byte entries * 10 lamports/byte

	loaded, err := s.Load(ctx, mint, opBurn)
	require.NoError(t, err)
	require.Equal(t, next, loaded)
}

func TestVerificationConfigTrimShrinksAndMirrorsTransfer(t *testing.T) {
	ctx := context.Background()
	s, mint := newTestStore(t)
	hookProgram := pk(0xEE)

	_, err := s.Initialize(ctx, mint, OpTransfer, true, []crypto.PublicKey{pk(10), pk(11), pk(12)}, &hookProgram)
	require.NoError(t, err)

	closed, refund, err := s.Trim(ctx, mint, OpTransfer, 1, false, &hookProgram)
	require.NoError(t, err)
	require.False(t, closed)
	require.Equal(t, int64(640), refund) // shrank by 2 32-byte entries * 10 lamports/byte

	loaded, err := s.Load(ctx, mint, OpTransfer)
	require.NoError(t, err)
	require.Equal(t, []crypto.PublicKey{pk(10)}, loaded.Programs)

	cfgPDA := s.Program.VerificationConfig(mint, OpTransfer)
	metas, err := s.Hook.ExtraAccountMetas(ctx, mint)
	require.NoError(t, err)
	require.Equal(t, s.mirrorMetas(cfgPDA.Address, loaded.Programs), metas)
}

func TestVerificationConfigTrimCloseRefundsAndClearsMirror(t *testing.T) {
	ctx := context.Background()
	s, mint := newTestStore(t)
	hookProgram := pk(0xEE)

	_, err := s.Initialize(ctx, mint, OpTransfer, true, []crypto.PublicKey{pk(10)}, &hookProgram)
	require.NoError(t, err)

	closed, refund, err := s.Trim(ctx, mint, OpTransfer, 0, true, &hookProgram)
	require.NoError(t, err)
	require.True(t, closed)
	require.True(t, refund > 0)

	_, err = s.Load(ctx, mint, OpTransfer)
	require.ErrorIs(t, err, accountstore.ErrNotFound)

	metas, err := s.Hook.ExtraAccountMetas(ctx, mint)
	require.NoError(t, err)
	require.Nil(t, metas)
}
