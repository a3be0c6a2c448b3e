package rate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vtoken-labs/vtoken/internal/core/pda"
	"github.com/vtoken-labs/vtoken/internal/crypto"
	"github.com/vtoken-labs/vtoken/internal/storage/accountstore"
)

// rateAccountSize mirrors accounts.RateAccountSize (1 discriminator + 1
// rounding + 1 num + 1 den + 1 bump); duplicated here rather than
// importing internal/accounts, which itself imports this package.
const rateAccountSize = 5

func testStore(t *testing.T) *Store {
	t.Helper()
	var programID crypto.PublicKey
	programID[0] = 0xAA
	return &Store{
		Accounts: accountstore.NewMemoryStore(),
		Program:  pda.Program{ProgramID: programID},
		Rent:     accountstore.RentLedger{LamportsPerByte: 10},
	}
}

func TestRateStoreCreateLoadUpdateClose(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	var mintFrom, mintTo crypto.PublicKey
	mintFrom[0], mintTo[0] = 1, 2

	r, err := New(2, 1, RoundingUp)
	require.NoError(t, err)

	created, err := s.Create(ctx, 77, mintFrom, mintTo, r)
	require.NoError(t, err)

	loaded, err := s.Load(ctx, 77, mintFrom, mintTo)
	require.NoError(t, err)
	require.Equal(t, created, loaded)

	r2, err := New(3, 7, RoundingDown)
	require.NoError(t, err)
	updated, err := s.Update(ctx, 77, mintFrom, mintTo, r2)
	require.NoError(t, err)
	require.Equal(t, r2, updated.Rate)
	require.Equal(t, created.Bump, updated.Bump)

	refund, err := s.Close(ctx, 77, mintFrom, mintTo)
	require.NoError(t, err)
	require.Equal(t, int64(10*rateAccountSize), refund)

	_, err = s.Load(ctx, 77, mintFrom, mintTo)
	require.ErrorIs(t, err, accountstore.ErrNotFound)
}

func TestRateStoreCreateRejectsReplay(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	var mintFrom, mintTo crypto.PublicKey
	mintFrom[0], mintTo[0] = 1, 2
	r, err := New(1, 1, RoundingDown)
	require.NoError(t, err)

	_, err = s.Create(ctx, 1, mintFrom, mintTo, r)
	require.NoError(t, err)

	_, err = s.Create(ctx, 1, mintFrom, mintTo, r)
	require.ErrorIs(t, err, accountstore.ErrAlreadyExists)
}
