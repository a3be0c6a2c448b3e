package receipt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vtoken-labs/vtoken/internal/core/merkle"
	"github.com/vtoken-labs/vtoken/internal/core/pda"
	"github.com/vtoken-labs/vtoken/internal/crypto"
	"github.com/vtoken-labs/vtoken/internal/storage/accountstore"
)

func pk(b byte) crypto.PublicKey {
	var k crypto.PublicKey
	k[0] = b
	return k
}

func newTestStore() *Store {
	return &Store{
		Accounts: accountstore.NewMemoryStore(),
		Program:  pda.Program{ProgramID: pk(0xAA)},
		Rent:     accountstore.RentLedger{LamportsPerByte: 5},
	}
}

func TestActionReceiptAtMostOnce(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	mint := pk(1)

	exists, err := s.ActionReceiptExists(ctx, mint, 42)
	require.NoError(t, err)
	require.False(t, exists)

	_, err = s.CreateActionReceipt(ctx, mint, 42)
	require.NoError(t, err)

	exists, err = s.ActionReceiptExists(ctx, mint, 42)
	require.NoError(t, err)
	require.True(t, exists)

	_, err = s.CreateActionReceipt(ctx, mint, 42)
	require.ErrorIs(t, err, accountstore.ErrAlreadyExists)

	refund, err := s.CloseActionReceipt(ctx, mint, 42)
	require.NoError(t, err)
	require.True(t, refund > 0)

	exists, err = s.ActionReceiptExists(ctx, mint, 42)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestClaimReceiptKeyedByProofPath(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	mint := pk(1)
	eligible := pk(2)

	proofA := []merkle.Node{{0x01}, {0x02}}
	proofB := []merkle.Node{{0x03}, {0x04}}

	_, err := s.CreateClaimReceipt(ctx, mint, eligible, 7, proofA)
	require.NoError(t, err)

	_, err = s.CreateClaimReceipt(ctx, mint, eligible, 7, proofA)
	require.ErrorIs(t, err, accountstore.ErrAlreadyExists)

	// A distinct proof path for the same (mint, eligible, action) is a
	// distinct receipt key (spec.md §9's flagged design choice).
	_, err = s.CreateClaimReceipt(ctx, mint, eligible, 7, proofB)
	require.NoError(t, err)

	exists, err := s.ClaimReceiptExists(ctx, mint, eligible, 7, proofA)
	require.NoError(t, err)
	require.True(t, exists)

	refund, err := s.CloseClaimReceipt(ctx, mint, eligible, 7, proofA)
	require.NoError(t, err)
	require.True(t, refund > 0)

	exists, err = s.ClaimReceiptExists(ctx, mint, eligible, 7, proofA)
	require.NoError(t, err)
	require.False(t, exists)
}
