package transferhook

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vtoken-labs/vtoken/internal/crypto"
)

func pk(b byte) crypto.PublicKey {
	var k crypto.PublicKey
	k[0] = b
	return k
}

func TestMemoryHookInitializeAndUpdate(t *testing.T) {
	ctx := context.Background()
	h := NewMemoryHook()
	mint := pk(1)

	require.ErrorIs(t, h.UpdateExtraAccountMetas(ctx, mint, pk(9), nil), ErrMirrorNotFound)

	metas := []crypto.PublicKey{pk(2), pk(3)}
	require.NoError(t, h.InitializeExtraAccountMetas(ctx, mint, pk(9), metas))
	require.ErrorIs(t, h.InitializeExtraAccountMetas(ctx, mint, pk(9), metas), ErrMirrorAlreadyExists)

	got, err := h.ExtraAccountMetas(ctx, mint)
	require.NoError(t, err)
	require.Equal(t, metas, got)

	require.NoError(t, h.UpdateExtraAccountMetas(ctx, mint, pk(9), []crypto.PublicKey{pk(4)}))
	got, err = h.ExtraAccountMetas(ctx, mint)
	require.NoError(t, err)
	require.Equal(t, []crypto.PublicKey{pk(4)}, got)
}
