package transferhook

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/vtoken-labs/vtoken/internal/crypto"
)

// ErrMirrorAlreadyExists reports a second Initialize for the same mint.
var ErrMirrorAlreadyExists = errors.New("transferhook: mirror already exists")

// ErrMirrorNotFound reports an Update or read against a mint with no mirror.
var ErrMirrorNotFound = errors.New("transferhook: mirror not found")

// MemoryHook is an in-process Hook double used by tests and wired by
// internal/di behind the CLI's submit command, mirroring tokenruntime.MemoryRuntime's role as a
// deterministic stand-in for the real external program.
type MemoryHook struct {
	mu      sync.Mutex
	mirrors map[crypto.PublicKey][]crypto.PublicKey
}

// NewMemoryHook returns an empty hook double.
func NewMemoryHook() *MemoryHook {
	return &MemoryHook{mirrors: make(map[crypto.PublicKey][]crypto.PublicKey)}
}

func (h *MemoryHook) InitializeExtraAccountMetas(_ context.Context, mint, _ crypto.PublicKey, metas []crypto.PublicKey) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.mirrors[mint]; exists {
		return ErrMirrorAlreadyExists
	}
	h.mirrors[mint] = append([]crypto.PublicKey{}, metas...)
	return nil
}

func (h *MemoryHook) UpdateExtraAccountMetas(_ context.Context, mint, _ crypto.PublicKey, metas []crypto.PublicKey) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.mirrors[mint]; !exists {
		return ErrMirrorNotFound
	}
	h.mirrors[mint] = append([]crypto.PublicKey{}, metas...)
	return nil
}

func (h *MemoryHook) ExtraAccountMetas(_ context.Context, mint crypto.PublicKey) ([]crypto.PublicKey, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	metas, exists := h.mirrors[mint]
	if !exists {
		return nil, ErrMirrorNotFound
	}
	return append([]crypto.PublicKey{}, metas...), nil
}
