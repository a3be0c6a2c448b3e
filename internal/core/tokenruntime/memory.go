package tokenruntime

import (
	"context"
	"sync"

	"github.com/vtoken-labs/vtoken/internal/crypto"
)

type mintState struct {
	owner        crypto.PublicKey
	decimals     uint8
	paused       bool
	balances     map[crypto.PublicKey]uint64
	frozen       map[crypto.PublicKey]bool
	metadata     map[string]string
	pools        map[crypto.PublicKey]crypto.PublicKey // escrowAuthority -> pool token account
	poolBalances map[crypto.PublicKey]uint64
}

// MemoryRuntime is an in-process Runtime double used by tests and wired by
// internal/di behind the CLI's submit command, mirroring the teacher's in-memory LedgerView test
// doubles (internal/core/tx apply tests construct state directly rather
// than against a live ledger).
type MemoryRuntime struct {
	mu                sync.Mutex
	mints             map[crypto.PublicKey]*mintState
	tokenRuntimeOwner crypto.PublicKey
}

// NewMemoryRuntime returns an empty runtime double. owner is the program
// id reported by MintOwner for every registered mint, simulating "owned
// by the base token runtime".
func NewMemoryRuntime(owner crypto.PublicKey) *MemoryRuntime {
	return &MemoryRuntime{mints: make(map[crypto.PublicKey]*mintState), tokenRuntimeOwner: owner}
}

// RegisterMint seeds a mint with decimals and no balances; use SetBalance
// to fund accounts.
func (m *MemoryRuntime) RegisterMint(mint crypto.PublicKey, decimals uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mints[mint] = &mintState{
		owner:        m.tokenRuntimeOwner,
		decimals:     decimals,
		balances:     make(map[crypto.PublicKey]uint64),
		frozen:       make(map[crypto.PublicKey]bool),
		metadata:     make(map[string]string),
		pools:        make(map[crypto.PublicKey]crypto.PublicKey),
		poolBalances: make(map[crypto.PublicKey]uint64),
	}
}

// SetBalance seeds account's balance of mint directly, for test setup.
func (m *MemoryRuntime) SetBalance(mint, account crypto.PublicKey, amount uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mints[mint].balances[account] = amount
}

// PoolBalance reports the pool's settled balance, for test assertions.
func (m *MemoryRuntime) PoolBalance(mint, escrowAuthority crypto.PublicKey) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.mints[mint]
	pool, ok := st.pools[escrowAuthority]
	if !ok {
		return 0
	}
	return st.poolBalances[pool]
}

// SeedPoolBalance credits the distribution pool out-of-band, simulating
// the external mint/transfer into the escrow spec.md §4.8 describes.
func (m *MemoryRuntime) SeedPoolBalance(mint, escrowAuthority crypto.PublicKey, amount uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.mints[mint]
	pool := st.pools[escrowAuthority]
	st.poolBalances[pool] += amount
}

func (m *MemoryRuntime) get(mint crypto.PublicKey) (*mintState, error) {
	st, ok := m.mints[mint]
	if !ok {
		return nil, ErrMintNotFound
	}
	return st, nil
}

func (m *MemoryRuntime) MintOwner(_ context.Context, mint crypto.PublicKey) (crypto.PublicKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, err := m.get(mint)
	if err != nil {
		return crypto.PublicKey{}, err
	}
	return st.owner, nil
}

func (m *MemoryRuntime) Decimals(_ context.Context, mint crypto.PublicKey) (uint8, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, err := m.get(mint)
	if err != nil {
		return 0, err
	}
	return st.decimals, nil
}

func (m *MemoryRuntime) BalanceOf(_ context.Context, mint, account crypto.PublicKey) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, err := m.get(mint)
	if err != nil {
		return 0, err
	}
	return st.balances[account], nil
}

func (m *MemoryRuntime) MintTo(_ context.Context, mint, dest, _ crypto.PublicKey, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, err := m.get(mint)
	if err != nil {
		return err
	}
	if st.paused {
		return ErrPaused
	}
	st.balances[dest] += amount
	return nil
}

func (m *MemoryRuntime) BurnFrom(_ context.Context, mint, src, _ crypto.PublicKey, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, err := m.get(mint)
	if err != nil {
		return err
	}
	if st.paused {
		return ErrPaused
	}
	if st.frozen[src] {
		return ErrFrozen
	}
	if st.balances[src] < amount {
		return ErrInsufficientFunds
	}
	st.balances[src] -= amount
	return nil
}

func (m *MemoryRuntime) TransferChecked(_ context.Context, mint, src, dst, _ crypto.PublicKey, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, err := m.get(mint)
	if err != nil {
		return err
	}
	if st.paused {
		return ErrPaused
	}
	if st.frozen[src] {
		return ErrFrozen
	}

	// src may be a distribution pool token account rather than an
	// ordinary holder; pools are tracked separately from balances.
	if bal, isPool := m.poolAccount(st, src); isPool {
		if bal < amount {
			return ErrInsufficientFunds
		}
		m.debitPool(st, src, amount)
		st.balances[dst] += amount
		return nil
	}

	if st.balances[src] < amount {
		return ErrInsufficientFunds
	}
	st.balances[src] -= amount
	st.balances[dst] += amount
	return nil
}

func (m *MemoryRuntime) poolAccount(st *mintState, account crypto.PublicKey) (uint64, bool) {
	for _, pool := range st.pools {
		if pool == account {
			return st.poolBalances[pool], true
		}
	}
	return 0, false
}

func (m *MemoryRuntime) debitPool(st *mintState, pool crypto.PublicKey, amount uint64) {
	st.poolBalances[pool] -= amount
}

func (m *MemoryRuntime) SetPaused(_ context.Context, mint, _ crypto.PublicKey, paused bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, err := m.get(mint)
	if err != nil {
		return err
	}
	st.paused = paused
	return nil
}

func (m *MemoryRuntime) SetFrozen(_ context.Context, mint, account, _ crypto.PublicKey, frozen bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, err := m.get(mint)
	if err != nil {
		return err
	}
	st.frozen[account] = frozen
	return nil
}

func (m *MemoryRuntime) UpdateMetadataField(_ context.Context, mint, _ crypto.PublicKey, field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, err := m.get(mint)
	if err != nil {
		return err
	}
	st.metadata[field] = value
	return nil
}

func (m *MemoryRuntime) CreateDistributionPool(_ context.Context, mint, escrowAuthority crypto.PublicKey) (crypto.PublicKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, err := m.get(mint)
	if err != nil {
		return crypto.PublicKey{}, err
	}
	if _, exists := st.pools[escrowAuthority]; exists {
		return crypto.PublicKey{}, ErrPoolAlreadyExists
	}
	pool := derivePoolAddress(mint, escrowAuthority)
	st.pools[escrowAuthority] = pool
	st.poolBalances[pool] = 0
	return pool, nil
}

func (m *MemoryRuntime) DistributionPool(_ context.Context, mint, escrowAuthority crypto.PublicKey) (crypto.PublicKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, err := m.get(mint)
	if err != nil {
		return crypto.PublicKey{}, err
	}
	pool, ok := st.pools[escrowAuthority]
	if !ok {
		return crypto.PublicKey{}, ErrPoolNotFound
	}
	return pool, nil
}

func derivePoolAddress(mint, escrowAuthority crypto.PublicKey) crypto.PublicKey {
	h := crypto.Sha256(mint[:], escrowAuthority[:], []byte("ata"))
	pk, _ := crypto.NewPublicKey(h[:])
	return pk
}
