package di

import (
	"encoding/hex"

	"github.com/cockroachdb/errors"

	"github.com/vtoken-labs/vtoken/internal/config"
	"github.com/vtoken-labs/vtoken/internal/core/distribution"
	"github.com/vtoken-labs/vtoken/internal/core/mintauthority"
	"github.com/vtoken-labs/vtoken/internal/core/pda"
	"github.com/vtoken-labs/vtoken/internal/core/rate"
	"github.com/vtoken-labs/vtoken/internal/core/receipt"
	"github.com/vtoken-labs/vtoken/internal/core/router"
	"github.com/vtoken-labs/vtoken/internal/core/splitconvert"
	"github.com/vtoken-labs/vtoken/internal/core/tokenops"
	"github.com/vtoken-labs/vtoken/internal/core/tokenruntime"
	"github.com/vtoken-labs/vtoken/internal/core/transferhook"
	"github.com/vtoken-labs/vtoken/internal/core/verification"
	"github.com/vtoken-labs/vtoken/internal/crypto"
	"github.com/vtoken-labs/vtoken/internal/storage/accountstore"
)

// Provider configures and registers vtokend's services in the container,
// replaying the teacher's RegisterAll/builder-per-service shape
// (internal/di/provider.go) over this program's own component graph
// instead of the XRPL ledger/nodestore stack.
type Provider struct {
	container *Container
	config    *config.Config
}

// NewProvider creates a new service provider.
func NewProvider(container *Container, cfg *config.Config) *Provider {
	return &Provider{
		container: container,
		config:    cfg,
	}
}

// RegisterAll registers every service builder. Nothing is constructed
// until first Get, matching the teacher's lazy-builder design.
func (p *Provider) RegisterAll() error {
	p.container.Register(ServiceConfig, p.config)

	p.registerStorageBuilders()
	p.registerRuntimeBuilders()
	p.registerRouterBuilder()

	return nil
}

func programID(cfg *config.Config) (crypto.PublicKey, error) {
	raw, err := hex.DecodeString(cfg.Genesis.ProgramID)
	if err != nil {
		return crypto.PublicKey{}, errors.Wrap(err, "di: decode genesis.program_id")
	}
	return crypto.NewPublicKey(raw)
}

// allowedMintCreators decodes genesis.mint_creators (already hex-validated
// by config.ValidateConfig) into the mint-creator allowlist the
// MintAuthority Store gates Initialize against.
func allowedMintCreators(cfg *config.Config) ([]crypto.PublicKey, error) {
	creators := make([]crypto.PublicKey, len(cfg.Genesis.MintCreators))
	for i, raw := range cfg.Genesis.MintCreators {
		decoded, err := hex.DecodeString(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "di: decode genesis.mint_creators[%d]", i)
		}
		pk, err := crypto.NewPublicKey(decoded)
		if err != nil {
			return nil, errors.Wrapf(err, "di: genesis.mint_creators[%d]", i)
		}
		creators[i] = pk
	}
	return creators, nil
}

// registerStorageBuilders wires the account store backend config.go's
// Store.Backend selects, optionally wrapped in an LRU front-cache sized by
// Store.CacheSize, mirroring the teacher's NodeStore builder's
// config-gated construction.
func (p *Provider) registerStorageBuilders() {
	p.container.RegisterBuilder(ServiceAccountStore, func(c *Container) (interface{}, error) {
		var back accountstore.Store
		switch p.config.Store.Backend {
		case config.StoreBackendMemory:
			back = accountstore.NewMemoryStore()
		case config.StoreBackendPebble:
			store, err := accountstore.OpenPebble(p.config.Store.Path)
			if err != nil {
				return nil, err
			}
			back = store
		case config.StoreBackendBolt:
			store, err := accountstore.OpenBolt(p.config.Store.Path)
			if err != nil {
				return nil, err
			}
			back = store
		default:
			return nil, errors.Wrapf(config.ErrUnknownBackend, "%q", p.config.Store.Backend)
		}

		if p.config.Store.CacheSize <= 0 {
			return back, nil
		}
		return accountstore.NewCachedStore(back, p.config.Store.CacheSize)
	})
}

// registerRuntimeBuilders wires the base token runtime and transfer-hook
// collaborators every core component needs. vtokend ships only the
// in-memory doubles (internal/core/tokenruntime.MemoryRuntime,
// internal/core/transferhook.MemoryHook): wiring a real base-runtime
// client and transfer-hook CPI caller is this program's boundary with the
// underlying chain client, left for the embedding deployment to supply.
func (p *Provider) registerRuntimeBuilders() {
	p.container.RegisterBuilder(ServiceTokenRuntime, func(c *Container) (interface{}, error) {
		progID, err := programID(p.config)
		if err != nil {
			return nil, err
		}
		return tokenruntime.NewMemoryRuntime(progID), nil
	})

	p.container.RegisterBuilder(ServiceTransferHook, func(c *Container) (interface{}, error) {
		return transferhook.NewMemoryHook(), nil
	})
}

// registerRouterBuilder wires every core component (C1-C9) together and
// registers the single Router (C10) instructions are submitted through.
func (p *Provider) registerRouterBuilder() {
	p.container.RegisterBuilder(ServiceRouter, func(c *Container) (interface{}, error) {
		progID, err := programID(p.config)
		if err != nil {
			return nil, err
		}
		program := pda.Program{ProgramID: progID}

		accountsRaw, err := c.Get(ServiceAccountStore)
		if err != nil {
			return nil, err
		}
		accts := accountsRaw.(accountstore.Store)

		runtimeRaw, err := c.Get(ServiceTokenRuntime)
		if err != nil {
			return nil, err
		}
		runtime := runtimeRaw.(tokenruntime.Runtime)

		hookRaw, err := c.Get(ServiceTransferHook)
		if err != nil {
			return nil, err
		}
		hook := hookRaw.(transferhook.Hook)

		rent := accountstore.RentLedger{LamportsPerByte: p.config.Store.RentLamportsPerByte}

		allowedCreators, err := allowedMintCreators(p.config)
		if err != nil {
			return nil, err
		}
		mintAuth := &mintauthority.Store{Accounts: accts, Program: program, AllowedCreators: allowedCreators}
		verif := &verification.Store{Accounts: accts, Program: program, Runtime: runtime, Hook: hook, Rent: rent}
		// No Verifier is wired here: the real cross-program caller belongs
		// to the embedding deployment, and CPI-mode configs fail closed
		// (verification.ErrNoCPIVerifier) until one is supplied.
		dispatcher := &verification.Dispatcher{Program: program, Runtime: runtime}
		rates := &rate.Store{Accounts: accts, Program: program, Rent: rent}
		receipts := &receipt.Store{Accounts: accts, Program: program, Rent: rent}
		splitConvert := &splitconvert.Engine{Program: program, Runtime: runtime, Receipts: receipts}
		distributionEngine := &distribution.Engine{Accounts: accts, Program: program, Runtime: runtime, Receipts: receipts, Rent: rent}
		tokenOps := &tokenops.Engine{Program: program, Runtime: runtime, Dispatcher: dispatcher}

		return router.New(program, mintAuth, verif, dispatcher, rates, receipts, splitConvert, distributionEngine, tokenOps), nil
	})
}

// GetRouter returns the wired Router from the container.
func (p *Provider) GetRouter() (*router.Router, error) {
	svc, err := p.container.Get(ServiceRouter)
	if err != nil {
		return nil, err
	}
	return svc.(*router.Router), nil
}

// GetConfig returns the configuration from the container.
func (p *Provider) GetConfig() *config.Config {
	return p.config
}
