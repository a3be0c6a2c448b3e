// Package config defines vtokend's runtime configuration: which account
// store backend to open and where, plus the genesis program/mint-creator
// identity. Adapted from the teacher's internal/config, trimmed from
// rippled.cfg's many server/peer/voting sections down to the surface this
// program actually needs: a durable KV backend selection and the identity
// this program's PDAs are derived against.
package config

import "github.com/cockroachdb/errors"

// StoreBackend selects which accountstore implementation vtokend opens.
type StoreBackend string

const (
	StoreBackendPebble StoreBackend = "pebble"
	StoreBackendBolt   StoreBackend = "bbolt"
	StoreBackendMemory StoreBackend = "memory"
)

// Config is the complete vtokend configuration.
type Config struct {
	Store   StoreConfig   `toml:"store" mapstructure:"store"`
	Genesis GenesisConfig `toml:"genesis" mapstructure:"genesis"`
}

// StoreConfig configures the account-store backend
// (internal/storage/accountstore), mirroring the teacher's [node_db]
// section narrowed to a single active backend plus an LRU front-cache size.
type StoreConfig struct {
	Backend   StoreBackend `toml:"backend" mapstructure:"backend"`
	Path      string       `toml:"path" mapstructure:"path"`
	CacheSize int          `toml:"cache_size" mapstructure:"cache_size"`

	// RentLamportsPerByte prices account growth/shrink for every resizable
	// account (VerificationConfig, Proof), feeding accountstore.RentLedger.
	RentLamportsPerByte uint64 `toml:"rent_lamports_per_byte" mapstructure:"rent_lamports_per_byte"`
}

// GenesisConfig fixes the identity this running instance derives PDAs
// against: its own program id, and the mint-creator allowlist that
// mintauthority.Store checks before creating a MintAuthority record.
type GenesisConfig struct {
	ProgramID    string   `toml:"program_id" mapstructure:"program_id"`
	MintCreators []string `toml:"mint_creators" mapstructure:"mint_creators"`
}

// ErrUnknownBackend reports a store.backend value outside the known set.
var ErrUnknownBackend = errors.New("config: unknown store.backend")

// ErrMissingStorePath reports a non-memory backend configured without a path.
var ErrMissingStorePath = errors.New("config: store.path is required for this backend")

// ErrMissingProgramID reports a config with no genesis.program_id set.
var ErrMissingProgramID = errors.New("config: genesis.program_id is required")

// Validate checks the loaded configuration for internal consistency.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreBackendPebble, StoreBackendBolt, StoreBackendMemory:
	default:
		return errors.Wrapf(ErrUnknownBackend, "%q", c.Store.Backend)
	}
	if c.Store.Backend != StoreBackendMemory && c.Store.Path == "" {
		return ErrMissingStorePath
	}
	if c.Genesis.ProgramID == "" {
		return ErrMissingProgramID
	}
	return nil
}
