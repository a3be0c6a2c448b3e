package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vtokend.toml")
	contents := `
[store]
backend = "pebble"
path = "/tmp/vtokend/db"
cache_size = 2048
rent_lamports_per_byte = 7

[genesis]
program_id = "11111111111111111111111111111111111111111111111111111111111111"
mint_creators = ["2222222222222222222222222222222222222222222222222222222222222222"]
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, StoreBackendPebble, cfg.Store.Backend)
	require.Equal(t, "/tmp/vtokend/db", cfg.Store.Path)
	require.Equal(t, 2048, cfg.Store.CacheSize)
	require.Equal(t, uint64(7), cfg.Store.RentLamportsPerByte)
	require.Equal(t, "11111111111111111111111111111111111111111111111111111111111111", cfg.Genesis.ProgramID)
}

func TestLoadConfigDefaultsToMemoryBackend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vtokend.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[genesis]
program_id = "1111111111111111111111111111111111111111111111111111111111111111"
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, StoreBackendMemory, cfg.Store.Backend)
	require.Equal(t, uint64(1), cfg.Store.RentLamportsPerByte)
}

func TestLoadConfigRejectsMissingProgramID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vtokend.toml")
	require.NoError(t, os.WriteFile(path, []byte(`[store]
backend = "memory"
`), 0o644))

	_, err := LoadConfig(path)
	require.ErrorIs(t, err, ErrMissingProgramID)
}

func TestLoadConfigRejectsPebbleWithoutPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vtokend.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[store]
backend = "pebble"
[genesis]
program_id = "1111111111111111111111111111111111111111111111111111111111111111"
`), 0o644))

	_, err := LoadConfig(path)
	require.ErrorIs(t, err, ErrMissingStorePath)
}

func TestValidateConfigRejectsBadMintCreator(t *testing.T) {
	cfg := &Config{
		Store:   StoreConfig{Backend: StoreBackendMemory},
		Genesis: GenesisConfig{ProgramID: "11", MintCreators: []string{"not-hex"}},
	}
	require.ErrorIs(t, ValidateConfig(cfg), ErrInvalidMintCreator)
}
