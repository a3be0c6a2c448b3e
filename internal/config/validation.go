package config

import "github.com/cockroachdb/errors"

// ErrInvalidMintCreator reports a genesis.mint_creators entry that is not
// 64 hex characters (a 32-byte ed25519 public key).
var ErrInvalidMintCreator = errors.New("config: mint_creators entries must be 64 hex characters")

// ValidateConfig re-validates a Config loaded from any source, matching
// the teacher's standalone ValidateConfig entrypoint
// (internal/config/validation.go) used by the CLI before wiring services.
func ValidateConfig(config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	for _, creator := range config.Genesis.MintCreators {
		if len(creator) != 64 {
			return errors.Wrapf(ErrInvalidMintCreator, "%q", creator)
		}
		for _, r := range creator {
			if !isHexDigit(r) {
				return errors.Wrapf(ErrInvalidMintCreator, "%q", creator)
			}
		}
	}
	return nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
