// Package crypto provides the signature primitives this program's accounts
// are addressed and authenticated with. Adapted from the teacher's
// internal/crypto/algorithms/ed25519 wrapper, narrowed to the single
// algorithm the base token runtime's addresses use.
package crypto

import (
	"crypto/ed25519"
	"crypto/rand"

	"github.com/cockroachdb/errors"
)

// PublicKeySize and SignatureSize match the Solana-style ed25519 curve used
// throughout this program's account addresses.
const (
	PublicKeySize = ed25519.PublicKeySize
	SignatureSize = ed25519.SignatureSize
)

// ErrInvalidPublicKey is returned when a byte slice cannot be a public key.
var ErrInvalidPublicKey = errors.New("crypto: invalid public key length")

// PublicKey is a 32-byte ed25519 public key, also used as an account address.
type PublicKey [32]byte

// NewPublicKey validates and wraps raw public key bytes.
func NewPublicKey(raw []byte) (PublicKey, error) {
	var pk PublicKey
	if len(raw) != PublicKeySize {
		return pk, ErrInvalidPublicKey
	}
	copy(pk[:], raw)
	return pk, nil
}

// IsZero reports whether pk is the all-zero sentinel address.
func (pk PublicKey) IsZero() bool {
	return pk == PublicKey{}
}

// KeyPair is a generated signer, used by tests to produce signatures for
// "payer signs" / "mint creator signs" preconditions.
type KeyPair struct {
	Public  PublicKey
	private ed25519.PrivateKey
}

// GenerateKeyPair creates a fresh signing key pair.
func GenerateKeyPair() (KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return KeyPair{}, errors.Wrap(err, "crypto: generate keypair")
	}
	pk, err := NewPublicKey(pub)
	if err != nil {
		return KeyPair{}, err
	}
	return KeyPair{Public: pk, private: priv}, nil
}

// Sign produces a detached signature over msg.
func (kp KeyPair) Sign(msg []byte) []byte {
	return ed25519.Sign(kp.private, msg)
}

// Verify reports whether sig is a valid signature by pk over msg.
func Verify(pk PublicKey, msg, sig []byte) bool {
	if len(sig) != SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pk[:]), msg, sig)
}
