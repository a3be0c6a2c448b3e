package crypto

import (
	"crypto/sha256"

	"golang.org/x/crypto/sha3"
)

// Sha256 hashes the concatenation of parts, matching the base token
// runtime's real program-derived-address scheme (Solana's
// find_program_address is SHA-256 based), adapted in spirit from the
// teacher's indexHash (internal/core/ledger/keylet) which concatenates a
// domain tag with seed material before hashing.
func Sha256(parts ...[]byte) [32]byte {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Keccak256 hashes the concatenation of parts with the legacy Keccak-256
// permutation spec.md's Merkle kernel (§4.2) specifies, the same primitive
// go-ethereum-family repos in the retrieval pack use for leaf/node hashing.
func Keccak256(parts ...[]byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	for _, p := range parts {
		h.Write(p)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
