// Package accounts defines the on-disk layout of every account this
// program owns: a leading discriminator byte followed by fixed-width
// little-endian fields, per spec.md §6 ("Persistent account layouts").
// Encoding follows the teacher's general wire convention of explicit
// little-endian field encoding (internal/core/tx/sle, internal/codec/
// binary-codec) rather than a generic reflection-based codec.
package accounts

import "github.com/cockroachdb/errors"

// Discriminator identifies which account variant a blob of account data
// holds, letting account-slot #1 of shared operations be polymorphically
// typed (spec.md §9's "polymorphic account-slot #1").
type Discriminator uint8

const (
	DiscriminatorMintAuthority Discriminator = iota
	DiscriminatorVerificationConfig
	DiscriminatorRate
	DiscriminatorReceipt
	DiscriminatorProof
)

// MaxVerificationPrograms bounds the Verification Config's programs list (§6).
const MaxVerificationPrograms = 10

// ErrTooShort reports an account buffer too short to hold its discriminated layout.
var ErrTooShort = errors.New("accounts: buffer too short")

// ErrWrongDiscriminator reports a buffer whose leading byte does not match
// the variant the caller asked to decode.
var ErrWrongDiscriminator = errors.New("accounts: wrong discriminator")

// PeekDiscriminator reads the leading variant byte without validating the
// rest of the buffer, for account-slot #1 polymorphic dispatch.
func PeekDiscriminator(data []byte) (Discriminator, error) {
	if len(data) < 1 {
		return 0, ErrTooShort
	}
	return Discriminator(data[0]), nil
}
