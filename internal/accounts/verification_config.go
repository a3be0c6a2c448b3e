package accounts

import (
	"github.com/cockroachdb/errors"

	"github.com/vtoken-labs/vtoken/internal/crypto"
)

// ErrInvalidVerificationConfig reports a list longer than
// MaxVerificationPrograms, a zero-address entry, or an empty open list.
var ErrInvalidVerificationConfig = errors.New("accounts: invalid verification config")

// VerificationConfig is keyed per (mint, op_discriminator). Its Programs
// list drives both §4.5's dispatcher and, for the Transfer op only, the
// extra-meta mirror.
type VerificationConfig struct {
	OpDiscriminator uint8
	CPIMode         bool
	Bump            uint8
	Programs        []crypto.PublicKey
}

// Validate enforces the invariants from spec.md §3: no zero addresses,
// non-empty while the account exists, length within bound.
func (c VerificationConfig) Validate() error {
	if len(c.Programs) == 0 || len(c.Programs) > MaxVerificationPrograms {
		return ErrInvalidVerificationConfig
	}
	for _, p := range c.Programs {
		if p.IsZero() {
			return ErrInvalidVerificationConfig
		}
	}
	return nil
}

// Encode serializes c. Validate should be called first; Encode does not
// re-check invariants so that callers can persist mid-mutation states
// (e.g. TrimVerificationConfig's close=false keeps all other fields) that
// Validate would reject on its own.
func (c VerificationConfig) Encode() []byte {
	buf := make([]byte, 4+len(c.Programs)*32)
	buf[0] = byte(DiscriminatorVerificationConfig)
	buf[1] = c.OpDiscriminator
	if c.CPIMode {
		buf[2] = 1
	}
	buf[3] = c.Bump
	for i, p := range c.Programs {
		copy(buf[4+i*32:4+(i+1)*32], p[:])
	}
	return buf
}

// DecodeVerificationConfig parses an encoded VerificationConfig without
// enforcing Validate; callers that need the invariant call Validate
// explicitly (load-time invariant violations surface as
// invalid-account-data per §4.1/§7, distinct from decode failures).
func DecodeVerificationConfig(data []byte) (VerificationConfig, error) {
	var c VerificationConfig
	if len(data) < 4 {
		return c, ErrTooShort
	}
	if Discriminator(data[0]) != DiscriminatorVerificationConfig {
		return c, ErrWrongDiscriminator
	}
	if (len(data)-4)%32 != 0 {
		return c, ErrTooShort
	}
	c.OpDiscriminator = data[1]
	c.CPIMode = data[2] != 0
	c.Bump = data[3]
	n := (len(data) - 4) / 32
	c.Programs = make([]crypto.PublicKey, n)
	for i := 0; i < n; i++ {
		c.Programs[i], _ = crypto.NewPublicKey(data[4+i*32 : 4+(i+1)*32])
	}
	return c, nil
}

// WithOffsetWrite applies a sparse write at offset, extending the list when
// offset+len(values) exceeds the current length and leaving interior
// unwritten positions unchanged — spec.md §9's Sparse-vs-dense design
// note, option (a). Per the note's resolved open question, offset beyond
// the current length is rejected outright rather than left as a silent gap.
func (c VerificationConfig) WithOffsetWrite(offset uint8, values []crypto.PublicKey) (VerificationConfig, error) {
	if int(offset) > len(c.Programs) {
		return VerificationConfig{}, ErrInvalidVerificationConfig
	}
	end := int(offset) + len(values)
	if end > MaxVerificationPrograms {
		return VerificationConfig{}, ErrInvalidVerificationConfig
	}

	next := c
	if end > len(next.Programs) {
		grown := make([]crypto.PublicKey, end)
		copy(grown, next.Programs)
		next.Programs = grown
	} else {
		next.Programs = append([]crypto.PublicKey{}, next.Programs...)
	}
	copy(next.Programs[offset:end], values)
	return next, nil
}

// Trim shrinks the list to newSize, or reports closure when newSize==0 and
// close is requested.
func (c VerificationConfig) Trim(newSize uint8, close bool) (VerificationConfig, bool, error) {
	if int(newSize) > len(c.Programs) {
		return VerificationConfig{}, false, ErrInvalidVerificationConfig
	}
	if newSize == 0 {
		if !close {
			return VerificationConfig{}, false, ErrInvalidVerificationConfig
		}
		return VerificationConfig{}, true, nil
	}
	next := c
	next.Programs = append([]crypto.PublicKey{}, c.Programs[:newSize]...)
	return next, false, nil
}
