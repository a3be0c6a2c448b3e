package accounts

import "github.com/vtoken-labs/vtoken/internal/core/rate"

// RateAccountSize is the encoded length including the discriminator byte.
const RateAccountSize = 1 + 1 + 1 + 1 + 1

// RateAccount persists the (num, den, rounding) triple used by Split and
// Convert. Address = PDA("rate" | action_id_le | mint_from | mint_to, bump).
type RateAccount struct {
	Rate rate.Rate
	Bump uint8
}

// Encode serializes a RateAccount in declaration order.
func (r RateAccount) Encode() []byte {
	buf := make([]byte, RateAccountSize)
	buf[0] = byte(DiscriminatorRate)
	buf[1] = byte(r.Rate.Rounding)
	buf[2] = r.Rate.Num
	buf[3] = r.Rate.Den
	buf[4] = r.Bump
	return buf
}

// DecodeRateAccount parses an encoded RateAccount and validates the
// embedded rate's own invariants (numerator/denominator non-zero).
func DecodeRateAccount(data []byte) (RateAccount, error) {
	var r RateAccount
	if len(data) != RateAccountSize {
		return r, ErrTooShort
	}
	if Discriminator(data[0]) != DiscriminatorRate {
		return r, ErrWrongDiscriminator
	}
	rr, err := rate.New(data[2], data[3], rate.Rounding(data[1]))
	if err != nil {
		return r, err
	}
	r.Rate = rr
	r.Bump = data[4]
	return r, nil
}
