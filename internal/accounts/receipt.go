package accounts

import "github.com/vtoken-labs/vtoken/internal/crypto"

// ReceiptAccountSize is the encoded length including the discriminator byte.
const ReceiptAccountSize = 1 + 32 + 8 + 1

// ReceiptAccount is a zero-semantic marker whose mere existence proves an
// action has run — the canonical at-most-once signal (spec.md §7). The
// same shape serves both the common Split/Convert receipt and the
// Distribution claim receipt; they differ only in PDA seeds
// (internal/core/pda.Receipt vs. ClaimReceipt), not in stored fields.
type ReceiptAccount struct {
	Mint     crypto.PublicKey
	ActionID uint64
	Bump     uint8
}

// Encode serializes a ReceiptAccount in declaration order.
func (r ReceiptAccount) Encode() []byte {
	buf := make([]byte, ReceiptAccountSize)
	buf[0] = byte(DiscriminatorReceipt)
	copy(buf[1:33], r.Mint[:])
	putActionID(buf[33:41], r.ActionID)
	buf[41] = r.Bump
	return buf
}

// DecodeReceiptAccount parses an encoded ReceiptAccount.
func DecodeReceiptAccount(data []byte) (ReceiptAccount, error) {
	var r ReceiptAccount
	if len(data) != ReceiptAccountSize {
		return r, ErrTooShort
	}
	if Discriminator(data[0]) != DiscriminatorReceipt {
		return r, ErrWrongDiscriminator
	}
	r.Mint, _ = crypto.NewPublicKey(data[1:33])
	r.ActionID = getActionID(data[33:41])
	r.Bump = data[41]
	return r, nil
}
