package accounts

import "github.com/vtoken-labs/vtoken/internal/crypto"

// MintAuthorityRecord is created once at mint initialization and never
// mutated afterward. Address = PDA("mint.authority" | mint | creator, bump).
type MintAuthorityRecord struct {
	Mint        crypto.PublicKey
	MintCreator crypto.PublicKey
	Bump        uint8
}

// Size is the encoded length including the discriminator byte.
const MintAuthorityRecordSize = 1 + 32 + 32 + 1

// Encode serializes r in declaration order, discriminator first.
func (r MintAuthorityRecord) Encode() []byte {
	buf := make([]byte, MintAuthorityRecordSize)
	buf[0] = byte(DiscriminatorMintAuthority)
	copy(buf[1:33], r.Mint[:])
	copy(buf[33:65], r.MintCreator[:])
	buf[65] = r.Bump
	return buf
}

// DecodeMintAuthorityRecord parses an encoded MintAuthorityRecord.
func DecodeMintAuthorityRecord(data []byte) (MintAuthorityRecord, error) {
	var r MintAuthorityRecord
	if len(data) != MintAuthorityRecordSize {
		return r, ErrTooShort
	}
	if Discriminator(data[0]) != DiscriminatorMintAuthority {
		return r, ErrWrongDiscriminator
	}
	r.Mint, _ = crypto.NewPublicKey(data[1:33])
	r.MintCreator, _ = crypto.NewPublicKey(data[33:65])
	r.Bump = data[65]
	return r, nil
}
