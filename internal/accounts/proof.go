package accounts

import (
	"github.com/cockroachdb/errors"

	"github.com/vtoken-labs/vtoken/internal/core/merkle"
)

// ErrInvalidProof reports a proof account whose node list is empty, over
// the level bound, or contains a zero node.
var ErrInvalidProof = errors.New("accounts: invalid proof account")

// ProofAccount persists a sibling-path proof for later Distribution
// claims. Address = PDA("proof" | token_account | action_id_le, bump).
type ProofAccount struct {
	Bump uint8
	Data []merkle.Node
}

// Validate enforces the 1..MAX_PROOF_LEVELS length bound and zero-node
// rejection from spec.md §3/§4.2.
func (p ProofAccount) Validate() error {
	if len(p.Data) == 0 || len(p.Data) > merkle.MaxProofLevels {
		return ErrInvalidProof
	}
	var zero merkle.Node
	for _, n := range p.Data {
		if n == zero {
			return ErrInvalidProof
		}
	}
	return nil
}

// Encode serializes a ProofAccount. Validate should be called first.
func (p ProofAccount) Encode() []byte {
	buf := make([]byte, 2+len(p.Data)*32)
	buf[0] = byte(DiscriminatorProof)
	buf[1] = p.Bump
	for i, n := range p.Data {
		copy(buf[2+i*32:2+(i+1)*32], n[:])
	}
	return buf
}

// DecodeProofAccount parses an encoded ProofAccount without enforcing
// Validate; callers invoke Validate explicitly at load time.
func DecodeProofAccount(data []byte) (ProofAccount, error) {
	var p ProofAccount
	if len(data) < 2 {
		return p, ErrTooShort
	}
	if Discriminator(data[0]) != DiscriminatorProof {
		return p, ErrWrongDiscriminator
	}
	if (len(data)-2)%32 != 0 {
		return p, ErrTooShort
	}
	p.Bump = data[1]
	n := (len(data) - 2) / 32
	p.Data = make([]merkle.Node, n)
	for i := 0; i < n; i++ {
		copy(p.Data[i][:], data[2+i*32:2+(i+1)*32])
	}
	return p, nil
}

// UpdateAt overwrites or appends at offset: offset==len(Data) appends,
// offset<len(Data) overwrites in place, offset>len(Data) is rejected.
func (p ProofAccount) UpdateAt(offset uint32, node merkle.Node) (ProofAccount, error) {
	if int(offset) > len(p.Data) {
		return ProofAccount{}, ErrInvalidProof
	}
	next := p
	if int(offset) == len(p.Data) {
		if len(p.Data)+1 > merkle.MaxProofLevels {
			return ProofAccount{}, ErrInvalidProof
		}
		next.Data = append(append([]merkle.Node{}, p.Data...), node)
	} else {
		next.Data = append([]merkle.Node{}, p.Data...)
		next.Data[offset] = node
	}
	return next, nil
}
