// Package merkle implements the Distribution eligibility kernel: leaf
// hashing and sibling-path proof verification per spec.md §4.2. It is the
// one component with no direct teacher precedent (the teacher's shamap is
// a different, radix-16 trie structure); it is grounded instead on the
// go-ethereum-family repos in the retrieval pack, which is why it reaches
// for the same legacy-Keccak256 primitive (internal/crypto.Keccak256)
// rather than the teacher's Sha512Half.
package merkle

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"

	"github.com/vtoken-labs/vtoken/internal/crypto"
)

// MaxProofLevels is the hard bound on proof length (§6 constants).
const MaxProofLevels = 32

// Node is a single level of sibling hashes or a Merkle root.
type Node = [32]byte

var zeroNode Node

// ErrProofTooLong reports a proof longer than MaxProofLevels.
var ErrProofTooLong = errors.New("merkle: proof exceeds max levels")

// ErrLeafIndexOutOfRange reports a leaf index that cannot be addressed by
// the given proof length.
var ErrLeafIndexOutOfRange = errors.New("merkle: leaf index out of range for proof length")

// ErrZeroNode reports a supplied proof node or root equal to the all-zero
// sentinel, rejected to foreclose trivial second-preimages on an empty tree.
var ErrZeroNode = errors.New("merkle: zero node rejected")

// ErrRootMismatch reports that a proof does not reconstruct the expected root.
var ErrRootMismatch = errors.New("merkle: proof does not resolve to root")

// Leaf hashes the eligibility tuple exactly as spec.md §4.2 defines it:
// keccak(token_account || mint || action_id_le || amount_le).
func Leaf(tokenAccount, mint crypto.PublicKey, actionID, amount uint64) Node {
	var actionIDLE, amountLE [8]byte
	binary.LittleEndian.PutUint64(actionIDLE[:], actionID)
	binary.LittleEndian.PutUint64(amountLE[:], amount)
	return crypto.Keccak256(tokenAccount[:], mint[:], actionIDLE[:], amountLE[:])
}

// Verify checks that leaf, combined bottom-up with proof using leafIndex's
// bits to pick sibling order, resolves to root.
func Verify(leaf Node, leafIndex uint32, proof []Node, root Node) error {
	if len(proof) > MaxProofLevels {
		return ErrProofTooLong
	}
	if len(proof) > 0 && uint64(leafIndex) >= uint64(1)<<uint(len(proof)) {
		return ErrLeafIndexOutOfRange
	}
	if root == zeroNode {
		return ErrZeroNode
	}
	for _, sibling := range proof {
		if sibling == zeroNode {
			return ErrZeroNode
		}
	}

	running := leaf
	for i, sibling := range proof {
		bit := (leafIndex >> uint(i)) & 1
		var a, b Node
		if bit == 0 {
			a, b = running, sibling
		} else {
			a, b = sibling, running
		}
		running = crypto.Keccak256(a[:], b[:])
	}

	if running != root {
		return ErrRootMismatch
	}
	return nil
}
