package ixcodec

import "github.com/vtoken-labs/vtoken/internal/crypto"

// InitializeVerificationConfigArgs decodes/encodes §6's
// InitializeVerificationConfigArgs: u8 op, u8 cpi_mode, u32 n, n x Pubkey32.
type InitializeVerificationConfigArgs struct {
	OpDiscriminator uint8
	CPIMode         bool
	Programs        []crypto.PublicKey
}

func DecodeInitializeVerificationConfigArgs(data []byte) (InitializeVerificationConfigArgs, error) {
	r := NewReader(data)
	var a InitializeVerificationConfigArgs
	op, err := r.ReadByte()
	if err != nil {
		return a, err
	}
	cpi, err := r.ReadBool()
	if err != nil {
		return a, err
	}
	programs, err := r.ReadPubkeyVec()
	if err != nil {
		return a, err
	}
	if err := r.Finish(); err != nil {
		return a, err
	}
	a.OpDiscriminator, a.CPIMode, a.Programs = op, cpi, programs
	return a, nil
}

func (a InitializeVerificationConfigArgs) Encode() []byte {
	w := NewWriter()
	w.WriteByte(a.OpDiscriminator)
	w.WriteBool(a.CPIMode)
	w.WritePubkeyVec(a.Programs)
	return w.Bytes()
}

// UpdateVerificationConfigArgs decodes/encodes §6's
// UpdateVerificationConfigArgs: u8 op, u8 cpi_mode, u8 offset, u32 n, n x Pubkey32.
type UpdateVerificationConfigArgs struct {
	OpDiscriminator uint8
	CPIMode         bool
	Offset          uint8
	Programs        []crypto.PublicKey
}

func DecodeUpdateVerificationConfigArgs(data []byte) (UpdateVerificationConfigArgs, error) {
	r := NewReader(data)
	var a UpdateVerificationConfigArgs
	op, err := r.ReadByte()
	if err != nil {
		return a, err
	}
	cpi, err := r.ReadBool()
	if err != nil {
		return a, err
	}
	offset, err := r.ReadByte()
	if err != nil {
		return a, err
	}
	programs, err := r.ReadPubkeyVec()
	if err != nil {
		return a, err
	}
	if err := r.Finish(); err != nil {
		return a, err
	}
	a.OpDiscriminator, a.CPIMode, a.Offset, a.Programs = op, cpi, offset, programs
	return a, nil
}

func (a UpdateVerificationConfigArgs) Encode() []byte {
	w := NewWriter()
	w.WriteByte(a.OpDiscriminator)
	w.WriteBool(a.CPIMode)
	w.WriteByte(a.Offset)
	w.WritePubkeyVec(a.Programs)
	return w.Bytes()
}

// TrimVerificationConfigArgs decodes/encodes §6's
// TrimVerificationConfigArgs: u8 op, u8 size, u8 close.
type TrimVerificationConfigArgs struct {
	OpDiscriminator uint8
	Size            uint8
	Close           bool
}

func DecodeTrimVerificationConfigArgs(data []byte) (TrimVerificationConfigArgs, error) {
	r := NewReader(data)
	var a TrimVerificationConfigArgs
	op, err := r.ReadByte()
	if err != nil {
		return a, err
	}
	size, err := r.ReadByte()
	if err != nil {
		return a, err
	}
	closeFlag, err := r.ReadBool()
	if err != nil {
		return a, err
	}
	if err := r.Finish(); err != nil {
		return a, err
	}
	a.OpDiscriminator, a.Size, a.Close = op, size, closeFlag
	return a, nil
}

func (a TrimVerificationConfigArgs) Encode() []byte {
	w := NewWriter()
	w.WriteByte(a.OpDiscriminator)
	w.WriteByte(a.Size)
	w.WriteBool(a.Close)
	return w.Bytes()
}

// RateArgs decodes/encodes §6's CreateRateArgs/UpdateRateArgs: u64
// action_id, u8 rounding, u8 num, u8 den (both ops share one shape).
type RateArgs struct {
	ActionID uint64
	Rounding uint8
	Num      uint8
	Den      uint8
}

func DecodeRateArgs(data []byte) (RateArgs, error) {
	r := NewReader(data)
	var a RateArgs
	actionID, err := r.ReadU64()
	if err != nil {
		return a, err
	}
	rounding, err := r.ReadByte()
	if err != nil {
		return a, err
	}
	num, err := r.ReadByte()
	if err != nil {
		return a, err
	}
	den, err := r.ReadByte()
	if err != nil {
		return a, err
	}
	if err := r.Finish(); err != nil {
		return a, err
	}
	a.ActionID, a.Rounding, a.Num, a.Den = actionID, rounding, num, den
	return a, nil
}

func (a RateArgs) Encode() []byte {
	w := NewWriter()
	w.WriteU64(a.ActionID)
	w.WriteByte(a.Rounding)
	w.WriteByte(a.Num)
	w.WriteByte(a.Den)
	return w.Bytes()
}

// ActionIDArgs decodes/encodes every Args shape that is just a bare u64
// action_id: CloseRateArgs, CloseActionReceiptArgs, SplitArgs.
type ActionIDArgs struct {
	ActionID uint64
}

func DecodeActionIDArgs(data []byte) (ActionIDArgs, error) {
	r := NewReader(data)
	var a ActionIDArgs
	actionID, err := r.ReadU64()
	if err != nil {
		return a, err
	}
	if err := r.Finish(); err != nil {
		return a, err
	}
	a.ActionID = actionID
	return a, nil
}

func (a ActionIDArgs) Encode() []byte {
	w := NewWriter()
	w.WriteU64(a.ActionID)
	return w.Bytes()
}

// ConvertArgs decodes/encodes §6's ConvertArgs: u64 action_id, u64 amount_to_convert.
type ConvertArgs struct {
	ActionID        uint64
	AmountToConvert uint64
}

func DecodeConvertArgs(data []byte) (ConvertArgs, error) {
	r := NewReader(data)
	var a ConvertArgs
	actionID, err := r.ReadU64()
	if err != nil {
		return a, err
	}
	amount, err := r.ReadU64()
	if err != nil {
		return a, err
	}
	if err := r.Finish(); err != nil {
		return a, err
	}
	a.ActionID, a.AmountToConvert = actionID, amount
	return a, nil
}

func (a ConvertArgs) Encode() []byte {
	w := NewWriter()
	w.WriteU64(a.ActionID)
	w.WriteU64(a.AmountToConvert)
	return w.Bytes()
}

// CreateDistributionEscrowArgs decodes/encodes §6's
// CreateDistributionEscrowArgs: u64 action_id, [u8;32] merkle_root.
type CreateDistributionEscrowArgs struct {
	ActionID   uint64
	MerkleRoot [32]byte
}

func DecodeCreateDistributionEscrowArgs(data []byte) (CreateDistributionEscrowArgs, error) {
	r := NewReader(data)
	var a CreateDistributionEscrowArgs
	actionID, err := r.ReadU64()
	if err != nil {
		return a, err
	}
	root, err := r.ReadNode32()
	if err != nil {
		return a, err
	}
	if err := r.Finish(); err != nil {
		return a, err
	}
	a.ActionID, a.MerkleRoot = actionID, root
	return a, nil
}

func (a CreateDistributionEscrowArgs) Encode() []byte {
	w := NewWriter()
	w.WriteU64(a.ActionID)
	w.WriteNode32(a.MerkleRoot)
	return w.Bytes()
}

// ClaimDistributionArgs decodes/encodes §6's ClaimDistributionArgs: u64
// action_id, u64 amount (!=0), [u8;32] root (!=0), u32 leaf_index, u8
// proof_present, optional u32 len + len x [u8;32].
type ClaimDistributionArgs struct {
	ActionID     uint64
	Amount       uint64
	Root         [32]byte
	LeafIndex    uint32
	ProofPresent bool
	Proof        [][32]byte
}

func DecodeClaimDistributionArgs(data []byte) (ClaimDistributionArgs, error) {
	r := NewReader(data)
	var a ClaimDistributionArgs
	var err error
	if a.ActionID, err = r.ReadU64(); err != nil {
		return a, err
	}
	if a.Amount, err = r.ReadU64(); err != nil {
		return a, err
	}
	if a.Root, err = r.ReadNode32(); err != nil {
		return a, err
	}
	if a.LeafIndex, err = r.ReadU32(); err != nil {
		return a, err
	}
	if a.ProofPresent, err = r.ReadBool(); err != nil {
		return a, err
	}
	if a.ProofPresent {
		if a.Proof, err = r.ReadNode32Vec(); err != nil {
			return a, err
		}
	}
	if err := r.Finish(); err != nil {
		return a, err
	}
	return a, nil
}

func (a ClaimDistributionArgs) Encode() []byte {
	w := NewWriter()
	w.WriteU64(a.ActionID)
	w.WriteU64(a.Amount)
	w.WriteNode32(a.Root)
	w.WriteU32(a.LeafIndex)
	w.WriteBool(a.ProofPresent)
	if a.ProofPresent {
		w.WriteNode32Vec(a.Proof)
	}
	return w.Bytes()
}

// CloseClaimReceiptArgs decodes/encodes §6's CloseClaimReceiptArgs: u64
// action_id, optional proof (u8 proof_present, optional u32 len + len x
// [u8;32]) — enough to re-derive the claim receipt PDA's proof-path seed
// without replaying amount/root/leaf_index.
type CloseClaimReceiptArgs struct {
	ActionID     uint64
	ProofPresent bool
	Proof        [][32]byte
}

func DecodeCloseClaimReceiptArgs(data []byte) (CloseClaimReceiptArgs, error) {
	r := NewReader(data)
	var a CloseClaimReceiptArgs
	var err error
	if a.ActionID, err = r.ReadU64(); err != nil {
		return a, err
	}
	if a.ProofPresent, err = r.ReadBool(); err != nil {
		return a, err
	}
	if a.ProofPresent {
		if a.Proof, err = r.ReadNode32Vec(); err != nil {
			return a, err
		}
	}
	if err := r.Finish(); err != nil {
		return a, err
	}
	return a, nil
}

func (a CloseClaimReceiptArgs) Encode() []byte {
	w := NewWriter()
	w.WriteU64(a.ActionID)
	w.WriteBool(a.ProofPresent)
	if a.ProofPresent {
		w.WriteNode32Vec(a.Proof)
	}
	return w.Bytes()
}

// CreateProofArgs decodes/encodes §6's CreateProofArgs: u64 action_id, u32
// len, len x [u8;32].
type CreateProofArgs struct {
	ActionID uint64
	Nodes    [][32]byte
}

func DecodeCreateProofArgs(data []byte) (CreateProofArgs, error) {
	r := NewReader(data)
	var a CreateProofArgs
	var err error
	if a.ActionID, err = r.ReadU64(); err != nil {
		return a, err
	}
	if a.Nodes, err = r.ReadNode32Vec(); err != nil {
		return a, err
	}
	if err := r.Finish(); err != nil {
		return a, err
	}
	return a, nil
}

func (a CreateProofArgs) Encode() []byte {
	w := NewWriter()
	w.WriteU64(a.ActionID)
	w.WriteNode32Vec(a.Nodes)
	return w.Bytes()
}

// UpdateProofArgs decodes/encodes §6's UpdateProofArgs: u64 action_id,
// [u8;32] data, u32 offset.
type UpdateProofArgs struct {
	ActionID uint64
	Data     [32]byte
	Offset   uint32
}

func DecodeUpdateProofArgs(data []byte) (UpdateProofArgs, error) {
	r := NewReader(data)
	var a UpdateProofArgs
	var err error
	if a.ActionID, err = r.ReadU64(); err != nil {
		return a, err
	}
	if a.Data, err = r.ReadNode32(); err != nil {
		return a, err
	}
	if a.Offset, err = r.ReadU32(); err != nil {
		return a, err
	}
	if err := r.Finish(); err != nil {
		return a, err
	}
	return a, nil
}

func (a UpdateProofArgs) Encode() []byte {
	w := NewWriter()
	w.WriteU64(a.ActionID)
	w.WriteNode32(a.Data)
	w.WriteU32(a.Offset)
	return w.Bytes()
}

// AmountArgs decodes/encodes the shared Mint/Burn/Transfer shape: u64 amount.
type AmountArgs struct {
	Amount uint64
}

func DecodeAmountArgs(data []byte) (AmountArgs, error) {
	r := NewReader(data)
	var a AmountArgs
	amount, err := r.ReadU64()
	if err != nil {
		return a, err
	}
	if err := r.Finish(); err != nil {
		return a, err
	}
	a.Amount = amount
	return a, nil
}

func (a AmountArgs) Encode() []byte {
	w := NewWriter()
	w.WriteU64(a.Amount)
	return w.Bytes()
}

// UpdateMetadataArgs decodes/encodes §6's UpdateMetadataArgs: u32 len + utf8
// field, u32 len + utf8 value.
type UpdateMetadataArgs struct {
	Field string
	Value string
}

func DecodeUpdateMetadataArgs(data []byte) (UpdateMetadataArgs, error) {
	r := NewReader(data)
	var a UpdateMetadataArgs
	var err error
	if a.Field, err = r.ReadString(); err != nil {
		return a, err
	}
	if a.Value, err = r.ReadString(); err != nil {
		return a, err
	}
	if err := r.Finish(); err != nil {
		return a, err
	}
	return a, nil
}

func (a UpdateMetadataArgs) Encode() []byte {
	w := NewWriter()
	w.WriteString(a.Field)
	w.WriteString(a.Value)
	return w.Bytes()
}

// VerifyArgs decodes/encodes §6's VerifyArgs: u8 ix, remaining bytes =
// inner instruction data.
type VerifyArgs struct {
	InnerOp   uint8
	InnerData []byte
}

func DecodeVerifyArgs(data []byte) (VerifyArgs, error) {
	r := NewReader(data)
	var a VerifyArgs
	ix, err := r.ReadByte()
	if err != nil {
		return a, err
	}
	a.InnerOp = ix
	a.InnerData = append([]byte{}, data[1:]...)
	return a, nil
}

func (a VerifyArgs) Encode() []byte {
	w := NewWriter()
	w.WriteByte(a.InnerOp)
	w.buf = append(w.buf, a.InnerData...)
	return w.Bytes()
}
