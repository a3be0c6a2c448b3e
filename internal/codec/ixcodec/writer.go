package ixcodec

import (
	"encoding/binary"

	"github.com/vtoken-labs/vtoken/internal/crypto"
)

// Writer accumulates an instruction's op_args bytes in the same
// declaration order Reader expects them back in.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// WriteByte appends a single byte.
func (w *Writer) WriteByte(b byte) {
	w.buf = append(w.buf, b)
}

// WriteBool appends a byte, 1 for true and 0 for false.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteByte(1)
	} else {
		w.WriteByte(0)
	}
}

// WriteU32 appends a little-endian u32.
func (w *Writer) WriteU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteU64 appends a little-endian u64.
func (w *Writer) WriteU64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteNode32 appends a fixed 32-byte node.
func (w *Writer) WriteNode32(n [32]byte) {
	w.buf = append(w.buf, n[:]...)
}

// WritePubkey appends a 32-byte pubkey.
func (w *Writer) WritePubkey(pk crypto.PublicKey) {
	w.buf = append(w.buf, pk[:]...)
}

// WriteString appends a u32 length prefix followed by s's UTF-8 bytes.
func (w *Writer) WriteString(s string) {
	w.WriteU32(uint32(len(s)))
	w.buf = append(w.buf, s...)
}

// WritePubkeyVec appends a u32 length prefix followed by each pubkey.
func (w *Writer) WritePubkeyVec(pks []crypto.PublicKey) {
	w.WriteU32(uint32(len(pks)))
	for _, pk := range pks {
		w.WritePubkey(pk)
	}
}

// WriteNode32Vec appends a u32 length prefix followed by each node.
func (w *Writer) WriteNode32Vec(nodes [][32]byte) {
	w.WriteU32(uint32(len(nodes)))
	for _, n := range nodes {
		w.WriteNode32(n)
	}
}
