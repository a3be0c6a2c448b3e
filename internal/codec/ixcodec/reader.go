// Package ixcodec encodes and decodes instruction argument payloads per
// spec.md §6: little-endian integers, u32-length-prefixed vectors. The
// cursor-based Reader mirrors the shape of the teacher's binary-codec
// BinaryParser interface (ReadByte/ReadBytes/Peek/HasMore), adapted from
// field-tagged XRPL serialization to this program's flat, declaration-
// order layouts.
package ixcodec

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"

	"github.com/vtoken-labs/vtoken/internal/crypto"
)

// ErrTruncated reports a buffer that ended before a value could be read.
var ErrTruncated = errors.New("ixcodec: truncated instruction data")

// ErrTrailingData reports unconsumed bytes after decoding a fixed-shape Args.
var ErrTrailingData = errors.New("ixcodec: trailing data after decode")

// Reader is a forward-only cursor over an instruction's op_args bytes.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for sequential decoding.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// HasMore reports whether any bytes remain.
func (r *Reader) HasMore() bool {
	return r.pos < len(r.buf)
}

// Remaining returns the count of unconsumed bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// ReadByte consumes and returns a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, ErrTruncated
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// ReadBool consumes a byte and reports it as a boolean (non-zero = true).
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadByte()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

// ReadBytes consumes and returns the next n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if r.pos+n > len(r.buf) {
		return nil, ErrTruncated
	}
	out := r.buf[r.pos : r.pos+n]
	r.pos += n
	return out, nil
}

// ReadU32 consumes a little-endian u32.
func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadU64 consumes a little-endian u64.
func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadNode32 consumes a fixed 32-byte node (merkle node or pubkey shape).
func (r *Reader) ReadNode32() ([32]byte, error) {
	var out [32]byte
	b, err := r.ReadBytes(32)
	if err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}

// ReadPubkey consumes a 32-byte pubkey.
func (r *Reader) ReadPubkey() (crypto.PublicKey, error) {
	b, err := r.ReadBytes(32)
	if err != nil {
		return crypto.PublicKey{}, err
	}
	return crypto.NewPublicKey(b)
}

// ReadPubkeyVec consumes a u32 length prefix followed by that many pubkeys.
func (r *Reader) ReadPubkeyVec() ([]crypto.PublicKey, error) {
	n, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	out := make([]crypto.PublicKey, n)
	for i := range out {
		out[i], err = r.ReadPubkey()
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ReadNode32Vec consumes a u32 length prefix followed by that many 32-byte nodes.
func (r *Reader) ReadNode32Vec() ([][32]byte, error) {
	n, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	out := make([][32]byte, n)
	for i := range out {
		out[i], err = r.ReadNode32()
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ReadString consumes a u32 length prefix followed by that many UTF-8 bytes.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadU32()
	if err != nil {
		return "", err
	}
	b, err := r.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Finish reports ErrTrailingData if bytes remain, used after decoding a
// fixed-shape Args to catch malformed instruction data.
func (r *Reader) Finish() error {
	if r.HasMore() {
		return ErrTrailingData
	}
	return nil
}
