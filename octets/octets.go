// Package octets implements Bytes, the immutable length-known blob type.
// New and FromString copy their input, so the resulting Bytes owns its
// backing array; Wrap adopts the caller's slice without copying, and the
// caller then must not modify it.
//
// It follows a small-value-type-plus-derived-accessors shape: one
// primitive (a byte slice) with a handful of read-only methods layered on
// top, rather than a mutable buffer type doing double duty.
package octets

import (
	"unicode/utf8"

	"github.com/arloliu/pbwire/errs"
	"github.com/arloliu/pbwire/internal/leconv"
	"github.com/arloliu/pbwire/varint"
)

// Bytes is an immutable, length-known blob of 0..2^31-1 octets. Two Bytes
// values are equal (via Equal) when their contents match; identity is by
// content, not by backing storage.
type Bytes struct {
	data []byte
}

// Empty is the zero-length Bytes value.
var Empty = Bytes{}

// New copies src into a freshly owned Bytes. Use this whenever the caller
// cannot guarantee src outlives the returned value.
func New(src []byte) Bytes {
	if len(src) == 0 {
		return Empty
	}

	owned := make([]byte, len(src))
	copy(owned, src)

	return Bytes{data: owned}
}

// Wrap adopts src without copying. Callers must guarantee src is never
// mutated afterward; this is a "share a backing store" optimization that
// stays invisible to callers as long as the no-mutation rule holds.
func Wrap(src []byte) Bytes {
	return Bytes{data: src}
}

// FromString copies s's bytes into a new Bytes.
func FromString(s string) Bytes {
	return New([]byte(s))
}

// Len returns the number of octets in b.
func (b Bytes) Len() int { return len(b.data) }

// ByteAt returns the octet at absolute index i.
func (b Bytes) ByteAt(i int) (byte, error) {
	if i < 0 || i >= len(b.data) {
		return 0, errs.ErrBufferUnderflow
	}

	return b.data[i], nil
}

// Slice returns a new Bytes sharing storage with b, covering [off, off+length).
// Because Bytes is immutable end-to-end, sharing storage here is safe: no
// caller can ever observe a mutation through either value.
func (b Bytes) Slice(off, length int) (Bytes, error) {
	if off < 0 || length < 0 || off+length > len(b.data) {
		return Bytes{}, errs.ErrBufferUnderflow
	}

	return Bytes{data: b.data[off : off+length]}, nil
}

// Raw returns the backing slice. Callers must not mutate it; doing so
// violates Bytes' immutability contract and is undefined behavior for any
// other Bytes value sharing the same storage via Slice.
func (b Bytes) Raw() []byte { return b.data }

// AsUTF8String interprets the full content as UTF-8 text without validation.
// Use parser.ReadString for validated decoding of wire-format STRING fields.
func (b Bytes) AsUTF8String() string { return string(b.data) }

// MatchesPrefix reports whether b begins with other's content.
func (b Bytes) MatchesPrefix(other Bytes) bool {
	if len(other.data) > len(b.data) {
		return false
	}

	for i, o := range other.data {
		if b.data[i] != o {
			return false
		}
	}

	return true
}

// Contains reports whether other's content occurs in b starting at offset.
func (b Bytes) Contains(offset int, other Bytes) bool {
	if offset < 0 || offset+len(other.data) > len(b.data) {
		return false
	}

	for i, o := range other.data {
		if b.data[offset+i] != o {
			return false
		}
	}

	return true
}

// GetInt32 reads a little-endian int32 at absolute offset off.
func (b Bytes) GetInt32(off int) (int32, error) {
	return leconv.ReadInt32LE(b.data, off)
}

// GetInt64 reads a little-endian int64 at absolute offset off.
func (b Bytes) GetInt64(off int) (int64, error) {
	return leconv.ReadInt64LE(b.data, off)
}

// GetVarInt reads a varint at absolute offset off, optionally zig-zag
// decoding it, and returns the decoded value along with the number of bytes
// consumed.
func (b Bytes) GetVarInt(off int, zigzag bool) (int32, int, error) {
	if off < 0 || off > len(b.data) {
		return 0, 0, errs.ErrBufferUnderflow
	}

	raw, n, err := varint.ReadUint32(b.data[off:])
	if err != nil {
		return 0, 0, err
	}

	if zigzag {
		return varint.ZigZagDecode32(raw), n, nil
	}

	return int32(raw), n, nil //nolint:gosec
}

// GetVarLong is the 64-bit counterpart of GetVarInt.
func (b Bytes) GetVarLong(off int, zigzag bool) (int64, int, error) {
	if off < 0 || off > len(b.data) {
		return 0, 0, errs.ErrBufferUnderflow
	}

	raw, n, err := varint.ReadUint64(b.data[off:])
	if err != nil {
		return 0, 0, err
	}

	if zigzag {
		return varint.ZigZagDecode64(raw), n, nil
	}

	return int64(raw), n, nil //nolint:gosec
}

// Equal reports whether a and b have identical content.
func Equal(a, b Bytes) bool {
	if len(a.data) != len(b.data) {
		return false
	}

	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}

	return true
}

// ValidUTF8 reports whether b's content is well-formed UTF-8 (non-BMP code
// points count as 4 bytes; lone surrogates are rejected by utf8.Valid).
func (b Bytes) ValidUTF8() bool {
	return utf8.Valid(b.data)
}
