// Package varint implements the protobuf variable-length integer encoding:
// 7 data bits per byte, MSB set on every non-terminal byte, little-endian
// group order, plus the zig-zag remapping used for SINT32/SINT64 fields.
//
// The size-computation helpers (SizeOf32/SizeOf64/SizeOf32Signed) use the
// same fast inline bit-width comparison used elsewhere for uvarint length
// (encoding/tag.go's varintLen); SizeOf32Signed additionally reports the
// constant 10-byte form protobuf mandates for negative 32-bit values.
package varint

import "github.com/arloliu/pbwire/errs"

// MaxVarintLen32 and MaxVarintLen64 bound the number of bytes a varint of
// the given width can occupy on the wire.
const (
	MaxVarintLen32 = 5
	MaxVarintLen64 = 10
)

// ZigZagEncode32 remaps a signed 32-bit value to an unsigned one so that
// small-magnitude negatives encode compactly: 0, -1, 1, -2, 2 ... become
// 0, 1, 2, 3, 4 ...
func ZigZagEncode32(v int32) uint32 {
	return (uint32(v) << 1) ^ uint32(v>>31)
}

// ZigZagDecode32 reverses ZigZagEncode32.
func ZigZagDecode32(v uint32) int32 {
	return int32(v>>1) ^ -int32(v&1)
}

// ZigZagEncode64 is the 64-bit counterpart of ZigZagEncode32. The shift-right
// amount (63) matches the formula used to delta-encode timestamps in the
// teacher package (encoding/ts_delta.go: `(v << 1) ^ (v >> 63)`).
func ZigZagEncode64(v int64) uint64 {
	return (uint64(v) << 1) ^ uint64(v>>63)
}

// ZigZagDecode64 reverses ZigZagEncode64.
func ZigZagDecode64(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}

// SizeOf32 returns the number of bytes AppendUint32 would emit for v, at
// most 5. v is treated as unsigned, so a value with the high bit set is not
// sign-extended; callers sizing a negative INT32 use SizeOf32Signed, which
// reports the 10-byte sign-extended form.
func SizeOf32(v uint32) int {
	return sizeOfBits(uint64(v))
}

// SizeOf32Signed returns the wire size of a signed 32-bit value encoded as
// protobuf's INT32 (not SINT32) does: sign-extended to 64 bits first, so
// negative values always cost 10 bytes.
func SizeOf32Signed(v int32) int {
	if v < 0 {
		return MaxVarintLen64
	}

	return sizeOfBits(uint64(v))
}

// SizeOf64 returns the number of bytes AppendUint64 would emit for v.
func SizeOf64(v uint64) int {
	return sizeOfBits(v)
}

// sizeOfBits mirrors varintLen's fast inline bit-width ladder
// (encoding/tag.go), extended from 64 down through 1-bit groups.
func sizeOfBits(n uint64) int {
	switch {
	case n < 1<<7:
		return 1
	case n < 1<<14:
		return 2
	case n < 1<<21:
		return 3
	case n < 1<<28:
		return 4
	case n < 1<<35:
		return 5
	case n < 1<<42:
		return 6
	case n < 1<<49:
		return 7
	case n < 1<<56:
		return 8
	case n < 1<<63:
		return 9
	default:
		return 10
	}
}

// AppendUint32 appends the varint encoding of v to buf and returns the
// extended slice.
func AppendUint32(buf []byte, v uint32) []byte {
	return AppendUint64(buf, uint64(v))
}

// AppendUint64 appends the varint encoding of v to buf and returns the
// extended slice. It never allocates beyond what append itself may need.
func AppendUint64(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}

	return append(buf, byte(v))
}

// AppendInt32 appends v sign-extended to 64 bits, matching protobuf's INT32
// wire encoding (not SINT32 — callers wanting the compact zig-zag form must
// call ZigZagEncode32 first).
func AppendInt32(buf []byte, v int32) []byte {
	return AppendUint64(buf, uint64(int64(v)))
}

// AppendInt64 appends the raw two's-complement varint encoding of v.
func AppendInt64(buf []byte, v int64) []byte {
	return AppendUint64(buf, uint64(v))
}

// ReadUint64 decodes a varint from a contiguous byte slice starting at
// offset 0, the fast path used when reading from heap-backed memory via
// direct byte indexing. It returns the decoded value and the number of
// bytes consumed.
//
// Reading more than MaxVarintLen64 (10) continuation bytes is a malformed
// encoding and reported via errs.ErrMalformed. Running out of input before
// the terminal byte is reported as errs.ErrBufferUnderflow.
func ReadUint64(buf []byte) (uint64, int, error) {
	var x uint64
	for i := 0; i < MaxVarintLen64; i++ {
		if i >= len(buf) {
			return 0, 0, errs.ErrBufferUnderflow
		}

		b := buf[i]
		if i == MaxVarintLen64-1 && b >= 0x80 {
			// The 11th continuation bit (10 bytes already consumed with the
			// high bit still set) is malformed.
			return 0, 0, errs.ErrMalformed
		}

		x |= uint64(b&0x7f) << (7 * uint(i))
		if b < 0x80 {
			return x, i + 1, nil
		}
	}

	return 0, 0, errs.ErrMalformed
}

// ReadUint32 decodes a varint and truncates it to 32 bits, discarding the
// high bits exactly as protobuf's UINT32/INT32 readers do for an
// over-wide encoding.
func ReadUint32(buf []byte) (uint32, int, error) {
	v, n, err := ReadUint64(buf)
	if err != nil {
		return 0, 0, err
	}

	return uint32(v), n, nil
}

// ByteReader is the minimal capability ReadStreamUint64 needs: a single-byte read
// that reports io.EOF (or any error) when exhausted. buffer.ReadableSequentialData
// implementations satisfy this directly via their ReadByte method.
type ByteReader interface {
	ReadByte() (byte, error)
}

// ReadStreamUint64 decodes a varint one byte at a time via r.ReadByte, the
// slow path used for stream-backed sequential data that cannot expose a
// contiguous backing array.
func ReadStreamUint64(r ByteReader) (uint64, int, error) {
	var x uint64
	for i := 0; i < MaxVarintLen64; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, 0, err
		}

		if i == MaxVarintLen64-1 && b >= 0x80 {
			return 0, 0, errs.ErrMalformed
		}

		x |= uint64(b&0x7f) << (7 * uint(i))
		if b < 0x80 {
			return x, i + 1, nil
		}
	}

	return 0, 0, errs.ErrMalformed
}
