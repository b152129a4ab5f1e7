// Package buffer implements the sequential and random-access data
// abstractions: RandomAccessData, ReadableSequentialData,
// WritableSequentialData, and the concrete BufferedData variants
// (heap-backed, off-heap, stream-backed, plus slice/view derivation).
//
// Buffer reuse follows the same shape as internal/pool.ByteBuffer — a
// reusable growable byte buffer — generalized here into a
// capability-interface design: small composable interfaces rather than
// one base class with every method on it.
package buffer

import "github.com/arloliu/pbwire/endian"

// RandomAccessData is the polymorphic capability this package builds on:
// length plus indexed byte access at absolute offset. Every convenience
// getter a caller needs derives from these two primitives.
type RandomAccessData interface {
	// Length returns the total number of addressable bytes.
	Length() int64
	// GetByte returns the byte at absolute offset off.
	GetByte(off int64) (byte, error)
	// GetBytes copies n bytes starting at absolute offset off into dst
	// starting at dstOff, without moving any cursor. It returns the number
	// of bytes actually copied, clamped by the source's length.
	GetBytes(off int64, dst []byte, dstOff int64, n int64) (int64, error)
}

// ReadableSequentialData is a stateful read cursor over some backing data.
// position/limit/capacity always satisfy 0 <= position <= limit <= capacity;
// for stream-backed implementations, limit and capacity may be MaxPosition
// (effectively unbounded).
type ReadableSequentialData interface {
	// Position returns the next read index.
	Position() int64
	// Limit returns the upper bound for reads.
	Limit() int64
	// SetLimit sets the limit, clamped to [Position(), Capacity()].
	SetLimit(int64)
	// Capacity returns the underlying maximum.
	Capacity() int64
	// Remaining returns Limit() - Position().
	Remaining() int64
	// HasRemaining reports whether Remaining() > 0.
	HasRemaining() bool
	// Skip advances position by min(n, Remaining()) and returns the number
	// of bytes actually skipped. Stream-backed implementations may block.
	Skip(n int64) (int64, error)
	// ReadByte reads and returns the next byte, advancing position by 1.
	ReadByte() (byte, error)
	// ReadBytes reads exactly n bytes and returns them as a freshly
	// allocated, owned Bytes-style slice (always a copy).
	ReadBytes(n int64) ([]byte, error)
	// AtEOF reports whether position has reached limit. A tag read
	// attempted at EOF is not an error; callers use this to distinguish
	// "nothing left to read" from "underflow mid-field".
	AtEOF() bool
}

// WritableSequentialData is a stateful write cursor. Writes past limit are
// BUFFER_OVERFLOW on fixed-size buffers; streaming writers may instead grow.
type WritableSequentialData interface {
	Position() int64
	Limit() int64
	Capacity() int64
	Remaining() int64
	HasRemaining() bool

	// WriteByte writes a single byte, advancing position by 1.
	WriteByte(b byte) error
	// WriteBytes writes all of data, advancing position by len(data).
	WriteBytes(data []byte) error
	// WriteInt writes a 4-byte integer in the given byte order.
	WriteInt(v int32, order endian.EndianEngine) error
	// WriteLong writes an 8-byte integer in the given byte order.
	WriteLong(v int64, order endian.EndianEngine) error
	// WriteFloat writes a 4-byte IEEE-754 float in the given byte order.
	WriteFloat(v float32, order endian.EndianEngine) error
	// WriteDouble writes an 8-byte IEEE-754 float in the given byte order.
	WriteDouble(v float64, order endian.EndianEngine) error
	// WriteVarInt writes v as a 32-bit varint, zig-zag encoded if zigzag.
	WriteVarInt(v int32, zigzag bool) error
	// WriteVarLong writes v as a 64-bit varint, zig-zag encoded if zigzag.
	WriteVarLong(v int64, zigzag bool) error
}

// BufferedData is a finite sequential buffer that also exposes random
// access and supports deriving slice/view sub-buffers.
type BufferedData interface {
	ReadableSequentialData
	WritableSequentialData
	RandomAccessData

	// Reset sets position back to 0 without touching limit.
	Reset()
	// Flip sets limit = position, then position = 0 — the read-after-write
	// idiom for a buffer that was just filled by writes.
	Flip()
	// Slice returns a new buffer sharing storage with the receiver,
	// covering [off, off+length) with its own independent position/limit.
	// The receiver's position/limit are left untouched.
	Slice(off, length int64) (BufferedData, error)
	// View returns a new buffer sharing storage with the receiver, starting
	// at the receiver's current position and covering length bytes. The
	// receiver's position advances by length. Fails if length exceeds the
	// receiver's remaining bytes.
	View(length int64) (BufferedData, error)
	// Bytes returns the live backing slice from 0 to Limit(), for
	// diagnostics and for handing off to APIs that want a plain []byte
	// (e.g. hashsink, compress). Mutating the returned slice mutates the
	// buffer.
	Bytes() []byte
	// String renders a diagnostic description including the buffer's
	// content from 0..limit, unaffected by position.
	String() string
}

// MaxPosition is the "effectively unbounded" sentinel stream-backed
// sequential data uses for Limit()/Capacity().
const MaxPosition = int64(1<<63 - 1)
