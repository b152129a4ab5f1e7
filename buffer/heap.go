package buffer

import (
	"fmt"
	"math"

	"github.com/arloliu/pbwire/endian"
	"github.com/arloliu/pbwire/errs"
	"github.com/arloliu/pbwire/varint"
)

// HeapBuffer is a BufferedData backed by a plain Go byte slice. It is the
// default buffer kind: allocate it with Allocate or wrap an existing slice
// with Wrap. It is not safe for concurrent use: its position and limit
// are plain fields with no synchronization.
type HeapBuffer struct {
	data []byte // len(data) == capacity; writes/reads are bound-checked against limit
	pos  int64
	lim  int64
}

var (
	_ BufferedData = (*HeapBuffer)(nil)
)

// Allocate creates a new heap-backed buffer of n bytes: length=n, position=0,
// limit=n.
func Allocate(n int) *HeapBuffer {
	return &HeapBuffer{data: make([]byte, n), lim: int64(n)}
}

// Wrap shares storage with data: position=0, limit=len(data).
func Wrap(data []byte) *HeapBuffer {
	return &HeapBuffer{data: data, lim: int64(len(data))}
}

// WrapRange shares storage with data, with an initial position of off and
// limit of off+length.
func WrapRange(data []byte, off, length int) (*HeapBuffer, error) {
	if off < 0 || length < 0 || off+length > len(data) {
		return nil, errs.ErrBufferUnderflow
	}

	return &HeapBuffer{data: data, pos: int64(off), lim: int64(off + length)}, nil
}

func (h *HeapBuffer) Length() int64 { return int64(len(h.data)) }

func (h *HeapBuffer) GetByte(off int64) (byte, error) {
	if off < 0 || off >= int64(len(h.data)) {
		return 0, errs.ErrBufferUnderflow
	}

	return h.data[off], nil
}

func (h *HeapBuffer) GetBytes(off int64, dst []byte, dstOff int64, n int64) (int64, error) {
	if off < 0 || dstOff < 0 {
		return 0, errs.ErrBufferUnderflow
	}

	avail := int64(len(h.data)) - off
	if avail < 0 {
		avail = 0
	}

	toCopy := n
	if toCopy > avail {
		toCopy = avail
	}

	dstAvail := int64(len(dst)) - dstOff
	if toCopy > dstAvail {
		toCopy = dstAvail
	}

	if toCopy <= 0 {
		return 0, nil
	}

	copy(dst[dstOff:dstOff+toCopy], h.data[off:off+toCopy])

	return toCopy, nil
}

func (h *HeapBuffer) Position() int64 { return h.pos }
func (h *HeapBuffer) Limit() int64    { return h.lim }
func (h *HeapBuffer) Capacity() int64 { return int64(len(h.data)) }

func (h *HeapBuffer) SetLimit(x int64) {
	if x < h.pos {
		x = h.pos
	}
	if cap := int64(len(h.data)); x > cap {
		x = cap
	}
	h.lim = x
}

func (h *HeapBuffer) Remaining() int64   { return h.lim - h.pos }
func (h *HeapBuffer) HasRemaining() bool { return h.Remaining() > 0 }
func (h *HeapBuffer) AtEOF() bool        { return h.pos >= h.lim }

func (h *HeapBuffer) Skip(n int64) (int64, error) {
	if n < 0 {
		n = 0
	}

	rem := h.Remaining()
	if n > rem {
		n = rem
	}
	h.pos += n

	return n, nil
}

func (h *HeapBuffer) ReadByte() (byte, error) {
	if h.pos >= h.lim {
		return 0, errs.ErrBufferUnderflow
	}

	b := h.data[h.pos]
	h.pos++

	return b, nil
}

func (h *HeapBuffer) ReadBytes(n int64) ([]byte, error) {
	if n < 0 || h.pos+n > h.lim {
		return nil, errs.ErrBufferUnderflow
	}

	// Always copy: decoded data must be immune to later mutation of the
	// source buffer.
	owned := make([]byte, n)
	copy(owned, h.data[h.pos:h.pos+n])
	h.pos += n

	return owned, nil
}

func (h *HeapBuffer) WriteByte(b byte) error {
	if h.pos >= h.lim {
		return errs.ErrBufferOverflow
	}

	h.data[h.pos] = b
	h.pos++

	return nil
}

func (h *HeapBuffer) WriteBytes(data []byte) error {
	if h.pos+int64(len(data)) > h.lim {
		return errs.ErrBufferOverflow
	}

	copy(h.data[h.pos:], data)
	h.pos += int64(len(data))

	return nil
}

func (h *HeapBuffer) WriteInt(v int32, order endian.EndianEngine) error {
	if h.pos+4 > h.lim {
		return errs.ErrBufferOverflow
	}

	order.PutUint32(h.data[h.pos:h.pos+4], uint32(v))
	h.pos += 4

	return nil
}

func (h *HeapBuffer) WriteLong(v int64, order endian.EndianEngine) error {
	if h.pos+8 > h.lim {
		return errs.ErrBufferOverflow
	}

	order.PutUint64(h.data[h.pos:h.pos+8], uint64(v))
	h.pos += 8

	return nil
}

func (h *HeapBuffer) WriteFloat(v float32, order endian.EndianEngine) error {
	return h.WriteInt(int32(math.Float32bits(v)), order) //nolint:gosec
}

func (h *HeapBuffer) WriteDouble(v float64, order endian.EndianEngine) error {
	return h.WriteLong(int64(math.Float64bits(v)), order) //nolint:gosec
}

func (h *HeapBuffer) WriteVarInt(v int32, zigzag bool) error {
	var u uint32
	if zigzag {
		u = varint.ZigZagEncode32(v)
	} else {
		u = uint32(v) //nolint:gosec
	}

	return h.writeVarintBytes(varint.AppendUint32(nil, u))
}

func (h *HeapBuffer) WriteVarLong(v int64, zigzag bool) error {
	var u uint64
	if zigzag {
		u = varint.ZigZagEncode64(v)
	} else {
		u = uint64(v)
	}

	return h.writeVarintBytes(varint.AppendUint64(nil, u))
}

func (h *HeapBuffer) writeVarintBytes(encoded []byte) error {
	if h.pos+int64(len(encoded)) > h.lim {
		return errs.ErrBufferOverflow
	}

	copy(h.data[h.pos:], encoded)
	h.pos += int64(len(encoded))

	return nil
}

func (h *HeapBuffer) Reset() { h.pos = 0 }

func (h *HeapBuffer) Flip() {
	h.lim = h.pos
	h.pos = 0
}

// Slice returns a new buffer sharing storage, independent position/limit,
// length=length. The receiver is left untouched.
func (h *HeapBuffer) Slice(off, length int64) (BufferedData, error) {
	if off < 0 || length < 0 || off+length > int64(len(h.data)) {
		return nil, errs.ErrBufferUnderflow
	}

	sub := h.data[off : off+length : off+length]

	return &HeapBuffer{data: sub, lim: length}, nil
}

// View returns a sub-buffer starting at the receiver's current position,
// advancing the receiver's position by length.
func (h *HeapBuffer) View(length int64) (BufferedData, error) {
	if length < 0 || length > h.Remaining() {
		return nil, errs.ErrViewExceedsParent
	}

	start := h.pos
	sub := h.data[start : start+length : start+length]
	h.pos += length

	return &HeapBuffer{data: sub, lim: length}, nil
}

// Bytes returns the live content from 0..limit.
func (h *HeapBuffer) Bytes() []byte { return h.data[:h.lim] }

func (h *HeapBuffer) String() string {
	return fmt.Sprintf("HeapBuffer{pos=%d, lim=%d, cap=%d, data=%x}", h.pos, h.lim, len(h.data), h.data[:h.lim])
}
