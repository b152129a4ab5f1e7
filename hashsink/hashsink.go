// Package hashsink implements a WritableSequentialData that never stores
// bytes — it feeds everything written through it into a running hash
// digest instead, so a codec can compute a message's content hash by
// writing it exactly once, the same pass that would otherwise serialize
// it to a real buffer.
//
// Two digests are supported: crypto/sha256 for a cryptographic digest,
// and github.com/zeebo/xxh3 for a fast non-cryptographic 64-bit digest.
// Grounded on the compress package's Compressor/Decompressor split
// (codec.go defines the contract; zstd_pure.go/zstd_cgo.go/lz4.go each wire up
// one concrete implementation) — here, one Sink type backed by whichever
// hash.Hash a constructor installs.
package hashsink

import (
	"crypto/sha256"
	"fmt"

	"github.com/arloliu/pbwire/buffer"
	"github.com/arloliu/pbwire/endian"
	"github.com/arloliu/pbwire/errs"
	"github.com/arloliu/pbwire/varint"
	"github.com/zeebo/xxh3"
)

var _ buffer.WritableSequentialData = (*Sink)(nil)

// digest is the subset of hash.Hash a Sink needs.
type digest interface {
	Write(p []byte) (int, error)
	Sum(b []byte) []byte
	Reset()
}

// digest64 is additionally implemented by 64-bit non-cryptographic
// hashes, which can report their digest as a uint64 without an
// intermediate byte-slice allocation.
type digest64 interface {
	Sum64() uint64
}

// Sink is a WritableSequentialData backed by a running hash digest. It
// reports Limit()/Capacity() as buffer.MaxPosition like a streaming
// writer, since it never refuses a write for lack of space.
type Sink struct {
	h   digest
	pos int64
}

// NewSHA256Sink creates a Sink that hashes everything written to it with
// SHA-256.
func NewSHA256Sink() *Sink {
	return &Sink{h: sha256.New()}
}

// NewXXH3Sink creates a Sink that hashes everything written to it with
// streaming XXH3-64.
func NewXXH3Sink() *Sink {
	return &Sink{h: xxh3.New()}
}

// Reset clears the digest and position, letting the Sink be reused for a
// new message without reallocating.
func (s *Sink) Reset() {
	s.h.Reset()
	s.pos = 0
}

// Digest returns the accumulated hash as raw bytes.
func (s *Sink) Digest() []byte {
	return s.h.Sum(nil)
}

// ComputeHash returns the accumulated hash as a uint64, for sinks backed
// by a 64-bit hash (XXH3). It errors for sinks backed by a digest wider
// than 64 bits, like SHA-256.
func (s *Sink) ComputeHash() (uint64, error) {
	h64, ok := s.h.(digest64)
	if !ok {
		return 0, fmt.Errorf("%w: underlying digest has no 64-bit form", errs.ErrInvalidArgument)
	}

	return h64.Sum64(), nil
}

func (s *Sink) Position() int64    { return s.pos }
func (s *Sink) Limit() int64       { return buffer.MaxPosition }
func (s *Sink) Capacity() int64    { return buffer.MaxPosition }
func (s *Sink) Remaining() int64   { return buffer.MaxPosition - s.pos }
func (s *Sink) HasRemaining() bool { return true }

func (s *Sink) write(p []byte) error {
	n, err := s.h.Write(p)
	s.pos += int64(n)

	return err
}

func (s *Sink) WriteByte(b byte) error {
	return s.write([]byte{b})
}

func (s *Sink) WriteBytes(data []byte) error {
	return s.write(data)
}

// WriteInt hashes v as 4 little-endian bytes, regardless of order: a hash
// sink exists to produce one canonical digest for a message's content,
// so the byte order written into it must not vary with the engine a
// caller happens to pass.
func (s *Sink) WriteInt(v int32, _ endian.EndianEngine) error {
	var scratch [4]byte
	endian.GetLittleEndianEngine().PutUint32(scratch[:], uint32(v))

	return s.write(scratch[:])
}

// WriteLong hashes v as 8 little-endian bytes, regardless of order.
func (s *Sink) WriteLong(v int64, _ endian.EndianEngine) error {
	var scratch [8]byte
	endian.GetLittleEndianEngine().PutUint64(scratch[:], uint64(v))

	return s.write(scratch[:])
}

func (s *Sink) WriteFloat(v float32, order endian.EndianEngine) error {
	return s.WriteInt(int32(float32bits(v)), order) //nolint:gosec
}

func (s *Sink) WriteDouble(v float64, order endian.EndianEngine) error {
	return s.WriteLong(int64(float64bits(v)), order) //nolint:gosec
}

func (s *Sink) WriteVarInt(v int32, zigzag bool) error {
	var u uint32
	if zigzag {
		u = varint.ZigZagEncode32(v)
	} else {
		u = uint32(v) //nolint:gosec
	}

	return s.write(varint.AppendUint32(nil, u))
}

func (s *Sink) WriteVarLong(v int64, zigzag bool) error {
	var u uint64
	if zigzag {
		u = varint.ZigZagEncode64(v)
	} else {
		u = uint64(v)
	}

	return s.write(varint.AppendUint64(nil, u))
}
