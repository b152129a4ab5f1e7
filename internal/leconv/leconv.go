// Package leconv implements the little-endian integer/float load-store
// helpers. These are the lowest-level byte primitives in the dependency
// graph: every other package in this module either calls through here or
// through encoding/binary directly, matching the pattern of a single
// narrow byte-order package (endian/) that higher-level encoders build on.
package leconv

import (
	"encoding/binary"
	"math"

	"github.com/arloliu/pbwire/errs"
)

// ReadInt32LE reads a little-endian int32 at absolute offset off in buf.
func ReadInt32LE(buf []byte, off int) (int32, error) {
	if off < 0 || off+4 > len(buf) {
		return 0, errs.ErrBufferUnderflow
	}

	return int32(binary.LittleEndian.Uint32(buf[off : off+4])), nil
}

// ReadInt64LE reads a little-endian int64 at absolute offset off in buf.
func ReadInt64LE(buf []byte, off int) (int64, error) {
	if off < 0 || off+8 > len(buf) {
		return 0, errs.ErrBufferUnderflow
	}

	return int64(binary.LittleEndian.Uint64(buf[off : off+8])), nil
}

// ReadUint32LE reads a little-endian uint32 at absolute offset off in buf.
func ReadUint32LE(buf []byte, off int) (uint32, error) {
	if off < 0 || off+4 > len(buf) {
		return 0, errs.ErrBufferUnderflow
	}

	return binary.LittleEndian.Uint32(buf[off : off+4]), nil
}

// ReadUint64LE reads a little-endian uint64 at absolute offset off in buf.
func ReadUint64LE(buf []byte, off int) (uint64, error) {
	if off < 0 || off+8 > len(buf) {
		return 0, errs.ErrBufferUnderflow
	}

	return binary.LittleEndian.Uint64(buf[off : off+8]), nil
}

// ReadFloat32LE reads a little-endian IEEE-754 float32 at absolute offset off.
func ReadFloat32LE(buf []byte, off int) (float32, error) {
	bits, err := ReadUint32LE(buf, off)
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(bits), nil
}

// ReadFloat64LE reads a little-endian IEEE-754 float64 at absolute offset off.
func ReadFloat64LE(buf []byte, off int) (float64, error) {
	bits, err := ReadUint64LE(buf, off)
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(bits), nil
}

// PutInt32LE writes v little-endian at absolute offset off in buf.
func PutInt32LE(buf []byte, off int, v int32) error {
	if off < 0 || off+4 > len(buf) {
		return errs.ErrBufferOverflow
	}

	binary.LittleEndian.PutUint32(buf[off:off+4], uint32(v))

	return nil
}

// PutInt64LE writes v little-endian at absolute offset off in buf.
func PutInt64LE(buf []byte, off int, v int64) error {
	if off < 0 || off+8 > len(buf) {
		return errs.ErrBufferOverflow
	}

	binary.LittleEndian.PutUint64(buf[off:off+8], uint64(v))

	return nil
}

// PutFloat32LE writes v little-endian at absolute offset off in buf.
func PutFloat32LE(buf []byte, off int, v float32) error {
	return PutInt32LE(buf, off, int32(math.Float32bits(v))) //nolint:gosec
}

// PutFloat64LE writes v little-endian at absolute offset off in buf.
func PutFloat64LE(buf []byte, off int, v float64) error {
	return PutInt64LE(buf, off, int64(math.Float64bits(v))) //nolint:gosec
}
