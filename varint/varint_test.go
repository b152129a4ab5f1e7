package varint_test

import (
	"math"
	"testing"

	"github.com/arloliu/pbwire/errs"
	"github.com/arloliu/pbwire/varint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZigZag32_RoundTrip(t *testing.T) {
	values := []int32{0, -1, 1, -2, 2, math.MinInt32, math.MaxInt32}
	for _, v := range values {
		enc := varint.ZigZagEncode32(v)
		got := varint.ZigZagDecode32(enc)
		assert.Equal(t, v, got)
	}
}

func TestZigZag64_RoundTrip(t *testing.T) {
	values := []int64{0, -1, 1, -2, 2, math.MinInt64, math.MaxInt64}
	for _, v := range values {
		enc := varint.ZigZagEncode64(v)
		got := varint.ZigZagDecode64(enc)
		assert.Equal(t, v, got)
	}
}

func TestAppendReadUint32_Identity(t *testing.T) {
	values := []uint32{0, 1, 127, 128, 16384, math.MaxUint32}
	for _, v := range values {
		buf := varint.AppendUint32(nil, v)
		assert.Len(t, buf, varint.SizeOf32(v))

		got, n, err := varint.ReadUint32(buf)
		require.NoError(t, err)
		assert.Equal(t, v, got)
		assert.Equal(t, len(buf), n)
	}
}

func TestAppendReadUint64_Identity(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 1 << 40, math.MaxUint64}
	for _, v := range values {
		buf := varint.AppendUint64(nil, v)
		assert.Len(t, buf, varint.SizeOf64(v))

		got, n, err := varint.ReadUint64(buf)
		require.NoError(t, err)
		assert.Equal(t, v, got)
		assert.Equal(t, len(buf), n)
	}
}

func TestSizeOf32Signed_NegativeIsTenBytes(t *testing.T) {
	assert.Equal(t, 10, varint.SizeOf32Signed(-1))
	assert.Equal(t, 1, varint.SizeOf32Signed(0))
	assert.Equal(t, 1, varint.SizeOf32Signed(1))
}

func TestReadUint64_MalformedAfterTenBytes(t *testing.T) {
	buf := make([]byte, 11)
	for i := range buf {
		buf[i] = 0x80
	}
	buf[10] = 0x01

	_, _, err := varint.ReadUint64(buf)
	require.ErrorIs(t, err, errs.ErrMalformed)
}

func TestReadUint64_Underflow(t *testing.T) {
	buf := []byte{0x80, 0x80}
	_, _, err := varint.ReadUint64(buf)
	require.ErrorIs(t, err, errs.ErrBufferUnderflow)
}

func TestPackedRepeatedInt32_CanonicalEncoding(t *testing.T) {
	// {1, 2, 127, 128} packs to 01 02 7F 80 01 (5 bytes total).
	var buf []byte
	for _, v := range []int32{1, 2, 127, 128} {
		buf = varint.AppendInt32(buf, v)
	}
	assert.Equal(t, []byte{0x01, 0x02, 0x7F, 0x80, 0x01}, buf)
}
