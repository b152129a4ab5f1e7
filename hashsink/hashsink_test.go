package hashsink_test

import (
	"testing"

	"github.com/arloliu/pbwire/endian"
	"github.com/arloliu/pbwire/hashsink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXXH3Sink_DeterministicForSameInput(t *testing.T) {
	s1 := hashsink.NewXXH3Sink()
	require.NoError(t, s1.WriteBytes([]byte("hello world")))
	h1, err := s1.ComputeHash()
	require.NoError(t, err)

	s2 := hashsink.NewXXH3Sink()
	require.NoError(t, s2.WriteBytes([]byte("hello world")))
	h2, err := s2.ComputeHash()
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
}

func TestXXH3Sink_DifferentInputsDiffer(t *testing.T) {
	s1 := hashsink.NewXXH3Sink()
	require.NoError(t, s1.WriteBytes([]byte("hello world")))
	h1, err := s1.ComputeHash()
	require.NoError(t, err)

	s2 := hashsink.NewXXH3Sink()
	require.NoError(t, s2.WriteBytes([]byte("hello worle")))
	h2, err := s2.ComputeHash()
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestXXH3Sink_EmptyInputIsStable(t *testing.T) {
	s1 := hashsink.NewXXH3Sink()
	h1, err := s1.ComputeHash()
	require.NoError(t, err)

	s2 := hashsink.NewXXH3Sink()
	h2, err := s2.ComputeHash()
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
}

func TestXXH3Sink_Reset(t *testing.T) {
	s := hashsink.NewXXH3Sink()
	require.NoError(t, s.WriteBytes([]byte("abc")))
	withData, err := s.ComputeHash()
	require.NoError(t, err)

	s.Reset()
	assert.Equal(t, int64(0), s.Position())

	empty, err := s.ComputeHash()
	require.NoError(t, err)
	assert.NotEqual(t, withData, empty)
}

func TestSHA256Sink_DigestLength(t *testing.T) {
	s := hashsink.NewSHA256Sink()
	require.NoError(t, s.WriteBytes([]byte("hello world")))
	assert.Len(t, s.Digest(), 32)

	_, err := s.ComputeHash()
	require.Error(t, err)
}

func TestSink_FixedWidthWritesIgnoreRequestedOrder(t *testing.T) {
	leSink := hashsink.NewXXH3Sink()
	require.NoError(t, leSink.WriteInt(0x01020304, endian.GetLittleEndianEngine()))
	leHash, err := leSink.ComputeHash()
	require.NoError(t, err)

	beSink := hashsink.NewXXH3Sink()
	require.NoError(t, beSink.WriteInt(0x01020304, endian.GetBigEndianEngine()))
	beHash, err := beSink.ComputeHash()
	require.NoError(t, err)

	assert.Equal(t, leHash, beHash)
}
