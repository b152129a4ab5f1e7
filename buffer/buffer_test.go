package buffer_test

import (
	"bytes"
	"testing"

	"github.com/arloliu/pbwire/buffer"
	"github.com/arloliu/pbwire/endian"
	"github.com/arloliu/pbwire/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocate_InitialState(t *testing.T) {
	b := buffer.Allocate(10)
	assert.Equal(t, int64(0), b.Position())
	assert.Equal(t, int64(10), b.Limit())
	assert.Equal(t, int64(10), b.Capacity())
}

func TestSlice_DoesNotTouchParent(t *testing.T) {
	parent := buffer.Wrap([]byte{1, 2, 3, 4, 5})
	_, _ = parent.ReadByte() // advance parent to position 1

	child, err := parent.Slice(2, 2)
	require.NoError(t, err)

	assert.Equal(t, int64(1), parent.Position())

	for i := int64(0); i < 2; i++ {
		pv, err := parent.GetByte(2 + i)
		require.NoError(t, err)
		cv, err := child.GetByte(i)
		require.NoError(t, err)
		assert.Equal(t, pv, cv)
	}
}

func TestView_AdvancesParentPosition(t *testing.T) {
	parent := buffer.Wrap([]byte{1, 2, 3, 4, 5})
	view, err := parent.View(3)
	require.NoError(t, err)

	assert.Equal(t, int64(3), parent.Position())
	assert.Equal(t, int64(3), view.Limit())

	b0, _ := view.GetByte(0)
	assert.Equal(t, byte(1), b0)
}

func TestView_FailsWhenExceedingParentRemaining(t *testing.T) {
	parent := buffer.Wrap([]byte{1, 2, 3})
	_, err := parent.View(10)
	require.ErrorIs(t, err, errs.ErrViewExceedsParent)
}

func TestReadBytes_CopyInvariant(t *testing.T) {
	src := []byte{1, 2, 3, 4}
	b := buffer.Wrap(src)

	read, err := b.ReadBytes(4)
	require.NoError(t, err)

	src[0] = 0xFF
	assert.Equal(t, byte(1), read[0])
}

func TestWriteByte_OverflowOnFixedBuffer(t *testing.T) {
	b := buffer.Allocate(1)
	require.NoError(t, b.WriteByte(0x42))

	err := b.WriteByte(0x43)
	require.ErrorIs(t, err, errs.ErrBufferOverflow)
}

func TestFlipAndReset(t *testing.T) {
	b := buffer.Allocate(4)
	require.NoError(t, b.WriteInt(0x01020304, endian.GetLittleEndianEngine()))

	b.Flip()
	assert.Equal(t, int64(0), b.Position())
	assert.Equal(t, int64(4), b.Limit())

	bb, err := b.ReadBytes(4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, bb)

	b.Reset()
	assert.Equal(t, int64(0), b.Position())
}

func TestStreamReaderWriter_RoundTrip(t *testing.T) {
	var out bytes.Buffer
	w := buffer.NewStreamWriter(&out)
	require.NoError(t, w.WriteVarInt(300, false))
	require.NoError(t, w.WriteBytes([]byte("hello")))

	r := buffer.NewStreamReader(bytes.NewReader(out.Bytes()))
	got, err := r.ReadBytes(int64(out.Len()))
	require.NoError(t, err)
	assert.Equal(t, out.Bytes(), got)
}
