package parser_test

import (
	"testing"

	"github.com/arloliu/pbwire/buffer"
	"github.com/arloliu/pbwire/errs"
	"github.com/arloliu/pbwire/parser"
	"github.com/arloliu/pbwire/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadNextFieldNumber_DoneAtEOF(t *testing.T) {
	in := buffer.Wrap(nil)
	_, _, done, err := parser.ReadNextFieldNumber(in)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestReadNextFieldNumber_Timestamp(t *testing.T) {
	// field 1 VARINT, field 2 VARINT: seconds=5678, nanos=1234
	in := buffer.Wrap([]byte{0x08, 0xAE, 0x2C, 0x10, 0xD2, 0x09})

	number, wt, done, err := parser.ReadNextFieldNumber(in)
	require.NoError(t, err)
	require.False(t, done)
	assert.Equal(t, 1, number)
	assert.Equal(t, schema.WireVarint, wt)

	seconds, err := parser.ReadInt64(in)
	require.NoError(t, err)
	assert.Equal(t, int64(5678), seconds)

	number, wt, done, err = parser.ReadNextFieldNumber(in)
	require.NoError(t, err)
	require.False(t, done)
	assert.Equal(t, 2, number)
	assert.Equal(t, schema.WireVarint, wt)

	nanos, err := parser.ReadInt32(in)
	require.NoError(t, err)
	assert.Equal(t, int32(1234), nanos)

	assert.True(t, in.AtEOF())
}

func TestReadBool_RejectsValuesGreaterThanOne(t *testing.T) {
	in := buffer.Wrap([]byte{0x02})
	_, err := parser.ReadBool(in)
	require.Error(t, err)
}

func TestReadString_RejectsInvalidUTF8(t *testing.T) {
	// length 2, 0xFF 0xFE is not well-formed UTF-8.
	in := buffer.Wrap([]byte{0x02, 0xFF, 0xFE})
	_, err := parser.ReadString(in)
	require.ErrorIs(t, err, errs.ErrMalformed)
}

func TestReadString_RoundTrip(t *testing.T) {
	in := buffer.Wrap([]byte{0x02, 'h', 'i'})
	s, err := parser.ReadString(in)
	require.NoError(t, err)
	assert.Equal(t, "hi", s)
}

func TestSkipField_Varint(t *testing.T) {
	in := buffer.Wrap([]byte{0xAC, 0x02, 0xFF})
	require.NoError(t, parser.SkipField(in, schema.WireVarint))
	assert.Equal(t, int64(1), in.Remaining())
}

func TestExtractFieldBytes_FirstOccurrenceWins(t *testing.T) {
	field := &schema.FieldDefinition{Name: "name", Type: schema.FieldString, Number: 1}
	// field 1 STRING="a", field 1 STRING="b" (duplicate)
	in := buffer.Wrap([]byte{0x0A, 0x01, 'a', 0x0A, 0x01, 'b'})
	raw, ok, err := parser.ExtractFieldBytes(in, field)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte{'a'}, raw)
}

func TestExtractFieldBytes_AbsentField(t *testing.T) {
	field := &schema.FieldDefinition{Name: "other", Type: schema.FieldString, Number: 9}
	in := buffer.Wrap([]byte{0x0A, 0x01, 'a'})
	_, ok, err := parser.ExtractFieldBytes(in, field)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExtractFieldBytes_RejectsRepeatedField(t *testing.T) {
	field := &schema.FieldDefinition{Name: "tags", Type: schema.FieldString, Number: 1, Repeated: true}
	in := buffer.Wrap([]byte{0x0A, 0x01, 'a'})
	_, _, err := parser.ExtractFieldBytes(in, field)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestExtractFieldBytes_RejectsNonLenDelimitedField(t *testing.T) {
	field := &schema.FieldDefinition{Name: "count", Type: schema.FieldInt32, Number: 1}
	in := buffer.Wrap([]byte{0x08, 0x01})
	_, _, err := parser.ExtractFieldBytes(in, field)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestPackedRepeatedInt32_ParsesBackToBack(t *testing.T) {
	// LEN_DELIMITED payload from the packed [1,2,127,128] example
	in := buffer.Wrap([]byte{0x01, 0x02, 0x7F, 0x80, 0x01})
	var got []int32
	for in.HasRemaining() {
		v, err := parser.ReadInt32(in)
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, []int32{1, 2, 127, 128}, got)
}
