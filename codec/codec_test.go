package codec_test

import (
	"testing"

	"github.com/arloliu/pbwire/buffer"
	"github.com/arloliu/pbwire/codec"
	"github.com/arloliu/pbwire/errs"
	"github.com/arloliu/pbwire/parser"
	"github.com/arloliu/pbwire/schema"
	"github.com/arloliu/pbwire/writer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// timestamp is a hand-written stand-in for generated code: two VARINT
// fields, seconds and nanos.
type timestamp struct {
	Seconds int64
	Nanos   int32
}

var (
	tsSecondsField = &schema.FieldDefinition{Name: "seconds", Type: schema.FieldInt64, Number: 1}
	tsNanosField   = &schema.FieldDefinition{Name: "nanos", Type: schema.FieldInt32, Number: 2}
	tsTable        = schema.NewTable(tsSecondsField, tsNanosField)
)

func writeTimestamp(out buffer.WritableSequentialData, v timestamp) error {
	if err := writer.WriteInt64(out, tsSecondsField, v.Seconds); err != nil {
		return err
	}

	return writer.WriteInt32(out, tsNanosField, v.Nanos)
}

func measureTimestamp(v timestamp) int {
	return writer.SizeOfInt64(tsSecondsField, v.Seconds) + writer.SizeOfInt32(tsNanosField, v.Nanos)
}

func parseTimestamp(in buffer.ReadableSequentialData, cfg *codec.ParseConfig) (timestamp, error) {
	var v timestamp
	_, err := codec.Dispatch(in, tsTable, cfg, 0, func(in buffer.ReadableSequentialData, field *schema.FieldDefinition, _ schema.WireType) error {
		switch field.Number {
		case 1:
			n, err := parser.ReadInt64(in)
			v.Seconds = n

			return err
		case 2:
			n, err := parser.ReadInt32(in)
			v.Nanos = n

			return err
		}

		return nil
	})

	return v, err
}

func TestTimestamp_RoundTrip(t *testing.T) {
	v := timestamp{Seconds: 5678, Nanos: 1234}

	size := measureTimestamp(v)
	out := buffer.Allocate(size)
	require.NoError(t, writeTimestamp(out, v))
	out.Flip()

	got, err := out.ReadBytes(out.Remaining())
	require.NoError(t, err)
	assert.Equal(t, []byte{0x08, 0xAE, 0x2C, 0x10, 0xD2, 0x09}, got)

	out.Reset()
	cfg, err := codec.NewParseConfig()
	require.NoError(t, err)
	decoded, err := parseTimestamp(out, cfg)
	require.NoError(t, err)
	assert.Equal(t, v, decoded)
}

func dispatchRepeatedInt32(t *testing.T, table *schema.Table, in buffer.ReadableSequentialData) []int32 {
	t.Helper()

	cfg, err := codec.NewParseConfig()
	require.NoError(t, err)

	var got []int32
	_, err = codec.Dispatch(in, table, cfg, 0, func(in buffer.ReadableSequentialData, _ *schema.FieldDefinition, wt schema.WireType) error {
		values, err := parser.ReadRepeatedVarint32Element(in, wt, false, got)
		got = values

		return err
	})
	require.NoError(t, err)

	return got
}

func TestDispatch_PackedRepeatedScalar_MatchesLenDelimitedWireType(t *testing.T) {
	field := &schema.FieldDefinition{Name: "values", Type: schema.FieldInt32, Number: 1, Repeated: true}
	table := schema.NewTable(field)

	size := writer.SizeOfPackedVarint32List(field, []int32{1, 2, 127, 128}, false)
	out := buffer.Allocate(size)
	require.NoError(t, writer.WritePackedVarint32List(out, field, []int32{1, 2, 127, 128}, false))
	out.Flip()

	got := dispatchRepeatedInt32(t, table, out)
	assert.Equal(t, []int32{1, 2, 127, 128}, got)
}

func TestDispatch_UnpackedRepeatedScalar_DecodesToSameSequence(t *testing.T) {
	// field 1, VARINT, one tag per element: 1, 2, 127, 128.
	field := &schema.FieldDefinition{Name: "values", Type: schema.FieldInt32, Number: 1, Repeated: true}
	table := schema.NewTable(field)

	unpackedField := &schema.FieldDefinition{Name: "values", Type: schema.FieldInt32, Number: 1}
	out := buffer.Allocate(64)
	for _, v := range []int32{1, 2, 127, 128} {
		require.NoError(t, writer.WriteInt32(out, unpackedField, v))
	}
	out.Flip()

	got := dispatchRepeatedInt32(t, table, out)
	assert.Equal(t, []int32{1, 2, 127, 128}, got)
}

func TestDispatch_UnknownField_LenientByDefault(t *testing.T) {
	// field 9 (unknown to tsTable) VARINT=42, then field 1 VARINT=7
	in := buffer.Wrap([]byte{0x48, 0x2A, 0x08, 0x07})
	cfg, err := codec.NewParseConfig()
	require.NoError(t, err)

	v, err := parseTimestamp(in, cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(7), v.Seconds)
}

func TestDispatch_UnknownField_StrictRejects(t *testing.T) {
	in := buffer.Wrap([]byte{0x48, 0x2A})
	cfg, err := codec.NewParseConfig(codec.WithStrict(true))
	require.NoError(t, err)

	_, err = parseTimestamp(in, cfg)
	require.ErrorIs(t, err, errs.ErrUnexpectedField)
}

func TestDispatch_UnknownField_PreservedForRoundTrip(t *testing.T) {
	in := buffer.Wrap([]byte{0x48, 0x2A, 0x08, 0x07})
	cfg, err := codec.NewParseConfig()
	require.NoError(t, err)

	unknown, err := codec.Dispatch(in, tsTable, cfg, 0, func(in buffer.ReadableSequentialData, field *schema.FieldDefinition, _ schema.WireType) error {
		_, err := parser.ReadInt64(in)

		return err
	})
	require.NoError(t, err)
	require.Len(t, unknown, 1)
	assert.Equal(t, 9, unknown[0].Number)
}

// node is a self-referential message used to exercise the depth guard:
// each level wraps the next inside a single MESSAGE field.
type node struct {
	Child *node
}

var (
	nodeChildField = &schema.FieldDefinition{Name: "child", Type: schema.FieldMessage, Number: 1}
	nodeTable      = schema.NewTable(nodeChildField)
)

func writeNode(out buffer.WritableSequentialData, v node, depth int) error {
	present := v.Child != nil
	size := 0
	if present {
		size = measureNode(*v.Child, depth+1)
	}

	return writer.WriteMessage(out, nodeChildField, present, size, func(w buffer.WritableSequentialData) error {
		return writeNode(w, *v.Child, depth+1)
	})
}

func measureNode(v node, depth int) int {
	if v.Child == nil {
		return writer.SizeOfMessage(nodeChildField, false, 0)
	}

	return writer.SizeOfMessage(nodeChildField, true, measureNode(*v.Child, depth+1))
}

func parseNode(in buffer.ReadableSequentialData, cfg *codec.ParseConfig, depth int) (node, error) {
	var v node
	_, err := codec.Dispatch(in, nodeTable, cfg, depth, func(in buffer.ReadableSequentialData, field *schema.FieldDefinition, _ schema.WireType) error {
		saved, err := parser.BeginNestedMessage(in)
		if err != nil {
			return err
		}
		defer parser.EndNestedMessage(in, saved)

		child, err := parseNode(in, cfg, depth+1)
		if err != nil {
			return err
		}
		v.Child = &child

		return nil
	})

	return v, err
}

func buildNestedNode(depth int) node {
	if depth == 0 {
		return node{}
	}
	child := buildNestedNode(depth - 1)

	return node{Child: &child}
}

func TestDepthGuard_ExceedsAtThirtyThree(t *testing.T) {
	// 32 levels of nesting parses fine (the default budget).
	okNode := buildNestedNode(32)
	size := measureNode(okNode, 0)
	out := buffer.Allocate(size)
	require.NoError(t, writeNode(out, okNode, 0))
	out.Flip()

	cfg, err := codec.NewParseConfig()
	require.NoError(t, err)
	_, err = parseNode(out, cfg, 0)
	require.NoError(t, err)

	// 33 levels trips ErrDepthExceeded.
	tooDeep := buildNestedNode(33)
	size = measureNode(tooDeep, 0)
	out2 := buffer.Allocate(size)
	require.NoError(t, writeNode(out2, tooDeep, 0))
	out2.Flip()

	_, err = parseNode(out2, cfg, 0)
	require.ErrorIs(t, err, errs.ErrDepthExceeded)
}
