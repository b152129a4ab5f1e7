// Package writer encodes scalar, string/bytes, and nested-message field
// values onto a buffer.WritableSequentialData, keyed by the field's
// schema.FieldDefinition.
//
// Every Write<Type> function applies the same default-value elision rule:
// a field that is neither Oneof nor Optional and holds its type's zero
// value is skipped entirely (no tag, no payload) — the standard protobuf
// "don't pay for what you didn't set" behavior. A Oneof field always emits
// its tag, even at the zero value, because the tag is what distinguishes
// "this variant was chosen" from "nothing was chosen". Optional fields are
// handled one level up, in the wellknown package's wrapper-message writers,
// since on the wire an optional scalar is a nested message, not a bare tag.
//
// This mirrors the ColumnarEncoder[T] family (encoding/numeric_raw.go,
// encoding/varstring.go): one encoder per wire shape, sharing a buffer and
// an endian.EndianEngine, built up with small single-purpose write calls
// rather than one large reflective encoder.
package writer

import (
	"fmt"

	"github.com/arloliu/pbwire/buffer"
	"github.com/arloliu/pbwire/endian"
	"github.com/arloliu/pbwire/errs"
	"github.com/arloliu/pbwire/schema"
	"github.com/arloliu/pbwire/varint"
)

func elide(field *schema.FieldDefinition, isZero bool) bool {
	return isZero && !field.Oneof && !field.Optional
}

func writeTag(out buffer.WritableSequentialData, field *schema.FieldDefinition) error {
	return out.WriteVarInt(int32(field.Tag()), false) //nolint:gosec
}

func tagSize(field *schema.FieldDefinition) int {
	return varint.SizeOf32(field.Tag())
}

// WriteInt32 writes field's INT32 value. Negative values are sign-extended
// to the full 10-byte varint form, matching how protoc-generated code
// serializes int32 (the wire format has no native 32-bit signed varint).
func WriteInt32(out buffer.WritableSequentialData, field *schema.FieldDefinition, v int32) error {
	if elide(field, v == 0) {
		return nil
	}
	if err := writeTag(out, field); err != nil {
		return err
	}

	return out.WriteVarLong(int64(v), false)
}

// SizeOfInt32 returns the encoded size of an INT32 field, or 0 if the value
// would be elided.
func SizeOfInt32(field *schema.FieldDefinition, v int32) int {
	if elide(field, v == 0) {
		return 0
	}

	return tagSize(field) + varint.SizeOf64(uint64(int64(v)))
}

// WriteInt64 writes field's INT64 value.
func WriteInt64(out buffer.WritableSequentialData, field *schema.FieldDefinition, v int64) error {
	if elide(field, v == 0) {
		return nil
	}
	if err := writeTag(out, field); err != nil {
		return err
	}

	return out.WriteVarLong(v, false)
}

func SizeOfInt64(field *schema.FieldDefinition, v int64) int {
	if elide(field, v == 0) {
		return 0
	}

	return tagSize(field) + varint.SizeOf64(uint64(v))
}

// WriteUInt32 writes field's UINT32 value: an unsigned varint, never
// sign-extended.
func WriteUInt32(out buffer.WritableSequentialData, field *schema.FieldDefinition, v uint32) error {
	if elide(field, v == 0) {
		return nil
	}
	if err := writeTag(out, field); err != nil {
		return err
	}

	return out.WriteVarInt(int32(v), false) //nolint:gosec
}

func SizeOfUInt32(field *schema.FieldDefinition, v uint32) int {
	if elide(field, v == 0) {
		return 0
	}

	return tagSize(field) + varint.SizeOf32(v)
}

// WriteUInt64 writes field's UINT64 value.
func WriteUInt64(out buffer.WritableSequentialData, field *schema.FieldDefinition, v uint64) error {
	if elide(field, v == 0) {
		return nil
	}
	if err := writeTag(out, field); err != nil {
		return err
	}

	return out.WriteVarLong(int64(v), false) //nolint:gosec
}

func SizeOfUInt64(field *schema.FieldDefinition, v uint64) int {
	if elide(field, v == 0) {
		return 0
	}

	return tagSize(field) + varint.SizeOf64(v)
}

// WriteSInt32 writes field's SINT32 value, zig-zag remapped so small
// negative values stay small on the wire.
func WriteSInt32(out buffer.WritableSequentialData, field *schema.FieldDefinition, v int32) error {
	if elide(field, v == 0) {
		return nil
	}
	if err := writeTag(out, field); err != nil {
		return err
	}

	return out.WriteVarInt(v, true)
}

func SizeOfSInt32(field *schema.FieldDefinition, v int32) int {
	if elide(field, v == 0) {
		return 0
	}

	return tagSize(field) + varint.SizeOf32(varint.ZigZagEncode32(v))
}

// WriteSInt64 writes field's SINT64 value, zig-zag remapped.
func WriteSInt64(out buffer.WritableSequentialData, field *schema.FieldDefinition, v int64) error {
	if elide(field, v == 0) {
		return nil
	}
	if err := writeTag(out, field); err != nil {
		return err
	}

	return out.WriteVarLong(v, true)
}

func SizeOfSInt64(field *schema.FieldDefinition, v int64) int {
	if elide(field, v == 0) {
		return 0
	}

	return tagSize(field) + varint.SizeOf64(varint.ZigZagEncode64(v))
}

// WriteBool writes field's BOOL value as a single-byte varint (0 or 1).
func WriteBool(out buffer.WritableSequentialData, field *schema.FieldDefinition, v bool) error {
	if elide(field, !v) {
		return nil
	}
	if err := writeTag(out, field); err != nil {
		return err
	}

	var u int32
	if v {
		u = 1
	}

	return out.WriteVarInt(u, false)
}

func SizeOfBool(field *schema.FieldDefinition, v bool) int {
	if elide(field, !v) {
		return 0
	}

	return tagSize(field) + 1
}

// WriteEnum writes field's ENUM value, encoded exactly like INT32.
func WriteEnum(out buffer.WritableSequentialData, field *schema.FieldDefinition, v int32) error {
	return WriteInt32(out, field, v)
}

func SizeOfEnum(field *schema.FieldDefinition, v int32) int {
	return SizeOfInt32(field, v)
}

// WriteFixed32 writes field's FIXED32 value as 4 little-endian bytes.
func WriteFixed32(out buffer.WritableSequentialData, field *schema.FieldDefinition, v uint32) error {
	if elide(field, v == 0) {
		return nil
	}
	if err := writeTag(out, field); err != nil {
		return err
	}

	return out.WriteInt(int32(v), endian.GetLittleEndianEngine()) //nolint:gosec
}

func SizeOfFixed32(field *schema.FieldDefinition, v uint32) int {
	if elide(field, v == 0) {
		return 0
	}

	return tagSize(field) + 4
}

// WriteSFixed32 writes field's SFIXED32 value as 4 little-endian bytes.
func WriteSFixed32(out buffer.WritableSequentialData, field *schema.FieldDefinition, v int32) error {
	if elide(field, v == 0) {
		return nil
	}
	if err := writeTag(out, field); err != nil {
		return err
	}

	return out.WriteInt(v, endian.GetLittleEndianEngine())
}

func SizeOfSFixed32(field *schema.FieldDefinition, v int32) int {
	if elide(field, v == 0) {
		return 0
	}

	return tagSize(field) + 4
}

// WriteFixed64 writes field's FIXED64 value as 8 little-endian bytes.
func WriteFixed64(out buffer.WritableSequentialData, field *schema.FieldDefinition, v uint64) error {
	if elide(field, v == 0) {
		return nil
	}
	if err := writeTag(out, field); err != nil {
		return err
	}

	return out.WriteLong(int64(v), endian.GetLittleEndianEngine()) //nolint:gosec
}

func SizeOfFixed64(field *schema.FieldDefinition, v uint64) int {
	if elide(field, v == 0) {
		return 0
	}

	return tagSize(field) + 8
}

// WriteSFixed64 writes field's SFIXED64 value as 8 little-endian bytes.
func WriteSFixed64(out buffer.WritableSequentialData, field *schema.FieldDefinition, v int64) error {
	if elide(field, v == 0) {
		return nil
	}
	if err := writeTag(out, field); err != nil {
		return err
	}

	return out.WriteLong(v, endian.GetLittleEndianEngine())
}

func SizeOfSFixed64(field *schema.FieldDefinition, v int64) int {
	if elide(field, v == 0) {
		return 0
	}

	return tagSize(field) + 8
}

// WriteFloat writes field's FLOAT value as 4 little-endian bytes.
func WriteFloat(out buffer.WritableSequentialData, field *schema.FieldDefinition, v float32) error {
	if elide(field, v == 0) {
		return nil
	}
	if err := writeTag(out, field); err != nil {
		return err
	}

	return out.WriteFloat(v, endian.GetLittleEndianEngine())
}

func SizeOfFloat(field *schema.FieldDefinition, v float32) int {
	if elide(field, v == 0) {
		return 0
	}

	return tagSize(field) + 4
}

// WriteDouble writes field's DOUBLE value as 8 little-endian bytes.
func WriteDouble(out buffer.WritableSequentialData, field *schema.FieldDefinition, v float64) error {
	if elide(field, v == 0) {
		return nil
	}
	if err := writeTag(out, field); err != nil {
		return err
	}

	return out.WriteDouble(v, endian.GetLittleEndianEngine())
}

func SizeOfDouble(field *schema.FieldDefinition, v float64) int {
	if elide(field, v == 0) {
		return 0
	}

	return tagSize(field) + 8
}

// SizeOfDelimited returns the encoded size of a LEN_DELIMITED field (tag +
// length varint + payloadLen bytes of payload).
func SizeOfDelimited(field *schema.FieldDefinition, payloadLen int) int {
	return tagSize(field) + varint.SizeOf64(uint64(payloadLen)) + payloadLen
}

func writeDelimited(out buffer.WritableSequentialData, field *schema.FieldDefinition, payload []byte) error {
	if err := writeTag(out, field); err != nil {
		return err
	}
	if err := out.WriteVarLong(int64(len(payload)), false); err != nil {
		return err
	}

	return out.WriteBytes(payload)
}

// WriteString writes field's STRING value as length-prefixed UTF-8 bytes.
// An empty string on a non-Oneof, non-Optional field is elided.
func WriteString(out buffer.WritableSequentialData, field *schema.FieldDefinition, v string) error {
	if elide(field, v == "") {
		return nil
	}

	return writeDelimited(out, field, []byte(v))
}

func SizeOfString(field *schema.FieldDefinition, v string) int {
	if elide(field, v == "") {
		return 0
	}

	return SizeOfDelimited(field, len(v))
}

// WriteBytes writes field's BYTES value as length-prefixed raw bytes. A
// nil or zero-length slice on a non-Oneof, non-Optional field is elided.
func WriteBytes(out buffer.WritableSequentialData, field *schema.FieldDefinition, v []byte) error {
	if elide(field, len(v) == 0) {
		return nil
	}

	return writeDelimited(out, field, v)
}

func SizeOfBytes(field *schema.FieldDefinition, v []byte) int {
	if elide(field, len(v) == 0) {
		return 0
	}

	return SizeOfDelimited(field, len(v))
}

// WriteMessage writes field's MESSAGE value as a length-prefixed
// sub-record. size must equal the number of bytes writeBody will write
// (the caller computes this with the nested codec's MeasureRecord — see
// codec.Codec). present distinguishes "field not set" from "field set to
// an empty/default message": a nil message on a non-Oneof field (Optional
// or not) is elided entirely; on a Oneof field it is written as a
// zero-length sub-record, since the tag itself carries meaning there.
func WriteMessage(out buffer.WritableSequentialData, field *schema.FieldDefinition, present bool, size int, writeBody func(buffer.WritableSequentialData) error) error {
	if !present {
		if !field.Oneof {
			return nil
		}
		size = 0
	}

	if err := writeTag(out, field); err != nil {
		return err
	}
	if err := out.WriteVarLong(int64(size), false); err != nil {
		return err
	}
	if !present {
		return nil
	}

	return writeBody(out)
}

func SizeOfMessage(field *schema.FieldDefinition, present bool, size int) int {
	if !present {
		if !field.Oneof {
			return 0
		}

		return tagSize(field) + 1 // zero-length varint is one byte
	}

	return SizeOfDelimited(field, size)
}

// packedHeader writes the tag and byte-length prefix shared by every
// packed-repeated scalar list, then returns control to the caller to
// stream the individual elements.
func packedHeader(out buffer.WritableSequentialData, field *schema.FieldDefinition, payloadLen int) error {
	if err := writeTag(out, field); err != nil {
		return err
	}

	return out.WriteVarLong(int64(payloadLen), false)
}

// WritePackedVarint32List writes a repeated INT32/UINT32/ENUM field in
// packed form: one tag, one length prefix, then each element's raw varint
// back to back. An empty list is elided.
func WritePackedVarint32List(out buffer.WritableSequentialData, field *schema.FieldDefinition, values []int32, zigzag bool) error {
	if len(values) == 0 {
		return nil
	}

	payloadLen := 0
	for _, v := range values {
		if zigzag {
			payloadLen += varint.SizeOf32(varint.ZigZagEncode32(v))
		} else {
			payloadLen += varint.SizeOf64(uint64(int64(v)))
		}
	}

	if err := packedHeader(out, field, payloadLen); err != nil {
		return err
	}
	for _, v := range values {
		var err error
		if zigzag {
			err = out.WriteVarInt(v, true)
		} else {
			err = out.WriteVarLong(int64(v), false)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func SizeOfPackedVarint32List(field *schema.FieldDefinition, values []int32, zigzag bool) int {
	if len(values) == 0 {
		return 0
	}

	payloadLen := 0
	for _, v := range values {
		if zigzag {
			payloadLen += varint.SizeOf32(varint.ZigZagEncode32(v))
		} else {
			payloadLen += varint.SizeOf64(uint64(int64(v)))
		}
	}

	return tagSize(field) + varint.SizeOf64(uint64(payloadLen)) + payloadLen
}

// WritePackedVarint64List writes a repeated INT64/UINT64/SINT64 field in
// packed form.
func WritePackedVarint64List(out buffer.WritableSequentialData, field *schema.FieldDefinition, values []int64, zigzag bool) error {
	if len(values) == 0 {
		return nil
	}

	payloadLen := 0
	for _, v := range values {
		if zigzag {
			payloadLen += varint.SizeOf64(varint.ZigZagEncode64(v))
		} else {
			payloadLen += varint.SizeOf64(uint64(v))
		}
	}

	if err := packedHeader(out, field, payloadLen); err != nil {
		return err
	}
	for _, v := range values {
		if err := out.WriteVarLong(v, zigzag); err != nil {
			return err
		}
	}

	return nil
}

func SizeOfPackedVarint64List(field *schema.FieldDefinition, values []int64, zigzag bool) int {
	if len(values) == 0 {
		return 0
	}

	payloadLen := 0
	for _, v := range values {
		if zigzag {
			payloadLen += varint.SizeOf64(varint.ZigZagEncode64(v))
		} else {
			payloadLen += varint.SizeOf64(uint64(v))
		}
	}

	return tagSize(field) + varint.SizeOf64(uint64(payloadLen)) + payloadLen
}

// WritePackedBoolList writes a repeated BOOL field in packed form (one byte
// per element).
func WritePackedBoolList(out buffer.WritableSequentialData, field *schema.FieldDefinition, values []bool) error {
	if len(values) == 0 {
		return nil
	}
	if err := packedHeader(out, field, len(values)); err != nil {
		return err
	}
	for _, v := range values {
		var u int32
		if v {
			u = 1
		}
		if err := out.WriteVarInt(u, false); err != nil {
			return err
		}
	}

	return nil
}

func SizeOfPackedBoolList(field *schema.FieldDefinition, values []bool) int {
	if len(values) == 0 {
		return 0
	}

	return tagSize(field) + varint.SizeOf64(uint64(len(values))) + len(values)
}

// WritePackedFixed32List writes a repeated FIXED32/SFIXED32/FLOAT field in
// packed form (4 little-endian bytes per element).
func WritePackedFixed32List(out buffer.WritableSequentialData, field *schema.FieldDefinition, values []uint32) error {
	if len(values) == 0 {
		return nil
	}
	if err := packedHeader(out, field, len(values)*4); err != nil {
		return err
	}
	le := endian.GetLittleEndianEngine()
	for _, v := range values {
		if err := out.WriteInt(int32(v), le); err != nil { //nolint:gosec
			return err
		}
	}

	return nil
}

func SizeOfPackedFixed32List(field *schema.FieldDefinition, values []uint32) int {
	if len(values) == 0 {
		return 0
	}

	return tagSize(field) + varint.SizeOf64(uint64(len(values)*4)) + len(values)*4
}

// WritePackedFixed64List writes a repeated FIXED64/SFIXED64/DOUBLE field in
// packed form (8 little-endian bytes per element).
func WritePackedFixed64List(out buffer.WritableSequentialData, field *schema.FieldDefinition, values []uint64) error {
	if len(values) == 0 {
		return nil
	}
	if err := packedHeader(out, field, len(values)*8); err != nil {
		return err
	}
	le := endian.GetLittleEndianEngine()
	for _, v := range values {
		if err := out.WriteLong(int64(v), le); err != nil { //nolint:gosec
			return err
		}
	}

	return nil
}

func SizeOfPackedFixed64List(field *schema.FieldDefinition, values []uint64) int {
	if len(values) == 0 {
		return 0
	}

	return tagSize(field) + varint.SizeOf64(uint64(len(values)*8)) + len(values)*8
}

// WriteUnpackedStringList writes a repeated STRING field in unpacked form:
// one tag + length-prefixed payload per element. LEN_DELIMITED types are
// never eligible for packed encoding.
func WriteUnpackedStringList(out buffer.WritableSequentialData, field *schema.FieldDefinition, values []string) error {
	for _, v := range values {
		if err := writeDelimited(out, field, []byte(v)); err != nil {
			return err
		}
	}

	return nil
}

func SizeOfUnpackedStringList(field *schema.FieldDefinition, values []string) int {
	total := 0
	for _, v := range values {
		total += SizeOfDelimited(field, len(v))
	}

	return total
}

// WriteUnpackedBytesList writes a repeated BYTES field in unpacked form.
func WriteUnpackedBytesList(out buffer.WritableSequentialData, field *schema.FieldDefinition, values [][]byte) error {
	for _, v := range values {
		if err := writeDelimited(out, field, v); err != nil {
			return err
		}
	}

	return nil
}

func SizeOfUnpackedBytesList(field *schema.FieldDefinition, values [][]byte) int {
	total := 0
	for _, v := range values {
		total += SizeOfDelimited(field, len(v))
	}

	return total
}

// CheckFieldType returns an error wrapping errs.ErrInvalidArgument if
// field's declared type doesn't match want, the scalar kind a caller is
// about to write through it — a cheap guard
// against a generator/hand-written schema mismatch surfacing as silently
// corrupt bytes instead of a clear error at the write call site.
func CheckFieldType(field *schema.FieldDefinition, want schema.FieldType) error {
	if field.Type != want {
		return fmt.Errorf("%w: field %q is %s, not %s", errs.ErrInvalidArgument, field.Name, field.Type, want)
	}

	return nil
}
