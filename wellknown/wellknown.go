// Package wellknown implements the google.protobuf.*Value wrapper message
// family: StringValue, Int32Value, Int64Value, UInt32Value, UInt64Value,
// SInt32Value, SInt64Value, FloatValue, DoubleValue, BoolValue, and
// BytesValue. Generated code recognizes a field typed as one of these
// wrappers and maps it to a language-native optional scalar instead of a
// nested message struct.
//
// On the wire a wrapper is a one-field sub-message: the wrapped value
// lives at field number 1, using whatever field type that scalar normally
// uses. Writing this is exactly writer.WriteMessage with a body that
// writes one inner scalar field — the same present/absent split the
// writer package already defines for Optional fields (a present wrapper
// always carries its inner field, even at the zero value; an absent one is
// elided unless the outer field is itself Oneof).
package wellknown

import (
	"github.com/arloliu/pbwire/buffer"
	"github.com/arloliu/pbwire/errs"
	"github.com/arloliu/pbwire/parser"
	"github.com/arloliu/pbwire/schema"
	"github.com/arloliu/pbwire/writer"
)

// innerNumber is the field number every wrapper message uses for its
// single wrapped value.
const innerNumber = 1

var (
	innerInt32  = &schema.FieldDefinition{Name: "value", Number: innerNumber, Type: schema.FieldInt32, Optional: true}
	innerInt64  = &schema.FieldDefinition{Name: "value", Number: innerNumber, Type: schema.FieldInt64, Optional: true}
	innerUInt32 = &schema.FieldDefinition{Name: "value", Number: innerNumber, Type: schema.FieldUInt32, Optional: true}
	innerUInt64 = &schema.FieldDefinition{Name: "value", Number: innerNumber, Type: schema.FieldUInt64, Optional: true}
	innerSInt32 = &schema.FieldDefinition{Name: "value", Number: innerNumber, Type: schema.FieldSInt32, Optional: true}
	innerSInt64 = &schema.FieldDefinition{Name: "value", Number: innerNumber, Type: schema.FieldSInt64, Optional: true}
	innerFloat  = &schema.FieldDefinition{Name: "value", Number: innerNumber, Type: schema.FieldFloat, Optional: true}
	innerDouble = &schema.FieldDefinition{Name: "value", Number: innerNumber, Type: schema.FieldDouble, Optional: true}
	innerBool   = &schema.FieldDefinition{Name: "value", Number: innerNumber, Type: schema.FieldBool, Optional: true}
	innerString = &schema.FieldDefinition{Name: "value", Number: innerNumber, Type: schema.FieldString, Optional: true}
	innerBytes  = &schema.FieldDefinition{Name: "value", Number: innerNumber, Type: schema.FieldBytes, Optional: true}
)

// WriteInt32Value writes field as an Int32Value wrapper. present
// distinguishes "not set" from "set to 0".
func WriteInt32Value(out buffer.WritableSequentialData, field *schema.FieldDefinition, present bool, v int32) error {
	return writer.WriteMessage(out, field, present, writer.SizeOfInt32(innerInt32, v), func(w buffer.WritableSequentialData) error {
		return writer.WriteInt32(w, innerInt32, v)
	})
}

func SizeOfInt32Value(field *schema.FieldDefinition, present bool, v int32) int {
	return writer.SizeOfMessage(field, present, writer.SizeOfInt32(innerInt32, v))
}

// ReadInt32Value decodes one Int32Value wrapper's inner scalar. The caller
// has already read the wrapper's own tag and is positioned at its
// length-prefixed body; in must be narrowed to exactly that body (see
// parser.BeginNestedMessage/EndNestedMessage).
func ReadInt32Value(in buffer.ReadableSequentialData) (int32, error) {
	return readWrappedScalar(in, innerInt32.Number, func(in buffer.ReadableSequentialData) (int32, error) {
		return parser.ReadInt32(in)
	})
}

// WriteInt64Value writes field as an Int64Value wrapper.
func WriteInt64Value(out buffer.WritableSequentialData, field *schema.FieldDefinition, present bool, v int64) error {
	return writer.WriteMessage(out, field, present, writer.SizeOfInt64(innerInt64, v), func(w buffer.WritableSequentialData) error {
		return writer.WriteInt64(w, innerInt64, v)
	})
}

func SizeOfInt64Value(field *schema.FieldDefinition, present bool, v int64) int {
	return writer.SizeOfMessage(field, present, writer.SizeOfInt64(innerInt64, v))
}

func ReadInt64Value(in buffer.ReadableSequentialData) (int64, error) {
	return readWrappedScalar(in, innerInt64.Number, func(in buffer.ReadableSequentialData) (int64, error) {
		return parser.ReadInt64(in)
	})
}

// WriteUInt32Value writes field as a UInt32Value wrapper.
func WriteUInt32Value(out buffer.WritableSequentialData, field *schema.FieldDefinition, present bool, v uint32) error {
	return writer.WriteMessage(out, field, present, writer.SizeOfUInt32(innerUInt32, v), func(w buffer.WritableSequentialData) error {
		return writer.WriteUInt32(w, innerUInt32, v)
	})
}

func SizeOfUInt32Value(field *schema.FieldDefinition, present bool, v uint32) int {
	return writer.SizeOfMessage(field, present, writer.SizeOfUInt32(innerUInt32, v))
}

func ReadUInt32Value(in buffer.ReadableSequentialData) (uint32, error) {
	return readWrappedScalar(in, innerUInt32.Number, func(in buffer.ReadableSequentialData) (uint32, error) {
		return parser.ReadUInt32(in)
	})
}

// WriteUInt64Value writes field as a UInt64Value wrapper.
func WriteUInt64Value(out buffer.WritableSequentialData, field *schema.FieldDefinition, present bool, v uint64) error {
	return writer.WriteMessage(out, field, present, writer.SizeOfUInt64(innerUInt64, v), func(w buffer.WritableSequentialData) error {
		return writer.WriteUInt64(w, innerUInt64, v)
	})
}

func SizeOfUInt64Value(field *schema.FieldDefinition, present bool, v uint64) int {
	return writer.SizeOfMessage(field, present, writer.SizeOfUInt64(innerUInt64, v))
}

func ReadUInt64Value(in buffer.ReadableSequentialData) (uint64, error) {
	return readWrappedScalar(in, innerUInt64.Number, func(in buffer.ReadableSequentialData) (uint64, error) {
		return parser.ReadUInt64(in)
	})
}

// WriteSInt32Value writes field as a zig-zag-encoded SInt32Value wrapper.
func WriteSInt32Value(out buffer.WritableSequentialData, field *schema.FieldDefinition, present bool, v int32) error {
	return writer.WriteMessage(out, field, present, writer.SizeOfSInt32(innerSInt32, v), func(w buffer.WritableSequentialData) error {
		return writer.WriteSInt32(w, innerSInt32, v)
	})
}

func SizeOfSInt32Value(field *schema.FieldDefinition, present bool, v int32) int {
	return writer.SizeOfMessage(field, present, writer.SizeOfSInt32(innerSInt32, v))
}

func ReadSInt32Value(in buffer.ReadableSequentialData) (int32, error) {
	return readWrappedScalar(in, innerSInt32.Number, func(in buffer.ReadableSequentialData) (int32, error) {
		return parser.ReadSInt32(in)
	})
}

// WriteSInt64Value writes field as a zig-zag-encoded SInt64Value wrapper.
func WriteSInt64Value(out buffer.WritableSequentialData, field *schema.FieldDefinition, present bool, v int64) error {
	return writer.WriteMessage(out, field, present, writer.SizeOfSInt64(innerSInt64, v), func(w buffer.WritableSequentialData) error {
		return writer.WriteSInt64(w, innerSInt64, v)
	})
}

func SizeOfSInt64Value(field *schema.FieldDefinition, present bool, v int64) int {
	return writer.SizeOfMessage(field, present, writer.SizeOfSInt64(innerSInt64, v))
}

func ReadSInt64Value(in buffer.ReadableSequentialData) (int64, error) {
	return readWrappedScalar(in, innerSInt64.Number, func(in buffer.ReadableSequentialData) (int64, error) {
		return parser.ReadSInt64(in)
	})
}

// WriteFloatValue writes field as a FloatValue wrapper.
func WriteFloatValue(out buffer.WritableSequentialData, field *schema.FieldDefinition, present bool, v float32) error {
	return writer.WriteMessage(out, field, present, writer.SizeOfFloat(innerFloat, v), func(w buffer.WritableSequentialData) error {
		return writer.WriteFloat(w, innerFloat, v)
	})
}

func SizeOfFloatValue(field *schema.FieldDefinition, present bool, v float32) int {
	return writer.SizeOfMessage(field, present, writer.SizeOfFloat(innerFloat, v))
}

func ReadFloatValue(in buffer.ReadableSequentialData) (float32, error) {
	return readWrappedScalar(in, innerFloat.Number, func(in buffer.ReadableSequentialData) (float32, error) {
		return parser.ReadFloat(in)
	})
}

// WriteDoubleValue writes field as a DoubleValue wrapper.
func WriteDoubleValue(out buffer.WritableSequentialData, field *schema.FieldDefinition, present bool, v float64) error {
	return writer.WriteMessage(out, field, present, writer.SizeOfDouble(innerDouble, v), func(w buffer.WritableSequentialData) error {
		return writer.WriteDouble(w, innerDouble, v)
	})
}

func SizeOfDoubleValue(field *schema.FieldDefinition, present bool, v float64) int {
	return writer.SizeOfMessage(field, present, writer.SizeOfDouble(innerDouble, v))
}

func ReadDoubleValue(in buffer.ReadableSequentialData) (float64, error) {
	return readWrappedScalar(in, innerDouble.Number, func(in buffer.ReadableSequentialData) (float64, error) {
		return parser.ReadDouble(in)
	})
}

// WriteBoolValue writes field as a BoolValue wrapper.
func WriteBoolValue(out buffer.WritableSequentialData, field *schema.FieldDefinition, present bool, v bool) error {
	return writer.WriteMessage(out, field, present, writer.SizeOfBool(innerBool, v), func(w buffer.WritableSequentialData) error {
		return writer.WriteBool(w, innerBool, v)
	})
}

func SizeOfBoolValue(field *schema.FieldDefinition, present bool, v bool) int {
	return writer.SizeOfMessage(field, present, writer.SizeOfBool(innerBool, v))
}

func ReadBoolValue(in buffer.ReadableSequentialData) (bool, error) {
	return readWrappedScalar(in, innerBool.Number, func(in buffer.ReadableSequentialData) (bool, error) {
		return parser.ReadBool(in)
	})
}

// WriteStringValue writes field as a StringValue wrapper.
func WriteStringValue(out buffer.WritableSequentialData, field *schema.FieldDefinition, present bool, v string) error {
	return writer.WriteMessage(out, field, present, writer.SizeOfString(innerString, v), func(w buffer.WritableSequentialData) error {
		return writer.WriteString(w, innerString, v)
	})
}

func SizeOfStringValue(field *schema.FieldDefinition, present bool, v string) int {
	return writer.SizeOfMessage(field, present, writer.SizeOfString(innerString, v))
}

func ReadStringValue(in buffer.ReadableSequentialData) (string, error) {
	return readWrappedScalar(in, innerString.Number, func(in buffer.ReadableSequentialData) (string, error) {
		return parser.ReadString(in)
	})
}

// WriteBytesValue writes field as a BytesValue wrapper.
func WriteBytesValue(out buffer.WritableSequentialData, field *schema.FieldDefinition, present bool, v []byte) error {
	return writer.WriteMessage(out, field, present, writer.SizeOfBytes(innerBytes, v), func(w buffer.WritableSequentialData) error {
		return writer.WriteBytes(w, innerBytes, v)
	})
}

func SizeOfBytesValue(field *schema.FieldDefinition, present bool, v []byte) int {
	return writer.SizeOfMessage(field, present, writer.SizeOfBytes(innerBytes, v))
}

func ReadBytesValue(in buffer.ReadableSequentialData) ([]byte, error) {
	return readWrappedScalar(in, innerBytes.Number, func(in buffer.ReadableSequentialData) ([]byte, error) {
		return parser.ReadBytes(in)
	})
}

// readWrappedScalar reads the wrapper body's single field and decodes it
// with decode. This package's writers always emit the inner field; an
// empty body (as other encoders produce for a zero value) decodes to the
// zero value. A field number other
// than the expected inner number is treated as forward-compatible unknown
// data and skipped, matching how any other message body tolerates fields
// it doesn't recognize.
func readWrappedScalar[T any](in buffer.ReadableSequentialData, wantNumber int, decode func(buffer.ReadableSequentialData) (T, error)) (T, error) {
	var zero T
	for !in.AtEOF() {
		number, wt, done, err := parser.ReadNextFieldNumber(in)
		if err != nil {
			return zero, err
		}
		if done {
			break
		}
		if number != wantNumber {
			if err := parser.SkipField(in, wt); err != nil {
				return zero, err
			}

			continue
		}

		return decode(in)
	}

	return zero, nil
}

// CheckWrapperType reports whether t is one of the known wrapper field
// types this package implements.
func CheckWrapperType(t schema.FieldType) error {
	switch t {
	case schema.FieldInt32, schema.FieldInt64, schema.FieldUInt32, schema.FieldUInt64,
		schema.FieldSInt32, schema.FieldSInt64, schema.FieldFloat, schema.FieldDouble,
		schema.FieldBool, schema.FieldString, schema.FieldBytes:
		return nil
	default:
		return errs.ErrInvalidArgument
	}
}
