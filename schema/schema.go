// Package schema defines the compile-time-known shape of a message: field
// types, wire types, tag packing, and the FieldDefinition record generated
// codecs are built against.
//
// FieldType/WireType follow a typed-constant-plus-String() pattern
// (format/types.go's EncodingType/CompressionType), and FieldDefinition's
// "identity by reference" rule is the schema-level analogue of
// section/numeric_flag.go's packed bit-flag validation: both exist so a
// decoder can reject a byte stream that doesn't match the schema it was
// built against.
package schema

import "fmt"

// WireType is the 3-bit tag suffix selecting a field's payload format.
type WireType uint8

const (
	WireVarint       WireType = 0
	WireFixed64      WireType = 1
	WireLenDelimited WireType = 2
	// WireStartGroup and WireEndGroup are recognized only so a decoder can
	// report ErrGroupUnsupported instead of silently misparsing; no write
	// path ever emits them.
	WireStartGroup WireType = 3
	WireEndGroup   WireType = 4
	WireFixed32    WireType = 5
)

func (w WireType) String() string {
	switch w {
	case WireVarint:
		return "VARINT"
	case WireFixed64:
		return "FIXED64"
	case WireLenDelimited:
		return "LEN_DELIMITED"
	case WireStartGroup:
		return "START_GROUP"
	case WireEndGroup:
		return "END_GROUP"
	case WireFixed32:
		return "FIXED32"
	default:
		return "UNKNOWN"
	}
}

// FieldType enumerates the scalar and structural protobuf field types this
// runtime understands. The generator (out of scope) emits one of these per
// message field.
type FieldType uint8

const (
	FieldInt32 FieldType = iota + 1
	FieldInt64
	FieldUInt32
	FieldUInt64
	FieldSInt32
	FieldSInt64
	FieldFixed32
	FieldFixed64
	FieldSFixed32
	FieldSFixed64
	FieldFloat
	FieldDouble
	FieldBool
	FieldEnum
	FieldString
	FieldBytes
	FieldMessage
)

func (t FieldType) String() string {
	switch t {
	case FieldInt32:
		return "INT32"
	case FieldInt64:
		return "INT64"
	case FieldUInt32:
		return "UINT32"
	case FieldUInt64:
		return "UINT64"
	case FieldSInt32:
		return "SINT32"
	case FieldSInt64:
		return "SINT64"
	case FieldFixed32:
		return "FIXED32"
	case FieldFixed64:
		return "FIXED64"
	case FieldSFixed32:
		return "SFIXED32"
	case FieldSFixed64:
		return "SFIXED64"
	case FieldFloat:
		return "FLOAT"
	case FieldDouble:
		return "DOUBLE"
	case FieldBool:
		return "BOOL"
	case FieldEnum:
		return "ENUM"
	case FieldString:
		return "STRING"
	case FieldBytes:
		return "BYTES"
	case FieldMessage:
		return "MESSAGE"
	default:
		return "UNKNOWN"
	}
}

// WireTypeOf returns the wire type a FieldType is encoded with.
func (t FieldType) WireTypeOf() WireType {
	switch t {
	case FieldFixed64, FieldSFixed64, FieldDouble:
		return WireFixed64
	case FieldFixed32, FieldSFixed32, FieldFloat:
		return WireFixed32
	case FieldString, FieldBytes, FieldMessage:
		return WireLenDelimited
	default:
		// INT32/64, UINT32/64, SINT32/64, BOOL, ENUM.
		return WireVarint
	}
}

// FieldDefinition is the immutable, generator-emitted description of one
// message field. Two FieldDefinition values are distinct fields for
// schema-validation purposes even if every field matches —
// identity is by pointer, not by value; callers that need a lookup table
// keyed by field number should key on *FieldDefinition (see
// internal/fieldcheck.Registry).
type FieldDefinition struct {
	Name     string
	Type     FieldType
	Repeated bool
	Optional bool
	Oneof    bool
	Number   int
}

// Tag packs the field's number and wire type into the varint-encoded value
// that precedes its payload on the wire: (field_number << 3) | wire_type.
func (f *FieldDefinition) Tag() uint32 {
	return PackTag(f.Number, f.EffectiveWireType())
}

// EffectiveWireType is the wire type actually written on the wire for this
// field: a repeated scalar (anything but STRING/BYTES/MESSAGE, which are
// already length-delimited and repeat as one tag per element) packs into a
// single LEN_DELIMITED payload rather than its scalar wire type.
func (f *FieldDefinition) EffectiveWireType() WireType {
	if f.Repeated {
		switch f.Type {
		case FieldString, FieldBytes, FieldMessage:
			// unpacked: each element repeats the normal tag.
		default:
			return WireLenDelimited
		}
	}

	return f.Type.WireTypeOf()
}

// PackTag builds a wire tag from a field number and wire type.
func PackTag(fieldNumber int, wt WireType) uint32 {
	return uint32(fieldNumber)<<3 | uint32(wt) //nolint:gosec
}

// UnpackTag splits a wire tag into its field number and wire type.
func UnpackTag(tag uint32) (fieldNumber int, wt WireType) {
	return int(tag >> 3), WireType(tag & 0x7)
}

func (f *FieldDefinition) String() string {
	return fmt.Sprintf("FieldDefinition{name=%s, type=%s, number=%d, repeated=%t, optional=%t, oneof=%t}",
		f.Name, f.Type, f.Number, f.Repeated, f.Optional, f.Oneof)
}

// Table is the generator-emitted field-number-to-FieldDefinition lookup a
// message's codec dispatches against.
type Table struct {
	byNumber map[int]*FieldDefinition
	ordered  []*FieldDefinition
}

// NewTable builds a Table from the given field definitions, which must
// already be sorted in ascending field-number order (the order writers
// must emit fields in).
func NewTable(fields ...*FieldDefinition) *Table {
	t := &Table{
		byNumber: make(map[int]*FieldDefinition, len(fields)),
		ordered:  fields,
	}
	for _, f := range fields {
		t.byNumber[f.Number] = f
	}

	return t
}

// Lookup returns the FieldDefinition registered at fieldNumber, or nil if
// none is registered (an unknown field).
func (t *Table) Lookup(fieldNumber int) *FieldDefinition {
	if t == nil {
		return nil
	}

	return t.byNumber[fieldNumber]
}

// Fields returns the table's fields in ascending field-number order.
func (t *Table) Fields() []*FieldDefinition {
	return t.ordered
}
