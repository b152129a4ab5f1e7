// Package codec ties the schema, writer, and parser packages together
// into the generated-code contract a message type implements, plus the
// shared field-dispatch loop every generated Parse method runs.
//
// Codec[T] keeps encoder and decoder as small generic interfaces rather
// than one God object, generalized from "one encoder per numeric column"
// to "one codec per message type".
package codec

import (
	"fmt"

	"github.com/arloliu/pbwire/buffer"
	"github.com/arloliu/pbwire/errs"
	"github.com/arloliu/pbwire/parser"
	"github.com/arloliu/pbwire/schema"
)

// Codec is the contract generated code implements for a message type T.
// A hand-written or generated struct satisfies this by wiring up the
// writer/parser calls for each of its fields.
type Codec[T any] interface {
	// Parse decodes a T from in, consuming exactly one message's worth of
	// fields (until in is at EOF or, for a nested call, until its view's
	// limit is reached).
	Parse(in buffer.ReadableSequentialData, cfg *ParseConfig) (T, error)
	// Write encodes value to out.
	Write(out buffer.WritableSequentialData, value T) error
	// MeasureRecord returns the exact encoded size of value, used both to
	// size-prefix value when it's nested inside another message and to
	// preallocate an output buffer before a top-level Write.
	MeasureRecord(value T) int
	// FastEquals reports whether a and b would produce identical wire
	// bytes, without actually encoding either — generated code implements
	// this as a field-by-field comparison.
	FastEquals(a, b T) bool
	// DefaultInstance returns T's zero value, the value a field decodes to
	// when it is absent from the wire and not Optional.
	DefaultInstance() T
}

// UnknownField preserves one field dispatch didn't recognize, so a
// round-trip through Parse then Write can reproduce bytes it didn't
// understand instead of silently dropping them.
type UnknownField struct {
	Number   int
	WireType schema.WireType
	Raw      []byte
}

// FieldHandler decodes one known field's value once Dispatch has read its
// tag; it reads exactly the field's payload from in and stores the
// decoded value wherever the generated Parse method keeps it.
type FieldHandler func(in buffer.ReadableSequentialData, field *schema.FieldDefinition, wt schema.WireType) error

// Dispatch runs the field-read loop shared by every generated Parse
// method: read a tag, look it up in table, and either call handle (known
// field) or apply cfg's unknown-field policy. depth is the nesting level
// of the message being parsed (0 for the top-level call); Dispatch checks
// it against cfg's budget before doing any work.
func Dispatch(in buffer.ReadableSequentialData, table *schema.Table, cfg *ParseConfig, depth int, handle FieldHandler) ([]UnknownField, error) {
	if err := CheckDepth(cfg, depth); err != nil {
		return nil, err
	}

	var unknown []UnknownField
	for {
		number, wt, done, err := parser.ReadNextFieldNumber(in)
		if err != nil {
			return unknown, err
		}
		if done {
			return unknown, nil
		}

		field := table.Lookup(number)
		if field == nil {
			if cfg.Strict() {
				return unknown, fmt.Errorf("%w: field number %d", errs.ErrUnexpectedField, number)
			}

			if !cfg.ParseUnknown() {
				if err := parser.SkipField(in, wt); err != nil {
					return unknown, err
				}

				continue
			}

			raw, err := captureUnknown(in, wt)
			if err != nil {
				return unknown, err
			}
			unknown = append(unknown, UnknownField{Number: number, WireType: wt, Raw: raw})

			continue
		}

		// A repeated scalar field's on-wire occurrence is either packed
		// (EffectiveWireType, one LEN_DELIMITED blob of every element) or
		// unpacked (the scalar's own wire type, one tag per element); both
		// are valid input regardless of which form the writer that produced
		// them chose, so the scalar form is accepted alongside the packed
		// one here. wt is passed through to handle so it can tell the two
		// apart.
		if expected := field.EffectiveWireType(); expected != wt {
			unpacked := field.Repeated && field.Type.WireTypeOf() == wt
			if !unpacked {
				return unknown, fmt.Errorf("%w: field %q expected wire type %s, got %s",
					errs.ErrMalformed, field.Name, expected, wt)
			}
		}

		if err := handle(in, field, wt); err != nil {
			return unknown, err
		}
	}
}

// captureUnknown reads wt's payload into a byte slice without any schema
// knowledge of what it means, so Dispatch can stash it in an
// UnknownField.
func captureUnknown(in buffer.ReadableSequentialData, wt schema.WireType) ([]byte, error) {
	switch wt {
	case schema.WireVarint:
		v, err := parser.ReadUInt64(in)
		if err != nil {
			return nil, err
		}

		return appendVarint(nil, v), nil
	case schema.WireFixed32:
		return in.ReadBytes(4)
	case schema.WireFixed64:
		return in.ReadBytes(8)
	case schema.WireLenDelimited:
		return parser.ReadBytes(in)
	default:
		return nil, fmt.Errorf("%w: unknown wire type %d", errs.ErrGroupUnsupported, wt)
	}
}

func appendVarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}

	return append(buf, byte(v))
}

// WriteUnknownFields re-emits fields Dispatch couldn't decode, preserving
// their original wire bytes exactly. Raw holds only the payload (for
// WireLenDelimited fields, captureUnknown strips the length prefix when
// reading), so a LEN_DELIMITED field's length varint is recomputed and
// re-emitted here rather than carried in Raw.
func WriteUnknownFields(out buffer.WritableSequentialData, fields []UnknownField) error {
	for _, f := range fields {
		tag := schema.PackTag(f.Number, f.WireType)
		if err := out.WriteVarInt(int32(tag), false); err != nil { //nolint:gosec
			return err
		}
		if f.WireType == schema.WireLenDelimited {
			if err := out.WriteVarLong(int64(len(f.Raw)), false); err != nil {
				return err
			}
		}
		if err := out.WriteBytes(f.Raw); err != nil {
			return err
		}
	}

	return nil
}

// SizeOfUnknownFields returns the total encoded size WriteUnknownFields
// would produce for fields.
func SizeOfUnknownFields(fields []UnknownField) int {
	total := 0
	for _, f := range fields {
		tag := schema.PackTag(f.Number, f.WireType)
		total += sizeOfVarint(uint64(tag)) + len(f.Raw)
		if f.WireType == schema.WireLenDelimited {
			total += sizeOfVarint(uint64(len(f.Raw)))
		}
	}

	return total
}

func sizeOfVarint(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}

	return n
}
