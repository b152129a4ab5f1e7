// Package parser decodes scalar, string/bytes, and nested-message field
// values from a buffer.ReadableSequentialData, the mirror image of the
// writer package.
//
// Reads are grouped around two entry points: ReadNextFieldNumber, which a
// message loop calls repeatedly to discover what comes next on the wire,
// and the per-type Read<Type> functions, which a dispatch loop calls once
// it knows which field it's looking at. The split separates "where is the
// next field" (tag-driven) from "decode this field's value" (type-driven).
package parser

import (
	"fmt"

	"github.com/arloliu/pbwire/buffer"
	"github.com/arloliu/pbwire/errs"
	"github.com/arloliu/pbwire/internal/leconv"
	"github.com/arloliu/pbwire/octets"
	"github.com/arloliu/pbwire/schema"
	"github.com/arloliu/pbwire/varint"
)

// ReadNextFieldNumber reads the next wire tag, splitting it into a field
// number and wire type. done is true (with a zero-value number/wt and a
// nil error) when the input is already exhausted — the normal way a
// message body ends, not an error.
func ReadNextFieldNumber(in buffer.ReadableSequentialData) (number int, wt schema.WireType, done bool, err error) {
	if in.AtEOF() {
		return 0, 0, true, nil
	}

	raw, _, err := varint.ReadStreamUint64(in)
	if err != nil {
		return 0, 0, false, err
	}
	if raw>>32 != 0 {
		return 0, 0, false, fmt.Errorf("%w: tag %d does not fit in 32 bits", errs.ErrMalformed, raw)
	}

	number, wt = schema.UnpackTag(uint32(raw))
	if number <= 0 {
		return 0, 0, false, fmt.Errorf("%w: field number %d is not positive", errs.ErrMalformed, number)
	}

	return number, wt, false, nil
}

// readRawVarint64 reads one varint off in, regardless of the field type it
// belongs to; every variable-width scalar decode funnels through here.
func readRawVarint64(in buffer.ReadableSequentialData) (uint64, error) {
	v, _, err := varint.ReadStreamUint64(in)

	return v, err
}

// ReadInt32 reads an INT32 value: a 64-bit wire varint truncated to its
// low 32 bits, matching how protoc-generated code decodes int32 (it has
// no native 32-bit signed wire representation).
func ReadInt32(in buffer.ReadableSequentialData) (int32, error) {
	v, err := readRawVarint64(in)
	if err != nil {
		return 0, err
	}

	return int32(v), nil //nolint:gosec
}

// ReadInt64 reads an INT64 value.
func ReadInt64(in buffer.ReadableSequentialData) (int64, error) {
	v, err := readRawVarint64(in)
	if err != nil {
		return 0, err
	}

	return int64(v), nil //nolint:gosec
}

// ReadUInt32 reads a UINT32 value.
func ReadUInt32(in buffer.ReadableSequentialData) (uint32, error) {
	v, err := readRawVarint64(in)
	if err != nil {
		return 0, err
	}

	return uint32(v), nil //nolint:gosec
}

// ReadUInt64 reads a UINT64 value.
func ReadUInt64(in buffer.ReadableSequentialData) (uint64, error) {
	return readRawVarint64(in)
}

// ReadSInt32 reads an SINT32 value, undoing the zig-zag remapping.
func ReadSInt32(in buffer.ReadableSequentialData) (int32, error) {
	v, err := readRawVarint64(in)
	if err != nil {
		return 0, err
	}

	return varint.ZigZagDecode32(uint32(v)), nil //nolint:gosec
}

// ReadSInt64 reads an SINT64 value, undoing the zig-zag remapping.
func ReadSInt64(in buffer.ReadableSequentialData) (int64, error) {
	v, err := readRawVarint64(in)
	if err != nil {
		return 0, err
	}

	return varint.ZigZagDecode64(v), nil
}

// ReadBool reads a BOOL value. Any varint value other than 0 or 1 is
// rejected as malformed: this runtime has no configuration knob to accept
// arbitrary truthy values, unlike some permissive wire readers.
func ReadBool(in buffer.ReadableSequentialData) (bool, error) {
	v, err := readRawVarint64(in)
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: bool varint %d is neither 0 nor 1", errs.ErrMalformed, v)
	}
}

// ReadEnum reads an ENUM value, encoded exactly like INT32.
func ReadEnum(in buffer.ReadableSequentialData) (int32, error) {
	return ReadInt32(in)
}

// ReadFixed32 reads a FIXED32 value: 4 little-endian bytes.
func ReadFixed32(in buffer.ReadableSequentialData) (uint32, error) {
	raw, err := in.ReadBytes(4)
	if err != nil {
		return 0, err
	}

	return leconv.ReadUint32LE(raw, 0)
}

// ReadSFixed32 reads an SFIXED32 value.
func ReadSFixed32(in buffer.ReadableSequentialData) (int32, error) {
	raw, err := in.ReadBytes(4)
	if err != nil {
		return 0, err
	}

	return leconv.ReadInt32LE(raw, 0)
}

// ReadFixed64 reads a FIXED64 value: 8 little-endian bytes.
func ReadFixed64(in buffer.ReadableSequentialData) (uint64, error) {
	raw, err := in.ReadBytes(8)
	if err != nil {
		return 0, err
	}

	return leconv.ReadUint64LE(raw, 0)
}

// ReadSFixed64 reads an SFIXED64 value.
func ReadSFixed64(in buffer.ReadableSequentialData) (int64, error) {
	raw, err := in.ReadBytes(8)
	if err != nil {
		return 0, err
	}

	return leconv.ReadInt64LE(raw, 0)
}

// ReadFloat reads a FLOAT value.
func ReadFloat(in buffer.ReadableSequentialData) (float32, error) {
	raw, err := in.ReadBytes(4)
	if err != nil {
		return 0, err
	}

	return leconv.ReadFloat32LE(raw, 0)
}

// ReadDouble reads a DOUBLE value.
func ReadDouble(in buffer.ReadableSequentialData) (float64, error) {
	raw, err := in.ReadBytes(8)
	if err != nil {
		return 0, err
	}

	return leconv.ReadFloat64LE(raw, 0)
}

// maxDelimitedLen bounds a single LEN_DELIMITED payload read so a
// corrupted or hostile length prefix can't force an unbounded allocation
// before the underlying buffer even gets a chance to reject it.
const maxDelimitedLen = 1 << 31

// readDelimitedLen reads and validates a LEN_DELIMITED payload's byte
// length, without consuming the payload itself.
func readDelimitedLen(in buffer.ReadableSequentialData) (int64, error) {
	raw, err := readRawVarint64(in)
	if err != nil {
		return 0, err
	}
	if raw > maxDelimitedLen {
		return 0, fmt.Errorf("%w: delimited length %d exceeds %d", errs.ErrSizeExceeded, raw, maxDelimitedLen)
	}

	return int64(raw), nil
}

// ReadString reads a STRING value: a length-prefixed UTF-8 byte run. The
// bytes are validated as well-formed UTF-8; malformed input is rejected
// with ErrMalformed rather than silently decoded.
func ReadString(in buffer.ReadableSequentialData) (string, error) {
	n, err := readDelimitedLen(in)
	if err != nil {
		return "", err
	}

	raw, err := in.ReadBytes(n)
	if err != nil {
		return "", err
	}

	if !octets.Wrap(raw).ValidUTF8() {
		return "", fmt.Errorf("%w: string field is not valid UTF-8", errs.ErrMalformed)
	}

	return string(raw), nil
}

// ReadBytes reads a BYTES value: a length-prefixed raw byte run.
func ReadBytes(in buffer.ReadableSequentialData) ([]byte, error) {
	n, err := readDelimitedLen(in)
	if err != nil {
		return nil, err
	}

	return in.ReadBytes(n)
}

// ReadMessageView carves out a sub-cursor covering exactly one nested
// message's bytes, advancing in past them. The caller runs its nested
// codec's dispatch loop against the returned view. Use this when the
// caller wants an independent cursor (e.g. to hand off to something that
// stores it for later lazy decoding); for ordinary recursive Parse calls,
// BeginNestedMessage/EndNestedMessage avoid the extra allocation by
// narrowing the current cursor's limit instead.
func ReadMessageView(in buffer.BufferedData) (buffer.BufferedData, error) {
	n, err := readDelimitedLen(in)
	if err != nil {
		return nil, err
	}

	return in.View(n)
}

// BeginNestedMessage reads a nested message's length prefix and narrows
// in's limit to cover exactly that many bytes, returning the limit to
// restore afterward via EndNestedMessage. It works uniformly over any
// ReadableSequentialData, including stream-backed cursors that can't be
// sliced or viewed.
func BeginNestedMessage(in buffer.ReadableSequentialData) (savedLimit int64, err error) {
	n, err := readDelimitedLen(in)
	if err != nil {
		return 0, err
	}

	saved := in.Limit()
	newLimit := in.Position() + n
	if newLimit > saved {
		return 0, errs.ErrBufferUnderflow
	}
	in.SetLimit(newLimit)

	return saved, nil
}

// EndNestedMessage restores the limit BeginNestedMessage narrowed.
func EndNestedMessage(in buffer.ReadableSequentialData, savedLimit int64) {
	in.SetLimit(savedLimit)
}

// SkipField discards one field's payload without decoding it, given the
// wire type read alongside its tag. It is how a parser built against an
// older schema stays forward-compatible with unknown fields written by a
// newer one.
func SkipField(in buffer.ReadableSequentialData, wt schema.WireType) error {
	switch wt {
	case schema.WireVarint:
		_, err := readRawVarint64(in)

		return err
	case schema.WireFixed32:
		_, err := in.Skip(4)

		return err
	case schema.WireFixed64:
		_, err := in.Skip(8)

		return err
	case schema.WireLenDelimited:
		n, err := readDelimitedLen(in)
		if err != nil {
			return err
		}
		_, err = in.Skip(n)

		return err
	case schema.WireStartGroup, schema.WireEndGroup:
		return errs.ErrGroupUnsupported
	default:
		return fmt.Errorf("%w: unknown wire type %d", errs.ErrMalformed, wt)
	}
}

// ReadRepeatedVarint32Element decodes one Dispatch occurrence of a
// repeated INT32/UINT32/SINT32/ENUM field into dst, accepting either wire
// shape a writer may have chosen: packed (wt == WireLenDelimited — narrow
// to the payload and decode every back-to-back element) or unpacked (any
// other wire type — decode exactly the single element this tag
// represents). zigzag selects SINT32 decoding; ordinary INT32/UINT32/ENUM
// pass false.
func ReadRepeatedVarint32Element(in buffer.ReadableSequentialData, wt schema.WireType, zigzag bool, dst []int32) ([]int32, error) {
	if wt != schema.WireLenDelimited {
		v, err := readVarint32(in, zigzag)
		if err != nil {
			return dst, err
		}

		return append(dst, v), nil
	}

	saved, err := BeginNestedMessage(in)
	if err != nil {
		return dst, err
	}
	defer EndNestedMessage(in, saved)

	for in.HasRemaining() {
		v, err := readVarint32(in, zigzag)
		if err != nil {
			return dst, err
		}
		dst = append(dst, v)
	}

	return dst, nil
}

func readVarint32(in buffer.ReadableSequentialData, zigzag bool) (int32, error) {
	if zigzag {
		return ReadSInt32(in)
	}

	return ReadInt32(in)
}

// ExtractFieldBytes scans input for field's raw LEN_DELIMITED payload
// bytes (the length prefix stripped) without fully decoding the
// surrounding message, returning the first occurrence and ok=false if the
// field is absent. Repeated occurrences of the same field number (as from
// two merged partial messages) resolve to the first one written, matching
// this runtime's general "last write doesn't win over extraction"
// lazy-access semantics.
//
// field must be a non-repeated STRING/BYTES/MESSAGE field — the only
// shapes with exactly one self-contained payload to extract. A repeated
// field (whose occurrences don't resolve to a single value) or a
// VARINT/FIXED32/FIXED64 field (not length-delimited, so there's no
// payload to extract independent of decoding it) returns
// ErrInvalidArgument without reading anything.
func ExtractFieldBytes(input buffer.BufferedData, field *schema.FieldDefinition) (payload []byte, ok bool, err error) {
	if field.Repeated || field.Type.WireTypeOf() != schema.WireLenDelimited {
		return nil, false, fmt.Errorf("%w: field %q is not a single LEN_DELIMITED field", errs.ErrInvalidArgument, field.Name)
	}

	for !input.AtEOF() {
		number, wt, done, err := ReadNextFieldNumber(input)
		if err != nil {
			return nil, false, err
		}
		if done {
			break
		}

		if number != field.Number {
			if err := SkipField(input, wt); err != nil {
				return nil, false, err
			}

			continue
		}

		switch wt {
		case schema.WireLenDelimited:
			n, err := readDelimitedLen(input)
			if err != nil {
				return nil, false, err
			}
			raw, err := input.ReadBytes(n)

			return raw, true, err
		case schema.WireStartGroup, schema.WireEndGroup:
			return nil, false, errs.ErrGroupUnsupported
		default:
			return nil, false, fmt.Errorf("%w: unknown wire type %d", errs.ErrMalformed, wt)
		}
	}

	return nil, false, nil
}
