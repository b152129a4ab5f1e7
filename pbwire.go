// Package pbwire provides a protobuf-compatible wire-format runtime: byte
// buffers, varint/tag codecs, a schema model, and generic writer/parser
// primitives a code generator (or hand-written message type) builds on.
//
// # Core Features
//
//   - RandomAccessData/ReadableSequentialData/WritableSequentialData buffer
//     abstractions, with heap, off-heap, stream, slice, and view variants
//   - Varint codec with zig-zag remapping for signed fields
//   - FieldDefinition/Table schema model and tag packing
//   - Writer and parser libraries for every scalar, string/bytes, and
//     nested-message wire shape
//   - Codec[T] dispatch with unknown-field preservation and a recursion
//     depth guard
//   - A streaming hash sink (SHA-256 or XXH3-64) and optional Zstd/LZ4
//     payload compression
//
// # Basic Usage
//
// Marshal and Unmarshal wrap a generated Codec[T] for the common case of
// encoding/decoding a whole top-level message to/from a byte slice:
//
//	data, err := pbwire.Marshal(timestampCodec{}, ts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	decoded, err := pbwire.Unmarshal(timestampCodec{}, data)
//
// # Package Structure
//
// This file provides convenient top-level wrappers around the lower
// packages (buffer, codec, writer, parser, schema). For advanced usage —
// streaming input, custom parse options, reusable buffers — use those
// packages directly.
package pbwire

import (
	"github.com/arloliu/pbwire/buffer"
	"github.com/arloliu/pbwire/codec"
	"github.com/arloliu/pbwire/internal/pool"
)

// Marshal encodes value with c and returns the exact-sized result.
//
// The output buffer is pulled from a pooled allocator (internal/pool) and
// sized via c.MeasureRecord before the write, so Marshal never reallocates
// mid-encode the way an append-growing buffer would.
//
// Parameters:
//   - c: The codec implementing Write/MeasureRecord for T.
//   - value: The value to encode.
//
// Returns:
//   - []byte: The encoded message, exactly c.MeasureRecord(value) bytes long.
//   - error: Any error returned by c.Write.
func Marshal[T any](c codec.Codec[T], value T) ([]byte, error) {
	size := c.MeasureRecord(value)

	get, put := pool.Get, pool.Put
	if size > pool.SmallBufferMaxThreshold {
		get, put = pool.GetLarge, pool.PutLarge
	}
	bb := get()
	defer put(bb)
	bb.ExtendOrGrow(size)

	out := buffer.Wrap(bb.Bytes())
	if err := c.Write(out, value); err != nil {
		return nil, err
	}

	result := make([]byte, size)
	copy(result, bb.Bytes())

	return result, nil
}

// Unmarshal decodes a T from data using c, with the given parse options
// (strict/lenient unknown-field handling, max nesting depth — see
// codec.WithStrict, codec.WithParseUnknown, codec.WithMaxDepth).
//
// Parameters:
//   - c: The codec implementing Parse for T.
//   - data: The encoded message bytes.
//   - opts: Optional codec.ParseOption values; defaults apply when omitted.
//
// Returns:
//   - T: The decoded value.
//   - error: Any error returned by c.Parse, including malformed input or a
//     depth-guard trip.
func Unmarshal[T any](c codec.Codec[T], data []byte, opts ...codec.ParseOption) (T, error) {
	cfg, err := codec.NewParseConfig(opts...)
	if err != nil {
		var zero T
		return zero, err
	}

	in := buffer.Wrap(data)

	return c.Parse(in, cfg)
}

// MeasureAndMarshal is Marshal plus the encoded size, for callers that
// need to length-prefix the result (e.g. before framing it for transport).
// It calls MeasureRecord once itself and Marshal calls it again.
func MeasureAndMarshal[T any](c codec.Codec[T], value T) (data []byte, size int, err error) {
	size = c.MeasureRecord(value)
	data, err = Marshal(c, value)

	return data, size, err
}
