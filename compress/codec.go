// Package compress applies general-purpose byte compression to an
// already-serialized message payload, as an optional layer on top of the
// wire encoding produced by writer/codec — the same two-stage split the
// teacher applies to time-series payloads (encode, then compress), just
// with the wire format itself standing in for the encoding stage.
package compress

import "fmt"

// Compressor compresses an already-encoded payload.
type Compressor interface {
	// Compress compresses data and returns a newly allocated result. The
	// input is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor's output.
type Decompressor interface {
	// Decompress decompresses data and returns a newly allocated result.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec builds a fresh Codec for the given algorithm.
func CreateCodec(t CompressionType) (Codec, error) {
	switch t {
	case CompressionNone:
		return NewNoOpCompressor(), nil
	case CompressionZstd:
		return NewZstdCompressor(), nil
	case CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("compress: unsupported compression type %s", t)
	}
}

var builtinCodecs = map[CompressionType]Codec{
	CompressionNone: NewNoOpCompressor(),
	CompressionZstd: NewZstdCompressor(),
	CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a shared built-in Codec instance for t, avoiding a
// fresh allocation per call the way CreateCodec would.
func GetCodec(t CompressionType) (Codec, error) {
	if c, ok := builtinCodecs[t]; ok {
		return c, nil
	}

	return nil, fmt.Errorf("compress: unsupported compression type %s", t)
}
