// Package errs defines the sentinel errors returned by the pbwire runtime.
//
// Every error kind from the wire-format contract is a distinct package-level
// value so callers can test for it with errors.Is, and call sites wrap it
// with additional context via fmt.Errorf("...: %w", ErrXxx), the same
// wrapping convention used throughout this module.
package errs

import "errors"

var (
	// ErrMalformed covers a varint with more than 10 continuation bytes, an
	// unsupported group wire type, invalid UTF-8 in a string field, and a
	// bool varint whose value is neither 0 nor 1.
	ErrMalformed = errors.New("pbwire: malformed wire data")

	// ErrSizeExceeded is returned when a length-delimited field's declared
	// length exceeds the caller-supplied max_size bound.
	ErrSizeExceeded = errors.New("pbwire: length-delimited field exceeds size limit")

	// ErrBufferUnderflow is returned when a mandatory read runs past limit
	// or hits end-of-stream. A tag read at EOF is not reported as this
	// error; it terminates the dispatch loop normally (see codec.Dispatch).
	ErrBufferUnderflow = errors.New("pbwire: buffer underflow")

	// ErrBufferOverflow is returned when a write would advance position past
	// limit on a fixed-size buffer.
	ErrBufferOverflow = errors.New("pbwire: buffer overflow")

	// ErrUnexpectedField is returned in strict mode when an unknown field
	// number is encountered.
	ErrUnexpectedField = errors.New("pbwire: unexpected field in strict mode")

	// ErrDepthExceeded is returned when nested message parsing exceeds the
	// configured max_depth.
	ErrDepthExceeded = errors.New("pbwire: maximum nesting depth exceeded")

	// ErrInvalidArgument covers misuse of the API itself, e.g. calling
	// ExtractFieldBytes with a repeated field or a non-length-delimited
	// wire type.
	ErrInvalidArgument = errors.New("pbwire: invalid argument")

	// ErrGroupUnsupported is a more specific MALFORMED cause: the wire
	// stream used wire type 3 or 4 (START_GROUP/END_GROUP), which this
	// runtime never supports.
	ErrGroupUnsupported = errors.New("pbwire: group wire types are unsupported")

	// ErrViewExceedsParent is returned by BufferedData.View when the
	// requested length exceeds the parent's remaining bytes.
	ErrViewExceedsParent = errors.New("pbwire: view length exceeds parent remaining bytes")

	// ErrClosedSink reports a write to a hashing sink that has been
	// finalized. hashsink.Sink never returns it: Digest and ComputeHash
	// leave the sink open, and later writes keep extending the same digest.
	ErrClosedSink = errors.New("pbwire: hashing sink written to after finalize")
)
