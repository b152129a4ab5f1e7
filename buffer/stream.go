package buffer

import (
	"bufio"
	"io"

	"github.com/arloliu/pbwire/endian"
	"github.com/arloliu/pbwire/errs"
	"github.com/arloliu/pbwire/varint"
)

// StreamReader is a ReadableSequentialData over an io.Reader. Position is
// monotonic, and Limit()/Capacity() report MaxPosition ("effectively
// unbounded") unless narrowed with SetLimit, for callers that want to
// bound a stream read by byte count (e.g. the caller enforces nested-message
// bounds by setting limit before handing a buffer to the codec).
//
// Slicing and viewing are not supported on stream-backed data; StreamReader
// therefore implements ReadableSequentialData only, not the full
// BufferedData contract.
//
// This mirrors in spirit the role code.hybscloud.com/iox plays underneath
// hayabusa-cloud-framer's Reader/Writer: a portable adapter from raw
// io.Reader/io.Writer semantics to a cursor the rest of the runtime can
// read through uniformly. No pack example ships a reusable "byte cursor
// over io.Reader" primitive, so the buffering here is built directly on
// bufio.Reader (see DESIGN.md for why stdlib was chosen over hand-rolling).
type StreamReader struct {
	r     *bufio.Reader
	pos   int64
	limit int64
}

var _ ReadableSequentialData = (*StreamReader)(nil)
var _ varint.ByteReader = (*StreamReader)(nil)

// NewStreamReader wraps r for sequential byte-at-a-time reading.
func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{r: bufio.NewReader(r), limit: MaxPosition}
}

func (s *StreamReader) Position() int64 { return s.pos }
func (s *StreamReader) Limit() int64    { return s.limit }

func (s *StreamReader) SetLimit(x int64) {
	if x < s.pos {
		x = s.pos
	}
	s.limit = x
}

func (s *StreamReader) Capacity() int64    { return MaxPosition }
func (s *StreamReader) Remaining() int64   { return s.limit - s.pos }
func (s *StreamReader) HasRemaining() bool { return s.Remaining() > 0 }
func (s *StreamReader) AtEOF() bool        { return s.pos >= s.limit }

// Skip advances position by min(n, Remaining()), discarding the bytes. It
// may block on the underlying reader.
func (s *StreamReader) Skip(n int64) (int64, error) {
	if n < 0 {
		n = 0
	}

	if rem := s.Remaining(); n > rem {
		n = rem
	}

	discarded, err := s.r.Discard(int(n))
	s.pos += int64(discarded)
	if err != nil {
		return int64(discarded), err
	}

	return int64(discarded), nil
}

func (s *StreamReader) ReadByte() (byte, error) {
	if s.pos >= s.limit {
		return 0, errs.ErrBufferUnderflow
	}

	b, err := s.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			return 0, errs.ErrBufferUnderflow
		}

		return 0, err
	}

	s.pos++

	return b, nil
}

func (s *StreamReader) ReadBytes(n int64) ([]byte, error) {
	if n < 0 || s.pos+n > s.limit {
		return nil, errs.ErrBufferUnderflow
	}

	owned := make([]byte, n)
	if _, err := io.ReadFull(s.r, owned); err != nil {
		return nil, errs.ErrBufferUnderflow
	}

	s.pos += n

	return owned, nil
}

// StreamWriter is a WritableSequentialData over an io.Writer. Unlike
// HeapBuffer/OffHeapBuffer it never refuses a write for lack of space:
// streaming writers may grow, so it simply forwards bytes to the
// underlying writer and advances position. Limit/Capacity report
// MaxPosition.
type StreamWriter struct {
	w   io.Writer
	pos int64
}

var _ WritableSequentialData = (*StreamWriter)(nil)

// NewStreamWriter wraps w for sequential byte-at-a-time writing.
func NewStreamWriter(w io.Writer) *StreamWriter {
	return &StreamWriter{w: w}
}

func (s *StreamWriter) Position() int64    { return s.pos }
func (s *StreamWriter) Limit() int64       { return MaxPosition }
func (s *StreamWriter) Capacity() int64    { return MaxPosition }
func (s *StreamWriter) Remaining() int64   { return MaxPosition - s.pos }
func (s *StreamWriter) HasRemaining() bool { return true }

func (s *StreamWriter) write(p []byte) error {
	n, err := s.w.Write(p)
	s.pos += int64(n)

	return err
}

func (s *StreamWriter) WriteByte(b byte) error {
	return s.write([]byte{b})
}

func (s *StreamWriter) WriteBytes(data []byte) error {
	return s.write(data)
}

func (s *StreamWriter) WriteInt(v int32, order endian.EndianEngine) error {
	var buf [4]byte
	order.PutUint32(buf[:], uint32(v))

	return s.write(buf[:])
}

func (s *StreamWriter) WriteLong(v int64, order endian.EndianEngine) error {
	var buf [8]byte
	order.PutUint64(buf[:], uint64(v))

	return s.write(buf[:])
}

func (s *StreamWriter) WriteFloat(v float32, order endian.EndianEngine) error {
	return s.WriteInt(int32(float32bits(v)), order) //nolint:gosec
}

func (s *StreamWriter) WriteDouble(v float64, order endian.EndianEngine) error {
	return s.WriteLong(int64(float64bits(v)), order) //nolint:gosec
}

func (s *StreamWriter) WriteVarInt(v int32, zigzag bool) error {
	var u uint32
	if zigzag {
		u = varint.ZigZagEncode32(v)
	} else {
		u = uint32(v) //nolint:gosec
	}

	return s.write(varint.AppendUint32(nil, u))
}

func (s *StreamWriter) WriteVarLong(v int64, zigzag bool) error {
	var u uint64
	if zigzag {
		u = varint.ZigZagEncode64(v)
	} else {
		u = uint64(v)
	}

	return s.write(varint.AppendUint64(nil, u))
}
