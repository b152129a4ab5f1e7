package compress

// ZstdCompressor provides Zstandard compression, favoring ratio over raw
// speed. Its Compress/Decompress methods live in zstd_cgo.go (built when
// cgo is available, backed by valyala/gozstd) or zstd_pure.go (the cgo-free
// fallback, backed by klauspost/compress/zstd) — the same split the
// teacher uses for its own Zstd bindings.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
