//go:build cgo

package compress

import (
	"github.com/valyala/gozstd"
)

// Compress compresses data with gozstd's cgo-backed Zstandard binding at
// the default-ish level 3, the usual balance of ratio and speed.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
