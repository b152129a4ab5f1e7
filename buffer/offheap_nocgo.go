//go:build !cgo

package buffer

import "github.com/arloliu/pbwire/errs"

// allocOffHeap falls back to an ordinary GC-visible slice when cgo is
// unavailable, the same degrade-gracefully strategy compress/zstd_pure.go uses
// in place of the cgo gozstd binding when built with CGO_ENABLED=0.
func allocOffHeap(n int) ([]byte, func(), error) {
	if n < 0 {
		return nil, nil, errs.ErrInvalidArgument
	}

	return make([]byte, n), func() {}, nil
}
