//go:build cgo

package buffer

/*
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"github.com/arloliu/pbwire/errs"
)

// allocOffHeap allocates n bytes via C.malloc, outside the Go heap, mirroring
// how github.com/valyala/gozstd hands buffers to and from C code without
// involving the Go garbage collector.
func allocOffHeap(n int) ([]byte, func(), error) {
	if n < 0 {
		return nil, nil, errs.ErrInvalidArgument
	}

	if n == 0 {
		return []byte{}, func() {}, nil
	}

	ptr := C.malloc(C.size_t(n))
	if ptr == nil {
		return nil, nil, errs.ErrBufferOverflow
	}

	data := unsafe.Slice((*byte)(ptr), n)
	release := func() { C.free(ptr) }

	return data, release, nil
}
