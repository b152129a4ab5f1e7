package buffer

// OffHeapBuffer is a BufferedData backed by memory outside the Go garbage
// collector's heap. Its cursor/slice/view semantics are identical to
// HeapBuffer (it embeds one over borrowed storage); the only difference is
// where the backing bytes live and that it must be explicitly released.
//
// Allocation is gated by a cgo/non-cgo build tag, following the same split
// used to pick between a cgo-accelerated Zstd binding (compress/zstd_cgo.go)
// and a pure-Go fallback (compress/zstd_pure.go): with cgo available, storage
// comes from C.malloc so it is invisible to the Go GC; without cgo,
// AllocateOffHeap degrades to an ordinary GC-visible slice behind the same
// interface, so callers built against OffHeapBuffer still compile and run
// correctly, just without the off-heap guarantee.
type OffHeapBuffer struct {
	*HeapBuffer
	release func()
	freed   bool
}

var _ BufferedData = (*OffHeapBuffer)(nil)

// AllocateOffHeap creates a new off-heap buffer of n bytes: length=n,
// position=0, limit=n.
func AllocateOffHeap(n int) (*OffHeapBuffer, error) {
	data, release, err := allocOffHeap(n)
	if err != nil {
		return nil, err
	}

	return &OffHeapBuffer{HeapBuffer: Wrap(data), release: release}, nil
}

// Close releases the off-heap storage. After Close, the buffer must not be
// used again. Close is idempotent.
func (o *OffHeapBuffer) Close() {
	if o.freed {
		return
	}

	o.freed = true
	if o.release != nil {
		o.release()
	}
}
