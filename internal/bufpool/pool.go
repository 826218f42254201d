// Package bufpool provides size-bucketed byte-slice reuse for the block
// compare hot path, so a full comparison doesn't allocate a fresh scratch
// row on every block-row of every pane pair.
package bufpool

import "sync"

// Size classes for bucketed pools.
const (
	Size256B = 256
	Size1K   = 1024
	Size4K   = 4096
	Size16K  = 16384
	Size64K  = 65536
)

var sizes = [5]int{Size256B, Size1K, Size4K, Size16K, Size64K}

var pools [5]sync.Pool

func init() {
	for i := range pools {
		sz := sizes[i]
		pools[i] = sync.Pool{
			New: func() any {
				b := make([]byte, sz)
				return &b
			},
		}
	}
}

func bucketIndex(size int) int {
	switch {
	case size <= Size256B:
		return 0
	case size <= Size1K:
		return 1
	case size <= Size4K:
		return 2
	case size <= Size16K:
		return 3
	default:
		return 4
	}
}

// Get returns a byte slice of at least the requested size. The returned
// slice has length == size and may have a larger capacity. The caller must
// call Put when done.
func Get(size int) []byte {
	if size > Size64K {
		return make([]byte, size)
	}
	idx := bucketIndex(size)
	bp := pools[idx].Get().(*[]byte)
	b := *bp
	if cap(b) < size {
		b = make([]byte, size)
		*bp = b
		return b
	}
	return b[:size]
}

// Put returns a byte slice obtained from Get back to its pool. Slices
// smaller than Size256B or larger than Size64K are not pooled.
func Put(b []byte) {
	c := cap(b)
	if c < Size256B || c > Size64K {
		return
	}
	idx := bucketIndex(c)
	b = b[:c]
	pools[idx].Put(&b)
}
