// Package pool provides bucketed sync.Pool instances for frame-sized
// scratch buffers. Size classes follow common video plane sizes so a
// conversion loop reuses one bucket per resolution instead of
// allocating a fresh plane every frame.
package pool

import "sync"

// Size classes, roughly one luma plane at common resolutions.
const (
	SizeQCIF  = 176 * 144
	SizeQVGA  = 320 * 240
	SizeVGA   = 640 * 480
	SizeHD    = 1280 * 720
	SizeFHD   = 1920 * 1080
	SizeQHD   = 2560 * 1440
	SizeUHD4K = 3840 * 2160
)

var sizes = [7]int{SizeQCIF, SizeQVGA, SizeVGA, SizeHD, SizeFHD, SizeQHD, SizeUHD4K}

// bucketIndex returns the smallest size class holding size, or -1
// when the request exceeds the largest class.
func bucketIndex(size int) int {
	for i, sz := range sizes {
		if size <= sz {
			return i
		}
	}
	return -1
}

var pools [7]sync.Pool

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

// Get returns a byte slice of length size backed by the pool. Sizes
// beyond the largest class are allocated directly. The caller must
// call Put when done.
func Get(size int) []byte {
	idx := bucketIndex(size)
	if idx < 0 {
		return make([]byte, size)
	}
	bp := pools[idx].Get().(*[]byte)
	b := *bp
	if cap(b) < size {
		b = make([]byte, size)
		*bp = b
		return b
	}
	return b[:size]
}

// Put returns a slice obtained from Get to its bucket. Oversized
// slices that skipped the pool are dropped.
func Put(b []byte) {
	c := cap(b)
	idx := bucketIndex(c)
	if idx < 0 {
		return
	}
	b = b[:c]
	pools[idx].Put(&b)
}
