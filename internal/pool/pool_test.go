package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLength(t *testing.T) {
	for _, size := range []int{1, SizeQCIF, SizeQCIF + 1, SizeVGA, SizeFHD, SizeUHD4K} {
		b := Get(size)
		assert.Len(t, b, size)
		Put(b)
	}
}

func TestBucketIndex(t *testing.T) {
	assert.Equal(t, 0, bucketIndex(1))
	assert.Equal(t, 0, bucketIndex(SizeQCIF))
	assert.Equal(t, 1, bucketIndex(SizeQCIF+1))
	assert.Equal(t, 6, bucketIndex(SizeUHD4K))
	assert.Equal(t, -1, bucketIndex(SizeUHD4K+1))
}

func TestOversizeBypassesPool(t *testing.T) {
	b := Get(SizeUHD4K + 100)
	assert.Len(t, b, SizeUHD4K+100)
	Put(b) // dropped, must not panic
}

func TestReuse(t *testing.T) {
	b := Get(SizeQVGA)
	b[0] = 0xFE
	Put(b)
	// A fresh Get of the same class may return the pooled buffer; either
	// way the length contract holds.
	c := Get(SizeQVGA)
	assert.Len(t, c, SizeQVGA)
	Put(c)
}

func TestGetAcrossClasses(t *testing.T) {
	small := Get(100)
	large := Get(SizeHD)
	assert.GreaterOrEqual(t, cap(small), 100)
	assert.GreaterOrEqual(t, cap(large), SizeHD)
	Put(small)
	Put(large)
}
