// Package pool provides pooled scratch buffers for hot serialization
// paths.
package pool

import "sync"

const defaultByteSliceCapacity = 64

// ByteSlicePool hands out zero-length byte slices. Slices handed back
// via Put are reset before they are reused.
type ByteSlicePool struct {
	pool sync.Pool
}

var byteSlice = &ByteSlicePool{
	pool: sync.Pool{
		New: func() interface{} {
			return make([]byte, 0, defaultByteSliceCapacity)
		},
	},
}

// ByteSlice returns the shared byte slice pool.
func ByteSlice() *ByteSlicePool {
	return byteSlice
}

func (p *ByteSlicePool) Get() []byte {
	return p.pool.Get().([]byte)[:0]
}

// GetCapacity returns a slice with capacity of at least n.
func (p *ByteSlicePool) GetCapacity(n int) []byte {
	b := p.pool.Get().([]byte)[:0]
	if cap(b) < n {
		b = make([]byte, 0, n)
	}
	return b
}

func (p *ByteSlicePool) Put(b []byte) {
	p.pool.Put(b[:0])
}
