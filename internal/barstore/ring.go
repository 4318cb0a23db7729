package barstore

import "github.com/omupade20/prop8/internal/types"

// ring is a fixed capacity FIFO of closed bars. When full, push overwrites
// the oldest bar. It is not safe for concurrent use; the owning series lock
// guards it.
type ring struct {
	buf  []types.Bar
	head int // index of the oldest bar
	size int
}

func newRing(capacity int) *ring {
	return &ring{
		buf:  make([]types.Bar, capacity),
		head: 0,
		size: 0,
	}
}

// push appends b and reports whether the oldest bar was evicted.
func (r *ring) push(b types.Bar) bool {
	capacity := len(r.buf)
	if r.size < capacity {
		r.buf[(r.head+r.size)%capacity] = b
		r.size++

		return false
	}

	r.buf[r.head] = b
	r.head = (r.head + 1) % capacity

	return true
}

func (r *ring) len() int {
	return r.size
}

func (r *ring) last() (types.Bar, bool) {
	if r.size == 0 {
		return types.Bar{}, false
	}

	return r.buf[(r.head+r.size-1)%len(r.buf)], true
}

// tail copies the newest n bars, oldest first.
func (r *ring) tail(n int) []types.Bar {
	if n > r.size {
		n = r.size
	}

	if n <= 0 {
		return []types.Bar{}
	}

	out := make([]types.Bar, n)
	start := r.head + r.size - n
	for i := 0; i < n; i++ {
		out[i] = r.buf[(start+i)%len(r.buf)]
	}

	return out
}
