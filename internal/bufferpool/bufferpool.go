// Package bufferpool pools byte buffers reused when encoding responses.
package bufferpool

import (
	"bytes"
	"sync"
)

var pool = sync.Pool{
	New: func() interface{} {
		return &bytes.Buffer{}
	},
}

// Get returns an empty buffer from the pool.
func Get() *bytes.Buffer {
	return pool.Get().(*bytes.Buffer)
}

// Put resets the buffer and puts it back to the pool.
func Put(buf *bytes.Buffer) {
	buf.Reset()
	pool.Put(buf)
}
