package engine

import (
	"bytes"
	"sync"
)

// Pool for render buffers used by Apply.
var bufferPool = sync.Pool{
	New: func() interface{} {
		// Pre-allocate 4KB buffer (common page size)
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
}

// getBuffer retrieves an empty buffer from the pool.
// Always call putBuffer when done.
func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// putBuffer returns a buffer to the pool. Oversized buffers are dropped so
// one huge render does not pin memory for the life of the process.
func putBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > 1<<20 {
		return
	}
	bufferPool.Put(buf)
}
