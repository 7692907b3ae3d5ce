package protocol

import "github.com/wagiedev/mms-sdk-go/internal/errors"

// ByteBuffer holds a payload whose ownership has passed to the caller.
// It is released exactly once; later releases report ErrBufferReleased.
type ByteBuffer struct {
	data     []byte
	released bool
}

// NewByteBuffer takes ownership of data.
func NewByteBuffer(data []byte) *ByteBuffer {
	return &ByteBuffer{data: data}
}

// Bytes returns the payload, or nil once released.
func (b *ByteBuffer) Bytes() []byte {
	if b == nil || b.released {
		return nil
	}

	return b.data
}

// Len returns the payload length in bytes, or 0 once released.
func (b *ByteBuffer) Len() int {
	return len(b.Bytes())
}

// String returns the payload as text.
func (b *ByteBuffer) String() string {
	return string(b.Bytes())
}

// Released reports whether Release has been called.
func (b *ByteBuffer) Released() bool {
	return b == nil || b.released
}

// Release drops the payload. Calling it again is a no-op that returns
// ErrBufferReleased so misuse can be detected.
func (b *ByteBuffer) Release() error {
	if b == nil || b.released {
		return errors.ErrBufferReleased
	}

	b.data = nil
	b.released = true

	return nil
}
