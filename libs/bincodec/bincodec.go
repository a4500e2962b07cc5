// Package bincodec implements the low level big-endian, length-prefixed
// binary encoding primitives shared by the chain types and the snapshot
// command codec. Byte strings and lists are prefixed with a u32 length,
// frame lengths with a u64; all integers are big-endian.
package bincodec

import (
	"encoding/binary"
	"errors"
	"math"
)

var (
	// ErrShortBuffer is returned when a decode runs past the end of the
	// input buffer.
	ErrShortBuffer = errors.New("bincodec: short buffer")
	// ErrLengthOverflow is returned when a length prefix cannot fit in
	// its integer width.
	ErrLengthOverflow = errors.New("bincodec: length overflow")
)

// AppendByte appends a single raw byte.
func AppendByte(b []byte, v byte) []byte {
	return append(b, v)
}

// AppendUint32 appends a big-endian u32.
func AppendUint32(b []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(b, v)
}

// AppendUint64 appends a big-endian u64.
func AppendUint64(b []byte, v uint64) []byte {
	return binary.BigEndian.AppendUint64(b, v)
}

// AppendBytes appends a u32 length prefix followed by the raw bytes.
func AppendBytes(b []byte, p []byte) []byte {
	b = AppendUint32(b, uint32(len(p)))
	return append(b, p...)
}

// AppendString appends a u32 length prefix followed by the string bytes.
func AppendString(b []byte, s string) []byte {
	b = AppendUint32(b, uint32(len(s)))
	return append(b, s...)
}

// A Reader decodes primitives from an in-memory buffer. All reads copy out
// of the buffer, so decoded values stay valid after the buffer is reused.
type Reader struct {
	b []byte
}

func NewReader(b []byte) *Reader {
	return &Reader{b: b}
}

// Len returns the number of bytes left to decode.
func (r *Reader) Len() int {
	return len(r.b)
}

func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || n > len(r.b) {
		return nil, ErrShortBuffer
	}
	p := r.b[:n]
	r.b = r.b[n:]
	return p, nil
}

func (r *Reader) Byte() (byte, error) {
	p, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

func (r *Reader) Uint32() (uint32, error) {
	p, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(p), nil
}

func (r *Reader) Uint64() (uint64, error) {
	p, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(p), nil
}

// Bytes decodes a u32 length-prefixed byte string into a fresh slice.
func (r *Reader) Bytes() ([]byte, error) {
	n, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	if uint64(n) > math.MaxInt32 {
		return nil, ErrLengthOverflow
	}
	p, err := r.take(int(n))
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, p)
	return out, nil
}

// String decodes a u32 length-prefixed string.
func (r *Reader) String() (string, error) {
	n, err := r.Uint32()
	if err != nil {
		return "", err
	}
	if uint64(n) > math.MaxInt32 {
		return "", ErrLengthOverflow
	}
	p, err := r.take(int(n))
	if err != nil {
		return "", err
	}
	return string(p), nil
}
