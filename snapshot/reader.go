package snapshot

import (
	"encoding/binary"
	"io"

	"github.com/CraigFe/tezos/types"
)

const (
	// readChunkSize is the minimum size of a refill read.
	readChunkSize = 1 << 20
	// maxFrameSize bounds a single frame; anything past it is treated as
	// a corrupt length prefix rather than an allocation request.
	maxFrameSize = 1 << 30
)

// frameReader consumes length-prefixed frames from the descriptor through
// a refillable buffer. Each refill asks for at least readChunkSize bytes,
// growing the buffer only when that or the pending frame does not fit; the
// buffer is shifted left as frames are consumed.
type frameReader struct {
	in         io.Reader
	buf        []byte
	start, end int
}

func newFrameReader(in io.Reader) *frameReader {
	return &frameReader{
		in:  in,
		buf: make([]byte, readChunkSize),
	}
}

// nextFrame returns the payload of the next frame. It returns io.EOF when
// the stream ends cleanly on a frame boundary; EOF inside a frame is
// ErrInconsistentSnapshotFile. The returned slice is a copy and stays
// valid across further reads.
func (r *frameReader) nextFrame() ([]byte, error) {
	header, err := r.take(8, true)
	if err != nil {
		return nil, err
	}
	length := binary.BigEndian.Uint64(header)
	if length > maxFrameSize {
		return nil, types.ErrInconsistentSnapshotFile
	}
	payload, err := r.take(int(length), false)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}

// take returns n buffered bytes, refilling from the descriptor as needed.
// atBoundary marks reads that begin a new frame, where a clean EOF is
// reported as io.EOF instead of a corruption error.
func (r *frameReader) take(n int, atBoundary bool) ([]byte, error) {
	for r.end-r.start < n {
		if err := r.fill(n); err != nil {
			if err == io.EOF {
				if atBoundary && r.end == r.start {
					return nil, io.EOF
				}
				return nil, types.ErrInconsistentSnapshotFile
			}
			return nil, err
		}
	}
	p := r.buf[r.start : r.start+n]
	r.start += n
	return p, nil
}

// fill performs one refill read of at least readChunkSize, growing the
// buffer when the pending frame does not fit.
func (r *frameReader) fill(need int) error {
	if r.start > 0 {
		copy(r.buf, r.buf[r.start:r.end])
		r.end -= r.start
		r.start = 0
	}
	want := r.end + readChunkSize
	if need > want {
		want = need
	}
	if want > len(r.buf) {
		grown := make([]byte, want)
		copy(grown, r.buf[:r.end])
		r.buf = grown
	}
	n, err := r.in.Read(r.buf[r.end:])
	if n > 0 {
		r.end += n
		return nil
	}
	if err == nil || err == io.EOF {
		return io.EOF
	}
	return types.SystemReadError{Err: err}
}
